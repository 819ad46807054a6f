package cli

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

// layoutCommand creates the layout command, which runs the force layout on
// the stored board without a terminal and saves the resulting positions.
func (c *CLI) layoutCommand() *cobra.Command {
	var reset bool
	ticks := defaultSettleTicks

	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Run the layout on the stored board until it rests",
		Long: `Run the force layout on the stored board until it rests and save the result.
Pinned nodes stay where they are unless --reset releases them first.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if ticks <= 0 {
				return fmt.Errorf("--ticks must be positive")
			}
			return c.runLayout(cmd.Context(), reset, ticks)
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "unpin every node before running the layout")
	cmd.Flags().IntVar(&ticks, "ticks", ticks, "maximum number of layout ticks")
	return cmd
}

func (c *CLI) runLayout(ctx context.Context, reset bool, maxTicks int) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ed, err := c.newEditor(ctx, st, logger, false)
	if err != nil {
		return err
	}
	if reset {
		if err := ed.ResetLayout(ctx); err != nil {
			return err
		}
	}

	ticks := ed.Settle(maxTicks)
	if err := ed.Save(ctx); err != nil {
		return err
	}
	prog.done("Layout finished")

	if ed.Active() {
		printWarning("Layout still moving after %d ticks", ticks)
	} else {
		printSuccess("Layout at rest")
	}
	printKeyValue("ticks", strconv.Itoa(ticks))
	printKeyValue("alpha", strconv.FormatFloat(ed.Simulation().Alpha(), 'f', 4, 64))
	printBoard(ed.Graph())
	return nil
}
