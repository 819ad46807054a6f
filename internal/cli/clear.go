package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

// clearCommand creates the clear command, which resets the stored board to
// the single start node.
func (c *CLI) clearCommand() *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Reset the stored board to a single start node",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !yes && !confirm(cmd.InOrStdin(), cmd.OutOrStdout(), "Clear the board? This cannot be undone.") {
				printInfo("Aborted")
				return nil
			}
			return c.runClear(cmd.Context())
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "do not ask for confirmation")
	return cmd
}

func (c *CLI) runClear(ctx context.Context) error {
	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ed, err := c.newEditor(ctx, st, loggerFromContext(ctx), false)
	if err != nil {
		return err
	}
	if err := ed.Clear(ctx); err != nil {
		return err
	}
	printSuccess("Board cleared")
	return nil
}

// confirm asks a yes/no question; anything but y or yes is a no.
func confirm(in io.Reader, w io.Writer, question string) bool {
	fmt.Fprintf(w, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	}
	return false
}
