package cli

import (
	"context"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcechart/pkg/errors"
	"github.com/matzehuels/forcechart/pkg/store"
)

// tuiParams selects what the terminal editor opens.
type tuiParams struct {
	noStore bool
	url     string // read-only view of a remote document
}

// editCommand creates the edit command, which opens the stored board in the
// terminal editor.
func (c *CLI) editCommand() *cobra.Command {
	var params tuiParams

	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the stored board in the terminal",
		Long: `Edit the stored board in the terminal.

Right-click the background to add a node, right-click a node to link or
delete it, and drag nodes to pin them. Every change is saved to the
configured storage backend.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runTUI(cmd.Context(), params)
		},
	}

	cmd.Flags().BoolVar(&params.noStore, "no-store", false, "edit a scratch board that is not saved")
	return cmd
}

// viewCommand creates the view command, which shows a remote document
// read-only.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view <url>",
		Short: "View a remote board read-only",
		Long: `View a remote board read-only.

The document is fetched over HTTP(S). Nodes can be inspected and the board
exported, but nothing is saved.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := errors.ValidateURL(args[0]); err != nil {
				return err
			}
			return c.runTUI(cmd.Context(), tuiParams{url: args[0]})
		},
	}
}

func (c *CLI) runTUI(ctx context.Context, params tuiParams) error {
	logPath, restore, err := c.redirectLogs(os.Stderr)
	if err != nil {
		return err
	}
	defer restore()
	// Runs append to one log file; the run id tells them apart.
	logger := c.Logger.With("run", uuid.NewString())

	readOnly := params.url != ""
	var st store.Store
	if readOnly {
		st = store.NewNullStore()
	} else if st, err = c.openStore(ctx, params.noStore); err != nil {
		return err
	}
	defer st.Close()

	ed, err := c.newEditor(ctx, st, logger, readOnly)
	if err != nil {
		return err
	}

	cfg := c.settings().TUI
	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if cfg.Mouse {
		opts = append(opts, tea.WithMouseAllMotion())
	}

	logger.Info("editor started", "read_only", readOnly, "store", !params.noStore)
	model := newTUIModel(ctx, ed, logger, cfg, params.url)
	if _, err := tea.NewProgram(model, opts...).Run(); err != nil {
		return err
	}

	g := ed.Graph()
	printBoard(g)
	printDetail("Log: %s", logPath)
	return nil
}
