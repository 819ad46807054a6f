package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/forcechart/pkg/graph"
)

// exportCommand creates the export command, which writes the stored board to
// an indented JSON file.
func (c *CLI) exportCommand() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the stored board to a JSON file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runExport(cmd.Context(), output)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", graph.DefaultExportName, "output file")
	return cmd
}

func (c *CLI) runExport(ctx context.Context, output string) error {
	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ed, err := c.newEditor(ctx, st, loggerFromContext(ctx), false)
	if err != nil {
		return err
	}
	path, err := ed.Export(output)
	if err != nil {
		return err
	}

	printSuccess("Exported board")
	printBoard(ed.Graph())
	printFile(path)
	return nil
}

// importCommand creates the import command, which replaces the stored board
// with a document file. A file that fails validation leaves the stored board
// untouched.
func (c *CLI) importCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "import <file>",
		Short: "Replace the stored board with a JSON file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runImport(cmd.Context(), args[0])
		},
	}
}

func (c *CLI) runImport(ctx context.Context, path string) error {
	st, err := c.openStore(ctx, false)
	if err != nil {
		return err
	}
	defer st.Close()

	ed, err := c.newEditor(ctx, st, loggerFromContext(ctx), false)
	if err != nil {
		return err
	}
	if err := ed.Import(ctx, path); err != nil {
		return err
	}

	printSuccess("Imported %s", path)
	printBoard(ed.Graph())
	printNextStep("Open it", appName+" edit")
	return nil
}
