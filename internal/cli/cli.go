// Package cli implements the forcechart command-line interface.
//
// The interactive editor runs in the terminal (edit, view); the remaining
// commands work on the stored document without a UI so boards can be
// scripted: export, import, render, layout and clear.
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging, which also
// installs the observability log hooks. Loggers are passed through
// context.Context. While the terminal editor runs, logs go to a file under
// $XDG_STATE_HOME/forcechart so they do not corrupt the screen.
package cli

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/forcechart/internal/config"
	"github.com/matzehuels/forcechart/pkg/buildinfo"
	"github.com/matzehuels/forcechart/pkg/editor"
	"github.com/matzehuels/forcechart/pkg/observability"
	"github.com/matzehuels/forcechart/pkg/store"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for directories and display.
	appName = "forcechart"

	// logFileName is the log file written while the terminal editor runs.
	logFileName = "forcechart.log"

	// defaultSettleTicks bounds headless layout runs. A layout from full
	// heat rests after about 300 ticks.
	defaultSettleTicks = 1000
)

// Log levels exported for use in main.go.
const (
	LogDebug = log.DebugLevel
	LogInfo  = log.InfoLevel
)

// =============================================================================
// CLI - Central CLI State
// =============================================================================

// CLI holds shared state for all commands.
type CLI struct {
	Logger *log.Logger

	configPath string
	verbose    bool
	cfg        *config.Config
}

// New creates a new CLI instance with a default logger.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{Logger: newLogger(w, level)}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          appName,
		Short:        "Forcechart is a flowchart editor with a force-directed layout",
		Long:         `Forcechart edits small flowcharts in the terminal. Nodes arrange themselves with a force-directed layout; dragging a node pins it where it is dropped.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := LogInfo
			if c.verbose {
				level = LogDebug
				observability.NewLogHooks(c.Logger).Install()
			}
			c.SetLogLevel(level)

			cfg, err := config.Load(c.configPath)
			if err != nil {
				return err
			}
			c.cfg = cfg
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())
	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable verbose logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", "", "config file (default "+config.Path()+")")

	root.AddCommand(c.editCommand())
	root.AddCommand(c.viewCommand())
	root.AddCommand(c.exportCommand())
	root.AddCommand(c.importCommand())
	root.AddCommand(c.renderCommand())
	root.AddCommand(c.layoutCommand())
	root.AddCommand(c.clearCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Editor Factory
// =============================================================================

// settings returns the loaded configuration, or the defaults when a command
// runs without the root's pre-run (tests).
func (c *CLI) settings() *config.Config {
	if c.cfg == nil {
		c.cfg = config.Default()
	}
	return c.cfg
}

// openStore opens the configured backend, or an in-memory one when
// noStore is set.
func (c *CLI) openStore(ctx context.Context, noStore bool) (store.Store, error) {
	if noStore {
		return store.Instrument(store.NewMemoryStore(), store.BackendMemory), nil
	}
	return store.Open(ctx, c.settings().StoreConfig())
}

// newEditor creates an editor on st and restores the stored document.
func (c *CLI) newEditor(ctx context.Context, st store.Store, logger *log.Logger, readOnly bool) (*editor.Editor, error) {
	opts := c.settings().EditorOptions()
	opts.Store = st
	opts.ReadOnly = readOnly
	opts.Logger = logger
	ed := editor.New(opts)
	if err := ed.Restore(ctx); err != nil {
		return nil, err
	}
	return ed, nil
}

// =============================================================================
// Paths
// =============================================================================

// stateDir returns the state directory using XDG standard (~/.local/state/forcechart/).
func stateDir() (string, error) {
	if stateHome := os.Getenv("XDG_STATE_HOME"); stateHome != "" {
		return filepath.Join(stateHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".local", "state", appName), nil
}
