// Package cli implements the due command-line interface.
//
// # Commands
//
//   - envelope: build the discrete upper envelope of a TOML line set
//   - transform: build the nearest-site transform of a TOML site set
//   - compare: time every envelope algorithm on one input and check agreement
//   - completion: generate shell completion scripts
//
// # Logging
//
// All commands support --verbose (-v) for debug-level logging. The logger is
// attached to the command context and handed to the pipeline runner.
package cli

import (
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/due/pkg/buildinfo"
	"github.com/matzehuels/due/pkg/pipeline"
)

// =============================================================================
// Constants
// =============================================================================

// appName is the application name used for display.
const appName = "due"

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

	// errOut receives progress indicators.
	errOut io.Writer
}

// New creates a new CLI instance whose logger writes to w.
func New(w io.Writer, level log.Level) *CLI {
	return &CLI{
		Logger: newLogger(w, level),
		errOut: w,
	}
}

// SetLogLevel updates the logger's level.
func (c *CLI) SetLogLevel(level log.Level) {
	c.Logger.SetLevel(level)
}

// RootCommand creates the root cobra command with all subcommands registered.
func (c *CLI) RootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   appName,
		Short: "due builds discrete upper envelopes and grid post-office transforms",
		Long: `due computes the upper envelope of integer lines over an integer domain,
and the nearest-site transform of a set of grid points built from one envelope
per grid row. Four construction algorithms are available and can be checked
against a brute-force reference.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cmd.SetContext(withLogger(cmd.Context(), c.Logger))
			return nil
		},
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.envelopeCommand())
	root.AddCommand(c.transformCommand())
	root.AddCommand(c.compareCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Runner Factory
// =============================================================================

// newRunner creates a pipeline runner for CLI use.
func (c *CLI) newRunner() *pipeline.Runner {
	return pipeline.NewRunner(c.Logger)
}

// progressOut returns where spinners are drawn.
func (c *CLI) progressOut() io.Writer {
	if c.errOut == nil {
		return os.Stderr
	}
	return c.errOut
}
