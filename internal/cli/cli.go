// Package cli implements the globalplace command-line interface.
package cli

import (
	"io"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/matzehuels/globalplace/pkg/buildinfo"
)

// =============================================================================
// Constants
// =============================================================================

const (
	// appName is the application name used for display.
	appName = "globalplace"

	// resultSuffix replaces the netlist extension in the default output path.
	resultSuffix = ".placed.json"
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
		Use:   appName,
		Short: "Globalplace bins FPGA netlists onto a coarse device grid",
		Long: `Globalplace is the global stage of an FPGA placer. It pins user-fixed cells,
bins every other net by connectivity onto a 12x12 grid over the device, and
spreads overfull bins into their neighbours.`,
		Version:      buildinfo.Version,
		SilenceUsage: true,
	}

	root.SetVersionTemplate(buildinfo.Template())

	root.AddCommand(c.placeCommand())
	root.AddCommand(c.occupancyCommand())
	root.AddCommand(c.inspectCommand())
	root.AddCommand(c.completionCommand())

	return root
}

// =============================================================================
// Paths
// =============================================================================

// defaultResultPath derives the result file name from the netlist path.
func defaultResultPath(input string) string {
	return strings.TrimSuffix(input, filepath.Ext(input)) + resultSuffix
}
