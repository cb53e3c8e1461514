package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/globalplace/pkg/place"
)

// inspectCommand creates the inspect command that opens the bin browser.
func (c *CLI) inspectCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "inspect [result.json]",
		Short: "Browse the bins of a placement result interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rep, err := place.ReadReportFile(args[0])
			if err != nil {
				return fmt.Errorf("load result %s: %w", args[0], err)
			}
			c.Logger.Debug("opening inspector", "file", args[0])

			p := tea.NewProgram(NewBinInspectorModel(rep), tea.WithContext(cmd.Context()), tea.WithAltScreen())
			if _, err := p.Run(); err != nil {
				return fmt.Errorf("inspector: %w", err)
			}
			return nil
		},
	}
}
