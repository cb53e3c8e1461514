package cli

import (
	"fmt"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/globalplace/pkg/place"
)

// occupancyCommand creates the occupancy command that tabulates bin whitespace.
func (c *CLI) occupancyCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "occupancy [result.json]",
		Short: "Print the whitespace of every bin in a placement result",
		Long: `Print the whitespace of every bin in a placement result.

Rows run from y=11 at the top down to y=0, matching the occupancy snapshots
in the placer's log. Overfull bins (negative whitespace) are highlighted.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runOccupancy(args[0])
		},
	}
}

func (c *CLI) runOccupancy(input string) error {
	rep, err := place.ReadReportFile(input)
	if err != nil {
		return fmt.Errorf("load result %s: %w", input, err)
	}
	c.Logger.Debug("loaded result", "file", input, "bins", len(rep.Bins))

	fmt.Fprintln(out, StyleTitle.Render("Bin whitespace"))
	fmt.Fprintln(out, renderOccupancyTable(rep.Whitespace(), rep.Capacity))

	s := summarize(rep)
	printKeyValue("capacity", strconv.Itoa(rep.Capacity))
	printKeyValue("nets", strconv.Itoa(s.nets))
	printKeyValue("whitespace", fmt.Sprintf("%d .. %d", s.minWS, s.maxWS))
	if s.overfull > 0 {
		printWarning("%d bins over capacity", s.overfull)
	}
	return nil
}

// occupancySummary aggregates a result's bins.
type occupancySummary struct {
	nets         int
	overfull     int
	minWS, maxWS int
}

func summarize(rep *place.Report) occupancySummary {
	ws := rep.Whitespace()
	s := occupancySummary{minWS: ws[0][0], maxWS: ws[0][0]}
	for x := range place.BinDim {
		for y := range place.BinDim {
			w := ws[x][y]
			s.nets += rep.Capacity - w
			if w < 0 {
				s.overfull++
			}
			s.minWS = min(s.minWS, w)
			s.maxWS = max(s.maxWS, w)
		}
	}
	return s
}

// renderOccupancyTable lays the whitespace grid out with y=11 on top and a
// header row of x indices.
func renderOccupancyTable(ws [place.BinDim][place.BinDim]int, capacity int) string {
	headers := []string{"y\\x"}
	for x := range place.BinDim {
		headers = append(headers, strconv.Itoa(x))
	}

	rows := make([][]string, 0, place.BinDim)
	for y := place.BinDim - 1; y >= 0; y-- {
		row := []string{strconv.Itoa(y)}
		for x := range place.BinDim {
			row = append(row, strconv.Itoa(ws[x][y]))
		}
		rows = append(rows, row)
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	cellStyle := lipgloss.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 || col == 0 {
				return headerStyle.Padding(0, 1)
			}
			w := ws[col-1][place.BinDim-1-row]
			switch {
			case w < 0:
				return cellStyle.Inherit(styleOverfull)
			case w == capacity:
				return cellStyle.Inherit(styleEmpty)
			}
			return cellStyle.Foreground(colorWhite)
		})

	return t.Render()
}
