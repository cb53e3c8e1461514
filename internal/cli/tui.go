package cli

import (
	"fmt"
	"strconv"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/matzehuels/globalplace/pkg/place"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// BinInspectorModel - Interactive bin browser
// =============================================================================

// BinInspectorModel is the bubbletea model for browsing a placement result.
// The cursor moves over the 12x12 grid; the side panel lists the nets of the
// bin under it.
type BinInspectorModel struct {
	Report *place.Report
	X, Y   int // cursor bin
	Offset int // first visible net in the panel
	Height int // visible net rows

	ws [place.BinDim][place.BinDim]int
}

// NewBinInspectorModel creates an inspector with the cursor on bin (0,0).
func NewBinInspectorModel(rep *place.Report) BinInspectorModel {
	return BinInspectorModel{
		Report: rep,
		Height: 15,
		ws:     rep.Whitespace(),
	}
}

func (m BinInspectorModel) Init() tea.Cmd {
	return nil
}

func (m BinInspectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			m = m.moveTo(m.X, m.Y+1)
		case "down", "j":
			m = m.moveTo(m.X, m.Y-1)
		case "left", "h":
			m = m.moveTo(m.X-1, m.Y)
		case "right", "l":
			m = m.moveTo(m.X+1, m.Y)
		case "pgdown", "J":
			if n := len(m.nets()); m.Offset+m.Height < n {
				m.Offset += m.Height
			}
		case "pgup", "K":
			m.Offset = max(0, m.Offset-m.Height)
		}
	case tea.WindowSizeMsg:
		m.Height = max(5, msg.Height-6)
	}
	return m, nil
}

// moveTo places the cursor on (x, y) if it is on the grid and resets the net
// panel scroll.
func (m BinInspectorModel) moveTo(x, y int) BinInspectorModel {
	if x < 0 || x >= place.BinDim || y < 0 || y >= place.BinDim {
		return m
	}
	m.X, m.Y, m.Offset = x, y, 0
	return m
}

func (m BinInspectorModel) nets() []string {
	b, _ := m.Report.Bin(m.X, m.Y)
	return b.Nets
}

func (m BinInspectorModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Bin Inspector"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("←/→/↑/↓ move  pgup/pgdn scroll nets  q quit"))
	b.WriteString("\n\n")

	grid := m.gridView()
	panel := m.netPanel()
	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, grid, "    ", panel))
	b.WriteString("\n")

	return b.String()
}

// gridView draws the whitespace grid with y=11 on top.
func (m BinInspectorModel) gridView() string {
	var b strings.Builder
	for y := place.BinDim - 1; y >= 0; y-- {
		for x := range place.BinDim {
			cell := fmt.Sprintf("%5d", m.ws[x][y])
			switch {
			case x == m.X && y == m.Y:
				cell = listSelectedStyle.Reverse(true).Render(cell)
			case m.ws[x][y] < 0:
				cell = styleOverfull.Render(cell)
			case m.ws[x][y] == m.Report.Capacity:
				cell = listDimStyle.Render(cell)
			default:
				cell = listNormalStyle.Render(cell)
			}
			b.WriteString(cell)
		}
		if y > 0 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

// netPanel lists the visible slice of the cursor bin's nets.
func (m BinInspectorModel) netPanel() string {
	nets := m.nets()

	var b strings.Builder
	b.WriteString(listSelectedStyle.Render(fmt.Sprintf("bin (%d,%d)", m.X, m.Y)))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("whitespace " + strconv.Itoa(m.ws[m.X][m.Y])))
	b.WriteString("\n\n")

	if len(nets) == 0 {
		b.WriteString(listDimStyle.Render("(empty)"))
		return b.String()
	}

	end := min(m.Offset+m.Height, len(nets))
	for _, name := range nets[m.Offset:end] {
		b.WriteString(listNormalStyle.Render(name))
		b.WriteString("\n")
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("[%d-%d/%d]", m.Offset+1, end, len(nets))))
	return b.String()
}
