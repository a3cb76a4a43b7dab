package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/meshtools/meshcolor/pkg/coloring"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// maxCellPreview bounds how many cell ids a class row shows.
const maxCellPreview = 12

// ClassListModel is the bubbletea model for browsing color classes.
// Each row is one class; the selected row expands to show its cells.
type ClassListModel struct {
	Classes [][]int
	Cursor  int
	Height  int
	Offset  int
}

// NewClassListModel creates a class browser for a coloring.
func NewClassListModel(c *coloring.Coloring) ClassListModel {
	return ClassListModel{
		Classes: c.Classes(),
		Height:  15,
	}
}

func (m ClassListModel) Init() tea.Cmd {
	return nil
}

func (m ClassListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc", "enter":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Classes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 8
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m ClassListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Color Classes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Classes) {
		end = len(m.Classes)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		class := m.Classes[i]
		rows = append(rows, []string{
			cursor,
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", len(class)),
			previewCells(class),
		})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Class", "Cells", "Members").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			if m.Offset+row == m.Cursor {
				return lipgloss.NewStyle().Foreground(colorCyan).Bold(true)
			}
			return lipgloss.NewStyle().Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Classes))))

	return b.String()
}

// previewCells formats a class's cell ids, truncating long classes.
func previewCells(cells []int) string {
	shown := cells
	truncated := false
	if len(shown) > maxCellPreview {
		shown = shown[:maxCellPreview]
		truncated = true
	}
	parts := make([]string, len(shown))
	for i, cell := range shown {
		parts[i] = fmt.Sprintf("%d", cell)
	}
	s := strings.Join(parts, " ")
	if truncated {
		s += fmt.Sprintf(" … +%d", len(cells)-maxCellPreview)
	}
	return s
}

// runInspect opens the interactive class browser.
func (c *CLI) runInspect(col *coloring.Coloring) error {
	p := tea.NewProgram(NewClassListModel(col))
	_, err := p.Run()
	return err
}
