package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// List styles
var (
	listDimStyle = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// EntityListModel - Interactive entity selection
// =============================================================================

// entityRow is one selectable row in the entity picker.
type entityRow struct {
	Name      string
	NodeType  string
	Rarity    string
	Relations int
}

// EntityListModel is the bubbletea model for interactive entity selection.
type EntityListModel struct {
	Entities []entityRow
	Cursor   int
	Selected string
	Height   int
	Offset   int
}

// NewEntityListModel creates a new entity list model.
func NewEntityListModel(entities []entityRow) EntityListModel {
	return EntityListModel{
		Entities: entities,
		Cursor:   0,
		Height:   15,
		Offset:   0,
	}
}

func (m EntityListModel) Init() tea.Cmd {
	return nil
}

func (m EntityListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
		case "down", "j":
			if m.Cursor < len(m.Entities)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "enter":
			if len(m.Entities) > 0 {
				m.Selected = m.Entities[m.Cursor].Name
			}
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m EntityListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Entity"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	end := m.Offset + m.Height
	if end > len(m.Entities) {
		end = len(m.Entities)
	}

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		e := m.Entities[i]

		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		rarity := e.Rarity
		if rarity == "" {
			rarity = "—"
		}

		rows = append(rows, []string{cursor, e.Name, e.NodeType, rarity, fmt.Sprintf("%d", e.Relations)})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)

	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Entity", "Type", "Rarity", "Relations").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}

			actualIdx := m.Offset + row
			if actualIdx >= len(m.Entities) {
				return lipgloss.NewStyle()
			}
			e := m.Entities[actualIdx]

			base := lipgloss.NewStyle()
			if actualIdx == m.Cursor {
				return base.Foreground(colorGreen).Bold(true)
			}
			if e.Relations == 0 {
				return base.Foreground(colorDim)
			}
			return base.Foreground(colorWhite)
		})

	b.WriteString(t.Render())
	b.WriteString("\n\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Entities))))

	return b.String()
}
