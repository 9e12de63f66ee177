package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/componentry/regtool/pkg/registry"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// =============================================================================
// ComponentListModel - Interactive component selection
// =============================================================================

// ComponentListModel is the bubbletea model for interactive component
// selection.
type ComponentListModel struct {
	Components []registry.Component
	Cursor     int
	Selected   *registry.Component
}

// NewComponentListModel creates a new component list model.
func NewComponentListModel(components []registry.Component) ComponentListModel {
	return ComponentListModel{Components: components}
}

func (m ComponentListModel) Init() tea.Cmd {
	return nil
}

func (m ComponentListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
			}
		case "down", "j":
			if m.Cursor < len(m.Components)-1 {
				m.Cursor++
			}
		case "enter":
			m.Selected = &m.Components[m.Cursor]
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m ComponentListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Select Component"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ select  q quit"))
	b.WriteString("\n\n")

	for i, comp := range m.Components {
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}

		desc := comp.Description
		if desc == "" {
			desc = "—"
		}

		line := fmt.Sprintf("%s%-20s  %s", cursor, comp.Name, listDimStyle.Render(desc))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(m.Components))))

	return b.String()
}

// =============================================================================
// Helpers
// =============================================================================

// pickComponent runs the interactive picker over the submissions in dir
// and returns the selected component name, or "" when the user cancels.
func pickComponent(dir string) (string, error) {
	components, err := registry.List(dir)
	if err != nil {
		return "", err
	}
	if len(components) == 0 {
		return "", fmt.Errorf("no components in %s", dir)
	}

	final, err := tea.NewProgram(NewComponentListModel(components)).Run()
	if err != nil {
		return "", fmt.Errorf("run picker: %w", err)
	}

	model, ok := final.(ComponentListModel)
	if !ok || model.Selected == nil {
		return "", nil
	}
	return model.Selected.Name, nil
}
