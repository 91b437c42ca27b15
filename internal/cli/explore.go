package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/matzehuels/taxocheck/pkg/code"
	"github.com/matzehuels/taxocheck/pkg/dag"
	"github.com/matzehuels/taxocheck/pkg/render"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// exploreCommand creates the interactive explore command.
func (c *CLI) exploreCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "explore <dir>",
		Short: "Browse codes and their subtrees interactively",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, _, err := c.loadGraph(cmd, args[0])
			if err != nil {
				return err
			}
			if g.NodeCount() == 0 {
				printWarning("No codes to explore")
				return nil
			}
			p := tea.NewProgram(NewCodeListModel(g), tea.WithAltScreen(), tea.WithContext(cmd.Context()))
			_, err = p.Run()
			return err
		},
	}
}

// CodeListModel is the bubbletea model for browsing a composition graph.
// Enter toggles the subtree outline of the code under the cursor.
type CodeListModel struct {
	Graph   *dag.Graph
	Codes   []code.Code
	Cursor  int
	Offset  int
	Height  int
	Outline string
}

// NewCodeListModel creates a list over every node of g in sorted order.
func NewCodeListModel(g *dag.Graph) CodeListModel {
	return CodeListModel{
		Graph:  g,
		Codes:  g.Nodes(),
		Height: 15,
	}
}

func (m CodeListModel) Init() tea.Cmd {
	return nil
}

func (m CodeListModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.Outline != "" && msg.String() == "esc" {
				m.Outline = ""
				return m, nil
			}
			return m, tea.Quit
		case "up", "k":
			if m.Cursor > 0 {
				m.Cursor--
				if m.Cursor < m.Offset {
					m.Offset = m.Cursor
				}
			}
			m.Outline = ""
		case "down", "j":
			if m.Cursor < len(m.Codes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
			m.Outline = ""
		case "enter":
			if m.Outline != "" {
				m.Outline = ""
				return m, nil
			}
			m.Outline = m.subtree(m.Codes[m.Cursor])
		}
	case tea.WindowSizeMsg:
		m.Height = msg.Height - 6
		if m.Height < 5 {
			m.Height = 5
		}
	}
	return m, nil
}

func (m CodeListModel) subtree(id code.Code) string {
	t, err := dag.Subtree(m.Graph, id)
	if err != nil {
		return StyleError.Render(err.Error())
	}
	var b strings.Builder
	if err := render.Outline(&b, t); err != nil {
		return StyleError.Render(err.Error())
	}
	return b.String()
}

func (m CodeListModel) View() string {
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Taxonomy Codes"))
	b.WriteString("\n")
	b.WriteString(listDimStyle.Render("↑/↓ navigate  ⏎ subtree  q quit"))
	b.WriteString("\n\n")

	end := min(m.Offset+m.Height, len(m.Codes))
	for i := m.Offset; i < end; i++ {
		id := m.Codes[i]
		line := fmt.Sprintf("%-16s %s", code.Format(id),
			listDimStyle.Render(fmt.Sprintf("%d children  %d parents", m.Graph.OutDegree(id), m.Graph.InDegree(id))))
		if i == m.Cursor {
			b.WriteString(listSelectedStyle.Render("▸ " + line))
		} else {
			b.WriteString(listNormalStyle.Render("  " + line))
		}
		b.WriteString("\n")
	}

	if m.Outline != "" {
		b.WriteString("\n")
		b.WriteString(m.Outline)
	}
	return b.String()
}
