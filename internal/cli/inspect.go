package cli

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/matzehuels/radialtree/pkg/graph"
)

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listDimStyle      = lipgloss.NewStyle().Foreground(colorDim)
)

// inspectCommand creates the inspect command for browsing a computed layout.
func (c *CLI) inspectCommand() *cobra.Command {
	var plain bool

	cmd := &cobra.Command{
		Use:   "inspect [layout.json|layout.yaml]",
		Short: "Browse node placements and routed edges of a layout",
		Long: `Browse node placements and routed edges of a layout.

Opens an interactive view listing every node with its slot, ring and frame
position. The selected node's edges are shown below the table. Unplaced
nodes are dimmed. Press i to toggle the issue list.

With --plain the node table is printed once without interaction.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := graph.ReadLayoutFile(args[0])
			if err != nil {
				return fmt.Errorf("load layout %s: %w", args[0], err)
			}
			m := newInspectModel(l)
			if plain {
				m.Height = len(l.Nodes)
				fmt.Println(m.View())
				return nil
			}
			_, err = tea.NewProgram(m, tea.WithContext(cmd.Context())).Run()
			return err
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print the node table without interaction")
	return cmd
}

// =============================================================================
// inspectModel - Interactive layout browser
// =============================================================================

// inspectModel is the bubbletea model of the inspect view.
type inspectModel struct {
	Layout     graph.Layout
	Cursor     int
	Offset     int
	Height     int
	ShowIssues bool

	ring map[int]int // slot index -> ring
}

func newInspectModel(l graph.Layout) inspectModel {
	ring := make(map[int]int, len(l.Slots))
	for _, s := range l.Slots {
		ring[s.Index] = s.Ring
	}
	return inspectModel{Layout: l, Height: 15, ring: ring}
}

func (m inspectModel) Init() tea.Cmd {
	return nil
}

func (m inspectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
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
			if m.Cursor < len(m.Layout.Nodes)-1 {
				m.Cursor++
				if m.Cursor >= m.Offset+m.Height {
					m.Offset = m.Cursor - m.Height + 1
				}
			}
		case "i":
			m.ShowIssues = !m.ShowIssues
		}
	case tea.WindowSizeMsg:
		m.Height = max(msg.Height-12, 5)
	}
	return m, nil
}

func (m inspectModel) View() string {
	var b strings.Builder
	l := m.Layout

	b.WriteString(StyleTitle.Render("Layout"))
	if l.ID != "" {
		b.WriteString(" " + listDimStyle.Render(l.ID))
	}
	b.WriteString("\n")
	placed := 0
	for _, n := range l.Nodes {
		if n.Placed() {
			placed++
		}
	}
	b.WriteString(listDimStyle.Render(fmt.Sprintf("%d/%d placed · %d paths · %d slots · ↑/↓ navigate  i issues  q quit",
		placed, len(l.Nodes), len(l.Paths), l.Geometry.Capacity)))
	b.WriteString("\n\n")

	if m.ShowIssues {
		b.WriteString(m.issuesView())
		return b.String()
	}

	b.WriteString(m.nodeTable())
	b.WriteString("\n")
	if m.Cursor < len(l.Nodes) {
		b.WriteString(m.edgesView(l.Nodes[m.Cursor]))
	}
	return b.String()
}

func (m inspectModel) nodeTable() string {
	nodes := m.Layout.Nodes
	end := min(m.Offset+m.Height, len(nodes))

	rows := [][]string{}
	for i := m.Offset; i < end; i++ {
		n := nodes[i]
		cursor := "  "
		if i == m.Cursor {
			cursor = "▸ "
		}
		slot, ring, pos := "—", "—", "—"
		if n.Placed() {
			slot = fmt.Sprint(*n.Slot)
			ring = fmt.Sprint(m.ring[*n.Slot])
			pos = fmt.Sprintf("%.1f, %.1f", *n.X, *n.Y)
		}
		rows = append(rows, []string{cursor, n.DisplayLabel(), fmt.Sprintf("%g", n.R), fmt.Sprintf("%g", n.A), ring, slot, pos})
	}

	headerStyle := lipgloss.NewStyle().Foreground(colorGray).Bold(true)
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(colorDim)).
		Headers("", "Node", "r", "a", "Ring", "Slot", "x, y").
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == -1 {
				return headerStyle
			}
			idx := m.Offset + row
			if idx >= len(nodes) {
				return lipgloss.NewStyle()
			}
			switch {
			case idx == m.Cursor:
				return listSelectedStyle
			case !nodes[idx].Placed():
				return listDimStyle
			}
			return StyleValue
		})
	return t.Render() + "\n" + listDimStyle.Render(fmt.Sprintf("  [%d/%d]", m.Cursor+1, len(nodes)))
}

// edgesView lists the paths touching n.
func (m inspectModel) edgesView(n graph.Node) string {
	var b strings.Builder
	b.WriteString(StyleHighlight.Render(n.DisplayLabel()) + "\n")
	count := 0
	for _, p := range m.Layout.Paths {
		if p.From != n.ID && p.To != n.ID {
			continue
		}
		count++
		var flags []string
		if p.Wraps {
			flags = append(flags, "wraps")
		}
		if p.Degenerate {
			flags = append(flags, "tie")
		}
		line := fmt.Sprintf("  %s %s %s  %d waypoints", p.From, iconArrow, p.To, len(p.Waypoints))
		if len(flags) > 0 {
			line += "  " + StyleWarning.Render(strings.Join(flags, ","))
		}
		b.WriteString(line + "\n")
	}
	if count == 0 {
		b.WriteString(listDimStyle.Render("  no edges") + "\n")
	}
	return b.String()
}

func (m inspectModel) issuesView() string {
	if len(m.Layout.Issues) == 0 {
		return StyleSuccess.Render(iconSuccess+" no issues") + "\n"
	}
	var b strings.Builder
	for _, is := range m.Layout.Issues {
		b.WriteString(styleIconWarning.Render(iconWarning) + " " + issueLine(is) + "\n")
	}
	return b.String()
}
