package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/kegliz/qcore/qc/depgraph"
	"github.com/kegliz/qcore/qc/ir"
	"github.com/kegliz/qcore/qc/schedule"
)

// Model is a read-only viewer over one already-scheduled kernel: it
// never mutates the graph or schedule, only renders the cycle each
// gate landed on, one column per cycle and one row per qubit.
type Model struct {
	kernel *ir.Kernel
	graph  *depgraph.Graph
	sched  *schedule.Schedule
	cursor uint64 // currently highlighted cycle
	help   help.Model
	width  int
	height int
}

func newModel(k *ir.Kernel, g *depgraph.Graph, s *schedule.Schedule) Model {
	return Model{kernel: k, graph: g, sched: s, help: help.New()}
}

func (m Model) Init() tea.Cmd { return nil }

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, keys.Left):
			if m.cursor > 0 {
				m.cursor--
			}
		case key.Matches(msg, keys.Right):
			if m.cursor < m.sched.Depth() {
				m.cursor++
			}
		}
	}
	return m, nil
}

func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	depth := int(m.sched.Depth())
	byQubitCycle := make(map[int]map[uint64]string)
	for id := 0; id < m.graph.NumNodes(); id++ {
		n := m.graph.Node(depgraph.NodeID(id))
		if n.Gate == nil {
			continue
		}
		cycle := m.sched.Cycle(depgraph.NodeID(id))
		for _, q := range n.Gate.Qubits {
			if byQubitCycle[q] == nil {
				byQubitCycle[q] = map[uint64]string{}
			}
			byQubitCycle[q][cycle] = n.Gate.Name()
		}
	}

	var header strings.Builder
	header.WriteString(strings.Repeat(" ", labelW))
	for c := 0; c <= depth; c++ {
		style := cycleHeaderStyle
		if uint64(c) == m.cursor {
			style = cursorGateStyle
		}
		header.WriteString(centered(style.Render(fmt.Sprintf("c%d", c)), cellW))
	}

	var rows []string
	rows = append(rows, header.String())
	for q := 0; q < m.kernel.VirtualQubitCount; q++ {
		var row strings.Builder
		row.WriteString(qubitLabelStyle.Render(fmt.Sprintf("q[%d]", q)))
		row.WriteString(strings.Repeat(" ", max(labelW-len(fmt.Sprintf("q[%d]", q)), 0)))
		for c := 0; c <= depth; c++ {
			cell := "·"
			if name, ok := byQubitCycle[q][uint64(c)]; ok {
				cell = name
			}
			style := gateStyle
			if uint64(c) == m.cursor {
				style = cursorGateStyle
			} else if cell == "·" {
				style = dimStyle
			}
			row.WriteString(centered(style.Render(cell), cellW))
		}
		rows = append(rows, row.String())
	}

	body := titleStyle.Render(fmt.Sprintf("kernel %q — depth %d cycles", m.kernel.Name, depth)) + "\n\n" +
		strings.Join(rows, "\n")

	footer := helpStyle.Render(m.help.View(keys))

	return lipgloss.JoinVertical(lipgloss.Left, scheduleStyle.Render(body), footer)
}

func centered(s string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(s)
}

func max(a, b int) int {
	if a > b {
		return a
	}
	return b
}
