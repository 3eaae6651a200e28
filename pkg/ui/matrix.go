package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// matrixEntry is a task in the matrix cursor order; an empty quadrant means unassigned
type matrixEntry struct {
	task     tasks.Task
	quadrant tasks.Quadrant
}

// openTasks are the tasks the matrix can place
func (m Model) openTasks() []tasks.Task {
	var out []tasks.Task
	for _, t := range m.allTasks {
		if t.Status != tasks.StatusCompleted {
			out = append(out, t)
		}
	}
	return out
}

// matrixEntries flattens the unassigned list and the four quadrants into cursor order
func (m Model) matrixEntries() []matrixEntry {
	open := m.openTasks()
	var entries []matrixEntry
	for _, t := range m.matrix.Unassigned(open) {
		entries = append(entries, matrixEntry{task: t})
	}
	for _, q := range tasks.Quadrants {
		for _, t := range m.matrix.Tasks(q, open) {
			entries = append(entries, matrixEntry{task: t, quadrant: q})
		}
	}
	return entries
}

func (m *Model) saveMatrix() {
	if m.state == nil {
		return
	}
	if err := tasks.SaveMatrix(m.state, m.matrix); err != nil {
		utils.LogError("save matrix", err)
	}
}

func (m *Model) handleMatrixKey(msg tea.KeyMsg) tea.Cmd {
	entries := m.matrixEntries()

	assign := func(q tasks.Quadrant) {
		if m.cursor >= len(entries) {
			return
		}
		e := entries[m.cursor]
		m.matrix.Assign(e.task.ID, q)
		m.saveMatrix()
		m.notice = fmt.Sprintf("%q moved to %s", e.task.Title, q.Title())
	}

	switch {
	case key.Matches(msg, m.keyMap.ItemDown), key.Matches(msg, m.keyMap.CalendarDown):
		m.cursor++
		m.clampCursor(len(entries))

	case key.Matches(msg, m.keyMap.ItemUp), key.Matches(msg, m.keyMap.CalendarUp):
		m.cursor--
		m.clampCursor(len(entries))

	case key.Matches(msg, m.keyMap.AssignDoFirst):
		assign(tasks.QuadrantDoFirst)
	case key.Matches(msg, m.keyMap.AssignSchedule):
		assign(tasks.QuadrantSchedule)
	case key.Matches(msg, m.keyMap.AssignDelegate):
		assign(tasks.QuadrantDelegate)
	case key.Matches(msg, m.keyMap.AssignEliminate):
		assign(tasks.QuadrantEliminate)

	case key.Matches(msg, m.keyMap.Unassign):
		if m.cursor < len(entries) && entries[m.cursor].quadrant != "" {
			e := entries[m.cursor]
			m.matrix.Remove(e.task.ID)
			m.saveMatrix()
			m.notice = fmt.Sprintf("%q removed from the matrix", e.task.Title)
		}

	case key.Matches(msg, m.keyMap.CycleStatus):
		if m.cursor < len(entries) {
			t := entries[m.cursor].task
			return m.setTaskStatus(t, tasks.NextStatus(t.Status))
		}
	}
	return nil
}

// renderMatrix draws the unassigned list above a two by two grid
func (m Model) renderMatrix() string {
	var sb strings.Builder
	p := m.palette()

	entries := m.matrixEntries()
	cellWidth := 36
	if m.width > 0 {
		cellWidth = max((m.width-6)/2, 24)
	}

	line := func(i int, e matrixEntry) string {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		return prefix + truncate(e.task.Title, cellWidth-4)
	}

	var unassigned []string
	cells := make(map[tasks.Quadrant][]string)
	for i, e := range entries {
		if e.quadrant == "" {
			unassigned = append(unassigned, line(i, e))
		} else {
			cells[e.quadrant] = append(cells[e.quadrant], line(i, e))
		}
	}

	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(fmt.Sprintf("Unassigned (%s)", plural(len(unassigned), "task"))))
	sb.WriteString("\n")
	for _, l := range unassigned {
		sb.WriteString(l + "\n")
	}
	sb.WriteString("\n")

	colors := map[tasks.Quadrant]string{
		tasks.QuadrantDoFirst:   p.HighColor,
		tasks.QuadrantSchedule:  p.AccentColor,
		tasks.QuadrantDelegate:  p.MediumColor,
		tasks.QuadrantEliminate: p.MutedTextColor,
	}
	box := func(q tasks.Quadrant, n int) string {
		title := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colors[q])).
			Render(fmt.Sprintf("%d %s", n, q.Title()))
		body := strings.Join(cells[q], "\n")
		if body == "" {
			body = lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Render("  empty")
		}
		return lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(colors[q])).
			Width(cellWidth).
			Render(title + "\n" + body)
	}

	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, box(tasks.QuadrantDoFirst, 1), box(tasks.QuadrantSchedule, 2)))
	sb.WriteString("\n")
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, box(tasks.QuadrantDelegate, 3), box(tasks.QuadrantEliminate, 4)))
	sb.WriteString("\n")

	return sb.String()
}
