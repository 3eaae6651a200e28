package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/tasks"
)

// refreshTable derives the visible tasks and rebuilds the table rows
func (m *Model) refreshTable() {
	m.view.Now = m.now
	derived := m.view.Derive()
	now := m.now()

	groupedTasks := m.GroupTasks(derived)
	items := []tasks.Task{}
	tableRows := []table.Row{}

	for _, group := range groupedTasks {
		// Add group header if grouping is enabled
		if m.groupBy != GroupByNone {
			items = append(items, tasks.Task{})
			tableRows = append(tableRows, table.Row{"", fmt.Sprintf("== %s (%d) ==", group.GroupName, len(group.Tasks)), "", ""})
		}

		for _, item := range group.Tasks {
			items = append(items, item)
			tableRows = append(tableRows, table.Row{
				statusMark(item.Status),
				item.Title,
				string(item.Priority),
				dueLabel(item, now),
			})
		}
	}

	m.items = items
	m.table.SetRows(tableRows)
	if c := m.table.Cursor(); c >= len(tableRows) && len(tableRows) > 0 {
		m.table.SetCursor(len(tableRows) - 1)
	}
}

// selectedTask returns the task under the table cursor, skipping group headers
func (m *Model) selectedTask() (tasks.Task, bool) {
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.items) || m.items[idx].ID == 0 {
		return tasks.Task{}, false
	}
	return m.items[idx], true
}

func statusMark(s tasks.Status) string {
	switch s {
	case tasks.StatusCompleted:
		return "[x] " + string(s)
	case tasks.StatusOngoing:
		return "[~] " + string(s)
	default:
		return "[ ] " + string(s)
	}
}

func dueLabel(t tasks.Task, now time.Time) string {
	if !t.HasDueDate() {
		return tasks.DueBadge(t, now)
	}
	return fmt.Sprintf("%s %s", t.DueDate.Format("Jan 02"), tasks.DueBadge(t, now))
}

// statusColor picks the badge colour of a task status
func (m Model) statusColor(s tasks.Status) lipgloss.Color {
	p := m.palette()
	switch s {
	case tasks.StatusCompleted:
		return lipgloss.Color(p.CompletedColor)
	case tasks.StatusOngoing:
		return lipgloss.Color(p.OngoingColor)
	default:
		return lipgloss.Color(p.IncompleteColor)
	}
}

func (m Model) priorityColor(pr tasks.Priority) lipgloss.Color {
	p := m.palette()
	switch pr {
	case tasks.PriorityHigh:
		return lipgloss.Color(p.HighColor)
	case tasks.PriorityLow:
		return lipgloss.Color(p.LowColor)
	default:
		return lipgloss.Color(p.MediumColor)
	}
}

// taskLine is the one-line rendering used outside the table
func (m Model) taskLine(t tasks.Task) string {
	status := lipgloss.NewStyle().Foreground(m.statusColor(t.Status)).Render(statusMark(t.Status)[:3])
	prio := lipgloss.NewStyle().Foreground(m.priorityColor(t.Priority)).Render(string(t.Priority))
	return fmt.Sprintf("%s %s (%s, %s)", status, t.Title, prio, tasks.DueBadge(t, m.now()))
}

// clampCursor keeps the item cursor inside a list of n entries
func (m *Model) clampCursor(n int) {
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// selectedDate is the calendar day under the cursor
func (m Model) selectedDate() time.Time {
	return time.Date(m.calendarMonth.Year(), m.calendarMonth.Month(), m.calendarSelectedDay, 0, 0, 0, 0, time.Local)
}

func daysIn(month time.Time) int {
	return time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, month.Location()).Day()
}

func truncate(s string, width int) string {
	if width <= 1 || len([]rune(s)) <= width {
		return s
	}
	r := []rune(s)
	return string(r[:width-1]) + "…"
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}
	return fmt.Sprintf("%d %ss", n, strings.TrimSuffix(word, "s"))
}
