package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

func (m Model) selectedHabit() (api.Habit, bool) {
	if m.cursor < 0 || m.cursor >= len(m.habits) {
		return api.Habit{}, false
	}
	return m.habits[m.cursor], true
}

func (m *Model) handleHabitsKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keyMap.ItemDown), key.Matches(msg, m.keyMap.CalendarDown):
		m.cursor++
		m.clampCursor(len(m.habits))

	case key.Matches(msg, m.keyMap.ItemUp), key.Matches(msg, m.keyMap.CalendarUp):
		m.cursor--
		m.clampCursor(len(m.habits))

	case key.Matches(msg, m.keyMap.NewItem), key.Matches(msg, m.keyMap.AddTask):
		m.openPrompt(promptNewHabit, "New habit", "")

	case key.Matches(msg, m.keyMap.EditTask):
		if h, ok := m.selectedHabit(); ok {
			m.openPrompt(promptRenameHabit, "Habit", h.Title)
		}

	case key.Matches(msg, m.keyMap.CycleStatus):
		if h, ok := m.selectedHabit(); ok {
			return m.toggleHabit(h)
		}

	case key.Matches(msg, m.keyMap.DeleteTask):
		if h, ok := m.selectedHabit(); ok {
			m.confirmDelete(pendingDelete{kind: deleteHabit, id: h.ID, title: h.Title})
		}
	}
	return nil
}

// renderHabits shows today's habits with the daily progress bar
func (m Model) renderHabits() string {
	var sb strings.Builder
	p := m.palette()

	done := 0
	for _, h := range m.habits {
		if h.Completed() {
			done++
		}
	}
	pct, label := tasks.HabitProgress(len(m.habits), done)

	const barWidth = 30
	filled := pct * barWidth / 100
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.SuccessColor)).Render(strings.Repeat("█", filled)))
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Render(strings.Repeat("░", barWidth-filled)))
	sb.WriteString(fmt.Sprintf(" %d%% %s (%d/%d)\n\n", pct, label, done, len(m.habits)))

	if len(m.habits) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Render("No habits for today. Press n to add one."))
		sb.WriteString("\n")
	}

	for i, h := range m.habits {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		mark := "[ ]"
		style := lipgloss.NewStyle().Foreground(lipgloss.Color(p.NormalTextColor))
		if h.Completed() {
			mark = "[x]"
			style = lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Strikethrough(true)
		}
		sb.WriteString(prefix + mark + " " + style.Render(h.Title) + "\n")
	}

	return sb.String()
}
