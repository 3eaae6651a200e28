package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

const recentActivityLimit = 5

func (m Model) pendingReminders() []api.Reminder {
	return api.PendingReminders(m.reminders)
}

func (m *Model) handleDashboardKey(msg tea.KeyMsg) tea.Cmd {
	pending := m.pendingReminders()

	switch {
	case key.Matches(msg, m.keyMap.ItemDown), key.Matches(msg, m.keyMap.CalendarDown):
		m.cursor++
		m.clampCursor(len(pending))

	case key.Matches(msg, m.keyMap.ItemUp), key.Matches(msg, m.keyMap.CalendarUp):
		m.cursor--
		m.clampCursor(len(pending))

	case key.Matches(msg, m.keyMap.NewItem):
		m.openPrompt(promptNewReminder, "Title @ YYYY-MM-DD HH:MM (defaults to tomorrow 09:00)", "")

	case key.Matches(msg, m.keyMap.CycleStatus):
		if m.cursor < len(pending) {
			return m.toggleReminder(pending[m.cursor])
		}

	case key.Matches(msg, m.keyMap.DeleteTask):
		if m.cursor < len(pending) {
			r := pending[m.cursor]
			m.confirmDelete(pendingDelete{kind: deleteReminder, id: r.ID, title: r.Title})
		}
	}
	return nil
}

// parseReminderInput reads "Title", "Title @ YYYY-MM-DD" or "Title @ YYYY-MM-DD HH:MM"
func parseReminderInput(input string, now time.Time) (api.Reminder, error) {
	r := api.NewReminder(now)
	title, when := input, ""
	if i := strings.LastIndex(input, "@"); i >= 0 {
		title, when = input[:i], strings.TrimSpace(input[i+1:])
	}
	r.Title = strings.TrimSpace(title)

	if fields := strings.Fields(when); len(fields) > 0 {
		date, err := time.ParseInLocation(tasks.DateLayout, fields[0], time.Local)
		if err != nil {
			return r, &tasks.FieldError{Field: "date", Message: "Reminder date must be in YYYY-MM-DD format."}
		}
		r.Date = date
		if len(fields) > 1 {
			if !tasks.ValidClock(fields[1]) {
				return r, &tasks.FieldError{Field: "time", Message: "Reminder time must be HH:MM."}
			}
			r.Time = fields[1]
		}
	}
	return r, nil
}

// renderDashboard shows the headline numbers, this week's completions, recent activity and reminders
func (m Model) renderDashboard() string {
	var sb strings.Builder
	p := m.palette()
	now := m.now()

	heading := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(p.AccentColor))
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor))
	card := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(p.BorderColor)).
		Padding(0, 1).
		Width(14).
		Align(lipgloss.Center)

	s := tasks.Summarize(m.allTasks, m.completed, now)
	stat := func(label string, n int, color string) string {
		return card.Render(lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(color)).Render(fmt.Sprint(n)) + "\n" + label)
	}
	sb.WriteString(lipgloss.JoinHorizontal(lipgloss.Top,
		stat("Total", s.Total, p.NormalTextColor),
		stat("Completed", s.Completed, p.CompletedColor),
		stat("Ongoing", s.Ongoing, p.OngoingColor),
		stat("Upcoming", s.Upcoming, p.AccentColor),
		stat("Overdue", s.Overdue, p.ErrorColor),
	))
	sb.WriteString("\n\n")

	sb.WriteString(heading.Render("Completed this week"))
	sb.WriteString("\n")
	weekly := tasks.WeeklyCompleted(m.completed, now)
	peak := 1
	for _, n := range weekly {
		peak = max(peak, n)
	}
	bar := lipgloss.NewStyle().Foreground(lipgloss.Color(p.CompletedColor))
	for i, n := range weekly {
		width := n * 20 / peak
		sb.WriteString(fmt.Sprintf("%s %s %d\n", tasks.WeekdayLabels[i], bar.Render(strings.Repeat("█", width)), n))
	}
	sb.WriteString("\n")

	sb.WriteString(heading.Render("Recent activity"))
	sb.WriteString("\n")
	recent := tasks.RecentCompleted(m.completed, recentActivityLimit)
	if len(recent) == 0 {
		sb.WriteString(muted.Render("No completed tasks yet"))
		sb.WriteString("\n")
	}
	for _, t := range recent {
		sb.WriteString(fmt.Sprintf("✓ %s %s\n", t.Title, muted.Render(tasks.RelativeTime(t.DueDate, now))))
	}
	sb.WriteString("\n")

	pending := m.pendingReminders()
	sb.WriteString(heading.Render(fmt.Sprintf("Reminders (%d)", len(pending))))
	sb.WriteString("\n")
	if len(pending) == 0 {
		sb.WriteString(muted.Render("No reminders. Press n to add one."))
		sb.WriteString("\n")
	}
	for i, r := range pending {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		line := fmt.Sprintf("%s%s  %s %s", prefix, r.Title, r.Date.Format("Jan 02"), tasks.To12Hour(r.Time))
		if r.Date.AddDate(0, 0, 1).Before(now) {
			line = lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor)).Render(line)
		}
		sb.WriteString(line)
		if r.Description != "" {
			sb.WriteString("  " + muted.Render(truncate(r.Description, 40)))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
