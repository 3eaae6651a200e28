package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// agendaItem is one entry under the calendar grid: a task or a local event
type agendaItem struct {
	task  *tasks.Task
	event *tasks.CalendarEvent
}

// agenda lists the selected day's tasks followed by its events
func (m Model) agenda() []agendaItem {
	dayKey := tasks.DayKey(m.selectedDate())
	var items []agendaItem
	for _, t := range tasks.TasksByDay(m.allTasks)[dayKey] {
		t := t
		items = append(items, agendaItem{task: &t})
	}
	for _, e := range tasks.EventsByDay(m.events)[dayKey] {
		e := e
		items = append(items, agendaItem{event: &e})
	}
	return items
}

func (m *Model) handleCalendarKey(msg tea.KeyMsg) tea.Cmd {
	lastDay := daysIn(m.calendarMonth)

	switch {
	case key.Matches(msg, m.keyMap.CalendarLeft):
		if m.calendarSelectedDay > 1 {
			m.calendarSelectedDay--
		} else {
			// Move to previous month and set to last day
			m.calendarMonth = m.calendarMonth.AddDate(0, -1, 0)
			m.calendarSelectedDay = daysIn(m.calendarMonth)
		}
		m.cursor = 0

	case key.Matches(msg, m.keyMap.CalendarRight):
		if m.calendarSelectedDay < lastDay {
			m.calendarSelectedDay++
		} else {
			// Move to next month and set to first day
			m.calendarMonth = m.calendarMonth.AddDate(0, 1, 0)
			m.calendarSelectedDay = 1
		}
		m.cursor = 0

	case key.Matches(msg, m.keyMap.CalendarUp):
		newDay := m.calendarSelectedDay - 7
		if newDay < 1 {
			m.calendarMonth = m.calendarMonth.AddDate(0, -1, 0)
			m.calendarSelectedDay = max(daysIn(m.calendarMonth)+newDay, 1)
		} else {
			m.calendarSelectedDay = newDay
		}
		m.cursor = 0

	case key.Matches(msg, m.keyMap.CalendarDown):
		newDay := m.calendarSelectedDay + 7
		if newDay > lastDay {
			m.calendarMonth = m.calendarMonth.AddDate(0, 1, 0)
			m.calendarSelectedDay = min(newDay-lastDay, daysIn(m.calendarMonth))
		} else {
			m.calendarSelectedDay = newDay
		}
		m.cursor = 0

	case key.Matches(msg, m.keyMap.JumpToToday):
		now := m.now()
		m.calendarMonth = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		m.calendarSelectedDay = now.Day()
		m.cursor = 0

	case key.Matches(msg, m.keyMap.ItemDown):
		m.cursor++
		m.clampCursor(len(m.agenda()))

	case key.Matches(msg, m.keyMap.ItemUp):
		m.cursor--
		m.clampCursor(len(m.agenda()))

	case key.Matches(msg, m.keyMap.MoveTask):
		if item, ok := m.agendaAt(m.cursor); ok && item.task != nil {
			t := *item.task
			m.moving = &t
			m.notice = fmt.Sprintf("Moving %q: pick a day and press enter", t.Title)
		}

	case key.Matches(msg, m.keyMap.CalendarSelect):
		if m.moving != nil {
			t, day := *m.moving, m.selectedDate()
			m.moving = nil
			if sameDay(t.DueDate, day) {
				m.notice = ""
				return nil
			}
			utils.Log("Moving task %d to %s", t.ID, tasks.DayKey(day))
			return m.moveTask(t, day)
		}

	case msg.String() == "esc":
		if m.moving != nil {
			m.moving = nil
			m.notice = ""
		}

	case key.Matches(msg, m.keyMap.NewItem):
		m.openPrompt(promptNewEvent,
			fmt.Sprintf("Event on %s, e.g. Standup @ 09:30", m.selectedDate().Format("Jan 2")), "")

	case key.Matches(msg, m.keyMap.CycleStatus):
		if item, ok := m.agendaAt(m.cursor); ok && item.task != nil {
			return m.setTaskStatus(*item.task, tasks.NextStatus(item.task.Status))
		}

	case key.Matches(msg, m.keyMap.DeleteTask):
		if item, ok := m.agendaAt(m.cursor); ok {
			if item.event != nil {
				m.confirmDelete(pendingDelete{kind: deleteEvent, eventID: item.event.ID, title: item.event.Title})
			} else {
				m.confirmDelete(pendingDelete{kind: deleteTask, id: item.task.ID, title: item.task.Title})
			}
		}
	}
	return nil
}

func (m Model) agendaAt(i int) (agendaItem, bool) {
	items := m.agenda()
	if i < 0 || i >= len(items) {
		return agendaItem{}, false
	}
	return items[i], true
}

// addEvent parses "Title" or "Title @ HH:MM" and saves it on the selected day
func (m *Model) addEvent(input string) error {
	title, clock := input, "09:00"
	if i := strings.LastIndex(input, "@"); i >= 0 {
		title, clock = input[:i], strings.TrimSpace(input[i+1:])
		if !tasks.ValidClock(clock) {
			return &tasks.FieldError{Field: "time", Message: "Event time must be HH:MM."}
		}
	}

	var hour, minute int
	fmt.Sscanf(clock, "%d:%d", &hour, &minute)
	day := m.selectedDate()
	start := time.Date(day.Year(), day.Month(), day.Day(), hour, minute, 0, 0, time.Local)

	event, err := tasks.NewCalendarEvent(title, start, time.Hour)
	if err != nil {
		return err
	}
	events := append(append([]tasks.CalendarEvent(nil), m.events...), event)
	if m.state != nil {
		if err := tasks.SaveEvents(m.state, events); err != nil {
			return err
		}
	}
	m.events = events
	m.notice = "Event added"
	return nil
}

func (m *Model) removeEvent(id string) {
	events := tasks.RemoveEvent(m.events, id)
	if m.state != nil {
		if err := tasks.SaveEvents(m.state, events); err != nil {
			m.showError(err, "Failed to delete event.")
			return
		}
	}
	m.events = events
	m.notice = "Event deleted"
	m.clampCursor(len(m.agenda()))
}

// renderCalendar renders the month grid and the selected day's agenda
func (m Model) renderCalendar() string {
	var sb strings.Builder
	p := m.palette()

	firstDay := m.calendarMonth
	firstWeekday := int(firstDay.Weekday())
	daysInMonth := daysIn(firstDay)

	monthYearHeader := lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(p.SelectedTextColor)).
		Background(lipgloss.Color(p.AccentColor)).
		Padding(0, 1).
		Render(" " + firstDay.Format("January 2006") + " ")
	sb.WriteString(monthYearHeader)
	sb.WriteString("\n\n")

	weekdays := []string{"Sun", "Mon", "Tue", "Wed", "Thu", "Fri", "Sat"}
	weekdayRow := ""
	for _, day := range weekdays {
		weekdayRow += fmt.Sprintf("%-5s", day)
	}
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(weekdayRow))
	sb.WriteString("\n")

	taskDays := tasks.TasksByDay(m.allTasks)
	eventDays := tasks.EventsByDay(m.events)
	today := m.now()

	currentDay := 1
	for week := 0; week < 6 && currentDay <= daysInMonth; week++ {
		row := ""
		for weekday := 0; weekday < 7; weekday++ {
			if (week == 0 && weekday < firstWeekday) || currentDay > daysInMonth {
				row += "     "
				continue
			}

			date := time.Date(firstDay.Year(), firstDay.Month(), currentDay, 0, 0, 0, 0, time.Local)
			dayKey := tasks.DayKey(date)
			count := len(taskDays[dayKey]) + len(eventDays[dayKey])

			dayStyle := lipgloss.NewStyle()
			switch {
			case currentDay == m.calendarSelectedDay:
				dayStyle = dayStyle.Background(lipgloss.Color(p.AccentColor)).
					Foreground(lipgloss.Color(p.SelectedTextColor)).Bold(true)
			case sameDay(date, today):
				dayStyle = dayStyle.Background(lipgloss.Color(p.SelectedBgColor)).
					Foreground(lipgloss.Color(p.SelectedTextColor))
			case count > 0:
				dayStyle = dayStyle.Foreground(lipgloss.Color(p.AccentColor)).Bold(true)
			}

			cell := fmt.Sprintf("%-2d", currentDay)
			if count > 0 {
				cell += "•"
			}
			row += dayStyle.Render(fmt.Sprintf("%-4s", cell)) + " "
			currentDay++
		}
		sb.WriteString(row)
		sb.WriteString("\n")
	}

	sb.WriteString("\n")
	sb.WriteString(lipgloss.NewStyle().Bold(true).Render(m.selectedDate().Format("Monday, January 2")))
	sb.WriteString("\n")

	items := m.agenda()
	if len(items) == 0 {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Render("Nothing scheduled"))
		sb.WriteString("\n")
	}
	for i, item := range items {
		prefix := "  "
		if i == m.cursor {
			prefix = "> "
		}
		if item.task != nil {
			sb.WriteString(prefix + tasks.To12Hour(item.task.DueTime) + "  " + m.taskLine(*item.task))
		} else {
			e := item.event
			sb.WriteString(fmt.Sprintf("%s%s  %s %s", prefix,
				e.Start.In(time.Local).Format("03:04 PM"),
				lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentColor)).Render("◆"),
				e.Title))
		}
		sb.WriteString("\n")
	}

	return sb.String()
}
