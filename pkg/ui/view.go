package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"tickit/pkg/tasks"
)

// View renders the UI based on the current mode
func (m Model) View() string {
	var sb strings.Builder
	p := m.palette()

	banner := func(text, bg string) string {
		return lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color(p.SelectedTextColor)).
			Background(lipgloss.Color(bg)).
			Padding(0, 1).
			Render(text)
	}

	switch m.mode {
	case NormalMode:
		sb.WriteString(banner(" TickIT ", p.AccentColor))
		sb.WriteString(" ")
		sb.WriteString(m.renderTabs())
		sb.WriteString("\n\n")

		switch m.screen {
		case TasksScreen:
			sb.WriteString(m.renderTasks())
		case CalendarScreen:
			sb.WriteString(m.renderCalendar())
		case DashboardScreen:
			sb.WriteString(m.renderDashboard())
		case HabitsScreen:
			sb.WriteString(m.renderHabits())
		case MatrixScreen:
			sb.WriteString(m.renderMatrix())
		}

	case AddMode:
		sb.WriteString(banner(" Add New Task ", p.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case EditMode:
		sb.WriteString(banner(" Edit Task ", p.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.renderForm())

	case DeleteConfirmMode:
		sb.WriteString(banner(" Delete ", p.ErrorColor))
		sb.WriteString("\n\n")
		sb.WriteString(fmt.Sprintf("Are you sure you want to delete %q?\n\n", m.pending.title))
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render("Press Y to confirm, N to cancel"))

	case SearchMode:
		sb.WriteString(banner(" Search Tasks ", p.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString("Enter search term to find tasks:")
		sb.WriteString("\n\n")
		sb.WriteString(m.searchInput.View())

	case PromptMode:
		titles := map[promptKind]string{
			promptNewHabit:    " Add Habit ",
			promptRenameHabit: " Edit Habit ",
			promptNewReminder: " Add Reminder ",
			promptNewEvent:    " Add Event ",
		}
		sb.WriteString(banner(titles[m.prompt], p.AccentColor))
		sb.WriteString("\n\n")
		sb.WriteString(m.promptInput.View())
		if m.formErr != "" {
			sb.WriteString("\n\n")
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor)).Render(m.formErr))
		}

	case HelpViewMode:
		sb.WriteString(m.renderHelp())
	}

	sb.WriteString("\n")
	sb.WriteString(m.statusLine())
	sb.WriteString("\n")
	sb.WriteString(m.helpBar())

	return sb.String()
}

func (m Model) renderTabs() string {
	p := m.palette()
	var tabs []string
	for i, title := range screenTitles {
		style := lipgloss.NewStyle().Padding(0, 1).Foreground(lipgloss.Color(p.MutedTextColor))
		if Screen(i) == m.screen {
			style = style.Foreground(lipgloss.Color(p.AccentColor)).Bold(true).Underline(true)
		}
		tabs = append(tabs, style.Render(title))
	}
	return strings.Join(tabs, "")
}

func (m Model) renderTasks() string {
	var sb strings.Builder
	p := m.palette()

	sb.WriteString(m.table.View())
	sb.WriteString("\n")

	// Per-status counts of the fetched collection
	counts := m.view.CountByStatus()
	var parts []string
	for _, s := range tasks.Statuses {
		if n, ok := counts[s]; ok {
			parts = append(parts, lipgloss.NewStyle().Foreground(m.statusColor(s)).Render(fmt.Sprintf("%s %d", s, n)))
		}
	}

	viewInfo := fmt.Sprintf("Showing %s tasks", m.view.Filter)
	if m.view.Query != "" {
		viewInfo += fmt.Sprintf(" (search filter: %s)", m.view.Query)
	}
	if m.sortBy != SortNone || m.groupBy != GroupByNone {
		orderStr := "asc"
		if m.sortOrder == SortDesc {
			orderStr = "desc"
		}
		viewInfo += fmt.Sprintf(" | sorted by %s (%s)", m.sortBy, orderStr)
		if m.groupBy != GroupByNone {
			viewInfo += fmt.Sprintf(", grouped by %s", m.groupBy)
		}
	}
	sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.NormalTextColor)).Render(viewInfo))
	if len(parts) > 0 {
		sb.WriteString("  " + strings.Join(parts, "  "))
	}
	sb.WriteString("\n")

	if t, ok := m.selectedTask(); ok && t.Description != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.MutedTextColor)).Render(truncate(t.Description, 80)))
		sb.WriteString("\n")
	}

	return sb.String()
}

// statusLine shows the spinner while requests are in flight, then the last notice or error
func (m Model) statusLine() string {
	p := m.palette()
	var parts []string
	if m.loading > 0 {
		parts = append(parts, m.spinner.View()+" Loading...")
	}
	switch {
	case m.err != nil:
		text := m.err.Error()
		if m.sessionExpired {
			text += " Run tickit -login to sign in."
		}
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor)).Render(text))
	case m.notice != "":
		parts = append(parts, lipgloss.NewStyle().Foreground(lipgloss.Color(p.SuccessColor)).Render(m.notice))
	}
	return strings.Join(parts, "  ")
}

// helpBar renders a sleek status bar with available actions
func (m Model) helpBar() string {
	var actions []string
	p := m.palette()

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.NormalTextColor))
	separatorStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.BorderColor))

	separator := separatorStyle.Render(" • ")

	addAction := func(k, desc string) {
		actions = append(actions, fmt.Sprintf("%s %s", keyStyle.Render(k), descStyle.Render(desc)))
	}
	addBinding := func(b key.Binding, desc string) {
		addAction(b.Help().Key, desc)
	}

	switch m.mode {
	case NormalMode:
		switch m.screen {
		case TasksScreen:
			addBinding(m.keyMap.AddTask, "add")
			addBinding(m.keyMap.EditTask, "edit")
			addBinding(m.keyMap.DeleteTask, "del")
			addBinding(m.keyMap.CycleStatus, "status")
			addBinding(m.keyMap.CycleFilter, "filter")
			addBinding(m.keyMap.SearchTasks, "search")
			addAction("s/g/o", "sort/grp/ord")
		case CalendarScreen:
			addAction("←↑↓→", "nav")
			addAction("j/k", "item")
			if m.moving != nil {
				addBinding(m.keyMap.CalendarSelect, "drop")
				addAction("esc", "cancel")
			} else {
				addBinding(m.keyMap.MoveTask, "move")
			}
			addBinding(m.keyMap.NewItem, "event")
			addBinding(m.keyMap.JumpToToday, "today")
		case DashboardScreen:
			addBinding(m.keyMap.NewItem, "reminder")
			addBinding(m.keyMap.CycleStatus, "done")
			addBinding(m.keyMap.DeleteTask, "del")
		case HabitsScreen:
			addBinding(m.keyMap.NewItem, "add")
			addBinding(m.keyMap.EditTask, "edit")
			addBinding(m.keyMap.CycleStatus, "toggle")
			addBinding(m.keyMap.DeleteTask, "del")
		case MatrixScreen:
			addAction("1-4", "assign")
			addBinding(m.keyMap.Unassign, "unassign")
			addBinding(m.keyMap.CycleStatus, "status")
		}
		addBinding(m.keyMap.NextScreen, "screen")
		addBinding(m.keyMap.Refresh, "reload")
		addBinding(m.keyMap.ToggleTheme, "theme")
		addBinding(m.keyMap.ShowHelp, "help")
		addBinding(m.keyMap.QuitApp, "quit")

	case AddMode, EditMode:
		addAction("tab", "next field")
		addAction("←/→", "choose")
		addAction("enter", "save")
		addAction("esc", "cancel")

	case DeleteConfirmMode:
		addAction("y", "confirm")
		addAction("n", "cancel")

	case SearchMode, PromptMode:
		addAction("enter", "ok")
		addAction("esc", "cancel")

	case HelpViewMode:
		addAction("esc", "back")
		addBinding(m.keyMap.QuitApp, "quit")
	}

	return strings.Join(actions, separator)
}

// renderHelp is the fullscreen list of every binding
func (m Model) renderHelp() string {
	var sb strings.Builder
	p := m.palette()

	keyStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.AccentColor)).
		Bold(true)
	descStyle := lipgloss.NewStyle().
		Foreground(lipgloss.Color(p.NormalTextColor))

	section := func(title string, bindings ...key.Binding) {
		sb.WriteString(lipgloss.NewStyle().Bold(true).Render(title))
		sb.WriteString("\n\n")
		for _, binding := range bindings {
			sb.WriteString(fmt.Sprintf("%s: %s\n",
				descStyle.Render(binding.Help().Desc),
				keyStyle.Render(strings.Join(binding.Keys(), ", "))))
		}
		sb.WriteString("\n")
	}

	km := m.keyMap
	section("Available Commands",
		km.QuitApp, km.ShowHelp, km.NextScreen, km.PrevScreen, km.Refresh, km.ToggleTheme)
	section("Tasks",
		km.AddTask, km.EditTask, km.DeleteTask, km.CycleStatus, km.CycleFilter, km.SearchTasks,
		km.ToggleSortBy, km.ToggleGroupBy, km.ToggleSortOrder)
	section("Calendar",
		km.CalendarLeft, km.CalendarRight, km.CalendarUp, km.CalendarDown, km.JumpToToday,
		km.ItemUp, km.ItemDown, km.MoveTask, km.CalendarSelect, km.NewItem)
	section("Eisenhower Matrix",
		km.AssignDoFirst, km.AssignSchedule, km.AssignDelegate, km.AssignEliminate, km.Unassign)

	return sb.String()
}

// renderForm renders the input form for adding/editing tasks
func (m Model) renderForm() string {
	var sb strings.Builder
	p := m.palette()

	labels := []string{"Name:", "Description:", "Due Date (YYYY-MM-DD):", "Due Time (HH:MM):"}
	for i, input := range m.inputs {
		sb.WriteString(labels[i] + "\n")
		sb.WriteString(input.View())
		sb.WriteString("\n\n")
	}

	choice := func(label string, field int, options []string, selected int, color func(string) lipgloss.Color) {
		sb.WriteString(label + "\n")
		for i, opt := range options {
			style := lipgloss.NewStyle().Padding(0, 1)
			if i == selected {
				style = style.Bold(true).Foreground(lipgloss.Color(p.SelectedTextColor)).Background(color(opt))
			} else {
				style = style.Foreground(lipgloss.Color(p.MutedTextColor))
			}
			sb.WriteString(style.Render(opt))
		}
		if m.activeInput == field {
			sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.AccentColor)).Render("  ←/→"))
		}
		sb.WriteString("\n\n")
	}
	choice("Priority:", fieldPriority, priorityChoices(), m.priority, func(s string) lipgloss.Color {
		return m.priorityColor(tasks.Priority(s))
	})
	choice("Status:", fieldStatus, statusChoices(), m.status, func(s string) lipgloss.Color {
		return m.statusColor(tasks.Status(s))
	})

	if m.formErr != "" {
		sb.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(p.ErrorColor)).Render(m.formErr))
		sb.WriteString("\n")
	}

	return sb.String()
}
