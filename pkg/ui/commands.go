package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

// Message types
type errMsg struct {
	err      error
	fallback string
}

// loadFailedMsg empties a screen's collection when its fetch fails
type loadFailedMsg struct {
	screen Screen
	err    error
}

type tasksLoadedMsg struct {
	tasks  []tasks.Task
	source tasks.Source
}

type overviewLoadedMsg struct {
	all       []tasks.Task
	completed []tasks.Task
	reminders []api.Reminder
}

type habitsLoadedMsg struct{ habits []api.Habit }

// doneMsg reports a finished mutation; reload asks for a fresh fetch of the screen
type doneMsg struct {
	notice string
	reload bool
}

type themeChangedMsg struct{ dark bool }

// waitForTheme blocks until the shared theme store broadcasts a change
func waitForTheme(ch <-chan bool) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		dark, ok := <-ch
		if !ok {
			return nil
		}
		return themeChangedMsg{dark: dark}
	}
}

// loadScreen fetches whatever the current screen displays
func (m *Model) loadScreen() tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	m.loading++
	return m.fetchScreen()
}

func (m Model) fetchScreen() tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	gw := m.gateway
	screen := m.screen
	filter := m.view.Filter

	switch screen {
	case TasksScreen:
		return func() tea.Msg {
			ts, src, err := gw.Fetch(context.Background(), filter)
			if err != nil {
				return loadFailedMsg{screen: screen, err: err}
			}
			return tasksLoadedMsg{tasks: ts, source: src}
		}

	case HabitsScreen:
		return func() tea.Msg {
			habits, err := gw.ListHabits(context.Background())
			if err != nil {
				return loadFailedMsg{screen: screen, err: err}
			}
			return habitsLoadedMsg{habits: habits}
		}

	default:
		withExtras := screen == DashboardScreen
		return func() tea.Msg {
			ctx := context.Background()
			all, err := gw.ListTasks(ctx)
			if err != nil {
				return loadFailedMsg{screen: screen, err: err}
			}
			msg := overviewLoadedMsg{all: all}
			if !withExtras {
				return msg
			}
			if msg.completed, err = gw.ListCompletedTasks(ctx); err != nil {
				return loadFailedMsg{screen: screen, err: err}
			}
			if msg.reminders, err = gw.ListReminders(ctx); err != nil {
				return loadFailedMsg{screen: screen, err: err}
			}
			return msg
		}
	}
}

// mutate runs a gateway call and reports the outcome
func (m *Model) mutate(notice, fallback string, reload bool, fn func(ctx context.Context, gw Gateway) error) tea.Cmd {
	if m.gateway == nil {
		return nil
	}
	m.loading++
	gw := m.gateway
	return func() tea.Msg {
		if err := fn(context.Background(), gw); err != nil {
			return errMsg{err: err, fallback: fallback}
		}
		return doneMsg{notice: notice, reload: reload}
	}
}

// createTask does not trigger a reload; the new task shows up on the next refresh
func (m *Model) createTask(t tasks.Task) tea.Cmd {
	return m.mutate("Task added successfully", "Failed to add task. Please try again.", false,
		func(ctx context.Context, gw Gateway) error { return gw.CreateTask(ctx, t) })
}

func (m *Model) updateTask(t tasks.Task) tea.Cmd {
	return m.mutate("Task updated successfully", "Failed to update task. Please try again.", true,
		func(ctx context.Context, gw Gateway) error { return gw.UpdateTask(ctx, t) })
}

func (m *Model) setTaskStatus(t tasks.Task, status tasks.Status) tea.Cmd {
	return m.mutate("Task marked as "+string(status), "Failed to update task status.", true,
		func(ctx context.Context, gw Gateway) error { return gw.SetTaskStatus(ctx, t, status) })
}

func (m *Model) moveTask(t tasks.Task, day time.Time) tea.Cmd {
	return m.mutate("Task moved to "+day.Format("Jan 2"), "Failed to move task.", true,
		func(ctx context.Context, gw Gateway) error { return gw.MoveTask(ctx, t, day) })
}

func (m *Model) deleteTask(id int64) tea.Cmd {
	return m.mutate("Task deleted successfully", "Failed to delete task. Please try again.", true,
		func(ctx context.Context, gw Gateway) error { return gw.DeleteTask(ctx, id) })
}

func (m *Model) createHabit(title string) tea.Cmd {
	return m.mutate("Habit added successfully", "Failed to add habit.", true,
		func(ctx context.Context, gw Gateway) error { return gw.CreateHabit(ctx, title) })
}

func (m *Model) renameHabit(h api.Habit) tea.Cmd {
	return m.mutate("Habit updated successfully", "Failed to update habit.", true,
		func(ctx context.Context, gw Gateway) error { return gw.UpdateHabit(ctx, h) })
}

func (m *Model) toggleHabit(h api.Habit) tea.Cmd {
	return m.mutate("Habit updated", "Failed to update habit.", true,
		func(ctx context.Context, gw Gateway) error { return gw.ToggleHabit(ctx, h) })
}

func (m *Model) deleteHabit(id int64) tea.Cmd {
	return m.mutate("Habit deleted successfully", "Failed to delete habit.", true,
		func(ctx context.Context, gw Gateway) error { return gw.DeleteHabit(ctx, id) })
}

func (m *Model) createReminder(r api.Reminder) tea.Cmd {
	return m.mutate("Reminder added successfully", "Failed to add reminder.", true,
		func(ctx context.Context, gw Gateway) error { return gw.CreateReminder(ctx, r) })
}

func (m *Model) toggleReminder(r api.Reminder) tea.Cmd {
	return m.mutate("Reminder updated", "Failed to update reminder.", true,
		func(ctx context.Context, gw Gateway) error { return gw.ToggleReminder(ctx, r) })
}

func (m *Model) deleteReminder(id int64) tea.Cmd {
	return m.mutate("Reminder deleted successfully", "Failed to delete reminder.", true,
		func(ctx context.Context, gw Gateway) error { return gw.DeleteReminder(ctx, id) })
}
