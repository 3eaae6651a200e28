package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

func TestCalendarNavigationWrapsMonths(t *testing.T) {
	m, _ := newTestModel(t, &fakeGateway{})
	m.screen = CalendarScreen
	m.calendarSelectedDay = 1

	m, _ = send(m, keyPress("left"))
	assert.Equal(t, "2025-05-31", tasks.DayKey(m.selectedDate()))

	m, _ = send(m, keyPress("right"))
	assert.Equal(t, "2025-06-01", tasks.DayKey(m.selectedDate()))

	m.calendarSelectedDay = 28
	m, _ = send(m, keyPress("down"))
	assert.Equal(t, "2025-07-05", tasks.DayKey(m.selectedDate()))

	m, _ = send(m, keyPress("up"))
	assert.Equal(t, "2025-06-28", tasks.DayKey(m.selectedDate()))

	m, _ = send(m, keyPress("h"))
	assert.Equal(t, "2025-06-10", tasks.DayKey(m.selectedDate()))
}

func TestCalendarMoveTask(t *testing.T) {
	gw := &fakeGateway{all: sampleTasks()}
	m, _ := newTestModel(t, gw)
	m.screen = CalendarScreen
	m = run(t, m, m.fetchScreen())

	// Call bank is due on the 8th
	m.calendarSelectedDay = 8
	require.Len(t, m.agenda(), 1)
	m, _ = send(m, keyPress("m"))
	require.NotNil(t, m.moving)

	m.calendarSelectedDay = 12
	m, cmd := send(m, keyPress("enter"))
	assert.Nil(t, m.moving)
	run(t, m, cmd)
	assert.Equal(t, "2025-06-12", tasks.DayKey(gw.moved[2]))
}

func TestCalendarEventsArePersisted(t *testing.T) {
	m, kv := newTestModel(t, &fakeGateway{})
	m.screen = CalendarScreen

	m, _ = send(m, keyPress("n"))
	require.Equal(t, PromptMode, m.mode)
	m.promptInput.SetValue("Standup @ 9:30")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, NormalMode, m.mode)

	saved, err := tasks.LoadEvents(kv)
	require.NoError(t, err)
	require.Len(t, saved, 1)
	assert.Equal(t, "Standup", saved[0].Title)
	assert.Equal(t, 9, saved[0].Start.Hour())
	assert.Equal(t, 30, saved[0].Start.Minute())
	require.Len(t, m.agenda(), 1)

	m, _ = send(m, keyPress("d"))
	require.Equal(t, DeleteConfirmMode, m.mode)
	m, cmd := send(m, keyPress("y"))
	assert.Nil(t, cmd, "events never reach the server")
	assert.Empty(t, m.agenda())

	saved, err = tasks.LoadEvents(kv)
	require.NoError(t, err)
	assert.Empty(t, saved)
}

func TestEventPromptRejectsBadInput(t *testing.T) {
	m, _ := newTestModel(t, &fakeGateway{})
	m.screen = CalendarScreen

	m, _ = send(m, keyPress("n"))
	m.promptInput.SetValue("Lunch @ 25:00")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, PromptMode, m.mode)
	assert.Equal(t, "Event time must be HH:MM.", m.formErr)

	m.promptInput.SetValue("   ")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, "Event title is required.", m.formErr)
}

func TestMatrixAssignPersists(t *testing.T) {
	gw := &fakeGateway{all: sampleTasks()}
	m, kv := newTestModel(t, gw)
	m.screen = MatrixScreen
	m = run(t, m, m.fetchScreen())

	// Completed tasks stay off the board
	entries := m.matrixEntries()
	require.Len(t, entries, 2)

	m, _ = send(m, keyPress("1"))
	q, ok := m.matrix.QuadrantOf(1)
	require.True(t, ok)
	assert.Equal(t, tasks.QuadrantDoFirst, q)

	saved, err := tasks.LoadMatrix(kv)
	require.NoError(t, err)
	assert.Equal(t, []int64{1}, saved.DoFirst)

	// Task 1 is now last in cursor order
	m.cursor = 1
	m, _ = send(m, keyPress("0"))
	_, ok = m.matrix.QuadrantOf(1)
	assert.False(t, ok)
}

func TestMatrixPrunesDeletedTasks(t *testing.T) {
	gw := &fakeGateway{all: sampleTasks()}
	m, kv := newTestModel(t, gw)
	m.matrix.Assign(99, tasks.QuadrantDelegate)
	m.screen = MatrixScreen
	m = run(t, m, m.fetchScreen())

	assert.Empty(t, m.matrix.Delegate)
	saved, err := tasks.LoadMatrix(kv)
	require.NoError(t, err)
	assert.Empty(t, saved.Delegate)
}

func TestParseReminderInput(t *testing.T) {
	r, err := parseReminderInput("Dentist", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "Dentist", r.Title)
	assert.Equal(t, "2025-06-11", tasks.DayKey(r.Date))
	assert.Equal(t, "09:00", r.Time)

	r, err = parseReminderInput("Dentist @ 2025-07-01 14:30", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, "2025-07-01", tasks.DayKey(r.Date))
	assert.Equal(t, "14:30", r.Time)

	_, err = parseReminderInput("Dentist @ tomorrow", fixedNow)
	assert.Error(t, err)
}

func TestDashboardReminders(t *testing.T) {
	gw := &fakeGateway{
		completed: sampleTasks()[2:],
		reminders: []api.Reminder{
			{ID: 1, Title: "Done already", Status: api.ReminderCompleted, Date: day(1)},
			{ID: 2, Title: "Water plants", Status: api.ReminderIncomplete, Date: day(1), Time: "09:00"},
		},
	}
	m, _ := newTestModel(t, gw)
	m.screen = DashboardScreen
	m = run(t, m, m.fetchScreen())

	pending := m.pendingReminders()
	require.Len(t, pending, 1)
	assert.Contains(t, m.renderDashboard(), "Water plants")

	m, _ = send(m, keyPress("n"))
	m.promptInput.SetValue("Old @ 2025-06-01")
	m, _ = send(m, keyPress("enter"))
	assert.Equal(t, "Reminder date should be in the future", m.formErr)

	m.promptInput.SetValue("Call mum")
	m, cmd := send(m, keyPress("enter"))
	assert.Equal(t, NormalMode, m.mode)
	run(t, m, cmd)
	assert.Contains(t, gw.calls, "CreateReminder")
}

func TestHabitPrompt(t *testing.T) {
	gw := &fakeGateway{habits: []api.Habit{{ID: 4, Title: "Stretch", Status: api.HabitCompleted}}}
	m, _ := newTestModel(t, gw)
	m.screen = HabitsScreen
	m = run(t, m, m.fetchScreen())
	assert.Contains(t, m.renderHabits(), "100% Completed")

	m, _ = send(m, keyPress("n"))
	m, cmd := send(m, keyPress("enter"))
	assert.Nil(t, cmd)
	assert.Equal(t, "Please enter a habit before adding.", m.formErr)

	m, _ = send(m, keyPress("esc"))
	m, _ = send(m, keyPress("e"))
	assert.Equal(t, "Stretch", m.promptInput.Value())
}

func TestSortAndGroup(t *testing.T) {
	gw := &fakeGateway{all: sampleTasks()}
	m, _ := newTestModel(t, gw)
	m = run(t, m, m.fetchScreen())

	m, _ = send(m, keyPress("s")) // title
	assert.Equal(t, []string{"Call bank", "Pay rent", "Write report"}, titles(m.items))

	m, _ = send(m, keyPress("o"))
	assert.Equal(t, []string{"Write report", "Pay rent", "Call bank"}, titles(m.items))

	m, _ = send(m, keyPress("g")) // status
	require.Len(t, m.items, 6)
	assert.Zero(t, m.items[0].ID, "group header")
	assert.Equal(t, "Call bank", m.items[1].Title)

	// The cursor skips headers when acting on a task
	m.table.SetCursor(0)
	_, ok := m.selectedTask()
	assert.False(t, ok)
}

func titles(ts []tasks.Task) []string {
	out := make([]string, len(ts))
	for i, t := range ts {
		out[i] = t.Title
	}
	return out
}
