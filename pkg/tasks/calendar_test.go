package tasks_test

import (
	"testing"
	"time"

	"tickit/pkg/tasks"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalendarEventsPersist(t *testing.T) {
	kv := memKV{}

	events, err := tasks.LoadEvents(kv)
	require.NoError(t, err)
	assert.Empty(t, events)

	ev, err := tasks.NewCalendarEvent("  Dentist ", fixedNow, 0)
	require.NoError(t, err)
	_, err = uuid.Parse(ev.ID)
	assert.NoError(t, err)
	assert.Equal(t, "Dentist", ev.Title)
	assert.Equal(t, time.Hour, ev.End.Sub(ev.Start))

	require.NoError(t, tasks.SaveEvents(kv, []tasks.CalendarEvent{ev}))
	loaded, err := tasks.LoadEvents(kv)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, ev.ID, loaded[0].ID)
	assert.True(t, ev.Start.Equal(loaded[0].Start))

	assert.Empty(t, tasks.RemoveEvent(loaded, ev.ID))
}

func TestCalendarEventRequiresTitle(t *testing.T) {
	_, err := tasks.NewCalendarEvent("   ", fixedNow, time.Hour)
	assert.Error(t, err)
}

func TestLoadEventsCorrupt(t *testing.T) {
	_, err := tasks.LoadEvents(memKV{tasks.CalendarEventsKey: "{not json"})
	assert.Error(t, err)
}

func TestTasksByDay(t *testing.T) {
	days := tasks.TasksByDay(sampleTasks())
	assert.Len(t, days, 3)
	assert.Equal(t, []int64{3}, ids(days[tasks.DayKey(day(3))]))
}

func TestEventsByDaySorted(t *testing.T) {
	late := tasks.CalendarEvent{ID: "b", Start: fixedNow.Add(3 * time.Hour)}
	early := tasks.CalendarEvent{ID: "a", Start: fixedNow.Add(-time.Hour)}
	days := tasks.EventsByDay([]tasks.CalendarEvent{late, early})
	list := days[tasks.DayKey(fixedNow)]
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)
}

func TestMoveToDayKeepsTime(t *testing.T) {
	task := tasks.Task{ID: 1, DueDate: day(0), DueTime: "08:15"}
	moved := tasks.MoveToDay(task, fixedNow.AddDate(0, 0, 5))
	assert.Equal(t, day(5), moved.DueDate)
	assert.Equal(t, "08:15", moved.DueTime)
}
