package api_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tickit/pkg/api"
	"tickit/pkg/tasks"
)

func TestToggleHabit(t *testing.T) {
	var sent api.Habit
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/updateHabit", r.URL.Path)
		assert.NoError(t, json.NewDecoder(r.Body).Decode(&sent))
	})

	require.NoError(t, c.ToggleHabit(context.Background(), api.Habit{ID: 4, Title: "Stretch", Status: api.HabitCompleted}))
	assert.Equal(t, api.HabitIncomplete, sent.Status)

	require.NoError(t, c.ToggleHabit(context.Background(), api.Habit{ID: 4, Title: "Stretch", Status: api.HabitIncomplete}))
	assert.Equal(t, api.HabitCompleted, sent.Status)
}

func TestCreateHabitRejectsBlank(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("nothing should be sent")
	})
	err := c.CreateHabit(context.Background(), "   ")
	assert.Equal(t, "Please enter a habit before adding.", api.UserMessage(err, ""))
}

func TestListHabits(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"title":"Water","status":"COMPLETED","date":"2025-06-10"},{"id":2,"title":"Walk","status":"INCOMPLETED","date":"2025-06-10"}]`)
	})
	habits, err := c.ListHabits(context.Background())
	require.NoError(t, err)
	require.Len(t, habits, 2)
	assert.True(t, habits[0].Completed())
	assert.False(t, habits[1].Completed())
}

func TestReminderWireFormat(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{
			"title": "Pay bills",
			"description": "No description",
			"date": "2025-06-11",
			"time": "09:00 AM",
			"status": "INCOMPLETE"
		}`, string(body))
	})
	c.Now = func() time.Time { return now }

	r := api.NewReminder(now)
	r.Title = "Pay bills"
	r.Time = "bogus"
	assert.NoError(t, c.CreateReminder(context.Background(), r))
}

func TestReminderValidation(t *testing.T) {
	now := time.Date(2025, 6, 10, 10, 0, 0, 0, time.Local)
	r := api.NewReminder(now)
	assert.Error(t, api.ValidateReminder(r, now))

	r.Title = "Old"
	r.Date = time.Date(2025, 6, 9, 0, 0, 0, 0, time.Local)
	err := api.ValidateReminder(r, now)
	assert.Equal(t, "Reminder date should be in the future", api.UserMessage(err, ""))

	r.Date = time.Date(2025, 6, 10, 0, 0, 0, 0, time.Local)
	assert.NoError(t, api.ValidateReminder(r, now))
}

func TestListRemindersConvertsTime(t *testing.T) {
	c, _ := newClient(t, func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, `[{"id":1,"title":"Call","date":"2025-06-12","time":"14:15:00","status":"INCOMPLETE"},{"id":2,"title":"Done","date":"2025-06-01","time":"08:00 AM","status":"COMPLETED"}]`)
	})
	rs, err := c.ListReminders(context.Background())
	require.NoError(t, err)
	require.Len(t, rs, 2)
	assert.Equal(t, "14:15", rs[0].Time)
	assert.Equal(t, "2025-06-12", rs[0].Date.Format(tasks.DateLayout))
	assert.Len(t, api.PendingReminders(rs), 1)
}
