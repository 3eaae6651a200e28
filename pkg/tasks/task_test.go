package tasks_test

import (
	"encoding/json"
	"testing"
	"time"

	"tickit/pkg/tasks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromWire(t *testing.T) {
	got := tasks.FromWire(tasks.WireTask{
		ID:          7,
		Title:       "Write report",
		Description: "Quarterly numbers",
		Status:      "ONGOING",
		Priority:    "HIGH",
		DueDate:     "2025-06-01",
		Time:        "02:30 PM",
	})

	assert.Equal(t, int64(7), got.ID)
	assert.Equal(t, tasks.StatusOngoing, got.Status)
	assert.Equal(t, tasks.PriorityHigh, got.Priority)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.Local), got.DueDate)
	assert.Equal(t, "14:30", got.DueTime)
}

func TestFromWireTimestampAndMissingFields(t *testing.T) {
	got := tasks.FromWire(tasks.WireTask{ID: 1, Title: "x", DueDate: "2025-06-01T09:45:00"})
	assert.Equal(t, "2025-06-01", got.DueDate.Format(tasks.DateLayout))
	assert.Equal(t, "09:45", got.DueTime)
	assert.Equal(t, tasks.StatusIncomplete, got.Status)

	bad := tasks.FromWire(tasks.WireTask{ID: 2, DueDate: "June first"})
	assert.False(t, bad.HasDueDate())
	assert.Equal(t, tasks.DefaultDueTime, bad.DueTime)
}

func TestFromWireListNeverNil(t *testing.T) {
	got := tasks.FromWireList(nil)
	require.NotNil(t, got)
	assert.Empty(t, got)
}

func TestDraftToWirePayload(t *testing.T) {
	task, err := tasks.ParseDraft(tasks.Draft{
		Name:        "Test",
		Description: "A description",
		DueDate:     "2025-06-01",
		DueTime:     "14:30",
		Priority:    "High",
		Status:      "Incomplete",
	})
	require.NoError(t, err)

	body, err := json.Marshal(tasks.ToWire(task))
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"title": "Test",
		"description": "A description",
		"dueDate": "2025-06-01",
		"time": "02:30 PM",
		"priority": "HIGH",
		"status": "INCOMPLETE"
	}`, string(body))
}

func TestWireRoundTrip(t *testing.T) {
	w := tasks.WireTask{
		ID:          3,
		Title:       "Plan trip",
		Description: "Book flights",
		Status:      "COMPLETED",
		Priority:    "LOW",
		DueDate:     "2024-12-24",
		Time:        "07:05 AM",
	}
	assert.Equal(t, w, tasks.ToWire(tasks.FromWire(w)))
}

func TestDraftDefaults(t *testing.T) {
	d := tasks.NewDraft()
	assert.Equal(t, "Ongoing", d.Status)
	assert.Equal(t, "Medium", d.Priority)
	assert.Equal(t, "12:00", d.DueTime)

	edit := tasks.DraftFromTask(tasks.Task{ID: 9, Title: "Edit me", DueDate: time.Date(2025, 1, 2, 0, 0, 0, 0, time.Local)})
	assert.Equal(t, int64(9), edit.ID)
	assert.Equal(t, "2025-01-02", edit.DueDate)
	assert.Equal(t, "12:00", edit.DueTime)
	assert.Equal(t, "Incomplete", edit.Status)
}

func TestParseDraftRejectsBadDate(t *testing.T) {
	_, err := tasks.ParseDraft(tasks.Draft{
		Name: "Task", Description: "Long enough", DueDate: "01/06/2025",
		DueTime: "10:00", Priority: "Low", Status: "Ongoing",
	})
	var fe *tasks.FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "dueDate", fe.Field)
}
