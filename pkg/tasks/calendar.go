package tasks

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CalendarEventsKey is the local-state key holding client-only calendar entries
const CalendarEventsKey = "calendarEvents"

// KV is the local key/value state the client persists between runs.
// A missing key reads as an empty string.
type KV interface {
	Get(key string) (string, error)
	Set(key, value string) error
	Delete(key string) error
}

// CalendarEvent is a calendar entry that lives only on this machine
type CalendarEvent struct {
	ID    string    `json:"id"`
	Title string    `json:"title"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewCalendarEvent creates an event with a fresh local id
func NewCalendarEvent(title string, start time.Time, length time.Duration) (CalendarEvent, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return CalendarEvent{}, &FieldError{Field: "title", Message: "Event title is required."}
	}
	if length <= 0 {
		length = time.Hour
	}
	return CalendarEvent{
		ID:    uuid.NewString(),
		Title: title,
		Start: start,
		End:   start.Add(length),
	}, nil
}

// LoadEvents reads the saved calendar events
func LoadEvents(kv KV) ([]CalendarEvent, error) {
	raw, err := kv.Get(CalendarEventsKey)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	var events []CalendarEvent
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		return nil, fmt.Errorf("error parsing saved calendar events: %w", err)
	}
	return events, nil
}

// SaveEvents replaces the saved calendar events
func SaveEvents(kv KV, events []CalendarEvent) error {
	if events == nil {
		events = []CalendarEvent{}
	}
	data, err := json.Marshal(events)
	if err != nil {
		return err
	}
	return kv.Set(CalendarEventsKey, string(data))
}

// RemoveEvent drops the event with the given id
func RemoveEvent(events []CalendarEvent, id string) []CalendarEvent {
	out := make([]CalendarEvent, 0, len(events))
	for _, e := range events {
		if e.ID != id {
			out = append(out, e)
		}
	}
	return out
}

// DayKey is the bucket key of a calendar day
func DayKey(t time.Time) string {
	return t.Format(DateLayout)
}

// TasksByDay buckets tasks by due date, skipping tasks without one
func TasksByDay(ts []Task) map[string][]Task {
	days := make(map[string][]Task)
	for _, t := range ts {
		if !t.HasDueDate() {
			continue
		}
		key := DayKey(t.DueDate)
		days[key] = append(days[key], t)
	}
	return days
}

// EventsByDay buckets calendar events by start day, earliest first
func EventsByDay(events []CalendarEvent) map[string][]CalendarEvent {
	days := make(map[string][]CalendarEvent)
	for _, e := range events {
		key := DayKey(e.Start.In(time.Local))
		days[key] = append(days[key], e)
	}
	for _, list := range days {
		sort.SliceStable(list, func(i, j int) bool {
			return list[i].Start.Before(list[j].Start)
		})
	}
	return days
}

// MoveToDay returns the task rescheduled to another calendar day.
// Only the due date changes; the time of day is kept.
func MoveToDay(t Task, day time.Time) Task {
	y, m, d := day.Date()
	t.DueDate = time.Date(y, m, d, 0, 0, 0, 0, time.Local)
	return t
}
