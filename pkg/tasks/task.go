package tasks

import (
	"strings"
	"time"
)

// DateLayout is the calendar-date format used on the wire and in forms
const DateLayout = "2006-01-02"

// DefaultDueTime is the time-of-day a new task form starts with
const DefaultDueTime = "12:00"

// Status is the presentation form of a task status
type Status string

const (
	StatusIncomplete Status = "Incomplete"
	StatusOngoing    Status = "Ongoing"
	StatusCompleted  Status = "Completed"
)

// Statuses lists every known status in display order
var Statuses = []Status{StatusIncomplete, StatusOngoing, StatusCompleted}

// Priority is the presentation form of a task priority
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Priorities lists every known priority from lowest to highest
var Priorities = []Priority{PriorityLow, PriorityMedium, PriorityHigh}

// Task is the canonical, UI-shaped task held by every screen
type Task struct {
	ID          int64
	Title       string
	Description string
	Status      Status
	Priority    Priority
	DueDate     time.Time // local midnight; zero when the server sent none
	DueTime     string    // 24-hour HH:MM
}

// HasDueDate reports whether the task carries a usable due date
func (t Task) HasDueDate() bool {
	return !t.DueDate.IsZero()
}

// WireTask is the JSON shape exchanged with the backend
type WireTask struct {
	ID          int64  `json:"id,omitempty" yaml:"id,omitempty"`
	Title       string `json:"title" yaml:"title"`
	Description string `json:"description" yaml:"description"`
	Status      string `json:"status" yaml:"status"`
	Priority    string `json:"priority" yaml:"priority"`
	DueDate     string `json:"dueDate" yaml:"dueDate"`
	Time        string `json:"time" yaml:"time"`
}

// FromWire converts a backend task into the UI shape.
// Missing or malformed dates leave DueDate zero instead of failing.
func FromWire(w WireTask) Task {
	t := Task{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Status:      ToUIStatus(w.Status),
		Priority:    ToUIPriority(w.Priority),
		DueTime:     DefaultDueTime,
	}

	datePart := strings.TrimSpace(w.DueDate)
	if idx := strings.Index(datePart, "T"); idx >= 0 {
		// Combined timestamps carry the time after the T
		if rest := datePart[idx+1:]; len(rest) >= 5 {
			t.DueTime = rest[:5]
		}
		datePart = datePart[:idx]
	}
	if datePart != "" {
		if due, err := time.ParseInLocation(DateLayout, datePart, time.Local); err == nil {
			t.DueDate = due
		}
	}

	if strings.TrimSpace(w.Time) != "" {
		t.DueTime = To24Hour(w.Time)
	}

	return t
}

// FromWireList converts a backend collection, never returning nil
func FromWireList(ws []WireTask) []Task {
	out := make([]Task, 0, len(ws))
	for _, w := range ws {
		out = append(out, FromWire(w))
	}
	return out
}

// ToWire converts a UI task into the payload the backend expects
func ToWire(t Task) WireTask {
	w := WireTask{
		ID:          t.ID,
		Title:       strings.TrimSpace(t.Title),
		Description: strings.TrimSpace(t.Description),
		Status:      ToWireStatus(t.Status),
		Priority:    ToWirePriority(t.Priority),
		Time:        To12Hour(t.DueTime),
	}
	if t.HasDueDate() {
		w.DueDate = t.DueDate.Format(DateLayout)
	}
	return w
}

// Draft is the add/edit form state. Every field is raw user input.
type Draft struct {
	ID          int64
	Name        string
	Description string
	DueDate     string
	DueTime     string
	Priority    string
	Status      string
}

// NewDraft returns the defaults of an empty "add task" form
func NewDraft() Draft {
	return Draft{
		Status:   string(StatusOngoing),
		Priority: string(PriorityMedium),
		DueTime:  DefaultDueTime,
	}
}

// DraftFromTask loads an existing task into the edit form
func DraftFromTask(t Task) Draft {
	d := Draft{
		ID:          t.ID,
		Name:        t.Title,
		Description: t.Description,
		DueTime:     t.DueTime,
		Priority:    string(t.Priority),
		Status:      string(t.Status),
	}
	if t.HasDueDate() {
		d.DueDate = t.DueDate.Format(DateLayout)
	}
	if d.DueTime == "" {
		d.DueTime = DefaultDueTime
	}
	if d.Status == "" {
		d.Status = string(StatusIncomplete)
	}
	return d
}

// ParseDraft validates the form and converts it into a UI task
func ParseDraft(d Draft) (Task, error) {
	if err := Validate(d); err != nil {
		return Task{}, err
	}

	due, err := time.ParseInLocation(DateLayout, strings.TrimSpace(d.DueDate), time.Local)
	if err != nil {
		return Task{}, &FieldError{Field: "dueDate", Message: "Due date must be in YYYY-MM-DD format."}
	}

	return Task{
		ID:          d.ID,
		Title:       strings.TrimSpace(d.Name),
		Description: strings.TrimSpace(d.Description),
		Status:      ToUIStatus(d.Status),
		Priority:    ToUIPriority(d.Priority),
		DueDate:     due,
		DueTime:     strings.TrimSpace(d.DueTime),
	}, nil
}
