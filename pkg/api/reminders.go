package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tickit/pkg/tasks"
)

// Reminder statuses
const (
	ReminderCompleted  = "COMPLETED"
	ReminderIncomplete = "INCOMPLETE"
)

const (
	defaultReminderTime     = "09:00"
	defaultReminderWireTime = "09:00 AM"
	defaultReminderNote     = "No description"
)

// Reminder is a dated note shown on the dashboard
type Reminder struct {
	ID          int64
	Title       string
	Description string
	Date        time.Time // local midnight
	Time        string    // 24-hour HH:MM
	Status      string
}

// Completed reports whether the reminder was ticked off
func (r Reminder) Completed() bool {
	return strings.EqualFold(r.Status, ReminderCompleted)
}

type wireReminder struct {
	ID          int64  `json:"id,omitempty"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
	Date        string `json:"date"`
	Time        string `json:"time"`
	Status      string `json:"status"`
}

// NewReminder returns the defaults of the add-reminder form: tomorrow at nine
func NewReminder(now time.Time) Reminder {
	y, m, d := now.AddDate(0, 0, 1).Date()
	return Reminder{
		Date:   time.Date(y, m, d, 0, 0, 0, 0, time.Local),
		Time:   defaultReminderTime,
		Status: ReminderIncomplete,
	}
}

// ValidateReminder checks a reminder before it is sent
func ValidateReminder(r Reminder, now time.Time) error {
	if strings.TrimSpace(r.Title) == "" {
		return &tasks.FieldError{Field: "title", Message: "Please enter reminder title"}
	}
	y, m, d := now.Date()
	if r.Date.Before(time.Date(y, m, d, 0, 0, 0, 0, now.Location())) {
		return &tasks.FieldError{Field: "date", Message: "Reminder date should be in the future"}
	}
	return nil
}

func reminderToWire(r Reminder) wireReminder {
	w := wireReminder{
		ID:          r.ID,
		Title:       strings.TrimSpace(r.Title),
		Description: strings.TrimSpace(r.Description),
		Date:        r.Date.Format(tasks.DateLayout),
		Time:        defaultReminderWireTime,
		Status:      strings.ToUpper(strings.TrimSpace(r.Status)),
	}
	if tasks.ValidClock(r.Time) {
		w.Time = tasks.To12Hour(r.Time)
	}
	if w.Description == "" {
		w.Description = defaultReminderNote
	}
	if w.Status == "" {
		w.Status = ReminderIncomplete
	}
	return w
}

func reminderFromWire(w wireReminder) Reminder {
	r := Reminder{
		ID:          w.ID,
		Title:       w.Title,
		Description: w.Description,
		Time:        tasks.To24Hour(w.Time),
		Status:      w.Status,
	}
	if due, err := time.ParseInLocation(tasks.DateLayout, strings.TrimSpace(w.Date), time.Local); err == nil {
		r.Date = due
	}
	return r
}

// ListReminders fetches the user's reminders
func (c *Client) ListReminders(ctx context.Context) ([]Reminder, error) {
	var wire []wireReminder
	err := c.do(ctx, call{op: "list reminders", method: http.MethodGet, path: "/getReminder", out: &wire})
	if IsNotFound(err) {
		return []Reminder{}, nil
	}
	if err != nil {
		return nil, err
	}
	out := make([]Reminder, 0, len(wire))
	for _, w := range wire {
		out = append(out, reminderFromWire(w))
	}
	return out, nil
}

// CreateReminder sends a new reminder
func (c *Client) CreateReminder(ctx context.Context, r Reminder) error {
	if err := ValidateReminder(r, c.Now()); err != nil {
		return err
	}
	w := reminderToWire(r)
	w.ID = 0
	return c.do(ctx, call{op: "create reminder", method: http.MethodPost, path: "/addReminder", body: w})
}

// UpdateReminder replaces a reminder on the server
func (c *Client) UpdateReminder(ctx context.Context, r Reminder) error {
	if r.ID == 0 {
		return &tasks.FieldError{Field: "id", Message: "Reminder ID is required to update a reminder."}
	}
	if err := ValidateReminder(r, c.Now()); err != nil {
		return err
	}
	return c.do(ctx, call{op: "update reminder", method: http.MethodPut, path: "/updateReminder", body: reminderToWire(r)})
}

// ToggleReminder flips a reminder between completed and incomplete.
// The date rule is not applied so past reminders can still be ticked off.
func (c *Client) ToggleReminder(ctx context.Context, r Reminder) error {
	if r.ID == 0 {
		return &tasks.FieldError{Field: "id", Message: "Reminder ID is required to update a reminder."}
	}
	if r.Completed() {
		r.Status = ReminderIncomplete
	} else {
		r.Status = ReminderCompleted
	}
	return c.do(ctx, call{op: "toggle reminder", method: http.MethodPut, path: "/updateReminder", body: reminderToWire(r)})
}

// DeleteReminder removes a reminder
func (c *Client) DeleteReminder(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "delete reminder", method: http.MethodDelete, path: fmt.Sprintf("/deleteReminder/%d", id)})
}

// PendingReminders keeps the reminders that are not completed
func PendingReminders(rs []Reminder) []Reminder {
	out := make([]Reminder, 0, len(rs))
	for _, r := range rs {
		if !r.Completed() {
			out = append(out, r)
		}
	}
	return out
}
