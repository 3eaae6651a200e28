package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"tickit/pkg/tasks"
)

// Habit statuses as the backend spells them
const (
	HabitCompleted  = "COMPLETED"
	HabitIncomplete = "INCOMPLETED"
)

// Habit is one of today's recurring tasks in the daily planner
type Habit struct {
	ID     int64  `json:"id,omitempty"`
	Title  string `json:"title"`
	Status string `json:"status,omitempty"`
	Date   string `json:"date,omitempty"`
}

// Completed reports whether the habit is done for today
func (h Habit) Completed() bool {
	return strings.EqualFold(h.Status, HabitCompleted)
}

// ToggledHabitStatus flips a habit between done and not done
func ToggledHabitStatus(status string) string {
	if strings.EqualFold(status, HabitCompleted) {
		return HabitIncomplete
	}
	return HabitCompleted
}

// ListHabits fetches today's habits
func (c *Client) ListHabits(ctx context.Context) ([]Habit, error) {
	var habits []Habit
	err := c.do(ctx, call{op: "list habits", method: http.MethodGet, path: "/getHabit", out: &habits})
	if IsNotFound(err) {
		return []Habit{}, nil
	}
	if err != nil {
		return nil, err
	}
	if habits == nil {
		habits = []Habit{}
	}
	return habits, nil
}

// CreateHabit adds a habit for today
func (c *Client) CreateHabit(ctx context.Context, title string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return &tasks.FieldError{Field: "title", Message: "Please enter a habit before adding."}
	}
	return c.do(ctx, call{op: "create habit", method: http.MethodPost, path: "/addHabit", body: Habit{Title: title}})
}

// UpdateHabit renames a habit or changes its status
func (c *Client) UpdateHabit(ctx context.Context, h Habit) error {
	if h.ID == 0 {
		return &tasks.FieldError{Field: "id", Message: "Habit ID is required to update a habit."}
	}
	h.Title = strings.TrimSpace(h.Title)
	if h.Title == "" {
		return &tasks.FieldError{Field: "title", Message: "Please enter a habit before adding."}
	}
	if h.Status == "" {
		h.Status = HabitIncomplete
	}
	body := Habit{ID: h.ID, Title: h.Title, Status: h.Status}
	return c.do(ctx, call{op: "update habit", method: http.MethodPut, path: "/updateHabit", body: body})
}

// ToggleHabit marks a habit done, or undone when it already was
func (c *Client) ToggleHabit(ctx context.Context, h Habit) error {
	h.Status = ToggledHabitStatus(h.Status)
	return c.UpdateHabit(ctx, h)
}

// DeleteHabit removes a habit
func (c *Client) DeleteHabit(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "delete habit", method: http.MethodDelete, path: fmt.Sprintf("/deleteHabit/%d", id)})
}
