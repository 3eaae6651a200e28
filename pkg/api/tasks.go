package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"tickit/pkg/tasks"
)

// ListTasks fetches every task of the current user
func (c *Client) ListTasks(ctx context.Context) ([]tasks.Task, error) {
	return c.listTasks(ctx, "list tasks", "/getTask")
}

// ListCompletedTasks fetches from the dedicated completed-tasks endpoint
func (c *Client) ListCompletedTasks(ctx context.Context) ([]tasks.Task, error) {
	return c.listTasks(ctx, "list completed tasks", "/getCompletedTask")
}

func (c *Client) listTasks(ctx context.Context, op, path string) ([]tasks.Task, error) {
	var wire []tasks.WireTask
	err := c.do(ctx, call{op: op, method: http.MethodGet, path: path, out: &wire})
	if IsNotFound(err) {
		// The backend answers 404 when the user has no tasks of the kind asked for
		return []tasks.Task{}, nil
	}
	if err != nil {
		return nil, err
	}
	return tasks.FromWireList(wire), nil
}

// ListTasksByStatus fetches the tasks with one status. Completed tasks come from
// their own endpoint; every other status is filtered from the full list.
func (c *Client) ListTasksByStatus(ctx context.Context, status tasks.Status) ([]tasks.Task, error) {
	if tasks.ToUIStatus(string(status)) == tasks.StatusCompleted {
		return c.ListCompletedTasks(ctx)
	}

	all, err := c.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	want := tasks.ToWireStatus(status)
	out := make([]tasks.Task, 0, len(all))
	for _, t := range all {
		if strings.ToUpper(string(t.Status)) == want {
			out = append(out, t)
		}
	}
	return out, nil
}

// Fetch loads the collection a screen needs for a filter and reports its source
func (c *Client) Fetch(ctx context.Context, filter tasks.StatusFilter) ([]tasks.Task, tasks.Source, error) {
	src := tasks.SourceFor(filter)
	var (
		ts  []tasks.Task
		err error
	)
	if src == tasks.SourceCompleted {
		ts, err = c.ListCompletedTasks(ctx)
	} else {
		ts, err = c.ListTasks(ctx)
	}
	return ts, src, err
}

// CreateTask sends a new task. The backend answers with a confirmation only;
// callers that need the stored task must list again.
func (c *Client) CreateTask(ctx context.Context, t tasks.Task) error {
	payload := tasks.ToWire(t)
	payload.ID = 0
	return c.do(ctx, call{op: "create task", method: http.MethodPost, path: "/addTask", body: payload})
}

// UpdateTask replaces a task on the server. A task without an id is refused
// before anything is sent.
func (c *Client) UpdateTask(ctx context.Context, t tasks.Task) error {
	if t.ID == 0 {
		return &tasks.FieldError{Field: "id", Message: "Task ID is required to update a task."}
	}
	return c.do(ctx, call{op: "update task", method: http.MethodPut, path: "/updateTask", body: tasks.ToWire(t)})
}

// SetTaskStatus updates only the status of a task
func (c *Client) SetTaskStatus(ctx context.Context, t tasks.Task, status tasks.Status) error {
	t.Status = status
	return c.UpdateTask(ctx, t)
}

// MoveTask reschedules a task to another day, keeping everything else
func (c *Client) MoveTask(ctx context.Context, t tasks.Task, day time.Time) error {
	return c.UpdateTask(ctx, tasks.MoveToDay(t, day))
}

// DeleteTask removes a task. Asking the user first is the caller's job.
func (c *Client) DeleteTask(ctx context.Context, id int64) error {
	return c.do(ctx, call{op: "delete task", method: http.MethodDelete, path: fmt.Sprintf("/deleteTask/%d", id)})
}
