package commands

import (
	"context"
	"strings"

	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// AddOptions are the optional fields of -add
type AddOptions struct {
	Description string
	Date        string // YYYY-MM-DD, defaults to today
	Time        string // HH:MM
	Priority    string
	Status      string
}

// HandleAddTask processes the -add command
func HandleAddTask(ctx context.Context, env *Env, title string, opts AddOptions) error {
	d := tasks.NewDraft()
	d.Name = title
	// The title doubles as description when none is given
	d.Description = title
	d.DueDate = env.now().Format(tasks.DateLayout)

	if opts.Description != "" {
		d.Description = opts.Description
	}
	if opts.Date != "" {
		d.DueDate = opts.Date
	}
	if opts.Time != "" {
		if !tasks.ValidClock(opts.Time) {
			return &tasks.FieldError{Field: "dueTime", Message: "Due time must be in HH:MM format."}
		}
		d.DueTime = opts.Time
	}
	if opts.Priority != "" {
		d.Priority = string(tasks.ToUIPriority(opts.Priority))
	}
	if opts.Status != "" {
		d.Status = string(tasks.ToUIStatus(opts.Status))
	}

	t, err := tasks.ParseDraft(d)
	if err != nil {
		return err
	}
	if err := env.Gateway.CreateTask(ctx, t); err != nil {
		return err
	}

	utils.Log("Added task %q due %s", t.Title, t.DueDate.Format(tasks.DateLayout))
	env.printf("Task added successfully: %s (due %s %s)\n",
		strings.TrimSpace(t.Title), t.DueDate.Format(tasks.DateLayout), tasks.To12Hour(t.DueTime))
	return nil
}
