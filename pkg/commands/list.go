package commands

import (
	"context"
	"fmt"

	"tickit/pkg/tasks"
)

// HandleListCommand prints the tasks matching a filter and an optional search
func HandleListCommand(ctx context.Context, env *Env, filterName, query string) error {
	filter := tasks.FilterAll
	if filterName != "" {
		var ok bool
		if filter, ok = tasks.ParseStatusFilter(filterName); !ok {
			return fmt.Errorf("unknown filter %q (use all, incomplete, ongoing, completed, upcoming or overdue)", filterName)
		}
	}

	ts, src, err := env.Gateway.Fetch(ctx, filter)
	if err != nil {
		return err
	}

	vm := tasks.NewViewModel()
	vm.Now = env.now
	vm.Filter = filter
	vm.Query = query
	vm.SetTasks(ts, src)
	visible := vm.Derive()

	if len(visible) == 0 {
		env.printf("No tasks found.\n")
		return nil
	}

	now := env.now()
	for _, t := range visible {
		mark := " "
		switch t.Status {
		case tasks.StatusCompleted:
			mark = "x"
		case tasks.StatusOngoing:
			mark = "~"
		}
		due := "          "
		if t.HasDueDate() {
			due = t.DueDate.Format(tasks.DateLayout)
		}
		env.printf("%5d [%s] %-40s %-6s %s %s (%s)\n",
			t.ID, mark, t.Title, t.Priority, due, tasks.To12Hour(t.DueTime), tasks.DueBadge(t, now))
	}

	counts := tasks.CountByStatus(visible)
	env.printf("\n%d task(s): %d incomplete, %d ongoing, %d completed\n",
		len(visible), counts[tasks.StatusIncomplete], counts[tasks.StatusOngoing], counts[tasks.StatusCompleted])
	return nil
}

// HandleDeleteCommand deletes a task after confirmation unless skipConfirm is set
func HandleDeleteCommand(ctx context.Context, env *Env, id int64, skipConfirm bool) error {
	if id <= 0 {
		return &tasks.FieldError{Field: "id", Message: "Task ID is required to delete a task."}
	}
	if !skipConfirm && !env.confirm(fmt.Sprintf("Are you sure you want to delete task %d?", id)) {
		env.printf("Operation cancelled.\n")
		return nil
	}
	if err := env.Gateway.DeleteTask(ctx, id); err != nil {
		return err
	}
	env.printf("Task deleted successfully\n")
	return nil
}
