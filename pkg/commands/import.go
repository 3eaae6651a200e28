package commands

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"tickit/pkg/tasks"
	"tickit/pkg/utils"
)

// Date headers look like "DD.MM.YYYY:" or "YYYY-MM-DD:"
var dateRegex = regexp.MustCompile(`^(?:(\d{2})\.(\d{2})\.(\d{4})|(\d{4})-(\d{2})-(\d{2})):?$`)

// HandleImportCommand processes -import commands
func HandleImportCommand(ctx context.Context, env *Env, filename string) error {
	f, err := os.Open(filename)
	if err != nil {
		return fmt.Errorf("error reading file: %w", err)
	}
	defer f.Close()

	drafts, err := ParseTxt(f, env.now())
	if err != nil {
		return err
	}

	var tasksAdded int
	for _, d := range drafts {
		t, err := tasks.ParseDraft(d)
		if err == nil {
			err = env.Gateway.CreateTask(ctx, t)
		}
		if err != nil {
			utils.LogError("import "+d.Name, err)
			env.printf("Skipping '%s': %s\n", d.Name, Friendly(err))
			continue
		}
		tasksAdded++
	}

	env.printf("Successfully imported %d task(s) from %s\n", tasksAdded, filename)
	return nil
}

// ParseTxt reads the txt export format into form drafts.
// Tasks before the first date header are due today. A header naming a day
// that does not exist fails the whole parse.
func ParseTxt(r io.Reader, today time.Time) ([]tasks.Draft, error) {
	currentDate := today.Format(tasks.DateLayout)
	var drafts []tasks.Draft

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		if dateMatch := dateRegex.FindStringSubmatch(line); dateMatch != nil {
			text, layout := dateMatch[1]+"."+dateMatch[2]+"."+dateMatch[3], "02.01.2006"
			if dateMatch[1] == "" {
				text, layout = dateMatch[4]+"-"+dateMatch[5]+"-"+dateMatch[6], tasks.DateLayout
			}
			day, err := time.ParseInLocation(layout, text, time.Local)
			if err != nil {
				return nil, fmt.Errorf("line %d: invalid date header %q", lineNo, line)
			}
			currentDate = day.Format(tasks.DateLayout)
			continue
		}

		if !strings.HasPrefix(line, "- ") {
			continue
		}
		taskText := strings.TrimSpace(strings.TrimPrefix(line, "- "))

		status := tasks.StatusIncomplete
		for mark, s := range map[string]tasks.Status{
			"[x]": tasks.StatusCompleted,
			"[~]": tasks.StatusOngoing,
			"[ ]": tasks.StatusIncomplete,
		} {
			if strings.HasPrefix(taskText, mark) {
				status = s
				taskText = strings.TrimSpace(strings.TrimPrefix(taskText, mark))
				break
			}
		}
		if taskText == "" {
			continue
		}

		d := tasks.NewDraft()
		d.Name = taskText
		d.Description = taskText
		d.DueDate = currentDate
		d.Status = string(status)
		drafts = append(drafts, d)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading tasks: %w", err)
	}
	return drafts, nil
}
