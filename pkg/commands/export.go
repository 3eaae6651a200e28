package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"tickit/pkg/tasks"
)

// ExportTypes lists the formats -export understands
var ExportTypes = []string{"json", "yaml", "txt", "ics"}

// HandleExportCommand processes -export commands
func HandleExportCommand(ctx context.Context, env *Env, filename, exportType string) error {
	all, err := collectTasks(ctx, env.Gateway)
	if err != nil {
		return err
	}

	content, err := Render(all, exportType, env.now())
	if err != nil {
		return err
	}

	// Ensure directory exists
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("error creating directory: %w", err)
	}
	if err := os.WriteFile(filename, content, 0644); err != nil {
		return fmt.Errorf("error writing file: %w", err)
	}

	env.printf("Successfully exported %d task(s) to %s\n", len(all), filename)
	return nil
}

// collectTasks merges the full list with the completed endpoint, first occurrence wins
func collectTasks(ctx context.Context, gw Gateway) ([]tasks.Task, error) {
	open, err := gw.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	done, err := gw.ListCompletedTasks(ctx)
	if err != nil {
		return nil, err
	}

	seen := make(map[int64]bool, len(open)+len(done))
	var all []tasks.Task
	for _, t := range append(open, done...) {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		all = append(all, t)
	}
	sort.SliceStable(all, func(i, j int) bool {
		if all[i].HasDueDate() != all[j].HasDueDate() {
			return !all[i].HasDueDate()
		}
		return all[i].DueDate.Before(all[j].DueDate)
	})
	return all, nil
}

// Render encodes tasks in one of ExportTypes
func Render(ts []tasks.Task, exportType string, now time.Time) ([]byte, error) {
	wire := make([]tasks.WireTask, 0, len(ts))
	for _, t := range ts {
		wire = append(wire, tasks.ToWire(t))
	}

	switch exportType {
	case "json":
		content, err := json.MarshalIndent(wire, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("error marshaling tasks to JSON: %w", err)
		}
		return content, nil

	case "yaml":
		content, err := yaml.Marshal(wire)
		if err != nil {
			return nil, fmt.Errorf("error marshaling tasks to YAML: %w", err)
		}
		return content, nil

	case "txt":
		return renderTxt(ts), nil

	case "ics":
		return renderICS(ts, now), nil
	}
	return nil, fmt.Errorf("unknown export type: %s", exportType)
}

func renderTxt(ts []tasks.Task) []byte {
	var lines []string
	var lastDate string
	for _, task := range ts {
		if task.HasDueDate() {
			dateStr := task.DueDate.Format("02.01.2006")
			if dateStr != lastDate {
				lines = append(lines, fmt.Sprintf("\n%s:", dateStr))
				lastDate = dateStr
			}
		}
		lines = append(lines, fmt.Sprintf("- [%s] %s", txtMark(task.Status), task.Title))
	}
	return []byte(strings.TrimSpace(strings.Join(lines, "\n")) + "\n")
}

func txtMark(s tasks.Status) string {
	switch s {
	case tasks.StatusCompleted:
		return "x"
	case tasks.StatusOngoing:
		return "~"
	}
	return " "
}

// renderICS writes one VTODO per task
func renderICS(ts []tasks.Task, now time.Time) []byte {
	var sb strings.Builder
	line := func(format string, args ...interface{}) {
		sb.WriteString(fmt.Sprintf(format, args...))
		sb.WriteString("\r\n")
	}

	stamp := now.UTC().Format("20060102T150405Z")
	line("BEGIN:VCALENDAR")
	line("VERSION:2.0")
	line("PRODID:-//TickIT//tickit//EN")
	for _, t := range ts {
		line("BEGIN:VTODO")
		line("UID:task-%d@tickit", t.ID)
		line("DTSTAMP:%s", stamp)
		line("SUMMARY:%s", icsEscape(t.Title))
		if t.Description != "" {
			line("DESCRIPTION:%s", icsEscape(t.Description))
		}
		if t.HasDueDate() {
			hour, minute := 0, 0
			fmt.Sscanf(t.DueTime, "%d:%d", &hour, &minute)
			due := time.Date(t.DueDate.Year(), t.DueDate.Month(), t.DueDate.Day(), hour, minute, 0, 0, time.Local)
			line("DUE:%s", due.Format("20060102T150405"))
		}
		line("PRIORITY:%d", icsPriority(t.Priority))
		line("STATUS:%s", icsStatus(t.Status))
		line("END:VTODO")
	}
	line("END:VCALENDAR")
	return []byte(sb.String())
}

func icsEscape(s string) string {
	return strings.NewReplacer(`\`, `\\`, ";", `\;`, ",", `\,`, "\n", `\n`).Replace(s)
}

func icsPriority(p tasks.Priority) int {
	switch p {
	case tasks.PriorityHigh:
		return 1
	case tasks.PriorityLow:
		return 9
	}
	return 5
}

func icsStatus(s tasks.Status) string {
	switch s {
	case tasks.StatusCompleted:
		return "COMPLETED"
	case tasks.StatusOngoing:
		return "IN-PROCESS"
	}
	return "NEEDS-ACTION"
}
