package tasks

import (
	"fmt"
	"math"
	"sort"
	"time"
)

// Summary is the dashboard's headline numbers
type Summary struct {
	Total     int
	Completed int
	Ongoing   int
	Upcoming  int
	Overdue   int
}

// Summarize builds dashboard numbers from the full list and the completed-tasks endpoint.
// The two collections are counted side by side, the way the dashboard fetches them.
func Summarize(all, completed []Task, now time.Time) Summary {
	s := Summary{
		Total:     len(all) + len(completed),
		Completed: len(completed),
	}
	for _, t := range all {
		if t.Status == StatusOngoing {
			s.Ongoing++
		}
		if matchesFilter(FilterUpcoming, t, now) {
			s.Upcoming++
		}
		if IsOverdue(t, now) {
			s.Overdue++
		}
	}
	return s
}

// WeekdayLabels are the buckets of WeeklyCompleted
var WeekdayLabels = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// WeeklyCompleted counts completed tasks per day of the current Monday-based week,
// using the due date between the start of the week and now.
func WeeklyCompleted(completed []Task, now time.Time) [7]int {
	var counts [7]int
	start := StartOfWeek(now)
	for _, t := range completed {
		if !t.HasDueDate() {
			continue
		}
		if t.DueDate.Before(start) || t.DueDate.After(now) {
			continue
		}
		counts[(int(t.DueDate.Weekday())+6)%7]++
	}
	return counts
}

// StartOfWeek returns local midnight of the Monday on or before t
func StartOfWeek(t time.Time) time.Time {
	offset := (int(t.Weekday()) + 6) % 7
	y, m, d := t.AddDate(0, 0, -offset).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// RecentCompleted returns up to n completed tasks, latest due date first
func RecentCompleted(completed []Task, n int) []Task {
	out := append([]Task(nil), completed...)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DueDate.After(out[j].DueDate)
	})
	if n >= 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// RelativeTime renders how long ago t was, in the dashboard's activity wording
func RelativeTime(t, now time.Time) string {
	hours := int(math.Floor(now.Sub(t).Hours()))
	switch {
	case hours < 1:
		return "Just now"
	case hours == 1:
		return "1 hour ago"
	case hours < 24:
		return fmt.Sprintf("%d hours ago", hours)
	case hours < 48:
		return "Yesterday"
	case hours < 168:
		return fmt.Sprintf("%d days ago", hours/24)
	default:
		return t.Format("Jan 2, 2006")
	}
}

// HabitProgress returns the completion percentage (rounded, capped at 100)
// and the label the daily planner shows for it
func HabitProgress(total, completed int) (int, string) {
	pct := 0.0
	if total > 0 {
		pct = float64(completed) / float64(total) * 100
	}
	display := int(math.Min(math.Round(pct), 100))

	switch {
	case pct == 0:
		return display, "Not Started"
	case pct < 30:
		return display, "Just Beginning"
	case pct < 60:
		return display, "Making Progress"
	case pct < 100:
		return display, "Almost There"
	default:
		return display, "Completed"
	}
}
