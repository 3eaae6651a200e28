package ui

import (
	"fmt"
	"sort"
	"strings"

	"tickit/pkg/tasks"
)

// SortBy is the column the task table is ordered by
type SortBy int

const (
	SortNone SortBy = iota // server order
	SortByTitle
	SortByDueDate
	SortByPriority
	SortByStatus
	sortByCount
)

var sortByNames = []string{"server order", "title", "due date", "priority", "status"}

func (s SortBy) String() string { return sortByNames[s] }

// GroupBy is the attribute rows are grouped under
type GroupBy int

const (
	GroupByNone GroupBy = iota
	GroupByStatus
	GroupByPriority
	GroupByDueDateDaily
	GroupByDueDateWeekly
	GroupByDueDateMonthly
	groupByCount
)

var groupByNames = []string{"", "status", "priority", "day", "week", "month"}

func (g GroupBy) String() string { return groupByNames[g] }

// SortOrder flips the comparison
type SortOrder int

const (
	SortAsc SortOrder = iota
	SortDesc
)

// GroupedTasks represents tasks grouped by a common attribute
type GroupedTasks struct {
	GroupName string
	Tasks     []tasks.Task
}

func priorityRank(p tasks.Priority) int {
	for i, known := range tasks.Priorities {
		if known == p {
			return i
		}
	}
	return -1
}

func statusRank(s tasks.Status) int {
	for i, known := range tasks.Statuses {
		if known == s {
			return i
		}
	}
	return len(tasks.Statuses)
}

// SortTasks orders a copy of the tasks; equal keys keep server order
func (m *Model) SortTasks(ts []tasks.Task) []tasks.Task {
	sortedTasks := make([]tasks.Task, len(ts))
	copy(sortedTasks, ts)
	if m.sortBy == SortNone {
		return sortedTasks
	}

	less := func(a, b tasks.Task) bool {
		switch m.sortBy {
		case SortByTitle:
			return strings.ToLower(a.Title) < strings.ToLower(b.Title)
		case SortByDueDate:
			// Tasks without a due date go last
			if a.HasDueDate() != b.HasDueDate() {
				return a.HasDueDate()
			}
			if !a.DueDate.Equal(b.DueDate) {
				return a.DueDate.Before(b.DueDate)
			}
			return a.DueTime < b.DueTime
		case SortByPriority:
			return priorityRank(a.Priority) > priorityRank(b.Priority) // High first
		case SortByStatus:
			return statusRank(a.Status) < statusRank(b.Status)
		}
		return false
	}

	sort.SliceStable(sortedTasks, func(i, j int) bool {
		if m.sortOrder == SortDesc {
			return less(sortedTasks[j], sortedTasks[i])
		}
		return less(sortedTasks[i], sortedTasks[j])
	})

	return sortedTasks
}

// GroupTasks groups tasks based on the specified criteria
func (m *Model) GroupTasks(ts []tasks.Task) []GroupedTasks {
	if m.groupBy == GroupByNone {
		return []GroupedTasks{{GroupName: "", Tasks: m.SortTasks(ts)}}
	}

	groups := make(map[string][]tasks.Task)
	order := make(map[string]string) // group name -> sort key

	for _, task := range ts {
		var groupKey, sortKey string

		switch m.groupBy {
		case GroupByStatus:
			groupKey = string(task.Status)
			sortKey = fmt.Sprintf("%d", statusRank(task.Status))

		case GroupByPriority:
			groupKey = string(task.Priority)
			sortKey = fmt.Sprintf("%d", len(tasks.Priorities)-priorityRank(task.Priority))

		case GroupByDueDateDaily:
			groupKey = task.DueDate.Format("Mon, Jan 2 2006")
			sortKey = task.DueDate.Format(tasks.DateLayout)

		case GroupByDueDateWeekly:
			year, week := task.DueDate.ISOWeek()
			groupKey = fmt.Sprintf("Week %d, %d", week, year)
			sortKey = fmt.Sprintf("%04d-%02d", year, week)

		case GroupByDueDateMonthly:
			groupKey = task.DueDate.Format("January 2006")
			sortKey = task.DueDate.Format("2006-01")
		}

		if m.groupBy >= GroupByDueDateDaily && !task.HasDueDate() {
			groupKey, sortKey = "No due date", "~"
		}

		groups[groupKey] = append(groups[groupKey], task)
		order[groupKey] = sortKey
	}

	// Convert map to sorted slice
	var groupNames []string
	for name := range groups {
		groupNames = append(groupNames, name)
	}
	sort.Slice(groupNames, func(i, j int) bool {
		return order[groupNames[i]] < order[groupNames[j]]
	})

	var result []GroupedTasks
	for _, name := range groupNames {
		result = append(result, GroupedTasks{
			GroupName: name,
			Tasks:     m.SortTasks(groups[name]),
		})
	}

	return result
}
