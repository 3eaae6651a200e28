package tasks

import (
	"fmt"
	"math"
	"strings"
	"time"
)

// StatusFilter selects which tasks a screen shows
type StatusFilter string

const (
	FilterAll        StatusFilter = "all"
	FilterIncomplete StatusFilter = "incomplete"
	FilterOngoing    StatusFilter = "ongoing"
	FilterCompleted  StatusFilter = "completed"
	FilterUpcoming   StatusFilter = "upcoming"
	FilterOverdue    StatusFilter = "overdue"
)

// Filters is the closed set of filters in cycling order
var Filters = []StatusFilter{
	FilterAll,
	FilterIncomplete,
	FilterOngoing,
	FilterCompleted,
	FilterUpcoming,
	FilterOverdue,
}

// ParseStatusFilter accepts a filter name in any case
func ParseStatusFilter(s string) (StatusFilter, bool) {
	want := StatusFilter(strings.ToLower(strings.TrimSpace(s)))
	for _, f := range Filters {
		if f == want {
			return f, true
		}
	}
	return FilterAll, false
}

// Next returns the filter after f, wrapping around
func (f StatusFilter) Next() StatusFilter {
	for i, candidate := range Filters {
		if candidate == f {
			return Filters[(i+1)%len(Filters)]
		}
	}
	return FilterAll
}

// Status returns the exact status an exact-status filter selects
func (f StatusFilter) Status() (Status, bool) {
	switch f {
	case FilterIncomplete:
		return StatusIncomplete, true
	case FilterOngoing:
		return StatusOngoing, true
	case FilterCompleted:
		return StatusCompleted, true
	}
	return "", false
}

// Source records which endpoint populated a collection
type Source int

const (
	SourceAll       Source = iota // the full task list
	SourceCompleted               // the dedicated completed-tasks endpoint
)

// SourceFor reports which endpoint a screen should reload from for a filter
func SourceFor(f StatusFilter) Source {
	if f == FilterCompleted {
		return SourceCompleted
	}
	return SourceAll
}

// ViewModel owns one screen's task collection and derives filtered views from it.
// The collection is replaced wholesale on every fetch; it is never merged.
type ViewModel struct {
	Filter StatusFilter
	Query  string
	Now    func() time.Time

	tasks  []Task
	source Source
}

// NewViewModel returns an empty view model showing all tasks
func NewViewModel() *ViewModel {
	return &ViewModel{Filter: FilterAll, Now: time.Now}
}

// SetTasks replaces the collection with a fresh fetch result
func (vm *ViewModel) SetTasks(ts []Task, src Source) {
	vm.tasks = append(make([]Task, 0, len(ts)), ts...)
	vm.source = src
}

// Tasks returns a copy of the unfiltered collection
func (vm *ViewModel) Tasks() []Task {
	return append([]Task(nil), vm.tasks...)
}

// Source reports where the current collection came from
func (vm *ViewModel) Source() Source {
	return vm.source
}

// Len is the size of the unfiltered collection
func (vm *ViewModel) Len() int {
	return len(vm.tasks)
}

func (vm *ViewModel) now() time.Time {
	if vm.Now == nil {
		return time.Now()
	}
	return vm.Now()
}

// Derive applies the status filter then the search query, preserving source order.
// It never fails: tasks without a due date simply drop out of date-based filters.
func (vm *ViewModel) Derive() []Task {
	now := vm.now()
	query := strings.ToLower(vm.Query)

	// The completed endpoint has already partitioned by status
	skipStatus := vm.Filter == FilterCompleted && vm.source == SourceCompleted

	out := make([]Task, 0, len(vm.tasks))
	for _, t := range vm.tasks {
		if !skipStatus && !matchesFilter(vm.Filter, t, now) {
			continue
		}
		if query != "" && !matchesQuery(query, t) {
			continue
		}
		out = append(out, t)
	}
	return out
}

func matchesFilter(f StatusFilter, t Task, now time.Time) bool {
	switch f {
	case FilterAll, "":
		return true
	case FilterUpcoming:
		return t.HasDueDate() && t.DueDate.After(now) && !isCompleted(t)
	case FilterOverdue:
		return IsOverdue(t, now)
	default:
		return strings.ToUpper(string(t.Status)) == strings.ToUpper(string(f))
	}
}

func matchesQuery(lowerQuery string, t Task) bool {
	return strings.Contains(strings.ToLower(t.Title), lowerQuery) ||
		strings.Contains(strings.ToLower(t.Description), lowerQuery)
}

func isCompleted(t Task) bool {
	return strings.EqualFold(string(t.Status), WireCompleted)
}

// DaysRemaining is ceil((due - now) / 1 day): negative when overdue, 0 when due today.
// A task without a due date reports 0.
func DaysRemaining(t Task, now time.Time) int {
	if !t.HasDueDate() {
		return 0
	}
	days := math.Ceil(float64(t.DueDate.Sub(now)) / float64(24*time.Hour))
	if days == 0 {
		return 0 // avoid -0
	}
	return int(days)
}

// IsOverdue reports a past due date on a task that is not completed
func IsOverdue(t Task, now time.Time) bool {
	return t.HasDueDate() && t.DueDate.Before(now) && !isCompleted(t)
}

// DaysRemaining evaluates DaysRemaining against the view model's clock
func (vm *ViewModel) DaysRemaining(t Task) int {
	return DaysRemaining(t, vm.now())
}

// IsOverdue evaluates IsOverdue against the view model's clock
func (vm *ViewModel) IsOverdue(t Task) bool {
	return IsOverdue(t, vm.now())
}

// CountByStatus tallies the collection by status in one pass.
// Statuses with no tasks are absent from the map.
func (vm *ViewModel) CountByStatus() map[Status]int {
	return CountByStatus(vm.tasks)
}

// CountByStatus tallies any task slice by status
func CountByStatus(ts []Task) map[Status]int {
	counts := make(map[Status]int)
	for _, t := range ts {
		counts[t.Status]++
	}
	return counts
}

// DueBadge is the short due-date label shown next to a task
func DueBadge(t Task, now time.Time) string {
	if isCompleted(t) {
		return "Completed"
	}
	if !t.HasDueDate() {
		return "No due date"
	}
	switch days := DaysRemaining(t, now); {
	case days < 0:
		return "Overdue"
	case days == 0:
		return "Due today"
	case days == 1:
		return "Due tomorrow"
	default:
		return fmt.Sprintf("%d days left", days)
	}
}
