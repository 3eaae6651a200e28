package tasks

import (
	"fmt"
	"strconv"
	"strings"
)

// Wire status values used by the backend
const (
	WireIncomplete = "INCOMPLETE"
	WireOngoing    = "ONGOING"
	WireCompleted  = "COMPLETED"
)

const default12Hour = "12:00 PM"

// ToWireStatus maps a presentation status to the backend enumeration.
// Unrecognised input never fails; it becomes INCOMPLETE.
func ToWireStatus(s Status) string {
	switch strings.TrimSpace(string(s)) {
	case "Incomplete", WireIncomplete:
		return WireIncomplete
	case "Ongoing", WireOngoing:
		return WireOngoing
	case "Completed", WireCompleted:
		return WireCompleted
	default:
		return WireIncomplete
	}
}

// ToUIStatus maps a backend status to its presentation form, ignoring case.
// An empty status reads as Incomplete; anything unrecognised is passed through.
func ToUIStatus(s string) Status {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return StatusIncomplete
	}
	switch strings.ToUpper(trimmed) {
	case WireIncomplete:
		return StatusIncomplete
	case WireOngoing:
		return StatusOngoing
	case WireCompleted:
		return StatusCompleted
	default:
		return Status(s)
	}
}

// ToWirePriority uppercases a priority, defaulting to MEDIUM when none is set
func ToWirePriority(p Priority) string {
	trimmed := strings.TrimSpace(string(p))
	if trimmed == "" {
		return "MEDIUM"
	}
	return strings.ToUpper(trimmed)
}

// ToUIPriority maps a backend priority to title case; unknown values pass through
func ToUIPriority(s string) Priority {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "LOW":
		return PriorityLow
	case "MEDIUM":
		return PriorityMedium
	case "HIGH":
		return PriorityHigh
	default:
		return Priority(s)
	}
}

// NextStatus is the quick status cycle of the task list.
// Completed reopens as Ongoing, Ongoing completes, everything else starts.
func NextStatus(s Status) Status {
	if ToUIStatus(string(s)) == StatusOngoing {
		return StatusCompleted
	}
	return StatusOngoing
}

// To12Hour converts a 24-hour "HH:MM" into the backend's "hh:mm AM|PM".
// Empty or malformed input yields "12:00 PM".
func To12Hour(hhmm string) string {
	hour, minute, ok := parseClock(hhmm)
	if !ok || hour > 23 {
		return default12Hour
	}

	period := "AM"
	if hour >= 12 {
		period = "PM"
	}
	hour12 := hour % 12
	if hour12 == 0 {
		hour12 = 12
	}
	return fmt.Sprintf("%02d:%02d %s", hour12, minute, period)
}

// To24Hour converts "hh:mm AM|PM" back into "HH:MM" for the edit form.
// Input already in 24-hour form is normalised; malformed input yields the form default.
func To24Hour(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))

	period := ""
	switch {
	case strings.HasSuffix(upper, "AM"):
		period = "AM"
	case strings.HasSuffix(upper, "PM"):
		period = "PM"
	}
	clock := strings.TrimSpace(strings.TrimSuffix(upper, period))

	hour, minute, ok := parseClock(clock)
	if !ok {
		return DefaultDueTime
	}

	switch period {
	case "":
		if hour > 23 {
			return DefaultDueTime
		}
	case "AM":
		if hour < 1 || hour > 12 {
			return DefaultDueTime
		}
		if hour == 12 {
			hour = 0
		}
	case "PM":
		if hour < 1 || hour > 12 {
			return DefaultDueTime
		}
		if hour != 12 {
			hour += 12
		}
	}
	return fmt.Sprintf("%02d:%02d", hour, minute)
}

// ValidClock reports whether s is a usable 24-hour "HH:MM"
func ValidClock(s string) bool {
	hour, _, ok := parseClock(s)
	return ok && hour <= 23
}

// parseClock reads "H:MM" or "HH:MM" (an optional ":SS" is ignored)
func parseClock(s string) (int, int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 {
		return 0, 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, 0, false
	}
	return hour, minute, true
}
