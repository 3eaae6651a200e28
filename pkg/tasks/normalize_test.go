package tasks_test

import (
	"testing"

	"tickit/pkg/tasks"

	"github.com/stretchr/testify/assert"
)

func TestStatusRoundTrip(t *testing.T) {
	for _, s := range tasks.Statuses {
		assert.Equal(t, s, tasks.ToUIStatus(tasks.ToWireStatus(s)), "status %s", s)
	}
}

func TestToWireStatus(t *testing.T) {
	assert.Equal(t, "ONGOING", tasks.ToWireStatus("Ongoing"))
	assert.Equal(t, "COMPLETED", tasks.ToWireStatus("COMPLETED"))
	assert.Equal(t, "INCOMPLETE", tasks.ToWireStatus(""))
	assert.Equal(t, "INCOMPLETE", tasks.ToWireStatus("Archived"))
}

func TestToUIStatus(t *testing.T) {
	assert.Equal(t, tasks.StatusIncomplete, tasks.ToUIStatus(""))
	assert.Equal(t, tasks.StatusOngoing, tasks.ToUIStatus("ongoing"))
	assert.Equal(t, tasks.StatusCompleted, tasks.ToUIStatus("COMPLETED"))
	// Unknown values are shown as-is
	assert.Equal(t, tasks.Status("ARCHIVED"), tasks.ToUIStatus("ARCHIVED"))
}

func TestPriorityMapping(t *testing.T) {
	assert.Equal(t, "HIGH", tasks.ToWirePriority(tasks.PriorityHigh))
	assert.Equal(t, "MEDIUM", tasks.ToWirePriority(""))
	assert.Equal(t, tasks.PriorityLow, tasks.ToUIPriority("LOW"))
	assert.Equal(t, tasks.Priority("URGENT"), tasks.ToUIPriority("URGENT"))
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, tasks.StatusCompleted, tasks.NextStatus(tasks.StatusOngoing))
	assert.Equal(t, tasks.StatusOngoing, tasks.NextStatus(tasks.StatusCompleted))
	assert.Equal(t, tasks.StatusOngoing, tasks.NextStatus(tasks.StatusIncomplete))
}

func TestTo12Hour(t *testing.T) {
	cases := map[string]string{
		"14:30": "02:30 PM",
		"00:05": "12:05 AM",
		"12:00": "12:00 PM",
		"9:15":  "09:15 AM",
		"23:59": "11:59 PM",
		"":      "12:00 PM",
		"25:00": "12:00 PM",
		"ab:cd": "12:00 PM",
	}
	for in, want := range cases {
		assert.Equal(t, want, tasks.To12Hour(in), "input %q", in)
	}
}

func TestTo24Hour(t *testing.T) {
	cases := map[string]string{
		"02:30 PM": "14:30",
		"12:05 AM": "00:05",
		"12:00 PM": "12:00",
		"9:15am":   "09:15",
		"14:30":    "14:30",
		"garbage":  "12:00",
		"13:00 PM": "12:00",
	}
	for in, want := range cases {
		assert.Equal(t, want, tasks.To24Hour(in), "input %q", in)
	}
}

func TestClockRoundTrip(t *testing.T) {
	for _, hhmm := range []string{"00:00", "06:45", "12:00", "12:30", "18:01", "23:59"} {
		assert.Equal(t, hhmm, tasks.To24Hour(tasks.To12Hour(hhmm)))
	}
}
