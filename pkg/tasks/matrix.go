package tasks

import (
	"encoding/json"
	"strings"
)

// MatrixKey is the local-state key of the Eisenhower matrix assignments
const MatrixKey = "eisenhowerMatrix"

// Quadrant is one cell of the Eisenhower matrix
type Quadrant string

const (
	QuadrantDoFirst   Quadrant = "doFirst"   // urgent and important
	QuadrantSchedule  Quadrant = "schedule"  // important, not urgent
	QuadrantDelegate  Quadrant = "delegate"  // urgent, not important
	QuadrantEliminate Quadrant = "eliminate" // neither
)

// Quadrants lists the cells in display order
var Quadrants = []Quadrant{QuadrantDoFirst, QuadrantSchedule, QuadrantDelegate, QuadrantEliminate}

// Title is the heading shown for a quadrant
func (q Quadrant) Title() string {
	switch q {
	case QuadrantDoFirst:
		return "Do First"
	case QuadrantSchedule:
		return "Schedule"
	case QuadrantDelegate:
		return "Delegate"
	case QuadrantEliminate:
		return "Eliminate"
	}
	return string(q)
}

// Matrix maps each quadrant to the task ids placed in it.
// A task sits in at most one quadrant.
type Matrix struct {
	DoFirst   []int64 `json:"doFirst"`
	Schedule  []int64 `json:"schedule"`
	Delegate  []int64 `json:"delegate"`
	Eliminate []int64 `json:"eliminate"`
}

func (m *Matrix) cell(q Quadrant) *[]int64 {
	switch q {
	case QuadrantDoFirst:
		return &m.DoFirst
	case QuadrantSchedule:
		return &m.Schedule
	case QuadrantDelegate:
		return &m.Delegate
	case QuadrantEliminate:
		return &m.Eliminate
	}
	return nil
}

// IDs returns the task ids in a quadrant
func (m *Matrix) IDs(q Quadrant) []int64 {
	if c := m.cell(q); c != nil {
		return append([]int64(nil), (*c)...)
	}
	return nil
}

// Assign moves a task into a quadrant, removing it from any other
func (m *Matrix) Assign(id int64, q Quadrant) bool {
	c := m.cell(q)
	if c == nil {
		return false
	}
	m.Remove(id)
	*c = append(*c, id)
	return true
}

// Remove takes a task out of the matrix
func (m *Matrix) Remove(id int64) {
	for _, q := range Quadrants {
		c := m.cell(q)
		kept := (*c)[:0]
		for _, existing := range *c {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		*c = kept
	}
}

// QuadrantOf reports where a task was placed
func (m *Matrix) QuadrantOf(id int64) (Quadrant, bool) {
	for _, q := range Quadrants {
		for _, existing := range *m.cell(q) {
			if existing == id {
				return q, true
			}
		}
	}
	return "", false
}

// Unassigned returns the tasks not placed in any quadrant, in source order
func (m *Matrix) Unassigned(ts []Task) []Task {
	out := make([]Task, 0, len(ts))
	for _, t := range ts {
		if _, ok := m.QuadrantOf(t.ID); !ok {
			out = append(out, t)
		}
	}
	return out
}

// Tasks resolves a quadrant's ids against the current task list
func (m *Matrix) Tasks(q Quadrant, ts []Task) []Task {
	byID := make(map[int64]Task, len(ts))
	for _, t := range ts {
		byID[t.ID] = t
	}
	var out []Task
	for _, id := range m.IDs(q) {
		if t, ok := byID[id]; ok {
			out = append(out, t)
		}
	}
	return out
}

// Prune drops ids whose tasks no longer exist on the server
func (m *Matrix) Prune(ts []Task) {
	live := make(map[int64]bool, len(ts))
	for _, t := range ts {
		live[t.ID] = true
	}
	for _, q := range Quadrants {
		c := m.cell(q)
		kept := (*c)[:0]
		for _, id := range *c {
			if live[id] {
				kept = append(kept, id)
			}
		}
		*c = kept
	}
}

// LoadMatrix reads the saved assignments. A cache missing any quadrant or
// failing to parse is discarded and the matrix starts fresh.
func LoadMatrix(kv KV) (Matrix, error) {
	raw, err := kv.Get(MatrixKey)
	if err != nil {
		return Matrix{}, err
	}
	if strings.TrimSpace(raw) == "" {
		return Matrix{}, nil
	}

	var fields map[string]json.RawMessage
	var m Matrix
	if json.Unmarshal([]byte(raw), &fields) != nil || !hasAllQuadrants(fields) ||
		json.Unmarshal([]byte(raw), &m) != nil {
		return Matrix{}, kv.Delete(MatrixKey)
	}
	return m, nil
}

func hasAllQuadrants(fields map[string]json.RawMessage) bool {
	for _, q := range Quadrants {
		if _, ok := fields[string(q)]; !ok {
			return false
		}
	}
	return true
}

// SaveMatrix persists the assignments
func SaveMatrix(kv KV, m Matrix) error {
	for _, q := range Quadrants {
		if c := m.cell(q); *c == nil {
			*c = []int64{}
		}
	}
	data, err := json.Marshal(m)
	if err != nil {
		return err
	}
	return kv.Set(MatrixKey, string(data))
}
