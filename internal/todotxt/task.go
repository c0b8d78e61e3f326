// Package todotxt parses todo.txt-formatted task lists into structured Task
// records. Each line is one task; parsing is total — lines that match no
// recognised token grammar degrade to free text instead of failing.
package todotxt

import (
	"sort"
	"time"
)

// EnergyLevel classifies how much mental energy a task demands, derived from
// the task's contexts.
type EnergyLevel string

// TimeEstimate classifies roughly how long a task takes, derived from the
// task's contexts.
type TimeEstimate string

const (
	EnergyHigh    EnergyLevel = "high"
	EnergyLow     EnergyLevel = "low"
	EnergyUnknown EnergyLevel = "unknown"
)

const (
	TimeQuick   TimeEstimate = "quick"
	TimeMedium  TimeEstimate = "medium"
	TimeDeep    TimeEstimate = "deep"
	TimeUnknown TimeEstimate = "unknown"
)

// Task is a single parsed todo.txt line. It is a value record: re-derived
// whenever the file is reloaded and never mutated in place.
type Task struct {
	// Raw is the original line, preserved verbatim for quoting back to callers.
	Raw string
	// LineNumber is the 1-based position of the line in the source file.
	// Zero for tasks parsed outside a file.
	LineNumber int

	Completed bool
	// Priority is a single letter A–Z, or empty when unprioritised.
	// Recorded even on completed tasks for historical display.
	Priority       string
	CompletionDate *time.Time
	CreationDate   *time.Time
	DueDate        *time.Time
	ThresholdDate  *time.Time

	// Projects holds one entry per +project token, in first-seen order,
	// deduplicated. Recurrence values (rec:+1w) never appear here.
	Projects []string
	// Contexts holds one entry per @context token, in first-seen order,
	// deduplicated.
	Contexts []string
	// Metadata maps every key:value token to its value; first occurrence
	// wins on duplicate keys. The due, t, and rec keys also appear here.
	Metadata map[string]string

	// Description is the line with the completion marker, positional dates,
	// priority, and key:value tokens stripped.
	Description string

	// Derived classifications, computed once at parse time from Contexts.
	Energy    EnergyLevel
	Time      TimeEstimate
	IsWaiting bool
	IsInbox   bool
}

// Recurrence returns the value of the rec: metadata key, or "" when the task
// is not recurring.
func (t *Task) Recurrence() string {
	return t.Metadata["rec"]
}

// HasProject reports whether name appears in the task's project list.
func (t *Task) HasProject(name string) bool {
	for _, p := range t.Projects {
		if p == name {
			return true
		}
	}
	return false
}

// HasContext reports whether name appears in the task's context list.
func (t *Task) HasContext(name string) bool {
	for _, c := range t.Contexts {
		if c == name {
			return true
		}
	}
	return false
}

// HasAnyContext reports whether the task carries at least one of the given
// contexts.
func (t *Task) HasAnyContext(names []string) bool {
	for _, n := range names {
		if t.HasContext(n) {
			return true
		}
	}
	return false
}

// TaskJSON is the serialisable shape returned to tool callers.
// Dates are formatted as YYYY-MM-DD strings; nil slices are normalised to
// empty slices so responses always contain arrays.
type TaskJSON struct {
	Raw            string            `json:"raw"`
	LineNumber     int               `json:"line_number,omitempty"`
	Completed      bool              `json:"completed"`
	Priority       string            `json:"priority,omitempty"`
	CompletionDate string            `json:"completion_date,omitempty"`
	CreationDate   string            `json:"creation_date,omitempty"`
	DueDate        string            `json:"due_date,omitempty"`
	ThresholdDate  string            `json:"threshold_date,omitempty"`
	Projects       []string          `json:"projects"`
	Contexts       []string          `json:"contexts"`
	Metadata       map[string]string `json:"metadata,omitempty"`
	Description    string            `json:"description"`
	Energy         EnergyLevel       `json:"energy_level"`
	Time           TimeEstimate      `json:"time_estimate"`
	IsWaiting      bool              `json:"is_waiting"`
	IsInbox        bool              `json:"is_inbox"`
}

// ToJSON converts a Task to its JSON-output representation.
// Nil slice fields are normalised to empty slices.
func (t *Task) ToJSON() TaskJSON {
	projects := t.Projects
	if projects == nil {
		projects = []string{}
	}
	contexts := t.Contexts
	if contexts == nil {
		contexts = []string{}
	}
	return TaskJSON{
		Raw:            t.Raw,
		LineNumber:     t.LineNumber,
		Completed:      t.Completed,
		Priority:       t.Priority,
		CompletionDate: formatDate(t.CompletionDate),
		CreationDate:   formatDate(t.CreationDate),
		DueDate:        formatDate(t.DueDate),
		ThresholdDate:  formatDate(t.ThresholdDate),
		Projects:       projects,
		Contexts:       contexts,
		Metadata:       t.Metadata,
		Description:    t.Description,
		Energy:         t.Energy,
		Time:           t.Time,
		IsWaiting:      t.IsWaiting,
		IsInbox:        t.IsInbox,
	}
}

// ToJSONList converts a slice of tasks, returning an empty (non-nil) slice
// for empty input.
func ToJSONList(tasks []*Task) []TaskJSON {
	out := make([]TaskJSON, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, t.ToJSON())
	}
	return out
}

// SortTasks orders tasks in suggestion order: priority ascending (A before B,
// unprioritised last), then due date ascending (absent due dates last), then
// original line order as a stable tiebreak.
func SortTasks(tasks []*Task) {
	sort.SliceStable(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if pa, pb := priorityRank(a.Priority), priorityRank(b.Priority); pa != pb {
			return pa < pb
		}
		switch {
		case a.DueDate != nil && b.DueDate == nil:
			return true
		case a.DueDate == nil && b.DueDate != nil:
			return false
		case a.DueDate != nil && b.DueDate != nil && !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.Before(*b.DueDate)
		}
		return a.LineNumber < b.LineNumber
	})
}

// priorityRank maps a priority letter to a sortable rank; the empty priority
// ranks after Z.
func priorityRank(p string) int {
	if p == "" {
		return 'Z' - 'A' + 1
	}
	return int(p[0] - 'A')
}

func formatDate(d *time.Time) string {
	if d == nil {
		return ""
	}
	return d.Format(dateLayout)
}
