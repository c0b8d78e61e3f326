// Package query answers read-only questions over a todo.txt task list.
// Every operation reloads the file, filters and sorts in memory, and returns
// a serialisable result — nothing is cached between calls and nothing ever
// writes to the file.
package query

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

// ErrInvalidFilter is returned by Filter.Validate for filter values outside
// their allowed set. Callers can use errors.Is to distinguish validation
// failures from I/O failures.
var ErrInvalidFilter = errors.New("invalid filter")

// Filter holds the criteria used to narrow down a task list.
// Zero values mean "no constraint" — only non-zero fields are applied.
// An absent energy/time filter is not a filter for "unknown".
type Filter struct {
	// IncludeCompleted keeps completed tasks in the result. By default only
	// active tasks pass.
	IncludeCompleted bool
	// Project is an exact membership test against the task's project set.
	Project string
	// Context is an exact membership test against the task's context set.
	Context string
	// IncludeProjects keeps only tasks carrying at least one listed project.
	IncludeProjects []string
	// ExcludeProjects drops tasks carrying any listed project.
	ExcludeProjects []string
	// IncludeContexts keeps only tasks carrying at least one listed context.
	IncludeContexts []string
	// ExcludeContexts drops tasks carrying any listed context.
	ExcludeContexts []string
	// Energy keeps only tasks whose derived energy level matches ("" = any).
	Energy todotxt.EnergyLevel
	// Time keeps only tasks whose derived time estimate matches ("" = any).
	Time todotxt.TimeEstimate
	// Offline drops tasks carrying a connectivity context.
	Offline bool
	// HasDueDate, when set, keeps only tasks with (true) or without (false)
	// a due date.
	HasDueDate *bool
	// Keyword is a case-insensitive substring matched against description,
	// raw text, projects, and contexts.
	Keyword string
	// MaxResults truncates the result after sorting (0 = no limit).
	// Applied by the engine, not by Apply, so truncation always happens on
	// the sorted list.
	MaxResults int
}

// Validate checks that every constrained field carries an allowed value.
// The offending value is included in the error so callers can surface it.
func (f Filter) Validate() error {
	switch f.Energy {
	case "", todotxt.EnergyHigh, todotxt.EnergyLow:
	default:
		return fmt.Errorf("%w: energy_level %q, must be one of high, low", ErrInvalidFilter, f.Energy)
	}
	switch f.Time {
	case "", todotxt.TimeQuick, todotxt.TimeMedium, todotxt.TimeDeep:
	default:
		return fmt.Errorf("%w: time_estimate %q, must be one of quick, medium, deep", ErrInvalidFilter, f.Time)
	}
	if f.MaxResults < 0 {
		return fmt.Errorf("%w: max_results %d, must not be negative", ErrInvalidFilter, f.MaxResults)
	}
	return nil
}

// Apply returns the subset of tasks that satisfy every non-zero field of f.
// The input order is preserved; the original slice is not modified.
// Conventions supply the connectivity contexts for Offline.
func Apply(tasks []*todotxt.Task, f Filter, conv todotxt.Conventions) []*todotxt.Task {
	var out []*todotxt.Task
	for _, t := range tasks {
		if !matchesFilter(t, f, conv) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// matchesFilter reports whether t satisfies all active constraints in f.
func matchesFilter(t *todotxt.Task, f Filter, conv todotxt.Conventions) bool {
	if t.Completed && !f.IncludeCompleted {
		return false
	}
	if f.Project != "" && !t.HasProject(f.Project) {
		return false
	}
	if f.Context != "" && !t.HasContext(f.Context) {
		return false
	}
	if len(f.IncludeProjects) > 0 && !hasAnyProject(t, f.IncludeProjects) {
		return false
	}
	if len(f.ExcludeProjects) > 0 && hasAnyProject(t, f.ExcludeProjects) {
		return false
	}
	if len(f.IncludeContexts) > 0 && !t.HasAnyContext(f.IncludeContexts) {
		return false
	}
	if len(f.ExcludeContexts) > 0 && t.HasAnyContext(f.ExcludeContexts) {
		return false
	}
	if f.Energy != "" && t.Energy != f.Energy {
		return false
	}
	if f.Time != "" && t.Time != f.Time {
		return false
	}
	if f.Offline && t.HasAnyContext(conv.OnlineContexts) {
		return false
	}
	if f.HasDueDate != nil {
		if *f.HasDueDate && t.DueDate == nil {
			return false
		}
		if !*f.HasDueDate && t.DueDate != nil {
			return false
		}
	}
	if f.Keyword != "" && !matchesKeyword(t, strings.ToLower(f.Keyword)) {
		return false
	}
	return true
}

func hasAnyProject(t *todotxt.Task, names []string) bool {
	for _, n := range names {
		if t.HasProject(n) {
			return true
		}
	}
	return false
}

// matchesKeyword reports whether t's description, raw text, any project, or
// any context contains lower (already lower-cased) as a substring.
func matchesKeyword(t *todotxt.Task, lower string) bool {
	if strings.Contains(strings.ToLower(t.Description), lower) {
		return true
	}
	if strings.Contains(strings.ToLower(t.Raw), lower) {
		return true
	}
	for _, p := range t.Projects {
		if strings.Contains(strings.ToLower(p), lower) {
			return true
		}
	}
	for _, c := range t.Contexts {
		if strings.Contains(strings.ToLower(c), lower) {
			return true
		}
	}
	return false
}
