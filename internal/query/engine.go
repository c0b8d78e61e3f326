package query

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/vojtapolasek/todo-mcp-server/internal/todotxt"
)

const (
	defaultMaxSuggestions = 5
	defaultDueSoonDays    = 7
	topProjectsLimit      = 10
	noPriorityKey         = "none"
	noProjectKey          = "none"
)

// Options tunes an Engine. Zero values fall back to defaults.
type Options struct {
	// MaxSuggestions caps SuggestNext results (default 5).
	MaxSuggestions int
	// DueSoonDays is the Overview lookahead for the due-soon count (default 7).
	DueSoonDays int
	// Logger receives debug-level load information. Defaults to a no-op logger.
	Logger *zerolog.Logger
}

// Engine answers read-only queries over a todo.txt file. Every operation
// reloads and re-parses the file, so concurrent calls are safe and results
// always reflect the file's current on-disk contents.
type Engine struct {
	path           string
	conv           todotxt.Conventions
	maxSuggestions int
	dueSoonDays    int
	log            zerolog.Logger

	// now is swappable in tests; date comparisons use its calendar day.
	now func() time.Time
}

// NewEngine creates an Engine over the todo.txt file at path.
func NewEngine(path string, conv todotxt.Conventions, opts Options) *Engine {
	e := &Engine{
		path:           path,
		conv:           conv,
		maxSuggestions: opts.MaxSuggestions,
		dueSoonDays:    opts.DueSoonDays,
		log:            zerolog.Nop(),
		now:            time.Now,
	}
	if e.maxSuggestions <= 0 {
		e.maxSuggestions = defaultMaxSuggestions
	}
	if e.dueSoonDays <= 0 {
		e.dueSoonDays = defaultDueSoonDays
	}
	if opts.Logger != nil {
		e.log = *opts.Logger
	}
	return e
}

// Path returns the todo.txt file path the engine reads.
func (e *Engine) Path() string {
	return e.path
}

// load reads and parses the whole file. Called at the start of every
// operation — no state is kept between calls.
func (e *Engine) load() ([]*todotxt.Task, error) {
	tasks, err := todotxt.Load(e.path, e.conv)
	if err != nil {
		return nil, err
	}
	e.log.Debug().Str("file", e.path).Int("tasks", len(tasks)).Msg("loaded todo file")
	return tasks, nil
}

// --- overview ----------------------------------------------------------------

// ProjectCount pairs a project name with the number of tasks carrying it.
type ProjectCount struct {
	Project string `json:"project"`
	Count   int    `json:"count"`
}

// Overview aggregates counts over the whole task list.
type Overview struct {
	Total      int            `json:"total_tasks"`
	Active     int            `json:"active_tasks"`
	Completed  int            `json:"completed_tasks"`
	Waiting    int            `json:"waiting_tasks"`
	Inbox      int            `json:"inbox_tasks"`
	ByPriority map[string]int `json:"priority_distribution"`
	// TopProjects counts active tasks per project, inbox markers excluded,
	// at most ten entries, highest count first.
	TopProjects []ProjectCount `json:"top_projects"`
	DueToday    int            `json:"due_today"`
	Overdue     int            `json:"overdue"`
	DueSoon     int            `json:"due_soon"`
}

// Overview computes aggregate counts. Priority and due-date figures cover
// active tasks only; completed tasks contribute to Total and Completed.
func (e *Engine) Overview() (Overview, error) {
	tasks, err := e.load()
	if err != nil {
		return Overview{}, err
	}

	today := e.today()
	dueSoonCutoff := today.AddDate(0, 0, e.dueSoonDays)

	ov := Overview{
		Total:       len(tasks),
		ByPriority:  make(map[string]int),
		TopProjects: []ProjectCount{},
	}

	projectCounts := make(map[string]int)
	for _, t := range tasks {
		if t.Completed {
			ov.Completed++
			continue
		}
		ov.Active++
		if t.IsWaiting {
			ov.Waiting++
		}
		if t.IsInbox {
			ov.Inbox++
		}

		key := t.Priority
		if key == "" {
			key = noPriorityKey
		}
		ov.ByPriority[key]++

		for _, p := range t.Projects {
			if !contains(e.conv.InboxProjects, p) {
				projectCounts[p]++
			}
		}

		if t.DueDate == nil {
			continue
		}
		due := *t.DueDate
		switch {
		case due.Before(today):
			ov.Overdue++
		case due.Equal(today):
			ov.DueToday++
		}
		if !due.Before(today) && !due.After(dueSoonCutoff) {
			ov.DueSoon++
		}
	}

	ov.TopProjects = topProjects(projectCounts, topProjectsLimit)
	return ov, nil
}

// topProjects returns the highest-count projects, ties broken by name.
func topProjects(counts map[string]int, limit int) []ProjectCount {
	out := make([]ProjectCount, 0, len(counts))
	for p, n := range counts {
		out = append(out, ProjectCount{Project: p, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Project < out[j].Project
	})
	if len(out) > limit {
		out = out[:limit]
	}
	return out
}

// --- suggestions -------------------------------------------------------------

// SuggestParams narrows SuggestNext candidates. Zero values mean no
// constraint. When Time is empty and TimeAvailableMinutes is positive, the
// minutes map to a time estimate: ≤15 quick, ≤60 medium, above that deep.
type SuggestParams struct {
	Energy               todotxt.EnergyLevel
	Time                 todotxt.TimeEstimate
	TimeAvailableMinutes int
	Context              string
	Project              string
	Offline              bool
}

// Suggestion is the result of SuggestNext. Tasks is capped at the engine's
// suggestion limit and sorted best-first; the first entry is the pick.
type Suggestion struct {
	Tasks          []todotxt.TaskJSON `json:"tasks"`
	Reasoning      string             `json:"reasoning"`
	TotalAvailable int                `json:"total_available"`
	Candidates     int                `json:"filtered_candidates"`
}

// SuggestNext returns the best next tasks to work on. Completed and waiting
// tasks never appear. Energy/time constraints that would empty the candidate
// list fall back to the unconstrained candidates, noted in the reasoning.
func (e *Engine) SuggestNext(p SuggestParams) (Suggestion, error) {
	timeTarget := p.Time
	if timeTarget == "" && p.TimeAvailableMinutes > 0 {
		timeTarget = estimateForMinutes(p.TimeAvailableMinutes)
	}

	base := Filter{
		Context:         p.Context,
		Project:         p.Project,
		Offline:         p.Offline,
		ExcludeContexts: e.conv.WaitingContexts,
		ExcludeProjects: e.conv.WaitingProjects,
	}
	if err := (Filter{Energy: p.Energy, Time: timeTarget}).Validate(); err != nil {
		return Suggestion{}, err
	}

	tasks, err := e.load()
	if err != nil {
		return Suggestion{}, err
	}

	available := Apply(tasks, base, e.conv)
	if len(available) == 0 {
		return Suggestion{
			Tasks:     []todotxt.TaskJSON{},
			Reasoning: "no available tasks found",
		}, nil
	}

	candidates := available
	var notes []string
	if p.Energy != "" {
		if narrowed := Apply(candidates, Filter{Energy: p.Energy}, e.conv); len(narrowed) > 0 {
			candidates = narrowed
			notes = append(notes, fmt.Sprintf("filtered for %s energy tasks", p.Energy))
		} else {
			notes = append(notes, "no tasks matched the energy filter, showing all available")
		}
	}
	if timeTarget != "" {
		if narrowed := Apply(candidates, Filter{Time: timeTarget}, e.conv); len(narrowed) > 0 {
			candidates = narrowed
			notes = append(notes, fmt.Sprintf("filtered for %s duration tasks", timeTarget))
		} else {
			notes = append(notes, "no tasks matched the duration filter, showing all available")
		}
	}

	todotxt.SortTasks(candidates)
	capped := candidates
	if len(capped) > e.maxSuggestions {
		capped = capped[:e.maxSuggestions]
	}

	return Suggestion{
		Tasks:          todotxt.ToJSONList(capped),
		Reasoning:      e.buildReasoning(capped[0], p, notes),
		TotalAvailable: len(available),
		Candidates:     len(candidates),
	}, nil
}

// buildReasoning explains why the top pick was chosen, mirroring the
// suggestion output a caller can quote back to the user.
func (e *Engine) buildReasoning(top *todotxt.Task, p SuggestParams, notes []string) string {
	var reasons []string
	if top.DueDate != nil {
		if !top.DueDate.After(e.today()) {
			reasons = append(reasons, "due today or overdue")
		} else {
			reasons = append(reasons, fmt.Sprintf("due %s", top.DueDate.Format("2006-01-02")))
		}
	}
	if top.Priority != "" {
		reasons = append(reasons, fmt.Sprintf("priority %s", top.Priority))
	}
	if p.Context != "" {
		reasons = append(reasons, fmt.Sprintf("matches context %s", p.Context))
	}
	if p.TimeAvailableMinutes > 0 {
		reasons = append(reasons, fmt.Sprintf("fits the %d minutes available", p.TimeAvailableMinutes))
	}
	reasons = append(reasons, notes...)
	if len(reasons) == 0 {
		reasons = append(reasons, "next in priority order")
	}
	return strings.Join(reasons, "; ")
}

// estimateForMinutes maps available minutes to a time estimate bucket.
func estimateForMinutes(minutes int) todotxt.TimeEstimate {
	switch {
	case minutes <= 15:
		return todotxt.TimeQuick
	case minutes <= 60:
		return todotxt.TimeMedium
	default:
		return todotxt.TimeDeep
	}
}

// --- project / context / waiting / inbox -------------------------------------

// ProjectTasks is the result of ByProject: active tasks split from waiting
// ones, both sorted in suggestion order.
type ProjectTasks struct {
	Project string             `json:"project"`
	Active  []todotxt.TaskJSON `json:"active_tasks"`
	Waiting []todotxt.TaskJSON `json:"waiting_tasks"`
	Total   int                `json:"total_count"`
}

// ByProject returns the active tasks carrying the named project. An unknown
// project yields empty lists, not an error.
func (e *Engine) ByProject(name string) (ProjectTasks, error) {
	tasks, err := e.load()
	if err != nil {
		return ProjectTasks{}, err
	}

	matched := Apply(tasks, Filter{Project: name}, e.conv)
	todotxt.SortTasks(matched)

	var active, waiting []*todotxt.Task
	for _, t := range matched {
		if t.IsWaiting {
			waiting = append(waiting, t)
		} else {
			active = append(active, t)
		}
	}
	return ProjectTasks{
		Project: name,
		Active:  todotxt.ToJSONList(active),
		Waiting: todotxt.ToJSONList(waiting),
		Total:   len(matched),
	}, nil
}

// WaitingTasks is the result of Waiting: every blocked task, plus the same
// tasks grouped by project (tasks without a project group under "none").
type WaitingTasks struct {
	Tasks map[string][]todotxt.TaskJSON `json:"by_project"`
	All   []todotxt.TaskJSON            `json:"waiting_tasks"`
	Total int                           `json:"total_count"`
}

// Waiting returns all active tasks blocked on someone else.
func (e *Engine) Waiting() (WaitingTasks, error) {
	tasks, err := e.load()
	if err != nil {
		return WaitingTasks{}, err
	}

	var waiting []*todotxt.Task
	for _, t := range tasks {
		if !t.Completed && t.IsWaiting {
			waiting = append(waiting, t)
		}
	}
	todotxt.SortTasks(waiting)

	byProject := make(map[string][]todotxt.TaskJSON)
	for _, t := range waiting {
		projects := t.Projects
		if len(projects) == 0 {
			projects = []string{noProjectKey}
		}
		for _, p := range projects {
			byProject[p] = append(byProject[p], t.ToJSON())
		}
	}

	return WaitingTasks{
		Tasks: byProject,
		All:   todotxt.ToJSONList(waiting),
		Total: len(waiting),
	}, nil
}

// InboxTasks is the result of Inbox.
type InboxTasks struct {
	Tasks           []todotxt.TaskJSON `json:"inbox_tasks"`
	Count           int                `json:"count"`
	NeedsProcessing bool               `json:"needs_processing"`
}

// Inbox returns all active tasks carrying the inbox project marker.
func (e *Engine) Inbox() (InboxTasks, error) {
	tasks, err := e.load()
	if err != nil {
		return InboxTasks{}, err
	}

	var inbox []*todotxt.Task
	for _, t := range tasks {
		if !t.Completed && t.IsInbox {
			inbox = append(inbox, t)
		}
	}
	todotxt.SortTasks(inbox)

	return InboxTasks{
		Tasks:           todotxt.ToJSONList(inbox),
		Count:           len(inbox),
		NeedsProcessing: len(inbox) > 0,
	}, nil
}

// ContextTasks is the result of ByContext.
type ContextTasks struct {
	Context string             `json:"context"`
	Tasks   []todotxt.TaskJSON `json:"tasks"`
	Count   int                `json:"count"`
}

// ByContext returns the active tasks carrying the named context. An unknown
// context yields an empty list, not an error.
func (e *Engine) ByContext(name string) (ContextTasks, error) {
	tasks, err := e.load()
	if err != nil {
		return ContextTasks{}, err
	}

	matched := Apply(tasks, Filter{Context: name}, e.conv)
	todotxt.SortTasks(matched)

	return ContextTasks{
		Context: name,
		Tasks:   todotxt.ToJSONList(matched),
		Count:   len(matched),
	}, nil
}

// --- generic query -----------------------------------------------------------

// QuerySummary aggregates quick statistics over a query result.
type QuerySummary struct {
	ByPriority   map[string]int `json:"priority_distribution"`
	TopProjects  []ProjectCount `json:"top_projects"`
	Contexts     map[string]int `json:"contexts"`
	WithDueDates int            `json:"with_due_dates"`
	DueToday     int            `json:"due_today"`
	Overdue      int            `json:"overdue"`
}

// QueryResult is the result of AllTasks.
type QueryResult struct {
	Tasks     []todotxt.TaskJSON `json:"tasks"`
	Total     int                `json:"total_returned"`
	Truncated bool               `json:"truncated"`
	Summary   QuerySummary       `json:"summary"`
}

// AllTasks is the single generic entry point: it validates f, loads the
// file, applies every supplied filter conjunctively, sorts, and truncates to
// f.MaxResults. The summary covers the returned tasks only.
func (e *Engine) AllTasks(f Filter) (QueryResult, error) {
	if err := f.Validate(); err != nil {
		return QueryResult{}, err
	}

	tasks, err := e.load()
	if err != nil {
		return QueryResult{}, err
	}

	matched := Apply(tasks, f, e.conv)
	todotxt.SortTasks(matched)

	truncated := false
	if f.MaxResults > 0 && len(matched) > f.MaxResults {
		matched = matched[:f.MaxResults]
		truncated = true
	}

	return QueryResult{
		Tasks:     todotxt.ToJSONList(matched),
		Total:     len(matched),
		Truncated: truncated,
		Summary:   e.summarize(matched),
	}, nil
}

// summarize computes quick statistics over an already-filtered task list.
func (e *Engine) summarize(tasks []*todotxt.Task) QuerySummary {
	s := QuerySummary{
		ByPriority:  make(map[string]int),
		TopProjects: []ProjectCount{},
		Contexts:    make(map[string]int),
	}

	today := e.today()
	projectCounts := make(map[string]int)
	for _, t := range tasks {
		key := t.Priority
		if key == "" {
			key = noPriorityKey
		}
		s.ByPriority[key]++
		for _, p := range t.Projects {
			projectCounts[p]++
		}
		for _, c := range t.Contexts {
			s.Contexts[c]++
		}
		if t.DueDate == nil {
			continue
		}
		s.WithDueDates++
		if t.DueDate.Before(today) {
			s.Overdue++
		} else if t.DueDate.Equal(today) {
			s.DueToday++
		}
	}
	s.TopProjects = topProjects(projectCounts, topProjectsLimit)
	return s
}

// --- helpers -----------------------------------------------------------------

// today returns the current calendar day at midnight UTC, matching the
// date-only granularity of todo.txt due dates.
func (e *Engine) today() time.Time {
	y, m, d := e.now().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func contains(list []string, s string) bool {
	for _, have := range list {
		if have == s {
			return true
		}
	}
	return false
}

