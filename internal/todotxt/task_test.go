package todotxt

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func date(t *testing.T, s string) *time.Time {
	t.Helper()
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		t.Fatalf("bad test date %q: %v", s, err)
	}
	return &d
}

// --- SortTasks ---------------------------------------------------------------

func TestSortTasks_PriorityBeforeDueDate(t *testing.T) {
	tasks := []*Task{
		{Raw: "no priority, due soon", DueDate: date(t, "2025-01-02"), LineNumber: 1},
		{Raw: "priority B, due later", Priority: "B", DueDate: date(t, "2025-06-01"), LineNumber: 2},
		{Raw: "priority A, no due", Priority: "A", LineNumber: 3},
	}
	SortTasks(tasks)

	want := []string{"priority A, no due", "priority B, due later", "no priority, due soon"}
	for i, w := range want {
		if tasks[i].Raw != w {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Raw, w)
		}
	}
}

func TestSortTasks_DueDateBreaksPriorityTies(t *testing.T) {
	tasks := []*Task{
		{Raw: "later", Priority: "A", DueDate: date(t, "2025-02-01"), LineNumber: 1},
		{Raw: "sooner", Priority: "A", DueDate: date(t, "2025-01-15"), LineNumber: 2},
		{Raw: "no due", Priority: "A", LineNumber: 3},
	}
	SortTasks(tasks)

	want := []string{"sooner", "later", "no due"}
	for i, w := range want {
		if tasks[i].Raw != w {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Raw, w)
		}
	}
}

func TestSortTasks_LineOrderIsStableTiebreak(t *testing.T) {
	tasks := []*Task{
		{Raw: "third", LineNumber: 7},
		{Raw: "first", LineNumber: 2},
		{Raw: "second", LineNumber: 4},
	}
	SortTasks(tasks)

	want := []string{"first", "second", "third"}
	for i, w := range want {
		if tasks[i].Raw != w {
			t.Errorf("tasks[%d] = %q, want %q", i, tasks[i].Raw, w)
		}
	}
}

func TestSortTasks_UnprioritisedAfterZ(t *testing.T) {
	tasks := []*Task{
		{Raw: "plain", LineNumber: 1},
		{Raw: "lowest letter", Priority: "Z", LineNumber: 2},
	}
	SortTasks(tasks)

	if tasks[0].Raw != "lowest letter" {
		t.Errorf("tasks[0] = %q, want the prioritised task first", tasks[0].Raw)
	}
}

// --- JSON output -------------------------------------------------------------

func TestToJSON_NormalisesNilSlices(t *testing.T) {
	task := &Task{Raw: "bare task"}
	data, err := json.Marshal(task.ToJSON())
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	s := string(data)
	if !strings.Contains(s, `"projects":[]`) || !strings.Contains(s, `"contexts":[]`) {
		t.Errorf("JSON = %s, want empty arrays for projects and contexts", s)
	}
}

func TestToJSON_FormatsDates(t *testing.T) {
	task := parseLine(t, "x 2025-01-10 2025-01-01 call bank due:2025-01-09")
	j := task.ToJSON()

	if j.CompletionDate != "2025-01-10" {
		t.Errorf("CompletionDate = %q, want '2025-01-10'", j.CompletionDate)
	}
	if j.CreationDate != "2025-01-01" {
		t.Errorf("CreationDate = %q, want '2025-01-01'", j.CreationDate)
	}
	if j.DueDate != "2025-01-09" {
		t.Errorf("DueDate = %q, want '2025-01-09'", j.DueDate)
	}
}

func TestToJSONList_EmptyInputIsNonNil(t *testing.T) {
	out := ToJSONList(nil)
	if out == nil {
		t.Fatal("ToJSONList(nil) = nil, want empty slice")
	}
	if len(out) != 0 {
		t.Errorf("len = %d, want 0", len(out))
	}
}
