package todotxt

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func parseLine(t *testing.T, line string) *Task {
	t.Helper()
	return ParseLine(line, DefaultConventions())
}

// --- ParseLine ---------------------------------------------------------------

func TestParseLine_PriorityTask(t *testing.T) {
	task := parseLine(t, "(A) finish quarterly report due:2025-01-15 +work @focus @deep")

	if task.Priority != "A" {
		t.Errorf("Priority = %q, want 'A'", task.Priority)
	}
	if task.Completed {
		t.Error("Completed = true, want false")
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2025-01-15" {
		t.Errorf("DueDate = %v, want 2025-01-15", task.DueDate)
	}
	if !task.HasProject("work") {
		t.Errorf("Projects = %v, want to contain 'work'", task.Projects)
	}
	if !task.HasContext("focus") || !task.HasContext("deep") {
		t.Errorf("Contexts = %v, want to contain 'focus' and 'deep'", task.Contexts)
	}
	if task.Energy != EnergyHigh {
		t.Errorf("Energy = %q, want %q", task.Energy, EnergyHigh)
	}
	if task.Time != TimeDeep {
		t.Errorf("Time = %q, want %q", task.Time, TimeDeep)
	}
}

func TestParseLine_CompletedTask(t *testing.T) {
	task := parseLine(t, "x 2025-01-10 2025-01-01 call insurance @call @quick +personal")

	if !task.Completed {
		t.Fatal("Completed = false, want true")
	}
	if task.CompletionDate == nil || task.CompletionDate.Format("2006-01-02") != "2025-01-10" {
		t.Errorf("CompletionDate = %v, want 2025-01-10", task.CompletionDate)
	}
	if task.CreationDate == nil || task.CreationDate.Format("2006-01-02") != "2025-01-01" {
		t.Errorf("CreationDate = %v, want 2025-01-01", task.CreationDate)
	}
	if !task.HasContext("call") || !task.HasContext("quick") {
		t.Errorf("Contexts = %v, want to contain 'call' and 'quick'", task.Contexts)
	}
	if task.Time != TimeQuick {
		t.Errorf("Time = %q, want %q", task.Time, TimeQuick)
	}
}

func TestParseLine_CompletedSingleDate(t *testing.T) {
	task := parseLine(t, "x 2025-01-10 archive old files")

	if task.CompletionDate == nil || task.CompletionDate.Format("2006-01-02") != "2025-01-10" {
		t.Errorf("CompletionDate = %v, want 2025-01-10", task.CompletionDate)
	}
	if task.CreationDate != nil {
		t.Errorf("CreationDate = %v, want nil", task.CreationDate)
	}
}

// Strict todo.txt drops priority on completion; this parser records it for
// historical display. The choice is deliberate — this test pins it.
func TestParseLine_CompletedKeepsPriority(t *testing.T) {
	task := parseLine(t, "x 2025-01-10 (B) ship the release +work")

	if !task.Completed {
		t.Fatal("Completed = false, want true")
	}
	if task.Priority != "B" {
		t.Errorf("Priority = %q, want 'B'", task.Priority)
	}
}

func TestParseLine_RawRoundTrips(t *testing.T) {
	lines := []string{
		"(A) finish quarterly report due:2025-01-15 +work @focus @deep",
		"x 2025-01-10 2025-01-01 call insurance @call @quick +personal",
		"water the plants rec:+1w due:2025-03-01",
		"just some free text with a colon: in it",
		"((A) not a priority",
	}
	for _, line := range lines {
		if task := parseLine(t, line); task.Raw != line {
			t.Errorf("Raw = %q, want %q", task.Raw, line)
		}
	}
}

func TestParseLine_RecurrenceNotAProject(t *testing.T) {
	task := parseLine(t, "water the plants rec:+1w due:2025-03-01 +home")

	if task.HasProject("1w") {
		t.Errorf("Projects = %v, must not contain the recurrence value '1w'", task.Projects)
	}
	if !task.HasProject("home") {
		t.Errorf("Projects = %v, want to contain 'home'", task.Projects)
	}
	if task.Recurrence() != "+1w" {
		t.Errorf("Recurrence() = %q, want '+1w'", task.Recurrence())
	}
}

func TestParseLine_Metadata(t *testing.T) {
	task := parseLine(t, "review budget due:2025-02-01 t:2025-01-20 owner:alice rec:3d")

	if task.Metadata["due"] != "2025-02-01" {
		t.Errorf("Metadata[due] = %q, want '2025-02-01'", task.Metadata["due"])
	}
	if task.Metadata["owner"] != "alice" {
		t.Errorf("Metadata[owner] = %q, want 'alice'", task.Metadata["owner"])
	}
	if task.Metadata["rec"] != "3d" {
		t.Errorf("Metadata[rec] = %q, want '3d'", task.Metadata["rec"])
	}
	if task.ThresholdDate == nil || task.ThresholdDate.Format("2006-01-02") != "2025-01-20" {
		t.Errorf("ThresholdDate = %v, want 2025-01-20", task.ThresholdDate)
	}
}

func TestParseLine_MetadataFirstOccurrenceWins(t *testing.T) {
	task := parseLine(t, "pay rent due:2025-02-01 due:2025-03-01")

	if task.Metadata["due"] != "2025-02-01" {
		t.Errorf("Metadata[due] = %q, want first occurrence '2025-02-01'", task.Metadata["due"])
	}
	if task.DueDate == nil || task.DueDate.Format("2006-01-02") != "2025-02-01" {
		t.Errorf("DueDate = %v, want 2025-02-01", task.DueDate)
	}
}

func TestParseLine_InvalidDueDateStaysMetadata(t *testing.T) {
	task := parseLine(t, "fix the roof due:someday")

	if task.DueDate != nil {
		t.Errorf("DueDate = %v, want nil for unparseable value", task.DueDate)
	}
	if task.Metadata["due"] != "someday" {
		t.Errorf("Metadata[due] = %q, want 'someday'", task.Metadata["due"])
	}
}

func TestParseLine_DescriptionStripsMetadata(t *testing.T) {
	task := parseLine(t, "(A) finish report due:2025-01-15 +work @focus")

	if task.Description != "finish report +work @focus" {
		t.Errorf("Description = %q, want 'finish report +work @focus'", task.Description)
	}
}

func TestParseLine_DuplicateTagsDeduplicated(t *testing.T) {
	task := parseLine(t, "ping the team @email @email +work +work")

	if len(task.Contexts) != 1 || len(task.Projects) != 1 {
		t.Errorf("Contexts = %v, Projects = %v, want one entry each", task.Contexts, task.Projects)
	}
}

func TestParseLine_NeverFails(t *testing.T) {
	lines := []string{
		"",
		"   ",
		"x",
		"x ",
		"()",
		"(a) lower case is not a priority",
		"@ + :",
		"due: trailing colon value",
		"🌱 emoji text +garden",
	}
	for _, line := range lines {
		task := parseLine(t, line)
		if task == nil {
			t.Fatalf("ParseLine(%q) returned nil", line)
		}
		if task.Energy == "" || task.Time == "" {
			t.Errorf("ParseLine(%q): derived classifications must never be empty", line)
		}
	}
}

func TestParseLine_LowercasePriorityIsText(t *testing.T) {
	task := parseLine(t, "(a) not really prioritised")

	if task.Priority != "" {
		t.Errorf("Priority = %q, want empty", task.Priority)
	}
	if task.Description != "(a) not really prioritised" {
		t.Errorf("Description = %q, want the full text kept", task.Description)
	}
}

func TestParseLine_WaitingAndInbox(t *testing.T) {
	waiting := parseLine(t, "chase the contract @waiting +legal")
	if !waiting.IsWaiting {
		t.Error("IsWaiting = false, want true for @waiting context")
	}

	waitingProject := parseLine(t, "hear back from bank +waiting")
	if !waitingProject.IsWaiting {
		t.Error("IsWaiting = false, want true for +waiting project")
	}

	inbox := parseLine(t, "sort out that thing +in")
	if !inbox.IsInbox {
		t.Error("IsInbox = false, want true for +in project")
	}

	plain := parseLine(t, "just a task +work")
	if plain.IsWaiting || plain.IsInbox {
		t.Error("plain task misclassified as waiting or inbox")
	}
}

func TestParseLine_EnergyClassification(t *testing.T) {
	cases := []struct {
		line string
		want EnergyLevel
	}{
		{"write design doc @focus", EnergyHigh},
		{"brainstorm campaign ideas @brainstorm", EnergyHigh},
		{"file expenses @admin", EnergyLow},
		{"tidy the desk @organize", EnergyLow},
		{"walk the dog @outside", EnergyUnknown},
		{"no contexts at all", EnergyUnknown},
	}
	for _, c := range cases {
		if got := parseLine(t, c.line).Energy; got != c.want {
			t.Errorf("Energy(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

func TestParseLine_TimeClassification(t *testing.T) {
	cases := []struct {
		line string
		want TimeEstimate
	}{
		{"reply to bob @email", TimeQuick},
		{"standup notes @meeting", TimeMedium},
		{"rewrite the parser @deep", TimeDeep},
		{"walk the dog @outside", TimeUnknown},
	}
	for _, c := range cases {
		if got := parseLine(t, c.line).Time; got != c.want {
			t.Errorf("Time(%q) = %q, want %q", c.line, got, c.want)
		}
	}
}

// --- Load --------------------------------------------------------------------

func writeTodoFile(t *testing.T, lines string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte(lines), 0o644); err != nil {
		t.Fatalf("write fixture: %v", err)
	}
	return path
}

func TestLoad_SkipsBlankLinesKeepsLineNumbers(t *testing.T) {
	path := writeTodoFile(t, "(A) first task\n\nsecond task\n   \nthird task\n")

	tasks, err := Load(path, DefaultConventions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(tasks) != 3 {
		t.Fatalf("len(tasks) = %d, want 3", len(tasks))
	}
	wantLines := []int{1, 3, 5}
	for i, want := range wantLines {
		if tasks[i].LineNumber != want {
			t.Errorf("tasks[%d].LineNumber = %d, want %d", i, tasks[i].LineNumber, want)
		}
	}
}

func TestLoad_PreservesFileOrder(t *testing.T) {
	path := writeTodoFile(t, "zebra task\nalpha task\nmango task\n")

	tasks, err := Load(path, DefaultConventions())
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if tasks[0].Raw != "zebra task" || tasks[2].Raw != "mango task" {
		t.Errorf("order not preserved: %q, %q, %q", tasks[0].Raw, tasks[1].Raw, tasks[2].Raw)
	}
}

func TestLoad_MissingFileReturnsError(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.txt"), DefaultConventions())
	if err == nil {
		t.Fatal("Load of missing file returned nil error")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("error = %v, want wrapped os.ErrNotExist", err)
	}
}
