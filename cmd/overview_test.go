package cmd

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/vojtapolasek/todo-mcp-server/internal/query"
)

func TestOverview_Table_ContainsCounts(t *testing.T) {
	path := writeTodoFile(t, testTodo)

	out := captureOutput(t, func() {
		if err := runOverview(overviewCmd, path, false); err != nil {
			t.Fatalf("runOverview failed: %v", err)
		}
	})

	if !strings.Contains(out, "total") || !strings.Contains(out, "active") {
		t.Errorf("expected total and active rows, got: %q", out)
	}
	if !strings.Contains(out, "PROJECT") {
		t.Errorf("expected PROJECT section, got: %q", out)
	}
}

func TestOverview_JSON_ValidAndCounted(t *testing.T) {
	path := writeTodoFile(t, testTodo)

	out := captureOutput(t, func() {
		if err := runOverview(overviewCmd, path, true); err != nil {
			t.Fatalf("runOverview --json failed: %v", err)
		}
	})

	var ov query.Overview
	if err := json.Unmarshal([]byte(out), &ov); err != nil {
		t.Fatalf("output is not valid JSON: %v\noutput: %q", err, out)
	}
	if ov.Total != 4 || ov.Active != 3 || ov.Completed != 1 {
		t.Errorf("total/active/completed = %d/%d/%d, want 4/3/1", ov.Total, ov.Active, ov.Completed)
	}
}

func TestOverview_MissingFile_ReturnsError(t *testing.T) {
	if err := runOverview(overviewCmd, "does-not-exist.txt", false); err == nil {
		t.Fatal("expected error for a missing file, got nil")
	}
}
