package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// --- helpers -----------------------------------------------------------------

func writeTodoFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "todo.txt")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write todo file: %v", err)
	}
	return path
}

// captureOutput redirects stdout during f() and returns what was written.
func captureOutput(t *testing.T, f func()) string {
	t.Helper()
	r, w, err := os.Pipe()
	if err != nil {
		t.Fatalf("os.Pipe: %v", err)
	}
	origStdout := os.Stdout
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = origStdout

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(r); err != nil {
		t.Fatalf("ReadFrom pipe: %v", err)
	}
	return buf.String()
}

const testTodo = `(A) finish quarterly report due:2025-01-15 +work @focus
(B) review pull requests +work @review
call the dentist @call +personal
x 2025-01-10 renew domain +admin
`

// --- setup -------------------------------------------------------------------

func TestSetup_MissingTodoFileFailsFast(t *testing.T) {
	_, _, err := setup(rootCmd, filepath.Join(t.TempDir(), "gone.txt"))
	if err == nil {
		t.Fatal("expected error for a missing todo file, got nil")
	}
	if !strings.Contains(err.Error(), "not readable") {
		t.Errorf("error = %v, want the not-readable hint", err)
	}
}

func TestSetup_ReadableFileSucceeds(t *testing.T) {
	path := writeTodoFile(t, testTodo)

	engine, _, err := setup(rootCmd, path)
	if err != nil {
		t.Fatalf("setup: %v", err)
	}
	if engine.Path() != path {
		t.Errorf("engine path = %q, want %q", engine.Path(), path)
	}
}
