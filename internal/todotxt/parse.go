package todotxt

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

var (
	// priorityTokenRe matches a standalone priority token such as "(A)".
	priorityTokenRe = regexp.MustCompile(`^\(([A-Z])\)$`)
	// tagNameRe extracts the word-character run that forms a project or
	// context name, mirroring the \w+ extraction of classic todo.txt tools.
	tagNameRe = regexp.MustCompile(`^[\pL\pN_]+`)
	// metadataKeyRe restricts metadata keys to word characters and hyphens.
	metadataKeyRe = regexp.MustCompile(`^[\pL\pN_-]+$`)
	// recurrenceValueRe matches recurrence amounts such as "1w" or "3d".
	recurrenceValueRe = regexp.MustCompile(`^\d+[A-Za-z]$`)
)

// ParseLine parses a single todo.txt line into a Task. It never fails:
// unrecognised token shapes degrade to free text. The line is trimmed of
// surrounding whitespace before parsing; the trimmed form is stored as Raw.
func ParseLine(line string, conv Conventions) *Task {
	raw := strings.TrimSpace(line)
	t := &Task{
		Raw:    raw,
		Energy: EnergyUnknown,
		Time:   TimeUnknown,
	}
	if raw == "" {
		return t
	}

	rest := raw
	if strings.HasPrefix(rest, "x ") {
		t.Completed = true
		rest = rest[2:]
	}

	tokens := strings.Fields(rest)
	i := 0

	// Positional dates after the completion marker: if two dates appear the
	// first is the completion date and the second the creation date; a
	// single date is the completion date only.
	if t.Completed {
		if i < len(tokens) {
			if d, ok := parseDate(tokens[i]); ok {
				t.CompletionDate = d
				i++
				if i < len(tokens) {
					if d, ok := parseDate(tokens[i]); ok {
						t.CreationDate = d
						i++
					}
				}
			}
		}
	}

	// Priority is recognised at the start of the remaining text. It is
	// recorded even for completed tasks so historical display keeps it.
	if i < len(tokens) {
		if m := priorityTokenRe.FindStringSubmatch(tokens[i]); m != nil {
			t.Priority = m[1]
			i++
		}
	}

	var desc []string
	for ; i < len(tokens); i++ {
		tok := tokens[i]

		if key, value, ok := splitMetadata(tok); ok {
			t.addMetadata(key, value)
			continue
		}

		switch {
		case strings.HasPrefix(tok, "+"):
			if name := tagNameRe.FindString(tok[1:]); name != "" && !isRecurrenceValue(name, raw) {
				t.Projects = appendUnique(t.Projects, name)
			}
		case strings.HasPrefix(tok, "@"):
			if name := tagNameRe.FindString(tok[1:]); name != "" {
				t.Contexts = appendUnique(t.Contexts, name)
			}
		}
		desc = append(desc, tok)
	}
	t.Description = strings.Join(desc, " ")

	t.Energy = conv.classifyEnergy(t.Contexts)
	t.Time = conv.classifyTime(t.Contexts)
	t.IsWaiting = conv.isWaiting(t.Contexts, t.Projects)
	t.IsInbox = conv.isInbox(t.Projects)

	return t
}

// Load reads a todo.txt file, skipping blank lines and parsing the rest in
// order. LineNumber on each task is the 1-based position in the file, so
// numbers stay stable across blank lines. I/O errors are propagated wrapped
// with the file path.
func Load(path string, conv Conventions) ([]*Task, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open todo file %s: %w", path, err)
	}
	defer f.Close()

	var tasks []*Task
	scanner := bufio.NewScanner(f)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		t := ParseLine(line, conv)
		t.LineNumber = lineNum
		tasks = append(tasks, t)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read todo file %s: %w", path, err)
	}
	return tasks, nil
}

// --- helpers -----------------------------------------------------------------

// addMetadata records a key:value token. The first occurrence of a key wins;
// the due and t keys are additionally parsed into their date fields.
func (t *Task) addMetadata(key, value string) {
	if t.Metadata == nil {
		t.Metadata = make(map[string]string)
	}
	if _, dup := t.Metadata[key]; dup {
		return
	}
	t.Metadata[key] = value

	switch key {
	case "due":
		if d, ok := parseDate(value); ok {
			t.DueDate = d
		}
	case "t":
		if d, ok := parseDate(value); ok {
			t.ThresholdDate = d
		}
	}
}

// splitMetadata splits a key:value token. Both halves must be non-empty and
// the key must be a plain word so that stray colons in free text (or a lone
// "@ctx:" tail) are not misread as metadata.
func splitMetadata(tok string) (key, value string, ok bool) {
	idx := strings.Index(tok, ":")
	if idx <= 0 || idx == len(tok)-1 {
		return "", "", false
	}
	key, value = tok[:idx], tok[idx+1:]
	if !metadataKeyRe.MatchString(key) {
		return "", "", false
	}
	return key, value, true
}

// isRecurrenceValue reports whether a project candidate is actually the value
// of a rec:+<amount> token elsewhere in the line (e.g. "1w" from "rec:+1w").
// Space-delimited tokenisation already keeps rec:+1w whole, but a guard here
// keeps malformed spacing from turning a recurrence amount into a project.
func isRecurrenceValue(name, line string) bool {
	return recurrenceValueRe.MatchString(name) && strings.Contains(line, "rec:+"+name)
}

func parseDate(s string) (*time.Time, bool) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return nil, false
	}
	return &d, true
}

func appendUnique(list []string, s string) []string {
	for _, have := range list {
		if have == s {
			return list
		}
	}
	return append(list, s)
}
