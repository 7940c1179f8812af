package todotxt

import (
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"
)

var ErrInvalidLine = errors.New("invalid task line")

// ParseError is returned when a line cannot be read as a task. It never
// carries a partially parsed task.
type ParseError struct {
	Line   string
	Reason string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %s", ErrInvalidLine, e.Reason)
}

func (e *ParseError) Unwrap() error {
	return ErrInvalidLine
}

// Parse reads one task line.
//
// The prefix is consumed left to right: a completion marker "x ", a
// priority "(A) ", then up to two dates each followed by a space. A single
// date is the creation date; with two dates the first is the finish date
// and the second the creation date. Each stage that does not match consumes
// nothing. The rest of the line yields the markers, the annotations and the
// subject. Unparsable due: and t: values are dropped.
func Parse(line string) (Task, error) {
	if !utf8.ValidString(line) {
		return Task{}, &ParseError{Line: line, Reason: "not valid UTF-8"}
	}
	if strings.ContainsAny(line, "\r\n") {
		return Task{}, &ParseError{Line: line, Reason: "contains a line break"}
	}

	task := NewTask()
	rest := line

	if strings.HasPrefix(rest, "x ") {
		task.Finished = true
		rest = rest[2:]
	}

	if p, n, ok := parsePriority(rest); ok {
		task.Priority = p
		rest = rest[n:]
	}

	first, n, ok := parseLeadingDate(rest)
	if ok {
		rest = rest[n:]
		second, n, ok := parseLeadingDate(rest)
		if ok {
			rest = rest[n:]
			task.FinishDate = &first
			task.CreateDate = &second
		} else {
			task.CreateDate = &first
		}
	}

	// Markers come from the untouched tail, so a marker inside an
	// annotation value is still picked up.
	task.Contexts = Contexts(rest)
	task.Projects = Projects(rest)
	task.Hashtags = Hashtags(rest)

	subject, tags := Keywords(rest)
	task.Subject = subject

	if due, ok := tags["due"]; ok {
		delete(tags, "due")
		if d, err := ParseDate(due); err == nil {
			task.DueDate = &d
		}
	}
	if threshold, ok := tags["t"]; ok {
		delete(tags, "t")
		if d, err := ParseDate(threshold); err == nil {
			task.ThresholdDate = &d
		}
	}
	task.Tags = tags

	return task, nil
}

// MustParse is like Parse but panics on error. Intended for tests and
// static fixtures.
func MustParse(line string) Task {
	t, err := Parse(line)
	if err != nil {
		panic(err)
	}
	return t
}

// parsePriority matches "(" one character ") ". Only A-Z map to a
// priority; any other character still consumes the marker.
func parsePriority(s string) (uint8, int, bool) {
	if !strings.HasPrefix(s, "(") {
		return 0, 0, false
	}
	r, size := utf8.DecodeRuneInString(s[1:])
	if r == utf8.RuneError && size <= 1 {
		return 0, 0, false
	}
	n := 1 + size
	if !strings.HasPrefix(s[n:], ") ") {
		return 0, 0, false
	}
	if r >= 'A' && r <= 'Z' {
		return uint8(r - 'A'), n + 2, true
	}
	return NoPriority, n + 2, true
}

// parseLeadingDate matches a date followed by a mandatory space.
func parseLeadingDate(s string) (Date, int, bool) {
	n := len(DateLayout)
	if len(s) < n+1 || s[n] != ' ' {
		return Date{}, 0, false
	}
	d, err := ParseDate(s[:n])
	if err != nil {
		return Date{}, 0, false
	}
	return d, n + 1, true
}
