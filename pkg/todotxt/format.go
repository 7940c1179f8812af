package todotxt

import (
	"sort"
	"strings"
)

// Format renders t as a single task line. It is the inverse of Parse.
func Format(t Task) string {
	var b strings.Builder

	if t.Finished {
		b.WriteString("x ")
	}
	if t.HasPriority() {
		b.WriteString("(")
		b.WriteString(t.PriorityLetter())
		b.WriteString(") ")
	}
	// A finish date is only meaningful next to a creation date.
	if t.FinishDate != nil && t.CreateDate != nil {
		b.WriteString(t.FinishDate.String())
		b.WriteString(" ")
	}
	if t.CreateDate != nil {
		b.WriteString(t.CreateDate.String())
		b.WriteString(" ")
	}

	b.WriteString(t.Subject)

	if t.DueDate != nil {
		b.WriteString(" due:")
		b.WriteString(t.DueDate.String())
	}
	if t.ThresholdDate != nil {
		b.WriteString(" t:")
		b.WriteString(t.ThresholdDate.String())
	}
	for _, key := range sortedKeys(t.Tags) {
		b.WriteString(" ")
		b.WriteString(key)
		b.WriteString(":")
		b.WriteString(t.Tags[key])
	}

	return b.String()
}

func (t Task) String() string {
	return Format(t)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
