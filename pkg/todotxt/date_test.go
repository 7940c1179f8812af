package todotxt

import (
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		in    string
		valid bool
	}{
		{"2020-01-01", true},
		{"2020-02-29", true},
		{"2021-02-29", false},
		{"2021-02-30", false},
		{"2021-04-31", false},
		{"2021-13-01", false},
		{"2021-00-10", false},
		{"2021-01-00", false},
		{"2021-1-01", false},
		{"21-01-01", false},
		{"2021/01/01", false},
		{"+202-01-01", false},
		{"2021-01-01 ", false},
		{"", false},
	}
	for _, tt := range tests {
		d, err := ParseDate(tt.in)
		if tt.valid {
			if err != nil {
				t.Errorf("ParseDate(%q) failed: %v", tt.in, err)
			} else if d.String() != tt.in {
				t.Errorf("ParseDate(%q).String() = %q", tt.in, d.String())
			}
			continue
		}
		if !errors.Is(err, ErrInvalidDate) {
			t.Errorf("ParseDate(%q): expected ErrInvalidDate, got %v", tt.in, err)
		}
	}
}

func TestDateFormatPads(t *testing.T) {
	d := NewDate(987, time.March, 4)
	if d.String() != "0987-03-04" {
		t.Errorf("unexpected %q", d.String())
	}
}

func TestDateDaysSince(t *testing.T) {
	a := NewDate(2020, time.January, 10)
	b := NewDate(2020, time.January, 5)
	if got := a.DaysSince(b); got != 5 {
		t.Errorf("expected 5, got %d", got)
	}
	if got := b.DaysSince(a); got != -5 {
		t.Errorf("expected -5, got %d", got)
	}
	if got := NewDate(2021, time.March, 1).DaysSince(NewDate(2020, time.March, 1)); got != 365 {
		t.Errorf("expected 365, got %d", got)
	}
}

func TestDateJSON(t *testing.T) {
	task := MustParse("2020-01-01 thing due:2020-02-03")
	b, err := json.Marshal(task)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	var back Task
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if back.DueDate == nil || *back.DueDate != NewDate(2020, time.February, 3) {
		t.Errorf("unexpected due %v", back.DueDate)
	}
	if Fingerprint(back) != Fingerprint(task) {
		t.Error("JSON copy must keep its identity")
	}
}
