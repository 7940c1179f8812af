package deadline

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/homepage/pkg/todotxt"
)

const sample = `{
  "deadlines": [
    {"summary": "Taxes", "description": "file them", "htmlLink": "https://calendar.example/1",
     "start": {"dateTime": "2020-04-15T09:00:00-07:00", "timeZone": "America/Los_Angeles"}},
    {"summary": "Birthday", "start": {"date": "2020-03-01"}},
    {"summary": "Broken", "start": {}}
  ]
}`

func TestListDeadlines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deadlines.json")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	deadlines, err := NewDeadlineRepository(path, nil).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(deadlines) != 2 {
		t.Fatalf("expected 2 deadlines, got %d", len(deadlines))
	}
	if deadlines[0].Summary != "Birthday" || deadlines[0].Date != todotxt.NewDate(2020, time.March, 1) {
		t.Errorf("unexpected first deadline %+v", deadlines[0])
	}
	if deadlines[1].Link != "https://calendar.example/1" || deadlines[1].Date != todotxt.NewDate(2020, time.April, 15) {
		t.Errorf("unexpected second deadline %+v", deadlines[1])
	}
}

func TestListMissingFile(t *testing.T) {
	deadlines, err := NewDeadlineRepository(filepath.Join(t.TempDir(), "none.json"), nil).List(context.Background())
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}
	if len(deadlines) != 0 {
		t.Errorf("expected no deadlines, got %v", deadlines)
	}
}
