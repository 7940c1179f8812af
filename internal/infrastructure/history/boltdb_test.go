package history

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/fastygo/homepage/domain"
)

func openStore(t *testing.T) *Store {
	t.Helper()
	store, err := Open(filepath.Join(t.TempDir(), "history.db"), "")
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestRecordSkipsUnchangedState(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	if _, err := store.Record(ctx, "/a", domain.FileState{ModificationTime: base, Size: 1}); err != nil {
		t.Fatal(err)
	}
	states, err := store.Record(ctx, "/a", domain.FileState{ModificationTime: base, Size: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 1 {
		t.Fatalf("expected 1 state, got %d", len(states))
	}

	states, err = store.Record(ctx, "/a", domain.FileState{ModificationTime: base.Add(time.Hour), Size: 2})
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != 2 || states[1].Size != 2 {
		t.Fatalf("unexpected history %+v", states)
	}

	other, err := store.History(ctx, "/b")
	if err != nil {
		t.Fatal(err)
	}
	if len(other) != 0 {
		t.Errorf("expected empty history for untracked path, got %v", other)
	}
}

func TestRecordCapsHistory(t *testing.T) {
	store := openStore(t)
	ctx := context.Background()
	base := time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < MaxStates+5; i++ {
		if _, err := store.Record(ctx, "/a", domain.FileState{ModificationTime: base.Add(time.Duration(i) * time.Minute), Size: int64(i)}); err != nil {
			t.Fatal(err)
		}
	}

	states, err := store.History(ctx, "/a")
	if err != nil {
		t.Fatal(err)
	}
	if len(states) != MaxStates {
		t.Fatalf("expected %d states, got %d", MaxStates, len(states))
	}
	if states[0].Size != 5 || states[len(states)-1].Size != MaxStates+4 {
		t.Errorf("expected oldest entries trimmed, got first=%d last=%d", states[0].Size, states[len(states)-1].Size)
	}

	size, err := store.Size()
	if err != nil || size != 1 {
		t.Errorf("expected 1 tracked path, got %d (%v)", size, err)
	}
}
