package monitor

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/fastygo/homepage/domain"
)

type fakeMeta struct {
	files []domain.LocalFile
	err   error
}

func (f fakeMeta) LocalFiles(context.Context) ([]domain.LocalFile, error) {
	return f.files, f.err
}

func (f fakeMeta) State(_ context.Context, file domain.LocalFile) (domain.FileState, error) {
	if file.Path == "missing" {
		return domain.FileState{}, os.ErrNotExist
	}
	return domain.FileState{ModificationTime: time.Unix(100, 0), Size: 42}, nil
}

type fakeSizer int

func (f fakeSizer) Size() (int, error) { return int(f), nil }

func TestRefreshReportsFiles(t *testing.T) {
	m := New(fakeMeta{files: []domain.LocalFile{{Name: "todo", Path: "todo.txt"}}}, fakeSizer(3), time.Minute, nil)

	status := m.Refresh(context.Background())
	if !status.Healthy() || !m.IsHealthy() {
		t.Fatalf("expected healthy status, got %+v", status)
	}
	if len(status.Files) != 1 || status.Files[0].Size != 42 {
		t.Errorf("unexpected file checks %+v", status.Files)
	}
	if !status.History || status.HistorySize != 3 {
		t.Errorf("unexpected history status %+v", status)
	}
}

func TestRefreshUnhealthy(t *testing.T) {
	tests := []struct {
		name string
		meta fakeMeta
	}{
		{name: "missing file", meta: fakeMeta{files: []domain.LocalFile{{Path: "missing"}}}},
		{name: "meta error", meta: fakeMeta{err: errors.New("boom")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := New(tt.meta, nil, time.Minute, nil)
			if status := m.Refresh(context.Background()); status.Healthy() {
				t.Errorf("expected unhealthy status, got %+v", status)
			}
		})
	}
}

func TestStopIsIdempotent(t *testing.T) {
	m := New(fakeMeta{}, nil, time.Millisecond, nil)
	m.Start()
	m.Stop()
	m.Stop()
}
