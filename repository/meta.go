package repository

import (
	"context"

	"github.com/fastygo/homepage/domain"
)

// MetaRepository lists the local files shown on the dashboard.
type MetaRepository interface {
	LocalFiles(ctx context.Context) ([]domain.LocalFile, error)
	// State stats the file on disk.
	State(ctx context.Context, file domain.LocalFile) (domain.FileState, error)
}

// DeadlineRepository lists upcoming calendar deadlines.
type DeadlineRepository interface {
	List(ctx context.Context) ([]domain.Deadline, error)
}

// HistoryRepository keeps the modification history of local files.
type HistoryRepository interface {
	// Record appends state when it differs from the last one and returns the
	// resulting history, oldest first.
	Record(ctx context.Context, path string, state domain.FileState) ([]domain.FileState, error)
	History(ctx context.Context, path string) ([]domain.FileState, error)
}
