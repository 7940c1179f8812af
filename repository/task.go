package repository

import (
	"context"

	"github.com/fastygo/homepage/domain"
)

// TodoRepository reads and rewrites todo.txt files.
type TodoRepository interface {
	// Load returns the tasks of one file; unparsable and empty lines are skipped.
	Load(ctx context.Context, file domain.LocalFile) ([]domain.Todo, error)
	// SetFinished flips the task whose fingerprint is hash and returns its new
	// fingerprint, or domain.ErrTodoNotFound.
	SetFinished(ctx context.Context, files []domain.LocalFile, hash string, finished bool) (string, error)
	// ArchiveFinished moves finished tasks to done.txt and returns how many moved.
	ArchiveFinished(ctx context.Context, files []domain.LocalFile) (int, error)
}
