package todo

import (
	"context"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/repository"
)

// UseCase mutates todo files. Mutations are serialised so concurrent
// requests never interleave rewrites of the same file.
type UseCase struct {
	meta   repository.MetaRepository
	todos  repository.TodoRepository
	logger *zap.Logger

	mu sync.Mutex
}

func New(meta repository.MetaRepository, todos repository.TodoRepository, logger *zap.Logger) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		meta:   meta,
		todos:  todos,
		logger: logger,
	}
}

// MarkCompleted sets the finished flag of the task with the given hash and
// returns the task's new hash.
func (uc *UseCase) MarkCompleted(ctx context.Context, hash string, completed bool) (string, error) {
	hash = strings.TrimSpace(hash)
	if hash == "" {
		return "", domain.ErrInvalidPayload
	}

	files, err := uc.todoFiles(ctx)
	if err != nil {
		return "", err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	newHash, err := uc.todos.SetFinished(ctx, files, hash, completed)
	if err != nil {
		return "", err
	}
	uc.logger.Info("todo updated",
		zap.String("hash", hash),
		zap.String("new_hash", newHash),
		zap.Bool("completed", completed))
	return newHash, nil
}

// ArchiveFinished moves finished tasks out of every todo file.
func (uc *UseCase) ArchiveFinished(ctx context.Context) (int, error) {
	files, err := uc.todoFiles(ctx)
	if err != nil {
		return 0, err
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	n, err := uc.todos.ArchiveFinished(ctx, files)
	if err != nil {
		return n, err
	}
	uc.logger.Info("finished todos archived", zap.Int("count", n))
	return n, nil
}

func (uc *UseCase) todoFiles(ctx context.Context) ([]domain.LocalFile, error) {
	all, err := uc.meta.LocalFiles(ctx)
	if err != nil {
		return nil, err
	}
	files := make([]domain.LocalFile, 0, len(all))
	for _, f := range all {
		if f.Todos {
			files = append(files, f)
		}
	}
	return files, nil
}
