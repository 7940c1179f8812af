package todofile

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/todotxt"
	"github.com/fastygo/homepage/repository"
)

// DoneFileName is where ArchiveFinished moves finished tasks, next to the
// todo file they came from.
const DoneFileName = "done.txt"

type todoRepository struct {
	backups *Backups
	logger  *zap.Logger
}

// NewTodoRepository creates a repository over plain todo.txt files.
func NewTodoRepository(backups *Backups, logger *zap.Logger) repository.TodoRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &todoRepository{
		backups: backups,
		logger:  logger,
	}
}

func (r *todoRepository) Load(ctx context.Context, file domain.LocalFile) ([]domain.Todo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	path := file.ExpandedPath()
	doc, err := readDocument(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}

	todos := make([]domain.Todo, 0, len(doc.lines))
	for i, line := range doc.lines {
		task, ok := r.parse(path, i, line)
		if !ok || task.Subject == "" {
			continue
		}
		todos = append(todos, domain.NewTodo(task, path, i+1, file.AutoProject))
	}

	r.logger.Debug("todo file loaded", zap.String("path", path), zap.Int("todos", len(todos)))
	return todos, nil
}

func (r *todoRepository) SetFinished(ctx context.Context, files []domain.LocalFile, hash string, finished bool) (string, error) {
	for _, file := range files {
		if !file.Todos {
			continue
		}
		if err := ctx.Err(); err != nil {
			return "", err
		}

		path := file.ExpandedPath()
		doc, err := readDocument(path)
		if err != nil {
			return "", fmt.Errorf("reading %s: %w", path, err)
		}

		for i, line := range doc.lines {
			task, ok := r.parse(path, i, line)
			if !ok || task.Subject == "" || todotxt.Fingerprint(task) != hash {
				continue
			}

			task.Finished = finished
			doc.lines[i] = todotxt.Format(task)
			if err := r.rewrite(doc); err != nil {
				return "", err
			}

			newHash := todotxt.Fingerprint(task)
			r.logger.Info("todo updated",
				zap.String("path", path),
				zap.Int("line", i+1),
				zap.Bool("finished", finished),
				zap.String("hash", newHash),
				zap.String("text", doc.lines[i]))
			return newHash, nil
		}
	}
	return "", domain.ErrTodoNotFound
}

func (r *todoRepository) ArchiveFinished(ctx context.Context, files []domain.LocalFile) (int, error) {
	archived := 0
	for _, file := range files {
		if !file.Todos {
			continue
		}
		if err := ctx.Err(); err != nil {
			return archived, err
		}

		path := file.ExpandedPath()
		if filepath.Base(path) == DoneFileName {
			continue
		}
		doc, err := readDocument(path)
		if err != nil {
			return archived, fmt.Errorf("reading %s: %w", path, err)
		}

		var done []string
		finished := make(map[int]bool)
		for i, line := range doc.lines {
			task, ok := r.parse(path, i, line)
			if ok && task.Finished && task.Subject != "" {
				done = append(done, line)
				finished[i] = true
			}
		}
		if len(done) == 0 {
			continue
		}

		donePath := filepath.Join(filepath.Dir(path), DoneFileName)
		if err := appendLines(donePath, done); err != nil {
			return archived, fmt.Errorf("appending to %s: %w", donePath, err)
		}
		doc.keep(func(i int) bool { return !finished[i] })
		if err := r.rewrite(doc); err != nil {
			return archived, err
		}

		archived += len(done)
		r.logger.Info("finished todos archived",
			zap.String("path", path),
			zap.String("done", donePath),
			zap.Int("count", len(done)))
	}
	return archived, nil
}

// parse logs and skips lines that are not task lines.
func (r *todoRepository) parse(path string, index int, line string) (todotxt.Task, bool) {
	task, err := todotxt.Parse(line)
	if err != nil {
		var pe *todotxt.ParseError
		reason := err.Error()
		if errors.As(err, &pe) {
			reason = pe.Reason
		}
		r.logger.Warn("skipping unparsable todo line",
			zap.String("path", path),
			zap.Int("line", index+1),
			zap.String("reason", reason))
		return todotxt.Task{}, false
	}
	return task, true
}

func (r *todoRepository) rewrite(doc *document) error {
	backup, err := r.backups.Write(doc.raw)
	if err != nil {
		return err
	}
	if backup != "" {
		r.logger.Debug("backup written", zap.String("path", doc.path), zap.String("backup", backup))
	}
	if err := doc.save(); err != nil {
		return fmt.Errorf("writing %s: %w", doc.path, err)
	}
	return nil
}
