package dashboard

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/datetools"
	"github.com/fastygo/homepage/pkg/todotxt"
	"github.com/fastygo/homepage/repository"
)

type UseCase struct {
	meta      repository.MetaRepository
	todos     repository.TodoRepository
	deadlines repository.DeadlineRepository
	history   repository.HistoryRepository
	logger    *zap.Logger
	now       func() time.Time
}

func New(
	meta repository.MetaRepository,
	todos repository.TodoRepository,
	deadlines repository.DeadlineRepository,
	history repository.HistoryRepository,
	logger *zap.Logger,
) *UseCase {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UseCase{
		meta:      meta,
		todos:     todos,
		deadlines: deadlines,
		history:   history,
		logger:    logger,
		now:       time.Now,
	}
}

// WithClock replaces the clock used for "today" and file ages.
func (uc *UseCase) WithClock(now func() time.Time) *UseCase {
	if now != nil {
		uc.now = now
	}
	return uc
}

// Build collects todos, file statuses and deadlines, then orders and filters
// the todos according to params.
func (uc *UseCase) Build(ctx context.Context, params domain.SearchParams) (*domain.Dashboard, error) {
	if err := validateSort(params.SortBy); err != nil {
		return nil, err
	}

	files, err := uc.meta.LocalFiles(ctx)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	today := datetools.TodayOf(now)

	var todos []domain.Todo
	statuses := make([]domain.LocalFileStatus, 0, len(files))
	for _, f := range files {
		if f.Todos {
			loaded, err := uc.todos.Load(ctx, f)
			if err != nil {
				uc.logger.Warn("failed to load todo file", zap.String("path", f.Path), zap.Error(err))
			}
			todos = append(todos, loaded...)
		}
		statuses = append(statuses, uc.fileStatus(ctx, f, now))
	}

	deadlines, err := uc.deadlineList(ctx, today)
	if err != nil {
		return nil, err
	}

	return &domain.Dashboard{
		LastUpdate: now,
		TodosCount: len(todos),
		Todos:      Arrange(todos, params, today),
		LocalFiles: statuses,
		Deadlines:  deadlines,
	}, nil
}

// Arrange orders todos by urgency then priority, applies the filters in
// params and finally the explicit sort key. It does not validate SortBy.
func Arrange(todos []domain.Todo, params domain.SearchParams, today todotxt.Date) []domain.Todo {
	out := make([]domain.Todo, 0, len(todos))
	for _, t := range todos {
		if params.Context != "" && !t.Task.HasContext(params.Context) {
			continue
		}
		if params.Project != "" && !t.InProject(params.Project) {
			continue
		}
		if params.Search != "" && !strings.Contains(t.Task.Subject, params.Search) {
			continue
		}
		out = append(out, t)
	}

	sort.SliceStable(out, func(i, j int) bool {
		ui, uj := urgency(out[i].Task, today), urgency(out[j].Task, today)
		if ui != uj {
			return ui < uj
		}
		return out[i].Task.Priority < out[j].Task.Priority
	})

	if params.SortBy == domain.SortByCreateDate {
		sort.SliceStable(out, func(i, j int) bool {
			return createdBefore(out[i].Task.CreateDate, out[j].Task.CreateDate)
		})
	}
	return out
}

func validateSort(key string) error {
	if key == "" || key == domain.SortByCreateDate {
		return nil
	}
	return domain.WrapError(domain.ErrCodeInvalid, domain.ErrInvalidSortKey.Message, fmt.Errorf("%q", key))
}

// urgency is -2 for overdue, -1 for due today, 0 otherwise. Finished tasks
// never sort by their due date.
func urgency(t todotxt.Task, today todotxt.Date) int {
	if t.Finished || t.DueDate == nil {
		return 0
	}
	switch datetools.Classify(today, *t.DueDate) {
	case datetools.Past:
		return -2
	case datetools.Today:
		return -1
	default:
		return 0
	}
}

// createdBefore orders absent dates first.
func createdBefore(a, b *todotxt.Date) bool {
	switch {
	case a == nil:
		return b != nil
	case b == nil:
		return false
	default:
		return a.Before(*b)
	}
}

func (uc *UseCase) fileStatus(ctx context.Context, f domain.LocalFile, now time.Time) domain.LocalFileStatus {
	status := domain.LocalFileStatus{
		File:        f,
		States:      []domain.FileState{},
		UpdateState: domain.UpdateStateFor(f.FrequencyGoal, time.Duration(math.MaxInt64)),
	}

	state, err := uc.meta.State(ctx, f)
	if err != nil {
		uc.logger.Warn("failed to stat file", zap.String("path", f.Path), zap.Error(err))
		return status
	}

	states := []domain.FileState{state}
	if uc.history != nil {
		recorded, err := uc.history.Record(ctx, f.ExpandedPath(), state)
		if err != nil {
			uc.logger.Warn("failed to record file history", zap.String("path", f.Path), zap.Error(err))
		} else if len(recorded) > 0 {
			states = recorded
		}
	}

	last := states[len(states)-1].ModificationTime
	since := now.Sub(last)
	status.States = states
	status.LastModified = last
	status.SinceModified = datetools.HumanizeDuration(since)
	status.UpdateState = domain.UpdateStateFor(f.FrequencyGoal, since)
	return status
}

func (uc *UseCase) deadlineList(ctx context.Context, today todotxt.Date) ([]domain.Deadline, error) {
	if uc.deadlines == nil {
		return []domain.Deadline{}, nil
	}
	deadlines, err := uc.deadlines.List(ctx)
	if err != nil {
		return nil, err
	}
	for i := range deadlines {
		deadlines[i].When = datetools.Classify(today, deadlines[i].Date)
		deadlines[i].Relative = datetools.Humanize(today, deadlines[i].Date)
	}
	return deadlines, nil
}
