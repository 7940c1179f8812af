package deadline

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"

	"go.uber.org/zap"
	"google.golang.org/api/calendar/v3"

	"github.com/fastygo/homepage/domain"
	"github.com/fastygo/homepage/pkg/todotxt"
	"github.com/fastygo/homepage/repository"
)

// Document is the deadlines file: a list of Google Calendar events as
// exported by the calendar API.
type Document struct {
	Deadlines []*calendar.Event `json:"deadlines"`
}

type deadlineRepository struct {
	path   string
	logger *zap.Logger
}

// NewDeadlineRepository reads deadlines from path. A missing file yields no
// deadlines.
func NewDeadlineRepository(path string, logger *zap.Logger) repository.DeadlineRepository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &deadlineRepository{path: domain.ExpandHome(path), logger: logger}
}

func (r *deadlineRepository) List(ctx context.Context) ([]domain.Deadline, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.path == "" {
		return []domain.Deadline{}, nil
	}
	b, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.Deadline{}, nil
		}
		return nil, fmt.Errorf("reading deadlines %s: %w", r.path, err)
	}

	var doc Document
	if err := json.Unmarshal(b, &doc); err != nil {
		return nil, fmt.Errorf("parsing deadlines %s: %w", r.path, err)
	}

	out := make([]domain.Deadline, 0, len(doc.Deadlines))
	for _, ev := range doc.Deadlines {
		d, err := EventDate(ev)
		if err != nil {
			r.logger.Warn("skipping deadline without start date", zap.String("summary", summary(ev)), zap.Error(err))
			continue
		}
		out = append(out, domain.Deadline{
			Summary:     ev.Summary,
			Description: ev.Description,
			Link:        ev.HtmlLink,
			Date:        d,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out, nil
}

// EventDate returns the start day of ev, from start.date for all-day events
// or the date part of start.dateTime otherwise.
func EventDate(ev *calendar.Event) (todotxt.Date, error) {
	if ev == nil || ev.Start == nil {
		return todotxt.Date{}, errors.New("event has no start")
	}
	if ev.Start.DateTime != "" {
		if len(ev.Start.DateTime) < len(todotxt.DateLayout) {
			return todotxt.Date{}, fmt.Errorf("%w: %q", todotxt.ErrInvalidDate, ev.Start.DateTime)
		}
		return todotxt.ParseDate(ev.Start.DateTime[:len(todotxt.DateLayout)])
	}
	return todotxt.ParseDate(ev.Start.Date)
}

func summary(ev *calendar.Event) string {
	if ev == nil {
		return ""
	}
	return ev.Summary
}
