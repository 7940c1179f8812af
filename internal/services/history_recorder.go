package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/fastygo/homepage/repository"
)

// RecorderConfig controls how often file states are snapshotted.
type RecorderConfig struct {
	Interval time.Duration
}

// HistoryRecorder snapshots the state of every configured file into the
// history store on a schedule.
type HistoryRecorder struct {
	meta    repository.MetaRepository
	history repository.HistoryRepository
	logger  *zap.Logger
	cron    *cron.Cron
	cfg     RecorderConfig
}

func NewHistoryRecorder(
	meta repository.MetaRepository,
	history repository.HistoryRepository,
	logger *zap.Logger,
	cfg RecorderConfig,
) *HistoryRecorder {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	// cron schedules whole seconds only.
	if cfg.Interval < time.Second {
		cfg.Interval = time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	hr := &HistoryRecorder{
		meta:    meta,
		history: history,
		logger:  logger,
		cfg:     cfg,
		cron:    cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	if _, err := hr.cron.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), cfg.Interval)
		defer cancel()
		if _, err := hr.Snapshot(ctx); err != nil {
			hr.logger.Error("history snapshot failed", zap.Error(err))
		}
	}); err != nil {
		hr.logger.Error("history snapshot not scheduled", zap.String("schedule", schedule), zap.Error(err))
	}

	return hr
}

// Start launches the cron scheduler.
func (hr *HistoryRecorder) Start() {
	if hr == nil || hr.cron == nil {
		return
	}
	hr.cron.Start()
	hr.logger.Info("history recorder started", zap.Duration("interval", hr.cfg.Interval))
}

// Stop gracefully stops the scheduler.
func (hr *HistoryRecorder) Stop(ctx context.Context) {
	if hr == nil || hr.cron == nil {
		return
	}
	stopCtx := hr.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	hr.logger.Info("history recorder stopped")
}

// Snapshot records the current state of every file synchronously and
// returns how many files were recorded. Unreadable files are logged and
// skipped.
func (hr *HistoryRecorder) Snapshot(ctx context.Context) (int, error) {
	if hr == nil || hr.meta == nil || hr.history == nil {
		return 0, nil
	}
	files, err := hr.meta.LocalFiles(ctx)
	if err != nil {
		return 0, err
	}

	recorded := 0
	for _, f := range files {
		state, err := hr.meta.State(ctx, f)
		if err != nil {
			hr.logger.Warn("failed to stat file", zap.String("path", f.Path), zap.Error(err))
			continue
		}
		if _, err := hr.history.Record(ctx, f.ExpandedPath(), state); err != nil {
			return recorded, fmt.Errorf("recording %s: %w", f.Path, err)
		}
		recorded++
	}
	return recorded, nil
}
