package monitor

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/fastygo/homepage/repository"
)

// HistorySizer is the part of the history store the monitor reports on.
type HistorySizer interface {
	Size() (int, error)
}

// Monitor periodically stats every file listed in the meta document.
type Monitor struct {
	meta    repository.MetaRepository
	history HistorySizer

	status   Status
	mu       sync.RWMutex
	interval time.Duration
	stopCh   chan struct{}
	stopOnce sync.Once
	logger   *zap.Logger
}

func New(meta repository.MetaRepository, history HistorySizer, interval time.Duration, logger *zap.Logger) *Monitor {
	if interval <= 0 {
		interval = 10 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Monitor{
		meta:     meta,
		history:  history,
		interval: interval,
		stopCh:   make(chan struct{}),
		logger:   logger,
	}
}

func (m *Monitor) Start() {
	go m.loop()
}

func (m *Monitor) Stop() {
	m.stopOnce.Do(func() { close(m.stopCh) })
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status.Healthy()
}

func (m *Monitor) GetStatus() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

func (m *Monitor) loop() {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	m.Refresh(context.Background())
	for {
		select {
		case <-ticker.C:
			m.Refresh(context.Background())
		case <-m.stopCh:
			return
		}
	}
}

// Refresh runs one round of checks and stores the result.
func (m *Monitor) Refresh(ctx context.Context) Status {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	metaOK, files := m.checkFiles(ctx)
	historyOK, historySize := m.checkHistory()
	status := Status{
		Meta:        metaOK,
		Files:       files,
		History:     historyOK,
		HistorySize: historySize,
		LastCheck:   time.Now(),
	}

	m.mu.Lock()
	m.status = status
	m.mu.Unlock()
	return status
}

func (m *Monitor) checkFiles(ctx context.Context) (bool, []FileCheck) {
	if m.meta == nil {
		return false, nil
	}
	files, err := m.meta.LocalFiles(ctx)
	if err != nil {
		m.logger.Warn("meta check failed", zap.Error(err))
		return false, nil
	}

	checks := make([]FileCheck, 0, len(files))
	for _, f := range files {
		check := FileCheck{Name: f.ReadableName(), Path: f.Path}
		state, err := m.meta.State(ctx, f)
		if err != nil {
			m.logger.Warn("file check failed", zap.String("path", f.Path), zap.Error(err))
			check.Error = err.Error()
		} else {
			check.Reachable = true
			check.Size = state.Size
			check.ModificationTime = state.ModificationTime
		}
		checks = append(checks, check)
	}
	return true, checks
}

func (m *Monitor) checkHistory() (bool, int) {
	if m.history == nil {
		return false, 0
	}
	size, err := m.history.Size()
	if err != nil {
		m.logger.Warn("history size check failed", zap.Error(err))
		return false, size
	}
	return true, size
}
