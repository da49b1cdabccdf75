package cache

import (
	"context"
	"time"

	"go.uber.org/zap"
)

type WarmupTask struct {
	Name string
	Run  func(ctx context.Context) error
}

// Warmer refreshes cached listings on a fixed interval so that user requests
// rarely wait on an upstream.
type Warmer struct {
	interval time.Duration
	tasks    []WarmupTask
	logger   *zap.Logger
}

func NewWarmer(interval time.Duration, log *zap.Logger, tasks ...WarmupTask) *Warmer {
	if interval <= 0 {
		interval = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Warmer{interval: interval, tasks: tasks, logger: log}
}

// Start runs every task once, then again on each tick until ctx is done.
func (w *Warmer) Start(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	w.logger.Info("cache warmer started", zap.Duration("interval", w.interval), zap.Int("tasks", len(w.tasks)))
	w.RunOnce(ctx)

	for {
		select {
		case <-ctx.Done():
			w.logger.Info("cache warmer stopped")
			return
		case <-ticker.C:
			w.RunOnce(ctx)
		}
	}
}

// RunOnce runs each task and returns how many failed.
func (w *Warmer) RunOnce(ctx context.Context) int {
	failed := 0
	for _, task := range w.tasks {
		if ctx.Err() != nil {
			return failed
		}
		if err := task.Run(ctx); err != nil {
			failed++
			w.logger.Warn("cache warmup failed", zap.String("task", task.Name), zap.Error(err))
			continue
		}
		w.logger.Debug("cache warmed", zap.String("task", task.Name))
	}
	return failed
}
