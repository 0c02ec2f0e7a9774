package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"

	"github.com/taskgrid/backend/internal/infrastructure/activity"
)

// RetentionConfig controls how often old activity entries are swept out.
type RetentionConfig struct {
	Interval  time.Duration
	Retention time.Duration
}

// RetentionSweeper prunes expired activity entries on a cron schedule.
type RetentionSweeper struct {
	store  *activity.Store
	logger *zap.Logger
	cron   *cron.Cron
	cfg    RetentionConfig
}

func NewRetentionSweeper(store *activity.Store, logger *zap.Logger, cfg RetentionConfig) *RetentionSweeper {
	if cfg.Interval <= 0 {
		cfg.Interval = time.Hour
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 30 * 24 * time.Hour
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	rs := &RetentionSweeper{
		store:  store,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = rs.cron.AddFunc(schedule, func() {
		if err := rs.Sweep(); err != nil {
			rs.logger.Error("activity sweep failed", zap.Error(err))
		}
	})

	return rs
}

// Start launches the cron scheduler.
func (rs *RetentionSweeper) Start() {
	if rs == nil || rs.cron == nil {
		return
	}
	rs.cron.Start()
	rs.logger.Info("activity retention sweeper started",
		zap.Duration("interval", rs.cfg.Interval),
		zap.Duration("retention", rs.cfg.Retention))
}

// Stop gracefully stops the scheduler.
func (rs *RetentionSweeper) Stop(ctx context.Context) {
	if rs == nil || rs.cron == nil {
		return
	}
	stopCtx := rs.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	rs.logger.Info("activity retention sweeper stopped")
}

// Sweep removes entries older than the retention window.
func (rs *RetentionSweeper) Sweep() error {
	if rs == nil || rs.store == nil {
		return nil
	}
	removed, err := rs.store.Prune(time.Now().Add(-rs.cfg.Retention))
	if err != nil {
		return err
	}
	if removed > 0 {
		rs.logger.Info("pruned activity entries", zap.Int("removed", removed))
	}
	return nil
}
