// Package scheduler runs the periodic maintenance jobs.
package scheduler

import (
	"context"
	"fmt"
	"time"

	"goldsite/config"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Pruner deletes audit records older than a cutoff.
type Pruner interface {
	DeleteOldQuotes(ctx context.Context, before time.Time) (int64, error)
}

// Cleaner drops per-client state idle for longer than maxIdle.
type Cleaner interface {
	Cleanup(maxIdle time.Duration) int
}

// SessionCounter reports open price display sessions.
type SessionCounter interface {
	CountAll() int
}

const (
	pruneTimeout = 30 * time.Second
	limiterIdle  = 10 * time.Minute
)

type Scheduler struct {
	Cron *cron.Cron

	cfg      config.SchedulerConfig
	pruner   Pruner
	cleaner  Cleaner
	sessions SessionCounter
	logger   *zap.Logger
	now      func() time.Time
}

// NewScheduler builds a scheduler; nil dependencies disable their jobs.
func NewScheduler(cfg config.SchedulerConfig, pruner Pruner, cleaner Cleaner, sessions SessionCounter, logger *zap.Logger) *Scheduler {
	return &Scheduler{
		Cron:     cron.New(cron.WithSeconds()),
		cfg:      cfg,
		pruner:   pruner,
		cleaner:  cleaner,
		sessions: sessions,
		logger:   logger,
		now:      time.Now,
	}
}

// RegisterAll registers the retention and cleanup jobs.
func (s *Scheduler) RegisterAll() error {
	if s.pruner != nil && s.cfg.Retention > 0 {
		if _, err := s.Cron.AddFunc(s.cfg.RetentionCron, s.pruneQuotes); err != nil {
			return fmt.Errorf("register retention task: %w", err)
		}
	}
	if _, err := s.Cron.AddFunc(s.cfg.CleanupCron, s.cleanup); err != nil {
		return fmt.Errorf("register cleanup task: %w", err)
	}
	return nil
}

func (s *Scheduler) Start() {
	s.Cron.Start()
	s.logger.Info("scheduler started", zap.Int("jobs", len(s.Cron.Entries())))
}

// Stop stops the scheduler and waits for running jobs.
func (s *Scheduler) Stop() {
	<-s.Cron.Stop().Done()
	s.logger.Info("scheduler stopped")
}

func (s *Scheduler) pruneQuotes() {
	ctx, cancel := context.WithTimeout(context.Background(), pruneTimeout)
	defer cancel()

	cutoff := s.now().Add(-s.cfg.Retention)
	n, err := s.pruner.DeleteOldQuotes(ctx, cutoff)
	if err != nil {
		s.logger.Error("failed to prune quote log", zap.Error(err))
		return
	}
	s.logger.Info("pruned quote log", zap.Int64("deleted", n), zap.Time("before", cutoff))
}

func (s *Scheduler) cleanup() {
	var dropped int
	if s.cleaner != nil {
		dropped = s.cleaner.Cleanup(limiterIdle)
	}

	fields := []zap.Field{zap.Int("limiters_dropped", dropped)}
	if s.sessions != nil {
		fields = append(fields, zap.Int("open_sessions", s.sessions.CountAll()))
	}
	s.logger.Debug("periodic cleanup", fields...)
}
