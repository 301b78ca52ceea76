package scheduler

import (
	"context"
	"errors"
	"testing"
	"time"

	"goldsite/config"

	"go.uber.org/zap"
)

type fakePruner struct {
	before time.Time
	err    error
	calls  int
}

func (f *fakePruner) DeleteOldQuotes(_ context.Context, before time.Time) (int64, error) {
	f.calls++
	f.before = before
	return 3, f.err
}

type fakeCleaner struct{ maxIdle time.Duration }

func (f *fakeCleaner) Cleanup(maxIdle time.Duration) int {
	f.maxIdle = maxIdle
	return 2
}

type fixedSessions int

func (n fixedSessions) CountAll() int { return int(n) }

func testConfig() config.SchedulerConfig {
	return config.SchedulerConfig{
		RetentionCron: "0 0 0 * * *",
		Retention:     24 * time.Hour,
		CleanupCron:   "0 */10 * * * *",
	}
}

// go test -v --run TestRegisterAll
func TestRegisterAll(t *testing.T) {
	s := NewScheduler(testConfig(), &fakePruner{}, &fakeCleaner{}, fixedSessions(1), zap.NewNop())
	if err := s.RegisterAll(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if n := len(s.Cron.Entries()); n != 2 {
		t.Errorf("expected 2 jobs, got %d", n)
	}

	noStore := NewScheduler(testConfig(), nil, &fakeCleaner{}, nil, zap.NewNop())
	if err := noStore.RegisterAll(); err != nil {
		t.Fatalf("register: %v", err)
	}
	if n := len(noStore.Cron.Entries()); n != 1 {
		t.Errorf("expected retention job skipped, got %d jobs", n)
	}
}

// go test -v --run TestRegisterInvalidCron
func TestRegisterInvalidCron(t *testing.T) {
	cfg := testConfig()
	cfg.CleanupCron = "every minute"

	s := NewScheduler(cfg, nil, nil, nil, zap.NewNop())
	if err := s.RegisterAll(); err == nil {
		t.Error("expected error for invalid cron expression")
	}
}

// go test -v --run TestPruneQuotes
func TestPruneQuotes(t *testing.T) {
	p := &fakePruner{}
	s := NewScheduler(testConfig(), p, nil, nil, zap.NewNop())
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return now }

	s.pruneQuotes()
	if p.calls != 1 || !p.before.Equal(now.Add(-24*time.Hour)) {
		t.Errorf("unexpected prune call: %+v", p)
	}

	p.err = errors.New("db down")
	s.pruneQuotes()
	if p.calls != 2 {
		t.Error("prune failure must not stop later runs")
	}
}

// go test -v --run TestCleanup
func TestCleanup(t *testing.T) {
	c := &fakeCleaner{}
	s := NewScheduler(testConfig(), nil, c, fixedSessions(4), zap.NewNop())

	s.cleanup()
	if c.maxIdle != limiterIdle {
		t.Errorf("expected idle threshold %v, got %v", limiterIdle, c.maxIdle)
	}
}

// go test -v --run TestStartStop
func TestStartStop(t *testing.T) {
	s := NewScheduler(testConfig(), nil, nil, nil, zap.NewNop())
	if err := s.RegisterAll(); err != nil {
		t.Fatal(err)
	}
	s.Start()
	s.Stop()
}
