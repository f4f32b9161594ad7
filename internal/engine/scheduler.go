package engine

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"
)

// DefaultScanInterval matches the once-a-day cadence of the discount scan.
const DefaultScanInterval = 24 * time.Hour

// Scheduler runs the discount scan on a fixed interval. The first scan fires
// immediately on Start rather than one interval later.
type Scheduler struct {
	cron   *cron.Cron
	engine *Engine
	log    *slog.Logger
	first  sync.WaitGroup
}

// NewScheduler creates a Scheduler that runs the engine's scan periodically.
func NewScheduler(eng *Engine, interval time.Duration, log *slog.Logger) (*Scheduler, error) {
	c := cron.New()

	s := &Scheduler{
		cron:   c,
		engine: eng,
		log:    log,
	}

	if _, err := c.AddFunc("@every "+interval.String(), s.runScan); err != nil {
		return nil, err
	}

	return s, nil
}

// Start begins the schedule and kicks off an immediate first scan. The first
// scan runs outside cron's job tracking, so Stop waits for it separately.
func (s *Scheduler) Start() {
	s.log.Info("scan scheduler started")
	s.cron.Start()
	s.first.Add(1)
	go func() {
		defer s.first.Done()
		s.runScan()
	}()
}

// Stop gracefully stops the scheduler. It blocks until the immediate first
// scan has finished; the returned context completes when the remaining cron
// jobs have too.
func (s *Scheduler) Stop() context.Context {
	s.log.Info("scan scheduler stopping")
	ctx := s.cron.Stop()
	s.first.Wait()
	return ctx
}

// Entries returns the registered cron entries for inspection.
func (s *Scheduler) Entries() []cron.Entry {
	return s.cron.Entries()
}

func (s *Scheduler) runScan() {
	ctx := context.Background()
	s.log.Info("scheduled discount scan starting")
	if err := s.engine.RunScan(ctx); err != nil {
		s.log.Error("scheduled discount scan failed", "error", err)
	}
}
