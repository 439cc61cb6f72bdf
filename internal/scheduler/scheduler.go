// Package scheduler wires up the cron jobs that expire idle sessions and
// publish the daily digest of newly opened roles.
package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/robfig/cron/v3"
)

// Sweeper drops sessions idle for longer than idle and reports how many.
type Sweeper interface {
	Sweep(idle time.Duration) int
}

// Digester publishes today's releases and reports how many there were.
type Digester interface {
	PublishDailyReleases(ctx context.Context) (int, error)
}

// Config holds the schedule.
type Config struct {
	IdleTimeout   time.Duration // sessions unused for this long are dropped
	SweepInterval time.Duration
	DigestSpec    string // standard 5-field cron spec, e.g. "5 0 * * *"
}

// Scheduler wraps robfig/cron.
type Scheduler struct {
	cron     *cron.Cron
	sweeper  Sweeper
	digester Digester
	cfg      Config
}

// New creates a Scheduler. It does not start until Start is called.
func New(sweeper Sweeper, digester Digester, cfg Config) *Scheduler {
	return &Scheduler{
		cron:     cron.New(cron.WithLogger(cron.DefaultLogger)),
		sweeper:  sweeper,
		digester: digester,
		cfg:      cfg,
	}
}

// Start registers both jobs and starts the scheduler.
func (s *Scheduler) Start(ctx context.Context) error {
	sweepSpec := fmt.Sprintf("@every %s", s.cfg.SweepInterval)
	if _, err := s.cron.AddFunc(sweepSpec, s.RunSweep); err != nil {
		return fmt.Errorf("cron.AddFunc sweep: %w", err)
	}
	if _, err := s.cron.AddFunc(s.cfg.DigestSpec, func() { s.RunDigest(ctx) }); err != nil {
		return fmt.Errorf("cron.AddFunc digest %q: %w", s.cfg.DigestSpec, err)
	}

	s.cron.Start()
	log.Printf("[scheduler] Cron started, sweep: %s, digest: %s", sweepSpec, s.cfg.DigestSpec)
	return nil
}

// Stop shuts down the scheduler and waits for running jobs to finish.
func (s *Scheduler) Stop() {
	<-s.cron.Stop().Done()
	log.Println("[scheduler] Cron stopped")
}

// RunSweep expires idle sessions once.
func (s *Scheduler) RunSweep() {
	if n := s.sweeper.Sweep(s.cfg.IdleTimeout); n > 0 {
		log.Printf("[scheduler] Expired %d idle session(s)", n)
	}
}

// RunDigest publishes today's releases once.
func (s *Scheduler) RunDigest(ctx context.Context) {
	n, err := s.digester.PublishDailyReleases(ctx)
	if err != nil {
		log.Printf("[scheduler] Daily digest error: %v", err)
		return
	}
	log.Printf("[scheduler] Daily digest published: %d new role(s)", n)
}
