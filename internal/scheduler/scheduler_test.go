package scheduler_test

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"gradjobs/internal/scheduler"
)

type fakeSweeper struct {
	calls atomic.Int32
	idle  atomic.Int64
}

func (f *fakeSweeper) Sweep(idle time.Duration) int {
	f.calls.Add(1)
	f.idle.Store(int64(idle))
	return 2
}

type fakeDigester struct {
	calls atomic.Int32
	err   error
}

func (f *fakeDigester) PublishDailyReleases(context.Context) (int, error) {
	f.calls.Add(1)
	return 1, f.err
}

func TestStart_RejectsBadDigestSpec(t *testing.T) {
	s := scheduler.New(&fakeSweeper{}, &fakeDigester{}, scheduler.Config{
		IdleTimeout:   time.Hour,
		SweepInterval: time.Minute,
		DigestSpec:    "not a cron spec",
	})
	if err := s.Start(context.Background()); err == nil {
		s.Stop()
		t.Fatal("Start accepted an invalid digest spec")
	}
}

func TestSweepRunsOnInterval(t *testing.T) {
	sw := &fakeSweeper{}
	s := scheduler.New(sw, &fakeDigester{}, scheduler.Config{
		IdleTimeout:   12 * time.Hour,
		SweepInterval: time.Second,
		DigestSpec:    "5 0 * * *",
	})
	if err := s.Start(context.Background()); err != nil {
		t.Fatalf("Start: %v", err)
	}
	defer s.Stop()

	deadline := time.Now().Add(5 * time.Second)
	for sw.calls.Load() == 0 {
		if time.Now().After(deadline) {
			t.Fatal("sweep never ran")
		}
		time.Sleep(50 * time.Millisecond)
	}
	if got := time.Duration(sw.idle.Load()); got != 12*time.Hour {
		t.Errorf("Sweep idle = %v, want 12h", got)
	}
}

func TestRunDigest(t *testing.T) {
	ok := &fakeDigester{}
	failing := &fakeDigester{err: errors.New("redis down")}

	for _, d := range []*fakeDigester{ok, failing} {
		s := scheduler.New(&fakeSweeper{}, d, scheduler.Config{})
		s.RunDigest(context.Background())
		if d.calls.Load() != 1 {
			t.Errorf("digester called %d times, want 1", d.calls.Load())
		}
	}
}
