// Package sweeper runs the periodic subscription maintenance tasks. Each
// sweeper is an independently lifecycled background task: Start and Stop are
// idempotent and share no state with request handlers beyond the database.
package sweeper

import (
	"context"
	"sync"
	"time"

	"centratutor/internal/logger"
)

// SweepFunc performs one sweep and reports how many rows it modified.
type SweepFunc func(ctx context.Context) (int64, error)

type Sweeper struct {
	name     string
	interval time.Duration
	sweep    SweepFunc

	mu      sync.Mutex
	stop    chan struct{}
	running bool
}

func New(name string, interval time.Duration, sweep SweepFunc) *Sweeper {
	return &Sweeper{
		name:     name,
		interval: interval,
		sweep:    sweep,
	}
}

// Start launches the sweep loop. Calling Start on a running sweeper is a
// no-op.
func (s *Sweeper) Start() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.running {
		logger.Warnf("sweeper %s already running", s.name)
		return
	}
	s.running = true
	s.stop = make(chan struct{})
	go s.run(s.stop)
	logger.Infof("sweeper %s started, interval %s", s.name, s.interval)
}

// Stop halts the loop. Calling Stop on a stopped sweeper is a no-op.
func (s *Sweeper) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.running {
		return
	}
	s.running = false
	close(s.stop)
	logger.Infof("sweeper %s stopped", s.name)
}

// Running reports whether the loop is active.
func (s *Sweeper) Running() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.running
}

func (s *Sweeper) run(stop <-chan struct{}) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			s.runOnce()
		case <-stop:
			return
		}
	}
}

func (s *Sweeper) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	modified, err := s.sweep(ctx)
	if err != nil {
		logger.Errorf("sweeper %s failed: %v", s.name, err)
		return
	}
	if modified > 0 {
		logger.Infof("sweeper %s deactivated %d subscriptions", s.name, modified)
	}
}
