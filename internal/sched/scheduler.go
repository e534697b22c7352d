// Package sched drives the periodic watchlist sweep. The loop is
// cancellable and single-flight: if a sweep is still running when the
// ticker fires again, that tick is skipped rather than overlapping.
package sched

import (
	"sync"
	"time"

	applog "pricesmart/internal/log"
)

// Scheduler runs fn at a fixed interval until stopped.
type Scheduler struct {
	Interval time.Duration

	fn      func() int
	mu      sync.Mutex // single-flight guard
	stop    chan struct{}
	stopped sync.Once
	wg      sync.WaitGroup
}

func New(interval time.Duration, fn func() int) *Scheduler {
	if interval <= 0 {
		interval = 30 * time.Minute
	}
	return &Scheduler{Interval: interval, fn: fn, stop: make(chan struct{})}
}

// Start launches the loop in the background. The first run happens
// after one full interval.
func (s *Scheduler) Start() {
	s.wg.Add(1)
	go func() {
		defer s.wg.Done()
		ticker := time.NewTicker(s.Interval)
		defer ticker.Stop()
		applog.BgInfo("sched.start", map[string]any{"interval": s.Interval.String()})
		for {
			select {
			case <-ticker.C:
				s.wg.Add(1)
				go func() {
					defer s.wg.Done()
					s.runOnce()
				}()
			case <-s.stop:
				applog.BgInfo("sched.stop", nil)
				return
			}
		}
	}()
}

// Stop cancels the loop and waits for an in-flight run to finish.
func (s *Scheduler) Stop() {
	s.stopped.Do(func() { close(s.stop) })
	s.wg.Wait()
}

func (s *Scheduler) runOnce() {
	if !s.mu.TryLock() {
		applog.BgWarn("sched.overlap.skip", nil)
		return
	}
	defer s.mu.Unlock()
	s.fn()
}
