package sched_test

import (
	"sync/atomic"
	"testing"
	"time"

	"pricesmart/internal/sched"
)

func TestSchedulerRunsAndStops(t *testing.T) {
	var runs int64
	s := sched.New(10*time.Millisecond, func() int {
		atomic.AddInt64(&runs, 1)
		return 0
	})
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	got := atomic.LoadInt64(&runs)
	if got == 0 {
		t.Fatal("sweep never ran")
	}
	time.Sleep(30 * time.Millisecond)
	if after := atomic.LoadInt64(&runs); after != got {
		t.Fatalf("sweep ran after Stop: %d -> %d", got, after)
	}
}

func TestSchedulerSingleFlight(t *testing.T) {
	var inFlight, maxInFlight int64
	s := sched.New(5*time.Millisecond, func() int {
		cur := atomic.AddInt64(&inFlight, 1)
		if cur > atomic.LoadInt64(&maxInFlight) {
			atomic.StoreInt64(&maxInFlight, cur)
		}
		time.Sleep(20 * time.Millisecond)
		atomic.AddInt64(&inFlight, -1)
		return 0
	})
	s.Start()
	time.Sleep(100 * time.Millisecond)
	s.Stop()

	if atomic.LoadInt64(&maxInFlight) > 1 {
		t.Fatalf("sweeps overlapped: max in flight %d", maxInFlight)
	}
}

func TestStopIsIdempotent(t *testing.T) {
	s := sched.New(time.Hour, func() int { return 0 })
	s.Start()
	s.Stop()
	s.Stop()
}
