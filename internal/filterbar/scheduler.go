package filterbar

import (
	"sync"
	"time"
)

// Task is a scheduled single-shot callback.
type Task interface {
	// Stop cancels the task. It reports false when the callback already ran
	// or was stopped before.
	Stop() bool
}

// Scheduler runs a callback once after a delay.
type Scheduler interface {
	AfterFunc(d time.Duration, f func()) Task
}

// TimerScheduler schedules on the runtime timers.
type TimerScheduler struct{}

// AfterFunc implements Scheduler.
func (TimerScheduler) AfterFunc(d time.Duration, f func()) Task {
	return time.AfterFunc(d, f)
}

// ManualScheduler is a Scheduler driven by an explicit clock. Callbacks run
// synchronously inside Advance.
type ManualScheduler struct {
	mu    sync.Mutex
	now   time.Duration
	tasks []*manualTask
}

type manualTask struct {
	s       *ManualScheduler
	at      time.Duration
	f       func()
	stopped bool
	fired   bool
}

// NewManualScheduler returns a scheduler at time zero.
func NewManualScheduler() *ManualScheduler {
	return &ManualScheduler{}
}

// AfterFunc implements Scheduler.
func (s *ManualScheduler) AfterFunc(d time.Duration, f func()) Task {
	s.mu.Lock()
	defer s.mu.Unlock()

	t := &manualTask{s: s, at: s.now + d, f: f}
	s.tasks = append(s.tasks, t)
	return t
}

// Advance moves the clock forward by d and runs every task that became due,
// in due order.
func (s *ManualScheduler) Advance(d time.Duration) {
	s.mu.Lock()
	target := s.now + d
	s.mu.Unlock()

	for {
		s.mu.Lock()
		next := -1
		for i, t := range s.tasks {
			if t.stopped || t.fired || t.at > target {
				continue
			}
			if next < 0 || t.at < s.tasks[next].at {
				next = i
			}
		}
		if next < 0 {
			s.now = target
			s.compact()
			s.mu.Unlock()
			return
		}
		t := s.tasks[next]
		t.fired = true
		s.now = t.at
		s.mu.Unlock()

		t.f()
	}
}

// Pending returns the number of tasks that are neither stopped nor fired.
func (s *ManualScheduler) Pending() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			n++
		}
	}
	return n
}

// compact drops finished tasks. Caller holds s.mu.
func (s *ManualScheduler) compact() {
	kept := s.tasks[:0]
	for _, t := range s.tasks {
		if !t.stopped && !t.fired {
			kept = append(kept, t)
		}
	}
	clear(s.tasks[len(kept):])
	s.tasks = kept
}

func (t *manualTask) Stop() bool {
	t.s.mu.Lock()
	defer t.s.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
