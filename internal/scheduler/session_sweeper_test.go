package scheduler

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/MrSnakeDoc/namax/internal/logger"
)

type fakeSessions struct {
	mu     sync.Mutex
	idle   int
	live   int
	gotTTL time.Duration
	sweeps int
}

func (f *fakeSessions) Sweep(idle time.Duration) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sweeps++
	f.gotTTL = idle
	n := f.idle
	f.live -= n
	f.idle = 0
	return n
}

func (f *fakeSessions) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.live
}

func TestSessionSweeper_Sweep(t *testing.T) {
	log := logger.New("error", false)
	sessions := &fakeSessions{idle: 2, live: 5}

	ss := NewSessionSweeper(sessions, log, time.Hour, 0)

	if removed := ss.Sweep(); removed != 2 {
		t.Errorf("Sweep() = %d, want 2", removed)
	}
	if sessions.gotTTL != DefaultSessionIdleTTL {
		t.Errorf("idle ttl = %v, want default %v", sessions.gotTTL, DefaultSessionIdleTTL)
	}
	if sessions.Len() != 3 {
		t.Errorf("remaining = %d, want 3", sessions.Len())
	}

	if removed := ss.Sweep(); removed != 0 {
		t.Errorf("second Sweep() = %d, want 0", removed)
	}
}

func TestSessionSweeper_StartStop(t *testing.T) {
	sessions := &fakeSessions{idle: 1, live: 1}
	ss := NewSessionSweeper(sessions, logger.Nop(), 5*time.Millisecond, time.Minute)

	if err := ss.Start(context.Background()); err != nil {
		t.Fatalf("Start() error = %v", err)
	}

	deadline := time.Now().Add(time.Second)
	for sessions.Len() != 0 && time.Now().Before(deadline) {
		time.Sleep(5 * time.Millisecond)
	}
	ss.Stop()

	if sessions.Len() != 0 {
		t.Error("ticker never swept the idle session")
	}
	sessions.mu.Lock()
	defer sessions.mu.Unlock()
	if sessions.gotTTL != time.Minute {
		t.Errorf("idle ttl = %v, want 1m", sessions.gotTTL)
	}
}
