package scheduler

import (
	"context"
	"time"

	"github.com/MrSnakeDoc/namax/internal/logger"
)

const (
	// DefaultSessionIdleTTL is how long an unused filter bar session lives
	DefaultSessionIdleTTL = 30 * time.Minute
)

// Sessions is the part of the filter bar registry the sweeper needs
type Sessions interface {
	Sweep(idle time.Duration) int
	Len() int
}

// SessionSweeper closes filter bar sessions that went idle
type SessionSweeper struct {
	sessions Sessions
	logger   logger.Logger
	interval time.Duration
	idleTTL  time.Duration
	stopCh   chan struct{}
}

// NewSessionSweeper creates a new session sweeper
func NewSessionSweeper(
	sessions Sessions,
	log logger.Logger,
	interval time.Duration,
	idleTTL time.Duration,
) *SessionSweeper {
	if idleTTL == 0 {
		idleTTL = DefaultSessionIdleTTL
	}

	return &SessionSweeper{
		sessions: sessions,
		logger:   log,
		interval: interval,
		idleTTL:  idleTTL,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep
func (ss *SessionSweeper) Start(ctx context.Context) error {
	ticker := time.NewTicker(ss.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				ss.Sweep()
			case <-ss.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper
func (ss *SessionSweeper) Stop() {
	close(ss.stopCh)
}

// Sweep removes idle sessions and returns how many went away
func (ss *SessionSweeper) Sweep() int {
	removed := ss.sessions.Sweep(ss.idleTTL)

	if removed > 0 {
		ss.logger.Info("idle filter sessions closed",
			logger.Int("removed", removed),
			logger.Int("remaining", ss.sessions.Len()))
	} else {
		ss.logger.Debug("no idle filter sessions")
	}

	return removed
}
