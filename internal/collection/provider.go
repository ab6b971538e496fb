package collection

import (
	"sync"

	"github.com/cespare/xxhash/v2"

	"github.com/MrSnakeDoc/namax/internal/logger"
	"github.com/MrSnakeDoc/namax/internal/store"
)

const lockStripes = 64

// Provider hands out per-client stores over one shared backend.
// Stores for the same client id share a lock, so concurrent requests from
// one client never interleave their read-modify-write cycles.
type Provider struct {
	kv    store.KeyValue
	log   logger.Logger
	opts  []Option
	locks [lockStripes]sync.Mutex
}

// NewProvider creates a provider over an unscoped backend.
func NewProvider(kv store.KeyValue, log logger.Logger, opts ...Option) *Provider {
	return &Provider{kv: kv, log: log, opts: opts}
}

// For returns the store of one client.
func (p *Provider) For(clientID string) *Store {
	mu := &p.locks[xxhash.Sum64String(clientID)%lockStripes]
	return newStore(
		store.Scope(p.kv, clientID),
		p.log.With(logger.String("client", clientID)),
		mu,
		p.opts...,
	)
}
