// Package store defines the key-value contract that backs every client
// collection, along with an in-memory implementation and per-client scoping.
package store

import (
	"context"
	"errors"
	"strings"
)

// ErrUnavailable is returned when the backing storage cannot be reached or
// refuses an operation.
var ErrUnavailable = errors.New("storage unavailable")

// KeyValue is a durable string key -> string value store.
// No transactions, no expiry. Get reports found=false for a missing key.
type KeyValue interface {
	Get(ctx context.Context, key string) (value string, found bool, err error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}

// Pinger is implemented by backends that can report liveness.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ClientCounter is implemented by backends that can tell how many client
// scopes hold data.
type ClientCounter interface {
	CountClients(ctx context.Context) (int, error)
}

// ClientOf returns the client id part of a physical key.
func ClientOf(physicalKey string) (string, bool) {
	client, _, ok := strings.Cut(physicalKey, ":")
	return client, ok && client != ""
}

// scoped prefixes every key with a client id.
type scoped struct {
	kv     KeyValue
	prefix string
}

// Scope returns a view of kv where every key lives under clientID.
// Two scopes with different ids never see each other's keys.
func Scope(kv KeyValue, clientID string) KeyValue {
	return &scoped{kv: kv, prefix: ScopedKey(clientID, "")}
}

// ScopedKey builds the physical key for a logical key inside a client scope.
func ScopedKey(clientID, key string) string {
	return strings.TrimSpace(clientID) + ":" + key
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.kv.Get(ctx, s.prefix+key)
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.kv.Set(ctx, s.prefix+key, value)
}

func (s *scoped) Delete(ctx context.Context, key string) error {
	return s.kv.Delete(ctx, s.prefix+key)
}
