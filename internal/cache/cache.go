// Package cache layers timestamped, TTL-checked entries over a key-value store.
package cache

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/mmcdole/anispin/internal/domain"
)

// Entry is a cached payload with its creation time.
type Entry[T any] struct {
	Timestamp time.Time `json:"timestamp"`
	Payload   T         `json:"payload"`
}

// Fresh reports whether the entry is still inside ttl at now.
func (e Entry[T]) Fresh(now time.Time, ttl time.Duration) bool {
	return now.Sub(e.Timestamp) < ttl
}

// Namespace is a typed view over every store key sharing a prefix.
// The TTL is applied on read; the store never expires anything.
type Namespace[T any] struct {
	store  domain.KeyValueStore
	prefix string
	ttl    time.Duration
	now    func() time.Time
	logger *slog.Logger
}

// Option configures a Namespace.
type Option func(*options)

type options struct {
	now    func() time.Time
	logger *slog.Logger
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(o *options) { o.now = now }
}

// WithLogger sets the logger used for swallowed write failures.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// NewNamespace creates a namespace over store.
func NewNamespace[T any](store domain.KeyValueStore, prefix string, ttl time.Duration, opts ...Option) *Namespace[T] {
	o := options{now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	return &Namespace[T]{
		store:  store,
		prefix: prefix,
		ttl:    ttl,
		now:    o.now,
		logger: o.logger,
	}
}

// Get returns the entry under key if present, decodable and fresh.
func (n *Namespace[T]) Get(key string) (Entry[T], bool) {
	var entry Entry[T]
	data, ok := n.store.Get(n.prefix + key)
	if !ok {
		return entry, false
	}
	if err := json.Unmarshal(data, &entry); err != nil {
		n.logger.Debug("discarding undecodable cache entry", "key", n.prefix+key, "error", err)
		return entry, false
	}
	if !entry.Fresh(n.now(), n.ttl) {
		return entry, false
	}
	return entry, true
}

// Set writes payload under key stamped with the current time. When the store
// is out of quota every entry of the namespace is evicted and the write is
// dropped. Failures are never returned: the cache is best-effort.
func (n *Namespace[T]) Set(key string, payload T) {
	data, err := json.Marshal(Entry[T]{Timestamp: n.now(), Payload: payload})
	if err != nil {
		n.logger.Warn("failed to encode cache entry", "key", n.prefix+key, "error", err)
		return
	}

	err = n.store.Set(n.prefix+key, data)
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrQuotaExceeded):
		n.logger.Warn("cache quota exceeded, evicting namespace", "prefix", n.prefix)
		n.store.DeletePrefix(n.prefix)
	default:
		n.logger.Warn("failed to write cache entry", "key", n.prefix+key, "error", err)
	}
}

// Clear removes every entry in the namespace.
func (n *Namespace[T]) Clear() {
	n.store.DeletePrefix(n.prefix)
}
