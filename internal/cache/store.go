package cache

import (
	"context"
	"log/slog"

	"golden_hour/internal/metrics"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"
)

type Freshness int

const (
	Miss Freshness = iota
	Fresh
	Stale
)

func (f Freshness) String() string {
	switch f {
	case Fresh:
		return "fresh"
	case Stale:
		return "stale"
	default:
		return "miss"
	}
}

type entry struct {
	value any
	stale bool
}

// Store is the shared last-known-server-state cache. Entries live for the
// process lifetime; the only way out is explicit invalidation, which marks
// the entry stale so the next Fetch re-fetches. Only the query layer
// populates it and only the mutation layer invalidates it.
type Store struct {
	entries *gocache.Cache
	group   singleflight.Group
	log     *slog.Logger
}

func NewStore(log *slog.Logger) *Store {
	if log == nil {
		log = slog.Default()
	}
	return &Store{
		entries: gocache.New(gocache.NoExpiration, 0),
		log:     log,
	}
}

// Get returns the last known value for key. A stale value is still returned
// so callers can keep rendering while a re-fetch is pending.
func (s *Store) Get(key Key) (any, Freshness) {
	raw, ok := s.entries.Get(string(key))
	if !ok {
		return nil, Miss
	}

	e := raw.(*entry)
	if e.stale {
		return e.value, Stale
	}
	return e.value, Fresh
}

// Set stores a confirmed server value under key and clears staleness.
func (s *Store) Set(key Key, value any) {
	s.entries.Set(string(key), &entry{value: value}, gocache.NoExpiration)
}

// Invalidate marks the given keys stale. Unknown keys are ignored; their
// next read is a miss either way.
func (s *Store) Invalidate(keys ...Key) {
	for _, key := range keys {
		raw, ok := s.entries.Get(string(key))
		if !ok {
			continue
		}
		// Replace rather than mutate in place; entries are immutable once
		// stored so concurrent readers never see a half-written entry.
		e := raw.(*entry)
		s.entries.Set(string(key), &entry{value: e.value, stale: true}, gocache.NoExpiration)

		metrics.CacheInvalidationsTotal.WithLabelValues(key.Family()).Inc()
		s.log.Debug("cache invalidated", slog.String("key", string(key)))
	}
}

// InvalidateFamily marks every key of a family stale, partitioned entries
// included. Mutations use this so a write to one photo also stales the
// per-category photo lists.
func (s *Store) InvalidateFamily(family string) {
	for raw := range s.entries.Items() {
		key := Key(raw)
		if key.Family() != family {
			continue
		}
		s.Invalidate(key)
	}
}

// FetchFunc loads a value from the remote boundary.
type FetchFunc func(ctx context.Context) (any, error)

// Fetch is the read-through path: a fresh entry is returned as is, anything
// else triggers fn. Concurrent fetches of one key share a single in-flight
// call. On failure the stored value is left untouched and the error is
// returned to every waiter.
func (s *Store) Fetch(ctx context.Context, key Key, fn FetchFunc) (any, error) {
	if value, freshness := s.Get(key); freshness == Fresh {
		metrics.CacheHitsTotal.WithLabelValues(key.Family()).Inc()
		return value, nil
	}

	metrics.CacheMissesTotal.WithLabelValues(key.Family()).Inc()

	value, err, _ := s.group.Do(string(key), func() (any, error) {
		// Re-check under the flight: a concurrent Fetch may have stored a
		// fresh value while this caller was queued.
		if value, freshness := s.Get(key); freshness == Fresh {
			return value, nil
		}

		value, err := fn(ctx)
		if err != nil {
			metrics.RemoteCallsTotal.WithLabelValues(key.Family(), "error").Inc()
			return nil, err
		}

		metrics.RemoteCallsTotal.WithLabelValues(key.Family(), "ok").Inc()
		s.Set(key, value)
		return value, nil
	})
	if err != nil {
		return nil, err
	}
	return value, nil
}

// Keys lists the cached keys, stale ones included. Backs the admin cache
// diagnostics endpoint.
func (s *Store) Keys() []string {
	items := s.entries.Items()
	keys := make([]string, 0, len(items))
	for key := range items {
		keys = append(keys, key)
	}
	return keys
}

// Flush drops every entry. The admin cache reset endpoint uses it when a
// backend-side change has to become visible before any invalidation fires.
func (s *Store) Flush() {
	s.entries.Flush()
}

// FetchAs is the typed wrapper around Store.Fetch used by the query layer.
func FetchAs[T any](ctx context.Context, s *Store, key Key, fn func(ctx context.Context) (T, error)) (T, error) {
	value, err := s.Fetch(ctx, key, func(ctx context.Context) (any, error) {
		return fn(ctx)
	})
	if err != nil {
		var zero T
		return zero, err
	}

	typed, ok := value.(T)
	if !ok {
		// A key collision between two resource types; treat as a miss and
		// refuse the bad value rather than panic in the rendering path.
		var zero T
		s.log.Warn("cache type mismatch", slog.String("key", string(key)))
		return zero, nil
	}
	return typed, nil
}
