package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

const defaultLoadTimeout = 10 * time.Second

type entry struct {
	value     any
	expiresAt time.Time
}

// Store is the in-process read cache behind the repository decorators.
//
// Misses on one key share a single load. The load runs detached from the
// caller that started it and bounded by the load timeout, so one caller
// giving up does not fail the others; each caller still stops waiting when
// its own context ends. Any invalidation bumps a generation counter and a
// load that started before it neither stores its result nor serves callers
// that arrive after it.
type Store struct {
	mu          sync.RWMutex
	entries     map[string]entry
	generation  uint64
	ttl         time.Duration
	loadTimeout time.Duration
	now         func() time.Time
	flight      singleflight.Group
}

type Option func(*Store)

// WithLoadTimeout bounds a shared load. Non-positive values keep the default.
func WithLoadTimeout(d time.Duration) Option {
	return func(s *Store) {
		if d > 0 {
			s.loadTimeout = d
		}
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// NewStore keeps entries for ttl. A non-positive ttl never expires entries.
func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries:     make(map[string]entry),
		ttl:         ttl,
		loadTimeout: defaultLoadTimeout,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(key string) (any, bool) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if !e.expiresAt.IsZero() && !e.expiresAt.After(s.now()) {
		s.mu.Lock()
		if cur, still := s.entries[key]; still && cur.expiresAt.Equal(e.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}
	return e.value, true
}

func (s *Store) Set(key string, value any) {
	s.mu.Lock()
	s.setLocked(key, value)
	s.mu.Unlock()
}

func (s *Store) setLocked(key string, value any) {
	var expiresAt time.Time
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

func (s *Store) Delete(key string) {
	s.mu.Lock()
	delete(s.entries, key)
	s.generation++
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(prefix string) {
	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.generation++
	s.mu.Unlock()
}

func (s *Store) currentGeneration() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.generation
}

// GetOrLoad returns the cached value for key or loads it. Loader errors are
// returned to every waiter and never cached. A caller whose ctx ends first
// gets ctx.Err() while the load carries on for the rest.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if value, ok := s.Get(key); ok {
		return value, nil
	}

	gen := s.currentGeneration()
	flightKey := strconv.FormatUint(gen, 10) + "|" + key
	results := s.flight.DoChan(flightKey, func() (any, error) {
		if cached, ok := s.Get(key); ok {
			return cached, nil
		}

		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.loadTimeout)
		defer cancel()

		loaded, err := loader(loadCtx)
		if err != nil {
			return nil, err
		}

		s.mu.Lock()
		if s.generation == gen {
			s.setLocked(key, loaded)
		}
		s.mu.Unlock()
		return loaded, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-results:
		return res.Val, res.Err
	}
}

// Load is GetOrLoad for a loader of a concrete type.
func Load[V any](ctx context.Context, s *Store, key string, loader func(context.Context) (V, error)) (V, error) {
	var zero V
	value, err := s.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return loader(ctx)
	})
	if err != nil {
		return zero, err
	}
	typed, ok := value.(V)
	if !ok {
		return zero, fmt.Errorf("cache key %q holds %T", key, value)
	}
	return typed, nil
}
