package cache

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/riskibarqy/poethra-leaderboard/internal/platform/resilience"
)

type entry struct {
	value     any
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(now)
}

// Stats is a point-in-time snapshot of lookup outcomes.
type Stats struct {
	Hits    uint64
	Misses  uint64
	Entries int
}

// Option configures a Store.
type Option func(*Store)

// WithObserver registers fn to be called after every lookup with the cache name and outcome.
func WithObserver(fn func(name string, hit bool)) Option {
	return func(s *Store) {
		s.observe = fn
	}
}

// WithName labels the store for observers.
func WithName(name string) Option {
	return func(s *Store) {
		s.name = strings.TrimSpace(name)
	}
}

func withClock(now func() time.Time) Option {
	return func(s *Store) {
		s.now = now
	}
}

// Store is an in-process TTL cache. A zero default TTL keeps entries until deleted.
//
// Every Delete and DeletePrefix advances the store generation. GetOrLoad only caches
// a loaded value when no invalidation happened while the loader ran.
type Store struct {
	mu      sync.RWMutex
	entries map[string]entry
	gen     uint64
	ttl     time.Duration
	flight  resilience.SingleFlight
	now     func() time.Time
	name    string
	observe func(name string, hit bool)
	hits    atomic.Uint64
	misses  atomic.Uint64
}

func NewStore(ttl time.Duration, opts ...Option) *Store {
	s := &Store{
		entries: make(map[string]entry),
		ttl:     ttl,
		now:     time.Now,
		name:    "default",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *Store) Get(ctx context.Context, key string) (any, bool) {
	value, ok := s.lookup(key)
	s.record(ok)
	return value, ok
}

func (s *Store) lookup(key string) (any, bool) {
	if key == "" {
		return nil, false
	}

	now := s.now()
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false
	}
	if e.expired(now) {
		s.mu.Lock()
		if current, still := s.entries[key]; still && current.expired(now) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return nil, false
	}

	return e.value, true
}

// Set stores value under the default TTL.
func (s *Store) Set(ctx context.Context, key string, value any) {
	s.SetWithTTL(ctx, key, value, s.ttl)
}

// SetWithTTL stores value for ttl. A non-positive ttl never expires.
func (s *Store) SetWithTTL(_ context.Context, key string, value any, ttl time.Duration) {
	if key == "" {
		return
	}

	expiresAt := time.Time{}
	if ttl > 0 {
		expiresAt = s.now().Add(ttl)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
}

func (s *Store) Delete(_ context.Context, key string) {
	if key == "" {
		return
	}

	s.mu.Lock()
	delete(s.entries, key)
	s.gen++
	s.mu.Unlock()
}

func (s *Store) DeletePrefix(_ context.Context, prefix string) {
	if prefix == "" {
		return
	}

	s.mu.Lock()
	for key := range s.entries {
		if strings.HasPrefix(key, prefix) {
			delete(s.entries, key)
		}
	}
	s.gen++
	s.mu.Unlock()
}

// GetOrLoad returns the cached value for key or runs loader once per key across
// concurrent callers and caches its result. Loader errors are not cached. A value whose
// load overlapped an invalidation is returned to its callers but not cached, and callers
// arriving after the invalidation start a fresh load.
func (s *Store) GetOrLoad(ctx context.Context, key string, loader func(context.Context) (any, error)) (any, error) {
	if loader == nil {
		return nil, fmt.Errorf("loader is required")
	}
	if key == "" {
		return loader(ctx)
	}

	if value, ok := s.Get(ctx, key); ok {
		return value, nil
	}

	gen := s.generation()
	value, err, _ := s.flight.Do(key+"@"+strconv.FormatUint(gen, 10), func() (any, error) {
		if cached, ok := s.lookup(key); ok {
			return cached, nil
		}

		loaded, loadErr := loader(ctx)
		if loadErr != nil {
			return nil, loadErr
		}
		s.setIfGeneration(key, loaded, gen)
		return loaded, nil
	})
	if err != nil {
		return nil, err
	}

	return value, nil
}

func (s *Store) generation() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.gen
}

func (s *Store) setIfGeneration(key string, value any, gen uint64) {
	expiresAt := time.Time{}
	if s.ttl > 0 {
		expiresAt = s.now().Add(s.ttl)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		return
	}
	s.entries[key] = entry{value: value, expiresAt: expiresAt}
}

func (s *Store) Stats() Stats {
	s.mu.RLock()
	size := len(s.entries)
	s.mu.RUnlock()

	return Stats{
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
		Entries: size,
	}
}

func (s *Store) record(hit bool) {
	if hit {
		s.hits.Add(1)
	} else {
		s.misses.Add(1)
	}
	if s.observe != nil {
		s.observe(s.name, hit)
	}
}
