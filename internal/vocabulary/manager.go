package vocabulary

import (
	"context"
	"errors"
	"log"
	"maps"
	"sync"
	"time"

	"github.com/themobileprof/rantrack-be/internal/circuitbreaker"
)

// DefaultTTL is how long a user's snapshot is served from memory
const DefaultTTL = 5 * time.Minute

// Store is the persistent source of a user's custom lemmas
type Store interface {
	GetCustomLemmas(ctx context.Context, userID string) (map[string]string, error)
}

// userVocabulary is one cached snapshot (seed merged with the user's words)
type userVocabulary struct {
	lemmas   map[string]string
	loadedAt time.Time
}

// Manager hands the extraction pipeline a flat word -> category map per user.
// Store failures never surface: the caller gets the seed vocabulary instead.
type Manager struct {
	store   Store
	breaker *circuitbreaker.CircuitBreaker
	seed    map[string]string
	ttl     time.Duration
	now     func() time.Time

	users map[string]*userVocabulary
	// generations counts Invalidate calls per user; a load that raced one
	// is returned but not cached
	generations map[string]uint64
	mu          sync.RWMutex
}

// NewManager creates a vocabulary manager. store may be nil, in which case
// every snapshot is the seed vocabulary.
func NewManager(store Store, seed map[string]string, ttl time.Duration) *Manager {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Manager{
		store: store,
		breaker: circuitbreaker.New(circuitbreaker.Config{
			Name: "vocabulary-store",
			OnStateChange: func(name string, from, to circuitbreaker.State) {
				log.Printf("[WARN] %s breaker %s -> %s", name, from, to)
			},
		}),
		seed:  maps.Clone(seed),
		ttl:   ttl,
		now:   time.Now,
		users:       make(map[string]*userVocabulary),
		generations: make(map[string]uint64),
	}
}

// Snapshot returns the user's vocabulary. The map is a fresh copy the caller
// may keep or modify.
func (m *Manager) Snapshot(ctx context.Context, userID string) map[string]string {
	if userID == "" || m.store == nil {
		return m.Seed()
	}

	m.mu.RLock()
	cached, exists := m.users[userID]
	generation := m.generations[userID]
	m.mu.RUnlock()
	if exists && m.now().Sub(cached.loadedAt) < m.ttl {
		return maps.Clone(cached.lemmas)
	}

	var custom map[string]string
	err := m.breaker.Execute(ctx, func(ctx context.Context) error {
		var err error
		custom, err = m.store.GetCustomLemmas(ctx, userID)
		return err
	})
	if err != nil {
		if !errors.Is(err, context.Canceled) {
			log.Printf("[ERROR] vocabulary: custom lemmas for user %s unavailable, using seed: %v", userID, err)
		}
		return m.Seed()
	}

	merged := m.Seed()
	maps.Copy(merged, custom)

	m.mu.Lock()
	if m.generations[userID] == generation {
		m.users[userID] = &userVocabulary{lemmas: merged, loadedAt: m.now()}
	}
	m.mu.Unlock()

	return maps.Clone(merged)
}

// Invalidate drops the user's cached snapshot
func (m *Manager) Invalidate(userID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.users, userID)
	m.generations[userID]++
}

// Seed returns a copy of the server-wide vocabulary
func (m *Manager) Seed() map[string]string {
	seed := maps.Clone(m.seed)
	if seed == nil {
		seed = make(map[string]string)
	}
	return seed
}

// BreakerState exposes the store breaker for health reporting
func (m *Manager) BreakerState() circuitbreaker.State {
	return m.breaker.State()
}
