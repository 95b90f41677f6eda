package repository

import (
	"context"
	"sync"
	"time"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/patrickmn/go-cache"
)

// StateRepository defines the interface for per-session application state
type StateRepository interface {
	Get(ctx context.Context, sessionID string) entity.AppState
	Update(ctx context.Context, sessionID string, fn func(entity.AppState) entity.AppState) entity.AppState
}

var _ StateRepository = &StateCache{}

// StateCache keeps AppState values in memory. Entries expire after ttl of
// inactivity; reads and updates refresh the expiration.
type StateCache struct {
	cache *cache.Cache
	ttl   time.Duration
	mu    sync.Mutex
}

func NewStateCache(ttl, cleanupInterval time.Duration) *StateCache {
	return &StateCache{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get returns the stored state, creating a fresh one on miss
func (r *StateCache) Get(_ context.Context, sessionID string) entity.AppState {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := r.load(sessionID)
	r.cache.Set(sessionID, st, r.ttl)
	return st
}

// Update applies fn to the stored state under the store lock and saves the result
func (r *StateCache) Update(
	_ context.Context,
	sessionID string,
	fn func(entity.AppState) entity.AppState,
) entity.AppState {
	r.mu.Lock()
	defer r.mu.Unlock()

	st := fn(r.load(sessionID))
	r.cache.Set(sessionID, st, r.ttl)
	return st
}

func (r *StateCache) load(sessionID string) entity.AppState {
	if v, ok := r.cache.Get(sessionID); ok {
		if st, ok := v.(entity.AppState); ok {
			return st
		}
	}
	return entity.NewAppState()
}
