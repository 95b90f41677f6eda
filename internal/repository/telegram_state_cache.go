package repository

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/futig/insurance-advisor/internal/telegram/state"
	"github.com/patrickmn/go-cache"
)

var _ state.Storage = &TelegramStateCache{}

// TelegramStateCache keeps telegram user to session mappings in memory
type TelegramStateCache struct {
	cache *cache.Cache
	ttl   time.Duration
}

func NewTelegramStateCache(ttl, cleanupInterval time.Duration) *TelegramStateCache {
	return &TelegramStateCache{
		cache: cache.New(ttl, cleanupInterval),
		ttl:   ttl,
	}
}

// Get retrieves telegram session by user ID
func (r *TelegramStateCache) Get(_ context.Context, userID int64) (*state.TelegramSession, error) {
	v, ok := r.cache.Get(userKey(userID))
	if !ok {
		return nil, fmt.Errorf("%w: %d", state.ErrSessionNotFound, userID)
	}

	session := v.(state.TelegramSession)
	return &session, nil
}

// Set saves a copy of the telegram session
func (r *TelegramStateCache) Set(_ context.Context, session *state.TelegramSession) error {
	if session == nil {
		return fmt.Errorf("telegram session is nil")
	}
	r.cache.Set(userKey(session.UserID), *session, r.ttl)
	return nil
}

// Delete removes telegram session
func (r *TelegramStateCache) Delete(_ context.Context, userID int64) error {
	r.cache.Delete(userKey(userID))
	return nil
}

func userKey(userID int64) string {
	return strconv.FormatInt(userID, 10)
}
