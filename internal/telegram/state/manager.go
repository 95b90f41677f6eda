package state

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Manager manages telegram sessions
type Manager struct {
	storage Storage
}

// NewManager creates a new state manager
func NewManager(storage Storage) *Manager {
	return &Manager{
		storage: storage,
	}
}

// GetOrCreate returns the session of the user, creating one with a fresh advisor
// session id on first contact. created reports whether it was just created.
func (m *Manager) GetOrCreate(ctx context.Context, userID int64) (session *TelegramSession, created bool, err error) {
	session, err = m.storage.Get(ctx, userID)
	if err == nil {
		return session, false, nil
	}
	if !errors.Is(err, ErrSessionNotFound) {
		return nil, false, fmt.Errorf("get telegram session from storage: %w", err)
	}

	now := time.Now()
	session = &TelegramSession{
		UserID:    userID,
		SessionID: uuid.NewString(),
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := m.storage.Set(ctx, session); err != nil {
		return nil, false, fmt.Errorf("save telegram session to storage: %w", err)
	}
	return session, true, nil
}

// SetStep moves the user to a wizard step
func (m *Manager) SetStep(ctx context.Context, userID int64, step Step) error {
	session, _, err := m.GetOrCreate(ctx, userID)
	if err != nil {
		return err
	}

	session.Step = step
	session.UpdatedAt = time.Now()

	if err := m.storage.Set(ctx, session); err != nil {
		return fmt.Errorf("save telegram session to storage: %w", err)
	}
	return nil
}

// DeleteSession removes telegram session from storage
func (m *Manager) DeleteSession(ctx context.Context, userID int64) error {
	if err := m.storage.Delete(ctx, userID); err != nil {
		return fmt.Errorf("delete telegram session from storage: %w", err)
	}
	return nil
}
