package state

import (
	"context"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("telegram session not found")

// Step is the position of a user in the profile wizard
type Step string

const (
	StepIdle   Step = ""
	StepAge    Step = "ASK_AGE"
	StepIncome Step = "ASK_INCOME"
	StepFamily Step = "ASK_FAMILY"
	StepHealth Step = "ASK_HEALTH"
	StepNeeds  Step = "ASK_NEEDS"
)

// TelegramSession maps a telegram user to an advisor session
type TelegramSession struct {
	UserID    int64     `json:"user_id"`
	SessionID string    `json:"session_id"`
	Step      Step      `json:"step,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Storage defines the interface for telegram session persistence
type Storage interface {
	// Get retrieves telegram session by user ID, ErrSessionNotFound when absent
	Get(ctx context.Context, userID int64) (*TelegramSession, error)

	// Set saves telegram session
	Set(ctx context.Context, session *TelegramSession) error

	// Delete removes telegram session
	Delete(ctx context.Context, userID int64) error
}
