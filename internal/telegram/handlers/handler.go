package handlers

import (
	"context"
	"fmt"

	"github.com/futig/insurance-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Message represents a normalized Telegram message
type Message struct {
	ChatID       int64
	UserID       int64
	MessageID    int
	Text         string
	CallbackData string
	CallbackID   string
}

// Handler defines the interface for step-specific text handlers
type Handler interface {
	// Handle processes a message for this step
	Handle(ctx context.Context, msg *Message) error

	// GetState returns the wizard step this handler manages
	GetState() state.Step
}

// BaseHandler provides common functionality for all handlers
type BaseHandler struct {
	stateName     state.Step
	messageSender *MessageSender
	stateManager  *state.Manager
	usecase       AdvisorUsecase
}

// GetState implements Handler
func (h *BaseHandler) GetState() state.Step {
	return h.stateName
}

// sendMessage is a convenience wrapper for messageSender.Send
func (h *BaseHandler) sendMessage(chatID int64, text string, markup any) {
	if h.messageSender != nil {
		h.messageSender.Send(chatID, text, markup)
	}
}

// session returns the advisor session of the user. A user seen for the first
// time gets a new session whose data summary starts loading right away.
func (h *BaseHandler) session(ctx context.Context, userID int64) (string, error) {
	s, created, err := h.stateManager.GetOrCreate(ctx, userID)
	if err != nil {
		return "", fmt.Errorf("get session: %w", err)
	}
	if created {
		ctxzap.Info(ctx, "telegram session created",
			zap.Int64("user_id", userID),
			zap.String("session_id", s.SessionID),
		)
		h.usecase.StartSession(ctx, s.SessionID)
	}
	return s.SessionID, nil
}

// validStates defines the steps that accept free text
var validStates = map[state.Step]bool{
	state.StepIdle:   true,
	state.StepAge:    true,
	state.StepIncome: true,
}

// IsValidState checks if a step is valid for handler registration
func IsValidState(step state.Step) bool {
	return validStates[step]
}
