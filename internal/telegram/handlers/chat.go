package handlers

import (
	"context"

	"github.com/futig/insurance-advisor/internal/telegram/state"
	"go.uber.org/zap"
)

// ChatHandler sends free text outside the wizard to the chat backend
type ChatHandler struct {
	BaseHandler
	bot    Sender
	logger *zap.Logger
}

// NewChatHandler creates a new chat handler
func NewChatHandler(bot Sender, stateManager *state.Manager, usecase AdvisorUsecase, logger *zap.Logger) *ChatHandler {
	return &ChatHandler{
		BaseHandler: BaseHandler{
			stateName:     state.StepIdle,
			messageSender: NewMessageSender(bot, logger),
			stateManager:  stateManager,
			usecase:       usecase,
		},
		bot:    bot,
		logger: logger,
	}
}

// Handle implements Handler
func (h *ChatHandler) Handle(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	typing := StartTyping(ctx, h.bot, msg.ChatID, h.logger)
	reply, _ := h.usecase.Chat(ctx, sessionID, msg.Text)
	typing.Stop()

	if reply != "" {
		h.sendMessage(msg.ChatID, reply, nil)
	}
	return nil
}
