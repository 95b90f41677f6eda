package handlers

import (
	"context"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/telegram/keyboard"
	"github.com/futig/insurance-advisor/internal/telegram/render"
	"github.com/futig/insurance-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// ProfileInputHandler stores a typed profile value and moves the wizard on.
// Values are kept as entered, like the web form does.
type ProfileInputHandler struct {
	BaseHandler
	field    entity.ProfileField
	next     state.Step
	keyboard *keyboard.Builder
}

// NewAgeHandler handles the age step
func NewAgeHandler(bot Sender, stateManager *state.Manager, usecase AdvisorUsecase, kb *keyboard.Builder, logger *zap.Logger) *ProfileInputHandler {
	return newProfileInputHandler(state.StepAge, entity.FieldAge, state.StepIncome, bot, stateManager, usecase, kb, logger)
}

// NewIncomeHandler handles the income step
func NewIncomeHandler(bot Sender, stateManager *state.Manager, usecase AdvisorUsecase, kb *keyboard.Builder, logger *zap.Logger) *ProfileInputHandler {
	return newProfileInputHandler(state.StepIncome, entity.FieldIncome, state.StepFamily, bot, stateManager, usecase, kb, logger)
}

func newProfileInputHandler(
	step state.Step,
	field entity.ProfileField,
	next state.Step,
	bot Sender,
	stateManager *state.Manager,
	usecase AdvisorUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *ProfileInputHandler {
	return &ProfileInputHandler{
		BaseHandler: BaseHandler{
			stateName:     step,
			messageSender: NewMessageSender(bot, logger),
			stateManager:  stateManager,
			usecase:       usecase,
		},
		field:    field,
		next:     next,
		keyboard: kb,
	}
}

// Handle implements Handler
func (h *ProfileInputHandler) Handle(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	value := strings.TrimSpace(msg.Text)
	h.usecase.Apply(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithProfileField(h.field, value)
	})

	if err := h.stateManager.SetStep(ctx, msg.UserID, h.next); err != nil {
		return err
	}

	ctxzap.Debug(ctx, "profile field saved", zap.String("field", string(h.field)))

	switch h.next {
	case state.StepIncome:
		h.sendMessage(msg.ChatID, render.MsgAskIncome, nil)
	case state.StepFamily:
		h.sendMessage(msg.ChatID, render.MsgAskFamily, h.keyboard.FamilyKeyboard())
	}
	return nil
}
