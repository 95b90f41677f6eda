package handlers

import (
	"context"
	"fmt"
	"strconv"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/validator"
	"github.com/futig/insurance-advisor/internal/telegram/keyboard"
	"github.com/futig/insurance-advisor/internal/telegram/render"
	"github.com/futig/insurance-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// CallbackHandler handles all callback button clicks
type CallbackHandler struct {
	BaseHandler
	bot       Sender
	commands  *CommandHandler
	keyboard  *keyboard.Builder
	validator *validator.Validator
	logger    *zap.Logger
}

// NewCallbackHandler creates a new callback handler
func NewCallbackHandler(
	bot Sender,
	stateManager *state.Manager,
	usecase AdvisorUsecase,
	commands *CommandHandler,
	kb *keyboard.Builder,
	v *validator.Validator,
	logger *zap.Logger,
) *CallbackHandler {
	return &CallbackHandler{
		BaseHandler: BaseHandler{
			messageSender: NewMessageSender(bot, logger),
			stateManager:  stateManager,
			usecase:       usecase,
		},
		bot:       bot,
		commands:  commands,
		keyboard:  kb,
		validator: v,
		logger:    logger,
	}
}

// Handle routes callback queries to appropriate actions
func (h *CallbackHandler) Handle(ctx context.Context, msg *Message) error {
	data, err := keyboard.ParseCallback(msg.CallbackData)
	if err != nil {
		return fmt.Errorf("parse callback: %w: %w", entity.ErrInvalidParameter, err)
	}

	ctxzap.Info(ctx, "handling callback",
		zap.String("action", data.Action),
		zap.String("value", data.Value),
		zap.Int64("user_id", msg.UserID),
	)

	switch data.Action {
	case keyboard.ActionMenu:
		return h.handleMenu(ctx, msg, data.Value)
	case keyboard.ActionFamily:
		return h.handleSelect(ctx, msg, entity.FieldFamily, data.Value, state.StepHealth)
	case keyboard.ActionHealth:
		return h.handleSelect(ctx, msg, entity.FieldHealth, data.Value, state.StepNeeds)
	case keyboard.ActionNeed:
		return h.handleNeed(ctx, msg, data.Value)
	case keyboard.ActionDownload:
		return h.handleDownload(ctx, msg, entity.ResultFormat(data.Value))
	case keyboard.ActionAsk:
		return h.handleExample(ctx, msg, data.Value)
	default:
		return fmt.Errorf("unknown callback action %q: %w", data.Action, entity.ErrInvalidParameter)
	}
}

func (h *CallbackHandler) handleMenu(ctx context.Context, msg *Message, value string) error {
	switch value {
	case keyboard.MenuProfile:
		return h.commands.Profile(ctx, msg)
	case keyboard.MenuAnalyze:
		return h.commands.Analyze(ctx, msg)
	case keyboard.MenuRisk:
		return h.commands.Risk(ctx, msg)
	case keyboard.MenuPlan:
		return h.commands.Plan(ctx, msg)
	case keyboard.MenuReport:
		h.sendMessage(msg.ChatID, render.MsgChooseFormat, h.keyboard.ReportKeyboard())
		return nil
	case keyboard.MenuReset:
		return h.commands.Reset(ctx, msg)
	default:
		return fmt.Errorf("unknown menu entry %q: %w", value, entity.ErrInvalidParameter)
	}
}

// handleSelect stores a family or health choice and asks the next question
func (h *CallbackHandler) handleSelect(ctx context.Context, msg *Message, field entity.ProfileField, value string, next state.Step) error {
	if err := h.validator.ValidateProfileField(field, value); err != nil {
		return err
	}

	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	st := h.usecase.Apply(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithProfileField(field, value)
	})
	if err := h.stateManager.SetStep(ctx, msg.UserID, next); err != nil {
		return err
	}

	switch next {
	case state.StepHealth:
		h.sendMessage(msg.ChatID, render.MsgAskHealth, h.keyboard.HealthKeyboard())
	case state.StepNeeds:
		h.sendMessage(msg.ChatID, render.MsgAskNeeds, h.keyboard.NeedsKeyboard(st.Profile.Needs))
	}
	return nil
}

// handleNeed toggles a need in place, or finishes the wizard on 完成
func (h *CallbackHandler) handleNeed(ctx context.Context, msg *Message, value string) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	if value == keyboard.NeedsDone {
		if err := h.stateManager.SetStep(ctx, msg.UserID, state.StepIdle); err != nil {
			return err
		}
		st := h.usecase.State(ctx, sessionID)
		h.sendMessage(msg.ChatID, render.FormatProfile(st.Profile), h.keyboard.MainMenuKeyboard())
		return nil
	}

	if err := h.validator.ValidateNeed(value); err != nil {
		return err
	}

	st := h.usecase.Apply(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithNeedToggled(value)
	})
	h.messageSender.EditMarkup(msg.ChatID, msg.MessageID, h.keyboard.NeedsKeyboard(st.Profile.Needs))
	return nil
}

func (h *CallbackHandler) handleDownload(ctx context.Context, msg *Message, format entity.ResultFormat) error {
	if err := h.validator.ValidateFormat(format); err != nil {
		return err
	}
	return h.commands.SendReport(ctx, msg, format)
}

// handleExample submits an example question as a chat turn
func (h *CallbackHandler) handleExample(ctx context.Context, msg *Message, value string) error {
	n, err := strconv.Atoi(value)
	if err != nil {
		return fmt.Errorf("example index %q: %w", value, entity.ErrInvalidParameter)
	}

	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	typing := StartTyping(ctx, h.bot, msg.ChatID, h.logger)
	reply, _, err := h.usecase.AskExample(ctx, sessionID, n)
	typing.Stop()
	if err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, reply, nil)
	return nil
}
