package handlers

import (
	"context"
	"errors"
	"fmt"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/telegram/keyboard"
	"github.com/futig/insurance-advisor/internal/telegram/render"
	"github.com/futig/insurance-advisor/internal/telegram/state"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const shownExamples = 3

// CommandHandler runs slash commands. Callbacks of the main menu reuse it.
type CommandHandler struct {
	BaseHandler
	bot      Sender
	keyboard *keyboard.Builder
	logger   *zap.Logger
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(
	bot Sender,
	stateManager *state.Manager,
	usecase AdvisorUsecase,
	kb *keyboard.Builder,
	logger *zap.Logger,
) *CommandHandler {
	return &CommandHandler{
		BaseHandler: BaseHandler{
			messageSender: NewMessageSender(bot, logger),
			stateManager:  stateManager,
			usecase:       usecase,
		},
		bot:      bot,
		keyboard: kb,
		logger:   logger,
	}
}

// Handle dispatches a command by name
func (h *CommandHandler) Handle(ctx context.Context, msg *Message, command string) error {
	switch command {
	case "start":
		return h.Start(ctx, msg)
	case "help":
		h.sendMessage(msg.ChatID, render.MsgHelp, nil)
		return nil
	case "profile":
		return h.Profile(ctx, msg)
	case "analyze":
		return h.Analyze(ctx, msg)
	case "risk":
		return h.Risk(ctx, msg)
	case "plan":
		return h.Plan(ctx, msg)
	case "report":
		h.sendMessage(msg.ChatID, render.MsgChooseFormat, h.keyboard.ReportKeyboard())
		return nil
	case "reset":
		return h.Reset(ctx, msg)
	default:
		h.sendMessage(msg.ChatID, render.ErrUnknownCommand, nil)
		return nil
	}
}

// Start greets the user and offers the menu and example questions
func (h *CommandHandler) Start(ctx context.Context, msg *Message) error {
	if _, err := h.session(ctx, msg.UserID); err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.MsgWelcome, h.keyboard.MainMenuKeyboard())

	examples := h.usecase.ExampleQuestions()
	h.sendMessage(msg.ChatID, render.MsgExamples, h.keyboard.ExamplesKeyboard(examples[:min(len(examples), shownExamples)]))
	return nil
}

// Profile starts the profile wizard
func (h *CommandHandler) Profile(ctx context.Context, msg *Message) error {
	if err := h.stateManager.SetStep(ctx, msg.UserID, state.StepAge); err != nil {
		return err
	}
	h.sendMessage(msg.ChatID, render.MsgAskAge, nil)
	return nil
}

// Analyze runs the analysis for the stored profile
func (h *CommandHandler) Analyze(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.MsgAnalyzing, nil)

	typing := StartTyping(ctx, h.bot, msg.ChatID, h.logger)
	st, err := h.usecase.Analyze(ctx, sessionID)
	typing.Stop()

	if err != nil && !errors.Is(err, entity.ErrMissingField) && !errors.Is(err, entity.ErrBackendUnreachable) {
		return fmt.Errorf("analyze: %w", err)
	}
	if err != nil {
		ctxzap.Warn(ctx, "analysis did not complete", zap.Error(err))
	}

	h.sendMessage(msg.ChatID, render.FormatAnalysis(st), h.keyboard.MainMenuKeyboard())
	return nil
}

// Risk shows the risk panels of the last analysis
func (h *CommandHandler) Risk(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	st := h.usecase.Apply(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithTab(entity.TabRisk)
	})
	h.sendMessage(msg.ChatID, render.FormatRisk(st.RiskPanels), nil)
	return nil
}

// Plan shows the financial plan derived from the profile
func (h *CommandHandler) Plan(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.FormatPlan(h.usecase.Plan(ctx, sessionID)), nil)
	return nil
}

// SendReport renders the report and uploads it as a document
func (h *CommandHandler) SendReport(ctx context.Context, msg *Message, format entity.ResultFormat) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	report, err := h.usecase.Report(ctx, sessionID, format)
	if err != nil {
		return fmt.Errorf("generate report: %w", err)
	}

	if err := h.messageSender.SendDocument(msg.ChatID, report.FileName, report.Content); err != nil {
		return err
	}

	ctxzap.Info(ctx, "report sent",
		zap.String("format", string(format)),
		zap.Int("size", len(report.Content)),
	)
	return nil
}

// Reset forgets the profile, results and transcript of the user
func (h *CommandHandler) Reset(ctx context.Context, msg *Message) error {
	sessionID, err := h.session(ctx, msg.UserID)
	if err != nil {
		return err
	}

	h.usecase.Reset(ctx, sessionID)
	if err := h.stateManager.DeleteSession(ctx, msg.UserID); err != nil {
		return err
	}

	h.sendMessage(msg.ChatID, render.MsgReset, nil)
	return nil
}
