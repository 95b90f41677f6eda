package bot

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/futig/insurance-advisor/internal/config"
	applog "github.com/futig/insurance-advisor/internal/pkg/logger"
	"github.com/futig/insurance-advisor/internal/telegram/handlers"
	"github.com/futig/insurance-advisor/internal/telegram/middleware"
	"github.com/futig/insurance-advisor/internal/telegram/render"
	"github.com/futig/insurance-advisor/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// API is the part of tgbotapi.BotAPI the bot depends on
type API interface {
	handlers.Sender
	GetUpdatesChan(config tgbotapi.UpdateConfig) tgbotapi.UpdatesChannel
	StopReceivingUpdates()
}

// Bot represents the Telegram bot
type Bot struct {
	api          API
	cfg          *config.TelegramConfig
	stateManager *state.Manager
	commands     *handlers.CommandHandler
	callback     *handlers.CallbackHandler
	handlers     map[state.Step]handlers.Handler
	logger       *zap.Logger
	rateLimitMW  *middleware.RateLimiterMiddleware
	process      func(tgbotapi.Update)
	updatesChan  tgbotapi.UpdatesChannel
	stopChan     chan struct{}
	slots        chan struct{}
	wg           sync.WaitGroup
}

// New creates a new Telegram bot. Step handlers are added with RegisterHandler.
func New(
	api API,
	cfg *config.TelegramConfig,
	stateManager *state.Manager,
	commands *handlers.CommandHandler,
	callback *handlers.CallbackHandler,
	logger *zap.Logger,
) *Bot {
	b := &Bot{
		api:          api,
		cfg:          cfg,
		stateManager: stateManager,
		commands:     commands,
		callback:     callback,
		handlers:     make(map[state.Step]handlers.Handler),
		logger:       logger,
		stopChan:     make(chan struct{}),
		slots:        make(chan struct{}, max(cfg.MaxConcurrentUsers, 1)),
	}

	b.rateLimitMW = middleware.NewRateLimiterMiddleware(
		cfg.RateLimitPerMinute,
		cfg.RateLimitBurst,
		logger,
		api,
	)
	b.process = middleware.Chain(b.handleUpdate,
		b.rateLimitMW,
		middleware.NewLoggingMiddleware(logger),
		middleware.NewRecoveryMiddleware(logger, api),
	)

	return b
}

// Start starts the bot
func (b *Bot) Start(ctx context.Context) error {
	b.logger.Info("starting telegram bot")

	u := tgbotapi.NewUpdate(0)
	u.Timeout = b.cfg.UpdateTimeout
	b.updatesChan = b.api.GetUpdatesChan(u)

	ctx = ctxzap.ToContext(ctx, b.logger)
	go b.processUpdates(ctx)

	b.logger.Info("telegram bot started successfully")
	return nil
}

// Stop stops the bot gracefully with timeout
func (b *Bot) Stop() error {
	b.logger.Info("stopping telegram bot")

	close(b.stopChan)
	b.api.StopReceivingUpdates()
	b.rateLimitMW.Stop()

	done := make(chan struct{})
	go func() {
		b.wg.Wait()
		close(done)
	}()

	shutdownTimeout := time.Duration(b.cfg.ShutdownTimeout) * time.Second
	select {
	case <-done:
		b.logger.Info("all handlers completed gracefully")
	case <-time.After(shutdownTimeout):
		b.logger.Warn("shutdown timeout exceeded, some handlers may not have completed",
			zap.Duration("timeout", shutdownTimeout),
		)
		return fmt.Errorf("shutdown timeout exceeded")
	}

	b.logger.Info("telegram bot stopped successfully")
	return nil
}

// processUpdates handles every update in its own goroutine, at most
// MaxConcurrentUsers at a time
func (b *Bot) processUpdates(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			ctxzap.Info(ctx, "context cancelled, stopping update processing")
			return
		case <-b.stopChan:
			ctxzap.Info(ctx, "stop signal received, stopping update processing")
			return
		case update, ok := <-b.updatesChan:
			if !ok {
				return
			}

			select {
			case b.slots <- struct{}{}:
			case <-b.stopChan:
				return
			}

			b.wg.Add(1)
			go func(u tgbotapi.Update) {
				defer func() {
					<-b.slots
					b.wg.Done()
				}()
				b.process(u)
			}(update)
		}
	}
}

// handleUpdate routes update to appropriate handler
func (b *Bot) handleUpdate(update tgbotapi.Update) {
	ctx := ctxzap.ToContext(context.Background(), b.logger)

	switch {
	case update.CallbackQuery != nil:
		b.handleCallbackQuery(ctx, update.CallbackQuery)
	case update.Message != nil && update.Message.From != nil && update.Message.Chat != nil:
		b.handleMessage(ctx, update.Message)
	}
}

// handleMessage routes commands, and free text by the wizard step of the user
func (b *Bot) handleMessage(ctx context.Context, message *tgbotapi.Message) {
	userID := message.From.ID
	chatID := message.Chat.ID
	ctx = applog.WithTelegramUser(ctx, userID, chatID)

	msg := &handlers.Message{
		ChatID:    chatID,
		UserID:    userID,
		MessageID: message.MessageID,
		Text:      message.Text,
	}

	if message.IsCommand() {
		command := message.Command()
		ctxzap.Info(ctx, "command received", zap.String("command", command))

		if err := b.commands.Handle(ctx, msg, command); err != nil {
			b.commands.HandleError(ctx, chatID, err)
		}
		return
	}

	session, _, err := b.stateManager.GetOrCreate(ctx, userID)
	if err != nil {
		ctxzap.Error(ctx, "failed to get telegram session", zap.Error(err))
		b.sendError(chatID, render.ErrGeneric)
		return
	}

	handler, exists := b.handlers[session.Step]
	if !exists {
		// family, health and needs are answered with buttons
		b.sendError(chatID, render.MsgUseKeyboard)
		return
	}

	if err := handler.Handle(ctx, msg); err != nil {
		b.commands.HandleError(ctx, chatID, err)
	}
}

// handleCallbackQuery answers the query right away so Telegram stops the
// spinner, then runs the action
func (b *Bot) handleCallbackQuery(ctx context.Context, query *tgbotapi.CallbackQuery) {
	b.answerCallback(query.ID)

	if query.From == nil || query.Message == nil || query.Message.Chat == nil {
		ctxzap.Warn(ctx, "callback query without message", zap.String("data", query.Data))
		return
	}

	userID := query.From.ID
	chatID := query.Message.Chat.ID
	ctx = applog.WithTelegramUser(ctx, userID, chatID)

	msg := &handlers.Message{
		ChatID:       chatID,
		UserID:       userID,
		MessageID:    query.Message.MessageID,
		CallbackData: query.Data,
		CallbackID:   query.ID,
	}

	if err := b.callback.Handle(ctx, msg); err != nil {
		b.callback.HandleError(ctx, chatID, err)
	}
}

// sendError sends an error message
func (b *Bot) sendError(chatID int64, text string) {
	if _, err := b.api.Send(tgbotapi.NewMessage(chatID, text)); err != nil {
		b.logger.Error("failed to send error message",
			zap.Error(err),
			zap.Int64("chat_id", chatID),
		)
	}
}

// answerCallback answers a callback query
func (b *Bot) answerCallback(callbackID string) {
	if _, err := b.api.Request(tgbotapi.NewCallback(callbackID, "")); err != nil {
		b.logger.Error("failed to answer callback",
			zap.Error(err),
			zap.String("callback_id", callbackID),
		)
	}
}

// RegisterHandler registers a text handler for a wizard step
func (b *Bot) RegisterHandler(handler handlers.Handler) {
	step := handler.GetState()

	if !handlers.IsValidState(step) {
		b.logger.Fatal("invalid handler state",
			zap.String("state", string(step)),
		)
	}

	b.handlers[step] = handler
	b.logger.Info("handler registered",
		zap.String("state", string(step)),
	)
}
