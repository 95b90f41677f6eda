package telegram

import (
	"context"
	"fmt"

	"github.com/futig/insurance-advisor/internal/config"
	"github.com/futig/insurance-advisor/internal/pkg/validator"
	"github.com/futig/insurance-advisor/internal/telegram/bot"
	"github.com/futig/insurance-advisor/internal/telegram/handlers"
	"github.com/futig/insurance-advisor/internal/telegram/keyboard"
	"github.com/futig/insurance-advisor/internal/telegram/state"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Bot is the main telegram bot interface
type Bot interface {
	Start(ctx context.Context) error
	Stop() error
}

// NewBot authorizes against the Bot API and wires all handlers
func NewBot(
	cfg *config.TelegramConfig,
	storage state.Storage,
	uc handlers.AdvisorUsecase,
	v *validator.Validator,
	logger *zap.Logger,
) (Bot, error) {
	api, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, fmt.Errorf("create bot API: %w", err)
	}

	logger.Info("telegram bot authorized",
		zap.String("username", api.Self.UserName),
		zap.Int64("id", api.Self.ID),
	)

	return newBot(api, cfg, storage, uc, v, logger), nil
}

func newBot(
	api bot.API,
	cfg *config.TelegramConfig,
	storage state.Storage,
	uc handlers.AdvisorUsecase,
	v *validator.Validator,
	logger *zap.Logger,
) *bot.Bot {
	stateManager := state.NewManager(storage)
	kb := keyboard.NewBuilder()

	commands := handlers.NewCommandHandler(api, stateManager, uc, kb, logger)
	callback := handlers.NewCallbackHandler(api, stateManager, uc, commands, kb, v, logger)

	b := bot.New(api, cfg, stateManager, commands, callback, logger)
	b.RegisterHandler(handlers.NewChatHandler(api, stateManager, uc, logger))
	b.RegisterHandler(handlers.NewAgeHandler(api, stateManager, uc, kb, logger))
	b.RegisterHandler(handlers.NewIncomeHandler(api, stateManager, uc, kb, logger))

	logger.Info("telegram bot initialized successfully")
	return b
}
