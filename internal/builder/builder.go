package builder

import (
	"fmt"
	"net/http"
	"time"

	"github.com/futig/insurance-advisor/internal/api"
	"github.com/futig/insurance-advisor/internal/api/middleware"
	v1api "github.com/futig/insurance-advisor/internal/api/v1"
	"github.com/futig/insurance-advisor/internal/api/web"
	"github.com/futig/insurance-advisor/internal/config"
	"github.com/futig/insurance-advisor/internal/integration/backend"
	"github.com/futig/insurance-advisor/internal/pkg/formatter"
	"github.com/futig/insurance-advisor/internal/pkg/validator"
	"github.com/futig/insurance-advisor/internal/repository"
	"github.com/futig/insurance-advisor/internal/telegram"
	"github.com/futig/insurance-advisor/internal/usecase/advisor"
	"go.uber.org/zap"
)

// Build wires the web front end and its JSON API
func Build() (*App, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, err
	}

	logger.Info("Building application",
		zap.String("environment", cfg.Environment),
		zap.String("server_addr", cfg.ServerAddr),
	)

	advisorUC := newAdvisorUsecase(cfg, logger)
	v := validator.NewValidator()

	webHandler, err := web.NewHandler(advisorUC, v)
	if err != nil {
		return nil, fmt.Errorf("create web handler: %w", err)
	}
	apiHandler := v1api.NewHandler(advisorUC)
	logger.Info("HTTP handlers initialized")

	router := api.SetupRouter(webHandler, apiHandler, advisorUC, middleware.SessionConfig{
		TTL:    cfg.SessionCfg.TTL,
		Secure: cfg.SessionCfg.CookieSecure,
	}, logger)
	logger.Info("HTTP router configured")

	// WriteTimeout stays open: with BACKEND_TIMEOUT=0 an analysis waits for the backend
	server := &http.Server{
		Addr:              cfg.ServerAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	logger.Info("Application built successfully",
		zap.String("environment", cfg.Environment),
	)

	return &App{
		server: server,
		logger: logger,
	}, nil
}

// BuildTelegramBot creates and initializes the Telegram bot
func BuildTelegramBot() (telegram.Bot, *zap.Logger, error) {
	cfg, logger, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	if cfg.TelegramCfg.BotToken == "" {
		return nil, nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required to run the bot")
	}

	logger.Info("Building Telegram bot",
		zap.String("environment", cfg.Environment),
	)

	advisorUC := newAdvisorUsecase(cfg, logger)
	telegramState := repository.NewTelegramStateCache(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)

	bot, err := telegram.NewBot(&cfg.TelegramCfg, telegramState, advisorUC, validator.NewValidator(), logger)
	if err != nil {
		return nil, nil, fmt.Errorf("initialize telegram bot: %w", err)
	}

	logger.Info("Telegram bot built successfully",
		zap.String("environment", cfg.Environment),
	)

	return bot, logger, nil
}

func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	logger, err := setupLogger(cfg.LogLevel, cfg.Environment)
	if err != nil {
		return nil, nil, fmt.Errorf("setup logger: %w", err)
	}
	return cfg, logger, nil
}

// newAdvisorUsecase picks the provider and builds the shared use case
func newAdvisorUsecase(cfg *config.Config, logger *zap.Logger) *advisor.AdvisorUsecase {
	var provider advisor.Provider
	if cfg.EnableMocks {
		logger.Info("Using mock provider with the local catalog")
		provider = backend.NewMockConnector(logger)
	} else {
		logger.Info("Using insurance backend", zap.String("url", cfg.BackendCfg.Url))
		provider = backend.NewConnector(cfg.BackendCfg, logger)
	}

	store := repository.NewStateCache(cfg.SessionCfg.TTL, cfg.SessionCfg.CleanupInterval)
	logger.Info("Session store initialized", zap.Duration("ttl", cfg.SessionCfg.TTL))

	return advisor.NewUsecase(provider, store, formatter.NewFactory(cfg.ReportCfg.FontPath), cfg.ExampleQuestions)
}
