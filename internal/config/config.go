package config

import (
	"flag"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/goccy/go-json"
	"github.com/joho/godotenv"
	"go.uber.org/zap/zapcore"
)

// Config holds the application configuration
type Config struct {
	// Server configuration
	ServerAddr string `env:"SERVER_ADDR" envDefault:":8080"`

	// Logging configuration
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	// Mock configuration: use the local catalog instead of the backend
	EnableMocks bool `env:"ENABLE_MOCKS" envDefault:"false"`

	// Session store configuration
	SessionCfg SessionConfig `envPrefix:"SESSION_"`

	// Insurance backend
	BackendCfg BackendConnectorConfig `envPrefix:"BACKEND_"`

	// Report export configuration
	ReportCfg ReportConfig `envPrefix:"REPORT_"`

	// Example chat questions (loaded from JSON file)
	ExampleQuestions []string

	// Telegram bot configuration (optional)
	TelegramCfg TelegramConfig `envPrefix:"TELEGRAM_"`

	// Environment (set from flag, not from env var)
	Environment string
}

type SessionConfig struct {
	TTL             time.Duration `env:"TTL" envDefault:"24h"`
	CleanupInterval time.Duration `env:"CLEANUP_INTERVAL" envDefault:"10m"`
	CookieSecure    bool          `env:"COOKIE_SECURE" envDefault:"false"`
}

// TelegramConfig holds Telegram bot configuration
type TelegramConfig struct {
	BotToken           string `env:"BOT_TOKEN"`
	UpdateTimeout      int    `env:"UPDATE_TIMEOUT" envDefault:"60"`
	MaxConcurrentUsers int    `env:"MAX_CONCURRENT_USERS" envDefault:"100"`
	RateLimitPerMinute int    `env:"RATE_LIMIT_PER_MINUTE" envDefault:"20"`
	RateLimitBurst     int    `env:"RATE_LIMIT_BURST" envDefault:"5"`
	ShutdownTimeout    int    `env:"SHUTDOWN_TIMEOUT" envDefault:"30"` // seconds
}

type BackendConnectorConfig struct {
	HTTPClientConfig
	HealthEndpoint      string `env:"HEALTH_ENDPOINT" envDefault:"/health"`
	ProductsEndpoint    string `env:"PRODUCTS_ENDPOINT" envDefault:"/products"`
	RecommendEndpoint   string `env:"RECOMMEND_ENDPOINT" envDefault:"/recommend"`
	RiskEndpoint        string `env:"RISK_ENDPOINT" envDefault:"/risk-assessment"`
	ChatEndpoint        string `env:"CHAT_ENDPOINT" envDefault:"/chat"`
	DataSummaryEndpoint string `env:"DATA_SUMMARY_ENDPOINT" envDefault:"/data-summary"`
}

// HTTPClientConfig configures an outbound client. Zero timeouts wait indefinitely.
type HTTPClientConfig struct {
	RequestTimeout        time.Duration `env:"TIMEOUT" envDefault:"0s"`
	ConnTimeout           time.Duration `env:"CONN_TIMEOUT" envDefault:"30s"`
	KeepAlive             time.Duration `env:"KEEP_ALIVE" envDefault:"90s"`
	IdleConnTimeout       time.Duration `env:"IDLE_CONN_TIMEOUT" envDefault:"90s"`
	ResponseHeaderTimeout time.Duration `env:"RESPONSE_HEADER_TIMEOUT" envDefault:"0s"`
	Url                   string        `env:"SERVICE_URL" envDefault:"http://localhost:5000/api"`
}

type ReportConfig struct {
	// FontPath is a UTF-8 TrueType font used for PDF reports; Chinese text needs one
	FontPath string `env:"FONT_PATH"`
}

// exampleQuestions represents the structure of example_questions.json
type exampleQuestions struct {
	Questions []string `json:"questions"`
}

const exampleQuestionsPath = "internal/config/example_questions.json"

func LoadConfig() (*Config, error) {
	envFlag := flag.String("env", "local", "Environment to run (local, prod, or custom)")
	flag.Parse()

	envFile := getEnvFile(*envFlag)
	// Try to load env file, but don't fail if it's missing.
	// In containerized/prod environments variables are usually set externally.
	if err := godotenv.Load(envFile); err != nil {
		fmt.Printf("Warning: could not load %s file (this is ok if env vars are set externally): %v\n", envFile, err)
	}

	cfg, err := Parse()
	if err != nil {
		return nil, err
	}
	cfg.Environment = *envFlag

	if err := loadExampleQuestions(cfg, exampleQuestionsPath); err != nil {
		return nil, fmt.Errorf("load example questions: %w", err)
	}

	return cfg, nil
}

// Parse reads and validates the configuration from the process environment
func Parse() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	cfg.BackendCfg.Url = strings.TrimRight(cfg.BackendCfg.Url, "/")

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	return cfg, nil
}

func validateConfig(cfg *Config) error {
	var errors []string

	if cfg.ServerAddr == "" {
		errors = append(errors, "SERVER_ADDR must not be empty")
	}

	if _, err := zapcore.ParseLevel(cfg.LogLevel); err != nil {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL is invalid: %q", cfg.LogLevel))
	}

	if u, err := url.Parse(cfg.BackendCfg.Url); err != nil || u.Scheme == "" || u.Host == "" {
		errors = append(errors, fmt.Sprintf("BACKEND_SERVICE_URL must be an absolute URL, got %q", cfg.BackendCfg.Url))
	}

	httpCfg := cfg.BackendCfg.HTTPClientConfig
	for name, d := range map[string]time.Duration{
		"BACKEND_TIMEOUT":                 httpCfg.RequestTimeout,
		"BACKEND_CONN_TIMEOUT":            httpCfg.ConnTimeout,
		"BACKEND_KEEP_ALIVE":              httpCfg.KeepAlive,
		"BACKEND_IDLE_CONN_TIMEOUT":       httpCfg.IdleConnTimeout,
		"BACKEND_RESPONSE_HEADER_TIMEOUT": httpCfg.ResponseHeaderTimeout,
	} {
		if d < 0 {
			errors = append(errors, fmt.Sprintf("%s must not be negative, got %s", name, d))
		}
	}

	if cfg.SessionCfg.TTL <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_TTL must be positive, got %s", cfg.SessionCfg.TTL))
	}

	if cfg.SessionCfg.CleanupInterval <= 0 {
		errors = append(errors, fmt.Sprintf("SESSION_CLEANUP_INTERVAL must be positive, got %s", cfg.SessionCfg.CleanupInterval))
	}

	if cfg.TelegramCfg.RateLimitPerMinute < 1 || cfg.TelegramCfg.RateLimitPerMinute > 60 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_PER_MINUTE must be between 1 and 60, got %d", cfg.TelegramCfg.RateLimitPerMinute))
	}

	if cfg.TelegramCfg.RateLimitBurst < 1 || cfg.TelegramCfg.RateLimitBurst > 20 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_RATE_LIMIT_BURST must be between 1 and 20, got %d", cfg.TelegramCfg.RateLimitBurst))
	}

	if cfg.TelegramCfg.ShutdownTimeout < 1 || cfg.TelegramCfg.ShutdownTimeout > 300 {
		errors = append(errors, fmt.Sprintf("TELEGRAM_SHUTDOWN_TIMEOUT must be between 1 and 300 seconds, got %d", cfg.TelegramCfg.ShutdownTimeout))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation errors:\n  - %s", strings.Join(errors, "\n  - "))
	}

	return nil
}

// loadExampleQuestions overrides the built-in example questions when the file exists
func loadExampleQuestions(cfg *Config, path string) error {
	path = filepath.Clean(path)

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read example questions file: %w", err)
	}

	if len(data) == 0 {
		return fmt.Errorf("example questions file is empty: %s", path)
	}

	var questionsData exampleQuestions
	if err := json.Unmarshal(data, &questionsData); err != nil {
		return fmt.Errorf("parse example questions JSON: %w", err)
	}

	if len(questionsData.Questions) == 0 {
		return fmt.Errorf("example questions file contains no questions: %s", path)
	}

	cfg.ExampleQuestions = questionsData.Questions

	fmt.Printf("Loaded %d example questions from %s\n", len(cfg.ExampleQuestions), path)
	return nil
}

func getEnvFile(environment string) string {
	switch environment {
	case "prod", "production":
		return ".env.prod"
	case "local", "dev", "development":
		return ".env.local"
	default:
		return fmt.Sprintf(".env.%s", environment)
	}
}
