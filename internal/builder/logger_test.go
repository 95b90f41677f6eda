package builder

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetupLogger(t *testing.T) {
	logger, err := setupLogger("warn", "prod")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatal("info must be disabled at warn level")
	}
	if !logger.Core().Enabled(zapcore.ErrorLevel) {
		t.Fatal("error must be enabled at warn level")
	}

	if _, err := setupLogger("loud", "local"); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
