package logger

import (
	"context"
	"testing"

	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestFieldsAccumulate(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctx = WithSession(ctx, "abc")
	ctx = WithAction(ctx, "Analyze")
	ctxzap.Info(ctx, "done")

	entries := logs.All()
	if len(entries) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["session_id"] != "abc" || fields["action"] != "Analyze" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestWithTelegramUser(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	ctx := ctxzap.ToContext(context.Background(), zap.New(core))

	ctxzap.Warn(WithTelegramUser(ctx, 7, 70), "slow")

	fields := logs.All()[0].ContextMap()
	if fields["user_id"] != int64(7) || fields["chat_id"] != int64(70) {
		t.Fatalf("unexpected fields %v", fields)
	}
}
