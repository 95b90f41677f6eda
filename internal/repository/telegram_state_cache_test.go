package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/futig/insurance-advisor/internal/telegram/state"
)

func TestTelegramStateCache(t *testing.T) {
	ctx := context.Background()
	r := NewTelegramStateCache(time.Hour, time.Minute)

	if _, err := r.Get(ctx, 42); !errors.Is(err, state.ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}

	session := &state.TelegramSession{UserID: 42, SessionID: "s-1", Step: state.StepAge}
	if err := r.Set(ctx, session); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// stored values are copies
	session.Step = state.StepIncome

	got, err := r.Get(ctx, 42)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.SessionID != "s-1" || got.Step != state.StepAge {
		t.Fatalf("unexpected session %+v", got)
	}

	if err := r.Delete(ctx, 42); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, err := r.Get(ctx, 42); !errors.Is(err, state.ErrSessionNotFound) {
		t.Fatal("expected session to be deleted")
	}
}

func TestManagerCreatesSessionOnce(t *testing.T) {
	ctx := context.Background()
	m := state.NewManager(NewTelegramStateCache(time.Hour, time.Minute))

	first, created, err := m.GetOrCreate(ctx, 7)
	if err != nil || !created || first.SessionID == "" {
		t.Fatalf("expected a new session, got %+v created=%v err=%v", first, created, err)
	}

	if err := m.SetStep(ctx, 7, state.StepFamily); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, created, err := m.GetOrCreate(ctx, 7)
	if err != nil || created {
		t.Fatalf("expected existing session, created=%v err=%v", created, err)
	}
	if second.SessionID != first.SessionID || second.Step != state.StepFamily {
		t.Fatalf("unexpected session %+v", second)
	}
}
