package middleware

import (
	"sync"
	"testing"
	"time"

	"github.com/futig/insurance-advisor/internal/telegram/render"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

type fakeSender struct {
	mu    sync.Mutex
	texts []string
}

func (f *fakeSender) Send(c tgbotapi.Chattable) (tgbotapi.Message, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if m, ok := c.(tgbotapi.MessageConfig); ok {
		f.texts = append(f.texts, m.Text)
	}
	return tgbotapi.Message{}, nil
}

type fakeClock struct {
	t time.Time
}

func (c *fakeClock) now() time.Time { return c.t }

func textUpdate(userID int64, text string) tgbotapi.Update {
	return tgbotapi.Update{
		UpdateID: 1,
		Message: &tgbotapi.Message{
			From: &tgbotapi.User{ID: userID},
			Chat: &tgbotapi.Chat{ID: userID * 10},
			Text: text,
		},
	}
}

func TestRateLimiterBurstAndRefill(t *testing.T) {
	sender := &fakeSender{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(60, 2, zap.NewNop(), sender, clock.now)

	calls := 0
	next := func(tgbotapi.Update) { calls++ }

	for i := 0; i < 4; i++ {
		rl.Handle(textUpdate(7, "hi"), next)
	}
	if calls != 2 {
		t.Fatalf("expected 2 allowed requests, got %d", calls)
	}
	if len(sender.texts) != 1 || sender.texts[0] != render.ErrRateLimited {
		t.Fatalf("expected exactly one warning, got %v", sender.texts)
	}

	// one token per second at 60 per minute
	clock.t = clock.t.Add(time.Second)
	rl.Handle(textUpdate(7, "hi"), next)
	if calls != 3 {
		t.Fatalf("expected refill to allow a request, got %d calls", calls)
	}

	rl.Handle(textUpdate(8, "hi"), next)
	if calls != 4 {
		t.Fatal("users must have separate buckets")
	}
}

func TestRateLimiterEscalatesWarnings(t *testing.T) {
	sender := &fakeSender{}
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(0, 1, zap.NewNop(), sender, clock.now)

	next := func(tgbotapi.Update) {}
	rl.Handle(textUpdate(7, "hi"), next)
	for i := 0; i < 3; i++ {
		rl.Handle(textUpdate(7, "hi"), next)
		clock.t = clock.t.Add(warningInterval + time.Second)
	}

	if len(sender.texts) != 3 || sender.texts[2] != render.ErrRateLimitedLong {
		t.Fatalf("unexpected warnings %v", sender.texts)
	}
}

func TestRateLimiterCleanup(t *testing.T) {
	clock := &fakeClock{t: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)}
	rl := newRateLimiter(60, 2, zap.NewNop(), &fakeSender{}, clock.now)

	rl.Handle(textUpdate(7, "hi"), func(tgbotapi.Update) {})
	clock.t = clock.t.Add(2 * inactiveThreshold)
	rl.removeInactive()

	if len(rl.limits) != 0 {
		t.Fatalf("expected inactive user to be removed, got %d", len(rl.limits))
	}
}

func TestRecoveryMiddleware(t *testing.T) {
	sender := &fakeSender{}
	m := NewRecoveryMiddleware(zap.NewNop(), sender)

	m.Handle(textUpdate(7, "boom"), func(tgbotapi.Update) {
		panic("handler exploded")
	})

	if len(sender.texts) != 1 || sender.texts[0] != render.ErrGeneric {
		t.Fatalf("expected generic error message, got %v", sender.texts)
	}
}

func TestChainOrder(t *testing.T) {
	var order []string
	mw := func(name string) Middleware {
		return middlewareFunc(func(u tgbotapi.Update, next func(tgbotapi.Update)) {
			order = append(order, name)
			next(u)
		})
	}

	handler := Chain(func(tgbotapi.Update) { order = append(order, "final") }, mw("a"), mw("b"))
	handler(textUpdate(1, "x"))

	if len(order) != 3 || order[0] != "a" || order[1] != "b" || order[2] != "final" {
		t.Fatalf("unexpected order %v", order)
	}
}

func TestUpdateType(t *testing.T) {
	cmd := textUpdate(1, "/start")
	cmd.Message.Entities = []tgbotapi.MessageEntity{{Type: "bot_command", Offset: 0, Length: 6}}

	tests := []struct {
		update tgbotapi.Update
		want   string
	}{
		{cmd, "command"},
		{textUpdate(1, "hi"), "text"},
		{tgbotapi.Update{CallbackQuery: &tgbotapi.CallbackQuery{From: &tgbotapi.User{ID: 1}}}, "callback"},
		{tgbotapi.Update{}, "other"},
	}
	for _, tt := range tests {
		if got := updateType(tt.update); got != tt.want {
			t.Errorf("expected %s, got %s", tt.want, got)
		}
	}
}

type middlewareFunc func(tgbotapi.Update, func(tgbotapi.Update))

func (f middlewareFunc) Handle(u tgbotapi.Update, next func(tgbotapi.Update)) { f(u, next) }
