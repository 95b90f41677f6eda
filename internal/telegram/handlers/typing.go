package handlers

import (
	"context"
	"sync"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// typingInterval is below the five seconds after which Telegram hides the indicator
const typingInterval = 4 * time.Second

// TypingNotifier sends periodic "typing" actions while the backend is working
type TypingNotifier struct {
	bot    Sender
	chatID int64
	logger *zap.Logger
	done   chan struct{}
	once   sync.Once
}

// StartTyping shows the typing indicator until the returned notifier is stopped
func StartTyping(ctx context.Context, bot Sender, chatID int64, logger *zap.Logger) *TypingNotifier {
	t := &TypingNotifier{
		bot:    bot,
		chatID: chatID,
		logger: logger,
		done:   make(chan struct{}),
	}

	t.send()
	go t.loop(ctx)
	return t
}

// Stop stops sending typing indicators; it is safe to call more than once
func (t *TypingNotifier) Stop() {
	t.once.Do(func() { close(t.done) })
}

func (t *TypingNotifier) loop(ctx context.Context) {
	ticker := time.NewTicker(typingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			t.send()
		case <-t.done:
			return
		case <-ctx.Done():
			return
		}
	}
}

func (t *TypingNotifier) send() {
	action := tgbotapi.NewChatAction(t.chatID, tgbotapi.ChatTyping)
	if _, err := t.bot.Request(action); err != nil {
		t.logger.Warn("failed to send typing action",
			zap.Error(err),
			zap.Int64("chat_id", t.chatID),
		)
	}
}
