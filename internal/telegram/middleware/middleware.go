package middleware

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Middleware wraps the processing of a single update
type Middleware interface {
	Handle(update tgbotapi.Update, next func(tgbotapi.Update))
}

// Sender is the part of the Bot API middlewares use to notify users
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Chain composes middlewares around final; the first middleware runs outermost
func Chain(final func(tgbotapi.Update), mws ...Middleware) func(tgbotapi.Update) {
	handler := final
	for i := len(mws) - 1; i >= 0; i-- {
		mw, next := mws[i], handler
		handler = func(u tgbotapi.Update) {
			mw.Handle(u, next)
		}
	}
	return handler
}

// origin returns the user and chat of an update, zero for other update kinds
func origin(update tgbotapi.Update) (userID, chatID int64) {
	switch {
	case update.Message != nil:
		if update.Message.From != nil {
			userID = update.Message.From.ID
		}
		if update.Message.Chat != nil {
			chatID = update.Message.Chat.ID
		}
	case update.CallbackQuery != nil:
		if update.CallbackQuery.From != nil {
			userID = update.CallbackQuery.From.ID
		}
		if update.CallbackQuery.Message != nil && update.CallbackQuery.Message.Chat != nil {
			chatID = update.CallbackQuery.Message.Chat.ID
		}
	}
	return userID, chatID
}
