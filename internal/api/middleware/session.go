package middleware

import (
	"context"
	"net/http"
	"time"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/logger"
	"github.com/google/uuid"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
)

const SessionCookieName = "advisor_session"

type sessionKey struct{}

// SessionStarter prepares the state of a session seen for the first time
type SessionStarter interface {
	StartSession(ctx context.Context, sessionID string) entity.AppState
}

type SessionConfig struct {
	TTL    time.Duration
	Secure bool
}

// Session identifies the browser by a uuid cookie. Requests without a valid
// cookie get a new id and a freshly started session.
func Session(starter SessionStarter, cfg SessionConfig) func(next http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if c, err := r.Cookie(SessionCookieName); err == nil {
				if _, err := uuid.Parse(c.Value); err == nil {
					sessionID = c.Value
				}
			}

			isNew := sessionID == ""
			if isNew {
				sessionID = uuid.NewString()
			}

			http.SetCookie(w, &http.Cookie{
				Name:     SessionCookieName,
				Value:    sessionID,
				Path:     "/",
				MaxAge:   int(cfg.TTL.Seconds()),
				HttpOnly: true,
				Secure:   cfg.Secure,
				SameSite: http.SameSiteLaxMode,
			})

			ctx = logger.WithSession(ctx, sessionID)
			ctx = context.WithValue(ctx, sessionKey{}, sessionID)

			if isNew {
				ctxzap.Info(ctx, "new session started")
				starter.StartSession(ctx, sessionID)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionID returns the id stored by Session, or "" outside of it
func SessionID(ctx context.Context) string {
	id, _ := ctx.Value(sessionKey{}).(string)
	return id
}
