package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/google/uuid"
)

type starterStub struct {
	mu      sync.Mutex
	started []string
}

func (s *starterStub) StartSession(_ context.Context, sessionID string) entity.AppState {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.started = append(s.started, sessionID)
	return entity.NewAppState()
}

func serveSession(t *testing.T, starter *starterStub, cookie *http.Cookie) (*httptest.ResponseRecorder, string) {
	t.Helper()

	var seen string
	h := Session(starter, SessionConfig{TTL: time.Hour})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen = SessionID(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec, seen
}

func TestSessionIssuesCookie(t *testing.T) {
	starter := &starterStub{}
	rec, seen := serveSession(t, starter, nil)

	if _, err := uuid.Parse(seen); err != nil {
		t.Fatalf("expected uuid session id, got %q", seen)
	}
	cookies := rec.Result().Cookies()
	if len(cookies) != 1 || cookies[0].Name != SessionCookieName || cookies[0].Value != seen {
		t.Fatalf("unexpected cookies: %v", cookies)
	}
	if !cookies[0].HttpOnly || cookies[0].MaxAge != 3600 {
		t.Fatalf("unexpected cookie attributes: %+v", cookies[0])
	}
	if len(starter.started) != 1 || starter.started[0] != seen {
		t.Fatalf("expected the session to be started once, got %v", starter.started)
	}
}

func TestSessionReusesValidCookie(t *testing.T) {
	starter := &starterStub{}
	id := uuid.NewString()

	_, seen := serveSession(t, starter, &http.Cookie{Name: SessionCookieName, Value: id})

	if seen != id {
		t.Fatalf("expected %s, got %s", id, seen)
	}
	if len(starter.started) != 0 {
		t.Fatalf("known session must not be restarted, got %v", starter.started)
	}
}

func TestSessionReplacesForgedCookie(t *testing.T) {
	starter := &starterStub{}

	_, seen := serveSession(t, starter, &http.Cookie{Name: SessionCookieName, Value: "../../etc"})

	if seen == "../../etc" || len(starter.started) != 1 {
		t.Fatalf("forged cookie must be replaced, got %q", seen)
	}
}
