package advisor

import (
	"context"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/formatter"
)

// Provider is the backend seen by the advisor. Implementations never fail:
// every error is logged and replaced by an empty or apology value.
type Provider interface {
	FetchProducts(ctx context.Context) []entity.Recommendation
	FetchRecommendations(ctx context.Context, req entity.RecommendationRequest) []entity.Recommendation
	FetchRiskAssessment(ctx context.Context, req entity.RiskAssessmentRequest) entity.RiskAssessment
	SendChatMessage(ctx context.Context, message string) string
	HealthCheck(ctx context.Context) bool
	FetchDataSummary(ctx context.Context) map[string]any
}

// StateStore holds one AppState per session. Update applies fn atomically and
// returns the stored result.
type StateStore interface {
	Get(ctx context.Context, sessionID string) entity.AppState
	Update(ctx context.Context, sessionID string, fn func(entity.AppState) entity.AppState) entity.AppState
}

type FormatterFactory interface {
	Create(format entity.ResultFormat) (formatter.Formatter, error)
}
