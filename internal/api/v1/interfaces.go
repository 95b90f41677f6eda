package v1

import (
	"context"

	"github.com/futig/insurance-advisor/internal/entity"
)

type AdvisorUsecase interface {
	State(ctx context.Context, sessionID string) entity.AppState
	Analyze(ctx context.Context, sessionID string) (entity.AppState, error)
	Chat(ctx context.Context, sessionID, message string) (string, entity.AppState)
	Plan(ctx context.Context, sessionID string) entity.FinancialPlan
}
