package handlers

import (
	"context"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/usecase/advisor"
)

// AdvisorUsecase is the subset of advisor operations used by the bot
type AdvisorUsecase interface {
	StartSession(ctx context.Context, sessionID string) entity.AppState
	State(ctx context.Context, sessionID string) entity.AppState
	Apply(ctx context.Context, sessionID string, fn func(entity.AppState) entity.AppState) entity.AppState
	Analyze(ctx context.Context, sessionID string) (entity.AppState, error)
	Chat(ctx context.Context, sessionID, message string) (string, entity.AppState)
	AskExample(ctx context.Context, sessionID string, n int) (string, entity.AppState, error)
	Plan(ctx context.Context, sessionID string) entity.FinancialPlan
	Report(ctx context.Context, sessionID string, format entity.ResultFormat) (*advisor.Report, error)
	Reset(ctx context.Context, sessionID string) entity.AppState
	ExampleQuestions() []string
}
