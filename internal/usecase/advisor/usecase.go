package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// AlertBackendDown is shown when the health probe fails during analysis
const AlertBackendDown = "分析失敗：無法連線至後端服務"

// AdvisorUsecase runs the user flows against a Provider and records their
// outcome in the session state
type AdvisorUsecase struct {
	provider  Provider
	store     StateStore
	formatter FormatterFactory
	examples  []string
}

// NewUsecase creates a new advisor use case. Empty examples fall back to the built-in questions.
func NewUsecase(provider Provider, store StateStore, formatter FormatterFactory, examples []string) *AdvisorUsecase {
	if len(examples) == 0 {
		examples = entity.ExampleQuestions
	}
	return &AdvisorUsecase{
		provider:  provider,
		store:     store,
		formatter: formatter,
		examples:  examples,
	}
}

// ExampleQuestions returns the questions offered as one-click chat submissions
func (uc *AdvisorUsecase) ExampleQuestions() []string {
	return uc.examples
}

// State returns the current session state
func (uc *AdvisorUsecase) State(ctx context.Context, sessionID string) entity.AppState {
	return uc.store.Get(ctx, sessionID)
}

// StartSession creates the state of a new session and loads the data summary
// in the background. Failures of that load are only logged.
func (uc *AdvisorUsecase) StartSession(ctx context.Context, sessionID string) entity.AppState {
	st := uc.store.Get(ctx, sessionID)
	go uc.LoadDataSummary(context.WithoutCancel(ctx), sessionID)
	return st
}

// Apply runs a single state transition, e.g. a profile field change
func (uc *AdvisorUsecase) Apply(
	ctx context.Context,
	sessionID string,
	fn func(entity.AppState) entity.AppState,
) entity.AppState {
	return uc.store.Update(ctx, sessionID, fn)
}

// Analyze validates the profile, probes the backend and fetches recommendations
// followed by the risk assessment. A failed probe stops before /recommend.
func (uc *AdvisorUsecase) Analyze(ctx context.Context, sessionID string) (entity.AppState, error) {
	profile := uc.store.Get(ctx, sessionID).Profile
	if !profile.IsComplete() {
		st := uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
			return s.WithAlert(entity.AlertMissingProfile)
		})
		return st, fmt.Errorf("analyze: age and income: %w", entity.ErrMissingField)
	}

	uc.store.Update(ctx, sessionID, entity.AppState.StartAnalysis)

	if !uc.provider.HealthCheck(ctx) {
		ctxzap.Error(ctx, "backend health check failed, analysis aborted",
			zap.String("session_id", sessionID),
		)
		st := uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
			return s.WithBackendUnreachable(AlertBackendDown)
		})
		return st, fmt.Errorf("analyze: %w", entity.ErrBackendUnreachable)
	}
	uc.store.Update(ctx, sessionID, entity.AppState.WithBackendReachable)

	recs := uc.provider.FetchRecommendations(ctx, BuildRequest(profile))
	risk := uc.provider.FetchRiskAssessment(ctx, BuildRiskRequest(profile))

	ctxzap.Info(ctx, "analysis completed",
		zap.String("session_id", sessionID),
		zap.Int("recommendations", len(recs)),
		zap.Bool("has_risk", risk != nil),
	)

	st := uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithResults(recs, risk)
	})
	return st, nil
}

// Chat appends the user message, asks the backend and appends the reply.
// Blank input is ignored and yields an empty reply.
func (uc *AdvisorUsecase) Chat(ctx context.Context, sessionID, message string) (string, entity.AppState) {
	if strings.TrimSpace(message) == "" {
		return "", uc.store.Get(ctx, sessionID)
	}

	uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.AppendMessage(entity.ChatRoleUser, message)
	})

	reply := uc.provider.SendChatMessage(ctx, message)

	st := uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.AppendMessage(entity.ChatRoleAI, reply)
	})
	return reply, st
}

// AskExample submits the n-th example question (zero based) as a chat turn
func (uc *AdvisorUsecase) AskExample(ctx context.Context, sessionID string, n int) (string, entity.AppState, error) {
	if n < 0 || n >= len(uc.examples) {
		return "", uc.store.Get(ctx, sessionID), fmt.Errorf("example question %d: %w", n, entity.ErrInvalidParameter)
	}
	reply, st := uc.Chat(ctx, sessionID, uc.examples[n])
	return reply, st, nil
}

// LoadDataSummary fetches the backend data summary; a missing summary leaves the state untouched
func (uc *AdvisorUsecase) LoadDataSummary(ctx context.Context, sessionID string) {
	summary := uc.provider.FetchDataSummary(ctx)
	if summary == nil {
		return
	}
	uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithDataSummary(summary)
	})
	ctxzap.Debug(ctx, "data summary loaded", zap.String("session_id", sessionID))
}

// LoadProducts fetches the product catalog into the session
func (uc *AdvisorUsecase) LoadProducts(ctx context.Context, sessionID string) entity.AppState {
	products := uc.provider.FetchProducts(ctx)
	return uc.store.Update(ctx, sessionID, func(s entity.AppState) entity.AppState {
		return s.WithProducts(products)
	})
}

// Plan derives the financial plan of the current session
func (uc *AdvisorUsecase) Plan(ctx context.Context, sessionID string) entity.FinancialPlan {
	st := uc.store.Get(ctx, sessionID)
	return entity.NewFinancialPlan(st.Profile, len(st.Recommendations))
}

// Reset replaces the session state with a fresh one
func (uc *AdvisorUsecase) Reset(ctx context.Context, sessionID string) entity.AppState {
	return uc.store.Update(ctx, sessionID, func(entity.AppState) entity.AppState {
		return entity.NewAppState()
	})
}
