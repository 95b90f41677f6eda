package backend

import (
	"context"
	"errors"

	"github.com/futig/insurance-advisor/internal/config"
	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/integration/common"
	pkghttp "github.com/futig/insurance-advisor/pkg/http"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// Connector talks to the insurance backend. No method returns an error:
// failures are logged and replaced by the fallback value of the call.
type Connector struct {
	config    config.BackendConnectorConfig
	connector *pkghttp.Connector
	logger    *zap.Logger
}

func NewConnector(
	cfg config.BackendConnectorConfig,
	logger *zap.Logger,
) *Connector {
	return &Connector{
		connector: common.NewBaseConnector(cfg.HTTPClientConfig, logger),
		config:    cfg,
		logger:    logger,
	}
}

// FetchProducts returns the whole catalog, or an empty list on failure
func (c *Connector) FetchProducts(ctx context.Context) []entity.Recommendation {
	env, err := call[[]entity.Recommendation](ctx, c.connector, c.config.ProductsEndpoint, nil)
	if err != nil {
		ctxzap.Error(ctx, "failed to fetch products", zap.Error(err))
		return []entity.Recommendation{}
	}
	if !env.Success || env.Data == nil {
		logUnsuccessful(ctx, c.config.ProductsEndpoint, env.Message)
		return []entity.Recommendation{}
	}

	ctxzap.Info(ctx, "products fetched", zap.Int("count", len(env.Data)))
	return env.Data
}

// FetchRecommendations returns the products matching the request, or an empty list on failure
func (c *Connector) FetchRecommendations(ctx context.Context, req entity.RecommendationRequest) []entity.Recommendation {
	env, err := call[[]entity.Recommendation](ctx, c.connector, c.config.RecommendEndpoint, req)
	if err != nil {
		ctxzap.Error(ctx, "failed to fetch recommendations", zap.Error(err))
		return []entity.Recommendation{}
	}
	if !env.Success || env.Data == nil {
		logUnsuccessful(ctx, c.config.RecommendEndpoint, env.Message)
		return []entity.Recommendation{}
	}

	ctxzap.Info(ctx, "recommendations fetched", zap.Int("count", len(env.Data)))
	return env.Data
}

// FetchRiskAssessment returns the per-category assessment, or nil on failure
func (c *Connector) FetchRiskAssessment(ctx context.Context, req entity.RiskAssessmentRequest) entity.RiskAssessment {
	env, err := call[entity.RiskAssessment](ctx, c.connector, c.config.RiskEndpoint, req)
	if err != nil {
		ctxzap.Error(ctx, "failed to fetch risk assessment", zap.Error(err))
		return nil
	}
	if !env.Success {
		logUnsuccessful(ctx, c.config.RiskEndpoint, env.Message)
		return nil
	}

	ctxzap.Info(ctx, "risk assessment fetched", zap.Int("categories", len(env.Data)))
	return env.Data
}

// SendChatMessage returns the backend reply. An unsuccessful or empty reply yields
// ChatReplyUnavailable; a transport or decoding failure yields ChatReplyNetworkDown.
func (c *Connector) SendChatMessage(ctx context.Context, message string) string {
	env, err := call[any](ctx, c.connector, c.config.ChatEndpoint, entity.ChatRequest{Message: message})
	if err != nil {
		ctxzap.Error(ctx, "chat request failed", zap.Error(err))
		return entity.ChatReplyNetworkDown
	}
	if !env.Success || env.Response == "" {
		logUnsuccessful(ctx, c.config.ChatEndpoint, env.Message)
		return entity.ChatReplyUnavailable
	}

	return env.Response
}

// HealthCheck reports whether the backend answered the probe with success
func (c *Connector) HealthCheck(ctx context.Context) bool {
	env, err := call[any](ctx, c.connector, c.config.HealthEndpoint, nil)
	if err != nil {
		ctxzap.Error(ctx, "backend health check failed", zap.Error(err))
		return false
	}
	if !env.Success {
		logUnsuccessful(ctx, c.config.HealthEndpoint, env.Message)
	}
	return env.Success
}

// FetchDataSummary returns the backend data summary, or nil on failure
func (c *Connector) FetchDataSummary(ctx context.Context) map[string]any {
	env, err := call[map[string]any](ctx, c.connector, c.config.DataSummaryEndpoint, nil)
	if err != nil {
		ctxzap.Error(ctx, "failed to fetch data summary", zap.Error(err))
		return nil
	}
	if !env.Success {
		logUnsuccessful(ctx, c.config.DataSummaryEndpoint, env.Message)
		return nil
	}
	return env.Data
}

// call decodes the envelope of a GET, or of a POST when body is set. The backend
// answers errors with a non-2xx status and the same envelope, which is treated as
// a normal response.
func call[T any](
	ctx context.Context,
	connector *pkghttp.Connector,
	endpoint string,
	body any,
) (entity.Envelope[T], error) {
	var env entity.Envelope[T]
	var err error
	if body == nil {
		err = connector.Get(ctx, endpoint, &env)
	} else {
		err = connector.Post(ctx, endpoint, body, &env)
	}
	if err == nil {
		return env, nil
	}

	var httpErr *pkghttp.HTTPError
	if errors.As(err, &httpErr) {
		var errEnv entity.Envelope[T]
		if decodeErr := httpErr.DecodeJSON(&errEnv); decodeErr == nil {
			ctxzap.Warn(ctx, "backend returned error status",
				zap.String("endpoint", endpoint),
				zap.Int("status", httpErr.StatusCode),
			)
			return errEnv, nil
		}
	}

	return env, err
}

func logUnsuccessful(ctx context.Context, endpoint, message string) {
	ctxzap.Warn(ctx, "backend reported failure",
		zap.String("endpoint", endpoint),
		zap.String("message", message),
	)
}
