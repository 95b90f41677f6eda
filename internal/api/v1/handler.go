package v1

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/futig/insurance-advisor/internal/api/middleware"
	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/logger"
	"github.com/futig/insurance-advisor/internal/pkg/response"
	"github.com/goccy/go-json"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const maxChatBodySize = 64 << 10

type Handler struct {
	usecase AdvisorUsecase
}

func NewHandler(usecase AdvisorUsecase) *Handler {
	return &Handler{
		usecase: usecase,
	}
}

// GetState handles GET /api/v1/state
func (h *Handler) GetState(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetState")

	st := h.usecase.State(ctx, middleware.SessionID(ctx))
	ctxzap.Debug(ctx, "state fetched")
	response.Success(w, st)
}

// Chat handles POST /api/v1/chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "APIChat")

	var req ChatRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxChatBodySize)).Decode(&req); err != nil {
		ctxzap.Warn(ctx, "failed to decode chat request", zap.Error(err))
		response.Error(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Message) == "" {
		response.Error(w, http.StatusBadRequest, "message is required")
		return
	}

	reply, st := h.usecase.Chat(context.WithoutCancel(ctx), middleware.SessionID(ctx), req.Message)
	response.Success(w, &ChatResponse{
		Reply:      reply,
		Transcript: st.Transcript,
	})
}

// Analyze handles POST /api/v1/analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "APIAnalyze")

	st, err := h.usecase.Analyze(context.WithoutCancel(ctx), middleware.SessionID(ctx))
	switch {
	case errors.Is(err, entity.ErrMissingField):
		response.Error(w, http.StatusBadRequest, st.Alert)
	case errors.Is(err, entity.ErrBackendUnreachable):
		response.Error(w, http.StatusServiceUnavailable, st.Banner)
	case err != nil:
		ctxzap.Error(ctx, "analysis failed", zap.Error(err))
		response.Error(w, http.StatusInternalServerError, "internal server error")
	default:
		response.Success(w, st)
	}
}

// GetPlan handles GET /api/v1/plan
func (h *Handler) GetPlan(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "GetPlan")
	response.Success(w, toPlanResponse(h.usecase.Plan(ctx, middleware.SessionID(ctx))))
}
