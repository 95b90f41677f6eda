package web

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"net/url"
	"strconv"

	"github.com/futig/insurance-advisor/internal/api/middleware"
	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/logger"
	"github.com/futig/insurance-advisor/internal/pkg/response"
	"github.com/futig/insurance-advisor/internal/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

// profileFields are read from the profile form in this order
var profileFields = []entity.ProfileField{
	entity.FieldAge,
	entity.FieldIncome,
	entity.FieldFamily,
	entity.FieldHealth,
}

type Handler struct {
	usecase   AdvisorUsecase
	validator *validator.Validator
	pages     map[string]*template.Template
}

func NewHandler(usecase AdvisorUsecase, validator *validator.Validator) (*Handler, error) {
	pages, err := parseTemplates()
	if err != nil {
		return nil, err
	}
	return &Handler{
		usecase:   usecase,
		validator: validator,
		pages:     pages,
	}, nil
}

// ShowTab handles GET /{tab}
func (h *Handler) ShowTab(tab entity.Tab) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := logger.WithAction(r.Context(), "ShowTab")
		sessionID := middleware.SessionID(ctx)

		st := h.usecase.Apply(ctx, sessionID, func(s entity.AppState) entity.AppState {
			return s.WithTab(tab)
		})
		if tab == entity.TabProducts && !st.ProductsLoaded {
			st = h.usecase.LoadProducts(context.WithoutCancel(ctx), sessionID)
		}

		data := newPageData(st, h.usecase.ExampleQuestions())
		if tab == entity.TabPlanning {
			data.Plan = h.usecase.Plan(ctx, sessionID)
		}

		body, err := execute(h.pages[string(tab)], "layout", data)
		if err != nil {
			ctxzap.Error(ctx, "failed to render page", zap.String("tab", string(tab)), zap.Error(err))
			h.renderError(ctx, w, http.StatusInternalServerError, "頁面產生失敗，請稍後再試")
			return
		}

		// alerts are shown once
		if st.Alert != "" {
			h.usecase.Apply(ctx, sessionID, entity.AppState.WithoutAlert)
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		w.Write(body)
	}
}

// SaveProfile handles POST /profile
func (h *Handler) SaveProfile(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "SaveProfile")

	st, err := h.applyProfileForm(ctx, r)
	if err != nil {
		h.handleFormError(ctx, w, err)
		return
	}

	ctxzap.Debug(ctx, "profile saved")
	redirectToTab(w, r, st.Tab)
}

// ToggleNeed handles POST /profile/needs/{need}. The rest of the form is saved first
// so values typed but not yet submitted survive the round trip.
func (h *Handler) ToggleNeed(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "ToggleNeed")

	need := chi.URLParam(r, "need")
	if unescaped, err := url.PathUnescape(need); err == nil {
		need = unescaped
	}
	ctx = logger.AddFields(ctx, zap.String("need", need))

	if err := h.validator.ValidateNeed(need); err != nil {
		ctxzap.Warn(ctx, "invalid need", zap.Error(err))
		h.renderError(ctx, w, http.StatusBadRequest, "無效的保障需求")
		return
	}

	if _, err := h.applyProfileForm(ctx, r); err != nil {
		h.handleFormError(ctx, w, err)
		return
	}

	st := h.usecase.Apply(ctx, middleware.SessionID(ctx), func(s entity.AppState) entity.AppState {
		return s.WithNeedToggled(need)
	})
	redirectToTab(w, r, st.Tab)
}

// Analyze handles POST /analyze
func (h *Handler) Analyze(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Analyze")

	if _, err := h.applyProfileForm(ctx, r); err != nil {
		h.handleFormError(ctx, w, err)
		return
	}

	st, err := h.usecase.Analyze(context.WithoutCancel(ctx), middleware.SessionID(ctx))
	if err != nil {
		// the outcome is carried by the alert and banner of the state
		ctxzap.Warn(ctx, "analysis did not complete", zap.Error(err))
	}
	redirectToTab(w, r, st.Tab)
}

// Chat handles POST /chat
func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Chat")

	if err := r.ParseForm(); err != nil {
		ctxzap.Error(ctx, "failed to parse form", zap.Error(err))
		h.renderError(ctx, w, http.StatusBadRequest, "表單格式錯誤")
		return
	}

	h.usecase.Chat(context.WithoutCancel(ctx), middleware.SessionID(ctx), r.PostForm.Get("message"))
	redirectToTab(w, r, entity.TabChat)
}

// AskExample handles POST /chat/example/{n}
func (h *Handler) AskExample(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "AskExample")

	n, err := strconv.Atoi(chi.URLParam(r, "n"))
	if err != nil {
		h.renderError(ctx, w, http.StatusNotFound, "找不到此範例問題")
		return
	}

	if _, _, err := h.usecase.AskExample(context.WithoutCancel(ctx), middleware.SessionID(ctx), n); err != nil {
		ctxzap.Warn(ctx, "unknown example question", zap.Int("n", n), zap.Error(err))
		h.renderError(ctx, w, http.StatusNotFound, "找不到此範例問題")
		return
	}
	redirectToTab(w, r, entity.TabChat)
}

// Reset handles POST /reset
func (h *Handler) Reset(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "Reset")

	st := h.usecase.Reset(ctx, middleware.SessionID(ctx))
	ctxzap.Info(ctx, "session reset")
	redirectToTab(w, r, st.Tab)
}

// DownloadReport handles GET /report?format=markdown|pdf|docx
func (h *Handler) DownloadReport(w http.ResponseWriter, r *http.Request) {
	ctx := logger.WithAction(r.Context(), "DownloadReport")

	format := entity.ResultFormat(r.URL.Query().Get("format"))
	if format == "" {
		format = entity.ResultFormatMarkdown
	}
	ctx = logger.AddFields(ctx, zap.String("format", string(format)))

	if err := h.validator.ValidateFormat(format); err != nil {
		ctxzap.Warn(ctx, "unsupported report format", zap.Error(err))
		response.Error(w, http.StatusBadRequest, err.Error())
		return
	}

	report, err := h.usecase.Report(ctx, middleware.SessionID(ctx), format)
	if err != nil {
		ctxzap.Error(ctx, "failed to generate report", zap.Error(err))
		h.renderError(ctx, w, http.StatusInternalServerError, "報告產生失敗，請稍後再試")
		return
	}

	response.Attachment(w, report.ContentType, report.FileName, report.Content)
}

// applyProfileForm saves the profile fields present in the posted form
func (h *Handler) applyProfileForm(ctx context.Context, r *http.Request) (entity.AppState, error) {
	if err := r.ParseForm(); err != nil {
		return entity.AppState{}, errors.Join(entity.ErrInvalidParameter, err)
	}

	for _, field := range profileFields {
		if !r.PostForm.Has(string(field)) {
			continue
		}
		if err := h.validator.ValidateProfileField(field, r.PostForm.Get(string(field))); err != nil {
			return entity.AppState{}, err
		}
	}

	return h.usecase.Apply(ctx, middleware.SessionID(ctx), func(s entity.AppState) entity.AppState {
		for _, field := range profileFields {
			if r.PostForm.Has(string(field)) {
				s = s.WithProfileField(field, r.PostForm.Get(string(field)))
			}
		}
		return s
	}), nil
}

func (h *Handler) handleFormError(ctx context.Context, w http.ResponseWriter, err error) {
	ctxzap.Warn(ctx, "invalid profile form", zap.Error(err))
	h.renderError(ctx, w, http.StatusBadRequest, "基本資料格式錯誤")
}

func (h *Handler) renderError(ctx context.Context, w http.ResponseWriter, status int, message string) {
	body, err := execute(h.pages[errorTemplateKey], errorTemplateKey, struct{ Message string }{message})
	if err != nil {
		ctxzap.Error(ctx, "failed to render error page", zap.Error(err))
		http.Error(w, message, status)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(body)
}

func redirectToTab(w http.ResponseWriter, r *http.Request, tab entity.Tab) {
	if !tab.IsValid() {
		tab = entity.TabRecommend
	}
	http.Redirect(w, r, "/"+string(tab), http.StatusSeeOther)
}
