package backend

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/futig/insurance-advisor/internal/config"
	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/usecase/advisor"
	"go.uber.org/zap"
)

var (
	_ advisor.Provider = (*Connector)(nil)
	_ advisor.Provider = (*MockConnector)(nil)
)

func newTestConfig(url string) config.BackendConnectorConfig {
	return config.BackendConnectorConfig{
		HTTPClientConfig:    config.HTTPClientConfig{Url: url},
		HealthEndpoint:      "/health",
		ProductsEndpoint:    "/products",
		RecommendEndpoint:   "/recommend",
		RiskEndpoint:        "/risk-assessment",
		ChatEndpoint:        "/chat",
		DataSummaryEndpoint: "/data-summary",
	}
}

type response struct {
	status int
	body   string
}

type recorder struct {
	mu      sync.Mutex
	bodies  map[string]string
	methods map[string]string
}

func (r *recorder) body(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.bodies[path]
}

func (r *recorder) method(path string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.methods[path]
}

// newBackend serves fixed bodies per path and records request bodies
func newBackend(t *testing.T, responses map[string]response) (*Connector, *recorder) {
	t.Helper()
	received := &recorder{bodies: make(map[string]string), methods: make(map[string]string)}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		received.mu.Lock()
		received.bodies[r.URL.Path] = string(b)
		received.methods[r.URL.Path] = r.Method
		received.mu.Unlock()

		resp, ok := responses[r.URL.Path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(resp.status)
		w.Write([]byte(resp.body))
	}))
	t.Cleanup(srv.Close)

	return NewConnector(newTestConfig(srv.URL+"/api"), zap.NewNop()), received
}

func TestFetchRecommendationsSuccess(t *testing.T) {
	c, received := newBackend(t, map[string]response{
		"/api/recommend": {200, `{"success":true,"data":[{"name":"安心醫療","premium":{"monthly":{"age_30":2800}},"recommendation_score":0.92}]}`},
	})

	age, budget := 30, 7500
	recs := c.FetchRecommendations(context.Background(), entity.RecommendationRequest{
		Age:    &age,
		Budget: &budget,
		Needs:  []string{"健康保障"},
		Health: "good",
		Family: "single",
	})

	if len(recs) != 1 {
		t.Fatalf("expected 1 recommendation, got %d", len(recs))
	}
	d := entity.Normalize(recs[0])
	if d.Name != "安心醫療" || d.MonthlyPremium != 2800 || d.ScorePercent != 92 {
		t.Fatalf("unexpected normalized card: %+v", d)
	}

	body := received.body("/api/recommend")
	want := `{"age":30,"budget":7500,"needs":["健康保障"],"health":"good","family":"single"}`
	if body != want {
		t.Fatalf("unexpected request body:\n got %s\nwant %s", body, want)
	}
}

func TestRequestMethods(t *testing.T) {
	ok := response{200, `{"success":true,"data":[],"response":"hi"}`}
	c, received := newBackend(t, map[string]response{
		"/api/health":          ok,
		"/api/products":        ok,
		"/api/recommend":       ok,
		"/api/risk-assessment": {200, `{"success":true,"data":{}}`},
		"/api/chat":            ok,
		"/api/data-summary":    {200, `{"success":true,"data":{}}`},
	})
	ctx := context.Background()

	c.HealthCheck(ctx)
	c.FetchProducts(ctx)
	c.FetchDataSummary(ctx)
	c.FetchRecommendations(ctx, entity.RecommendationRequest{})
	c.FetchRiskAssessment(ctx, entity.RiskAssessmentRequest{})
	c.SendChatMessage(ctx, "hi")

	want := map[string]string{
		"/api/health":          http.MethodGet,
		"/api/products":        http.MethodGet,
		"/api/data-summary":    http.MethodGet,
		"/api/recommend":       http.MethodPost,
		"/api/risk-assessment": http.MethodPost,
		"/api/chat":            http.MethodPost,
	}
	for path, method := range want {
		if got := received.method(path); got != method {
			t.Errorf("%s: expected %s, got %q", path, method, got)
		}
	}
}

func TestFetchRecommendationsFallbacks(t *testing.T) {
	tests := []struct {
		name string
		resp response
	}{
		{"unsuccessful", response{200, `{"success":false,"message":"no data"}`}},
		{"server error envelope", response{500, `{"success":false,"message":"推薦失敗"}`}},
		{"html error page", response{502, `<html>bad gateway</html>`}},
		{"malformed json", response{200, `{"success":tru`}},
		{"missing data", response{200, `{"success":true}`}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newBackend(t, map[string]response{"/api/recommend": tt.resp})

			recs := c.FetchRecommendations(context.Background(), entity.RecommendationRequest{})
			if recs == nil || len(recs) != 0 {
				t.Fatalf("expected empty non-nil list, got %#v", recs)
			}
		})
	}
}

func TestFetchRecommendationsUnreachable(t *testing.T) {
	c := NewConnector(newTestConfig("http://127.0.0.1:1/api"), zap.NewNop())

	if recs := c.FetchRecommendations(context.Background(), entity.RecommendationRequest{}); len(recs) != 0 {
		t.Fatalf("expected empty list, got %v", recs)
	}
	if c.HealthCheck(context.Background()) {
		t.Fatal("health check must fail when the backend is unreachable")
	}
	if reply := c.SendChatMessage(context.Background(), "hi"); reply != entity.ChatReplyNetworkDown {
		t.Fatalf("expected network-down reply, got %q", reply)
	}
}

func TestFetchRiskAssessment(t *testing.T) {
	c, received := newBackend(t, map[string]response{
		"/api/risk-assessment": {200, `{"success":true,"data":{"health":{"level":"low","score":20,"recommendation":"維持"},"financial":{"level":"high","score":75}}}`},
	})

	income := 20000
	risk := c.FetchRiskAssessment(context.Background(), entity.RiskAssessmentRequest{Income: &income, Health: "good", Family: "single"})

	panels := risk.Panels()
	if len(panels) != 2 || panels[1].Label != "高風險" {
		t.Fatalf("unexpected panels: %+v", panels)
	}
	if !strings.Contains(received.body("/api/risk-assessment"), `"income":20000`) {
		t.Fatalf("risk request must carry raw income: %s", received.body("/api/risk-assessment"))
	}
}

func TestFetchRiskAssessmentFailureIsNil(t *testing.T) {
	c, _ := newBackend(t, map[string]response{
		"/api/risk-assessment": {500, `{"success":false,"message":"風險評估失敗"}`},
	})

	if risk := c.FetchRiskAssessment(context.Background(), entity.RiskAssessmentRequest{}); risk != nil {
		t.Fatalf("expected nil assessment, got %v", risk)
	}
}

func TestSendChatMessage(t *testing.T) {
	tests := []struct {
		name string
		resp response
		want string
	}{
		{"reply", response{200, `{"success":true,"response":"您好"}`}, "您好"},
		{"unsuccessful", response{200, `{"success":false}`}, entity.ChatReplyUnavailable},
		{"server error envelope", response{500, `{"success":false,"message":"聊天服務錯誤"}`}, entity.ChatReplyUnavailable},
		{"not json", response{200, `oops`}, entity.ChatReplyNetworkDown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, received := newBackend(t, map[string]response{"/api/chat": tt.resp})

			if got := c.SendChatMessage(context.Background(), "健康險怎麼選？"); got != tt.want {
				t.Fatalf("expected %q, got %q", tt.want, got)
			}
			if received.body("/api/chat") != `{"message":"健康險怎麼選？"}` {
				t.Fatalf("unexpected chat body %s", received.body("/api/chat"))
			}
		})
	}
}

func TestHealthCheck(t *testing.T) {
	c, _ := newBackend(t, map[string]response{
		"/api/health": {200, `{"success":true,"message":"保險 API 服務正常運行"}`},
	})
	if !c.HealthCheck(context.Background()) {
		t.Fatal("expected healthy backend")
	}

	down, _ := newBackend(t, map[string]response{
		"/api/health": {200, `{"success":false}`},
	})
	if down.HealthCheck(context.Background()) {
		t.Fatal("expected unhealthy backend")
	}
}

func TestFetchProductsAndSummary(t *testing.T) {
	c, _ := newBackend(t, map[string]response{
		"/api/products":     {200, `{"success":true,"data":[{"name":"A"},{"name":"B"}],"count":2}`},
		"/api/data-summary": {200, `{"success":false,"message":"資料摘要不存在"}`},
	})

	if products := c.FetchProducts(context.Background()); len(products) != 2 {
		t.Fatalf("expected 2 products, got %d", len(products))
	}
	if summary := c.FetchDataSummary(context.Background()); summary != nil {
		t.Fatalf("expected nil summary, got %v", summary)
	}
}
