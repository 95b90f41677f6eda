package api

import (
	"bytes"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/futig/insurance-advisor/internal/api/middleware"
	v1api "github.com/futig/insurance-advisor/internal/api/v1"
	"github.com/futig/insurance-advisor/internal/api/web"
	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/integration/backend"
	"github.com/futig/insurance-advisor/internal/pkg/formatter"
	"github.com/futig/insurance-advisor/internal/pkg/validator"
	"github.com/futig/insurance-advisor/internal/repository"
	"github.com/futig/insurance-advisor/internal/usecase/advisor"
	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type testClient struct {
	t      *testing.T
	base   string
	client *http.Client
}

// newTestClient serves the full router on top of the local catalog
func newTestClient(t *testing.T) *testClient {
	t.Helper()

	logger := zap.NewNop()
	store := repository.NewStateCache(time.Hour, time.Minute)
	uc := advisor.NewUsecase(backend.NewMockConnector(logger), store, formatter.NewFactory(""), nil)

	webHandler, err := web.NewHandler(uc, validator.NewValidator())
	if err != nil {
		t.Fatalf("failed to create web handler: %v", err)
	}

	router := SetupRouter(webHandler, v1api.NewHandler(uc), uc, middleware.SessionConfig{TTL: time.Hour}, logger)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	jar, err := cookiejar.New(nil)
	if err != nil {
		t.Fatalf("failed to create cookie jar: %v", err)
	}
	return &testClient{t: t, base: srv.URL, client: &http.Client{Jar: jar}}
}

func (c *testClient) get(path string) *http.Response {
	c.t.Helper()
	resp, err := c.client.Get(c.base + path)
	if err != nil {
		c.t.Fatalf("GET %s: %v", path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (c *testClient) post(path string, form url.Values) *http.Response {
	c.t.Helper()
	resp, err := c.client.PostForm(c.base+path, form)
	if err != nil {
		c.t.Fatalf("POST %s: %v", path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func (c *testClient) postJSON(path, body string) *http.Response {
	c.t.Helper()
	resp, err := c.client.Post(c.base+path, "application/json", bytes.NewBufferString(body))
	if err != nil {
		c.t.Fatalf("POST %s: %v", path, err)
	}
	c.t.Cleanup(func() { resp.Body.Close() })
	return resp
}

func document(t *testing.T, resp *http.Response) *goquery.Document {
	t.Helper()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		t.Fatalf("failed to parse page: %v", err)
	}
	return doc
}

func (c *testClient) state() entity.AppState {
	c.t.Helper()
	resp := c.get("/api/v1/state")
	var st entity.AppState
	if err := json.NewDecoder(resp.Body).Decode(&st); err != nil {
		c.t.Fatalf("failed to decode state: %v", err)
	}
	return st
}

func TestRootRedirectsToRecommend(t *testing.T) {
	c := newTestClient(t)

	resp := c.get("/")
	if resp.Request.URL.Path != "/recommend" {
		t.Fatalf("expected redirect to /recommend, got %s", resp.Request.URL.Path)
	}

	doc := document(t, resp)
	if n := doc.Find("nav a.tab").Length(); n != 5 {
		t.Fatalf("expected 5 tabs, got %d", n)
	}
	if active := strings.TrimSpace(doc.Find("nav a.active").Text()); active != "推薦保單" {
		t.Fatalf("unexpected active tab %q", active)
	}

	u, _ := url.Parse(c.base)
	cookies := c.client.Jar.Cookies(u)
	if len(cookies) != 1 || cookies[0].Name != middleware.SessionCookieName {
		t.Fatalf("expected session cookie, got %v", cookies)
	}
}

func TestAnalyzeRendersRecommendations(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.post("/analyze", url.Values{
		"age":    {"30"},
		"income": {"50000"},
		"family": {entity.FamilySingle},
		"health": {entity.HealthGood},
	}))

	cards := doc.Find("#recommendations .product")
	if cards.Length() != 2 {
		t.Fatalf("expected 2 cards, got %d", cards.Length())
	}
	first := cards.First()
	if first.Find(".badge").Text() != "最推薦" {
		t.Fatal("first card must carry the top badge")
	}
	if cards.Eq(1).Find(".badge").Length() != 0 {
		t.Fatal("only the first card carries the badge")
	}
	if got := first.Find(".premium").Text(); !strings.Contains(got, "NT$3,500") {
		t.Fatalf("unexpected premium %q", got)
	}
	if got := first.Find(".features li").Length(); got != 3 {
		t.Fatalf("expected 3 features, got %d", got)
	}
	if doc.Find("#alert").Length() != 0 {
		t.Fatal("no alert expected after a successful analysis")
	}
}

func TestAnalyzeWithoutProfileAlertsOnce(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.post("/analyze", url.Values{}))
	if got := doc.Find("#alert").Text(); got != entity.AlertMissingProfile {
		t.Fatalf("unexpected alert %q", got)
	}

	doc = document(t, c.get("/recommend"))
	if doc.Find("#alert").Length() != 0 {
		t.Fatal("alert must be shown only once")
	}
}

func TestToggleNeedKeepsTypedValues(t *testing.T) {
	c := newTestClient(t)

	c.post("/profile/needs/"+url.PathEscape("健康保障"), url.Values{"age": {"40"}})
	c.post("/profile/needs/"+url.PathEscape("退休規劃"), url.Values{})

	st := c.state()
	if st.Profile.Age != "40" {
		t.Fatalf("expected typed age to be saved, got %q", st.Profile.Age)
	}
	if len(st.Profile.Needs) != 2 || st.Profile.Needs[0] != "健康保障" {
		t.Fatalf("unexpected needs %v", st.Profile.Needs)
	}

	doc := document(t, c.post("/profile/needs/"+url.PathEscape("健康保障"), url.Values{}))
	if n := doc.Find("button.need.selected").Length(); n != 1 {
		t.Fatalf("expected 1 selected need after toggling back, got %d", n)
	}
}

func TestInvalidFormValuesAreRejected(t *testing.T) {
	c := newTestClient(t)

	if resp := c.post("/profile", url.Values{"family": {"divorced"}}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
	if resp := c.post("/profile/needs/unknown", url.Values{}); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestChatAppendsTranscript(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.post("/chat", url.Values{"message": {"我想買健康險"}}))

	bubbles := doc.Find(".transcript .bubble")
	if bubbles.Length() != 3 {
		t.Fatalf("expected greeting plus 2 messages, got %d", bubbles.Length())
	}
	if doc.Find(".bubble.user").Text() != "我想買健康險" {
		t.Fatalf("unexpected user bubble %q", doc.Find(".bubble.user").Text())
	}
	if !strings.Contains(bubbles.Last().Text(), "全方位健康守護險") {
		t.Fatalf("unexpected reply %q", bubbles.Last().Text())
	}
	if n := doc.Find("button.example").Length(); n != 3 {
		t.Fatalf("expected 3 example questions, got %d", n)
	}

	doc = document(t, c.post("/chat", url.Values{"message": {"   "}}))
	if n := doc.Find(".transcript .bubble").Length(); n != 3 {
		t.Fatalf("blank input must be ignored, got %d bubbles", n)
	}
}

func TestChatExample(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.post("/chat/example/1", url.Values{}))
	if got := doc.Find(".bubble.user").Text(); got != entity.ExampleQuestions[1] {
		t.Fatalf("unexpected question %q", got)
	}

	if resp := c.post("/chat/example/9", url.Values{}); resp.StatusCode != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", resp.StatusCode)
	}
}

func TestRiskTab(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.get("/risk"))
	if !strings.Contains(doc.Find("#risk .empty").Text(), "尚未進行風險評估") {
		t.Fatal("expected empty risk state")
	}
	if href, _ := doc.Find("a.cta").Attr("href"); href != "/recommend" {
		t.Fatalf("unexpected call to action %q", href)
	}

	c.post("/analyze", url.Values{
		"age":    {"45"},
		"income": {"30000"},
		"family": {entity.FamilyMarriedKids},
		"health": {entity.HealthPoor},
	})

	doc = document(t, c.get("/risk"))
	panels := doc.Find(".risk-panel")
	if panels.Length() != 3 {
		t.Fatalf("expected 3 panels, got %d", panels.Length())
	}
	if cat, _ := panels.First().Attr("data-category"); cat != entity.RiskCategoryHealth {
		t.Fatalf("expected health first, got %s", cat)
	}
	if !strings.Contains(panels.First().Find(".level").Text(), "高風險") {
		t.Fatalf("unexpected level %q", panels.First().Find(".level").Text())
	}
	if style, _ := panels.First().Find(".bar").Attr("style"); !strings.Contains(style, "80%") {
		t.Fatalf("unexpected bar style %q", style)
	}
}

func TestPlanningDefaults(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.get("/planning"))
	if got := doc.Find(".overall").Text(); got != "56" {
		t.Fatalf("expected overall 56, got %q", got)
	}
	if got := doc.Find(".emergency").Text(); got != "NT$300,000" {
		t.Fatalf("unexpected emergency fund %q", got)
	}
	if n := doc.Find(".plan-score").Length(); n != 4 {
		t.Fatalf("expected 4 scores, got %d", n)
	}
}

func TestProductsTab(t *testing.T) {
	c := newTestClient(t)

	doc := document(t, c.get("/products"))
	if n := doc.Find("#products .product").Length(); n != 4 {
		t.Fatalf("expected 4 products, got %d", n)
	}
	if doc.Find("#products .badge").Length() != 0 {
		t.Fatal("catalog cards carry no badge")
	}
}

func TestReportDownload(t *testing.T) {
	c := newTestClient(t)

	resp := c.get("/report?format=markdown")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
	if cd := resp.Header.Get("Content-Disposition"); !strings.Contains(cd, "insurance-report.md") {
		t.Fatalf("unexpected disposition %q", cd)
	}

	if resp := c.get("/report?format=xls"); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestAPIChat(t *testing.T) {
	c := newTestClient(t)

	resp := c.postJSON("/api/v1/chat", `{"message":"退休要準備多少"}`)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}

	var body v1api.ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if !strings.Contains(body.Reply, "黃金歲月退休計劃") || len(body.Transcript) != 2 {
		t.Fatalf("unexpected response %+v", body)
	}
	if body.Transcript[0].Type != entity.ChatRoleUser || body.Transcript[1].Type != entity.ChatRoleAI {
		t.Fatalf("unexpected transcript order %+v", body.Transcript)
	}

	if resp := c.postJSON("/api/v1/chat", `{"message":" "}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 for blank message, got %d", resp.StatusCode)
	}
}

func TestAPIAnalyzeMissingProfile(t *testing.T) {
	c := newTestClient(t)

	if resp := c.postJSON("/api/v1/analyze", `{}`); resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", resp.StatusCode)
	}
}

func TestHealth(t *testing.T) {
	c := newTestClient(t)

	if resp := c.get("/health"); resp.StatusCode != http.StatusOK {
		t.Fatalf("expected 200, got %d", resp.StatusCode)
	}
}
