package entity

import "slices"

type Tab string

const (
	TabRecommend Tab = "recommend"
	TabChat      Tab = "chat"
	TabRisk      Tab = "risk"
	TabPlanning  Tab = "planning"
	TabProducts  Tab = "products"
)

// Tabs lists the navigation entries in display order
var Tabs = []struct {
	ID    Tab
	Label string
}{
	{TabRecommend, "推薦保單"},
	{TabChat, "智能問答"},
	{TabRisk, "風險評估"},
	{TabPlanning, "財務規劃"},
	{TabProducts, "商品目錄"},
}

// IsValid reports whether t is one of the navigation tabs
func (t Tab) IsValid() bool {
	for _, tab := range Tabs {
		if tab.ID == t {
			return true
		}
	}
	return false
}

const (
	AlertMissingProfile = "請填寫基本資料"
	AlertNoResults      = "目前沒有符合條件的推薦方案，請調整條件後再試"
	BannerBackendDown   = "無法連線至後端服務，請確認服務已啟動後再試"
)

// AppState is everything one session shows. It is treated as a value:
// every transition returns a new state and never mutates shared slices or maps.
type AppState struct {
	Tab             Tab                     `json:"tab"`
	Profile         UserProfile             `json:"profile"`
	Recommendations []DisplayRecommendation `json:"recommendations"`
	Risk            RiskAssessment          `json:"risk,omitempty"`
	RiskPanels      []RiskPanel             `json:"risk_panels,omitempty"`
	Analyzing       bool                    `json:"analyzing"`
	Banner          string                  `json:"banner,omitempty"`
	Alert           string                  `json:"alert,omitempty"`
	Transcript      []ChatMessage           `json:"transcript"`
	DataSummary     map[string]any          `json:"data_summary,omitempty"`
	Products        []DisplayRecommendation `json:"products,omitempty"`
	ProductsLoaded  bool                    `json:"products_loaded"`
}

// NewAppState returns the state of a freshly opened session
func NewAppState() AppState {
	return AppState{
		Tab:        TabRecommend,
		Profile:    UserProfile{Needs: []string{}},
		Transcript: []ChatMessage{},
	}
}

// HasRisk reports whether an assessment has been received
func (s AppState) HasRisk() bool {
	return s.Risk != nil
}

func (s AppState) WithTab(tab Tab) AppState {
	if tab.IsValid() {
		s.Tab = tab
	}
	return s
}

func (s AppState) WithProfileField(field ProfileField, value string) AppState {
	s.Profile = s.Profile.WithField(field, value)
	return s
}

func (s AppState) WithNeedToggled(need string) AppState {
	s.Profile = s.Profile.ToggleNeed(need)
	return s
}

// WithProfile replaces the whole profile, e.g. when a form posts every field at once
func (s AppState) WithProfile(p UserProfile) AppState {
	s.Profile = p.clone()
	if s.Profile.Needs == nil {
		s.Profile.Needs = []string{}
	}
	return s
}

func (s AppState) WithAlert(msg string) AppState {
	s.Alert = msg
	return s
}

func (s AppState) WithoutAlert() AppState {
	s.Alert = ""
	return s
}

func (s AppState) StartAnalysis() AppState {
	s.Analyzing = true
	s.Alert = ""
	return s
}

// WithBackendUnreachable ends an analysis with the persistent connectivity banner
func (s AppState) WithBackendUnreachable(alert string) AppState {
	s.Analyzing = false
	s.Banner = BannerBackendDown
	s.Alert = alert
	return s
}

func (s AppState) WithBackendReachable() AppState {
	s.Banner = ""
	return s
}

// WithResults stores normalized results and finishes the analysis
func (s AppState) WithResults(recs []Recommendation, risk RiskAssessment) AppState {
	s.Recommendations = NormalizeAll(recs)
	s.Risk = risk
	s.RiskPanels = risk.Panels()
	s.Analyzing = false
	s.Tab = TabRecommend
	if len(s.Recommendations) == 0 {
		s.Alert = AlertNoResults
	}
	return s
}

// AppendMessage adds one transcript entry
func (s AppState) AppendMessage(role ChatRole, content string) AppState {
	transcript := slices.Clone(s.Transcript)
	s.Transcript = append(transcript, ChatMessage{Type: role, Content: content})
	return s
}

func (s AppState) WithDataSummary(summary map[string]any) AppState {
	s.DataSummary = summary
	return s
}

func (s AppState) WithProducts(list []Recommendation) AppState {
	s.Products = NormalizeAll(list)
	for i := range s.Products {
		s.Products[i].Top = false
	}
	s.ProductsLoaded = true
	return s
}
