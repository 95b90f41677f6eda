package backend

import (
	"context"
	"slices"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const (
	maxMockRecommendations = 3
	healthNeed             = "健康保障"
)

type catalogPolicy struct {
	ID          string
	Name        string
	Type        string
	Company     string
	Premium     int
	Coverage    []string
	MinAge      int
	MaxAge      int
	Rating      float64
	SuitableFor []string
}

var catalog = []catalogPolicy{
	{
		ID:          "1",
		Name:        "全方位健康守護險",
		Type:        "health",
		Company:     "台灣人壽",
		Premium:     3500,
		Coverage:    []string{"住院醫療", "手術給付", "重大疾病", "癌症保障"},
		MinAge:      20,
		MaxAge:      65,
		Rating:      4.8,
		SuitableFor: []string{"年輕族群", "健康意識高"},
	},
	{
		ID:          "2",
		Name:        "黃金歲月退休計劃",
		Type:        "retirement",
		Company:     "國泰人壽",
		Premium:     8000,
		Coverage:    []string{"退休年金", "身故保障", "完全失能給付"},
		MinAge:      25,
		MaxAge:      55,
		Rating:      4.6,
		SuitableFor: []string{"中年族群", "退休規劃"},
	},
	{
		ID:          "3",
		Name:        "家庭責任保障險",
		Type:        "life",
		Company:     "富邦人壽",
		Premium:     2800,
		Coverage:    []string{"壽險保障", "意外保障", "家庭責任"},
		MinAge:      25,
		MaxAge:      60,
		Rating:      4.5,
		SuitableFor: []string{"家庭責任重", "經濟支柱"},
	},
	{
		ID:          "4",
		Name:        "創業家財富保障",
		Type:        "investment",
		Company:     "新光人壽",
		Premium:     12000,
		Coverage:    []string{"投資型保險", "資產保全", "稅務規劃"},
		MinAge:      30,
		MaxAge:      65,
		Rating:      4.4,
		SuitableFor: []string{"高收入族群", "資產管理"},
	},
}

type chatRule struct {
	keywords []string
	reply    string
}

var chatRules = []chatRule{
	{
		keywords: []string{"健康險"},
		reply:    "基於您的需求，我推薦「全方位健康守護險」，它提供完整的醫療保障，包括住院、手術和重大疾病保障，月繳保費3,500元，非常適合注重健康的您。",
	},
	{
		keywords: []string{"退休"},
		reply:    "退休規劃很重要！建議您考慮「黃金歲月退休計劃」，這是一個結合保障與儲蓄的方案，可以幫您在退休後維持生活品質。根據您的年齡，建議每月投保8,000元。",
	},
	{
		keywords: []string{"月收入", "6萬"},
		reply:    "以月收入6萬元來說，建議保險支出控制在6,000-9,000元之間（約10-15%）。可以配置：健康險3,500元 + 意外險1,000元 + 壽險2,000元，剩餘資金可投資理財。",
	},
}

const defaultChatReply = "感謝您的提問！根據您的情況，我建議您先完成需求分析，這樣我能為您提供更精準的保險建議。您也可以點擊「推薦保單」查看適合的方案。"

// MockConnector answers every call from a small local catalog without any network access
type MockConnector struct {
	logger *zap.Logger
}

func NewMockConnector(logger *zap.Logger) *MockConnector {
	return &MockConnector{
		logger: logger,
	}
}

// FetchProducts returns the whole local catalog
func (m *MockConnector) FetchProducts(ctx context.Context) []entity.Recommendation {
	ctxzap.Info(ctx, "[MOCK] fetching products", zap.Int("count", len(catalog)))

	out := make([]entity.Recommendation, 0, len(catalog))
	for _, p := range catalog {
		out = append(out, p.toRecommendation())
	}
	return out
}

// FetchRecommendations keeps policies whose age range contains the age and whose
// premium fits the budget, puts health policies first when 健康保障 is requested and
// returns at most three
func (m *MockConnector) FetchRecommendations(ctx context.Context, req entity.RecommendationRequest) []entity.Recommendation {
	ctxzap.Info(ctx, "[MOCK] fetching recommendations", zap.Strings("needs", req.Needs))

	out := []entity.Recommendation{}
	if req.Age == nil || req.Budget == nil {
		return out
	}
	age, budget := *req.Age, *req.Budget

	var matched []catalogPolicy
	for _, p := range catalog {
		if age >= p.MinAge && age <= p.MaxAge && p.Premium <= budget {
			matched = append(matched, p)
		}
	}

	if slices.Contains(req.Needs, healthNeed) {
		slices.SortStableFunc(matched, func(a, b catalogPolicy) int {
			return healthRank(a) - healthRank(b)
		})
	}

	for _, p := range matched[:min(len(matched), maxMockRecommendations)] {
		out = append(out, p.toRecommendation())
	}

	ctxzap.Debug(ctx, "[MOCK] recommendations selected", zap.Int("count", len(out)))
	return out
}

// FetchRiskAssessment scores health, financial and family risk from fixed thresholds
func (m *MockConnector) FetchRiskAssessment(ctx context.Context, req entity.RiskAssessmentRequest) entity.RiskAssessment {
	ctxzap.Info(ctx, "[MOCK] assessing risk")

	healthLevel := entity.RiskLow
	switch req.Health {
	case entity.HealthPoor:
		healthLevel = entity.RiskHigh
	case entity.HealthFair:
		healthLevel = entity.RiskMedium
	}

	financialLevel := entity.RiskLow
	if req.Income != nil {
		switch {
		case *req.Income < 40000:
			financialLevel = entity.RiskHigh
		case *req.Income < 80000:
			financialLevel = entity.RiskMedium
		}
	}

	familyLevel := entity.RiskLow
	switch req.Family {
	case entity.FamilyMarriedKids:
		familyLevel = entity.RiskHigh
	case entity.FamilyMarried:
		familyLevel = entity.RiskMedium
	}

	return entity.NewRiskAssessment(map[string]entity.RiskEntry{
		entity.RiskCategoryHealth: {
			Level:          healthLevel,
			Score:          pickScore(healthLevel, 80, 50, 20),
			Recommendation: pickAdvice(healthLevel, "建議加強醫療保障", "維持基本健康保險"),
		},
		entity.RiskCategoryFinancial: {
			Level:          financialLevel,
			Score:          pickScore(financialLevel, 75, 45, 15),
			Recommendation: pickAdvice(financialLevel, "增加緊急預備金", "可考慮投資型保險"),
		},
		entity.RiskCategoryFamily: {
			Level:          familyLevel,
			Score:          pickScore(familyLevel, 85, 40, 10),
			Recommendation: pickAdvice(familyLevel, "需要充足家庭保障", "基本壽險即可"),
		},
	})
}

// SendChatMessage replies with the canned answer of the first matching keyword
func (m *MockConnector) SendChatMessage(ctx context.Context, message string) string {
	ctxzap.Info(ctx, "[MOCK] answering chat message", zap.Int("message_length", len(message)))

	for _, rule := range chatRules {
		for _, kw := range rule.keywords {
			if strings.Contains(message, kw) {
				return rule.reply
			}
		}
	}
	return defaultChatReply
}

// HealthCheck always succeeds
func (m *MockConnector) HealthCheck(ctx context.Context) bool {
	ctxzap.Debug(ctx, "[MOCK] health check")
	return true
}

// FetchDataSummary describes the local catalog
func (m *MockConnector) FetchDataSummary(ctx context.Context) map[string]any {
	ctxzap.Debug(ctx, "[MOCK] fetching data summary")

	companies := make([]any, 0, len(catalog))
	for _, p := range catalog {
		companies = append(companies, p.Company)
	}
	return map[string]any{
		"total_products": float64(len(catalog)),
		"companies":      companies,
		"source":         "local",
	}
}

func (p catalogPolicy) toRecommendation() entity.Recommendation {
	return entity.Recommendation{
		"id":              p.ID,
		"name":            p.Name,
		"type":            p.Type,
		"company":         p.Company,
		"premium":         float64(p.Premium),
		"monthly_premium": float64(p.Premium),
		"features":        toAnySlice(p.Coverage),
		"suitable_for":    toAnySlice(p.SuitableFor),
		"rating":          p.Rating,
		"age_range": map[string]any{
			"min": float64(p.MinAge),
			"max": float64(p.MaxAge),
		},
	}
}

func healthRank(p catalogPolicy) int {
	if p.Type == "health" {
		return 0
	}
	return 1
}

func pickScore(level entity.RiskLevel, high, medium, low int) int {
	switch level {
	case entity.RiskHigh:
		return high
	case entity.RiskMedium:
		return medium
	default:
		return low
	}
}

func pickAdvice(level entity.RiskLevel, high, other string) string {
	if level == entity.RiskHigh {
		return high
	}
	return other
}

func toAnySlice(items []string) []any {
	out := make([]any, len(items))
	for i, s := range items {
		out[i] = s
	}
	return out
}
