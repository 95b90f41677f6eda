package render

import (
	"strings"
	"testing"

	"github.com/futig/insurance-advisor/internal/entity"
)

func TestFormatProfile(t *testing.T) {
	got := FormatProfile(entity.UserProfile{
		Age:    "35",
		Family: entity.FamilyMarried,
		Needs:  []string{"健康保障", "退休規劃"},
	})

	for _, want := range []string{"年齡：35", "月收入：-", "家庭狀況：已婚無子女", "健康狀況：-", "保障需求：健康保障、退休規劃"} {
		if !strings.Contains(got, want) {
			t.Errorf("profile summary misses %q:\n%s", want, got)
		}
	}
}

func TestFormatRecommendations(t *testing.T) {
	recs := entity.NormalizeAll([]entity.Recommendation{
		{"name": "安心醫療", "monthly_premium": float64(2800), "rating": 4.6, "recommendation_score": 0.875},
		{},
	})

	got := FormatRecommendations(recs)

	if strings.Count(got, "最推薦") != 1 {
		t.Fatalf("expected exactly one top badge:\n%s", got)
	}
	for _, want := range []string{"1. 安心醫療", "NT$2,800 / 月", "★★★★☆ 4.6", "推薦指數 88%", "2. 保險產品", "保險公司｜NT$0 / 月"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}

	if FormatRecommendations(nil) != MsgNoResults {
		t.Fatal("expected empty state message")
	}
}

func TestFormatRisk(t *testing.T) {
	if FormatRisk(nil) != MsgNoRisk {
		t.Fatal("expected empty state message")
	}

	panels := entity.NewRiskAssessment(map[string]entity.RiskEntry{
		entity.RiskCategoryHealth: {Level: entity.RiskHigh, Score: 80, Recommendation: "建議加強醫療保障"},
		entity.RiskCategoryFamily: {Level: "unknown", Score: 130},
	}).Panels()

	got := FormatRisk(panels)
	for _, want := range []string{"🔴 健康風險：高風險（80 分）", "████████░░", "建議：建議加強醫療保障", "⚪ 家庭風險：未評估（130 分）", "██████████"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
}

func TestFormatAnalysisBackendDown(t *testing.T) {
	st := entity.NewAppState().WithBackendUnreachable("分析失敗：無法連線至後端服務")

	got := FormatAnalysis(st)
	if !strings.Contains(got, entity.BannerBackendDown) || !strings.Contains(got, "分析失敗") {
		t.Fatalf("unexpected analysis text:\n%s", got)
	}
}

func TestFormatPlanDefaults(t *testing.T) {
	got := FormatPlan(entity.NewFinancialPlan(entity.UserProfile{}, 0))

	for _, want := range []string{"緊急預備金：NT$300,000", "保險預算：NT$7,500 / 月", "退休帳戶：NT$5,000 / 月，目標 NT$20,000,000", "財務健康度：56"} {
		if !strings.Contains(got, want) {
			t.Errorf("missing %q:\n%s", want, got)
		}
	}
}
