package advisor

import (
	"slices"

	"github.com/futig/insurance-advisor/internal/entity"
)

const (
	budgetIncomeShare = 0.15
	minMonthlyBudget  = 5000
	defaultHealth     = entity.HealthGood
	defaultFamily     = entity.FamilySingle
)

// BuildRequest packages the profile for POST /recommend.
// The budget is 15% of monthly income rounded half up, never below 5000.
func BuildRequest(p entity.UserProfile) entity.RecommendationRequest {
	req := entity.RecommendationRequest{
		Needs:  needsOrEmpty(p.Needs),
		Health: withDefault(p.Health, defaultHealth),
		Family: withDefault(p.Family, defaultFamily),
	}

	if age, ok := entity.ParseLeadingInt(p.Age); ok {
		req.Age = &age
	}
	if income, ok := entity.ParseLeadingInt(p.Income); ok {
		budget := max(entity.RoundHalfUp(float64(income)*budgetIncomeShare), minMonthlyBudget)
		req.Budget = &budget
	}

	return req
}

// BuildRiskRequest packages the profile for POST /risk-assessment using the raw income
func BuildRiskRequest(p entity.UserProfile) entity.RiskAssessmentRequest {
	req := entity.RiskAssessmentRequest{
		Health: withDefault(p.Health, defaultHealth),
		Family: withDefault(p.Family, defaultFamily),
	}

	if age, ok := entity.ParseLeadingInt(p.Age); ok {
		req.Age = &age
	}
	if income, ok := entity.ParseLeadingInt(p.Income); ok {
		req.Income = &income
	}

	return req
}

func needsOrEmpty(needs []string) []string {
	if needs == nil {
		return []string{}
	}
	return slices.Clone(needs)
}

func withDefault(v, def string) string {
	if v == "" {
		return def
	}
	return v
}
