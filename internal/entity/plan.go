package entity

import "math"

const (
	defaultPlanIncome      = 50000
	RetirementTarget       = 20000000
	emergencyFundMonths    = 6
	investmentScore        = 70
	retirementAgeThreshold = 30
)

// PlanScore is one named health indicator of a FinancialPlan
type PlanScore struct {
	Key   string
	Title string
	Score int
}

// FinancialPlan holds the budget splits shown on the planning panel
type FinancialPlan struct {
	MonthlyIncome     int
	EmergencyFund     int
	MonthlySaving     int
	InsuranceBudget   int
	HealthInsurance   int
	AccidentInsurance int
	LifeInsurance     int
	Investment        int
	RetirementMonthly int
	RetirementTarget  int
	Scores            []PlanScore
	OverallScore      int
}

// NewFinancialPlan derives the plan from the profile. An income without a numeric
// prefix falls back to 50,000 for the budget figures, while the emergency score
// only depends on whether an income was entered at all.
func NewFinancialPlan(p UserProfile, recommendationCount int) FinancialPlan {
	income, ok := ParseLeadingInt(p.Income)
	if !ok {
		income = defaultPlanIncome
	}
	age, hasAge := ParseLeadingInt(p.Age)

	f := float64(income)
	plan := FinancialPlan{
		MonthlyIncome:     income,
		EmergencyFund:     RoundHalfUp(f * emergencyFundMonths),
		MonthlySaving:     RoundHalfUp(f * 0.2),
		InsuranceBudget:   RoundHalfUp(f * 0.15),
		HealthInsurance:   RoundHalfUp(f * 0.09),
		AccidentInsurance: RoundHalfUp(f * 0.03),
		LifeInsurance:     RoundHalfUp(f * 0.03),
		Investment:        RoundHalfUp(f * 0.25),
		RetirementMonthly: RoundHalfUp(f * 0.1),
		RetirementTarget:  RetirementTarget,
	}

	emergency := 50
	if p.Income != "" {
		emergency = 75
	}
	insurance := 60
	if recommendationCount > 0 {
		insurance = 85
	}
	retirement := 45
	if hasAge && age > retirementAgeThreshold {
		retirement = 65
	}

	plan.Scores = []PlanScore{
		{Key: "emergency", Title: "緊急基金", Score: emergency},
		{Key: "insurance", Title: "保險保障", Score: insurance},
		{Key: "investment", Title: "投資理財", Score: investmentScore},
		{Key: "retirement", Title: "退休準備", Score: retirement},
	}

	sum := 0
	for _, s := range plan.Scores {
		sum += s.Score
	}
	plan.OverallScore = RoundHalfUp(float64(sum) / float64(len(plan.Scores)))

	return plan
}

// RoundHalfUp rounds to the nearest integer with halves going towards +Inf,
// saturating at the bounds of int
func RoundHalfUp(x float64) int {
	r := math.Floor(x + 0.5)
	switch {
	case r >= math.MaxInt:
		return math.MaxInt
	case r <= math.MinInt:
		return math.MinInt
	}
	return int(r)
}

// ParseLeadingInt parses the optional sign and leading decimal digits of s after
// skipping leading whitespace, ignoring any trailing text. ok is false when no digit is found.
// Values beyond the range of int saturate at math.MaxInt or math.MinInt.
func ParseLeadingInt(s string) (n int, ok bool) {
	i := 0
	for i < len(s) && isSpace(s[i]) {
		i++
	}

	neg := false
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		neg = s[i] == '-'
		i++
	}

	start := i
	saturated := false
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		d := int(s[i] - '0')
		if n > (math.MaxInt-d)/10 {
			saturated = true
		} else if !saturated {
			n = n*10 + d
		}
		i++
	}
	if i == start {
		return 0, false
	}

	if saturated {
		if neg {
			return math.MinInt, true
		}
		return math.MaxInt, true
	}
	if neg {
		n = -n
	}
	return n, true
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f', '\v':
		return true
	}
	return false
}
