package v1

import "github.com/futig/insurance-advisor/internal/entity"

type ChatRequest struct {
	Message string `json:"message"`
}

type ChatResponse struct {
	Reply      string               `json:"reply"`
	Transcript []entity.ChatMessage `json:"transcript"`
}

type PlanScoreDTO struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Score int    `json:"score"`
}

type PlanResponse struct {
	MonthlyIncome     int            `json:"monthly_income"`
	EmergencyFund     int            `json:"emergency_fund"`
	MonthlySaving     int            `json:"monthly_saving"`
	InsuranceBudget   int            `json:"insurance_budget"`
	HealthInsurance   int            `json:"health_insurance"`
	AccidentInsurance int            `json:"accident_insurance"`
	LifeInsurance     int            `json:"life_insurance"`
	Investment        int            `json:"investment"`
	RetirementMonthly int            `json:"retirement_monthly"`
	RetirementTarget  int            `json:"retirement_target"`
	Scores            []PlanScoreDTO `json:"scores"`
	OverallScore      int            `json:"overall_score"`
}

func toPlanResponse(p entity.FinancialPlan) *PlanResponse {
	scores := make([]PlanScoreDTO, 0, len(p.Scores))
	for _, s := range p.Scores {
		scores = append(scores, PlanScoreDTO{Key: s.Key, Title: s.Title, Score: s.Score})
	}
	return &PlanResponse{
		MonthlyIncome:     p.MonthlyIncome,
		EmergencyFund:     p.EmergencyFund,
		MonthlySaving:     p.MonthlySaving,
		InsuranceBudget:   p.InsuranceBudget,
		HealthInsurance:   p.HealthInsurance,
		AccidentInsurance: p.AccidentInsurance,
		LifeInsurance:     p.LifeInsurance,
		Investment:        p.Investment,
		RetirementMonthly: p.RetirementMonthly,
		RetirementTarget:  p.RetirementTarget,
		Scores:            scores,
		OverallScore:      p.OverallScore,
	}
}
