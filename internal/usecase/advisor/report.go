package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/money"
	"github.com/grpc-ecosystem/go-grpc-middleware/logging/zap/ctxzap"
	"go.uber.org/zap"
)

const reportFileName = "insurance-report"

// Report is a rendered export of the session
type Report struct {
	Content     []byte
	ContentType string
	FileName    string
}

// Report renders the profile, recommendations, risk panels and plan in the requested format
func (uc *AdvisorUsecase) Report(ctx context.Context, sessionID string, format entity.ResultFormat) (*Report, error) {
	if !format.IsValid() {
		return nil, fmt.Errorf("report format %q: %w", format, entity.ErrUnsupportedFormat)
	}

	st := uc.store.Get(ctx, sessionID)
	text := RenderReport(st)

	f, err := uc.formatter.Create(format)
	if err != nil {
		return nil, fmt.Errorf("create formatter: %w", err)
	}

	content, err := f.Format(text)
	if err != nil {
		return nil, fmt.Errorf("format report: %w", err)
	}

	ctxzap.Info(ctx, "report generated",
		zap.String("session_id", sessionID),
		zap.String("format", string(format)),
		zap.Int("size", len(content)),
	)

	return &Report{
		Content:     content,
		ContentType: f.ContentType(),
		FileName:    reportFileName + f.FileExtension(),
	}, nil
}

// RenderReport writes the session as plain text with light markdown headings
func RenderReport(st entity.AppState) string {
	var b strings.Builder

	p := st.Profile
	b.WriteString("## 基本資料\n\n")
	fmt.Fprintf(&b, "年齡：%s\n", orDash(p.Age))
	fmt.Fprintf(&b, "月收入：%s\n", orDash(p.Income))
	fmt.Fprintf(&b, "家庭狀況：%s\n", orDash(entity.OptionLabel(entity.FamilyOptions, p.Family)))
	fmt.Fprintf(&b, "健康狀況：%s\n", orDash(entity.OptionLabel(entity.HealthOptions, p.Health)))
	fmt.Fprintf(&b, "保障需求：%s\n\n", orDash(strings.Join(p.Needs, "、")))

	b.WriteString("## 推薦保單\n\n")
	if len(st.Recommendations) == 0 {
		b.WriteString("尚無推薦結果\n\n")
	}
	for i, r := range st.Recommendations {
		fmt.Fprintf(&b, "%d. %s（%s）\n", i+1, r.Name, r.Company)
		fmt.Fprintf(&b, "   月繳保費：%s，評分：%.1f\n", money.NTD(r.MonthlyPremium), r.Rating)
		if r.HasScore {
			fmt.Fprintf(&b, "   推薦指數：%d%%\n", r.ScorePercent)
		}
		fmt.Fprintf(&b, "   保障特色：%s\n", strings.Join(r.Features, "、"))
		fmt.Fprintf(&b, "   適合對象：%s\n", strings.Join(r.SuitableFor, "、"))
	}
	if len(st.Recommendations) > 0 {
		b.WriteString("\n")
	}

	b.WriteString("## 風險評估\n\n")
	if !st.HasRisk() {
		b.WriteString("尚未進行風險評估\n\n")
	}
	for _, panel := range st.RiskPanels {
		fmt.Fprintf(&b, "%s：%s（%d 分）\n", panel.Title, panel.Label, panel.Score)
		if panel.Recommendation != "" {
			fmt.Fprintf(&b, "   建議：%s\n", panel.Recommendation)
		}
	}
	if len(st.RiskPanels) > 0 {
		b.WriteString("\n")
	}

	plan := entity.NewFinancialPlan(p, len(st.Recommendations))
	b.WriteString("## 財務規劃\n\n")
	fmt.Fprintf(&b, "緊急預備金：%s\n", money.NTD(plan.EmergencyFund))
	fmt.Fprintf(&b, "每月儲蓄：%s\n", money.NTD(plan.MonthlySaving))
	fmt.Fprintf(&b, "保險預算：%s（健康險 %s、意外險 %s、壽險 %s）\n",
		money.NTD(plan.InsuranceBudget),
		money.NTD(plan.HealthInsurance),
		money.NTD(plan.AccidentInsurance),
		money.NTD(plan.LifeInsurance),
	)
	fmt.Fprintf(&b, "投資配置：%s\n", money.NTD(plan.Investment))
	fmt.Fprintf(&b, "退休帳戶：%s／月，目標 %s\n", money.NTD(plan.RetirementMonthly), money.NTD(plan.RetirementTarget))
	fmt.Fprintf(&b, "財務健康總分：%d\n", plan.OverallScore)

	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
