package render

import (
	"fmt"
	"strings"

	"github.com/futig/insurance-advisor/internal/entity"
	"github.com/futig/insurance-advisor/internal/pkg/money"
)

const (
	MsgWelcome = `👋 您好！我是您的 AI 保險顧問。

我可以：
• 依照您的年齡、收入與需求推薦保單
• 評估健康、財務與家庭風險
• 提供財務規劃建議
• 回答任何保險相關問題

輸入 /profile 開始填寫基本資料，或直接輸入問題與我對話。`

	MsgHelp = `🤖 指令說明

/start - 開始使用
/profile - 填寫基本資料
/analyze - 分析並推薦保單
/risk - 查看風險評估
/plan - 查看財務規劃
/report - 下載規劃報告
/reset - 清除所有資料
/help - 顯示此說明

其他文字訊息會直接送給智能問答。`

	MsgAskAge       = "📝 請輸入您的年齡："
	MsgAskIncome    = "💵 請輸入您的月收入（新台幣）："
	MsgAskFamily    = "👨‍👩‍👧 請選擇您的家庭狀況："
	MsgAskHealth    = "🩺 請選擇您的健康狀況："
	MsgAskNeeds     = "🎯 請選擇您的保障需求（可複選），選好後按「完成」："
	MsgUseKeyboard  = "請使用上方按鈕選擇。"
	MsgAnalyzing    = "🔍 分析中，請稍候..."
	MsgChooseFormat = "📄 請選擇報告格式："
	MsgReset        = "🗑 已清除所有資料，輸入 /profile 重新開始。"
	MsgNoRisk       = "尚未進行風險評估，輸入 /analyze 立即開始評估。"
	MsgNoResults    = "目前沒有推薦結果，請先完成基本資料並輸入 /analyze。"
	MsgExamples     = "💡 您可以試著問："

	ErrGeneric         = "❌ 發生錯誤，請稍後再試或輸入 /start"
	ErrTimeout         = "⏱ 處理逾時，請稍後再試"
	ErrNetworkIssue    = "🌐 網路連線異常，請稍後再試"
	ErrUnknownCommand  = "❌ 未知的指令，輸入 /help 查看說明"
	ErrInvalidCallback = "❌ 無效的操作"
	ErrRateLimited     = "⚠️ 請求過於頻繁，請稍候再試。"
	ErrRateLimitedLong = "🛑 您的請求過於頻繁，請等待一分鐘後再試。"
)

// FormatProfile summarizes the entered profile
func FormatProfile(p entity.UserProfile) string {
	var b strings.Builder
	b.WriteString("📋 您的基本資料\n\n")
	fmt.Fprintf(&b, "年齡：%s\n", orDash(p.Age))
	fmt.Fprintf(&b, "月收入：%s\n", orDash(p.Income))
	fmt.Fprintf(&b, "家庭狀況：%s\n", orDash(entity.OptionLabel(entity.FamilyOptions, p.Family)))
	fmt.Fprintf(&b, "健康狀況：%s\n", orDash(entity.OptionLabel(entity.HealthOptions, p.Health)))
	fmt.Fprintf(&b, "保障需求：%s", orDash(strings.Join(p.Needs, "、")))
	return b.String()
}

// FormatAnalysis renders the outcome of an analysis, including its alert and banner
func FormatAnalysis(st entity.AppState) string {
	var b strings.Builder
	if st.Banner != "" {
		fmt.Fprintf(&b, "🚫 %s\n\n", st.Banner)
	}
	if st.Alert != "" {
		fmt.Fprintf(&b, "⚠️ %s\n\n", st.Alert)
	}
	if len(st.Recommendations) > 0 {
		b.WriteString(FormatRecommendations(st.Recommendations))
	}
	return strings.TrimSpace(b.String())
}

// FormatRecommendations renders recommendation cards as text
func FormatRecommendations(recs []entity.DisplayRecommendation) string {
	if len(recs) == 0 {
		return MsgNoResults
	}

	var b strings.Builder
	b.WriteString("🏆 推薦保單\n")
	for i, r := range recs {
		b.WriteString("\n")
		if r.Top {
			b.WriteString("⭐ 最推薦\n")
		}
		fmt.Fprintf(&b, "%d. %s\n", i+1, r.Name)
		fmt.Fprintf(&b, "%s｜%s / 月\n", r.Company, money.NTD(r.MonthlyPremium))
		fmt.Fprintf(&b, "評分 %s %.1f\n", stars(r.Stars), r.Rating)
		if r.HasScore {
			fmt.Fprintf(&b, "推薦指數 %d%%\n", r.ScorePercent)
		}
		fmt.Fprintf(&b, "保障特色：%s\n", strings.Join(r.Features, "、"))
		fmt.Fprintf(&b, "適合對象：%s\n", strings.Join(r.SuitableFor, "、"))
	}
	return strings.TrimSpace(b.String())
}

// FormatRisk renders the risk panels, or the empty state
func FormatRisk(panels []entity.RiskPanel) string {
	if len(panels) == 0 {
		return MsgNoRisk
	}

	var b strings.Builder
	b.WriteString("⚠️ 風險評估\n")
	for _, p := range panels {
		fmt.Fprintf(&b, "\n%s %s：%s（%d 分）\n", levelIcon(p.Level), p.Title, p.Label, p.Score)
		fmt.Fprintf(&b, "%s\n", bar(p.BarWidth))
		if p.Recommendation != "" {
			fmt.Fprintf(&b, "建議：%s\n", p.Recommendation)
		}
	}
	return strings.TrimSpace(b.String())
}

// FormatPlan renders the financial plan
func FormatPlan(plan entity.FinancialPlan) string {
	var b strings.Builder
	b.WriteString("💰 財務規劃\n\n")
	fmt.Fprintf(&b, "緊急預備金：%s\n", money.NTD(plan.EmergencyFund))
	fmt.Fprintf(&b, "每月儲蓄：%s\n", money.NTD(plan.MonthlySaving))
	fmt.Fprintf(&b, "保險預算：%s / 月\n", money.NTD(plan.InsuranceBudget))
	fmt.Fprintf(&b, "  健康險 %s｜意外險 %s｜壽險 %s\n",
		money.NTD(plan.HealthInsurance),
		money.NTD(plan.AccidentInsurance),
		money.NTD(plan.LifeInsurance),
	)
	fmt.Fprintf(&b, "投資配置：%s / 月\n", money.NTD(plan.Investment))
	fmt.Fprintf(&b, "退休帳戶：%s / 月，目標 %s\n\n", money.NTD(plan.RetirementMonthly), money.NTD(plan.RetirementTarget))
	fmt.Fprintf(&b, "財務健康度：%d\n", plan.OverallScore)
	for _, s := range plan.Scores {
		fmt.Fprintf(&b, "• %s %d\n", s.Title, s.Score)
	}
	return strings.TrimSpace(b.String())
}

func levelIcon(level entity.RiskLevel) string {
	switch level {
	case entity.RiskHigh:
		return "🔴"
	case entity.RiskMedium:
		return "🟡"
	case entity.RiskLow:
		return "🟢"
	default:
		return "⚪"
	}
}

// bar draws a ten cell progress bar for a 0-100 width
func bar(width int) string {
	filled := min(max(width, 0), 100) / 10
	return strings.Repeat("█", filled) + strings.Repeat("░", 10-filled)
}

func stars(n int) string {
	n = min(max(n, 0), 5)
	return strings.Repeat("★", n) + strings.Repeat("☆", 5-n)
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
