package keyboard

import (
	"strconv"

	"github.com/futig/insurance-advisor/internal/entity"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const needsPerRow = 2

// Builder creates inline keyboards
type Builder struct{}

// NewBuilder creates a keyboard builder
func NewBuilder() *Builder {
	return &Builder{}
}

// MainMenuKeyboard lists the actions available once a profile exists
func (b *Builder) MainMenuKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🔍 開始分析", EncodeCallback(ActionMenu, MenuAnalyze)),
			tgbotapi.NewInlineKeyboardButtonData("📝 填寫資料", EncodeCallback(ActionMenu, MenuProfile)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("⚠️ 風險評估", EncodeCallback(ActionMenu, MenuRisk)),
			tgbotapi.NewInlineKeyboardButtonData("💰 財務規劃", EncodeCallback(ActionMenu, MenuPlan)),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 下載報告", EncodeCallback(ActionMenu, MenuReport)),
		),
	)
}

// FamilyKeyboard offers the family options
func (b *Builder) FamilyKeyboard() tgbotapi.InlineKeyboardMarkup {
	return optionKeyboard(ActionFamily, entity.FamilyOptions)
}

// HealthKeyboard offers the health options
func (b *Builder) HealthKeyboard() tgbotapi.InlineKeyboardMarkup {
	return optionKeyboard(ActionHealth, entity.HealthOptions)
}

// NeedsKeyboard shows every need as a toggle, selected ones checked, plus a finish button
func (b *Builder) NeedsKeyboard(selected []string) tgbotapi.InlineKeyboardMarkup {
	p := entity.UserProfile{Needs: selected}

	var rows [][]tgbotapi.InlineKeyboardButton
	var row []tgbotapi.InlineKeyboardButton
	for _, need := range entity.NeedOptions {
		label := need
		if p.HasNeed(need) {
			label = "✅ " + need
		}
		row = append(row, tgbotapi.NewInlineKeyboardButtonData(label, EncodeCallback(ActionNeed, need)))
		if len(row) == needsPerRow {
			rows = append(rows, row)
			row = nil
		}
	}
	if len(row) > 0 {
		rows = append(rows, row)
	}

	rows = append(rows, tgbotapi.NewInlineKeyboardRow(
		tgbotapi.NewInlineKeyboardButtonData("完成", EncodeCallback(ActionNeed, NeedsDone)),
	))
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

// ReportKeyboard offers the report formats
func (b *Builder) ReportKeyboard() tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("📄 Markdown", EncodeCallback(ActionDownload, string(entity.ResultFormatMarkdown))),
			tgbotapi.NewInlineKeyboardButtonData("📕 PDF", EncodeCallback(ActionDownload, string(entity.ResultFormatPDF))),
			tgbotapi.NewInlineKeyboardButtonData("📘 Word", EncodeCallback(ActionDownload, string(entity.ResultFormatDOCX))),
		),
	)
}

// ExamplesKeyboard offers example questions as one-click chat turns
func (b *Builder) ExamplesKeyboard(examples []string) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(examples))
	for i, q := range examples {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(q, EncodeCallback(ActionAsk, strconv.Itoa(i))),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}

func optionKeyboard(action string, options []entity.Option) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(options))
	for _, o := range options {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(o.Label, EncodeCallback(action, o.Value)),
		))
	}
	return tgbotapi.InlineKeyboardMarkup{InlineKeyboard: rows}
}
