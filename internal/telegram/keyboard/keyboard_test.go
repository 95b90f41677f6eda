package keyboard

import (
	"strings"
	"testing"

	"github.com/futig/insurance-advisor/internal/entity"
)

func TestParseCallback(t *testing.T) {
	tests := []struct {
		data    string
		action  string
		value   string
		wantErr bool
	}{
		{"family:married_kids", ActionFamily, entity.FamilyMarriedKids, false},
		{"need:健康保障", ActionNeed, "健康保障", false},
		{"dl:pdf", ActionDownload, "pdf", false},
		{"action:", ActionMenu, "", false},
		{"ask:1:2", ActionAsk, "1:2", false},
		{"nocolon", "", "", true},
		{":value", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.data, func(t *testing.T) {
			got, err := ParseCallback(tt.data)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseCallback(%q) error = %v, wantErr %v", tt.data, err, tt.wantErr)
			}
			if err != nil {
				return
			}
			if got.Action != tt.action || got.Value != tt.value {
				t.Fatalf("ParseCallback(%q) = %+v", tt.data, got)
			}
		})
	}
}

func TestNeedsKeyboardMarksSelected(t *testing.T) {
	kb := NewBuilder().NeedsKeyboard([]string{"退休規劃"})

	var checked []string
	var last string
	for _, row := range kb.InlineKeyboard {
		for _, btn := range row {
			if strings.HasPrefix(btn.Text, "✅") {
				checked = append(checked, *btn.CallbackData)
			}
			last = *btn.CallbackData
		}
	}

	if len(checked) != 1 || checked[0] != "need:退休規劃" {
		t.Fatalf("unexpected checked buttons %v", checked)
	}
	if last != "need:"+NeedsDone {
		t.Fatalf("expected finish button last, got %s", last)
	}
}

func TestCallbackDataFitsTelegramLimit(t *testing.T) {
	for _, need := range entity.NeedOptions {
		if n := len(EncodeCallback(ActionNeed, need)); n > 64 {
			t.Fatalf("callback data for %s is %d bytes", need, n)
		}
	}
}
