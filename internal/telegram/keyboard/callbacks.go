package keyboard

import (
	"fmt"
	"strings"
)

// Callback actions
const (
	ActionMenu     = "action"
	ActionFamily   = "family"
	ActionHealth   = "health"
	ActionNeed     = "need"
	ActionDownload = "dl"
	ActionAsk      = "ask"
)

// Menu values of ActionMenu
const (
	MenuProfile = "profile"
	MenuAnalyze = "analyze"
	MenuRisk    = "risk"
	MenuPlan    = "plan"
	MenuReport  = "report"
	MenuReset   = "reset"
)

// NeedsDone finishes the needs step
const NeedsDone = "done"

// CallbackData represents parsed callback data
type CallbackData struct {
	Action string
	Value  string
}

// ParseCallback parses "action:value" callback data. The value may itself contain colons.
func ParseCallback(data string) (*CallbackData, error) {
	action, value, ok := strings.Cut(data, ":")
	if !ok || action == "" {
		return nil, fmt.Errorf("invalid callback format: %q", data)
	}

	return &CallbackData{
		Action: action,
		Value:  value,
	}, nil
}

// EncodeCallback creates callback data string
func EncodeCallback(action, value string) string {
	return action + ":" + value
}
