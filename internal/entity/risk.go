package entity

import (
	"math"
	"slices"
	"sort"
)

type RiskLevel string

const (
	RiskHigh    RiskLevel = "high"
	RiskMedium  RiskLevel = "medium"
	RiskLow     RiskLevel = "low"
	RiskUnknown RiskLevel = "unknown"
)

const (
	RiskCategoryHealth    = "health"
	RiskCategoryFinancial = "financial"
	RiskCategoryFamily    = "family"
)

var riskCategoryOrder = []string{RiskCategoryHealth, RiskCategoryFinancial, RiskCategoryFamily}

var riskCategoryTitles = map[string]string{
	RiskCategoryHealth:    "健康風險",
	RiskCategoryFinancial: "財務風險",
	RiskCategoryFamily:    "家庭風險",
}

// RiskAssessment maps a risk category to its {level, score, recommendation} entry as decoded JSON
type RiskAssessment map[string]any

// RiskEntry is one category of a locally produced assessment
type RiskEntry struct {
	Level          RiskLevel `json:"level"`
	Score          int       `json:"score"`
	Recommendation string    `json:"recommendation"`
}

// RiskPanel is a display-ready risk category
type RiskPanel struct {
	Key            string    `json:"key"`
	Title          string    `json:"title"`
	Level          RiskLevel `json:"level"`
	Label          string    `json:"label"`
	Color          string    `json:"color"`
	Score          int       `json:"score"`
	BarWidth       int       `json:"bar_width"`
	Recommendation string    `json:"recommendation"`
}

// Label returns the Chinese severity text; anything unrecognized is 未評估
func (l RiskLevel) Label() string {
	switch l {
	case RiskHigh:
		return "高風險"
	case RiskMedium:
		return "中等風險"
	case RiskLow:
		return "低風險"
	default:
		return "未評估"
	}
}

// Color returns the severity color name used by views
func (l RiskLevel) Color() string {
	switch l {
	case RiskHigh:
		return "red"
	case RiskMedium:
		return "yellow"
	case RiskLow:
		return "green"
	default:
		return "gray"
	}
}

// Panels converts the mapping into ordered panels. Known categories come first in
// health, financial, family order; entries that are not objects are skipped.
func (a RiskAssessment) Panels() []RiskPanel {
	if len(a) == 0 {
		return nil
	}

	keys := make([]string, 0, len(a))
	for _, k := range riskCategoryOrder {
		if _, ok := a[k]; ok {
			keys = append(keys, k)
		}
	}
	var extra []string
	for k := range a {
		if k != "" && !slices.Contains(riskCategoryOrder, k) {
			extra = append(extra, k)
		}
	}
	sort.Strings(extra)
	keys = append(keys, extra...)

	panels := make([]RiskPanel, 0, len(keys))
	for _, k := range keys {
		entry, ok := a[k].(map[string]any)
		if !ok {
			continue
		}
		panels = append(panels, newRiskPanel(k, entry))
	}
	return panels
}

func newRiskPanel(key string, entry map[string]any) RiskPanel {
	level, _ := entry["level"].(string)
	lvl := RiskLevel(level)

	score := 0
	if v, ok := entry["score"].(float64); ok {
		score = int(math.Round(v))
	}

	title := riskCategoryTitles[key]
	if title == "" {
		title = key
	}

	recommendation, _ := entry["recommendation"].(string)

	return RiskPanel{
		Key:            key,
		Title:          title,
		Level:          lvl,
		Label:          lvl.Label(),
		Color:          lvl.Color(),
		Score:          score,
		BarWidth:       min(max(score, 0), 100),
		Recommendation: recommendation,
	}
}

// NewRiskAssessment builds the decoded mapping shape from typed entries
func NewRiskAssessment(entries map[string]RiskEntry) RiskAssessment {
	out := make(RiskAssessment, len(entries))
	for k, e := range entries {
		out[k] = map[string]any{
			"level":          string(e.Level),
			"score":          float64(e.Score),
			"recommendation": e.Recommendation,
		}
	}
	return out
}
