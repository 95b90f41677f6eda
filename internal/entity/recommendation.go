package entity

import (
	"fmt"
	"math"
)

const (
	DefaultProductName    = "保險產品"
	DefaultCompanyName    = "保險公司"
	DefaultRating         = 4.0
	maxDisplayFeatures    = 3
	maxDisplaySuitableFor = 2
	maxStars              = 5
)

var (
	DefaultFeatures    = []string{"完整保障內容", "專業理賠服務"}
	DefaultSuitableFor = []string{"一般大眾"}
)

// Recommendation is a product record as returned by the backend.
// Its shape is not guaranteed, so it is kept as decoded JSON and read through Normalize.
type Recommendation map[string]any

// DisplayRecommendation is a fully populated card ready for rendering
type DisplayRecommendation struct {
	ID             string   `json:"id"`
	Name           string   `json:"name"`
	Company        string   `json:"company"`
	Type           string   `json:"type"`
	MonthlyPremium int      `json:"monthly_premium"`
	Rating         float64  `json:"rating"`
	Stars          int      `json:"stars"`
	Features       []string `json:"features"`
	SuitableFor    []string `json:"suitable_for"`
	HasScore       bool     `json:"has_score"`
	ScorePercent   int      `json:"score_percent"`
	Top            bool     `json:"top"`
}

// Normalize fills every display field, substituting defaults for missing or mistyped values
func Normalize(r Recommendation) DisplayRecommendation {
	d := DisplayRecommendation{
		ID:             stringValue(r["id"]),
		Name:           nonEmpty(stringValue(r["name"]), DefaultProductName),
		Company:        nonEmpty(stringValue(r["company"]), DefaultCompanyName),
		Type:           stringValue(r["type"]),
		MonthlyPremium: monthlyPremium(r),
		Rating:         DefaultRating,
		Features:       truncate(stringList(r["features"], DefaultFeatures), maxDisplayFeatures),
		SuitableFor:    truncate(stringList(r["suitable_for"], DefaultSuitableFor), maxDisplaySuitableFor),
	}

	if rating, ok := r["rating"].(float64); ok {
		d.Rating = rating
	}
	d.Stars = min(max(int(math.Floor(d.Rating)), 0), maxStars)

	if score, ok := r["recommendation_score"].(float64); ok {
		d.HasScore = true
		d.ScorePercent = int(math.Round(score * 100))
	}

	return d
}

// NormalizeAll normalizes a list and marks the first card as the top pick
func NormalizeAll(list []Recommendation) []DisplayRecommendation {
	out := make([]DisplayRecommendation, 0, len(list))
	for i, r := range list {
		d := Normalize(r)
		d.Top = i == 0
		out = append(out, d)
	}
	return out
}

// monthlyPremium reads premium.monthly.age_30, then monthly_premium, then a bare numeric premium
func monthlyPremium(r Recommendation) int {
	if premium, ok := r["premium"].(map[string]any); ok {
		if monthly, ok := premium["monthly"].(map[string]any); ok {
			if v, ok := monthly["age_30"].(float64); ok {
				return int(v)
			}
		}
	}
	if v, ok := r["monthly_premium"].(float64); ok {
		return int(v)
	}
	if v, ok := r["premium"].(float64); ok {
		return int(v)
	}
	return 0
}

func stringValue(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case float64:
		return fmt.Sprintf("%v", t)
	default:
		return ""
	}
}

func stringList(v any, fallback []string) []string {
	items, ok := v.([]any)
	if !ok {
		if strs, ok := v.([]string); ok && len(strs) > 0 {
			return strs
		}
		return fallback
	}

	out := make([]string, 0, len(items))
	for _, item := range items {
		if s, ok := item.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}

func truncate(list []string, n int) []string {
	if len(list) > n {
		list = list[:n]
	}
	out := make([]string, len(list))
	copy(out, list)
	return out
}

func nonEmpty(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}
