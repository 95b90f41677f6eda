package entity

import "slices"

// ProfileField names a single editable attribute of UserProfile
type ProfileField string

const (
	FieldAge    ProfileField = "age"
	FieldIncome ProfileField = "income"
	FieldFamily ProfileField = "family"
	FieldHealth ProfileField = "health"
)

const (
	FamilySingle      = "single"
	FamilyMarried     = "married"
	FamilyMarriedKids = "married_kids"
)

const (
	HealthExcellent = "excellent"
	HealthGood      = "good"
	HealthFair      = "fair"
	HealthPoor      = "poor"
)

// Option is a selectable value with its display label
type Option struct {
	Value string
	Label string
}

var FamilyOptions = []Option{
	{Value: FamilySingle, Label: "單身"},
	{Value: FamilyMarried, Label: "已婚無子女"},
	{Value: FamilyMarriedKids, Label: "已婚有子女"},
}

var HealthOptions = []Option{
	{Value: HealthExcellent, Label: "非常健康"},
	{Value: HealthGood, Label: "健康良好"},
	{Value: HealthFair, Label: "一般"},
	{Value: HealthPoor, Label: "需要關注"},
}

// NeedOptions lists the needs offered by the profile form
var NeedOptions = []string{"健康保障", "退休規劃", "資產傳承", "意外保障", "投資理財", "子女教育"}

// UserProfile is the user-entered form state. Values are kept as entered.
type UserProfile struct {
	Age    string   `json:"age"`
	Income string   `json:"income"`
	Family string   `json:"family"`
	Health string   `json:"health"`
	Needs  []string `json:"needs"`
}

// WithField returns a copy of the profile with one attribute replaced.
// Unknown fields leave the profile unchanged.
func (p UserProfile) WithField(field ProfileField, value string) UserProfile {
	next := p.clone()
	switch field {
	case FieldAge:
		next.Age = value
	case FieldIncome:
		next.Income = value
	case FieldFamily:
		next.Family = value
	case FieldHealth:
		next.Health = value
	}
	return next
}

// ToggleNeed returns a copy with the tag added when absent or removed when present
func (p UserProfile) ToggleNeed(need string) UserProfile {
	next := p.clone()
	if i := slices.Index(next.Needs, need); i >= 0 {
		next.Needs = slices.Delete(next.Needs, i, i+1)
		return next
	}
	next.Needs = append(next.Needs, need)
	return next
}

// HasNeed reports whether the tag is selected
func (p UserProfile) HasNeed(need string) bool {
	return slices.Contains(p.Needs, need)
}

// IsComplete reports whether the fields required for analysis are filled in
func (p UserProfile) IsComplete() bool {
	return p.Age != "" && p.Income != ""
}

func (p UserProfile) clone() UserProfile {
	next := p
	next.Needs = slices.Clone(p.Needs)
	return next
}

// OptionLabel returns the label for value, or value itself when not listed
func OptionLabel(options []Option, value string) string {
	for _, o := range options {
		if o.Value == value {
			return o.Label
		}
	}
	return value
}
