package entity

// RecommendationRequest is the body of POST /recommend.
// Age and Budget are nil when the entered text has no numeric prefix and encode as null.
type RecommendationRequest struct {
	Age    *int     `json:"age"`
	Budget *int     `json:"budget"`
	Needs  []string `json:"needs"`
	Health string   `json:"health"`
	Family string   `json:"family"`
}

// RiskAssessmentRequest is the body of POST /risk-assessment. Income is the raw monthly income.
type RiskAssessmentRequest struct {
	Age    *int   `json:"age"`
	Income *int   `json:"income"`
	Health string `json:"health"`
	Family string `json:"family"`
}

// ChatRequest is the body of POST /chat
type ChatRequest struct {
	Message string `json:"message"`
}

// Envelope is the response shape shared by every backend endpoint
type Envelope[T any] struct {
	Success  bool   `json:"success"`
	Data     T      `json:"data,omitempty"`
	Response string `json:"response,omitempty"`
	Message  string `json:"message,omitempty"`
}
