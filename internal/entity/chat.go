package entity

type ChatRole string

const (
	ChatRoleUser ChatRole = "user"
	ChatRoleAI   ChatRole = "ai"
)

const (
	// ChatGreeting is shown above the transcript; it is not part of it
	ChatGreeting = "您好！我是您的專屬保險顧問。請告訴我您的需求，我會為您提供最適合的保險建議。"

	ChatReplyUnavailable = "抱歉，暫時無法回應"
	ChatReplyNetworkDown = "網路連線異常，請稍後再試"
)

// ExampleQuestions are offered as one-click chat submissions; views show the first three
var ExampleQuestions = []string{
	"我想為家人購買健康險，應該選擇哪種方案？",
	"30歲上班族適合什麼保險組合？",
	"如何規劃退休保險，需要考慮哪些因素？",
	"我月收入6萬元，應該如何分配保險與投資？",
	"如何建立緊急基金？需要儲蓄多少才夠？",
}

type ChatMessage struct {
	Type    ChatRole `json:"type"`
	Content string   `json:"content"`
}
