package amqp

import (
	"encoding/json"
	"time"

	"github.com/sg-217/paisabuddy/internal/core"
)

// CorrectionMessage carries one category correction to the learn
// worker: the original utterance text, the category the user says it
// belongs to, and optional extra keywords to seed the lexicon with.
type CorrectionMessage struct {
	UserID    string        `json:"user_id"`
	Text      string        `json:"text"`
	Category  core.Category `json:"category"`
	Keywords  []string      `json:"keywords,omitempty"`
	Timestamp time.Time     `json:"timestamp"`
}

// NewCorrectionMessage builds a correction message stamped with the
// current time.
func NewCorrectionMessage(userID, text string, category core.Category, keywords []string) *CorrectionMessage {
	return &CorrectionMessage{
		UserID:    userID,
		Text:      text,
		Category:  category,
		Keywords:  keywords,
		Timestamp: time.Now(),
	}
}

// ToJSON converts the message to JSON bytes
func (m *CorrectionMessage) ToJSON() ([]byte, error) {
	return json.Marshal(m)
}

// CorrectionMessageFromJSON creates a message from JSON bytes
func CorrectionMessageFromJSON(data []byte) (*CorrectionMessage, error) {
	var msg CorrectionMessage
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, err
	}
	return &msg, nil
}
