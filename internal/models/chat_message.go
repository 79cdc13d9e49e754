package models

import (
	"time"

	"github.com/google/uuid"
)

type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// ChatMessage is one entry of a session transcript.
type ChatMessage struct {
	ID        uuid.UUID `json:"id"`
	Text      string    `json:"text"`
	Sender    Sender    `json:"sender"`
	Timestamp string    `json:"timestamp"` // ISO-8601
}

func NewChatMessage(text string, sender Sender, at time.Time) ChatMessage {
	return ChatMessage{
		ID:        uuid.New(),
		Text:      text,
		Sender:    sender,
		Timestamp: at.UTC().Format(time.RFC3339),
	}
}
