package models

import "time"

// ChatMessage is one turn of the AI chat. History is persisted client-side
// only.
type ChatMessage struct {
	Role    string    `json:"role"` // "user" or "assistant"
	Content string    `json:"content"`
	SentAt  time.Time `json:"sentAt"`
}
