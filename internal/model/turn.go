package model

import "time"

// Author identifies who wrote a conversation turn.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Turn is one message in an append-only chat session.
type Turn struct {
	ID        string    `json:"id"`
	SessionID string    `json:"session_id"`
	Author    Author    `json:"author"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"created_at"`
}
