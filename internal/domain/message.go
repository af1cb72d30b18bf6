package domain

import "time"

// ChatMessage is a persisted community chat message. Immutable once created.
type ChatMessage struct {
	MessageID      string    `json:"message_id"`
	CommunityID    string    `json:"community_id"`
	SenderID       string    `json:"sender_id"`
	SenderUsername string    `json:"sender_username"`
	Content        string    `json:"content"`
	CreatedAt      time.Time `json:"created_at"`
}

// ChatHistoryResponse is a page of prior messages, newest first.
type ChatHistoryResponse struct {
	Messages   []ChatMessage `json:"messages"`
	NextCursor string        `json:"next_cursor"`
	HasMore    bool          `json:"has_more"`
}
