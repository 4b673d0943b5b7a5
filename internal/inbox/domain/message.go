package domain

import "time"

// Message is an anonymous note left in a user's inbox. Nothing about the
// sender is recorded.
type Message struct {
	ID        string
	UserID    string
	Content   string
	CreatedAt time.Time
}
