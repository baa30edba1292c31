package domain

import "time"

// JournalEntry is a user's free-text reflection for one calendar day.
// At most one entry exists per user per date key; saving again replaces
// the content.
type JournalEntry struct {
	UserID    string    `json:"user_id"`
	Date      string    `json:"date"`
	Content   string    `json:"content"`
	UpdatedAt time.Time `json:"updated_at"`
}
