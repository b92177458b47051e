package storage

import "time"

// Notification is one delivery attempt recorded in the local activity
// log. Side and Crypto are empty for plain messages.
type Notification struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Kind   string `gorm:"not null;index" json:"kind"` // message or trade
	Side   string `json:"side,omitempty"`
	Crypto string `json:"crypto,omitempty"`
	Text   string `gorm:"type:text;not null" json:"text"`

	Status string `gorm:"not null;index" json:"status"` // sent or failed
	Error  string `json:"error,omitempty"`
}
