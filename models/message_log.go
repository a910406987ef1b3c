package models

import (
	"time"
)

// MessageLog is one append-only row per accepted inbound message.
// BotResponse is empty and Type is ClassificationNotTriggered when the
// message did not trigger a reply. The application never reads these back.
type MessageLog struct {
	ID          string    `json:"id"           db:"id"`
	ContactName string    `json:"contact_name" db:"contact_name"`
	QueryText   string    `json:"query_text"   db:"query_text"`
	BotResponse string    `json:"bot_response" db:"bot_response"`
	RoomTopic   string    `json:"room_topic"   db:"room_topic"`
	Type        int       `json:"type"         db:"type"`
	CreatedAt   time.Time `json:"created_at"   db:"created_at"`
}
