package redis

import "time"

// ChatMessage is the wire/storage form of a room chat message. The id is
// assigned once by the sender's session core and kept stable across
// redelivery so receivers can deduplicate.
type ChatMessage struct {
	ID         string    `json:"id"`
	RoomCode   string    `json:"room_code"`
	PlayerName string    `json:"player_name"`
	Message    string    `json:"message"`
	Type       string    `json:"type"` // "user" or "system"
	SentAt     time.Time `json:"sent_at"`
}
