package postgres

import (
	"time"
)

/*
 * 'RoomPlayer' represents a player's membership in a room. No accounts:
 * the (room, player name) pair is the whole identity.
 */
type RoomPlayer struct {
	RoomCode   string    `gorm:"primaryKey;size:6;not null"`
	PlayerName string    `gorm:"primaryKey;size:50;not null"`
	Icon       int       `gorm:"default:0"`
	JoinedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Room Room `gorm:"foreignKey:RoomCode;constraint:OnDelete:CASCADE"`
}
