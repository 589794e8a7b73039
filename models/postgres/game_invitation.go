package postgres

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

/*
 * 'GameInvitation' is the persistent inbox copy of a game invite, so a
 * player who was offline when it was sent still sees it. The live delivery
 * and its lifecycle run through services/session.InviteLifecycleManager.
 */
type GameInvitation struct {
	ID          string    `gorm:"primaryKey;size:36;not null"`
	RoomCode    string    `gorm:"size:6;not null;index:idx_game_invitations_room"`
	HostName    string    `gorm:"size:50;not null"`
	InvitedName string    `gorm:"size:50;not null;index:idx_game_invitations_invited"`
	GameKey     string    `gorm:"size:30;not null"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationships
	Room Room `gorm:"foreignKey:RoomCode;constraint:OnDelete:CASCADE"`
}

func (gi *GameInvitation) BeforeCreate(tx *gorm.DB) (err error) {
	if gi.ID == "" {
		gi.ID = uuid.NewString()
	}
	return nil
}
