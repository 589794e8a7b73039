package postgres

import (
	"math/rand"
	"time"

	lobby_constants "Gamenight/constants/lobby"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

/*
 * 'Room' defines the structure of a Gamenight room. The 6-char code doubles
 * as the primary key and as the join code players type in.
 */
type Room struct {
	Code         string         `gorm:"primaryKey;size:6;not null"`
	HostName     string         `gorm:"size:50;not null;index:idx_rooms_host"`
	GameKey      string         `gorm:"size:30;not null"`
	MaxPlayers   int            `gorm:"default:8"`
	PasscodeHash string         `gorm:"size:255"` // empty means the room is open
	Settings     datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	CreatedAt    time.Time      `gorm:"default:CURRENT_TIMESTAMP"`

	// Relationship with players currently in the room
	Players []*RoomPlayer `gorm:"foreignKey:RoomCode;constraint:OnUpdate:CASCADE,OnDelete:CASCADE;"`
}

// Room codes only use uppercase letters and digits so they survive the
// client-side normalization (uppercase + strip) untouched.
const roomCodeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

func generateRoomCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = roomCodeCharset[rand.Intn(len(roomCodeCharset))]
	}
	return string(b)
}

// BeforeCreate assigns a fresh unique code. Collisions are unlikely but
// cheap to check, so loop until the code is free.
func (r *Room) BeforeCreate(tx *gorm.DB) (err error) {
	if r.Code != "" {
		return nil
	}
	for {
		newCode := generateRoomCode(lobby_constants.RoomCodeLength)
		var existing Room
		if err := tx.Where("code = ?", newCode).First(&existing).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				r.Code = newCode
				return nil
			}
			return err
		}
		// Taken, roll again
	}
}
