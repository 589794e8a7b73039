package utils

import (
	"fmt"

	models "Gamenight/models/postgres"

	"gorm.io/gorm"
)

// Function to check if a room exists
func CheckRoomExists(db *gorm.DB, roomCode string) (*models.Room, error) {
	var room models.Room
	result := db.Where("code = ?", roomCode).First(&room)

	if result.Error != nil {
		if result.Error == gorm.ErrRecordNotFound {
			return nil, fmt.Errorf("room not found")
		}
		return nil, result.Error
	}

	return &room, nil
}

func IsPlayerInRoom(db *gorm.DB, roomCode string, playerName string) (bool, error) {
	var count int64
	err := db.Model(&models.RoomPlayer{}).
		Where("room_code = ? AND player_name = ?", roomCode, playerName).
		Count(&count).Error

	if err != nil {
		return false, err
	}

	return count > 0, nil
}

// CountPlayersInRoom returns the current membership size, used to enforce
// the room's max player cap on join.
func CountPlayersInRoom(db *gorm.DB, roomCode string) (int64, error) {
	var count int64
	err := db.Model(&models.RoomPlayer{}).
		Where("room_code = ?", roomCode).
		Count(&count).Error
	return count, err
}

// Returns the icon of the player, defaulting to 1 when unknown
func PlayerIcon(db *gorm.DB, roomCode string, playerName string) int {
	var icon int
	err := db.Model(&models.RoomPlayer{}).
		Select("icon").
		Where("room_code = ? AND player_name = ?", roomCode, playerName).
		Find(&icon).Error
	if err != nil {
		return 1
	}

	return icon
}
