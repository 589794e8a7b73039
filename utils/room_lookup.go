package utils

import (
	"context"

	models "Gamenight/models/postgres"
	"Gamenight/services/session"

	"gorm.io/gorm"
)

// DBRoomLookup is the server-side implementation of session.RoomLookup:
// the join controller runs the same RoomJoinCoordinator a client would,
// just with Postgres as the collaborator instead of the REST endpoint.
type DBRoomLookup struct {
	DB *gorm.DB
}

func NewDBRoomLookup(db *gorm.DB) *DBRoomLookup {
	return &DBRoomLookup{DB: db}
}

func (dl *DBRoomLookup) Lookup(ctx context.Context, roomCode string) (*session.RoomInfo, error) {
	var room models.Room
	err := dl.DB.WithContext(ctx).Where("code = ?", roomCode).First(&room).Error
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, &session.RoomNotFoundError{RoomCode: roomCode}
		}
		return nil, &session.TransportError{Cause: err}
	}

	return &session.RoomInfo{
		RoomCode:   room.Code,
		HostName:   room.HostName,
		GameKey:    room.GameKey,
		MaxPlayers: room.MaxPlayers,
	}, nil
}
