package handlers

import (
	"errors"
	"log"

	"Gamenight/middleware"
	models "Gamenight/models/postgres"
	"Gamenight/services/redis"
	socketio_types "Gamenight/services/socket_io/types"
	"Gamenight/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// VerifyUserConnection checks the session token the client sent in the
// socket.io handshake auth payload. Returns the identity the rest of the
// handlers trust.
func VerifyUserConnection(client *socket.Socket) (success bool, roomCode string, playerName string) {
	claims, err := sessionFromHandshake(client)
	if err != nil {
		log.Printf("[CONNECT-ERROR] handshake rejected: %v", err)
		client.Emit("error", gin.H{"error": "Authentication failed: invalid session token"})
		client.Disconnect(true)
		return false, "", ""
	}
	return true, claims.RoomCode, claims.PlayerName
}

func sessionFromHandshake(client *socket.Socket) (*middleware.SessionClaims, error) {
	authData, ok := client.Handshake().Auth.(map[string]interface{})
	if !ok {
		return nil, errors.New("auth data missing")
	}
	tokenString, exists := authData["token"].(string)
	if !exists {
		return nil, errors.New("token not found in auth data")
	}
	return middleware.ParseSessionToken(tokenString)
}

// Function to handle socket.io client disconnections: membership row and
// presence are cleaned up and the room is notified.
func HandleDisconnecting(roomCode string, playerName string, sio *socketio_types.SocketServer,
	db *gorm.DB, redisClient *redis.RedisClient) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[DISCONNECT] player %s leaving room %s", playerName, roomCode)

		client, exists := sio.GetConnection(playerName)

		if err := db.Where(
			"room_code = ? AND player_name = ?", roomCode, playerName,
		).Delete(&models.RoomPlayer{}).Error; err != nil {
			log.Printf("[DISCONNECT-ERROR] error removing membership: %v", err)
		}

		if redisClient != nil {
			if err := redisClient.DeletePlayerPresence(playerName); err != nil {
				log.Printf("[DISCONNECT-ERROR] error removing presence: %v", err)
			}
		}

		if exists {
			client.Leave(socket.Room(roomCode))
		}

		// Last member gone: forget the room's in-memory chat log and its
		// Redis history, otherwise both grow with every room ever opened.
		remaining, err := utils.CountPlayersInRoom(db, roomCode)
		if err != nil {
			log.Printf("[DISCONNECT-ERROR] error counting remaining players: %v", err)
		} else if remaining == 0 {
			sio.DropRoomChat(roomCode)
			if redisClient != nil {
				if err := redisClient.DeleteChatHistory(roomCode); err != nil {
					log.Printf("[DISCONNECT-ERROR] error deleting chat history: %v", err)
				}
			}
		}

		sio.Sio_server.To(socket.Room(roomCode)).Emit("player_left", gin.H{
			"player_name": playerName,
			"room_code":   roomCode,
			"reason":      "disconnected",
		})

		// Finally remove connection (and its invite manager) from the map
		sio.RemoveConnection(playerName)
		log.Printf("[DISCONNECT-DONE] player disconnected: %s", playerName)
	}
}
