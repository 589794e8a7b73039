package handlers

import (
	"log"
	"time"

	redis_models "Gamenight/models/redis"
	"Gamenight/services/redis"
	"Gamenight/services/session"
	socketio_types "Gamenight/services/socket_io/types"
	"Gamenight/utils"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/socket.io/v2/socket"
	"gorm.io/gorm"
)

// Function to handle the act of entering a room's realtime channel. The
// session token already pins the player to one room, so the handler only
// checks the membership row exists (the REST join created it), joins the
// socket room, marks presence and replays the chat history.
func HandleJoinRoom(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, roomCode string, playerName string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		log.Printf("[JOIN] HandleJoinRoom - player: %s, room: %s, socket: %s",
			playerName, roomCode, client.Id())

		isInRoom, err := utils.IsPlayerInRoom(db, roomCode, playerName)
		if err != nil {
			log.Println("Database error:", err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}
		if !isInRoom {
			client.Emit("error", gin.H{"error": "You must join the room before connecting"})
			return
		}

		client.Join(socket.Room(roomCode))

		if err := redisClient.SavePlayerPresence(&redis_models.PlayerPresence{
			PlayerName: playerName,
			RoomCode:   roomCode,
			Status:     redis_models.StatusInRoom,
			LastPing:   time.Now().Unix(),
			SocketID:   string(client.Id()),
		}); err != nil {
			log.Printf("[JOIN-WARN] could not save presence: %v", err)
		}

		// Replay history so a reconnecting client sees what it missed.
		// Ownership is not sent; each client classifies against its own
		// session identity.
		history, err := redisClient.GetChatHistory(roomCode)
		if err != nil {
			log.Printf("[JOIN-WARN] could not load chat history: %v", err)
			history = nil
		}

		client.Emit("joined_room", gin.H{
			"room_code":    roomCode,
			"chat_history": history,
		})

		sio.Sio_server.To(socket.Room(roomCode)).Emit("player_joined", gin.H{
			"room_code":   roomCode,
			"player_name": playerName,
			"icon":        utils.PlayerIcon(db, roomCode, playerName),
		})

		log.Printf("[JOIN-SUCCESS] player %s entered room %s", playerName, roomCode)
	}
}

// Function to broadcast a chat message to all clients in the sender's room.
// The message runs through the room's ChatSessionState (trim, length cap,
// id assignment, dedup, drop-oldest log) before it is persisted and
// broadcast.
func HandleRoomMessage(redisClient *redis.RedisClient, client *socket.Socket,
	db *gorm.DB, roomCode string, playerName string, sio *socketio_types.SocketServer) func(args ...interface{}) {
	return func(args ...interface{}) {
		if len(args) < 1 {
			client.Emit("error", gin.H{"error": "Missing message text"})
			return
		}
		rawText, ok := args[0].(string)
		if !ok {
			client.Emit("error", gin.H{"error": "Message must be a string"})
			return
		}

		isInRoom, err := utils.IsPlayerInRoom(db, roomCode, playerName)
		if err != nil {
			log.Println("Database error:", err)
			client.Emit("error", gin.H{"error": "Database error"})
			return
		}
		if !isInRoom {
			client.Emit("error", gin.H{"error": "You must join the room before sending messages"})
			return
		}

		identity := session.SessionIdentity{RoomCode: roomCode, PlayerName: playerName}

		var stored session.ChatMessage
		var prepErr error
		sio.WithRoomChat(roomCode, func(chat *session.ChatSessionState) {
			outgoing, err := chat.PrepareOutgoing(rawText, identity)
			if err != nil {
				prepErr = err
				return
			}
			stored = chat.Append(outgoing)
		})
		if prepErr != nil {
			client.Emit("error", gin.H{"error": prepErr.Error()})
			return
		}

		if err := redisClient.SaveChatMessage(&redis_models.ChatMessage{
			ID:         stored.ID,
			RoomCode:   roomCode,
			PlayerName: stored.PlayerName,
			Message:    stored.Message,
			Type:       stored.Type,
			SentAt:     stored.SentAt,
		}); err != nil {
			log.Printf("[CHAT-WARN] could not persist message %s: %v", stored.ID, err)
		}

		// No is_own_message on the wire: receivers classify by name, the
		// sender's UI already knows.
		sio.Sio_server.To(socket.Room(roomCode)).Emit("new_room_message", gin.H{
			"id":          stored.ID,
			"room_code":   roomCode,
			"player_name": stored.PlayerName,
			"message":     stored.Message,
			"type":        stored.Type,
			"sent_at":     stored.SentAt,
		})
	}
}
