package controllers

import (
	"errors"
	"log"
	"net/http"

	"Gamenight/middleware"
	models "Gamenight/models/postgres"
	"Gamenight/services/catalog"
	"Gamenight/services/redis"
	redis_utils "Gamenight/services/redis/utils"
	"Gamenight/services/session"
	"Gamenight/utils"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type CreateRoomRequest struct {
	HostName   string `json:"host_name" binding:"required"`
	GameKey    string `json:"game_key" binding:"required"`
	Passcode   string `json:"passcode"`
	MaxPlayers int    `json:"max_players"`
}

type JoinRoomRequest struct {
	PlayerName string `json:"player_name"`
	Passcode   string `json:"passcode"`
	Icon       int    `json:"icon"`
}

// @Summary Creates a new room
// @Description Creates a room for the given game, inserts the host as its first player and returns the room code plus the host's session token
// @Tags rooms
// @Accept json
// @Produce json
// @Param request body controllers.CreateRoomRequest true "Room settings"
// @Success 200 {object} object{room_code=string,token=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/rooms [post]
func CreateRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CreateRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "host_name and game_key are required"})
			return
		}

		hostName, err := session.ValidatePlayerName(req.HostName)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		game, err := catalog.Lookup(req.GameKey)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown game"})
			return
		}

		// Clamp to what the game supports
		maxPlayers := req.MaxPlayers
		if maxPlayers <= 0 || maxPlayers > game.MaxPlayers {
			maxPlayers = game.MaxPlayers
		}

		newRoom := models.Room{
			HostName:   hostName,
			GameKey:    game.Key,
			MaxPlayers: maxPlayers,
		}

		if req.Passcode != "" {
			hash, err := bcrypt.GenerateFromPassword([]byte(req.Passcode), bcrypt.DefaultCost)
			if err != nil {
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
				return
			}
			newRoom.PasscodeHash = string(hash)
		}

		if err := db.Create(&newRoom).Error; err != nil {
			log.Println("Failed to create room:", err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error creating room"})
			return
		}

		// The host is a member from the start
		hostPlayer := models.RoomPlayer{
			RoomCode:   newRoom.Code,
			PlayerName: hostName,
		}
		if err := db.Create(&hostPlayer).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding host to room"})
			return
		}

		token, err := middleware.SignSessionToken(newRoom.Code, hostName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing session token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{"room_code": newRoom.Code, "token": token})
	}
}

// @Summary Gives info of a room
// @Description The room-lookup endpoint: given a room code, returns its canonical form and public metadata. This is what clients resolve a typed code against before joining.
// @Tags rooms
// @Produce json
// @Param room_code path string true "Code of the room wanted"
// @Success 200 {object} object{room_code=string,host_name=string,game_key=string,max_players=integer,player_count=integer,has_passcode=boolean}
// @Failure 404 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/rooms/{room_code} [get]
func GetRoomInfo(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		roomCode := session.NormalizeRoomCode(c.Param("room_code"))

		var room models.Room
		result := db.Where("code = ?", roomCode).First(&room)
		if result.Error != nil {
			if result.Error == gorm.ErrRecordNotFound {
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			} else {
				c.JSON(http.StatusInternalServerError, gin.H{"error": result.Error.Error()})
			}
			return
		}

		playerCount, err := utils.CountPlayersInRoom(db, room.Code)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error counting players"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"room_code":    room.Code,
			"host_name":    room.HostName,
			"game_key":     room.GameKey,
			"max_players":  room.MaxPlayers,
			"player_count": playerCount,
			"has_passcode": room.PasscodeHash != "",
			"created_at":   room.CreatedAt,
		})
	}
}

// @Summary Inserts a player into a room
// @Description Runs the join flow (normalize, validate, lookup), checks passcode and capacity, adds the player and returns a session token
// @Tags rooms
// @Accept json
// @Produce json
// @Param room_code path string true "room_code"
// @Param request body controllers.JoinRoomRequest true "Player info"
// @Success 200 {object} object{token=string,room_code=string,player_name=string}
// @Failure 400 {object} object{error=string}
// @Failure 401 {object} object{error=string}
// @Failure 404 {object} object{error=string}
// @Failure 409 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/rooms/{room_code}/join [post]
func JoinRoom(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req JoinRoomRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "player_name is required"})
			return
		}

		// Same coordinator a client embeds, backed by Postgres instead of
		// the REST endpoint.
		coordinator := session.NewRoomJoinCoordinator(utils.NewDBRoomLookup(db))
		identity, err := coordinator.Join(c.Request.Context(), c.Param("room_code"), req.PlayerName)
		if err != nil {
			var validationErr *session.ValidationError
			var notFoundErr *session.RoomNotFoundError
			switch {
			case errors.As(err, &validationErr):
				c.JSON(http.StatusBadRequest, gin.H{"error": validationErr.Error()})
			case errors.As(err, &notFoundErr):
				c.JSON(http.StatusNotFound, gin.H{"error": "Room not found"})
			default:
				log.Println("[JOIN] room lookup failed:", err)
				c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining room, try again"})
			}
			return
		}

		var room models.Room
		if err := db.Where("code = ?", identity.RoomCode).First(&room).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining room, try again"})
			return
		}

		if room.PasscodeHash != "" {
			if bcrypt.CompareHashAndPassword([]byte(room.PasscodeHash), []byte(req.Passcode)) != nil {
				c.JSON(http.StatusUnauthorized, gin.H{"error": "Wrong passcode"})
				return
			}
		}

		// Check if the player is already in the room
		isInRoom, err := utils.IsPlayerInRoom(db, identity.RoomCode, identity.PlayerName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining room, try again"})
			return
		}
		if isInRoom {
			c.JSON(http.StatusConflict, gin.H{"error": "That name is already taken in this room"})
			return
		}

		playerCount, err := utils.CountPlayersInRoom(db, identity.RoomCode)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error joining room, try again"})
			return
		}
		if playerCount >= int64(room.MaxPlayers) {
			c.JSON(http.StatusConflict, gin.H{"error": "Room is full"})
			return
		}

		player := models.RoomPlayer{
			RoomCode:   identity.RoomCode,
			PlayerName: identity.PlayerName,
			Icon:       req.Icon,
		}
		if err := db.Create(&player).Error; err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error adding player to room"})
			return
		}

		token, err := middleware.SignSessionToken(identity.RoomCode, identity.PlayerName)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error signing session token"})
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"token":       token,
			"room_code":   identity.RoomCode,
			"player_name": identity.PlayerName,
		})
	}
}

// @Summary Removes the player from their room
// @Description Deletes the session's player from the room membership
// @Tags rooms
// @Produce json
// @Param Authorization header string true "Bearer session token"
// @Success 200 {object} object{message=string}
// @Failure 400 {object} object{error=string}
// @Failure 500 {object} object{error=string}
// @Router /api/session/exit [post]
// @Security ApiKeyAuth
func ExitRoom(db *gorm.DB, redisClient *redis.RedisClient) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := middleware.SessionFromContext(c)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}

		var player models.RoomPlayer
		result := db.Where(
			"room_code = ? AND player_name = ?",
			claims.RoomCode, claims.PlayerName,
		).First(&player)

		if result.RowsAffected == 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Player is not in that room"})
			return
		}

		result = db.Delete(&player)
		if result.Error != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Error removing player from room"})
			return
		}

		// Best-effort volatile cleanup: always the player's presence key,
		// plus the chat history once the room is empty.
		keys := []string{redis_utils.FormatPresenceKey(claims.PlayerName)}
		if remaining, err := utils.CountPlayersInRoom(db, claims.RoomCode); err == nil && remaining == 0 {
			keys = append(keys, redis_utils.FormatChatHistoryKey(claims.RoomCode))
		}
		if redisClient != nil {
			if err := redisClient.CleanupKeys(keys); err != nil {
				log.Println("[EXIT] redis cleanup failed:", err)
			}
		}

		c.JSON(http.StatusOK, gin.H{"message": "Exited room successfully"})
	}
}
