package routes

import (
	"Gamenight/controllers"
	"Gamenight/middleware"
	"Gamenight/services/redis"
	utils "Gamenight/utils"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

// SetupRoutes configures all API routes
func SetupRoutes(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	// utils global
	router.Use(utils.ErrorHandler())

	// Swagger route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := router.Group("/")

	api.GET("/ping", controllers.Ping)

	api.GET("/api/games", controllers.GetAllGames)

	api.GET("/api/games/:game_key", controllers.GetGameInfo)

	api.POST("/api/rooms", controllers.CreateRoom(db))

	// Room lookup, the collaborator RoomJoinCoordinator resolves codes against
	api.GET("/api/rooms/:room_code", controllers.GetRoomInfo(db))

	api.POST("/api/rooms/:room_code/join", controllers.JoinRoom(db))

	// Routes that require an active room session
	authenticated := api.Group("/api/session")
	authenticated.Use(middleware.SessionRequired)
	{
		authenticated.POST("/exit", controllers.ExitRoom(db, redisClient))

		authenticated.GET("/invitations", controllers.GetAllReceivedInvitations(db))

		authenticated.DELETE("/invitations/:invitation_id", controllers.DeleteInvitation(db))
	}
}
