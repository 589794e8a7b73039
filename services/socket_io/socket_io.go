package socket_io

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"Gamenight/services/redis"
	"Gamenight/services/socket_io/handlers"
	socketio_types "Gamenight/services/socket_io/types"

	"gorm.io/gorm"

	"github.com/gin-gonic/gin"
	"github.com/zishang520/engine.io/v2/types"
	"github.com/zishang520/socket.io/v2/socket"
)

type LobbySocketServer socketio_types.SocketServer

func New() *LobbySocketServer {
	return (*LobbySocketServer)(socketio_types.NewSocketServer())
}

func (sio *LobbySocketServer) Start(router *gin.Engine, db *gorm.DB, redisClient *redis.RedisClient) {
	c := socket.DefaultServerOptions()
	c.SetServeClient(true)
	// NOTE: higher ping interval and timeout to 1) reduce network load and 2) support slower networks
	c.SetPingInterval(5 * time.Second)
	c.SetPingTimeout(3 * time.Second)
	c.SetMaxHttpBufferSize(1000000)
	c.SetConnectTimeout(10 * time.Second)
	c.SetTransports(types.NewSet("polling", "websocket"))
	c.SetCors(&types.Cors{
		Origin:      "*",
		Credentials: true,
	})

	sio.Sio_server = socket.NewServer(nil, nil)
	sio.Sio_server.On("connection", func(clients ...interface{}) {
		client := clients[0].(*socket.Socket)

		// Check the session token from the handshake
		success, roomCode, playerName := handlers.VerifyUserConnection(client)
		if !success {
			return
		}

		// Add connection (and its invite manager) to the map
		(*socketio_types.SocketServer)(sio).AddConnection(playerName, client)

		fmt.Println("An individual just connected!: ", playerName, "room:", roomCode)

		// Enter the realtime channel of the room the session belongs to
		client.On("join_room", handlers.HandleJoinRoom(redisClient, client, db, roomCode, playerName, (*socketio_types.SocketServer)(sio)))

		// Broadcast a chat message to the room
		client.On("room_message", handlers.HandleRoomMessage(redisClient, client, db, roomCode, playerName, (*socketio_types.SocketServer)(sio)))

		// Invite another player to this room's game
		client.On("send_invite", handlers.HandleSendInvite(redisClient, client, db, roomCode, playerName, (*socketio_types.SocketServer)(sio)))

		// Accept an invite: yields a navigate_to_room intent, nothing more
		client.On("accept_invite", handlers.HandleAcceptInvite(client, db, playerName, (*socketio_types.SocketServer)(sio)))

		// Decline an invite
		client.On("decline_invite", handlers.HandleDeclineInvite(client, db, playerName, (*socketio_types.SocketServer)(sio)))

		// Snapshot of pending invites, arrival order
		client.On("list_invites", handlers.HandleListInvites(client, playerName, (*socketio_types.SocketServer)(sio)))

		// NOTE: will remove sio connection from map
		client.On("disconnecting", handlers.HandleDisconnecting(roomCode, playerName, (*socketio_types.SocketServer)(sio), db, redisClient))
	})

	router.POST("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))
	router.GET("/socket.io/*f", gin.WrapH(sio.Sio_server.ServeHandler(c)))

	SignalC := make(chan os.Signal, 1)

	signal.Notify(SignalC, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	go func() {
		for s := range SignalC {
			switch s {
			case syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT:
				sio.Sio_server.Close(nil)
				os.Exit(0)
			}
		}
	}()

	fmt.Println("Socket server started")
}
