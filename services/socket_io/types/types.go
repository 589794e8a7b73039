package socketio_types

import (
	"sync"

	lobby_constants "Gamenight/constants/lobby"
	"Gamenight/services/session"

	"github.com/zishang520/socket.io/v2/socket"
)

// SocketServer is a struct that contains the socket.io server, a map of
// socket connections and the per-session core state the handlers drive:
// one InviteLifecycleManager per connected player, one ChatSessionState per
// room. The core components are single-owner and lock-free; the mutex here
// is what serializes access to them across socket goroutines.
type SocketServer struct {
	Sio_server *socket.Server
	// Map to track player name -> socket connections
	UserConnections map[string]*socket.Socket
	inviteManagers  map[string]*session.InviteLifecycleManager
	roomChats       map[string]*session.ChatSessionState
	mutex           sync.RWMutex
}

func NewSocketServer() *SocketServer {
	return &SocketServer{
		UserConnections: make(map[string]*socket.Socket),
		inviteManagers:  make(map[string]*session.InviteLifecycleManager),
		roomChats:       make(map[string]*session.ChatSessionState),
	}
}

// Add methods to manage connections
func (s *SocketServer) AddConnection(playerName string, client *socket.Socket) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	s.UserConnections[playerName] = client
	if _, exists := s.inviteManagers[playerName]; !exists {
		s.inviteManagers[playerName] = session.NewInviteLifecycleManager(lobby_constants.DefaultInviteTTL, nil)
	}
}

func (s *SocketServer) RemoveConnection(playerName string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.UserConnections, playerName)
	delete(s.inviteManagers, playerName)
}

func (s *SocketServer) GetConnection(playerName string) (*socket.Socket, bool) {
	s.mutex.RLock()
	defer s.mutex.RUnlock()
	socket, exists := s.UserConnections[playerName]
	return socket, exists
}

// WithInvites runs fn against a connected player's invite manager while
// holding the lock, keeping the single-owner contract of the core. Returns
// false when the player is not connected.
func (s *SocketServer) WithInvites(playerName string, fn func(*session.InviteLifecycleManager)) bool {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	manager, exists := s.inviteManagers[playerName]
	if !exists {
		return false
	}
	fn(manager)
	return true
}

// WithRoomChat runs fn against a room's shared chat state, creating it on
// first use.
func (s *SocketServer) WithRoomChat(roomCode string, fn func(*session.ChatSessionState)) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	chat, exists := s.roomChats[roomCode]
	if !exists {
		chat = session.NewChatSessionState(lobby_constants.MaxChatHistory)
		s.roomChats[roomCode] = chat
	}
	fn(chat)
}

// DropRoomChat forgets a room's in-memory chat state, e.g. once the room is
// empty. The Redis history is handled separately.
func (s *SocketServer) DropRoomChat(roomCode string) {
	s.mutex.Lock()
	defer s.mutex.Unlock()
	delete(s.roomChats, roomCode)
}
