package redis

type PlayerStatus string

const (
	StatusOnline  PlayerStatus = "online"
	StatusOffline PlayerStatus = "offline"
	StatusInRoom  PlayerStatus = "in_room"
)

type PlayerPresence struct {
	PlayerName string       `json:"player_name"`
	RoomCode   string       `json:"room_code,omitempty"`
	Status     PlayerStatus `json:"status"`
	LastPing   int64        `json:"last_ping"` // Unix timestamp
	SocketID   string       `json:"socket_id"` // For direct invite delivery
}
