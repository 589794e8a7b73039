package session

import (
	"context"
	"strings"
	"sync/atomic"

	lobby_constants "Gamenight/constants/lobby"
)

// SessionIdentity is the (room, player name) pair created atomically on a
// successful join. It is the single source of truth for "who am I" used by
// chat ownership classification.
type SessionIdentity struct {
	RoomCode   string `json:"room_code"`
	PlayerName string `json:"player_name"`
}

// RoomInfo is what the room-lookup collaborator returns for an existing
// room. RoomCode is the canonical form and wins over whatever the client
// typed, even after normalization.
type RoomInfo struct {
	RoomCode   string `json:"room_code"`
	HostName   string `json:"host_name"`
	GameKey    string `json:"game_key"`
	MaxPlayers int    `json:"max_players"`
}

// RoomLookup is the collaborator queried once per join. Implementations:
// HTTPRoomLookup (client side, GET /api/rooms/{code}) and utils.DBRoomLookup
// (server side, straight to Postgres).
type RoomLookup interface {
	Lookup(ctx context.Context, roomCode string) (*RoomInfo, error)
}

// RoomJoinCoordinator validates and normalizes a join attempt, queries the
// room-lookup collaborator and produces the SessionIdentity for the session.
// One instance per join surface (e.g. per connected client).
type RoomJoinCoordinator struct {
	lookup RoomLookup
	// 1 while a Join is resolving. Joins entered meanwhile are ignored.
	inFlight atomic.Bool
}

func NewRoomJoinCoordinator(lookup RoomLookup) *RoomJoinCoordinator {
	return &RoomJoinCoordinator{lookup: lookup}
}

// NormalizeRoomCode uppercases the input and strips every character outside
// [A-Z0-9]. "a1-b2!c3" becomes "A1B2C3".
func NormalizeRoomCode(raw string) string {
	var b strings.Builder
	for _, r := range strings.ToUpper(raw) {
		if (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// ValidatePlayerName trims the raw name and checks the 1-20 char bound.
func ValidatePlayerName(raw string) (string, error) {
	name := strings.TrimSpace(raw)
	if name == "" {
		return "", &ValidationError{Field: "player_name", Message: "player name is required"}
	}
	if len([]rune(name)) > lobby_constants.MaxPlayerNameLength {
		return "", &ValidationError{Field: "player_name", Message: "player name is too long"}
	}
	return name, nil
}

// Join normalizes and validates the inputs, then queries the room-lookup
// collaborator exactly once. Validation failures return before any
// collaborator call. On success the identity carries the collaborator's
// canonical room code, which may differ from the client-normalized one.
//
// Reentrancy policy: a Join issued while another one is still resolving on
// the same coordinator returns ErrJoinInFlight and performs no lookup.
func (rjc *RoomJoinCoordinator) Join(ctx context.Context, rawRoomCode, rawPlayerName string) (*SessionIdentity, error) {
	code := NormalizeRoomCode(rawRoomCode)
	if code == "" {
		return nil, &ValidationError{Field: "room_code", Message: "room code is required"}
	}
	if len(code) != lobby_constants.RoomCodeLength {
		return nil, &ValidationError{Field: "room_code", Message: "room code must be 6 letters or digits"}
	}

	name, err := ValidatePlayerName(rawPlayerName)
	if err != nil {
		return nil, err
	}

	if !rjc.inFlight.CompareAndSwap(false, true) {
		return nil, ErrJoinInFlight
	}
	defer rjc.inFlight.Store(false)

	// Single collaborator call, no retries. Re-invoking Join on user action
	// is the surrounding UI's job.
	info, err := rjc.lookup.Lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	return &SessionIdentity{
		RoomCode:   info.RoomCode,
		PlayerName: name,
	}, nil
}
