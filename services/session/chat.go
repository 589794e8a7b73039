package session

import (
	"strings"
	"time"

	lobby_constants "Gamenight/constants/lobby"

	"github.com/google/uuid"
)

const (
	MessageTypeUser   = "user"
	MessageTypeSystem = "system"
)

// ChatMessage is a single entry in a room's chat log. IsOwnMessage is a
// pointer on purpose: nil means "not classified yet", and ownership then
// falls back to comparing PlayerName against the session identity.
type ChatMessage struct {
	ID           string    `json:"id,omitempty"`
	PlayerName   string    `json:"player_name"`
	Message      string    `json:"message"`
	Type         string    `json:"type"`
	IsOwnMessage *bool     `json:"is_own_message,omitempty"`
	SentAt       time.Time `json:"sent_at"`
}

// ChatSessionState owns the ordered message log of one room session.
// Single logical owner, no internal locking; the socket layer serializes
// access per room (see socket_io/types).
type ChatSessionState struct {
	maxLog   int
	messages []ChatMessage
	// Messages currently held in the log, by id. Entries leave the map
	// when the drop-oldest cap evicts them.
	byID map[string]ChatMessage
}

// NewChatSessionState builds an empty log. maxLog <= 0 selects the default
// cap. The cap is the only way messages ever leave the log: when it is
// exceeded the oldest message is dropped, nothing else is ever removed or
// reordered.
func NewChatSessionState(maxLog int) *ChatSessionState {
	if maxLog <= 0 {
		maxLog = lobby_constants.MaxChatHistory
	}
	return &ChatSessionState{
		maxLog: maxLog,
		byID:   make(map[string]ChatMessage),
	}
}

// Append stores an incoming message at the end of the log and returns the
// stored copy. A missing id gets a generated uuid. Duplicate explicit ids
// (transport redelivery) are deduplicated: the already-stored message is
// returned and the log is untouched. Duplicate *content* under different
// ids is legal and preserved.
func (cs *ChatSessionState) Append(incoming ChatMessage) ChatMessage {
	if incoming.ID != "" {
		if stored, ok := cs.byID[incoming.ID]; ok {
			return stored
		}
	} else {
		incoming.ID = uuid.NewString()
	}
	if incoming.SentAt.IsZero() {
		incoming.SentAt = time.Now()
	}

	cs.messages = append(cs.messages, incoming)
	cs.byID[incoming.ID] = incoming

	if len(cs.messages) > cs.maxLog {
		evicted := cs.messages[0]
		cs.messages = cs.messages[1:]
		delete(cs.byID, evicted.ID)
	}
	return incoming
}

// Messages returns a snapshot copy of the log in insertion order.
func (cs *ChatSessionState) Messages() []ChatMessage {
	out := make([]ChatMessage, len(cs.messages))
	copy(out, cs.messages)
	return out
}

// Len returns the number of messages currently held.
func (cs *ChatSessionState) Len() int {
	return len(cs.messages)
}

// ClassifyOwnership decides whether a message belongs to the current
// session. Pure function: an explicit IsOwnMessage flag wins, otherwise the
// player name is compared against the identity. Stored messages are never
// mutated, so the log can be reclassified later under a new identity
// (e.g. reconnect under a different name).
func ClassifyOwnership(msg ChatMessage, identity SessionIdentity) bool {
	if msg.IsOwnMessage != nil {
		return *msg.IsOwnMessage
	}
	return msg.PlayerName == identity.PlayerName
}

// PrepareOutgoing turns raw user input into a sendable ChatMessage. The
// text is trimmed; empty input is a ValidationError. Input longer than the
// 200-char cap is truncated, not rejected (players lose the tail instead of
// the whole message).
func (cs *ChatSessionState) PrepareOutgoing(rawText string, identity SessionIdentity) (ChatMessage, error) {
	text := strings.TrimSpace(rawText)
	if text == "" {
		return ChatMessage{}, &ValidationError{Field: "message", Message: "message is empty"}
	}
	if runes := []rune(text); len(runes) > lobby_constants.MaxChatMessageLength {
		text = string(runes[:lobby_constants.MaxChatMessageLength])
	}

	own := true
	return ChatMessage{
		ID:           uuid.NewString(),
		PlayerName:   identity.PlayerName,
		Message:      text,
		Type:         MessageTypeUser,
		IsOwnMessage: &own,
		SentAt:       time.Now(),
	}, nil
}
