package session_test

import (
	"fmt"
	"strings"
	"testing"

	lobby_constants "Gamenight/constants/lobby"
	"Gamenight/services/session"

	"github.com/stretchr/testify/assert"
)

func boolPtr(b bool) *bool { return &b }

func TestAppendPreservesOrderAndAssignsIds(t *testing.T) {
	chat := session.NewChatSessionState(0)

	var ids []string
	for i := 0; i < 10; i++ {
		stored := chat.Append(session.ChatMessage{
			PlayerName: "Bob",
			Message:    fmt.Sprintf("message %d", i),
			Type:       session.MessageTypeUser,
		})
		assert.NotEmpty(t, stored.ID)
		ids = append(ids, stored.ID)
	}

	messages := chat.Messages()
	assert.Len(t, messages, 10)
	for i, msg := range messages {
		assert.Equal(t, fmt.Sprintf("message %d", i), msg.Message)
		assert.Equal(t, ids[i], msg.ID)
	}

	// All generated ids are distinct
	seen := make(map[string]bool)
	for _, id := range ids {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}
}

func TestAppendKeepsExplicitId(t *testing.T) {
	chat := session.NewChatSessionState(0)
	stored := chat.Append(session.ChatMessage{ID: "msg-1", PlayerName: "Bob", Message: "hi"})
	assert.Equal(t, "msg-1", stored.ID)
}

func TestAppendDeduplicatesRedeliveredIds(t *testing.T) {
	chat := session.NewChatSessionState(0)

	first := chat.Append(session.ChatMessage{ID: "msg-1", PlayerName: "Bob", Message: "hi"})
	// Transport redelivery: same id, the stored message wins
	second := chat.Append(session.ChatMessage{ID: "msg-1", PlayerName: "Bob", Message: "hi again"})

	assert.Equal(t, first, second)
	assert.Equal(t, 1, chat.Len())
	assert.Equal(t, "hi", chat.Messages()[0].Message)
}

func TestAppendAllowsDuplicateContent(t *testing.T) {
	chat := session.NewChatSessionState(0)
	chat.Append(session.ChatMessage{PlayerName: "Bob", Message: "hi"})
	chat.Append(session.ChatMessage{PlayerName: "Bob", Message: "hi"})
	assert.Equal(t, 2, chat.Len())
}

func TestAppendDropsOldestBeyondCap(t *testing.T) {
	chat := session.NewChatSessionState(3)

	for i := 0; i < 5; i++ {
		chat.Append(session.ChatMessage{ID: fmt.Sprintf("msg-%d", i), Message: fmt.Sprintf("m%d", i)})
	}

	messages := chat.Messages()
	assert.Len(t, messages, 3)
	assert.Equal(t, "msg-2", messages[0].ID)
	assert.Equal(t, "msg-4", messages[2].ID)

	// An evicted id may come back, it is no longer tracked
	stored := chat.Append(session.ChatMessage{ID: "msg-0", Message: "back"})
	assert.Equal(t, "back", stored.Message)
}

func TestClassifyOwnership(t *testing.T) {
	identity := session.SessionIdentity{RoomCode: "ABC123", PlayerName: "Bob"}

	cases := []struct {
		name string
		msg  session.ChatMessage
		want bool
	}{
		{"name match", session.ChatMessage{PlayerName: "Bob"}, true},
		{"name mismatch", session.ChatMessage{PlayerName: "Alice"}, false},
		{"explicit false overrides name match", session.ChatMessage{PlayerName: "Bob", IsOwnMessage: boolPtr(false)}, false},
		{"explicit true overrides name mismatch", session.ChatMessage{PlayerName: "Alice", IsOwnMessage: boolPtr(true)}, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, session.ClassifyOwnership(c.msg, identity))
		})
	}
}

func TestClassifyOwnershipIsReclassifiable(t *testing.T) {
	// Reconnecting under a new name flips the fallback classification
	// without touching the stored message.
	msg := session.ChatMessage{PlayerName: "Bob"}
	assert.True(t, session.ClassifyOwnership(msg, session.SessionIdentity{PlayerName: "Bob"}))
	assert.False(t, session.ClassifyOwnership(msg, session.SessionIdentity{PlayerName: "Bobby"}))
	assert.Nil(t, msg.IsOwnMessage)
}

func TestPrepareOutgoing(t *testing.T) {
	chat := session.NewChatSessionState(0)
	identity := session.SessionIdentity{RoomCode: "ABC123", PlayerName: "Bob"}

	t.Run("valid message", func(t *testing.T) {
		msg, err := chat.PrepareOutgoing("  hello there  ", identity)
		assert.NoError(t, err)
		assert.Equal(t, "hello there", msg.Message)
		assert.Equal(t, session.MessageTypeUser, msg.Type)
		assert.Equal(t, "Bob", msg.PlayerName)
		assert.NotNil(t, msg.IsOwnMessage)
		assert.True(t, *msg.IsOwnMessage)
		assert.NotEmpty(t, msg.ID)
	})

	t.Run("empty after trim", func(t *testing.T) {
		_, err := chat.PrepareOutgoing("   \t  ", identity)
		var validationErr *session.ValidationError
		assert.ErrorAs(t, err, &validationErr)
		assert.Equal(t, "message", validationErr.Field)
	})

	t.Run("long message is truncated", func(t *testing.T) {
		msg, err := chat.PrepareOutgoing(strings.Repeat("x", 450), identity)
		assert.NoError(t, err)
		assert.Len(t, []rune(msg.Message), lobby_constants.MaxChatMessageLength)
	})
}
