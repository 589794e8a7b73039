package socketio_types

import (
	"testing"

	"Gamenight/services/session"

	"github.com/stretchr/testify/assert"
)

func TestWithInvitesRequiresConnection(t *testing.T) {
	sio := NewSocketServer()

	ran := false
	found := sio.WithInvites("Bob", func(im *session.InviteLifecycleManager) {
		ran = true
	})

	assert.False(t, found, "no connection was ever added for Bob")
	assert.False(t, ran, "callback must not run without a manager")
}

func TestWithInvitesAfterAddConnection(t *testing.T) {
	sio := NewSocketServer()
	sio.AddConnection("Bob", nil)

	found := sio.WithInvites("Bob", func(im *session.InviteLifecycleManager) {
		assert.NotNil(t, im)
		assert.Empty(t, im.ListPending())
	})
	assert.True(t, found)
}

// A second socket under the same player name shares the map slot, so the
// first socket's disconnect removes the invite manager while the second is
// still live. Handlers must get a false return then, not a silent no-op.
func TestWithInvitesAfterRemoveConnection(t *testing.T) {
	sio := NewSocketServer()
	sio.AddConnection("Bob", nil)
	sio.RemoveConnection("Bob")

	found := sio.WithInvites("Bob", func(im *session.InviteLifecycleManager) {
		t.Error("callback ran for a removed connection")
	})
	assert.False(t, found)
}

func TestWithRoomChatCreatesOnFirstUse(t *testing.T) {
	sio := NewSocketServer()

	sio.WithRoomChat("ABC123", func(chat *session.ChatSessionState) {
		chat.Append(session.ChatMessage{PlayerName: "Bob", Message: "hola"})
	})

	var count int
	sio.WithRoomChat("ABC123", func(chat *session.ChatSessionState) {
		count = chat.Len()
	})
	assert.Equal(t, 1, count, "second call must see the same state")
}

func TestDropRoomChatForgetsState(t *testing.T) {
	sio := NewSocketServer()

	sio.WithRoomChat("ABC123", func(chat *session.ChatSessionState) {
		chat.Append(session.ChatMessage{PlayerName: "Bob", Message: "hola"})
	})

	sio.DropRoomChat("ABC123")

	var count int
	sio.WithRoomChat("ABC123", func(chat *session.ChatSessionState) {
		count = chat.Len()
	})
	assert.Equal(t, 0, count, "dropped room must start from a fresh log")
}
