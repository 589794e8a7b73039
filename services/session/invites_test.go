package session_test

import (
	"testing"
	"time"

	"Gamenight/services/session"

	"github.com/stretchr/testify/assert"
)

func makeInvite(id string) session.GameInvite {
	return session.GameInvite{
		ID:       id,
		HostName: "Alice",
		GameName: "Trivia Night",
		RoomID:   "ABC123",
	}
}

func TestReceiveAndListPending(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)

	im.Receive(makeInvite("inv-1"))
	im.Receive(makeInvite("inv-2"))
	im.Receive(makeInvite("inv-3"))

	pending := im.ListPending()
	assert.Len(t, pending, 3)
	// Arrival order
	assert.Equal(t, "inv-1", pending[0].ID)
	assert.Equal(t, "inv-2", pending[1].ID)
	assert.Equal(t, "inv-3", pending[2].ID)

	// ReceivedAt is stamped when missing
	assert.False(t, pending[0].ReceivedAt.IsZero())
}

func TestReceiveDuplicateIdIsNoOp(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)

	im.Receive(makeInvite("inv-1"))
	im.Receive(makeInvite("inv-1"))

	assert.Len(t, im.ListPending(), 1)
}

func TestAcceptReturnsNavigationIntent(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)
	im.Receive(makeInvite("inv-1"))

	result, err := im.Accept("inv-1")
	assert.NoError(t, err)
	assert.Equal(t, "ABC123", result.NavigateToRoomID)

	// Gone from the pending set
	assert.Empty(t, im.ListPending())

	// Terminal: a second accept fails
	_, err = im.Accept("inv-1")
	var notFoundErr *session.NotFoundError
	assert.ErrorAs(t, err, &notFoundErr)

	status, err := im.Status("inv-1")
	assert.NoError(t, err)
	assert.Equal(t, session.InviteStatusAccepted, status)
}

func TestDeclineAndAcceptAreMutuallyExclusive(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)
	im.Receive(makeInvite("inv-1"))

	assert.NoError(t, im.Decline("inv-1"))

	var notFoundErr *session.NotFoundError
	_, err := im.Accept("inv-1")
	assert.ErrorAs(t, err, &notFoundErr)

	err = im.Decline("inv-1")
	assert.ErrorAs(t, err, &notFoundErr)

	status, err := im.Status("inv-1")
	assert.NoError(t, err)
	assert.Equal(t, session.InviteStatusDeclined, status)
}

func TestAcceptUnknownIdFails(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)

	var notFoundErr *session.NotFoundError
	_, err := im.Accept("nope")
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestRedeliveryAfterTerminalStateIsIgnored(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)
	im.Receive(makeInvite("inv-1"))
	assert.NoError(t, im.Decline("inv-1"))

	// Transport redelivers the declined invite; it must not resurrect
	im.Receive(makeInvite("inv-1"))
	assert.Empty(t, im.ListPending())
}

func TestExpiryWithInjectedClock(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	im := session.NewInviteLifecycleManager(2*time.Minute, clock)

	im.Receive(makeInvite("inv-1"))

	// Still within TTL
	now = now.Add(90 * time.Second)
	assert.Len(t, im.ListPending(), 1)

	// Past TTL: pruned and terminal
	now = now.Add(60 * time.Second)
	assert.Empty(t, im.ListPending())

	var notFoundErr *session.NotFoundError
	_, err := im.Accept("inv-1")
	assert.ErrorAs(t, err, &notFoundErr)

	status, err := im.Status("inv-1")
	assert.NoError(t, err)
	assert.Equal(t, session.InviteStatusExpired, status)

	// And it cannot come back via redelivery
	im.Receive(makeInvite("inv-1"))
	assert.Empty(t, im.ListPending())
}

func TestZeroTTLDisablesExpiry(t *testing.T) {
	now := time.Date(2026, 8, 28, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	im := session.NewInviteLifecycleManager(0, clock)

	im.Receive(makeInvite("inv-1"))
	now = now.Add(48 * time.Hour)
	assert.Len(t, im.ListPending(), 1)
}

func TestListPendingReturnsSnapshot(t *testing.T) {
	im := session.NewInviteLifecycleManager(0, nil)
	im.Receive(makeInvite("inv-1"))

	snapshot := im.ListPending()
	snapshot[0].ID = "mutated"

	assert.Equal(t, "inv-1", im.ListPending()[0].ID)
}
