package session

import (
	"time"

	lobby_constants "Gamenight/constants/lobby"
)

type InviteStatus string

const (
	InviteStatusPending  InviteStatus = "pending"
	InviteStatusAccepted InviteStatus = "accepted"
	InviteStatusDeclined InviteStatus = "declined"
	InviteStatusExpired  InviteStatus = "expired"
)

// GameInvite is a pending offer to join another player's room.
type GameInvite struct {
	ID         string    `json:"id"`
	HostName   string    `json:"host_name"`
	GameName   string    `json:"game_name"`
	RoomID     string    `json:"room_id"`
	ReceivedAt time.Time `json:"received_at"`
}

// AcceptResult is the navigation intent produced by accepting an invite.
// The manager never navigates; the caller (socket layer / UI) does.
type AcceptResult struct {
	NavigateToRoomID string `json:"navigate_to_room_id"`
}

// InviteLifecycleManager owns the pending invites of one player session.
// State machine per invite: pending -> accepted | declined | expired, all
// terminal. Terminal ids are remembered so a redelivered invite cannot
// resurrect after it was resolved. Single logical owner, no locking here;
// the socket layer serializes access per connected player.
type InviteLifecycleManager struct {
	ttl     time.Duration
	clock   func() time.Time
	pending []GameInvite // arrival order
	// Terminal states by invite id.
	resolved map[string]InviteStatus
}

// NewInviteLifecycleManager builds an empty manager. ttl < 0 selects the
// default, ttl == 0 disables expiry. clock is injectable for tests; nil
// means time.Now.
func NewInviteLifecycleManager(ttl time.Duration, clock func() time.Time) *InviteLifecycleManager {
	if ttl < 0 {
		ttl = lobby_constants.DefaultInviteTTL
	}
	if clock == nil {
		clock = time.Now
	}
	return &InviteLifecycleManager{
		ttl:      ttl,
		clock:    clock,
		resolved: make(map[string]InviteStatus),
	}
}

// Receive adds an invite to the pending set. Duplicate ids (already pending
// or already resolved) are a no-op, so transport redelivery is harmless.
func (im *InviteLifecycleManager) Receive(invite GameInvite) {
	im.ExpireStale()

	if _, done := im.resolved[invite.ID]; done {
		return
	}
	for _, p := range im.pending {
		if p.ID == invite.ID {
			return
		}
	}
	if invite.ReceivedAt.IsZero() {
		invite.ReceivedAt = im.clock()
	}
	im.pending = append(im.pending, invite)
}

// Accept transitions a pending invite to accepted and returns the room to
// navigate to. The invite leaves the pending set; a second Accept (or a
// Decline) of the same id fails with NotFoundError.
func (im *InviteLifecycleManager) Accept(id string) (*AcceptResult, error) {
	im.ExpireStale()

	invite, ok := im.remove(id)
	if !ok {
		return nil, &NotFoundError{Kind: "invite", ID: id}
	}
	im.resolved[id] = InviteStatusAccepted
	return &AcceptResult{NavigateToRoomID: invite.RoomID}, nil
}

// Decline transitions a pending invite to declined.
func (im *InviteLifecycleManager) Decline(id string) error {
	im.ExpireStale()

	if _, ok := im.remove(id); !ok {
		return &NotFoundError{Kind: "invite", ID: id}
	}
	im.resolved[id] = InviteStatusDeclined
	return nil
}

// ListPending returns a snapshot of the pending invites in arrival order.
func (im *InviteLifecycleManager) ListPending() []GameInvite {
	im.ExpireStale()

	out := make([]GameInvite, len(im.pending))
	copy(out, im.pending)
	return out
}

// Status reports the lifecycle state of an id the manager has seen.
// Unknown ids fail with NotFoundError.
func (im *InviteLifecycleManager) Status(id string) (InviteStatus, error) {
	im.ExpireStale()

	if status, done := im.resolved[id]; done {
		return status, nil
	}
	for _, p := range im.pending {
		if p.ID == id {
			return InviteStatusPending, nil
		}
	}
	return "", &NotFoundError{Kind: "invite", ID: id}
}

// ExpireStale moves invites older than the TTL to the expired terminal
// state. Called lazily by every other operation, so consumers never observe
// a stale invite; callers may also invoke it on a timer.
func (im *InviteLifecycleManager) ExpireStale() {
	if im.ttl == 0 || len(im.pending) == 0 {
		return
	}
	now := im.clock()
	kept := im.pending[:0]
	for _, p := range im.pending {
		if now.Sub(p.ReceivedAt) > im.ttl {
			im.resolved[p.ID] = InviteStatusExpired
			continue
		}
		kept = append(kept, p)
	}
	im.pending = kept
}

func (im *InviteLifecycleManager) remove(id string) (GameInvite, bool) {
	for i, p := range im.pending {
		if p.ID == id {
			im.pending = append(im.pending[:i], im.pending[i+1:]...)
			return p, true
		}
	}
	return GameInvite{}, false
}
