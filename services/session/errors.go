package session

import (
	"errors"
	"fmt"
)

// Error taxonomy for the lobby session core. None of these are fatal:
// every operation resolves to a typed error the caller maps to a UI message
// (or an HTTP status, see controllers).

// ValidationError means the input is locally correctable by the user
// (bad room code, empty name, empty message). Never retried automatically.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// RoomNotFoundError means the room code was well-formed but no matching
// room exists.
type RoomNotFoundError struct {
	RoomCode string
}

func (e *RoomNotFoundError) Error() string {
	return fmt.Sprintf("room %s not found", e.RoomCode)
}

// TransportError wraps a network/collaborator failure during room lookup.
// Surfaced with a generic retry-suggesting message; the core never retries.
type TransportError struct {
	Cause error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("room lookup failed: %v", e.Cause)
}

func (e *TransportError) Unwrap() error {
	return e.Cause
}

// NotFoundError means an operation referenced an id that is not (or no
// longer) known, e.g. accepting an invite that was already declined or
// looking up a game key that does not exist. Indicates a stale reference,
// not a fatal condition.
type NotFoundError struct {
	Kind string
	ID   string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Kind, e.ID)
}

// ErrJoinInFlight is returned when Join is invoked while another Join on the
// same coordinator has not resolved yet. The new call is ignored so a user
// hammering the join button cannot end up with a double room membership.
var ErrJoinInFlight = errors.New("a join is already in progress")
