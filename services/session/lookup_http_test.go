package session_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"Gamenight/services/session"

	"github.com/stretchr/testify/assert"
)

func TestHTTPRoomLookupSuccess(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/ABC123", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"room_code":"ABC123","host_name":"Alice","game_key":"trivia","max_players":8}`))
	}))
	defer server.Close()

	lookup := session.NewHTTPRoomLookup(server.URL)
	info, err := lookup.Lookup(context.Background(), "ABC123")

	assert.NoError(t, err)
	assert.Equal(t, "ABC123", info.RoomCode)
	assert.Equal(t, "trivia", info.GameKey)
}

func TestHTTPRoomLookupNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte(`{"error":"Room not found"}`))
	}))
	defer server.Close()

	lookup := session.NewHTTPRoomLookup(server.URL)
	_, err := lookup.Lookup(context.Background(), "ZZZZZZ")

	var notFoundErr *session.RoomNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, "ZZZZZZ", notFoundErr.RoomCode)
}

func TestHTTPRoomLookupServerFault(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	lookup := session.NewHTTPRoomLookup(server.URL)
	_, err := lookup.Lookup(context.Background(), "ABC123")

	var transportErr *session.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestHTTPRoomLookupDeadServer(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // kill it before the call

	lookup := session.NewHTTPRoomLookup(server.URL)
	_, err := lookup.Lookup(context.Background(), "ABC123")

	var transportErr *session.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestHTTPRoomLookupMissingRoomCode(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer server.Close()

	lookup := session.NewHTTPRoomLookup(server.URL)
	_, err := lookup.Lookup(context.Background(), "ABC123")

	var transportErr *session.TransportError
	assert.ErrorAs(t, err, &transportErr)
}

func TestCoordinatorWithHTTPRoomLookup(t *testing.T) {
	// End to end: typed code resolved against the REST collaborator, the
	// canonical code from the body wins.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/rooms/A1B2C3", r.URL.Path)
		w.Write([]byte(`{"room_code":"A1B2C3"}`))
	}))
	defer server.Close()

	coordinator := session.NewRoomJoinCoordinator(session.NewHTTPRoomLookup(server.URL))
	identity, err := coordinator.Join(context.Background(), "a1-b2!c3", "Bob")

	assert.NoError(t, err)
	assert.Equal(t, "A1B2C3", identity.RoomCode)
	assert.Equal(t, "Bob", identity.PlayerName)
}
