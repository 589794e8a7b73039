package session

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"
)

// HTTPRoomLookup implements RoomLookup against the REST collaborator
// endpoint GET {BaseURL}/api/rooms/{code}. This is the client-side
// implementation; the server itself uses utils.DBRoomLookup.
type HTTPRoomLookup struct {
	BaseURL string
	Client  *http.Client
}

func NewHTTPRoomLookup(baseURL string) *HTTPRoomLookup {
	return &HTTPRoomLookup{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Client:  &http.Client{Timeout: 10 * time.Second},
	}
}

// Lookup maps the HTTP outcome onto the core error taxonomy: 4xx means the
// room does not exist, 5xx and transport faults (timeouts included) are
// TransportError. The body only needs the canonical room_code.
func (hl *HTTPRoomLookup) Lookup(ctx context.Context, roomCode string) (*RoomInfo, error) {
	url := fmt.Sprintf("%s/api/rooms/%s", hl.BaseURL, roomCode)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	req.Header.Set("Accept", "application/json")

	resp, err := hl.Client.Do(req)
	if err != nil {
		return nil, &TransportError{Cause: err}
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 300:
		// fall through to decode
	case resp.StatusCode >= 400 && resp.StatusCode < 500:
		return nil, &RoomNotFoundError{RoomCode: roomCode}
	default:
		return nil, &TransportError{Cause: fmt.Errorf("room lookup returned status %d", resp.StatusCode)}
	}

	var info RoomInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, &TransportError{Cause: err}
	}
	if info.RoomCode == "" {
		// Collaborator broke its contract; treat as a transport fault so
		// the UI suggests retrying instead of blaming the user.
		return nil, &TransportError{Cause: fmt.Errorf("room lookup response missing room_code")}
	}
	return &info, nil
}
