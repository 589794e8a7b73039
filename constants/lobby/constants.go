package lobby_constants

import "time"

// Room codes are exactly 6 chars from [A-Z0-9] after normalization.
const RoomCodeLength = 6

// Player names are 1-20 chars after trimming.
const MaxPlayerNameLength = 20

// Chat messages are capped at 200 chars; longer input gets truncated.
const MaxChatMessageLength = 200

// Explicit drop-oldest cap for the in-memory chat log and the Redis
// history list. NOTE: keep both in sync; reconnecting clients get the
// Redis list replayed, while the in-memory log starts empty after a
// server restart.
const MaxChatHistory = 500

const DefaultMaxPlayers = 8

// Pending game invites older than this are expired. 0 disables expiry.
const DefaultInviteTTL = 2 * time.Minute

// Presence keys in Redis outlive a missed ping by this much.
const PresenceTTL = 30 * time.Second
