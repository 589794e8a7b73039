package catalog

import (
	"Gamenight/services/session"
)

// Entry describes one selectable game. Entries are defined at process start
// and never mutated at runtime; every accessor hands out copies.
type Entry struct {
	Key         string `json:"key"`
	Name        string `json:"name"`
	Icon        string `json:"icon"`
	Description string `json:"description"`
	MaxPlayers  int    `json:"max_players"`
}

// Declaration order is the order ListAll returns, and the order the room
// creation screen renders. Keep new games at the end.
var entries = []Entry{
	{
		Key:         "trivia",
		Name:        "Trivia Night",
		Icon:        "icon_trivia",
		Description: "Rapid-fire questions, first buzz wins the point.",
		MaxPlayers:  8,
	},
	{
		Key:         "sketch",
		Name:        "Sketch It",
		Icon:        "icon_sketch",
		Description: "One player draws, everyone else guesses.",
		MaxPlayers:  10,
	},
	{
		Key:         "wordhunt",
		Name:        "Word Hunt",
		Icon:        "icon_wordhunt",
		Description: "Find more words than your friends before the timer runs out.",
		MaxPlayers:  6,
	},
	{
		Key:         "bluff",
		Name:        "Bluff Call",
		Icon:        "icon_bluff",
		Description: "Write fake answers, spot the real one.",
		MaxPlayers:  8,
	},
	{
		Key:         "sequence",
		Name:        "Sequence Royale",
		Icon:        "icon_sequence",
		Description: "Memorize the pattern, repeat it, survive the longest.",
		MaxPlayers:  4,
	},
}

// Lookup returns the entry for a game key, or NotFoundError when no such
// game exists. Used to validate a host's selection before it is broadcast.
func Lookup(key string) (Entry, error) {
	for _, e := range entries {
		if e.Key == key {
			return e, nil
		}
	}
	return Entry{}, &session.NotFoundError{Kind: "game", ID: key}
}

// ListAll returns all entries in declaration order. The slice is a copy;
// callers can do what they want with it.
func ListAll() []Entry {
	out := make([]Entry, len(entries))
	copy(out, entries)
	return out
}
