package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatKeys(t *testing.T) {
	assert.Equal(t, "room:ABC123:chat", FormatChatHistoryKey("ABC123"))
	assert.Equal(t, "player:Bob:presence", FormatPresenceKey("Bob"))
}
