package redis

import (
	"encoding/json"
	"fmt"
	"time"

	lobby_constants "Gamenight/constants/lobby"
	redis_models "Gamenight/models/redis"
	redis_utils "Gamenight/services/redis/utils"

	"github.com/redis/go-redis/v9"
)

// Chat history retention. Matches the in-memory cap of the session core so
// a reconnecting client replays exactly what a connected one would hold.
const chatHistoryTTL = 24 * time.Hour

// SaveChatMessage appends a message to a room's chat history list.
// Key format: "room:{code}:chat"
// The list is trimmed to the last MaxChatHistory entries (explicit
// drop-oldest policy, same as the in-memory log).
func (rc *RedisClient) SaveChatMessage(msg *redis_models.ChatMessage) error {
	key := redis_utils.FormatChatHistoryKey(msg.RoomCode)
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("error marshaling chat message: %v", err)
	}

	pipe := rc.Client.Pipeline()
	pipe.RPush(rc.Ctx, key, data)
	pipe.LTrim(rc.Ctx, key, int64(-lobby_constants.MaxChatHistory), -1)
	pipe.Expire(rc.Ctx, key, chatHistoryTTL)
	if _, err := pipe.Exec(rc.Ctx); err != nil {
		return fmt.Errorf("error saving chat message: %v", err)
	}
	return nil
}

// GetChatHistory retrieves a room's chat history in insertion order.
// Key format: "room:{code}:chat"
func (rc *RedisClient) GetChatHistory(roomCode string) ([]redis_models.ChatMessage, error) {
	key := redis_utils.FormatChatHistoryKey(roomCode)
	raw, err := rc.Client.LRange(rc.Ctx, key, 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("error getting chat history: %v", err)
	}

	messages := make([]redis_models.ChatMessage, 0, len(raw))
	for _, item := range raw {
		var msg redis_models.ChatMessage
		if err := json.Unmarshal([]byte(item), &msg); err != nil {
			return nil, fmt.Errorf("error unmarshaling chat message: %v", err)
		}
		messages = append(messages, msg)
	}
	return messages, nil
}

// DeleteChatHistory removes a room's chat history, e.g. when the room dies.
func (rc *RedisClient) DeleteChatHistory(roomCode string) error {
	key := redis_utils.FormatChatHistoryKey(roomCode)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting chat history: %v", err)
	}
	return nil
}

// SavePlayerPresence stores a player's presence with a short TTL, so a
// crashed client just fades out.
// Key format: "player:{name}:presence"
func (rc *RedisClient) SavePlayerPresence(presence *redis_models.PlayerPresence) error {
	key := redis_utils.FormatPresenceKey(presence.PlayerName)
	data, err := json.Marshal(presence)
	if err != nil {
		return fmt.Errorf("error marshaling presence: %v", err)
	}
	return rc.Client.Set(rc.Ctx, key, data, lobby_constants.PresenceTTL).Err()
}

// GetPlayerPresence retrieves a player's presence, nil when unknown/expired.
func (rc *RedisClient) GetPlayerPresence(playerName string) (*redis_models.PlayerPresence, error) {
	key := redis_utils.FormatPresenceKey(playerName)
	data, err := rc.Client.Get(rc.Ctx, key).Bytes()
	if err != nil {
		if err == redis.Nil {
			// Unknown or expired, not an error
			return nil, nil
		}
		return nil, fmt.Errorf("error getting presence: %v", err)
	}

	var presence redis_models.PlayerPresence
	if err := json.Unmarshal(data, &presence); err != nil {
		return nil, fmt.Errorf("error unmarshaling presence: %v", err)
	}
	return &presence, nil
}

// DeletePlayerPresence removes a player's presence on disconnect.
func (rc *RedisClient) DeletePlayerPresence(playerName string) error {
	key := redis_utils.FormatPresenceKey(playerName)
	if err := rc.Client.Del(rc.Ctx, key).Err(); err != nil {
		return fmt.Errorf("error deleting presence: %v", err)
	}
	return nil
}
