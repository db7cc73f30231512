package redis

import (
	"fmt"

	"github.com/kunalgolani-work/kachuful-backend/internal/model"
)

// Key prefix for all persisted data
const keyPrefix = "kachuful"

// userKey returns the Redis key for a User
func userKey(id model.UserID) string {
	return fmt.Sprintf("%s:user:%s", keyPrefix, id)
}

// usernameIndexKey returns the Redis key for the username -> user_id index
func usernameIndexKey(username string) string {
	return fmt.Sprintf("%s:idx:username:%s", keyPrefix, username)
}

// gameRecordKey returns the Redis key for a GameRecord
func gameRecordKey(ownerID model.UserID, id model.GameID) string {
	return fmt.Sprintf("%s:game:%s:%s", keyPrefix, ownerID, id)
}

// gamesForOwnerIndexKey returns the Redis key for the SET of an owner's games
func gamesForOwnerIndexKey(ownerID model.UserID) string {
	return fmt.Sprintf("%s:idx:games_for_owner:%s", keyPrefix, ownerID)
}
