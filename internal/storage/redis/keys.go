package redis

import "fmt"

// Key prefixes for the entities stored in Redis.
const (
	userKeyPrefix = "bayou:user:"
	deckKeyPrefix = "bayou:deck:"
)

func userKey(username string) string {
	return fmt.Sprintf("%s%s", userKeyPrefix, username)
}

func deckKey(username string) string {
	return fmt.Sprintf("%s%s", deckKeyPrefix, username)
}
