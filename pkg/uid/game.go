package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a new game.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateGuestID returns a random identifier for an anonymous player.
func GenerateGuestID() string {
	return "guest_" + uuid.NewString()
}

// IsGuestID reports whether id looks like one produced by GenerateGuestID.
func IsGuestID(id string) bool {
	const prefix = "guest_"
	if len(id) <= len(prefix) || id[:len(prefix)] != prefix {
		return false
	}
	_, err := uuid.Parse(id[len(prefix):])
	return err == nil
}
