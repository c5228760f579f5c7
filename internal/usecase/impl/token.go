package impl

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// syncTokenRandomBytes is the entropy behind each sync token.
const syncTokenRandomBytes = 16

// newSyncID builds an opaque session token from a time component and a
// cryptographically random suffix. Collisions are astronomically unlikely and
// are absorbed by the upsert keyed on the token.
func newSyncID(now time.Time) (string, error) {
	buf := make([]byte, syncTokenRandomBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}

	return fmt.Sprintf("sync_%d_%s", now.Unix(), hex.EncodeToString(buf)), nil
}
