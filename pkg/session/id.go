package session

import (
	"crypto/rand"
	"encoding/base64"
	"errors"
)

const idBytes = 32

// GenerateID returns 32 random bytes encoded as unpadded base64url.
func GenerateID() (string, error) {
	b := make([]byte, idBytes)
	if _, err := rand.Read(b); err != nil {
		return "", errors.Join(ErrTokenGeneration, err)
	}
	return base64.RawURLEncoding.EncodeToString(b), nil
}
