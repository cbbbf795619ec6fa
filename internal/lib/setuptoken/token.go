// Package setuptoken generates the one-time secrets embedded in password
// setup links. Tokens are 32 bytes from crypto/rand, hex-encoded, giving 256
// bits of entropy per link.
package setuptoken

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"time"
)

// TTL is how long a freshly issued setup link stays valid.
const TTL = 7 * 24 * time.Hour

// New returns a fresh random token.
func New() (string, error) {
	const op = "setuptoken.New"
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}
	return hex.EncodeToString(buf), nil
}
