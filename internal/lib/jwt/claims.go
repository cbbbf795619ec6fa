// Package jwt implements generation and parsing of the session tokens issued
// at login, carrying the account's email, role and id as custom claims.
package jwt

import (
	"time"
)

// Maker describes generation and parsing of session tokens.
type Maker interface {
	// GenerateToken issues a signed token for the given account.
	GenerateToken(email, role, userID string) (string, error)
	// ParseToken validates a token and returns its claims.
	ParseToken(tokenStr string) (*CustomClaims, error)
}

// MakerImpl implements Maker with an HMAC secret and a fixed token lifetime.
type MakerImpl struct {
	secretKey string
	tokenTTL  time.Duration
}

// NewMaker builds a MakerImpl from the signing secret and the token TTL.
func NewMaker(secretKey string, ttl time.Duration) *MakerImpl {
	return &MakerImpl{
		secretKey: secretKey,
		tokenTTL:  ttl,
	}
}
