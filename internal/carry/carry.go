// Package carry signs the round-1 state a client must echo back for round 2,
// so the server can detect edited pools or boards without storing anything.
package carry

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/freeeve/gridclash/pkg/battle"
)

var ErrInvalidToken = errors.New("invalid or expired carry token")

// Claims holds the carried state and the game it belongs to.
type Claims struct {
	GameID string              `json:"game_id"`
	State  battle.CarriedState `json:"state"`
	jwt.RegisteredClaims
}

// Signer issues and verifies carry tokens.
type Signer struct {
	secret []byte
	ttl    time.Duration
}

// NewSigner creates a Signer. Tokens expire after ttl.
func NewSigner(secret string, ttl time.Duration) *Signer {
	return &Signer{secret: []byte(secret), ttl: ttl}
}

// Sign returns an HS256 token over the carried state for gameID.
func (s *Signer) Sign(gameID string, state battle.CarriedState) (string, error) {
	now := time.Now()
	claims := &Claims{
		GameID: gameID,
		State:  state,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   gameID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Verify parses a token and returns its claims, or ErrInvalidToken.
func (s *Signer) Verify(tokenStr string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
