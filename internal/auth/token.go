package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/korvo-dev/echofeed/backend/internal/models"
)

// DefaultTokenTTL bounds the lifetime of issued tokens. Validity is still
// stateless: nothing server-side records which tokens exist.
const DefaultTokenTTL = 72 * time.Hour

var (
	ErrEmptySecret  = errors.New("auth: signing secret must not be empty")
	ErrInvalidToken = errors.New("auth: invalid token")
)

// Codec signs and verifies bearer tokens with a process-lifetime HMAC secret.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

// NewCodec builds a Codec. An absent secret is a startup error, not a
// per-call one.
func NewCodec(secret string, ttl time.Duration) (*Codec, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &Codec{secret: []byte(secret), ttl: ttl}, nil
}

// Sign issues a token for the given user id with issued-at and expiry claims.
func (c *Codec) Sign(userID uuid.UUID) (string, error) {
	now := time.Now()
	claims := &models.TokenClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(c.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", fmt.Errorf("signing token: %w", err)
	}
	return signed, nil
}

// Verify checks the signature and expiry of a token and returns its claims.
// Any malformed, tampered, differently-signed or expired token fails with
// ErrInvalidToken.
func (c *Codec) Verify(tokenString string) (*models.TokenClaims, error) {
	claims := &models.TokenClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return c.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	return claims, nil
}
