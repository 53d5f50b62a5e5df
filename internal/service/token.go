package service

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers expired, malformed and badly signed session
// tokens alike; callers treat them all as "not authenticated".
var ErrInvalidToken = errors.New("invalid session token")

// DefaultSessionTTL is how long a minted session stays valid.
const DefaultSessionTTL = 7 * 24 * time.Hour

// TokenService mints and verifies the bearer artifact that binds a
// session to a user id. It is deliberately narrow: one HS256 secret,
// subject = user id, nothing else resolved here.
type TokenService struct {
	Secret []byte
	Issuer string
	TTL    time.Duration
}

// Mint creates a signed session token for the given user id.
func (s *TokenService) Mint(userID string) (string, error) {
	ttl := s.TTL
	if ttl == 0 {
		ttl = DefaultSessionTTL
	}

	now := time.Now()
	claims := jwt.RegisteredClaims{
		Issuer:    s.Issuer,
		Subject:   userID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}

	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.Secret)
}

// Verify validates a session token and returns the user id it is bound
// to.
func (s *TokenService) Verify(raw string) (string, error) {
	token, err := jwt.ParseWithClaims(
		raw,
		&jwt.RegisteredClaims{},
		func(t *jwt.Token) (any, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, ErrInvalidToken
			}
			return s.Secret, nil
		},
		jwt.WithIssuer(s.Issuer),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return "", ErrInvalidToken
	}

	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
