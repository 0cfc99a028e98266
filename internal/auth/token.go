package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrTokenRevoked = errors.New("token revoked")
)

// Claims are the custom JWT claims carried by every issued token. The ID
// (jti) registered claim identifies the token for revocation.
type Claims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// TokenManager issues and validates HS256 bearer tokens. Revocation state
// lives in the injected Blacklist.
type TokenManager struct {
	secret    []byte
	ttl       time.Duration
	blacklist *Blacklist
}

// NewTokenManager creates a TokenManager. blacklist may use the in-memory
// fallback when no redis client is configured.
func NewTokenManager(secret string, ttl time.Duration, blacklist *Blacklist) *TokenManager {
	return &TokenManager{
		secret:    []byte(secret),
		ttl:       ttl,
		blacklist: blacklist,
	}
}

// Generate issues a signed token for the given user identity.
func (m *TokenManager) Generate(userID uint, username string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// Parse validates a token string and returns its claims. Revoked tokens fail
// with ErrTokenRevoked.
func (m *TokenManager) Parse(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, ErrInvalidToken
	}

	if m.blacklist != nil && m.blacklist.IsRevoked(claims.ID) {
		return nil, ErrTokenRevoked
	}

	return claims, nil
}

// Revoke blacklists the token behind the given claims until its natural
// expiration.
func (m *TokenManager) Revoke(claims *Claims) {
	if m.blacklist == nil || claims.ExpiresAt == nil {
		return
	}
	m.blacklist.Revoke(claims.ID, claims.ExpiresAt.Time)
}
