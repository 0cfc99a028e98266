package auth

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

const blacklistKeyPrefix = "jwt:blacklist:"

// Blacklist records revoked token IDs until their natural expiration. Entries
// are stored in redis when a client is supplied, with an in-memory fallback
// so logout still works in single-instance deployments without redis.
type Blacklist struct {
	rdb *redis.Client

	mu      sync.RWMutex
	entries map[string]time.Time
}

// NewBlacklist creates a Blacklist. rdb may be nil.
func NewBlacklist(rdb *redis.Client) *Blacklist {
	return &Blacklist{
		rdb:     rdb,
		entries: map[string]time.Time{},
	}
}

// Revoke stores a token ID with a TTL matching the token expiration.
func (b *Blacklist) Revoke(tokenID string, expiresAt time.Time) {
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return
	}

	if b.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := b.rdb.Set(ctx, blacklistKeyPrefix+tokenID, "1", ttl).Err(); err == nil {
			return
		}
		// Fall through to memory on redis failure.
	}

	b.mu.Lock()
	b.entries[tokenID] = expiresAt
	b.mu.Unlock()
}

// IsRevoked checks whether a token ID was revoked before natural expiration.
func (b *Blacklist) IsRevoked(tokenID string) bool {
	if b.rdb != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if n, err := b.rdb.Exists(ctx, blacklistKeyPrefix+tokenID).Result(); err == nil && n > 0 {
			return true
		}
	}

	b.mu.RLock()
	expiresAt, ok := b.entries[tokenID]
	b.mu.RUnlock()
	if !ok {
		return false
	}

	if time.Now().After(expiresAt) {
		b.mu.Lock()
		delete(b.entries, tokenID)
		b.mu.Unlock()
		return false
	}
	return true
}
