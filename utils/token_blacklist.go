package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const revokedKeyPrefix = "jwt:revoked:"

// RevocationList remembers revoked token IDs until they would have expired.
// Redis is preferred; without it entries live in process memory.
type RevocationList struct {
	rc  *redis.Client
	now func() time.Time

	mu      sync.Mutex
	revoked map[string]time.Time
}

// NewRevocationList returns a list backed by rc, or by memory when rc is nil.
func NewRevocationList(rc *redis.Client) *RevocationList {
	return &RevocationList{rc: rc, now: time.Now, revoked: map[string]time.Time{}}
}

// Revoke marks the token ID as unusable until expiresAt.
func (l *RevocationList) Revoke(ctx context.Context, jti string, expiresAt time.Time) error {
	ttl := expiresAt.Sub(l.now())
	if jti == "" || ttl <= 0 {
		return nil
	}
	if l.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		return l.rc.Set(ctx, revokedKeyPrefix+jti, "1", ttl).Err()
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	l.pruneLocked()
	l.revoked[jti] = expiresAt
	return nil
}

// IsRevoked reports whether the token ID was revoked. A Redis error fails open
// so an outage does not lock every user out.
func (l *RevocationList) IsRevoked(ctx context.Context, jti string) bool {
	if l.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
		defer cancel()
		n, err := l.rc.Exists(ctx, revokedKeyPrefix+jti).Result()
		if err != nil {
			Logger.Warn("revocation lookup failed", zap.Error(err))
			return false
		}
		return n > 0
	}

	l.mu.Lock()
	defer l.mu.Unlock()
	exp, ok := l.revoked[jti]
	if !ok {
		return false
	}
	if l.now().After(exp) {
		delete(l.revoked, jti)
		return false
	}
	return true
}

func (l *RevocationList) pruneLocked() {
	now := l.now()
	for jti, exp := range l.revoked {
		if now.After(exp) {
			delete(l.revoked, jti)
		}
	}
}
