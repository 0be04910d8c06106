package utils

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// SignInGuard bans an IP for a while after too many failed sign-ins within an hour.
// Counters live in Redis when available, otherwise in process memory.
type SignInGuard struct {
	rc          *redis.Client
	maxFailures int
	banFor      time.Duration
	now         func() time.Time

	mu      sync.Mutex
	entries map[string]*guardEntry
}

type guardEntry struct {
	hour        string
	failures    int
	bannedUntil time.Time
}

// NewSignInGuard returns a guard; maxFailures <= 0 disables it.
func NewSignInGuard(rc *redis.Client, maxFailures int, banFor time.Duration) *SignInGuard {
	if banFor <= 0 {
		banFor = time.Hour
	}
	return &SignInGuard{
		rc:          rc,
		maxFailures: maxFailures,
		banFor:      banFor,
		now:         time.Now,
		entries:     map[string]*guardEntry{},
	}
}

func guardKey(parts ...string) string {
	key := "signin"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}

func (g *SignInGuard) hour() string {
	return g.now().UTC().Format("2006010215")
}

// IsBanned reports whether ip is currently locked out. Redis errors fail open.
func (g *SignInGuard) IsBanned(ctx context.Context, ip string) bool {
	if g.maxFailures <= 0 {
		return false
	}
	if g.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		n, err := g.rc.Exists(ctx, guardKey("ban", ip)).Result()
		if err != nil {
			Logger.Warn("sign-in guard lookup failed", zap.Error(err))
			return false
		}
		return n > 0
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	e, ok := g.entries[ip]
	return ok && g.now().Before(e.bannedUntil)
}

// RecordFailure counts a failed attempt and bans ip once the hourly limit is reached.
func (g *SignInGuard) RecordFailure(ctx context.Context, ip string) {
	if g.maxFailures <= 0 {
		return
	}
	if g.rc != nil {
		ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
		defer cancel()
		key := guardKey("fail", ip, g.hour())
		n, err := g.rc.Incr(ctx, key).Result()
		if err != nil {
			Logger.Warn("sign-in guard record failed", zap.Error(err))
			return
		}
		if err := g.rc.Expire(ctx, key, time.Hour).Err(); err != nil {
			Logger.Warn("sign-in guard expiry failed", zap.String("key", key), zap.Error(err))
		}
		if int(n) >= g.maxFailures {
			if err := g.rc.Set(ctx, guardKey("ban", ip), "1", g.banFor).Err(); err != nil {
				Logger.Warn("sign-in guard ban failed", zap.String("ip", ip), zap.Error(err))
				return
			}
			Logger.Warn("sign-in temporarily banned", zap.String("ip", ip))
		}
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	g.pruneLocked()
	hour := g.hour()
	e, ok := g.entries[ip]
	if !ok || e.hour != hour {
		e = &guardEntry{hour: hour, bannedUntil: e.bannedUntilOrZero()}
		g.entries[ip] = e
	}
	e.failures++
	if e.failures >= g.maxFailures {
		e.bannedUntil = g.now().Add(g.banFor)
		Logger.Warn("sign-in temporarily banned", zap.String("ip", ip))
	}
}

func (e *guardEntry) bannedUntilOrZero() time.Time {
	if e == nil {
		return time.Time{}
	}
	return e.bannedUntil
}

func (g *SignInGuard) pruneLocked() {
	now, hour := g.now(), g.hour()
	for ip, e := range g.entries {
		if e.hour != hour && now.After(e.bannedUntil) {
			delete(g.entries, ip)
		}
	}
}
