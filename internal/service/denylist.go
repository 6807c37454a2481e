package service

import (
	"context"
	"time"

	"todo_webapp/internal/logger"

	redis "github.com/redis/go-redis/v9"
)

// Denylist revokes tokens at logout by remembering their jti in redis until
// the token would have expired anyway. Without redis every method is a no-op:
// logout stays best-effort, matching the fail-open rate limiter.
type Denylist struct {
	client *redis.Client
}

// NewDenylist connects to redis. An empty addr or a failed ping leaves the
// denylist disabled rather than taking the server down.
func NewDenylist(addr, password string, db int) *Denylist {
	if addr == "" {
		return &Denylist{}
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		logger.Warn("redis unreachable, token denylist disabled", "error", err)
		return &Denylist{}
	}
	return &Denylist{client: client}
}

// Revoke remembers the jti until expiresAt.
func (d *Denylist) Revoke(ctx context.Context, jti string, expiresAt time.Time) {
	if d.client == nil || jti == "" {
		return
	}
	ttl := time.Until(expiresAt)
	if ttl <= 0 {
		return // already expired, nothing to deny
	}
	if err := d.client.Set(ctx, "deny:"+jti, "1", ttl).Err(); err != nil {
		logger.Error("failed to denylist token", "jti", jti, "error", err)
	}
}

// Revoked reports whether the jti was denylisted. Fail-open on redis errors.
func (d *Denylist) Revoked(ctx context.Context, jti string) bool {
	if d.client == nil || jti == "" {
		return false
	}
	n, err := d.client.Exists(ctx, "deny:"+jti).Result()
	if err != nil {
		return false
	}
	return n > 0
}
