package util

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/ariebrainware/healthassist/config"
	"github.com/redis/go-redis/v9"
)

func sessionKey(token string) string {
	return fmt.Sprintf("session:%s", token)
}

func userSessionsKey(userID uint) string {
	return fmt.Sprintf("user_sessions:%d", userID)
}

// CacheSession stores token -> userID with the session's remaining lifetime and
// tracks the token in the per-user set. No-op when Redis is not configured.
func CacheSession(ctx context.Context, userID uint, token string, ttl time.Duration) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	pipe := rdb.TxPipeline()
	pipe.Set(ctx, sessionKey(token), strconv.FormatUint(uint64(userID), 10), ttl)
	pipe.SAdd(ctx, userSessionsKey(userID), token)
	_, err := pipe.Exec(ctx)
	return err
}

// LookupCachedSession returns the user owning the token. ok is false on a cache
// miss, when Redis is not configured, or on any Redis error; callers then fall
// back to the database.
func LookupCachedSession(ctx context.Context, token string) (userID uint, ok bool) {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return 0, false
	}
	val, err := rdb.Get(ctx, sessionKey(token)).Result()
	if err != nil {
		return 0, false
	}
	id, err := strconv.ParseUint(val, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

// RemoveCachedSession deletes one session token and removes it from the per-user set.
// If the set becomes empty after removal, it is deleted.
func RemoveCachedSession(ctx context.Context, userID uint, token string) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	if err := rdb.Del(ctx, sessionKey(token)).Err(); err != nil {
		return err
	}
	script := `
		local removed = redis.call('SREM', KEYS[1], ARGV[1])
		if removed > 0 then
			if redis.call('SCARD', KEYS[1]) == 0 then
				redis.call('DEL', KEYS[1])
			end
		end
		return removed
	`
	return rdb.Eval(ctx, script, []string{userSessionsKey(userID)}, token).Err()
}

// InvalidateUserSessions deletes every cached session of the user and the per-user set.
func InvalidateUserSessions(ctx context.Context, userID uint) error {
	rdb := config.GetRedisClient()
	if rdb == nil {
		return nil
	}
	members, err := rdb.SMembers(ctx, userSessionsKey(userID)).Result()
	if err != nil && !errors.Is(err, redis.Nil) {
		return err
	}
	for _, tok := range members {
		_ = rdb.Del(ctx, sessionKey(tok)).Err()
	}
	return rdb.Del(ctx, userSessionsKey(userID)).Err()
}
