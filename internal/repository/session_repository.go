package repository

import (
	"context"
	"time"

	redisapp "golden_hour/internal/storage/redis"

	"github.com/redis/go-redis/v9"
)

// SessionRepository tracks admin gateway sessions: the refresh-token
// whitelist and the per-session redirect flag backing the guard's one-shot
// redirect across gateway instances.
type SessionRepository interface {
	SaveRefreshToken(ctx context.Context, identityID, token string, exp time.Duration) error
	GetRefreshToken(ctx context.Context, identityID, token string) (bool, error)
	DeleteRefreshToken(ctx context.Context, identityID, token string) error
	DeleteAllSessions(ctx context.Context, identityID string) error
	MarkRedirected(ctx context.Context, sessionID string, ttl time.Duration) (bool, error)
}

type RedisSessionRepo struct {
	Client *redisapp.Client
}

func NewRedisSessionRepo(client *redisapp.Client) *RedisSessionRepo {
	return &RedisSessionRepo{Client: client}
}

func (r *RedisSessionRepo) SaveRefreshToken(ctx context.Context, identityID, token string, exp time.Duration) error {
	return r.Client.Set(ctx, refreshTokenKey(identityID, token), "1", exp).Err()
}

func (r *RedisSessionRepo) GetRefreshToken(ctx context.Context, identityID, token string) (bool, error) {
	val, err := r.Client.Get(ctx, refreshTokenKey(identityID, token)).Result()
	if err == redis.Nil {
		return false, nil
	}
	return val == "1", err
}

func (r *RedisSessionRepo) DeleteRefreshToken(ctx context.Context, identityID, token string) error {
	return r.Client.Del(ctx, refreshTokenKey(identityID, token)).Err()
}

func (r *RedisSessionRepo) DeleteAllSessions(ctx context.Context, identityID string) error {
	keys, err := r.Client.Keys(ctx, refreshTokenKey(identityID, "*")).Result()
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return r.Client.Del(ctx, keys...).Err()
}

// MarkRedirected records that the public-root redirect fired for this
// session. Returns true only for the first call; SetNX makes the one-shot
// hold even with several gateway replicas behind one session.
func (r *RedisSessionRepo) MarkRedirected(ctx context.Context, sessionID string, ttl time.Duration) (bool, error) {
	return r.Client.SetNX(ctx, redirectKey(sessionID), "1", ttl).Result()
}

func refreshTokenKey(identityID, token string) string {
	return "refresh:" + identityID + ":" + token
}

func redirectKey(sessionID string) string {
	return "redirected:" + sessionID
}
