package repositories

import (
	"context"
	"errors"
	"fmt"
	"lost-found/models"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const redisSessionPrefix = "session:"

// RedisSessionRepository keeps sessions as hashes whose TTL matches the
// session expiry, so Redis evicts them on its own.
type RedisSessionRepository struct {
	rdb *redis.Client
}

func NewRedisSessionRepository(rdb *redis.Client) ISessionRepository {
	return &RedisSessionRepository{rdb: rdb}
}

func redisSessionKey(id string) string {
	return redisSessionPrefix + id
}

func (r *RedisSessionRepository) Save(ctx context.Context, session models.Session) error {
	ttl := time.Until(time.Unix(session.ExpiresAt, 0))
	if ttl <= 0 {
		return fmt.Errorf("session %s already expired", session.ID)
	}
	key := redisSessionKey(session.ID)
	pipe := r.rdb.TxPipeline()
	pipe.HSet(ctx, key,
		"user_id", session.UserID.String(),
		"expires_at", session.ExpiresAt,
		"created_at", session.CreatedAt.Unix(),
	)
	pipe.Expire(ctx, key, ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *RedisSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	values, err := r.rdb.HGetAll(ctx, redisSessionKey(id)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", err)
	}
	if len(values) == 0 {
		return nil, nil
	}
	return parseRedisSession(id, values)
}

func parseRedisSession(id string, values map[string]string) (*models.Session, error) {
	userID, err := uuid.Parse(values["user_id"])
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	expiresAt, err := strconv.ParseInt(values["expires_at"], 10, 64)
	if err != nil {
		return nil, fmt.Errorf("corrupt session %s: %w", id, err)
	}
	createdAt, _ := strconv.ParseInt(values["created_at"], 10, 64)

	session := &models.Session{
		ID:        id,
		UserID:    userID,
		ExpiresAt: expiresAt,
		CreatedAt: time.Unix(createdAt, 0),
	}
	if session.Expired(time.Now()) {
		return nil, nil
	}
	return session, nil
}

func (r *RedisSessionRepository) Delete(ctx context.Context, id string) error {
	if err := r.rdb.Del(ctx, redisSessionKey(id)).Err(); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

// CleanExpired is a no-op: key TTLs already expire sessions.
func (r *RedisSessionRepository) CleanExpired(ctx context.Context) (int64, error) {
	return 0, nil
}
