package repositories

import (
	"context"
	"lost-found/models"
	"strconv"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRedisSession(t *testing.T) {
	userID := uuid.New()
	expiresAt := time.Now().Add(time.Hour).Unix()

	session, err := parseRedisSession("abc", map[string]string{
		"user_id":    userID.String(),
		"expires_at": strconv.FormatInt(expiresAt, 10),
		"created_at": "1700000000",
	})
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, "abc", session.ID)
	assert.Equal(t, userID, session.UserID)
	assert.Equal(t, expiresAt, session.ExpiresAt)

	expired, err := parseRedisSession("abc", map[string]string{
		"user_id":    userID.String(),
		"expires_at": strconv.FormatInt(time.Now().Add(-time.Second).Unix(), 10),
	})
	require.NoError(t, err)
	assert.Nil(t, expired)

	_, err = parseRedisSession("abc", map[string]string{"user_id": "not-a-uuid", "expires_at": "1"})
	assert.Error(t, err)
}

func TestRedisSessionRepository_Unreachable(t *testing.T) {
	rdb := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 200 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { _ = rdb.Close() })
	repo := NewRedisSessionRepository(rdb)
	ctx := context.Background()

	err := repo.Save(ctx, models.Session{ID: "s1", UserID: uuid.New(), ExpiresAt: time.Now().Add(time.Hour).Unix()})
	assert.Error(t, err)

	_, err = repo.Find(ctx, "s1")
	assert.Error(t, err)

	err = repo.Save(ctx, models.Session{ID: "s2", UserID: uuid.New(), ExpiresAt: time.Now().Add(-time.Hour).Unix()})
	assert.ErrorContains(t, err, "already expired")
}
