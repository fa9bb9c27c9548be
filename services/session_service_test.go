package services

import (
	"context"
	"errors"
	"lost-found/models"
	"lost-found/repositories"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockSessionRepository struct {
	mock.Mock
}

func (m *MockSessionRepository) Save(ctx context.Context, session models.Session) error {
	return m.Called(session).Error(0)
}

func (m *MockSessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Session), args.Error(1)
}

func (m *MockSessionRepository) Delete(ctx context.Context, id string) error {
	return m.Called(id).Error(0)
}

func (m *MockSessionRepository) CleanExpired(ctx context.Context) (int64, error) {
	args := m.Called()
	return args.Get(0).(int64), args.Error(1)
}

func newTestSessionService(t *testing.T) *SessionService {
	t.Helper()
	repo := repositories.NewSessionRepository(newDB(t))
	return NewSessionService(repo, "test-secret", 24*time.Hour).(*SessionService)
}

func TestSessionService_StartResolveDestroy(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(t)
	userID := uuid.New()

	token, err := svc.Start(ctx, userID)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	session, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	require.NotNil(t, session)
	assert.Equal(t, userID, session.UserID)

	require.NoError(t, svc.Destroy(ctx, token))
	gone, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, gone)
}

func TestSessionService_RejectsForgedTokens(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(t)
	token, err := svc.Start(ctx, uuid.New())
	require.NoError(t, err)

	other := NewSessionService(svc.repository, "another-secret", time.Hour)
	forged, err := other.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, forged)

	none := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.RegisteredClaims{ID: "x"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	resolved, err := svc.Resolve(ctx, unsigned)
	require.NoError(t, err)
	assert.Nil(t, resolved)

	garbage, err := svc.Resolve(ctx, "not-a-token")
	require.NoError(t, err)
	assert.Nil(t, garbage)

	empty, err := svc.Resolve(ctx, "")
	require.NoError(t, err)
	assert.Nil(t, empty)
}

func TestSessionService_Expiry(t *testing.T) {
	ctx := context.Background()
	svc := newTestSessionService(t)
	start := time.Now()
	svc.now = func() time.Time { return start }

	token, err := svc.Start(ctx, uuid.New())
	require.NoError(t, err)

	svc.now = func() time.Time { return start.Add(25 * time.Hour) }
	expired, err := svc.Resolve(ctx, token)
	require.NoError(t, err)
	assert.Nil(t, expired)

	require.NoError(t, svc.Destroy(ctx, token))
}

func TestSessionService_StoreFailures(t *testing.T) {
	ctx := context.Background()
	repo := new(MockSessionRepository)
	svc := NewSessionService(repo, "test-secret", time.Hour)
	storeErr := errors.New("store unavailable")

	repo.On("Save", mock.AnythingOfType("models.Session")).Return(storeErr).Once()
	_, err := svc.Start(ctx, uuid.New())
	assert.ErrorIs(t, err, storeErr)

	repo.On("Save", mock.AnythingOfType("models.Session")).Return(nil).Once()
	token, err := svc.Start(ctx, uuid.New())
	require.NoError(t, err)

	repo.On("Find", mock.AnythingOfType("string")).Return(nil, storeErr).Once()
	_, err = svc.Resolve(ctx, token)
	assert.ErrorIs(t, err, storeErr)

	repo.On("Delete", mock.AnythingOfType("string")).Return(storeErr).Once()
	assert.ErrorIs(t, svc.Destroy(ctx, token), storeErr)

	repo.On("CleanExpired").Return(int64(3), nil).Once()
	swept, err := svc.Sweep(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), swept)
	assert.Equal(t, time.Hour, svc.TTL())

	repo.AssertExpectations(t)
}
