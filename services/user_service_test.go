package services

import (
	"context"
	"errors"
	"lost-found/apperrors"
	"lost-found/dto"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func register(t *testing.T, svc *UserService, username, email, password string) uuid.UUID {
	t.Helper()
	user, err := svc.CreateUser(context.Background(), dto.RegisterInput{
		Username: username,
		Email:    email,
		Password: password,
	})
	require.NoError(t, err)
	return user.ID
}

func TestUserService_CreateUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))

	user, err := svc.CreateUser(ctx, dto.RegisterInput{
		Username:  "alice",
		Email:     "alice@example.com",
		Password:  "secret1",
		FirstName: "Alice",
	})
	require.NoError(t, err)
	assert.Empty(t, user.Password)
	assert.Equal(t, "Alice", user.FirstName)
	assert.False(t, user.CreatedAt.IsZero())
	assert.Nil(t, user.LastLogin)

	stored, err := svc.repository.FindByID(ctx, user.ID)
	require.NoError(t, err)
	assert.NotEqual(t, "secret1", stored.Password)
	assert.True(t, strings.HasPrefix(stored.Password, "$2"))
}

func TestUserService_CreateUserDuplicates(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))
	register(t, svc, "bob", "bob@example.com", "secret1")

	_, err := svc.CreateUser(ctx, dto.RegisterInput{Username: "bob", Email: "bob2@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))

	_, err = svc.CreateUser(ctx, dto.RegisterInput{Username: "bobby", Email: "bob@example.com", Password: "secret1"})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))

	_, err = svc.CreateUser(ctx, dto.RegisterInput{Username: "Bob", Email: "BOB@example.com", Password: "secret1"})
	assert.NoError(t, err)
}

func TestUserService_CreateUserValidation(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))

	_, err := svc.CreateUser(ctx, dto.RegisterInput{Username: "carol", Password: "secret1"})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.CreateUser(ctx, dto.RegisterInput{Username: "carol", Email: "c@example.com", Password: "12345"})
	require.Error(t, err)
	assert.Equal(t, "Password must be at least 6 characters", err.Error())

	_, err = svc.CreateUser(ctx, dto.RegisterInput{Username: "carol", Email: "c@example.com", Password: strings.Repeat("x", 80)})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))
}

func TestUserService_Authenticate(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))
	id := register(t, svc, "dave", "dave@example.com", "secret1")

	byName, err := svc.Authenticate(ctx, "dave", "secret1")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Equal(t, id, byName.ID)
	assert.Empty(t, byName.Password)
	require.NotNil(t, byName.LastLogin)

	byEmail, err := svc.Authenticate(ctx, "dave@example.com", "secret1")
	require.NoError(t, err)
	require.NotNil(t, byEmail)

	reloaded, err := svc.FindByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, reloaded.LastLogin)

	wrongPassword, err := svc.Authenticate(ctx, "dave", "secret2")
	require.NoError(t, err)
	assert.Nil(t, wrongPassword)

	unknown, err := svc.Authenticate(ctx, "nobody", "secret1")
	require.NoError(t, err)
	assert.Nil(t, unknown)
}

func TestUserService_IdenticalPasswordsHashDifferently(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))
	first := register(t, svc, "erin", "erin@example.com", "same-pass")
	second := register(t, svc, "frank", "frank@example.com", "same-pass")

	a, err := svc.repository.FindByID(ctx, first)
	require.NoError(t, err)
	b, err := svc.repository.FindByID(ctx, second)
	require.NoError(t, err)
	assert.NotEqual(t, a.Password, b.Password)
}

func TestUserService_Lookups(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))
	register(t, svc, "gina", "gina@example.com", "secret1")

	byName, err := svc.FindByUsername(ctx, "gina")
	require.NoError(t, err)
	require.NotNil(t, byName)
	assert.Empty(t, byName.Password)

	byEmail, err := svc.FindByEmail(ctx, "gina@example.com")
	require.NoError(t, err)
	require.NotNil(t, byEmail)
	assert.Empty(t, byEmail.Password)

	missing, err := svc.FindByID(ctx, uuid.New())
	require.NoError(t, err)
	assert.Nil(t, missing)
}

func TestUserService_UpdateProfile(t *testing.T) {
	ctx := context.Background()
	svc := newTestUserService(t, newDB(t))
	id := register(t, svc, "hank", "hank@example.com", "secret1")
	register(t, svc, "ivy", "ivy@example.com", "secret1")

	first, last := "Hank", "Hill"
	updated, err := svc.UpdateProfile(ctx, id, dto.UpdateProfileInput{FirstName: &first, LastName: &last})
	require.NoError(t, err)
	assert.Equal(t, "Hank", updated.FirstName)
	assert.Equal(t, "Hill", updated.LastName)
	assert.Empty(t, updated.Password)

	stillWorks, err := svc.Authenticate(ctx, "hank", "secret1")
	require.NoError(t, err)
	assert.NotNil(t, stillWorks)

	taken := "ivy"
	_, err = svc.UpdateProfile(ctx, id, dto.UpdateProfileInput{Username: &taken})
	assert.True(t, errors.Is(err, apperrors.ErrDuplicate))

	blank := "  "
	_, err = svc.UpdateProfile(ctx, id, dto.UpdateProfileInput{Email: &blank})
	assert.True(t, errors.Is(err, apperrors.ErrValidation))

	_, err = svc.UpdateProfile(ctx, uuid.New(), dto.UpdateProfileInput{FirstName: &first})
	assert.True(t, errors.Is(err, apperrors.ErrNotFound))
}
