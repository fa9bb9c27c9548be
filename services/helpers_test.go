package services

import (
	"lost-found/infra"
	"lost-found/infra/infratest"
	"lost-found/repositories"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"
)

func newTestUserService(t *testing.T, db *infra.Database) *UserService {
	t.Helper()
	svc := NewUserService(repositories.NewUserRepository(db)).(*UserService)
	svc.hashCost = bcrypt.MinCost
	return svc
}

func newTestItemService(t *testing.T, db *infra.Database, clock func() time.Time) *ItemService {
	t.Helper()
	svc := NewItemService(repositories.NewItemRepository(db)).(*ItemService)
	svc.now = clock
	return svc
}

// tickingClock returns a clock that advances one minute per call.
func tickingClock() func() time.Time {
	current := time.Date(2025, 4, 1, 8, 0, 0, 0, time.UTC)
	return func() time.Time {
		current = current.Add(time.Minute)
		return current
	}
}

func newDB(t *testing.T) *infra.Database {
	return infratest.NewDatabase(t)
}
