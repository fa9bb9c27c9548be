// Package infratest provides a migrated in-memory database for tests.
package infratest

import (
	"context"
	"fmt"
	"lost-found/infra"
	"testing"
	"time"

	"github.com/google/uuid"
)

func Config() *infra.Config {
	return &infra.Config{
		Env:           "test",
		DBDriver:      infra.DriverSQLite,
		SQLitePath:    fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString()),
		SessionSecret: "test-session-secret",
		SessionTTL:    24 * time.Hour,
		SessionStore:  infra.SessionStoreDB,
	}
}

// NewDatabase connects and migrates a private in-memory sqlite database that
// is closed when the test ends.
func NewDatabase(t testing.TB) *infra.Database {
	t.Helper()
	db := infra.NewDatabase(Config())
	ctx := context.Background()
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("connect: %v", err)
	}
	if err := db.Migrate(ctx); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}
