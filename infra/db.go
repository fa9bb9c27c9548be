package infra

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"lost-found/apperrors"
	"lost-found/models"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Database is the process-wide persistence handle. It is created once in main
// and passed to every repository.
type Database struct {
	cfg *Config

	mu sync.RWMutex
	db *gorm.DB
}

func NewDatabase(cfg *Config) *Database {
	return &Database{cfg: cfg}
}

// sqliteDriverName is go-sqlite3 with lower() folding full Unicode case; the
// built-in one folds only A-Z.
const sqliteDriverName = "sqlite3_unicode"

var registerSQLiteDriver sync.Once

func unicodeSQLiteDriver() string {
	registerSQLiteDriver.Do(func() {
		sql.Register(sqliteDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc("lower", strings.ToLower, true)
			},
		})
	})
	return sqliteDriverName
}

func (d *Database) dialector() gorm.Dialector {
	if d.cfg.DBDriver == DriverPostgres {
		return postgres.Open(d.cfg.PostgresDSN())
	}
	return sqlite.New(sqlite.Config{
		DriverName: unicodeSQLiteDriver(),
		DSN:        d.cfg.SQLitePath,
	})
}

// Connect opens the connection pool and verifies it with a ping. Calling it
// again on a connected Database only re-checks liveness.
func (d *Database) Connect(ctx context.Context) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.db != nil {
		return d.ping(ctx, d.db)
	}

	db, err := gorm.Open(d.dialector(), &gorm.Config{
		TranslateError: true,
		Logger: logger.New(log.New(os.Stdout, "\r\n", log.LstdFlags), logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}

	if d.cfg.DBDriver == DriverSQLite {
		sqlDB, err := db.DB()
		if err != nil {
			return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
		}
		// sqlite serialises writers; a single connection avoids "database is locked".
		sqlDB.SetMaxOpenConns(1)
	}

	if err := d.ping(ctx, db); err != nil {
		if sqlDB, dbErr := db.DB(); dbErr == nil {
			_ = sqlDB.Close()
		}
		return err
	}

	d.db = db
	log.Printf("Setup %s database", d.cfg.DBDriver)
	return nil
}

func (d *Database) ping(ctx context.Context, db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("%w: %w", apperrors.ErrConnection, err)
	}
	return nil
}

// Ping checks liveness of an established connection.
func (d *Database) Ping(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return apperrors.ErrNotConnected
	}
	return d.ping(ctx, d.db)
}

// Collection returns a handle scoped to the named table and bound to ctx. The
// handle is a new session, so it can start any number of independent chains.
func (d *Database) Collection(ctx context.Context, name string) (*gorm.DB, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return nil, apperrors.ErrNotConnected
	}
	return d.db.WithContext(ctx).Table(name).Session(&gorm.Session{}), nil
}

func (d *Database) Migrate(ctx context.Context) error {
	d.mu.RLock()
	defer d.mu.RUnlock()
	if d.db == nil {
		return apperrors.ErrNotConnected
	}
	if err := d.db.WithContext(ctx).AutoMigrate(&models.User{}, &models.Item{}, &models.Session{}); err != nil {
		return fmt.Errorf("failed to migrate database: %w", err)
	}
	return nil
}

// Close releases the pool; a later Connect starts from scratch.
func (d *Database) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.db == nil {
		return nil
	}
	sqlDB, err := d.db.DB()
	d.db = nil
	if err != nil {
		return err
	}
	if err := sqlDB.Close(); err != nil {
		return fmt.Errorf("failed to close database: %w", err)
	}
	log.Println("Database connection closed")
	return nil
}
