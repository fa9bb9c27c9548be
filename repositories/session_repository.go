package repositories

import (
	"context"
	"errors"
	"fmt"
	"lost-found/constants"
	"lost-found/infra"
	"lost-found/models"
	"time"

	"gorm.io/gorm"
)

// ISessionRepository is the server-side session store.
type ISessionRepository interface {
	Save(ctx context.Context, session models.Session) error
	// Find returns nil when the session is unknown or expired.
	Find(ctx context.Context, id string) (*models.Session, error)
	Delete(ctx context.Context, id string) error
	CleanExpired(ctx context.Context) (int64, error)
}

type SessionRepository struct {
	db *infra.Database
}

func NewSessionRepository(db *infra.Database) ISessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) sessions(ctx context.Context) (*gorm.DB, error) {
	return r.db.Collection(ctx, constants.CollectionSessions)
}

func (r *SessionRepository) Save(ctx context.Context, session models.Session) error {
	coll, err := r.sessions(ctx)
	if err != nil {
		return err
	}
	if err := coll.Create(&session).Error; err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Find(ctx context.Context, id string) (*models.Session, error) {
	coll, err := r.sessions(ctx)
	if err != nil {
		return nil, err
	}
	var session models.Session
	result := coll.Where("id = ? AND expires_at > ?", id, time.Now().Unix()).First(&session)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find session: %w", result.Error)
	}
	return &session, nil
}

func (r *SessionRepository) Delete(ctx context.Context, id string) error {
	coll, err := r.sessions(ctx)
	if err != nil {
		return err
	}
	if err := coll.Where("id = ?", id).Delete(&models.Session{}).Error; err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	return nil
}

func (r *SessionRepository) CleanExpired(ctx context.Context) (int64, error) {
	coll, err := r.sessions(ctx)
	if err != nil {
		return 0, err
	}
	result := coll.Where("expires_at <= ?", time.Now().Unix()).Delete(&models.Session{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to clean sessions: %w", result.Error)
	}
	return result.RowsAffected, nil
}
