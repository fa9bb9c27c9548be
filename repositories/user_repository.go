package repositories

import (
	"context"
	"errors"
	"fmt"
	"log"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/infra"
	"lost-found/models"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type IUserRepository interface {
	Create(ctx context.Context, user models.User) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	ExistsByUsernameOrEmail(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error)
	TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error
}

// UserRepository returns records with the password digest intact; stripping
// it is the service's job.
type UserRepository struct {
	db *infra.Database
}

func NewUserRepository(db *infra.Database) IUserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) users(ctx context.Context) (*gorm.DB, error) {
	return r.db.Collection(ctx, constants.CollectionUsers)
}

func (r *UserRepository) Create(ctx context.Context, user models.User) (*models.User, error) {
	coll, err := r.users(ctx)
	if err != nil {
		return nil, err
	}
	if user.ID == uuid.Nil {
		user.ID = uuid.New()
	}
	if err := coll.Create(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.Duplicate(constants.ErrDuplicateUser)
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	log.Printf("User created: %s", user.Username)
	return &user, nil
}

func (r *UserRepository) findOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	coll, err := r.users(ctx)
	if err != nil {
		return nil, err
	}
	var user models.User
	if err := coll.Where(query, args...).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return r.findOne(ctx, "username = ?", username)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

// ExistsByUsernameOrEmail ignores the record with id exclude, so profile
// updates do not collide with themselves.
func (r *UserRepository) ExistsByUsernameOrEmail(ctx context.Context, username, email string, exclude uuid.UUID) (bool, error) {
	coll, err := r.users(ctx)
	if err != nil {
		return false, err
	}
	var count int64
	result := coll.Where("(username = ? OR email = ?) AND id <> ?", username, email, exclude).Count(&count)
	if result.Error != nil {
		return false, fmt.Errorf("failed to check user uniqueness: %w", result.Error)
	}
	return count > 0, nil
}

func (r *UserRepository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.User, error) {
	for _, column := range []string{"id", "password", "created_at"} {
		delete(updates, column)
	}

	coll, err := r.users(ctx)
	if err != nil {
		return nil, err
	}
	if len(updates) > 0 {
		result := coll.Where("id = ?", id).Updates(updates)
		if result.Error != nil {
			if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
				return nil, apperrors.Duplicate(constants.ErrDuplicateUser)
			}
			return nil, fmt.Errorf("failed to update user: %w", result.Error)
		}
		if result.RowsAffected == 0 {
			return nil, apperrors.NotFound(constants.ErrUserNotFound)
		}
	}

	user, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NotFound(constants.ErrUserNotFound)
	}
	return user, nil
}

func (r *UserRepository) TouchLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	coll, err := r.users(ctx)
	if err != nil {
		return err
	}
	result := coll.Where("id = ?", id).Update("last_login", at)
	if result.Error != nil {
		return fmt.Errorf("failed to update last login: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return apperrors.NotFound(constants.ErrUserNotFound)
	}
	return nil
}
