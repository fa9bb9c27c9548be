package services

import (
	"context"
	"errors"
	"fmt"
	"lost-found/apperrors"
	"lost-found/constants"
	"lost-found/dto"
	"lost-found/models"
	"lost-found/repositories"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

type IUserService interface {
	CreateUser(ctx context.Context, input dto.RegisterInput) (*models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	Authenticate(ctx context.Context, identifier string, password string) (*models.User, error)
	UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileInput) (*models.User, error)
}

// UserService never hands out a record that still carries the password
// digest.
type UserService struct {
	repository repositories.IUserRepository
	hashCost   int
	now        func() time.Time
}

func NewUserService(repository repositories.IUserRepository) IUserService {
	return &UserService{
		repository: repository,
		hashCost:   bcrypt.DefaultCost,
		now:        time.Now,
	}
}

func (s *UserService) CreateUser(ctx context.Context, input dto.RegisterInput) (*models.User, error) {
	if input.Username == "" || input.Email == "" || input.Password == "" {
		return nil, apperrors.Validation(constants.ErrMissingAuthFields)
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, apperrors.Validation(constants.ErrPasswordTooShort)
	}

	exists, err := s.repository.ExistsByUsernameOrEmail(ctx, input.Username, input.Email, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.Duplicate(constants.ErrDuplicateUser)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.hashCost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return nil, apperrors.Validation(constants.ErrPasswordTooLong)
		}
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := s.repository.Create(ctx, models.User{
		Username:  input.Username,
		Email:     input.Email,
		Password:  string(hashedPassword),
		FirstName: input.FirstName,
		LastName:  input.LastName,
		CreatedAt: s.now().UTC(),
	})
	if err != nil {
		return nil, err
	}
	return created.WithoutPassword(), nil
}

func stripped(user *models.User, err error) (*models.User, error) {
	if err != nil || user == nil {
		return nil, err
	}
	return user.WithoutPassword(), nil
}

func (s *UserService) FindByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return stripped(s.repository.FindByID(ctx, id))
}

func (s *UserService) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	return stripped(s.repository.FindByUsername(ctx, username))
}

func (s *UserService) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return stripped(s.repository.FindByEmail(ctx, email))
}

// Authenticate returns nil, nil for an unknown identifier and for a wrong
// password alike, so callers cannot tell the two apart.
func (s *UserService) Authenticate(ctx context.Context, identifier string, password string) (*models.User, error) {
	lookups := []func(context.Context, string) (*models.User, error){
		s.repository.FindByUsername,
		s.repository.FindByEmail,
	}
	for _, lookup := range lookups {
		candidate, err := lookup(ctx, identifier)
		if err != nil {
			return nil, err
		}
		if candidate == nil {
			continue
		}
		if bcrypt.CompareHashAndPassword([]byte(candidate.Password), []byte(password)) != nil {
			continue
		}

		loginAt := s.now().UTC()
		if err := s.repository.TouchLastLogin(ctx, candidate.ID, loginAt); err != nil {
			return nil, err
		}
		candidate.LastLogin = &loginAt
		return candidate.WithoutPassword(), nil
	}
	return nil, nil
}

func (s *UserService) UpdateProfile(ctx context.Context, id uuid.UUID, input dto.UpdateProfileInput) (*models.User, error) {
	current, err := s.repository.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, apperrors.NotFound(constants.ErrUserNotFound)
	}

	updates := map[string]any{}
	username, email := current.Username, current.Email
	if input.Username != nil {
		username = strings.TrimSpace(*input.Username)
		if username == "" {
			return nil, apperrors.Validation(constants.ErrBlankProfileField)
		}
		updates["username"] = username
	}
	if input.Email != nil {
		email = strings.TrimSpace(*input.Email)
		if email == "" {
			return nil, apperrors.Validation(constants.ErrBlankProfileField)
		}
		updates["email"] = email
	}
	if input.FirstName != nil {
		updates["first_name"] = *input.FirstName
	}
	if input.LastName != nil {
		updates["last_name"] = *input.LastName
	}

	if username != current.Username || email != current.Email {
		exists, err := s.repository.ExistsByUsernameOrEmail(ctx, username, email, id)
		if err != nil {
			return nil, err
		}
		if exists {
			return nil, apperrors.Duplicate(constants.ErrDuplicateUser)
		}
	}

	return stripped(s.repository.Update(ctx, id, updates))
}
