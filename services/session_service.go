package services

import (
	"context"
	"errors"
	"fmt"
	"lost-found/models"
	"lost-found/repositories"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

var errInvalidSessionToken = errors.New("invalid session token")

type ISessionService interface {
	// Start stores a new session for userID and returns the signed cookie value.
	Start(ctx context.Context, userID uuid.UUID) (string, error)
	// Resolve returns nil, nil for forged, expired or unknown cookies.
	Resolve(ctx context.Context, token string) (*models.Session, error)
	Destroy(ctx context.Context, token string) error
	Sweep(ctx context.Context) (int64, error)
	TTL() time.Duration
}

// SessionService keeps session state server-side. The cookie holds only an
// HS256-signed token whose jti is the session id.
type SessionService struct {
	repository repositories.ISessionRepository
	secret     []byte
	ttl        time.Duration
	now        func() time.Time
}

func NewSessionService(repository repositories.ISessionRepository, secret string, ttl time.Duration) ISessionService {
	return &SessionService{
		repository: repository,
		secret:     []byte(secret),
		ttl:        ttl,
		now:        time.Now,
	}
}

func (s *SessionService) TTL() time.Duration {
	return s.ttl
}

func (s *SessionService) Start(ctx context.Context, userID uuid.UUID) (string, error) {
	now := s.now()
	session := models.Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		ExpiresAt: now.Add(s.ttl).Unix(),
		CreatedAt: now.UTC(),
	}
	if err := s.repository.Save(ctx, session); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ID:        session.ID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(time.Unix(session.ExpiresAt, 0)),
	})
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session: %w", err)
	}
	return signed, nil
}

func (s *SessionService) sessionID(token string, opts ...jwt.ParserOption) (string, error) {
	opts = append(opts, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(s.now))
	claims := &jwt.RegisteredClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		return "", fmt.Errorf("%w: %w", errInvalidSessionToken, err)
	}
	if !parsed.Valid || claims.ID == "" {
		return "", errInvalidSessionToken
	}
	return claims.ID, nil
}

func (s *SessionService) Resolve(ctx context.Context, token string) (*models.Session, error) {
	if token == "" {
		return nil, nil
	}
	id, err := s.sessionID(token)
	if err != nil {
		return nil, nil
	}
	session, err := s.repository.Find(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil || session.Expired(s.now()) {
		return nil, nil
	}
	return session, nil
}

// Destroy removes the server-side session. Expired cookies are still
// accepted here so their rows do not linger.
func (s *SessionService) Destroy(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	id, err := s.sessionID(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}
	return s.repository.Delete(ctx, id)
}

func (s *SessionService) Sweep(ctx context.Context) (int64, error) {
	return s.repository.CleanExpired(ctx)
}
