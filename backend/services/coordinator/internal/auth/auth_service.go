package auth

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"gamecafe/backend/services/coordinator/internal/models"
)

// ErrInvalidCredentials covers both unknown users and bad passwords so the
// response does not reveal which one failed.
var ErrInvalidCredentials = errors.New("auth: invalid credentials")

// UserSource looks up accounts. Optional; when nil the service falls back
// to the configured bootstrap operator.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*models.User, error)
}

// Service authenticates kiosk logins and issues session tokens.
type Service struct {
	users     UserSource
	hasher    Hasher
	tokens    *TokenService
	bootstrap *models.User
	logger    *zap.Logger
}

// NewService builds the auth service. The bootstrap user (already hashed)
// is consulted when no user repository is configured.
func NewService(users UserSource, hasher Hasher, tokens *TokenService, bootstrap *models.User, logger *zap.Logger) *Service {
	return &Service{
		users:     users,
		hasher:    hasher,
		tokens:    tokens,
		bootstrap: bootstrap,
		logger:    logger,
	}
}

// Login verifies credentials and returns the user plus a signed token.
func (s *Service) Login(ctx context.Context, username, password string, stationID int64) (*models.User, string, error) {
	user, err := s.lookup(ctx, username)
	if err != nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrInvalidCredentials
	}

	if err := s.hasher.Compare(user.PasswordHash, password); err != nil {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(user.ID, user.Role, stationID)
	if err != nil {
		s.logger.Error("failed to issue token", zap.Int64("user_id", user.ID), zap.Error(err))
		return nil, "", err
	}

	s.logger.Info("user logged in",
		zap.Int64("user_id", user.ID),
		zap.Int64("station_id", stationID),
	)
	return user, token, nil
}

func (s *Service) lookup(ctx context.Context, username string) (*models.User, error) {
	if s.users != nil {
		return s.users.GetByUsername(ctx, username)
	}
	if s.bootstrap != nil && s.bootstrap.Username == username {
		copied := *s.bootstrap
		return &copied, nil
	}
	return nil, ErrInvalidCredentials
}
