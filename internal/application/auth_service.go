package application

import (
	"context"
	"errors"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/taskord/taskord-api/internal/domain/entity"
	repo "github.com/taskord/taskord-api/internal/domain/repository"
	"github.com/taskord/taskord-api/pkg/helpers"
)

var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameTaken      = errors.New("username already taken")
)

// AuthService is the credential store facade: it owns registration and the
// login flow that exchanges credentials for a bearer token.
type AuthService struct {
	Users  repo.UserRepository
	Tokens *helpers.TokenManager
	Logger *logrus.Logger
}

func NewAuthService(users repo.UserRepository, tokens *helpers.TokenManager, logger *logrus.Logger) *AuthService {
	return &AuthService{Users: users, Tokens: tokens, Logger: logger}
}

// Register creates a user with a bcrypt-hashed password. Password policy
// is enforced at the binding layer; uniqueness by the storage layer.
func (s *AuthService) Register(ctx context.Context, username, password string) (*entity.User, error) {
	hash, err := helpers.HashPassword(password)
	if err != nil {
		return nil, err
	}
	u := &entity.User{Username: username, Password: hash}
	if err := s.Users.Create(ctx, u); err != nil {
		if errors.Is(err, repo.ErrDuplicate) {
			return nil, ErrUsernameTaken
		}
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("create user failed")
		}
		return nil, err
	}
	return u, nil
}

// Login verifies the credentials and issues a token. Unknown username and
// wrong password collapse into the same ErrInvalidCredentials so clients
// cannot enumerate accounts.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, time.Time, error) {
	u, err := s.Users.GetByUsername(ctx, username)
	if err != nil || u == nil {
		return "", time.Time{}, ErrInvalidCredentials
	}
	if !helpers.CompareHashAndPassword(u.Password, password) {
		return "", time.Time{}, ErrInvalidCredentials
	}
	token, exp, err := s.Tokens.Generate(u.Username)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("username", username).Error("generate token failed")
		}
		return "", time.Time{}, err
	}
	return token, exp, nil
}
