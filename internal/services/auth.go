package services

import (
	"context"
	"errors"

	"github.com/monocle-dev/taskmanager/internal/auth"
	"github.com/monocle-dev/taskmanager/internal/models"
	"github.com/monocle-dev/taskmanager/internal/types"
)

// AuthService registers users, exchanges credentials for tokens and resolves
// the principal behind a token.
type AuthService struct {
	users  *UserService
	tokens *auth.TokenManager
}

func NewAuthService(users *UserService, tokens *auth.TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

func (s *AuthService) Register(ctx context.Context, req types.UserRequest) (*models.User, error) {
	return s.users.Create(ctx, req)
}

func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return "", nil, ErrInvalidCredentials
		}
		return "", nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return "", nil, ErrInvalidCredentials
	}

	token, err := s.tokens.GenerateJWT(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// ResolvePrincipal verifies the token and loads the user it names by id, so
// the token survives a change of email. Any
// failure yields auth.ErrInvalidToken except store errors, which are
// returned as is.
func (s *AuthService) ResolvePrincipal(ctx context.Context, token string) (*models.User, error) {
	claims, err := s.tokens.VerifyJWT(token)
	if err != nil {
		return nil, auth.ErrInvalidToken
	}

	user, err := s.users.Get(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, auth.ErrInvalidToken
		}
		return nil, err
	}

	return user, nil
}

func (s *AuthService) TokenTTL() int {
	return int(s.tokens.TTL().Seconds())
}
