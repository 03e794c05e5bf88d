package auth

import (
	"context"
	"errors"
	"fmt"

	domain "github.com/example/produto-api/domain/user"
)

var (
	// ErrInvalidCredentials is returned when login credentials are wrong,
	// for both unknown logins and password mismatches.
	ErrInvalidCredentials = errors.New("login ou senha incorretos")
	// ErrUserUnknown is returned when an authenticated id maps to no user row.
	ErrUserUnknown = errors.New("usuario desconhecido")
	// ErrAdminRequired is returned when the user lacks the ADMIN role.
	ErrAdminRequired = errors.New("role de ADMIN requerida")
)

// Port defines the authentication operations consumed by the API module.
type Port interface {
	Login(ctx context.Context, login, senha string) (*domain.User, string, error)
	VerifyToken(token string) (uint, error)
	AuthorizeAdmin(ctx context.Context, userID uint) error
}

// Service handles authentication and authorization business logic.
type Service struct {
	users  *UserRepository
	hasher *PasswordHasher
	tokens *TokenManager
}

var _ Port = (*Service)(nil)

// NewService creates a new auth Service.
func NewService(users *UserRepository, hasher *PasswordHasher, tokens *TokenManager) *Service {
	return &Service{
		users:  users,
		hasher: hasher,
		tokens: tokens,
	}
}

// Login authenticates a user and returns the user row together with a
// freshly issued session token. Unknown logins and password mismatches
// both yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, login, senha string) (*domain.User, string, error) {
	u, err := s.users.FindByLogin(ctx, login)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return nil, "", ErrInvalidCredentials
		}
		return nil, "", fmt.Errorf("failed to find user: %w", err)
	}

	if !s.hasher.Verify(senha, u.Senha) {
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.tokens.Generate(u.ID)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	return u, token, nil
}

// VerifyToken validates a session token and returns the embedded user id.
func (s *Service) VerifyToken(token string) (uint, error) {
	return s.tokens.Verify(token)
}

// AuthorizeAdmin admits the given user only when its role set contains
// ADMIN. ErrUserUnknown means the id maps to no row; any other lookup
// failure is a store error.
func (s *Service) AuthorizeAdmin(ctx context.Context, userID uint) error {
	u, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrUserNotFound) {
			return ErrUserUnknown
		}
		return fmt.Errorf("failed to load user roles: %w", err)
	}

	if !u.IsAdmin() {
		return ErrAdminRequired
	}
	return nil
}

// TokenTTLSeconds returns the configured session lifetime in seconds.
func (s *Service) TokenTTLSeconds() int64 {
	return s.tokens.TTLSeconds()
}
