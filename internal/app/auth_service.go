package app

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"portal-learning/internal/domain"
)

// UserStore persists portal accounts.
type UserStore interface {
	GetUser(ctx context.Context, id int64) (domain.User, error)
	GetUserByUsername(ctx context.Context, username string) (domain.User, error)
	CreateUser(ctx context.Context, user domain.User) (domain.User, error)
}

// TokenStore maps opaque session tokens to user IDs with a TTL.
type TokenStore interface {
	PutToken(ctx context.Context, token string, userID int64) error
	ResolveToken(ctx context.Context, token string) (int64, error)
	DeleteToken(ctx context.Context, token string) error
}

// AuthService implements session-based authentication: login issues an opaque
// bearer token, middleware resolves it back into a user.
type AuthService struct {
	users  UserStore
	tokens TokenStore
}

func NewAuthService(users UserStore, tokens TokenStore) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Login validates credentials and issues a session token.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, domain.User, error) {
	user, err := s.users.GetUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.User{}, domain.ErrInvalidCredentials
		}
		return "", domain.User{}, err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", domain.User{}, domain.ErrInvalidCredentials
	}

	buf := make([]byte, 24)
	if _, err := rand.Read(buf); err != nil {
		return "", domain.User{}, fmt.Errorf("session token: %w", err)
	}
	token := hex.EncodeToString(buf)
	if err := s.tokens.PutToken(ctx, token, user.ID); err != nil {
		return "", domain.User{}, fmt.Errorf("store session: %w", err)
	}
	return token, user, nil
}

// Logout invalidates a session token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.tokens.DeleteToken(ctx, token)
}

// Authenticate resolves a session token into the user it belongs to.
func (s *AuthService) Authenticate(ctx context.Context, token string) (domain.User, error) {
	if token == "" {
		return domain.User{}, domain.ErrUnauthenticated
	}
	userID, err := s.tokens.ResolveToken(ctx, token)
	if err != nil {
		return domain.User{}, err
	}
	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.User{}, domain.ErrUnauthenticated
		}
		return domain.User{}, err
	}
	return user, nil
}

// Register creates an account with a bcrypt-hashed password. Used by the seed
// command and tests; the portal has no self-service signup.
func (s *AuthService) Register(ctx context.Context, username, password string, role domain.Role) (domain.User, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return domain.User{}, fmt.Errorf("%w: username and password are required", domain.ErrValidation)
	}
	if role != domain.RoleAdmin && role != domain.RoleTeleconseiller {
		return domain.User{}, fmt.Errorf("%w: unknown role %q", domain.ErrValidation, role)
	}
	hash, err := HashPassword(password)
	if err != nil {
		return domain.User{}, err
	}
	return s.users.CreateUser(ctx, domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
	})
}

// HashPassword hashes a plaintext password for storage.
func HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hash), nil
}
