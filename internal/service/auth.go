package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"apptrack/internal/auth"
	"apptrack/internal/model"
	"apptrack/internal/repository"
)

const minPasswordLength = 8

// AuthResult is returned by both registration and login.
type AuthResult struct {
	Token string     `json:"token"`
	User  model.User `json:"user"`
}

// AuthService defines the use cases for account registration and login.
type AuthService interface {
	// Register creates a user with a normalized email and returns a fresh token.
	Register(ctx context.Context, email, password string) (*AuthResult, error)

	// Login verifies credentials and returns a fresh token.
	Login(ctx context.Context, email, password string) (*AuthResult, error)
}

// authService is a concrete implementation of AuthService.
type authService struct {
	users  repository.UserRepository
	tokens *auth.TokenManager
}

// NewAuthService constructs a new AuthService.
func NewAuthService(users repository.UserRepository, tokens *auth.TokenManager) AuthService {
	return &authService{users: users, tokens: tokens}
}

// NormalizeEmail applies the canonical email form used for the unique
// constraint: trimmed and lower-cased.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *authService) Register(ctx context.Context, email, password string) (*AuthResult, error) {
	email = NormalizeEmail(email)
	if email == "" || !strings.Contains(email, "@") {
		return nil, fmt.Errorf("%w: a valid email is required", ErrValidation)
	}
	if len(password) < minPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters", ErrValidation, minPasswordLength)
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &model.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: hash,
		CreatedAt:    timeNow().UTC(),
	}
	stored, err := s.users.Create(ctx, u)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, err
	}

	return s.issue(stored)
}

func (s *authService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	u, err := s.users.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			// Same outcome as a wrong password: don't reveal which one it was.
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(u.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	return s.issue(u)
}

func (s *authService) issue(u *model.User) (*AuthResult, error) {
	token, err := s.tokens.Issue(u.ID, u.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}
	return &AuthResult{Token: token, User: *u}, nil
}
