// Package service provides authentication business logic,
// delegating persistence to a UserRepository.
package service

import (
	"context"
	"errors"

	"github.com/atinyakov/taskboard/internal/models"
	"github.com/atinyakov/taskboard/internal/shared"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// UserRepository defines the persistence operations
// required by the authentication service.
type UserRepository interface {
	// Create stores a new user record. Returns shared.ErrEmailExists
	// when the email is already registered.
	Create(ctx context.Context, user *models.User) (*models.User, error)
	// GetByEmail fetches a user by email, or shared.ErrNotFound.
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	// GetByID fetches a user by ID, or shared.ErrNotFound.
	GetByID(ctx context.Context, id string) (*models.User, error)
}

// TokenIssuer produces a signed session token for a user ID.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthService implements registration, login and identity resolution.
type AuthService struct {
	repo   UserRepository
	tokens TokenIssuer
}

// NewAuthService constructs a new AuthService using the provided
// repository and token issuer.
func NewAuthService(repo UserRepository, tokens TokenIssuer) *AuthService {
	return &AuthService{repo: repo, tokens: tokens}
}

// Register hashes the password and stores a new user. A duplicate email
// surfaces as shared.ErrEmailExists. Registration does not log the user
// in; the caller must log in separately.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		ID:           uuid.NewString(),
		Name:         name,
		Email:        email,
		PasswordHash: hash,
	}

	return s.repo.Create(ctx, user)
}

// Login verifies the credentials and issues a session token.
// An unknown email and a wrong password both return
// shared.ErrInvalidCredentials, without distinguishing the two.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return "", nil, shared.ErrInvalidCredentials
		}
		return "", nil, err
	}

	if err := bcrypt.CompareHashAndPassword(user.PasswordHash, []byte(password)); err != nil {
		return "", nil, shared.ErrInvalidCredentials
	}

	token, err := s.tokens.Issue(user.ID)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// UserByID resolves the user record a verified token refers to.
func (s *AuthService) UserByID(ctx context.Context, id string) (*models.User, error) {
	return s.repo.GetByID(ctx, id)
}
