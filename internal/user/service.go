package user

import (
	"context"
	"errors"
	"strings"

	"github.com/divvy-app/divvy/internal/auth"
)

// Common errors
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrEmailAlreadyInUse = errors.New("email already in use")
	ErrInvalidName       = errors.New("name must be between 1 and 100 characters")
)

// Store persists user accounts.
type Store interface {
	Create(ctx context.Context, name, email, passwordHash string) (*User, error)
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, id int64, name, email, passwordHash string) (*User, error)
}

// Service handles user business logic
type Service struct {
	store      Store
	jwtManager *auth.JWTManager
}

// NewService creates a new user service with dependencies injected
func NewService(store Store, jwtManager *auth.JWTManager) *Service {
	return &Service{store: store, jwtManager: jwtManager}
}

// Register creates a new account with a hashed password
func (s *Service) Register(ctx context.Context, req *RegisterRequest) (*User, error) {
	existing, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyInUse
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return s.store.Create(ctx, req.Name, req.Email, hash)
}

// Login verifies credentials and returns a signed session token
func (s *Service) Login(ctx context.Context, req *LoginRequest) (string, *User, error) {
	user, err := s.store.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", nil, err
	}
	if user == nil {
		return "", nil, auth.ErrInvalidCredentials
	}

	if err := auth.VerifyPassword(user.PasswordHash, req.Password); err != nil {
		return "", nil, err
	}

	token, err := s.jwtManager.Generate(user.ID, user.Email)
	if err != nil {
		return "", nil, err
	}

	return token, user, nil
}

// Update changes the authenticated user's name, email or password. A new
// email must not belong to another account; a new password goes through
// the usual strength check and hashing.
func (s *Service) Update(ctx context.Context, userID int64, req *UpdateMeRequest) (*User, error) {
	user, err := s.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	name := user.Name
	email := user.Email
	passwordHash := user.PasswordHash

	if req.Name != nil {
		name = strings.TrimSpace(*req.Name)
		if name == "" || len(name) > 100 {
			return nil, ErrInvalidName
		}
	}
	if req.Email != nil && *req.Email != user.Email {
		existing, err := s.store.GetByEmail(ctx, *req.Email)
		if err != nil {
			return nil, err
		}
		if existing != nil && existing.ID != userID {
			return nil, ErrEmailAlreadyInUse
		}
		email = *req.Email
	}
	if req.Password != nil {
		passwordHash, err = auth.HashPassword(*req.Password)
		if err != nil {
			return nil, err
		}
	}

	updated, err := s.store.Update(ctx, userID, name, email, passwordHash)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrUserNotFound
	}
	return updated, nil
}

// GetByID retrieves a user by their ID
func (s *Service) GetByID(ctx context.Context, id int64) (*User, error) {
	user, err := s.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
