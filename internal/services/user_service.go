package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/skbsalatiga/signage-backend/internal/database"
	"github.com/skbsalatiga/signage-backend/internal/models"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when a username/password pair does not match
var ErrInvalidCredentials = errors.New("invalid username or password")

// UserService manages user accounts
type UserService struct {
	store database.Store
	cost  int
}

// NewUserService creates a new UserService
func NewUserService(store database.Store) *UserService {
	return &UserService{
		store: store,
		cost:  bcrypt.DefaultCost,
	}
}

// CreateUser validates the request and stores the user with a bcrypt hash
func (s *UserService) CreateUser(ctx context.Context, req models.CreateUserRequest) (*models.User, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	return s.store.CreateUser(ctx, req.Username, string(hash))
}

// CheckPassword returns the user when password matches its stored hash
func (s *UserService) CheckPassword(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.store.GetUserByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}
