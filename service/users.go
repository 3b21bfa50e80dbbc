package service

import (
	"context"
	"errors"

	"moviehub/models"
	"moviehub/store"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/v2/bson"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when email/password authentication fails.
// Unknown email and wrong password are deliberately indistinguishable.
var ErrInvalidCredentials = errors.New("invalid credentials")

// ErrEmailTaken is returned when registering with an email already in use.
var ErrEmailTaken = errors.New("email already in use")

// UserService owns account registration and identity resolution. The catalog
// and comment engine never touch users directly; they receive identities this
// service resolved.
type UserService struct {
	users store.UserStore
}

// NewUserService creates a user service over the given store.
func NewUserService(users store.UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterInput carries the fields needed to create an account.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
}

// Register creates an unverified account with a hashed password and a fresh
// API key.
func (s *UserService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	_, err := s.users.FindByEmail(ctx, input.Email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, store.ErrUserNotFound) {
		return nil, err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &models.User{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashed),
		APIKey:   uuid.NewString(),
		Role:     "user",
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Authenticate resolves an email/password pair to the account it belongs to.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, store.ErrUserNotFound) {
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return user, nil
}

// ResolveAPIKey maps an x-api-key value to its account.
func (s *UserService) ResolveAPIKey(ctx context.Context, apiKey string) (*models.User, error) {
	if apiKey == "" {
		return nil, store.ErrUserNotFound
	}
	return s.users.FindByAPIKey(ctx, apiKey)
}

// GetByEmail looks up an account by email, used by the bearer-token
// middleware to resolve JWT claims.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.users.FindByEmail(ctx, email)
}

// Verify marks the account from a verification link as active.
func (s *UserService) Verify(ctx context.Context, id bson.ObjectID) error {
	return s.users.SetVerified(ctx, id)
}
