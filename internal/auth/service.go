package auth

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// RegisterInput carries validated registration fields.
type RegisterInput struct {
	FullName    string
	PhoneNumber string
	Age         int
	Class       string
	Email       string
	Password    string
}

// Service wraps user account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates a user account with a bcrypt-hashed password.
// A taken email yields httpx.ErrConflict.
func (s *Service) Register(ctx context.Context, input RegisterInput) (int64, error) {
	if _, err := s.repo.FindByEmail(ctx, input.Email); err == nil {
		return 0, httpx.Message(httpx.ErrConflict, "Email already exists")
	} else if !errors.Is(err, httpx.ErrNotFound) {
		return 0, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}

	return s.repo.CreateUser(ctx, User{
		FullName:     input.FullName,
		PhoneNumber:  input.PhoneNumber,
		Age:          input.Age,
		Class:        input.Class,
		Email:        input.Email,
		PasswordHash: string(hash),
	})
}

// Authenticate validates email/password credentials. Unknown email and
// wrong password return the same error so callers cannot enumerate
// accounts.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*User, error) {
	user, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.Message(httpx.ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.Message(httpx.ErrUnauthorized, "Invalid credentials")
	}
	return user, nil
}

// GetUser fetches a user's public record by id.
func (s *Service) GetUser(ctx context.Context, id int64) (*User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.Message(httpx.ErrNotFound, "User not found")
		}
		return nil, err
	}
	return user, nil
}

// RecordSession persists session metadata in postgres.
func (s *Service) RecordSession(ctx context.Context, id string, accountID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, accountID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
