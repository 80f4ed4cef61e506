package admin

import (
	"context"
	"errors"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/studyhall/studyhall/internal/platform/httpx"
)

// Service wraps admin account business rules.
type Service struct {
	repo Repository
}

// NewService constructs a new Service.
func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Register creates the admin account. Fails with ErrAlreadyRegistered
// once an admin exists.
func (s *Service) Register(ctx context.Context, username, email, password string) (int64, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return 0, err
	}
	return s.repo.CreateAdmin(ctx, Admin{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	})
}

// Authenticate validates admin credentials with a uniform failure error.
func (s *Service) Authenticate(ctx context.Context, email, password string) (*Admin, error) {
	admin, err := s.repo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, httpx.ErrNotFound) {
			return nil, httpx.Message(httpx.ErrUnauthorized, "Invalid credentials")
		}
		return nil, err
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, httpx.Message(httpx.ErrUnauthorized, "Invalid credentials")
	}
	return admin, nil
}

// GetAdmin fetches the admin by id. Used by the authorization gate to
// confirm the session still resolves to a live account.
func (s *Service) GetAdmin(ctx context.Context, id int64) (*Admin, error) {
	return s.repo.FindByID(ctx, id)
}

// RecordSession persists admin session metadata in postgres.
func (s *Service) RecordSession(ctx context.Context, id string, accountID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, accountID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
