package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferrumtrans/ferrumtrans/internal/shared"
	"github.com/ferrumtrans/ferrumtrans/internal/users"
)

// UserSource resolves accounts for credential checks.
type UserSource interface {
	GetByUsername(ctx context.Context, username string) (*users.User, error)
	TouchLastLogin(ctx context.Context, id int64) error
}

// Service wraps authentication business rules.
type Service struct {
	repo  Repository
	users UserSource
}

// NewService constructs a new Service.
func NewService(repo Repository, userSource UserSource) *Service {
	return &Service{repo: repo, users: userSource}
}

// Authenticate validates username/password credentials. Every failure mode
// collapses into ErrInvalidCredentials so callers can't probe for accounts.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*users.User, error) {
	user, err := s.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, shared.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, shared.ErrInvalidCredentials
	}
	return user, nil
}

// RecordLogin stamps the account's last login time.
func (s *Service) RecordLogin(ctx context.Context, userID int64) error {
	return s.users.TouchLastLogin(ctx, userID)
}

// RegisterSession persists the session metadata in postgres.
func (s *Service) RegisterSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	return s.repo.CreateSession(ctx, id, userID, expiresAt, ip, ua)
}

// RemoveSession deletes a session record from postgres.
func (s *Service) RemoveSession(ctx context.Context, id string) error {
	return s.repo.DeleteSession(ctx, id)
}
