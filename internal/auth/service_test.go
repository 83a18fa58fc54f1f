package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/shared"
	"github.com/ferrumtrans/ferrumtrans/internal/users"
)

type fakeUserSource struct {
	user        *users.User
	loginStamps int
}

func (f *fakeUserSource) GetByUsername(ctx context.Context, username string) (*users.User, error) {
	if f.user == nil || f.user.Username != username {
		return nil, users.ErrNotFound
	}
	cp := *f.user
	return &cp, nil
}

func (f *fakeUserSource) TouchLastLogin(ctx context.Context, id int64) error {
	f.loginStamps++
	return nil
}

type fakeSessionRepo struct {
	created map[string]int64
}

func (f *fakeSessionRepo) CreateSession(ctx context.Context, id string, userID int64, expiresAt time.Time, ip, ua string) error {
	if f.created == nil {
		f.created = make(map[string]int64)
	}
	f.created[id] = userID
	return nil
}

func (f *fakeSessionRepo) DeleteSession(ctx context.Context, id string) error {
	delete(f.created, id)
	return nil
}

func testUser(t *testing.T, password string, active bool) *users.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return &users.User{
		ID:           7,
		Username:     "dispatcher",
		Role:         access.RoleCRMManager,
		PasswordHash: string(hash),
		IsActive:     active,
	}
}

func TestAuthenticate(t *testing.T) {
	src := &fakeUserSource{user: testUser(t, "correct horse", true)}
	svc := NewService(&fakeSessionRepo{}, src)

	user, err := svc.Authenticate(context.Background(), "dispatcher", "correct horse")
	if err != nil {
		t.Fatalf("authenticate: %v", err)
	}
	if user.ID != 7 {
		t.Fatalf("wrong user: %+v", user)
	}
}

func TestAuthenticate_FailuresAreUniform(t *testing.T) {
	cases := []struct {
		name     string
		user     *users.User
		username string
		password string
	}{
		{"unknown user", testUser(t, "correct horse", true), "nobody", "correct horse"},
		{"wrong password", testUser(t, "correct horse", true), "dispatcher", "battery staple"},
		{"deactivated", testUser(t, "correct horse", false), "dispatcher", "correct horse"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			svc := NewService(&fakeSessionRepo{}, &fakeUserSource{user: tc.user})
			_, err := svc.Authenticate(context.Background(), tc.username, tc.password)
			if !errors.Is(err, shared.ErrInvalidCredentials) {
				t.Fatalf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}
