package users

import (
	"context"
	"errors"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

type fakeRepo struct {
	byID   map[int64]*User
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: make(map[int64]*User), nextID: 1}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeRepo) GetByUsername(ctx context.Context, username string) (*User, error) {
	for _, u := range f.byID {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) FindByEmail(ctx context.Context, email string, excludeID int64) (*User, error) {
	for _, u := range f.byID {
		if u.Email == email && u.ID != excludeID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) FindByPhone(ctx context.Context, phone string, excludeID int64) (*User, error) {
	for _, u := range f.byID {
		if u.Phone == phone && u.ID != excludeID {
			cp := *u
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) List(ctx context.Context, req ListUsersRequest) ([]User, int, error) {
	var out []User
	for _, u := range f.byID {
		out = append(out, *u)
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(ctx context.Context, user User) (int64, error) {
	user.ID = f.nextID
	f.nextID++
	f.byID[user.ID] = &user
	return user.ID, nil
}

func (f *fakeRepo) Update(ctx context.Context, id int64, updates map[string]any) error {
	u, ok := f.byID[id]
	if !ok {
		return ErrNotFound
	}
	if v, ok := updates["email"]; ok {
		u.Email = v.(string)
	}
	if v, ok := updates["phone"]; ok {
		if v == nil {
			u.Phone = ""
		} else {
			u.Phone = v.(string)
		}
	}
	if v, ok := updates["role"]; ok {
		u.Role = access.Role(v.(string))
	}
	if v, ok := updates["is_active"]; ok {
		u.IsActive = v.(bool)
	}
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	if _, ok := f.byID[id]; !ok {
		return ErrNotFound
	}
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) TouchLastLogin(ctx context.Context, id int64) error { return nil }

func TestCreate_NormalizesPhone(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	user, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "ivanov",
		Password: "supersecret",
		Email:    "ivanov@example.com",
		Phone:    "+7 (999) 123-45-67",
		Role:     "content_manager",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if user.Phone != "+79991234567" {
		t.Fatalf("phone not normalized: %q", user.Phone)
	}
	if user.PasswordHash == "" || user.PasswordHash == "supersecret" {
		t.Fatalf("password not hashed")
	}
}

func TestCreate_RejectsDuplicateEmailAndPhone(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	if _, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "first", Password: "supersecret",
		Email: "dup@example.com", Phone: "89991234567", Role: "admin",
	}); err != nil {
		t.Fatalf("seed create: %v", err)
	}

	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "second", Password: "supersecret",
		Email: "dup@example.com", Phone: "8 999 123-45-67", Role: "crm_manager",
	})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if !fe.Has("email") {
		t.Fatalf("no email duplicate error: %v", fe)
	}
	if !fe.Has("phone") {
		t.Fatalf("no phone duplicate error: %v", fe)
	}
}

func TestCreate_AccumulatesFormatErrors(t *testing.T) {
	svc := NewService(newFakeRepo(), nil, nil)
	_, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "broken", Password: "supersecret",
		Email: "not-an-email", Phone: "123", Role: "admin",
	})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("expected field errors, got %v", err)
	}
	if !fe.Has("email") || !fe.Has("phone") {
		t.Fatalf("expected both email and phone errors, got %v", fe)
	}
}

func TestPrincipalByID_DeactivatedIsNotStaff(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo, nil, nil)
	created, err := svc.Create(context.Background(), CreateUserRequest{
		Username: "crm", Password: "supersecret", Role: "crm_manager",
	})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	p, err := svc.PrincipalByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	if role, ok := access.ResolveRole(p); !ok || role != access.RoleCRMManager {
		t.Fatalf("expected crm_manager, got %q %v", role, ok)
	}

	inactive := false
	if _, err := svc.Update(context.Background(), created.ID, UpdateUserRequest{IsActive: &inactive}); err != nil {
		t.Fatalf("deactivate: %v", err)
	}
	p, err = svc.PrincipalByID(context.Background(), created.ID)
	if err != nil {
		t.Fatalf("principal: %v", err)
	}
	if _, ok := access.ResolveRole(p); ok {
		t.Fatalf("deactivated account still resolves a role")
	}
}
