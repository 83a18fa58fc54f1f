package users

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"

	"golang.org/x/crypto/bcrypt"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/shared"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// Recorder persists account audit history. shared.AuditLogger
// implements it.
type Recorder interface {
	Record(ctx context.Context, log shared.AuditLog) error
}

// Service holds the account business rules: phone normalization,
// duplicate phone/email rejection across all users, password hashing.
// Account writes leave an audit trail.
type Service struct {
	repo    Repository
	audit   Recorder
	effects *shared.EffectRunner
}

func NewService(repo Repository, audit Recorder, effects *shared.EffectRunner) *Service {
	return &Service{repo: repo, audit: audit, effects: effects}
}

// PrincipalByID implements access.Directory. A deactivated account is
// not staff, whatever its stored role says.
func (s *Service) PrincipalByID(ctx context.Context, id int64) (access.Principal, error) {
	u, err := s.repo.Get(ctx, id)
	if err != nil {
		return access.Principal{}, err
	}
	return access.Principal{ID: u.ID, IsStaff: u.IsActive, Role: u.Role}, nil
}

func (s *Service) Get(ctx context.Context, id int64) (*User, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListUsersRequest) ([]User, int, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, 0, fe
	}
	return s.repo.List(ctx, req)
}

func (s *Service) Create(ctx context.Context, req CreateUserRequest) (*User, error) {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}

	user := User{
		Username:  req.Username,
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Role:      access.Role(req.Role),
		IsActive:  true,
	}
	if req.Email != "" && !validate.ValidEmail(req.Email) {
		fe.Add("email", "enter a valid email address")
	}
	if req.Phone != "" {
		normalized, ok := validate.NormalizePhone(req.Phone)
		if !ok {
			fe.Add("phone", "enter a valid phone number in the format +7 999 123-45-67")
		} else {
			user.Phone = normalized
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	user.PasswordHash = string(hash)

	var id int64
	err = s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		if ferr := s.checkDuplicates(ctx, repo, user.Email, user.Phone, 0); ferr != nil {
			return ferr
		}
		var cerr error
		id, cerr = repo.Create(ctx, user)
		return cerr
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	user.ID = id
	s.recordAudit(ctx, "user.create", user.ID, map[string]any{"username": user.Username, "role": string(user.Role)})
	return &user, nil
}

func (s *Service) Update(ctx context.Context, id int64, req UpdateUserRequest) (*User, error) {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}

	updates := make(map[string]any)
	if req.FirstName != nil {
		updates["first_name"] = *req.FirstName
	}
	if req.LastName != nil {
		updates["last_name"] = *req.LastName
	}
	if req.Email != nil {
		if *req.Email != "" && !validate.ValidEmail(*req.Email) {
			fe.Add("email", "enter a valid email address")
		} else {
			updates["email"] = *req.Email
		}
	}
	if req.Phone != nil {
		if *req.Phone == "" {
			updates["phone"] = nil
		} else if normalized, ok := validate.NormalizePhone(*req.Phone); ok {
			updates["phone"] = normalized
		} else {
			fe.Add("phone", "enter a valid phone number in the format +7 999 123-45-67")
		}
	}
	if req.Role != nil {
		updates["role"] = *req.Role
	}
	if req.IsActive != nil {
		updates["is_active"] = *req.IsActive
	}
	if req.Password != nil {
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, fmt.Errorf("hash password: %w", err)
		}
		updates["password_hash"] = string(hash)
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}
	if len(updates) == 0 {
		return s.repo.Get(ctx, id)
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		email, _ := updates["email"].(string)
		phone, _ := updates["phone"].(string)
		if ferr := s.checkDuplicates(ctx, repo, email, phone, id); ferr != nil {
			return ferr
		}
		return repo.Update(ctx, id, updates)
	})
	if err != nil {
		return nil, wrapConflict(err)
	}
	fields := make([]string, 0, len(updates))
	for field := range updates {
		fields = append(fields, field)
	}
	sort.Strings(fields)
	s.recordAudit(ctx, "user.update", id, map[string]any{"fields": fields})
	return s.repo.Get(ctx, id)
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.recordAudit(ctx, "user.delete", id, nil)
	return nil
}

// recordAudit writes the history entry as a best-effort side effect.
func (s *Service) recordAudit(ctx context.Context, action string, id int64, meta map[string]any) {
	if s.audit == nil || s.effects == nil {
		return
	}
	var actorID int64
	if p, ok := access.PrincipalFromContext(ctx); ok {
		actorID = p.ID
	}
	s.effects.Run(ctx, shared.SideEffect{
		Name: action,
		Fn: func(ctx context.Context) error {
			return s.audit.Record(ctx, shared.AuditLog{
				ActorID:  actorID,
				Action:   action,
				Entity:   "user",
				EntityID: strconv.FormatInt(id, 10),
				Meta:     meta,
			})
		},
	})
}

func (s *Service) checkDuplicates(ctx context.Context, repo Repository, email, phone string, excludeID int64) error {
	fe := make(validate.FieldErrors)
	if email != "" {
		other, err := repo.FindByEmail(ctx, email, excludeID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check email duplicate: %w", err)
		}
		if other != nil {
			fe.Add("email", "this email is already used by "+other.FullName())
		}
	}
	if phone != "" {
		other, err := repo.FindByPhone(ctx, phone, excludeID)
		if err != nil && !errors.Is(err, ErrNotFound) {
			return fmt.Errorf("check phone duplicate: %w", err)
		}
		if other != nil {
			fe.Add("phone", "this phone is already used by "+other.FullName())
		}
	}
	return fe.OrNil()
}

// wrapConflict turns the repository uniqueness sentinel into a field
// error so the storage race on duplicate checks still surfaces as a
// validation failure.
func wrapConflict(err error) error {
	if errors.Is(err, ErrAlreadyExists) {
		fe := make(validate.FieldErrors)
		fe.Add(validate.NonFieldKey, "a user with the same email or phone already exists")
		return fe
	}
	return err
}
