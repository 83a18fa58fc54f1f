package users

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/shared"
)

type fakeRecorder struct {
	entries []shared.AuditLog
	err     error
}

func (f *fakeRecorder) Record(ctx context.Context, log shared.AuditLog) error {
	if f.err != nil {
		return f.err
	}
	f.entries = append(f.entries, log)
	return nil
}

func newAuditedService(rec *fakeRecorder) *Service {
	return NewService(newFakeRepo(), rec, shared.NewEffectRunner(slog.Default()))
}

func actorContext(id int64) context.Context {
	return access.ContextWithPrincipal(context.Background(), access.Principal{
		ID:      id,
		IsStaff: true,
		Role:    access.RoleAdmin,
	})
}

func TestCreate_RecordsAuditEntry(t *testing.T) {
	rec := &fakeRecorder{}
	svc := newAuditedService(rec)

	u, err := svc.Create(actorContext(7), CreateUserRequest{
		Username: "nvolkova",
		Password: "transit-gate-9",
		Role:     "crm_manager",
	})
	require.NoError(t, err)

	require.Len(t, rec.entries, 1)
	entry := rec.entries[0]
	assert.Equal(t, int64(7), entry.ActorID)
	assert.Equal(t, "user.create", entry.Action)
	assert.Equal(t, "user", entry.Entity)
	assert.Equal(t, "nvolkova", entry.Meta["username"])
	assert.Equal(t, "crm_manager", entry.Meta["role"])
	assert.NotZero(t, u.ID)
}

func TestUpdate_RecordsChangedFields(t *testing.T) {
	rec := &fakeRecorder{}
	svc := newAuditedService(rec)

	u, err := svc.Create(actorContext(7), CreateUserRequest{
		Username: "nvolkova",
		Password: "transit-gate-9",
		Role:     "crm_manager",
	})
	require.NoError(t, err)

	first := "Natalia"
	active := false
	_, err = svc.Update(actorContext(7), u.ID, UpdateUserRequest{
		FirstName: &first,
		IsActive:  &active,
	})
	require.NoError(t, err)

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "user.update", rec.entries[1].Action)
	assert.Equal(t, []string{"first_name", "is_active"}, rec.entries[1].Meta["fields"])
}

func TestDelete_RecordsWithoutActor(t *testing.T) {
	rec := &fakeRecorder{}
	svc := newAuditedService(rec)

	u, err := svc.Create(actorContext(7), CreateUserRequest{
		Username: "nvolkova",
		Password: "transit-gate-9",
		Role:     "crm_manager",
	})
	require.NoError(t, err)

	// Background maintenance has no principal in context.
	require.NoError(t, svc.Delete(context.Background(), u.ID))

	require.Len(t, rec.entries, 2)
	assert.Equal(t, "user.delete", rec.entries[1].Action)
	assert.Zero(t, rec.entries[1].ActorID)
}

func TestCreate_RecorderFailureDoesNotFailWrite(t *testing.T) {
	rec := &fakeRecorder{err: context.DeadlineExceeded}
	svc := newAuditedService(rec)

	u, err := svc.Create(actorContext(7), CreateUserRequest{
		Username: "nvolkova",
		Password: "transit-gate-9",
		Role:     "crm_manager",
	})
	require.NoError(t, err)
	assert.NotZero(t, u.ID)
	assert.Empty(t, rec.entries)
}
