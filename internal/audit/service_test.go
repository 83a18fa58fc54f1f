package audit

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	entries  map[int64]*Entry
	lastList ListFilter
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{entries: map[int64]*Entry{}}
}

func (r *fakeRepo) List(_ context.Context, f ListFilter) ([]Entry, int, error) {
	r.lastList = f
	var out []Entry
	for _, e := range r.entries {
		out = append(out, *e)
	}
	return out, len(out), nil
}

func (r *fakeRepo) Get(_ context.Context, id int64) (*Entry, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *e
	return &cp, nil
}

func (r *fakeRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.entries[id]; !ok {
		return ErrNotFound
	}
	delete(r.entries, id)
	return nil
}

func (r *fakeRepo) DeleteOlderThan(_ context.Context, cutoff time.Time) (int64, error) {
	var n int64
	for id, e := range r.entries {
		if e.OccurredAt.Before(cutoff) {
			delete(r.entries, id)
			n++
		}
	}
	return n, nil
}

func TestList_ClampsPaging(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)

	if _, _, err := svc.List(context.Background(), ListFilter{Limit: 100000, Offset: -3}); err != nil {
		t.Fatalf("List: %v", err)
	}
	if repo.lastList.Limit != 50 {
		t.Fatalf("limit = %d, want clamped to 50", repo.lastList.Limit)
	}
	if repo.lastList.Offset != 0 {
		t.Fatalf("offset = %d, want clamped to 0", repo.lastList.Offset)
	}
}

func TestDelete_MissingEntry(t *testing.T) {
	svc := NewService(newFakeRepo())
	if err := svc.Delete(context.Background(), 7); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Delete = %v, want ErrNotFound", err)
	}
}

func TestPrune_RemovesOnlyExpired(t *testing.T) {
	repo := newFakeRepo()
	now := time.Date(2024, time.June, 1, 0, 0, 0, 0, time.UTC)
	repo.entries[1] = &Entry{ID: 1, OccurredAt: now.AddDate(0, 0, -100)}
	repo.entries[2] = &Entry{ID: 2, OccurredAt: now.AddDate(0, 0, -10)}

	svc := NewService(repo)
	svc.now = func() time.Time { return now }

	removed, err := svc.Prune(context.Background(), 30*24*time.Hour)
	if err != nil {
		t.Fatalf("Prune: %v", err)
	}
	if removed != 1 {
		t.Fatalf("removed = %d, want 1", removed)
	}
	if _, ok := repo.entries[2]; !ok {
		t.Fatal("recent entry should survive the prune")
	}
}
