package news

import (
	"context"
	"errors"
	"testing"
	"time"
)

type fakeRepo struct {
	byID   map[int64]*News
	nextID int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{byID: map[int64]*News{}, nextID: 1}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) Get(ctx context.Context, id int64) (*News, error) {
	n, ok := f.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *n
	return &cp, nil
}

func (f *fakeRepo) GetBySlug(ctx context.Context, slug string) (*News, error) {
	for _, n := range f.byID {
		if n.Slug == slug {
			cp := *n
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (f *fakeRepo) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	for _, n := range f.byID {
		if n.Slug == slug && n.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (f *fakeRepo) List(ctx context.Context, req ListNewsRequest) ([]News, int, error) {
	var out []News
	for _, n := range f.byID {
		out = append(out, *n)
	}
	return out, len(out), nil
}

func (f *fakeRepo) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]News, int, error) {
	var out []News
	for _, n := range f.byID {
		if n.Published(now) {
			out = append(out, *n)
		}
	}
	return out, len(out), nil
}

func (f *fakeRepo) Create(ctx context.Context, n News) (int64, error) {
	n.ID = f.nextID
	f.nextID++
	f.byID[n.ID] = &n
	return n.ID, nil
}

func (f *fakeRepo) Update(ctx context.Context, n News) error {
	if _, ok := f.byID[n.ID]; !ok {
		return ErrNotFound
	}
	cp := n
	f.byID[n.ID] = &cp
	return nil
}

func (f *fakeRepo) Delete(ctx context.Context, id int64) error {
	delete(f.byID, id)
	return nil
}

func (f *fakeRepo) ListImages(ctx context.Context, newsID int64) ([]NewsImage, error) {
	return nil, nil
}
func (f *fakeRepo) AddImage(ctx context.Context, img NewsImage) (int64, error) { return 1, nil }
func (f *fakeRepo) RemoveImage(ctx context.Context, id int64) error            { return nil }
func (f *fakeRepo) ListFiles(ctx context.Context, newsID int64) ([]NewsFile, error) {
	return nil, nil
}
func (f *fakeRepo) AddFile(ctx context.Context, nf NewsFile) (int64, error) { return 1, nil }
func (f *fakeRepo) RemoveFile(ctx context.Context, id int64) error          { return nil }

func TestSlugify(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"Hello, World!", "hello-world"},
		{"Новые маршруты перевозок", "novye-marshruty-perevozok"},
		{"  --- ", ""},
		{"Café élan", "cafe-elan"},
		{"2024 итоги", "2024-itogi"},
	}
	for _, tc := range cases {
		if got := Slugify(tc.in); got != tc.want {
			t.Errorf("Slugify(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestCreate_AutoSlugWithSuffix(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	first, err := svc.Create(ctx, NewsRequest{Title: "Big News", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if first.Slug != "big-news" {
		t.Fatalf("slug = %q, want big-news", first.Slug)
	}

	second, err := svc.Create(ctx, NewsRequest{Title: "Big News", Content: "body"})
	if err != nil {
		t.Fatalf("create duplicate title: %v", err)
	}
	if second.Slug != "big-news-1" {
		t.Fatalf("slug = %q, want big-news-1", second.Slug)
	}

	third, err := svc.Create(ctx, NewsRequest{Title: "Big News", Content: "body"})
	if err != nil {
		t.Fatalf("create third: %v", err)
	}
	if third.Slug != "big-news-2" {
		t.Fatalf("slug = %q, want big-news-2", third.Slug)
	}
}

func TestUpdate_KeepsOwnSlug(t *testing.T) {
	svc := NewService(newFakeRepo())
	ctx := context.Background()

	n, err := svc.Create(ctx, NewsRequest{Title: "Steady", Content: "body"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	updated, err := svc.Update(ctx, n.ID, NewsRequest{Title: "Steady", Slug: n.Slug, Content: "edited"})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Slug != "steady" {
		t.Fatalf("re-saving must not suffix its own slug: %q", updated.Slug)
	}
}

func TestPublicSurfaceFiltersDraftsAndScheduled(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return now }

	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)
	inactive := false

	if _, err := svc.Create(ctx, NewsRequest{Title: "Visible", Content: "x", PublishDate: &past}); err != nil {
		t.Fatalf("create visible: %v", err)
	}
	if _, err := svc.Create(ctx, NewsRequest{Title: "Scheduled", Content: "x", PublishDate: &future}); err != nil {
		t.Fatalf("create scheduled: %v", err)
	}
	if _, err := svc.Create(ctx, NewsRequest{Title: "Draft", Content: "x", PublishDate: &past, IsActive: &inactive}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	list, total, err := svc.ListPublished(ctx, 10, 0)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if total != 1 || len(list) != 1 || list[0].Slug != "visible" {
		t.Fatalf("public list leaked drafts or scheduled articles: %+v", list)
	}

	if _, err := svc.GetPublished(ctx, "scheduled"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("scheduled article must read as not found, got %v", err)
	}
	if _, err := svc.GetPublished(ctx, "draft"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("draft must read as not found, got %v", err)
	}
}
