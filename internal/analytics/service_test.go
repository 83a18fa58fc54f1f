package analytics

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

type fakeRepo struct {
	diagrams   map[int64]*Diagram
	categories map[int64]*Category
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{diagrams: map[int64]*Diagram{}, categories: map[int64]*Category{}, nextID: 1}
}

func (f *fakeRepo) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return fn(ctx, f)
}

func (f *fakeRepo) GetDiagram(ctx context.Context, id int64) (*Diagram, error) {
	d, ok := f.diagrams[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (f *fakeRepo) ListDiagrams(ctx context.Context, activeOnly bool) ([]Diagram, error) {
	var out []Diagram
	for _, d := range f.diagrams {
		if activeOnly && !d.IsActive {
			continue
		}
		out = append(out, *d)
	}
	return out, nil
}

func (f *fakeRepo) CountActive(ctx context.Context, excludeID int64) (int, error) {
	count := 0
	for _, d := range f.diagrams {
		if d.IsActive && d.ID != excludeID {
			count++
		}
	}
	return count, nil
}

func (f *fakeRepo) CreateDiagram(ctx context.Context, d Diagram) (int64, error) {
	d.ID = f.nextID
	f.nextID++
	f.diagrams[d.ID] = &d
	return d.ID, nil
}

func (f *fakeRepo) UpdateDiagram(ctx context.Context, d Diagram) error {
	if _, ok := f.diagrams[d.ID]; !ok {
		return ErrNotFound
	}
	cp := d
	f.diagrams[d.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteDiagram(ctx context.Context, id int64) error {
	delete(f.diagrams, id)
	return nil
}

func (f *fakeRepo) GetCategory(ctx context.Context, id int64) (*Category, error) {
	c, ok := f.categories[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *c
	return &cp, nil
}

func (f *fakeRepo) ListCategories(ctx context.Context, diagramID int64) ([]Category, error) {
	var out []Category
	for _, c := range f.categories {
		if c.DiagramID == diagramID {
			out = append(out, *c)
		}
	}
	return out, nil
}

func (f *fakeRepo) CreateCategory(ctx context.Context, c Category) (int64, error) {
	c.ID = f.nextID
	f.nextID++
	f.categories[c.ID] = &c
	return c.ID, nil
}

func (f *fakeRepo) UpdateCategory(ctx context.Context, c Category) error {
	if _, ok := f.categories[c.ID]; !ok {
		return ErrNotFound
	}
	cp := c
	f.categories[c.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteCategory(ctx context.Context, id int64) error {
	delete(f.categories, id)
	return nil
}

func active() *bool {
	v := true
	return &v
}

func diagramReq(title string, isActive *bool) DiagramRequest {
	return DiagramRequest{Title: title, ChartType: "column", MeasurementUnit: "tons", IsActive: isActive}
}

func TestActivationLimitNeverExceeded(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	for i := 0; i < MaxActiveDiagrams; i++ {
		if _, err := svc.CreateDiagram(ctx, diagramReq("coal volume", active())); err != nil {
			t.Fatalf("activation %d: %v", i+1, err)
		}
	}

	_, err := svc.CreateDiagram(ctx, diagramReq("one too many", active()))
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("is_active") {
		t.Fatalf("expected is_active field error, got %v", err)
	}

	count, _ := repo.CountActive(ctx, 0)
	if count != MaxActiveDiagrams {
		t.Fatalf("active count = %d, limit = %d", count, MaxActiveDiagrams)
	}
}

func TestActivatingExistingDiagramAtLimitFails(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	inactive, err := svc.CreateDiagram(ctx, diagramReq("dormant", nil))
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	for i := 0; i < MaxActiveDiagrams; i++ {
		if _, err := svc.CreateDiagram(ctx, diagramReq("live", active())); err != nil {
			t.Fatalf("activation %d: %v", i+1, err)
		}
	}

	_, err = svc.UpdateDiagram(ctx, inactive.ID, diagramReq("dormant", active()))
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("is_active") {
		t.Fatalf("expected is_active field error, got %v", err)
	}
	got, _ := repo.GetDiagram(ctx, inactive.ID)
	if got.IsActive {
		t.Fatalf("rejected activation must leave the flag unchanged")
	}
}

func TestResavingActiveDiagramDoesNotCountItself(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	var last *Diagram
	var err error
	for i := 0; i < MaxActiveDiagrams; i++ {
		last, err = svc.CreateDiagram(ctx, diagramReq("live", active()))
		if err != nil {
			t.Fatalf("activation %d: %v", i+1, err)
		}
	}
	if _, err := svc.UpdateDiagram(ctx, last.ID, diagramReq("renamed", active())); err != nil {
		t.Fatalf("re-saving an active diagram at the limit must succeed: %v", err)
	}
}

func TestCategoryColorNormalized(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d, err := svc.CreateDiagram(ctx, diagramReq("shipments", nil))
	if err != nil {
		t.Fatalf("create diagram: %v", err)
	}
	c, err := svc.CreateCategory(ctx, d.ID, CategoryRequest{Name: "rail", Value: 10, Color: "#abc"})
	if err != nil {
		t.Fatalf("create category: %v", err)
	}
	if c.Color != "#AABBCC" {
		t.Fatalf("color not normalized: %q", c.Color)
	}

	_, err = svc.CreateCategory(ctx, d.ID, CategoryRequest{Name: "road", Value: 5, Color: "red"})
	var fe validate.FieldErrors
	if !errors.As(err, &fe) || !fe.Has("color") {
		t.Fatalf("expected color error, got %v", err)
	}
}

func TestCategoryPercentagesDerived(t *testing.T) {
	repo := newFakeRepo()
	svc := NewService(repo)
	ctx := context.Background()

	d, err := svc.CreateDiagram(ctx, diagramReq("volumes", nil))
	if err != nil {
		t.Fatalf("create diagram: %v", err)
	}
	for _, v := range []float64{30, 70} {
		if _, err := svc.CreateCategory(ctx, d.ID, CategoryRequest{Name: "part", Value: v, Color: "#FFF"}); err != nil {
			t.Fatalf("create category: %v", err)
		}
	}

	list, err := svc.ListCategories(ctx, d.ID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	var total float64
	for _, c := range list {
		total += c.Percentage
	}
	if math.Abs(total-100) > 1e-9 {
		t.Fatalf("percentages sum to %v, want 100", total)
	}
}
