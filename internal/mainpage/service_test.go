package mainpage

import (
	"context"
	"errors"
	"testing"

	"github.com/ferrumtrans/ferrumtrans/internal/news"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

type fakeRepo struct {
	blocks     map[BlockKind]*Block
	advantages map[int64]*Advantage
	partners   map[int64]*Partner
	nextID     int64
}

func newFakeRepo() *fakeRepo {
	f := &fakeRepo{
		blocks:     make(map[BlockKind]*Block),
		advantages: make(map[int64]*Advantage),
		partners:   make(map[int64]*Partner),
		nextID:     1,
	}
	kinds := []BlockKind{BlockHero, BlockAbout, BlockAdvantages, BlockAnalytics, BlockPartners, BlockContacts}
	for i, kind := range kinds {
		b := &Block{ID: int64(i + 1), Kind: kind, IsActive: true}
		if kind == BlockHero {
			b.ShowNewsCarousel = true
			b.NewsCount = NewsCountDefault
		}
		f.blocks[kind] = b
	}
	return f
}

func (f *fakeRepo) GetBlock(ctx context.Context, kind BlockKind) (*Block, error) {
	b, ok := f.blocks[kind]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *b
	return &cp, nil
}

func (f *fakeRepo) ListBlocks(ctx context.Context, activeOnly bool) ([]Block, error) {
	var out []Block
	for _, kind := range []BlockKind{BlockHero, BlockAbout, BlockAdvantages, BlockAnalytics, BlockPartners, BlockContacts} {
		b := f.blocks[kind]
		if activeOnly && !b.IsActive {
			continue
		}
		out = append(out, *b)
	}
	return out, nil
}

func (f *fakeRepo) UpdateBlock(ctx context.Context, b Block) error {
	if _, ok := f.blocks[b.Kind]; !ok {
		return ErrNotFound
	}
	cp := b
	f.blocks[b.Kind] = &cp
	return nil
}

func (f *fakeRepo) GetAdvantage(ctx context.Context, id int64) (*Advantage, error) {
	a, ok := f.advantages[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *a
	return &cp, nil
}

func (f *fakeRepo) ListAdvantages(ctx context.Context, activeOnly bool) ([]Advantage, error) {
	var out []Advantage
	for _, a := range f.advantages {
		if activeOnly && !a.IsActive {
			continue
		}
		out = append(out, *a)
	}
	return out, nil
}

func (f *fakeRepo) CreateAdvantage(ctx context.Context, a Advantage) (int64, error) {
	a.ID = f.nextID
	f.nextID++
	f.advantages[a.ID] = &a
	return a.ID, nil
}

func (f *fakeRepo) UpdateAdvantage(ctx context.Context, a Advantage) error {
	if _, ok := f.advantages[a.ID]; !ok {
		return ErrNotFound
	}
	cp := a
	f.advantages[a.ID] = &cp
	return nil
}

func (f *fakeRepo) DeleteAdvantage(ctx context.Context, id int64) error {
	if _, ok := f.advantages[id]; !ok {
		return ErrNotFound
	}
	delete(f.advantages, id)
	return nil
}

func (f *fakeRepo) GetPartner(ctx context.Context, id int64) (*Partner, error) {
	p, ok := f.partners[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (f *fakeRepo) ListPartners(ctx context.Context, activeOnly bool) ([]Partner, error) {
	var out []Partner
	for _, p := range f.partners {
		if activeOnly && !p.IsActive {
			continue
		}
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeRepo) CreatePartner(ctx context.Context, p Partner) (int64, error) {
	p.ID = f.nextID
	f.nextID++
	f.partners[p.ID] = &p
	return p.ID, nil
}

func (f *fakeRepo) UpdatePartner(ctx context.Context, p Partner) error {
	if _, ok := f.partners[p.ID]; !ok {
		return ErrNotFound
	}
	cp := p
	f.partners[p.ID] = &cp
	return nil
}

func (f *fakeRepo) DeletePartner(ctx context.Context, id int64) error {
	if _, ok := f.partners[id]; !ok {
		return ErrNotFound
	}
	delete(f.partners, id)
	return nil
}

type fakeIcons struct {
	sizes map[int64]int64
}

func (f *fakeIcons) ImageSize(ctx context.Context, id int64) (int64, bool, error) {
	size, ok := f.sizes[id]
	return size, ok, nil
}

type fakeNews struct {
	articles  []news.News
	lastLimit int
}

func (f *fakeNews) ListPublished(ctx context.Context, limit, offset int) ([]news.News, int, error) {
	f.lastLimit = limit
	if limit > len(f.articles) {
		limit = len(f.articles)
	}
	return f.articles[:limit], len(f.articles), nil
}

func newTestService(repo *fakeRepo) (*Service, *fakeNews) {
	n := &fakeNews{articles: []news.News{{ID: 1, Title: "a"}, {ID: 2, Title: "b"}, {ID: 3, Title: "c"}}}
	icons := &fakeIcons{sizes: map[int64]int64{10: 1024}}
	return NewService(repo, icons, n), n
}

func fieldErr(t *testing.T, err error, field string) validate.FieldErrors {
	t.Helper()
	var fe validate.FieldErrors
	if !errors.As(err, &fe) {
		t.Fatalf("err = %v, want field errors", err)
	}
	if !fe.Has(field) {
		t.Fatalf("field errors = %v, want %q flagged", fe, field)
	}
	return fe
}

func strptr(s string) *string { return &s }
func intptr(i int) *int       { return &i }
func i64ptr(i int64) *int64   { return &i }
func boolptr(b bool) *bool    { return &b }

func TestUpdateBlock_RejectsInapplicableFields(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	_, err := svc.UpdateBlock(ctx, BlockAbout, BlockRequest{
		Title:     strptr("About us"),
		NewsCount: intptr(3),
	})
	fieldErr(t, err, "news_count")
	if repo.blocks[BlockAbout].Title != "" {
		t.Fatal("rejected request still applied allowed fields")
	}

	_, err = svc.UpdateBlock(ctx, BlockHero, BlockRequest{Content: strptr("body text")})
	fieldErr(t, err, "content")

	_, err = svc.UpdateBlock(ctx, BlockPartners, BlockRequest{Diagram1ID: i64ptr(1)})
	fieldErr(t, err, "diagram_1_id")

	_, err = svc.UpdateBlock(ctx, BlockAbout, BlockRequest{CTAButtonText: strptr("Go")})
	fieldErr(t, err, "cta_button_text")
}

func TestUpdateBlock_AnalyticsRejectsDuplicateDiagram(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.UpdateBlock(context.Background(), BlockAnalytics, BlockRequest{
		Diagram1ID: i64ptr(7),
		Diagram2ID: i64ptr(7),
	})
	fieldErr(t, err, "diagram_2")

	b, err := svc.UpdateBlock(context.Background(), BlockAnalytics, BlockRequest{
		Diagram1ID: i64ptr(7),
		Diagram2ID: i64ptr(8),
	})
	if err != nil {
		t.Fatalf("distinct diagrams rejected: %v", err)
	}
	if *b.Diagram1ID != 7 || *b.Diagram2ID != 8 {
		t.Fatalf("diagrams = %v/%v", b.Diagram1ID, b.Diagram2ID)
	}
}

func TestUpdateBlock_DisabledCarouselResetsNewsCount(t *testing.T) {
	repo := newFakeRepo()
	svc, _ := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.UpdateBlock(ctx, BlockHero, BlockRequest{NewsCount: intptr(12)}); err != nil {
		t.Fatalf("set count: %v", err)
	}
	b, err := svc.UpdateBlock(ctx, BlockHero, BlockRequest{ShowNewsCarousel: boolptr(false)})
	if err != nil {
		t.Fatalf("disable carousel: %v", err)
	}
	if b.NewsCount != NewsCountDefault {
		t.Fatalf("news count = %d, want reset to %d", b.NewsCount, NewsCountDefault)
	}
}

func TestUpdateBlock_UnknownKind(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())
	if _, err := svc.UpdateBlock(context.Background(), BlockKind("footer"), BlockRequest{}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("err = %v, want ErrNotFound", err)
	}
}

func TestUpdateBlock_BackgroundImageMustExist(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.UpdateBlock(context.Background(), BlockHero, BlockRequest{BackgroundImageID: i64ptr(999)})
	fieldErr(t, err, "background_image_id")

	b, err := svc.UpdateBlock(context.Background(), BlockHero, BlockRequest{BackgroundImageID: i64ptr(10)})
	if err != nil {
		t.Fatalf("existing image rejected: %v", err)
	}
	if b.BackgroundImageID == nil || *b.BackgroundImageID != 10 {
		t.Fatalf("background image = %v", b.BackgroundImageID)
	}
}

func TestCreateAdvantage_MissingIconRejected(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.CreateAdvantage(context.Background(), AdvantageRequest{
		Title:       "Own rolling stock",
		Description: "Over 15,000 wagons under regular maintenance",
		IconID:      i64ptr(999),
	})
	fieldErr(t, err, "icon_id")
}

func TestCreatePartner_InvalidWebsiteRejected(t *testing.T) {
	svc, _ := newTestService(newFakeRepo())

	_, err := svc.CreatePartner(context.Background(), PartnerRequest{
		Name:    "Steelworks JSC",
		Website: "not a url",
	})
	fieldErr(t, err, "website")

	p, err := svc.CreatePartner(context.Background(), PartnerRequest{
		Name:    "Steelworks JSC",
		Website: "https://steelworks.example",
		Order:   1,
	})
	if err != nil {
		t.Fatalf("valid partner rejected: %v", err)
	}
	if !p.IsActive {
		t.Fatal("partner should default to active")
	}
}

func TestPublicView_ComposesActiveContent(t *testing.T) {
	repo := newFakeRepo()
	svc, newsSource := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.UpdateBlock(ctx, BlockHero, BlockRequest{NewsCount: intptr(2)}); err != nil {
		t.Fatalf("set count: %v", err)
	}
	if _, err := svc.UpdateBlock(ctx, BlockAbout, BlockRequest{IsActive: boolptr(false)}); err != nil {
		t.Fatalf("deactivate about: %v", err)
	}
	if _, err := svc.CreateAdvantage(ctx, AdvantageRequest{Title: "Fleet", Description: "d"}); err != nil {
		t.Fatalf("create advantage: %v", err)
	}
	inactive := false
	if _, err := svc.CreatePartner(ctx, PartnerRequest{Name: "Hidden", IsActive: &inactive}); err != nil {
		t.Fatalf("create partner: %v", err)
	}

	view, err := svc.PublicView(ctx)
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	if _, ok := view.Blocks[BlockAbout]; ok {
		t.Fatal("inactive block exposed")
	}
	if _, ok := view.Blocks[BlockHero]; !ok {
		t.Fatal("hero block missing")
	}
	if len(view.Advantages) != 1 {
		t.Fatalf("advantages = %d, want 1", len(view.Advantages))
	}
	if len(view.Partners) != 0 {
		t.Fatalf("partners = %d, want inactive excluded", len(view.Partners))
	}
	if newsSource.lastLimit != 2 || len(view.News) != 2 {
		t.Fatalf("carousel limit = %d, articles = %d, want 2", newsSource.lastLimit, len(view.News))
	}
}

func TestPublicView_CarouselOffSkipsNews(t *testing.T) {
	repo := newFakeRepo()
	svc, newsSource := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.UpdateBlock(ctx, BlockHero, BlockRequest{ShowNewsCarousel: boolptr(false)}); err != nil {
		t.Fatalf("disable carousel: %v", err)
	}
	view, err := svc.PublicView(ctx)
	if err != nil {
		t.Fatalf("public view: %v", err)
	}
	if len(view.News) != 0 {
		t.Fatalf("news = %d, want none with carousel off", len(view.News))
	}
	if newsSource.lastLimit != 0 {
		t.Fatal("news source queried with carousel off")
	}
}
