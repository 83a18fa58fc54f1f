package mainpage

import (
	"context"
	"fmt"

	"github.com/ferrumtrans/ferrumtrans/internal/news"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// IconSource checks uploaded images referenced by blocks and children.
// The second return reports whether the image exists at all.
type IconSource interface {
	ImageSize(ctx context.Context, id int64) (int64, bool, error)
}

// NewsSource feeds the hero news carousel. Implemented by the news
// module's published-articles listing.
type NewsSource interface {
	ListPublished(ctx context.Context, limit, offset int) ([]news.News, int, error)
}

// Service holds the landing-page rules: per-kind writable field
// subsets, the hero carousel bounds, and the distinct-diagrams rule on
// the analytics block. Blocks are seeded once by migration and only
// ever updated.
type Service struct {
	repo  Repository
	icons IconSource
	news  NewsSource
}

func NewService(repo Repository, icons IconSource, newsSource NewsSource) *Service {
	return &Service{repo: repo, icons: icons, news: newsSource}
}

func (s *Service) GetBlock(ctx context.Context, kind BlockKind) (*Block, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}
	return s.repo.GetBlock(ctx, kind)
}

func (s *Service) ListBlocks(ctx context.Context) ([]Block, error) {
	return s.repo.ListBlocks(ctx, false)
}

// UpdateBlock applies a partial update to one block. A request
// touching a field the kind does not carry is rejected whole, the way
// a restricted settings update is.
func (s *Service) UpdateBlock(ctx context.Context, kind BlockKind, req BlockRequest) (*Block, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	for _, field := range inapplicableFields(kind, req) {
		fe.Add(field, fmt.Sprintf("this field does not apply to the %s block", kind))
	}
	if kind == BlockAnalytics && req.Diagram1ID != nil && req.Diagram2ID != nil &&
		*req.Diagram1ID == *req.Diagram2ID {
		fe.Add("diagram_2", "the same diagram cannot be selected twice")
	}
	if req.BackgroundImageID != nil && s.icons != nil {
		if err := s.checkImage(ctx, fe, "background_image_id", *req.BackgroundImageID); err != nil {
			return nil, err
		}
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	b, err := s.repo.GetBlock(ctx, kind)
	if err != nil {
		return nil, err
	}
	apply(b, req)
	// A disabled carousel falls back to the default article count, so
	// re-enabling starts from a sane value.
	if b.Kind == BlockHero && !b.ShowNewsCarousel {
		b.NewsCount = NewsCountDefault
	}
	if err := s.repo.UpdateBlock(ctx, *b); err != nil {
		return nil, err
	}
	return b, nil
}

func apply(b *Block, req BlockRequest) {
	if req.Title != nil {
		b.Title = *req.Title
	}
	if req.Subtitle != nil {
		b.Subtitle = *req.Subtitle
	}
	if req.Content != nil {
		b.Content = *req.Content
	}
	if req.CTAButtonText != nil {
		b.CTAButtonText = *req.CTAButtonText
	}
	if req.BackgroundImageID != nil {
		b.BackgroundImageID = req.BackgroundImageID
	}
	if req.ShowNewsCarousel != nil {
		b.ShowNewsCarousel = *req.ShowNewsCarousel
	}
	if req.NewsCount != nil {
		b.NewsCount = *req.NewsCount
	}
	if req.Diagram1ID != nil {
		b.Diagram1ID = req.Diagram1ID
	}
	if req.Diagram2ID != nil {
		b.Diagram2ID = req.Diagram2ID
	}
	if req.IsActive != nil {
		b.IsActive = *req.IsActive
	}
}

// inapplicableFields lists the request fields the kind does not carry.
func inapplicableFields(kind BlockKind, req BlockRequest) []string {
	var fields []string
	if req.Content != nil && kind == BlockHero {
		fields = append(fields, "content")
	}
	if req.CTAButtonText != nil && kind != BlockHero && kind != BlockContacts {
		fields = append(fields, "cta_button_text")
	}
	if kind != BlockHero {
		if req.BackgroundImageID != nil {
			fields = append(fields, "background_image_id")
		}
		if req.ShowNewsCarousel != nil {
			fields = append(fields, "show_news_carousel")
		}
		if req.NewsCount != nil {
			fields = append(fields, "news_count")
		}
	}
	if kind != BlockAnalytics {
		if req.Diagram1ID != nil {
			fields = append(fields, "diagram_1_id")
		}
		if req.Diagram2ID != nil {
			fields = append(fields, "diagram_2_id")
		}
	}
	return fields
}

func (s *Service) checkImage(ctx context.Context, fe validate.FieldErrors, field string, id int64) error {
	if s.icons == nil {
		return nil
	}
	_, found, err := s.icons.ImageSize(ctx, id)
	if err != nil {
		return fmt.Errorf("check image: %w", err)
	}
	if !found {
		fe.Add(field, "image does not exist")
	}
	return nil
}

func activeDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func (s *Service) GetAdvantage(ctx context.Context, id int64) (*Advantage, error) {
	return s.repo.GetAdvantage(ctx, id)
}

func (s *Service) ListAdvantages(ctx context.Context, activeOnly bool) ([]Advantage, error) {
	return s.repo.ListAdvantages(ctx, activeOnly)
}

func (s *Service) CreateAdvantage(ctx context.Context, req AdvantageRequest) (*Advantage, error) {
	if err := s.validateAdvantage(ctx, req); err != nil {
		return nil, err
	}
	a := Advantage{
		Title:       req.Title,
		Description: req.Description,
		IconID:      req.IconID,
		Order:       req.Order,
		IsActive:    activeDefault(req.IsActive),
	}
	id, err := s.repo.CreateAdvantage(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return &a, nil
}

func (s *Service) UpdateAdvantage(ctx context.Context, id int64, req AdvantageRequest) (*Advantage, error) {
	if err := s.validateAdvantage(ctx, req); err != nil {
		return nil, err
	}
	a, err := s.repo.GetAdvantage(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Title = req.Title
	a.Description = req.Description
	a.IconID = req.IconID
	a.Order = req.Order
	a.IsActive = activeDefault(req.IsActive)
	if err := s.repo.UpdateAdvantage(ctx, *a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAdvantage(ctx context.Context, id int64) error {
	return s.repo.DeleteAdvantage(ctx, id)
}

func (s *Service) validateAdvantage(ctx context.Context, req AdvantageRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.IconID != nil {
		if err := s.checkImage(ctx, fe, "icon_id", *req.IconID); err != nil {
			return err
		}
	}
	return fe.OrNil()
}

func (s *Service) GetPartner(ctx context.Context, id int64) (*Partner, error) {
	return s.repo.GetPartner(ctx, id)
}

func (s *Service) ListPartners(ctx context.Context, activeOnly bool) ([]Partner, error) {
	return s.repo.ListPartners(ctx, activeOnly)
}

func (s *Service) CreatePartner(ctx context.Context, req PartnerRequest) (*Partner, error) {
	if err := s.validatePartner(ctx, req); err != nil {
		return nil, err
	}
	p := Partner{
		Name:     req.Name,
		Website:  req.Website,
		LogoID:   req.LogoID,
		Order:    req.Order,
		IsActive: activeDefault(req.IsActive),
	}
	id, err := s.repo.CreatePartner(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (s *Service) UpdatePartner(ctx context.Context, id int64, req PartnerRequest) (*Partner, error) {
	if err := s.validatePartner(ctx, req); err != nil {
		return nil, err
	}
	p, err := s.repo.GetPartner(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = req.Name
	p.Website = req.Website
	p.LogoID = req.LogoID
	p.Order = req.Order
	p.IsActive = activeDefault(req.IsActive)
	if err := s.repo.UpdatePartner(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePartner(ctx context.Context, id int64) error {
	return s.repo.DeletePartner(ctx, id)
}

func (s *Service) validatePartner(ctx context.Context, req PartnerRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.LogoID != nil {
		if err := s.checkImage(ctx, fe, "logo_id", *req.LogoID); err != nil {
			return err
		}
	}
	return fe.OrNil()
}

// PublicView assembles what the public landing page renders: active
// blocks, their sorted active children, and the hero news carousel.
func (s *Service) PublicView(ctx context.Context) (*View, error) {
	blocks, err := s.repo.ListBlocks(ctx, true)
	if err != nil {
		return nil, err
	}
	view := &View{Blocks: make(map[BlockKind]Block, len(blocks))}
	var hero *Block
	for _, b := range blocks {
		view.Blocks[b.Kind] = b
		if b.Kind == BlockHero {
			h := b
			hero = &h
		}
	}
	if view.Advantages, err = s.repo.ListAdvantages(ctx, true); err != nil {
		return nil, err
	}
	if view.Partners, err = s.repo.ListPartners(ctx, true); err != nil {
		return nil, err
	}
	if hero != nil && hero.ShowNewsCarousel && s.news != nil {
		articles, _, err := s.news.ListPublished(ctx, hero.NewsCount, 0)
		if err != nil {
			return nil, err
		}
		view.News = articles
	}
	return view, nil
}
