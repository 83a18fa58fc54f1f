package news

import (
	"context"
	"fmt"
	"time"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// Service holds the article rules: slug generation and uniqueness,
// and the strict public visibility filter.
type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo, now: time.Now}
}

func (s *Service) Get(ctx context.Context, id int64) (*News, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) List(ctx context.Context, req ListNewsRequest) ([]News, int, error) {
	if req.Limit <= 0 {
		req.Limit = 50
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, 0, fe
	}
	return s.repo.List(ctx, req)
}

// ListPublished serves the public site: only active articles whose
// publish date has passed.
func (s *Service) ListPublished(ctx context.Context, limit, offset int) ([]News, int, error) {
	if limit <= 0 {
		limit = 20
	}
	return s.repo.ListPublished(ctx, s.now(), limit, offset)
}

// GetPublished resolves a public article by slug, refusing drafts and
// scheduled articles as if they did not exist.
func (s *Service) GetPublished(ctx context.Context, slug string) (*News, error) {
	n, err := s.repo.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if !n.Published(s.now()) {
		return nil, ErrNotFound
	}
	return n, nil
}

func (s *Service) Create(ctx context.Context, req NewsRequest) (*News, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	n := News{
		Title:            req.Title,
		Slug:             req.Slug,
		ShortDescription: req.ShortDescription,
		MainImageID:      req.MainImageID,
		Content:          req.Content,
		PublishDate:      s.now(),
		IsActive:         true,
	}
	if req.PublishDate != nil {
		n.PublishDate = *req.PublishDate
	}
	if req.IsActive != nil {
		n.IsActive = *req.IsActive
	}

	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		slug, serr := s.resolveSlug(ctx, repo, n.Title, n.Slug, 0)
		if serr != nil {
			return serr
		}
		n.Slug = slug
		id, cerr := repo.Create(ctx, n)
		if cerr != nil {
			return cerr
		}
		n.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &n, nil
}

func (s *Service) Update(ctx context.Context, id int64, req NewsRequest) (*News, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}

	var out *News
	err := s.repo.WithTx(ctx, func(ctx context.Context, repo Repository) error {
		n, gerr := repo.Get(ctx, id)
		if gerr != nil {
			return gerr
		}
		n.Title = req.Title
		n.ShortDescription = req.ShortDescription
		n.MainImageID = req.MainImageID
		n.Content = req.Content
		if req.PublishDate != nil {
			n.PublishDate = *req.PublishDate
		}
		if req.IsActive != nil {
			n.IsActive = *req.IsActive
		}

		slug, serr := s.resolveSlug(ctx, repo, n.Title, req.Slug, n.ID)
		if serr != nil {
			return serr
		}
		n.Slug = slug

		if uerr := repo.Update(ctx, *n); uerr != nil {
			return uerr
		}
		out = n
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *Service) Delete(ctx context.Context, id int64) error {
	return s.repo.Delete(ctx, id)
}

// resolveSlug generates a slug from the title when none was supplied
// and suffixes -1, -2, ... until it is unique.
func (s *Service) resolveSlug(ctx context.Context, repo Repository, title, requested string, excludeID int64) (string, error) {
	slug := requested
	if slug == "" {
		slug = Slugify(title)
	}
	if slug == "" {
		fe := make(validate.FieldErrors)
		fe.Add("slug", "could not derive a slug from the title, set one explicitly")
		return "", fe
	}

	base := slug
	for counter := 1; ; counter++ {
		exists, err := repo.SlugExists(ctx, slug, excludeID)
		if err != nil {
			return "", err
		}
		if !exists {
			return slug, nil
		}
		slug = fmt.Sprintf("%s-%d", base, counter)
	}
}

func (s *Service) ListImages(ctx context.Context, newsID int64) ([]NewsImage, error) {
	if _, err := s.repo.Get(ctx, newsID); err != nil {
		return nil, err
	}
	return s.repo.ListImages(ctx, newsID)
}

func (s *Service) AddImage(ctx context.Context, newsID int64, req AttachmentRequest) (*NewsImage, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	if _, err := s.repo.Get(ctx, newsID); err != nil {
		return nil, err
	}
	img := NewsImage{NewsID: newsID, ImageID: req.AssetID, Order: req.Order}
	id, err := s.repo.AddImage(ctx, img)
	if err != nil {
		return nil, err
	}
	img.ID = id
	return &img, nil
}

func (s *Service) RemoveImage(ctx context.Context, id int64) error {
	return s.repo.RemoveImage(ctx, id)
}

func (s *Service) ListFiles(ctx context.Context, newsID int64) ([]NewsFile, error) {
	if _, err := s.repo.Get(ctx, newsID); err != nil {
		return nil, err
	}
	return s.repo.ListFiles(ctx, newsID)
}

func (s *Service) AddFile(ctx context.Context, newsID int64, req AttachmentRequest) (*NewsFile, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	if _, err := s.repo.Get(ctx, newsID); err != nil {
		return nil, err
	}
	f := NewsFile{NewsID: newsID, FileID: req.AssetID, Order: req.Order}
	id, err := s.repo.AddFile(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	return &f, nil
}

func (s *Service) RemoveFile(ctx context.Context, id int64) error {
	return s.repo.RemoveFile(ctx, id)
}
