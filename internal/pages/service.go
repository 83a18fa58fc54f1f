package pages

import (
	"context"
	"errors"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// ErrSingleton marks attempts to create a second instance of a
// singleton page or to delete the live one.
var ErrSingleton = errors.New("singleton page")

// Service holds the page rules: singleton bootstrap-once semantics
// and the exactly-one-parent constraint on section attachments.
type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (s *Service) GetPage(ctx context.Context, kind PageKind) (*Page, error) {
	return s.repo.GetPage(ctx, kind)
}

// BootstrapPage creates the singleton instance for a kind. A second
// call for the same kind is refused.
func (s *Service) BootstrapPage(ctx context.Context, kind PageKind, req PageRequest) (*Page, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	exists, err := s.repo.PageExists(ctx, kind)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSingleton
	}
	p := Page{Kind: kind, Title: req.Title, MetaTitle: req.MetaTitle, MetaDescription: req.MetaDescription}
	id, err := s.repo.CreatePage(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (s *Service) UpdatePage(ctx context.Context, kind PageKind, req PageRequest) (*Page, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	p, err := s.repo.GetPage(ctx, kind)
	if err != nil {
		return nil, err
	}
	p.Title = req.Title
	p.MetaTitle = req.MetaTitle
	p.MetaDescription = req.MetaDescription
	if err := s.repo.UpdatePage(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) GetSection(ctx context.Context, id int64) (*Section, error) {
	return s.repo.GetSection(ctx, id)
}

func (s *Service) ListSections(ctx context.Context, kind PageKind, activeOnly bool) ([]Section, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}
	return s.repo.ListSections(ctx, kind, activeOnly)
}

func (s *Service) CreateSection(ctx context.Context, kind PageKind, req SectionRequest) (*Section, error) {
	if !kind.Valid() {
		return nil, ErrNotFound
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	sec := Section{
		PageKind:  kind,
		MenuTitle: req.MenuTitle,
		Title:     req.Title,
		Subtitle:  req.Subtitle,
		Content:   req.Content,
		Layout:    Layout1,
		Order:     req.Order,
		IsActive:  true,
	}
	if req.Layout != "" {
		sec.Layout = Layout(req.Layout)
	}
	if req.IsActive != nil {
		sec.IsActive = *req.IsActive
	}
	id, err := s.repo.CreateSection(ctx, sec)
	if err != nil {
		return nil, err
	}
	sec.ID = id
	return &sec, nil
}

func (s *Service) UpdateSection(ctx context.Context, id int64, req SectionRequest) (*Section, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	sec, err := s.repo.GetSection(ctx, id)
	if err != nil {
		return nil, err
	}
	sec.MenuTitle = req.MenuTitle
	sec.Title = req.Title
	sec.Subtitle = req.Subtitle
	sec.Content = req.Content
	if req.Layout != "" {
		sec.Layout = Layout(req.Layout)
	}
	sec.Order = req.Order
	if req.IsActive != nil {
		sec.IsActive = *req.IsActive
	}
	if err := s.repo.UpdateSection(ctx, *sec); err != nil {
		return nil, err
	}
	return sec, nil
}

func (s *Service) DeleteSection(ctx context.Context, id int64) error {
	return s.repo.DeleteSection(ctx, id)
}

// resolveRef validates the polymorphic parent ids and confirms the
// referenced section exists under the claimed page kind.
func (s *Service) resolveRef(ctx context.Context, req SectionAttachmentRequest) (SectionRef, error) {
	ref, err := NewSectionRef(req.AboutSectionID, req.ServiceSectionID, req.DocumentSectionID)
	if err != nil {
		return SectionRef{}, err
	}
	sec, err := s.repo.GetSection(ctx, ref.SectionID)
	if err != nil {
		return SectionRef{}, err
	}
	if sec.PageKind != ref.Kind {
		fe := make(validate.FieldErrors)
		fe.Add(validate.NonFieldKey, "section does not belong to the referenced page")
		return SectionRef{}, fe
	}
	return ref, nil
}

func (s *Service) ListSectionImages(ctx context.Context, ref SectionRef) ([]SectionImage, error) {
	return s.repo.ListSectionImages(ctx, ref)
}

func (s *Service) AttachImage(ctx context.Context, req SectionAttachmentRequest) (*SectionImage, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	ref, err := s.resolveRef(ctx, req)
	if err != nil {
		return nil, err
	}
	img := SectionImage{Section: ref, ImageID: req.AssetID, Order: req.Order}
	id, err := s.repo.CreateSectionImage(ctx, img)
	if err != nil {
		return nil, err
	}
	img.ID = id
	return &img, nil
}

func (s *Service) DetachImage(ctx context.Context, id int64) error {
	return s.repo.DeleteSectionImage(ctx, id)
}

func (s *Service) ListSectionFiles(ctx context.Context, ref SectionRef) ([]SectionFile, error) {
	return s.repo.ListSectionFiles(ctx, ref)
}

func (s *Service) AttachFile(ctx context.Context, req SectionAttachmentRequest) (*SectionFile, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	ref, err := s.resolveRef(ctx, req)
	if err != nil {
		return nil, err
	}
	f := SectionFile{Section: ref, FileID: req.AssetID, Order: req.Order}
	id, err := s.repo.CreateSectionFile(ctx, f)
	if err != nil {
		return nil, err
	}
	f.ID = id
	return &f, nil
}

func (s *Service) DetachFile(ctx context.Context, id int64) error {
	return s.repo.DeleteSectionFile(ctx, id)
}
