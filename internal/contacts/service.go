package contacts

import (
	"context"
	"fmt"

	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// MaxIconSize caps the stored size of a social-media icon binary.
const MaxIconSize = 2 * 1024 * 1024

// IconSource checks uploaded images referenced as social icons. The
// second return reports whether the image exists at all.
type IconSource interface {
	ImageSize(ctx context.Context, id int64) (int64, bool, error)
}

// Service validates and persists the contact-page entities.
type Service struct {
	repo  Repository
	icons IconSource
}

func NewService(repo Repository, icons IconSource) *Service {
	return &Service{repo: repo, icons: icons}
}

func activeDefault(v *bool) bool {
	if v == nil {
		return true
	}
	return *v
}

func (s *Service) ListPhones(ctx context.Context, activeOnly bool) ([]Phone, error) {
	return s.repo.ListPhones(ctx, activeOnly)
}

func (s *Service) GetPhone(ctx context.Context, id int64) (*Phone, error) {
	return s.repo.GetPhone(ctx, id)
}

func (s *Service) CreatePhone(ctx context.Context, req PhoneRequest) (*Phone, error) {
	p := Phone{Description: req.Description, Order: req.Order, IsActive: activeDefault(req.IsActive)}
	if err := s.applyPhone(&p, req); err != nil {
		return nil, err
	}
	id, err := s.repo.CreatePhone(ctx, p)
	if err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

func (s *Service) UpdatePhone(ctx context.Context, id int64, req PhoneRequest) (*Phone, error) {
	p, err := s.repo.GetPhone(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	p.Order = req.Order
	p.IsActive = activeDefault(req.IsActive)
	if err := s.applyPhone(p, req); err != nil {
		return nil, err
	}
	if err := s.repo.UpdatePhone(ctx, *p); err != nil {
		return nil, err
	}
	return p, nil
}

func (s *Service) DeletePhone(ctx context.Context, id int64) error {
	return s.repo.DeletePhone(ctx, id)
}

func (s *Service) applyPhone(p *Phone, req PhoneRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.Number != "" {
		normalized, ok := validate.NormalizePhone(req.Number)
		if !ok {
			fe.Add("number", "enter a valid phone number in the format +7 999 123-45-67")
		} else {
			p.Number = normalized
		}
	}
	return fe.OrNil()
}

func (s *Service) ListEmails(ctx context.Context, activeOnly bool) ([]Email, error) {
	return s.repo.ListEmails(ctx, activeOnly)
}

func (s *Service) GetEmail(ctx context.Context, id int64) (*Email, error) {
	return s.repo.GetEmail(ctx, id)
}

func (s *Service) CreateEmail(ctx context.Context, req EmailRequest) (*Email, error) {
	e := Email{Address: req.Address, Description: req.Description, Order: req.Order, IsActive: activeDefault(req.IsActive)}
	if err := validateEmailReq(req); err != nil {
		return nil, err
	}
	id, err := s.repo.CreateEmail(ctx, e)
	if err != nil {
		return nil, err
	}
	e.ID = id
	return &e, nil
}

func (s *Service) UpdateEmail(ctx context.Context, id int64, req EmailRequest) (*Email, error) {
	if err := validateEmailReq(req); err != nil {
		return nil, err
	}
	e, err := s.repo.GetEmail(ctx, id)
	if err != nil {
		return nil, err
	}
	e.Address = req.Address
	e.Description = req.Description
	e.Order = req.Order
	e.IsActive = activeDefault(req.IsActive)
	if err := s.repo.UpdateEmail(ctx, *e); err != nil {
		return nil, err
	}
	return e, nil
}

func (s *Service) DeleteEmail(ctx context.Context, id int64) error {
	return s.repo.DeleteEmail(ctx, id)
}

func validateEmailReq(req EmailRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.Address != "" && !validate.ValidEmail(req.Address) {
		fe.Add("address", "enter a valid email address")
	}
	return fe.OrNil()
}

func (s *Service) ListAddresses(ctx context.Context, activeOnly bool) ([]Address, error) {
	return s.repo.ListAddresses(ctx, activeOnly)
}

func (s *Service) GetAddress(ctx context.Context, id int64) (*Address, error) {
	return s.repo.GetAddress(ctx, id)
}

func (s *Service) CreateAddress(ctx context.Context, req AddressRequest) (*Address, error) {
	if err := validateAddressReq(req); err != nil {
		return nil, err
	}
	a := Address{Text: req.Text, Description: req.Description, MapLink: req.MapLink, Order: req.Order, IsActive: activeDefault(req.IsActive)}
	id, err := s.repo.CreateAddress(ctx, a)
	if err != nil {
		return nil, err
	}
	a.ID = id
	return &a, nil
}

func (s *Service) UpdateAddress(ctx context.Context, id int64, req AddressRequest) (*Address, error) {
	if err := validateAddressReq(req); err != nil {
		return nil, err
	}
	a, err := s.repo.GetAddress(ctx, id)
	if err != nil {
		return nil, err
	}
	a.Text = req.Text
	a.Description = req.Description
	a.MapLink = req.MapLink
	a.Order = req.Order
	a.IsActive = activeDefault(req.IsActive)
	if err := s.repo.UpdateAddress(ctx, *a); err != nil {
		return nil, err
	}
	return a, nil
}

func (s *Service) DeleteAddress(ctx context.Context, id int64) error {
	return s.repo.DeleteAddress(ctx, id)
}

func validateAddressReq(req AddressRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	// Whitespace-only text passes the required tag but is still empty.
	if req.Text != "" && !validate.NotBlank(req.Text) {
		fe.Add("text", "address text cannot be blank")
	}
	return fe.OrNil()
}

func (s *Service) ListSocialMedia(ctx context.Context, activeOnly bool) ([]SocialMedia, error) {
	return s.repo.ListSocialMedia(ctx, activeOnly)
}

func (s *Service) GetSocialMedia(ctx context.Context, id int64) (*SocialMedia, error) {
	return s.repo.GetSocialMedia(ctx, id)
}

func (s *Service) CreateSocialMedia(ctx context.Context, req SocialMediaRequest) (*SocialMedia, error) {
	if err := s.validateSocialReq(ctx, req); err != nil {
		return nil, err
	}
	sm := SocialMedia{Name: req.Name, URL: req.URL, IconID: req.IconID, Order: req.Order, IsActive: activeDefault(req.IsActive)}
	id, err := s.repo.CreateSocialMedia(ctx, sm)
	if err != nil {
		return nil, err
	}
	sm.ID = id
	return &sm, nil
}

func (s *Service) UpdateSocialMedia(ctx context.Context, id int64, req SocialMediaRequest) (*SocialMedia, error) {
	if err := s.validateSocialReq(ctx, req); err != nil {
		return nil, err
	}
	sm, err := s.repo.GetSocialMedia(ctx, id)
	if err != nil {
		return nil, err
	}
	sm.Name = req.Name
	sm.URL = req.URL
	sm.IconID = req.IconID
	sm.Order = req.Order
	sm.IsActive = activeDefault(req.IsActive)
	if err := s.repo.UpdateSocialMedia(ctx, *sm); err != nil {
		return nil, err
	}
	return sm, nil
}

func (s *Service) DeleteSocialMedia(ctx context.Context, id int64) error {
	return s.repo.DeleteSocialMedia(ctx, id)
}

func (s *Service) validateSocialReq(ctx context.Context, req SocialMediaRequest) error {
	fe := validate.Struct(req)
	if fe == nil {
		fe = make(validate.FieldErrors)
	}
	if req.Name != "" && !validate.NotBlank(req.Name) {
		fe.Add("name", "name cannot be blank")
	}
	if req.URL != "" && !validate.NotBlank(req.URL) {
		fe.Add("url", "url cannot be blank")
	}
	if req.IconID != nil && s.icons != nil {
		size, found, err := s.icons.ImageSize(ctx, *req.IconID)
		if err != nil {
			return fmt.Errorf("check icon size: %w", err)
		}
		switch {
		case !found:
			fe.Add("icon_id", "icon image does not exist")
		case size > MaxIconSize:
			fe.Add("icon_id", "icon file is too large (2 MB max)")
		}
	}
	return fe.OrNil()
}
