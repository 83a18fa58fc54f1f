package settings

import (
	"context"
	"errors"

	"github.com/ferrumtrans/ferrumtrans/internal/access"
	"github.com/ferrumtrans/ferrumtrans/internal/validate"
)

// ErrSingleton is returned when a second settings record would be
// created.
var ErrSingleton = errors.New("settings: singleton record")

// UpdateRequest is a partial update: nil fields are untouched, which is
// also what the per-role field scoping keys off.
type UpdateRequest struct {
	SiteName        *string `json:"site_name" validate:"omitempty,max=200"`
	CompanyFullName *string `json:"company_full_name" validate:"omitempty,max=500"`
	LogoID          *int64  `json:"logo_id"`
	FaviconID       *int64  `json:"favicon_id"`

	NotificationEmails *string `json:"notification_emails"`
	DefaultEmailFrom   *string `json:"default_email_from" validate:"omitempty,max=254"`

	RecaptchaSiteKey   *string `json:"recaptcha_site_key"`
	RecaptchaSecretKey *string `json:"recaptcha_secret_key"`
	YandexMetricaID    *string `json:"yandex_metrica_id"`
}

// BootstrapRequest creates the one live record.
type BootstrapRequest struct {
	SiteName        string `json:"site_name" validate:"required,max=200"`
	CompanyFullName string `json:"company_full_name" validate:"max=500"`

	NotificationEmails string `json:"notification_emails"`
	DefaultEmailFrom   string `json:"default_email_from" validate:"omitempty,max=254"`

	RecaptchaSiteKey   string `json:"recaptcha_site_key"`
	RecaptchaSecretKey string `json:"recaptcha_secret_key"`
	YandexMetricaID    string `json:"yandex_metrica_id"`
}

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Bootstrap creates the settings record; a second call is refused.
func (s *Service) Bootstrap(ctx context.Context, req BootstrapRequest) (*SiteSettings, error) {
	exists, err := s.repo.Exists(ctx)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, ErrSingleton
	}
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	fe := make(validate.FieldErrors)
	validateRecipients(req.NotificationEmails, fe)
	validateFrom(req.DefaultEmailFrom, fe)
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	rec := &SiteSettings{
		SiteName:           req.SiteName,
		CompanyFullName:    req.CompanyFullName,
		NotificationEmails: req.NotificationEmails,
		DefaultEmailFrom:   req.DefaultEmailFrom,
		RecaptchaSiteKey:   req.RecaptchaSiteKey,
		RecaptchaSecretKey: req.RecaptchaSecretKey,
		YandexMetricaID:    req.YandexMetricaID,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) Get(ctx context.Context) (*SiteSettings, error) {
	return s.repo.Get(ctx)
}

// Update applies a partial change scoped to the caller's role. A
// content manager may change branding fields only; a request that
// touches a restricted field is rejected with an error on that field,
// not silently pared down.
func (s *Service) Update(ctx context.Context, role access.Role, req UpdateRequest) (*SiteSettings, error) {
	if fe := validate.Struct(req); fe != nil {
		return nil, fe
	}
	fe := make(validate.FieldErrors)
	if role != access.RoleAdmin {
		for _, field := range restrictedFields(req) {
			fe.Add(field, "only an administrator may change this field")
		}
	}
	if req.NotificationEmails != nil {
		validateRecipients(*req.NotificationEmails, fe)
	}
	if req.DefaultEmailFrom != nil {
		validateFrom(*req.DefaultEmailFrom, fe)
	}
	if err := fe.OrNil(); err != nil {
		return nil, err
	}

	rec, err := s.repo.Get(ctx)
	if err != nil {
		return nil, err
	}
	apply(rec, req)
	if err := s.repo.Update(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// NotificationRecipients exposes the recipient list and sender address
// to the mail dispatch path.
func (s *Service) NotificationRecipients(ctx context.Context) ([]string, string, error) {
	rec, err := s.repo.Get(ctx)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, "", nil
		}
		return nil, "", err
	}
	return rec.NotificationRecipients(), rec.DefaultEmailFrom, nil
}

// restrictedFields lists the integration fields a non-admin request is
// trying to touch.
func restrictedFields(req UpdateRequest) []string {
	var out []string
	if req.NotificationEmails != nil {
		out = append(out, "notification_emails")
	}
	if req.DefaultEmailFrom != nil {
		out = append(out, "default_email_from")
	}
	if req.RecaptchaSiteKey != nil {
		out = append(out, "recaptcha_site_key")
	}
	if req.RecaptchaSecretKey != nil {
		out = append(out, "recaptcha_secret_key")
	}
	if req.YandexMetricaID != nil {
		out = append(out, "yandex_metrica_id")
	}
	return out
}

func apply(rec *SiteSettings, req UpdateRequest) {
	if req.SiteName != nil {
		rec.SiteName = *req.SiteName
	}
	if req.CompanyFullName != nil {
		rec.CompanyFullName = *req.CompanyFullName
	}
	if req.LogoID != nil {
		rec.LogoID = req.LogoID
	}
	if req.FaviconID != nil {
		rec.FaviconID = req.FaviconID
	}
	if req.NotificationEmails != nil {
		rec.NotificationEmails = *req.NotificationEmails
	}
	if req.DefaultEmailFrom != nil {
		rec.DefaultEmailFrom = *req.DefaultEmailFrom
	}
	if req.RecaptchaSiteKey != nil {
		rec.RecaptchaSiteKey = *req.RecaptchaSiteKey
	}
	if req.RecaptchaSecretKey != nil {
		rec.RecaptchaSecretKey = *req.RecaptchaSecretKey
	}
	if req.YandexMetricaID != nil {
		rec.YandexMetricaID = *req.YandexMetricaID
	}
}

func validateRecipients(raw string, fe validate.FieldErrors) {
	probe := SiteSettings{NotificationEmails: raw}
	for _, addr := range probe.NotificationRecipients() {
		if !validate.ValidEmail(addr) {
			fe.Add("notification_emails", "contains an invalid address: "+addr)
			return
		}
	}
}

func validateFrom(raw string, fe validate.FieldErrors) {
	if raw != "" && !validate.ValidEmail(raw) {
		fe.Add("default_email_from", "must be a valid email address")
	}
}
