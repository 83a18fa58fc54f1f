package settings

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("settings: not found")

type Repository interface {
	Create(ctx context.Context, s *SiteSettings) error
	Update(ctx context.Context, s *SiteSettings) error
	Get(ctx context.Context) (*SiteSettings, error)
	Exists(ctx context.Context) (bool, error)
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) Create(ctx context.Context, s *SiteSettings) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO site_settings
			(site_name, company_full_name, logo_id, favicon_id,
			 notification_emails, default_email_from,
			 recaptcha_site_key, recaptcha_secret_key, yandex_metrica_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at, updated_at`,
		s.SiteName, s.CompanyFullName, s.LogoID, s.FaviconID,
		s.NotificationEmails, s.DefaultEmailFrom,
		s.RecaptchaSiteKey, s.RecaptchaSecretKey, s.YandexMetricaID,
	)
	if err := row.Scan(&s.ID, &s.CreatedAt, &s.UpdatedAt); err != nil {
		return fmt.Errorf("settings: create: %w", err)
	}
	return nil
}

func (r *PGRepository) Update(ctx context.Context, s *SiteSettings) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE site_settings
		SET site_name = $2, company_full_name = $3, logo_id = $4, favicon_id = $5,
		    notification_emails = $6, default_email_from = $7,
		    recaptcha_site_key = $8, recaptcha_secret_key = $9,
		    yandex_metrica_id = $10, updated_at = now()
		WHERE id = $1`,
		s.ID, s.SiteName, s.CompanyFullName, s.LogoID, s.FaviconID,
		s.NotificationEmails, s.DefaultEmailFrom,
		s.RecaptchaSiteKey, s.RecaptchaSecretKey, s.YandexMetricaID,
	)
	if err != nil {
		return fmt.Errorf("settings: update: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) Get(ctx context.Context) (*SiteSettings, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, site_name, company_full_name, logo_id, favicon_id,
		       notification_emails, default_email_from,
		       recaptcha_site_key, recaptcha_secret_key, yandex_metrica_id,
		       created_at, updated_at
		FROM site_settings
		ORDER BY id
		LIMIT 1`)

	var (
		s          SiteSettings
		logo, favi pgtype.Int8
	)
	err := row.Scan(&s.ID, &s.SiteName, &s.CompanyFullName, &logo, &favi,
		&s.NotificationEmails, &s.DefaultEmailFrom,
		&s.RecaptchaSiteKey, &s.RecaptchaSecretKey, &s.YandexMetricaID,
		&s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("settings: get: %w", err)
	}
	if logo.Valid {
		v := logo.Int64
		s.LogoID = &v
	}
	if favi.Valid {
		v := favi.Int64
		s.FaviconID = &v
	}
	return &s, nil
}

func (r *PGRepository) Exists(ctx context.Context) (bool, error) {
	var exists bool
	err := r.pool.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM site_settings)`).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("settings: exists: %w", err)
	}
	return exists, nil
}
