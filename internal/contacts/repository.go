package contacts

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("contact entry not found")

// Repository covers the four contact entity kinds. They share lifecycle
// (sortable, soft-activated) but have distinct columns, so the methods
// stay per-kind rather than hiding behind a generic record.
type Repository interface {
	ListPhones(ctx context.Context, activeOnly bool) ([]Phone, error)
	GetPhone(ctx context.Context, id int64) (*Phone, error)
	CreatePhone(ctx context.Context, p Phone) (int64, error)
	UpdatePhone(ctx context.Context, p Phone) error
	DeletePhone(ctx context.Context, id int64) error

	ListEmails(ctx context.Context, activeOnly bool) ([]Email, error)
	GetEmail(ctx context.Context, id int64) (*Email, error)
	CreateEmail(ctx context.Context, e Email) (int64, error)
	UpdateEmail(ctx context.Context, e Email) error
	DeleteEmail(ctx context.Context, id int64) error

	ListAddresses(ctx context.Context, activeOnly bool) ([]Address, error)
	GetAddress(ctx context.Context, id int64) (*Address, error)
	CreateAddress(ctx context.Context, a Address) (int64, error)
	UpdateAddress(ctx context.Context, a Address) error
	DeleteAddress(ctx context.Context, id int64) error

	ListSocialMedia(ctx context.Context, activeOnly bool) ([]SocialMedia, error)
	GetSocialMedia(ctx context.Context, id int64) (*SocialMedia, error)
	CreateSocialMedia(ctx context.Context, s SocialMedia) (int64, error)
	UpdateSocialMedia(ctx context.Context, s SocialMedia) error
	DeleteSocialMedia(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db dbtx
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool}
}

func activeClause(activeOnly bool) string {
	if activeOnly {
		return " WHERE is_active"
	}
	return ""
}

func (r *repository) ListPhones(ctx context.Context, activeOnly bool) ([]Phone, error) {
	rows, err := r.db.Query(ctx, `SELECT id, number, description, sort_order, is_active, created_at, updated_at FROM contact_phones`+activeClause(activeOnly)+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Phone
	for rows.Next() {
		var p Phone
		var desc pgtype.Text
		if err := rows.Scan(&p.ID, &p.Number, &desc, &p.Order, &p.IsActive, &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, err
		}
		p.Description = desc.String
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *repository) GetPhone(ctx context.Context, id int64) (*Phone, error) {
	var p Phone
	var desc pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT id, number, description, sort_order, is_active, created_at, updated_at FROM contact_phones WHERE id = $1`, id).
		Scan(&p.ID, &p.Number, &desc, &p.Order, &p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	p.Description = desc.String
	return &p, nil
}

func (r *repository) CreatePhone(ctx context.Context, p Phone) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO contact_phones (number, description, sort_order, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		p.Number, p.Description, p.Order, p.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdatePhone(ctx context.Context, p Phone) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_phones SET number = $2, description = $3, sort_order = $4, is_active = $5, updated_at = NOW() WHERE id = $1`,
		p.ID, p.Number, p.Description, p.Order, p.IsActive)
	return mapExec(tag, err)
}

func (r *repository) DeletePhone(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_phones WHERE id = $1`, id)
	return mapExec(tag, err)
}

func (r *repository) ListEmails(ctx context.Context, activeOnly bool) ([]Email, error) {
	rows, err := r.db.Query(ctx, `SELECT id, address, description, sort_order, is_active, created_at, updated_at FROM contact_emails`+activeClause(activeOnly)+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Email
	for rows.Next() {
		var e Email
		var desc pgtype.Text
		if err := rows.Scan(&e.ID, &e.Address, &desc, &e.Order, &e.IsActive, &e.CreatedAt, &e.UpdatedAt); err != nil {
			return nil, err
		}
		e.Description = desc.String
		out = append(out, e)
	}
	return out, rows.Err()
}

func (r *repository) GetEmail(ctx context.Context, id int64) (*Email, error) {
	var e Email
	var desc pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT id, address, description, sort_order, is_active, created_at, updated_at FROM contact_emails WHERE id = $1`, id).
		Scan(&e.ID, &e.Address, &desc, &e.Order, &e.IsActive, &e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	e.Description = desc.String
	return &e, nil
}

func (r *repository) CreateEmail(ctx context.Context, e Email) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO contact_emails (address, description, sort_order, is_active) VALUES ($1, $2, $3, $4) RETURNING id`,
		e.Address, e.Description, e.Order, e.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdateEmail(ctx context.Context, e Email) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_emails SET address = $2, description = $3, sort_order = $4, is_active = $5, updated_at = NOW() WHERE id = $1`,
		e.ID, e.Address, e.Description, e.Order, e.IsActive)
	return mapExec(tag, err)
}

func (r *repository) DeleteEmail(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_emails WHERE id = $1`, id)
	return mapExec(tag, err)
}

func (r *repository) ListAddresses(ctx context.Context, activeOnly bool) ([]Address, error) {
	rows, err := r.db.Query(ctx, `SELECT id, text, description, map_link, sort_order, is_active, created_at, updated_at FROM contact_addresses`+activeClause(activeOnly)+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Address
	for rows.Next() {
		var a Address
		var desc, link pgtype.Text
		if err := rows.Scan(&a.ID, &a.Text, &desc, &link, &a.Order, &a.IsActive, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, err
		}
		a.Description = desc.String
		a.MapLink = link.String
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *repository) GetAddress(ctx context.Context, id int64) (*Address, error) {
	var a Address
	var desc, link pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT id, text, description, map_link, sort_order, is_active, created_at, updated_at FROM contact_addresses WHERE id = $1`, id).
		Scan(&a.ID, &a.Text, &desc, &link, &a.Order, &a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	a.Description = desc.String
	a.MapLink = link.String
	return &a, nil
}

func (r *repository) CreateAddress(ctx context.Context, a Address) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO contact_addresses (text, description, map_link, sort_order, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.Text, a.Description, a.MapLink, a.Order, a.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdateAddress(ctx context.Context, a Address) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_addresses SET text = $2, description = $3, map_link = $4, sort_order = $5, is_active = $6, updated_at = NOW() WHERE id = $1`,
		a.ID, a.Text, a.Description, a.MapLink, a.Order, a.IsActive)
	return mapExec(tag, err)
}

func (r *repository) DeleteAddress(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_addresses WHERE id = $1`, id)
	return mapExec(tag, err)
}

func (r *repository) ListSocialMedia(ctx context.Context, activeOnly bool) ([]SocialMedia, error) {
	rows, err := r.db.Query(ctx, `SELECT id, name, url, icon_id, sort_order, is_active, created_at, updated_at FROM contact_social_media`+activeClause(activeOnly)+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SocialMedia
	for rows.Next() {
		var s SocialMedia
		var icon pgtype.Int8
		if err := rows.Scan(&s.ID, &s.Name, &s.URL, &icon, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		if icon.Valid {
			v := icon.Int64
			s.IconID = &v
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *repository) GetSocialMedia(ctx context.Context, id int64) (*SocialMedia, error) {
	var s SocialMedia
	var icon pgtype.Int8
	err := r.db.QueryRow(ctx, `SELECT id, name, url, icon_id, sort_order, is_active, created_at, updated_at FROM contact_social_media WHERE id = $1`, id).
		Scan(&s.ID, &s.Name, &s.URL, &icon, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, mapNoRows(err)
	}
	if icon.Valid {
		v := icon.Int64
		s.IconID = &v
	}
	return &s, nil
}

func (r *repository) CreateSocialMedia(ctx context.Context, s SocialMedia) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO contact_social_media (name, url, icon_id, sort_order, is_active) VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		s.Name, s.URL, s.IconID, s.Order, s.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdateSocialMedia(ctx context.Context, s SocialMedia) error {
	tag, err := r.db.Exec(ctx, `UPDATE contact_social_media SET name = $2, url = $3, icon_id = $4, sort_order = $5, is_active = $6, updated_at = NOW() WHERE id = $1`,
		s.ID, s.Name, s.URL, s.IconID, s.Order, s.IsActive)
	return mapExec(tag, err)
}

func (r *repository) DeleteSocialMedia(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contact_social_media WHERE id = $1`, id)
	return mapExec(tag, err)
}

func mapNoRows(err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return ErrNotFound
	}
	return err
}

func mapExec(tag pgconn.CommandTag, err error) error {
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
