package mainpage

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("main page entry not found")

type Repository interface {
	GetBlock(ctx context.Context, kind BlockKind) (*Block, error)
	ListBlocks(ctx context.Context, activeOnly bool) ([]Block, error)
	UpdateBlock(ctx context.Context, b Block) error

	GetAdvantage(ctx context.Context, id int64) (*Advantage, error)
	ListAdvantages(ctx context.Context, activeOnly bool) ([]Advantage, error)
	CreateAdvantage(ctx context.Context, a Advantage) (int64, error)
	UpdateAdvantage(ctx context.Context, a Advantage) error
	DeleteAdvantage(ctx context.Context, id int64) error

	GetPartner(ctx context.Context, id int64) (*Partner, error)
	ListPartners(ctx context.Context, activeOnly bool) ([]Partner, error)
	CreatePartner(ctx context.Context, p Partner) (int64, error)
	UpdatePartner(ctx context.Context, p Partner) error
	DeletePartner(ctx context.Context, id int64) error
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

const blockColumns = `id, kind, title, subtitle, content, cta_button_text,
	background_image_id, show_news_carousel, news_count,
	diagram_1_id, diagram_2_id, is_active, created_at, updated_at`

func scanBlock(row pgx.Row) (*Block, error) {
	var b Block
	var kind string
	var bg, d1, d2 pgtype.Int8
	err := row.Scan(&b.ID, &kind, &b.Title, &b.Subtitle, &b.Content, &b.CTAButtonText,
		&bg, &b.ShowNewsCarousel, &b.NewsCount, &d1, &d2,
		&b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	b.Kind = BlockKind(kind)
	if bg.Valid {
		b.BackgroundImageID = &bg.Int64
	}
	if d1.Valid {
		b.Diagram1ID = &d1.Int64
	}
	if d2.Valid {
		b.Diagram2ID = &d2.Int64
	}
	return &b, nil
}

func (r *repository) GetBlock(ctx context.Context, kind BlockKind) (*Block, error) {
	return scanBlock(r.db.QueryRow(ctx,
		`SELECT `+blockColumns+` FROM main_page_blocks WHERE kind = $1`, string(kind)))
}

func (r *repository) ListBlocks(ctx context.Context, activeOnly bool) ([]Block, error) {
	q := `SELECT ` + blockColumns + ` FROM main_page_blocks`
	if activeOnly {
		q += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, q+` ORDER BY id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Block
	for rows.Next() {
		b, err := scanBlock(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *b)
	}
	return out, rows.Err()
}

func (r *repository) UpdateBlock(ctx context.Context, b Block) error {
	tag, err := r.db.Exec(ctx, `UPDATE main_page_blocks SET
		title = $2, subtitle = $3, content = $4, cta_button_text = $5,
		background_image_id = $6, show_news_carousel = $7, news_count = $8,
		diagram_1_id = $9, diagram_2_id = $10, is_active = $11, updated_at = now()
		WHERE kind = $1`,
		string(b.Kind), b.Title, b.Subtitle, b.Content, b.CTAButtonText,
		b.BackgroundImageID, b.ShowNewsCarousel, b.NewsCount,
		b.Diagram1ID, b.Diagram2ID, b.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanAdvantage(row pgx.Row) (*Advantage, error) {
	var a Advantage
	var icon pgtype.Int8
	err := row.Scan(&a.ID, &a.Title, &a.Description, &icon, &a.Order,
		&a.IsActive, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if icon.Valid {
		a.IconID = &icon.Int64
	}
	return &a, nil
}

func (r *repository) GetAdvantage(ctx context.Context, id int64) (*Advantage, error) {
	return scanAdvantage(r.db.QueryRow(ctx,
		`SELECT id, title, description, icon_id, sort_order, is_active, created_at, updated_at
		 FROM main_page_advantages WHERE id = $1`, id))
}

func (r *repository) ListAdvantages(ctx context.Context, activeOnly bool) ([]Advantage, error) {
	q := `SELECT id, title, description, icon_id, sort_order, is_active, created_at, updated_at
		 FROM main_page_advantages`
	if activeOnly {
		q += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, q+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Advantage
	for rows.Next() {
		a, err := scanAdvantage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *a)
	}
	return out, rows.Err()
}

func (r *repository) CreateAdvantage(ctx context.Context, a Advantage) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO main_page_advantages (title, description, icon_id, sort_order, is_active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		a.Title, a.Description, a.IconID, a.Order, a.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdateAdvantage(ctx context.Context, a Advantage) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE main_page_advantages SET title = $2, description = $3, icon_id = $4,
		 sort_order = $5, is_active = $6, updated_at = now() WHERE id = $1`,
		a.ID, a.Title, a.Description, a.IconID, a.Order, a.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteAdvantage(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM main_page_advantages WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanPartner(row pgx.Row) (*Partner, error) {
	var p Partner
	var logo pgtype.Int8
	err := row.Scan(&p.ID, &p.Name, &p.Website, &logo, &p.Order,
		&p.IsActive, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if logo.Valid {
		p.LogoID = &logo.Int64
	}
	return &p, nil
}

func (r *repository) GetPartner(ctx context.Context, id int64) (*Partner, error) {
	return scanPartner(r.db.QueryRow(ctx,
		`SELECT id, name, website, logo_id, sort_order, is_active, created_at, updated_at
		 FROM main_page_partners WHERE id = $1`, id))
}

func (r *repository) ListPartners(ctx context.Context, activeOnly bool) ([]Partner, error) {
	q := `SELECT id, name, website, logo_id, sort_order, is_active, created_at, updated_at
		 FROM main_page_partners`
	if activeOnly {
		q += ` WHERE is_active`
	}
	rows, err := r.db.Query(ctx, q+` ORDER BY sort_order, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Partner
	for rows.Next() {
		p, err := scanPartner(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *p)
	}
	return out, rows.Err()
}

func (r *repository) CreatePartner(ctx context.Context, p Partner) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx,
		`INSERT INTO main_page_partners (name, website, logo_id, sort_order, is_active)
		 VALUES ($1, $2, $3, $4, $5) RETURNING id`,
		p.Name, p.Website, p.LogoID, p.Order, p.IsActive).Scan(&id)
	return id, err
}

func (r *repository) UpdatePartner(ctx context.Context, p Partner) error {
	tag, err := r.db.Exec(ctx,
		`UPDATE main_page_partners SET name = $2, website = $3, logo_id = $4,
		 sort_order = $5, is_active = $6, updated_at = now() WHERE id = $1`,
		p.ID, p.Name, p.Website, p.LogoID, p.Order, p.IsActive)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeletePartner(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM main_page_partners WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
