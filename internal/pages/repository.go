package pages

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("page entry not found")

type Repository interface {
	GetPage(ctx context.Context, kind PageKind) (*Page, error)
	PageExists(ctx context.Context, kind PageKind) (bool, error)
	CreatePage(ctx context.Context, p Page) (int64, error)
	UpdatePage(ctx context.Context, p Page) error

	GetSection(ctx context.Context, id int64) (*Section, error)
	ListSections(ctx context.Context, kind PageKind, activeOnly bool) ([]Section, error)
	CreateSection(ctx context.Context, s Section) (int64, error)
	UpdateSection(ctx context.Context, s Section) error
	DeleteSection(ctx context.Context, id int64) error

	GetSectionImage(ctx context.Context, id int64) (*SectionImage, error)
	ListSectionImages(ctx context.Context, ref SectionRef) ([]SectionImage, error)
	CreateSectionImage(ctx context.Context, img SectionImage) (int64, error)
	DeleteSectionImage(ctx context.Context, id int64) error

	GetSectionFile(ctx context.Context, id int64) (*SectionFile, error)
	ListSectionFiles(ctx context.Context, ref SectionRef) ([]SectionFile, error)
	CreateSectionFile(ctx context.Context, f SectionFile) (int64, error)
	DeleteSectionFile(ctx context.Context, id int64) error
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

func (r *repository) GetPage(ctx context.Context, kind PageKind) (*Page, error) {
	var p Page
	var kindStr string
	var metaTitle, metaDesc pgtype.Text
	err := r.db.QueryRow(ctx, `SELECT id, kind, title, meta_title, meta_description, created_at, updated_at FROM pages WHERE kind = $1`, string(kind)).
		Scan(&p.ID, &kindStr, &p.Title, &metaTitle, &metaDesc, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	p.Kind = PageKind(kindStr)
	p.MetaTitle = metaTitle.String
	p.MetaDescription = metaDesc.String
	return &p, nil
}

func (r *repository) PageExists(ctx context.Context, kind PageKind) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM pages WHERE kind = $1)`, string(kind)).Scan(&exists)
	return exists, err
}

func (r *repository) CreatePage(ctx context.Context, p Page) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO pages (kind, title, meta_title, meta_description) VALUES ($1, $2, $3, $4) RETURNING id`,
		string(p.Kind), p.Title, p.MetaTitle, p.MetaDescription).Scan(&id)
	return id, err
}

func (r *repository) UpdatePage(ctx context.Context, p Page) error {
	tag, err := r.db.Exec(ctx, `UPDATE pages SET title = $2, meta_title = $3, meta_description = $4, updated_at = NOW() WHERE kind = $1`,
		string(p.Kind), p.Title, p.MetaTitle, p.MetaDescription)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

const sectionColumns = `id, page_kind, menu_title, title, subtitle, content, layout, sort_order, is_active, created_at, updated_at`

func (r *repository) GetSection(ctx context.Context, id int64) (*Section, error) {
	s, err := scanSection(r.db.QueryRow(ctx, `SELECT `+sectionColumns+` FROM page_sections WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return s, nil
}

func (r *repository) ListSections(ctx context.Context, kind PageKind, activeOnly bool) ([]Section, error) {
	query := `SELECT ` + sectionColumns + ` FROM page_sections WHERE page_kind = $1`
	if activeOnly {
		query += ` AND is_active`
	}
	query += ` ORDER BY sort_order, id`
	rows, err := r.db.Query(ctx, query, string(kind))
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Section
	for rows.Next() {
		s, err := scanSection(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func (r *repository) CreateSection(ctx context.Context, s Section) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO page_sections (page_kind, menu_title, title, subtitle, content, layout, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id`,
		string(s.PageKind), s.MenuTitle, s.Title, s.Subtitle, s.Content, string(s.Layout), s.Order, s.IsActive,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateSection(ctx context.Context, s Section) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE page_sections
		SET menu_title = $2, title = $3, subtitle = $4, content = $5, layout = $6,
		    sort_order = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1`,
		s.ID, s.MenuTitle, s.Title, s.Subtitle, s.Content, string(s.Layout), s.Order, s.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteSection(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM page_sections WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetSectionImage(ctx context.Context, id int64) (*SectionImage, error) {
	var img SectionImage
	var kind string
	err := r.db.QueryRow(ctx, `SELECT id, section_kind, section_id, image_id, sort_order FROM section_images WHERE id = $1`, id).
		Scan(&img.ID, &kind, &img.Section.SectionID, &img.ImageID, &img.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	img.Section.Kind = PageKind(kind)
	return &img, nil
}

func (r *repository) ListSectionImages(ctx context.Context, ref SectionRef) ([]SectionImage, error) {
	rows, err := r.db.Query(ctx, `SELECT id, section_kind, section_id, image_id, sort_order FROM section_images WHERE section_kind = $1 AND section_id = $2 ORDER BY sort_order, id`,
		string(ref.Kind), ref.SectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SectionImage
	for rows.Next() {
		var img SectionImage
		var kind string
		if err := rows.Scan(&img.ID, &kind, &img.Section.SectionID, &img.ImageID, &img.Order); err != nil {
			return nil, err
		}
		img.Section.Kind = PageKind(kind)
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *repository) CreateSectionImage(ctx context.Context, img SectionImage) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO section_images (section_kind, section_id, image_id, sort_order) VALUES ($1, $2, $3, $4) RETURNING id`,
		string(img.Section.Kind), img.Section.SectionID, img.ImageID, img.Order).Scan(&id)
	return id, err
}

func (r *repository) DeleteSectionImage(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM section_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetSectionFile(ctx context.Context, id int64) (*SectionFile, error) {
	var f SectionFile
	var kind string
	err := r.db.QueryRow(ctx, `SELECT id, section_kind, section_id, file_id, sort_order FROM section_files WHERE id = $1`, id).
		Scan(&f.ID, &kind, &f.Section.SectionID, &f.FileID, &f.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	f.Section.Kind = PageKind(kind)
	return &f, nil
}

func (r *repository) ListSectionFiles(ctx context.Context, ref SectionRef) ([]SectionFile, error) {
	rows, err := r.db.Query(ctx, `SELECT id, section_kind, section_id, file_id, sort_order FROM section_files WHERE section_kind = $1 AND section_id = $2 ORDER BY sort_order, id`,
		string(ref.Kind), ref.SectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []SectionFile
	for rows.Next() {
		var f SectionFile
		var kind string
		if err := rows.Scan(&f.ID, &kind, &f.Section.SectionID, &f.FileID, &f.Order); err != nil {
			return nil, err
		}
		f.Section.Kind = PageKind(kind)
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repository) CreateSectionFile(ctx context.Context, f SectionFile) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO section_files (section_kind, section_id, file_id, sort_order) VALUES ($1, $2, $3, $4) RETURNING id`,
		string(f.Section.Kind), f.Section.SectionID, f.FileID, f.Order).Scan(&id)
	return id, err
}

func (r *repository) DeleteSectionFile(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM section_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanSection(row pgx.Row) (*Section, error) {
	var s Section
	var kind, layout string
	var menuTitle, title, subtitle, content pgtype.Text
	err := row.Scan(&s.ID, &kind, &menuTitle, &title, &subtitle, &content,
		&layout, &s.Order, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	s.PageKind = PageKind(kind)
	s.Layout = Layout(layout)
	s.MenuTitle = menuTitle.String
	s.Title = title.String
	s.Subtitle = subtitle.String
	s.Content = content.String
	return &s, nil
}
