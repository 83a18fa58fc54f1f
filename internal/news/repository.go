package news

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferrumtrans/ferrumtrans/internal/platform/db"
)

var ErrNotFound = errors.New("news entry not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	Get(ctx context.Context, id int64) (*News, error)
	GetBySlug(ctx context.Context, slug string) (*News, error)
	SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error)
	List(ctx context.Context, req ListNewsRequest) ([]News, int, error)
	ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]News, int, error)
	Create(ctx context.Context, n News) (int64, error)
	Update(ctx context.Context, n News) error
	Delete(ctx context.Context, id int64) error

	ListImages(ctx context.Context, newsID int64) ([]NewsImage, error)
	AddImage(ctx context.Context, img NewsImage) (int64, error)
	RemoveImage(ctx context.Context, id int64) error
	ListFiles(ctx context.Context, newsID int64) ([]NewsFile, error)
	AddFile(ctx context.Context, f NewsFile) (int64, error)
	RemoveFile(ctx context.Context, id int64) error
}

type dbtx interface {
	Exec(context.Context, string, ...any) (pgconn.CommandTag, error)
	Query(context.Context, string, ...any) (pgx.Rows, error)
	QueryRow(context.Context, string, ...any) pgx.Row
}

type repository struct {
	db   dbtx
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) Repository {
	return &repository{db: pool, pool: pool}
}

func (r *repository) WithTx(ctx context.Context, fn func(context.Context, Repository) error) error {
	return db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		return fn(ctx, &repository{db: tx, pool: r.pool})
	})
}

const newsColumns = `id, title, slug, short_description, main_image_id, content, publish_date, is_active, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*News, error) {
	return r.scanOne(ctx, `SELECT `+newsColumns+` FROM news WHERE id = $1`, id)
}

func (r *repository) GetBySlug(ctx context.Context, slug string) (*News, error) {
	return r.scanOne(ctx, `SELECT `+newsColumns+` FROM news WHERE slug = $1`, slug)
}

func (r *repository) SlugExists(ctx context.Context, slug string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM news WHERE slug = $1 AND id <> $2)`, slug, excludeID).Scan(&exists)
	return exists, err
}

func (r *repository) List(ctx context.Context, req ListNewsRequest) ([]News, int, error) {
	where := "WHERE TRUE"
	args := []any{}
	argPos := 1
	if req.IsActive != nil {
		where += fmt.Sprintf(" AND is_active = $%d", argPos)
		args = append(args, *req.IsActive)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM news "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM news %s ORDER BY publish_date DESC LIMIT $%d OFFSET $%d", newsColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)
	return r.scanList(ctx, query, total, args...)
}

// ListPublished is the public read surface filter; drafts and future
// publish dates never leak through it.
func (r *repository) ListPublished(ctx context.Context, now time.Time, limit, offset int) ([]News, int, error) {
	var total int
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM news WHERE is_active AND publish_date <= $1`, now).Scan(&total); err != nil {
		return nil, 0, err
	}
	query := `SELECT ` + newsColumns + ` FROM news WHERE is_active AND publish_date <= $1 ORDER BY publish_date DESC LIMIT $2 OFFSET $3`
	return r.scanList(ctx, query, total, now, limit, offset)
}

func (r *repository) Create(ctx context.Context, n News) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO news (title, slug, short_description, main_image_id, content, publish_date, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id`,
		n.Title, n.Slug, n.ShortDescription, n.MainImageID, n.Content, n.PublishDate, n.IsActive,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, n News) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE news
		SET title = $2, slug = $3, short_description = $4, main_image_id = $5,
		    content = $6, publish_date = $7, is_active = $8, updated_at = NOW()
		WHERE id = $1`,
		n.ID, n.Title, n.Slug, n.ShortDescription, n.MainImageID, n.Content, n.PublishDate, n.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListImages(ctx context.Context, newsID int64) ([]NewsImage, error) {
	rows, err := r.db.Query(ctx, `SELECT id, news_id, image_id, sort_order FROM news_images WHERE news_id = $1 ORDER BY sort_order, id`, newsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NewsImage
	for rows.Next() {
		var img NewsImage
		if err := rows.Scan(&img.ID, &img.NewsID, &img.ImageID, &img.Order); err != nil {
			return nil, err
		}
		out = append(out, img)
	}
	return out, rows.Err()
}

func (r *repository) AddImage(ctx context.Context, img NewsImage) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO news_images (news_id, image_id, sort_order) VALUES ($1, $2, $3) RETURNING id`,
		img.NewsID, img.ImageID, img.Order).Scan(&id)
	return id, err
}

func (r *repository) RemoveImage(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news_images WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) ListFiles(ctx context.Context, newsID int64) ([]NewsFile, error) {
	rows, err := r.db.Query(ctx, `SELECT id, news_id, file_id, sort_order FROM news_files WHERE news_id = $1 ORDER BY sort_order, id`, newsID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []NewsFile
	for rows.Next() {
		var f NewsFile
		if err := rows.Scan(&f.ID, &f.NewsID, &f.FileID, &f.Order); err != nil {
			return nil, err
		}
		out = append(out, f)
	}
	return out, rows.Err()
}

func (r *repository) AddFile(ctx context.Context, f NewsFile) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `INSERT INTO news_files (news_id, file_id, sort_order) VALUES ($1, $2, $3) RETURNING id`,
		f.NewsID, f.FileID, f.Order).Scan(&id)
	return id, err
}

func (r *repository) RemoveFile(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news_files WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) scanOne(ctx context.Context, query string, args ...any) (*News, error) {
	n, err := scanNews(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return n, nil
}

func (r *repository) scanList(ctx context.Context, query string, total int, args ...any) ([]News, int, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()
	var out []News
	for rows.Next() {
		n, err := scanNews(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *n)
	}
	return out, total, rows.Err()
}

func scanNews(row pgx.Row) (*News, error) {
	var n News
	var short pgtype.Text
	var mainImage pgtype.Int8
	err := row.Scan(&n.ID, &n.Title, &n.Slug, &short, &mainImage, &n.Content,
		&n.PublishDate, &n.IsActive, &n.CreatedAt, &n.UpdatedAt)
	if err != nil {
		return nil, err
	}
	n.ShortDescription = short.String
	if mainImage.Valid {
		v := mainImage.Int64
		n.MainImageID = &v
	}
	return &n, nil
}
