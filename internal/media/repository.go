package media

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("media: not found")

// Repository persists image and file metadata. Binaries live on
// storage; only the keys are stored here.
type Repository interface {
	CreateImage(ctx context.Context, img *Image) error
	UpdateImage(ctx context.Context, img *Image) error
	GetImage(ctx context.Context, id int64) (*Image, error)
	ListImages(ctx context.Context, activeOnly bool) ([]Image, error)
	DeleteImage(ctx context.Context, id int64) error

	CreateFile(ctx context.Context, f *File) error
	UpdateFile(ctx context.Context, f *File) error
	GetFile(ctx context.Context, id int64) (*File, error)
	ListFiles(ctx context.Context, activeOnly bool) ([]File, error)
	DeleteFile(ctx context.Context, id int64) error
}

type PGRepository struct {
	pool *pgxpool.Pool
}

func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

func (r *PGRepository) CreateImage(ctx context.Context, img *Image) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO images (key, alt_text, width, height, file_size, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, updated_at`,
		img.Key, img.AltText, img.Width, img.Height, img.FileSize, img.IsActive,
	)
	if err := row.Scan(&img.ID, &img.CreatedAt, &img.UpdatedAt); err != nil {
		return fmt.Errorf("media: create image: %w", err)
	}
	return nil
}

func (r *PGRepository) UpdateImage(ctx context.Context, img *Image) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE images
		SET key = $2, alt_text = $3, width = $4, height = $5,
		    file_size = $6, is_active = $7, updated_at = now()
		WHERE id = $1`,
		img.ID, img.Key, img.AltText, img.Width, img.Height, img.FileSize, img.IsActive,
	)
	if err != nil {
		return fmt.Errorf("media: update image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) GetImage(ctx context.Context, id int64) (*Image, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, key, alt_text, width, height, file_size, is_active, created_at, updated_at
		FROM images WHERE id = $1`, id)
	return scanImage(row)
}

func (r *PGRepository) ListImages(ctx context.Context, activeOnly bool) ([]Image, error) {
	q := `
		SELECT id, key, alt_text, width, height, file_size, is_active, created_at, updated_at
		FROM images`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("media: list images: %w", err)
	}
	defer rows.Close()

	var out []Image
	for rows.Next() {
		img, err := scanImage(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *img)
	}
	return out, rows.Err()
}

func (r *PGRepository) DeleteImage(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM images WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("media: delete image: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) CreateFile(ctx context.Context, f *File) error {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO files (key, name, file_size, is_active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at, updated_at`,
		f.Key, f.Name, f.FileSize, f.IsActive,
	)
	if err := row.Scan(&f.ID, &f.CreatedAt, &f.UpdatedAt); err != nil {
		return fmt.Errorf("media: create file: %w", err)
	}
	return nil
}

func (r *PGRepository) UpdateFile(ctx context.Context, f *File) error {
	tag, err := r.pool.Exec(ctx, `
		UPDATE files
		SET key = $2, name = $3, file_size = $4, is_active = $5, updated_at = now()
		WHERE id = $1`,
		f.ID, f.Key, f.Name, f.FileSize, f.IsActive,
	)
	if err != nil {
		return fmt.Errorf("media: update file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PGRepository) GetFile(ctx context.Context, id int64) (*File, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT id, key, name, file_size, is_active, created_at, updated_at
		FROM files WHERE id = $1`, id)
	return scanFile(row)
}

func (r *PGRepository) ListFiles(ctx context.Context, activeOnly bool) ([]File, error) {
	q := `
		SELECT id, key, name, file_size, is_active, created_at, updated_at
		FROM files`
	if activeOnly {
		q += ` WHERE is_active`
	}
	q += ` ORDER BY created_at DESC`

	rows, err := r.pool.Query(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("media: list files: %w", err)
	}
	defer rows.Close()

	var out []File
	for rows.Next() {
		f, err := scanFile(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *f)
	}
	return out, rows.Err()
}

func (r *PGRepository) DeleteFile(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM files WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("media: delete file: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanImage(row pgx.Row) (*Image, error) {
	var (
		img  Image
		alt  pgtype.Text
		w, h pgtype.Int4
		size pgtype.Int8
	)
	err := row.Scan(&img.ID, &img.Key, &alt, &w, &h, &size, &img.IsActive, &img.CreatedAt, &img.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("media: scan image: %w", err)
	}
	img.AltText = alt.String
	if w.Valid {
		v := int(w.Int32)
		img.Width = &v
	}
	if h.Valid {
		v := int(h.Int32)
		img.Height = &v
	}
	if size.Valid {
		v := size.Int64
		img.FileSize = &v
	}
	return &img, nil
}

func scanFile(row pgx.Row) (*File, error) {
	var (
		f    File
		size pgtype.Int8
	)
	err := row.Scan(&f.ID, &f.Key, &f.Name, &size, &f.IsActive, &f.CreatedAt, &f.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("media: scan file: %w", err)
	}
	if size.Valid {
		v := size.Int64
		f.FileSize = &v
	}
	return &f, nil
}
