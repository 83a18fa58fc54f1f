package analytics

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/ferrumtrans/ferrumtrans/internal/platform/db"
)

var ErrNotFound = errors.New("diagram not found")

type Repository interface {
	WithTx(ctx context.Context, fn func(context.Context, Repository) error) error

	GetDiagram(ctx context.Context, id int64) (*Diagram, error)
	ListDiagrams(ctx context.Context, activeOnly bool) ([]Diagram, error)
	CountActive(ctx context.Context, excludeID int64) (int, error)
	CreateDiagram(ctx context.Context, d Diagram) (int64, error)
	UpdateDiagram(ctx context.Context, d Diagram) error
	DeleteDiagram(ctx context.Context, id int64) error

	GetCategory(ctx context.Context, id int64) (*Category, error)
	ListCategories(ctx context.Context, diagramID int64) ([]Category, error)
	CreateCategory(ctx context.Context, c Category) (int64, error)
	UpdateCategory(ctx context.Context, c Category) error
	DeleteCategory(ctx context.Context, id int64) error
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

const diagramColumns = `id, title, description, chart_type, measurement_unit, sort_order, is_active, created_at, updated_at`

func (r *repository) GetDiagram(ctx context.Context, id int64) (*Diagram, error) {
	row := r.db.QueryRow(ctx, `SELECT `+diagramColumns+` FROM diagrams WHERE id = $1`, id)
	d, err := scanDiagram(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return d, nil
}

func (r *repository) ListDiagrams(ctx context.Context, activeOnly bool) ([]Diagram, error) {
	query := `SELECT ` + diagramColumns + ` FROM diagrams`
	if activeOnly {
		query += ` WHERE is_active`
	}
	query += ` ORDER BY sort_order, id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Diagram
	for rows.Next() {
		d, err := scanDiagram(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *d)
	}
	return out, rows.Err()
}

func (r *repository) CountActive(ctx context.Context, excludeID int64) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM diagrams WHERE is_active AND id <> $1`, excludeID).Scan(&count)
	return count, err
}

func (r *repository) CreateDiagram(ctx context.Context, d Diagram) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO diagrams (title, description, chart_type, measurement_unit, sort_order, is_active)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id`,
		d.Title, d.Description, string(d.ChartType), d.MeasurementUnit, d.Order, d.IsActive,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateDiagram(ctx context.Context, d Diagram) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE diagrams
		SET title = $2, description = $3, chart_type = $4, measurement_unit = $5,
		    sort_order = $6, is_active = $7, updated_at = NOW()
		WHERE id = $1`,
		d.ID, d.Title, d.Description, string(d.ChartType), d.MeasurementUnit, d.Order, d.IsActive,
	)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteDiagram(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM diagrams WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `SELECT id, diagram_id, name, value, color, sort_order FROM diagram_categories WHERE id = $1`, id).
		Scan(&c.ID, &c.DiagramID, &c.Name, &c.Value, &c.Color, &c.Order)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &c, nil
}

func (r *repository) ListCategories(ctx context.Context, diagramID int64) ([]Category, error) {
	rows, err := r.db.Query(ctx, `SELECT id, diagram_id, name, value, color, sort_order FROM diagram_categories WHERE diagram_id = $1 ORDER BY sort_order, id`, diagramID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Category
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.DiagramID, &c.Name, &c.Value, &c.Color, &c.Order); err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *repository) CreateCategory(ctx context.Context, c Category) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO diagram_categories (diagram_id, name, value, color, sort_order)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`,
		c.DiagramID, c.Name, c.Value, c.Color, c.Order,
	).Scan(&id)
	return id, err
}

func (r *repository) UpdateCategory(ctx context.Context, c Category) error {
	tag, err := r.db.Exec(ctx, `UPDATE diagram_categories SET name = $2, value = $3, color = $4, sort_order = $5 WHERE id = $1`,
		c.ID, c.Name, c.Value, c.Color, c.Order)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *repository) DeleteCategory(ctx context.Context, id int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM diagram_categories WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanDiagram(row pgx.Row) (*Diagram, error) {
	var d Diagram
	var chartType string
	var desc pgtype.Text
	err := row.Scan(&d.ID, &d.Title, &desc, &chartType, &d.MeasurementUnit,
		&d.Order, &d.IsActive, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	d.ChartType = ChartType(chartType)
	d.Description = desc.String
	return &d, nil
}
