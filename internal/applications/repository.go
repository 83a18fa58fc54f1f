package applications

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"
)

var ErrNotFound = errors.New("application not found")

type Repository interface {
	Get(ctx context.Context, id int64) (*Application, error)
	List(ctx context.Context, req ListApplicationsRequest) ([]Application, int, error)
	Create(ctx context.Context, app Application) (int64, error)
	Update(ctx context.Context, app Application) error
	Delete(ctx context.Context, id int64) error
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

const applicationColumns = `id, name, phone, email, message, status, manager_comment, processed_at, created_at, updated_at`

func (r *repository) Get(ctx context.Context, id int64) (*Application, error) {
	row := r.db.QueryRow(ctx, `SELECT `+applicationColumns+` FROM applications WHERE id = $1`, id)
	app, err := scanApplication(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return app, nil
}

func (r *repository) List(ctx context.Context, req ListApplicationsRequest) ([]Application, int, error) {
	where := "WHERE TRUE"
	args := []any{}
	argPos := 1
	if req.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, *req.Status)
		argPos++
	}

	var total int
	if err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM applications "+where, args...).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := fmt.Sprintf("SELECT %s FROM applications %s ORDER BY created_at DESC LIMIT $%d OFFSET $%d", applicationColumns, where, argPos, argPos+1)
	args = append(args, req.Limit, req.Offset)
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Application
	for rows.Next() {
		app, err := scanApplication(rows)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, *app)
	}
	return out, total, rows.Err()
}

func (r *repository) Create(ctx context.Context, app Application) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO applications (name, phone, email, message, status, manager_comment, processed_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), $4, $5, $6, $7)
		RETURNING id`,
		app.Name, app.Phone, app.Email, app.Message, string(app.Status), app.ManagerComment, app.ProcessedAt,
	).Scan(&id)
	return id, err
}

func (r *repository) Update(ctx context.Context, app Application) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE applications
		SET name = $2, phone = NULLIF($3, ''), email = NULLIF($4, ''), message = $5,
		    status = $6, manager_comment = $7, processed_at = $8, updated_at = NOW()
		WHERE id = $1`,
		app.ID, app.Name, app.Phone, app.Email, app.Message,
		string(app.Status), app.ManagerComment, app.ProcessedAt,
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
	tag, err := r.db.Exec(ctx, `DELETE FROM applications WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func scanApplication(row pgx.Row) (*Application, error) {
	var app Application
	var status string
	var phone, email, comment pgtype.Text
	var processedAt, createdAt, updatedAt pgtype.Timestamptz
	err := row.Scan(&app.ID, &app.Name, &phone, &email, &app.Message,
		&status, &comment, &processedAt, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	app.Status = Status(status)
	if phone.Valid {
		app.Phone = phone.String
	}
	if email.Valid {
		app.Email = email.String
	}
	if comment.Valid {
		app.ManagerComment = comment.String
	}
	if processedAt.Valid {
		t := processedAt.Time
		app.ProcessedAt = &t
	}
	app.CreatedAt = createdAt.Time
	app.UpdatedAt = updatedAt.Time
	return &app, nil
}
