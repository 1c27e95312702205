package authors

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AhmedDR200/Library-API/internal/shared"
)

// Repository defines persistence operations for authors.
type Repository interface {
	List(ctx context.Context, limit, offset int) ([]Author, int, error)
	FindByID(ctx context.Context, id int64) (*Author, error)
	Create(ctx context.Context, author *Author) error
	Update(ctx context.Context, id int64, req UpdateAuthorRequest) (*Author, error)
	Delete(ctx context.Context, id int64) error
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const authorColumns = `id, name, age, nationality, image, created_at, updated_at`

// List returns one page of authors sorted by name, plus the total count.
func (r *PGRepository) List(ctx context.Context, limit, offset int) ([]Author, int, error) {
	var total int
	if err := r.pool.QueryRow(ctx, `SELECT count(*) FROM authors`).Scan(&total); err != nil {
		return nil, 0, err
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+authorColumns+` FROM authors ORDER BY name LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var out []Author
	for rows.Next() {
		var a Author
		if err := rows.Scan(&a.ID, &a.Name, &a.Age, &a.Nationality, &a.Image, &a.CreatedAt, &a.UpdatedAt); err != nil {
			return nil, 0, err
		}
		out = append(out, a)
	}
	return out, total, rows.Err()
}

// FindByID fetches an author by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Author, error) {
	var a Author
	err := r.pool.QueryRow(ctx, `SELECT `+authorColumns+` FROM authors WHERE id = $1`, id).
		Scan(&a.ID, &a.Name, &a.Age, &a.Nationality, &a.Image, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Create inserts a new author.
func (r *PGRepository) Create(ctx context.Context, author *Author) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO authors (name, age, nationality, image)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, created_at, updated_at`,
		author.Name, author.Age, author.Nationality, author.Image,
	).Scan(&author.ID, &author.CreatedAt, &author.UpdatedAt)
}

// Update overwrites the provided fields, leaving nil ones untouched.
func (r *PGRepository) Update(ctx context.Context, id int64, req UpdateAuthorRequest) (*Author, error) {
	var a Author
	err := r.pool.QueryRow(ctx,
		`UPDATE authors SET
			name        = COALESCE($2, name),
			age         = COALESCE($3, age),
			nationality = COALESCE($4, nationality),
			image       = COALESCE($5, image),
			updated_at  = now()
		 WHERE id = $1
		 RETURNING `+authorColumns,
		id, req.Name, req.Age, req.Nationality, req.Image,
	).Scan(&a.ID, &a.Name, &a.Age, &a.Nationality, &a.Image, &a.CreatedAt, &a.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &a, nil
}

// Delete removes an author record.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM authors WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

var _ Repository = (*PGRepository)(nil)
