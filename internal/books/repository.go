package books

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/AhmedDR200/Library-API/internal/platform/db"
	"github.com/AhmedDR200/Library-API/internal/shared"
)

// Repository defines persistence operations for books.
type Repository interface {
	List(ctx context.Context, filter ListFilter) ([]Book, error)
	FindByID(ctx context.Context, id int64) (*Book, error)
	Create(ctx context.Context, req CreateBookRequest) (*Book, error)
	Update(ctx context.Context, id int64, req UpdateBookRequest) (*Book, error)
	Delete(ctx context.Context, id int64) error
}

// ErrUnknownAuthor indicates a book referencing a missing author.
var ErrUnknownAuthor = errors.New("unknown author")

const foreignKeyViolation = "23503"

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const bookSelect = `
	SELECT b.id, b.title, b.price, b.rating, b.cover, b.created_at, b.updated_at,
	       a.id, a.name
	FROM books b
	JOIN authors a ON a.id = b.author_id`

// List returns books matching the filter, sorted by title.
func (r *PGRepository) List(ctx context.Context, filter ListFilter) ([]Book, error) {
	query := bookSelect
	var args []any
	var clauses []string
	add := func(cond string, val any) {
		args = append(args, val)
		clauses = append(clauses, fmt.Sprintf(cond, len(args)))
	}
	if filter.MinPrice != nil {
		add("b.price >= $%d", *filter.MinPrice)
	}
	if filter.MaxPrice != nil {
		add("b.price <= $%d", *filter.MaxPrice)
	}
	if filter.MinRate != nil {
		add("b.rating >= $%d", *filter.MinRate)
	}
	if filter.MaxRate != nil {
		add("b.rating <= $%d", *filter.MaxRate)
	}
	for i, clause := range clauses {
		if i == 0 {
			query += " WHERE " + clause
		} else {
			query += " AND " + clause
		}
	}
	query += " ORDER BY b.title"

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []Book
	for rows.Next() {
		var b Book
		if err := rows.Scan(&b.ID, &b.Title, &b.Price, &b.Rating, &b.Cover,
			&b.CreatedAt, &b.UpdatedAt, &b.Author.ID, &b.Author.Name); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}

// FindByID fetches a book by id.
func (r *PGRepository) FindByID(ctx context.Context, id int64) (*Book, error) {
	return r.scanBook(r.pool.QueryRow(ctx, bookSelect+" WHERE b.id = $1", id))
}

// Create inserts a new book and returns it joined with its author. The
// insert and the joined re-read run in one transaction.
func (r *PGRepository) Create(ctx context.Context, req CreateBookRequest) (*Book, error) {
	var book *Book
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		var id int64
		err := tx.QueryRow(ctx,
			`INSERT INTO books (title, author_id, price, rating, cover)
			 VALUES ($1, $2, $3, $4, $5)
			 RETURNING id`,
			req.Title, req.AuthorID, req.Price, req.Rating, req.Cover,
		).Scan(&id)
		if err != nil {
			return err
		}
		book, err = r.scanBook(tx.QueryRow(ctx, bookSelect+" WHERE b.id = $1", id))
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}
	return book, nil
}

// Update overwrites the provided fields, leaving nil ones untouched.
func (r *PGRepository) Update(ctx context.Context, id int64, req UpdateBookRequest) (*Book, error) {
	var book *Book
	err := db.WithTx(ctx, r.pool, func(tx pgx.Tx) error {
		tag, err := tx.Exec(ctx,
			`UPDATE books SET
				title      = COALESCE($2, title),
				author_id  = COALESCE($3, author_id),
				price      = COALESCE($4, price),
				rating     = COALESCE($5, rating),
				cover      = COALESCE($6, cover),
				updated_at = now()
			 WHERE id = $1`,
			id, req.Title, req.AuthorID, req.Price, req.Rating, req.Cover)
		if err != nil {
			return err
		}
		if tag.RowsAffected() == 0 {
			return shared.ErrNotFound
		}
		book, err = r.scanBook(tx.QueryRow(ctx, bookSelect+" WHERE b.id = $1", id))
		return err
	})
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == foreignKeyViolation {
			return nil, ErrUnknownAuthor
		}
		return nil, err
	}
	return book, nil
}

// Delete removes a book record.
func (r *PGRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM books WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func (r *PGRepository) scanBook(row pgx.Row) (*Book, error) {
	var b Book
	err := row.Scan(&b.ID, &b.Title, &b.Price, &b.Rating, &b.Cover,
		&b.CreatedAt, &b.UpdatedAt, &b.Author.ID, &b.Author.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &b, nil
}

var _ Repository = (*PGRepository)(nil)
