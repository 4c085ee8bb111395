package book

import (
	"context"
	"database/sql"

	"librarydesk/model"
)

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (found bool, err error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db} }

func (r *repo) Create(ctx context.Context, b *model.Book) error {
	// New books start with every copy on the shelf.
	const q = `
INSERT INTO books (isbn, title, author, quantity, available_quantity)
VALUES ($1,$2,$3,$4,$4)
RETURNING book_id`
	return r.db.QueryRowContext(ctx, q, b.ISBN, b.Title, b.Author, b.Quantity).Scan(&b.ID)
}

func (r *repo) Update(ctx context.Context, b *model.Book) (bool, error) {
	const q = `
UPDATE books
SET isbn=$2, title=$3, author=$4, quantity=$5, available_quantity=$6
WHERE book_id=$1`
	res, err := r.db.ExecContext(ctx, q, b.ID, b.ISBN, b.Title, b.Author, b.Quantity, b.AvailableQuantity)
	if err != nil {
		return false, err
	}
	aff, _ := res.RowsAffected()
	return aff > 0, nil
}

func (r *repo) ByID(ctx context.Context, id int64) (*model.Book, error) {
	const q = `
SELECT book_id, isbn, title, author, quantity, available_quantity
FROM books
WHERE book_id=$1`
	var b model.Book
	if err := r.db.QueryRowContext(ctx, q, id).Scan(
		&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Quantity, &b.AvailableQuantity,
	); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *repo) ListAll(ctx context.Context) ([]model.Book, error) {
	const q = `
	SELECT book_id, isbn, title, author, quantity, available_quantity
	FROM books
	ORDER BY title`
	return r.list(ctx, q)
}

func (r *repo) ListAvailable(ctx context.Context) ([]model.Book, error) {
	const q = `
	SELECT book_id, isbn, title, author, quantity, available_quantity
	FROM books
	WHERE available_quantity > 0
	ORDER BY title`
	return r.list(ctx, q)
}

func (r *repo) list(ctx context.Context, q string) ([]model.Book, error) {
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []model.Book
	for rows.Next() {
		var b model.Book
		if err := rows.Scan(&b.ID, &b.ISBN, &b.Title, &b.Author, &b.Quantity, &b.AvailableQuantity); err != nil {
			return nil, err
		}
		out = append(out, b)
	}
	return out, rows.Err()
}
