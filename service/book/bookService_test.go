// service/book/book_service_test.go
package booksvc_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librarydesk/model"
	booksvc "librarydesk/service/book"
)

type repoMock struct {
	createFn        func(ctx context.Context, b *model.Book) error
	updateFn        func(ctx context.Context, b *model.Book) (bool, error)
	byIDFn          func(ctx context.Context, id int64) (*model.Book, error)
	listAllFn       func(ctx context.Context) ([]model.Book, error)
	listAvailableFn func(ctx context.Context) ([]model.Book, error)
}

func (m *repoMock) Create(ctx context.Context, b *model.Book) error { return m.createFn(ctx, b) }
func (m *repoMock) Update(ctx context.Context, b *model.Book) (bool, error) {
	return m.updateFn(ctx, b)
}
func (m *repoMock) ByID(ctx context.Context, id int64) (*model.Book, error) {
	return m.byIDFn(ctx, id)
}
func (m *repoMock) ListAll(ctx context.Context) ([]model.Book, error) { return m.listAllFn(ctx) }
func (m *repoMock) ListAvailable(ctx context.Context) ([]model.Book, error) {
	return m.listAvailableFn(ctx)
}

func TestCreate_Validation(t *testing.T) {
	s := booksvc.New(&repoMock{})
	if _, err := s.Create(context.Background(), "", "Title", "Author", 3); booksvc.Code(err) != booksvc.ErrInvalid {
		t.Fatalf("expected INVALID for empty isbn, got %v", err)
	}
	if _, err := s.Create(context.Background(), "X1", "", "Author", 3); booksvc.Code(err) != booksvc.ErrInvalid {
		t.Fatalf("expected INVALID for empty title, got %v", err)
	}
	if _, err := s.Create(context.Background(), "X1", "Title", "Author", 0); booksvc.Code(err) != booksvc.ErrInvalid {
		t.Fatalf("expected INVALID for zero quantity, got %v", err)
	}
}

func TestCreate_Success(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			if b.ISBN != "X1" || b.Quantity != 2 || b.AvailableQuantity != 2 {
				return errors.New("bad args")
			}
			b.ID = 42
			return nil
		},
	}
	s := booksvc.New(m)
	id, err := s.Create(context.Background(), "X1", "Clean Code", "Robert Martin", 2)
	if err != nil || id != 42 {
		t.Fatalf("got id=%v err=%v; want 42 nil", id, err)
	}
}

func TestCreate_DuplicateISBN(t *testing.T) {
	m := &repoMock{
		createFn: func(ctx context.Context, b *model.Book) error {
			return &pgconn.PgError{Code: pgerrcode.UniqueViolation, ConstraintName: "books_isbn_key"}
		},
	}
	s := booksvc.New(m)
	_, err := s.Create(context.Background(), "X1", "Title", "Author", 1)
	if booksvc.Code(err) != booksvc.ErrDuplicateISBN {
		t.Fatalf("expected DUPLICATE_ISBN, got %v", err)
	}
}

func TestUpdate_AvailableExceedsQuantity(t *testing.T) {
	s := booksvc.New(&repoMock{})
	err := s.Update(context.Background(), &model.Book{
		ID: 1, ISBN: "X1", Title: "T", Author: "A",
		Quantity: 2, AvailableQuantity: 3,
	})
	if booksvc.Code(err) != booksvc.ErrInvalid {
		t.Fatalf("expected INVALID when available > quantity, got %v", err)
	}
}

func TestUpdate_NotFound(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return false, nil },
	}
	s := booksvc.New(m)
	err := s.Update(context.Background(), &model.Book{
		ID: 99, ISBN: "X1", Title: "T", Author: "A",
		Quantity: 2, AvailableQuantity: 2,
	})
	if booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestUpdate_Success(t *testing.T) {
	m := &repoMock{
		updateFn: func(ctx context.Context, b *model.Book) (bool, error) { return true, nil },
	}
	s := booksvc.New(m)
	err := s.Update(context.Background(), &model.Book{
		ID: 1, ISBN: "X1", Title: "T", Author: "A",
		Quantity: 3, AvailableQuantity: 1,
	})
	if err != nil {
		t.Fatalf("Update error: %v", err)
	}
}

func TestDetail_NotFound(t *testing.T) {
	m := &repoMock{
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) { return nil, sql.ErrNoRows },
	}
	s := booksvc.New(m)
	if _, err := s.Detail(context.Background(), 7); booksvc.Code(err) != booksvc.ErrNotFound {
		t.Fatalf("expected NOT_FOUND, got %v", err)
	}
}

func TestPassThroughs(t *testing.T) {
	m := &repoMock{
		listAllFn:       func(ctx context.Context) ([]model.Book, error) { return nil, nil },
		listAvailableFn: func(ctx context.Context) ([]model.Book, error) { return nil, nil },
		byIDFn: func(ctx context.Context, id int64) (*model.Book, error) {
			return &model.Book{ID: id}, nil
		},
	}
	s := booksvc.New(m)

	if _, err := s.List(context.Background()); err != nil {
		t.Fatalf("List error: %v", err)
	}
	if _, err := s.Available(context.Background()); err != nil {
		t.Fatalf("Available error: %v", err)
	}
	if _, err := s.Detail(context.Background(), 99); err != nil {
		t.Fatalf("Detail error: %v", err)
	}
}
