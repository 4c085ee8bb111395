package booksvc

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"librarydesk/model"
)

type ErrCode string

const (
	ErrNotFound      ErrCode = "NOT_FOUND"
	ErrDuplicateISBN ErrCode = "DUPLICATE_ISBN"
	ErrInvalid       ErrCode = "INVALID"
)

type codedError struct{ code ErrCode }

func (e codedError) Error() string { return string(e.code) }
func (e codedError) Code() ErrCode { return e.code }
func makeErr(c ErrCode) error      { return codedError{code: c} }

// Code extracts error code
func Code(err error) ErrCode {
	var ce interface{ Code() ErrCode }
	if errors.As(err, &ce) {
		return ce.Code()
	}
	return ""
}

type Repo interface {
	Create(ctx context.Context, b *model.Book) error
	Update(ctx context.Context, b *model.Book) (bool, error)
	ByID(ctx context.Context, id int64) (*model.Book, error)
	ListAll(ctx context.Context) ([]model.Book, error)
	ListAvailable(ctx context.Context) ([]model.Book, error)
}

type Service interface {
	Create(ctx context.Context, isbn, title, author string, quantity int64) (int64, error)
	Update(ctx context.Context, b *model.Book) error
	Detail(ctx context.Context, id int64) (*model.Book, error)
	List(ctx context.Context) ([]model.Book, error)
	Available(ctx context.Context) ([]model.Book, error)
}

type service struct{ r Repo }

func New(r Repo) Service { return &service{r: r} }

func (s *service) Create(ctx context.Context, isbn, title, author string, quantity int64) (int64, error) {
	isbn = strings.TrimSpace(isbn)
	if isbn == "" || title == "" || author == "" || quantity <= 0 {
		return 0, makeErr(ErrInvalid)
	}
	b := &model.Book{ISBN: isbn, Title: title, Author: author, Quantity: quantity, AvailableQuantity: quantity}
	if err := s.r.Create(ctx, b); err != nil {
		if isUniqueViolation(err) {
			return 0, makeErr(ErrDuplicateISBN)
		}
		return 0, err
	}
	return b.ID, nil
}

func (s *service) Update(ctx context.Context, b *model.Book) error {
	if strings.TrimSpace(b.ISBN) == "" || b.Title == "" || b.Author == "" {
		return makeErr(ErrInvalid)
	}
	if b.Quantity < 0 || b.AvailableQuantity < 0 || b.AvailableQuantity > b.Quantity {
		return makeErr(ErrInvalid)
	}
	found, err := s.r.Update(ctx, b)
	if err != nil {
		if isUniqueViolation(err) {
			return makeErr(ErrDuplicateISBN)
		}
		return err
	}
	if !found {
		return makeErr(ErrNotFound)
	}
	return nil
}

func (s *service) Detail(ctx context.Context, id int64) (*model.Book, error) {
	b, err := s.r.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, makeErr(ErrNotFound)
		}
		return nil, err
	}
	return b, nil
}

func (s *service) List(ctx context.Context) ([]model.Book, error)      { return s.r.ListAll(ctx) }
func (s *service) Available(ctx context.Context) ([]model.Book, error) { return s.r.ListAvailable(ctx) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
