// repository/circulation/repo.go
package circulation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarydesk/model"
)

// HistoryRow is one issued-book entry for a student, joined with the book.
type HistoryRow struct {
	IssueID     int64             `json:"issue_id"`
	BookID      int64             `json:"book_id"`
	Title       string            `json:"title"`
	Author      string            `json:"author"`
	ISBN        string            `json:"isbn"`
	IssueDate   time.Time         `json:"issue_date"`
	ReturnDate  *time.Time        `json:"return_date,omitempty"`
	Status      model.IssueStatus `json:"status"`
	FineAmount  float64           `json:"fine_amount"`
	FineSoFar   float64           `json:"fine_so_far"`
	DaysOverdue int               `json:"days_overdue"`
}

// AdminRow is one issued-book entry joined with book and student.
type AdminRow struct {
	IssueID     int64             `json:"issue_id"`
	BookID      int64             `json:"book_id"`
	Title       string            `json:"title"`
	ISBN        string            `json:"isbn"`
	StudentID   int64             `json:"student_id"`
	Username    string            `json:"username"`
	StudentName string            `json:"student_name"`
	Email       string            `json:"email"`
	IssueDate   time.Time         `json:"issue_date"`
	ReturnDate  *time.Time        `json:"return_date,omitempty"`
	Status      model.IssueStatus `json:"status"`
	FineAmount  float64           `json:"fine_amount"`
}

type Repo interface {
	// InTx runs fn inside one commit-or-rollback transaction.
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	// Books
	LockBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64) (available int64, err error)
	DecrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error
	IncrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error

	// Issue records
	HasActiveIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64) (bool, error)
	InsertIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64, issueDate time.Time) (int64, error)
	IssueForUpdate(ctx context.Context, tx *sql.Tx, issueID int64) (*model.IssueRecord, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, issueID int64, returnDate time.Time, fine float64) error

	// Listings
	ListByStudent(ctx context.Context, studentID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]AdminRow, error)
}

type repo struct {
	db *sql.DB
}

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) InTx(ctx context.Context, fn func(tx *sql.Tx) error) (err error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tx.Rollback()
		}
	}()
	if err = fn(tx); err != nil {
		return err
	}
	err = tx.Commit()
	return err
}

// Books

func (r *repo) LockBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error) {
	// Row lock serializes the availability check with the decrement.
	const q = `
				SELECT available_quantity
				FROM books
				WHERE book_id = $1
				FOR UPDATE`
	var available int64
	err := tx.QueryRowContext(ctx, q, bookID).Scan(&available)
	return available, err
}

func (r *repo) DecrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error {
	// Guard: never below zero.
	const q = `
			UPDATE books
			SET available_quantity = available_quantity - 1
			WHERE book_id = $1
			AND available_quantity > 0`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return errors.New("no copies available")
	}
	return nil
}

func (r *repo) IncrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error {
	// Guard: never above the owned quantity.
	const q = `
			UPDATE books
			SET available_quantity = available_quantity + 1
			WHERE book_id = $1
			AND available_quantity < quantity`
	res, err := tx.ExecContext(ctx, q, bookID)
	if err != nil {
		return err
	}
	aff, _ := res.RowsAffected()
	if aff == 0 {
		return errors.New("availability already at quantity")
	}
	return nil
}

// Issue records

func (r *repo) HasActiveIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64) (bool, error) {
	const q = `
			SELECT issue_id
			FROM issued_books
			WHERE student_id = $1
			AND book_id = $2
			AND status = 'issued'
			LIMIT 1`
	var id int64
	err := tx.QueryRowContext(ctx, q, studentID, bookID).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *repo) InsertIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64, issueDate time.Time) (int64, error) {
	const q = `
		INSERT INTO issued_books (student_id, book_id, issue_date, status)
		VALUES ($1, $2, $3, 'issued')
		RETURNING issue_id`
	var id int64
	if err := tx.QueryRowContext(ctx, q, studentID, bookID, issueDate).Scan(&id); err != nil {
		return 0, err
	}
	return id, nil
}

func (r *repo) IssueForUpdate(ctx context.Context, tx *sql.Tx, issueID int64) (*model.IssueRecord, error) {
	const q = `
		SELECT issue_id, student_id, book_id, issue_date, return_date, status, fine_amount
		FROM issued_books
		WHERE issue_id = $1
		FOR UPDATE`
	rec := &model.IssueRecord{}
	err := tx.QueryRowContext(ctx, q, issueID).Scan(
		&rec.ID, &rec.StudentID, &rec.BookID,
		&rec.IssueDate, &rec.ReturnDate, &rec.Status, &rec.FineAmount,
	)
	if err != nil {
		return nil, err
	}
	return rec, nil
}

func (r *repo) MarkReturned(ctx context.Context, tx *sql.Tx, issueID int64, returnDate time.Time, fine float64) error {
	const q = `
		UPDATE issued_books
		SET status = 'returned',
			return_date = $2,
			fine_amount = $3
		WHERE issue_id = $1`
	_, err := tx.ExecContext(ctx, q, issueID, returnDate, fine)
	return err
}

// Listings

func (r *repo) ListByStudent(ctx context.Context, studentID int64) ([]HistoryRow, error) {
	const q = `
			SELECT
			ib.issue_id    AS issue_id,
			ib.book_id     AS book_id,
			b.title        AS title,
			b.author       AS author,
			b.isbn         AS isbn,
			ib.issue_date  AS issue_date,
			ib.return_date AS return_date,
			ib.status      AS status,
			ib.fine_amount AS fine_amount
			FROM issued_books ib
			JOIN books b ON b.book_id = ib.book_id
			WHERE ib.student_id = $1
			ORDER BY ib.issue_date DESC, ib.issue_id DESC`
	rows, err := r.db.QueryContext(ctx, q, studentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryRow
	for rows.Next() {
		var h HistoryRow
		if err := rows.Scan(
			&h.IssueID, &h.BookID, &h.Title, &h.Author, &h.ISBN,
			&h.IssueDate, &h.ReturnDate, &h.Status, &h.FineAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

func (r *repo) ListAll(ctx context.Context) ([]AdminRow, error) {
	const q = `
			SELECT
			ib.issue_id    AS issue_id,
			ib.book_id     AS book_id,
			b.title        AS title,
			b.isbn         AS isbn,
			s.student_id   AS student_id,
			s.username     AS username,
			s.name         AS student_name,
			s.email        AS email,
			ib.issue_date  AS issue_date,
			ib.return_date AS return_date,
			ib.status      AS status,
			ib.fine_amount AS fine_amount
			FROM issued_books ib
			JOIN books b ON b.book_id = ib.book_id
			JOIN students s ON s.student_id = ib.student_id
			ORDER BY ib.issue_date DESC, ib.issue_id DESC`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []AdminRow
	for rows.Next() {
		var a AdminRow
		if err := rows.Scan(
			&a.IssueID, &a.BookID, &a.Title, &a.ISBN,
			&a.StudentID, &a.Username, &a.StudentName, &a.Email,
			&a.IssueDate, &a.ReturnDate, &a.Status, &a.FineAmount,
		); err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}
