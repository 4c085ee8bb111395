package circulation

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"librarydesk/model"
	crepo "librarydesk/repository/circulation"
	"librarydesk/service/fine"
)

// errors used by controllers

type ErrCode string

const (
	ErrNotAvailable    ErrCode = "NOT_AVAILABLE"
	ErrAlreadyIssued   ErrCode = "ALREADY_ISSUED"
	ErrNotFound        ErrCode = "NOT_FOUND"
	ErrNotOwner        ErrCode = "NOT_OWNER"
	ErrAlreadyReturned ErrCode = "ALREADY_RETURNED"
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

// row shapes = repository shapes

type HistoryRow = crepo.HistoryRow
type AdminRow = crepo.AdminRow

type Repo interface {
	InTx(ctx context.Context, fn func(tx *sql.Tx) error) error

	LockBookAvailability(ctx context.Context, tx *sql.Tx, bookID int64) (int64, error)
	DecrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error
	IncrementAvailability(ctx context.Context, tx *sql.Tx, bookID int64) error

	HasActiveIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64) (bool, error)
	InsertIssue(ctx context.Context, tx *sql.Tx, studentID, bookID int64, issueDate time.Time) (int64, error)
	IssueForUpdate(ctx context.Context, tx *sql.Tx, issueID int64) (*model.IssueRecord, error)
	MarkReturned(ctx context.Context, tx *sql.Tx, issueID int64, returnDate time.Time, fine float64) error

	ListByStudent(ctx context.Context, studentID int64) ([]HistoryRow, error)
	ListAll(ctx context.Context) ([]AdminRow, error)
}

// Returned carries the fine details of a completed return.
type Returned struct {
	Fine        float64
	DaysOverdue int
}

type Service interface {
	// Issue lends one copy of a book to a student.
	Issue(ctx context.Context, studentID, bookID int64) error

	// Return closes one of the student's own issue records, computes the
	// fine, and frees the copy.
	Return(ctx context.Context, studentID, issueID int64) (*Returned, error)

	// AdminReturn closes any issue record on a student's behalf.
	AdminReturn(ctx context.Context, issueID int64) (*Returned, error)

	// StudentHistory lists a student's issued books with a live fine preview
	// on records still out.
	StudentHistory(ctx context.Context, studentID int64) ([]HistoryRow, error)

	// AllIssued lists every issue record for the admin view.
	AllIssued(ctx context.Context) ([]AdminRow, error)
}

// ----- Service implementation -----

type service struct {
	r      Repo
	policy fine.Policy
}

func New(r Repo, policy fine.Policy) Service {
	return &service{r: r, policy: policy}
}

func (s *service) Issue(ctx context.Context, studentID, bookID int64) error {
	return s.r.InTx(ctx, func(tx *sql.Tx) error {
		available, err := s.r.LockBookAvailability(ctx, tx, bookID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotAvailable)
			}
			return err
		}
		if available <= 0 {
			return makeErr(ErrNotAvailable)
		}

		// At most one active issue per (student, book).
		active, err := s.r.HasActiveIssue(ctx, tx, studentID, bookID)
		if err != nil {
			return err
		}
		if active {
			return makeErr(ErrAlreadyIssued)
		}

		if _, err := s.r.InsertIssue(ctx, tx, studentID, bookID, time.Now().UTC()); err != nil {
			return err
		}
		return s.r.DecrementAvailability(ctx, tx, bookID)
	})
}

func (s *service) Return(ctx context.Context, studentID, issueID int64) (*Returned, error) {
	return s.doReturn(ctx, issueID, &studentID)
}

func (s *service) AdminReturn(ctx context.Context, issueID int64) (*Returned, error) {
	return s.doReturn(ctx, issueID, nil)
}

// doReturn closes an issue record; a non-nil owner must match the record.
func (s *service) doReturn(ctx context.Context, issueID int64, owner *int64) (*Returned, error) {
	var out *Returned
	err := s.r.InTx(ctx, func(tx *sql.Tx) error {
		rec, err := s.r.IssueForUpdate(ctx, tx, issueID)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return makeErr(ErrNotFound)
			}
			return err
		}
		if owner != nil && rec.StudentID != *owner {
			return makeErr(ErrNotOwner)
		}
		if rec.Status == model.StatusReturned {
			return makeErr(ErrAlreadyReturned)
		}

		now := time.Now().UTC()
		det := s.policy.Compute(rec.IssueDate, now)

		if err := s.r.MarkReturned(ctx, tx, issueID, now, det.AmountValue()); err != nil {
			return err
		}
		if err := s.r.IncrementAvailability(ctx, tx, rec.BookID); err != nil {
			return err
		}
		out = &Returned{Fine: det.AmountValue(), DaysOverdue: det.DaysOverdue}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (s *service) StudentHistory(ctx context.Context, studentID int64) ([]HistoryRow, error) {
	rows, err := s.r.ListByStudent(ctx, studentID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	for i := range rows {
		if rows[i].Status == model.StatusIssued {
			det := s.policy.Compute(rows[i].IssueDate, now)
			rows[i].FineSoFar = det.AmountValue()
			rows[i].DaysOverdue = det.DaysOverdue
		}
	}
	return rows, nil
}

func (s *service) AllIssued(ctx context.Context) ([]AdminRow, error) {
	return s.r.ListAll(ctx)
}
