package fine

import (
	"context"
	"database/sql"
)

// OutstandingRow is one student carrying fines or unreturned books.
type OutstandingRow struct {
	StudentID    int64   `json:"student_id"`
	Username     string  `json:"username"`
	Name         string  `json:"name"`
	Email        string  `json:"email"`
	TotalFines   float64 `json:"total_fines"`
	PendingBooks int64   `json:"pending_books"`
}

type Repo interface {
	Outstanding(ctx context.Context) ([]OutstandingRow, error)
}

type repo struct{ db *sql.DB }

func New(db *sql.DB) Repo { return &repo{db: db} }

func (r *repo) Outstanding(ctx context.Context) ([]OutstandingRow, error) {
	// Students with nothing outstanding are filtered out; the trailing
	// student_id keeps ties in a stable order.
	const q = `
			SELECT
			s.student_id,
			s.username,
			s.name,
			s.email,
			COALESCE(SUM(ib.fine_amount), 0)::FLOAT8 AS total_fines,
			COUNT(*) FILTER (WHERE ib.status = 'issued') AS pending_books
			FROM students s
			LEFT JOIN issued_books ib ON ib.student_id = s.student_id
			GROUP BY s.student_id
			HAVING COALESCE(SUM(ib.fine_amount), 0) > 0
			OR COUNT(*) FILTER (WHERE ib.status = 'issued') > 0
			ORDER BY total_fines DESC, pending_books DESC, s.student_id`
	rows, err := r.db.QueryContext(ctx, q)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []OutstandingRow
	for rows.Next() {
		var o OutstandingRow
		if err := rows.Scan(
			&o.StudentID, &o.Username, &o.Name, &o.Email,
			&o.TotalFines, &o.PendingBooks,
		); err != nil {
			return nil, err
		}
		out = append(out, o)
	}
	return out, rows.Err()
}
