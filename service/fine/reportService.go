package fine

import (
	"context"

	"github.com/govalues/decimal"

	finerepo "librarydesk/repository/fine"
)

// StudentOutstanding = repository shape
type StudentOutstanding = finerepo.OutstandingRow

type Repo interface {
	Outstanding(ctx context.Context) ([]StudentOutstanding, error)
}

// Report lists every student with a nonzero fine total or unreturned books,
// plus grand totals over exactly those students.
type Report struct {
	Students          []StudentOutstanding `json:"students"`
	TotalFines        float64              `json:"total_fines"`
	TotalPendingBooks int64                `json:"total_pending_books"`
}

type Reporter interface {
	Report(ctx context.Context) (*Report, error)
}

type reporter struct{ r Repo }

func NewReporter(r Repo) Reporter { return &reporter{r: r} }

func (s *reporter) Report(ctx context.Context) (*Report, error) {
	rows, err := s.r.Outstanding(ctx)
	if err != nil {
		return nil, err
	}
	if rows == nil {
		rows = []StudentOutstanding{}
	}

	// Sum in decimal so per-student rounding never drifts the grand total.
	var total decimal.Decimal
	rep := &Report{Students: rows}
	for _, st := range rows {
		d, err := decimal.NewFromFloat64(st.TotalFines)
		if err != nil {
			return nil, err
		}
		if total, err = total.Add(d); err != nil {
			return nil, err
		}
		rep.TotalPendingBooks += st.PendingBooks
	}
	rep.TotalFines, _ = total.Float64()
	return rep, nil
}
