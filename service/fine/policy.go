package fine

import (
	"math"
	"time"

	"github.com/govalues/decimal"
)

// Policy holds the fine parameters. Inject one value at wiring time instead
// of reading package globals, so tests can vary grace period and rate.
type Policy struct {
	GracePeriodDays int
	DailyRate       decimal.Decimal
}

// Default is 7 days of grace, then 5.00 currency units per day.
func Default() Policy {
	return Policy{
		GracePeriodDays: 7,
		DailyRate:       decimal.MustNew(500, 2),
	}
}

// NewPolicy parses a daily rate such as "5" or "2.50".
func NewPolicy(graceDays int, dailyRate string) (Policy, error) {
	rate, err := decimal.Parse(dailyRate)
	if err != nil {
		return Policy{}, err
	}
	return Policy{GracePeriodDays: graceDays, DailyRate: rate}, nil
}

// Details is the result of a fine computation.
type Details struct {
	DaysIssued  int             `json:"days_issued"`
	DaysOverdue int             `json:"days_overdue"`
	Amount      decimal.Decimal `json:"fine_amount"`
	HasFine     bool            `json:"has_fine"`
}

// AmountValue returns the fine as a float64 for storage and JSON payloads.
func (d Details) AmountValue() float64 {
	f, _ := d.Amount.Float64()
	return f
}

// Compute maps an issue date and a return date to overdue days and a fine.
// Days are whole calendar days, floored. A return date before the issue date
// yields negative days issued but never a negative fine. No side effects,
// safe to call repeatedly for "fine so far" previews.
func (p Policy) Compute(issueDate, returnDate time.Time) Details {
	daysIssued := int(math.Floor(returnDate.Sub(issueDate).Hours() / 24))
	daysOverdue := daysIssued - p.GracePeriodDays
	if daysOverdue < 0 {
		daysOverdue = 0
	}
	amount, _ := p.DailyRate.Mul(decimal.MustNew(int64(daysOverdue), 0))
	return Details{
		DaysIssued:  daysIssued,
		DaysOverdue: daysOverdue,
		Amount:      amount,
		HasFine:     amount.IsPos(),
	}
}
