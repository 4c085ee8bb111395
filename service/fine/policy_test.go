package fine

import (
	"testing"
	"time"

	"github.com/govalues/decimal"
)

var day = 24 * time.Hour

func TestCompute_WithinGrace(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	for days := 0; days <= 7; days++ {
		det := p.Compute(issued, issued.Add(time.Duration(days)*day))
		if det.DaysIssued != days {
			t.Fatalf("days=%d: got DaysIssued=%d", days, det.DaysIssued)
		}
		if det.DaysOverdue != 0 || det.HasFine || det.AmountValue() != 0 {
			t.Fatalf("days=%d: expected no fine, got %+v", days, det)
		}
	}
}

func TestCompute_GraceBoundary(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	atGrace := p.Compute(issued, issued.Add(7*day))
	if atGrace.AmountValue() != 0 {
		t.Fatalf("day 7 should be free, got %v", atGrace.AmountValue())
	}

	pastGrace := p.Compute(issued, issued.Add(8*day))
	if pastGrace.DaysOverdue != 1 || pastGrace.AmountValue() != 5 {
		t.Fatalf("day 8 should cost 5, got %+v", pastGrace)
	}
	if !pastGrace.HasFine {
		t.Fatal("day 8 should flag HasFine")
	}
}

func TestCompute_TenDays(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	det := p.Compute(issued, issued.Add(10*day))
	if det.DaysIssued != 10 || det.DaysOverdue != 3 || det.AmountValue() != 15 {
		t.Fatalf("got %+v; want 10 issued, 3 overdue, fine 15", det)
	}
}

func TestCompute_PartialDaysFloor(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	// 8.9 days out is still only 8 whole days.
	det := p.Compute(issued, issued.Add(8*day+21*time.Hour))
	if det.DaysIssued != 8 || det.AmountValue() != 5 {
		t.Fatalf("got %+v; want 8 issued, fine 5", det)
	}
}

func TestCompute_ReturnBeforeIssue(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	det := p.Compute(issued, issued.Add(-2*day))
	if det.DaysIssued >= 0 {
		t.Fatalf("expected negative DaysIssued, got %d", det.DaysIssued)
	}
	if det.DaysOverdue != 0 || det.AmountValue() != 0 || det.HasFine {
		t.Fatalf("clock skew must never produce a fine, got %+v", det)
	}
}

func TestCompute_Monotonic(t *testing.T) {
	p := Default()
	issued := time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC)

	prev := -1.0
	for days := 0; days <= 30; days++ {
		amt := p.Compute(issued, issued.Add(time.Duration(days)*day)).AmountValue()
		if amt < prev {
			t.Fatalf("fine decreased at day %d: %v < %v", days, amt, prev)
		}
		prev = amt
	}
}

func TestCompute_CustomPolicy(t *testing.T) {
	p := Policy{GracePeriodDays: 0, DailyRate: decimal.MustNew(250, 2)}

	det := p.Compute(time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), time.Date(2025, 3, 4, 0, 0, 0, 0, time.UTC))
	if det.DaysOverdue != 3 || det.AmountValue() != 7.5 {
		t.Fatalf("got %+v; want 3 overdue at 2.50/day = 7.50", det)
	}
}

func TestNewPolicy(t *testing.T) {
	p, err := NewPolicy(3, "2.50")
	if err != nil {
		t.Fatalf("NewPolicy: %v", err)
	}
	if p.GracePeriodDays != 3 {
		t.Fatalf("grace = %d", p.GracePeriodDays)
	}
	if _, err := NewPolicy(3, "not-a-rate"); err == nil {
		t.Fatal("expected parse error")
	}
}
