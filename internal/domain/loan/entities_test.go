package loan

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestIssue_StampsFusedTransition(t *testing.T) {
	l := &Loan{Status: StatusPending, TermMonths: 12}
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)

	l.Issue("aaaaaaaaaaaaaaaaaaaaaaaaaaaaaaaa", now)

	if l.Status != StatusActive {
		t.Errorf("status = %s, want active", l.Status)
	}
	if l.ApprovedAt == nil || !l.ApprovedAt.Equal(now) {
		t.Errorf("approved_at = %v, want %v", l.ApprovedAt, now)
	}
	if l.IssueDate == nil || !l.IssueDate.Equal(now) {
		t.Errorf("issue_date = %v, want %v", l.IssueDate, now)
	}
	wantDue := now.AddDate(0, 0, 360) // 12 * 30 days
	if l.DueDate == nil || !l.DueDate.Equal(wantDue) {
		t.Errorf("due_date = %v, want %v", l.DueDate, wantDue)
	}
}

func TestMonthlyPayment(t *testing.T) {
	cases := []struct {
		name   string
		amount string
		rate   string
		term   int
		want   string
	}{
		{"amortized", "12000.00", "0.10", 12, "1054.99"},
		{"zero rate divides evenly", "12000.00", "0", 12, "1000.00"},
		{"zero rate rounds", "10000.00", "0", 3, "3333.33"},
		{"single month", "1000.00", "0.12", 1, "1010.00"},
	}
	for _, tc := range cases {
		l := &Loan{Amount: dec(tc.amount), InterestRate: dec(tc.rate), TermMonths: tc.term}
		if got := l.MonthlyPayment(); !got.Equal(dec(tc.want)) {
			t.Errorf("%s: MonthlyPayment = %s, want %s", tc.name, got, tc.want)
		}
	}

	zeroTerm := &Loan{Amount: dec("1000.00"), InterestRate: dec("0.10")}
	if got := zeroTerm.MonthlyPayment(); !got.IsZero() {
		t.Errorf("zero term: MonthlyPayment = %s, want 0", got)
	}
}

func TestPaymentProgress(t *testing.T) {
	l := &Loan{Amount: dec("10000.00"), Balance: dec("7500.00")}
	if got := l.PaymentProgress(); !got.Equal(dec("25")) {
		t.Errorf("progress = %s, want 25", got)
	}

	paid := &Loan{Amount: dec("10000.00"), Balance: dec("0")}
	if got := paid.PaymentProgress(); !got.Equal(dec("100")) {
		t.Errorf("paid progress = %s, want 100", got)
	}

	empty := &Loan{}
	if got := empty.PaymentProgress(); !got.IsZero() {
		t.Errorf("zero principal progress = %s, want 0", got)
	}
}

func TestRepaymentCounted(t *testing.T) {
	counted := []RepaymentStatus{RepaymentPartial, RepaymentFull, RepaymentVerified}
	for _, s := range counted {
		if r := (&Repayment{Status: s}); !r.Counted() {
			t.Errorf("%s must count toward the balance", s)
		}
	}
	excluded := []RepaymentStatus{RepaymentOverdue, RepaymentFailed}
	for _, s := range excluded {
		if r := (&Repayment{Status: s}); r.Counted() {
			t.Errorf("%s must not count toward the balance", s)
		}
	}
}
