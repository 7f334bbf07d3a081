package loan

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, l *Loan) error
	GetByLoanID(ctx context.Context, loanID string) (*Loan, error)
	// GetByLoanIDForUpdate locks the loan row for the duration of the
	// enclosing transaction; required before recalculating the balance.
	GetByLoanIDForUpdate(ctx context.Context, loanID string) (*Loan, error)
	GetPendingByMember(ctx context.Context, memberRef uint64) (*Loan, error)
	ListByGroup(ctx context.Context, groupRef uint64) ([]Loan, error)
	Save(ctx context.Context, l *Loan) error
}

type RepaymentRepository interface {
	Create(ctx context.Context, r *Repayment) error
	ListByLoan(ctx context.Context, loanRef uint64) ([]Repayment, error)
	// SumCounted is the authoritative source for Loan.balance:
	// SELECT COALESCE(SUM(amount), 0) over partial/full/verified rows.
	SumCounted(ctx context.Context, loanRef uint64) (decimal.Decimal, error)
	Save(ctx context.Context, r *Repayment) error
}
