package repomock

import (
	"context"

	domain "chama-backend/internal/domain/loan"

	"github.com/shopspring/decimal"
)

type LoanRepo struct {
	CreateFn               func(ctx context.Context, l *domain.Loan) error
	GetByLoanIDFn          func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetByLoanIDForUpdateFn func(ctx context.Context, loanID string) (*domain.Loan, error)
	GetPendingByMemberFn   func(ctx context.Context, memberRef uint64) (*domain.Loan, error)
	ListByGroupFn          func(ctx context.Context, groupRef uint64) ([]domain.Loan, error)
	SaveFn                 func(ctx context.Context, l *domain.Loan) error
}

func (m *LoanRepo) Create(ctx context.Context, l *domain.Loan) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, l)
	}
	return nil
}

func (m *LoanRepo) GetByLoanID(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDFn != nil {
		return m.GetByLoanIDFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) GetByLoanIDForUpdate(ctx context.Context, loanID string) (*domain.Loan, error) {
	if m.GetByLoanIDForUpdateFn != nil {
		return m.GetByLoanIDForUpdateFn(ctx, loanID)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) GetPendingByMember(ctx context.Context, memberRef uint64) (*domain.Loan, error) {
	if m.GetPendingByMemberFn != nil {
		return m.GetPendingByMemberFn(ctx, memberRef)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) ListByGroup(ctx context.Context, groupRef uint64) ([]domain.Loan, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupRef)
	}
	return nil, context.Canceled
}

func (m *LoanRepo) Save(ctx context.Context, l *domain.Loan) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, l)
	}
	return nil
}

type RepaymentRepo struct {
	CreateFn     func(ctx context.Context, r *domain.Repayment) error
	ListByLoanFn func(ctx context.Context, loanRef uint64) ([]domain.Repayment, error)
	SumCountedFn func(ctx context.Context, loanRef uint64) (decimal.Decimal, error)
	SaveFn       func(ctx context.Context, r *domain.Repayment) error
}

func (m *RepaymentRepo) Create(ctx context.Context, r *domain.Repayment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, r)
	}
	return nil
}

func (m *RepaymentRepo) ListByLoan(ctx context.Context, loanRef uint64) ([]domain.Repayment, error) {
	if m.ListByLoanFn != nil {
		return m.ListByLoanFn(ctx, loanRef)
	}
	return nil, context.Canceled
}

func (m *RepaymentRepo) SumCounted(ctx context.Context, loanRef uint64) (decimal.Decimal, error) {
	if m.SumCountedFn != nil {
		return m.SumCountedFn(ctx, loanRef)
	}
	return decimal.Zero, context.Canceled
}

func (m *RepaymentRepo) Save(ctx context.Context, r *domain.Repayment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, r)
	}
	return nil
}
