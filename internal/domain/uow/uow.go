package uow

import (
	"context"

	"chama-backend/internal/domain/contribution"
	"chama-backend/internal/domain/group"
	"chama-backend/internal/domain/investment"
	"chama-backend/internal/domain/loan"
	"chama-backend/internal/domain/member"
)

// Repos bundles every repository bound to one transaction.
type Repos struct {
	Groups             group.Repository
	Members            member.Repository
	Contributions      contribution.Repository
	Loans              loan.Repository
	Repayments         loan.RepaymentRepository
	Investments        investment.Repository
	InvestmentPayments investment.PaymentRepository
}

// UnitOfWork runs ledger mutations in a single transaction. The WithinXTx
// variants lock the parent row up-front so the derived aggregate
// (current_amount / balance / total_paid) can be recomputed without losing
// concurrent updates.
type UnitOfWork interface {
	WithinTx(ctx context.Context, fn func(r Repos) error) error
	WithinGroupTx(ctx context.Context, groupID string, fn func(r Repos, g *group.Group) error) error
	WithinLoanTx(ctx context.Context, loanID string, fn func(r Repos, l *loan.Loan) error) error
	WithinInvestmentTx(ctx context.Context, investmentID string, fn func(r Repos, i *investment.Investment) error) error
}
