package investment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, i *Investment) error
	GetByInvestmentID(ctx context.Context, investmentID string) (*Investment, error)
	// GetByInvestmentIDForUpdate locks the investment row for the duration
	// of the enclosing transaction; required before recalculating total_paid.
	GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*Investment, error)
	ListByGroup(ctx context.Context, groupRef uint64) ([]Investment, error)
	// ListMaturing returns active investments whose maturity_date is at or
	// before asOf; used by the admin-triggered maturity sweep.
	ListMaturing(ctx context.Context, asOf time.Time) ([]Investment, error)
	Save(ctx context.Context, i *Investment) error
}

type PaymentRepository interface {
	Create(ctx context.Context, p *Payment) error
	GetByReferenceNumber(ctx context.Context, ref string) (*Payment, error)
	ListByInvestment(ctx context.Context, investmentRef uint64) ([]Payment, error)
	// SumByInvestment is the authoritative source for Investment.total_paid.
	SumByInvestment(ctx context.Context, investmentRef uint64) (decimal.Decimal, error)
}
