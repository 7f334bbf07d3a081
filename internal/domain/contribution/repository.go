package contribution

import (
	"context"

	"github.com/shopspring/decimal"
)

type Repository interface {
	Create(ctx context.Context, c *Contribution) error
	GetByContributionID(ctx context.Context, contributionID string) (*Contribution, error)
	GetByReceiptNumber(ctx context.Context, receipt string) (*Contribution, error)
	ListByGroup(ctx context.Context, groupRef uint64) ([]Contribution, error)
	// SumConfirmed is the authoritative source for Group.current_amount:
	// SELECT COALESCE(SUM(amount), 0) over confirmed rows of the group.
	SumConfirmed(ctx context.Context, groupRef uint64) (decimal.Decimal, error)
	Save(ctx context.Context, c *Contribution) error
	Delete(ctx context.Context, c *Contribution) error
}
