package repomock

import (
	"context"

	domain "chama-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
)

type ContributionRepo struct {
	CreateFn              func(ctx context.Context, c *domain.Contribution) error
	GetByContributionIDFn func(ctx context.Context, contributionID string) (*domain.Contribution, error)
	GetByReceiptNumberFn  func(ctx context.Context, receipt string) (*domain.Contribution, error)
	ListByGroupFn         func(ctx context.Context, groupRef uint64) ([]domain.Contribution, error)
	SumConfirmedFn        func(ctx context.Context, groupRef uint64) (decimal.Decimal, error)
	SaveFn                func(ctx context.Context, c *domain.Contribution) error
	DeleteFn              func(ctx context.Context, c *domain.Contribution) error
}

func (m *ContributionRepo) Create(ctx context.Context, c *domain.Contribution) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, c)
	}
	return nil
}

func (m *ContributionRepo) GetByContributionID(ctx context.Context, contributionID string) (*domain.Contribution, error) {
	if m.GetByContributionIDFn != nil {
		return m.GetByContributionIDFn(ctx, contributionID)
	}
	return nil, context.Canceled
}

func (m *ContributionRepo) GetByReceiptNumber(ctx context.Context, receipt string) (*domain.Contribution, error) {
	if m.GetByReceiptNumberFn != nil {
		return m.GetByReceiptNumberFn(ctx, receipt)
	}
	return nil, context.Canceled
}

func (m *ContributionRepo) ListByGroup(ctx context.Context, groupRef uint64) ([]domain.Contribution, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupRef)
	}
	return nil, context.Canceled
}

func (m *ContributionRepo) SumConfirmed(ctx context.Context, groupRef uint64) (decimal.Decimal, error) {
	if m.SumConfirmedFn != nil {
		return m.SumConfirmedFn(ctx, groupRef)
	}
	return decimal.Zero, context.Canceled
}

func (m *ContributionRepo) Save(ctx context.Context, c *domain.Contribution) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, c)
	}
	return nil
}

func (m *ContributionRepo) Delete(ctx context.Context, c *domain.Contribution) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, c)
	}
	return nil
}
