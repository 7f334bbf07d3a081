package repomock

import (
	"context"
	"time"

	domain "chama-backend/internal/domain/investment"

	"github.com/shopspring/decimal"
)

type InvestmentRepo struct {
	CreateFn                     func(ctx context.Context, i *domain.Investment) error
	GetByInvestmentIDFn          func(ctx context.Context, investmentID string) (*domain.Investment, error)
	GetByInvestmentIDForUpdateFn func(ctx context.Context, investmentID string) (*domain.Investment, error)
	ListByGroupFn                func(ctx context.Context, groupRef uint64) ([]domain.Investment, error)
	ListMaturingFn               func(ctx context.Context, asOf time.Time) ([]domain.Investment, error)
	SaveFn                       func(ctx context.Context, i *domain.Investment) error
}

func (m *InvestmentRepo) Create(ctx context.Context, i *domain.Investment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, i)
	}
	return nil
}

func (m *InvestmentRepo) GetByInvestmentID(ctx context.Context, investmentID string) (*domain.Investment, error) {
	if m.GetByInvestmentIDFn != nil {
		return m.GetByInvestmentIDFn(ctx, investmentID)
	}
	return nil, context.Canceled
}

func (m *InvestmentRepo) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*domain.Investment, error) {
	if m.GetByInvestmentIDForUpdateFn != nil {
		return m.GetByInvestmentIDForUpdateFn(ctx, investmentID)
	}
	return nil, context.Canceled
}

func (m *InvestmentRepo) ListByGroup(ctx context.Context, groupRef uint64) ([]domain.Investment, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupRef)
	}
	return nil, context.Canceled
}

func (m *InvestmentRepo) ListMaturing(ctx context.Context, asOf time.Time) ([]domain.Investment, error) {
	if m.ListMaturingFn != nil {
		return m.ListMaturingFn(ctx, asOf)
	}
	return nil, context.Canceled
}

func (m *InvestmentRepo) Save(ctx context.Context, i *domain.Investment) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, i)
	}
	return nil
}

type InvestmentPaymentRepo struct {
	CreateFn               func(ctx context.Context, p *domain.Payment) error
	GetByReferenceNumberFn func(ctx context.Context, ref string) (*domain.Payment, error)
	ListByInvestmentFn     func(ctx context.Context, investmentRef uint64) ([]domain.Payment, error)
	SumByInvestmentFn      func(ctx context.Context, investmentRef uint64) (decimal.Decimal, error)
}

func (m *InvestmentPaymentRepo) Create(ctx context.Context, p *domain.Payment) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, p)
	}
	return nil
}

func (m *InvestmentPaymentRepo) GetByReferenceNumber(ctx context.Context, ref string) (*domain.Payment, error) {
	if m.GetByReferenceNumberFn != nil {
		return m.GetByReferenceNumberFn(ctx, ref)
	}
	return nil, context.Canceled
}

func (m *InvestmentPaymentRepo) ListByInvestment(ctx context.Context, investmentRef uint64) ([]domain.Payment, error) {
	if m.ListByInvestmentFn != nil {
		return m.ListByInvestmentFn(ctx, investmentRef)
	}
	return nil, context.Canceled
}

func (m *InvestmentPaymentRepo) SumByInvestment(ctx context.Context, investmentRef uint64) (decimal.Decimal, error) {
	if m.SumByInvestmentFn != nil {
		return m.SumByInvestmentFn(ctx, investmentRef)
	}
	return decimal.Zero, context.Canceled
}
