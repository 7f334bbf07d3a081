package mysql

import (
	"context"
	"time"

	investDomain "chama-backend/internal/domain/investment"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type InvestmentRepository struct{ db *gorm.DB }

func NewInvestmentRepository(db *gorm.DB) *InvestmentRepository {
	return &InvestmentRepository{db: db}
}

func (r *InvestmentRepository) Create(ctx context.Context, i *investDomain.Investment) error {
	return r.db.WithContext(ctx).Create(i).Error
}

func (r *InvestmentRepository) Save(ctx context.Context, i *investDomain.Investment) error {
	return r.db.WithContext(ctx).Save(i).Error
}

func (r *InvestmentRepository) GetByInvestmentID(ctx context.Context, investmentID string) (*investDomain.Investment, error) {
	var out investDomain.Investment
	res := r.db.WithContext(ctx).Where("investment_id = ?", investmentID).First(&out)
	return &out, res.Error
}

func (r *InvestmentRepository) GetByInvestmentIDForUpdate(ctx context.Context, investmentID string) (*investDomain.Investment, error) {
	var out investDomain.Investment
	res := forUpdate(r.db.WithContext(ctx)).
		Where("investment_id = ?", investmentID).
		First(&out)
	return &out, res.Error
}

func (r *InvestmentRepository) ListByGroup(ctx context.Context, groupRef uint64) ([]investDomain.Investment, error) {
	var out []investDomain.Investment
	err := r.db.WithContext(ctx).
		Where("group_ref = ?", groupRef).
		Order("invested_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *InvestmentRepository) ListMaturing(ctx context.Context, asOf time.Time) ([]investDomain.Investment, error) {
	var out []investDomain.Investment
	err := r.db.WithContext(ctx).
		Where("status = ? AND maturity_date IS NOT NULL AND maturity_date <= ?", investDomain.StatusActive, asOf).
		Order("maturity_date ASC, id ASC").
		Find(&out).Error
	return out, err
}

type InvestmentPaymentRepository struct{ db *gorm.DB }

func NewInvestmentPaymentRepository(db *gorm.DB) *InvestmentPaymentRepository {
	return &InvestmentPaymentRepository{db: db}
}

func (r *InvestmentPaymentRepository) Create(ctx context.Context, p *investDomain.Payment) error {
	return r.db.WithContext(ctx).Create(p).Error
}

func (r *InvestmentPaymentRepository) GetByReferenceNumber(ctx context.Context, ref string) (*investDomain.Payment, error) {
	var out investDomain.Payment
	res := r.db.WithContext(ctx).Where("reference_number = ?", ref).First(&out)
	return &out, res.Error
}

func (r *InvestmentPaymentRepository) ListByInvestment(ctx context.Context, investmentRef uint64) ([]investDomain.Payment, error) {
	var out []investDomain.Payment
	err := r.db.WithContext(ctx).
		Where("investment_ref = ?", investmentRef).
		Order("created_at ASC, id ASC").
		Find(&out).Error
	return out, err
}

func (r *InvestmentPaymentRepository) SumByInvestment(ctx context.Context, investmentRef uint64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&investDomain.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("investment_ref = ?", investmentRef).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
