package mysql

import (
	"context"

	contribDomain "chama-backend/internal/domain/contribution"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type ContributionRepository struct{ db *gorm.DB }

func NewContributionRepository(db *gorm.DB) *ContributionRepository {
	return &ContributionRepository{db: db}
}

func (r *ContributionRepository) Create(ctx context.Context, c *contribDomain.Contribution) error {
	return r.db.WithContext(ctx).Create(c).Error
}

func (r *ContributionRepository) Save(ctx context.Context, c *contribDomain.Contribution) error {
	return r.db.WithContext(ctx).Save(c).Error
}

func (r *ContributionRepository) Delete(ctx context.Context, c *contribDomain.Contribution) error {
	return r.db.WithContext(ctx).Delete(c).Error
}

func (r *ContributionRepository) GetByContributionID(ctx context.Context, contributionID string) (*contribDomain.Contribution, error) {
	var out contribDomain.Contribution
	res := r.db.WithContext(ctx).Where("contribution_id = ?", contributionID).First(&out)
	return &out, res.Error
}

func (r *ContributionRepository) GetByReceiptNumber(ctx context.Context, receipt string) (*contribDomain.Contribution, error) {
	var out contribDomain.Contribution
	res := r.db.WithContext(ctx).Where("receipt_number = ?", receipt).First(&out)
	return &out, res.Error
}

func (r *ContributionRepository) ListByGroup(ctx context.Context, groupRef uint64) ([]contribDomain.Contribution, error) {
	var out []contribDomain.Contribution
	err := r.db.WithContext(ctx).
		Where("group_ref = ?", groupRef).
		Order("created_at DESC, id DESC").
		Find(&out).Error
	return out, err
}

func (r *ContributionRepository) SumConfirmed(ctx context.Context, groupRef uint64) (decimal.Decimal, error) {
	var sum decimal.NullDecimal
	err := r.db.WithContext(ctx).Model(&contribDomain.Contribution{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("group_ref = ? AND status = ?", groupRef, contribDomain.StatusConfirmed).
		Scan(&sum).Error
	if err != nil || !sum.Valid {
		return decimal.Zero, err
	}
	return sum.Decimal, nil
}
