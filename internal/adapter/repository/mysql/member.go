package mysql

import (
	"context"

	memberDomain "chama-backend/internal/domain/member"

	"gorm.io/gorm"
)

type MemberRepository struct{ db *gorm.DB }

func NewMemberRepository(db *gorm.DB) *MemberRepository { return &MemberRepository{db: db} }

func (r *MemberRepository) Create(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Create(m).Error
}

func (r *MemberRepository) Save(ctx context.Context, m *memberDomain.Member) error {
	return r.db.WithContext(ctx).Save(m).Error
}

func (r *MemberRepository) GetByMemberID(ctx context.Context, memberID string) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).Where("member_id = ?", memberID).First(&out)
	return &out, res.Error
}

func (r *MemberRepository) GetByUserAndGroup(ctx context.Context, userID string, groupRef uint64) (*memberDomain.Member, error) {
	var out memberDomain.Member
	res := r.db.WithContext(ctx).
		Where("user_id = ? AND group_ref = ?", userID, groupRef).
		First(&out)
	return &out, res.Error
}

func (r *MemberRepository) CountByGroup(ctx context.Context, groupRef uint64) (int64, error) {
	var n int64
	err := r.db.WithContext(ctx).Model(&memberDomain.Member{}).
		Where("group_ref = ?", groupRef).
		Count(&n).Error
	return n, err
}

func (r *MemberRepository) ListByGroup(ctx context.Context, groupRef uint64) ([]memberDomain.Member, error) {
	var out []memberDomain.Member
	err := r.db.WithContext(ctx).
		Where("group_ref = ?", groupRef).
		Order("joined_at ASC, id ASC").
		Find(&out).Error
	return out, err
}
