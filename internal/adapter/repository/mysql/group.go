package mysql

import (
	"context"

	groupDomain "chama-backend/internal/domain/group"

	"gorm.io/gorm"
)

type GroupRepository struct{ db *gorm.DB }

func NewGroupRepository(db *gorm.DB) *GroupRepository { return &GroupRepository{db: db} }

func (r *GroupRepository) Create(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Create(g).Error
}

func (r *GroupRepository) Save(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Save(g).Error
}

func (r *GroupRepository) Delete(ctx context.Context, g *groupDomain.Group) error {
	return r.db.WithContext(ctx).Delete(g).Error
}

func (r *GroupRepository) GetByGroupID(ctx context.Context, groupID string) (*groupDomain.Group, error) {
	var out groupDomain.Group
	res := r.db.WithContext(ctx).Where("group_id = ?", groupID).First(&out)
	return &out, res.Error
}

func (r *GroupRepository) GetByGroupIDForUpdate(ctx context.Context, groupID string) (*groupDomain.Group, error) {
	var out groupDomain.Group
	res := forUpdate(r.db.WithContext(ctx)).
		Where("group_id = ?", groupID).
		First(&out)
	return &out, res.Error
}

func (r *GroupRepository) List(ctx context.Context, status groupDomain.Status) ([]groupDomain.Group, error) {
	var out []groupDomain.Group
	q := r.db.WithContext(ctx).Order("created_at DESC")
	if status != "" {
		q = q.Where("status = ?", status)
	}
	return out, q.Find(&out).Error
}
