package repomock

import (
	"context"

	domain "chama-backend/internal/domain/member"
)

type MemberRepo struct {
	CreateFn            func(ctx context.Context, m *domain.Member) error
	GetByMemberIDFn     func(ctx context.Context, memberID string) (*domain.Member, error)
	GetByUserAndGroupFn func(ctx context.Context, userID string, groupRef uint64) (*domain.Member, error)
	CountByGroupFn      func(ctx context.Context, groupRef uint64) (int64, error)
	ListByGroupFn       func(ctx context.Context, groupRef uint64) ([]domain.Member, error)
	SaveFn              func(ctx context.Context, m *domain.Member) error
}

func (m *MemberRepo) Create(ctx context.Context, mm *domain.Member) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, mm)
	}
	return nil
}

func (m *MemberRepo) GetByMemberID(ctx context.Context, memberID string) (*domain.Member, error) {
	if m.GetByMemberIDFn != nil {
		return m.GetByMemberIDFn(ctx, memberID)
	}
	return nil, context.Canceled
}

func (m *MemberRepo) GetByUserAndGroup(ctx context.Context, userID string, groupRef uint64) (*domain.Member, error) {
	if m.GetByUserAndGroupFn != nil {
		return m.GetByUserAndGroupFn(ctx, userID, groupRef)
	}
	return nil, context.Canceled
}

func (m *MemberRepo) CountByGroup(ctx context.Context, groupRef uint64) (int64, error) {
	if m.CountByGroupFn != nil {
		return m.CountByGroupFn(ctx, groupRef)
	}
	return 0, context.Canceled
}

func (m *MemberRepo) ListByGroup(ctx context.Context, groupRef uint64) ([]domain.Member, error) {
	if m.ListByGroupFn != nil {
		return m.ListByGroupFn(ctx, groupRef)
	}
	return nil, context.Canceled
}

func (m *MemberRepo) Save(ctx context.Context, mm *domain.Member) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, mm)
	}
	return nil
}
