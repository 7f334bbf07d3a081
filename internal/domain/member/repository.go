package member

import "context"

type Repository interface {
	Create(ctx context.Context, m *Member) error
	GetByMemberID(ctx context.Context, memberID string) (*Member, error)
	GetByUserAndGroup(ctx context.Context, userID string, groupRef uint64) (*Member, error)
	CountByGroup(ctx context.Context, groupRef uint64) (int64, error)
	ListByGroup(ctx context.Context, groupRef uint64) ([]Member, error)
	Save(ctx context.Context, m *Member) error
}
