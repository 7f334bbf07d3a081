package group

import "context"

type Repository interface {
	Create(ctx context.Context, g *Group) error
	GetByGroupID(ctx context.Context, groupID string) (*Group, error)
	// GetByGroupIDForUpdate locks the group row for the duration of the
	// enclosing transaction; required before recalculating current_amount.
	GetByGroupIDForUpdate(ctx context.Context, groupID string) (*Group, error)
	Save(ctx context.Context, g *Group) error
	Delete(ctx context.Context, g *Group) error
	List(ctx context.Context, status Status) ([]Group, error)
}
