// Package repomock provides function-backed mocks for every repository
// interface. Only the methods a test fills in are implemented; the rest
// return context.Canceled so a forgotten stub fails loudly.
package repomock

import (
	"context"

	domain "chama-backend/internal/domain/group"
)

type GroupRepo struct {
	CreateFn                func(ctx context.Context, g *domain.Group) error
	GetByGroupIDFn          func(ctx context.Context, groupID string) (*domain.Group, error)
	GetByGroupIDForUpdateFn func(ctx context.Context, groupID string) (*domain.Group, error)
	SaveFn                  func(ctx context.Context, g *domain.Group) error
	DeleteFn                func(ctx context.Context, g *domain.Group) error
	ListFn                  func(ctx context.Context, status domain.Status) ([]domain.Group, error)
}

func (m *GroupRepo) Create(ctx context.Context, g *domain.Group) error {
	if m.CreateFn != nil {
		return m.CreateFn(ctx, g)
	}
	return nil
}

func (m *GroupRepo) GetByGroupID(ctx context.Context, groupID string) (*domain.Group, error) {
	if m.GetByGroupIDFn != nil {
		return m.GetByGroupIDFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *GroupRepo) GetByGroupIDForUpdate(ctx context.Context, groupID string) (*domain.Group, error) {
	if m.GetByGroupIDForUpdateFn != nil {
		return m.GetByGroupIDForUpdateFn(ctx, groupID)
	}
	return nil, context.Canceled
}

func (m *GroupRepo) Save(ctx context.Context, g *domain.Group) error {
	if m.SaveFn != nil {
		return m.SaveFn(ctx, g)
	}
	return nil
}

func (m *GroupRepo) Delete(ctx context.Context, g *domain.Group) error {
	if m.DeleteFn != nil {
		return m.DeleteFn(ctx, g)
	}
	return nil
}

func (m *GroupRepo) List(ctx context.Context, status domain.Status) ([]domain.Group, error) {
	if m.ListFn != nil {
		return m.ListFn(ctx, status)
	}
	return nil, context.Canceled
}
