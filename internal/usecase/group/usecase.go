package group

import (
	"context"
	"errors"
	"strings"
	"time"

	"chama-backend/internal/domain/access"
	"chama-backend/internal/domain/event"
	groupDomain "chama-backend/internal/domain/group"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var ErrBadName = errors.New("group name must be at least 3 characters")

type Usecase struct {
	uow  uow.UnitOfWork
	sink event.Sink
}

func NewUsecase(tx uow.UnitOfWork, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink}
}

type CreateInput struct {
	Name         string
	Description  string
	TargetAmount decimal.Decimal
	IsPublic     bool
	MaxMembers   int
}

type GroupDTO struct {
	GroupID       string          `json:"group_id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	TargetAmount  decimal.Decimal `json:"target_amount"`
	CurrentAmount decimal.Decimal `json:"current_amount"`
	Progress      decimal.Decimal `json:"progress"`
	IsPublic      bool            `json:"is_public"`
	MaxMembers    int             `json:"max_members"`
	Status        string          `json:"status"`
	AdminUserID   string          `json:"admin_user_id"`
	MemberCount   int64           `json:"member_count"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func toDTO(g *groupDomain.Group, memberCount int64) *GroupDTO {
	return &GroupDTO{
		GroupID:       g.GroupID,
		Name:          g.Name,
		Description:   g.Description,
		TargetAmount:  g.TargetAmount,
		CurrentAmount: g.CurrentAmount,
		Progress:      g.Progress(),
		IsPublic:      g.IsPublic,
		MaxMembers:    g.MaxMembers,
		Status:        string(g.Status),
		AdminUserID:   g.AdminUserID,
		MemberCount:   memberCount,
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}
}

// Create opens a group. The creator becomes the owning admin user and is
// inserted as the first member, auto-activated and flagged admin.
func (u *Usecase) Create(ctx context.Context, caller access.Caller, in CreateInput) (*GroupDTO, error) {
	name := strings.TrimSpace(in.Name)
	if len(name) < 3 {
		return nil, ErrBadName
	}
	if err := money.Validate(in.TargetAmount); err != nil {
		return nil, err
	}

	var dto *GroupDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g := &groupDomain.Group{
			GroupID:       id.NewID32(),
			Name:          name,
			Description:   in.Description,
			TargetAmount:  in.TargetAmount,
			CurrentAmount: decimal.Zero,
			IsPublic:      in.IsPublic,
			MaxMembers:    in.MaxMembers,
			Status:        groupDomain.StatusActive,
			AdminUserID:   caller.UserID,
		}
		if err := r.Groups.Create(ctx, g); err != nil {
			return err
		}
		m := &memberDomain.Member{
			MemberID: id.NewID32(),
			UserID:   caller.UserID,
			GroupRef: g.ID,
			GroupID:  g.GroupID,
			Status:   memberDomain.StatusActive,
			IsAdmin:  true,
		}
		if err := r.Members.Create(ctx, m); err != nil {
			return err
		}
		dto = toDTO(g, 1)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// Archive closes a group. Allowed only for the group admin and only once
// current_amount has reached target_amount.
func (u *Usecase) Archive(ctx context.Context, caller access.Caller, groupID string) (*GroupDTO, error) {
	var dto *GroupDTO
	err := u.uow.WithinGroupTx(ctx, groupID, func(r uow.Repos, g *groupDomain.Group) error {
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		if g.Status != groupDomain.StatusActive {
			return groupDomain.ErrInvalidTransition
		}
		if g.CurrentAmount.LessThan(g.TargetAmount) {
			return groupDomain.ErrTargetNotReached
		}
		g.Status = groupDomain.StatusArchived
		if err := r.Groups.Save(ctx, g); err != nil {
			return err
		}
		n, err := r.Members.CountByGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		dto = toDTO(g, n)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupDomain.ErrNotFound
		}
		return nil, err
	}
	u.sink.Publish(ctx, event.New(event.GroupArchived, "group", groupID))
	return dto, nil
}

// Get returns one group with its member count.
func (u *Usecase) Get(ctx context.Context, groupID string) (*GroupDTO, error) {
	var dto *GroupDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Groups.GetByGroupID(ctx, groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return groupDomain.ErrNotFound
			}
			return err
		}
		n, err := r.Members.CountByGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		dto = toDTO(g, n)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// List returns groups, optionally filtered by status.
func (u *Usecase) List(ctx context.Context, status string) ([]GroupDTO, error) {
	var out []GroupDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		rows, err := r.Groups.List(ctx, groupDomain.Status(status))
		if err != nil {
			return err
		}
		out = make([]GroupDTO, 0, len(rows))
		for i := range rows {
			n, err := r.Members.CountByGroup(ctx, rows[i].ID)
			if err != nil {
				return err
			}
			out = append(out, *toDTO(&rows[i], n))
		}
		return nil
	})
	return out, err
}

// Delete removes a group; contributions, loans and investments cascade.
func (u *Usecase) Delete(ctx context.Context, caller access.Caller, groupID string) error {
	err := u.uow.WithinGroupTx(ctx, groupID, func(r uow.Repos, g *groupDomain.Group) error {
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		return r.Groups.Delete(ctx, g)
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return groupDomain.ErrNotFound
	}
	return err
}
