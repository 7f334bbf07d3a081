package member

import (
	"context"
	"errors"
	"time"

	"chama-backend/internal/domain/access"
	"chama-backend/internal/domain/event"
	groupDomain "chama-backend/internal/domain/group"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"

	"gorm.io/gorm"
)

var ErrGroupFull = errors.New("group is at member capacity")

type Usecase struct {
	uow  uow.UnitOfWork
	sink event.Sink
}

func NewUsecase(tx uow.UnitOfWork, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink}
}

type MemberDTO struct {
	MemberID string    `json:"member_id"`
	UserID   string    `json:"user_id"`
	GroupID  string    `json:"group_id"`
	Status   string    `json:"status"`
	IsAdmin  bool      `json:"is_admin"`
	JoinedAt time.Time `json:"joined_at"`
}

func toDTO(m *memberDomain.Member) *MemberDTO {
	return &MemberDTO{
		MemberID: m.MemberID,
		UserID:   m.UserID,
		GroupID:  m.GroupID,
		Status:   string(m.Status),
		IsAdmin:  m.IsAdmin,
		JoinedAt: m.JoinedAt,
	}
}

// Join adds the caller to a group. Duplicate membership and a full group are
// conflicts. The first member is auto-activated and promoted to admin; later
// joiners start pending until a group admin approves them.
func (u *Usecase) Join(ctx context.Context, caller access.Caller, groupID string) (*MemberDTO, error) {
	var dto *MemberDTO
	err := u.uow.WithinGroupTx(ctx, groupID, func(r uow.Repos, g *groupDomain.Group) error {
		if g.Status != groupDomain.StatusActive {
			return groupDomain.ErrArchived
		}
		if _, err := r.Members.GetByUserAndGroup(ctx, caller.UserID, g.ID); err == nil {
			return memberDomain.ErrDuplicateMember
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		n, err := r.Members.CountByGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		if g.MaxMembers > 0 && n >= int64(g.MaxMembers) {
			return ErrGroupFull
		}

		m := &memberDomain.Member{
			MemberID: id.NewID32(),
			UserID:   caller.UserID,
			GroupRef: g.ID,
			GroupID:  g.GroupID,
			Status:   memberDomain.StatusPending,
		}
		if n == 0 {
			m.Status = memberDomain.StatusActive
			m.IsAdmin = true
		}
		if err := r.Members.Create(ctx, m); err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupDomain.ErrNotFound
		}
		return nil, err
	}
	u.sink.Publish(ctx, event.New(event.MemberJoined, "member", dto.MemberID))
	return dto, nil
}

// Approve activates a pending member. Group-admin only.
func (u *Usecase) Approve(ctx context.Context, caller access.Caller, memberID string) (*MemberDTO, error) {
	dto, err := u.transition(ctx, caller, memberID, memberDomain.StatusPending, memberDomain.StatusActive)
	if err != nil {
		return nil, err
	}
	u.sink.Publish(ctx, event.New(event.MemberApproved, "member", memberID))
	return dto, nil
}

// Suspend suspends an active member. Group-admin only.
func (u *Usecase) Suspend(ctx context.Context, caller access.Caller, memberID string) (*MemberDTO, error) {
	return u.transition(ctx, caller, memberID, memberDomain.StatusActive, memberDomain.StatusSuspended)
}

// Reinstate re-activates a suspended member. Group-admin only.
func (u *Usecase) Reinstate(ctx context.Context, caller access.Caller, memberID string) (*MemberDTO, error) {
	return u.transition(ctx, caller, memberID, memberDomain.StatusSuspended, memberDomain.StatusActive)
}

func (u *Usecase) transition(ctx context.Context, caller access.Caller, memberID string, from, to memberDomain.Status) (*MemberDTO, error) {
	var dto *MemberDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		m, err := r.Members.GetByMemberID(ctx, memberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return memberDomain.ErrNotFound
			}
			return err
		}
		g, err := r.Groups.GetByGroupID(ctx, m.GroupID)
		if err != nil {
			return err
		}
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		if m.Status != from {
			return memberDomain.ErrInvalidTransition
		}
		m.Status = to
		if err := r.Members.Save(ctx, m); err != nil {
			return err
		}
		dto = toDTO(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// ListByGroup returns a group's members in join order.
func (u *Usecase) ListByGroup(ctx context.Context, groupID string) ([]MemberDTO, error) {
	var out []MemberDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Groups.GetByGroupID(ctx, groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return groupDomain.ErrNotFound
			}
			return err
		}
		rows, err := r.Members.ListByGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		out = make([]MemberDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toDTO(&rows[i]))
		}
		return nil
	})
	return out, err
}
