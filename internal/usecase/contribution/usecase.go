package contribution

import (
	"context"
	"errors"
	"time"

	"chama-backend/internal/domain/access"
	contribDomain "chama-backend/internal/domain/contribution"
	"chama-backend/internal/domain/event"
	groupDomain "chama-backend/internal/domain/group"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Usecase struct {
	uow  uow.UnitOfWork
	sink event.Sink
}

func NewUsecase(tx uow.UnitOfWork, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink}
}

type RecordInput struct {
	GroupID       string
	MemberID      string
	Amount        decimal.Decimal
	Note          string
	ReceiptNumber string
}

type ContributionDTO struct {
	ContributionID string          `json:"contribution_id"`
	MemberID       string          `json:"member_id"`
	GroupID        string          `json:"group_id"`
	Amount         decimal.Decimal `json:"amount"`
	Note           string          `json:"note,omitempty"`
	ReceiptNumber  string          `json:"receipt_number,omitempty"`
	Status         string          `json:"status"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

func toDTO(c *contribDomain.Contribution) *ContributionDTO {
	dto := &ContributionDTO{
		ContributionID: c.ContributionID,
		MemberID:       c.MemberID,
		GroupID:        c.GroupID,
		Amount:         c.Amount,
		Note:           c.Note,
		Status:         string(c.Status),
		CreatedAt:      c.CreatedAt,
		UpdatedAt:      c.UpdatedAt,
	}
	if c.ReceiptNumber != nil {
		dto.ReceiptNumber = *c.ReceiptNumber
	}
	return dto
}

// Record creates a pending contribution. The group balance is untouched until
// an admin confirms it.
func (u *Usecase) Record(ctx context.Context, caller access.Caller, in RecordInput) (*ContributionDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}

	var dto *ContributionDTO
	err := u.uow.WithinGroupTx(ctx, in.GroupID, func(r uow.Repos, g *groupDomain.Group) error {
		if g.Status != groupDomain.StatusActive {
			return groupDomain.ErrArchived
		}
		m, err := r.Members.GetByMemberID(ctx, in.MemberID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return memberDomain.ErrNotFound
			}
			return err
		}
		if m.GroupRef != g.ID {
			return memberDomain.ErrNotFound
		}
		if err := access.CanActFor(caller, g, m); err != nil {
			return err
		}
		if !m.CanTransact(g.IsPublic) {
			return memberDomain.ErrNotActive
		}

		c := &contribDomain.Contribution{
			ContributionID: id.NewID32(),
			MemberRef:      m.ID,
			MemberID:       m.MemberID,
			GroupRef:       g.ID,
			GroupID:        g.GroupID,
			Amount:         in.Amount,
			Note:           in.Note,
			Status:         contribDomain.StatusPending,
		}
		if in.ReceiptNumber != "" {
			if _, err := r.Contributions.GetByReceiptNumber(ctx, in.ReceiptNumber); err == nil {
				return contribDomain.ErrDuplicateReceipt
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			receipt := in.ReceiptNumber
			c.ReceiptNumber = &receipt
		}
		if err := r.Contributions.Create(ctx, c); err != nil {
			return err
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, groupDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Confirm moves a pending contribution to confirmed and recomputes the group
// balance inside the same locked transaction, so no reader ever sees a
// confirmed contribution without the matching current_amount.
func (u *Usecase) Confirm(ctx context.Context, caller access.Caller, contributionID string) (*ContributionDTO, error) {
	return u.settle(ctx, caller, contributionID, contribDomain.StatusConfirmed)
}

// Reject moves a pending contribution to rejected. No balance effect.
func (u *Usecase) Reject(ctx context.Context, caller access.Caller, contributionID string) (*ContributionDTO, error) {
	return u.settle(ctx, caller, contributionID, contribDomain.StatusRejected)
}

func (u *Usecase) settle(ctx context.Context, caller access.Caller, contributionID string, target contribDomain.Status) (*ContributionDTO, error) {
	groupID, err := u.groupOf(ctx, contributionID)
	if err != nil {
		return nil, err
	}

	var dto *ContributionDTO
	err = u.uow.WithinGroupTx(ctx, groupID, func(r uow.Repos, g *groupDomain.Group) error {
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		// re-read under the group lock
		c, err := r.Contributions.GetByContributionID(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribDomain.ErrNotFound
			}
			return err
		}
		if c.Status != contribDomain.StatusPending {
			return contribDomain.ErrInvalidTransition
		}
		c.Status = target
		if err := r.Contributions.Save(ctx, c); err != nil {
			return err
		}
		if target == contribDomain.StatusConfirmed {
			if err := recalcGroup(ctx, r, g); err != nil {
				return err
			}
		}
		dto = toDTO(c)
		return nil
	})
	if err != nil {
		return nil, err
	}

	name := event.ContributionRejected
	if target == contribDomain.StatusConfirmed {
		name = event.ContributionConfirmed
	}
	u.sink.Publish(ctx, event.New(name, "contribution", contributionID))
	return dto, nil
}

// Recalculate re-derives current_amount from the confirmed set and persists
// it. Safe to call repeatedly; used as the on-read reconciliation pass.
func (u *Usecase) Recalculate(ctx context.Context, groupID string) (decimal.Decimal, error) {
	var out decimal.Decimal
	err := u.uow.WithinGroupTx(ctx, groupID, func(r uow.Repos, g *groupDomain.Group) error {
		if err := recalcGroup(ctx, r, g); err != nil {
			return err
		}
		out = g.CurrentAmount
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return decimal.Zero, groupDomain.ErrNotFound
		}
		return decimal.Zero, err
	}
	return out, nil
}

// ListByGroup returns a group's contributions, newest first.
func (u *Usecase) ListByGroup(ctx context.Context, groupID string) ([]ContributionDTO, error) {
	var out []ContributionDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		g, err := r.Groups.GetByGroupID(ctx, groupID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return groupDomain.ErrNotFound
			}
			return err
		}
		rows, err := r.Contributions.ListByGroup(ctx, g.ID)
		if err != nil {
			return err
		}
		out = make([]ContributionDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toDTO(&rows[i]))
		}
		return nil
	})
	return out, err
}

func (u *Usecase) groupOf(ctx context.Context, contributionID string) (string, error) {
	var groupID string
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		c, err := r.Contributions.GetByContributionID(ctx, contributionID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return contribDomain.ErrNotFound
			}
			return err
		}
		groupID = c.GroupID
		return nil
	})
	return groupID, err
}

// recalcGroup assigns current_amount = SUM(confirmed contributions). The
// group row must already be locked by the enclosing transaction.
func recalcGroup(ctx context.Context, r uow.Repos, g *groupDomain.Group) error {
	sum, err := r.Contributions.SumConfirmed(ctx, g.ID)
	if err != nil {
		return err
	}
	g.CurrentAmount = money.Round2(sum)
	return r.Groups.Save(ctx, g)
}
