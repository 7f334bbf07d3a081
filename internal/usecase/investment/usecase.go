package investment

import (
	"context"
	"errors"
	"time"

	"chama-backend/internal/domain/access"
	"chama-backend/internal/domain/event"
	groupDomain "chama-backend/internal/domain/group"
	investDomain "chama-backend/internal/domain/investment"
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
	now  func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the time source; tests use it to reach maturity dates.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type CreateInput struct {
	GroupID        string
	MemberID       string
	ProjectName    string
	Amount         decimal.Decimal
	ExpectedReturn decimal.Decimal // percentage; 20 = 20%
	MaturityDate   *time.Time
}

type PaymentInput struct {
	Amount          decimal.Decimal
	Method          string
	ReferenceNumber string
}

type InvestmentDTO struct {
	InvestmentID   string          `json:"investment_id"`
	MemberID       string          `json:"member_id"`
	GroupID        string          `json:"group_id"`
	ProjectName    string          `json:"project_name"`
	Amount         decimal.Decimal `json:"amount"`
	ExpectedReturn decimal.Decimal `json:"expected_return"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	TotalPaid      decimal.Decimal `json:"total_paid"`
	Progress       decimal.Decimal `json:"progress"`
	MaturityDate   *time.Time      `json:"maturity_date,omitempty"`
	Status         string          `json:"status"`
	InvestedAt     time.Time       `json:"invested_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

type PaymentDTO struct {
	PaymentID       string          `json:"payment_id"`
	InvestmentID    string          `json:"investment_id"`
	Amount          decimal.Decimal `json:"amount"`
	Method          string          `json:"method,omitempty"`
	ReferenceNumber string          `json:"reference_number,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
}

func toDTO(i *investDomain.Investment) *InvestmentDTO {
	return &InvestmentDTO{
		InvestmentID:   i.InvestmentID,
		MemberID:       i.MemberID,
		GroupID:        i.GroupID,
		ProjectName:    i.ProjectName,
		Amount:         i.Amount,
		ExpectedReturn: i.ExpectedReturn,
		ExpectedAmount: i.ExpectedAmount,
		TotalPaid:      i.TotalPaid,
		Progress:       i.Progress(),
		MaturityDate:   i.MaturityDate,
		Status:         string(i.Status),
		InvestedAt:     i.InvestedAt,
		UpdatedAt:      i.UpdatedAt,
	}
}

func toPaymentDTO(p *investDomain.Payment) *PaymentDTO {
	dto := &PaymentDTO{
		PaymentID:    p.PaymentID,
		InvestmentID: p.InvestmentID,
		Amount:       p.Amount,
		Method:       p.Method,
		CreatedAt:    p.CreatedAt,
	}
	if p.ReferenceNumber != nil {
		dto.ReferenceNumber = *p.ReferenceNumber
	}
	return dto
}

// Create opens an active investment; expected_amount is fixed at creation
// from the expected return percentage.
func (u *Usecase) Create(ctx context.Context, caller access.Caller, in CreateInput) (*InvestmentDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}
	if in.ExpectedReturn.IsNegative() {
		return nil, investDomain.ErrBadExpectedReturn
	}

	var dto *InvestmentDTO
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
		if m.Status != memberDomain.StatusActive {
			return memberDomain.ErrNotActive
		}

		i := &investDomain.Investment{
			InvestmentID:   id.NewID32(),
			MemberRef:      m.ID,
			MemberID:       m.MemberID,
			GroupRef:       g.ID,
			GroupID:        g.GroupID,
			ProjectName:    in.ProjectName,
			Amount:         in.Amount,
			ExpectedReturn: in.ExpectedReturn,
			ExpectedAmount: investDomain.ExpectedAmountFor(in.Amount, in.ExpectedReturn),
			TotalPaid:      decimal.Zero,
			MaturityDate:   in.MaturityDate,
			Status:         investDomain.StatusActive,
		}
		if err := r.Investments.Create(ctx, i); err != nil {
			return err
		}
		dto = toDTO(i)
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

// RecordPayment inserts a payout and recomputes total_paid inside the same
// locked transaction; reaching expected_amount flips the investment to
// matured.
func (u *Usecase) RecordPayment(ctx context.Context, caller access.Caller, investmentID string, in PaymentInput) (*PaymentDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}

	var (
		dto     *PaymentDTO
		matured bool
	)
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, i *investDomain.Investment) error {
		g, err := r.Groups.GetByGroupID(ctx, i.GroupID)
		if err != nil {
			return err
		}
		m, err := r.Members.GetByMemberID(ctx, i.MemberID)
		if err != nil {
			return err
		}
		if err := access.CanActFor(caller, g, m); err != nil {
			return err
		}
		if i.Status != investDomain.StatusActive {
			return investDomain.ErrInvalidTransition
		}

		p := &investDomain.Payment{
			PaymentID:     id.NewID32(),
			InvestmentRef: i.ID,
			InvestmentID:  i.InvestmentID,
			Amount:        in.Amount,
			Method:        in.Method,
		}
		if in.ReferenceNumber != "" {
			if _, err := r.InvestmentPayments.GetByReferenceNumber(ctx, in.ReferenceNumber); err == nil {
				return investDomain.ErrDuplicateReference
			} else if !errors.Is(err, gorm.ErrRecordNotFound) {
				return err
			}
			ref := in.ReferenceNumber
			p.ReferenceNumber = &ref
		}
		if err := r.InvestmentPayments.Create(ctx, p); err != nil {
			return err
		}
		if err := recalcInvestment(ctx, r, i); err != nil {
			return err
		}
		matured = i.Status == investDomain.StatusMatured
		dto = toPaymentDTO(p)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investDomain.ErrNotFound
		}
		return nil, err
	}
	if matured {
		u.sink.Publish(ctx, event.New(event.InvestmentMatured, "investment", investmentID))
	}
	return dto, nil
}

// EvaluateMaturity settles an investment whose maturity date has arrived:
// matured when the payout goal was met, defaulted otherwise. A nil asOf
// means now.
func (u *Usecase) EvaluateMaturity(ctx context.Context, caller access.Caller, investmentID string, asOf *time.Time) (*InvestmentDTO, error) {
	at := u.now()
	if asOf != nil {
		at = *asOf
	}

	var (
		dto     *InvestmentDTO
		outcome string
	)
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, i *investDomain.Investment) error {
		g, err := r.Groups.GetByGroupID(ctx, i.GroupID)
		if err != nil {
			return err
		}
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		if i.Status != investDomain.StatusActive {
			return investDomain.ErrInvalidTransition
		}
		if i.MaturityDate == nil || at.Before(*i.MaturityDate) {
			dto = toDTO(i)
			return nil
		}
		if i.GoalMet() {
			i.Status = investDomain.StatusMatured
			outcome = event.InvestmentMatured
		} else {
			i.Status = investDomain.StatusDefaulted
			outcome = event.InvestmentDefaulted
		}
		if err := r.Investments.Save(ctx, i); err != nil {
			return err
		}
		dto = toDTO(i)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investDomain.ErrNotFound
		}
		return nil, err
	}
	if outcome != "" {
		u.sink.Publish(ctx, event.New(outcome, "investment", investmentID))
	}
	return dto, nil
}

// SweepMaturities settles every active investment past its maturity date.
// Each investment is evaluated in its own locked transaction; one failure
// does not abort the rest.
func (u *Usecase) SweepMaturities(ctx context.Context, caller access.Caller, asOf *time.Time) (int, error) {
	at := u.now()
	if asOf != nil {
		at = *asOf
	}

	var due []investDomain.Investment
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		var err error
		due, err = r.Investments.ListMaturing(ctx, at)
		return err
	})
	if err != nil {
		return 0, err
	}

	settled := 0
	for i := range due {
		if _, err := u.EvaluateMaturity(ctx, caller, due[i].InvestmentID, &at); err == nil {
			settled++
		}
	}
	return settled, nil
}

// Withdraw closes out a matured investment.
func (u *Usecase) Withdraw(ctx context.Context, caller access.Caller, investmentID string) (*InvestmentDTO, error) {
	var dto *InvestmentDTO
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, i *investDomain.Investment) error {
		g, err := r.Groups.GetByGroupID(ctx, i.GroupID)
		if err != nil {
			return err
		}
		m, err := r.Members.GetByMemberID(ctx, i.MemberID)
		if err != nil {
			return err
		}
		if err := access.CanActFor(caller, g, m); err != nil {
			return err
		}
		if i.Status != investDomain.StatusMatured {
			return investDomain.ErrInvalidTransition
		}
		i.Status = investDomain.StatusWithdrawn
		if err := r.Investments.Save(ctx, i); err != nil {
			return err
		}
		dto = toDTO(i)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Recalculate re-derives total_paid from the payment rows; the on-read
// reconciliation pass for drift from direct child edits.
func (u *Usecase) Recalculate(ctx context.Context, investmentID string) (*InvestmentDTO, error) {
	var dto *InvestmentDTO
	err := u.uow.WithinInvestmentTx(ctx, investmentID, func(r uow.Repos, i *investDomain.Investment) error {
		if err := recalcInvestment(ctx, r, i); err != nil {
			return err
		}
		dto = toDTO(i)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, investDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// Get returns an investment with its derived fields.
func (u *Usecase) Get(ctx context.Context, investmentID string) (*InvestmentDTO, error) {
	var dto *InvestmentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		i, err := r.Investments.GetByInvestmentID(ctx, investmentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return investDomain.ErrNotFound
			}
			return err
		}
		dto = toDTO(i)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// recalcInvestment assigns total_paid = SUM(payments) and flips the status
// to matured once the goal is reached. The row must already be locked.
func recalcInvestment(ctx context.Context, r uow.Repos, i *investDomain.Investment) error {
	sum, err := r.InvestmentPayments.SumByInvestment(ctx, i.ID)
	if err != nil {
		return err
	}
	i.TotalPaid = money.Round2(sum)
	if i.Status == investDomain.StatusActive && i.GoalMet() {
		i.Status = investDomain.StatusMatured
	}
	return r.Investments.Save(ctx, i)
}
