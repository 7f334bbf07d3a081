package loan

import (
	"context"
	"errors"
	"fmt"
	"time"

	"chama-backend/internal/domain/access"
	"chama-backend/internal/domain/event"
	groupDomain "chama-backend/internal/domain/group"
	loanDomain "chama-backend/internal/domain/loan"
	memberDomain "chama-backend/internal/domain/member"
	"chama-backend/internal/domain/money"
	"chama-backend/internal/domain/uow"
	"chama-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// DefaultInterestRate applies when an application omits the rate (10%).
var DefaultInterestRate = decimal.NewFromFloat(0.10)

type Usecase struct {
	uow  uow.UnitOfWork
	sink event.Sink
	now  func() time.Time
}

func NewUsecase(tx uow.UnitOfWork, sink event.Sink) *Usecase {
	return &Usecase{uow: tx, sink: sink, now: func() time.Time { return time.Now().UTC() }}
}

// WithClock overrides the time source; tests use it to reach due dates.
func (u *Usecase) WithClock(now func() time.Time) *Usecase {
	u.now = now
	return u
}

type ApplyInput struct {
	GroupID      string
	MemberID     string
	Amount       decimal.Decimal
	InterestRate *decimal.Decimal // nil → DefaultInterestRate
	TermMonths   int
	Purpose      string
}

type RepayInput struct {
	Amount decimal.Decimal
	Method string
	Note   string
}

type LoanDTO struct {
	LoanID       string          `json:"loan_id"`
	MemberID     string          `json:"member_id"`
	GroupID      string          `json:"group_id"`
	Amount       decimal.Decimal `json:"amount"`
	InterestRate decimal.Decimal `json:"interest_rate"`
	TermMonths   int             `json:"term_months"`
	Purpose      string          `json:"purpose,omitempty"`
	Status       string          `json:"status"`
	Balance      decimal.Decimal `json:"balance"`
	Progress     decimal.Decimal `json:"progress"`
	RequestedAt  time.Time       `json:"requested_at"`
	ApprovedAt   *time.Time      `json:"approved_at,omitempty"`
	ApprovedBy   string          `json:"approved_by,omitempty"`
	IssueDate    *time.Time      `json:"issue_date,omitempty"`
	DueDate      *time.Time      `json:"due_date,omitempty"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

type RepaymentDTO struct {
	RepaymentID string          `json:"repayment_id"`
	LoanID      string          `json:"loan_id"`
	Amount      decimal.Decimal `json:"amount"`
	Method      string          `json:"method,omitempty"`
	Note        string          `json:"note,omitempty"`
	Status      string          `json:"status"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toDTO(l *loanDomain.Loan) *LoanDTO {
	return &LoanDTO{
		LoanID:       l.LoanID,
		MemberID:     l.MemberID,
		GroupID:      l.GroupID,
		Amount:       l.Amount,
		InterestRate: l.InterestRate,
		TermMonths:   l.TermMonths,
		Purpose:      l.Purpose,
		Status:       string(l.Status),
		Balance:      l.Balance,
		Progress:     l.PaymentProgress(),
		RequestedAt:  l.RequestedAt,
		ApprovedAt:   l.ApprovedAt,
		ApprovedBy:   l.ApprovedBy,
		IssueDate:    l.IssueDate,
		DueDate:      l.DueDate,
		UpdatedAt:    l.UpdatedAt,
	}
}

func toRepaymentDTO(rp *loanDomain.Repayment) *RepaymentDTO {
	return &RepaymentDTO{
		RepaymentID: rp.RepaymentID,
		LoanID:      rp.LoanID,
		Amount:      rp.Amount,
		Method:      rp.Method,
		Note:        rp.Note,
		Status:      string(rp.Status),
		CreatedAt:   rp.CreatedAt,
	}
}

// Apply files a loan application. The initial balance equals the principal
// and the loan starts pending. One pending application per member.
func (u *Usecase) Apply(ctx context.Context, caller access.Caller, in ApplyInput) (*LoanDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}
	if in.TermMonths <= 0 {
		return nil, loanDomain.ErrBadTerm
	}
	rate := DefaultInterestRate
	if in.InterestRate != nil {
		rate = *in.InterestRate
	}
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(1)) {
		return nil, loanDomain.ErrBadInterestRate
	}

	var dto *LoanDTO
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

		// one pending application at a time
		if pending, err := r.Loans.GetPendingByMember(ctx, m.ID); err == nil {
			return fmt.Errorf("%w: %s", loanDomain.ErrPendingExists, pending.LoanID)
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		l := &loanDomain.Loan{
			LoanID:       id.NewID32(),
			MemberRef:    m.ID,
			MemberID:     m.MemberID,
			GroupRef:     g.ID,
			GroupID:      g.GroupID,
			Amount:       in.Amount,
			InterestRate: rate,
			TermMonths:   in.TermMonths,
			Purpose:      in.Purpose,
			Status:       loanDomain.StatusPending,
			Balance:      in.Amount,
		}
		if err := r.Loans.Create(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
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

// Approve performs the fused approve+issue transition: pending → active with
// approved_at, issue_date and due_date stamped together. Only a group admin
// may approve, and never their own loan.
func (u *Usecase) Approve(ctx context.Context, caller access.Caller, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		g, err := r.Groups.GetByGroupID(ctx, l.GroupID)
		if err != nil {
			return err
		}
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		if l.Status != loanDomain.StatusPending {
			return loanDomain.ErrAlreadyProcessed
		}
		m, err := r.Members.GetByMemberID(ctx, l.MemberID)
		if err != nil {
			return err
		}
		if m.UserID == caller.UserID {
			return loanDomain.ErrSelfApproval
		}

		l.Issue(caller.UserID, u.now())
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	u.sink.Publish(ctx, event.New(event.LoanApproved, "loan", loanID))
	return dto, nil
}

// Reject declines a pending application. Terminal.
func (u *Usecase) Reject(ctx context.Context, caller access.Caller, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		g, err := r.Groups.GetByGroupID(ctx, l.GroupID)
		if err != nil {
			return err
		}
		if err := access.CanManageGroup(caller, g); err != nil {
			return err
		}
		if l.Status != loanDomain.StatusPending {
			return loanDomain.ErrAlreadyProcessed
		}
		l.Status = loanDomain.StatusRejected
		if err := r.Loans.Save(ctx, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	u.sink.Publish(ctx, event.New(event.LoanRejected, "loan", loanID))
	return dto, nil
}

// RecordRepayment inserts a repayment and recomputes the loan balance inside
// the same locked transaction. A balance of zero marks the loan paid; a
// positive balance past due_date marks it defaulted.
func (u *Usecase) RecordRepayment(ctx context.Context, caller access.Caller, loanID string, in RepayInput) (*RepaymentDTO, error) {
	if err := money.Validate(in.Amount); err != nil {
		return nil, err
	}

	var (
		dto    *RepaymentDTO
		status loanDomain.Status
	)
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		g, err := r.Groups.GetByGroupID(ctx, l.GroupID)
		if err != nil {
			return err
		}
		m, err := r.Members.GetByMemberID(ctx, l.MemberID)
		if err != nil {
			return err
		}
		if err := access.CanActFor(caller, g, m); err != nil {
			return err
		}
		if l.Status != loanDomain.StatusActive {
			return loanDomain.ErrNotActive
		}

		rp := &loanDomain.Repayment{
			RepaymentID: id.NewID32(),
			LoanRef:     l.ID,
			LoanID:      l.LoanID,
			Amount:      in.Amount,
			Method:      in.Method,
			Note:        in.Note,
			Status:      loanDomain.RepaymentPartial,
		}
		if err := r.Repayments.Create(ctx, rp); err != nil {
			return err
		}
		if err := u.recalcLoan(ctx, r, l); err != nil {
			return err
		}
		status = l.Status
		dto = toRepaymentDTO(rp)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}

	switch status {
	case loanDomain.StatusPaid:
		u.sink.Publish(ctx, event.New(event.LoanPaid, "loan", loanID))
	case loanDomain.StatusDefaulted:
		u.sink.Publish(ctx, event.New(event.LoanDefaulted, "loan", loanID))
	}
	return dto, nil
}

// Recalculate re-derives the balance from the repayment rows; the on-read
// reconciliation pass for drift from direct child edits.
func (u *Usecase) Recalculate(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinLoanTx(ctx, loanID, func(r uow.Repos, l *loanDomain.Loan) error {
		if err := u.recalcLoan(ctx, r, l); err != nil {
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, loanDomain.ErrNotFound
		}
		return nil, err
	}
	return dto, nil
}

// recalcLoan assigns balance = max(0, amount - SUM(counted repayments)) and
// derives the status. The loan row must already be locked.
func (u *Usecase) recalcLoan(ctx context.Context, r uow.Repos, l *loanDomain.Loan) error {
	sum, err := r.Repayments.SumCounted(ctx, l.ID)
	if err != nil {
		return err
	}
	l.Balance = money.ClampFloor(l.Amount.Sub(sum))
	if l.Balance.IsZero() {
		l.Status = loanDomain.StatusPaid
	} else if l.Status == loanDomain.StatusActive && l.DueDate != nil && u.now().After(*l.DueDate) {
		l.Status = loanDomain.StatusDefaulted
	}
	return r.Loans.Save(ctx, l)
}

// Get returns a loan with its derived fields.
func (u *Usecase) Get(ctx context.Context, loanID string) (*LoanDTO, error) {
	var dto *LoanDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}
		dto = toDTO(l)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return dto, nil
}

// MonthlyPayment returns the fixed amortized installment for a loan.
func (u *Usecase) MonthlyPayment(ctx context.Context, loanID string) (decimal.Decimal, error) {
	dto, err := u.Get(ctx, loanID)
	if err != nil {
		return decimal.Zero, err
	}
	l := loanDomain.Loan{Amount: dto.Amount, InterestRate: dto.InterestRate, TermMonths: dto.TermMonths}
	return l.MonthlyPayment(), nil
}

// ListRepayments returns a loan's repayments, oldest first.
func (u *Usecase) ListRepayments(ctx context.Context, loanID string) ([]RepaymentDTO, error) {
	var out []RepaymentDTO
	err := u.uow.WithinTx(ctx, func(r uow.Repos) error {
		l, err := r.Loans.GetByLoanID(ctx, loanID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return loanDomain.ErrNotFound
			}
			return err
		}
		rows, err := r.Repayments.ListByLoan(ctx, l.ID)
		if err != nil {
			return err
		}
		out = make([]RepaymentDTO, 0, len(rows))
		for i := range rows {
			out = append(out, *toRepaymentDTO(&rows[i]))
		}
		return nil
	})
	return out, err
}
