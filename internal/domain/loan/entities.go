package loan

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusApproved  Status = "approved"
	StatusRejected  Status = "rejected"
	StatusActive    Status = "active"
	StatusPaid      Status = "paid"
	StatusDefaulted Status = "defaulted"
)

type RepaymentStatus string

const (
	RepaymentPartial  RepaymentStatus = "partial"
	RepaymentFull     RepaymentStatus = "full"
	RepaymentOverdue  RepaymentStatus = "overdue"
	RepaymentFailed   RepaymentStatus = "failed"
	RepaymentVerified RepaymentStatus = "verified"
)

var (
	ErrNotFound          = errors.New("loan not found")
	ErrInvalidTransition = errors.New("invalid loan status transition")
	ErrAlreadyProcessed  = errors.New("loan already approved or rejected")
	ErrPendingExists     = errors.New("member already has a pending loan")
	ErrNotActive         = errors.New("loan is not active")
	ErrSelfApproval      = errors.New("borrower cannot approve their own loan")
	ErrBadInterestRate   = errors.New("interest rate must be between 0 and 1")
	ErrBadTerm           = errors.New("term_months must be positive")
)

// termDays approximates a month as 30 calendar days when deriving due_date.
const termDays = 30

// Loan is credit extended from a group to a member. balance is derived:
// amount minus the sum of counted repayments, floored at 0. Approval and
// issuance are fused: pending -> active in a single admin transition that
// stamps approved_at, issue_date and due_date together.
type Loan struct {
	ID           uint64          `gorm:"primaryKey;column:id" json:"-"`
	LoanID       string          `gorm:"size:32;uniqueIndex:ux_loans_loan_id_active" json:"loan_id"`
	MemberRef    uint64          `gorm:"column:member_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	MemberID     string          `gorm:"size:32;index" json:"member_id"`
	GroupRef     uint64          `gorm:"column:group_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	GroupID      string          `gorm:"size:32;index" json:"group_id"`
	Amount       decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	InterestRate decimal.Decimal `gorm:"type:decimal(5,4)" json:"interest_rate"` // fraction, 0.10 = 10%
	TermMonths   int             `gorm:"not null" json:"term_months"`
	Purpose      string          `gorm:"type:text" json:"purpose"`
	Status       Status          `gorm:"size:20;default:'pending'" json:"status"`
	Balance      decimal.Decimal `gorm:"type:decimal(12,2)" json:"balance"`
	RequestedAt  time.Time       `gorm:"autoCreateTime" json:"requested_at"`
	ApprovedAt   *time.Time      `json:"approved_at"`
	ApprovedBy   string          `gorm:"size:32" json:"approved_by"`
	IssueDate    *time.Time      `json:"issue_date"`
	DueDate      *time.Time      `json:"due_date"`
	UpdatedAt    time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt    gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Loan) TableName() string { return "loans" }

// Repayment is a payment against a loan. Only partial/full/verified rows
// count toward the balance.
type Repayment struct {
	ID          uint64          `gorm:"primaryKey;column:id" json:"-"`
	RepaymentID string          `gorm:"size:32;uniqueIndex:ux_repayments_public_id" json:"repayment_id"`
	LoanRef     uint64          `gorm:"column:loan_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	LoanID      string          `gorm:"size:32;index" json:"loan_id"`
	Amount      decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Method      string          `gorm:"size:50" json:"method"`
	Note        string          `gorm:"size:255" json:"note"`
	Status      RepaymentStatus `gorm:"size:20;default:'partial'" json:"status"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt   gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Repayment) TableName() string { return "loan_repayments" }

// Counted reports whether the repayment reduces the loan balance.
func (r *Repayment) Counted() bool {
	switch r.Status {
	case RepaymentPartial, RepaymentFull, RepaymentVerified:
		return true
	}
	return false
}

// Issue stamps the fused approve+issue transition. due_date uses a 30-day
// calendar month approximation.
func (l *Loan) Issue(approverUserID string, now time.Time) {
	l.Status = StatusActive
	l.ApprovedAt = &now
	l.ApprovedBy = approverUserID
	issue := now
	l.IssueDate = &issue
	due := issue.AddDate(0, 0, termDays*l.TermMonths)
	l.DueDate = &due
}

// MonthlyPayment computes the fixed amortized payment:
// P*r*(1+r)^n / ((1+r)^n - 1) with r = interest_rate/12, n = term_months.
// Returns 0 for a non-positive term; straight division when the rate is 0.
func (l *Loan) MonthlyPayment() decimal.Decimal {
	if l.TermMonths <= 0 {
		return decimal.Zero
	}
	n := decimal.NewFromInt(int64(l.TermMonths))
	if l.InterestRate.IsZero() {
		return l.Amount.Div(n).Round(2)
	}
	r := l.InterestRate.Div(decimal.NewFromInt(12))
	factor := decimal.NewFromInt(1).Add(r).Pow(n)
	return l.Amount.Mul(r).Mul(factor).Div(factor.Sub(decimal.NewFromInt(1))).Round(2)
}

// PaymentProgress returns percent of principal repaid, capped at 100.
func (l *Loan) PaymentProgress() decimal.Decimal {
	if !l.Amount.IsPositive() {
		return decimal.Zero
	}
	paid := l.Amount.Sub(l.Balance)
	pct := paid.Div(l.Amount).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
