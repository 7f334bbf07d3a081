package investment

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive    Status = "active"
	StatusMatured   Status = "matured"
	StatusWithdrawn Status = "withdrawn"
	StatusDefaulted Status = "defaulted"
)

var (
	ErrNotFound           = errors.New("investment not found")
	ErrInvalidTransition  = errors.New("invalid investment status transition")
	ErrDuplicateReference = errors.New("payment reference number already used")
	ErrBadExpectedReturn  = errors.New("expected return percentage cannot be negative")
)

// Investment is a member's stake in a group project. expected_amount is fixed
// at creation: amount * (1 + expected_return/100). total_paid is derived from
// the payment rows and recomputed inside the same transaction as any payment
// mutation.
type Investment struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	InvestmentID   string          `gorm:"size:32;uniqueIndex:ux_investments_public_id" json:"investment_id"`
	MemberRef      uint64          `gorm:"column:member_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	MemberID       string          `gorm:"size:32;index" json:"member_id"`
	GroupRef       uint64          `gorm:"column:group_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	GroupID        string          `gorm:"size:32;index" json:"group_id"`
	ProjectName    string          `gorm:"size:100" json:"project_name"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	ExpectedReturn decimal.Decimal `gorm:"type:decimal(5,2)" json:"expected_return"` // percentage
	ExpectedAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"expected_amount"`
	TotalPaid      decimal.Decimal `gorm:"type:decimal(12,2)" json:"total_paid"`
	MaturityDate   *time.Time      `json:"maturity_date"`
	Status         Status          `gorm:"size:20;default:'active'" json:"status"`
	InvestedAt     time.Time       `gorm:"autoCreateTime" json:"invested_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Investment) TableName() string { return "investments" }

// Payment is a return payout received against an investment.
type Payment struct {
	ID              uint64          `gorm:"primaryKey;column:id" json:"-"`
	PaymentID       string          `gorm:"size:32;uniqueIndex:ux_investment_payments_public_id" json:"payment_id"`
	InvestmentRef   uint64          `gorm:"column:investment_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	InvestmentID    string          `gorm:"size:32;index" json:"investment_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Method          string          `gorm:"size:50" json:"method"`
	ReferenceNumber *string         `gorm:"size:50;uniqueIndex:ux_investment_payments_reference" json:"reference_number"`
	CreatedAt       time.Time       `gorm:"autoCreateTime" json:"created_at"`
	DeletedAt       gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Payment) TableName() string { return "investment_payments" }

// ExpectedAmountFor computes amount * (1 + pct/100) rounded to 2 places.
func ExpectedAmountFor(amount, returnPct decimal.Decimal) decimal.Decimal {
	hundred := decimal.NewFromInt(100)
	return amount.Mul(decimal.NewFromInt(1).Add(returnPct.Div(hundred))).Round(2)
}

// GoalMet reports whether payouts have reached the expected amount.
func (i *Investment) GoalMet() bool { return i.TotalPaid.GreaterThanOrEqual(i.ExpectedAmount) }

// Progress returns percent of principal paid back, capped at 100.
func (i *Investment) Progress() decimal.Decimal {
	if !i.Amount.IsPositive() {
		return decimal.Zero
	}
	pct := i.TotalPaid.Div(i.Amount).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
