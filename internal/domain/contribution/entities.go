package contribution

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusConfirmed Status = "confirmed"
	StatusRejected  Status = "rejected"
)

var (
	ErrNotFound          = errors.New("contribution not found")
	ErrInvalidTransition = errors.New("contribution is not pending")
	ErrDuplicateReceipt  = errors.New("receipt number already used")
)

// Contribution is money a member puts into a group. Only confirmed rows count
// toward the group's current_amount; pending → confirmed|rejected is an
// admin-triggered transition and both outcomes are terminal.
type Contribution struct {
	ID             uint64          `gorm:"primaryKey;column:id" json:"-"`
	ContributionID string          `gorm:"size:32;uniqueIndex:ux_contributions_public_id" json:"contribution_id"`
	MemberRef      uint64          `gorm:"column:member_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	MemberID       string          `gorm:"size:32;index" json:"member_id"`
	GroupRef       uint64          `gorm:"column:group_ref;index;constraint:OnDelete:CASCADE" json:"-"`
	GroupID        string          `gorm:"size:32;index" json:"group_id"`
	Amount         decimal.Decimal `gorm:"type:decimal(12,2)" json:"amount"`
	Note           string          `gorm:"size:255" json:"note"`
	ReceiptNumber  *string         `gorm:"size:50;uniqueIndex:ux_contributions_receipt" json:"receipt_number"`
	Status         Status          `gorm:"size:20;default:'pending'" json:"status"`
	CreatedAt      time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt      gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Contribution) TableName() string { return "contributions" }

// Counted reports whether this row contributes to the group balance.
func (c *Contribution) Counted() bool { return c.Status == StatusConfirmed }
