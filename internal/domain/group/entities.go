package group

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Status string

const (
	StatusActive   Status = "active"
	StatusArchived Status = "archived"
)

var (
	ErrNotFound          = errors.New("group not found")
	ErrArchived          = errors.New("group is archived")
	ErrTargetNotReached  = errors.New("cannot archive group before reaching target amount")
	ErrInvalidTransition = errors.New("invalid group status transition")
)

// Group is a savings group. current_amount is derived: it always equals the
// sum of the group's confirmed contributions and is recomputed inside the
// same transaction as any mutation of that set.
type Group struct {
	ID            uint64          `gorm:"primaryKey;column:id" json:"-"`
	GroupID       string          `gorm:"size:32;uniqueIndex:ux_groups_group_id_active" json:"group_id"`
	Name          string          `gorm:"size:100;index" json:"name"`
	Description   string          `gorm:"type:text" json:"description"`
	TargetAmount  decimal.Decimal `gorm:"type:decimal(12,2)" json:"target_amount"`
	CurrentAmount decimal.Decimal `gorm:"type:decimal(12,2)" json:"current_amount"`
	IsPublic      bool            `gorm:"default:true" json:"is_public"`
	MaxMembers    int             `gorm:"default:0" json:"max_members"` // 0 = unlimited
	Status        Status          `gorm:"size:20;default:'active'" json:"status"`
	AdminUserID   string          `gorm:"size:32;index" json:"admin_user_id"`
	CreatedAt     time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"-"`
}

func (Group) TableName() string { return "groups" }

// Progress returns percent of target reached, capped at 100.
func (g *Group) Progress() decimal.Decimal {
	if !g.TargetAmount.IsPositive() {
		return decimal.Zero
	}
	pct := g.CurrentAmount.Div(g.TargetAmount).Mul(decimal.NewFromInt(100))
	hundred := decimal.NewFromInt(100)
	if pct.GreaterThan(hundred) {
		return hundred
	}
	return pct.Round(2)
}
