package member

import (
	"errors"
	"time"

	"gorm.io/gorm"
)

type Status string

const (
	StatusPending   Status = "pending"
	StatusActive    Status = "active"
	StatusInactive  Status = "inactive"
	StatusSuspended Status = "suspended"
)

var (
	ErrNotFound          = errors.New("member not found")
	ErrDuplicateMember   = errors.New("user already belongs to this group")
	ErrNotActive         = errors.New("member is not active")
	ErrInvalidTransition = errors.New("invalid member status transition")
)

// Member links a user to a group. The (user_id, group_id) pair is unique;
// the first member of a group is auto-activated and promoted to admin.
type Member struct {
	ID       uint64 `gorm:"primaryKey;column:id" json:"-"`
	MemberID string `gorm:"size:32;uniqueIndex:ux_members_member_id_active" json:"member_id"`
	UserID   string `gorm:"size:32;uniqueIndex:ux_members_user_group" json:"user_id"`
	// Numeric FK to groups.id; cascade-deleted with the group.
	GroupRef uint64         `gorm:"column:group_ref;uniqueIndex:ux_members_user_group;index;constraint:OnDelete:CASCADE" json:"-"`
	GroupID  string         `gorm:"size:32;index" json:"group_id"`
	Status   Status         `gorm:"size:20;default:'pending'" json:"status"`
	IsAdmin  bool           `gorm:"default:false" json:"is_admin"`
	JoinedAt time.Time      `gorm:"autoCreateTime" json:"joined_at"`
	UpdatedAt time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Member) TableName() string { return "members" }

// CanTransact reports whether contributions/loans may be recorded for this
// member. Pending members in private groups must be approved first.
func (m *Member) CanTransact(groupIsPublic bool) bool {
	if m.Status == StatusActive {
		return true
	}
	return m.Status == StatusPending && groupIsPublic
}
