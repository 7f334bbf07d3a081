package access

import (
	"errors"

	"chama-backend/internal/domain/group"
	"chama-backend/internal/domain/member"
)

var ErrForbidden = errors.New("caller is not allowed to perform this operation")

// Role comes from the external identity provider; the engine trusts it.
type Role string

const (
	RoleMember Role = "member"
	RoleAdmin  Role = "admin"
)

// Caller is the authenticated identity every mutating operation receives.
type Caller struct {
	UserID string
	Role   Role
}

// IsGroupAdmin reports whether the caller administers the group, either as
// the owning user or through a platform admin role.
func (c Caller) IsGroupAdmin(g *group.Group) bool {
	return c.Role == RoleAdmin || g.AdminUserID == c.UserID
}

// CanManageGroup gates admin-only transitions: confirming/rejecting
// contributions, approving/rejecting loans, approving members, archiving.
func CanManageGroup(c Caller, g *group.Group) error {
	if !c.IsGroupAdmin(g) {
		return ErrForbidden
	}
	return nil
}

// CanActFor gates operations performed on behalf of a member: the caller
// must be that member's user or a group admin.
func CanActFor(c Caller, g *group.Group, m *member.Member) error {
	if c.UserID == m.UserID || c.IsGroupAdmin(g) {
		return nil
	}
	return ErrForbidden
}
