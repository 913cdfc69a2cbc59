package models

import (
	"time"

	"github.com/google/uuid"
)

// Role is the authorization level a principal holds within an organization.
type Role string

const (
	RoleOwner  Role = "owner"
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
	RoleViewer Role = "viewer"
)

// Valid returns true if the role is one of the known roles.
func (r Role) Valid() bool {
	switch r {
	case RoleOwner, RoleAdmin, RoleMember, RoleViewer:
		return true
	}
	return false
}

// Membership joins a principal to an organization with a role.
// A principal may hold memberships in multiple organizations, but at most
// one membership per (org, principal) pair.
type Membership struct {
	OrgID       uuid.UUID // UUIDv7, FK to organizations
	PrincipalID uuid.UUID // UUIDv7
	Role        Role
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
