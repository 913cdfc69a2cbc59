// Package policy is the access gate for write operations. It is a pure
// function of the caller's role: no lookups, no side effects, and nothing
// cached between requests, so a role change takes effect on the next call.
package policy

import (
	"fmt"

	"github.com/stafflens/goalboard/internal/models"
)

// ErrDenied is returned when a role is not permitted to perform an operation.
type ErrDenied struct {
	Role      models.Role
	Operation string
}

func (e *ErrDenied) Error() string {
	return fmt.Sprintf("permission denied: role %q cannot %s", e.Role, e.Operation)
}

// writeRoles holds the roles permitted to modify an organization's goals.
var writeRoles = map[models.Role]bool{
	models.RoleOwner: true,
	models.RoleAdmin: true,
}

// CanWriteGoals reports whether the role may modify goals.
func CanWriteGoals(role models.Role) bool {
	return writeRoles[role]
}

// AuthorizeGoalWrite checks that the role may modify goals.
// Reads are open to any member, so there is no read counterpart.
func AuthorizeGoalWrite(role models.Role) error {
	if !CanWriteGoals(role) {
		return &ErrDenied{Role: role, Operation: "modify goals"}
	}
	return nil
}
