// internal/app/system/authz/authz.go
package authz

import (
	"strings"

	"github.com/dalemusser/taskhub/internal/domain/models"
)

// Capabilities answers the three questions the mutation service asks
// before touching an entity. The policy packages compute one of these
// per (actor, entity) pair; call sites reuse the struct instead of
// re-deriving booleans ad hoc.
type Capabilities struct {
	// CanEdit covers field edits: names, dates, membership, assignees.
	CanEdit bool
	// CanComplete covers status transitions, including the
	// sole-assignee self-completion path that does not imply CanEdit.
	CanComplete bool
	// CanRemove covers deletion (tasks) and archiving (projects).
	CanRemove bool
}

// None is the zero capability set.
var None = Capabilities{}

// All grants everything. Superadmins and admins get this on any entity.
var All = Capabilities{CanEdit: true, CanComplete: true, CanRemove: true}

// Role returns the actor's role, lowercased.
func Role(a models.Actor) string {
	return strings.ToLower(strings.TrimSpace(a.Role))
}

// IsSuperAdmin reports whether the actor is a superadmin.
func IsSuperAdmin(a models.Actor) bool {
	return Role(a) == RoleSuperAdmin
}

// IsAdmin reports whether the actor is an admin. Superadmins are also
// considered admins for permission purposes.
func IsAdmin(a models.Actor) bool {
	r := Role(a)
	return r == RoleAdmin || r == RoleSuperAdmin
}
