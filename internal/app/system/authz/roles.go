// internal/app/system/authz/roles.go
package authz

// Actor roles. Superadmin and admin are stored on the user record;
// lead is derived from project membership (a member who carries the
// lead tag on at least one project); everyone else is a plain member.
const (
	RoleSuperAdmin = "superadmin"
	RoleAdmin      = "admin"
	RoleLead       = "lead"
	RoleMember     = "member"
)
