// Package rbac implements role-based access control with per-operation
// explicit allow-lists. Roles are not hierarchical: admin is only allowed
// where the allow-list names it.
package rbac

// Role is a principal's role.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
)

// Elevated is the role set that bypasses ownership checks on shared
// resources.
var Elevated = []Role{RoleAdmin, RoleModerator}

// Authorize reports whether the role appears in the allow-list.
func Authorize(role Role, allowed []Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

// CanActOn reports whether a principal may act on a resource owned by
// ownerID. Roles in elevated bypass the ownership check; everyone else must
// own the resource.
func CanActOn(role Role, principalID, ownerID uint, elevated []Role) bool {
	if Authorize(role, elevated) {
		return true
	}
	return principalID == ownerID
}
