// Package access implements role resolution and the admin-console
// authorization policy: a closed role set, a static category table and
// a pure decision function gating every console operation.
package access

// Role is one of the closed set of staff roles.
type Role string

const (
	RoleAdmin          Role = "admin"
	RoleContentManager Role = "content_manager"
	RoleCRMManager     Role = "crm_manager"
)

// Valid reports whether r is a known role.
func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleContentManager, RoleCRMManager:
		return true
	}
	return false
}

// Category groups entity types sharing one policy row.
type Category string

const (
	// CategoryAccounts covers user accounts and the audit history.
	CategoryAccounts Category = "accounts"
	// CategoryApplications covers customer inquiries.
	CategoryApplications Category = "applications"
	// CategoryContent covers pages, news, analytics, contacts and media.
	CategoryContent Category = "content"
	// CategorySettings covers the site-wide settings singleton.
	CategorySettings Category = "settings"
)

// Operation is one of the four admin-console verbs.
type Operation string

const (
	OpView   Operation = "view"
	OpAdd    Operation = "add"
	OpChange Operation = "change"
	OpDelete Operation = "delete"
)

// Operations lists every verb, mostly for exhaustive tests.
func Operations() []Operation {
	return []Operation{OpView, OpAdd, OpChange, OpDelete}
}

// Principal is the authenticated actor as seen by the policy layer: an
// explicit value, not a request-scoped global.
type Principal struct {
	ID      int64
	IsStaff bool
	Role    Role
}

// ResolveRole maps a principal to its role. It fails closed: an
// unauthenticated caller, a non-staff account or a staff account with a
// missing or unknown role all resolve to no role at all.
func ResolveRole(p Principal) (Role, bool) {
	if p.ID == 0 || !p.IsStaff {
		return "", false
	}
	if !p.Role.Valid() {
		return "", false
	}
	return p.Role, true
}
