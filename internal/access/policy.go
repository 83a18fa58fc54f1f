package access

// Can is the policy decision table as a pure function. Admin holds
// every cell; crm_manager holds only the applications row;
// content_manager holds the content row plus settings (the writable
// settings field subset is enforced separately by the settings module).
func Can(role Role, category Category, op Operation) bool {
	if !role.Valid() {
		return false
	}
	if role == RoleAdmin {
		return true
	}
	switch category {
	case CategoryAccounts:
		return false
	case CategoryApplications:
		return role == RoleCRMManager
	case CategoryContent:
		return role == RoleContentManager
	case CategorySettings:
		return role == RoleContentManager
	}
	return false
}

// Resource describes what is being gated: its policy category plus the
// structural flags that override the table for particular entity kinds.
type Resource struct {
	Category Category
	// AppendOnly entities (audit history) are written by the system:
	// add and change are denied for every role.
	AppendOnly bool
	// Singleton entities allow no delete ever, and no add once the one
	// live instance exists.
	Singleton bool
}

// Allows evaluates the full decision for a role acting on a resource.
// exists reports whether a singleton instance is already present; it is
// ignored for non-singleton resources.
func (res Resource) Allows(role Role, op Operation, exists bool) bool {
	if res.AppendOnly && (op == OpAdd || op == OpChange) {
		return false
	}
	if res.Singleton {
		if op == OpDelete {
			return false
		}
		if op == OpAdd && exists {
			return false
		}
	}
	return Can(role, res.Category, op)
}

// ForChild returns the resource a nested child collection is gated by.
// A child (diagram categories, section images, news attachments) always
// takes its parent's decision for the same operation and can never
// grant what the parent denies.
func (res Resource) ForChild() Resource {
	return Resource{Category: res.Category}
}

// CanPrincipal resolves the principal's role and evaluates the
// resource decision, failing closed when no role resolves.
func CanPrincipal(p Principal, res Resource, op Operation, exists bool) bool {
	role, ok := ResolveRole(p)
	if !ok {
		return false
	}
	return res.Allows(role, op, exists)
}
