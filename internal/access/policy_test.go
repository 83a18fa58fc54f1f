package access

import "testing"

func TestCan_AdminHoldsEverything(t *testing.T) {
	for _, cat := range []Category{CategoryAccounts, CategoryApplications, CategoryContent, CategorySettings} {
		for _, op := range Operations() {
			if !Can(RoleAdmin, cat, op) {
				t.Fatalf("admin denied %s on %s", op, cat)
			}
		}
	}
}

func TestCan_CRMManagerRow(t *testing.T) {
	for _, op := range Operations() {
		if !Can(RoleCRMManager, CategoryApplications, op) {
			t.Fatalf("crm_manager denied %s on applications", op)
		}
		if Can(RoleCRMManager, CategoryContent, op) {
			t.Fatalf("crm_manager granted %s on content", op)
		}
		if Can(RoleCRMManager, CategoryAccounts, op) {
			t.Fatalf("crm_manager granted %s on accounts", op)
		}
		if Can(RoleCRMManager, CategorySettings, op) {
			t.Fatalf("crm_manager granted %s on settings", op)
		}
	}
}

func TestCan_ContentManagerRow(t *testing.T) {
	for _, op := range Operations() {
		if Can(RoleContentManager, CategoryApplications, op) {
			t.Fatalf("content_manager granted %s on applications", op)
		}
		if Can(RoleContentManager, CategoryAccounts, op) {
			t.Fatalf("content_manager granted %s on accounts", op)
		}
		if !Can(RoleContentManager, CategoryContent, op) {
			t.Fatalf("content_manager denied %s on content", op)
		}
	}
}

func TestCan_UnknownRoleDeniedEverywhere(t *testing.T) {
	for _, role := range []Role{"", "superuser", "manager"} {
		for _, cat := range []Category{CategoryAccounts, CategoryApplications, CategoryContent, CategorySettings} {
			for _, op := range Operations() {
				if Can(role, cat, op) {
					t.Fatalf("role %q granted %s on %s", role, op, cat)
				}
			}
		}
	}
}

func TestResolveRole_FailsClosed(t *testing.T) {
	cases := []struct {
		name string
		p    Principal
	}{
		{"unauthenticated", Principal{}},
		{"not staff", Principal{ID: 5, IsStaff: false, Role: RoleAdmin}},
		{"missing role", Principal{ID: 5, IsStaff: true}},
		{"unknown role", Principal{ID: 5, IsStaff: true, Role: "owner"}},
	}
	for _, tc := range cases {
		if role, ok := ResolveRole(tc.p); ok {
			t.Fatalf("%s: resolved to %q", tc.name, role)
		}
		// All policy checks deny for an unresolvable principal.
		for _, cat := range []Category{CategoryAccounts, CategoryApplications, CategoryContent, CategorySettings} {
			for _, op := range Operations() {
				if CanPrincipal(tc.p, Resource{Category: cat}, op, true) {
					t.Fatalf("%s: granted %s on %s", tc.name, op, cat)
				}
			}
		}
	}
}

func TestResource_AppendOnlyHistory(t *testing.T) {
	history := Resource{Category: CategoryAccounts, AppendOnly: true}
	for _, role := range []Role{RoleAdmin, RoleContentManager, RoleCRMManager} {
		if history.Allows(role, OpAdd, true) {
			t.Fatalf("%s may add history entries", role)
		}
		if history.Allows(role, OpChange, true) {
			t.Fatalf("%s may change history entries", role)
		}
	}
	if !history.Allows(RoleAdmin, OpView, true) {
		t.Fatalf("admin denied history view")
	}
	if !history.Allows(RoleAdmin, OpDelete, true) {
		t.Fatalf("admin denied history delete")
	}
	if history.Allows(RoleContentManager, OpView, true) {
		t.Fatalf("content_manager may view history")
	}
}

func TestResource_SingletonRules(t *testing.T) {
	settings := Resource{Category: CategorySettings, Singleton: true}
	if settings.Allows(RoleAdmin, OpAdd, true) {
		t.Fatalf("add allowed with live instance")
	}
	if !settings.Allows(RoleAdmin, OpAdd, false) {
		t.Fatalf("bootstrap add denied with no instance")
	}
	for _, role := range []Role{RoleAdmin, RoleContentManager, RoleCRMManager} {
		if settings.Allows(role, OpDelete, false) || settings.Allows(role, OpDelete, true) {
			t.Fatalf("%s may delete a singleton", role)
		}
	}
	if !settings.Allows(RoleContentManager, OpChange, true) {
		t.Fatalf("content_manager denied settings change")
	}
}

func TestResource_ChildInheritsParentDecision(t *testing.T) {
	parent := Resource{Category: CategoryContent}
	child := parent.ForChild()
	for _, role := range []Role{RoleAdmin, RoleContentManager, RoleCRMManager, ""} {
		for _, op := range Operations() {
			if child.Allows(role, op, true) != parent.Allows(role, op, true) {
				t.Fatalf("child decision diverges from parent for %s/%s", role, op)
			}
		}
	}
}
