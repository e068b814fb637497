package auth

import "testing"

func TestRolePermissionsCoverKnownPermissions(t *testing.T) {
	known := map[string]bool{}
	for _, perm := range DefaultPermissions {
		known[perm] = true
	}
	for role, perms := range RolePermissions {
		for _, perm := range perms {
			if !known[perm] {
				t.Fatalf("role %s grants unknown permission %s", role, perm)
			}
		}
	}
}

func TestOnlyAdminAssigns(t *testing.T) {
	hasAssign := func(role string) bool {
		for _, perm := range RolePermissions[role] {
			if perm == PermAppraisalAssign {
				return true
			}
		}
		return false
	}
	if !hasAssign(RoleAdmin) {
		t.Fatal("admin must hold appraisal.assign")
	}
	if hasAssign(RoleManager) || hasAssign(RoleEmployee) {
		t.Fatal("only admin may materialize assignments")
	}
}
