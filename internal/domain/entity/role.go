// Package entity contains the core business objects of the project.
package entity

// Role represents a position in the platform's role hierarchy.
type Role string

const (
	// RoleSuperAdmin is the platform operator role.
	RoleSuperAdmin Role = "SUPER_ADMIN"
	// RoleCompanyAdmin administers a single tenant company.
	RoleCompanyAdmin Role = "COMPANY_ADMIN"
	// RoleHRManager manages hiring within a company.
	RoleHRManager Role = "HR_MANAGER"
	// RoleHRRecruiter works candidate pipelines within a company.
	RoleHRRecruiter Role = "HR_RECRUITER"
	// RoleCandidate is a job seeker.
	RoleCandidate Role = "CANDIDATE"
)

// roleRanks defines the total order over roles. A higher rank implicitly
// satisfies any lower role requirement.
var roleRanks = map[Role]int{
	RoleSuperAdmin:   5,
	RoleCompanyAdmin: 4,
	RoleHRManager:    3,
	RoleHRRecruiter:  2,
	RoleCandidate:    1,
}

// String returns the string representation of the Role.
func (r Role) String() string {
	return string(r)
}

// IsValid checks if the Role is a valid value.
func (r Role) IsValid() bool {
	_, ok := roleRanks[r]

	return ok
}

// Rank returns the role's position in the hierarchy, 0 for unknown roles.
func (r Role) Rank() int {
	return roleRanks[r]
}

// HasRole reports whether the actual role satisfies the required role:
// rank(actual) >= rank(required). Unknown roles rank below everything.
func HasRole(actual, required Role) bool {
	return actual.Rank() > 0 && actual.Rank() >= required.Rank()
}

// rolePermissions is the static capability table. A role missing a resource
// key has no actions on that resource; the check is fail-closed.
var rolePermissions = map[Role]map[string][]string{
	RoleSuperAdmin: {
		"companies":   {"create", "read", "update", "delete", "manage_users"},
		"jobs":        {"create", "read", "update", "delete", "publish"},
		"candidates":  {"read", "update", "delete", "invite"},
		"assessments": {"create", "read", "update", "delete", "view_results"},
		"analytics":   {"read", "export"},
		"settings":    {"read", "update"},
	},
	RoleCompanyAdmin: {
		"jobs":        {"create", "read", "update", "delete", "publish"},
		"candidates":  {"read", "update", "delete", "invite"},
		"assessments": {"create", "read", "update", "delete", "view_results"},
		"analytics":   {"read", "export"},
		"settings":    {"read", "update"},
	},
	RoleHRManager: {
		"jobs":        {"create", "read", "update", "delete", "publish"},
		"candidates":  {"read", "update", "invite"},
		"assessments": {"create", "read", "view_results"},
		"analytics":   {"read"},
	},
	RoleHRRecruiter: {
		"jobs":        {"read", "update"},
		"candidates":  {"read", "update"},
		"assessments": {"read", "view_results"},
	},
	RoleCandidate: {
		"jobs":         {"read"},
		"profile":      {"read", "update"},
		"applications": {"create", "read"},
	},
}

// HasPermission reports whether the role may perform the action on the
// resource. Pure lookup, safe for concurrent use without synchronization.
func HasPermission(role Role, resource, action string) bool {
	actions, ok := rolePermissions[role][resource]
	if !ok {
		return false
	}
	for _, a := range actions {
		if a == action {
			return true
		}
	}

	return false
}

// HRSignupRoles lists the roles an HR account may be created with.
// SUPER_ADMIN is never assignable through signup.
func HRSignupRoles() []Role {
	return []Role{RoleCompanyAdmin, RoleHRManager, RoleHRRecruiter}
}

// IsHRSignupRole reports whether the role may be requested at HR signup.
func IsHRSignupRole(r Role) bool {
	for _, allowed := range HRSignupRoles() {
		if r == allowed {
			return true
		}
	}

	return false
}
