package auth

import (
	"strings"
)

type Role string

// Roles
const (
	RolePlatformAdmin Role = "platformAdmin"
	RoleSchoolAdmin   Role = "schoolAdmin"
	RoleLecturer      Role = "lecturer"
	RoleStudent       Role = "student"
)

var (
	AllRoles = []Role{RolePlatformAdmin, RoleSchoolAdmin, RoleLecturer, RoleStudent}

	// tenantScopedRoles only ever see the data of their own school.
	tenantScopedRoles = map[Role]bool{
		RoleSchoolAdmin: true,
		RoleStudent:     true,
	}
)

// ParseRole returns the Role matching s (case-insensitive), or false.
func ParseRole(s string) (Role, bool) {
	s = strings.TrimSpace(s)
	for _, r := range AllRoles {
		if strings.EqualFold(string(r), s) {
			return r, true
		}
	}
	return "", false
}

func (r Role) IsTenantScoped() bool {
	return tenantScopedRoles[r]
}

// User is the authenticated user as the auth collaborator exposes it.
type User struct {
	ID       string `json:"_id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Role     Role   `json:"role"`
	SchoolID string `json:"schoolId,omitempty"`
}

func (u User) IsPlatformAdmin() bool { return u.Role == RolePlatformAdmin }
func (u User) IsSchoolAdmin() bool   { return u.Role == RoleSchoolAdmin }
func (u User) IsStudent() bool       { return u.Role == RoleStudent }
func (u User) IsLecturer() bool      { return u.Role == RoleLecturer }
func (u User) IsTenantScoped() bool  { return u.Role.IsTenantScoped() }
