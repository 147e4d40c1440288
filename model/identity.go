package model

import "strings"

// Platform roles carried by the auth service user record.
const (
	PlatformRoleAdmin        = "admin"
	PlatformRoleMember       = "member"
	PlatformRoleCollaborator = "collaborator"
	PlatformRoleContributor  = "contributor"
	PlatformRoleVisitor      = "visitor"
)

// Project roles encoded in realm roles as <project_code>-<role>.
const (
	ProjectRoleAdmin        = "admin"
	ProjectRoleCollaborator = "collaborator"
	ProjectRoleContributor  = "contributor"
)

// RolePlatformAdmin is the effective role passed to the policy engine
// for platform administrators.
const RolePlatformAdmin = "platform_admin"

// Identity is the fully resolved caller of a request. It is built per
// request by the auth middleware and never persisted.
type Identity struct {
	ID         string   `json:"id"`
	Username   string   `json:"username"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Role       string   `json:"role"`
	RealmRoles []string `json:"realm_roles"`
}

// IsPlatformAdmin reports whether the caller is a platform administrator.
func (i Identity) IsPlatformAdmin() bool {
	return i.Role == PlatformRoleAdmin
}

// ProjectRole derives the caller's role in the given project from the
// realm roles. The second return value is false when the caller has no
// role in the project.
func (i Identity) ProjectRole(projectCode string) (string, bool) {
	if projectCode == "" {
		return "", false
	}
	prefix := projectCode + "-"
	for _, r := range i.RealmRoles {
		if strings.HasPrefix(r, prefix) {
			return strings.TrimPrefix(r, prefix), true
		}
	}
	return "", false
}
