// service/authz.go
package service

import (
	"context"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/util"
)

// IAuthorizationService is the permission decision procedure combining
// the platform role, the project role derived from realm roles and the
// remote policy engine.
type IAuthorizationService interface {
	HasPermission(ctx context.Context, identity model.Identity, projectCode, resource, zone, operation string) (bool, error)
	AllowedByNameFolder(identity model.Identity, item model.Item) bool
	AllItemsAllowed(identity model.Identity, items []model.Item) bool
}

type AuthorizationService struct {
	authClient client.IAuthClient
}

var _ IAuthorizationService = &AuthorizationService{}

func NewAuthorizationService(authClient client.IAuthClient) *AuthorizationService {
	return &AuthorizationService{authClient: authClient}
}

// HasPermission decides whether the caller may perform operation on
// resource in zone within the project. Decisions are computed per call
// so role changes take effect immediately.
func (s *AuthorizationService) HasPermission(ctx context.Context, identity model.Identity, projectCode, resource, zone, operation string) (bool, error) {
	role := model.RolePlatformAdmin
	if !identity.IsPlatformAdmin() {
		projectRole, ok := identity.ProjectRole(projectCode)
		if !ok {
			return false, nil
		}
		role = projectRole
	}
	return s.authClient.Authorize(ctx, role, resource, zone, operation)
}

// AllowedByNameFolder enforces the data-level ownership rule: a
// contributor may act only inside their own name folder in any zone; a
// collaborator is restricted to their name folder in greenroom only.
func (s *AuthorizationService) AllowedByNameFolder(identity model.Identity, item model.Item) bool {
	if identity.IsPlatformAdmin() {
		return true
	}
	role, ok := identity.ProjectRole(item.ContainerCode)
	if !ok {
		return false
	}
	switch role {
	case model.ProjectRoleAdmin:
		return true
	case model.ProjectRoleContributor:
		return item.NameFolder() == identity.Username
	case model.ProjectRoleCollaborator:
		if item.Zone == util.ZoneGreenroom {
			return item.NameFolder() == identity.Username
		}
		return true
	}
	return false
}

// AllItemsAllowed runs the name-folder rule over a batch,
// short-circuiting on the first denial.
func (s *AuthorizationService) AllItemsAllowed(identity model.Identity, items []model.Item) bool {
	for _, item := range items {
		if !s.AllowedByNameFolder(identity, item) {
			return false
		}
	}
	return true
}
