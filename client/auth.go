// client/auth.go
package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

// IAuthClient talks to the auth service: canonical users, the policy
// engine, realm roles, accounts and invitations.
type IAuthClient interface {
	GetUser(ctx context.Context, username string) (*model.AuthUser, error)
	GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error)
	GetUserByID(ctx context.Context, userID string) (*model.AuthUser, error)
	ListProjectUsers(ctx context.Context, projectCode string, page, pageSize int) ([]model.AuthUser, int, error)
	ListProjectRoles(ctx context.Context, projectCode string) ([]string, error)
	ListPlatformAdmins(ctx context.Context) ([]model.AuthUser, error)
	Authorize(ctx context.Context, role, resource, zone, operation string) (bool, error)
	CreateProjectRoles(ctx context.Context, projectCode string) error
	AssignRole(ctx context.Context, email, realmRole string) error
	RemoveRole(ctx context.Context, username, realmRole string) error
	ChangeRole(ctx context.Context, email, oldRealmRole, newRealmRole string) error
	GetUserRealmRoles(ctx context.Context, username string) ([]string, error)
	UpdateAccountStatus(ctx context.Context, operationType, userEmail string) error
	AssignPlatformAdmin(ctx context.Context, email string) error
	GetInvitations(ctx context.Context, email, status string) ([]model.Invitation, error)
	UpdateInvitation(ctx context.Context, invitationID, status string) error
}

type AuthClient struct {
	http *HTTPClient
	base string
}

var _ IAuthClient = &AuthClient{}

func NewAuthClient(http *HTTPClient) *AuthClient {
	return &AuthClient{http: http, base: config.GetString("services.auth")}
}

type authUserResponse struct {
	Result *model.AuthUser `json:"result"`
}

type authUserListResponse struct {
	Result []model.AuthUser `json:"result"`
	Total  int              `json:"total"`
}

type authorizeResponse struct {
	Result struct {
		HasPermission bool `json:"has_permission"`
	} `json:"result"`
}

type invitationListResponse struct {
	Result []model.Invitation `json:"result"`
}

func (a *AuthClient) GetUser(ctx context.Context, username string) (*model.AuthUser, error) {
	query := url.Values{}
	query.Set("username", username)
	query.Set("exact", "true")
	return a.fetchUser(ctx, query)
}

func (a *AuthClient) GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("exact", "true")
	return a.fetchUser(ctx, query)
}

func (a *AuthClient) GetUserByID(ctx context.Context, userID string) (*model.AuthUser, error) {
	query := url.Values{}
	query.Set("id", userID)
	return a.fetchUser(ctx, query)
}

func (a *AuthClient) fetchUser(ctx context.Context, query url.Values) (*model.AuthUser, error) {
	var out authUserResponse
	err := a.http.Get(ctx, a.base+"/admin/user", query, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrUserNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.Username == "" {
		return nil, bff_errors.ErrUserNotFound
	}
	return out.Result, nil
}

func (a *AuthClient) ListProjectUsers(ctx context.Context, projectCode string, page, pageSize int) ([]model.AuthUser, int, error) {
	query := url.Values{}
	query.Set("project_code", projectCode)
	query.Set("page", fmt.Sprintf("%d", page))
	query.Set("page_size", fmt.Sprintf("%d", pageSize))
	var out authUserListResponse
	if err := a.http.Get(ctx, a.base+"/admin/roles/users", query, &out); err != nil {
		return nil, 0, err
	}
	return out.Result, out.Total, nil
}

// ListProjectRoles lists the realm roles registered for a project.
func (a *AuthClient) ListProjectRoles(ctx context.Context, projectCode string) ([]string, error) {
	query := url.Values{}
	query.Set("project_code", projectCode)
	var out struct {
		Result []string `json:"result"`
	}
	if err := a.http.Get(ctx, a.base+"/admin/roles", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (a *AuthClient) ListPlatformAdmins(ctx context.Context) ([]model.AuthUser, error) {
	query := url.Values{}
	query.Set("role", model.PlatformRoleAdmin)
	var out authUserListResponse
	if err := a.http.Get(ctx, a.base+"/admin/users", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// Authorize asks the remote policy engine for an allow/deny decision.
// Decisions are never cached so role changes take effect immediately.
func (a *AuthClient) Authorize(ctx context.Context, role, resource, zone, operation string) (bool, error) {
	query := url.Values{}
	query.Set("role", role)
	query.Set("resource", resource)
	query.Set("zone", zone)
	query.Set("operation", operation)
	var out authorizeResponse
	if err := a.http.Get(ctx, a.base+"/authorize", query, &out); err != nil {
		return false, err
	}
	return out.Result.HasPermission, nil
}

// CreateProjectRoles creates the three realm roles of a new project.
func (a *AuthClient) CreateProjectRoles(ctx context.Context, projectCode string) error {
	body := map[string]any{
		"project_code": projectCode,
		"project_roles": []string{
			model.ProjectRoleAdmin,
			model.ProjectRoleContributor,
			model.ProjectRoleCollaborator,
		},
	}
	return a.http.Post(ctx, a.base+"/admin/users/realm-roles", body, nil)
}

func (a *AuthClient) AssignRole(ctx context.Context, email, realmRole string) error {
	body := map[string]any{"email": email, "role_name": realmRole}
	return a.http.Post(ctx, a.base+"/user/project-role", body, nil)
}

func (a *AuthClient) RemoveRole(ctx context.Context, username, realmRole string) error {
	body := map[string]any{"username": username, "role_name": realmRole}
	return a.http.Delete(ctx, a.base+"/user/project-role", body, nil)
}

func (a *AuthClient) ChangeRole(ctx context.Context, email, oldRealmRole, newRealmRole string) error {
	body := map[string]any{
		"email":         email,
		"old_role_name": oldRealmRole,
		"new_role_name": newRealmRole,
	}
	return a.http.Put(ctx, a.base+"/user/project-role", body, nil)
}

func (a *AuthClient) GetUserRealmRoles(ctx context.Context, username string) ([]string, error) {
	query := url.Values{}
	query.Set("username", username)
	var out struct {
		Result []struct {
			Name string `json:"name"`
		} `json:"result"`
	}
	if err := a.http.Get(ctx, a.base+"/admin/user/realm-roles", query, &out); err != nil {
		return nil, err
	}
	roles := make([]string, 0, len(out.Result))
	for _, r := range out.Result {
		roles = append(roles, r.Name)
	}
	return roles, nil
}

func (a *AuthClient) UpdateAccountStatus(ctx context.Context, operationType, userEmail string) error {
	body := map[string]any{
		"operation_type": operationType,
		"user_email":     userEmail,
	}
	return a.http.Put(ctx, a.base+"/admin/user/account", body, nil)
}

func (a *AuthClient) AssignPlatformAdmin(ctx context.Context, email string) error {
	body := map[string]any{"email": email, "role_name": "platform-admin"}
	return a.http.Post(ctx, a.base+"/user/platform-role", body, nil)
}

func (a *AuthClient) GetInvitations(ctx context.Context, email, status string) ([]model.Invitation, error) {
	query := url.Values{}
	query.Set("email", email)
	query.Set("status", status)
	var out invitationListResponse
	if err := a.http.Get(ctx, a.base+"/invitations", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (a *AuthClient) UpdateInvitation(ctx context.Context, invitationID, status string) error {
	body := map[string]any{"status": status}
	return a.http.Put(ctx, a.base+"/invitation/"+invitationID, body, nil)
}
