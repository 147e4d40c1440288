// service/user_service.go
package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/util"
)

// Invitation lifecycle statuses kept by the auth service.
const (
	invitationPending  = "pending"
	invitationComplete = "complete"
)

// IUserService handles user profiles, account state transitions and
// project membership.
type IUserService interface {
	GetUser(ctx context.Context, identity model.Identity, username, projectCode string) (*model.AuthUser, error)
	UpdateAccountStatus(ctx context.Context, identity model.Identity, username string, req model.AccountRequest) (*model.AuthUser, error)
	FirstLogin(ctx context.Context, identity model.Identity, req model.ADUserUpdateRequest) error
	AddMember(ctx context.Context, identity model.Identity, projectID string, req model.MemberAddRequest) error
	ChangeMemberRole(ctx context.Context, identity model.Identity, projectID, username string, req model.MemberChangeRequest) error
	RemoveMember(ctx context.Context, identity model.Identity, projectID, username string) error
}

type UserService struct {
	authClient     client.IAuthClient
	metadataClient client.IMetadataClient
	projectClient  client.IProjectClient
	directory      client.IDirectoryClient
	lookup         IProjectLookup
	emailService   IEmailService
}

var _ IUserService = &UserService{}

func NewUserService(
	authClient client.IAuthClient,
	metadataClient client.IMetadataClient,
	projectClient client.IProjectClient,
	directory client.IDirectoryClient,
	lookup IProjectLookup,
	emailService IEmailService,
) *UserService {
	return &UserService{
		authClient:     authClient,
		metadataClient: metadataClient,
		projectClient:  projectClient,
		directory:      directory,
		lookup:         lookup,
		emailService:   emailService,
	}
}

// GetUser returns a user profile. Callers may always fetch their own;
// anyone else requires project admin rights in the given project, or
// platform admin.
func (s *UserService) GetUser(ctx context.Context, identity model.Identity, username, projectCode string) (*model.AuthUser, error) {
	if identity.Username != username && !identity.IsPlatformAdmin() {
		role, ok := identity.ProjectRole(projectCode)
		if !ok || role != model.ProjectRoleAdmin {
			return nil, bff_errors.ErrPermissionDenied
		}
	}
	return s.authClient.GetUser(ctx, username)
}

// UpdateAccountStatus enables or disables a user account and notifies
// the user. Enabling a platform admin recreates their name folders in
// every project and both zones.
func (s *UserService) UpdateAccountStatus(ctx context.Context, identity model.Identity, username string, req model.AccountRequest) (*model.AuthUser, error) {
	var target *model.AuthUser
	var err error
	if req.UserEmail != "" {
		target, err = s.authClient.GetUserByEmail(ctx, req.UserEmail)
	} else {
		target, err = s.authClient.GetUserByID(ctx, req.UserID)
	}
	if err != nil {
		return nil, err
	}
	if username != "" && target.Username != username {
		return nil, bff_errors.ErrUsernameMismatch
	}

	if err := s.authClient.UpdateAccountStatus(ctx, req.OperationType, target.Email); err != nil {
		return nil, err
	}

	template := fmt.Sprintf("account/%s.html", req.OperationType)
	subject := "Your platform account has been " + req.OperationType + "d"
	kwargs := map[string]any{
		"username":   target.Username,
		"admin":      identity.Username,
		"portal_url": config.GetString("email.portalURL"),
	}
	if err := s.emailService.Send(ctx, subject, []string{target.Email}, template, kwargs); err != nil {
		return nil, err
	}

	if req.OperationType == "enable" && target.Role == model.PlatformRoleAdmin {
		if err := s.createAdminNameFolders(ctx, target.Username); err != nil {
			return nil, err
		}
	}

	logger.Info("Account status updated",
		zap.String("operation", req.OperationType),
		zap.String("target", target.Username),
		zap.String("admin", identity.Username))
	return target, nil
}

// createAdminNameFolders provisions a platform admin's name folder in
// every existing project and both zones.
func (s *UserService) createAdminNameFolders(ctx context.Context, username string) error {
	resp, err := s.projectClient.ListProjects(ctx, nil)
	if err != nil {
		return err
	}
	codes, err := projectCodesFrom(resp.Body)
	if err != nil {
		return err
	}
	zones := []int{util.ZoneGreenroom, util.ZoneCore}
	for _, code := range codes {
		if err := s.metadataClient.BatchCreateNameFolders(ctx, []string{username}, code, zones); err != nil {
			return err
		}
	}
	return nil
}

// FirstLogin completes the caller's own profile after their first
// authentication, applying any pending invitation.
func (s *UserService) FirstLogin(ctx context.Context, identity model.Identity, req model.ADUserUpdateRequest) error {
	if identity.Username != req.Username {
		return bff_errors.ErrUsernameMismatch
	}

	invitations, err := s.authClient.GetInvitations(ctx, req.Email, invitationPending)
	if err != nil {
		return err
	}
	for _, invitation := range invitations {
		if err := s.applyInvitation(ctx, req, invitation); err != nil {
			return err
		}
		if err := s.authClient.UpdateInvitation(ctx, invitation.ID, invitationComplete); err != nil {
			return err
		}
	}

	return s.authClient.UpdateAccountStatus(ctx, "enable", req.Email)
}

func (s *UserService) applyInvitation(ctx context.Context, req model.ADUserUpdateRequest, invitation model.Invitation) error {
	if invitation.PlatformRole == model.PlatformRoleAdmin {
		if err := s.authClient.AssignPlatformAdmin(ctx, req.Email); err != nil {
			return err
		}
		return s.createAdminNameFolders(ctx, req.Username)
	}

	if invitation.ProjectCode == "" || invitation.ProjectRole == "" {
		return nil
	}
	realmRole := invitation.ProjectCode + "-" + invitation.ProjectRole
	if err := s.authClient.AssignRole(ctx, req.Email, realmRole); err != nil {
		return err
	}
	zones := []int{util.ZoneGreenroom, util.ZoneCore}
	return s.metadataClient.BatchCreateNameFolders(ctx, []string{req.Username}, invitation.ProjectCode, zones)
}

// AddMember adds a user to a project: directory group membership for
// regular users, realm role assignment and an invitation email.
func (s *UserService) AddMember(ctx context.Context, identity model.Identity, projectID string, req model.MemberAddRequest) error {
	if !util.ValidProjectRole(req.Role) {
		return bff_errors.ErrInvalidProjectRole
	}
	project, err := s.lookup.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	target, err := s.authClient.GetUser(ctx, req.Username)
	if err != nil {
		return err
	}

	if target.Role != model.PlatformRoleAdmin {
		if err := s.directory.AddUserToGroup(target.Username, project.Code); err != nil {
			return err
		}
	}
	if err := s.authClient.AssignRole(ctx, target.Email, project.Code+"-"+req.Role); err != nil {
		return err
	}

	kwargs := map[string]any{
		"username":     target.Username,
		"project_name": project.Name,
		"role":         req.Role,
		"inviter":      identity.Username,
		"portal_url":   config.GetString("email.portalURL"),
	}
	return s.emailService.Send(ctx, "You have been added to project "+project.Name,
		[]string{target.Email}, "project/invite.html", kwargs)
}

// ChangeMemberRole reassigns a member's project role. Users may never
// change their own role.
func (s *UserService) ChangeMemberRole(ctx context.Context, identity model.Identity, projectID, username string, req model.MemberChangeRequest) error {
	if identity.Username == username {
		return bff_errors.ErrSelfRoleChange
	}
	if !util.ValidProjectRole(req.OldRole) || !util.ValidProjectRole(req.NewRole) {
		return bff_errors.ErrInvalidProjectRole
	}
	project, err := s.lookup.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	target, err := s.authClient.GetUser(ctx, username)
	if err != nil {
		return err
	}

	oldRole := project.Code + "-" + req.OldRole
	newRole := project.Code + "-" + req.NewRole
	if err := s.authClient.ChangeRole(ctx, target.Email, oldRole, newRole); err != nil {
		return err
	}

	kwargs := map[string]any{
		"username":     target.Username,
		"project_name": project.Name,
		"role":         req.NewRole,
		"admin":        identity.Username,
		"portal_url":   config.GetString("email.portalURL"),
	}
	return s.emailService.Send(ctx, "Your role in project "+project.Name+" has changed",
		[]string{target.Email}, "project/role_change.html", kwargs)
}

// RemoveMember discovers the member's current project role from their
// realm roles, then removes group membership and the realm role.
func (s *UserService) RemoveMember(ctx context.Context, identity model.Identity, projectID, username string) error {
	project, err := s.lookup.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	realmRoles, err := s.authClient.GetUserRealmRoles(ctx, username)
	if err != nil {
		return err
	}

	prefix := project.Code + "-"
	currentRole := ""
	for _, role := range realmRoles {
		if strings.HasPrefix(role, prefix) {
			currentRole = role
			break
		}
	}
	if currentRole == "" {
		return bff_errors.ErrUserNotFound
	}

	if err := s.directory.RemoveUserFromGroup(username, project.Code); err != nil {
		return err
	}
	if err := s.authClient.RemoveRole(ctx, username, currentRole); err != nil {
		return err
	}

	logger.Info("Member removed from project",
		zap.String("username", username),
		zap.String("project_code", project.Code),
		zap.String("admin", identity.Username))
	return nil
}

func projectCodesFrom(body []byte) ([]string, error) {
	var out struct {
		Result []struct {
			Code string `json:"code"`
		} `json:"result"`
	}
	if err := json.Unmarshal(body, &out); err != nil {
		return nil, fmt.Errorf("failed to decode project listing: %w", err)
	}
	codes := make([]string, 0, len(out.Result))
	for _, project := range out.Result {
		codes = append(codes, project.Code)
	}
	return codes, nil
}
