// service/user_service_test.go
package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/test/mock"
	"github.com/vre-platform/portal-bff/util"
)

type userServiceMocks struct {
	authClient     *mock.MockAuthClient
	metadataClient *mock.MockMetadataClient
	projectClient  *mock.MockProjectClient
	directory      *mock.MockDirectoryClient
	lookup         *mock.MockProjectLookup
	emailService   *mock.MockEmailService
}

func newUserService() (*service.UserService, *userServiceMocks) {
	m := &userServiceMocks{
		authClient:     &mock.MockAuthClient{},
		metadataClient: &mock.MockMetadataClient{},
		projectClient:  &mock.MockProjectClient{},
		directory:      &mock.MockDirectoryClient{},
		lookup:         &mock.MockProjectLookup{},
		emailService:   &mock.MockEmailService{},
	}
	svc := service.NewUserService(
		m.authClient,
		m.metadataClient,
		m.projectClient,
		m.directory,
		m.lookup,
		m.emailService,
	)
	return svc, m
}

func TestGetUser_SelfAlwaysAllowed(t *testing.T) {
	svc, m := newUserService()
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}

	m.authClient.On("GetUser", test_mock.Anything, "bob").
		Return(&model.AuthUser{Username: "bob"}, nil)

	user, err := svc.GetUser(context.Background(), member, "bob", "")
	assert.NoError(t, err)
	assert.Equal(t, "bob", user.Username)
}

func TestGetUser_CrossUserNeedsProjectAdmin(t *testing.T) {
	svc, m := newUserService()
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}

	_, err := svc.GetUser(context.Background(), contributor, "alice", "proj1")
	assert.ErrorIs(t, err, bff_errors.ErrPermissionDenied)
	m.authClient.AssertNotCalled(t, "GetUser", test_mock.Anything, test_mock.Anything)

	projectAdmin := model.Identity{
		Username:   "carol",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-admin"},
	}
	m.authClient.On("GetUser", test_mock.Anything, "alice").
		Return(&model.AuthUser{Username: "alice"}, nil)

	user, err := svc.GetUser(context.Background(), projectAdmin, "alice", "proj1")
	assert.NoError(t, err)
	assert.Equal(t, "alice", user.Username)
}

func TestChangeMemberRole_SelfChangeRefused(t *testing.T) {
	svc, m := newUserService()
	admin := model.Identity{
		Username:   "alice",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-admin"},
	}

	err := svc.ChangeMemberRole(context.Background(), admin, "p1", "alice", model.MemberChangeRequest{
		OldRole: model.ProjectRoleContributor,
		NewRole: model.ProjectRoleAdmin,
	})
	assert.ErrorIs(t, err, bff_errors.ErrSelfRoleChange)
	m.authClient.AssertNotCalled(t, "ChangeRole",
		test_mock.Anything, test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestAddMember_RegularUserJoinsDirectoryGroup(t *testing.T) {
	svc, m := newUserService()
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1", Name: "Project One"}, nil)
	m.authClient.On("GetUser", test_mock.Anything, "bob").
		Return(&model.AuthUser{Username: "bob", Email: "bob@site.org", Role: model.PlatformRoleMember}, nil)
	m.directory.On("AddUserToGroup", "bob", "proj1").Return(nil)
	m.authClient.On("AssignRole", test_mock.Anything, "bob@site.org", "proj1-contributor").Return(nil)
	m.emailService.On("Send",
		test_mock.Anything, test_mock.Anything, []string{"bob@site.org"}, "project/invite.html", test_mock.Anything).
		Return(nil)

	err := svc.AddMember(context.Background(), admin, "p1", model.MemberAddRequest{
		Username: "bob",
		Role:     model.ProjectRoleContributor,
	})
	assert.NoError(t, err)
	m.directory.AssertExpectations(t)
	m.authClient.AssertExpectations(t)
	m.emailService.AssertExpectations(t)
}

func TestFirstLogin_UsernameMismatch(t *testing.T) {
	svc, m := newUserService()
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}

	err := svc.FirstLogin(context.Background(), member, model.ADUserUpdateRequest{
		Username: "alice",
		Email:    "alice@site.org",
	})
	assert.ErrorIs(t, err, bff_errors.ErrUsernameMismatch)
	m.authClient.AssertNotCalled(t, "GetInvitations", test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestFirstLogin_AppliesProjectInvitation(t *testing.T) {
	svc, m := newUserService()
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}

	invitation := model.Invitation{
		ID:          "i1",
		Email:       "bob@site.org",
		ProjectCode: "proj1",
		ProjectRole: model.ProjectRoleContributor,
	}
	m.authClient.On("GetInvitations", test_mock.Anything, "bob@site.org", "pending").
		Return([]model.Invitation{invitation}, nil)
	m.authClient.On("AssignRole", test_mock.Anything, "bob@site.org", "proj1-contributor").Return(nil)
	m.metadataClient.On("BatchCreateNameFolders",
		test_mock.Anything, []string{"bob"}, "proj1", []int{util.ZoneGreenroom, util.ZoneCore}).
		Return(nil)
	m.authClient.On("UpdateInvitation", test_mock.Anything, "i1", "complete").Return(nil)
	m.authClient.On("UpdateAccountStatus", test_mock.Anything, "enable", "bob@site.org").Return(nil)

	err := svc.FirstLogin(context.Background(), member, model.ADUserUpdateRequest{
		Username: "bob",
		Email:    "bob@site.org",
	})
	assert.NoError(t, err)
	m.authClient.AssertExpectations(t)
	m.metadataClient.AssertExpectations(t)
}

func TestUpdateAccountStatus_PathMismatchRefused(t *testing.T) {
	svc, m := newUserService()
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	m.authClient.On("GetUserByEmail", test_mock.Anything, "alice@site.org").
		Return(&model.AuthUser{Username: "alice", Email: "alice@site.org"}, nil)

	_, err := svc.UpdateAccountStatus(context.Background(), admin, "bob", model.AccountRequest{
		OperationType: "disable",
		UserEmail:     "alice@site.org",
	})
	assert.ErrorIs(t, err, bff_errors.ErrUsernameMismatch)
	m.authClient.AssertNotCalled(t, "UpdateAccountStatus",
		test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestUpdateAccountStatus_ResolvesTargetByID(t *testing.T) {
	svc, m := newUserService()
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	m.authClient.On("GetUserByID", test_mock.Anything, "u2").
		Return(&model.AuthUser{
			ID:       "u2",
			Username: "bob",
			Email:    "bob@site.org",
			Role:     model.PlatformRoleMember,
		}, nil)
	m.authClient.On("UpdateAccountStatus", test_mock.Anything, "disable", "bob@site.org").Return(nil)
	m.emailService.On("Send",
		test_mock.Anything, test_mock.Anything, []string{"bob@site.org"}, "account/disable.html", test_mock.Anything).
		Return(nil)

	target, err := svc.UpdateAccountStatus(context.Background(), admin, "bob", model.AccountRequest{
		OperationType: "disable",
		UserID:        "u2",
	})
	assert.NoError(t, err)
	assert.Equal(t, "bob", target.Username)
	m.authClient.AssertExpectations(t)
	m.emailService.AssertExpectations(t)
}
