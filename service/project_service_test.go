// service/project_service_test.go
package service_test

import (
	"context"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/test/mock"
	"github.com/vre-platform/portal-bff/util"
)

type projectServiceMocks struct {
	projectClient  *mock.MockProjectClient
	authClient     *mock.MockAuthClient
	metadataClient *mock.MockMetadataClient
	objectStore    *mock.MockObjectStoreClient
	directory      *mock.MockDirectoryClient
	lookup         *mock.MockProjectLookup
}

func newProjectService() (*service.ProjectService, *projectServiceMocks) {
	m := &projectServiceMocks{
		projectClient:  &mock.MockProjectClient{},
		authClient:     &mock.MockAuthClient{},
		metadataClient: &mock.MockMetadataClient{},
		objectStore:    &mock.MockObjectStoreClient{},
		directory:      &mock.MockDirectoryClient{},
		lookup:         &mock.MockProjectLookup{},
	}
	svc := service.NewProjectService(
		m.projectClient,
		m.authClient,
		m.metadataClient,
		m.objectStore,
		m.directory,
		m.lookup,
		util.NewValidationUtil(),
	)
	return svc, m
}

func TestCreateProject_Success(t *testing.T) {
	svc, m := newProjectService()
	ctx := context.Background()
	identity := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	req := model.ProjectCreateRequest{
		Name:         "Neuro Imaging",
		Code:         "neuroimg",
		Description:  "imaging cohort",
		Tags:         []string{"mri"},
		Discoverable: true,
	}
	created := &model.Project{ID: "p1", Code: "neuroimg", Name: "Neuro Imaging"}

	m.projectClient.On("GetProject", test_mock.Anything, "neuroimg").
		Return(nil, bff_errors.ErrProjectNotFound)
	m.projectClient.On("CreateProject", test_mock.Anything, test_mock.Anything).
		Return(created, nil)
	m.objectStore.On("EnsureBucket", test_mock.Anything, "gr-neuroimg").Return(nil)
	m.objectStore.On("EnsureBucket", test_mock.Anything, "core-neuroimg").Return(nil)
	m.objectStore.On("CreateProjectPolicies", test_mock.Anything, "neuroimg").Return(nil)
	m.directory.On("CreateProjectGroup", "neuroimg", "imaging cohort").Return(nil)
	m.authClient.On("CreateProjectRoles", test_mock.Anything, "neuroimg").Return(nil)
	m.authClient.On("ListPlatformAdmins", test_mock.Anything).
		Return([]model.AuthUser{{Username: "root"}, {Username: "ops"}}, nil)
	m.metadataClient.On("BatchCreateNameFolders",
		test_mock.Anything, []string{"root", "ops"}, "neuroimg", []int{util.ZoneGreenroom, util.ZoneCore}).
		Return(nil)
	m.lookup.On("Invalidate", test_mock.Anything, created).Return()

	project, err := svc.CreateProject(ctx, identity, req)
	assert.NoError(t, err)
	assert.Equal(t, "neuroimg", project.Code)

	m.projectClient.AssertExpectations(t)
	m.objectStore.AssertExpectations(t)
	m.directory.AssertExpectations(t)
	m.authClient.AssertExpectations(t)
	m.metadataClient.AssertExpectations(t)

	// No icon was supplied.
	m.projectClient.AssertNotCalled(t, "UploadLogo", test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestCreateProject_DuplicateCode(t *testing.T) {
	svc, m := newProjectService()
	identity := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	m.projectClient.On("GetProject", test_mock.Anything, "taken").
		Return(&model.Project{ID: "p1", Code: "taken"}, nil)

	_, err := svc.CreateProject(context.Background(), identity, model.ProjectCreateRequest{
		Name: "Taken",
		Code: "taken",
	})
	assert.ErrorIs(t, err, bff_errors.ErrProjectConflict)

	m.projectClient.AssertNotCalled(t, "CreateProject", test_mock.Anything, test_mock.Anything)
	m.objectStore.AssertNotCalled(t, "EnsureBucket", test_mock.Anything, test_mock.Anything)
}

func TestCreateProject_InvalidCode(t *testing.T) {
	svc, m := newProjectService()
	identity := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	_, err := svc.CreateProject(context.Background(), identity, model.ProjectCreateRequest{
		Name: "Bad",
		Code: "Bad Code!",
	})
	assert.ErrorIs(t, err, bff_errors.ErrInvalidProjectCode)

	// Validation failures never reach any downstream service.
	m.projectClient.AssertNotCalled(t, "GetProject", test_mock.Anything, test_mock.Anything)
	m.projectClient.AssertNotCalled(t, "CreateProject", test_mock.Anything, test_mock.Anything)
}

func TestUpdateProject_InvalidatesCache(t *testing.T) {
	svc, m := newProjectService()

	updated := &model.Project{ID: "p1", GlobalEntityID: "geid1", Code: "neuroimg", Name: "Renamed"}
	m.projectClient.On("UpdateProject", test_mock.Anything, "geid1", test_mock.Anything).
		Return(updated, nil)
	m.lookup.On("Invalidate", test_mock.Anything, updated).Return()

	project, err := svc.UpdateProject(context.Background(), "geid1", model.ProjectUpdateRequest{Name: "Renamed"})
	assert.NoError(t, err)
	assert.Equal(t, "Renamed", project.Name)
	m.lookup.AssertCalled(t, "Invalidate", test_mock.Anything, updated)
}

func TestListProjects_ForcesDiscoverableForNonAdmin(t *testing.T) {
	svc, m := newProjectService()
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}

	m.projectClient.On("ListProjects", test_mock.Anything, test_mock.MatchedBy(func(q url.Values) bool {
		return q.Get("discoverable") == "true"
	})).Return(nil, nil)

	_, err := svc.ListProjects(context.Background(), member, url.Values{})
	assert.NoError(t, err)
	m.projectClient.AssertExpectations(t)
}
