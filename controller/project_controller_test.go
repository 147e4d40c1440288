// controller/project_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/controller"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/test/mock"
	"github.com/vre-platform/portal-bff/util"
)

type projectControllerMocks struct {
	projectService *mock.MockProjectService
	userService    *mock.MockUserService
	authz          *mock.MockAuthorizationService
	lookup         *mock.MockProjectLookup
	authClient     *mock.MockAuthClient
	metadata       *mock.MockMetadataClient
	provenance     *mock.MockProvenanceClient
}

func setupProjectRouter(identity model.Identity) (*gin.Engine, *projectControllerMocks) {
	m := &projectControllerMocks{
		projectService: &mock.MockProjectService{},
		userService:    &mock.MockUserService{},
		authz:          &mock.MockAuthorizationService{},
		lookup:         &mock.MockProjectLookup{},
		authClient:     &mock.MockAuthClient{},
		metadata:       &mock.MockMetadataClient{},
		provenance:     &mock.MockProvenanceClient{},
	}
	pc := controller.NewProjectController(
		m.projectService,
		m.userService,
		m.authz,
		m.lookup,
		m.authClient,
		m.metadata,
		m.provenance,
	)

	router := gin.New()
	router.Use(identityMiddleware(identity))
	pc.RegisterRoutes(router.Group("/v1"), router.Group("/v2"))
	return router, m
}

func TestListProjectRoles_FetchedFromAuthService(t *testing.T) {
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}
	router, m := setupProjectRouter(admin)

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, admin, "proj1", "users", "*", "view").
		Return(true, nil)
	m.authClient.On("ListProjectRoles", test_mock.Anything, "proj1").
		Return([]string{"proj1-admin", "proj1-contributor", "proj1-collaborator"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/containers/p1/roles", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "proj1-contributor")
	m.authClient.AssertExpectations(t)
}

func TestCreateFolder_DefaultsToCallerNameFolder(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupProjectRouter(contributor)

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "file", "*", "upload").
		Return(true, nil)
	m.authz.On("AllowedByNameFolder", contributor, test_mock.Anything).Return(true)
	m.metadata.On("GetNameFolder", test_mock.Anything, "bob", "proj1", util.ZoneGreenroom).
		Return(&model.Item{ID: "nf1", Type: model.ItemTypeNameFolder, Name: "bob"}, nil)
	m.metadata.On("CreateFolder", test_mock.Anything, test_mock.MatchedBy(func(body map[string]any) bool {
		return body["parent"] == "nf1" && body["parent_path"] == "bob"
	})).Return(&model.Item{ID: "f1", Name: "results"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/containers/p1/folder",
		strings.NewReader(`{"folder_name":"results","zone":"greenroom"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.metadata.AssertExpectations(t)
}

func TestCreateFolder_ExplicitParentSkipsNameFolderLookup(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupProjectRouter(contributor)

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "file", "*", "upload").
		Return(true, nil)
	m.authz.On("AllowedByNameFolder", contributor, test_mock.Anything).Return(true)
	m.metadata.On("CreateFolder", test_mock.Anything, test_mock.Anything).
		Return(&model.Item{ID: "f1", Name: "sub"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/containers/p1/folder",
		strings.NewReader(`{"folder_name":"sub","zone":"greenroom","parent_id":"nf1","parent_path":"bob"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.metadata.AssertNotCalled(t, "GetNameFolder",
		test_mock.Anything, test_mock.Anything, test_mock.Anything, test_mock.Anything)
}
