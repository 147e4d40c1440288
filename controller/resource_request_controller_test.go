// controller/resource_request_controller_test.go
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
)

type resourceRequestControllerMocks struct {
	svc    *mock.MockResourceRequestService
	authz  *mock.MockAuthorizationService
	lookup *mock.MockProjectLookup
}

func setupResourceRequestRouter(identity model.Identity) (*gin.Engine, *resourceRequestControllerMocks) {
	m := &resourceRequestControllerMocks{
		svc:    &mock.MockResourceRequestService{},
		authz:  &mock.MockAuthorizationService{},
		lookup: &mock.MockProjectLookup{},
	}
	rc := controller.NewResourceRequestController(m.svc, m.authz, m.lookup)

	router := gin.New()
	router.Use(identityMiddleware(identity))
	rc.RegisterRoutes(router.Group("/v1"), router.Group("/v2"))
	return router, m
}

func TestResourceRequestCreate_NoProjectRoleForbidden(t *testing.T) {
	member := model.Identity{ID: "u1", Username: "bob", Role: model.PlatformRoleMember}
	router, m := setupResourceRequestRouter(member)

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1", Name: "Project One"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, member, "proj1", "resource_request", "*", "create").
		Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/resource-requests",
		strings.NewReader(`{"project_id":"p1","request_for":"SuperSet"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m.svc.AssertNotCalled(t, "Create",
		test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestResourceRequestCreate_MemberAllowed(t *testing.T) {
	member := model.Identity{
		ID:         "u1",
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupResourceRequestRouter(member)

	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1", Name: "Project One"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, member, "proj1", "resource_request", "*", "create").
		Return(true, nil)
	m.svc.On("Create", test_mock.Anything, member,
		model.ResourceRequestCreate{ProjectID: "p1", RequestFor: "SuperSet"}).
		Return(&model.ResourceRequest{ID: "r1", RequestFor: "SuperSet"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v1/resource-requests",
		strings.NewReader(`{"project_id":"p1","request_for":"SuperSet"}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.svc.AssertExpectations(t)
}

func TestResourceRequestComplete_NoRoleForbidden(t *testing.T) {
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}
	router, m := setupResourceRequestRouter(member)

	m.svc.On("Get", test_mock.Anything, "r1").
		Return(&model.ResourceRequest{ID: "r1", ProjectID: "p1"}, nil)
	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, member, "proj1", "resource_request", "*", "update").
		Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/v1/resource-request/r1/complete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m.svc.AssertNotCalled(t, "Complete",
		test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestResourceRequestComplete_ProjectAdminAllowed(t *testing.T) {
	projectAdmin := model.Identity{
		Username:   "carol",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-admin"},
	}
	router, m := setupResourceRequestRouter(projectAdmin)

	m.svc.On("Get", test_mock.Anything, "r1").
		Return(&model.ResourceRequest{ID: "r1", ProjectID: "p1", Username: "bob"}, nil)
	m.lookup.On("GetByID", test_mock.Anything, "p1").
		Return(&model.Project{ID: "p1", Code: "proj1"}, nil)
	m.authz.On("HasPermission", test_mock.Anything, projectAdmin, "proj1", "resource_request", "*", "update").
		Return(true, nil)
	m.svc.On("Complete", test_mock.Anything, projectAdmin, "r1").
		Return(&model.ResourceRequest{ID: "r1", Active: false}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("PUT", "/v1/resource-request/r1/complete", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.svc.AssertExpectations(t)
}
