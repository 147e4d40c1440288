// controller/file_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/controller"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/test/mock"
	"github.com/vre-platform/portal-bff/util"
)

type fileControllerMocks struct {
	authz    *mock.MockAuthorizationService
	lookup   *mock.MockProjectLookup
	metadata *mock.MockMetadataClient
	download *mock.MockDownloadClient
}

func setupFileRouter(identity model.Identity) (*gin.Engine, *fileControllerMocks) {
	m := &fileControllerMocks{
		authz:    &mock.MockAuthorizationService{},
		lookup:   &mock.MockProjectLookup{},
		metadata: &mock.MockMetadataClient{},
		download: &mock.MockDownloadClient{},
	}
	fc := controller.NewFileController(
		service.NewAttributeService(m.metadata, m.authz),
		m.authz,
		m.lookup,
		m.metadata,
		m.download,
	)

	router := gin.New()
	router.Use(identityMiddleware(identity))
	fc.RegisterRoutes(router.Group("/v1"), router.Group("/v2"))
	return router, m
}

func TestTags_NameFolderViolationBlocksUpdate(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupFileRouter(contributor)

	item := &model.Item{
		ID: "f1", Type: model.ItemTypeFile, Name: "data.csv",
		ContainerCode: "proj1", Zone: util.ZoneGreenroom, ParentPath: "alice",
	}
	m.metadata.On("GetItem", test_mock.Anything, "f1").Return(item, nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "tags", "greenroom", "create").
		Return(true, nil)
	m.authz.On("AllowedByNameFolder", contributor, *item).Return(false)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/f1/tags", strings.NewReader(`{"tags":["x"]}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m.metadata.AssertNotCalled(t, "UpdateItemTags",
		test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestTags_SingleItemSuccess(t *testing.T) {
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}
	router, m := setupFileRouter(admin)

	item := &model.Item{
		ID: "f1", Type: model.ItemTypeFile, Name: "data.csv",
		ContainerCode: "proj1", Zone: util.ZoneCore, ParentPath: "root",
	}
	m.metadata.On("GetItem", test_mock.Anything, "f1").Return(item, nil)
	m.authz.On("HasPermission", test_mock.Anything, admin, "proj1", "tags", "core", "create").
		Return(true, nil)
	m.authz.On("AllowedByNameFolder", admin, *item).Return(true)
	m.metadata.On("UpdateItemTags", test_mock.Anything, "f1", []string{"x", "y"}).
		Return(item, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/f1/tags", strings.NewReader(`{"tags":["x","y"]}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.metadata.AssertExpectations(t)
}

func TestTags_EntityDispatchesToBatch(t *testing.T) {
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}
	router, m := setupFileRouter(admin)

	items := []model.Item{
		{ID: "f1", Type: model.ItemTypeFile, ContainerCode: "proj1", Zone: util.ZoneGreenroom, ParentPath: "root"},
		{ID: "f2", Type: model.ItemTypeFile, ContainerCode: "proj1", Zone: util.ZoneGreenroom, ParentPath: "root"},
	}
	m.metadata.On("GetItems", test_mock.Anything, []string{"f1", "f2"}).Return(items, nil)
	m.authz.On("HasPermission", test_mock.Anything, admin, "proj1", "tags", "greenroom", "create").
		Return(true, nil)
	m.authz.On("AllowedByNameFolder", admin, test_mock.Anything).Return(true)
	m.metadata.On("BatchTagItems", test_mock.Anything, []string{"f1", "f2"}, []string{"x"}).
		Return(nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/entity/tags",
		strings.NewReader(`{"item_ids":["f1","f2"],"tags":["x"]}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.metadata.AssertExpectations(t)
}

func TestPreDownload_DeniedFileBlocksRequest(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupFileRouter(contributor)

	item := model.Item{
		ID: "f1", Type: model.ItemTypeFile,
		ContainerCode: "proj1", Zone: util.ZoneGreenroom, ParentPath: "alice",
	}
	m.metadata.On("GetItems", test_mock.Anything, []string{"f1"}).
		Return([]model.Item{item}, nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "file", "greenroom", "download").
		Return(false, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("POST", "/v2/download/pre",
		strings.NewReader(`{"files":[{"id":"f1"}]}`))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m.download.AssertNotCalled(t, "PreDownload", test_mock.Anything, test_mock.Anything)
}

func TestSearchProjectFiles_NormalizesZones(t *testing.T) {
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}
	router, m := setupFileRouter(admin)

	m.lookup.On("ResolveCode", test_mock.Anything, "proj1", "", "").Return("proj1", nil)
	m.authz.On("HasPermission", test_mock.Anything, admin, "proj1", "file", "*", "view").
		Return(true, nil)
	m.metadata.On("SearchItems", test_mock.Anything, test_mock.Anything).
		Return(map[string]any{
			"result": []any{
				map[string]any{"id": "f1", "zone": float64(0)},
				map[string]any{"id": "f2", "zone": float64(1)},
			},
			"total_per_zone": map[string]any{"0": float64(1), "1": float64(1)},
		}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/project-files/search?project_code=proj1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, `"zone":"greenroom"`)
	assert.Contains(t, body, `"zone":"core"`)
	assert.Contains(t, body, `"greenroom":1`)
	assert.NotContains(t, body, `"zone":0`)
}

func TestFilesMeta_ContributorScopedToNameFolder(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupFileRouter(contributor)

	m.lookup.On("ResolveCode", test_mock.Anything, "proj1", "", "").Return("proj1", nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "file", "greenroom", "view").
		Return(true, nil)
	m.metadata.On("ListItems", test_mock.Anything, test_mock.MatchedBy(func(q url.Values) bool {
		return q.Get("parent_path") == "bob"
	})).Return(&client.Response{Status: 200, Body: []byte(`{"result":[]}`)}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v2/files/meta?project_code=proj1&zone=greenroom", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.metadata.AssertExpectations(t)
}

func TestFilesMeta_ForeignParentPathForbidden(t *testing.T) {
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}
	router, m := setupFileRouter(contributor)

	m.lookup.On("ResolveCode", test_mock.Anything, "proj1", "", "").Return("proj1", nil)
	m.authz.On("HasPermission", test_mock.Anything, contributor, "proj1", "file", "greenroom", "view").
		Return(true, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v2/files/meta?project_code=proj1&zone=greenroom&parent_path=alice", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	m.metadata.AssertNotCalled(t, "ListItems", test_mock.Anything, test_mock.Anything)
}
