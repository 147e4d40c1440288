// controller/dataset_controller_test.go
package controller_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/controller"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/test/mock"
)

type datasetControllerMocks struct {
	dataset    *mock.MockDatasetClient
	provenance *mock.MockProvenanceClient
}

func setupDatasetRouter(identity model.Identity) (*gin.Engine, *datasetControllerMocks) {
	m := &datasetControllerMocks{
		dataset:    &mock.MockDatasetClient{},
		provenance: &mock.MockProvenanceClient{},
	}
	dc := controller.NewDatasetController(m.dataset, m.provenance)

	router := gin.New()
	router.Use(identityMiddleware(identity))
	dc.RegisterRoutes(router.Group("/v1"), router.Group("/v2"))
	return router, m
}

func TestPreviewFile_NonCreatorForbidden(t *testing.T) {
	member := model.Identity{Username: "bob", Role: model.PlatformRoleMember}
	router, m := setupDatasetRouter(member)

	m.dataset.On("GetDataset", test_mock.Anything, "d1").
		Return(&client.Dataset{ID: "d1", Code: "dset1", Creator: "alice"}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/dataset/f1/preview?dataset_geid=d1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "No permission for this dataset")
	m.dataset.AssertNotCalled(t, "PreviewFile",
		test_mock.Anything, test_mock.Anything, test_mock.Anything)
}

func TestPreviewFile_CreatorAllowed(t *testing.T) {
	member := model.Identity{Username: "alice", Role: model.PlatformRoleMember}
	router, m := setupDatasetRouter(member)

	m.dataset.On("GetDataset", test_mock.Anything, "d1").
		Return(&client.Dataset{ID: "d1", Code: "dset1", Creator: "alice"}, nil)
	m.dataset.On("PreviewFile", test_mock.Anything, "d1", "f1").
		Return(&client.Response{Status: 200, Body: []byte(`{"content":"preview"}`)}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/dataset/f1/preview?dataset_geid=d1", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "preview")
}

func TestPreviewFile_MissingDatasetGEID(t *testing.T) {
	member := model.Identity{Username: "alice", Role: model.PlatformRoleMember}
	router, m := setupDatasetRouter(member)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/dataset/f1/preview", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	m.dataset.AssertNotCalled(t, "GetDataset", test_mock.Anything, test_mock.Anything)
}

func TestActivityLogs_CreatorPassThrough(t *testing.T) {
	member := model.Identity{Username: "alice", Role: model.PlatformRoleMember}
	router, m := setupDatasetRouter(member)

	m.dataset.On("GetDataset", test_mock.Anything, "dset1").
		Return(&client.Dataset{ID: "d1", Code: "dset1", Creator: "alice"}, nil)
	m.provenance.On("DatasetActivityLogs", test_mock.Anything, "dset1", test_mock.Anything).
		Return(&client.Response{Status: 200, Body: []byte(`{"result":[]}`)}, nil)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/activity-logs/dset1?page=0&page_size=10", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	m.provenance.AssertExpectations(t)
}
