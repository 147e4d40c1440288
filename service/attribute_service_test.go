// service/attribute_service_test.go
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

func newAttributeService() (*service.AttributeService, *mock.MockMetadataClient) {
	metadataClient := &mock.MockMetadataClient{}
	authz := service.NewAuthorizationService(&mock.MockAuthClient{})
	return service.NewAttributeService(metadataClient, authz), metadataClient
}

func TestAttach_DuplicateReportedAsTerminated(t *testing.T) {
	svc, metadataClient := newAttributeService()
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	fresh := model.Item{ID: "f1", Type: model.ItemTypeFile, Name: "a.txt", ContainerCode: "proj1", ParentPath: "root"}
	tagged := model.Item{
		ID: "f2", Type: model.ItemTypeFile, Name: "b.txt", ContainerCode: "proj1", ParentPath: "root",
		Attributes: map[string]map[string]any{"tmpl1": {"stage": "raw"}},
	}

	metadataClient.On("GetTemplate", test_mock.Anything, "tmpl1").
		Return(&model.AttributeTemplate{ID: "tmpl1", ProjectCode: "proj1"}, nil)
	metadataClient.On("GetItems", test_mock.Anything, []string{"f1", "f2"}).
		Return([]model.Item{fresh, tagged}, nil)
	metadataClient.On("BatchUpdateAttributes",
		test_mock.Anything, []string{"f1"}, "tmpl1", map[string]string{"stage": "qc"}).
		Return(nil)

	result, err := svc.Attach(context.Background(), admin, model.AttributeAttachRequest{
		ManifestID:  "tmpl1",
		ItemIDs:     []string{"f1", "f2"},
		Attributes:  map[string]string{"stage": "qc"},
		ProjectCode: "proj1",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)

	byID := map[string]model.AttributeAttachItemResult{}
	for _, entry := range result.Result {
		byID[entry.GEID] = entry
	}
	assert.Equal(t, model.AttachStatusTerminated, byID["f2"].OperationStatus)
	assert.Equal(t, "attributes_duplicate", byID["f2"].ErrorType)
	assert.Equal(t, model.AttachStatusSucceed, byID["f1"].OperationStatus)
	assert.Empty(t, byID["f1"].ErrorType)

	metadataClient.AssertExpectations(t)
}

func TestAttach_FolderBequeathsToDescendants(t *testing.T) {
	svc, metadataClient := newAttributeService()
	admin := model.Identity{Username: "root", Role: model.PlatformRoleAdmin}

	folder := model.Item{ID: "d1", Type: model.ItemTypeFolder, Name: "run1", ContainerCode: "proj1", ParentPath: "root"}
	child1 := model.Item{ID: "f1", Type: model.ItemTypeFile, Name: "a.txt", ContainerCode: "proj1", ParentPath: "root.run1"}
	child2 := model.Item{ID: "f2", Type: model.ItemTypeFile, Name: "b.txt", ContainerCode: "proj1", ParentPath: "root.run1"}

	metadataClient.On("GetTemplate", test_mock.Anything, "tmpl1").
		Return(&model.AttributeTemplate{ID: "tmpl1"}, nil)
	metadataClient.On("GetItems", test_mock.Anything, []string{"d1"}).
		Return([]model.Item{folder}, nil)
	metadataClient.On("GetDescendantFiles", test_mock.Anything, folder).
		Return([]model.Item{child1, child2}, nil)
	metadataClient.On("BatchUpdateAttributes",
		test_mock.Anything, []string{"f1", "f2"}, "tmpl1", test_mock.Anything).
		Return(nil)

	result, err := svc.Attach(context.Background(), admin, model.AttributeAttachRequest{
		ManifestID:  "tmpl1",
		ItemIDs:     []string{"d1"},
		Attributes:  map[string]string{"stage": "qc"},
		ProjectCode: "proj1",
	})
	assert.NoError(t, err)
	assert.Equal(t, 2, result.Total)
	metadataClient.AssertExpectations(t)
}

func TestAttach_NameFolderDenialShortCircuits(t *testing.T) {
	svc, metadataClient := newAttributeService()
	contributor := model.Identity{
		Username:   "bob",
		Role:       model.PlatformRoleMember,
		RealmRoles: []string{"proj1-contributor"},
	}

	foreign := model.Item{
		ID: "f1", Type: model.ItemTypeFile, Name: "a.txt",
		ContainerCode: "proj1", Zone: util.ZoneGreenroom, ParentPath: "alice",
	}

	metadataClient.On("GetTemplate", test_mock.Anything, "tmpl1").
		Return(&model.AttributeTemplate{ID: "tmpl1"}, nil)
	metadataClient.On("GetItems", test_mock.Anything, []string{"f1"}).
		Return([]model.Item{foreign}, nil)

	_, err := svc.Attach(context.Background(), contributor, model.AttributeAttachRequest{
		ManifestID:  "tmpl1",
		ItemIDs:     []string{"f1"},
		Attributes:  map[string]string{"stage": "qc"},
		ProjectCode: "proj1",
	})
	assert.ErrorIs(t, err, bff_errors.ErrPermissionDenied)

	metadataClient.AssertNotCalled(t, "BatchUpdateAttributes",
		test_mock.Anything, test_mock.Anything, test_mock.Anything, test_mock.Anything)
}
