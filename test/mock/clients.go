// test/mock/clients.go
package mock

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/model"
)

// MockAuthClient is a mock implementation of client.IAuthClient
type MockAuthClient struct {
	mock.Mock
}

func (m *MockAuthClient) GetUser(ctx context.Context, username string) (*model.AuthUser, error) {
	args := m.Called(ctx, username)
	user, _ := args.Get(0).(*model.AuthUser)
	return user, args.Error(1)
}

func (m *MockAuthClient) GetUserByEmail(ctx context.Context, email string) (*model.AuthUser, error) {
	args := m.Called(ctx, email)
	user, _ := args.Get(0).(*model.AuthUser)
	return user, args.Error(1)
}

func (m *MockAuthClient) GetUserByID(ctx context.Context, userID string) (*model.AuthUser, error) {
	args := m.Called(ctx, userID)
	user, _ := args.Get(0).(*model.AuthUser)
	return user, args.Error(1)
}

func (m *MockAuthClient) ListProjectUsers(ctx context.Context, projectCode string, page, pageSize int) ([]model.AuthUser, int, error) {
	args := m.Called(ctx, projectCode, page, pageSize)
	users, _ := args.Get(0).([]model.AuthUser)
	return users, args.Int(1), args.Error(2)
}

func (m *MockAuthClient) ListProjectRoles(ctx context.Context, projectCode string) ([]string, error) {
	args := m.Called(ctx, projectCode)
	roles, _ := args.Get(0).([]string)
	return roles, args.Error(1)
}

func (m *MockAuthClient) ListPlatformAdmins(ctx context.Context) ([]model.AuthUser, error) {
	args := m.Called(ctx)
	users, _ := args.Get(0).([]model.AuthUser)
	return users, args.Error(1)
}

func (m *MockAuthClient) Authorize(ctx context.Context, role, resource, zone, operation string) (bool, error) {
	args := m.Called(ctx, role, resource, zone, operation)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthClient) CreateProjectRoles(ctx context.Context, projectCode string) error {
	args := m.Called(ctx, projectCode)
	return args.Error(0)
}

func (m *MockAuthClient) AssignRole(ctx context.Context, email, realmRole string) error {
	args := m.Called(ctx, email, realmRole)
	return args.Error(0)
}

func (m *MockAuthClient) RemoveRole(ctx context.Context, username, realmRole string) error {
	args := m.Called(ctx, username, realmRole)
	return args.Error(0)
}

func (m *MockAuthClient) ChangeRole(ctx context.Context, email, oldRealmRole, newRealmRole string) error {
	args := m.Called(ctx, email, oldRealmRole, newRealmRole)
	return args.Error(0)
}

func (m *MockAuthClient) GetUserRealmRoles(ctx context.Context, username string) ([]string, error) {
	args := m.Called(ctx, username)
	roles, _ := args.Get(0).([]string)
	return roles, args.Error(1)
}

func (m *MockAuthClient) UpdateAccountStatus(ctx context.Context, operationType, userEmail string) error {
	args := m.Called(ctx, operationType, userEmail)
	return args.Error(0)
}

func (m *MockAuthClient) AssignPlatformAdmin(ctx context.Context, email string) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockAuthClient) GetInvitations(ctx context.Context, email, status string) ([]model.Invitation, error) {
	args := m.Called(ctx, email, status)
	invitations, _ := args.Get(0).([]model.Invitation)
	return invitations, args.Error(1)
}

func (m *MockAuthClient) UpdateInvitation(ctx context.Context, invitationID, status string) error {
	args := m.Called(ctx, invitationID, status)
	return args.Error(0)
}

// MockProjectClient is a mock implementation of client.IProjectClient
type MockProjectClient struct {
	mock.Mock
}

func (m *MockProjectClient) GetProject(ctx context.Context, identifier string) (*model.Project, error) {
	args := m.Called(ctx, identifier)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectClient) ListProjects(ctx context.Context, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockProjectClient) CreateProject(ctx context.Context, body map[string]any) (*model.Project, error) {
	args := m.Called(ctx, body)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectClient) UpdateProject(ctx context.Context, identifier string, body map[string]any) (*model.Project, error) {
	args := m.Called(ctx, identifier, body)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectClient) UploadLogo(ctx context.Context, code, icon string) error {
	args := m.Called(ctx, code, icon)
	return args.Error(0)
}

func (m *MockProjectClient) ListResourceRequests(ctx context.Context, query url.Values) ([]model.ResourceRequest, int, error) {
	args := m.Called(ctx, query)
	requests, _ := args.Get(0).([]model.ResourceRequest)
	return requests, args.Int(1), args.Error(2)
}

func (m *MockProjectClient) GetResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockProjectClient) CreateResourceRequest(ctx context.Context, body map[string]any) (*model.ResourceRequest, error) {
	args := m.Called(ctx, body)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockProjectClient) CompleteResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockProjectClient) DeleteResourceRequest(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// MockMetadataClient is a mock implementation of client.IMetadataClient
type MockMetadataClient struct {
	mock.Mock
}

func (m *MockMetadataClient) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	args := m.Called(ctx, itemID)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockMetadataClient) GetItems(ctx context.Context, itemIDs []string) ([]model.Item, error) {
	args := m.Called(ctx, itemIDs)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *MockMetadataClient) ListItems(ctx context.Context, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockMetadataClient) SearchItems(ctx context.Context, query url.Values) (map[string]any, error) {
	args := m.Called(ctx, query)
	out, _ := args.Get(0).(map[string]any)
	return out, args.Error(1)
}

func (m *MockMetadataClient) GetDescendantFiles(ctx context.Context, item model.Item) ([]model.Item, error) {
	args := m.Called(ctx, item)
	items, _ := args.Get(0).([]model.Item)
	return items, args.Error(1)
}

func (m *MockMetadataClient) GetNameFolder(ctx context.Context, owner, containerCode string, zone int) (*model.Item, error) {
	args := m.Called(ctx, owner, containerCode, zone)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockMetadataClient) UpdateItemTags(ctx context.Context, itemID string, tags []string) (*model.Item, error) {
	args := m.Called(ctx, itemID, tags)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockMetadataClient) BatchTagItems(ctx context.Context, itemIDs []string, tags []string) error {
	args := m.Called(ctx, itemIDs, tags)
	return args.Error(0)
}

func (m *MockMetadataClient) BatchUpdateAttributes(ctx context.Context, itemIDs []string, templateID string, attributes map[string]string) error {
	args := m.Called(ctx, itemIDs, templateID, attributes)
	return args.Error(0)
}

func (m *MockMetadataClient) CreateFolder(ctx context.Context, body map[string]any) (*model.Item, error) {
	args := m.Called(ctx, body)
	item, _ := args.Get(0).(*model.Item)
	return item, args.Error(1)
}

func (m *MockMetadataClient) BatchCreateNameFolders(ctx context.Context, usernames []string, containerCode string, zones []int) error {
	args := m.Called(ctx, usernames, containerCode, zones)
	return args.Error(0)
}

func (m *MockMetadataClient) ListTemplates(ctx context.Context, projectCode string) ([]model.AttributeTemplate, error) {
	args := m.Called(ctx, projectCode)
	templates, _ := args.Get(0).([]model.AttributeTemplate)
	return templates, args.Error(1)
}

func (m *MockMetadataClient) GetTemplate(ctx context.Context, templateID string) (*model.AttributeTemplate, error) {
	args := m.Called(ctx, templateID)
	template, _ := args.Get(0).(*model.AttributeTemplate)
	return template, args.Error(1)
}

func (m *MockMetadataClient) CreateTemplate(ctx context.Context, body map[string]any) (*model.AttributeTemplate, error) {
	args := m.Called(ctx, body)
	template, _ := args.Get(0).(*model.AttributeTemplate)
	return template, args.Error(1)
}

func (m *MockMetadataClient) UpdateTemplate(ctx context.Context, templateID string, body map[string]any) (*model.AttributeTemplate, error) {
	args := m.Called(ctx, templateID, body)
	template, _ := args.Get(0).(*model.AttributeTemplate)
	return template, args.Error(1)
}

func (m *MockMetadataClient) DeleteTemplate(ctx context.Context, templateID string) error {
	args := m.Called(ctx, templateID)
	return args.Error(0)
}

func (m *MockMetadataClient) ListCollections(ctx context.Context, owner, containerCode string) ([]model.Collection, error) {
	args := m.Called(ctx, owner, containerCode)
	collections, _ := args.Get(0).([]model.Collection)
	return collections, args.Error(1)
}

// MockApprovalClient is a mock implementation of client.IApprovalClient
type MockApprovalClient struct {
	mock.Mock
}

func (m *MockApprovalClient) ListCopyRequests(ctx context.Context, projectCode string, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, projectCode, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockApprovalClient) CreateCopyRequest(ctx context.Context, projectCode string, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, projectCode, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockApprovalClient) UpdateCopyRequestFiles(ctx context.Context, projectCode string, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, projectCode, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockNotificationClient is a mock implementation of client.INotificationClient
type MockNotificationClient struct {
	mock.Mock
}

func (m *MockNotificationClient) SendEmail(ctx context.Context, email model.EmailRequest) error {
	args := m.Called(ctx, email)
	return args.Error(0)
}

func (m *MockNotificationClient) ListAnnouncements(ctx context.Context, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockNotificationClient) CreateAnnouncement(ctx context.Context, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockNotificationClient) ListNotifications(ctx context.Context, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockNotificationClient) CreateNotification(ctx context.Context, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockNotificationClient) UpdateNotification(ctx context.Context, notificationID string, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, notificationID, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockNotificationClient) DeleteNotification(ctx context.Context, notificationID string) (*client.Response, error) {
	args := m.Called(ctx, notificationID)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockDownloadClient is a mock implementation of client.IDownloadClient
type MockDownloadClient struct {
	mock.Mock
}

func (m *MockDownloadClient) PreDownload(ctx context.Context, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockDatasetClient is a mock implementation of client.IDatasetClient
type MockDatasetClient struct {
	mock.Mock
}

func (m *MockDatasetClient) GetDataset(ctx context.Context, identifier string) (*client.Dataset, error) {
	args := m.Called(ctx, identifier)
	dataset, _ := args.Get(0).(*client.Dataset)
	return dataset, args.Error(1)
}

func (m *MockDatasetClient) PreviewFile(ctx context.Context, datasetID, fileID string) (*client.Response, error) {
	args := m.Called(ctx, datasetID, fileID)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockProvenanceClient is a mock implementation of client.IProvenanceClient
type MockProvenanceClient struct {
	mock.Mock
}

func (m *MockProvenanceClient) AuditLogs(ctx context.Context, projectID string, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, projectID, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockProvenanceClient) DatasetActivityLogs(ctx context.Context, datasetCode string, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, datasetCode, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockObjectStoreClient is a mock implementation of client.IObjectStoreClient
type MockObjectStoreClient struct {
	mock.Mock
}

func (m *MockObjectStoreClient) EnsureBucket(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func (m *MockObjectStoreClient) CreateProjectPolicies(ctx context.Context, projectCode string) error {
	args := m.Called(ctx, projectCode)
	return args.Error(0)
}

// MockDirectoryClient is a mock implementation of client.IDirectoryClient
type MockDirectoryClient struct {
	mock.Mock
}

func (m *MockDirectoryClient) CreateProjectGroup(projectCode, description string) error {
	args := m.Called(projectCode, description)
	return args.Error(0)
}

func (m *MockDirectoryClient) AddUserToGroup(username, projectCode string) error {
	args := m.Called(username, projectCode)
	return args.Error(0)
}

func (m *MockDirectoryClient) RemoveUserFromGroup(username, projectCode string) error {
	args := m.Called(username, projectCode)
	return args.Error(0)
}
