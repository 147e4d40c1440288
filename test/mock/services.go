// test/mock/services.go
package mock

import (
	"context"
	"net/url"

	"github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/model"
)

// MockEmailService is a mock implementation of service.IEmailService
type MockEmailService struct {
	mock.Mock
}

func (m *MockEmailService) Send(ctx context.Context, subject string, receivers []string, template string, kwargs map[string]any) error {
	args := m.Called(ctx, subject, receivers, template, kwargs)
	return args.Error(0)
}

func (m *MockEmailService) ContactUs(ctx context.Context, req model.ContactUsRequest) error {
	args := m.Called(ctx, req)
	return args.Error(0)
}

// MockProjectLookup is a mock implementation of service.IProjectLookup
type MockProjectLookup struct {
	mock.Mock
}

func (m *MockProjectLookup) GetByID(ctx context.Context, projectID string) (*model.Project, error) {
	args := m.Called(ctx, projectID)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectLookup) GetByGEID(ctx context.Context, geid string) (*model.Project, error) {
	args := m.Called(ctx, geid)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectLookup) GetByCode(ctx context.Context, code string) (*model.Project, error) {
	args := m.Called(ctx, code)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectLookup) ResolveCode(ctx context.Context, code, geid, id string) (string, error) {
	args := m.Called(ctx, code, geid, id)
	return args.String(0), args.Error(1)
}

func (m *MockProjectLookup) Invalidate(ctx context.Context, project *model.Project) {
	m.Called(ctx, project)
}

// MockAuthorizationService is a mock implementation of service.IAuthorizationService
type MockAuthorizationService struct {
	mock.Mock
}

func (m *MockAuthorizationService) HasPermission(ctx context.Context, identity model.Identity, projectCode, resource, zone, operation string) (bool, error) {
	args := m.Called(ctx, identity, projectCode, resource, zone, operation)
	return args.Bool(0), args.Error(1)
}

func (m *MockAuthorizationService) AllowedByNameFolder(identity model.Identity, item model.Item) bool {
	args := m.Called(identity, item)
	return args.Bool(0)
}

func (m *MockAuthorizationService) AllItemsAllowed(identity model.Identity, items []model.Item) bool {
	args := m.Called(identity, items)
	return args.Bool(0)
}

// MockCopyRequestService is a mock implementation of service.ICopyRequestService
type MockCopyRequestService struct {
	mock.Mock
}

func (m *MockCopyRequestService) Create(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, identity, projectCode, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockCopyRequestService) List(ctx context.Context, identity model.Identity, projectCode string, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, identity, projectCode, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

func (m *MockCopyRequestService) CompleteFiles(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error) {
	args := m.Called(ctx, identity, projectCode, body)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockResourceRequestService is a mock implementation of service.IResourceRequestService
type MockResourceRequestService struct {
	mock.Mock
}

func (m *MockResourceRequestService) Create(ctx context.Context, identity model.Identity, req model.ResourceRequestCreate) (*model.ResourceRequest, error) {
	args := m.Called(ctx, identity, req)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockResourceRequestService) Get(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	args := m.Called(ctx, requestID)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockResourceRequestService) List(ctx context.Context, identity model.Identity, query url.Values) ([]model.ResourceRequest, int, error) {
	args := m.Called(ctx, identity, query)
	requests, _ := args.Get(0).([]model.ResourceRequest)
	return requests, args.Int(1), args.Error(2)
}

func (m *MockResourceRequestService) Complete(ctx context.Context, identity model.Identity, requestID string) (*model.ResourceRequest, error) {
	args := m.Called(ctx, identity, requestID)
	request, _ := args.Get(0).(*model.ResourceRequest)
	return request, args.Error(1)
}

func (m *MockResourceRequestService) Delete(ctx context.Context, requestID string) error {
	args := m.Called(ctx, requestID)
	return args.Error(0)
}

// MockProjectService is a mock implementation of service.IProjectService
type MockProjectService struct {
	mock.Mock
}

func (m *MockProjectService) CreateProject(ctx context.Context, identity model.Identity, req model.ProjectCreateRequest) (*model.Project, error) {
	args := m.Called(ctx, identity, req)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) UpdateProject(ctx context.Context, geid string, req model.ProjectUpdateRequest) (*model.Project, error) {
	args := m.Called(ctx, geid, req)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) GetProject(ctx context.Context, geid string) (*model.Project, error) {
	args := m.Called(ctx, geid)
	project, _ := args.Get(0).(*model.Project)
	return project, args.Error(1)
}

func (m *MockProjectService) ListProjects(ctx context.Context, identity model.Identity, query url.Values) (*client.Response, error) {
	args := m.Called(ctx, identity, query)
	resp, _ := args.Get(0).(*client.Response)
	return resp, args.Error(1)
}

// MockUserService is a mock implementation of service.IUserService
type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, identity model.Identity, username, projectCode string) (*model.AuthUser, error) {
	args := m.Called(ctx, identity, username, projectCode)
	user, _ := args.Get(0).(*model.AuthUser)
	return user, args.Error(1)
}

func (m *MockUserService) UpdateAccountStatus(ctx context.Context, identity model.Identity, username string, req model.AccountRequest) (*model.AuthUser, error) {
	args := m.Called(ctx, identity, username, req)
	user, _ := args.Get(0).(*model.AuthUser)
	return user, args.Error(1)
}

func (m *MockUserService) FirstLogin(ctx context.Context, identity model.Identity, req model.ADUserUpdateRequest) error {
	args := m.Called(ctx, identity, req)
	return args.Error(0)
}

func (m *MockUserService) AddMember(ctx context.Context, identity model.Identity, projectID string, req model.MemberAddRequest) error {
	args := m.Called(ctx, identity, projectID, req)
	return args.Error(0)
}

func (m *MockUserService) ChangeMemberRole(ctx context.Context, identity model.Identity, projectID, username string, req model.MemberChangeRequest) error {
	args := m.Called(ctx, identity, projectID, username, req)
	return args.Error(0)
}

func (m *MockUserService) RemoveMember(ctx context.Context, identity model.Identity, projectID, username string) error {
	args := m.Called(ctx, identity, projectID, username)
	return args.Error(0)
}
