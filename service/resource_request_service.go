// service/resource_request_service.go
package service

import (
	"context"
	"net/url"
	"slices"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

// IResourceRequestService manages requests for project analysis
// resources, delegating persistence to the project service.
type IResourceRequestService interface {
	Create(ctx context.Context, identity model.Identity, req model.ResourceRequestCreate) (*model.ResourceRequest, error)
	Get(ctx context.Context, requestID string) (*model.ResourceRequest, error)
	List(ctx context.Context, identity model.Identity, query url.Values) ([]model.ResourceRequest, int, error)
	Complete(ctx context.Context, identity model.Identity, requestID string) (*model.ResourceRequest, error)
	Delete(ctx context.Context, requestID string) error
}

type ResourceRequestService struct {
	projectClient client.IProjectClient
	authClient    client.IAuthClient
	lookup        IProjectLookup
	emailService  IEmailService
}

var _ IResourceRequestService = &ResourceRequestService{}

func NewResourceRequestService(
	projectClient client.IProjectClient,
	authClient client.IAuthClient,
	lookup IProjectLookup,
	emailService IEmailService,
) *ResourceRequestService {
	return &ResourceRequestService{
		projectClient: projectClient,
		authClient:    authClient,
		lookup:        lookup,
		emailService:  emailService,
	}
}

// Create files a resource request for the caller. At most one active
// request may exist per user, project and resource.
func (s *ResourceRequestService) Create(ctx context.Context, identity model.Identity, req model.ResourceRequestCreate) (*model.ResourceRequest, error) {
	if !slices.Contains(config.GetStringSlice("resourceRequest.options"), req.RequestFor) {
		return nil, bff_errors.ErrUnknownResourceRequestFor
	}

	project, err := s.lookup.GetByID(ctx, req.ProjectID)
	if err != nil {
		return nil, err
	}

	query := url.Values{}
	query.Set("user_id", identity.ID)
	query.Set("project_id", project.ID)
	query.Set("request_for", req.RequestFor)
	query.Set("active", "true")
	existing, _, err := s.projectClient.ListResourceRequests(ctx, query)
	if err != nil {
		return nil, err
	}
	if len(existing) > 0 {
		return nil, bff_errors.ErrDuplicateResourceRequest
	}

	created, err := s.projectClient.CreateResourceRequest(ctx, map[string]any{
		"user_id":      identity.ID,
		"username":     identity.Username,
		"email":        identity.Email,
		"project_id":   project.ID,
		"project_name": project.Name,
		"request_for":  req.RequestFor,
	})
	if err != nil {
		return nil, err
	}

	kwargs := map[string]any{
		"username":     identity.Username,
		"project_name": project.Name,
		"request_for":  req.RequestFor,
		"portal_url":   config.GetString("email.portalURL"),
	}
	err = s.emailService.Send(ctx, "Resource request for "+project.Name,
		[]string{config.GetString("email.support")}, "resource_request/new.html", kwargs)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Get fetches a single resource request.
func (s *ResourceRequestService) Get(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	return s.projectClient.GetResourceRequest(ctx, requestID)
}

// List returns resource requests; non-admin callers only see their own.
func (s *ResourceRequestService) List(ctx context.Context, identity model.Identity, query url.Values) ([]model.ResourceRequest, int, error) {
	if !identity.IsPlatformAdmin() {
		query.Set("username", identity.Username)
	}
	return s.projectClient.ListResourceRequests(ctx, query)
}

// Complete marks a request fulfilled and notifies the requesting user.
// A notification failure fails the whole operation.
func (s *ResourceRequestService) Complete(ctx context.Context, identity model.Identity, requestID string) (*model.ResourceRequest, error) {
	request, err := s.projectClient.CompleteResourceRequest(ctx, requestID)
	if err != nil {
		return nil, err
	}

	target, err := s.authClient.GetUser(ctx, request.Username)
	if err != nil {
		return nil, err
	}

	kwargs := map[string]any{
		"username":     target.Username,
		"project_name": request.ProjectName,
		"request_for":  request.RequestFor,
		"admin":        identity.Username,
		"portal_url":   config.GetString("email.portalURL"),
	}
	err = s.emailService.Send(ctx, "Your resource request is ready",
		[]string{target.Email}, "resource_request/complete.html", kwargs)
	if err != nil {
		return nil, err
	}
	return request, nil
}

func (s *ResourceRequestService) Delete(ctx context.Context, requestID string) error {
	return s.projectClient.DeleteResourceRequest(ctx, requestID)
}
