// service/copy_request_service.go
package service

import (
	"context"
	"net/url"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

// ICopyRequestService handles the greenroom-to-core copy approval
// workflow. Request bodies are opaque; the BFF only stamps identity
// fields and applies visibility rules.
type ICopyRequestService interface {
	Create(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error)
	List(ctx context.Context, identity model.Identity, projectCode string, query url.Values) (*client.Response, error)
	CompleteFiles(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error)
}

type CopyRequestService struct {
	approvalClient client.IApprovalClient
}

var _ ICopyRequestService = &CopyRequestService{}

func NewCopyRequestService(approvalClient client.IApprovalClient) *CopyRequestService {
	return &CopyRequestService{approvalClient: approvalClient}
}

// Create submits a copy request. Platform admins may not create them;
// only project members can. submitted_by is always overwritten with
// the caller.
func (s *CopyRequestService) Create(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error) {
	if identity.IsPlatformAdmin() {
		return nil, bff_errors.ErrPermissionDenied
	}
	if _, ok := identity.ProjectRole(projectCode); !ok {
		return nil, bff_errors.ErrPermissionDenied
	}
	body["submitted_by"] = identity.Username
	body["project_code"] = projectCode
	return s.approvalClient.CreateCopyRequest(ctx, projectCode, body)
}

// List returns copy requests of a project. Collaborators only ever see
// their own submissions; the filter is applied on every listing.
func (s *CopyRequestService) List(ctx context.Context, identity model.Identity, projectCode string, query url.Values) (*client.Response, error) {
	role, ok := identity.ProjectRole(projectCode)
	if !ok && !identity.IsPlatformAdmin() {
		return nil, bff_errors.ErrPermissionDenied
	}
	if role == model.ProjectRoleCollaborator {
		query.Set("submitted_by", identity.Username)
	}
	return s.approvalClient.ListCopyRequests(ctx, projectCode, query)
}

// CompleteFiles patches the per-file review state, always acting as
// the caller.
func (s *CopyRequestService) CompleteFiles(ctx context.Context, identity model.Identity, projectCode string, body map[string]any) (*client.Response, error) {
	body["username"] = identity.Username
	return s.approvalClient.UpdateCopyRequestFiles(ctx, projectCode, body)
}
