// client/project.go
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

// IProjectClient talks to the project registry service.
type IProjectClient interface {
	GetProject(ctx context.Context, identifier string) (*model.Project, error)
	ListProjects(ctx context.Context, query url.Values) (*Response, error)
	CreateProject(ctx context.Context, body map[string]any) (*model.Project, error)
	UpdateProject(ctx context.Context, identifier string, body map[string]any) (*model.Project, error)
	UploadLogo(ctx context.Context, code, icon string) error
	ListResourceRequests(ctx context.Context, query url.Values) ([]model.ResourceRequest, int, error)
	GetResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error)
	CreateResourceRequest(ctx context.Context, body map[string]any) (*model.ResourceRequest, error)
	CompleteResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error)
	DeleteResourceRequest(ctx context.Context, requestID string) error
}

type ProjectClient struct {
	http *HTTPClient
	base string
}

var _ IProjectClient = &ProjectClient{}

func NewProjectClient(http *HTTPClient) *ProjectClient {
	return &ProjectClient{http: http, base: config.GetString("services.project")}
}

type projectResponse struct {
	Result *model.Project `json:"result"`
}

type resourceRequestResponse struct {
	Result *model.ResourceRequest `json:"result"`
}

type resourceRequestListResponse struct {
	Result []model.ResourceRequest `json:"result"`
	Total  int                     `json:"total"`
}

// GetProject fetches a project by id, geid or code; the project
// service resolves any of the three.
func (p *ProjectClient) GetProject(ctx context.Context, identifier string) (*model.Project, error) {
	var out projectResponse
	err := p.http.Get(ctx, p.base+"/projects/"+identifier, nil, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrProjectNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.Code == "" {
		return nil, bff_errors.ErrProjectNotFound
	}
	return out.Result, nil
}

// ListProjects forwards the project listing with its raw body so the
// caller can pass pagination fields through.
func (p *ProjectClient) ListProjects(ctx context.Context, query url.Values) (*Response, error) {
	return p.http.Do(ctx, http.MethodGet, p.base+"/projects", query, nil)
}

func (p *ProjectClient) CreateProject(ctx context.Context, body map[string]any) (*model.Project, error) {
	var out projectResponse
	if err := p.http.Post(ctx, p.base+"/projects", body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (p *ProjectClient) UpdateProject(ctx context.Context, identifier string, body map[string]any) (*model.Project, error) {
	var out projectResponse
	if err := p.http.Put(ctx, p.base+"/projects/"+identifier, body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (p *ProjectClient) UploadLogo(ctx context.Context, code, icon string) error {
	body := map[string]any{"base64": icon}
	return p.http.Post(ctx, p.base+"/projects/"+code+"/logo", body, nil)
}

func (p *ProjectClient) ListResourceRequests(ctx context.Context, query url.Values) ([]model.ResourceRequest, int, error) {
	var out resourceRequestListResponse
	if err := p.http.Get(ctx, p.base+"/resource-requests", query, &out); err != nil {
		return nil, 0, err
	}
	return out.Result, out.Total, nil
}

func (p *ProjectClient) GetResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	var out resourceRequestResponse
	err := p.http.Get(ctx, p.base+"/resource-request/"+requestID, nil, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrResourceRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.ID == "" {
		return nil, bff_errors.ErrResourceRequestNotFound
	}
	return out.Result, nil
}

func (p *ProjectClient) CreateResourceRequest(ctx context.Context, body map[string]any) (*model.ResourceRequest, error) {
	var out resourceRequestResponse
	if err := p.http.Post(ctx, p.base+"/resource-requests", body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (p *ProjectClient) CompleteResourceRequest(ctx context.Context, requestID string) (*model.ResourceRequest, error) {
	body := map[string]any{"active": false}
	var out resourceRequestResponse
	err := p.http.Patch(ctx, p.base+"/resource-request/"+requestID, body, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrResourceRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (p *ProjectClient) DeleteResourceRequest(ctx context.Context, requestID string) error {
	err := p.http.Delete(ctx, p.base+"/resource-request/"+requestID, nil, nil)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return bff_errors.ErrResourceRequestNotFound
	}
	return err
}
