// client/approval.go
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
)

// IApprovalClient talks to the approval service managing copy requests
// from greenroom into core. Request bodies are opaque to the BFF.
type IApprovalClient interface {
	ListCopyRequests(ctx context.Context, projectCode string, query url.Values) (*Response, error)
	CreateCopyRequest(ctx context.Context, projectCode string, body map[string]any) (*Response, error)
	UpdateCopyRequestFiles(ctx context.Context, projectCode string, body map[string]any) (*Response, error)
}

type ApprovalClient struct {
	http *HTTPClient
	base string
}

var _ IApprovalClient = &ApprovalClient{}

func NewApprovalClient(http *HTTPClient) *ApprovalClient {
	return &ApprovalClient{http: http, base: config.GetString("services.approval")}
}

func (a *ApprovalClient) ListCopyRequests(ctx context.Context, projectCode string, query url.Values) (*Response, error) {
	return a.http.Do(ctx, http.MethodGet, a.base+"/request/copy/"+projectCode, query, nil)
}

func (a *ApprovalClient) CreateCopyRequest(ctx context.Context, projectCode string, body map[string]any) (*Response, error) {
	return a.http.Do(ctx, http.MethodPost, a.base+"/request/copy/"+projectCode, nil, body)
}

func (a *ApprovalClient) UpdateCopyRequestFiles(ctx context.Context, projectCode string, body map[string]any) (*Response, error) {
	return a.http.Do(ctx, http.MethodPut, a.base+"/request/copy/"+projectCode+"/files", nil, body)
}
