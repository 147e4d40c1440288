// client/provenance.go
package client

import (
	"context"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
)

// IProvenanceClient talks to the search/provenance service.
type IProvenanceClient interface {
	AuditLogs(ctx context.Context, projectID string, query url.Values) (*Response, error)
	DatasetActivityLogs(ctx context.Context, datasetCode string, query url.Values) (*Response, error)
}

type ProvenanceClient struct {
	http *HTTPClient
	base string
}

var _ IProvenanceClient = &ProvenanceClient{}

func NewProvenanceClient(http *HTTPClient) *ProvenanceClient {
	return &ProvenanceClient{http: http, base: config.GetString("services.provenance")}
}

func (p *ProvenanceClient) AuditLogs(ctx context.Context, projectID string, query url.Values) (*Response, error) {
	q := url.Values{}
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("project_id", projectID)
	return p.http.Do(ctx, http.MethodGet, p.base+"/audit-logs", q, nil)
}

func (p *ProvenanceClient) DatasetActivityLogs(ctx context.Context, datasetCode string, query url.Values) (*Response, error) {
	q := url.Values{}
	for key, values := range query {
		for _, v := range values {
			q.Add(key, v)
		}
	}
	q.Set("container_code", datasetCode)
	return p.http.Do(ctx, http.MethodGet, p.base+"/activity-logs", q, nil)
}
