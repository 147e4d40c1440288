// client/download.go
package client

import (
	"context"
	"net/http"

	"github.com/vre-platform/portal-bff/config"
)

// IDownloadClient talks to the download service issuing pre-signed
// download tokens.
type IDownloadClient interface {
	PreDownload(ctx context.Context, body map[string]any) (*Response, error)
}

type DownloadClient struct {
	http *HTTPClient
	base string
}

var _ IDownloadClient = &DownloadClient{}

func NewDownloadClient(http *HTTPClient) *DownloadClient {
	return &DownloadClient{http: http, base: config.GetString("services.download")}
}

func (d *DownloadClient) PreDownload(ctx context.Context, body map[string]any) (*Response, error) {
	return d.http.Do(ctx, http.MethodPost, d.base+"/download/pre", nil, body)
}
