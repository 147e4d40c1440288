// client/dataset.go
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
)

// Dataset is the dataset service record; only the fields the BFF
// inspects are decoded.
type Dataset struct {
	ID      string `json:"id"`
	Code    string `json:"code"`
	Creator string `json:"creator"`
}

// IDatasetClient talks to the dataset service.
type IDatasetClient interface {
	GetDataset(ctx context.Context, identifier string) (*Dataset, error)
	PreviewFile(ctx context.Context, datasetID, fileID string) (*Response, error)
}

type DatasetClient struct {
	http *HTTPClient
	base string
}

var _ IDatasetClient = &DatasetClient{}

func NewDatasetClient(http *HTTPClient) *DatasetClient {
	return &DatasetClient{http: http, base: config.GetString("services.dataset")}
}

type datasetResponse struct {
	Result *Dataset `json:"result"`
}

func (d *DatasetClient) GetDataset(ctx context.Context, identifier string) (*Dataset, error) {
	var out datasetResponse
	err := d.http.Get(ctx, d.base+"/dataset/"+identifier, nil, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrItemNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.ID == "" {
		return nil, bff_errors.ErrItemNotFound
	}
	return out.Result, nil
}

func (d *DatasetClient) PreviewFile(ctx context.Context, datasetID, fileID string) (*Response, error) {
	query := url.Values{}
	query.Set("dataset_geid", datasetID)
	return d.http.Do(ctx, http.MethodGet, d.base+"/"+fileID+"/preview", query, nil)
}
