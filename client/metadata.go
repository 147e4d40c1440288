// client/metadata.go
package client

import (
	"context"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
)

// IMetadataClient talks to the metadata service holding items,
// attribute templates and collections.
type IMetadataClient interface {
	GetItem(ctx context.Context, itemID string) (*model.Item, error)
	GetItems(ctx context.Context, itemIDs []string) ([]model.Item, error)
	ListItems(ctx context.Context, query url.Values) (*Response, error)
	SearchItems(ctx context.Context, query url.Values) (map[string]any, error)
	GetDescendantFiles(ctx context.Context, item model.Item) ([]model.Item, error)
	GetNameFolder(ctx context.Context, owner, containerCode string, zone int) (*model.Item, error)
	UpdateItemTags(ctx context.Context, itemID string, tags []string) (*model.Item, error)
	BatchTagItems(ctx context.Context, itemIDs []string, tags []string) error
	BatchUpdateAttributes(ctx context.Context, itemIDs []string, templateID string, attributes map[string]string) error
	CreateFolder(ctx context.Context, body map[string]any) (*model.Item, error)
	BatchCreateNameFolders(ctx context.Context, usernames []string, containerCode string, zones []int) error
	ListTemplates(ctx context.Context, projectCode string) ([]model.AttributeTemplate, error)
	GetTemplate(ctx context.Context, templateID string) (*model.AttributeTemplate, error)
	CreateTemplate(ctx context.Context, body map[string]any) (*model.AttributeTemplate, error)
	UpdateTemplate(ctx context.Context, templateID string, body map[string]any) (*model.AttributeTemplate, error)
	DeleteTemplate(ctx context.Context, templateID string) error
	ListCollections(ctx context.Context, owner, containerCode string) ([]model.Collection, error)
}

type MetadataClient struct {
	http *HTTPClient
	base string
}

var _ IMetadataClient = &MetadataClient{}

func NewMetadataClient(http *HTTPClient) *MetadataClient {
	return &MetadataClient{http: http, base: config.GetString("services.metadata")}
}

type itemResponse struct {
	Result *model.Item `json:"result"`
}

type itemListResponse struct {
	Result []model.Item `json:"result"`
}

type templateResponse struct {
	Result *model.AttributeTemplate `json:"result"`
}

type templateListResponse struct {
	Result []model.AttributeTemplate `json:"result"`
}

type collectionListResponse struct {
	Result []model.Collection `json:"result"`
}

func (m *MetadataClient) GetItem(ctx context.Context, itemID string) (*model.Item, error) {
	var out itemResponse
	err := m.http.Get(ctx, m.base+"/item/"+itemID, nil, &out)
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

func (m *MetadataClient) GetItems(ctx context.Context, itemIDs []string) ([]model.Item, error) {
	query := url.Values{}
	query.Set("ids", strings.Join(itemIDs, ","))
	var out itemListResponse
	if err := m.http.Get(ctx, m.base+"/items/batch", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// ListItems forwards an item listing with its raw body for
// pass-through pagination.
func (m *MetadataClient) ListItems(ctx context.Context, query url.Values) (*Response, error) {
	return m.http.Do(ctx, http.MethodGet, m.base+"/items/search", query, nil)
}

// SearchItems returns the decoded search body so zone fields can be
// normalized before forwarding.
func (m *MetadataClient) SearchItems(ctx context.Context, query url.Values) (map[string]any, error) {
	var out map[string]any
	if err := m.http.Get(ctx, m.base+"/items/search", query, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetDescendantFiles lists every file below a folder, recursively.
func (m *MetadataClient) GetDescendantFiles(ctx context.Context, item model.Item) ([]model.Item, error) {
	query := url.Values{}
	query.Set("container_code", item.ContainerCode)
	query.Set("zone", strconv.Itoa(item.Zone))
	query.Set("type", model.ItemTypeFile)
	query.Set("recursive", "true")
	parentPath := item.Name
	if item.ParentPath != "" {
		parentPath = item.ParentPath + "." + item.Name
	}
	query.Set("parent_path", parentPath)
	var out itemListResponse
	if err := m.http.Get(ctx, m.base+"/items/search", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// GetNameFolder finds the per-user namespace folder in a project zone.
func (m *MetadataClient) GetNameFolder(ctx context.Context, owner, containerCode string, zone int) (*model.Item, error) {
	query := url.Values{}
	query.Set("container_code", containerCode)
	query.Set("zone", strconv.Itoa(zone))
	query.Set("type", model.ItemTypeNameFolder)
	query.Set("owner", owner)
	var out itemListResponse
	if err := m.http.Get(ctx, m.base+"/items/search", query, &out); err != nil {
		return nil, err
	}
	if len(out.Result) == 0 {
		return nil, bff_errors.ErrItemNotFound
	}
	return &out.Result[0], nil
}

func (m *MetadataClient) UpdateItemTags(ctx context.Context, itemID string, tags []string) (*model.Item, error) {
	body := map[string]any{"tags": tags}
	var out itemResponse
	if err := m.http.Put(ctx, m.base+"/item/"+itemID+"/tags", body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (m *MetadataClient) BatchTagItems(ctx context.Context, itemIDs []string, tags []string) error {
	body := map[string]any{"ids": itemIDs, "tags": tags}
	return m.http.Put(ctx, m.base+"/items/batch/tags", body, nil)
}

// BatchUpdateAttributes attaches a template's attribute values to all
// given items in one call.
func (m *MetadataClient) BatchUpdateAttributes(ctx context.Context, itemIDs []string, templateID string, attributes map[string]string) error {
	body := map[string]any{
		"ids":                   itemIDs,
		"attribute_template_id": templateID,
		"attributes":            attributes,
	}
	return m.http.Put(ctx, m.base+"/items/batch/attributes", body, nil)
}

func (m *MetadataClient) CreateFolder(ctx context.Context, body map[string]any) (*model.Item, error) {
	var out itemResponse
	if err := m.http.Post(ctx, m.base+"/item", body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

// BatchCreateNameFolders creates the per-user namespace folders for a
// set of users across zones. Pre-existing folders are tolerated.
func (m *MetadataClient) BatchCreateNameFolders(ctx context.Context, usernames []string, containerCode string, zones []int) error {
	items := make([]map[string]any, 0, len(usernames)*len(zones))
	for _, zone := range zones {
		for _, username := range usernames {
			items = append(items, map[string]any{
				"name":           username,
				"owner":          username,
				"type":           model.ItemTypeNameFolder,
				"zone":           zone,
				"container_code": containerCode,
				"container_type": "project",
				"parent":         nil,
				"parent_path":    nil,
			})
		}
	}
	err := m.http.Post(ctx, m.base+"/items/batch", map[string]any{"items": items}, nil)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusConflict {
		return nil
	}
	return err
}

func (m *MetadataClient) ListTemplates(ctx context.Context, projectCode string) ([]model.AttributeTemplate, error) {
	query := url.Values{}
	query.Set("project_code", projectCode)
	var out templateListResponse
	if err := m.http.Get(ctx, m.base+"/template", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (m *MetadataClient) GetTemplate(ctx context.Context, templateID string) (*model.AttributeTemplate, error) {
	var out templateResponse
	err := m.http.Get(ctx, m.base+"/template/"+templateID, nil, &out)
	var respErr *ResponseError
	if errors.As(err, &respErr) && respErr.Status == http.StatusNotFound {
		return nil, bff_errors.ErrTemplateNotFound
	}
	if err != nil {
		return nil, err
	}
	if out.Result == nil || out.Result.ID == "" {
		return nil, bff_errors.ErrTemplateNotFound
	}
	return out.Result, nil
}

func (m *MetadataClient) CreateTemplate(ctx context.Context, body map[string]any) (*model.AttributeTemplate, error) {
	var out templateResponse
	if err := m.http.Post(ctx, m.base+"/template", body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (m *MetadataClient) UpdateTemplate(ctx context.Context, templateID string, body map[string]any) (*model.AttributeTemplate, error) {
	var out templateResponse
	if err := m.http.Put(ctx, m.base+"/template/"+templateID, body, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}

func (m *MetadataClient) DeleteTemplate(ctx context.Context, templateID string) error {
	return m.http.Delete(ctx, m.base+"/template/"+templateID, nil, nil)
}

func (m *MetadataClient) ListCollections(ctx context.Context, owner, containerCode string) ([]model.Collection, error) {
	query := url.Values{}
	query.Set("owner", owner)
	if containerCode != "" {
		query.Set("container_code", containerCode)
	}
	var out collectionListResponse
	if err := m.http.Get(ctx, m.base+"/collection/search", query, &out); err != nil {
		return nil, err
	}
	return out.Result, nil
}
