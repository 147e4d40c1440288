package model

import "strings"

// Item entity types held by the metadata service.
const (
	ItemTypeFile       = "file"
	ItemTypeFolder     = "folder"
	ItemTypeNameFolder = "name_folder"
)

// Item is a file-like entity of the metadata service.
type Item struct {
	ID            string                    `json:"id"`
	Type          string                    `json:"type"`
	ContainerCode string                    `json:"container_code"`
	ContainerType string                    `json:"container_type"`
	Zone          int                       `json:"zone"`
	Parent        string                    `json:"parent"`
	ParentPath    string                    `json:"parent_path"`
	Name          string                    `json:"name"`
	Owner         string                    `json:"owner"`
	Size          int64                     `json:"size"`
	Tags          []string                  `json:"tags"`
	Attributes    map[string]map[string]any `json:"attributes"`
	SystemTags    []string                  `json:"system_tags"`
	Archived      bool                      `json:"archived"`
}

// NameFolder returns the per-user namespace the item belongs to: the
// first component of the parent path, or the folder's own name for a
// name folder.
func (i Item) NameFolder() string {
	if i.Type == ItemTypeNameFolder {
		return i.Name
	}
	if i.ParentPath == "" {
		return i.Name
	}
	first, _, _ := strings.Cut(i.ParentPath, ".")
	return first
}

// TemplateAttribute is one attribute definition of a template.
type TemplateAttribute struct {
	Name     string   `json:"name"`
	Type     string   `json:"type"`
	Optional bool     `json:"optional"`
	Options  []string `json:"options,omitempty"`
}

// AttributeTemplate defines the attributes that can be attached to
// items of a project. An item carries attributes of a single template.
type AttributeTemplate struct {
	ID          string              `json:"id"`
	Name        string              `json:"name"`
	ProjectCode string              `json:"project_code"`
	Attributes  []TemplateAttribute `json:"attributes"`
}

// Collection is a user-owned set of items.
type Collection struct {
	ID            string   `json:"id"`
	Owner         string   `json:"owner"`
	ContainerCode string   `json:"container_code"`
	Name          string   `json:"name"`
	ItemIDs       []string `json:"item_ids"`
}

// AttributeAttachRequest attaches a template's attributes to items,
// bequeathing folder attachments to descendant files.
type AttributeAttachRequest struct {
	ManifestID  string            `json:"manifest_id" binding:"required"`
	ItemIDs     []string          `json:"item_ids" binding:"required"`
	Attributes  map[string]string `json:"attributes"`
	ProjectCode string            `json:"project_code" binding:"required"`
}

// Attach operation statuses reported per item.
const (
	AttachStatusSucceed    = "SUCCEED"
	AttachStatusTerminated = "TERMINATED"
)

// AttributeAttachItemResult is the per-item outcome of an attach.
type AttributeAttachItemResult struct {
	Name            string `json:"name"`
	GEID            string `json:"geid"`
	OperationStatus string `json:"operation_status"`
	ErrorType       string `json:"error_type,omitempty"`
}

// AttributeAttachResult is the overall outcome of an attach.
type AttributeAttachResult struct {
	Result []AttributeAttachItemResult `json:"result"`
	Total  int                         `json:"total"`
}

// TagsRequest replaces the tags of an item.
type TagsRequest struct {
	Tags []string `json:"tags" binding:"required"`
}

// BatchTagsRequest tags several items at once.
type BatchTagsRequest struct {
	ItemIDs []string `json:"item_ids" binding:"required"`
	Tags    []string `json:"tags" binding:"required"`
}

// FolderCreateRequest creates a folder in a project zone.
type FolderCreateRequest struct {
	Name       string `json:"folder_name" binding:"required"`
	Zone       string `json:"zone" binding:"required"`
	ParentID   string `json:"parent_id"`
	ParentPath string `json:"parent_path"`
	Username   string `json:"username"`
}
