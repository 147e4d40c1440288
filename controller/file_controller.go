// controller/file_controller.go
package controller

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/util"
)

type FileController struct {
	attributeService service.IAttributeService
	authz            service.IAuthorizationService
	lookup           service.IProjectLookup
	metadataClient   client.IMetadataClient
	downloadClient   client.IDownloadClient
}

func NewFileController(
	attributeService service.IAttributeService,
	authz service.IAuthorizationService,
	lookup service.IProjectLookup,
	metadataClient client.IMetadataClient,
	downloadClient client.IDownloadClient,
) *FileController {
	return &FileController{
		attributeService: attributeService,
		authz:            authz,
		lookup:           lookup,
		metadataClient:   metadataClient,
		downloadClient:   downloadClient,
	}
}

// RegisterRoutes registers the file and attribute template API routes
func (fc *FileController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/data/manifests", fc.ListTemplates)
	v1.POST("/data/manifests", fc.CreateTemplate)
	v1.GET("/data/manifest/:id", fc.GetTemplate)
	v1.PUT("/data/manifest/:id", fc.UpdateTemplate)
	v1.DELETE("/data/manifest/:id", fc.DeleteTemplate)

	v1.POST("/file/attributes/attach", fc.AttachAttributes)
	v1.GET("/files/bulk/detail", fc.BulkDetail)
	v1.GET("/project-files/search", fc.SearchProjectFiles)
	v1.GET("/collections", fc.ListCollections)

	// Single-item tagging and the "entity" batch endpoint share the
	// wildcard; gin cannot register both /entity/tags and /:id/tags.
	v2.POST("/:id/tags", fc.Tags)
	v2.GET("/files/meta", fc.FilesMeta)
	v2.POST("/download/pre", fc.PreDownload)
}

// checkTemplateAccess authorizes a template operation in its project.
func (fc *FileController) checkTemplateAccess(c *gin.Context, identity model.Identity, projectCode, operation string) bool {
	allowed, err := fc.authz.HasPermission(c, identity, projectCode, "file_attribute_template", "*", operation)
	if err != nil {
		util.HandleClientError(c, err)
		return false
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return false
	}
	return true
}

// ListTemplates endpoint lists the attribute templates of a project.
func (fc *FileController) ListTemplates(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	projectCode := c.Query("project_code")
	if projectCode == "" {
		util.RespondWithError(c, http.StatusBadRequest, "project_code is required", bff_errors.ErrValidation)
		return
	}
	if !fc.checkTemplateAccess(c, identity, projectCode, "view") {
		return
	}

	templates, err := fc.metadataClient.ListTemplates(c, projectCode)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, templates)
}

// CreateTemplate endpoint.
func (fc *FileController) CreateTemplate(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid template data", err)
		return
	}
	projectCode, _ := body["project_code"].(string)
	if projectCode == "" {
		util.RespondWithError(c, http.StatusBadRequest, "project_code is required", bff_errors.ErrValidation)
		return
	}
	if !fc.checkTemplateAccess(c, identity, projectCode, "create") {
		return
	}

	template, err := fc.metadataClient.CreateTemplate(c, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, template)
}

// GetTemplate endpoint.
func (fc *FileController) GetTemplate(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	template, err := fc.metadataClient.GetTemplate(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrTemplateNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Attribute template not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}
	if !fc.checkTemplateAccess(c, identity, template.ProjectCode, "view") {
		return
	}

	util.Respond(c, http.StatusOK, template)
}

// UpdateTemplate endpoint.
func (fc *FileController) UpdateTemplate(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	templateID := c.Param("id")
	template, err := fc.metadataClient.GetTemplate(c, templateID)
	if err != nil {
		if errors.Is(err, bff_errors.ErrTemplateNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Attribute template not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}
	if !fc.checkTemplateAccess(c, identity, template.ProjectCode, "update") {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid template data", err)
		return
	}

	updated, err := fc.metadataClient.UpdateTemplate(c, templateID, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, updated)
}

// DeleteTemplate endpoint.
func (fc *FileController) DeleteTemplate(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	templateID := c.Param("id")
	template, err := fc.metadataClient.GetTemplate(c, templateID)
	if err != nil {
		if errors.Is(err, bff_errors.ErrTemplateNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Attribute template not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}
	if !fc.checkTemplateAccess(c, identity, template.ProjectCode, "delete") {
		return
	}

	if err := fc.metadataClient.DeleteTemplate(c, templateID); err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"id": templateID})
}

// AttachAttributes endpoint attaches a template to items, bequeathing
// folder attachments to descendant files.
func (fc *FileController) AttachAttributes(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req model.AttributeAttachRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid attach request", err)
		return
	}

	result, err := fc.attributeService.Attach(c, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrPermissionDenied):
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
		case errors.Is(err, bff_errors.ErrTemplateNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Attribute template not found", err)
		case errors.Is(err, bff_errors.ErrItemNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Item not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	c.JSON(http.StatusOK, model.APIResponse{
		Code:   http.StatusOK,
		Result: result.Result,
		Total:  result.Total,
	})
}

// BulkDetail endpoint fetches several items, applying the name-folder
// rule per item.
func (fc *FileController) BulkDetail(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	ids := strings.Split(c.Query("ids"), ",")
	if len(ids) == 0 || ids[0] == "" {
		util.RespondWithError(c, http.StatusBadRequest, "ids is required", bff_errors.ErrValidation)
		return
	}

	items, err := fc.metadataClient.GetItems(c, ids)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !fc.authz.AllItemsAllowed(identity, items) {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	util.Respond(c, http.StatusOK, items)
}

// SearchProjectFiles endpoint forwards a metadata search, rewriting
// wire zone integers into their canonical labels.
func (fc *FileController) SearchProjectFiles(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	code, err := fc.lookup.ResolveCode(c, c.Query("project_code"), c.Query("project_geid"), c.Query("project_id"))
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrValidation):
			util.RespondWithError(c, http.StatusBadRequest, "A project identifier is required", err)
		case errors.Is(err, bff_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	allowed, err := fc.authz.HasPermission(c, identity, code, "file", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	query := c.Request.URL.Query()
	query.Set("container_code", code)
	out, err := fc.metadataClient.SearchItems(c, query)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	if raw, ok := out["result"].([]any); ok {
		items := make([]map[string]any, 0, len(raw))
		for _, entry := range raw {
			if item, ok := entry.(map[string]any); ok {
				items = append(items, item)
			}
		}
		util.NormalizeItemZones(items)
	}
	if totals, ok := out["total_per_zone"].(map[string]any); ok {
		out["total_per_zone"] = util.NormalizeZoneTotals(totals)
	}

	c.JSON(http.StatusOK, out)
}

// ListCollections endpoint lists the caller's own collections.
func (fc *FileController) ListCollections(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	collections, err := fc.metadataClient.ListCollections(c, identity.Username, c.Query("project_code"))
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, collections)
}

// Tags endpoint dispatches between single-item tagging and the batch
// "entity" form sharing the same wildcard route.
func (fc *FileController) Tags(c *gin.Context) {
	if c.Param("id") == "entity" {
		fc.batchTags(c)
		return
	}
	fc.itemTags(c)
}

// itemTags replaces the tags of a single item.
func (fc *FileController) itemTags(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	item, err := fc.metadataClient.GetItem(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrItemNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Item not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	if !fc.allowTagging(c, identity, *item) {
		return
	}

	var req model.TagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid tags data", err)
		return
	}

	updated, err := fc.metadataClient.UpdateItemTags(c, item.ID, req.Tags)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, updated)
}

// batchTags tags several items at once, checking every item.
func (fc *FileController) batchTags(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req model.BatchTagsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid tags data", err)
		return
	}

	items, err := fc.metadataClient.GetItems(c, req.ItemIDs)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	for _, item := range items {
		if !fc.allowTagging(c, identity, item) {
			return
		}
	}

	if err := fc.metadataClient.BatchTagItems(c, req.ItemIDs, req.Tags); err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"ids": req.ItemIDs, "tags": req.Tags})
}

// allowTagging runs the tag permission and name-folder checks for one
// item, writing the 403 itself on denial.
func (fc *FileController) allowTagging(c *gin.Context, identity model.Identity, item model.Item) bool {
	allowed, err := fc.authz.HasPermission(c, identity, item.ContainerCode, "tags", util.ZoneLabel(item.Zone), "create")
	if err != nil {
		util.HandleClientError(c, err)
		return false
	}
	if !allowed || !fc.authz.AllowedByNameFolder(identity, item) {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return false
	}
	return true
}

// FilesMeta endpoint lists project files, scoping restricted roles to
// their own name folder.
func (fc *FileController) FilesMeta(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	code, err := fc.lookup.ResolveCode(c, c.Query("project_code"), c.Query("project_geid"), c.Query("project_id"))
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrValidation):
			util.RespondWithError(c, http.StatusBadRequest, "A project identifier is required", err)
		case errors.Is(err, bff_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	zone, err := util.ParseZone(c.DefaultQuery("zone", strconv.Itoa(util.ZoneGreenroom)))
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid zone", err)
		return
	}

	allowed, err := fc.authz.HasPermission(c, identity, code, "file", util.ZoneLabel(zone), "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	query := c.Request.URL.Query()
	query.Set("container_code", code)
	query.Set("zone", strconv.Itoa(zone))

	if restricted, ok := fc.restrictedToNameFolder(identity, code, zone); ok && restricted {
		parentPath := query.Get("parent_path")
		if parentPath == "" {
			query.Set("parent_path", identity.Username)
		} else {
			first, _, _ := strings.Cut(parentPath, ".")
			if first != identity.Username {
				util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
				return
			}
		}
	}

	resp, err := fc.metadataClient.ListItems(c, query)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// restrictedToNameFolder reports whether listings must be scoped to
// the caller's name folder in the given zone.
func (fc *FileController) restrictedToNameFolder(identity model.Identity, code string, zone int) (bool, bool) {
	if identity.IsPlatformAdmin() {
		return false, true
	}
	role, ok := identity.ProjectRole(code)
	if !ok {
		return false, false
	}
	switch role {
	case model.ProjectRoleContributor:
		return true, true
	case model.ProjectRoleCollaborator:
		return zone == util.ZoneGreenroom, true
	}
	return false, true
}

// PreDownload endpoint forwards a pre-signed download request after
// checking every requested file.
func (fc *FileController) PreDownload(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid download request", err)
		return
	}

	files, _ := body["files"].([]any)
	ids := make([]string, 0, len(files))
	for _, entry := range files {
		file, ok := entry.(map[string]any)
		if !ok {
			continue
		}
		if id, ok := file["id"].(string); ok && id != "" {
			ids = append(ids, id)
		}
	}
	if len(ids) == 0 {
		util.RespondWithError(c, http.StatusBadRequest, "files is required", bff_errors.ErrValidation)
		return
	}

	items, err := fc.metadataClient.GetItems(c, ids)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	for _, item := range items {
		allowed, err := fc.authz.HasPermission(c, identity, item.ContainerCode, "file", util.ZoneLabel(item.Zone), "download")
		if err != nil {
			util.HandleClientError(c, err)
			return
		}
		if !allowed || !fc.authz.AllowedByNameFolder(identity, item) {
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
			return
		}
	}

	body["operator"] = identity.Username
	resp, err := fc.downloadClient.PreDownload(c, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}
