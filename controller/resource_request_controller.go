// controller/resource_request_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/util"
	helper_util "github.com/vre-platform/portal-bff/util/helper"
)

type ResourceRequestController struct {
	resourceRequestService service.IResourceRequestService
	authz                  service.IAuthorizationService
	lookup                 service.IProjectLookup
}

func NewResourceRequestController(
	resourceRequestService service.IResourceRequestService,
	authz service.IAuthorizationService,
	lookup service.IProjectLookup,
) *ResourceRequestController {
	return &ResourceRequestController{
		resourceRequestService: resourceRequestService,
		authz:                  authz,
		lookup:                 lookup,
	}
}

// RegisterRoutes registers the resource request API routes
func (rc *ResourceRequestController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/resource-requests", rc.List)
	v1.POST("/resource-requests", rc.Create)
	v1.PUT("/resource-request/:id/complete", rc.Complete)
	v1.DELETE("/resource-request/:id", rc.Delete)
}

// List endpoint. Non-admin callers only see their own requests.
func (rc *ResourceRequestController) List(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	page, pageSize, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	query := c.Request.URL.Query()
	requests, total, err := rc.resourceRequestService.List(c, identity, query)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.RespondPaged(c, http.StatusOK, requests, page, total, helper_util.NumOfPages(total, pageSize))
}

// Create endpoint files a resource request for the caller.
func (rc *ResourceRequestController) Create(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req model.ResourceRequestCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid resource request data", err)
		return
	}

	project, err := rc.lookup.GetByID(c, req.ProjectID)
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := rc.authz.HasPermission(c, identity, project.Code, "resource_request", "*", "create")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	created, err := rc.resourceRequestService.Create(c, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrUnknownResourceRequestFor):
			util.RespondWithError(c, http.StatusBadRequest, "Unknown requested resource", err)
		case errors.Is(err, bff_errors.ErrDuplicateResourceRequest):
			util.RespondWithError(c, http.StatusConflict, "An active request already exists", err)
		case errors.Is(err, bff_errors.ErrProjectNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, created)
}

// Complete endpoint marks a request fulfilled.
func (rc *ResourceRequestController) Complete(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	request, err := rc.resourceRequestService.Get(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrResourceRequestNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Resource request not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	project, err := rc.lookup.GetByID(c, request.ProjectID)
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := rc.authz.HasPermission(c, identity, project.Code, "resource_request", "*", "update")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	request, err = rc.resourceRequestService.Complete(c, identity, request.ID)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrResourceRequestNotFound):
			util.RespondWithError(c, http.StatusNotFound, "Resource request not found", err)
		case errors.Is(err, bff_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, request)
}

// Delete endpoint; platform admin only.
func (rc *ResourceRequestController) Delete(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if !identity.IsPlatformAdmin() {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	requestID := c.Param("id")
	if err := rc.resourceRequestService.Delete(c, requestID); err != nil {
		if errors.Is(err, bff_errors.ErrResourceRequestNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Resource request not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"id": requestID})
}
