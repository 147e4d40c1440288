// controller/copy_request_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/util"
)

type CopyRequestController struct {
	copyRequestService service.ICopyRequestService
	authz              service.IAuthorizationService
}

func NewCopyRequestController(
	copyRequestService service.ICopyRequestService,
	authz service.IAuthorizationService,
) *CopyRequestController {
	return &CopyRequestController{
		copyRequestService: copyRequestService,
		authz:              authz,
	}
}

// RegisterRoutes registers the copy request API routes
func (cc *CopyRequestController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	copy := v1.Group("/request/copy/:project_code")
	{
		copy.POST("", cc.Create)
		copy.GET("", cc.List)
		copy.PUT("/files", cc.CompleteFiles)
	}
}

// Create endpoint submits a greenroom-to-core copy request.
func (cc *CopyRequestController) Create(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid copy request data", err)
		return
	}

	resp, err := cc.copyRequestService.Create(c, identity, c.Param("project_code"), body)
	if err != nil {
		if errors.Is(err, bff_errors.ErrPermissionDenied) {
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// List endpoint returns the copy requests of a project.
func (cc *CopyRequestController) List(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := cc.copyRequestService.List(c, identity, c.Param("project_code"), c.Request.URL.Query())
	if err != nil {
		if errors.Is(err, bff_errors.ErrPermissionDenied) {
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// CompleteFiles endpoint patches the per-file review state.
func (cc *CopyRequestController) CompleteFiles(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	projectCode := c.Param("project_code")
	role, ok := identity.ProjectRole(projectCode)
	if !identity.IsPlatformAdmin() && (!ok || role != model.ProjectRoleAdmin) {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid copy request data", err)
		return
	}

	resp, err := cc.copyRequestService.CompleteFiles(c, identity, projectCode, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}
