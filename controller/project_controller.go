// controller/project_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/util"
	helper_util "github.com/vre-platform/portal-bff/util/helper"
)

type ProjectController struct {
	projectService   service.IProjectService
	userService      service.IUserService
	authz            service.IAuthorizationService
	lookup           service.IProjectLookup
	authClient       client.IAuthClient
	metadataClient   client.IMetadataClient
	provenanceClient client.IProvenanceClient
}

func NewProjectController(
	projectService service.IProjectService,
	userService service.IUserService,
	authz service.IAuthorizationService,
	lookup service.IProjectLookup,
	authClient client.IAuthClient,
	metadataClient client.IMetadataClient,
	provenanceClient client.IProvenanceClient,
) *ProjectController {
	return &ProjectController{
		projectService:   projectService,
		userService:      userService,
		authz:            authz,
		lookup:           lookup,
		authClient:       authClient,
		metadataClient:   metadataClient,
		provenanceClient: provenanceClient,
	}
}

// RegisterRoutes registers the project API routes
func (pc *ProjectController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/projects", pc.ListProjects)
	v1.POST("/projects", pc.CreateProject)
	v1.GET("/project/:geid", pc.GetProject)
	v1.PUT("/project/:geid", pc.UpdateProject)

	containers := v1.Group("/containers")
	{
		containers.GET("/:id/users", pc.ListProjectUsers)
		containers.GET("/:id/roles", pc.ListProjectRoles)
		containers.POST("/:id/users/:username", pc.AddMember)
		containers.PUT("/:id/users/:username", pc.ChangeMemberRole)
		containers.DELETE("/:id/users/:username", pc.RemoveMember)
	}

	v1.GET("/audit-logs/:project_id", pc.AuditLogs)

	v2.POST("/containers/:id/folder", pc.CreateFolder)
}

// ListProjects endpoint. Non-admin callers only see discoverable
// projects; the downstream body is forwarded verbatim.
func (pc *ProjectController) ListProjects(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := pc.projectService.ListProjects(c, identity, c.Request.URL.Query())
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// CreateProject endpoint runs the project creation workflow.
func (pc *ProjectController) CreateProject(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, "", "project", "*", "create")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var req model.ProjectCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		return
	}

	project, err := pc.projectService.CreateProject(c, identity, req)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrInvalidProjectCode),
			errors.Is(err, bff_errors.ErrInvalidProjectName),
			errors.Is(err, bff_errors.ErrIconTooLarge):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		case errors.Is(err, bff_errors.ErrProjectConflict):
			util.RespondWithError(c, http.StatusConflict, "Project code already taken", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, project)
}

// GetProject endpoint.
func (pc *ProjectController) GetProject(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByGEID(c, c.Param("geid"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "project", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	util.Respond(c, http.StatusOK, project)
}

// UpdateProject endpoint.
func (pc *ProjectController) UpdateProject(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	geid := c.Param("geid")
	project, err := pc.lookup.GetByGEID(c, geid)
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "project", "*", "update")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var req model.ProjectUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid project data", err)
		return
	}

	updated, err := pc.projectService.UpdateProject(c, geid, req)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrInvalidProjectName),
			errors.Is(err, bff_errors.ErrIconTooLarge):
			util.RespondWithError(c, http.StatusBadRequest, err.Error(), err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, updated)
}

// ListProjectUsers endpoint returns the members of a project.
func (pc *ProjectController) ListProjectUsers(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "users", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	page, pageSize, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	users, total, err := pc.authClient.ListProjectUsers(c, project.Code, page, pageSize)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.RespondPaged(c, http.StatusOK, users, page, total, helper_util.NumOfPages(total, pageSize))
}

// ListProjectRoles endpoint returns the realm roles of a project.
func (pc *ProjectController) ListProjectRoles(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "users", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	roles, err := pc.authClient.ListProjectRoles(c, project.Code)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, roles)
}

// AddMember endpoint adds a user to a project.
func (pc *ProjectController) AddMember(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "invite", "*", "create")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var req model.MemberAddRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		return
	}
	req.Username = c.Param("username")

	if err := pc.userService.AddMember(c, identity, project.ID, req); err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrInvalidProjectRole):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project role", err)
		case errors.Is(err, bff_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"username": req.Username, "role": req.Role})
}

// ChangeMemberRole endpoint.
func (pc *ProjectController) ChangeMemberRole(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "users", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var req model.MemberChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid member data", err)
		return
	}

	username := c.Param("username")
	if err := pc.userService.ChangeMemberRole(c, identity, project.ID, username, req); err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrSelfRoleChange):
			util.RespondWithError(c, http.StatusForbidden, "Users cannot change their own role", err)
		case errors.Is(err, bff_errors.ErrInvalidProjectRole):
			util.RespondWithError(c, http.StatusBadRequest, "Invalid project role", err)
		case errors.Is(err, bff_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"username": username, "role": req.NewRole})
}

// RemoveMember endpoint.
func (pc *ProjectController) RemoveMember(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "users", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	username := c.Param("username")
	if err := pc.userService.RemoveMember(c, identity, project.ID, username); err != nil {
		if errors.Is(err, bff_errors.ErrUserNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "User is not a member of the project", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"username": username})
}

// AuditLogs endpoint forwards the provenance audit listing.
func (pc *ProjectController) AuditLogs(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("project_id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "audit_logs", "*", "view")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	resp, err := pc.provenanceClient.AuditLogs(c, project.ID, c.Request.URL.Query())
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// CreateFolder endpoint creates a folder in a project zone. The
// name-folder rule applies to the target parent path.
func (pc *ProjectController) CreateFolder(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	project, err := pc.lookup.GetByID(c, c.Param("id"))
	if err != nil {
		if errors.Is(err, bff_errors.ErrProjectNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Project not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	var req model.FolderCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid folder data", err)
		return
	}
	zone, err := util.ParseZone(req.Zone)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid zone", err)
		return
	}

	allowed, err := pc.authz.HasPermission(c, identity, project.Code, "file", "*", "upload")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	// A folder without an explicit parent goes under the caller's own
	// name folder.
	if req.ParentID == "" && req.ParentPath == "" {
		nameFolder, err := pc.metadataClient.GetNameFolder(c, identity.Username, project.Code, zone)
		if err != nil {
			if errors.Is(err, bff_errors.ErrItemNotFound) {
				util.RespondWithError(c, http.StatusNotFound, "Name folder not found", err)
				return
			}
			util.HandleClientError(c, err)
			return
		}
		req.ParentID = nameFolder.ID
		req.ParentPath = nameFolder.Name
	}

	target := model.Item{
		Type:          model.ItemTypeFolder,
		ContainerCode: project.Code,
		Zone:          zone,
		ParentPath:    req.ParentPath,
		Name:          req.Name,
	}
	if !pc.authz.AllowedByNameFolder(identity, target) {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	folder, err := pc.metadataClient.CreateFolder(c, map[string]any{
		"name":           req.Name,
		"type":           model.ItemTypeFolder,
		"zone":           zone,
		"container_code": project.Code,
		"container_type": "project",
		"parent":         req.ParentID,
		"parent_path":    req.ParentPath,
		"owner":          identity.Username,
	})
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, folder)
}
