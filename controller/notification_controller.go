// controller/notification_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/util"
)

type NotificationController struct {
	emailService       service.IEmailService
	authz              service.IAuthorizationService
	notificationClient client.INotificationClient
}

func NewNotificationController(
	emailService service.IEmailService,
	authz service.IAuthorizationService,
	notificationClient client.INotificationClient,
) *NotificationController {
	return &NotificationController{
		emailService:       emailService,
		authz:              authz,
		notificationClient: notificationClient,
	}
}

// RegisterRoutes registers the announcement and notification API routes
func (nc *NotificationController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/announcements", nc.ListAnnouncements)
	v1.POST("/announcements", nc.CreateAnnouncement)

	v1.GET("/notifications", nc.ListNotifications)
	v1.POST("/notification", nc.CreateNotification)
	v1.PUT("/notification/:id", nc.UpdateNotification)
	v1.DELETE("/notification/:id", nc.DeleteNotification)

	v1.POST("/email/contact-us", nc.ContactUs)
}

// ListAnnouncements endpoint forwards the project announcement feed.
func (nc *NotificationController) ListAnnouncements(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	if projectCode := c.Query("project_code"); projectCode != "" {
		allowed, err := nc.authz.HasPermission(c, identity, projectCode, "announcement", "*", "view")
		if err != nil {
			util.HandleClientError(c, err)
			return
		}
		if !allowed {
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
			return
		}
	}

	resp, err := nc.notificationClient.ListAnnouncements(c, c.Request.URL.Query())
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// CreateAnnouncement endpoint.
func (nc *NotificationController) CreateAnnouncement(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid announcement data", err)
		return
	}

	projectCode, _ := body["project_code"].(string)
	allowed, err := nc.authz.HasPermission(c, identity, projectCode, "announcement", "*", "create")
	if err != nil {
		util.HandleClientError(c, err)
		return
	}
	if !allowed {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	body["publisher"] = identity.Username
	resp, err := nc.notificationClient.CreateAnnouncement(c, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// ListNotifications endpoint forwards the maintenance notification feed.
func (nc *NotificationController) ListNotifications(c *gin.Context) {
	if _, err := util.IdentityFromContext(c); err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	resp, err := nc.notificationClient.ListNotifications(c, c.Request.URL.Query())
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// requirePlatformAdmin aborts with 403 unless the caller is a platform
// administrator; notification mutations are admin only.
func (nc *NotificationController) requirePlatformAdmin(c *gin.Context) (model.Identity, bool) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return model.Identity{}, false
	}
	if !identity.IsPlatformAdmin() {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return model.Identity{}, false
	}
	return identity, true
}

// CreateNotification endpoint.
func (nc *NotificationController) CreateNotification(c *gin.Context) {
	if _, ok := nc.requirePlatformAdmin(c); !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification data", err)
		return
	}

	resp, err := nc.notificationClient.CreateNotification(c, body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// UpdateNotification endpoint.
func (nc *NotificationController) UpdateNotification(c *gin.Context) {
	if _, ok := nc.requirePlatformAdmin(c); !ok {
		return
	}

	var body map[string]any
	if err := c.ShouldBindJSON(&body); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid notification data", err)
		return
	}

	resp, err := nc.notificationClient.UpdateNotification(c, c.Param("id"), body)
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// DeleteNotification endpoint.
func (nc *NotificationController) DeleteNotification(c *gin.Context) {
	if _, ok := nc.requirePlatformAdmin(c); !ok {
		return
	}

	resp, err := nc.notificationClient.DeleteNotification(c, c.Param("id"))
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// ContactUs endpoint forwards a portal contact form to support.
func (nc *NotificationController) ContactUs(c *gin.Context) {
	if _, err := util.IdentityFromContext(c); err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req model.ContactUsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid contact form data", err)
		return
	}

	if err := nc.emailService.ContactUs(c, req); err != nil {
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"email": req.Email})
}
