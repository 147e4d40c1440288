// controller/user_controller.go
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

type UserController struct {
	userService service.IUserService
}

func NewUserController(userService service.IUserService) *UserController {
	return &UserController{
		userService: userService,
	}
}

// RegisterRoutes registers the user API routes
func (uc *UserController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/users/:username", uc.GetUser)
	v1.PUT("/users/:username", uc.UpdateAccount)
	v1.PUT("/users/ad-user", uc.FirstLogin)
	v1.GET("/user/status", uc.Status)
}

// GetUser endpoint. Callers may fetch their own profile; anyone else
// requires project admin rights in ?project_code or platform admin.
func (uc *UserController) GetUser(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	user, err := uc.userService.GetUser(c, identity, c.Param("username"), c.Query("project_code"))
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrPermissionDenied):
			util.RespondWithError(c, http.StatusForbidden, "Permission denied", err)
		case errors.Is(err, bff_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, user)
}

// UpdateAccount endpoint enables or disables a user account.
func (uc *UserController) UpdateAccount(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}
	if !identity.IsPlatformAdmin() {
		util.RespondWithError(c, http.StatusForbidden, "Permission denied", bff_errors.ErrPermissionDenied)
		return
	}

	var req model.AccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid account request", err)
		return
	}
	if req.UserEmail == "" && req.UserID == "" {
		util.RespondWithError(c, http.StatusBadRequest, "user_email or user_id is required", bff_errors.ErrValidation)
		return
	}

	user, err := uc.userService.UpdateAccountStatus(c, identity, c.Param("username"), req)
	if err != nil {
		switch {
		case errors.Is(err, bff_errors.ErrUsernameMismatch):
			util.RespondWithError(c, http.StatusBadRequest, "Targeted account does not match the path username", err)
		case errors.Is(err, bff_errors.ErrUserNotFound):
			util.RespondWithError(c, http.StatusNotFound, "User not found", err)
		default:
			util.HandleClientError(c, err)
		}
		return
	}

	util.Respond(c, http.StatusOK, user)
}

// FirstLogin endpoint completes the caller's own profile after their
// first authentication.
func (uc *UserController) FirstLogin(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	var req model.ADUserUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid user data", err)
		return
	}

	if err := uc.userService.FirstLogin(c, identity, req); err != nil {
		if errors.Is(err, bff_errors.ErrUsernameMismatch) {
			util.RespondWithError(c, http.StatusForbidden, "Token does not match the requested user", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{"username": req.Username})
}

// Status endpoint returns the caller's own account state. Reaching it
// implies the account is active; inactive users never pass auth.
func (uc *UserController) Status(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	util.Respond(c, http.StatusOK, gin.H{
		"id":       identity.ID,
		"username": identity.Username,
		"email":    identity.Email,
		"role":     identity.Role,
		"status":   "active",
	})
}
