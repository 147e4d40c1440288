// util/http_util.go
package util

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

const identityKey = "identity"

// RespondWithError writes the standard envelope with an error message.
func RespondWithError(c *gin.Context, code int, message string, err error) {
	logger.Error(message,
		zap.Error(err),
		zap.String("path", c.Request.URL.Path),
		zap.String("method", c.Request.Method),
		zap.String("correlation_id", CorrelationID(c)))
	c.JSON(code, model.APIResponse{Code: code, ErrorMsg: message, Result: ""})
}

// Respond writes a successful envelope.
func Respond(c *gin.Context, code int, result any) {
	c.JSON(code, model.APIResponse{Code: code, Result: result})
}

// RespondPaged writes a successful envelope with pagination fields.
func RespondPaged(c *gin.Context, code int, result any, page, total, numOfPages int) {
	c.JSON(code, model.APIResponse{
		Code:       code,
		Result:     result,
		Page:       page,
		Total:      total,
		NumOfPages: numOfPages,
	})
}

// HandleClientError translates a downstream client error into a
// response. Well-formed downstream 4xx bodies are forwarded verbatim;
// anything else becomes an internal error envelope.
func HandleClientError(c *gin.Context, err error) {
	var respErr *client.ResponseError
	if errors.As(err, &respErr) && respErr.Status < http.StatusInternalServerError {
		c.Data(respErr.Status, "application/json", respErr.Body)
		return
	}
	RespondWithError(c, http.StatusInternalServerError, "downstream service error", err)
}

// SetIdentity stores the resolved caller identity on the request.
func SetIdentity(c *gin.Context, identity model.Identity) {
	c.Set(identityKey, identity)
}

// IdentityFromContext returns the caller identity resolved by the auth
// middleware.
func IdentityFromContext(c *gin.Context) (model.Identity, error) {
	v, exists := c.Get(identityKey)
	if !exists {
		return model.Identity{}, bff_errors.ErrUnauthorized
	}
	identity, ok := v.(model.Identity)
	if !ok {
		return model.Identity{}, bff_errors.ErrUnauthorized
	}
	return identity, nil
}

// CorrelationID returns the request correlation id, generated by the
// logger middleware.
func CorrelationID(c *gin.Context) string {
	return c.GetString("correlationID")
}
