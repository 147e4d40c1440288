// middleware/auth_test.go
package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"os"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	test_mock "github.com/stretchr/testify/mock"

	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/middleware"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/test/mock"
	"github.com/vre-platform/portal-bff/util"
)

func TestMain(m *testing.M) {
	_ = config.InitConfig()
	logger.InitLogger(os.TempDir())
	defer logger.Sync()
	gin.SetMode(gin.TestMode)
	os.Exit(m.Run())
}

func signToken(t *testing.T, username string, realmRoles []string) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"preferred_username": username,
		"realm_access":       map[string]any{"roles": realmRoles},
	})
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)
	return signed
}

func setupAuthRouter(authClient *mock.MockAuthClient) *gin.Engine {
	router := gin.New()
	router.Use(middleware.Auth(authClient))
	router.GET("/v1/whoami", func(c *gin.Context) {
		identity, err := util.IdentityFromContext(c)
		if err != nil {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, identity)
	})
	router.GET("/v1/health", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	return router
}

func TestAuth_MissingToken(t *testing.T) {
	router := setupAuthRouter(&mock.MockAuthClient{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/whoami", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), `"code":401`)
}

func TestAuth_MalformedToken(t *testing.T) {
	router := setupAuthRouter(&mock.MockAuthClient{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_InactiveUser(t *testing.T) {
	authClient := &mock.MockAuthClient{}
	authClient.On("GetUser", test_mock.Anything, "bob").
		Return(&model.AuthUser{
			Username:   "bob",
			Attributes: model.UserAttributes{Status: "disabled"},
		}, nil)
	router := setupAuthRouter(authClient)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "bob", nil))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "user is not active")
}

func TestAuth_UnknownUser(t *testing.T) {
	authClient := &mock.MockAuthClient{}
	authClient.On("GetUser", test_mock.Anything, "ghost").
		Return(nil, bff_errors.ErrUserNotFound)
	router := setupAuthRouter(authClient)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "ghost", nil))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuth_ActiveUserResolved(t *testing.T) {
	authClient := &mock.MockAuthClient{}
	authClient.On("GetUser", test_mock.Anything, "bob").
		Return(&model.AuthUser{
			ID:         "u1",
			Username:   "bob",
			Email:      "bob@site.org",
			Role:       model.PlatformRoleMember,
			Attributes: model.UserAttributes{Status: "active"},
		}, nil)
	router := setupAuthRouter(authClient)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "bob", []string{"proj1-admin"}))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"username":"bob"`)
	assert.Contains(t, w.Body.String(), "proj1-admin")
}

func TestAuth_HealthSkipsAuthentication(t *testing.T) {
	router := setupAuthRouter(&mock.MockAuthClient{})

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/v1/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNoContent, w.Code)
}
