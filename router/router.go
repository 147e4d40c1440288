// router/router.go

package router

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	"github.com/vre-platform/portal-bff/controller"
	"github.com/vre-platform/portal-bff/middleware"
)

func SetupRouter(
	controllers *controller.Controllers,
	authClient client.IAuthClient,
) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.Logger())
	router.Use(middleware.Metrics())
	router.Use(middleware.Tracing())
	router.Use(middleware.RateLimiter(
		config.GetInt("rateLimit.requests"),
		config.GetDuration("rateLimit.window"),
	))
	router.Use(middleware.Auth(authClient))

	v1 := router.Group("/v1")
	v2 := router.Group("/v2")

	v1.GET("/health", func(c *gin.Context) {
		c.Status(http.StatusNoContent)
	})
	v1.GET("/metrics", gin.WrapH(promhttp.Handler()))

	controllers.User.RegisterRoutes(v1, v2)
	controllers.Project.RegisterRoutes(v1, v2)
	controllers.File.RegisterRoutes(v1, v2)
	controllers.CopyRequest.RegisterRoutes(v1, v2)
	controllers.ResourceRequest.RegisterRoutes(v1, v2)
	controllers.Notification.RegisterRoutes(v1, v2)
	controllers.Dataset.RegisterRoutes(v1, v2)

	return router
}
