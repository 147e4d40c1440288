package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	"github.com/vre-platform/portal-bff/controller"
	"github.com/vre-platform/portal-bff/db"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/router"
	"github.com/vre-platform/portal-bff/service"
	"github.com/vre-platform/portal-bff/tracing"
	"github.com/vre-platform/portal-bff/util"
)

func main() {
	// Initialize configuration
	if err := config.InitConfig(); err != nil {
		log.Fatalf("Failed to initialize config: %v", err)
	}

	// Initialize logger
	logger.InitLogger(config.GetString("log.dir"))
	defer logger.Sync()

	// Initialize tracing
	tracerCloser, err := tracing.InitTracer()
	if err != nil {
		logger.Fatal("Failed to initialize tracer", zap.Error(err))
	}
	defer tracerCloser.Close()

	// Initialize Redis
	if err := db.InitRedis(); err != nil {
		logger.Fatal("Failed to initialize Redis", zap.Error(err))
	}
	defer db.CloseRedis()

	// Initialize downstream clients
	httpClient := client.NewHTTPClient()
	clients, err := client.NewClients(httpClient)
	if err != nil {
		logger.Fatal("Failed to initialize downstream clients", zap.Error(err))
	}

	// Initialize services
	validationUtil := util.NewValidationUtil()
	authz := service.NewAuthorizationService(clients.Auth)
	lookup := service.NewProjectLookup(clients.Project)
	emailService := service.NewEmailService(clients.Notification)
	services := &service.Services{
		Authz:  authz,
		Lookup: lookup,
		Email:  emailService,
		Project: service.NewProjectService(
			clients.Project,
			clients.Auth,
			clients.Metadata,
			clients.ObjectStore,
			clients.Directory,
			lookup,
			validationUtil,
		),
		User: service.NewUserService(
			clients.Auth,
			clients.Metadata,
			clients.Project,
			clients.Directory,
			lookup,
			emailService,
		),
		CopyRequest: service.NewCopyRequestService(clients.Approval),
		Attribute:   service.NewAttributeService(clients.Metadata, authz),
		ResourceRequest: service.NewResourceRequestService(
			clients.Project,
			clients.Auth,
			lookup,
			emailService,
		),
	}

	// Initialize controllers
	controllers := controller.NewControllers(services, clients)

	// Set up Gin
	gin.SetMode(gin.ReleaseMode)
	engine := router.SetupRouter(controllers, clients.Auth)

	// Set up the server
	server := &http.Server{
		Addr:    fmt.Sprintf(":%s", config.GetString("server.port")),
		Handler: engine,
	}

	// Start the server in a goroutine
	go func() {
		logger.Info("Starting server", zap.String("port", config.GetString("server.port")))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	// Wait for interrupt signal to gracefully shut down the server
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("Server forced to shutdown", zap.Error(err))
	}

	logger.Info("Server exiting")
}
