// controller/controllers.go
package controller

import (
	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/service"
)

// Controllers aggregates every route handler group of the BFF.
type Controllers struct {
	User            *UserController
	Project         *ProjectController
	File            *FileController
	CopyRequest     *CopyRequestController
	ResourceRequest *ResourceRequestController
	Notification    *NotificationController
	Dataset         *DatasetController
}

func NewControllers(services *service.Services, clients *client.Clients) *Controllers {
	return &Controllers{
		User:            NewUserController(services.User),
		Project:         NewProjectController(services.Project, services.User, services.Authz, services.Lookup, clients.Auth, clients.Metadata, clients.Provenance),
		File:            NewFileController(services.Attribute, services.Authz, services.Lookup, clients.Metadata, clients.Download),
		CopyRequest:     NewCopyRequestController(services.CopyRequest, services.Authz),
		ResourceRequest: NewResourceRequestController(services.ResourceRequest, services.Authz, services.Lookup),
		Notification:    NewNotificationController(services.Email, services.Authz, clients.Notification),
		Dataset:         NewDatasetController(clients.Dataset, clients.Provenance),
	}
}
