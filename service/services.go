// service/services.go
package service

// Services aggregates every business service of the BFF.
type Services struct {
	Authz           IAuthorizationService
	Lookup          IProjectLookup
	Project         IProjectService
	User            IUserService
	CopyRequest     ICopyRequestService
	Attribute       IAttributeService
	ResourceRequest IResourceRequestService
	Email           IEmailService
}
