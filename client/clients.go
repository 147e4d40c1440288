// client/clients.go
package client

// Clients aggregates every downstream service client of the BFF.
type Clients struct {
	Auth         IAuthClient
	Project      IProjectClient
	Metadata     IMetadataClient
	Approval     IApprovalClient
	Notification INotificationClient
	Download     IDownloadClient
	Dataset      IDatasetClient
	Provenance   IProvenanceClient
	ObjectStore  IObjectStoreClient
	Directory    IDirectoryClient
}

// NewClients wires every downstream client on the shared HTTP pool.
func NewClients(http *HTTPClient) (*Clients, error) {
	objectStore, err := NewObjectStoreClient()
	if err != nil {
		return nil, err
	}
	return &Clients{
		Auth:         NewAuthClient(http),
		Project:      NewProjectClient(http),
		Metadata:     NewMetadataClient(http),
		Approval:     NewApprovalClient(http),
		Notification: NewNotificationClient(http),
		Download:     NewDownloadClient(http),
		Dataset:      NewDatasetClient(http),
		Provenance:   NewProvenanceClient(http),
		ObjectStore:  objectStore,
		Directory:    NewDirectoryClient(),
	}, nil
}
