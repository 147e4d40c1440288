// service/project_service.go
package service

import (
	"context"
	"errors"
	"net/url"

	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/config"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/util"
)

// IProjectService handles project listing and the multi-service
// project creation workflow.
type IProjectService interface {
	CreateProject(ctx context.Context, identity model.Identity, req model.ProjectCreateRequest) (*model.Project, error)
	UpdateProject(ctx context.Context, geid string, req model.ProjectUpdateRequest) (*model.Project, error)
	GetProject(ctx context.Context, geid string) (*model.Project, error)
	ListProjects(ctx context.Context, identity model.Identity, query url.Values) (*client.Response, error)
}

type ProjectService struct {
	projectClient  client.IProjectClient
	authClient     client.IAuthClient
	metadataClient client.IMetadataClient
	objectStore    client.IObjectStoreClient
	directory      client.IDirectoryClient
	lookup         IProjectLookup
	validationUtil *util.ValidationUtil
}

var _ IProjectService = &ProjectService{}

func NewProjectService(
	projectClient client.IProjectClient,
	authClient client.IAuthClient,
	metadataClient client.IMetadataClient,
	objectStore client.IObjectStoreClient,
	directory client.IDirectoryClient,
	lookup IProjectLookup,
	validationUtil *util.ValidationUtil,
) *ProjectService {
	return &ProjectService{
		projectClient:  projectClient,
		authClient:     authClient,
		metadataClient: metadataClient,
		objectStore:    objectStore,
		directory:      directory,
		lookup:         lookup,
		validationUtil: validationUtil,
	}
}

// CreateProject runs the project creation workflow. The steps are not
// wrapped in a distributed transaction: a failure after the project
// record exists surfaces a 500 and leaves partial state for operators
// to reconcile. Bucket and name-folder creation are idempotent, and
// re-invocation of the same code is rejected by the duplicate check.
func (s *ProjectService) CreateProject(ctx context.Context, identity model.Identity, req model.ProjectCreateRequest) (*model.Project, error) {
	if err := s.validationUtil.ValidateProjectCreate(req); err != nil {
		return nil, err
	}

	// Duplicate check before touching any downstream state.
	_, err := s.projectClient.GetProject(ctx, req.Code)
	if err == nil {
		return nil, bff_errors.ErrProjectConflict
	}
	if !errors.Is(err, bff_errors.ErrProjectNotFound) {
		return nil, err
	}

	project, err := s.projectClient.CreateProject(ctx, map[string]any{
		"name":         req.Name,
		"code":         req.Code,
		"description":  req.Description,
		"tags":         req.Tags,
		"discoverable": req.Discoverable,
	})
	if err != nil {
		return nil, err
	}
	logger.Info("Project record created",
		zap.String("project_code", req.Code),
		zap.String("creator", identity.Username))

	if req.Icon != "" {
		if err := s.projectClient.UploadLogo(ctx, req.Code, req.Icon); err != nil {
			return nil, err
		}
	}

	prefixes := []string{
		config.GetString("zones.greenroomPrefix"),
		config.GetString("zones.corePrefix"),
	}
	for _, prefix := range prefixes {
		if err := s.objectStore.EnsureBucket(ctx, prefix+req.Code); err != nil {
			return nil, err
		}
	}
	if err := s.objectStore.CreateProjectPolicies(ctx, req.Code); err != nil {
		return nil, err
	}

	if err := s.directory.CreateProjectGroup(req.Code, req.Description); err != nil {
		return nil, err
	}

	if err := s.authClient.CreateProjectRoles(ctx, req.Code); err != nil {
		return nil, err
	}

	admins, err := s.authClient.ListPlatformAdmins(ctx)
	if err != nil {
		return nil, err
	}
	usernames := make([]string, 0, len(admins))
	for _, admin := range admins {
		usernames = append(usernames, admin.Username)
	}
	zones := []int{util.ZoneGreenroom, util.ZoneCore}
	if err := s.metadataClient.BatchCreateNameFolders(ctx, usernames, req.Code, zones); err != nil {
		return nil, err
	}

	s.lookup.Invalidate(ctx, project)
	logger.Info("Project creation completed", zap.String("project_code", req.Code))
	return project, nil
}

func (s *ProjectService) UpdateProject(ctx context.Context, geid string, req model.ProjectUpdateRequest) (*model.Project, error) {
	body := map[string]any{}
	if req.Name != "" {
		if err := s.validationUtil.ValidateProjectName(req.Name); err != nil {
			return nil, err
		}
		body["name"] = req.Name
	}
	if req.Description != "" {
		body["description"] = req.Description
	}
	if req.Tags != nil {
		body["tags"] = req.Tags
	}
	if req.Discoverable != nil {
		body["discoverable"] = *req.Discoverable
	}
	if req.Icon != "" {
		if err := s.validationUtil.ValidateIcon(req.Icon); err != nil {
			return nil, err
		}
	}

	project, err := s.projectClient.UpdateProject(ctx, geid, body)
	if err != nil {
		return nil, err
	}
	if req.Icon != "" {
		if err := s.projectClient.UploadLogo(ctx, project.Code, req.Icon); err != nil {
			return nil, err
		}
	}
	s.lookup.Invalidate(ctx, project)
	return project, nil
}

func (s *ProjectService) GetProject(ctx context.Context, geid string) (*model.Project, error) {
	return s.lookup.GetByGEID(ctx, geid)
}

// ListProjects proxies the project listing; non-admin callers only see
// discoverable projects.
func (s *ProjectService) ListProjects(ctx context.Context, identity model.Identity, query url.Values) (*client.Response, error) {
	if !identity.IsPlatformAdmin() {
		query.Set("discoverable", "true")
	}
	return s.projectClient.ListProjects(ctx, query)
}
