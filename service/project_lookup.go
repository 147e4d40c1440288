// service/project_lookup.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	"github.com/vre-platform/portal-bff/db"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

// IProjectLookup resolves any project identifier kind to the canonical
// project record, with a short-TTL cache in front of the project
// service.
type IProjectLookup interface {
	GetByID(ctx context.Context, projectID string) (*model.Project, error)
	GetByGEID(ctx context.Context, geid string) (*model.Project, error)
	GetByCode(ctx context.Context, code string) (*model.Project, error)
	ResolveCode(ctx context.Context, code, geid, id string) (string, error)
	Invalidate(ctx context.Context, project *model.Project)
}

type ProjectLookup struct {
	projectClient client.IProjectClient
}

var _ IProjectLookup = &ProjectLookup{}

func NewProjectLookup(projectClient client.IProjectClient) *ProjectLookup {
	return &ProjectLookup{projectClient: projectClient}
}

func (l *ProjectLookup) GetByID(ctx context.Context, projectID string) (*model.Project, error) {
	return l.get(ctx, "id", projectID)
}

func (l *ProjectLookup) GetByGEID(ctx context.Context, geid string) (*model.Project, error) {
	return l.get(ctx, "geid", geid)
}

func (l *ProjectLookup) GetByCode(ctx context.Context, code string) (*model.Project, error) {
	return l.get(ctx, "code", code)
}

func (l *ProjectLookup) get(ctx context.Context, kind, value string) (*model.Project, error) {
	cached, err := db.GetCachedProject(ctx, kind, value)
	if err != nil {
		logger.Warn("Project cache read failed", zap.Error(err))
	}
	if cached != nil {
		return cached, nil
	}

	project, err := l.projectClient.GetProject(ctx, value)
	if err != nil {
		return nil, err
	}
	if err := db.CacheProject(ctx, kind, value, project); err != nil {
		logger.Warn("Project cache write failed", zap.Error(err))
	}
	return project, nil
}

// ResolveCode picks the first present identifier in the fixed priority
// code > geid > id and resolves it to the canonical project code.
func (l *ProjectLookup) ResolveCode(ctx context.Context, code, geid, id string) (string, error) {
	switch {
	case code != "":
		project, err := l.GetByCode(ctx, code)
		if err != nil {
			return "", err
		}
		return project.Code, nil
	case geid != "":
		project, err := l.GetByGEID(ctx, geid)
		if err != nil {
			return "", err
		}
		return project.Code, nil
	case id != "":
		project, err := l.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		return project.Code, nil
	}
	return "", bff_errors.ErrValidation
}

// Invalidate drops a project's cache entries after create or update.
func (l *ProjectLookup) Invalidate(ctx context.Context, project *model.Project) {
	if err := db.DeleteCachedProject(ctx, project); err != nil {
		logger.Warn("Project cache invalidation failed", zap.Error(err))
	}
}
