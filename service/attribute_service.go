// service/attribute_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	logger "github.com/vre-platform/portal-bff/logging"
	"github.com/vre-platform/portal-bff/model"
)

// IAttributeService attaches attribute templates to items, bequeathing
// folder attachments to every descendant file.
type IAttributeService interface {
	Attach(ctx context.Context, identity model.Identity, req model.AttributeAttachRequest) (*model.AttributeAttachResult, error)
}

type AttributeService struct {
	metadataClient client.IMetadataClient
	authz          IAuthorizationService
}

var _ IAttributeService = &AttributeService{}

func NewAttributeService(metadataClient client.IMetadataClient, authz IAuthorizationService) *AttributeService {
	return &AttributeService{metadataClient: metadataClient, authz: authz}
}

// Attach applies a template's attributes to the given items. Folders
// are expanded to their descendant files; a file that already carries
// the template is reported as TERMINATED with attributes_duplicate and
// skipped. All remaining items are updated in one batch call.
func (s *AttributeService) Attach(ctx context.Context, identity model.Identity, req model.AttributeAttachRequest) (*model.AttributeAttachResult, error) {
	if _, err := s.metadataClient.GetTemplate(ctx, req.ManifestID); err != nil {
		return nil, err
	}

	items, err := s.metadataClient.GetItems(ctx, req.ItemIDs)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, bff_errors.ErrItemNotFound
	}

	for _, item := range items {
		if !s.authz.AllowedByNameFolder(identity, item) {
			return nil, bff_errors.ErrPermissionDenied
		}
	}

	result := &model.AttributeAttachResult{Result: []model.AttributeAttachItemResult{}}
	var updateIDs []string
	var updated []model.Item

	appendFile := func(file model.Item) {
		if _, duplicate := file.Attributes[req.ManifestID]; duplicate {
			result.Result = append(result.Result, model.AttributeAttachItemResult{
				Name:            file.Name,
				GEID:            file.ID,
				OperationStatus: model.AttachStatusTerminated,
				ErrorType:       "attributes_duplicate",
			})
			return
		}
		updateIDs = append(updateIDs, file.ID)
		updated = append(updated, file)
	}

	for _, item := range items {
		if item.Type == model.ItemTypeFolder {
			descendants, err := s.metadataClient.GetDescendantFiles(ctx, item)
			if err != nil {
				return nil, err
			}
			for _, descendant := range descendants {
				appendFile(descendant)
			}
			continue
		}
		appendFile(item)
	}

	if len(updateIDs) > 0 {
		if err := s.metadataClient.BatchUpdateAttributes(ctx, updateIDs, req.ManifestID, req.Attributes); err != nil {
			return nil, err
		}
	}
	for _, file := range updated {
		result.Result = append(result.Result, model.AttributeAttachItemResult{
			Name:            file.Name,
			GEID:            file.ID,
			OperationStatus: model.AttachStatusSucceed,
		})
	}
	result.Total = len(result.Result)

	logger.Info("Attribute template attached",
		zap.String("template_id", req.ManifestID),
		zap.String("project_code", req.ProjectCode),
		zap.Int("updated", len(updateIDs)),
		zap.Int("total", result.Total))
	return result, nil
}
