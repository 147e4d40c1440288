// controller/dataset_controller.go
package controller

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vre-platform/portal-bff/client"
	bff_errors "github.com/vre-platform/portal-bff/errors"
	"github.com/vre-platform/portal-bff/model"
	"github.com/vre-platform/portal-bff/util"
)

type DatasetController struct {
	datasetClient    client.IDatasetClient
	provenanceClient client.IProvenanceClient
}

func NewDatasetController(
	datasetClient client.IDatasetClient,
	provenanceClient client.IProvenanceClient,
) *DatasetController {
	return &DatasetController{
		datasetClient:    datasetClient,
		provenanceClient: provenanceClient,
	}
}

// RegisterRoutes registers the dataset API routes. The preview route
// carries a /dataset prefix because a bare /:id wildcard cannot
// coexist with the static v1 routes.
func (dc *DatasetController) RegisterRoutes(v1, v2 *gin.RouterGroup) {
	v1.GET("/dataset/:file_id/preview", dc.PreviewFile)
	v1.GET("/activity-logs/:dataset_code", dc.ActivityLogs)
}

// PreviewFile endpoint streams a dataset file preview. Only the
// dataset creator may preview its files.
func (dc *DatasetController) PreviewFile(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	datasetGEID := c.Query("dataset_geid")
	if datasetGEID == "" {
		util.RespondWithError(c, http.StatusBadRequest, "dataset_geid is required", bff_errors.ErrValidation)
		return
	}

	dataset, err := dc.datasetClient.GetDataset(c, datasetGEID)
	if err != nil {
		if errors.Is(err, bff_errors.ErrItemNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Dataset not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}
	if dataset.Creator != identity.Username {
		c.JSON(http.StatusForbidden, model.APIResponse{
			Code:   http.StatusForbidden,
			Result: "No permission for this dataset",
		})
		return
	}

	resp, err := dc.datasetClient.PreviewFile(c, dataset.ID, c.Param("file_id"))
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}

// ActivityLogs endpoint forwards a dataset's activity log listing to
// its creator.
func (dc *DatasetController) ActivityLogs(c *gin.Context) {
	identity, err := util.IdentityFromContext(c)
	if err != nil {
		util.RespondWithError(c, http.StatusUnauthorized, "Unauthorized", err)
		return
	}

	datasetCode := c.Param("dataset_code")
	dataset, err := dc.datasetClient.GetDataset(c, datasetCode)
	if err != nil {
		if errors.Is(err, bff_errors.ErrItemNotFound) {
			util.RespondWithError(c, http.StatusNotFound, "Dataset not found", err)
			return
		}
		util.HandleClientError(c, err)
		return
	}
	if dataset.Creator != identity.Username {
		c.JSON(http.StatusForbidden, model.APIResponse{
			Code:   http.StatusForbidden,
			Result: "No permission for this dataset",
		})
		return
	}

	resp, err := dc.provenanceClient.DatasetActivityLogs(c, dataset.Code, c.Request.URL.Query())
	if err != nil {
		util.HandleClientError(c, err)
		return
	}

	c.Data(resp.Status, "application/json", resp.Body)
}
