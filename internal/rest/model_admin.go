package rest

import (
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/labstack/echo/v4"

	"myShopSense/pkg/logger"
)

type (
	ModelAdminHandler struct {
		modelService ModelAdminService
	}

	ModelAdminService interface {
		Reload() error
	}
)

func NewModelAdminHandler(svc ModelAdminService) *ModelAdminHandler {
	return &ModelAdminHandler{modelService: svc}
}

// Reload re-reads the model artifacts from disk and atomically installs the
// new snapshot. In-flight requests keep the snapshot they started with.
func (h *ModelAdminHandler) Reload(c echo.Context) error {
	if err := h.modelService.Reload(); err != nil {
		logger.Error("Failed to reload model artifacts", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	logger.Info("model artifacts reloaded by admin")
	return c.JSON(http.StatusOK, fres.Response.StatusOK("model reloaded"))
}
