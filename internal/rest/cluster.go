package rest

import (
	"context"
	"errors"
	"net/http"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myShopSense/business/segmentation"
	"myShopSense/domain"
	"myShopSense/pkg/logger"
)

type (
	ClusterHandler struct {
		validate       *validator.Validate
		clusterService ClusterService
	}

	ClusterService interface {
		Classify(ctx context.Context, rec domain.BehaviorRecord) (int, error)
		ModelMetrics() (domain.ModelMetrics, error)
	}

	// BehaviorRequest uses pointer fields so an absent field fails the
	// required check instead of binding to zero and classifying the caller
	// as a zero-engagement user.
	BehaviorRequest struct {
		Recency        *float64 `json:"recency" validate:"required,gte=0"`
		Frequency      *float64 `json:"frequency" validate:"required,gte=0"`
		Monetary       *float64 `json:"monetary" validate:"required,gte=0"`
		AvgItems       *float64 `json:"avg_items" validate:"required,gte=0"`
		UniqueProducts *float64 `json:"unique_products" validate:"required,gte=0"`
		WishlistCount  *float64 `json:"wishlist_count" validate:"required,gte=0"`
		AddToCartCount *float64 `json:"add_to_cart_count" validate:"required,gte=0"`
		PageViews      *float64 `json:"page_views" validate:"required,gte=0"`
	}
)

func NewClusterHandler(svc ClusterService) *ClusterHandler {
	return &ClusterHandler{
		validate:       validator.New(),
		clusterService: svc,
	}
}

func (r BehaviorRequest) toRecord() domain.BehaviorRecord {
	return domain.BehaviorRecord{
		Recency:        *r.Recency,
		Frequency:      *r.Frequency,
		Monetary:       *r.Monetary,
		AvgItems:       *r.AvgItems,
		UniqueProducts: *r.UniqueProducts,
		WishlistCount:  *r.WishlistCount,
		AddToCartCount: *r.AddToCartCount,
		PageViews:      *r.PageViews,
	}
}

// segmentationError maps the typed pipeline errors onto HTTP responses.
func segmentationError(c echo.Context, err error) error {
	var vErr *segmentation.ValidationError
	switch {
	case errors.Is(err, segmentation.ErrModelUnavailable):
		return c.JSON(http.StatusServiceUnavailable, ResponseError{Message: "model is not ready on the server"})
	case errors.As(err, &vErr):
		return c.JSON(http.StatusBadRequest, ResponseError{Message: vErr.Error()})
	default:
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}
}

// Predict runs the scoring stages only and returns the assigned cluster id.
func (h *ClusterHandler) Predict(c echo.Context) error {
	var req BehaviorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	cluster, err := h.clusterService.Classify(c.Request().Context(), req.toRecord())
	if err != nil {
		logger.Error("Failed to classify behavior record", err)
		return segmentationError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cluster": cluster,
	})
}

// Metrics serves the training-time quality metadata as-is.
func (h *ClusterHandler) Metrics(c echo.Context) error {
	metrics, err := h.clusterService.ModelMetrics()
	if err != nil {
		logger.Error("Failed to read model metrics", err)
		return segmentationError(c, err)
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(metrics))
}
