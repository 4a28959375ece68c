package rest

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/AMFarhan21/fres"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"

	"myShopSense/domain"
	"myShopSense/pkg/logger"
	"myShopSense/pkg/metrics"
)

type (
	RecommendHandler struct {
		validate   *validator.Validate
		segService SegmentationService
		logReader  PredictionLogReader
	}

	SegmentationService interface {
		ClassifyAndRecommend(ctx context.Context, userID uint, rec domain.BehaviorRecord) (domain.PredictionResult, error)
		CandidatesForCluster(cluster int) ([]uint64, error)
	}

	PredictionLogReader interface {
		FindByUser(ctx context.Context, userID uint, limit int) ([]domain.PredictionLog, error)
	}

	HistoryQuery struct {
		Limit int `query:"limit" validate:"gte=0,lte=100"`
	}
)

func NewRecommendHandler(svc SegmentationService, logReader PredictionLogReader) *RecommendHandler {
	return &RecommendHandler{
		validate:   validator.New(),
		segService: svc,
		logReader:  logReader,
	}
}

// ByCluster returns a cluster's static candidate list without classifying
// anyone. A cluster with no catalog entry gets an empty list, not an error.
func (h *RecommendHandler) ByCluster(c echo.Context) error {
	cid, err := strconv.Atoi(c.Param("cid"))
	if err != nil || cid < 0 {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: "invalid cluster id"})
	}

	candidates, err := h.segService.CandidatesForCluster(cid)
	if err != nil {
		logger.Error("Failed to get cluster candidates", err)
		return segmentationError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"cluster":         cid,
		"recommendations": candidates,
	})
}

// ForUser runs the full pipeline for the authenticated user: classify,
// explain, recommend, and persist a prediction log.
func (h *RecommendHandler) ForUser(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var req BehaviorRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	metrics.PredictionRequests.Inc()
	start := time.Now()

	result, err := h.segService.ClassifyAndRecommend(c.Request().Context(), userID, req.toRecord())
	if err != nil {
		logger.Error("Failed to classify and recommend", err)
		return segmentationError(c, err)
	}

	metrics.PredictionLatency.Observe(time.Since(start).Seconds())

	return c.JSON(http.StatusOK, fres.Response.StatusOK(result))
}

// History returns the authenticated user's most recent prediction records.
func (h *RecommendHandler) History(c echo.Context) error {
	userID, ok := c.Get("user_id").(uint)
	if !ok {
		return c.JSON(http.StatusUnauthorized, ResponseError{Message: "unauthorized"})
	}

	var q HistoryQuery
	if err := c.Bind(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}
	if err := h.validate.Struct(&q); err != nil {
		return c.JSON(http.StatusBadRequest, ResponseError{Message: err.Error()})
	}

	logs, err := h.logReader.FindByUser(c.Request().Context(), userID, q.Limit)
	if err != nil {
		logger.Error("Failed to get prediction history", err)
		return c.JSON(http.StatusInternalServerError, ResponseError{Message: err.Error()})
	}

	return c.JSON(http.StatusOK, fres.Response.StatusOK(logs))
}
