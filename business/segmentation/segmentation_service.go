package segmentation

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"sync/atomic"

	"gorm.io/datatypes"

	"myShopSense/domain"
	"myShopSense/pkg/logger"
)

// ---- Repository interfaces ----

// ArtifactLoader builds a validated Model from the trained artifact files.
type ArtifactLoader interface {
	Load() (*Model, error)
}

// ProductRepository resolves product identity (name, category) by id.
type ProductRepository interface {
	FindByProductIDs(ctx context.Context, ids []uint64) ([]domain.Product, error)
}

// PredictionLogRepository persists one prediction record per request.
type PredictionLogRepository interface {
	Save(ctx context.Context, log *domain.PredictionLog) error
}

// ---- Usecase / Service ----

// Service composes the classification pipeline: vectorize, standardize,
// classify, estimate confidence, attribute drivers, explain, recommend.
// The model snapshot is immutable; requests read whatever snapshot is
// installed when they start, and Reload swaps snapshots atomically.
type Service struct {
	loader      ArtifactLoader
	productRepo ProductRepository
	logRepo     PredictionLogRepository

	model atomic.Pointer[Model]
}

func NewService(
	loader ArtifactLoader,
	productRepo ProductRepository,
	logRepo PredictionLogRepository,
) *Service {
	return &Service{
		loader:      loader,
		productRepo: productRepo,
		logRepo:     logRepo,
	}
}

// Reload loads and validates the artifacts, then installs the new model.
// Safe to call while requests are in flight; they keep their old snapshot.
// The current model stays installed if the reload fails.
func (s *Service) Reload() error {
	model, err := s.loader.Load()
	if err != nil {
		return fmt.Errorf("load model artifacts: %w", err)
	}
	if err := model.Validate(); err != nil {
		return err
	}

	s.model.Store(model)
	logger.Info("segmentation model loaded",
		"clusters", model.K(),
		"silhouette", model.Metrics.SilhouetteScore,
	)
	return nil
}

// currentModel returns the installed snapshot, attempting one reload if none
// is present yet (e.g. artifacts appeared after startup).
func (s *Service) currentModel() (*Model, error) {
	if m := s.model.Load(); m != nil {
		return m, nil
	}
	if err := s.Reload(); err != nil {
		logger.Warn("model reload attempt failed", err)
		return nil, ErrModelUnavailable
	}
	return s.model.Load(), nil
}

// Classify runs the scoring stages only and returns the assigned cluster.
func (s *Service) Classify(ctx context.Context, rec domain.BehaviorRecord) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, fmt.Errorf("context error: %w", err)
	}

	model, err := s.currentModel()
	if err != nil {
		return 0, err
	}

	x, err := Vectorize(rec)
	if err != nil {
		return 0, err
	}

	z := Standardize(x, model.Scaler)
	cluster, _ := Classify(z, model.Centroids)
	return cluster, nil
}

// ClassifyAndRecommend runs the full pipeline for one user and persists a
// prediction log. The log write is an isolated side effect: its failure is
// suppressed so it can never invalidate the already-computed result.
func (s *Service) ClassifyAndRecommend(
	ctx context.Context,
	userID uint,
	rec domain.BehaviorRecord,
) (domain.PredictionResult, error) {

	if err := ctx.Err(); err != nil {
		return domain.PredictionResult{}, fmt.Errorf("context error: %w", err)
	}

	model, err := s.currentModel()
	if err != nil {
		return domain.PredictionResult{}, err
	}

	x, err := Vectorize(rec)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	z := Standardize(x, model.Scaler)
	cluster, distances := Classify(z, model.Centroids)
	confidence, margin := Confidence(distances)

	drivers := AttributeDrivers(model, z)
	explanation := Synthesize(model, distances, drivers)
	if len(drivers) > topDrivers {
		drivers = drivers[:topDrivers]
	}

	recs, err := s.recommendations(ctx, model, cluster)
	if err != nil {
		return domain.PredictionResult{}, err
	}

	result := domain.PredictionResult{
		Cluster:         cluster,
		ClusterName:     model.ClusterName(cluster),
		Confidence:      confidence,
		Margin:          margin,
		Distances:       distances,
		Drivers:         drivers,
		Explanation:     explanation,
		Recommendations: recs,
	}

	tid := TraceIDFromContext(ctx)
	logger.Debug("prediction",
		"trace_id", tid,
		"user_id", userID,
		"cluster", cluster,
		"confidence", confidence,
		"margin", margin,
		"drivers", len(drivers),
	)

	s.logPrediction(ctx, userID, result)
	PredictionsTotal.WithLabelValues(strconv.Itoa(cluster)).Inc()

	return result, nil
}

// recommendations builds the ranked item list for a cluster. Candidates keep
// catalog order; unknown ids are skipped. When nothing resolves, a single
// sentinel item (product id 0, zero price and rating) stands in for "empty".
func (s *Service) recommendations(ctx context.Context, model *Model, cluster int) ([]domain.RecommendationItem, error) {
	candidateIDs := model.Catalog[cluster]

	items := make([]domain.RecommendationItem, 0, len(candidateIDs))
	if len(candidateIDs) > 0 {
		products, err := s.productRepo.FindByProductIDs(ctx, candidateIDs)
		if err != nil {
			return nil, fmt.Errorf("resolve products: %w", err)
		}

		byID := make(map[uint64]domain.Product, len(products))
		for _, p := range products {
			byID[p.ProductID] = p
		}

		for _, id := range candidateIDs {
			p, ok := byID[id]
			if !ok {
				continue
			}
			items = append(items, domain.RecommendationItem{
				ProductID: p.ProductID,
				Name:      p.ProductName,
				Category:  p.ProductCategory,
				Price:     syntheticPrice(p.ProductID, cluster),
				Rating:    syntheticRating(p.ProductID),
			})
		}
	}

	if len(items) == 0 {
		items = append(items, domain.RecommendationItem{
			ProductID: 0,
			Name:      "No recommendation available",
			Category:  "General",
			Price:     0,
			Rating:    0,
		})
	}

	return items, nil
}

// logPrediction writes the prediction record as its own unit of work.
// Failures are logged and counted, never propagated.
func (s *Service) logPrediction(ctx context.Context, userID uint, result domain.PredictionResult) {
	if s.logRepo == nil {
		return
	}

	raw, err := json.Marshal(result.Recommendations)
	if err != nil {
		logger.Warn("marshal recommended items for prediction log", err)
		PredictionLogFailures.Inc()
		return
	}

	entry := domain.PredictionLog{
		UserID:           userID,
		PredictedCluster: result.Cluster,
		Confidence:       result.Confidence,
		RecommendedItems: datatypes.JSON(raw),
	}

	if err := s.logRepo.Save(ctx, &entry); err != nil {
		logger.Warn("save prediction log", err)
		PredictionLogFailures.Inc()
	}
}

// CandidatesForCluster returns the static catalog entry for a cluster
// without running any classification. A missing entry is an empty list.
func (s *Service) CandidatesForCluster(cluster int) ([]uint64, error) {
	model, err := s.currentModel()
	if err != nil {
		return nil, err
	}

	ids := model.Catalog[cluster]
	out := make([]uint64, len(ids))
	copy(out, ids)
	return out, nil
}

// ModelMetrics passes through the training-time quality metadata.
func (s *Service) ModelMetrics() (domain.ModelMetrics, error) {
	model, err := s.currentModel()
	if err != nil {
		return domain.ModelMetrics{}, err
	}
	return model.Metrics, nil
}
