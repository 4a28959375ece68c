package segmentation

import (
	"fmt"

	"myShopSense/domain"
)

// ScalerParams is the fitted standardization, one (mean, scale) pair per
// feature in featureOrder.
type ScalerParams struct {
	Means  [FeatureDim]float64
	Scales [FeatureDim]float64
}

// Model is one immutable, validated snapshot of the trained artifacts.
// Loaded once (or on reload) and shared read-only across requests; nothing
// here is mutated after Validate passes.
type Model struct {
	Scaler ScalerParams

	// Centroids in standardized feature space. The slice index is the
	// cluster id; training sorts clusters ascending by mean spend, so id 0
	// is always the lowest-value segment.
	Centroids [][FeatureDim]float64

	// Catalog maps cluster id -> ordered candidate product ids.
	Catalog map[int][]uint64

	Metrics domain.ModelMetrics
}

// K returns the number of clusters.
func (m *Model) K() int {
	return len(m.Centroids)
}

// ClusterName returns the human name for a cluster id. Validate guarantees
// the name table covers every centroid, so indexing cannot miss.
func (m *Model) ClusterName(cluster int) string {
	return m.Metrics.ClusterNames[cluster]
}

// readableFeature maps a feature index to its display name, falling back to
// the raw column name when the metadata table is short or empty.
func (m *Model) readableFeature(i int) string {
	if i < len(m.Metrics.FeatureReadable) && m.Metrics.FeatureReadable[i] != "" {
		return m.Metrics.FeatureReadable[i]
	}
	return featureOrder[i]
}

// Validate checks the invariants every request-time stage relies on.
// A model that fails here must not be installed.
func (m *Model) Validate() error {
	if len(m.Centroids) == 0 {
		return &ConfigError{Reason: "centroid set is empty"}
	}
	for i := range FeatureDim {
		if m.Scaler.Scales[i] == 0 {
			return &ConfigError{
				Reason: fmt.Sprintf("zero scale factor for feature %s", featureOrder[i]),
			}
		}
	}
	if len(m.Metrics.ClusterNames) < len(m.Centroids) {
		return &ConfigError{
			Reason: fmt.Sprintf("cluster name table has %d entries for %d centroids",
				len(m.Metrics.ClusterNames), len(m.Centroids)),
		}
	}
	return nil
}
