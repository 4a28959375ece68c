package domain

import (
	"time"

	"gorm.io/datatypes"
)

// BehaviorRecord is one user's raw engagement snapshot, as submitted by the
// client. Monetary is the raw spend amount; the segmentation core log-scales
// it before classification.
type BehaviorRecord struct {
	Recency        float64 `json:"recency"`
	Frequency      float64 `json:"frequency"`
	Monetary       float64 `json:"monetary"`
	AvgItems       float64 `json:"avg_items"`
	UniqueProducts float64 `json:"unique_products"`
	WishlistCount  float64 `json:"wishlist_count"`
	AddToCartCount float64 `json:"add_to_cart_count"`
	PageViews      float64 `json:"page_views"`
}

// DistanceRecord is the Euclidean distance from a standardized vector to one
// centroid. Cluster is the centroid index, which doubles as the segment id.
type DistanceRecord struct {
	Cluster  int     `json:"cluster"`
	Distance float64 `json:"distance"`
}

// DriverRecord flags one feature whose standardized score is large enough to
// have driven the segment assignment.
type DriverRecord struct {
	Feature   string  `json:"feature"`
	Score     float64 `json:"score"`
	Direction string  `json:"direction"` // "High" or "Low"
	Sentiment string  `json:"sentiment"` // "positive" or "negative"
	Impact    float64 `json:"impact"`
}

type Explanation struct {
	Why     string `json:"why"`
	Compare string `json:"compare"`
	Anomaly string `json:"anomaly"`
}

type RecommendationItem struct {
	ProductID uint64  `json:"product_id"`
	Name      string  `json:"name"`
	Category  string  `json:"category"`
	Price     float64 `json:"price"`
	Rating    float64 `json:"rating"`
}

// PredictionResult is the full classify -> explain -> recommend payload.
type PredictionResult struct {
	Cluster         int                  `json:"cluster"`
	ClusterName     string               `json:"cluster_name"`
	Confidence      float64              `json:"confidence"`
	Margin          float64              `json:"margin"`
	Distances       []DistanceRecord     `json:"distances"`
	Drivers         []DriverRecord       `json:"drivers"`
	Explanation     Explanation          `json:"explanation"`
	Recommendations []RecommendationItem `json:"recommendations"`
}

// ModelMetrics mirrors the metadata the training pipeline exports next to the
// model artifacts. Served as-is; nothing here is computed at request time.
type ModelMetrics struct {
	SilhouetteScore float64              `json:"silhouette_score"`
	Inertia         float64              `json:"inertia"`
	Features        []string             `json:"features"`
	FeatureReadable []string             `json:"feature_readable"`
	ClusterNames    []string             `json:"cluster_names"`
	CentroidsScaled [][]float64          `json:"centroids_scaled"`
	CentroidsReal   []map[string]float64 `json:"centroids_real"`
	ClusterCounts   map[string]int       `json:"cluster_counts"`
}

type PredictionLog struct {
	ID               uint           `gorm:"primaryKey" json:"id"`
	UserID           uint           `gorm:"column:user_id;not null" json:"user_id"`
	PredictedCluster int            `gorm:"column:predicted_cluster;not null" json:"predicted_cluster"`
	Confidence       float64        `gorm:"column:confidence" json:"confidence"`
	RecommendedItems datatypes.JSON `gorm:"column:recommended_items;type:jsonb" json:"recommended_items"`
	CreatedAt        time.Time      `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (PredictionLog) TableName() string {
	return "prediction_logs"
}
