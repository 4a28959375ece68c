package segmentation

import (
	"math"
	"sort"

	"myShopSense/domain"
)

// Classify assigns z to its nearest centroid by Euclidean distance and
// returns the cluster id plus every centroid's distance sorted ascending.
// Equal distances keep centroid order, so ties resolve to the lowest id.
func Classify(z [FeatureDim]float64, centroids [][FeatureDim]float64) (int, []domain.DistanceRecord) {
	records := make([]domain.DistanceRecord, 0, len(centroids))
	for i, c := range centroids {
		sum := 0.0
		for j := range FeatureDim {
			d := z[j] - c[j]
			sum += d * d
		}
		records = append(records, domain.DistanceRecord{
			Cluster:  i,
			Distance: round4(math.Sqrt(sum)),
		})
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Distance < records[j].Distance
	})

	return records[0].Cluster, records
}

// Confidence maps the nearest/second-nearest margin into [50, 100]. A margin
// of 0 (equidistant segments, or a single-cluster model) floors at 50, and
// anything past 1.0 normalized-distance units saturates at 100. This is a
// monotonic heuristic, not a calibrated probability.
func Confidence(distances []domain.DistanceRecord) (confidence, margin float64) {
	if len(distances) >= 2 {
		margin = round4(distances[1].Distance - distances[0].Distance)
	}

	confidence = margin*50 + 50
	if confidence < 50 {
		confidence = 50
	}
	if confidence > 100 {
		confidence = 100
	}
	return confidence, margin
}

func round4(v float64) float64 {
	return math.Round(v*10000) / 10000
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}
