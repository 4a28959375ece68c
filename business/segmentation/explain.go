package segmentation

import (
	"fmt"

	"myShopSense/domain"
)

const anomalyDefault = "No unusual behavior detected for this profile."

// Synthesize turns the classification outcome into the three explanation
// strings the response carries. drivers may be empty; distances always holds
// at least the nearest centroid.
func Synthesize(m *Model, distances []domain.DistanceRecord, drivers []domain.DriverRecord) domain.Explanation {
	nearestName := m.ClusterName(distances[0].Cluster)

	topFeature := "general behavior"
	if len(drivers) > 0 {
		topFeature = drivers[0].Feature
	}

	compare := "Distinct usage profile."
	if len(distances) > 1 {
		compare = fmt.Sprintf("Closest alternative profile is %s.", m.ClusterName(distances[1].Cluster))
	}

	anomaly := anomalyDefault
	if len(drivers) > 0 && drivers[0].Impact > anomalyThreshold {
		level := "high"
		if drivers[0].Score < 0 {
			level = "low"
		}
		anomaly = fmt.Sprintf("Note: %s is unusually %s (Z-score %.2f).",
			drivers[0].Feature, level, drivers[0].Score)
	}

	return domain.Explanation{
		Why:     fmt.Sprintf("User classified as %s based on patterns in %s.", nearestName, topFeature),
		Compare: compare,
		Anomaly: anomaly,
	}
}
