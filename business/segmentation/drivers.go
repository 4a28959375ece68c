package segmentation

import (
	"math"
	"sort"

	"myShopSense/domain"
)

// driverThreshold and anomalyThreshold are carried over from the trained
// model's tuning as-is; neither is derived from data here.
const (
	driverThreshold  = 0.8
	anomalyThreshold = 2.5
)

// topDrivers is how many drivers the response surfaces.
const topDrivers = 3

// AttributeDrivers flags every feature whose standardized score magnitude
// reaches the threshold and ranks them by impact, largest first. Ties keep
// feature order. An empty result is valid: nothing stood out.
func AttributeDrivers(m *Model, z [FeatureDim]float64) []domain.DriverRecord {
	drivers := make([]domain.DriverRecord, 0, FeatureDim)

	for i := range FeatureDim {
		if math.Abs(z[i]) < driverThreshold {
			continue
		}

		direction := "High"
		sentiment := "positive"
		if z[i] < 0 {
			direction = "Low"
			sentiment = "negative"
		}

		drivers = append(drivers, domain.DriverRecord{
			Feature:   m.readableFeature(i),
			Score:     round2(z[i]),
			Direction: direction,
			Sentiment: sentiment,
			Impact:    math.Abs(z[i]),
		})
	}

	sort.SliceStable(drivers, func(i, j int) bool {
		return drivers[i].Impact > drivers[j].Impact
	})

	return drivers
}
