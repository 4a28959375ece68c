package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myShopSense/domain"
)

func testModel() *Model {
	scaler := ScalerParams{}
	for i := range FeatureDim {
		scaler.Scales[i] = 1
	}

	return &Model{
		Scaler: scaler,
		Centroids: [][FeatureDim]float64{
			centroidAt(0),
			centroidAt(2),
			centroidAt(5),
			centroidAt(9),
		},
		Catalog: map[int][]uint64{
			0: {101, 102},
			1: {201},
		},
		Metrics: domain.ModelMetrics{
			SilhouetteScore: 0.41,
			ClusterNames:    []string{"Newbie", "Window Shopper", "Loyalist", "Sultan"},
			FeatureReadable: []string{
				"Days Since Last Purchase",
				"Purchase Frequency",
				"Total Spending",
				"Average Items per Order",
				"Product Variety",
				"Wishlist Activity",
				"Cart Activity",
				"Browsing Activity",
			},
		},
	}
}

func TestAttributeDriversThreshold(t *testing.T) {
	m := testModel()

	var z [FeatureDim]float64
	z[0] = 0.79  // below threshold
	z[1] = 0.8   // exactly at threshold
	z[2] = -1.5  // negative above threshold
	z[3] = -0.79 // below threshold

	drivers := AttributeDrivers(m, z)
	require.Len(t, drivers, 2)

	for _, d := range drivers {
		assert.GreaterOrEqual(t, d.Impact, 0.8)
	}

	// sorted by impact, largest first
	assert.Equal(t, "Total Spending", drivers[0].Feature)
	assert.Equal(t, -1.5, drivers[0].Score)
	assert.Equal(t, "Low", drivers[0].Direction)
	assert.Equal(t, "negative", drivers[0].Sentiment)
	assert.Equal(t, 1.5, drivers[0].Impact)

	assert.Equal(t, "Purchase Frequency", drivers[1].Feature)
	assert.Equal(t, "High", drivers[1].Direction)
	assert.Equal(t, "positive", drivers[1].Sentiment)
}

func TestAttributeDriversEmptyWhenNothingStandsOut(t *testing.T) {
	m := testModel()

	var z [FeatureDim]float64
	for i := range FeatureDim {
		z[i] = 0.3
	}

	assert.Empty(t, AttributeDrivers(m, z))
}

func TestAttributeDriversRoundsScore(t *testing.T) {
	m := testModel()

	var z [FeatureDim]float64
	z[4] = 1.23456

	drivers := AttributeDrivers(m, z)
	require.Len(t, drivers, 1)
	assert.Equal(t, 1.23, drivers[0].Score)
	// impact keeps full precision for ranking
	assert.InDelta(t, 1.23456, drivers[0].Impact, 1e-12)
}

func TestAttributeDriversDeterministic(t *testing.T) {
	m := testModel()

	var z [FeatureDim]float64
	z[1] = 2.0
	z[5] = -2.0
	z[7] = 0.9

	first := AttributeDrivers(m, z)
	second := AttributeDrivers(m, z)
	assert.Equal(t, first, second)
}

func TestAttributeDriversFallsBackToRawFeatureName(t *testing.T) {
	m := testModel()
	m.Metrics.FeatureReadable = nil

	var z [FeatureDim]float64
	z[2] = 3.0

	drivers := AttributeDrivers(m, z)
	require.Len(t, drivers, 1)
	assert.Equal(t, "Monetary_Log", drivers[0].Feature)
}
