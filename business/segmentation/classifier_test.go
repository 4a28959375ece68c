package segmentation

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myShopSense/domain"
)

func centroidAt(v float64) [FeatureDim]float64 {
	var c [FeatureDim]float64
	c[0] = v
	return c
}

func TestClassifyPicksNearestCentroid(t *testing.T) {
	centroids := [][FeatureDim]float64{
		centroidAt(0),
		centroidAt(10),
		centroidAt(3),
	}

	cluster, distances := Classify(centroidAt(2.6), centroids)

	assert.Equal(t, 2, cluster)
	require.Len(t, distances, 3)

	// ascending by distance
	for i := 1; i < len(distances); i++ {
		assert.LessOrEqual(t, distances[i-1].Distance, distances[i].Distance)
	}
	assert.Equal(t, 2, distances[0].Cluster)
	assert.InDelta(t, 0.4, distances[0].Distance, 1e-9)
}

func TestClassifyTieResolvesToLowestID(t *testing.T) {
	centroids := [][FeatureDim]float64{
		centroidAt(-1),
		centroidAt(1),
	}

	cluster, distances := Classify(centroidAt(0), centroids)

	assert.Equal(t, 0, cluster)
	assert.Equal(t, 0, distances[0].Cluster)
	assert.Equal(t, 1, distances[1].Cluster)
}

func TestClassifyRoundsDistances(t *testing.T) {
	centroids := [][FeatureDim]float64{centroidAt(0)}

	// sqrt(2)/10 = 0.1414213... -> 0.1414
	z := [FeatureDim]float64{0.1, 0.1}
	_, distances := Classify(z, centroids)

	assert.Equal(t, 0.1414, distances[0].Distance)
}

func TestConfidenceBounds(t *testing.T) {
	cases := []struct {
		name           string
		distances      []domain.DistanceRecord
		wantConfidence float64
		wantMargin     float64
	}{
		{
			name:           "single cluster floors at 50",
			distances:      []domain.DistanceRecord{{Cluster: 0, Distance: 0.7}},
			wantConfidence: 50,
			wantMargin:     0,
		},
		{
			name: "equidistant floors at 50",
			distances: []domain.DistanceRecord{
				{Cluster: 0, Distance: 1.2},
				{Cluster: 1, Distance: 1.2},
			},
			wantConfidence: 50,
			wantMargin:     0,
		},
		{
			name: "margin of one saturates at 100",
			distances: []domain.DistanceRecord{
				{Cluster: 1, Distance: 0.5},
				{Cluster: 0, Distance: 1.5},
			},
			wantConfidence: 100,
			wantMargin:     1,
		},
		{
			name: "midpoint margin",
			distances: []domain.DistanceRecord{
				{Cluster: 0, Distance: 1.0},
				{Cluster: 2, Distance: 1.5},
			},
			wantConfidence: 75,
			wantMargin:     0.5,
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			confidence, margin := Confidence(tc.distances)
			assert.Equal(t, tc.wantConfidence, confidence)
			assert.Equal(t, tc.wantMargin, margin)
			assert.GreaterOrEqual(t, confidence, 50.0)
			assert.LessOrEqual(t, confidence, 100.0)
		})
	}
}
