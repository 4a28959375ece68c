package segmentation

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"myShopSense/domain"
)

func TestVectorizeOrdersFeatures(t *testing.T) {
	rec := domain.BehaviorRecord{
		Recency:        10,
		Frequency:      4,
		Monetary:       100,
		AvgItems:       2.5,
		UniqueProducts: 7,
		WishlistCount:  3,
		AddToCartCount: 6,
		PageViews:      40,
	}

	x, err := Vectorize(rec)
	require.NoError(t, err)

	assert.Equal(t, 10.0, x[0])
	assert.Equal(t, 4.0, x[1])
	assert.InDelta(t, math.Log1p(100), x[2], 1e-12)
	assert.Equal(t, 2.5, x[3])
	assert.Equal(t, 7.0, x[4])
	assert.Equal(t, 3.0, x[5])
	assert.Equal(t, 6.0, x[6])
	assert.Equal(t, 40.0, x[7])
}

func TestVectorizeZeroSpendStaysDefined(t *testing.T) {
	x, err := Vectorize(domain.BehaviorRecord{Monetary: 0})
	require.NoError(t, err)
	assert.Equal(t, 0.0, x[2])
}

func TestVectorizeRejectsNegativeMonetary(t *testing.T) {
	_, err := Vectorize(domain.BehaviorRecord{Monetary: -1})
	require.Error(t, err)

	var vErr *ValidationError
	require.ErrorAs(t, err, &vErr)
	assert.Equal(t, "monetary", vErr.Field)
}

func TestStandardize(t *testing.T) {
	scaler := ScalerParams{}
	for i := range FeatureDim {
		scaler.Means[i] = 2
		scaler.Scales[i] = 4
	}

	var x [FeatureDim]float64
	for i := range FeatureDim {
		x[i] = 10
	}

	z := Standardize(x, scaler)
	for i := range FeatureDim {
		assert.Equal(t, 2.0, z[i])
	}
}

func TestStandardizeIdentityScaler(t *testing.T) {
	scaler := ScalerParams{}
	for i := range FeatureDim {
		scaler.Scales[i] = 1
	}

	x := [FeatureDim]float64{1, 2, 3, 4, 5, 6, 7, 8}
	assert.Equal(t, x, Standardize(x, scaler))
}
