package segmentation

import (
	"math"

	"myShopSense/domain"
)

// FeatureDim is fixed by the trained artifacts: scaler, centroids and the
// metadata feature list all describe exactly these eight columns, in this
// order. Changing the order without retraining breaks every downstream stage.
const FeatureDim = 8

var featureOrder = [FeatureDim]string{
	"Recency",
	"Frequency",
	"Monetary_Log",
	"Avg_Items",
	"Unique_Products",
	"Wishlist_Count",
	"Add_to_Cart_Count",
	"Page_Views",
}

// Vectorize maps a raw behavior record into the fixed feature vector the
// model was trained on. Monetary is log-scaled with log1p so that zero spend
// stays defined (log1p(0) = 0) and heavy spenders don't dominate the scale.
func Vectorize(rec domain.BehaviorRecord) ([FeatureDim]float64, error) {
	var x [FeatureDim]float64

	if rec.Monetary < 0 {
		return x, &ValidationError{Field: "monetary", Reason: "must be non-negative"}
	}

	x[0] = rec.Recency
	x[1] = rec.Frequency
	x[2] = math.Log1p(rec.Monetary)
	x[3] = rec.AvgItems
	x[4] = rec.UniqueProducts
	x[5] = rec.WishlistCount
	x[6] = rec.AddToCartCount
	x[7] = rec.PageViews

	return x, nil
}

// Standardize applies the training-time scaler: z_i = (x_i - mean_i) / scale_i.
// Scales are asserted non-zero when the artifact is loaded, never here.
func Standardize(x [FeatureDim]float64, scaler ScalerParams) [FeatureDim]float64 {
	var z [FeatureDim]float64
	for i := range FeatureDim {
		z[i] = (x[i] - scaler.Means[i]) / scaler.Scales[i]
	}
	return z
}
