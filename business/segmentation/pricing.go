package segmentation

import (
	"fmt"
	"hash/fnv"
)

// basePriceByCluster anchors synthetic prices per segment, ascending with
// segment value (id 0 is the lowest-spend segment by training convention).
// Clusters beyond the table reuse the last anchor.
var basePriceByCluster = []float64{25, 45, 90, 250}

func basePrice(cluster int) float64 {
	if cluster >= len(basePriceByCluster) {
		return basePriceByCluster[len(basePriceByCluster)-1]
	}
	return basePriceByCluster[cluster]
}

// hashToUnit deterministically hashes a string into [0, 1]. Keyed draws make
// synthetic prices and ratings reproducible per product across calls and
// processes, with no shared RNG state.
func hashToUnit(s string) float64 {
	h := fnv.New32a()
	_, _ = h.Write([]byte(s))
	return float64(h.Sum32()) / float64(^uint32(0))
}

// syntheticPrice draws a stable price in [0.8, 1.2] x the cluster's base.
func syntheticPrice(productID uint64, cluster int) float64 {
	u := hashToUnit(fmt.Sprintf("price:%d", productID))
	return round2(basePrice(cluster) * (0.8 + 0.4*u))
}

// syntheticRating draws a stable rating in [4.0, 5.0].
func syntheticRating(productID uint64) float64 {
	u := hashToUnit(fmt.Sprintf("rating:%d", productID))
	return round1(4.0 + u)
}
