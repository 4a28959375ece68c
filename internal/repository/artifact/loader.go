package artifact

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"

	"myShopSense/business/segmentation"
	"myShopSense/domain"
)

// File names the training pipeline exports into the model directory.
const (
	scalerFile    = "scaler.json"
	centroidsFile = "centroids.json"
	catalogFile   = "topn_by_cluster.json"
	metricsFile   = "model_metrics.json"
)

// Loader reads the trained artifact files from one directory and assembles a
// segmentation.Model. Shape quirks of older exports (catalog entries as
// {"product_id": N} objects vs bare numbers) are unified here so the scoring
// path only ever sees one canonical form.
type Loader struct {
	dir string
}

func NewLoader(dir string) *Loader {
	return &Loader{dir: dir}
}

type scalerDoc struct {
	Means  []float64 `json:"means"`
	Scales []float64 `json:"scales"`
}

func (l *Loader) Load() (*segmentation.Model, error) {
	var scaler scalerDoc
	if err := l.readJSON(scalerFile, &scaler); err != nil {
		return nil, err
	}

	var rawCentroids [][]float64
	if err := l.readJSON(centroidsFile, &rawCentroids); err != nil {
		return nil, err
	}

	var rawCatalog map[string][]json.RawMessage
	if err := l.readJSON(catalogFile, &rawCatalog); err != nil {
		return nil, err
	}

	var metrics domain.ModelMetrics
	if err := l.readJSON(metricsFile, &metrics); err != nil {
		return nil, err
	}

	scalerParams, err := buildScaler(scaler)
	if err != nil {
		return nil, err
	}

	centroids, err := buildCentroids(rawCentroids)
	if err != nil {
		return nil, err
	}

	catalog, err := buildCatalog(rawCatalog)
	if err != nil {
		return nil, err
	}

	return &segmentation.Model{
		Scaler:    scalerParams,
		Centroids: centroids,
		Catalog:   catalog,
		Metrics:   metrics,
	}, nil
}

func (l *Loader) readJSON(name string, out any) error {
	raw, err := os.ReadFile(filepath.Join(l.dir, name))
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	return nil
}

func buildScaler(doc scalerDoc) (segmentation.ScalerParams, error) {
	var params segmentation.ScalerParams

	if len(doc.Means) != segmentation.FeatureDim || len(doc.Scales) != segmentation.FeatureDim {
		return params, fmt.Errorf(
			"scaler has %d means / %d scales, want %d",
			len(doc.Means), len(doc.Scales), segmentation.FeatureDim,
		)
	}

	copy(params.Means[:], doc.Means)
	copy(params.Scales[:], doc.Scales)
	return params, nil
}

func buildCentroids(raw [][]float64) ([][segmentation.FeatureDim]float64, error) {
	centroids := make([][segmentation.FeatureDim]float64, 0, len(raw))
	for i, row := range raw {
		if len(row) != segmentation.FeatureDim {
			return nil, fmt.Errorf("centroid %d has dimension %d, want %d", i, len(row), segmentation.FeatureDim)
		}
		var c [segmentation.FeatureDim]float64
		copy(c[:], row)
		centroids = append(centroids, c)
	}
	return centroids, nil
}

// buildCatalog unifies both historical entry shapes into plain product ids,
// keyed by numeric cluster id, preserving entry order per cluster.
func buildCatalog(raw map[string][]json.RawMessage) (map[int][]uint64, error) {
	catalog := make(map[int][]uint64, len(raw))

	keys := make([]string, 0, len(raw))
	for k := range raw {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	for _, key := range keys {
		cluster, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("catalog key %q is not a cluster id", key)
		}

		entries := raw[key]
		ids := make([]uint64, 0, len(entries))
		for _, entry := range entries {
			id, err := decodeCatalogEntry(entry)
			if err != nil {
				return nil, fmt.Errorf("catalog cluster %d: %w", cluster, err)
			}
			ids = append(ids, id)
		}
		catalog[cluster] = ids
	}

	return catalog, nil
}

func decodeCatalogEntry(entry json.RawMessage) (uint64, error) {
	var obj struct {
		ProductID uint64 `json:"product_id"`
	}
	if err := json.Unmarshal(entry, &obj); err == nil && obj.ProductID != 0 {
		return obj.ProductID, nil
	}

	var id uint64
	if err := json.Unmarshal(entry, &id); err == nil {
		return id, nil
	}

	return 0, fmt.Errorf("entry %s is neither an object with product_id nor a number", string(entry))
}
