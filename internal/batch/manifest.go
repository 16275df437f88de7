package batch

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// ManifestEntry represents one image in the output manifest.
type ManifestEntry struct {
	Input          string  `json:"input"`
	Output         string  `json:"output,omitempty"`
	Labels         string  `json:"labels,omitempty"`
	Width          int     `json:"width"`
	Height         int     `json:"height"`
	Superpixels    int     `json:"superpixels"`
	Centers        int     `json:"centers"`
	BoundaryPixels int     `json:"boundary_pixels"`
	MeanRegionSize float64 `json:"mean_region_size"`
	StdRegionSize  float64 `json:"std_region_size"`
	ElapsedMS      int64   `json:"elapsed_ms"`
	Error          string  `json:"error,omitempty"`
}

// WriteManifest writes manifest.json to path. Output paths are stored
// relative to the manifest's directory.
func WriteManifest(path string, results []Result) error {
	dir := filepath.Dir(path)
	rel := func(p string) string {
		if p == "" {
			return ""
		}
		if r, err := filepath.Rel(dir, p); err == nil {
			return filepath.ToSlash(r)
		}
		return p
	}

	entries := make([]ManifestEntry, len(results))
	for i, r := range results {
		entries[i] = ManifestEntry{
			Input:          r.Input,
			Output:         rel(r.Output),
			Labels:         rel(r.LabelsPath),
			Width:          r.Width,
			Height:         r.Height,
			Superpixels:    r.Labels,
			Centers:        r.Centers,
			BoundaryPixels: r.BoundaryPixels,
			MeanRegionSize: r.MeanRegionSize,
			StdRegionSize:  r.StdRegionSize,
			ElapsedMS:      r.Elapsed.Milliseconds(),
			Error:          r.Error,
		}
	}

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ReadManifest loads a manifest written by WriteManifest.
func ReadManifest(path string) ([]ManifestEntry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}
