package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"slic-superpixels/internal/batch"
	"slic-superpixels/internal/colorspace"
	"slic-superpixels/internal/imageio"
	"slic-superpixels/internal/render"
	"slic-superpixels/internal/slic"
)

// Config holds all configurable paths and segmentation settings.
type Config struct {
	// Paths
	InputDir  string `json:"input_dir"`
	OutputDir string `json:"output_dir"`

	// Segmentation settings
	Superpixels int     `json:"superpixels"`
	Compactness float64 `json:"compactness"`
	Iterations  int     `json:"iterations"`
	ColorSpace  string  `json:"color_space"`
	MaxSize     int     `json:"max_size"`

	// Output settings
	Format       string `json:"format"`
	Mode         string `json:"mode"`
	ContourColor string `json:"contour_color"`
	DrawCenters  bool   `json:"draw_centers"`
	SaveLabels   bool   `json:"save_labels"`

	// Concurrency: Workers images in flight, Threads goroutines per image.
	Workers int `json:"workers"`
	Threads int `json:"threads"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	InputDir     string
	OutputDir    string
	Superpixels  int
	Compactness  float64
	Iterations   int
	ColorSpace   string
	Format       string
	Mode         string
	ContourColor string
	MaxSize      int
	Workers      int
	Threads      int
}

// Resolve fills in any empty fields with defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.InputDir != "" {
		c.InputDir = flags.InputDir
	}
	if flags.OutputDir != "" {
		c.OutputDir = flags.OutputDir
	}
	if flags.Superpixels > 0 {
		c.Superpixels = flags.Superpixels
	}
	if flags.Compactness > 0 {
		c.Compactness = flags.Compactness
	}
	if flags.Iterations > 0 {
		c.Iterations = flags.Iterations
	}
	if flags.ColorSpace != "" {
		c.ColorSpace = flags.ColorSpace
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Mode != "" {
		c.Mode = flags.Mode
	}
	if flags.ContourColor != "" {
		c.ContourColor = flags.ContourColor
	}
	if flags.MaxSize > 0 {
		c.MaxSize = flags.MaxSize
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Threads > 0 {
		c.Threads = flags.Threads
	}

	if c.InputDir == "" {
		c.InputDir = "."
	}
	if c.OutputDir == "" {
		c.OutputDir = filepath.Join(c.InputDir, "slic-out")
	} else if !filepath.IsAbs(c.OutputDir) && flags.OutputDir == "" {
		// Relative paths in the config file are relative to the input dir.
		c.OutputDir = filepath.Join(c.InputDir, c.OutputDir)
	}

	// Defaults for segmentation settings
	if c.Superpixels <= 0 {
		c.Superpixels = 400
	}
	if c.Compactness <= 0 {
		c.Compactness = 10
	}
	if c.Iterations <= 0 {
		c.Iterations = 10
	}
	if c.ColorSpace == "" {
		c.ColorSpace = colorspace.Lab.String()
	}
	if c.Format == "" {
		c.Format = string(imageio.WebP)
	}
	if c.Mode == "" {
		c.Mode = batch.ModeContours
	}
	if c.ContourColor == "" {
		c.ContourColor = "#ff0000"
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Threads <= 0 {
		// Parallelize inside an image only when images are not already
		// processed in parallel.
		c.Threads = 1
		if c.Workers == 1 {
			c.Threads = runtime.NumCPU()
		}
	}
}

// Validate checks the settings that cannot be defaulted.
func (c *Config) Validate() error {
	if _, err := colorspace.ParseSpace(c.ColorSpace); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if _, err := imageio.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	switch c.Mode {
	case batch.ModeContours, batch.ModeMean, batch.ModeMeanContours:
	default:
		return fmt.Errorf("config: unknown mode %q", c.Mode)
	}
	if _, err := render.ParseColor(c.ContourColor); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	if c.MaxSize < 0 {
		return fmt.Errorf("config: negative max_size %d", c.MaxSize)
	}
	return nil
}

// Batch converts the resolved config into batch run settings.
func (c *Config) Batch() (batch.Config, error) {
	if err := c.Validate(); err != nil {
		return batch.Config{}, err
	}
	space, _ := colorspace.ParseSpace(c.ColorSpace)
	format, _ := imageio.ParseFormat(c.Format)
	contour, _ := render.ParseColor(c.ContourColor)

	return batch.Config{
		InputDir:  c.InputDir,
		OutputDir: c.OutputDir,
		Params: slic.Params{
			Superpixels: c.Superpixels,
			Compactness: c.Compactness,
			Iterations:  c.Iterations,
			Workers:     c.Threads,
		},
		Space:        space,
		MaxSize:      c.MaxSize,
		Format:       format,
		Mode:         c.Mode,
		ContourColor: contour,
		DrawCenters:  c.DrawCenters,
		SaveLabels:   c.SaveLabels,
		Workers:      c.Workers,
	}, nil
}
