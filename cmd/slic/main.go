package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"slic-superpixels/internal/batch"
	"slic-superpixels/internal/config"
	"slic-superpixels/internal/imageio"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// CLI flags
	configFile := flag.String("config", "", "Path to config.json file")
	inputDir := flag.String("input", "", "Directory scanned for images (default: .)")
	outputDir := flag.String("output", "", "Output directory (default: <input>/slic-out)")
	superpixels := flag.Int("k", 0, "Target superpixel count (default: 400)")
	compactness := flag.Float64("compactness", 0, "Compactness weight Nc (default: 10)")
	iterations := flag.Int("iterations", 0, "Clustering iterations (default: 10)")
	space := flag.String("space", "", "Clustering color space: lab or rgb (default: lab)")
	format := flag.String("format", "", "Output format: webp or png (default: webp)")
	mode := flag.String("mode", "", "Output mode: contours, mean or mean-contours (default: contours)")
	contourColor := flag.String("color", "", "Contour color as #rrggbb (default: #ff0000)")
	maxSize := flag.Int("max-size", 0, "Downscale inputs so the longer side is at most N pixels")
	workers := flag.Int("workers", 0, "Images processed in parallel (default: NumCPU)")
	threads := flag.Int("threads", 0, "Goroutines per image (default: NumCPU when -workers=1, else 1)")
	centers := flag.Bool("centers", false, "Draw the final cluster centers")
	labels := flag.Bool("labels", false, "Also write a 16-bit label PNG per image")
	testN := flag.Int("test", 0, "Process only the first N images")

	flag.Parse()

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			log.Fatalf("Error loading config: %v", err)
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		InputDir:     *inputDir,
		OutputDir:    *outputDir,
		Superpixels:  *superpixels,
		Compactness:  *compactness,
		Iterations:   *iterations,
		ColorSpace:   *space,
		Format:       *format,
		Mode:         *mode,
		ContourColor: *contourColor,
		MaxSize:      *maxSize,
		Workers:      *workers,
		Threads:      *threads,
	})
	cfg.DrawCenters = cfg.DrawCenters || *centers
	cfg.SaveLabels = cfg.SaveLabels || *labels

	batchCfg, err := cfg.Batch()
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	batchCfg.Progress = os.Stdout

	// Explicit files win over directory scanning
	inputs := flag.Args()
	if len(inputs) == 0 {
		idx := imageio.BuildIndex(cfg.InputDir, cfg.OutputDir)
		inputs = idx.Paths()
	} else {
		var kept []string
		for _, in := range inputs {
			if !imageio.Supported(in) {
				log.Printf("Skipping %s: unsupported extension", in)
				continue
			}
			kept = append(kept, in)
		}
		inputs = kept
	}

	// Limit for testing
	if *testN > 0 && *testN < len(inputs) {
		inputs = inputs[:*testN]
	}

	if len(inputs) == 0 {
		fmt.Println("No images to segment.")
		os.Exit(0)
	}

	fmt.Printf("SLIC superpixels → %s (%s)\n", cfg.Format, cfg.Mode)
	fmt.Printf("Images: %d, K: %d, Nc: %g, Iterations: %d, Space: %s\n",
		len(inputs), cfg.Superpixels, cfg.Compactness, cfg.Iterations, cfg.ColorSpace)
	fmt.Printf("Workers: %d, Threads/image: %d\n", cfg.Workers, cfg.Threads)
	fmt.Printf("Output: %s\n", cfg.OutputDir)
	fmt.Println("------------------------------------------------------------")

	start := time.Now()
	results := batch.Run(batchCfg, inputs)
	elapsed := time.Since(start)

	fmt.Println("------------------------------------------------------------")
	fmt.Printf("Done in %.1fs\n", elapsed.Seconds())

	success, failed := batch.Summary(results)
	fmt.Printf("Segmented: %d/%d\n", success, len(inputs))

	if len(failed) > 0 {
		fmt.Printf("\nFailed (%d):\n", len(failed))
		limit := min(20, len(failed))
		for _, e := range failed[:limit] {
			fmt.Printf("  %s: %s\n", e.Input, e.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(cfg.OutputDir, "manifest.json")
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		log.Printf("Warning: create %s: %v", cfg.OutputDir, err)
	}
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		log.Printf("Warning: manifest write failed: %v", err)
	} else {
		fmt.Printf("Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		os.Exit(1)
	}
}
