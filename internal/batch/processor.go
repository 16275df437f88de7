package batch

import (
	"fmt"
	"image/color"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"gonum.org/v1/gonum/stat"

	"slic-superpixels/internal/colorspace"
	"slic-superpixels/internal/imageio"
	"slic-superpixels/internal/render"
	"slic-superpixels/internal/slic"
)

// Output modes.
const (
	// ModeContours draws contours over the source image.
	ModeContours = "contours"
	// ModeMean paints every superpixel with its mean color.
	ModeMean = "mean"
	// ModeMeanContours combines both.
	ModeMeanContours = "mean-contours"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir     string
	OutputDir    string
	Params       slic.Params
	Space        colorspace.Space
	MaxSize      int
	Format       imageio.Format
	Mode         string
	ContourColor color.NRGBA
	DrawCenters  bool
	SaveLabels   bool
	Workers      int
	// Progress receives a status line every 2 seconds. Nil disables it.
	Progress io.Writer
}

// Result holds the outcome of processing one image.
type Result struct {
	Input          string
	Output         string
	LabelsPath     string
	Width          int
	Height         int
	Labels         int
	Centers        int
	BoundaryPixels int
	MeanRegionSize float64
	StdRegionSize  float64
	Elapsed        time.Duration
	Success        bool
	Error          string
}

// Run processes all inputs using a worker pool. Results keep input order.
func Run(cfg Config, inputs []string) []Result {
	total := len(inputs)
	results := make([]Result, total)
	var processed atomic.Int64

	start := time.Now()
	workers := max(1, cfg.Workers)

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f images/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	jobs := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				results[idx] = processImage(cfg, inputs[idx])
				processed.Add(1)
			}
		}()
	}

	// Send work
	for i := range inputs {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
	close(done)

	return results
}

func processImage(cfg Config, input string) Result {
	start := time.Now()
	res := Result{Input: input}
	fail := func(err error) Result {
		res.Error = err.Error()
		res.Elapsed = time.Since(start)
		return res
	}

	img, err := imageio.Load(input)
	if err != nil {
		return fail(err)
	}
	img = render.Fit(img, cfg.MaxSize)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()
	res.Width, res.Height = w, h

	// Tiny inputs cannot hold more superpixels than pixels.
	params := cfg.Params
	if params.Superpixels > w*h {
		params.Superpixels = w * h
	}

	seg, err := slic.Segment(colorspace.FromNRGBA(img, cfg.Space), params)
	if err != nil {
		return fail(fmt.Errorf("segment %s: %w", input, err))
	}

	out := img
	if cfg.Mode == ModeMean || cfg.Mode == ModeMeanContours {
		// Average in RGB so the output shows the source colors.
		mean, _, err := seg.MeanColors(colorspace.FromNRGBA(img, colorspace.RGB))
		if err != nil {
			return fail(err)
		}
		out = colorspace.ToNRGBA(mean, colorspace.RGB)
	}
	bs := seg.Boundaries()
	if cfg.Mode != ModeMean {
		out = render.Contours(out, bs, cfg.ContourColor)
	}
	if cfg.DrawCenters {
		out = render.CenterGrid(out, seg.Centers, cfg.ContourColor)
	}

	base := outputBase(cfg, input)
	res.Output = base + cfg.Format.Ext()
	if err := imageio.Save(res.Output, out, cfg.Format); err != nil {
		return fail(err)
	}
	if cfg.SaveLabels {
		res.LabelsPath = base + "_labels.png"
		if err := imageio.SaveLabels(res.LabelsPath, seg.Labels); err != nil {
			return fail(err)
		}
	}

	sizes := seg.Labels.Sizes()
	fs := make([]float64, len(sizes))
	for i, s := range sizes {
		fs[i] = float64(s)
	}
	if len(fs) > 1 {
		res.MeanRegionSize, res.StdRegionSize = stat.MeanStdDev(fs, nil)
	} else {
		res.MeanRegionSize = fs[0]
	}

	res.Labels = seg.Labels.NumLabels()
	res.Centers = len(seg.Centers)
	res.BoundaryPixels = bs.Len()
	res.Elapsed = time.Since(start)
	res.Success = true
	return res
}

// outputBase mirrors the input's position under InputDir inside OutputDir,
// without extension.
func outputBase(cfg Config, input string) string {
	rel, err := filepath.Rel(cfg.InputDir, input)
	if err != nil || strings.HasPrefix(rel, "..") {
		rel = filepath.Base(input)
	}
	rel = strings.TrimSuffix(rel, filepath.Ext(rel))
	return filepath.Join(cfg.OutputDir, rel)
}

// Summary counts successes and collects failures.
func Summary(results []Result) (success int, failed []Result) {
	for _, r := range results {
		if r.Success {
			success++
		} else {
			failed = append(failed, r)
		}
	}
	return success, failed
}
