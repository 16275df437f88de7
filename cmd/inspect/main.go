package main

import (
	"fmt"
	"os"
	"slices"

	"gonum.org/v1/gonum/stat"

	"slic-superpixels/internal/imageio"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inspect <labels.png> [...]")
		os.Exit(1)
	}

	bad := 0
	for _, path := range os.Args[1:] {
		l, err := imageio.LoadLabels(path)
		if err != nil {
			fmt.Printf("Error: %v\n", err)
			bad++
			continue
		}

		sizes := l.Sizes()
		fs := make([]float64, 0, len(sizes))
		empty := 0
		for _, s := range sizes {
			if s == 0 {
				empty++
				continue
			}
			fs = append(fs, float64(s))
		}
		slices.Sort(fs)

		fmt.Printf("%s: %dx%d, labels=%d", path, l.Width(), l.Height(), l.NumLabels())
		if empty > 0 {
			fmt.Printf(" (%d unused)", empty)
		}
		fmt.Println()

		if len(fs) > 0 {
			mean, std := fs[0], 0.0
			if len(fs) > 1 {
				mean, std = stat.MeanStdDev(fs, nil)
			}
			median := stat.Quantile(0.5, stat.Empirical, fs, nil)
			fmt.Printf("  Region size: min=%.0f median=%.0f max=%.0f mean=%.1f std=%.1f\n",
				fs[0], median, fs[len(fs)-1], mean, std)
		}

		if dis := l.Disconnected(); len(dis) > 0 {
			fmt.Printf("  Disconnected labels (%d): %v\n", len(dis), dis[:min(10, len(dis))])
			bad++
		} else {
			fmt.Println("  Connectivity: OK")
		}
	}

	if bad > 0 {
		os.Exit(1)
	}
}
