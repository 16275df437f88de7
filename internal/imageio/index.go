package imageio

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// extPriority ranks the decodable extensions. When two files share a stem,
// the lower rank wins (lossless sources before lossy ones).
var extPriority = map[string]int{
	".png":  0,
	".tif":  1,
	".tiff": 1,
	".bmp":  2,
	".tga":  3,
	".webp": 4,
	".gif":  5,
	".jpg":  6,
	".jpeg": 6,
}

// Supported reports whether path has a decodable image extension.
func Supported(path string) bool {
	_, ok := extPriority[strings.ToLower(filepath.Ext(path))]
	return ok
}

// Index maps lowercase relative stems to image paths under a root directory.
type Index struct {
	entries map[string]string // lowercased relative stem → full path
}

// BuildIndex scans root and its subdirectories for decodable images.
// Output directories produced by earlier runs are skipped via skipDirs.
func BuildIndex(root string, skipDirs ...string) *Index {
	idx := &Index{entries: make(map[string]string)}

	skip := make(map[string]bool, len(skipDirs))
	for _, d := range skipDirs {
		if abs, err := filepath.Abs(d); err == nil {
			skip[abs] = true
		}
	}

	filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if abs, err := filepath.Abs(path); err == nil && skip[abs] {
				return fs.SkipDir
			}
			return nil
		}
		ext := strings.ToLower(filepath.Ext(path))
		rank, ok := extPriority[ext]
		if !ok {
			return nil
		}
		rel, err := filepath.Rel(root, path)
		if err != nil {
			rel = filepath.Base(path)
		}
		stem := strings.ToLower(strings.TrimSuffix(filepath.ToSlash(rel), filepath.Ext(rel)))

		existing, exists := idx.entries[stem]
		if !exists || rank < extPriority[strings.ToLower(filepath.Ext(existing))] {
			idx.entries[stem] = path
		}
		return nil
	})

	return idx
}

// Paths returns the indexed paths sorted by stem.
func (idx *Index) Paths() []string {
	stems := make([]string, 0, len(idx.entries))
	for s := range idx.entries {
		stems = append(stems, s)
	}
	sort.Strings(stems)

	paths := make([]string, len(stems))
	for i, s := range stems {
		paths[i] = idx.entries[s]
	}
	return paths
}

// Len returns the number of indexed images.
func (idx *Index) Len() int {
	return len(idx.entries)
}
