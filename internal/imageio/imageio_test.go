package imageio_test

import (
	"image"
	"image/color"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/ftrvxmtrx/tga"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"

	"slic-superpixels/internal/imageio"
	"slic-superpixels/internal/slic"
)

func touch(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, nil, 0644))
}

func TestBuildIndex(t *testing.T) {
	root := t.TempDir()
	touch(t, filepath.Join(root, "a.jpg"))
	touch(t, filepath.Join(root, "A.png"))
	touch(t, filepath.Join(root, "b.JPEG"))
	touch(t, filepath.Join(root, "notes.txt"))
	touch(t, filepath.Join(root, "sub", "c.tga"))
	touch(t, filepath.Join(root, "sub", "a.bmp"))
	touch(t, filepath.Join(root, "out", "a.webp"))

	idx := imageio.BuildIndex(root, filepath.Join(root, "out"))
	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, []string{
		filepath.Join(root, "A.png"),
		filepath.Join(root, "b.JPEG"),
		filepath.Join(root, "sub", "a.bmp"),
		filepath.Join(root, "sub", "c.tga"),
	}, idx.Paths())

	assert.True(t, imageio.Supported("x.TIFF"))
	assert.False(t, imageio.Supported("x.txt"))
}

func sample() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 5, 3))
	for y := 0; y < 3; y++ {
		for x := 0; x < 5; x++ {
			img.SetNRGBA(x, y, color.NRGBA{uint8(40 * x), uint8(80 * y), 200, 255})
		}
	}
	return img
}

func TestSaveLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	for _, f := range []imageio.Format{imageio.PNG, imageio.WebP} {
		path := filepath.Join(dir, "nested", "img"+f.Ext())
		require.NoError(t, imageio.Save(path, src, f))

		got, err := imageio.Load(path)
		require.NoError(t, err, "format %s", f)
		require.Equal(t, src.Bounds(), got.Bounds())
		for y := 0; y < 3; y++ {
			for x := 0; x < 5; x++ {
				assert.Equal(t, src.NRGBAAt(x, y), got.NRGBAAt(x, y), "format %s (%d,%d)", f, x, y)
			}
		}
	}
}

func TestLoadPicksDecoderByExtension(t *testing.T) {
	dir := t.TempDir()
	src := sample()
	cases := []struct {
		name     string
		encode   func(io.Writer, image.Image) error
		lossless bool
	}{
		{"a.png", png.Encode, true},
		{"b.BMP", bmp.Encode, true},
		{"c.tga", tga.Encode, true},
		{"d.tiff", func(w io.Writer, m image.Image) error { return tiff.Encode(w, m, nil) }, true},
		{"e.jpg", func(w io.Writer, m image.Image) error { return jpeg.Encode(w, m, nil) }, false},
		{"f.gif", func(w io.Writer, m image.Image) error { return gif.Encode(w, m, nil) }, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(dir, tc.name)
			f, err := os.Create(path)
			require.NoError(t, err)
			require.NoError(t, tc.encode(f, src))
			require.NoError(t, f.Close())

			got, err := imageio.Load(path)
			require.NoError(t, err)
			require.Equal(t, src.Bounds(), got.Bounds())
			if !tc.lossless {
				return
			}
			for y := 0; y < 3; y++ {
				for x := 0; x < 5; x++ {
					assert.Equal(t, src.NRGBAAt(x, y), got.NRGBAAt(x, y), "(%d,%d)", x, y)
				}
			}
		})
	}
}

func TestLoadErrors(t *testing.T) {
	_, err := imageio.Load(filepath.Join(t.TempDir(), "missing.png"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.png")
	require.NoError(t, os.WriteFile(bad, []byte("not an image"), 0644))
	_, err = imageio.Load(bad)
	assert.Error(t, err)

	txt := filepath.Join(t.TempDir(), "notes.txt")
	require.NoError(t, os.WriteFile(txt, []byte("x"), 0644))
	_, err = imageio.Load(txt)
	assert.ErrorContains(t, err, "unsupported extension")
}

func TestToNRGBAMovesOrigin(t *testing.T) {
	src := image.NewRGBA(image.Rect(2, 3, 4, 5))
	src.Set(2, 3, color.RGBA{1, 2, 3, 255})
	got := imageio.ToNRGBA(src)
	assert.Equal(t, image.Rect(0, 0, 2, 2), got.Bounds())
	assert.Equal(t, color.NRGBA{1, 2, 3, 255}, got.NRGBAAt(0, 0))
}

func TestLabelsRoundTrip(t *testing.T) {
	labels := []int{
		0, 0, 1,
		2, 2, 1,
		2, 70000 % imageio.MaxLabels, 1,
	}
	l, err := slic.NewLabelGrid(3, 3, labels)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "labels.png")
	require.NoError(t, imageio.SaveLabels(path, l))

	got, err := imageio.LoadLabels(path)
	require.NoError(t, err)
	assert.Equal(t, labels, got.Labels())
	assert.Equal(t, l.NumLabels(), got.NumLabels())
}

func TestParseFormat(t *testing.T) {
	f, err := imageio.ParseFormat("WEBP")
	require.NoError(t, err)
	assert.Equal(t, imageio.WebP, f)
	assert.Equal(t, ".webp", f.Ext())

	_, err = imageio.ParseFormat("gif")
	assert.Error(t, err)
}
