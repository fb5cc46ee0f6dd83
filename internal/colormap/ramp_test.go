package colormap

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRampEndpoints(t *testing.T) {
	r, g, b := Grey.At(0)
	require.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})

	r, g, b = Grey.At(1)
	require.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	// Out-of-range t clamps.
	r, g, b = Grey.At(-3)
	require.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	r, g, b = Grey.At(7)
	require.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})
}

func TestRampInterpolates(t *testing.T) {
	r, g, b := Grey.At(0.5)
	require.InDelta(t, 128, int(r), 1)
	require.Equal(t, r, g)
	require.Equal(t, g, b)
}

func TestEmptyAndSingleStopRamps(t *testing.T) {
	r, g, b := Ramp{}.At(0.3)
	require.Equal(t, [3]uint8{255, 255, 255}, [3]uint8{r, g, b})

	r, g, b = Ramp{{9, 8, 7}}.At(0.9)
	require.Equal(t, [3]uint8{9, 8, 7}, [3]uint8{r, g, b})
}

func TestLoadStrip(t *testing.T) {
	// 4x1 strip: black to red-ish to red.
	img := image.NewNRGBA(image.Rect(0, 0, 4, 1))
	for x := 0; x < 4; x++ {
		img.Set(x, 0, color.NRGBA{R: uint8(x * 85), A: 255})
	}
	path := filepath.Join(t.TempDir(), "strip.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, img))
	require.NoError(t, f.Close())

	ramp, err := LoadStrip(path)
	require.NoError(t, err)
	require.Len(t, ramp, 4)

	r, g, b := ramp.At(0)
	require.Equal(t, [3]uint8{0, 0, 0}, [3]uint8{r, g, b})
	r, g, b = ramp.At(1)
	require.Equal(t, [3]uint8{255, 0, 0}, [3]uint8{r, g, b})
}

func TestLoadStripMissing(t *testing.T) {
	_, err := LoadStrip(filepath.Join(t.TempDir(), "nope.png"))
	require.Error(t, err)
}
