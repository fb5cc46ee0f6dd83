package postprocess

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDownsampleSizeAndAlpha(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 64, 64))
	// Opaque red block in the center, transparent elsewhere.
	for y := 24; y < 40; y++ {
		for x := 24; x < 40; x++ {
			src.Set(x, y, color.NRGBA{R: 255, A: 255})
		}
	}

	out := Downsample(src, 32)
	require.Equal(t, 32, out.Bounds().Dx())
	require.Equal(t, 32, out.Bounds().Dy())

	// Block center stays red and opaque.
	c := out.NRGBAAt(16, 16)
	require.Equal(t, uint8(255), c.A)
	require.Equal(t, uint8(255), c.R)
	require.Zero(t, c.G)
	require.Zero(t, c.B)

	// Far corner stays fully transparent with zeroed color, no halo.
	require.Equal(t, color.NRGBA{}, out.NRGBAAt(1, 1))
}

func TestDownsampleNoOpWhenSmall(t *testing.T) {
	src := image.NewNRGBA(image.Rect(0, 0, 16, 16))
	require.Same(t, src, Downsample(src, 32))
}
