package raster

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ply-reader/internal/colormap"
)

func opaquePixels(pix []uint8) int {
	n := 0
	for i := 3; i < len(pix); i += 4 {
		if pix[i] != 0 {
			n++
		}
	}
	return n
}

func TestRenderCloudDrawsPoints(t *testing.T) {
	pos := []float32{
		-1, -1, 0,
		1, -1, 0,
		0, 1, 0,
	}
	img := RenderCloud(pos, nil, Options{
		Size: 64, Supersample: 1, PointSize: 4, Ramp: colormap.Grey,
	})

	require.Equal(t, 64, img.Bounds().Dx())
	require.Greater(t, opaquePixels(img.Pix), 0)
}

func TestRenderCloudUsesVertexColors(t *testing.T) {
	pos := []float32{0, 0, 0}
	colors := []uint8{10, 200, 30}
	img := RenderCloud(pos, colors, Options{
		Size: 32, Supersample: 1, PointSize: 2, Ramp: colormap.Grey,
	})

	found := false
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] != 0 {
			require.Equal(t, []uint8{10, 200, 30}, img.Pix[i:i+3])
			found = true
		}
	}
	require.True(t, found, "no pixels drawn")
}

func TestRenderCloudZBuffer(t *testing.T) {
	// Two coincident points in screen space; the nearer one wins.
	pos := []float32{
		0, 0, 0,
		0, 0, 1,
		2, 0, 0, // spread the bbox so both project to distinct depth
	}
	colors := []uint8{
		255, 0, 0,
		0, 255, 0,
		0, 0, 255,
	}
	img := RenderCloud(pos, colors, Options{
		Size: 64, Supersample: 1, PointSize: 2, Ramp: colormap.Grey,
	})

	// With the default identity-ish turntable at yaw 0, pitch 0,
	// z=1 is nearer, so no red pixel may survive where green drew.
	red, green := 0, 0
	for i := 0; i < len(img.Pix); i += 4 {
		if img.Pix[i+3] == 0 {
			continue
		}
		switch {
		case img.Pix[i] == 255:
			red++
		case img.Pix[i+1] == 255:
			green++
		}
	}
	require.Greater(t, green, 0)
	require.Zero(t, red)
}

func TestRenderEmptyCloud(t *testing.T) {
	img := RenderCloud(nil, nil, Options{Size: 16, Supersample: 2, Ramp: colormap.Grey})
	require.Equal(t, 32, img.Bounds().Dx())
	require.Zero(t, opaquePixels(img.Pix))
}
