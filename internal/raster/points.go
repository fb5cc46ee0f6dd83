package raster

import (
	"image"

	"ply-reader/internal/colormap"
	"ply-reader/internal/viewmatrix"
)

// Options controls one point-cloud render pass.
type Options struct {
	Size        int // output edge length in pixels
	Supersample int // internal oversampling factor, >= 1
	PointSize   int // splat radius in output pixels
	Yaw         float64
	Pitch       float64
	Ramp        colormap.Ramp // height ramp when the cloud has no colors
}

// RenderCloud splats a point cloud into an NRGBA image at
// Size*Supersample resolution. Points carry either their own RGB
// colors (3 bytes per point) or a height-ramp color derived from
// their Y extent. Transparent background; the caller downsamples.
func RenderCloud(pos []float32, colors []uint8, opts Options) *image.NRGBA {
	renderSize := opts.Size * opts.Supersample
	fb := NewFrameBuffer(renderSize, renderSize)

	n := len(pos) / 3
	if n == 0 {
		return fbImage(fb)
	}

	margin := 16 * opts.Supersample
	cam := viewmatrix.Fit(pos, viewmatrix.Turntable(opts.Yaw, opts.Pitch), renderSize, margin)

	// Height range for ramp colorization.
	var minY, maxY float32
	useRamp := len(colors) < n*3
	if useRamp {
		minY, maxY = pos[1], pos[1]
		for i := 1; i < n; i++ {
			y := pos[i*3+1]
			if y < minY {
				minY = y
			}
			if y > maxY {
				maxY = y
			}
		}
	}

	radius := opts.PointSize * opts.Supersample / 2
	for i := 0; i < n; i++ {
		x, y, z := pos[i*3], pos[i*3+1], pos[i*3+2]
		px, py, depth := cam.Project(x, y, z)

		var r, g, b uint8
		if useRamp {
			t := 0.5
			if maxY > minY {
				t = float64(y-minY) / float64(maxY-minY)
			}
			r, g, b = opts.Ramp.At(t)
		} else {
			r, g, b = colors[i*3], colors[i*3+1], colors[i*3+2]
		}

		splat(fb, int(px+0.5), int(py+0.5), depth, radius, r, g, b)
	}

	return fbImage(fb)
}

// splat draws a filled disc. Radius 0 is a single pixel.
func splat(fb *FrameBuffer, cx, cy int, depth float64, radius int, r, g, b uint8) {
	if radius <= 0 {
		fb.SetPixel(cx, cy, depth, r, g, b)
		return
	}
	r2 := radius * radius
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy <= r2 {
				fb.SetPixel(cx+dx, cy+dy, depth, r, g, b)
			}
		}
	}
}

func fbImage(fb *FrameBuffer) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, fb.Width, fb.Height))
	copy(img.Pix, fb.Color)
	return img
}
