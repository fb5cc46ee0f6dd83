package raster

import "math"

// FrameBuffer holds the rendering target as flat slices for cache locality.
type FrameBuffer struct {
	Width  int
	Height int
	Color  []uint8   // RGBA interleaved, len = W*H*4
	ZBuf   []float64 // depth per pixel, len = W*H, initialized to -inf
}

// NewFrameBuffer allocates a zeroed color buffer and -inf z-buffer.
func NewFrameBuffer(w, h int) *FrameBuffer {
	n := w * h
	zbuf := make([]float64, n)
	for i := range zbuf {
		zbuf[i] = math.Inf(-1)
	}
	return &FrameBuffer{
		Width:  w,
		Height: h,
		Color:  make([]uint8, n*4),
		ZBuf:   zbuf,
	}
}

// SetPixel writes an opaque pixel if depth wins against the z-buffer.
func (fb *FrameBuffer) SetPixel(x, y int, depth float64, r, g, b uint8) {
	if x < 0 || x >= fb.Width || y < 0 || y >= fb.Height {
		return
	}
	i := y*fb.Width + x
	if depth <= fb.ZBuf[i] {
		return
	}
	fb.ZBuf[i] = depth
	c := i * 4
	fb.Color[c] = r
	fb.Color[c+1] = g
	fb.Color[c+2] = b
	fb.Color[c+3] = 255
}
