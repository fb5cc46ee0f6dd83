package colormap

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	_ "github.com/ftrvxmtrx/tga"
)

// LoadStrip reads a horizontal gradient strip image (PNG, JPEG or TGA)
// and samples its middle row into a Ramp. Strips are expected to run
// left (t=0) to right (t=1).
func LoadStrip(path string) (Ramp, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("colormap: read %s: %w", path, err)
	}

	img, _, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("colormap: decode %s: %w", path, err)
	}

	b := img.Bounds()
	w := b.Dx()
	if w < 2 {
		return nil, fmt.Errorf("colormap: strip %s too narrow (%d px)", path, w)
	}

	// Cap the stop count; At interpolates between stops anyway.
	stops := w
	if stops > 256 {
		stops = 256
	}

	ramp := make(Ramp, stops)
	y := b.Min.Y + b.Dy()/2
	for i := 0; i < stops; i++ {
		x := b.Min.X + i*(w-1)/(stops-1)
		cr, cg, cb, _ := img.At(x, y).RGBA()
		ramp[i] = [3]uint8{uint8(cr >> 8), uint8(cg >> 8), uint8(cb >> 8)}
	}
	return ramp, nil
}
