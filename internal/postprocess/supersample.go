package postprocess

import (
	"image"

	"golang.org/x/image/draw"
)

// Downsample reduces a supersampled render to targetSize with
// CatmullRom filtering in premultiplied-alpha space. Filtering
// straight alpha would bleed the transparent background into point
// edges as dark halos.
func Downsample(img *image.NRGBA, targetSize int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= targetSize && b.Dy() <= targetSize {
		return img
	}

	dst := image.NewRGBA(image.Rect(0, 0, targetSize, targetSize))
	src := premultiply(img)
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
	return straighten(dst)
}

// premultiply scales each color channel by its pixel's alpha.
// NRGBA and RGBA share the flat 4-byte-per-pixel layout, so both
// directions walk Pix directly.
func premultiply(img *image.NRGBA) *image.RGBA {
	out := image.NewRGBA(img.Bounds())
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		out.Pix[i] = uint8((uint32(img.Pix[i])*a + 127) / 255)
		out.Pix[i+1] = uint8((uint32(img.Pix[i+1])*a + 127) / 255)
		out.Pix[i+2] = uint8((uint32(img.Pix[i+2])*a + 127) / 255)
		out.Pix[i+3] = uint8(a)
	}
	return out
}

// straighten undoes premultiplication after filtering. Fully (or
// nearly) transparent pixels keep zero color channels.
func straighten(img *image.RGBA) *image.NRGBA {
	out := image.NewNRGBA(img.Bounds())
	for i := 0; i+3 < len(img.Pix); i += 4 {
		a := uint32(img.Pix[i+3])
		if a > 1 {
			out.Pix[i] = unmul(img.Pix[i], a)
			out.Pix[i+1] = unmul(img.Pix[i+1], a)
			out.Pix[i+2] = unmul(img.Pix[i+2], a)
		}
		out.Pix[i+3] = uint8(a)
	}
	return out
}

func unmul(c uint8, a uint32) uint8 {
	v := (uint32(c)*255 + a/2) / a
	if v > 255 {
		v = 255
	}
	return uint8(v)
}
