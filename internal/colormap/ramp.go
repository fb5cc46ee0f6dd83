// Package colormap maps scalar values to colors for point-cloud
// previews. A Ramp is a list of RGB stops sampled with linear
// interpolation; ramps can be built in or loaded from a gradient
// strip image.
package colormap

// Ramp is an ordered list of color stops spanning t in [0,1].
type Ramp [][3]uint8

// Viridis is a coarse sampling of the matplotlib viridis gradient,
// the de facto default for height colorization.
var Viridis = Ramp{
	{68, 1, 84},
	{71, 44, 122},
	{59, 81, 139},
	{44, 113, 142},
	{33, 144, 141},
	{39, 173, 129},
	{92, 200, 99},
	{170, 220, 50},
	{253, 231, 37},
}

// Grey is a plain black-to-white ramp.
var Grey = Ramp{{0, 0, 0}, {255, 255, 255}}

// At returns the interpolated color for t, clamped to [0,1].
func (r Ramp) At(t float64) (uint8, uint8, uint8) {
	if len(r) == 0 {
		return 255, 255, 255
	}
	if len(r) == 1 {
		return r[0][0], r[0][1], r[0][2]
	}
	if t < 0 {
		t = 0
	} else if t > 1 {
		t = 1
	}

	f := t * float64(len(r)-1)
	i := int(f)
	if i >= len(r)-1 {
		i = len(r) - 2
		f = float64(len(r) - 1)
	}
	frac := f - float64(i)

	a, b := r[i], r[i+1]
	return lerp8(a[0], b[0], frac), lerp8(a[1], b[1], frac), lerp8(a[2], b[2], frac)
}

func lerp8(a, b uint8, t float64) uint8 {
	return uint8(float64(a) + (float64(b)-float64(a))*t + 0.5)
}
