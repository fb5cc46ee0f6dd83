package viewmatrix

import (
	"math"

	"ply-reader/internal/mathutil"
)

// Camera projects model-space points onto a square image: rotate by R
// around the cloud center, scale to fit, then flip Y so +Y points up
// on screen.
type Camera struct {
	R      mathutil.Mat3
	Center mathutil.Vec3
	Scale  float64
	Size   int
}

// Turntable builds the view rotation for a yaw/pitch orbit in degrees:
// yaw spins the model around its vertical axis, pitch tilts the camera
// down onto it.
func Turntable(yawDeg, pitchDeg float64) mathutil.Mat3 {
	return mathutil.Mat3Mul(
		mathutil.RotX(mathutil.Deg2Rad(-pitchDeg)),
		mathutil.RotY(mathutil.Deg2Rad(yawDeg)),
	)
}

// Fit computes a camera that frames all points (packed x,y,z triplets)
// inside a size×size image with the given pixel margin. Degenerate
// clouds (single point, all points coincident) get an arbitrary
// positive scale so they still render.
func Fit(pos []float32, R mathutil.Mat3, size, margin int) Camera {
	mn := mathutil.Vec3{math.Inf(1), math.Inf(1), math.Inf(1)}
	mx := mathutil.Vec3{math.Inf(-1), math.Inf(-1), math.Inf(-1)}
	for i := 0; i+2 < len(pos); i += 3 {
		tv := R.MulVec3(mathutil.Vec3{float64(pos[i]), float64(pos[i+1]), float64(pos[i+2])})
		for k := 0; k < 3; k++ {
			if tv[k] < mn[k] {
				mn[k] = tv[k]
			}
			if tv[k] > mx[k] {
				mx[k] = tv[k]
			}
		}
	}

	center := mn.Add(mx).Scale(0.5)
	span := mx[0] - mn[0]
	if s := mx[1] - mn[1]; s > span {
		span = s
	}
	if span < 1e-9 {
		span = 1e-9
	}

	return Camera{
		R:      R,
		Center: center,
		Scale:  float64(size-2*margin) / span,
		Size:   size,
	}
}

// Project maps one point to pixel coordinates and a depth value.
// Larger depth is closer to the viewer.
func (c Camera) Project(x, y, z float32) (px, py, depth float64) {
	tv := c.R.MulVec3(mathutil.Vec3{float64(x), float64(y), float64(z)}).Sub(c.Center)
	half := float64(c.Size) / 2
	px = half + tv[0]*c.Scale
	py = half - tv[1]*c.Scale
	depth = tv[2]
	return
}
