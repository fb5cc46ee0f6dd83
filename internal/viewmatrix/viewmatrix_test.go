package viewmatrix

import (
	"testing"

	"github.com/stretchr/testify/require"

	"ply-reader/internal/mathutil"
)

func TestFitCentersCloud(t *testing.T) {
	pos := []float32{-1, -1, 0, 1, 1, 0}
	cam := Fit(pos, mathutil.Mat3Identity(), 100, 10)

	// Midpoint of the cloud projects to the image center.
	px, py, _ := cam.Project(0, 0, 0)
	require.InDelta(t, 50, px, 1e-9)
	require.InDelta(t, 50, py, 1e-9)

	// Extremes land on the margins, Y flipped.
	px, py, _ = cam.Project(1, 1, 0)
	require.InDelta(t, 90, px, 1e-9)
	require.InDelta(t, 10, py, 1e-9)
	px, py, _ = cam.Project(-1, -1, 0)
	require.InDelta(t, 10, px, 1e-9)
	require.InDelta(t, 90, py, 1e-9)
}

func TestFitDegenerateCloud(t *testing.T) {
	pos := []float32{5, 5, 5, 5, 5, 5}
	cam := Fit(pos, mathutil.Mat3Identity(), 100, 10)
	require.Greater(t, cam.Scale, 0.0)

	px, py, _ := cam.Project(5, 5, 5)
	require.InDelta(t, 50, px, 1e-6)
	require.InDelta(t, 50, py, 1e-6)
}

func TestTurntableYawMovesDepth(t *testing.T) {
	// A 90° yaw swings the X axis into the depth axis.
	R := Turntable(90, 0)
	v := R.MulVec3(mathutil.Vec3{1, 0, 0})
	require.InDelta(t, 0, v[0], 1e-12)
	require.InDelta(t, 0, v[1], 1e-12)
	require.InDelta(t, -1, v[2], 1e-12)
}

func TestProjectDepthOrdering(t *testing.T) {
	pos := []float32{0, 0, -1, 0, 0, 1}
	cam := Fit(pos, mathutil.Mat3Identity(), 100, 10)

	_, _, near := cam.Project(0, 0, 1)
	_, _, far := cam.Project(0, 0, -1)
	require.Greater(t, near, far)
}
