package pointcloud

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writePLY(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cloud.ply")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadPositionsOnly(t *testing.T) {
	path := writePLY(t, `ply
format ascii 1.0
element vertex 2
property float x
property float y
property float z
end_header
0 1 2
3 4 5
`)
	cloud, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, cloud.Rows)
	require.Equal(t, []float32{0, 1, 2, 3, 4, 5}, cloud.Pos)
	require.Nil(t, cloud.Colors)
}

func TestLoadWithColors(t *testing.T) {
	path := writePLY(t, `ply
format ascii 1.0
element vertex 2
property float x
property float y
property float z
property uchar red
property uchar green
property uchar blue
end_header
0 0 0 255 0 0
1 1 1 0 0 255
`)
	cloud, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []uint8{255, 0, 0, 0, 0, 255}, cloud.Colors)
}

func TestLoadConvertsWideColors(t *testing.T) {
	// Some scanners store colors as ushort; extraction narrows them.
	path := writePLY(t, `ply
format ascii 1.0
element vertex 1
property float x
property float y
property float z
property ushort red
property ushort green
property ushort blue
end_header
0 0 0 200 100 50
`)
	cloud, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, []uint8{200, 100, 50}, cloud.Colors)
}

func TestLoadNoVertexElement(t *testing.T) {
	path := writePLY(t, `ply
format ascii 1.0
element edge 1
property int vertex1
property int vertex2
end_header
0 1
`)
	_, err := Load(path)
	require.ErrorContains(t, err, "no vertex element")
}

func TestLoadMissingCoordinate(t *testing.T) {
	path := writePLY(t, `ply
format ascii 1.0
element vertex 1
property float x
property float y
end_header
0 0
`)
	_, err := Load(path)
	require.Error(t, err)
}
