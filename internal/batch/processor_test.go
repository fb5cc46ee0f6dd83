package batch

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"ply-reader/internal/colormap"
)

const tinyCloud = `ply
format ascii 1.0
element vertex 3
property float x
property float y
property float z
end_header
0 0 0
1 0 0
0 1 0
`

func TestOutputName(t *testing.T) {
	require.Equal(t, "scan.webp", OutputName("/data/scan.ply"))
	require.Equal(t, "scan.webp", OutputName("/data/scan.ply.lz4"))
}

func TestScan(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"b.ply", "a.ply.lz4", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("x"), 0644))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "sub.ply"), 0755))

	files, err := Scan(dir)
	require.NoError(t, err)
	require.Equal(t, []string{
		filepath.Join(dir, "a.ply.lz4"),
		filepath.Join(dir, "b.ply"),
	}, files)
}

func TestRunRendersAndReportsFailures(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "good.ply")
	bad := filepath.Join(dir, "bad.ply")
	require.NoError(t, os.WriteFile(good, []byte(tinyCloud), 0644))
	require.NoError(t, os.WriteFile(bad, []byte("not a ply\n"), 0644))

	outDir := filepath.Join(dir, "out")
	results := Run(Config{
		OutputDir:   outDir,
		Ramp:        colormap.Grey,
		RenderSize:  32,
		Supersample: 1,
		PointSize:   2,
		Workers:     2,
	}, []string{bad, good})

	require.Len(t, results, 2)
	require.False(t, results[0].Success)
	require.NotEmpty(t, results[0].Error)
	require.True(t, results[1].Success)
	require.Equal(t, 3, results[1].Points)

	_, err := os.Stat(filepath.Join(outDir, "good.webp"))
	require.NoError(t, err)

	require.NoError(t, WriteManifest(filepath.Join(outDir, "manifest.json"), results))
	data, err := os.ReadFile(filepath.Join(outDir, "manifest.json"))
	require.NoError(t, err)
	require.Contains(t, string(data), `"good.webp"`)
	require.Contains(t, string(data), `"points": 3`)
}
