package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoadAndResolve(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"input_dir": "/clouds",
		"render_size": 128,
		"workers": 3
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	cfg.Resolve(Flags{})

	require.Equal(t, "/clouds", cfg.InputDir)
	require.Equal(t, filepath.Join("/clouds", "previews"), cfg.OutputDir)
	require.Equal(t, 128, cfg.RenderSize)
	require.Equal(t, 3, cfg.Workers)

	// Unset settings pick up defaults.
	require.Equal(t, 2, cfg.Supersample)
	require.Equal(t, 2, cfg.PointSize)
}

func TestFlagsOverrideConfig(t *testing.T) {
	cfg := Config{InputDir: "/a", RenderSize: 128, Workers: 2}
	cfg.Resolve(Flags{InputDir: "/b", Size: 256, Workers: 8, Colormap: "ramp.png"})

	require.Equal(t, "/b", cfg.InputDir)
	require.Equal(t, 256, cfg.RenderSize)
	require.Equal(t, 8, cfg.Workers)
	require.Equal(t, "ramp.png", cfg.Colormap)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte("{nope"), 0644))
	_, err = Load(bad)
	require.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})
	require.Equal(t, 512, cfg.RenderSize)
	require.Greater(t, cfg.Workers, 0)
	require.Empty(t, cfg.OutputDir) // no input dir to derive it from
}
