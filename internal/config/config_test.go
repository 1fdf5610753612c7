package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	body := `{
		"data_dir": "/data/chopper",
		"output": "orbit.webp",
		"width": 800,
		"height": 450,
		"fps": 30
	}`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "/data/chopper", cfg.DataDir)
	assert.Equal(t, "orbit.webp", cfg.Output)
	assert.Equal(t, 800, cfg.Width)
	assert.Equal(t, 30, cfg.FPS)
	assert.Zero(t, cfg.Frames)
}

func TestLoadErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(path, []byte("width: 800"), 0o644))
	_, err = Load(path)
	require.Error(t, err)
}

func TestResolveDefaults(t *testing.T) {
	var cfg Config
	cfg.Resolve(Flags{})

	assert.NotEmpty(t, cfg.DataDir)
	assert.Equal(t, "animation.webp", cfg.Output)
	assert.Equal(t, 1050, cfg.Width)
	assert.Equal(t, 600, cfg.Height)
	assert.Equal(t, 24, cfg.FPS)
	assert.Equal(t, 144, cfg.Frames)
	assert.Equal(t, 2, cfg.Supersample)
	assert.Greater(t, cfg.Workers, 0)
	assert.Equal(t, 50, cfg.TickMS)
}

func TestResolveFlagOverrides(t *testing.T) {
	cfg := Config{Width: 800, FPS: 30, Output: "from_file.webp"}
	cfg.Resolve(Flags{Width: 1920, Output: "from_flag.webp", Frames: 10})

	assert.Equal(t, 1920, cfg.Width)
	assert.Equal(t, "from_flag.webp", cfg.Output)
	assert.Equal(t, 10, cfg.Frames)
	// file value survives when no flag is given
	assert.Equal(t, 30, cfg.FPS)
}

func TestResolveSceneXMLRelative(t *testing.T) {
	cfg := Config{DataDir: "/data/chopper", SceneXML: "scene.xml"}
	cfg.Resolve(Flags{})
	assert.Equal(t, filepath.Join("/data/chopper", "scene.xml"), cfg.SceneXML)

	abs := Config{DataDir: "/data/chopper", SceneXML: "/elsewhere/scene.xml"}
	abs.Resolve(Flags{})
	assert.Equal(t, "/elsewhere/scene.xml", abs.SceneXML)
}
