package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

// Config holds all configurable paths and render settings.
type Config struct {
	// Paths
	DataDir  string `json:"data_dir"`
	SceneXML string `json:"scene_xml"`
	Output   string `json:"output"`

	// Render settings
	Width       int `json:"width"`
	Height      int `json:"height"`
	FPS         int `json:"fps"`
	Frames      int `json:"frames"`
	Supersample int `json:"supersample"`
	Workers     int `json:"workers"`
	TickMS      int `json:"tick_ms"` // auto-advance period in interactive mode
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	DataDir     string
	SceneXML    string
	Output      string
	Frames      int
	FPS         int
	Width       int
	Height      int
	Supersample int
	Workers     int
}

// Resolve applies flag overrides, then fills any remaining empty fields with
// defaults. CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	if flags.DataDir != "" {
		c.DataDir = flags.DataDir
	}
	if flags.SceneXML != "" {
		c.SceneXML = flags.SceneXML
	}
	if flags.Output != "" {
		c.Output = flags.Output
	}
	if flags.Frames > 0 {
		c.Frames = flags.Frames
	}
	if flags.FPS > 0 {
		c.FPS = flags.FPS
	}
	if flags.Width > 0 {
		c.Width = flags.Width
	}
	if flags.Height > 0 {
		c.Height = flags.Height
	}
	if flags.Supersample > 0 {
		c.Supersample = flags.Supersample
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}

	if c.DataDir == "" {
		c.DataDir, _ = os.Getwd()
	}
	if c.SceneXML != "" && !filepath.IsAbs(c.SceneXML) {
		c.SceneXML = filepath.Join(c.DataDir, c.SceneXML)
	}
	if c.Output == "" {
		c.Output = "animation.webp"
	}

	// Defaults for render settings
	if c.Width <= 0 {
		c.Width = 1050
	}
	if c.Height <= 0 {
		c.Height = 600
	}
	if c.FPS <= 0 {
		c.FPS = 24
	}
	if c.Frames <= 0 {
		c.Frames = 144
	}
	if c.Supersample <= 0 {
		c.Supersample = 2
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.TickMS <= 0 {
		c.TickMS = 50
	}
}
