// Package config loads the application configuration file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/SeamusWaldron/twisty"
)

type Config struct {
	AnimSpeed        float64 `yaml:"anim_speed"`    // radians per second
	FrameRateHz      int     `yaml:"frame_rate_hz"` // engine ticks per second
	GestureTolerance float64 `yaml:"gesture_tolerance"`
	Camera           Camera  `yaml:"camera"`

	DBPath        string `yaml:"db_path"`
	EventLogDir   string `yaml:"event_log_dir"`
	ListenAddr    string `yaml:"listen_addr"`
	SolverCommand string `yaml:"solver_command"`
}

type Camera struct {
	Position [3]float64 `yaml:"position"`
	FovDeg   float64    `yaml:"fov_deg"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		AnimSpeed:        twisty.DefaultAnimSpeed,
		FrameRateHz:      60,
		GestureTolerance: twisty.DefaultGestureTolerance,
		Camera: Camera{
			Position: [3]float64{3, 4, 7},
			FovDeg:   75,
		},
		ListenAddr: "127.0.0.1:8080",
	}
}

// Load reads path over the defaults. Keys missing from the file keep their
// default values.
func Load(path string) (Config, error) {
	c := Default()
	raw, err := os.ReadFile(path)
	if err != nil {
		return c, err
	}
	if err := yaml.Unmarshal(raw, &c); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return c, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// LoadOptional is Load, except that a missing file yields the defaults.
func LoadOptional(path string) (Config, error) {
	c, err := Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return Default(), nil
	}
	return c, err
}

// Validate rejects values the engine cannot run with.
func (c Config) Validate() error {
	switch {
	case c.AnimSpeed <= 0:
		return fmt.Errorf("anim_speed must be positive, got %v", c.AnimSpeed)
	case c.FrameRateHz <= 0:
		return fmt.Errorf("frame_rate_hz must be positive, got %d", c.FrameRateHz)
	case c.GestureTolerance < 0:
		return fmt.Errorf("gesture_tolerance must not be negative, got %v", c.GestureTolerance)
	case c.Camera.FovDeg <= 0 || c.Camera.FovDeg >= 180:
		return fmt.Errorf("camera.fov_deg must be in (0, 180), got %v", c.Camera.FovDeg)
	case c.Camera.Position == [3]float64{}:
		return errors.New("camera.position must not be the origin")
	}
	return nil
}

// FrameInterval is the time between engine ticks.
func (c Config) FrameInterval() time.Duration {
	return time.Second / time.Duration(c.FrameRateHz)
}
