package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "twisty.yaml")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := writeFile(t, `
anim_speed: 6.25
frame_rate_hz: 30
camera:
  position: [0, 8, 3]
solver_command: kociemba
`)
	c, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}
	if c.AnimSpeed != 6.25 || c.FrameRateHz != 30 || c.SolverCommand != "kociemba" {
		t.Errorf("unexpected config %+v", c)
	}
	if c.Camera.Position != [3]float64{0, 8, 3} {
		t.Errorf("camera position = %v", c.Camera.Position)
	}
	if c.Camera.FovDeg != 75 || c.GestureTolerance != 0.015 {
		t.Error("keys missing from the file should keep their defaults")
	}
	if c.FrameInterval() != time.Second/30 {
		t.Errorf("FrameInterval() = %v", c.FrameInterval())
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []string{
		"anim_speed: 0",
		"frame_rate_hz: -1",
		"camera:\n  fov_deg: 180",
		"camera:\n  position: [0, 0, 0]",
		"anim_speed: [1",
	}
	for _, body := range tests {
		if _, err := Load(writeFile(t, body)); err == nil {
			t.Errorf("Load(%q) should fail", body)
		}
	}
}

func TestLoadOptionalMissingFile(t *testing.T) {
	c, err := LoadOptional(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if c != Default() {
		t.Errorf("got %+v, want defaults", c)
	}
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load should report a missing file")
	}
}
