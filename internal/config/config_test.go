package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/iburimskiy/cycloid-progress/internal/shape"
)

func writeFile(t *testing.T, body string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(p, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return p
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	p := writeFile(t, `
shape:
  type: three
  to_progress: 40
colors:
  progress: "#FF0000"
`)
	cfg, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Defaults()
	want.Shape.Type = "three"
	want.Shape.ToProgress = 40
	want.Colors.Progress = "#FF0000"
	if diff := cmp.Diff(want, cfg); diff != "" {
		t.Fatalf("config mismatch (-want +got):\n%s", diff)
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	p := writeFile(t, "shape: [not, a, map")
	cfg, err := Load(p)
	if err == nil {
		t.Fatalf("Load accepted invalid yaml")
	}
	if diff := cmp.Diff(Defaults(), cfg); diff != "" {
		t.Fatalf("invalid file should yield defaults (-want +got):\n%s", diff)
	}
}

func TestEnvOverrides(t *testing.T) {
	t.Setenv(EnvShapeType, "five")
	t.Setenv(EnvFromProgress, "3")
	t.Setenv(EnvToProgress, "30")
	t.Setenv(EnvDynamicShape, "off")
	t.Setenv(EnvDynamicRadius, "yes")
	t.Setenv(EnvFrameDelayMs, "25")
	t.Setenv(EnvStateFile, "/tmp/state.yaml")
	t.Setenv("CYC_LOG_LEVEL", "DEBUG")

	cfg, err := Load(writeFile(t, "shape:\n  type: two\n"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Shape.Type != "five" {
		t.Errorf("type = %q, want five", cfg.Shape.Type)
	}
	if cfg.Shape.FromProgress != 3 || cfg.Shape.ToProgress != 30 {
		t.Errorf("range = %d..%d, want 3..30", cfg.Shape.FromProgress, cfg.Shape.ToProgress)
	}
	if cfg.Shape.DynamicShape || !cfg.Shape.DynamicRadius {
		t.Errorf("dynamic shape=%v radius=%v", cfg.Shape.DynamicShape, cfg.Shape.DynamicRadius)
	}
	if got := cfg.FrameDelay(); got != 25*time.Millisecond {
		t.Errorf("FrameDelay = %v", got)
	}
	if cfg.StateFile != "/tmp/state.yaml" {
		t.Errorf("state file = %q", cfg.StateFile)
	}
	if cfg.LogOptions().Level != "debug" {
		t.Errorf("log level = %q", cfg.LogOptions().Level)
	}
}

func TestEnvIgnoresBadNumbers(t *testing.T) {
	t.Setenv(EnvToProgress, "many")
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Shape.ToProgress != Defaults().Shape.ToProgress {
		t.Fatalf("to_progress = %d", cfg.Shape.ToProgress)
	}
}

func TestModel(t *testing.T) {
	cfg := Defaults()
	cfg.Shape.Type = "2"
	cfg.Shape.GradientLines = true
	cfg.Colors.LineProgress = "#000"

	m, err := cfg.Model(2)
	if err != nil {
		t.Fatalf("Model: %v", err)
	}
	c := shape.TypeThree.Constants()
	if m.X1 != c.X1 || m.Y1 != c.Y1 || m.X2 != c.X2 || m.Y2 != c.Y2 {
		t.Errorf("constants = %v %v %v %v, want preset three", m.X1, m.Y1, m.X2, m.Y2)
	}
	if m.LineWidth != 14 || m.ParticleRadius != 30 {
		t.Errorf("sizes = %v/%v, want 14/30", m.LineWidth, m.ParticleRadius)
	}
	if !m.GradientLines {
		t.Errorf("gradient lines not carried into the model")
	}
	if want := shape.RGBA(0xB0, 0xBE, 0xC5, 0xFF); m.Colors.Default != want || m.Colors.ParticleDefault != want {
		t.Errorf("default color = %+v", m.Colors.Default)
	}
	if want := shape.RGBA(0, 0, 0, 0xFF); m.Colors.LineProgress != want {
		t.Errorf("line progress = %+v, want %+v", m.Colors.LineProgress, want)
	}
	if want := shape.RGBA(0x3F, 0x51, 0xB5, 0xFF); m.Colors.ParticleProgress != want {
		t.Errorf("particle progress = %+v, want %+v", m.Colors.ParticleProgress, want)
	}

	if m1, _ := cfg.Model(0); m1.LineWidth != shape.DefaultLineWidth {
		t.Errorf("density 0 line width = %v", m1.LineWidth)
	}
}

func TestModelErrors(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		target error
	}{
		{"bad background", func(c *Config) { c.Colors.Background = "white" }, shape.ErrBadColor},
		{"bad line color", func(c *Config) { c.Colors.LineDefault = "#12" }, shape.ErrBadColor},
		{"bad type", func(c *Config) { c.Shape.Type = "seven" }, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Defaults()
			tt.mutate(&cfg)
			_, err := cfg.Model(1)
			if err == nil {
				t.Fatalf("Model accepted invalid config")
			}
			if tt.target != nil && !errors.Is(err, tt.target) {
				t.Fatalf("err = %v, want %v", err, tt.target)
			}
		})
	}
}

func TestProgressHue(t *testing.T) {
	cfg := Defaults()
	hue := 120.0
	cfg.Colors.ProgressHue = &hue
	cfg.Colors.Progress = "not a color"
	pal, err := cfg.Colors.Palette()
	if err != nil {
		t.Fatalf("Palette: %v", err)
	}
	if want := shape.FromHSV(120, 0.8, 0.9); pal.Progress != want {
		t.Fatalf("progress = %+v, want %+v", pal.Progress, want)
	}
}

func TestNewEngine(t *testing.T) {
	cfg := Defaults()
	cfg.Shape.FromProgress = 10
	cfg.Shape.ToProgress = 50
	cfg.Shape.DynamicShape = false
	e, err := cfg.NewEngine(1)
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	if from, to := e.Range(); from != 10 || to != 50 {
		t.Fatalf("Range = %d, %d", from, to)
	}
	if e.ShapeDynamic() {
		t.Fatalf("shape dynamic should be off")
	}
}

func TestSaveLoad(t *testing.T) {
	p := filepath.Join(t.TempDir(), "nested", "config.yaml")
	cfg := Defaults()
	cfg.Shape.Type = "four"
	cfg.Window.Density = 1.5
	cfg.Colors.LineDefault = "#102030"
	if err := Save(p, cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := Load(p)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if diff := cmp.Diff(cfg, got); diff != "" {
		t.Fatalf("round trip mismatch (-want +got):\n%s", diff)
	}
}
