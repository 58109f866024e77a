// Package config loads the YAML configuration shared by every host and turns
// it into a shape model and engine options.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/iburimskiy/cycloid-progress/internal/cycloid"
	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/shape"
)

const (
	WindowWidth  = 512
	WindowHeight = 512
	WindowTitle  = "Cycloid Progress - O: open audio, Space: pause, Esc/Q: quit"

	FrameDelayMs = 10
)

// Env var names used as overrides.
const (
	EnvShapeType     = "CYC_SHAPE_TYPE"
	EnvFromProgress  = "CYC_FROM_PROGRESS"
	EnvToProgress    = "CYC_TO_PROGRESS"
	EnvDynamicShape  = "CYC_DYNAMIC_SHAPE"
	EnvDynamicColor  = "CYC_DYNAMIC_COLOR"
	EnvDynamicRadius = "CYC_DYNAMIC_RADIUS"
	EnvFrameDelayMs  = "CYC_FRAME_DELAY_MS"
	EnvStateFile     = "CYC_STATE_FILE"
)

type ShapeConfig struct {
	Type           string  `yaml:"type"` // one..five or 0..4
	LineWidth      float32 `yaml:"line_width"`
	ParticleRadius float32 `yaml:"particle_radius"`
	FromProgress   int     `yaml:"from_progress"`
	ToProgress     int     `yaml:"to_progress"`
	DynamicShape   bool    `yaml:"dynamic_shape"`
	DynamicColor   bool    `yaml:"dynamic_color"`
	DynamicRadius  bool    `yaml:"dynamic_radius"`
	GradientLines  bool    `yaml:"gradient_lines"`
}

// ColorsConfig holds colors as hex strings. Empty per-feature colors fall
// back to Default or Progress. ProgressHue, when set, replaces Progress with a
// fully saturated color of that hue.
type ColorsConfig struct {
	Background       string   `yaml:"background"`
	Default          string   `yaml:"default"`
	Progress         string   `yaml:"progress"`
	ProgressHue      *float64 `yaml:"progress_hue,omitempty"`
	ParticleDefault  string   `yaml:"particle_default,omitempty"`
	ParticleProgress string   `yaml:"particle_progress,omitempty"`
	LineDefault      string   `yaml:"line_default,omitempty"`
	LineProgress     string   `yaml:"line_progress,omitempty"`
}

type WindowConfig struct {
	Width   int     `yaml:"width"`
	Height  int     `yaml:"height"`
	Title   string  `yaml:"title"`
	Density float32 `yaml:"density"` // 0 means ask the platform
}

type LoggingConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
	Source bool   `yaml:"source"`
	File   string `yaml:"file"`
}

// Config is the whole user-editable configuration.
type Config struct {
	ConfigVersion int           `yaml:"config_version"`
	Shape         ShapeConfig   `yaml:"shape"`
	Colors        ColorsConfig  `yaml:"colors"`
	Window        WindowConfig  `yaml:"window"`
	FrameDelayMs  int           `yaml:"frame_delay_ms"`
	StateFile     string        `yaml:"state_file"`
	Logging       LoggingConfig `yaml:"logging"`
}

// Defaults returns the built-in configuration.
func Defaults() Config {
	return Config{
		ConfigVersion: 1,
		Shape: ShapeConfig{
			Type:           shape.TypeOne.String(),
			LineWidth:      shape.DefaultLineWidth,
			ParticleRadius: shape.DefaultParticleRadius,
			FromProgress:   cycloid.DefaultFrom,
			ToProgress:     cycloid.DefaultTo,
			DynamicShape:   true,
			DynamicColor:   true,
			DynamicRadius:  false,
		},
		Colors: ColorsConfig{
			Background: "#FFFFFF",
			Default:    "#B0BEC5",
			Progress:   "#3F51B5",
		},
		Window: WindowConfig{
			Width:  WindowWidth,
			Height: WindowHeight,
			Title:  WindowTitle,
		},
		FrameDelayMs: FrameDelayMs,
		Logging:      LoggingConfig{Level: "info", Format: "console"},
	}
}

// Path returns the per-user config file path.
func Path() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config dir: %w", err)
	}
	return filepath.Join(dir, "cycloid-progress", "config.yaml"), nil
}

// Load reads path (the per-user file when empty) over the defaults and
// applies environment overrides. A missing file is not an error. On a read or
// parse error the defaults, with env overrides, are returned with the error.
func Load(path string) (Config, error) {
	cfg := Defaults()
	if path == "" {
		p, err := Path()
		if err != nil {
			applyEnvOverrides(&cfg)
			return cfg, err
		}
		path = p
	}
	var loadErr error
	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
	case err != nil:
		loadErr = fmt.Errorf("read config: %w", err)
	default:
		fileCfg := Defaults()
		if err := yaml.Unmarshal(data, &fileCfg); err != nil {
			loadErr = fmt.Errorf("parse config %s: %w", path, err)
		} else {
			cfg = fileCfg
		}
	}
	applyEnvOverrides(&cfg)
	return cfg, loadErr
}

// Save writes cfg as YAML to path, creating parent directories.
func Save(path string, cfg Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func parseBool(v string) bool {
	lv := strings.ToLower(strings.TrimSpace(v))
	return lv == "1" || lv == "true" || lv == "on" || lv == "yes"
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvShapeType)); v != "" {
		cfg.Shape.Type = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvFromProgress)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Shape.FromProgress = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvToProgress)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Shape.ToProgress = n
		}
	}
	if v := os.Getenv(EnvDynamicShape); v != "" {
		cfg.Shape.DynamicShape = parseBool(v)
	}
	if v := os.Getenv(EnvDynamicColor); v != "" {
		cfg.Shape.DynamicColor = parseBool(v)
	}
	if v := os.Getenv(EnvDynamicRadius); v != "" {
		cfg.Shape.DynamicRadius = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(EnvFrameDelayMs)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.FrameDelayMs = n
		}
	}
	if v := strings.TrimSpace(os.Getenv(EnvStateFile)); v != "" {
		cfg.StateFile = v
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogLevel)); v != "" {
		cfg.Logging.Level = strings.ToLower(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFormat)); v != "" {
		cfg.Logging.Format = strings.ToLower(v)
	}
	if v := os.Getenv(applog.EnvLogSource); v != "" {
		cfg.Logging.Source = parseBool(v)
	}
	if v := strings.TrimSpace(os.Getenv(applog.EnvLogFile)); v != "" {
		cfg.Logging.File = v
	}
}

// LogOptions converts the logging section for log.Init.
func (c Config) LogOptions() applog.Options {
	return applog.Options{
		Level:     c.Logging.Level,
		Format:    c.Logging.Format,
		AddSource: c.Logging.Source,
		File:      c.Logging.File,
	}
}

// FrameDelay returns the scheduler delay.
func (c Config) FrameDelay() time.Duration {
	if c.FrameDelayMs <= 0 {
		return FrameDelayMs * time.Millisecond
	}
	return time.Duration(c.FrameDelayMs) * time.Millisecond
}

// Palette resolves the configured colors.
func (c ColorsConfig) Palette() (shape.Colors, error) {
	bg, err := shape.ParseHex(c.Background)
	if err != nil {
		return shape.Colors{}, fmt.Errorf("colors.background: %w", err)
	}
	def, err := shape.ParseHex(c.Default)
	if err != nil {
		return shape.Colors{}, fmt.Errorf("colors.default: %w", err)
	}
	var prog shape.ColorModel
	if c.ProgressHue != nil {
		prog = shape.FromHSV(*c.ProgressHue, 0.8, 0.9)
	} else if prog, err = shape.ParseHex(c.Progress); err != nil {
		return shape.Colors{}, fmt.Errorf("colors.progress: %w", err)
	}

	var opts []shape.ColorOption
	for _, o := range []struct {
		name string
		val  string
		with func(shape.ColorModel) shape.ColorOption
	}{
		{"colors.particle_default", c.ParticleDefault, shape.WithParticleDefault},
		{"colors.particle_progress", c.ParticleProgress, shape.WithParticleProgress},
		{"colors.line_default", c.LineDefault, shape.WithLineDefault},
		{"colors.line_progress", c.LineProgress, shape.WithLineProgress},
	} {
		if strings.TrimSpace(o.val) == "" {
			continue
		}
		cm, err := shape.ParseHex(o.val)
		if err != nil {
			return shape.Colors{}, fmt.Errorf("%s: %w", o.name, err)
		}
		opts = append(opts, o.with(cm))
	}
	return shape.NewColors(bg, def, prog).With(opts...), nil
}

// Model builds the shape model. density scales line width and particle
// radius from device-independent units to pixels; values <= 0 mean 1.
func (c Config) Model(density float32) (shape.Model, error) {
	t, err := shape.ParseType(c.Shape.Type)
	if err != nil {
		return shape.Model{}, fmt.Errorf("shape.type: %w", err)
	}
	colors, err := c.Colors.Palette()
	if err != nil {
		return shape.Model{}, err
	}
	if density <= 0 {
		density = 1
	}
	m := shape.NewModel(t, colors, c.Shape.LineWidth*density, c.Shape.ParticleRadius*density)
	return m.WithGradientLines(c.Shape.GradientLines), nil
}

// EngineOptions returns the engine options for the shape section.
func (c Config) EngineOptions() []cycloid.Option {
	return []cycloid.Option{
		cycloid.WithProgressRange(c.Shape.FromProgress, c.Shape.ToProgress),
		cycloid.WithShapeDynamic(c.Shape.DynamicShape),
		cycloid.WithColorDynamic(c.Shape.DynamicColor),
		cycloid.WithRadiusDynamic(c.Shape.DynamicRadius),
	}
}

// NewEngine builds an engine from the configuration.
func (c Config) NewEngine(density float32, opts ...cycloid.Option) (*cycloid.Engine, error) {
	m, err := c.Model(density)
	if err != nil {
		return nil, err
	}
	return cycloid.New(m, append(c.EngineOptions(), opts...)...), nil
}
