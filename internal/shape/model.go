package shape

import (
	"fmt"
	"strconv"
	"strings"
)

// Default sizing in device-independent units.
const (
	DefaultLineWidth      = 7
	DefaultParticleRadius = 15
)

// Type names one of the predefined curves.
type Type int

const (
	TypeOne Type = iota
	TypeTwo
	TypeThree
	TypeFour
	TypeFive
)

var typeNames = [...]string{"one", "two", "three", "four", "five"}

func (t Type) String() string {
	if t < 0 || int(t) >= len(typeNames) {
		return "Type(" + strconv.Itoa(int(t)) + ")"
	}
	return typeNames[t]
}

// ParseType accepts a preset name ("one".."five") or its index ("0".."4").
func ParseType(s string) (Type, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, n := range typeNames {
		if s == n {
			return Type(i), nil
		}
	}
	if n, err := strconv.Atoi(s); err == nil && n >= 0 && n < len(typeNames) {
		return Type(n), nil
	}
	return 0, fmt.Errorf("unknown shape type %q", s)
}

// Constants are the frequency/divisor pairs of a curve.
type Constants struct {
	X1, Y1 float32
	X2, Y2 float32
}

var presets = [...]Constants{
	TypeOne:   {X1: 1.286000, Y1: 4.242000, X2: 1.286000, Y2: 4.242000},
	TypeTwo:   {X1: 4.283176, Y1: 3.518178, X2: 3.683177, Y2: 3.668177},
	TypeThree: {X1: 2.150000, Y1: 2.299000, X2: 2.150000, Y2: 2.299000},
	TypeFour:  {X1: 3.216887, Y1: 4.066366, X2: 3.216887, Y2: 4.066366},
	TypeFive:  {X1: 1.745000, Y1: 1.575000, X2: 1.745000, Y2: 1.575000},
}

// Constants returns the preset constants. Unknown types fall back to TypeOne.
func (t Type) Constants() Constants {
	if t < 0 || int(t) >= len(presets) {
		return presets[TypeOne]
	}
	return presets[t]
}

// Model describes one cycloid: curve constants, sizing and palette.
// It is treated as immutable once built.
type Model struct {
	X1             float32 `yaml:"x1"`
	Y1             float32 `yaml:"y1"`
	X2             float32 `yaml:"x2"`
	Y2             float32 `yaml:"y2"`
	LineWidth      float32 `yaml:"line_width"`
	ParticleRadius float32 `yaml:"particle_radius"`
	GradientLines  bool    `yaml:"gradient_lines"`
	Colors         Colors  `yaml:"colors"`
}

// NewModel builds a model from a preset.
func NewModel(t Type, colors Colors, lineWidth, particleRadius float32) Model {
	c := t.Constants()
	return Model{
		X1: c.X1, Y1: c.Y1,
		X2: c.X2, Y2: c.Y2,
		LineWidth:      lineWidth,
		ParticleRadius: particleRadius,
		Colors:         colors,
	}
}

// WithGradientLines returns a copy of m that asks for gradient connecting lines.
func (m Model) WithGradientLines(on bool) Model {
	m.GradientLines = on
	return m
}
