package shape

// Colors is the palette of a shape. The per-feature fields fall back to
// Default and Progress when built with NewColors.
type Colors struct {
	Background       ColorModel `yaml:"background"`
	Default          ColorModel `yaml:"default"`
	Progress         ColorModel `yaml:"progress"`
	ParticleDefault  ColorModel `yaml:"particle_default"`
	ParticleProgress ColorModel `yaml:"particle_progress"`
	LineDefault      ColorModel `yaml:"line_default"`
	LineProgress     ColorModel `yaml:"line_progress"`
}

// NewColors returns a palette whose particle and line colors equal the base colors.
func NewColors(background, def, progress ColorModel) Colors {
	return Colors{
		Background:       background,
		Default:          def,
		Progress:         progress,
		ParticleDefault:  def,
		ParticleProgress: progress,
		LineDefault:      def,
		LineProgress:     progress,
	}
}

// ColorOption overrides one per-feature color.
type ColorOption func(*Colors)

func WithParticleDefault(c ColorModel) ColorOption {
	return func(cs *Colors) { cs.ParticleDefault = c }
}

func WithParticleProgress(c ColorModel) ColorOption {
	return func(cs *Colors) { cs.ParticleProgress = c }
}

func WithLineDefault(c ColorModel) ColorOption {
	return func(cs *Colors) { cs.LineDefault = c }
}

func WithLineProgress(c ColorModel) ColorOption {
	return func(cs *Colors) { cs.LineProgress = c }
}

// With returns a copy of cs with the options applied.
func (cs Colors) With(opts ...ColorOption) Colors {
	for _, o := range opts {
		o(&cs)
	}
	return cs
}
