// Package cycloid animates a ring of particles along a two-term parametric
// curve and highlights the part of the ring covered by progress.
//
// An Engine is not safe for concurrent use. Hosts call OnSizeChanged when the
// surface changes size and OnDraw once per frame, from the same goroutine.
package cycloid

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	applog "github.com/iburimskiy/cycloid-progress/internal/log"
	"github.com/iburimskiy/cycloid-progress/internal/shape"
	"github.com/iburimskiy/cycloid-progress/internal/surface"
)

const (
	// LineTimer is the minimum time between two automatic progress steps.
	LineTimer = 100 * time.Millisecond
	// ParticleStep is the phase distance between neighbouring particles.
	ParticleStep = 0.4

	RadiusMax   = 0.30
	RadiusMin   = 0.20
	RadiusDelta = 0.001
	DeltaSpeed  = 0.01

	DefaultFrom = 0
	DefaultTo   = 100

	speedEpsilon = 0.001
)

// ErrInvalidState is returned when the engine is asked to draw or lay out
// particles without a positive surface size.
var ErrInvalidState = errors.New("invalid state")

// Clock supplies the time used for progress steps.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// Option configures an Engine.
type Option func(*Engine)

// WithProgressRange sets the progress domain. The ring holds to particles.
func WithProgressRange(from, to int) Option {
	return func(e *Engine) {
		e.fromProgress = from
		e.toProgress = to
	}
}

// WithShapeDynamic turns automatic progress steps on or off.
func WithShapeDynamic(on bool) Option {
	return func(e *Engine) { e.isShapeDynamic = on }
}

// WithColorDynamic turns position-dependent color blending on or off.
func WithColorDynamic(on bool) Option {
	return func(e *Engine) { e.isColorDynamic = on }
}

// WithRadiusDynamic turns the breathing ring radius on or off.
func WithRadiusDynamic(on bool) Option {
	return func(e *Engine) { e.isRadiusDynamic = on }
}

func WithClock(c Clock) Option {
	return func(e *Engine) { e.clock = c }
}

func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// Engine is the stateful cycloid animator.
type Engine struct {
	model     shape.Model
	particles []Particle

	totalSpeed  float64
	deltaSpeed  float64
	totalRadius float64
	deltaRadius float64

	timeProgress  time.Time
	indexProgress int
	fromProgress  int
	toProgress    int

	isShapeDynamic  bool
	isColorDynamic  bool
	isRadiusDynamic bool

	width, height int

	clock Clock
	log   *slog.Logger
}

var _ shape.Shape = (*Engine)(nil)

// New returns an engine for model. Particles are created by the first
// OnSizeChanged call.
func New(model shape.Model, opts ...Option) *Engine {
	e := &Engine{
		model:          model,
		deltaSpeed:     DeltaSpeed,
		totalRadius:    RadiusMax,
		deltaRadius:    RadiusDelta,
		fromProgress:   DefaultFrom,
		toProgress:     DefaultTo,
		isShapeDynamic: true,
		isColorDynamic: true,
	}
	for _, o := range opts {
		o(e)
	}
	if e.clock == nil {
		e.clock = systemClock{}
	}
	if e.log == nil {
		e.log = applog.WithComponent("cycloid")
	}
	if e.toProgress < 1 {
		e.log.Warn("progress upper bound must be positive, using default", "to", e.toProgress)
		e.toProgress = DefaultTo
	}
	if e.fromProgress < 0 || e.fromProgress > e.toProgress {
		e.log.Warn("progress lower bound out of range, using default", "from", e.fromProgress)
		e.fromProgress = DefaultFrom
	}
	e.indexProgress = e.fromProgress
	e.timeProgress = e.clock.Now()
	return e
}

// Model returns the shape model currently drawn.
func (e *Engine) Model() shape.Model { return e.model }

// Progress returns the progress pointer.
func (e *Engine) Progress() int { return e.indexProgress }

// Range returns the progress bounds.
func (e *Engine) Range() (from, to int) { return e.fromProgress, e.toProgress }

// TotalSpeed returns the phase accumulator in radians.
func (e *Engine) TotalSpeed() float64 { return e.totalSpeed }

// TotalRadius returns the ring radius scale factor.
func (e *Engine) TotalRadius() float64 { return e.totalRadius }

// Particles returns a copy of the particle ring.
func (e *Engine) Particles() []Particle {
	out := make([]Particle, len(e.particles))
	copy(out, e.particles)
	return out
}

// SetShapeDynamic pauses or resumes automatic progress steps.
func (e *Engine) SetShapeDynamic(on bool) { e.isShapeDynamic = on }

// ShapeDynamic reports whether automatic progress steps are on.
func (e *Engine) ShapeDynamic() bool { return e.isShapeDynamic }

func (e *Engine) size() (int, int, error) {
	if e.width <= 0 {
		return 0, 0, fmt.Errorf("%w: width must be more than zero", ErrInvalidState)
	}
	if e.height <= 0 {
		return 0, 0, fmt.Errorf("%w: height must be more than zero", ErrInvalidState)
	}
	return e.width, e.height, nil
}

// OnSizeChanged records the new surface size and rebuilds the particle ring.
func (e *Engine) OnSizeChanged(width, height int) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: surface size %dx%d", ErrInvalidState, width, height)
	}
	e.width, e.height = width, height
	e.buildParticles()
	applog.WithOperation(e.log, "resize").Debug("size changed", "width", width, "height", height, "particles", len(e.particles))
	return nil
}

func (e *Engine) buildParticles() {
	e.particles = make([]Particle, e.toProgress)
	rx, ry := e.radii()
	for i := range e.particles {
		p := &e.particles[i]
		p.Delta = float64(i) * ParticleStep
		p.Radius = e.model.ParticleRadius
		p.Color = e.blend(e.model.Colors.ParticleDefault, e.factor(i), shape.AlphaKeep)
		e.place(p, rx, ry)
	}
}

// OnDraw advances one frame at the engine clock's current time.
func (e *Engine) OnDraw(s surface.Surface) error {
	return e.Frame(e.clock.Now(), s)
}

// Frame advances the animation to now and issues the frame's drawing
// commands to s.
func (e *Engine) Frame(now time.Time, s surface.Surface) error {
	w, h, err := e.size()
	if err != nil {
		return err
	}
	e.stepSpeed()
	e.stepRadius()
	rx, ry := e.radii()
	for i := range e.particles {
		e.place(&e.particles[i], rx, ry)
	}
	e.draw(s, w, h)
	e.stepProgress(now)
	return nil
}

func (e *Engine) stepSpeed() {
	const full = 2 * math.Pi
	if math.Abs(e.totalSpeed-full) < speedEpsilon {
		e.totalSpeed = 0
	}
	e.totalSpeed += e.deltaSpeed
	if e.totalSpeed >= full || e.totalSpeed < 0 {
		e.totalSpeed = math.Mod(e.totalSpeed, full)
		if e.totalSpeed < 0 {
			e.totalSpeed += full
		}
	}
}

func (e *Engine) stepRadius() {
	if !e.isRadiusDynamic {
		return
	}
	next := e.totalRadius + e.deltaRadius
	if next > RadiusMax || next < RadiusMin {
		e.deltaRadius = -e.deltaRadius
		next = e.totalRadius + e.deltaRadius
	}
	e.totalRadius = math.Min(math.Max(next, RadiusMin), RadiusMax)
}

func (e *Engine) stepProgress(now time.Time) {
	if now.Sub(e.timeProgress) >= LineTimer && e.indexProgress < len(e.particles)-1 {
		e.timeProgress = now
		if e.isShapeDynamic {
			e.indexProgress++
		}
	}
}

// radii scales the ring to the surface aspect ratio.
func (e *Engine) radii() (float64, float64) {
	w, h := float64(e.width), float64(e.height)
	if w <= h {
		return w * e.totalRadius, h * e.totalRadius
	}
	return w * e.totalRadius / (w / h), h * e.totalRadius
}

func (e *Engine) place(p *Particle, rx, ry float64) {
	cx := float64(e.width / 2)
	cy := float64(e.height / 2)
	t := p.Delta + e.totalSpeed
	m := e.model
	p.X = float32(cx + rx*(math.Cos(t)+math.Cos(float64(m.X1)*t)/float64(m.Y1)))
	p.Y = float32(cy + ry*(math.Sin(t)+math.Sin(float64(m.X2)*t)/float64(m.Y2)))
}

func (e *Engine) factor(index int) float32 {
	return float32(index) / float32(e.toProgress)
}

func (e *Engine) blend(c shape.ColorModel, factor float32, mode shape.AlphaMode) shape.ColorModel {
	if !e.isColorDynamic {
		return c
	}
	return c.AddToRGB(factor, mode)
}

func (e *Engine) inProgress(index int) bool {
	return index >= 0 && index <= e.indexProgress
}

func (e *Engine) particleColor(index int) shape.ColorModel {
	f := e.factor(index)
	if e.inProgress(index) {
		return e.blend(e.model.Colors.ParticleProgress, f*0.5, shape.AlphaSub)
	}
	return e.blend(e.model.Colors.ParticleDefault, f, shape.AlphaKeep)
}

func (e *Engine) lineColor(index int) shape.ColorModel {
	f := e.factor(index)
	if e.inProgress(index) {
		return e.blend(e.model.Colors.LineProgress, f*0.5, shape.AlphaSub)
	}
	return e.blend(e.model.Colors.LineDefault, f, shape.AlphaKeep)
}

func (e *Engine) closingColor() shape.ColorModel {
	if e.indexProgress >= len(e.particles)-1 {
		return e.blend(e.model.Colors.LineProgress, 1, shape.AlphaSub)
	}
	return e.blend(e.model.Colors.LineDefault, 1, shape.AlphaKeep)
}

func (e *Engine) draw(s surface.Surface, w, h int) {
	s.DrawFilledRect(0, 0, float32(w), float32(h), e.model.Colors.Background.NRGBA())

	n := len(e.particles)
	lw := e.model.LineWidth
	if n > 2 {
		first, last := e.particles[0], e.particles[n-1]
		s.DrawLine(first.X, first.Y, last.X, last.Y, e.closingColor().NRGBA(), lw)
	}

	gs, gradient := s.(surface.GradientSurface)
	gradient = gradient && e.model.GradientLines

	for i := range e.particles {
		p := &e.particles[i]
		lc := e.lineColor(i)
		if i < n-1 {
			next := e.particles[i+1]
			if gradient {
				seg := surface.Segment{X1: next.X, Y1: next.Y, X2: p.X, Y2: p.Y}
				gs.DrawGradientLine(seg, e.lineColor(i+1).NRGBA(), lc.NRGBA(), lw)
			} else {
				s.DrawLine(next.X, next.Y, p.X, p.Y, lc.NRGBA(), lw)
			}
		}
		p.Color = e.particleColor(i)
		p.Radius = e.model.ParticleRadius
		p.Draw(s)
	}
}

// SetProgress moves the progress pointer to value. Values equal to the
// current pointer or outside [0, to] are ignored.
func (e *Engine) SetProgress(value int) {
	if value == e.indexProgress || value < 0 || value > e.toProgress {
		return
	}
	e.indexProgress = value
}

// SetFraction maps f in [0,1] onto the progress range and applies it.
func (e *Engine) SetFraction(f float64) {
	f = clamp01(f)
	e.SetProgress(e.fromProgress + int(f*float64(e.toProgress-e.fromProgress)))
}

func clamp01(v float64) float64 {
	if v < 0 || math.IsNaN(v) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return fmt.Sprintf("%T", v)
}
