package cycloid

import (
	"fmt"
	"math"
	"time"

	applog "github.com/iburimskiy/cycloid-progress/internal/log"

	"github.com/iburimskiy/cycloid-progress/internal/shape"
)

// State is a snapshot of everything an Engine mutates, plus the model it was
// drawing. It is a plain value and safe to keep after the engine moves on.
type State struct {
	Model           shape.Model `yaml:"model"`
	TotalSpeed      float64     `yaml:"total_speed"`
	DeltaSpeed      float64     `yaml:"delta_speed"`
	TotalRadius     float64     `yaml:"total_radius"`
	DeltaRadius     float64     `yaml:"delta_radius"`
	TimeProgress    time.Time   `yaml:"time_progress"`
	IndexProgress   int         `yaml:"index_progress"`
	FromProgress    int         `yaml:"from_progress"`
	ToProgress      int         `yaml:"to_progress"`
	IsShapeDynamic  bool        `yaml:"shape_dynamic"`
	IsColorDynamic  bool        `yaml:"color_dynamic"`
	IsRadiusDynamic bool        `yaml:"radius_dynamic"`
}

// OnSave captures the engine state.
func (e *Engine) OnSave() any {
	return e.Snapshot()
}

// Snapshot is OnSave with a concrete return type.
func (e *Engine) Snapshot() State {
	return State{
		Model:           e.model,
		TotalSpeed:      e.totalSpeed,
		DeltaSpeed:      e.deltaSpeed,
		TotalRadius:     e.totalRadius,
		DeltaRadius:     e.deltaRadius,
		TimeProgress:    e.timeProgress,
		IndexProgress:   e.indexProgress,
		FromProgress:    e.fromProgress,
		ToProgress:      e.toProgress,
		IsShapeDynamic:  e.isShapeDynamic,
		IsColorDynamic:  e.isColorDynamic,
		IsRadiusDynamic: e.isRadiusDynamic,
	}
}

// Validate reports why s cannot be applied to an engine, or nil.
func (s State) Validate() error {
	switch {
	case s.ToProgress < 1:
		return fmt.Errorf("%w: to_progress %d must be positive", ErrInvalidState, s.ToProgress)
	case s.FromProgress < 0 || s.FromProgress > s.ToProgress:
		return fmt.Errorf("%w: from_progress %d outside [0, %d]", ErrInvalidState, s.FromProgress, s.ToProgress)
	case s.IndexProgress < 0 || s.IndexProgress > s.ToProgress:
		return fmt.Errorf("%w: index_progress %d outside [0, %d]", ErrInvalidState, s.IndexProgress, s.ToProgress)
	case !(s.TotalRadius >= RadiusMin && s.TotalRadius <= RadiusMax):
		return fmt.Errorf("%w: total_radius %v outside [%v, %v]", ErrInvalidState, s.TotalRadius, RadiusMin, RadiusMax)
	case math.IsNaN(s.TotalSpeed) || math.IsInf(s.TotalSpeed, 0),
		math.IsNaN(s.DeltaSpeed) || math.IsInf(s.DeltaSpeed, 0),
		math.IsNaN(s.DeltaRadius) || math.IsInf(s.DeltaRadius, 0):
		return fmt.Errorf("%w: non-finite speed or radius step", ErrInvalidState)
	case s.Model.Y1 == 0 || s.Model.Y2 == 0:
		return fmt.Errorf("%w: model divisors must be non-zero", ErrInvalidState)
	}
	return nil
}

// OnRestore applies a State (or non-nil *State). Any other value, nil
// included, and any State that fails Validate is ignored and the current
// state is kept.
func (e *Engine) OnRestore(state any) {
	l := applog.WithOperation(e.log, "restore")
	var s State
	switch v := state.(type) {
	case State:
		s = v
	case *State:
		if v == nil {
			l.Debug("restore ignored", "type", "nil")
			return
		}
		s = *v
	default:
		l.Debug("restore ignored", "type", typeName(state))
		return
	}
	if err := s.Validate(); err != nil {
		l.Debug("restore ignored", "err", err)
		return
	}
	e.restore(s)
	l.Debug("restored", "index", e.indexProgress, "to", e.toProgress)
}

func (e *Engine) restore(s State) {
	e.model = s.Model
	e.totalSpeed = s.TotalSpeed
	e.deltaSpeed = s.DeltaSpeed
	e.totalRadius = s.TotalRadius
	e.deltaRadius = s.DeltaRadius
	e.timeProgress = s.TimeProgress
	e.indexProgress = s.IndexProgress
	e.fromProgress = s.FromProgress
	e.toProgress = s.ToProgress
	e.isShapeDynamic = s.IsShapeDynamic
	e.isColorDynamic = s.IsColorDynamic
	e.isRadiusDynamic = s.IsRadiusDynamic

	// The ring size follows toProgress.
	if e.width > 0 && e.height > 0 && len(e.particles) != e.toProgress {
		e.buildParticles()
	}
}
