package cycloid

import (
	"github.com/iburimskiy/cycloid-progress/internal/shape"
	"github.com/iburimskiy/cycloid-progress/internal/surface"
)

// Particle is one point of the ring. Delta is its fixed phase offset; the
// other fields are recomputed every frame.
type Particle struct {
	X, Y   float32
	Radius float32
	Delta  float64
	Color  shape.ColorModel
}

// Draw paints the particle as a filled circle.
func (p Particle) Draw(s surface.Surface) {
	s.DrawCircle(p.X, p.Y, p.Radius, p.Color.NRGBA())
}
