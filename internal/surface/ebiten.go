package surface

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Ebiten paints onto an ebiten image, usually the screen passed to Draw.
type Ebiten struct {
	Dst       *ebiten.Image
	Antialias bool
}

// NewEbiten wraps dst with anti-aliasing on.
func NewEbiten(dst *ebiten.Image) *Ebiten {
	return &Ebiten{Dst: dst, Antialias: true}
}

func (s *Ebiten) DrawFilledRect(x, y, w, h float32, c color.Color) {
	vector.DrawFilledRect(s.Dst, x, y, w, h, c, false)
}

func (s *Ebiten) DrawLine(x1, y1, x2, y2 float32, c color.Color, strokeWidth float32) {
	vector.StrokeLine(s.Dst, x1, y1, x2, y2, strokeWidth, c, s.Antialias)
}

func (s *Ebiten) DrawCircle(x, y, radius float32, c color.Color) {
	vector.DrawFilledCircle(s.Dst, x, y, radius, c, s.Antialias)
}

func (s *Ebiten) DrawGradientLine(seg Segment, from, to color.Color, strokeWidth float32) {
	splitGradient(seg, from, to, gradientSteps, func(p Segment, c color.Color) {
		vector.StrokeLine(s.Dst, p.X1, p.Y1, p.X2, p.Y2, strokeWidth, c, s.Antialias)
	})
}
