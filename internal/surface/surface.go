// Package surface defines the drawing commands a shape issues each frame and
// the surfaces that paint them: an ebiten image, an in-memory raster, a
// terminal screen, and a recorder used by tests.
package surface

import "image/color"

// Surface paints primitive shapes in its own pixel space.
type Surface interface {
	DrawFilledRect(x, y, w, h float32, c color.Color)
	DrawLine(x1, y1, x2, y2 float32, c color.Color, strokeWidth float32)
	DrawCircle(x, y, radius float32, c color.Color)
}

// Segment is a straight line between two points.
type Segment struct {
	X1, Y1 float32
	X2, Y2 float32
}

// GradientSurface is implemented by surfaces that can stroke a line with a
// linear gradient running from its first point to its second.
type GradientSurface interface {
	Surface
	DrawGradientLine(seg Segment, from, to color.Color, strokeWidth float32)
}

// gradientSteps is the number of sub-segments used by surfaces that emulate
// gradients with solid strokes.
const gradientSteps = 8

// splitGradient cuts seg into n solid pieces with interpolated colors.
func splitGradient(seg Segment, from, to color.Color, n int, fn func(s Segment, c color.Color)) {
	if n < 1 {
		n = 1
	}
	a := color.NRGBAModel.Convert(from).(color.NRGBA)
	b := color.NRGBAModel.Convert(to).(color.NRGBA)
	dx := seg.X2 - seg.X1
	dy := seg.Y2 - seg.Y1
	for i := 0; i < n; i++ {
		t0 := float32(i) / float32(n)
		t1 := float32(i+1) / float32(n)
		mid := (t0 + t1) / 2
		fn(Segment{
			X1: seg.X1 + dx*t0, Y1: seg.Y1 + dy*t0,
			X2: seg.X1 + dx*t1, Y2: seg.Y1 + dy*t1,
		}, lerpNRGBA(a, b, mid))
	}
}

func lerpNRGBA(a, b color.NRGBA, t float32) color.NRGBA {
	mix := func(x, y uint8) uint8 {
		return uint8(float32(x) + (float32(y)-float32(x))*t)
	}
	return color.NRGBA{R: mix(a.R, b.R), G: mix(a.G, b.G), B: mix(a.B, b.B), A: mix(a.A, b.A)}
}

func toNRGBA(c color.Color) color.NRGBA {
	return color.NRGBAModel.Convert(c).(color.NRGBA)
}
