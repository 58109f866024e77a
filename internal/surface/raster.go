package surface

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"io"
	"math"

	"golang.org/x/image/vector"
)

// circleSegments is the polygon resolution used for particles.
const circleSegments = 32

// Raster paints into an in-memory RGBA image with an anti-aliasing rasterizer.
type Raster struct {
	img *image.RGBA
	r   *vector.Rasterizer
}

// NewRaster allocates a w×h transparent image.
func NewRaster(w, h int) *Raster {
	return &Raster{
		img: image.NewRGBA(image.Rect(0, 0, w, h)),
		r:   vector.NewRasterizer(w, h),
	}
}

// Image returns the backing image.
func (s *Raster) Image() *image.RGBA { return s.img }

// Size returns the image dimensions.
func (s *Raster) Size() (int, int) {
	b := s.img.Bounds()
	return b.Dx(), b.Dy()
}

// EncodePNG writes the current image as PNG.
func (s *Raster) EncodePNG(w io.Writer) error {
	if err := png.Encode(w, s.img); err != nil {
		return fmt.Errorf("encode png: %w", err)
	}
	return nil
}

func (s *Raster) begin() {
	w, h := s.Size()
	s.r.Reset(w, h)
	s.r.DrawOp = draw.Over
}

func (s *Raster) fill(c color.Color) {
	s.r.Draw(s.img, s.img.Bounds(), image.NewUniform(c), image.Point{})
}

func (s *Raster) DrawFilledRect(x, y, w, h float32, c color.Color) {
	if w <= 0 || h <= 0 {
		return
	}
	s.begin()
	s.r.MoveTo(x, y)
	s.r.LineTo(x+w, y)
	s.r.LineTo(x+w, y+h)
	s.r.LineTo(x, y+h)
	s.r.ClosePath()
	s.fill(c)
}

func (s *Raster) DrawLine(x1, y1, x2, y2 float32, c color.Color, strokeWidth float32) {
	dx, dy := x2-x1, y2-y1
	l := float32(math.Hypot(float64(dx), float64(dy)))
	if l == 0 || strokeWidth <= 0 {
		return
	}
	// Offset both ends by half the stroke along the normal.
	nx := -dy / l * strokeWidth / 2
	ny := dx / l * strokeWidth / 2
	s.begin()
	s.r.MoveTo(x1+nx, y1+ny)
	s.r.LineTo(x2+nx, y2+ny)
	s.r.LineTo(x2-nx, y2-ny)
	s.r.LineTo(x1-nx, y1-ny)
	s.r.ClosePath()
	s.fill(c)
}

func (s *Raster) DrawCircle(x, y, radius float32, c color.Color) {
	if radius <= 0 {
		return
	}
	s.begin()
	s.r.MoveTo(x+radius, y)
	for i := 1; i < circleSegments; i++ {
		a := 2 * math.Pi * float64(i) / circleSegments
		s.r.LineTo(x+radius*float32(math.Cos(a)), y+radius*float32(math.Sin(a)))
	}
	s.r.ClosePath()
	s.fill(c)
}

func (s *Raster) DrawGradientLine(seg Segment, from, to color.Color, strokeWidth float32) {
	splitGradient(seg, from, to, gradientSteps, func(p Segment, c color.Color) {
		s.DrawLine(p.X1, p.Y1, p.X2, p.Y2, c, strokeWidth)
	})
}
