package surface

import (
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"
)

// Term maps pixel coordinates onto terminal cells. Each cell covers
// CellW×CellH pixels of the virtual surface.
type Term struct {
	Screen tcell.Screen
	CellW  float32
	CellH  float32

	bg tcell.Color
}

// NewTerm uses a 2:1 cell aspect, the usual shape of a terminal glyph.
func NewTerm(screen tcell.Screen, cellW float32) *Term {
	return &Term{Screen: screen, CellW: cellW, CellH: cellW * 2, bg: tcell.ColorDefault}
}

// PixelSize returns the virtual pixel size of the whole screen.
func (s *Term) PixelSize() (int, int) {
	cols, rows := s.Screen.Size()
	return int(float32(cols) * s.CellW), int(float32(rows) * s.CellH)
}

func tcellColor(c color.Color) (tcell.Color, bool) {
	n := toNRGBA(c)
	if n.A == 0 {
		return tcell.ColorDefault, false
	}
	return tcell.NewRGBColor(int32(n.R), int32(n.G), int32(n.B)), true
}

func (s *Term) cell(x, y float32) (int, int) {
	return int(x / s.CellW), int(y / s.CellH)
}

func (s *Term) put(x, y float32, r rune, fg tcell.Color) {
	cx, cy := s.cell(x, y)
	cols, rows := s.Screen.Size()
	if cx < 0 || cy < 0 || cx >= cols || cy >= rows {
		return
	}
	s.Screen.SetContent(cx, cy, r, nil, tcell.StyleDefault.Foreground(fg).Background(s.bg))
}

func (s *Term) DrawFilledRect(x, y, w, h float32, c color.Color) {
	col, ok := tcellColor(c)
	if !ok {
		return
	}
	s.bg = col
	x0, y0 := s.cell(x, y)
	x1, y1 := s.cell(x+w, y+h)
	style := tcell.StyleDefault.Background(col)
	for cy := y0; cy < y1; cy++ {
		for cx := x0; cx < x1; cx++ {
			s.Screen.SetContent(cx, cy, ' ', nil, style)
		}
	}
}

func (s *Term) DrawLine(x1, y1, x2, y2 float32, c color.Color, _ float32) {
	col, ok := tcellColor(c)
	if !ok {
		return
	}
	// One sample per cell along the longer axis.
	dx := float64(x2-x1) / float64(s.CellW)
	dy := float64(y2-y1) / float64(s.CellH)
	n := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if n == 0 {
		s.put(x1, y1, '·', col)
		return
	}
	for i := 0; i <= n; i++ {
		t := float32(i) / float32(n)
		s.put(x1+(x2-x1)*t, y1+(y2-y1)*t, '·', col)
	}
}

func (s *Term) DrawCircle(x, y, radius float32, c color.Color) {
	col, ok := tcellColor(c)
	if !ok {
		return
	}
	s.put(x, y, '●', col)
}

func (s *Term) DrawGradientLine(seg Segment, from, to color.Color, strokeWidth float32) {
	splitGradient(seg, from, to, gradientSteps, func(p Segment, c color.Color) {
		s.DrawLine(p.X1, p.Y1, p.X2, p.Y2, c, strokeWidth)
	})
}
