package surface

import (
	"bytes"
	"image/color"
	"image/png"
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/google/go-cmp/cmp"
)

var (
	red   = color.NRGBA{R: 255, A: 255}
	blue  = color.NRGBA{B: 255, A: 255}
	white = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

func TestSplitGradient(t *testing.T) {
	var segs []Segment
	var cols []color.NRGBA
	splitGradient(Segment{X1: 0, Y1: 0, X2: 40, Y2: 0}, red, blue, 4, func(s Segment, c color.Color) {
		segs = append(segs, s)
		cols = append(cols, toNRGBA(c))
	})

	wantSegs := []Segment{
		{X1: 0, X2: 10},
		{X1: 10, X2: 20},
		{X1: 20, X2: 30},
		{X1: 30, X2: 40},
	}
	if diff := cmp.Diff(wantSegs, segs); diff != "" {
		t.Fatalf("segments mismatch (-want +got):\n%s", diff)
	}
	wantCols := []color.NRGBA{
		{R: 223, B: 31, A: 255},
		{R: 159, B: 95, A: 255},
		{R: 95, B: 159, A: 255},
		{R: 31, B: 223, A: 255},
	}
	if diff := cmp.Diff(wantCols, cols); diff != "" {
		t.Fatalf("colors mismatch (-want +got):\n%s", diff)
	}
}

func TestRecorder(t *testing.T) {
	r := NewRecorder()
	r.DrawFilledRect(0, 0, 10, 20, white)
	r.DrawLine(1, 2, 3, 4, red, 7)
	r.DrawCircle(5, 6, 15, blue)
	r.DrawGradientLine(Segment{X1: 1, Y1: 1, X2: 2, Y2: 2}, red, blue, 3)

	want := []Command{
		{Op: OpRect, W: 10, H: 20, Color: white},
		{Op: OpLine, X1: 1, Y1: 2, X2: 3, Y2: 4, Stroke: 7, Color: red},
		{Op: OpCircle, X1: 5, Y1: 6, Radius: 15, Color: blue},
		{Op: OpGradient, X1: 1, Y1: 1, X2: 2, Y2: 2, Stroke: 3, Color: red, To: blue},
	}
	if diff := cmp.Diff(want, r.Commands); diff != "" {
		t.Fatalf("commands mismatch (-want +got):\n%s", diff)
	}
	if got := r.Count(OpLine); got != 1 {
		t.Fatalf("Count(OpLine) = %d, want 1", got)
	}
	r.Reset()
	if len(r.Commands) != 0 {
		t.Fatalf("Reset left %d commands", len(r.Commands))
	}
}

func TestRasterPaints(t *testing.T) {
	s := NewRaster(64, 64)
	s.DrawFilledRect(0, 0, 64, 64, white)
	s.DrawCircle(32, 32, 10, red)
	s.DrawLine(0, 60, 64, 60, blue, 4)

	img := s.Image()
	if got := img.RGBAAt(2, 2); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("background pixel = %v", got)
	}
	if got := img.RGBAAt(32, 32); got != (color.RGBA{R: 255, A: 255}) {
		t.Fatalf("circle center = %v", got)
	}
	if got := img.RGBAAt(32, 60); got != (color.RGBA{B: 255, A: 255}) {
		t.Fatalf("line pixel = %v", got)
	}
	if got := img.RGBAAt(32, 50); got != (color.RGBA{R: 255, G: 255, B: 255, A: 255}) {
		t.Fatalf("pixel between shapes = %v", got)
	}
}

func TestRasterSkipsDegenerateShapes(t *testing.T) {
	s := NewRaster(8, 8)
	s.DrawLine(4, 4, 4, 4, red, 3)
	s.DrawLine(0, 0, 8, 8, red, 0)
	s.DrawCircle(4, 4, 0, red)
	s.DrawFilledRect(0, 0, 0, 8, red)
	for _, v := range s.Image().Pix {
		if v != 0 {
			t.Fatalf("degenerate shapes painted pixels")
		}
	}
}

func TestRasterEncodePNG(t *testing.T) {
	s := NewRaster(16, 8)
	s.DrawFilledRect(0, 0, 16, 8, red)
	var buf bytes.Buffer
	if err := s.EncodePNG(&buf); err != nil {
		t.Fatalf("EncodePNG: %v", err)
	}
	img, err := png.Decode(&buf)
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 16 || b.Dy() != 8 {
		t.Fatalf("bounds = %v", b)
	}
}

func TestTermSurface(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(20, 10)

	s := NewTerm(screen, 4)
	if w, h := s.PixelSize(); w != 80 || h != 80 {
		t.Fatalf("PixelSize = %dx%d, want 80x80", w, h)
	}

	s.DrawFilledRect(0, 0, 80, 80, white)
	s.DrawCircle(10, 20, 15, red)
	s.DrawLine(0, 72, 40, 72, blue, 7)
	s.DrawCircle(500, 500, 15, red)

	mainc, _, style, _ := screen.GetContent(2, 2)
	if mainc != '●' {
		t.Fatalf("circle cell = %q, want ●", mainc)
	}
	if fg, bg, _ := style.Decompose(); fg != tcell.NewRGBColor(255, 0, 0) || bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("circle style fg=%v bg=%v", fg, bg)
	}
	for cx := 0; cx <= 10; cx++ {
		if r, _, _, _ := screen.GetContent(cx, 9); r != '·' {
			t.Fatalf("line cell (%d,9) = %q, want ·", cx, r)
		}
	}
	if r, _, st, _ := screen.GetContent(15, 5); r != ' ' {
		t.Fatalf("background cell = %q", r)
	} else if _, bg, _ := st.Decompose(); bg != tcell.NewRGBColor(255, 255, 255) {
		t.Fatalf("background color = %v", bg)
	}
}

func TestTermSkipsTransparent(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatal(err)
	}
	defer screen.Fini()
	screen.SetSize(4, 4)

	s := NewTerm(screen, 1)
	s.DrawCircle(1, 2, 1, color.NRGBA{R: 255})
	if r, _, _, _ := screen.GetContent(1, 1); r == '●' {
		t.Fatalf("transparent circle was drawn")
	}
}
