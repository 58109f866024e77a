package surface

import "image/color"

// Op identifies a recorded drawing command.
type Op string

const (
	OpRect     Op = "rect"
	OpLine     Op = "line"
	OpCircle   Op = "circle"
	OpGradient Op = "gradient"
)

// Command is one recorded drawing call. Unused fields are zero.
type Command struct {
	Op     Op
	X1, Y1 float32
	X2, Y2 float32
	W, H   float32
	Radius float32
	Stroke float32
	Color  color.NRGBA
	To     color.NRGBA
}

// Recorder is a GradientSurface that stores every call.
type Recorder struct {
	Commands []Command
}

// NewRecorder returns an empty recorder.
func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) DrawFilledRect(x, y, w, h float32, c color.Color) {
	r.Commands = append(r.Commands, Command{Op: OpRect, X1: x, Y1: y, W: w, H: h, Color: toNRGBA(c)})
}

func (r *Recorder) DrawLine(x1, y1, x2, y2 float32, c color.Color, strokeWidth float32) {
	r.Commands = append(r.Commands, Command{Op: OpLine, X1: x1, Y1: y1, X2: x2, Y2: y2, Stroke: strokeWidth, Color: toNRGBA(c)})
}

func (r *Recorder) DrawCircle(x, y, radius float32, c color.Color) {
	r.Commands = append(r.Commands, Command{Op: OpCircle, X1: x, Y1: y, Radius: radius, Color: toNRGBA(c)})
}

func (r *Recorder) DrawGradientLine(seg Segment, from, to color.Color, strokeWidth float32) {
	r.Commands = append(r.Commands, Command{
		Op: OpGradient, X1: seg.X1, Y1: seg.Y1, X2: seg.X2, Y2: seg.Y2,
		Stroke: strokeWidth, Color: toNRGBA(from), To: toNRGBA(to),
	})
}

// Count returns how many commands of op were recorded.
func (r *Recorder) Count(op Op) int {
	n := 0
	for _, c := range r.Commands {
		if c.Op == op {
			n++
		}
	}
	return n
}

// Reset drops all recorded commands.
func (r *Recorder) Reset() { r.Commands = r.Commands[:0] }
