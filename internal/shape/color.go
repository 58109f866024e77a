package shape

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"
)

// AlphaMode selects how AddToRGB treats the alpha channel.
type AlphaMode int

const (
	// AlphaKeep leaves alpha untouched.
	AlphaKeep AlphaMode = iota
	// AlphaAdd moves alpha toward 255 the same way as the color channels.
	AlphaAdd
	// AlphaSub scales alpha by (255 - factor).
	AlphaSub
)

// ErrBadColor is returned by ParseHex for strings it cannot read.
var ErrBadColor = errors.New("invalid color")

// ColorModel is an 8-bit non-premultiplied RGBA color.
type ColorModel struct {
	Red   uint8 `yaml:"red"`
	Green uint8 `yaml:"green"`
	Blue  uint8 `yaml:"blue"`
	Alpha uint8 `yaml:"alpha"`
}

// RGBA builds a color model from its channels.
func RGBA(r, g, b, a uint8) ColorModel {
	return ColorModel{Red: r, Green: g, Blue: b, Alpha: a}
}

// AddToRGB moves the color channels toward white by factor.
// Values are clamped to [0,255] and truncated.
func (c ColorModel) AddToRGB(factor float32, mode AlphaMode) ColorModel {
	out := ColorModel{
		Red:   towardWhite(c.Red, factor),
		Green: towardWhite(c.Green, factor),
		Blue:  towardWhite(c.Blue, factor),
		Alpha: c.Alpha,
	}
	switch mode {
	case AlphaAdd:
		out.Alpha = towardWhite(c.Alpha, factor)
	case AlphaSub:
		// Not a proportional fade: alpha is multiplied by (255 - factor).
		out.Alpha = clampChannel(float32(c.Alpha) * (255 - factor))
	}
	return out
}

func towardWhite(v uint8, factor float32) uint8 {
	f := float32(v)
	return clampChannel(f + (255-f)*factor)
}

func clampChannel(v float32) uint8 {
	if v < 0 {
		return 0
	}
	if v > 255 {
		return 255
	}
	return uint8(v)
}

// NRGBA converts the model to an image/color value.
func (c ColorModel) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
}

// ParseHex reads #RGB, #RRGGBB or #RRGGBBAA. The leading '#' is optional.
func ParseHex(s string) (ColorModel, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	switch len(h) {
	case 3:
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]}) + "FF"
	case 6:
		h += "FF"
	case 8:
	default:
		return ColorModel{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return ColorModel{}, fmt.Errorf("%w: %q", ErrBadColor, s)
	}
	return ColorModel{
		Red:   uint8(v >> 24),
		Green: uint8(v >> 16),
		Blue:  uint8(v >> 8),
		Alpha: uint8(v),
	}, nil
}
