package geom

import (
	"fmt"
	"math"
	"strings"
)

// Color represents an RGB color with channels in [0, 1].
type Color struct {
	R, G, B float64
}

// DefaultColorTolerance is the per-channel tolerance used when comparing
// colors parsed from user input against colors resolved from a content stream.
const DefaultColorTolerance = 0.01

// ParseHexColor parses a "#RGB" or "#RRGGBB" hex string into a Color.
// Three-digit shorthand is expanded by doubling each digit, so "#f80" is
// equivalent to "#ff8800".
func ParseHexColor(s string) (Color, error) {
	if !strings.HasPrefix(s, "#") {
		return Color{}, fmt.Errorf("hex color %q must start with '#'", s)
	}
	hex := s[1:]
	if len(hex) == 3 {
		var expanded [6]byte
		for i := 0; i < 3; i++ {
			expanded[2*i] = hex[i]
			expanded[2*i+1] = hex[i]
		}
		hex = string(expanded[:])
	}
	if len(hex) != 6 {
		return Color{}, fmt.Errorf("hex color %q must have 3 or 6 digits", s)
	}
	var bytes [3]uint8
	for i := 0; i < 3; i++ {
		hi, ok1 := hexDigit(hex[2*i])
		lo, ok2 := hexDigit(hex[2*i+1])
		if !ok1 || !ok2 {
			return Color{}, fmt.Errorf("hex color %q contains a non-hex digit", s)
		}
		bytes[i] = hi<<4 | lo
	}
	return Color{
		R: float64(bytes[0]) / 255,
		G: float64(bytes[1]) / 255,
		B: float64(bytes[2]) / 255,
	}, nil
}

// Hex returns the "#rrggbb" representation of the color. Channels are clamped
// to [0, 1] and rounded to the nearest byte value.
func (c Color) Hex() string {
	r, g, b := c.Bytes()
	return fmt.Sprintf("#%02x%02x%02x", r, g, b)
}

// Bytes returns the color's channels as byte values in [0, 255].
func (c Color) Bytes() (r, g, b uint8) {
	return channelByte(c.R), channelByte(c.G), channelByte(c.B)
}

// Matches reports whether every channel of c is within tolerance of the
// corresponding channel of other. The comparison is per channel with absolute
// differences, not a Euclidean distance.
func (c Color) Matches(other Color, tolerance float64) bool {
	return math.Abs(c.R-other.R) <= tolerance &&
		math.Abs(c.G-other.G) <= tolerance &&
		math.Abs(c.B-other.B) <= tolerance
}

func channelByte(v float64) uint8 {
	if v < 0 {
		v = 0
	}
	if v > 1 {
		v = 1
	}
	return uint8(math.Round(v * 255))
}

func hexDigit(b byte) (uint8, bool) {
	switch {
	case b >= '0' && b <= '9':
		return b - '0', true
	case b >= 'a' && b <= 'f':
		return b - 'a' + 10, true
	case b >= 'A' && b <= 'F':
		return b - 'A' + 10, true
	}
	return 0, false
}
