package canopy

import (
	"errors"
	"strconv"
	"strings"

	"github.com/go-gl/mathgl/mgl64"
	"golang.org/x/image/colornames"
)

var errComponentCount = errors.New("wrong number of components")

// ParseParam parses raw text for a modeled parameter using its table entry.
func ParseParam(p Param, raw string) (Value, error) {
	info := p.Info()
	return ParseValue(info.Name, info.Kind, info.Unit, raw)
}

// ParseValue converts raw style text into a typed Value. attr is only used
// for error reporting. Failures are returned as *FormatError.
//
// Accepted forms:
//
//	bool    true, false, 1, 0
//	int     42
//	float   1.5, 12px, 50%, 300ms, 0.3s (depending on unit)
//	string  anything
//	color   #RGB, #RRGGBB, #RRGGBBAA, 0xRRGGBB, rgb(r, g, b), rgba(r, g, b, a), named
//	vec2    "x y" or "x, y"; a single number is used for both
//	vec3    "x y z"; a single number is used for all three
//	insets  1, 2 or 4 numbers in CSS order (top right bottom left)
func ParseValue(attr string, kind Kind, unit Unit, raw string) (Value, error) {
	s := strings.TrimSpace(raw)
	fail := func(err error) (Value, error) {
		return Value{}, &FormatError{Attr: attr, Raw: raw, Kind: kind, Err: err}
	}

	switch kind {
	case KindBool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fail(err)
		}
		return BoolValue(b), nil
	case KindInt:
		i, err := strconv.Atoi(s)
		if err != nil {
			return fail(err)
		}
		return IntValue(i), nil
	case KindFloat:
		f, err := parseNumber(s, unit)
		if err != nil {
			return fail(err)
		}
		return FloatValue(f), nil
	case KindString:
		return StringValue(s), nil
	case KindColor:
		c, err := parseColor(s)
		if err != nil {
			return fail(err)
		}
		return ColorValue(c), nil
	case KindVec2:
		n, err := parseNumbers(s, unit)
		if err != nil {
			return fail(err)
		}
		switch len(n) {
		case 1:
			return Vec2Value(mgl64.Vec2{n[0], n[0]}), nil
		case 2:
			return Vec2Value(mgl64.Vec2{n[0], n[1]}), nil
		}
		return fail(errComponentCount)
	case KindVec3:
		n, err := parseNumbers(s, unit)
		if err != nil {
			return fail(err)
		}
		switch len(n) {
		case 1:
			return Vec3Value(mgl64.Vec3{n[0], n[0], n[0]}), nil
		case 3:
			return Vec3Value(mgl64.Vec3{n[0], n[1], n[2]}), nil
		}
		return fail(errComponentCount)
	case KindInsets:
		n, err := parseNumbers(s, unit)
		if err != nil {
			return fail(err)
		}
		switch len(n) {
		case 1:
			return InsetsValue(Insets{n[0], n[0], n[0], n[0]}), nil
		case 2:
			return InsetsValue(Insets{n[0], n[1], n[0], n[1]}), nil
		case 4:
			return InsetsValue(Insets{n[0], n[1], n[2], n[3]}), nil
		}
		return fail(errComponentCount)
	}
	return fail(nil)
}

// parseNumber parses a single number, honoring the unit suffix rules.
func parseNumber(s string, unit Unit) (float64, error) {
	scale := 1.0
	switch unit {
	case UnitPixels:
		s = strings.TrimSuffix(s, "px")
	case UnitPercent:
		if t, ok := strings.CutSuffix(s, "%"); ok {
			s = t
			scale = 0.01
		}
	case UnitMillis:
		if t, ok := strings.CutSuffix(s, "ms"); ok {
			s = t
		} else if t, ok := strings.CutSuffix(s, "s"); ok {
			s = t
			scale = 1000
		}
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, err
	}
	return f * scale, nil
}

// parseNumbers splits on commas and whitespace.
func parseNumbers(s string, unit Unit) ([]float64, error) {
	fields := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == ' ' || r == '\t'
	})
	if len(fields) == 0 {
		return nil, errComponentCount
	}
	out := make([]float64, len(fields))
	for i, f := range fields {
		v, err := parseNumber(f, unit)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}

func parseColor(s string) (Color, error) {
	lower := strings.ToLower(s)
	switch {
	case strings.HasPrefix(lower, "#"):
		return parseHexColor(lower[1:])
	case strings.HasPrefix(lower, "0x"):
		return parseHexColor(lower[2:])
	case strings.HasPrefix(lower, "rgba(") && strings.HasSuffix(lower, ")"):
		return parseRGBFunc(lower[5:len(lower)-1], 4)
	case strings.HasPrefix(lower, "rgb(") && strings.HasSuffix(lower, ")"):
		return parseRGBFunc(lower[4:len(lower)-1], 3)
	case lower == "transparent":
		return Color{}, nil
	}
	if c, ok := colornames.Map[lower]; ok {
		return Color{
			R: float64(c.R) / 255,
			G: float64(c.G) / 255,
			B: float64(c.B) / 255,
			A: float64(c.A) / 255,
		}, nil
	}
	return Color{}, errors.New("unknown color")
}

func parseHexColor(h string) (Color, error) {
	if len(h) == 3 {
		h = string([]byte{h[0], h[0], h[1], h[1], h[2], h[2]})
	}
	if len(h) != 6 && len(h) != 8 {
		return Color{}, errComponentCount
	}
	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, err
	}
	if len(h) == 6 {
		return ColorHex(uint32(v)), nil
	}
	return ColorHexAlpha(uint32(v)), nil
}

// parseRGBFunc parses the arguments of rgb()/rgba(). Channels are 0-255,
// alpha is 0-1.
func parseRGBFunc(args string, want int) (Color, error) {
	parts := strings.Split(args, ",")
	if len(parts) != want {
		return Color{}, errComponentCount
	}
	var n [4]float64
	n[3] = 1
	for i, p := range parts {
		f, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return Color{}, err
		}
		if i < 3 {
			f /= 255
		}
		n[i] = f
	}
	return Color{n[0], n[1], n[2], n[3]}, nil
}
