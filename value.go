package canopy

import (
	"fmt"
	"strconv"

	"github.com/go-gl/mathgl/mgl64"
)

// Kind is the type discriminator of a Value.
type Kind uint8

const (
	KindNone   Kind = iota // unset slot
	KindBool               // true/false
	KindInt                // integer
	KindFloat              // float64
	KindString             // free text (font names, texture keys, alignment)
	KindColor              // Color
	KindVec2               // mgl64.Vec2
	KindVec3               // mgl64.Vec3
	KindInsets             // Insets
)

var kindNames = [...]string{
	KindNone:   "none",
	KindBool:   "bool",
	KindInt:    "int",
	KindFloat:  "float",
	KindString: "string",
	KindColor:  "color",
	KindVec2:   "vec2",
	KindVec3:   "vec3",
	KindInsets: "insets",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "kind(" + strconv.Itoa(int(k)) + ")"
}

// Value is a tagged union stored in a style slot. The zero Value is unset.
// Numeric payloads share one array; the Kind decides how many components
// are meaningful.
type Value struct {
	kind Kind
	num  [4]float64
	str  string
}

// BoolValue wraps a bool.
func BoolValue(b bool) Value {
	v := Value{kind: KindBool}
	if b {
		v.num[0] = 1
	}
	return v
}

// IntValue wraps an int.
func IntValue(i int) Value {
	return Value{kind: KindInt, num: [4]float64{float64(i)}}
}

// FloatValue wraps a float64.
func FloatValue(f float64) Value {
	return Value{kind: KindFloat, num: [4]float64{f}}
}

// StringValue wraps a string.
func StringValue(s string) Value {
	return Value{kind: KindString, str: s}
}

// ColorValue wraps a Color.
func ColorValue(c Color) Value {
	return Value{kind: KindColor, num: [4]float64{c.R, c.G, c.B, c.A}}
}

// Vec2Value wraps a 2D vector.
func Vec2Value(v mgl64.Vec2) Value {
	return Value{kind: KindVec2, num: [4]float64{v[0], v[1]}}
}

// Vec3Value wraps a 3D vector.
func Vec3Value(v mgl64.Vec3) Value {
	return Value{kind: KindVec3, num: [4]float64{v[0], v[1], v[2]}}
}

// InsetsValue wraps Insets.
func InsetsValue(in Insets) Value {
	return Value{kind: KindInsets, num: [4]float64{in.Top, in.Right, in.Bottom, in.Left}}
}

// Kind returns the type discriminator.
func (v Value) Kind() Kind { return v.kind }

// IsSet reports whether the value carries anything.
func (v Value) IsSet() bool { return v.kind != KindNone }

func (v Value) expect(k Kind) error {
	if v.kind != k {
		return fmt.Errorf("%w: have %s, want %s", ErrTypeMismatch, v.kind, k)
	}
	return nil
}

// Bool returns the payload of a KindBool value.
func (v Value) Bool() (bool, error) {
	if err := v.expect(KindBool); err != nil {
		return false, err
	}
	return v.num[0] != 0, nil
}

// Int returns the payload of a KindInt value.
func (v Value) Int() (int, error) {
	if err := v.expect(KindInt); err != nil {
		return 0, err
	}
	return int(v.num[0]), nil
}

// Float returns the payload of a KindFloat value. KindInt values widen.
func (v Value) Float() (float64, error) {
	if v.kind == KindInt {
		return v.num[0], nil
	}
	if err := v.expect(KindFloat); err != nil {
		return 0, err
	}
	return v.num[0], nil
}

// Text returns the payload of a KindString value.
func (v Value) Text() (string, error) {
	if err := v.expect(KindString); err != nil {
		return "", err
	}
	return v.str, nil
}

// Color returns the payload of a KindColor value.
func (v Value) Color() (Color, error) {
	if err := v.expect(KindColor); err != nil {
		return Color{}, err
	}
	return Color{v.num[0], v.num[1], v.num[2], v.num[3]}, nil
}

// Vec2 returns the payload of a KindVec2 value.
func (v Value) Vec2() (mgl64.Vec2, error) {
	if err := v.expect(KindVec2); err != nil {
		return mgl64.Vec2{}, err
	}
	return mgl64.Vec2{v.num[0], v.num[1]}, nil
}

// Vec3 returns the payload of a KindVec3 value.
func (v Value) Vec3() (mgl64.Vec3, error) {
	if err := v.expect(KindVec3); err != nil {
		return mgl64.Vec3{}, err
	}
	return mgl64.Vec3{v.num[0], v.num[1], v.num[2]}, nil
}

// Insets returns the payload of a KindInsets value.
func (v Value) Insets() (Insets, error) {
	if err := v.expect(KindInsets); err != nil {
		return Insets{}, err
	}
	return Insets{v.num[0], v.num[1], v.num[2], v.num[3]}, nil
}

// String formats the value for debugging and previews.
func (v Value) String() string {
	switch v.kind {
	case KindNone:
		return "<unset>"
	case KindBool:
		return strconv.FormatBool(v.num[0] != 0)
	case KindInt:
		return strconv.Itoa(int(v.num[0]))
	case KindFloat:
		return strconv.FormatFloat(v.num[0], 'g', -1, 64)
	case KindString:
		return strconv.Quote(v.str)
	case KindColor:
		c := Color{v.num[0], v.num[1], v.num[2], v.num[3]}
		return fmt.Sprintf("#%06X (a=%.2f)", c.Hex(), c.A)
	case KindVec2:
		return fmt.Sprintf("(%g, %g)", v.num[0], v.num[1])
	case KindVec3:
		return fmt.Sprintf("(%g, %g, %g)", v.num[0], v.num[1], v.num[2])
	case KindInsets:
		return fmt.Sprintf("[%g %g %g %g]", v.num[0], v.num[1], v.num[2], v.num[3])
	}
	return v.kind.String()
}
