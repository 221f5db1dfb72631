package canopy

import (
	"errors"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func TestParseValue(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		unit Unit
		raw  string
		want Value
	}{
		{"bool", KindBool, UnitNone, "true", BoolValue(true)},
		{"int", KindInt, UnitNone, " 42 ", IntValue(42)},
		{"float", KindFloat, UnitNone, "1.5", FloatValue(1.5)},
		{"pixels", KindFloat, UnitPixels, "12px", FloatValue(12)},
		{"pixels bare", KindFloat, UnitPixels, "12", FloatValue(12)},
		{"percent", KindFloat, UnitPercent, "50%", FloatValue(0.5)},
		{"percent bare", KindFloat, UnitPercent, "0.25", FloatValue(0.25)},
		{"millis", KindFloat, UnitMillis, "300ms", FloatValue(300)},
		{"seconds", KindFloat, UnitMillis, "0.5s", FloatValue(500)},
		{"string", KindString, UnitNone, "  mono ", StringValue("mono")},
		{"hex6", KindColor, UnitNone, "#FF8000", ColorValue(ColorHex(0xFF8000))},
		{"hex3", KindColor, UnitNone, "#f00", ColorValue(ColorHex(0xFF0000))},
		{"hex8", KindColor, UnitNone, "#00FF0080", ColorValue(ColorHexAlpha(0x00FF0080))},
		{"0x", KindColor, UnitNone, "0xFFFFFF", ColorValue(ColorHex(0xFFFFFF))},
		{"rgb", KindColor, UnitNone, "rgb(255, 0, 0)", ColorValue(ColorHex(0xFF0000))},
		{"rgba", KindColor, UnitNone, "rgba(0, 0, 255, 0.5)", ColorValue(Color{0, 0, 1, 0.5})},
		{"named", KindColor, UnitNone, "White", ColorValue(ColorHex(0xFFFFFF))},
		{"transparent", KindColor, UnitNone, "transparent", ColorValue(Color{})},
		{"vec2", KindVec2, UnitPixels, "10px, 20px", Vec2Value(mgl64.Vec2{10, 20})},
		{"vec2 broadcast", KindVec2, UnitNone, "3", Vec2Value(mgl64.Vec2{3, 3})},
		{"vec3", KindVec3, UnitNone, "1 2 3", Vec3Value(mgl64.Vec3{1, 2, 3})},
		{"insets1", KindInsets, UnitPixels, "4", InsetsValue(Insets{4, 4, 4, 4})},
		{"insets2", KindInsets, UnitPixels, "4 8", InsetsValue(Insets{4, 8, 4, 8})},
		{"insets4", KindInsets, UnitPixels, "1 2 3 4", InsetsValue(Insets{1, 2, 3, 4})},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseValue("attr", tt.kind, tt.unit, tt.raw)
			if err != nil {
				t.Fatalf("ParseValue(%q): %v", tt.raw, err)
			}
			if got.Kind() != tt.want.Kind() {
				t.Fatalf("kind = %s, want %s", got.Kind(), tt.want.Kind())
			}
			for i := range got.num {
				if d := got.num[i] - tt.want.num[i]; d > 1e-9 || d < -1e-9 {
					t.Errorf("component %d = %v, want %v", i, got.num[i], tt.want.num[i])
				}
			}
			if got.str != tt.want.str {
				t.Errorf("str = %q, want %q", got.str, tt.want.str)
			}
		})
	}
}

func TestParseValueErrors(t *testing.T) {
	tests := []struct {
		name string
		kind Kind
		unit Unit
		raw  string
	}{
		{"bad bool", KindBool, UnitNone, "maybe"},
		{"bad int", KindInt, UnitNone, "4.5"},
		{"bad float", KindFloat, UnitNone, "abc"},
		{"wrong unit", KindFloat, UnitPixels, "12%"},
		{"bad hex", KindColor, UnitNone, "#GGGGGG"},
		{"short hex", KindColor, UnitNone, "#FFFF"},
		{"unknown color", KindColor, UnitNone, "blurple"},
		{"rgb arity", KindColor, UnitNone, "rgb(1, 2)"},
		{"vec2 arity", KindVec2, UnitNone, "1 2 3"},
		{"vec3 arity", KindVec3, UnitNone, "1 2"},
		{"insets arity", KindInsets, UnitNone, "1 2 3"},
		{"empty vec", KindVec2, UnitNone, "   "},
		{"none kind", KindNone, UnitNone, "x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseValue("attr", tt.kind, tt.unit, tt.raw)
			if !errors.Is(err, ErrFormat) {
				t.Fatalf("err = %v, want ErrFormat", err)
			}
			var fe *FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("err is %T, want *FormatError", err)
			}
			if fe.Raw != tt.raw || fe.Attr != "attr" || fe.Kind != tt.kind {
				t.Errorf("FormatError = %+v", fe)
			}
		})
	}
}

func TestValueAccessorsMismatch(t *testing.T) {
	v := StringValue("x")
	if _, err := v.Float(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Float() err = %v, want ErrTypeMismatch", err)
	}
	if _, err := v.Color(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("Color() err = %v, want ErrTypeMismatch", err)
	}
	if _, err := (Value{}).Text(); !errors.Is(err, ErrTypeMismatch) {
		t.Errorf("unset Text() err = %v, want ErrTypeMismatch", err)
	}
}

func TestValueAccessors(t *testing.T) {
	if b, err := BoolValue(true).Bool(); err != nil || !b {
		t.Errorf("Bool() = %v, %v", b, err)
	}
	if i, err := IntValue(-3).Int(); err != nil || i != -3 {
		t.Errorf("Int() = %v, %v", i, err)
	}
	if f, err := IntValue(4).Float(); err != nil || f != 4 {
		t.Errorf("int widened Float() = %v, %v", f, err)
	}
	if v, err := Vec3Value(mgl64.Vec3{1, 2, 3}).Vec3(); err != nil || v != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("Vec3() = %v, %v", v, err)
	}
	if in, err := InsetsValue(Insets{1, 2, 3, 4}).Insets(); err != nil || in != (Insets{1, 2, 3, 4}) {
		t.Errorf("Insets() = %v, %v", in, err)
	}
	if (Value{}).IsSet() {
		t.Error("zero Value should be unset")
	}
}

func TestColorHexRoundTrip(t *testing.T) {
	for _, hex := range []uint32{0x000000, 0xFFFFFF, 0x123456, 0xFF0000} {
		if got := ColorHex(hex).Hex(); got != hex {
			t.Errorf("ColorHex(%06X).Hex() = %06X", hex, got)
		}
	}
}
