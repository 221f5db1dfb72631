package canopy

import (
	"strings"

	"github.com/go-gl/mathgl/mgl64"
)

// Param indexes a style slot. Lookups by Param are array reads; names are
// only resolved when loading style sheets or through the by-name API.
type Param uint8

const (
	ParamColor Param = iota
	ParamBackgroundColor
	ParamBorderColor
	ParamBorderWidth
	ParamAlpha
	ParamFont
	ParamFontSize
	ParamTextAlign
	ParamPadding
	ParamMargin
	ParamSize
	ParamOffset
	ParamScale
	ParamTexture
	ParamVisible
	ParamZIndex
	ParamTransitionDuration

	// ParamCount is the number of modeled slots.
	ParamCount
)

// Unit tells the parser how to interpret a numeric suffix.
type Unit uint8

const (
	UnitNone    Unit = iota // plain number
	UnitPixels              // optional "px" suffix
	UnitPercent             // "%" suffix, stored as a fraction
	UnitMillis              // "ms" or "s" suffix, stored in milliseconds
)

// ParamInfo describes one modeled parameter.
type ParamInfo struct {
	Name    string
	Kind    Kind
	Unit    Unit
	Default Value
}

// paramTable is the authored list of parameters, indexed by Param.
var paramTable = [ParamCount]ParamInfo{
	ParamColor:              {"color", KindColor, UnitNone, ColorValue(ColorWhite)},
	ParamBackgroundColor:    {"background-color", KindColor, UnitNone, ColorValue(Color{})},
	ParamBorderColor:        {"border-color", KindColor, UnitNone, ColorValue(Color{})},
	ParamBorderWidth:        {"border-width", KindFloat, UnitPixels, FloatValue(0)},
	ParamAlpha:              {"alpha", KindFloat, UnitPercent, FloatValue(1)},
	ParamFont:               {"font", KindString, UnitNone, StringValue("")},
	ParamFontSize:           {"font-size", KindFloat, UnitPixels, FloatValue(16)},
	ParamTextAlign:          {"text-align", KindString, UnitNone, StringValue("left")},
	ParamPadding:            {"padding", KindInsets, UnitPixels, InsetsValue(Insets{})},
	ParamMargin:             {"margin", KindInsets, UnitPixels, InsetsValue(Insets{})},
	ParamSize:               {"size", KindVec2, UnitPixels, Vec2Value(mgl64.Vec2{})},
	ParamOffset:             {"offset", KindVec2, UnitPixels, Vec2Value(mgl64.Vec2{})},
	ParamScale:              {"scale", KindVec2, UnitNone, Vec2Value(mgl64.Vec2{1, 1})},
	ParamTexture:            {"texture", KindString, UnitNone, StringValue("")},
	ParamVisible:            {"visible", KindBool, UnitNone, BoolValue(true)},
	ParamZIndex:             {"z-index", KindInt, UnitNone, IntValue(0)},
	ParamTransitionDuration: {"transition-duration", KindFloat, UnitMillis, FloatValue(0)},
}

var paramsByName = func() map[string]Param {
	m := make(map[string]Param, ParamCount)
	for i, info := range paramTable {
		m[info.Name] = Param(i)
	}
	return m
}()

// Info returns the static description of p.
func (p Param) Info() ParamInfo {
	if p >= ParamCount {
		return ParamInfo{}
	}
	return paramTable[p]
}

func (p Param) String() string {
	if p >= ParamCount {
		return "param(?)"
	}
	return paramTable[p].Name
}

// ParamByName looks up a modeled parameter. Names are case-insensitive and
// underscores are accepted in place of dashes.
func ParamByName(name string) (Param, bool) {
	p, ok := paramsByName[normalizeParamName(name)]
	return p, ok
}

func normalizeParamName(name string) string {
	return strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), "_", "-")
}
