package canopy

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
)

func newTestContext(t *testing.T) (*Context, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.LogOutput = &buf
	return NewContext(cfg), &buf
}

func expectPanic(t *testing.T, contains string, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected panic")
		}
		if msg, ok := r.(string); ok && !strings.Contains(msg, contains) {
			t.Errorf("panic %q, want it to contain %q", msg, contains)
		}
	}()
	fn()
}

func TestNewElementIDs(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := ctx.NewElement("a")
	b := ctx.NewElement("b")
	if a.ID() == 0 || b.ID() == 0 || a.ID() == b.ID() {
		t.Errorf("ids = %d, %d", a.ID(), b.ID())
	}
	if !a.Enabled() || a.Selected() || a.Hovered() || a.State() != StateNormal {
		t.Errorf("unexpected initial state %s", a.State())
	}
	if a.Context() != ctx {
		t.Error("Context() mismatch")
	}
}

func TestElementAddChildLinksTransforms(t *testing.T) {
	ctx, _ := newTestContext(t)
	parent := ctx.NewElement("parent")
	child := ctx.NewElement("child")
	parent.Transform().SetPosition(mgl64.Vec3{10, 0, 0})
	child.Transform().SetPosition(mgl64.Vec3{5, 0, 0})

	parent.AddChild(child)
	if child.Parent() != parent || child.Transform().Parent() != parent.Transform() {
		t.Fatal("parent links not set")
	}
	x, y := child.Transform().ProjectToWorld2D(0, 0)
	assertNear(t, "x", x, 15)
	assertNear(t, "y", y, 0)

	parent.RemoveChild(child)
	if child.Parent() != nil || child.Transform().Parent() != nil {
		t.Error("parent links not cleared")
	}
	x, _ = child.Transform().ProjectToWorld2D(0, 0)
	assertNear(t, "detached x", x, 5)
}

func TestElementReparent(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := ctx.NewElement("a")
	b := ctx.NewElement("b")
	c := ctx.NewElement("c")
	a.AddChild(c)
	b.AddChild(c)
	if a.NumChildren() != 0 || b.NumChildren() != 1 || c.Parent() != b {
		t.Errorf("a=%d b=%d", a.NumChildren(), b.NumChildren())
	}
}

func TestElementAddChildAt(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := ctx.NewElement("root")
	x := ctx.NewElement("x")
	y := ctx.NewElement("y")
	z := ctx.NewElement("z")
	root.AddChild(x)
	root.AddChild(z)
	root.AddChildAt(y, 1)

	var names []string
	for _, c := range root.Children() {
		names = append(names, c.Name)
	}
	if strings.Join(names, ",") != "x,y,z" {
		t.Errorf("children = %v", names)
	}
	if root.ChildAt(2) != z {
		t.Error("ChildAt(2) != z")
	}
	expectPanic(t, "out of range", func() { root.AddChildAt(ctx.NewElement("w"), 9) })
}

func TestElementTreePanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	a := ctx.NewElement("a")
	b := ctx.NewElement("b")
	a.AddChild(b)

	expectPanic(t, "cycle", func() { b.AddChild(a) })
	expectPanic(t, "cycle", func() { a.AddChild(a) })
	expectPanic(t, "nil", func() { a.AddChild(nil) })
	expectPanic(t, "parent", func() { b.RemoveChild(a) })
}

func TestElementRemoveChildren(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := ctx.NewElement("root")
	kids := []*Element{ctx.NewElement("1"), ctx.NewElement("2")}
	for _, k := range kids {
		root.AddChild(k)
	}
	root.RemoveChildren()
	if root.NumChildren() != 0 {
		t.Errorf("NumChildren = %d", root.NumChildren())
	}
	for _, k := range kids {
		if k.Parent() != nil || k.IsDisposed() {
			t.Errorf("%s: parent=%v disposed=%v", k.Name, k.Parent(), k.IsDisposed())
		}
	}
	root.RemoveFromParent()
}

func TestElementWalk(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := ctx.NewElement("root")
	a := ctx.NewElement("a")
	b := ctx.NewElement("b")
	a1 := ctx.NewElement("a1")
	root.AddChild(a)
	root.AddChild(b)
	a.AddChild(a1)

	var seen []string
	root.Walk(func(e *Element) bool {
		seen = append(seen, e.Name)
		return e != a
	})
	if strings.Join(seen, ",") != "root,a,b" {
		t.Errorf("walk = %v", seen)
	}
}

func TestElementStateSelectsVariant(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.LoadStyleSheet([]byte(buttonSheet)); err != nil {
		t.Fatal(err)
	}
	btn, err := ctx.NewStyledElement("ok", "button")
	if err != nil {
		t.Fatal(err)
	}

	color := func() uint32 { return mustColor(t, btn.Param(ParamColor)).Hex() }
	if got := color(); got != 0xE0E0E0 {
		t.Errorf("normal = %06X", got)
	}
	btn.SetHovered(true)
	if got := color(); got != 0xFFFFFF {
		t.Errorf("hovered = %06X", got)
	}
	btn.SetSelected(true)
	if got := color(); got != 0x00FF00 {
		t.Errorf("selected hovered = %06X", got)
	}
	btn.SetEnabled(false)
	if btn.State() != StateSelectedDisabledHovered {
		t.Fatalf("state = %s", btn.State())
	}
	// Dropping Disabled reaches SelectedHovered before Disabled alone.
	if btn.Style().ActiveState() != StateSelectedHovered {
		t.Errorf("active = %s, want SelectedHovered", btn.Style().ActiveState())
	}
	btn.SetSelected(false)
	btn.SetHovered(false)
	if btn.Style().ActiveState() != StateDisabled {
		t.Fatalf("active = %s, want Disabled", btn.Style().ActiveState())
	}
	if btn.Alpha() != 0.5 {
		t.Errorf("disabled alpha = %v, want 0.5", btn.Alpha())
	}
}

func TestNewStyledElementUnknownStyle(t *testing.T) {
	ctx, _ := newTestContext(t)
	if _, err := ctx.NewStyledElement("x", "missing"); !errors.Is(err, ErrUnknownStyle) {
		t.Errorf("err = %v, want ErrUnknownStyle", err)
	}
}

func TestElementOnStyleChangedDeferred(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.LoadStyleSheet([]byte(buttonSheet)); err != nil {
		t.Fatal(err)
	}
	btn, _ := ctx.NewStyledElement("ok", "button")

	var got []State
	btn.OnStyleChanged = func(e *Element, active State) {
		if e != btn {
			t.Error("wrong element")
		}
		got = append(got, active)
	}
	btn.SetHovered(true)
	if len(got) != 0 {
		t.Fatal("OnStyleChanged ran synchronously")
	}
	ctx.Pump(16)
	if len(got) != 1 || got[0] != StateHovered {
		t.Fatalf("got %v, want [Hovered]", got)
	}

	// Same flag again: no change, no callback.
	btn.SetHovered(true)
	ctx.Pump(16)
	if len(got) != 1 {
		t.Errorf("got %v after no-op", got)
	}
}

func TestElementOnStyleChangedSkippedWhenVariantSame(t *testing.T) {
	ctx, _ := newTestContext(t)
	e := ctx.NewElement("plain")
	calls := 0
	e.OnStyleChanged = func(*Element, State) { calls++ }
	e.SetSelected(true)
	ctx.Pump(16)
	if calls != 0 {
		t.Errorf("calls = %d; plain style has only Normal", calls)
	}
}

func TestElementPrivateParams(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.LoadStyleSheet([]byte(buttonSheet)); err != nil {
		t.Fatal(err)
	}
	a, _ := ctx.NewStyledElement("a", "button")
	b, _ := ctx.NewStyledElement("b", "button")

	a.SetParam(ParamColor, ColorValue(ColorHex(0x123456)))
	if got := mustColor(t, a.Param(ParamColor)).Hex(); got != 0x123456 {
		t.Errorf("a = %06X", got)
	}
	if got := mustColor(t, b.Param(ParamColor)).Hex(); got != 0xE0E0E0 {
		t.Errorf("b = %06X, want E0E0E0", got)
	}
	if err := a.SetParamFor(StateSelectedDisabled, ParamAlpha, FloatValue(0)); !errors.Is(err, ErrInvalidState) {
		t.Errorf("err = %v, want ErrInvalidState", err)
	}
}

func TestElementParamDefaults(t *testing.T) {
	ctx, _ := newTestContext(t)
	e := ctx.NewElement("e")
	if e.Alpha() != 1 {
		t.Errorf("alpha = %v", e.Alpha())
	}
	if w, h := e.Size(); w != 0 || h != 0 {
		t.Errorf("size = %v,%v", w, h)
	}
	if v, err := e.Param(ParamVisible).Bool(); err != nil || !v {
		t.Errorf("visible = %v, %v", v, err)
	}
}

func TestElementWorldAlpha(t *testing.T) {
	ctx, _ := newTestContext(t)
	parent := ctx.NewElement("p")
	child := ctx.NewElement("c")
	parent.AddChild(child)
	parent.SetParam(ParamAlpha, FloatValue(0.5))
	child.SetParam(ParamAlpha, FloatValue(0.5))
	assertNear(t, "world alpha", child.WorldAlpha(), 0.25)
}

func TestElementHitTest(t *testing.T) {
	ctx, _ := newTestContext(t)
	parent := ctx.NewElement("p")
	e := ctx.NewElement("e")
	parent.AddChild(e)
	parent.Transform().SetPosition(mgl64.Vec3{100, 0, 0})
	e.Transform().SetPosition(mgl64.Vec3{10, 10, 0})
	e.SetParam(ParamSize, Vec2Value(mgl64.Vec2{50, 20}))

	tests := []struct {
		x, y float64
		want bool
	}{
		{110, 10, true},
		{160, 30, true},
		{135, 20, true},
		{105, 20, false},
		{135, 31, false},
		{35, 20, false},
	}
	for _, tt := range tests {
		if got := e.HitTest(tt.x, tt.y); got != tt.want {
			t.Errorf("HitTest(%v, %v) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}

func TestElementTweens(t *testing.T) {
	ctx, _ := newTestContext(t)
	e := ctx.NewElement("e")

	done := 0
	e.TweenPosition(mgl64.Vec3{100, 50, 0}, 100, nil, func() { done++ })
	e.TweenAlpha(0, 100, nil, nil)
	e.TweenScale(mgl64.Vec3{2, 2, 1}, 100, nil, nil)
	if !e.IsTweening(ChannelPosition) || !e.IsTweening(ChannelAlpha) {
		t.Fatal("tweens not registered")
	}

	ctx.Pump(50)
	assertVec3(t, "position", e.Transform().Position(), mgl64.Vec3{50, 25, 0})
	assertVec3(t, "scale", e.Transform().Scale(), mgl64.Vec3{1.5, 1.5, 1})
	assertNear(t, "alpha", e.Alpha(), 0.5)

	ctx.Pump(50)
	assertVec3(t, "position end", e.Transform().Position(), mgl64.Vec3{100, 50, 0})
	if done != 1 {
		t.Errorf("done = %d", done)
	}
	if e.IsTweening(ChannelPosition) {
		t.Error("position tween should be finished")
	}
}

func TestElementTweenColor(t *testing.T) {
	ctx, _ := newTestContext(t)
	e := ctx.NewElement("e")
	e.TweenColor(ColorHex(0x000000), 100, nil, nil)
	ctx.Pump(100)
	if got := mustColor(t, e.Param(ParamColor)).Hex(); got != 0 {
		t.Errorf("color = %06X, want 000000", got)
	}
}

func TestElementStopTween(t *testing.T) {
	ctx, _ := newTestContext(t)
	e := ctx.NewElement("e")
	e.TweenRotation(mgl64.Vec3{0, 0, 1}, 100, nil, func() { t.Error("stopped tween completed") })
	ctx.Pump(50)
	if !e.StopTween(ChannelRotation) {
		t.Fatal("StopTween returned false")
	}
	ctx.Pump(100)
	assertNear(t, "rotation z", e.Transform().Rotation()[2], 0.5)
}

func TestElementDispose(t *testing.T) {
	ctx, _ := newTestContext(t)
	root := ctx.NewElement("root")
	mid := ctx.NewElement("mid")
	leaf := ctx.NewElement("leaf")
	root.AddChild(mid)
	mid.AddChild(leaf)

	leafID := leaf.ID()
	completed := false
	leaf.TweenAlpha(0, 100, nil, func() { completed = true })
	changed := false
	mid.OnStyleChanged = func(*Element, State) { changed = true }

	mid.Dispose()
	if root.NumChildren() != 0 {
		t.Error("mid still attached")
	}
	if !mid.IsDisposed() || !leaf.IsDisposed() {
		t.Error("descendants not disposed")
	}
	if mid.ID() != 0 || leaf.ID() != 0 {
		t.Error("disposed IDs should be zero")
	}
	if ctx.Scheduler().IsAnimating(leafID, ChannelAlpha) {
		t.Error("leaf tween survived dispose")
	}
	ctx.Pump(200)
	if completed || changed {
		t.Error("callbacks ran after dispose")
	}
	mid.Dispose()
}

func TestElementDisposeCancelsPendingStyleCallback(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.LoadStyleSheet([]byte(buttonSheet)); err != nil {
		t.Fatal(err)
	}
	btn, _ := ctx.NewStyledElement("ok", "button")
	calls := 0
	btn.OnStyleChanged = func(*Element, State) { calls++ }
	btn.SetHovered(true)
	btn.Dispose()
	ctx.Pump(16)
	if calls != 0 {
		t.Errorf("calls = %d after dispose", calls)
	}
}

func TestElementDebugDisposedPanics(t *testing.T) {
	ctx, _ := newTestContext(t)
	ctx.SetDebugMode(true)
	root := ctx.NewElement("root")
	dead := ctx.NewElement("dead")
	dead.Dispose()
	expectPanic(t, "disposed element", func() { root.AddChild(dead) })
}

func TestElementParamSurvivesHover(t *testing.T) {
	ctx, _ := newTestContext(t)
	err := ctx.LoadStyleSheet([]byte(`
styles:
  tile:
    hovered: tile-hover
    params: {color: white}
  tile-hover:
    params: {border-color: white}
`))
	if err != nil {
		t.Fatal(err)
	}
	e, _ := ctx.NewStyledElement("tile", "tile")
	if err := e.SetParam(ParamColor, ColorValue(ColorHex(0xFF0000))); err != nil {
		t.Fatal(err)
	}
	e.SetHovered(true)
	if got := mustColor(t, e.Param(ParamColor)).Hex(); got != 0xFF0000 {
		t.Errorf("hovered color = %06X, want FF0000", got)
	}
	if got := mustColor(t, e.Param(ParamBorderColor)).Hex(); got != 0xFFFFFF {
		t.Errorf("hovered border = %06X, want FFFFFF", got)
	}
}

func TestElementSeesReloadedStyle(t *testing.T) {
	ctx, _ := newTestContext(t)
	if err := ctx.LoadStyleSheet([]byte(buttonSheet)); err != nil {
		t.Fatal(err)
	}
	btn, _ := ctx.NewStyledElement("ok", "button")
	btn.SetParam(ParamAlpha, FloatValue(0.5))

	err := ctx.LoadStyleSheet([]byte(`
styles:
  button:
    parent: base
    params: {color: red}
`))
	if err != nil {
		t.Fatal(err)
	}
	if got := mustColor(t, btn.Param(ParamColor)).Hex(); got != 0xFF0000 {
		t.Errorf("color after reload = %06X, want FF0000", got)
	}
	if btn.Alpha() != 0.5 {
		t.Errorf("alpha after reload = %v, want the element's own 0.5", btn.Alpha())
	}
	btn.SetHovered(true)
	if btn.Style().ActiveState() != StateNormal {
		t.Errorf("active = %s; reloaded button has no hovered variant", btn.Style().ActiveState())
	}
}
