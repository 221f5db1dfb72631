package canopy

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/tanema/gween/ease"
)

// Element tweens run on the session scheduler under the element's owner ID,
// so disposing the element cancels them. Starting a tween replaces any tween
// of the same kind on the element without calling its completion callback.
// A nil easing function is linear.

// TweenPosition animates the local position to `to` over durationMs.
func (e *Element) TweenPosition(to mgl64.Vec3, durationMs float64, fn ease.TweenFunc, onComplete func()) *AnimationTask {
	tr := e.transform
	return Animate(e.ctx.scheduler, e.id, ChannelPosition, tr.Position(), to, durationMs,
		EasedVec3(fn, tr.SetPosition), onComplete)
}

// TweenRotation animates the local rotation (radians) to `to`.
func (e *Element) TweenRotation(to mgl64.Vec3, durationMs float64, fn ease.TweenFunc, onComplete func()) *AnimationTask {
	tr := e.transform
	return Animate(e.ctx.scheduler, e.id, ChannelRotation, tr.Rotation(), to, durationMs,
		EasedVec3(fn, tr.SetRotation), onComplete)
}

// TweenScale animates the local scale to `to`.
func (e *Element) TweenScale(to mgl64.Vec3, durationMs float64, fn ease.TweenFunc, onComplete func()) *AnimationTask {
	tr := e.transform
	return Animate(e.ctx.scheduler, e.id, ChannelScale, tr.Scale(), to, durationMs,
		EasedVec3(fn, tr.SetScale), onComplete)
}

// TweenAlpha animates the element's alpha parameter. Each step writes into
// the element's private copy of the active style variant.
func (e *Element) TweenAlpha(to, durationMs float64, fn ease.TweenFunc, onComplete func()) *AnimationTask {
	return e.ctx.scheduler.StartAnimation(e.id, ChannelAlpha, e.Alpha(), to, durationMs,
		Eased(fn, func(v float64) { e.tweenParam(ParamAlpha, FloatValue(v)) }), onComplete)
}

// TweenColor animates the element's color parameter.
func (e *Element) TweenColor(to Color, durationMs float64, fn ease.TweenFunc, onComplete func()) *AnimationTask {
	from, err := e.Param(ParamColor).Color()
	if err != nil {
		from = ColorWhite
	}
	return Animate(e.ctx.scheduler, e.id, ChannelColor, from, to, durationMs,
		EasedColor(fn, func(c Color) { e.tweenParam(ParamColor, ColorValue(c)) }), onComplete)
}

func (e *Element) tweenParam(p Param, v Value) {
	if err := e.SetParam(p, v); err != nil {
		e.ctx.logf("tween %s on %q: %v", p, e.Name, err)
	}
}

// StopTween cancels the element's tween of the given kind without running
// its completion callback.
func (e *Element) StopTween(kind ChannelKind) bool {
	return e.ctx.scheduler.RemoveAnimation(e.id, kind)
}

// IsTweening reports whether a tween of the given kind is running.
func (e *Element) IsTweening(kind ChannelKind) bool {
	return e.ctx.scheduler.IsAnimating(e.id, kind)
}
