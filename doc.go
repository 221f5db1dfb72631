// Package canopy is the runtime core of a retained-mode UI toolkit for
// [Ebitengine] games.
//
// It provides the three pieces every widget layer needs and nothing else:
// a transform hierarchy with lazily baked matrices, a cascading style system
// with pseudo-state variants, and a frame-pumped scheduler for tweens and
// deferred actions. Concrete widgets, rendering and input glue live on top.
//
// # Quick start
//
//	ctx := canopy.NewContext(canopy.DefaultConfig())
//	if err := ctx.LoadStyleSheet(styleYAML); err != nil {
//		log.Fatal(err)
//	}
//	button, _ := ctx.NewStyledElement("ok", "button")
//	button.Transform().SetPosition(mgl64.Vec3{100, 40, 0})
//	button.TweenAlpha(0.5, 250, ease.OutQuad, nil)
//
//	canopy.Run(ctx, canopy.RunConfig{Title: "Demo", Width: 640, Height: 480})
//
// Or call [Context.Update] (or [Context.Pump] with your own clock) once per
// frame from an existing ebiten.Game.
//
// # Sessions
//
// A [Context] owns the scheduler, the style sheet and the owner ID counter.
// Nothing is global: independent contexts can run side by side.
//
// # Transforms
//
// A [Transform] stores position, rotation and scale and a non-owning parent
// link. Setters only mark the node dirty; [Transform.WorldMatrix] rebakes on
// demand and bumps a version counter that children compare against. Nodes
// with no rotation and unit scale take a translation-only fast path.
//
// # Styles
//
// A [StyleTable] is one layer of a prototype chain indexed by [Param]. Shared
// tables are never written in place: [StyleTable.Set] copies on write into a
// table private to the writing owner. A [StyleSet] groups the pseudo-state
// variants of a style (Normal, Hovered, Selected, Disabled and their
// combinations) and resolves missing combinations in a fixed order. A
// [StyleView] reads an instance's own writes through every variant its
// cascade passes, so a color set while Normal survives a hover. Style
// sheets are YAML:
//
//	styles:
//	  button:
//	    hovered: button-hover
//	    selected: button-on
//	    params:
//	      color: "#e0e0e0"
//	      padding: 4 8
//	  button-hover:
//	    params: {color: white}
//
// # Animation
//
// The [Scheduler] keeps at most one task per (owner, kind) channel and
// advances tasks in registration order on each [Scheduler.Pump]. Completion
// callbacks run after the task left the registry. [Scheduler.ScheduleAction]
// defers work to a later pump. Easing functions come from [gween].
//
// [Ebitengine]: https://ebitengine.org
// [gween]: https://github.com/tanema/gween
package canopy
