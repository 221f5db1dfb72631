package canopy

// Element hosts one widget's core state: a Transform, a view onto a
// StyleSet and the pseudo-state flags that select the active variant.
// Concrete widgets embed or wrap an Element.
//
// An Element owns its children. The parent link is a back-reference only;
// removing an element from its parent never disposes it.
type Element struct {
	// Identity
	Name   string
	id     OwnerID
	lastID OwnerID
	ctx    *Context

	// Hierarchy
	parent   *Element
	children []*Element

	transform *Transform
	style     *StyleView

	enabled  bool
	selected bool
	hovered  bool

	// OnStyleChanged runs on the next pump after the active style variant
	// changed. Deferring it keeps handlers from mutating the tree while input
	// dispatch is iterating it.
	OnStyleChanged func(e *Element, active State)

	// UserData is free for the widget layer.
	UserData any

	disposed bool
}

// NewElement creates an element with a fresh owner ID, a root transform and
// the session's empty style.
func (c *Context) NewElement(name string) *Element {
	id := c.NewOwnerID()
	return &Element{
		Name:      name,
		id:        id,
		ctx:       c,
		transform: NewTransform(),
		style:     NewStyleView(c.plain, id),
		enabled:   true,
	}
}

// NewStyledElement creates an element using the named style from the
// session style sheet.
func (c *Context) NewStyledElement(name, style string) (*Element, error) {
	set, err := c.styles.Style(style)
	if err != nil {
		return nil, err
	}
	e := c.NewElement(name)
	e.SetStyleSet(set)
	return e, nil
}

// ID returns the element's owner identity. Zero after disposal.
func (e *Element) ID() OwnerID { return e.id }

// Context returns the session the element belongs to.
func (e *Element) Context() *Context { return e.ctx }

// Transform returns the element's transform node.
func (e *Element) Transform() *Transform { return e.transform }

// Style returns the element's style view.
func (e *Element) Style() *StyleView { return e.style }

// SetStyleSet switches the element to another style. Private writes made
// against the previous style are dropped.
func (e *Element) SetStyleSet(set *StyleSet) {
	e.style = NewStyleView(set, e.id)
	e.style.SetState(e.State())
}

// --- Pseudo-state ---

// State returns the combined pseudo-state of the element's flags.
func (e *Element) State() State {
	return StateFromFlags(e.enabled, e.selected, e.hovered)
}

// Enabled reports whether the element accepts interaction.
func (e *Element) Enabled() bool { return e.enabled }

// Selected reports whether the element is selected.
func (e *Element) Selected() bool { return e.selected }

// Hovered reports whether the pointer is over the element.
func (e *Element) Hovered() bool { return e.hovered }

// SetEnabled updates the enabled flag and re-resolves the style variant.
func (e *Element) SetEnabled(v bool) {
	if e.enabled == v {
		return
	}
	e.enabled = v
	e.updateState()
}

// SetSelected updates the selected flag and re-resolves the style variant.
func (e *Element) SetSelected(v bool) {
	if e.selected == v {
		return
	}
	e.selected = v
	e.updateState()
}

// SetHovered updates the hovered flag and re-resolves the style variant.
func (e *Element) SetHovered(v bool) {
	if e.hovered == v {
		return
	}
	e.hovered = v
	e.updateState()
}

func (e *Element) updateState() {
	if !e.style.SetState(e.State()) || e.OnStyleChanged == nil {
		return
	}
	active := e.style.ActiveState()
	e.ctx.scheduler.ScheduleAction(func() {
		if !e.disposed && e.OnStyleChanged != nil {
			e.OnStyleChanged(e, active)
		}
	}, 0)
}

// --- Style parameters ---

// Param returns the effective value of p, falling back to the parameter's
// table default.
func (e *Element) Param(p Param) Value {
	return e.style.Get(p, p.Info().Default)
}

// SetParam writes p into the active variant for this element only.
func (e *Element) SetParam(p Param, v Value) error {
	return e.style.Set(p, v)
}

// SetParamFor writes p into the element's copy of a specific variant.
func (e *Element) SetParamFor(state State, p Param, v Value) error {
	return e.style.SetFor(state, p, v)
}

// Alpha returns the element's own alpha parameter.
func (e *Element) Alpha() float64 {
	f, err := e.Param(ParamAlpha).Float()
	if err != nil {
		return 1
	}
	return f
}

// WorldAlpha multiplies alpha down the parent chain.
func (e *Element) WorldAlpha() float64 {
	a := 1.0
	for p := e; p != nil; p = p.parent {
		a *= p.Alpha()
	}
	return a
}

// Size returns the element's size parameter.
func (e *Element) Size() (w, h float64) {
	v, err := e.Param(ParamSize).Vec2()
	if err != nil {
		return 0, 0
	}
	return v[0], v[1]
}

// HitTest reports whether the world point lies inside the element's local
// bounds (origin to Size).
func (e *Element) HitTest(wx, wy float64) bool {
	w, h := e.Size()
	lx, ly := e.transform.ProjectToLocal2D(wx, wy)
	return Rect{Width: w, Height: h}.Contains(lx, ly)
}

// --- Tree manipulation ---

// Parent returns the parent element, or nil.
func (e *Element) Parent() *Element { return e.parent }

// AddChild appends child to this element's children.
// If child already has a parent, it is removed from that parent first.
// Panics if child is nil or child is an ancestor of this element (cycle).
func (e *Element) AddChild(child *Element) {
	e.checkAdd(child, "AddChild")
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	e.children = append(e.children, child)
	e.attach(child)
}

// AddChildAt inserts child at the given index.
// Same reparenting and cycle-check behavior as AddChild.
func (e *Element) AddChildAt(child *Element, index int) {
	e.checkAdd(child, "AddChildAt")
	if child.parent != nil {
		child.parent.removeChildByPtr(child)
	}
	if index < 0 || index > len(e.children) {
		panic("canopy: child index out of range")
	}
	e.children = append(e.children, nil)
	copy(e.children[index+1:], e.children[index:])
	e.children[index] = child
	e.attach(child)
}

func (e *Element) checkAdd(child *Element, op string) {
	if child == nil {
		panic("canopy: cannot add nil child")
	}
	if e.ctx.cfg.Debug {
		debugCheckDisposed(e, op+" (parent)")
		debugCheckDisposed(child, op+" (child)")
	}
	if isAncestor(child, e) {
		panic("canopy: adding child would create a cycle")
	}
}

func (e *Element) attach(child *Element) {
	child.parent = e
	child.transform.SetParent(e.transform)
	if e.ctx.cfg.Debug {
		e.ctx.debugCheckTreeDepth(child)
		e.ctx.debugCheckChildCount(e)
	}
}

// RemoveChild detaches child from this element.
// Panics if child's parent is not e.
func (e *Element) RemoveChild(child *Element) {
	if child.parent != e {
		panic("canopy: child's parent is not this element")
	}
	e.removeChildByPtr(child)
	child.parent = nil
	child.transform.SetParent(nil)
}

// RemoveFromParent detaches this element from its parent.
// No-op if this element has no parent.
func (e *Element) RemoveFromParent() {
	if e.parent == nil {
		return
	}
	e.parent.RemoveChild(e)
}

// RemoveChildren detaches all children. Children are not disposed.
func (e *Element) RemoveChildren() {
	for _, child := range e.children {
		child.parent = nil
		child.transform.SetParent(nil)
	}
	clear(e.children)
	e.children = e.children[:0]
}

// Children returns the child list. The returned slice must not be mutated.
func (e *Element) Children() []*Element { return e.children }

// NumChildren returns the number of children.
func (e *Element) NumChildren() int { return len(e.children) }

// ChildAt returns the child at the given index.
func (e *Element) ChildAt(index int) *Element { return e.children[index] }

// Walk visits e and its descendants depth-first. Returning false from fn
// skips the element's children.
func (e *Element) Walk(fn func(*Element) bool) {
	if !fn(e) {
		return
	}
	for _, child := range e.children {
		child.Walk(fn)
	}
}

// --- Disposal ---

// Dispose removes this element from its parent and disposes it and all
// descendants, cancelling every animation they own.
func (e *Element) Dispose() {
	if e.disposed {
		return
	}
	e.RemoveFromParent()
	e.dispose()
}

func (e *Element) dispose() {
	e.ctx.scheduler.RemoveOwner(e.id)
	e.disposed = true
	e.lastID = e.id
	e.id = 0
	for _, child := range e.children {
		child.parent = nil
		child.transform.SetParent(nil)
		child.dispose()
	}
	e.children = nil
	e.parent = nil
	e.OnStyleChanged = nil
	e.UserData = nil
}

// IsDisposed reports whether the element has been disposed.
func (e *Element) IsDisposed() bool { return e.disposed }

// --- Helpers ---

// isAncestor reports whether candidate is e or an ancestor of e.
func isAncestor(candidate, e *Element) bool {
	for p := e; p != nil; p = p.parent {
		if p == candidate {
			return true
		}
	}
	return false
}

// removeChildByPtr removes child from e.children without clearing
// child.parent.
func (e *Element) removeChildByPtr(child *Element) {
	for i, c := range e.children {
		if c == child {
			copy(e.children[i:], e.children[i+1:])
			e.children[len(e.children)-1] = nil
			e.children = e.children[:len(e.children)-1]
			return
		}
	}
}
