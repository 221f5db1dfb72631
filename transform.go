package canopy

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
)

// Transform is a node in the spatial hierarchy. It produces a world matrix
// from its local position, rotation and scale and the world matrix of its
// parent. Matrices are baked lazily: setters only mark the node dirty and the
// bake happens on the next read.
//
// Composition order:
//
//	Translate(Position) -> RotateZ -> RotateY -> RotateX -> Scale
//
// Rotation is in radians. The parent link is a non-owning back-reference;
// the owner of the node (usually an Element) holds the hierarchy.
type Transform struct {
	position mgl64.Vec3
	rotation mgl64.Vec3
	scale    mgl64.Vec3

	parent *Transform

	world   mgl64.Mat4
	inverse mgl64.Mat4

	// version is bumped on every bake; observed is the parent's version at
	// the time of the last bake.
	version  uint64
	observed uint64

	dirty           bool
	inverseStale    bool
	translationOnly bool
}

// NewTransform returns a root transform at the origin with unit scale.
func NewTransform() *Transform {
	t := &Transform{}
	t.reset()
	return t
}

func (t *Transform) reset() {
	t.position = mgl64.Vec3{}
	t.rotation = mgl64.Vec3{}
	t.scale = mgl64.Vec3{1, 1, 1}
	t.world = mgl64.Ident4()
	t.inverse = mgl64.Ident4()
	t.dirty = true
	t.inverseStale = true
	t.translationOnly = true
}

// Position returns the local position.
func (t *Transform) Position() mgl64.Vec3 { return t.position }

// Rotation returns the local rotation in radians.
func (t *Transform) Rotation() mgl64.Vec3 { return t.rotation }

// Scale returns the local scale.
func (t *Transform) Scale() mgl64.Vec3 { return t.scale }

// Parent returns the parent transform, or nil for a root.
func (t *Transform) Parent() *Transform { return t.parent }

// Version returns the number of times the world matrix has been baked.
func (t *Transform) Version() uint64 { return t.version }

// TranslationOnly reports whether the node has no rotation and unit scale,
// in which case the world matrix is a pure translation of the parent's.
func (t *Transform) TranslationOnly() bool { return t.translationOnly }

// SetPosition sets the local position. Changes within Epsilon are ignored.
func (t *Transform) SetPosition(p mgl64.Vec3) {
	if !vecDiffers(t.position, p) {
		return
	}
	t.position = p
	t.dirty = true
}

// SetRotation sets the local rotation in radians. Changes within Epsilon are
// ignored.
func (t *Transform) SetRotation(r mgl64.Vec3) {
	if !vecDiffers(t.rotation, r) {
		return
	}
	t.rotation = r
	t.dirty = true
	t.updateTranslationOnly()
}

// SetScale sets the local scale. Changes within Epsilon are ignored. A zero
// component is accepted and produces a singular matrix.
func (t *Transform) SetScale(s mgl64.Vec3) {
	if !vecDiffers(t.scale, s) {
		return
	}
	t.scale = s
	t.dirty = true
	t.updateTranslationOnly()
}

// SetParent changes the parent back-reference and marks the node dirty.
// Passing nil makes the node a root. Panics if p is t or a descendant of t.
func (t *Transform) SetParent(p *Transform) {
	if p == t {
		panic("canopy: transform cannot be its own parent")
	}
	for a := p; a != nil; a = a.parent {
		if a == t {
			panic("canopy: transform parent cycle")
		}
	}
	t.parent = p
	t.observed = 0
	t.dirty = true
}

// MarkDirty forces a rebake on the next read.
func (t *Transform) MarkDirty() {
	t.dirty = true
}

// IsChanged reports whether the cached world matrix is stale: the node itself
// is dirty, or any ancestor is, or the parent has been rebaked since this
// node last observed it.
func (t *Transform) IsChanged() bool {
	if t.dirty {
		return true
	}
	if t.parent == nil {
		return false
	}
	return t.parent.IsChanged() || t.parent.version != t.observed
}

// WorldMatrix returns the world matrix, baking it first if needed. The
// parent is baked first, so a read costs one pass up the ancestors.
func (t *Transform) WorldMatrix() mgl64.Mat4 {
	if t.parent == nil {
		if !t.dirty {
			return t.world
		}
		if t.translationOnly {
			t.world = mgl64.Translate3D(t.position[0], t.position[1], t.position[2])
		} else {
			t.world = t.localMatrix()
		}
	} else {
		pw := t.parent.WorldMatrix()
		if !t.dirty && t.parent.version == t.observed {
			return t.world
		}
		if t.translationOnly {
			t.world = translateMatrix(pw, t.position)
		} else {
			t.world = pw.Mul4(t.localMatrix())
		}
		t.observed = t.parent.version
	}

	t.dirty = false
	t.version++
	t.inverseStale = true
	return t.world
}

// InverseWorldMatrix returns the inverse of the world matrix. It is cached
// separately and only recomputed when the world matrix changed since the last
// inversion.
//
// Singular matrices are not special-cased: a node with a zero scale component
// yields the zero matrix, and every point projected through it lands on the
// origin.
func (t *Transform) InverseWorldMatrix() mgl64.Mat4 {
	w := t.WorldMatrix()
	if t.inverseStale {
		t.inverse = w.Inv()
		t.inverseStale = false
	}
	return t.inverse
}

// ProjectToWorld converts a local-space point to world space.
func (t *Transform) ProjectToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return t.WorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}

// ProjectToLocal converts a world-space point to this node's local space.
func (t *Transform) ProjectToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return t.InverseWorldMatrix().Mul4x1(p.Vec4(1)).Vec3()
}

// ProjectToWorld2D converts a local point on the z=0 plane to world space.
func (t *Transform) ProjectToWorld2D(x, y float64) (wx, wy float64) {
	w := t.ProjectToWorld(mgl64.Vec3{x, y, 0})
	return w[0], w[1]
}

// ProjectToLocal2D converts a world point on the z=0 plane to local space.
func (t *Transform) ProjectToLocal2D(x, y float64) (lx, ly float64) {
	l := t.ProjectToLocal(mgl64.Vec3{x, y, 0})
	return l[0], l[1]
}

// GeoM returns the XY-plane part of the world matrix as an ebiten.GeoM, for
// submitting draw calls.
func (t *Transform) GeoM() ebiten.GeoM {
	m := t.WorldMatrix()
	var g ebiten.GeoM
	g.SetElement(0, 0, m[0])
	g.SetElement(0, 1, m[4])
	g.SetElement(0, 2, m[12])
	g.SetElement(1, 0, m[1])
	g.SetElement(1, 1, m[5])
	g.SetElement(1, 2, m[13])
	return g
}

// localMatrix composes position, rotation and scale.
func (t *Transform) localMatrix() mgl64.Mat4 {
	m := mgl64.Translate3D(t.position[0], t.position[1], t.position[2])
	if t.rotation[2] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DZ(t.rotation[2]))
	}
	if t.rotation[1] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DY(t.rotation[1]))
	}
	if t.rotation[0] != 0 {
		m = m.Mul4(mgl64.HomogRotate3DX(t.rotation[0]))
	}
	return m.Mul4(mgl64.Scale3D(t.scale[0], t.scale[1], t.scale[2]))
}

func (t *Transform) updateTranslationOnly() {
	t.translationOnly = t.rotation == (mgl64.Vec3{}) && t.scale == (mgl64.Vec3{1, 1, 1})
}

// translateMatrix returns p * Translate(v) without building the translation
// matrix. Only the last column changes.
func translateMatrix(p mgl64.Mat4, v mgl64.Vec3) mgl64.Mat4 {
	m := p
	m[12] = p[0]*v[0] + p[4]*v[1] + p[8]*v[2] + p[12]
	m[13] = p[1]*v[0] + p[5]*v[1] + p[9]*v[2] + p[13]
	m[14] = p[2]*v[0] + p[6]*v[1] + p[10]*v[2] + p[14]
	m[15] = p[3]*v[0] + p[7]*v[1] + p[11]*v[2] + p[15]
	return m
}

func vecDiffers(a, b mgl64.Vec3) bool {
	for i := range a {
		if math.Abs(a[i]-b[i]) > Epsilon {
			return true
		}
	}
	return false
}
