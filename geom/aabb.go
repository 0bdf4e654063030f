package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// AABB is an axis-aligned bounding box.
type AABB struct {
	Min, Max mgl32.Vec3
}

// EmptyAABB returns an inverted box that any Extend call will replace.
func EmptyAABB() AABB {
	inf := math32.Inf(1)
	return AABB{
		Min: mgl32.Vec3{inf, inf, inf},
		Max: mgl32.Vec3{-inf, -inf, -inf},
	}
}

// IsEmpty reports whether the box contains no points.
func (b AABB) IsEmpty() bool {
	return b.Min[0] > b.Max[0] || b.Min[1] > b.Max[1] || b.Min[2] > b.Max[2]
}

// Extend grows the box to include p.
func (b AABB) Extend(p mgl32.Vec3) AABB {
	for i := 0; i < 3; i++ {
		b.Min[i] = min(b.Min[i], p[i])
		b.Max[i] = max(b.Max[i], p[i])
	}
	return b
}

// Center returns the box center.
func (b AABB) Center() mgl32.Vec3 {
	return b.Min.Add(b.Max).Mul(0.5)
}

// Size returns the box extent along each axis.
func (b AABB) Size() mgl32.Vec3 {
	return b.Max.Sub(b.Min)
}

// Contains reports whether p lies inside the box (inclusive, with tolerance).
func (b AABB) Contains(p mgl32.Vec3, tol float32) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i]-tol || p[i] > b.Max[i]+tol {
			return false
		}
	}
	return true
}

// Intersects reports whether two boxes overlap.
func (b AABB) Intersects(o AABB) bool {
	for i := 0; i < 3; i++ {
		if b.Max[i] < o.Min[i] || o.Max[i] < b.Min[i] {
			return false
		}
	}
	return true
}

// Corners returns the eight corners of the box.
func (b AABB) Corners() [8]mgl32.Vec3 {
	var c [8]mgl32.Vec3
	for i := 0; i < 8; i++ {
		c[i] = mgl32.Vec3{b.Min[0], b.Min[1], b.Min[2]}
		if i&1 != 0 {
			c[i][0] = b.Max[0]
		}
		if i&2 != 0 {
			c[i][1] = b.Max[1]
		}
		if i&4 != 0 {
			c[i][2] = b.Max[2]
		}
	}
	return c
}

// Transform returns the world box enclosing this box transformed by m.
func (b AABB) Transform(m mgl32.Mat4) AABB {
	out := EmptyAABB()
	for _, c := range b.Corners() {
		out = out.Extend(mgl32.TransformCoordinate(c, m))
	}
	return out
}

// ExtentAlong returns the width of the box projected onto direction n.
func (b AABB) ExtentAlong(n mgl32.Vec3) float32 {
	s := b.Size()
	n = SafeNormalize(n)
	return math32.Abs(n[0])*s[0] + math32.Abs(n[1])*s[1] + math32.Abs(n[2])*s[2]
}
