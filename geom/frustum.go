package geom

import "github.com/go-gl/mathgl/mgl32"

// Frustum holds the six clip planes of a view volume, normals pointing inward.
type Frustum struct {
	Planes [6]Plane // left, right, bottom, top, near, far
}

// FrustumFromMatrix extracts the planes of a view-projection matrix
// (Gribb/Hartmann). The planes are normalized.
func FrustumFromMatrix(vp mgl32.Mat4) Frustum {
	r0, r1, r2, r3 := vp.Row(0), vp.Row(1), vp.Row(2), vp.Row(3)

	var f Frustum
	f.Planes[0] = planeFromVec4(r3.Add(r0))
	f.Planes[1] = planeFromVec4(r3.Sub(r0))
	f.Planes[2] = planeFromVec4(r3.Add(r1))
	f.Planes[3] = planeFromVec4(r3.Sub(r1))
	f.Planes[4] = planeFromVec4(r3.Add(r2))
	f.Planes[5] = planeFromVec4(r3.Sub(r2))
	return f
}

func planeFromVec4(v mgl32.Vec4) Plane {
	n := v.Vec3()
	l := n.Len()
	if l == 0 {
		return Plane{}
	}
	return Plane{Normal: n.Mul(1 / l), D: v[3] / l}
}

// ContainsPoint reports whether p is inside all six planes.
func (f Frustum) ContainsPoint(p mgl32.Vec3) bool {
	for _, pl := range f.Planes {
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}

// IntersectsAABB returns false only if the box is entirely outside one plane.
// Conservative: may return true for boxes just outside a frustum corner.
func (f Frustum) IntersectsAABB(b AABB) bool {
	for _, pl := range f.Planes {
		// positive vertex: the corner furthest along the plane normal
		p := b.Max
		if pl.Normal[0] < 0 {
			p[0] = b.Min[0]
		}
		if pl.Normal[1] < 0 {
			p[1] = b.Min[1]
		}
		if pl.Normal[2] < 0 {
			p[2] = b.Min[2]
		}
		if pl.Distance(p) < 0 {
			return false
		}
	}
	return true
}
