package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Ray is a half-line. Dir is expected to be normalized.
type Ray struct {
	Origin mgl32.Vec3
	Dir    mgl32.Vec3
}

// At returns the point at distance t along the ray.
func (r Ray) At(t float32) mgl32.Vec3 {
	return r.Origin.Add(r.Dir.Mul(t))
}

// IntersectTriangle is the two-sided Möller–Trumbore test. It returns the ray
// parameter of the hit and whether one occurred in front of the origin.
func (r Ray) IntersectTriangle(a, b, c mgl32.Vec3) (float32, bool) {
	e1 := b.Sub(a)
	e2 := c.Sub(a)
	p := r.Dir.Cross(e2)
	det := e1.Dot(p)
	if math32.Abs(det) < Epsilon {
		return 0, false
	}
	inv := 1 / det

	s := r.Origin.Sub(a)
	u := s.Dot(p) * inv
	if u < 0 || u > 1 {
		return 0, false
	}
	q := s.Cross(e1)
	v := r.Dir.Dot(q) * inv
	if v < 0 || u+v > 1 {
		return 0, false
	}
	t := e2.Dot(q) * inv
	if t <= Epsilon {
		return 0, false
	}
	return t, true
}

// IntersectAABB returns the entry distance of the ray into b (slab test).
func (r Ray) IntersectAABB(b AABB) (float32, bool) {
	tmin := float32(0)
	tmax := math32.Inf(1)
	for i := 0; i < 3; i++ {
		if math32.Abs(r.Dir[i]) < Epsilon {
			if r.Origin[i] < b.Min[i] || r.Origin[i] > b.Max[i] {
				return 0, false
			}
			continue
		}
		inv := 1 / r.Dir[i]
		t1 := (b.Min[i] - r.Origin[i]) * inv
		t2 := (b.Max[i] - r.Origin[i]) * inv
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		tmin = max(tmin, t1)
		tmax = min(tmax, t2)
		if tmin > tmax {
			return 0, false
		}
	}
	return tmin, true
}
