package geom

import "github.com/go-gl/mathgl/mgl32"

// Plane is the half-space n·x + d = 0. Points with positive distance lie on
// the side the normal points to.
type Plane struct {
	Normal mgl32.Vec3
	D      float32
}

// PlaneFromPointNormal builds the plane through point with the given normal.
func PlaneFromPointNormal(point, normal mgl32.Vec3) Plane {
	n := SafeNormalize(normal)
	return Plane{Normal: n, D: -n.Dot(point)}
}

// Distance returns the signed distance from p to the plane.
func (pl Plane) Distance(p mgl32.Vec3) float32 {
	return pl.Normal.Dot(p) + pl.D
}

// Vec4 packs the plane as (a, b, c, d).
func (pl Plane) Vec4() mgl32.Vec4 {
	return mgl32.Vec4{pl.Normal[0], pl.Normal[1], pl.Normal[2], pl.D}
}

// TransformPlane moves a plane given as (a, b, c, d) into the space reached by
// m. Planes are covectors, so they transform by the inverse transpose.
func TransformPlane(m mgl32.Mat4, plane mgl32.Vec4) mgl32.Vec4 {
	return m.Inv().Transpose().Mul4x1(plane)
}
