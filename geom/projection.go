package geom

import "github.com/go-gl/mathgl/mgl32"

// Projection holds perspective camera parameters. FovY is in radians.
type Projection struct {
	FovY   float32
	Aspect float32
	Near   float32
	Far    float32
}

// Matrix returns the OpenGL-style perspective matrix.
func (p Projection) Matrix() mgl32.Mat4 {
	return mgl32.Perspective(p.FovY, p.Aspect, p.Near, p.Far)
}

// ObliqueProjection replaces the near plane of proj with clip, a plane given
// in view space as (a, b, c, d). The camera must lie on the negative side of
// the plane (d < 0); otherwise proj is returned unchanged.
//
// Lengyel, "Oblique View Frustum Depth Projection and Clipping".
func ObliqueProjection(proj mgl32.Mat4, clip mgl32.Vec4) mgl32.Mat4 {
	if clip[3] >= 0 {
		return proj
	}

	// q is the clip-space corner opposite the near plane, taken back to view
	// space; it stays on the far plane after the substitution.
	q := mgl32.Vec4{
		(Sign(clip[0]) + proj.At(0, 2)) / proj.At(0, 0),
		(Sign(clip[1]) + proj.At(1, 2)) / proj.At(1, 1),
		-1,
		(1 + proj.At(2, 2)) / proj.At(2, 3),
	}

	denom := clip.Dot(q)
	if denom == 0 {
		return proj
	}
	c := clip.Mul(2 / denom)

	out := proj
	out.SetRow(2, c.Sub(proj.Row(3)))
	return out
}

// NDC projects a view-space point and returns its normalized device
// coordinates.
func NDC(proj mgl32.Mat4, view mgl32.Vec3) mgl32.Vec3 {
	clip := proj.Mul4x1(view.Vec4(1))
	return clip.Vec3().Mul(1 / clip[3])
}
