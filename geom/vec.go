// Package geom provides the vector, pose and projection math shared by the
// portal, world and camera packages.
package geom

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Epsilon is the tolerance used for degenerate-vector checks.
const Epsilon = 1e-6

// World axes (right-handed, Y up).
var (
	WorldUp      = mgl32.Vec3{0, 1, 0}
	WorldForward = mgl32.Vec3{0, 0, 1}
	WorldRight   = mgl32.Vec3{1, 0, 0}
)

// IsZero reports whether v is (numerically) the zero vector.
func IsZero(v mgl32.Vec3) bool {
	return v.Dot(v) < Epsilon*Epsilon
}

// SafeNormalize returns v normalized, or the zero vector if v is degenerate.
// mgl32's Normalize divides by zero for zero-length input.
func SafeNormalize(v mgl32.Vec3) mgl32.Vec3 {
	l := v.Len()
	if l < Epsilon {
		return mgl32.Vec3{}
	}
	return v.Mul(1 / l)
}

// PlanarComponent returns the component of v lying in the plane with normal n.
func PlanarComponent(v, n mgl32.Vec3) mgl32.Vec3 {
	n = SafeNormalize(n)
	return v.Sub(n.Mul(v.Dot(n)))
}

// RotateBy rotates v by angle (radians) within the plane whose normal is
// normal. The component of v along the normal is preserved. left selects the
// rotation sense. Returns the zero vector when normal is zero (no plane).
func RotateBy(v mgl32.Vec3, angle float32, normal mgl32.Vec3, left bool) mgl32.Vec3 {
	if IsZero(normal) {
		return mgl32.Vec3{}
	}
	n := SafeNormalize(normal)

	offset := n.Mul(v.Dot(n))
	proj := v.Sub(offset)
	mag := proj.Len()
	if mag < Epsilon {
		return v
	}

	i := proj.Mul(1 / mag)
	sign := float32(-1)
	if left {
		sign = 1
	}
	j := SafeNormalize(v.Cross(n)).Mul(sign)

	rotated := i.Mul(mag * math32.Cos(angle)).Add(j.Mul(mag * math32.Sin(angle)))
	return rotated.Add(offset)
}

// Rotate90Right rotates a 2D vector a quarter turn counter-clockwise.
func Rotate90Right(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{-v.Y(), v.X()}
}

// Rotate90Left rotates a 2D vector a quarter turn clockwise.
func Rotate90Left(v mgl32.Vec2) mgl32.Vec2 {
	return mgl32.Vec2{v.Y(), -v.X()}
}

// Sign returns -1, 0 or 1.
func Sign(x float32) float32 {
	switch {
	case x > 0:
		return 1
	case x < 0:
		return -1
	}
	return 0
}

// ApproxEqual compares two vectors component-wise within tol.
func ApproxEqual(a, b mgl32.Vec3, tol float32) bool {
	for i := 0; i < 3; i++ {
		if math32.Abs(a[i]-b[i]) > tol {
			return false
		}
	}
	return true
}
