package geom

import "github.com/go-gl/mathgl/mgl32"

// Pose is a rigid transform. Local +Z is forward, +Y is up.
type Pose struct {
	Position mgl32.Vec3
	Rotation mgl32.Quat
}

// IdentityPose returns a pose at the origin facing +Z.
func IdentityPose() Pose {
	return Pose{Rotation: mgl32.QuatIdent()}
}

// NewPose builds a pose from a position and a forward/up pair.
func NewPose(pos, forward, up mgl32.Vec3) Pose {
	return Pose{Position: pos, Rotation: LookRotation(forward, up)}
}

// LookRotation returns the rotation whose forward axis is forward and whose up
// axis is as close to up as possible. When up is parallel to forward an
// arbitrary perpendicular is used.
func LookRotation(forward, up mgl32.Vec3) mgl32.Quat {
	z := SafeNormalize(forward)
	if IsZero(z) {
		return mgl32.QuatIdent()
	}
	x := up.Cross(z)
	if IsZero(x) {
		// up is parallel to forward
		x = WorldRight.Cross(z)
		if IsZero(x) {
			x = WorldForward.Cross(z)
		}
	}
	x = SafeNormalize(x)
	y := z.Cross(x)

	return mgl32.Mat4ToQuat(mgl32.Mat3FromCols(x, y, z).Mat4()).Normalize()
}

// Forward returns the world-space forward (+Z) axis.
func (p Pose) Forward() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldForward)
}

// Up returns the world-space up (+Y) axis.
func (p Pose) Up() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldUp)
}

// AxisX returns the world-space local +X axis. For a camera this points to
// the viewer's left; see Right.
func (p Pose) AxisX() mgl32.Vec3 {
	return p.Rotation.Rotate(WorldRight)
}

// Right returns the right-hand direction of a viewer looking along Forward.
func (p Pose) Right() mgl32.Vec3 {
	return p.Forward().Cross(p.Up())
}

// LocalToWorld returns the local-to-world matrix.
func (p Pose) LocalToWorld() mgl32.Mat4 {
	return mgl32.Translate3D(p.Position[0], p.Position[1], p.Position[2]).Mul4(p.Rotation.Mat4())
}

// WorldToLocal returns the world-to-local matrix.
func (p Pose) WorldToLocal() mgl32.Mat4 {
	inv := p.Rotation.Conjugate()
	return inv.Mat4().Mul4(mgl32.Translate3D(-p.Position[0], -p.Position[1], -p.Position[2]))
}

// TransformPoint maps a local point to world space.
func (p Pose) TransformPoint(local mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Rotate(local).Add(p.Position)
}

// InverseTransformPoint maps a world point to local space.
func (p Pose) InverseTransformPoint(world mgl32.Vec3) mgl32.Vec3 {
	return p.Rotation.Conjugate().Rotate(world.Sub(p.Position))
}

// ViewMatrix returns the camera view matrix for a viewer at this pose looking
// along Forward (OpenGL convention, view-space -Z forward).
func (p Pose) ViewMatrix() mgl32.Mat4 {
	return mgl32.LookAtV(p.Position, p.Position.Add(p.Forward()), p.Up())
}

// PoseFromMatrix extracts the translation and rotation of a rigid transform.
func PoseFromMatrix(m mgl32.Mat4) Pose {
	pos := m.Col(3).Vec3()
	rot := m
	rot.SetCol(3, mgl32.Vec4{0, 0, 0, 1})
	return Pose{Position: pos, Rotation: mgl32.Mat4ToQuat(rot).Normalize()}
}
