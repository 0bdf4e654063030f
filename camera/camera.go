// Package camera provides the first-person player camera.
package camera

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
)

// Camera is a yaw/pitch first-person camera.
type Camera struct {
	Position mgl32.Vec3

	// Yaw rotates about world up; zero looks along +Z. Pitch is positive
	// looking up.
	Yaw, Pitch float32

	// Vertical field of view in radians.
	FovY       float32
	Near, Far  float32
	PitchLimit float32

	// Viewport dimensions (screen size)
	ViewportW, ViewportH float32

	// FOV constraints in radians
	MinFov, MaxFov float32

	home      mgl32.Vec3
	homeYaw   float32
	homePitch float32
}

// New creates a camera at pos looking along +Z.
func New(pos mgl32.Vec3, viewportW, viewportH, fovY float32) *Camera {
	return &Camera{
		Position:   pos,
		FovY:       fovY,
		Near:       0.05,
		Far:        200,
		PitchLimit: mgl32.DegToRad(89),
		ViewportW:  viewportW,
		ViewportH:  viewportH,
		MinFov:     mgl32.DegToRad(30),
		MaxFov:     mgl32.DegToRad(120),
		home:       pos,
	}
}

// Forward returns the look direction.
func (c *Camera) Forward() mgl32.Vec3 {
	cp := math32.Cos(c.Pitch)
	return mgl32.Vec3{math32.Sin(c.Yaw) * cp, math32.Sin(c.Pitch), math32.Cos(c.Yaw) * cp}
}

// Flat returns the look direction projected onto the ground plane.
func (c *Camera) Flat() mgl32.Vec3 {
	return mgl32.Vec3{math32.Sin(c.Yaw), 0, math32.Cos(c.Yaw)}
}

// Pose returns the camera pose. Its up axis stays in the vertical plane of
// the look direction.
func (c *Camera) Pose() geom.Pose {
	return geom.NewPose(c.Position, c.Forward(), geom.WorldUp)
}

// Right returns the viewer's right-hand direction.
func (c *Camera) Right() mgl32.Vec3 {
	return c.Pose().Right()
}

// Projection returns the current perspective parameters.
func (c *Camera) Projection() geom.Projection {
	aspect := float32(1)
	if c.ViewportH > 0 {
		aspect = c.ViewportW / c.ViewportH
	}
	return geom.Projection{FovY: c.FovY, Aspect: aspect, Near: c.Near, Far: c.Far}
}

// Frustum returns the view frustum in world space.
func (c *Camera) Frustum() geom.Frustum {
	p := c.Pose()
	return geom.FrustumFromMatrix(c.Projection().Matrix().Mul4(p.ViewMatrix()))
}

// Look turns the camera by mouse delta in pixels scaled by sensitivity.
// Moving the mouse right turns right; moving it up looks up.
func (c *Camera) Look(dx, dy, sensitivity float32) {
	c.Yaw -= dx * sensitivity
	c.Pitch = clamp(c.Pitch-dy*sensitivity, -c.PitchLimit, c.PitchLimit)
}

// Move translates the camera. forward and strafe move in the ground plane
// relative to the yaw; vertical moves along world up.
func (c *Camera) Move(forward, strafe, vertical, speed, dt float32) {
	flat := c.Flat()
	right := flat.Cross(geom.WorldUp)
	dir := flat.Mul(forward).Add(right.Mul(strafe)).Add(geom.WorldUp.Mul(vertical))
	if geom.IsZero(dir) {
		return
	}
	c.Position = c.Position.Add(dir.Normalize().Mul(speed * dt))
}

// Teleport places the camera at pose, keeping the look direction.
func (c *Camera) Teleport(pose geom.Pose) {
	c.Position = pose.Position
	f := pose.Forward()
	c.Pitch = clamp(math32.Asin(clamp(f.Y(), -1, 1)), -c.PitchLimit, c.PitchLimit)
	if absf(f.X())+absf(f.Z()) > geom.Epsilon {
		c.Yaw = math32.Atan2(f.X(), f.Z())
	}
}

// SetFov sets the vertical field of view, clamped to min/max.
func (c *Camera) SetFov(fov float32) {
	c.FovY = clamp(fov, c.MinFov, c.MaxFov)
}

// Resize updates viewport dimensions.
func (c *Camera) Resize(viewportW, viewportH float32) {
	c.ViewportW = viewportW
	c.ViewportH = viewportH
}

// SetHome records the pose Reset returns to.
func (c *Camera) SetHome() {
	c.home, c.homeYaw, c.homePitch = c.Position, c.Yaw, c.Pitch
}

// Reset returns the camera to its home pose.
func (c *Camera) Reset() {
	c.Position, c.Yaw, c.Pitch = c.home, c.homeYaw, c.homePitch
}

// absf returns the absolute value of a float32.
func absf(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// clamp restricts a value to a range.
func clamp(x, min, max float32) float32 {
	if x < min {
		return min
	}
	if x > max {
		return max
	}
	return x
}
