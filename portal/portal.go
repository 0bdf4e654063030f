// Package portal implements linked portal pairs: placement onto level
// surfaces, the virtual camera that renders the view through a portal, and
// the per-frame render pass that fills each portal's target.
package portal

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
	"github.com/pthm-cable/portals/world"
)

// halfTurn rotates half a turn about local +Y, turning the view around as it
// passes from one portal to the other.
var halfTurn = mgl32.HomogRotate3DY(math32.Pi)

// VirtualCamera is the camera a portal renders its view with.
type VirtualCamera struct {
	Pose       geom.Pose
	Projection mgl32.Mat4
	FovY       float32
}

// Portal is one end of a portal pair.
type Portal struct {
	Color Color
	Pose  geom.Pose
	Size  mgl32.Vec2
	Mesh  *mesh.Mesh

	// Surface is the level surface the portal was placed on.
	Surface world.SurfaceID

	partner *Portal
	target  Target
	cam     *VirtualCamera

	open      *gween.Tween
	openScale float32
}

// New creates an unlinked portal at pos facing +Z. openDuration is the
// length of the opening animation; zero opens it immediately.
func New(c Color, pos mgl32.Vec3, size mgl32.Vec2, openDuration float32) *Portal {
	p := &Portal{
		Color:     c,
		Pose:      geom.Pose{Position: pos, Rotation: mgl32.QuatIdent()},
		Size:      size,
		Mesh:      mesh.PortalQuad(size.X(), size.Y()),
		cam:       &VirtualCamera{},
		openScale: 1,
	}
	if openDuration > 0 {
		p.open = gween.New(0, 1, openDuration, ease.OutBack)
		p.openScale = 0
	}
	return p
}

// SetPose orients the portal so it faces normal with the given up vector.
// A zero normal leaves the rotation unchanged.
func (p *Portal) SetPose(normal, up mgl32.Vec3) {
	if geom.IsZero(normal) {
		return
	}
	p.Pose.Rotation = geom.LookRotation(normal, up)
}

// Link makes p and other partners of each other.
func (p *Portal) Link(other *Portal) {
	if other == nil || other == p {
		return
	}
	p.partner = other
	other.partner = p
}

// Unlink clears the link on both sides.
func (p *Portal) Unlink() {
	if p.partner != nil && p.partner.partner == p {
		p.partner.partner = nil
	}
	p.partner = nil
}

// IsLinked reports whether p and its partner point at each other.
func (p *Portal) IsLinked() bool {
	return p.partner != nil && p.partner.partner == p
}

// Partner returns the linked portal, or nil.
func (p *Portal) Partner() *Portal {
	if !p.IsLinked() {
		return nil
	}
	return p.partner
}

// Target returns the portal's render target, or nil before the first render.
func (p *Portal) Target() Target {
	return p.target
}

// Camera returns the virtual camera, or nil once destroyed.
func (p *Portal) Camera() *VirtualCamera {
	return p.cam
}

// ViewTransform maps a viewer pose in front of p to the matching pose
// behind the partner. Without a partner the pose is returned unchanged.
func (p *Portal) ViewTransform(viewer geom.Pose) geom.Pose {
	if p.partner == nil {
		return viewer
	}
	m := p.partner.Pose.LocalToWorld().
		Mul4(halfTurn).
		Mul4(p.Pose.WorldToLocal()).
		Mul4(viewer.LocalToWorld())
	return geom.PoseFromMatrix(m)
}

// ClipPlane returns the partner's surface plane, facing out of the partner.
func (p *Portal) ClipPlane() geom.Plane {
	if p.partner == nil {
		return geom.PlaneFromPointNormal(p.Pose.Position, p.Pose.Forward())
	}
	return geom.PlaneFromPointNormal(p.partner.Pose.Position, p.partner.Pose.Forward())
}

// ObliqueProjection returns proj with its near plane replaced by the
// partner's surface plane, expressed in the space of view.
func (p *Portal) ObliqueProjection(view mgl32.Mat4, proj geom.Projection) mgl32.Mat4 {
	clip := geom.TransformPlane(view, p.ClipPlane().Vec4())
	return geom.ObliqueProjection(proj.Matrix(), clip)
}

// RefreshTarget makes sure the portal owns a target of the given size. It
// reports whether a new target was allocated.
func (p *Portal) RefreshTarget(alloc TargetAllocator, width, height int) bool {
	if p.target != nil && p.target.Width() == width && p.target.Height() == height {
		return false
	}
	if p.target != nil {
		p.target.Release()
		p.target = nil
	}
	p.target = alloc.Allocate(width, height)
	return true
}

// Render draws the view through p into its target. It reports whether
// anything was drawn.
func (p *Portal) Render(ctx RenderContext) bool {
	if !p.IsLinked() || p.cam == nil {
		return false
	}
	p.RefreshTarget(ctx.Targets, ctx.Width, ctx.Height)

	pose := p.ViewTransform(ctx.Player)
	view := pose.ViewMatrix()
	p.cam.Pose = pose
	p.cam.FovY = ctx.Projection.FovY
	p.cam.Projection = p.ObliqueProjection(view, ctx.Projection)

	ctx.Scene.DrawScene(View{
		Pose:       pose,
		View:       view,
		Projection: p.cam.Projection,
		FovY:       p.cam.FovY,
	}, p.target, ViewFilter)
	return true
}

// Destroy unlinks p and frees its render resources.
func (p *Portal) Destroy() {
	p.Unlink()
	if p.target != nil {
		p.target.Release()
		p.target = nil
	}
	p.cam = nil
}

// Update advances the opening animation.
func (p *Portal) Update(dt float32) {
	if p.open == nil {
		return
	}
	v, done := p.open.Update(dt)
	p.openScale = v
	if done {
		p.open = nil
		p.openScale = 1
	}
}

// OpenScale is the current scale of the opening animation in [0, ~1.1].
func (p *Portal) OpenScale() float32 {
	return p.openScale
}

// Transform returns the model matrix of the portal quad, including the
// opening scale.
func (p *Portal) Transform() mgl32.Mat4 {
	s := p.openScale
	return p.Pose.LocalToWorld().Mul4(mgl32.Scale3D(s, s, 1))
}

// Bounds returns the world bounds of the portal rectangle.
func (p *Portal) Bounds() geom.AABB {
	return p.Mesh.Transform(p.Pose.LocalToWorld()).Bounds()
}

// Crossed reports whether the segment from -> to passes through the portal
// rectangle from its front side to its back side.
func (p *Portal) Crossed(from, to mgl32.Vec3) bool {
	plane := geom.PlaneFromPointNormal(p.Pose.Position, p.Pose.Forward())
	d0, d1 := plane.Distance(from), plane.Distance(to)
	if d0 < 0 || d1 >= 0 {
		return false
	}
	t := d0 / (d0 - d1)
	hit := from.Add(to.Sub(from).Mul(t))
	local := p.Pose.InverseTransformPoint(hit)
	return math32.Abs(local.X()) <= p.Size.X()/2 && math32.Abs(local.Y()) <= p.Size.Y()/2
}
