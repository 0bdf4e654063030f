package portal

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/world"
)

// Target is an off-screen color buffer owned by exactly one portal.
type Target interface {
	Width() int
	Height() int
	Release()
}

// TargetAllocator creates render targets.
type TargetAllocator interface {
	Allocate(width, height int) Target
}

// View is a fully resolved camera for one scene draw.
type View struct {
	Pose       geom.Pose
	View       mgl32.Mat4
	Projection mgl32.Mat4
	FovY       float32
}

// SceneRenderer draws the world into a target through a view.
type SceneRenderer interface {
	DrawScene(v View, t Target, f world.DrawFilter)
}

// RenderContext carries the per-frame inputs of the portal render pass.
type RenderContext struct {
	Player     geom.Pose
	Projection geom.Projection
	Width      int
	Height     int
	Targets    TargetAllocator
	Scene      SceneRenderer
}

// Frustum returns the player's view frustum.
func (ctx RenderContext) Frustum() geom.Frustum {
	return geom.FrustumFromMatrix(ctx.Projection.Matrix().Mul4(ctx.Player.ViewMatrix()))
}

// ViewFilter is what a portal camera draws: opaque unlit surfaces, excluding
// both portal screens, so portals never render inside each other.
var ViewFilter = world.DrawFilter{
	Queue: world.QueueOpaque,
	Tags:  world.TagUnlit,
	Mask:  world.AllLayers.Without(world.LayerPortalRed).Without(world.LayerPortalBlue),
}
