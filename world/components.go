package world

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
)

// Transform places a surface's local mesh in the world.
type Transform struct {
	Pose  geom.Pose
	Scale mgl32.Vec3
}

// Matrix returns the local-to-world matrix including scale.
func (t Transform) Matrix() mgl32.Mat4 {
	s := t.Scale
	if s == (mgl32.Vec3{}) {
		s = mgl32.Vec3{1, 1, 1}
	}
	return t.Pose.LocalToWorld().Mul4(mgl32.Scale3D(s[0], s[1], s[2]))
}

// Shape holds a surface's geometry. World and Bounds are derived from Local
// and the Transform when the surface is spawned; surfaces are static.
type Shape struct {
	Local  *mesh.Mesh
	World  *mesh.Mesh
	Bounds geom.AABB

	// Carved is set on generated replacement surfaces; CarvedFrom is the
	// hidden original they stand in for.
	Carved     bool
	CarvedFrom ecs.Entity
}

// Queue is the render queue a surface is drawn in.
type Queue uint8

const (
	QueueOpaque Queue = iota
	QueueTransparent
)

// Tag is a bitmask of shader passes a material supports.
type Tag uint8

const (
	TagUnlit Tag = 1 << iota
	TagLit
)

// Material describes how a surface is drawn.
type Material struct {
	Color color.RGBA
	Queue Queue
	Tags  Tag
}

// SurfaceLayer is the render/collision layer of a surface.
type SurfaceLayer struct {
	ID LayerID
}

// Visibility hides a surface from drawing and raycasts without removing it.
type Visibility struct {
	Visible bool
}

// Name is a debug label.
type Name struct {
	Value string
}
