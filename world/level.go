package world

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
)

// RoomSpec describes a box-shaped test chamber. The interior spans
// [-Width/2, Width/2] x [0, Height] x [-Depth/2, Depth/2].
type RoomSpec struct {
	Width, Height, Depth float32
	WallThickness        float32
	Pillars              int
	PillarSize           float32
}

// Room holds the handles of the surfaces BuildRoom created.
type Room struct {
	Floor   SurfaceID
	Ceiling SurfaceID
	// Walls are ordered +Z, -Z, +X, -X.
	Walls   [4]SurfaceID
	Pillars []SurfaceID
}

var (
	wallColor    = color.RGBA{R: 200, G: 200, B: 205, A: 255}
	floorColor   = color.RGBA{R: 120, G: 120, B: 130, A: 255}
	ceilingColor = color.RGBA{R: 225, G: 225, B: 230, A: 255}
	pillarColor  = color.RGBA{R: 190, G: 150, B: 90, A: 255}
)

// BuildRoom spawns floor, ceiling, four walls and optional decorative pillars.
// Walls and floor are solid boxes so portal cutouts can be carved from them.
func BuildRoom(w *World, spec RoomSpec) Room {
	hw, hd := spec.Width/2, spec.Depth/2
	t := spec.WallThickness
	if t <= 0 {
		t = 0.2
	}
	unlit := func(c color.RGBA) Material {
		return Material{Color: c, Queue: QueueOpaque, Tags: TagUnlit}
	}
	box := func(name string, center, size mgl32.Vec3, mat Material, layer LayerID) SurfaceID {
		return w.Spawn(SurfaceSpec{
			Name:     name,
			Pose:     geom.Pose{Position: center, Rotation: mgl32.QuatIdent()},
			Mesh:     mesh.Box(size),
			Material: mat,
			Layer:    layer,
		})
	}

	var room Room
	outerW, outerD := spec.Width+2*t, spec.Depth+2*t
	room.Floor = box("floor", mgl32.Vec3{0, -t / 2, 0}, mgl32.Vec3{outerW, t, outerD}, unlit(floorColor), LayerDefault)
	room.Ceiling = box("ceiling", mgl32.Vec3{0, spec.Height + t/2, 0}, mgl32.Vec3{outerW, t, outerD}, unlit(ceilingColor), LayerDefault)

	midY := spec.Height / 2
	room.Walls[0] = box("wall +Z", mgl32.Vec3{0, midY, hd + t/2}, mgl32.Vec3{spec.Width, spec.Height, t}, unlit(wallColor), LayerDefault)
	room.Walls[1] = box("wall -Z", mgl32.Vec3{0, midY, -hd - t/2}, mgl32.Vec3{spec.Width, spec.Height, t}, unlit(wallColor), LayerDefault)
	room.Walls[2] = box("wall +X", mgl32.Vec3{hw + t/2, midY, 0}, mgl32.Vec3{t, spec.Height, spec.Depth}, unlit(wallColor), LayerDefault)
	room.Walls[3] = box("wall -X", mgl32.Vec3{-hw - t/2, midY, 0}, mgl32.Vec3{t, spec.Height, spec.Depth}, unlit(wallColor), LayerDefault)

	if spec.Pillars > 0 && spec.PillarSize > 0 {
		lit := Material{Color: pillarColor, Queue: QueueOpaque, Tags: TagLit}
		ring := min(hw, hd) / 2
		for i := 0; i < spec.Pillars; i++ {
			angle := 2 * math32.Pi * float32(i) / float32(spec.Pillars)
			dir := geom.RotateBy(geom.WorldForward, angle, geom.WorldUp, true)
			center := dir.Mul(ring).Add(mgl32.Vec3{0, midY, 0})
			id := box("pillar", center, mgl32.Vec3{spec.PillarSize, spec.Height, spec.PillarSize}, lit, LayerDecoration)
			room.Pillars = append(room.Pillars, id)
		}
	}
	return room
}
