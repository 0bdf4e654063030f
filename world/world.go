// Package world stores the static level surfaces in an ECS world and answers
// raycast and bounds queries against them.
package world

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/mlange-42/ark/ecs"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
)

// SurfaceID is a handle to a surface entity.
type SurfaceID = ecs.Entity

// Hit is the result of a successful raycast.
type Hit struct {
	Point    mgl32.Vec3
	Normal   mgl32.Vec3 // faces back toward the ray origin
	Distance float32
	Surface  SurfaceID
}

// SurfaceSpec describes a surface to spawn.
type SurfaceSpec struct {
	Name     string
	Pose     geom.Pose
	Scale    mgl32.Vec3
	Mesh     *mesh.Mesh
	Material Material
	Layer    LayerID
}

// SurfaceView is a read-only snapshot passed to Each callbacks.
type SurfaceView struct {
	ID       SurfaceID
	Name     string
	Mesh     *mesh.Mesh
	Bounds   geom.AABB
	Material Material
	Layer    LayerID
}

// World owns the surface entities.
type World struct {
	ecs *ecs.World

	surfaceMap *ecs.Map6[Transform, Shape, Material, SurfaceLayer, Visibility, Name]
	surfaces   *ecs.Filter6[Transform, Shape, Material, SurfaceLayer, Visibility, Name]

	shapeMap *ecs.Map1[Shape]
	matMap   *ecs.Map1[Material]
	layerMap *ecs.Map1[SurfaceLayer]
	visMap   *ecs.Map1[Visibility]
	nameMap  *ecs.Map1[Name]
}

// New creates an empty world.
func New() *World {
	w := ecs.NewWorld()
	return &World{
		ecs:        w,
		surfaceMap: ecs.NewMap6[Transform, Shape, Material, SurfaceLayer, Visibility, Name](w),
		surfaces:   ecs.NewFilter6[Transform, Shape, Material, SurfaceLayer, Visibility, Name](w),
		shapeMap:   ecs.NewMap1[Shape](w),
		matMap:     ecs.NewMap1[Material](w),
		layerMap:   ecs.NewMap1[SurfaceLayer](w),
		visMap:     ecs.NewMap1[Visibility](w),
		nameMap:    ecs.NewMap1[Name](w),
	}
}

// Spawn adds a visible surface.
func (w *World) Spawn(spec SurfaceSpec) SurfaceID {
	tr := Transform{Pose: spec.Pose, Scale: spec.Scale}
	if tr.Pose.Rotation == (mgl32.Quat{}) {
		tr.Pose.Rotation = mgl32.QuatIdent()
	}
	worldMesh := spec.Mesh.Transform(tr.Matrix())
	shape := Shape{Local: spec.Mesh, World: worldMesh, Bounds: worldMesh.Bounds()}
	return w.surfaceMap.NewEntity(&tr, &shape, &spec.Material,
		&SurfaceLayer{ID: spec.Layer}, &Visibility{Visible: true}, &Name{Value: spec.Name})
}

// SpawnCarved adds a replacement surface whose mesh is already in world
// space. It records the original it replaces.
func (w *World) SpawnCarved(original SurfaceID, worldMesh *mesh.Mesh) SurfaceID {
	mat := *w.matMap.Get(original)
	layer := *w.layerMap.Get(original)
	name := Name{Value: w.nameMap.Get(original).Value + " (carved)"}

	tr := Transform{Pose: geom.IdentityPose()}
	shape := Shape{
		Local:      worldMesh,
		World:      worldMesh,
		Bounds:     worldMesh.Bounds(),
		Carved:     true,
		CarvedFrom: original,
	}
	return w.surfaceMap.NewEntity(&tr, &shape, &mat, &layer, &Visibility{Visible: true}, &name)
}

// Replace swaps the world mesh of a carved surface.
func (w *World) Replace(id SurfaceID, worldMesh *mesh.Mesh) {
	s := w.shapeMap.Get(id)
	s.Local = worldMesh
	s.World = worldMesh
	s.Bounds = worldMesh.Bounds()
}

// Remove deletes a surface entity. Removing a dead id is a no-op.
func (w *World) Remove(id SurfaceID) {
	if w.ecs.Alive(id) {
		w.ecs.RemoveEntity(id)
	}
}

// Alive reports whether id refers to an existing surface.
func (w *World) Alive(id SurfaceID) bool {
	return w.ecs.Alive(id)
}

// Visible reports whether the surface is drawn and raycastable.
func (w *World) Visible(id SurfaceID) bool {
	return w.visMap.Get(id).Visible
}

// SetVisible shows or hides a surface.
func (w *World) SetVisible(id SurfaceID, visible bool) {
	w.visMap.Get(id).Visible = visible
}

// Layer returns the surface's layer.
func (w *World) Layer(id SurfaceID) LayerID {
	return w.layerMap.Get(id).ID
}

// SetLayer changes the surface's layer.
func (w *World) SetLayer(id SurfaceID, layer LayerID) {
	w.layerMap.Get(id).ID = layer
}

// Bounds returns the surface's world bounding box.
func (w *World) Bounds(id SurfaceID) geom.AABB {
	return w.shapeMap.Get(id).Bounds
}

// Mesh returns the surface's world-space mesh.
func (w *World) Mesh(id SurfaceID) *mesh.Mesh {
	return w.shapeMap.Get(id).World
}

// Name returns the surface's debug label.
func (w *World) Name(id SurfaceID) string {
	return w.nameMap.Get(id).Value
}

// CarvedFrom returns the original surface a replacement stands in for.
func (w *World) CarvedFrom(id SurfaceID) (SurfaceID, bool) {
	s := w.shapeMap.Get(id)
	if !s.Carved {
		return SurfaceID{}, false
	}
	return s.CarvedFrom, true
}

// Raycast returns the nearest visible surface hit within maxDist on a layer
// in mask.
func (w *World) Raycast(ray geom.Ray, maxDist float32, mask LayerMask) (Hit, bool) {
	var best Hit
	found := false

	query := w.surfaces.Query()
	for query.Next() {
		_, shape, _, layer, vis, _ := query.Get()
		if !vis.Visible || !mask.Has(layer.ID) {
			continue
		}
		if t, ok := ray.IntersectAABB(shape.Bounds); !ok || t > maxDist {
			continue
		}
		d, tri, ok := shape.World.Raycast(ray)
		if !ok || d > maxDist || (found && d >= best.Distance) {
			continue
		}
		n := shape.World.FaceNormal(tri)
		if n.Dot(ray.Dir) > 0 {
			n = n.Mul(-1)
		}
		best = Hit{Point: ray.At(d), Normal: n, Distance: d, Surface: query.Entity()}
		found = true
	}
	return best, found
}

// Each calls fn for every visible surface.
func (w *World) Each(fn func(SurfaceView)) {
	query := w.surfaces.Query()
	for query.Next() {
		_, shape, mat, layer, vis, name := query.Get()
		if !vis.Visible {
			continue
		}
		fn(SurfaceView{
			ID:       query.Entity(),
			Name:     name.Value,
			Mesh:     shape.World,
			Bounds:   shape.Bounds,
			Material: *mat,
			Layer:    layer.ID,
		})
	}
}

// Count returns the number of surfaces, visible or not.
func (w *World) Count() int {
	n := 0
	query := w.surfaces.Query()
	for query.Next() {
		n++
	}
	return n
}

// CarvedCount returns how many live replacement surfaces stand in for id.
func (w *World) CarvedCount(id SurfaceID) int {
	n := 0
	query := w.surfaces.Query()
	for query.Next() {
		_, shape, _, _, _, _ := query.Get()
		if shape.Carved && shape.CarvedFrom == id {
			n++
		}
	}
	return n
}
