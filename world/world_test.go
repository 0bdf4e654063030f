package world

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
)

func testRoom(t *testing.T) (*World, Room) {
	t.Helper()
	w := New()
	room := BuildRoom(w, RoomSpec{Width: 10, Height: 4, Depth: 10, WallThickness: 0.2, Pillars: 4, PillarSize: 0.5})
	return w, room
}

func TestBuildRoom(t *testing.T) {
	w, room := testRoom(t)

	if got := w.Count(); got != 10 {
		t.Fatalf("Count() = %d, want 10", got)
	}
	if len(room.Pillars) != 4 {
		t.Fatalf("pillars = %d, want 4", len(room.Pillars))
	}
	for _, p := range room.Pillars {
		if w.Layer(p) != LayerDecoration {
			t.Errorf("pillar layer = %v, want Decoration", w.Layer(p))
		}
	}

	b := w.Bounds(room.Walls[0])
	if !geom.ApproxEqual(b.Min, mgl32.Vec3{-5, 0, 5}, 1e-4) || !geom.ApproxEqual(b.Max, mgl32.Vec3{5, 4, 5.2}, 1e-4) {
		t.Errorf("+Z wall bounds = %v..%v", b.Min, b.Max)
	}
}

func TestRaycastNearestSurface(t *testing.T) {
	w, room := testRoom(t)

	ray := geom.Ray{Origin: mgl32.Vec3{0, 1.5, 4}, Dir: mgl32.Vec3{0, 0, 1}}
	hit, ok := w.Raycast(ray, 100, AllLayers)
	if !ok {
		t.Fatal("expected hit")
	}
	if hit.Surface != room.Walls[0] {
		t.Errorf("hit %s, want wall +Z", w.Name(hit.Surface))
	}
	if mgl32.Abs(hit.Distance-1) > 1e-4 {
		t.Errorf("distance = %f, want 1", hit.Distance)
	}
	if !geom.ApproxEqual(hit.Normal, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("normal = %v, want facing the ray", hit.Normal)
	}
}

func TestRaycastMaxDistance(t *testing.T) {
	w, _ := testRoom(t)
	ray := geom.Ray{Origin: mgl32.Vec3{0, 1.5, 0}, Dir: mgl32.Vec3{0, 0, 1}}
	if _, ok := w.Raycast(ray, 2, AllLayers); ok {
		t.Error("hit beyond max distance")
	}
}

func TestRaycastRespectsVisibilityAndMask(t *testing.T) {
	w, room := testRoom(t)
	ray := geom.Ray{Origin: mgl32.Vec3{0, 1.5, 4}, Dir: mgl32.Vec3{0, 0, 1}}

	w.SetVisible(room.Walls[0], false)
	if _, ok := w.Raycast(ray, 100, AllLayers); ok {
		t.Error("hidden surface was hit")
	}
	w.SetVisible(room.Walls[0], true)

	if _, ok := w.Raycast(ray, 100, AllLayers.Without(LayerDefault)); ok {
		t.Error("masked-out layer was hit")
	}
	w.SetLayer(room.Walls[0], LayerPortalSurface)
	if _, ok := w.Raycast(ray, 100, LayerPortalSurface.Mask()); !ok {
		t.Error("expected hit on PortalSurface layer")
	}
}

func TestSpawnCarvedTracksOriginal(t *testing.T) {
	w, room := testRoom(t)
	orig := room.Walls[0]
	countBefore := w.Count()

	replacement := w.SpawnCarved(orig, w.Mesh(orig).Clone())
	w.SetVisible(orig, false)

	from, ok := w.CarvedFrom(replacement)
	if !ok || from != orig {
		t.Fatalf("CarvedFrom = %v,%v want %v", from, ok, orig)
	}
	if _, ok := w.CarvedFrom(orig); ok {
		t.Error("original reported as carved")
	}
	if w.CarvedCount(orig) != 1 {
		t.Errorf("CarvedCount = %d, want 1", w.CarvedCount(orig))
	}

	w.Remove(replacement)
	if w.Alive(replacement) {
		t.Error("replacement still alive")
	}
	w.Remove(replacement) // no-op
	if w.CarvedCount(orig) != 0 {
		t.Errorf("CarvedCount after remove = %d, want 0", w.CarvedCount(orig))
	}
	if n := w.Count(); n != countBefore {
		t.Errorf("Count after remove = %d, want %d", n, countBefore)
	}
}

func TestEachSkipsHidden(t *testing.T) {
	w := New()
	a := w.Spawn(SurfaceSpec{Name: "a", Pose: geom.IdentityPose(), Mesh: mesh.Box(mgl32.Vec3{1, 1, 1})})
	w.Spawn(SurfaceSpec{Name: "b", Pose: geom.IdentityPose(), Mesh: mesh.Box(mgl32.Vec3{1, 1, 1})})
	w.SetVisible(a, false)

	var names []string
	w.Each(func(s SurfaceView) { names = append(names, s.Name) })
	if len(names) != 1 || names[0] != "b" {
		t.Errorf("Each visited %v, want [b]", names)
	}
}

func TestLayerMasks(t *testing.T) {
	m, err := MaskFromNames([]string{"Default", " PortalSurface"})
	if err != nil {
		t.Fatal(err)
	}
	if !m.Has(LayerDefault) || !m.Has(LayerPortalSurface) || m.Has(LayerPortalRed) {
		t.Errorf("mask = %b", m)
	}
	if _, err := MaskFromNames([]string{"Nope"}); err == nil {
		t.Error("expected error for unknown layer")
	}
	if LayerPortalBlue.String() != "PortalBlue" {
		t.Errorf("String() = %s", LayerPortalBlue.String())
	}

	mat := Material{Queue: QueueOpaque, Tags: TagUnlit}
	f := DrawFilter{Queue: QueueOpaque, Tags: TagUnlit, Mask: AllLayers.Without(LayerPortalRed)}
	if !mat.Passes(f, LayerDefault) {
		t.Error("unlit opaque on Default should pass")
	}
	if mat.Passes(f, LayerPortalRed) {
		t.Error("masked layer passed")
	}
	if (Material{Queue: QueueOpaque, Tags: TagLit}).Passes(f, LayerDefault) {
		t.Error("lit material passed unlit filter")
	}
}
