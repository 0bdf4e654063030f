package portal

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/world"
)

type fakeTarget struct {
	w, h     int
	released bool
}

func (t *fakeTarget) Width() int  { return t.w }
func (t *fakeTarget) Height() int { return t.h }
func (t *fakeTarget) Release()    { t.released = true }

type fakeTargets struct {
	allocated []*fakeTarget
}

func (a *fakeTargets) Allocate(w, h int) Target {
	t := &fakeTarget{w: w, h: h}
	a.allocated = append(a.allocated, t)
	return t
}

type drawCall struct {
	view   View
	target Target
	filter world.DrawFilter
}

type fakeScene struct {
	draws []drawCall
}

func (s *fakeScene) DrawScene(v View, t Target, f world.DrawFilter) {
	s.draws = append(s.draws, drawCall{view: v, target: t, filter: f})
}

var (
	up = mgl32.Vec3{0, 1, 0}

	// portal on a wall facing -Z, and one on a wall facing -X
	poseA = geom.NewPose(mgl32.Vec3{0, 1.5, 5}, mgl32.Vec3{0, 0, -1}, up)
	poseB = geom.NewPose(mgl32.Vec3{5, 1.5, 0}, mgl32.Vec3{-1, 0, 0}, up)
)

func pair(t *testing.T) (*Portal, *Portal) {
	t.Helper()
	a := New(Red, poseA.Position, mgl32.Vec2{1, 2}, 0)
	a.SetPose(poseA.Forward(), up)
	b := New(Blue, poseB.Position, mgl32.Vec2{1, 2}, 0)
	b.SetPose(poseB.Forward(), up)
	a.Link(b)
	return a, b
}

func testContext(player geom.Pose, targets TargetAllocator, scene SceneRenderer) RenderContext {
	return RenderContext{
		Player:     player,
		Projection: geom.Projection{FovY: mgl32.DegToRad(70), Aspect: 16.0 / 9.0, Near: 0.05, Far: 100},
		Width:      320,
		Height:     180,
		Targets:    targets,
		Scene:      scene,
	}
}

func TestLinkSymmetry(t *testing.T) {
	a, b := pair(t)
	if a.Partner() != b || b.Partner() != a {
		t.Fatal("link is not symmetric")
	}
	if !a.IsLinked() || !b.IsLinked() {
		t.Fatal("IsLinked() = false after Link")
	}

	b.Unlink()
	if a.Partner() != nil || b.Partner() != nil {
		t.Error("Unlink left a dangling partner")
	}
	if a.IsLinked() || b.IsLinked() {
		t.Error("IsLinked() = true after Unlink")
	}
}

func TestLinkIgnoresSelfAndNil(t *testing.T) {
	a := New(Red, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0)
	a.Link(a)
	a.Link(nil)
	if a.IsLinked() {
		t.Error("portal linked to itself or nil")
	}
}

func TestSetPose(t *testing.T) {
	p := New(Red, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0)
	p.SetPose(mgl32.Vec3{1, 0, 0}, up)
	if !geom.ApproxEqual(p.Pose.Forward(), mgl32.Vec3{1, 0, 0}, 1e-5) {
		t.Errorf("forward = %v", p.Pose.Forward())
	}
	if !geom.ApproxEqual(p.Pose.Up(), up, 1e-5) {
		t.Errorf("up = %v", p.Pose.Up())
	}

	before := p.Pose.Rotation
	p.SetPose(mgl32.Vec3{}, up)
	if p.Pose.Rotation != before {
		t.Error("zero normal changed the rotation")
	}
}

func TestViewTransformThroughPortal(t *testing.T) {
	a, b := pair(t)

	tests := []struct {
		name     string
		distance float32
	}{
		{"on the surface", 0},
		{"in front", 2},
		{"far in front", 7.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			viewer := geom.NewPose(a.Pose.Position.Add(a.Pose.Forward().Mul(tt.distance)), a.Pose.Forward().Mul(-1), up)
			got := a.ViewTransform(viewer)

			wantPos := b.Pose.Position.Sub(b.Pose.Forward().Mul(tt.distance))
			if !geom.ApproxEqual(got.Position, wantPos, 1e-4) {
				t.Errorf("position = %v, want %v", got.Position, wantPos)
			}
			if !geom.ApproxEqual(got.Forward(), b.Pose.Forward(), 1e-4) {
				t.Errorf("forward = %v, want %v", got.Forward(), b.Pose.Forward())
			}
			if !geom.ApproxEqual(got.Up(), up, 1e-4) {
				t.Errorf("up = %v, want %v", got.Up(), up)
			}
		})
	}
}

func TestViewTransformOutwardMapsInward(t *testing.T) {
	a, b := pair(t)
	viewer := geom.NewPose(a.Pose.Position, a.Pose.Forward(), up)
	got := a.ViewTransform(viewer)
	if !geom.ApproxEqual(got.Forward(), b.Pose.Forward().Mul(-1), 1e-4) {
		t.Errorf("forward = %v, want %v", got.Forward(), b.Pose.Forward().Mul(-1))
	}
}

func TestViewTransformRoundTrip(t *testing.T) {
	a, b := pair(t)
	viewer := geom.NewPose(mgl32.Vec3{1, 1.7, 2}, mgl32.Vec3{0.3, -0.1, 1}, up)

	back := b.ViewTransform(a.ViewTransform(viewer))
	if !geom.ApproxEqual(back.Position, viewer.Position, 1e-4) {
		t.Errorf("position = %v, want %v", back.Position, viewer.Position)
	}
	if !geom.ApproxEqual(back.Forward(), viewer.Forward(), 1e-4) {
		t.Errorf("forward = %v, want %v", back.Forward(), viewer.Forward())
	}
}

func TestViewTransformUnlinked(t *testing.T) {
	p := New(Red, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0)
	viewer := geom.NewPose(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{0, 0, 1}, up)
	if got := p.ViewTransform(viewer); got != viewer {
		t.Errorf("unlinked ViewTransform changed the pose: %v", got)
	}
}

func TestRenderUnlinkedIsNoop(t *testing.T) {
	targets := &fakeTargets{}
	scene := &fakeScene{}
	p := New(Red, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0)

	if p.Render(testContext(geom.IdentityPose(), targets, scene)) {
		t.Error("unlinked portal rendered")
	}
	if len(targets.allocated) != 0 || len(scene.draws) != 0 {
		t.Error("unlinked render touched resources")
	}
}

func TestRenderDrawsIntoOwnTarget(t *testing.T) {
	a, _ := pair(t)
	targets := &fakeTargets{}
	scene := &fakeScene{}
	player := geom.NewPose(mgl32.Vec3{0, 1.5, 3}, mgl32.Vec3{0, 0, 1}, up)
	ctx := testContext(player, targets, scene)

	if !a.Render(ctx) {
		t.Fatal("linked portal did not render")
	}
	if len(scene.draws) != 1 {
		t.Fatalf("draws = %d, want 1", len(scene.draws))
	}
	call := scene.draws[0]
	if call.target != a.Target() {
		t.Error("drew into a foreign target")
	}
	if call.filter != ViewFilter {
		t.Errorf("filter = %+v", call.filter)
	}
	if call.filter.Mask.Has(world.LayerPortalRed) || call.filter.Mask.Has(world.LayerPortalBlue) {
		t.Error("portal view includes portal screens")
	}
	if call.view.FovY != ctx.Projection.FovY {
		t.Errorf("fov = %f, want player fov %f", call.view.FovY, ctx.Projection.FovY)
	}
	if a.Camera().Pose != call.view.Pose {
		t.Error("virtual camera pose not updated")
	}
}

func TestRenderClipsAtPartnerSurface(t *testing.T) {
	a, b := pair(t)
	scene := &fakeScene{}
	player := geom.NewPose(mgl32.Vec3{0, 1.5, 3}, mgl32.Vec3{0, 0, 1}, up)
	a.Render(testContext(player, &fakeTargets{}, scene))

	v := scene.draws[0].view
	onPlane := b.Pose.Position.Add(mgl32.Vec3{0, 0.3, 0.2})
	viewPoint := v.View.Mul4x1(onPlane.Vec4(1)).Vec3()
	ndc := geom.NDC(v.Projection, viewPoint)
	if mgl32.Abs(ndc[2]+1) > 1e-3 {
		t.Errorf("partner surface depth = %f, want near plane -1", ndc[2])
	}
}

func TestRefreshTarget(t *testing.T) {
	a, _ := pair(t)
	targets := &fakeTargets{}

	if !a.RefreshTarget(targets, 320, 180) {
		t.Fatal("first refresh did not allocate")
	}
	if a.RefreshTarget(targets, 320, 180) {
		t.Error("same size reallocated")
	}
	if !a.RefreshTarget(targets, 640, 360) {
		t.Fatal("resize did not reallocate")
	}
	if len(targets.allocated) != 2 {
		t.Fatalf("allocations = %d, want 2", len(targets.allocated))
	}
	if !targets.allocated[0].released {
		t.Error("old target not released")
	}
	if targets.allocated[1].released {
		t.Error("current target released")
	}
}

func TestDestroy(t *testing.T) {
	a, b := pair(t)
	targets := &fakeTargets{}
	a.RefreshTarget(targets, 100, 100)

	a.Destroy()
	if b.IsLinked() || b.Partner() != nil {
		t.Error("partner still linked after Destroy")
	}
	if !targets.allocated[0].released {
		t.Error("target not released")
	}
	if a.Camera() != nil {
		t.Error("camera not dropped")
	}
	if a.Render(testContext(geom.IdentityPose(), targets, &fakeScene{})) {
		t.Error("destroyed portal rendered")
	}
}

func TestCrossed(t *testing.T) {
	a, _ := pair(t)
	tests := []struct {
		name     string
		from, to mgl32.Vec3
		want     bool
	}{
		{"front to back through center", mgl32.Vec3{0, 1.5, 4.9}, mgl32.Vec3{0, 1.5, 5.1}, true},
		{"back to front", mgl32.Vec3{0, 1.5, 5.1}, mgl32.Vec3{0, 1.5, 4.9}, false},
		{"beside the rectangle", mgl32.Vec3{2, 1.5, 4.9}, mgl32.Vec3{2, 1.5, 5.1}, false},
		{"stays in front", mgl32.Vec3{0, 1.5, 4}, mgl32.Vec3{0, 1.5, 4.5}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := a.Crossed(tt.from, tt.to); got != tt.want {
				t.Errorf("Crossed() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestOpenAnimation(t *testing.T) {
	p := New(Blue, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0.3)
	if p.OpenScale() != 0 {
		t.Errorf("initial scale = %f, want 0", p.OpenScale())
	}
	p.Update(0.15)
	if s := p.OpenScale(); s <= 0 {
		t.Errorf("mid scale = %f, want > 0", s)
	}
	p.Update(0.2)
	if p.OpenScale() != 1 {
		t.Errorf("final scale = %f, want 1", p.OpenScale())
	}

	instant := New(Red, mgl32.Vec3{}, mgl32.Vec2{1, 2}, 0)
	if instant.OpenScale() != 1 {
		t.Errorf("instant scale = %f, want 1", instant.OpenScale())
	}
}

func TestBounds(t *testing.T) {
	a, _ := pair(t)
	b := a.Bounds()
	if !geom.ApproxEqual(b.Min, mgl32.Vec3{-0.5, 0.5, 5}, 1e-4) || !geom.ApproxEqual(b.Max, mgl32.Vec3{0.5, 2.5, 5}, 1e-4) {
		t.Errorf("bounds = %v..%v", b.Min, b.Max)
	}
}

func TestColor(t *testing.T) {
	if Red.Other() != Blue || Blue.Other() != Red {
		t.Error("Other() is not an involution")
	}
	if Red.Layer() != world.LayerPortalRed || Blue.Layer() != world.LayerPortalBlue {
		t.Error("wrong layers")
	}
	if Red.String() != "red" || Blue.String() != "blue" {
		t.Error("wrong names")
	}
}
