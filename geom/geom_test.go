package geom

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

const tol = 1e-4

func TestPlanarComponent(t *testing.T) {
	v := mgl32.Vec3{3, 4, 5}
	got := PlanarComponent(v, mgl32.Vec3{0, 2, 0})
	if !ApproxEqual(got, mgl32.Vec3{3, 0, 5}, tol) {
		t.Errorf("expected (3,0,5), got %v", got)
	}
}

func TestRotateBy(t *testing.T) {
	tests := []struct {
		name   string
		v      mgl32.Vec3
		angle  float32
		normal mgl32.Vec3
		left   bool
		want   mgl32.Vec3
	}{
		{"zero normal", mgl32.Vec3{1, 0, 0}, 1, mgl32.Vec3{}, true, mgl32.Vec3{}},
		{"quarter turn left", mgl32.Vec3{1, 0, 0}, math32.Pi / 2, WorldUp, true, mgl32.Vec3{0, 0, 1}},
		{"quarter turn right", mgl32.Vec3{1, 0, 0}, math32.Pi / 2, WorldUp, false, mgl32.Vec3{0, 0, -1}},
		{"keeps normal component", mgl32.Vec3{1, 2, 0}, math32.Pi, WorldUp, true, mgl32.Vec3{-1, 2, 0}},
		{"parallel to normal", mgl32.Vec3{0, 3, 0}, 1, WorldUp, true, mgl32.Vec3{0, 3, 0}},
	}
	for _, tc := range tests {
		got := RotateBy(tc.v, tc.angle, tc.normal, tc.left)
		if !ApproxEqual(got, tc.want, tol) {
			t.Errorf("%s: expected %v, got %v", tc.name, tc.want, got)
		}
	}
}

func TestRotate90(t *testing.T) {
	v := mgl32.Vec2{1, 0}
	if r := Rotate90Right(v); r != (mgl32.Vec2{0, 1}) {
		t.Errorf("Rotate90Right: got %v", r)
	}
	if l := Rotate90Left(v); l != (mgl32.Vec2{0, -1}) {
		t.Errorf("Rotate90Left: got %v", l)
	}
	if back := Rotate90Left(Rotate90Right(v)); back != v {
		t.Errorf("left(right(v)) should be v, got %v", back)
	}
}

func TestLookRotationAxes(t *testing.T) {
	tests := []struct {
		forward, up mgl32.Vec3
	}{
		{mgl32.Vec3{0, 0, 1}, WorldUp},
		{mgl32.Vec3{1, 0, 0}, WorldUp},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{1, 1, 0}, WorldUp},
		{mgl32.Vec3{0, 1, 0}, WorldUp}, // degenerate up
	}
	for _, tc := range tests {
		p := Pose{Rotation: LookRotation(tc.forward, tc.up)}
		if !ApproxEqual(p.Forward(), tc.forward.Normalize(), tol) {
			t.Errorf("forward %v: got %v", tc.forward, p.Forward())
		}
		if math32.Abs(p.Up().Dot(p.Forward())) > tol {
			t.Errorf("forward %v: up not orthogonal", tc.forward)
		}
	}
}

func TestPoseMatricesInverse(t *testing.T) {
	p := NewPose(mgl32.Vec3{1, 2, 3}, mgl32.Vec3{1, 0, 1}, WorldUp)
	id := p.LocalToWorld().Mul4(p.WorldToLocal())
	if !id.ApproxEqualThreshold(mgl32.Ident4(), tol) {
		t.Errorf("LocalToWorld * WorldToLocal should be identity, got %v", id)
	}

	local := mgl32.Vec3{0.5, -1, 2}
	world := p.TransformPoint(local)
	if back := p.InverseTransformPoint(world); !ApproxEqual(back, local, tol) {
		t.Errorf("point roundtrip: %v -> %v -> %v", local, world, back)
	}
}

func TestPoseFromMatrix(t *testing.T) {
	p := NewPose(mgl32.Vec3{-4, 1, 7}, mgl32.Vec3{0, 0, -1}, WorldUp)
	got := PoseFromMatrix(p.LocalToWorld())
	if !ApproxEqual(got.Position, p.Position, tol) {
		t.Errorf("position: expected %v, got %v", p.Position, got.Position)
	}
	if !ApproxEqual(got.Forward(), p.Forward(), tol) || !ApproxEqual(got.Up(), p.Up(), tol) {
		t.Errorf("rotation mismatch: forward %v up %v", got.Forward(), got.Up())
	}
}

func TestCameraRight(t *testing.T) {
	p := NewPose(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, WorldUp)
	if !ApproxEqual(p.Right(), mgl32.Vec3{1, 0, 0}, tol) {
		t.Errorf("camera looking down -Z should have +X right, got %v", p.Right())
	}
}

func TestAABB(t *testing.T) {
	b := EmptyAABB()
	if !b.IsEmpty() {
		t.Fatal("EmptyAABB should be empty")
	}
	b = b.Extend(mgl32.Vec3{-1, 0, 2}).Extend(mgl32.Vec3{1, 3, 4})
	if b.Size() != (mgl32.Vec3{2, 3, 2}) {
		t.Errorf("unexpected size %v", b.Size())
	}
	if b.Center() != (mgl32.Vec3{0, 1.5, 3}) {
		t.Errorf("unexpected center %v", b.Center())
	}
	if got := b.ExtentAlong(mgl32.Vec3{0, 0, -1}); math32.Abs(got-2) > tol {
		t.Errorf("extent along -Z: expected 2, got %f", got)
	}
	if !b.Intersects(AABB{Min: mgl32.Vec3{0, 0, 0}, Max: mgl32.Vec3{5, 5, 5}}) {
		t.Error("boxes should intersect")
	}
	if b.Intersects(AABB{Min: mgl32.Vec3{2, 0, 0}, Max: mgl32.Vec3{5, 5, 5}}) {
		t.Error("boxes should not intersect")
	}
}

func TestRayIntersectTriangle(t *testing.T) {
	a := mgl32.Vec3{-1, -1, 5}
	b := mgl32.Vec3{1, -1, 5}
	c := mgl32.Vec3{0, 1, 5}

	r := Ray{Origin: mgl32.Vec3{}, Dir: mgl32.Vec3{0, 0, 1}}
	d, ok := r.IntersectTriangle(a, b, c)
	if !ok || math32.Abs(d-5) > tol {
		t.Errorf("expected hit at 5, got %f ok=%v", d, ok)
	}

	// Two-sided: reversed winding still hits
	if _, ok := r.IntersectTriangle(c, b, a); !ok {
		t.Error("expected two-sided hit")
	}

	behind := Ray{Origin: mgl32.Vec3{0, 0, 10}, Dir: mgl32.Vec3{0, 0, 1}}
	if _, ok := behind.IntersectTriangle(a, b, c); ok {
		t.Error("triangle behind the ray should not hit")
	}
}

func TestFrustumCulling(t *testing.T) {
	cam := NewPose(mgl32.Vec3{}, mgl32.Vec3{0, 0, -1}, WorldUp)
	proj := Projection{FovY: mgl32.DegToRad(60), Aspect: 16.0 / 9.0, Near: 0.1, Far: 100}
	f := FrustumFromMatrix(proj.Matrix().Mul4(cam.ViewMatrix()))

	ahead := AABB{Min: mgl32.Vec3{-1, -1, -11}, Max: mgl32.Vec3{1, 1, -9}}
	behind := AABB{Min: mgl32.Vec3{-1, -1, 9}, Max: mgl32.Vec3{1, 1, 11}}
	if !f.IntersectsAABB(ahead) {
		t.Error("box ahead of the camera should be visible")
	}
	if f.IntersectsAABB(behind) {
		t.Error("box behind the camera should be culled")
	}
	if !f.ContainsPoint(mgl32.Vec3{0, 0, -5}) {
		t.Error("point ahead should be inside")
	}
}
