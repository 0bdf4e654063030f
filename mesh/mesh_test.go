package mesh

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
)

func TestPortalQuad(t *testing.T) {
	q := PortalQuad(2, 3.5)

	if len(q.Vertices) != 4 || q.TriangleCount() != 2 {
		t.Fatalf("expected 4 vertices / 2 triangles, got %d / %d", len(q.Vertices), q.TriangleCount())
	}

	b := q.Bounds()
	if b.Size() != (mgl32.Vec3{2, 3.5, 0}) {
		t.Errorf("unexpected quad size %v", b.Size())
	}

	for i := 0; i < q.TriangleCount(); i++ {
		if n := q.FaceNormal(i); !geom.ApproxEqual(n, mgl32.Vec3{0, 0, 1}, 1e-5) {
			t.Errorf("triangle %d should face +Z, got %v", i, n)
		}
	}
	for _, n := range q.Normals {
		if n != (mgl32.Vec3{0, 0, -1}) {
			t.Errorf("vertex normals should be inverted, got %v", n)
		}
	}
	wantUV := []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}}
	for i, uv := range q.UVs {
		if uv != wantUV[i] {
			t.Errorf("uv %d: expected %v, got %v", i, wantUV[i], uv)
		}
	}
}

func TestBoxFacesOutward(t *testing.T) {
	b := Box(mgl32.Vec3{2, 4, 6})
	if b.TriangleCount() != 12 {
		t.Fatalf("expected 12 triangles, got %d", b.TriangleCount())
	}
	for i := 0; i < b.TriangleCount(); i++ {
		a, _, _ := b.Triangle(i)
		n := b.FaceNormal(i)
		// For a centered box every face normal points away from the origin.
		if n.Dot(a) <= 0 {
			t.Errorf("triangle %d faces inward (n=%v)", i, n)
		}
	}
	bounds := b.Bounds()
	if bounds.Min != (mgl32.Vec3{-1, -2, -3}) || bounds.Max != (mgl32.Vec3{1, 2, 3}) {
		t.Errorf("unexpected bounds %v", bounds)
	}
}

func TestTransformAndRaycast(t *testing.T) {
	pose := geom.NewPose(mgl32.Vec3{0, 0, 10}, mgl32.Vec3{0, 0, 1}, geom.WorldUp)
	m := OrientedBox(pose, mgl32.Vec3{1, 1, 1})

	d, tri, ok := m.Raycast(geom.Ray{Origin: mgl32.Vec3{}, Dir: mgl32.Vec3{0, 0, 1}})
	if !ok {
		t.Fatal("expected ray to hit box")
	}
	if d < 9.49 || d > 9.51 {
		t.Errorf("expected hit at 9.5, got %f", d)
	}
	if n := m.FaceNormal(tri); !geom.ApproxEqual(n, mgl32.Vec3{0, 0, -1}, 1e-5) {
		t.Errorf("expected near face normal -Z, got %v", n)
	}
}

func TestCloneIsDeep(t *testing.T) {
	a := Box(mgl32.Vec3{1, 1, 1})
	b := a.Clone()
	if !a.Equal(b) {
		t.Fatal("clone should equal original")
	}
	b.Vertices[0] = mgl32.Vec3{9, 9, 9}
	if a.Equal(b) {
		t.Error("mutating clone should not affect original")
	}
}
