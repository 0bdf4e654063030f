package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
)

// quadIndices run the corners in reverse of their listing order so the front
// face looks along local +Z, toward the viewer.
var quadIndices = []uint16{2, 1, 0, 0, 3, 2}

// PortalQuad builds a width x height rectangle in the local XY plane.
// Normals point along local -Z, matching the flipped winding.
func PortalQuad(width, height float32) *Mesh {
	hw, hh := width/2, height/2
	back := mgl32.Vec3{0, 0, -1}
	return &Mesh{
		Vertices: []mgl32.Vec3{
			{-hw, hh, 0},
			{hw, hh, 0},
			{hw, -hh, 0},
			{-hw, -hh, 0},
		},
		Normals: []mgl32.Vec3{back, back, back, back},
		UVs:     []mgl32.Vec2{{0, 0}, {1, 0}, {1, 1}, {0, 1}},
		Indices: append([]uint16(nil), quadIndices...),
	}
}

// Box builds an axis-aligned box of the given size centered on the origin,
// faces wound outward.
func Box(size mgl32.Vec3) *Mesh {
	half := size.Mul(0.5)
	m := &Mesh{}
	faces := []struct{ n, u, v mgl32.Vec3 }{
		{mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 1, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}},
		{mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
		{mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
		{mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}},
	}
	for _, f := range faces {
		boxFace(m, half, f.n, f.u, f.v)
	}
	return m
}

// boxFace appends one face; u x v == n so the corners run counter-clockwise
// seen from outside.
func boxFace(m *Mesh, half, n, u, v mgl32.Vec3) {
	scale := func(a mgl32.Vec3) mgl32.Vec3 {
		return mgl32.Vec3{a[0] * half[0], a[1] * half[1], a[2] * half[2]}
	}
	c := scale(n)
	du := scale(u)
	dv := scale(v)
	base := uint16(len(m.Vertices))
	m.Vertices = append(m.Vertices,
		c.Sub(du).Sub(dv),
		c.Add(du).Sub(dv),
		c.Add(du).Add(dv),
		c.Sub(du).Add(dv),
	)
	m.Normals = append(m.Normals, n, n, n, n)
	m.UVs = append(m.UVs, mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0}, mgl32.Vec2{1, 1}, mgl32.Vec2{0, 1})
	m.Indices = append(m.Indices, base, base+1, base+2, base, base+2, base+3)
}

// OrientedBox builds a box of the given size placed at pose.
func OrientedBox(pose geom.Pose, size mgl32.Vec3) *Mesh {
	return Box(size).Transform(pose.LocalToWorld())
}
