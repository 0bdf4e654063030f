// Package mesh holds the indexed triangle meshes used for level surfaces,
// portal quads and carving volumes.
package mesh

import (
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
)

// Mesh is an indexed triangle list. Front faces wind counter-clockwise.
type Mesh struct {
	Vertices []mgl32.Vec3
	Normals  []mgl32.Vec3
	UVs      []mgl32.Vec2
	Indices  []uint16
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	if m == nil {
		return 0
	}
	return len(m.Indices) / 3
}

// Triangle returns the corners of triangle i.
func (m *Mesh) Triangle(i int) (a, b, c mgl32.Vec3) {
	return m.Vertices[m.Indices[3*i]], m.Vertices[m.Indices[3*i+1]], m.Vertices[m.Indices[3*i+2]]
}

// Bounds returns the bounding box of all vertices.
func (m *Mesh) Bounds() geom.AABB {
	b := geom.EmptyAABB()
	for _, v := range m.Vertices {
		b = b.Extend(v)
	}
	return b
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	out := &Mesh{
		Vertices: make([]mgl32.Vec3, len(m.Vertices)),
		Normals:  make([]mgl32.Vec3, len(m.Normals)),
		UVs:      make([]mgl32.Vec2, len(m.UVs)),
		Indices:  make([]uint16, len(m.Indices)),
	}
	copy(out.Vertices, m.Vertices)
	copy(out.Normals, m.Normals)
	copy(out.UVs, m.UVs)
	copy(out.Indices, m.Indices)
	return out
}

// Transform returns a copy of the mesh with positions transformed by mat and
// normals by its inverse transpose.
func (m *Mesh) Transform(mat mgl32.Mat4) *Mesh {
	out := m.Clone()
	normalMat := mat.Mat3().Inv().Transpose()
	for i, v := range out.Vertices {
		out.Vertices[i] = mgl32.TransformCoordinate(v, mat)
	}
	for i, n := range out.Normals {
		out.Normals[i] = geom.SafeNormalize(normalMat.Mul3x1(n))
	}
	return out
}

// Equal reports whether two meshes have identical buffers.
func (m *Mesh) Equal(o *Mesh) bool {
	if m == nil || o == nil {
		return m == o
	}
	if len(m.Vertices) != len(o.Vertices) || len(m.Indices) != len(o.Indices) ||
		len(m.Normals) != len(o.Normals) || len(m.UVs) != len(o.UVs) {
		return false
	}
	for i := range m.Vertices {
		if m.Vertices[i] != o.Vertices[i] {
			return false
		}
	}
	for i := range m.Normals {
		if m.Normals[i] != o.Normals[i] {
			return false
		}
	}
	for i := range m.UVs {
		if m.UVs[i] != o.UVs[i] {
			return false
		}
	}
	for i := range m.Indices {
		if m.Indices[i] != o.Indices[i] {
			return false
		}
	}
	return true
}

// Raycast returns the nearest hit distance of r against the mesh triangles.
func (m *Mesh) Raycast(r geom.Ray) (dist float32, tri int, ok bool) {
	tri = -1
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		if d, hit := r.IntersectTriangle(a, b, c); hit && (!ok || d < dist) {
			dist, tri, ok = d, i, true
		}
	}
	return dist, tri, ok
}

// FaceNormal returns the geometric normal of triangle i.
func (m *Mesh) FaceNormal(i int) mgl32.Vec3 {
	a, b, c := m.Triangle(i)
	return geom.SafeNormalize(b.Sub(a).Cross(c.Sub(a)))
}
