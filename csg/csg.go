// Package csg implements boolean operations on closed triangle meshes using
// BSP trees. Geometry is processed in float64.
package csg

import (
	"errors"
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl32"
	"gonum.org/v1/gonum/spatial/r3"

	"github.com/pthm-cable/portals/mesh"
)

var (
	// ErrDegenerate is returned for inputs with no triangles or with
	// zero-area triangles.
	ErrDegenerate = errors.New("csg: degenerate input mesh")
	// ErrEmptyResult is returned when a subtraction removes everything.
	ErrEmptyResult = errors.New("csg: empty result")
	// ErrTooLarge is returned when the result does not fit 16-bit indices.
	ErrTooLarge = errors.New("csg: result exceeds index range")
)

// Op selects a boolean operation.
type Op uint8

const (
	OpSubtract Op = iota
	OpUnion
	OpIntersect
)

func (o Op) String() string {
	switch o {
	case OpSubtract:
		return "subtract"
	case OpUnion:
		return "union"
	case OpIntersect:
		return "intersect"
	}
	return fmt.Sprintf("op(%d)", uint8(o))
}

// Apply runs op on lhs and rhs.
func Apply(op Op, lhs, rhs *mesh.Mesh) (*mesh.Mesh, error) {
	switch op {
	case OpSubtract:
		return Subtract(lhs, rhs)
	case OpUnion:
		return Union(lhs, rhs)
	case OpIntersect:
		return Intersect(lhs, rhs)
	}
	return nil, fmt.Errorf("csg: unknown operation %v", op)
}

// Subtract returns lhs minus rhs.
func Subtract(lhs, rhs *mesh.Mesh) (*mesh.Mesh, error) {
	a, b, err := trees(lhs, rhs)
	if err != nil {
		return nil, err
	}
	a.invert()
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	a.invert()

	polys := a.allPolygons()
	if len(polys) == 0 {
		return nil, ErrEmptyResult
	}
	return toMesh(polys)
}

// Union returns the space covered by either mesh.
func Union(lhs, rhs *mesh.Mesh) (*mesh.Mesh, error) {
	a, b, err := trees(lhs, rhs)
	if err != nil {
		return nil, err
	}
	a.clipTo(b)
	b.clipTo(a)
	b.invert()
	b.clipTo(a)
	b.invert()
	a.build(b.allPolygons())
	return toMesh(a.allPolygons())
}

// Intersect returns the space covered by both meshes. Disjoint inputs give an
// empty mesh.
func Intersect(lhs, rhs *mesh.Mesh) (*mesh.Mesh, error) {
	a, b, err := trees(lhs, rhs)
	if err != nil {
		return nil, err
	}
	a.invert()
	b.clipTo(a)
	b.invert()
	a.clipTo(b)
	b.clipTo(a)
	a.build(b.allPolygons())
	a.invert()
	return toMesh(a.allPolygons())
}

func trees(lhs, rhs *mesh.Mesh) (*node, *node, error) {
	pa, err := fromMesh(lhs)
	if err != nil {
		return nil, nil, fmt.Errorf("lhs: %w", err)
	}
	pb, err := fromMesh(rhs)
	if err != nil {
		return nil, nil, fmt.Errorf("rhs: %w", err)
	}
	return newNode(pa), newNode(pb), nil
}

func fromMesh(m *mesh.Mesh) ([]polygon, error) {
	if m.TriangleCount() == 0 {
		return nil, ErrDegenerate
	}
	hasNormals := len(m.Normals) == len(m.Vertices)
	hasUVs := len(m.UVs) == len(m.Vertices)

	polys := make([]polygon, 0, m.TriangleCount())
	for i := 0; i < m.TriangleCount(); i++ {
		verts := make([]vertex, 3)
		for k := 0; k < 3; k++ {
			idx := m.Indices[3*i+k]
			v := vertex{pos: toR3(m.Vertices[idx])}
			if hasNormals {
				v.normal = toR3(m.Normals[idx])
			}
			if hasUVs {
				v.uv = [2]float64{float64(m.UVs[idx][0]), float64(m.UVs[idx][1])}
			}
			verts[k] = v
		}
		pl, ok := planeFromPoints(verts[0].pos, verts[1].pos, verts[2].pos)
		if !ok {
			return nil, fmt.Errorf("triangle %d: %w", i, ErrDegenerate)
		}
		if !hasNormals {
			for k := range verts {
				verts[k].normal = pl.normal
			}
		}
		polys = append(polys, polygon{verts: verts, plane: pl})
	}
	return polys, nil
}

// toMesh fan-triangulates the convex polygons.
func toMesh(polys []polygon) (*mesh.Mesh, error) {
	out := &mesh.Mesh{}
	for _, p := range polys {
		base := len(out.Vertices)
		if base+len(p.verts) > math.MaxUint16 {
			return nil, ErrTooLarge
		}
		for _, v := range p.verts {
			out.Vertices = append(out.Vertices, toVec3(v.pos))
			n := v.normal
			if r3.Norm(n) < epsilon {
				n = p.plane.normal
			}
			out.Normals = append(out.Normals, toVec3(r3.Unit(n)))
			out.UVs = append(out.UVs, mgl32.Vec2{float32(v.uv[0]), float32(v.uv[1])})
		}
		for k := 2; k < len(p.verts); k++ {
			out.Indices = append(out.Indices, uint16(base), uint16(base+k-1), uint16(base+k))
		}
	}
	return out, nil
}

func toR3(v mgl32.Vec3) r3.Vec {
	return r3.Vec{X: float64(v[0]), Y: float64(v[1]), Z: float64(v[2])}
}

func toVec3(v r3.Vec) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X), float32(v.Y), float32(v.Z)}
}
