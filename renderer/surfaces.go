package renderer

import (
	"image/color"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/mesh"
	"github.com/pthm-cable/portals/world"
)

// lightDir is the direction toward the key light used by lit materials.
var lightDir = mgl32.Vec3{0.4, 1, 0.3}.Normalize()

const ambient = 0.35

// Collect returns the visible surfaces that pass f, in ECS order.
func Collect(w *world.World, f world.DrawFilter) []world.SurfaceView {
	var out []world.SurfaceView
	w.Each(func(s world.SurfaceView) {
		if s.Material.Passes(f, s.Layer) {
			out = append(out, s)
		}
	})
	return out
}

// Triangles counts the triangles of the given surfaces.
func Triangles(surfaces []world.SurfaceView) int {
	n := 0
	for _, s := range surfaces {
		n += s.Mesh.TriangleCount()
	}
	return n
}

// ShadeFace returns the flat color of a face with normal n.
func ShadeFace(m world.Material, n mgl32.Vec3) color.RGBA {
	var k float32
	if m.Tags&world.TagLit != 0 {
		k = ambient + (1-ambient)*math32.Max(0, n.Dot(lightDir))
	} else {
		// Unlit faces get a fixed per-axis tone so corners stay readable.
		k = 1 - 0.12*math32.Abs(n.X()) - 0.24*math32.Abs(n.Z())
	}
	return scaleColor(m.Color, k)
}

func scaleColor(c color.RGBA, k float32) color.RGBA {
	s := func(v uint8) uint8 {
		return uint8(math32.Min(255, float32(v)*k))
	}
	return color.RGBA{R: s(c.R), G: s(c.G), B: s(c.B), A: c.A}
}

// eachFace calls fn with the world-space corners and normal of each
// triangle of m after applying transform.
func eachFace(m *mesh.Mesh, transform mgl32.Mat4, fn func(a, b, c, n mgl32.Vec3)) {
	for i := 0; i < m.TriangleCount(); i++ {
		a, b, c := m.Triangle(i)
		a = mgl32.TransformCoordinate(a, transform)
		b = mgl32.TransformCoordinate(b, transform)
		c = mgl32.TransformCoordinate(c, transform)
		n := b.Sub(a).Cross(c.Sub(a))
		if l := n.Len(); l > 0 {
			n = n.Mul(1 / l)
		}
		fn(a, b, c, n)
	}
}
