package csg

import "gonum.org/v1/gonum/spatial/r3"

// epsilon is the plane thickness used to classify points as coplanar.
const epsilon = 1e-5

type vertex struct {
	pos    r3.Vec
	normal r3.Vec
	uv     [2]float64
}

func (v vertex) lerp(o vertex, t float64) vertex {
	return vertex{
		pos:    r3.Add(v.pos, r3.Scale(t, r3.Sub(o.pos, v.pos))),
		normal: r3.Add(v.normal, r3.Scale(t, r3.Sub(o.normal, v.normal))),
		uv: [2]float64{
			v.uv[0] + (o.uv[0]-v.uv[0])*t,
			v.uv[1] + (o.uv[1]-v.uv[1])*t,
		},
	}
}

type plane struct {
	normal r3.Vec
	w      float64
}

// planeFromPoints returns false for collinear points.
func planeFromPoints(a, b, c r3.Vec) (plane, bool) {
	n := r3.Cross(r3.Sub(b, a), r3.Sub(c, a))
	l := r3.Norm(n)
	if l < epsilon*epsilon {
		return plane{}, false
	}
	n = r3.Scale(1/l, n)
	return plane{normal: n, w: r3.Dot(n, a)}, true
}

func (p plane) flipped() plane {
	return plane{normal: r3.Scale(-1, p.normal), w: -p.w}
}

type polygon struct {
	verts []vertex
	plane plane
}

func (p polygon) flipped() polygon {
	verts := make([]vertex, len(p.verts))
	for i, v := range p.verts {
		v.normal = r3.Scale(-1, v.normal)
		verts[len(p.verts)-1-i] = v
	}
	return polygon{verts: verts, plane: p.plane.flipped()}
}

const (
	coplanar = 0
	front    = 1
	back     = 2
	spanning = 3
)

// split sorts poly into one of the four lists, cutting it in two when it
// spans the plane.
func (p plane) split(poly polygon, coFront, coBack, fronts, backs *[]polygon) {
	polyType := 0
	types := make([]int, len(poly.verts))
	for i, v := range poly.verts {
		t := r3.Dot(p.normal, v.pos) - p.w
		typ := coplanar
		if t < -epsilon {
			typ = back
		} else if t > epsilon {
			typ = front
		}
		polyType |= typ
		types[i] = typ
	}

	switch polyType {
	case coplanar:
		if r3.Dot(p.normal, poly.plane.normal) > 0 {
			*coFront = append(*coFront, poly)
		} else {
			*coBack = append(*coBack, poly)
		}
	case front:
		*fronts = append(*fronts, poly)
	case back:
		*backs = append(*backs, poly)
	case spanning:
		var f, b []vertex
		n := len(poly.verts)
		for i := 0; i < n; i++ {
			j := (i + 1) % n
			ti, tj := types[i], types[j]
			vi, vj := poly.verts[i], poly.verts[j]
			if ti != back {
				f = append(f, vi)
			}
			if ti != front {
				b = append(b, vi)
			}
			if ti|tj == spanning {
				t := (p.w - r3.Dot(p.normal, vi.pos)) / r3.Dot(p.normal, r3.Sub(vj.pos, vi.pos))
				v := vi.lerp(vj, t)
				f = append(f, v)
				b = append(b, v)
			}
		}
		// fragments keep the parent plane; recomputing it from slivers is unstable
		if len(f) >= 3 {
			*fronts = append(*fronts, polygon{verts: f, plane: poly.plane})
		}
		if len(b) >= 3 {
			*backs = append(*backs, polygon{verts: b, plane: poly.plane})
		}
	}
}

// node is a BSP tree node. Polygons coplanar with the node's plane live on
// the node itself.
type node struct {
	plane       *plane
	front, back *node
	polys       []polygon
}

func newNode(polys []polygon) *node {
	n := &node{}
	n.build(polys)
	return n
}

func (n *node) build(polys []polygon) {
	if len(polys) == 0 {
		return
	}
	if n.plane == nil {
		pl := polys[0].plane
		n.plane = &pl
	}
	var fronts, backs []polygon
	for _, p := range polys {
		n.plane.split(p, &n.polys, &n.polys, &fronts, &backs)
	}
	if len(fronts) > 0 {
		if n.front == nil {
			n.front = &node{}
		}
		n.front.build(fronts)
	}
	if len(backs) > 0 {
		if n.back == nil {
			n.back = &node{}
		}
		n.back.build(backs)
	}
}

// invert turns solid space into empty space and back.
func (n *node) invert() {
	for i, p := range n.polys {
		n.polys[i] = p.flipped()
	}
	if n.plane != nil {
		fl := n.plane.flipped()
		n.plane = &fl
	}
	if n.front != nil {
		n.front.invert()
	}
	if n.back != nil {
		n.back.invert()
	}
	n.front, n.back = n.back, n.front
}

// clipPolygons removes the parts of polys that are inside this tree.
func (n *node) clipPolygons(polys []polygon) []polygon {
	if n.plane == nil {
		return append([]polygon(nil), polys...)
	}
	var fronts, backs []polygon
	for _, p := range polys {
		n.plane.split(p, &fronts, &backs, &fronts, &backs)
	}
	if n.front != nil {
		fronts = n.front.clipPolygons(fronts)
	}
	if n.back != nil {
		backs = n.back.clipPolygons(backs)
	} else {
		backs = nil
	}
	return append(fronts, backs...)
}

// clipTo removes all polygons in this tree that are inside other.
func (n *node) clipTo(other *node) {
	n.polys = other.clipPolygons(n.polys)
	if n.front != nil {
		n.front.clipTo(other)
	}
	if n.back != nil {
		n.back.clipTo(other)
	}
}

func (n *node) allPolygons() []polygon {
	out := append([]polygon(nil), n.polys...)
	if n.front != nil {
		out = append(out, n.front.allPolygons()...)
	}
	if n.back != nil {
		out = append(out, n.back.allPolygons()...)
	}
	return out
}
