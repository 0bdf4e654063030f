package portal

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/csg"
	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/mesh"
	"github.com/pthm-cable/portals/world"
)

// ErrCarveFailed is returned when the cutout for a portal cannot be computed.
// The level is left untouched.
var ErrCarveFailed = errors.New("portal: carve failed")

// ErrEdgeHit is returned for a shot that lands on a narrow face of a
// surface, such as the side of a wall or the rim of an existing hole.
var ErrEdgeHit = errors.New("portal: hit a surface edge")

// CarveRecord remembers what a slot's cut changed in the level.
type CarveRecord struct {
	Original      world.SurfaceID
	Replacement   world.SurfaceID
	OriginalLayer world.LayerID
}

// surfaceEdit tracks every slot cutting one original surface. Both slots
// share one replacement mesh.
type surfaceEdit struct {
	original    world.SurfaceID
	layer       world.LayerID
	replacement world.SurfaceID
	cutouts     [2]*mesh.Mesh
}

func (e *surfaceEdit) empty() bool {
	return e.cutouts[Red] == nil && e.cutouts[Blue] == nil
}

// Carver cuts portal-shaped holes into level surfaces and restores them.
type Carver struct {
	world   *world.World
	edits   map[world.SurfaceID]*surfaceEdit
	records [2]*CarveRecord

	// Margin extends cutout boxes past both faces of the surface.
	Margin float32
}

// NewCarver returns a carver operating on w.
func NewCarver(w *world.World, margin float32) *Carver {
	return &Carver{
		world:  w,
		edits:  make(map[world.SurfaceID]*surfaceEdit),
		Margin: margin,
	}
}

// Record returns the carve record of slot c, or nil.
func (cv *Carver) Record(c Color) *CarveRecord {
	return cv.records[c]
}

// Resolve maps a hit surface to the untouched original it was generated
// from. Surfaces that are not replacements resolve to themselves.
func (cv *Carver) Resolve(id world.SurfaceID) world.SurfaceID {
	if from, ok := cv.world.CarvedFrom(id); ok {
		return from
	}
	return id
}

// FacesSurface reports whether a portal facing normal lies on a broad face
// of original: the surface must be no deeper along normal than it is along
// either of the portal's in-plane axes. Hits on the inner walls of an
// existing hole fail this test.
func (cv *Carver) FacesSurface(original world.SurfaceID, right, up, normal mgl32.Vec3) bool {
	b := cv.world.Bounds(original)
	depth := b.ExtentAlong(normal)
	return depth <= b.ExtentAlong(right) && depth <= b.ExtentAlong(up)
}

// Cutout builds the box removed from original for a portal at pose.
func (cv *Carver) Cutout(original world.SurfaceID, pose geom.Pose, size mgl32.Vec2) *mesh.Mesh {
	normal := pose.Forward()
	depth := cv.world.Bounds(original).ExtentAlong(normal)
	box := geom.Pose{
		Position: pose.Position.Sub(normal.Mul(depth / 2)),
		Rotation: pose.Rotation,
	}
	return mesh.OrientedBox(box, mgl32.Vec3{size.X(), size.Y(), depth + 2*cv.Margin})
}

type carvePlan struct {
	target     *surfaceEdit
	targetMesh *mesh.Mesh

	// previous is the surface slot c cut before, when it differs from the
	// target. previousMesh is nil when no cut remains on it.
	previous     *surfaceEdit
	previousMesh *mesh.Mesh
}

// Carve cuts cutout into original on behalf of slot c, moving c's previous
// cut if it had one. All meshes are computed before the level is changed.
func (cv *Carver) Carve(c Color, original world.SurfaceID, cutout *mesh.Mesh) (CarveRecord, error) {
	plan, err := cv.plan(c, original, cutout)
	if err != nil {
		return CarveRecord{}, err
	}

	if prev := plan.previous; prev != nil {
		prev.cutouts[c] = nil
		cv.apply(prev, plan.previousMesh)
	}

	edit := plan.target
	if _, ok := cv.edits[original]; !ok {
		edit.layer = cv.world.Layer(original)
		cv.edits[original] = edit
	}
	edit.cutouts[c] = cutout
	cv.apply(edit, plan.targetMesh)

	rec := &CarveRecord{Original: original, Replacement: edit.replacement, OriginalLayer: edit.layer}
	cv.records[c] = rec
	return *rec, nil
}

func (cv *Carver) plan(c Color, original world.SurfaceID, cutout *mesh.Mesh) (carvePlan, error) {
	edit, ok := cv.edits[original]
	if !ok {
		edit = &surfaceEdit{original: original}
	}
	cuts := edit.cutouts
	cuts[c] = cutout

	target, err := cv.subtractAll(original, cuts)
	if err != nil {
		return carvePlan{}, fmt.Errorf("%w: %s: %w", ErrCarveFailed, cv.world.Name(original), err)
	}
	plan := carvePlan{target: edit, targetMesh: target}

	if rec := cv.records[c]; rec != nil && rec.Original != original {
		prev := cv.edits[rec.Original]
		rest := prev.cutouts
		rest[c] = nil
		plan.previous = prev
		if rest[Red] != nil || rest[Blue] != nil {
			plan.previousMesh, err = cv.subtractAll(rec.Original, rest)
			if err != nil {
				return carvePlan{}, fmt.Errorf("%w: %s: %w", ErrCarveFailed, cv.world.Name(rec.Original), err)
			}
		}
	}
	return plan, nil
}

func (cv *Carver) subtractAll(original world.SurfaceID, cuts [2]*mesh.Mesh) (*mesh.Mesh, error) {
	out := cv.world.Mesh(original)
	for _, cut := range cuts {
		if cut == nil {
			continue
		}
		next, err := csg.Subtract(out, cut)
		if err != nil {
			return nil, err
		}
		out = next
	}
	return out, nil
}

// apply brings the level in line with edit: hidden original plus replacement
// while cuts remain, the untouched original otherwise.
func (cv *Carver) apply(edit *surfaceEdit, m *mesh.Mesh) {
	if edit.empty() || m == nil {
		if cv.world.Alive(edit.replacement) {
			cv.world.Remove(edit.replacement)
		}
		edit.replacement = world.SurfaceID{}
		cv.world.SetVisible(edit.original, true)
		cv.world.SetLayer(edit.original, edit.layer)
		delete(cv.edits, edit.original)
		return
	}

	if cv.world.Alive(edit.replacement) {
		cv.world.Replace(edit.replacement, m)
	} else {
		edit.replacement = cv.world.SpawnCarved(edit.original, m)
	}
	cv.world.SetVisible(edit.original, false)
	cv.world.SetLayer(edit.original, world.LayerPortalSurface)
	cv.world.SetLayer(edit.replacement, world.LayerPortalSurface)
}

// Restore removes slot c's cut. The original surface reappears once no cut
// remains on it. If the remaining cut cannot be recomputed the surface is
// left as it was and the error is returned.
func (cv *Carver) Restore(c Color) error {
	rec := cv.records[c]
	if rec == nil {
		return nil
	}
	edit := cv.edits[rec.Original]
	rest := edit.cutouts
	rest[c] = nil

	var m *mesh.Mesh
	if rest[Red] != nil || rest[Blue] != nil {
		var err error
		m, err = cv.subtractAll(rec.Original, rest)
		if err != nil {
			return fmt.Errorf("%w: restore %s: %w", ErrCarveFailed, cv.world.Name(rec.Original), err)
		}
	}
	edit.cutouts[c] = nil
	cv.apply(edit, m)
	cv.records[c] = nil

	for _, other := range Colors {
		if r := cv.records[other]; r != nil && r.Original == rec.Original {
			r.Replacement = edit.replacement
		}
	}
	return nil
}
