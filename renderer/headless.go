package renderer

import (
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/world"
)

// HeadlessDraw records one DrawScene call.
type HeadlessDraw struct {
	View      portal.View
	Target    portal.Target
	Surfaces  []world.SurfaceView
	Triangles int
}

// HeadlessScene resolves draws against the world without touching the GPU.
// Used for headless runs and tests.
type HeadlessScene struct {
	world *world.World
	draws []HeadlessDraw
}

// NewHeadlessScene creates a headless scene renderer for w.
func NewHeadlessScene(w *world.World) *HeadlessScene {
	return &HeadlessScene{world: w}
}

// DrawScene records the surfaces a real draw would submit.
func (h *HeadlessScene) DrawScene(v portal.View, t portal.Target, f world.DrawFilter) {
	surfaces := Collect(h.world, f)
	h.draws = append(h.draws, HeadlessDraw{
		View:      v,
		Target:    t,
		Surfaces:  surfaces,
		Triangles: Triangles(surfaces),
	})
}

// Draws returns the draws recorded since the last ResetStats.
func (h *HeadlessScene) Draws() []HeadlessDraw { return h.draws }

// Triangles returns the triangles submitted since the last ResetStats.
func (h *HeadlessScene) Triangles() int {
	n := 0
	for _, d := range h.draws {
		n += d.Triangles
	}
	return n
}

// ResetStats clears the recorded draws.
func (h *HeadlessScene) ResetStats() { h.draws = h.draws[:0] }
