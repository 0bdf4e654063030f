package game

import (
	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/telemetry"
)

// UpdateHeadless runs one frame of the demo script at the fixed step,
// including the portal render pass against the headless renderer.
func (g *Game) UpdateHeadless() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	in := g.script.At(g.frame)
	g.step(DT, in)

	g.perfCollector.StartPhase(telemetry.PhasePortalPass)
	g.headlessScene.ResetStats()
	pass := g.renderPortals(g.headlessTargets, g.headlessScene)

	g.endFrame(pass)
}

// SetScript replaces the headless input script.
func (g *Game) SetScript(s Script) {
	g.script = s
}

// LiveTargets returns the number of unreleased headless render targets.
func (g *Game) LiveTargets() int {
	if g.headlessTargets == nil {
		return 0
	}
	return g.headlessTargets.Live()
}

func rayFrom(p geom.Pose) geom.Ray {
	return geom.Ray{Origin: p.Position, Dir: p.Forward()}
}
