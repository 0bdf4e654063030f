package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
)

// Intent is one frame of player input, from the keyboard and mouse or from
// a script.
type Intent struct {
	Forward, Strafe, Vertical float32 // movement axes in [-1, 1]
	LookDX, LookDY            float32 // mouse delta in pixels
	Fov                       float32 // field of view change in radians

	Fire  [2]bool // indexed by portal.Color
	Clear [2]bool
	Reset bool
}

// step advances the session by dt seconds.
func (g *Game) step(dt float32, in Intent) {
	cfg := g.config()

	g.perfCollector.StartPhase(telemetry.PhasePlacement)
	g.shooter.Tick(dt)
	if in.Reset {
		g.Reset()
	}
	for _, c := range portal.Colors {
		if in.Clear[c] {
			g.Clear(c)
		}
	}

	g.camera.Look(in.LookDX, in.LookDY, float32(cfg.Player.MouseSensitivity))
	if in.Fov != 0 {
		g.camera.SetFov(g.camera.FovY + in.Fov)
	}

	for _, c := range portal.Colors {
		if in.Fire[c] {
			g.Fire(c)
		}
	}

	g.perfCollector.StartPhase(telemetry.PhasePortals)
	from := g.camera.Position
	g.camera.Move(in.Forward, in.Strafe, in.Vertical, float32(cfg.Player.MoveSpeed), dt)
	g.traverse(from)

	g.registry.Each(func(p *portal.Portal) {
		p.Update(dt)
	})
}

// Fire shoots the portal of color c along the player's view.
func (g *Game) Fire(c portal.Color) portal.Outcome {
	out, err := g.shooter.Fire(c, g.camera.Pose())
	g.lastOutcome, g.hasShot = out, true

	switch out {
	case portal.OutcomePlaced:
		p := g.registry.Get(c)
		surface := g.world.Name(p.Surface)
		pos := p.Pose.Position
		slog.Debug("portal placed",
			"color", c.String(),
			"surface", surface,
			"linked", p.IsLinked(),
			"x", pos.X(), "y", pos.Y(), "z", pos.Z(),
		)
		g.emit(telemetry.NewPlaceEvent(g.frame, c.String(), surface, pos.X(), pos.Y(), pos.Z()))
	case portal.OutcomeMissed:
		g.emit(telemetry.NewMissEvent(g.frame, c.String()))
	case portal.OutcomeCoolingDown:
		g.emit(telemetry.NewCooldownEvent(g.frame, c.String()))
	case portal.OutcomeRejected:
		slog.Warn("portal rejected", "color", c.String(), "error", err)
		g.emit(telemetry.NewCarveFailedEvent(g.frame, c.String(), err))
	}
	return out
}

// Clear removes the portal of color c, restoring the surface it cut.
func (g *Game) Clear(c portal.Color) {
	if g.registry.Get(c) == nil {
		return
	}
	if err := g.shooter.Remove(c); err != nil {
		slog.Warn("surface restore failed", "color", c.String(), "error", err)
	}
	g.emit(telemetry.NewRestoreEvent(g.frame, c.String()))
}

// Reset removes both portals and returns the player to the spawn point.
func (g *Game) Reset() {
	for _, c := range portal.Colors {
		g.Clear(c)
	}
	if err := g.shooter.Reset(); err != nil {
		slog.Warn("reset failed", "error", err)
	}
	g.camera.Reset()
}

// traverse moves the player through a linked portal whose rectangle the
// player crossed this frame, coming from position from.
func (g *Game) traverse(from mgl32.Vec3) bool {
	to := g.camera.Position
	var crossed *portal.Portal
	g.registry.Each(func(p *portal.Portal) {
		if crossed == nil && p.IsLinked() && p.Crossed(from, to) {
			crossed = p
		}
	})
	if crossed == nil {
		return false
	}

	g.camera.Teleport(crossed.ViewTransform(g.camera.Pose()))
	g.traversals++

	pos := g.camera.Position
	slog.Debug("portal traversed", "color", crossed.Color.String(), "x", pos.X(), "y", pos.Y(), "z", pos.Z())
	g.emit(telemetry.NewTraverseEvent(g.frame, crossed.Color.String(), pos.X(), pos.Y(), pos.Z()))
	return true
}
