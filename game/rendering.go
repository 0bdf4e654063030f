package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
	"github.com/pthm-cable/portals/ui"
	"github.com/pthm-cable/portals/world"
)

var (
	boundsColor    = rl.Color{R: 255, G: 220, B: 60, A: 255}
	hitColor       = rl.Color{R: 255, G: 255, B: 255, A: 255}
	carvedHitColor = rl.Color{R: 120, G: 255, B: 160, A: 255}
)

// Update advances one graphical frame using the window's input and clock.
func (g *Game) Update() {
	g.perfCollector.StartFrame()
	g.perfCollector.StartPhase(telemetry.PhaseInput)
	g.step(rl.GetFrameTime(), g.readInput())
}

// Draw renders the portal views, then the player view and HUD, and closes
// the frame started by Update.
func (g *Game) Draw() {
	g.perfCollector.StartPhase(telemetry.PhasePortalPass)
	g.scene.ResetStats()
	pass := g.renderPortals(g.targets, g.scene)

	g.perfCollector.StartPhase(telemetry.PhaseScene)
	rl.BeginDrawing()
	g.scene.DrawMain(g.mainView(), g.registry, g.drawDebug)

	g.perfCollector.StartPhase(telemetry.PhaseHUD)
	actions := g.hud.Draw(g.hudData(pass))
	rl.EndDrawing()
	g.applyHUDActions(actions)

	g.endFrame(pass)
	g.perfCollector.RecordPresent()
}

// renderPortals runs the portal render pass for the player's current view.
func (g *Game) renderPortals(targets portal.TargetAllocator, scene portal.SceneRenderer) portal.PassStats {
	scale := float32(g.config().Render.TargetScale)
	if scale <= 0 {
		scale = 1
	}
	return g.pass.Execute(portal.RenderContext{
		Player:     g.camera.Pose(),
		Projection: g.camera.Projection(),
		Width:      max(1, int(g.screenWidth*scale)),
		Height:     max(1, int(g.screenHeight*scale)),
		Targets:    targets,
		Scene:      scene,
	})
}

// mainView resolves the player camera into a scene view.
func (g *Game) mainView() portal.View {
	pose := g.camera.Pose()
	return portal.View{
		Pose:       pose,
		View:       pose.ViewMatrix(),
		Projection: g.camera.Projection().Matrix(),
		FovY:       g.camera.FovY,
	}
}

// drawDebug draws the 3D debug overlays inside the main pass.
func (g *Game) drawDebug() {
	if g.overlays.IsEnabled(ui.OverlayPortalBounds) {
		g.registry.Each(func(p *portal.Portal) {
			b := p.Bounds()
			rl.DrawBoundingBox(rl.BoundingBox{Min: vec3(b.Min), Max: vec3(b.Max)}, boundsColor)
		})
	}
	if g.overlays.IsEnabled(ui.OverlayHitMarker) {
		if hit, ok := g.aim(); ok {
			c := hitColor
			if g.world.Layer(hit.Surface) == world.LayerPortalSurface {
				c = carvedHitColor
			}
			rl.DrawSphere(vec3(hit.Point), 0.05, c)
		}
	}
}

// aim returns where a shot fired now would first hit the level.
func (g *Game) aim() (world.Hit, bool) {
	cfg := g.config()
	return g.world.Raycast(rayFrom(g.camera.Pose()), float32(cfg.Portal.MaxDistance), cfg.Derived.BlockMask)
}

// hudData collects the HUD state for this frame.
func (g *Game) hudData(pass portal.PassStats) ui.HUDData {
	cfg := g.config()
	d := ui.HUDData{
		Title:        "Portals",
		FPS:          rl.GetFPS(),
		Frame:        g.frame,
		ScreenWidth:  int32(g.screenWidth),
		ScreenHeight: int32(g.screenHeight),
		Cooldown:     1 - g.shooter.CooldownFraction(),
		Fov:          mgl32.RadToDeg(g.camera.FovY),
		MinFov:       float32(cfg.Player.MinFov),
		MaxFov:       float32(cfg.Player.MaxFov),
		Culling:      g.pass.Culling,
		Pass:         pass,
		Surfaces:     g.world.Count(),
		Triangles:    g.scene.Triangles(),
	}
	for _, c := range portal.Colors {
		d.Slots[c] = g.slotStatus(c)
	}
	if g.hasShot {
		d.LastOutcome = g.lastOutcome.String()
	}
	return d
}

// slotStatus describes the portal slot of color c.
func (g *Game) slotStatus(c portal.Color) ui.SlotStatus {
	s := ui.SlotStatus{Color: c}
	p := g.registry.Get(c)
	if p == nil {
		return s
	}
	s.Placed = true
	s.Linked = p.IsLinked()
	s.Surface = g.world.Name(p.Surface)
	s.OpenScale = p.OpenScale()
	return s
}

func vec3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}
