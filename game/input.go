package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/ui"
)

// fovStep is the field of view change per mouse wheel notch.
var fovStep = mgl32.DegToRad(5)

// readInput turns this frame's keyboard and mouse state into an Intent and
// handles the toggles that do not affect the simulation.
func (g *Game) readInput() Intent {
	var in Intent

	g.handleResize()

	if rl.IsKeyPressed(rl.KeyF11) {
		rl.ToggleFullscreen()
	}

	for key := rl.GetKeyPressed(); key != 0; key = rl.GetKeyPressed() {
		id, on, ok := g.overlays.HandleKeyPress(key)
		if !ok {
			continue
		}
		switch id {
		case ui.OverlayCulling:
			g.pass.Culling = on
		case ui.OverlayControls:
			g.setCursorFree(on)
		}
	}

	// The cursor drives raygui while the controls panel is open.
	if g.overlays.IsEnabled(ui.OverlayControls) {
		return in
	}

	if rl.IsKeyDown(rl.KeyW) {
		in.Forward++
	}
	if rl.IsKeyDown(rl.KeyS) {
		in.Forward--
	}
	if rl.IsKeyDown(rl.KeyD) {
		in.Strafe++
	}
	if rl.IsKeyDown(rl.KeyA) {
		in.Strafe--
	}
	if rl.IsKeyDown(rl.KeySpace) {
		in.Vertical++
	}
	if rl.IsKeyDown(rl.KeyLeftControl) {
		in.Vertical--
	}

	delta := rl.GetMouseDelta()
	in.LookDX, in.LookDY = delta.X, delta.Y
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		in.Fov = -wheel * fovStep
	}

	in.Fire[portal.Red] = rl.IsMouseButtonPressed(rl.MouseButtonLeft)
	in.Fire[portal.Blue] = rl.IsMouseButtonPressed(rl.MouseButtonRight)
	in.Clear[portal.Red] = rl.IsKeyPressed(rl.KeyQ)
	in.Clear[portal.Blue] = rl.IsKeyPressed(rl.KeyE)
	in.Reset = rl.IsKeyPressed(rl.KeyR)

	return in
}

// setCursorFree releases the mouse for the controls panel, or captures it
// for mouse look.
func (g *Game) setCursorFree(free bool) {
	if free {
		rl.EnableCursor()
	} else {
		rl.DisableCursor()
	}
}

// handleResize checks for window resize and propagates new dimensions.
// Portal targets follow on their next render.
func (g *Game) handleResize() {
	if !rl.IsWindowResized() {
		return
	}
	w := float32(rl.GetScreenWidth())
	h := float32(rl.GetScreenHeight())
	if w == g.screenWidth && h == g.screenHeight {
		return
	}
	g.screenWidth = w
	g.screenHeight = h

	g.camera.Resize(w, h)
	if g.scene != nil {
		g.scene.Resize(int32(w), int32(h))
	}
}

// applyHUDActions applies settings changed through the HUD widgets.
func (g *Game) applyHUDActions(a ui.HUDActions) {
	if a.Fov > 0 && a.Fov != mgl32.RadToDeg(g.camera.FovY) {
		g.camera.SetFov(mgl32.DegToRad(a.Fov))
	}
	if a.ToggleCulling {
		g.pass.Culling = g.overlays.Toggle(ui.OverlayCulling)
	}
	if a.ClearPortals {
		for _, c := range portal.Colors {
			g.Clear(c)
		}
	}
	if a.Reset {
		g.Reset()
	}
}
