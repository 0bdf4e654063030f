package game

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
)

// Capture plays the first frames of the demo script on a graphical session
// and renders the player view off-screen. The caller owns the returned
// image. Requires an open raylib window.
func (g *Game) Capture(frames int32) (*rl.Image, portal.PassStats) {
	script := DemoScript(float32(g.config().Player.MouseSensitivity))

	var pass portal.PassStats
	for g.frame < frames {
		g.perfCollector.StartFrame()
		g.perfCollector.StartPhase(telemetry.PhaseInput)
		g.step(DT, script.At(g.frame))

		g.perfCollector.StartPhase(telemetry.PhasePortalPass)
		g.scene.ResetStats()
		pass = g.renderPortals(g.targets, g.scene)
		g.endFrame(pass)
	}
	if frames <= 0 {
		pass = g.renderPortals(g.targets, g.scene)
	}

	rt := rl.LoadRenderTexture(int32(g.screenWidth), int32(g.screenHeight))
	defer rl.UnloadRenderTexture(rt)

	rl.BeginTextureMode(rt)
	g.scene.DrawMain(g.mainView(), g.registry, g.drawDebug)
	rl.EndTextureMode()

	// Render textures are stored bottom-up.
	img := rl.LoadImageFromTexture(rt.Texture)
	rl.ImageFlipVertical(img)
	return img, pass
}
