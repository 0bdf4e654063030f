// Package game drives a portal sandbox session: it owns the level, the portal
// registry and shooter, the player camera and the renderers, and runs one
// frame per Update/Draw (or UpdateHeadless) call.
package game

import (
	"log/slog"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/camera"
	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/renderer"
	"github.com/pthm-cable/portals/telemetry"
	"github.com/pthm-cable/portals/ui"
	"github.com/pthm-cable/portals/world"
)

// Game holds the complete session state.
type Game struct {
	cfg *config.Config

	world    *world.World
	room     world.Room
	registry *portal.Registry
	shooter  *portal.Shooter
	pass     *portal.RenderPass
	camera   *camera.Camera

	// Graphical mode
	scene    *renderer.Scene
	targets  renderer.Targets
	overlays *ui.OverlayRegistry
	hud      *ui.HUD

	// Headless mode
	headless        bool
	script          Script
	headlessScene   *renderer.HeadlessScene
	headlessTargets *renderer.HeadlessTargets

	// State
	frame       int32
	lastOutcome portal.Outcome
	hasShot     bool
	lastPass    portal.PassStats
	traversals  int

	// Window dimensions
	screenWidth, screenHeight float32

	// Telemetry
	collector     *telemetry.Collector
	perfCollector *telemetry.PerfCollector
	outputManager *telemetry.OutputManager
	logStats      bool
	statsCallback func(telemetry.WindowStats)
	eventCallback func(telemetry.Event)
}

// NewGame creates a graphical session with default options.
func NewGame() *Game {
	return NewGameWithOptions(Options{})
}

// NewGameWithOptions creates a session. Graphical sessions must be created
// after the raylib window.
func NewGameWithOptions(opts Options) *Game {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.Cfg()
	}

	g := &Game{
		cfg:           cfg,
		world:         world.New(),
		registry:      portal.NewRegistry(),
		headless:      opts.Headless,
		screenWidth:   cfg.Derived.ScreenW32,
		screenHeight:  cfg.Derived.ScreenH32,
		logStats:      opts.LogStats,
		statsCallback: opts.StatsCallback,
		eventCallback: opts.EventCallback,
	}

	lv := cfg.Level
	g.room = world.BuildRoom(g.world, world.RoomSpec{
		Width:         float32(lv.Width),
		Height:        float32(lv.Height),
		Depth:         float32(lv.Depth),
		WallThickness: float32(lv.WallThickness),
		Pillars:       lv.Pillars,
		PillarSize:    float32(lv.PillarSize),
	})

	g.shooter = portal.NewShooter(shooterConfig(cfg), g.world, g.registry)
	g.pass = portal.NewRenderPass(g.registry, cfg.Render.Culling)
	g.camera = newPlayerCamera(cfg)

	g.overlays = ui.NewOverlayRegistry()
	g.overlays.SetEnabled(ui.OverlayHUD, cfg.Render.ShowHUD)
	g.overlays.SetEnabled(ui.OverlayCrosshair, cfg.Render.Crosshair)
	g.overlays.SetEnabled(ui.OverlayCulling, cfg.Render.Culling)

	if g.headless {
		g.script = DemoScript(float32(cfg.Player.MouseSensitivity))
		g.headlessScene = renderer.NewHeadlessScene(g.world)
		g.headlessTargets = &renderer.HeadlessTargets{}
	} else {
		g.scene = renderer.NewScene(g.world, int32(g.screenWidth), int32(g.screenHeight))
		g.hud = ui.NewHUD(g.overlays)
	}

	statsWindow := opts.StatsWindowSec
	if statsWindow <= 0 {
		statsWindow = cfg.Telemetry.StatsWindow
	}
	g.collector = telemetry.NewCollector(statsWindow, DT)
	g.perfCollector = telemetry.NewPerfCollector(int(g.collector.WindowDurationFrames()))

	if opts.OutputDir != "" {
		om, err := telemetry.NewOutputManager(opts.OutputDir)
		if err != nil {
			slog.Error("failed to create output manager", "error", err)
		} else {
			g.outputManager = om
			if err := om.WriteConfig(cfg); err != nil {
				slog.Error("failed to write config", "error", err)
			}
		}
	}

	return g
}

// shooterConfig maps the portal config section onto the shooter.
func shooterConfig(cfg *config.Config) portal.ShooterConfig {
	p := cfg.Portal
	return portal.ShooterConfig{
		Size:         mgl32.Vec2{float32(p.Width), float32(p.Height)},
		Cooldown:     float32(p.Cooldown),
		MaxDistance:  float32(p.MaxDistance),
		SpawnOffset:  float32(p.SpawnOffset),
		CarveMargin:  float32(p.CarveMargin),
		OpenDuration: float32(p.OpenDuration),
		BlockMask:    cfg.Derived.BlockMask,
		SurfaceMask:  cfg.Derived.SurfaceMask,
	}
}

// SpawnPoint is the player's start position: off-center in the back half of
// the room, clear of the pillar ring's axes.
func SpawnPoint(cfg *config.Config) mgl32.Vec3 {
	return mgl32.Vec3{
		-float32(cfg.Level.Width) / 6,
		float32(cfg.Player.EyeHeight),
		-float32(cfg.Level.Depth) / 3,
	}
}

func newPlayerCamera(cfg *config.Config) *camera.Camera {
	d := cfg.Derived
	cam := camera.New(SpawnPoint(cfg), d.ScreenW32, d.ScreenH32, d.FovRad)
	cam.Near = float32(cfg.Player.Near)
	cam.Far = float32(cfg.Player.Far)
	cam.PitchLimit = d.PitchRad
	cam.MinFov = mgl32.DegToRad(float32(cfg.Player.MinFov))
	cam.MaxFov = mgl32.DegToRad(float32(cfg.Player.MaxFov))
	cam.SetHome()
	return cam
}

// config returns the session config.
func (g *Game) config() *config.Config {
	return g.cfg
}

// Frame returns the number of completed frames.
func (g *Game) Frame() int32 {
	return g.frame
}

// World returns the level.
func (g *Game) World() *world.World {
	return g.world
}

// Room returns the handles of the level's room surfaces.
func (g *Game) Room() world.Room {
	return g.room
}

// Registry returns the portal slots.
func (g *Game) Registry() *portal.Registry {
	return g.registry
}

// Camera returns the player camera.
func (g *Game) Camera() *camera.Camera {
	return g.camera
}

// LastPass returns the render pass result of the last frame.
func (g *Game) LastPass() portal.PassStats {
	return g.lastPass
}

// Traversals returns how many times the player passed through a portal.
func (g *Game) Traversals() int {
	return g.traversals
}

// Unload releases all resources.
func (g *Game) Unload() {
	g.registry.Clear()
	if g.scene != nil {
		g.scene.Unload()
	}
	if err := g.outputManager.Close(); err != nil {
		slog.Error("failed to close output files", "error", err)
	}
}
