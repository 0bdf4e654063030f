// Package renderer draws the level and portal screens with raylib, and
// provides headless stand-ins for runs without a window.
package renderer

import (
	"image/color"

	rl "github.com/gen2brain/raylib-go/raylib"
	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/world"
)

// MainFilter is what the player camera draws: every opaque surface on
// every layer.
var MainFilter = world.DrawFilter{
	Queue: world.QueueOpaque,
	Tags:  world.TagUnlit | world.TagLit,
	Mask:  world.AllLayers,
}

// rimWidth is the width of the colored frame around a portal, in meters.
const rimWidth = 0.06

// Scene draws the world through arbitrary views with raylib.
type Scene struct {
	world      *world.World
	Background color.RGBA

	screen        rl.Shader
	resolutionLoc int32
	portalViewLoc int32
	openScaleLoc  int32

	screenW, screenH float32
	triangles        int
	initialized      bool
}

// NewScene creates a scene renderer for w.
func NewScene(w *world.World, screenW, screenH int32) *Scene {
	return &Scene{
		world:      w,
		Background: color.RGBA{R: 24, G: 26, B: 32, A: 255},
		screenW:    float32(screenW),
		screenH:    float32(screenH),
	}
}

// Init loads shaders (must be called after raylib window is created).
func (s *Scene) Init() {
	if s.initialized {
		return
	}

	s.screen = rl.LoadShaderFromMemory(screenVS, screenFS)
	s.resolutionLoc = rl.GetShaderLocation(s.screen, "resolution")
	s.portalViewLoc = rl.GetShaderLocation(s.screen, "portalView")
	s.openScaleLoc = rl.GetShaderLocation(s.screen, "openScale")
	s.setResolution()

	s.initialized = true
}

// Resize updates the screen size used for screen-space sampling.
func (s *Scene) Resize(screenW, screenH int32) {
	s.screenW, s.screenH = float32(screenW), float32(screenH)
	if s.initialized {
		s.setResolution()
	}
}

func (s *Scene) setResolution() {
	rl.SetShaderValue(s.screen, s.resolutionLoc, []float32{s.screenW, s.screenH}, rl.ShaderUniformVec2)
}

// Triangles returns the triangles submitted since the last ResetStats.
func (s *Scene) Triangles() int { return s.triangles }

// ResetStats clears the per-frame counters.
func (s *Scene) ResetStats() { s.triangles = 0 }

// DrawScene renders the surfaces passing f into t through v.
func (s *Scene) DrawScene(v portal.View, t portal.Target, f world.DrawFilter) {
	rt, ok := t.(*Target)
	if !ok {
		return
	}
	if !s.initialized {
		s.Init()
	}

	rl.BeginTextureMode(rt.rt)
	rl.ClearBackground(s.Background)
	s.begin3D(v)
	s.drawSurfaces(Collect(s.world, f))
	rl.EndMode3D()
	rl.EndTextureMode()
}

// DrawMain renders the player's view to the current framebuffer: the level
// first, then each portal screen. debug, if set, draws extra 3D geometry in
// the same pass.
func (s *Scene) DrawMain(v portal.View, reg *portal.Registry, debug func()) {
	if !s.initialized {
		s.Init()
	}

	rl.ClearBackground(s.Background)
	s.begin3D(v)
	s.drawSurfaces(Collect(s.world, MainFilter))
	reg.Each(s.drawPortal)
	if debug != nil {
		debug()
	}
	rl.EndMode3D()
}

// begin3D enters 3D mode and replaces raylib's matrices with the view's own,
// so oblique projections survive.
func (s *Scene) begin3D(v portal.View) {
	rl.BeginMode3D(rl.Camera3D{
		Position:   toVector3(v.Pose.Position),
		Target:     toVector3(v.Pose.Position.Add(v.Pose.Forward())),
		Up:         toVector3(v.Pose.Up()),
		Fovy:       mgl32.RadToDeg(v.FovY),
		Projection: rl.CameraPerspective,
	})
	rl.SetMatrixProjection(toMatrix(v.Projection))
	rl.SetMatrixModelview(toMatrix(v.View))
}

func (s *Scene) drawSurfaces(surfaces []world.SurfaceView) {
	for _, sv := range surfaces {
		mat := sv.Material
		eachFace(sv.Mesh, mgl32.Ident4(), func(a, b, c, n mgl32.Vec3) {
			rl.DrawTriangle3D(toVector3(a), toVector3(b), toVector3(c), ShadeFace(mat, n))
		})
		s.triangles += sv.Mesh.TriangleCount()
	}
}

func (s *Scene) drawPortal(p *portal.Portal) {
	transform := p.Transform()
	tint := p.Color.Tint()

	rt, live := p.Target().(*Target)
	if p.IsLinked() && live {
		// Flush so the sampler binding applies only to the portal quad.
		rl.DrawRenderBatchActive()
		rl.BeginShaderMode(s.screen)
		rl.SetShaderValueTexture(s.screen, s.portalViewLoc, rt.Texture())
		rl.SetShaderValue(s.screen, s.openScaleLoc, []float32{p.OpenScale()}, rl.ShaderUniformFloat)
		s.drawQuad(p, transform, tint)
		rl.EndShaderMode()
	} else {
		s.drawQuad(p, transform, tint)
	}
	s.drawRim(p, transform)
}

func (s *Scene) drawQuad(p *portal.Portal, transform mgl32.Mat4, tint color.RGBA) {
	eachFace(p.Mesh, transform, func(a, b, c, _ mgl32.Vec3) {
		rl.DrawTriangle3D(toVector3(a), toVector3(b), toVector3(c), tint)
	})
	s.triangles += p.Mesh.TriangleCount()
}

// drawRim draws the frame around a portal as four thin strips just in front
// of its screen.
func (s *Scene) drawRim(p *portal.Portal, transform mgl32.Mat4) {
	hw, hh := p.Size.X()/2, p.Size.Y()/2
	const z = 0.002
	strips := [4][4]mgl32.Vec3{
		{{-hw, hh - rimWidth, z}, {hw, hh - rimWidth, z}, {hw, hh, z}, {-hw, hh, z}},
		{{-hw, -hh, z}, {hw, -hh, z}, {hw, -hh + rimWidth, z}, {-hw, -hh + rimWidth, z}},
		{{-hw, -hh, z}, {-hw + rimWidth, -hh, z}, {-hw + rimWidth, hh, z}, {-hw, hh, z}},
		{{hw - rimWidth, -hh, z}, {hw, -hh, z}, {hw, hh, z}, {hw - rimWidth, hh, z}},
	}
	rim := p.Color.RimTint()
	for _, q := range strips {
		var w [4]rl.Vector3
		for i, c := range q {
			w[i] = toVector3(mgl32.TransformCoordinate(c, transform))
		}
		rl.DrawTriangle3D(w[0], w[1], w[2], rim)
		rl.DrawTriangle3D(w[0], w[2], w[3], rim)
	}
	s.triangles += 8
}

// Unload frees resources.
func (s *Scene) Unload() {
	if s.initialized {
		rl.UnloadShader(s.screen)
		s.initialized = false
	}
}

func toVector3(v mgl32.Vec3) rl.Vector3 {
	return rl.NewVector3(v.X(), v.Y(), v.Z())
}

// toMatrix converts a column-major mgl32 matrix to raylib's layout, which
// stores columns in M0..M3, M4..M7 and so on.
func toMatrix(m mgl32.Mat4) rl.Matrix {
	return rl.Matrix{
		M0: m[0], M1: m[1], M2: m[2], M3: m[3],
		M4: m[4], M5: m[5], M6: m[6], M7: m[7],
		M8: m[8], M9: m[9], M10: m[10], M11: m[11],
		M12: m[12], M13: m[13], M14: m[14], M15: m[15],
	}
}
