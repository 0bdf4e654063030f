package game

import (
	"testing"

	"github.com/chewxy/math32"

	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
)

func newHeadless(t *testing.T, opts Options) *Game {
	t.Helper()
	cfg, err := config.Load("")
	if err != nil {
		t.Fatalf("config.Load: %v", err)
	}
	opts.Config = cfg
	opts.Headless = true
	g := NewGameWithOptions(opts)
	t.Cleanup(g.Unload)
	return g
}

func runFrames(g *Game, n int) {
	for i := 0; i < n; i++ {
		g.UpdateHeadless()
	}
}

func TestDemoScenario(t *testing.T) {
	var events []telemetry.Event
	g := newHeadless(t, Options{EventCallback: func(e telemetry.Event) {
		events = append(events, e)
	}})
	room := g.Room()

	runFrames(g, demoFireRed+1)
	red := g.Registry().Get(portal.Red)
	if red == nil {
		t.Fatal("red portal not placed")
	}
	if red.Surface != room.Walls[0] {
		t.Errorf("red landed on %q, want wall +Z", g.World().Name(red.Surface))
	}

	runFrames(g, demoFireBlue+1-int(g.Frame()))
	blue := g.Registry().Get(portal.Blue)
	if blue == nil {
		t.Fatal("blue portal not placed")
	}
	if blue.Surface != room.Walls[2] {
		t.Errorf("blue landed on %q, want wall +X", g.World().Name(blue.Surface))
	}
	if !g.Registry().Linked() {
		t.Fatal("portals not linked")
	}
	if got := g.LastPass().Rendered; got != 2 {
		t.Errorf("views rendered = %d, want 2", got)
	}
	if got := g.LiveTargets(); got != 2 {
		t.Errorf("live targets = %d, want 2", got)
	}

	runFrames(g, demoWalkEnd-int(g.Frame()))
	if g.Traversals() != 1 {
		t.Fatalf("traversals = %d, want 1", g.Traversals())
	}
	pos := g.Camera().Position
	if pos.X() > 6 || pos.X() < 3 || math32.Abs(pos.Z()-blue.Pose.Position.Z()) > 0.1 {
		t.Errorf("player at %v after walking out of blue", pos)
	}
	if f := g.Camera().Forward(); f.X() > -0.99 {
		t.Errorf("player facing %v, want -X out of the blue portal", f)
	}

	runFrames(g, demoLength-int(g.Frame()))
	if g.Registry().Count() != 0 {
		t.Errorf("%d portals left after reset", g.Registry().Count())
	}
	if got := g.LiveTargets(); got != 0 {
		t.Errorf("live targets after reset = %d", got)
	}
	for _, wall := range room.Walls {
		if !g.World().Visible(wall) || g.World().CarvedCount(wall) != 0 {
			t.Errorf("wall %q not restored", g.World().Name(wall))
		}
	}
	if pos := g.Camera().Position; pos != SpawnPoint(g.config()) {
		t.Errorf("camera at %v after reset, want spawn", pos)
	}

	want := []telemetry.EventType{
		telemetry.EventPlace,
		telemetry.EventPlace,
		telemetry.EventCooldown,
		telemetry.EventTraverse,
		telemetry.EventRestore,
		telemetry.EventRestore,
	}
	if len(events) != len(want) {
		t.Fatalf("events = %v, want %v", events, want)
	}
	for i, e := range events {
		if e.Type != want[i] {
			t.Errorf("event %d = %v, want %v", i, e.Type, want[i])
		}
	}
	if events[0].Color != "red" || events[1].Color != "blue" || events[3].Color != "red" {
		t.Errorf("event colors = %q %q %q", events[0].Color, events[1].Color, events[3].Color)
	}
}

func TestStatsWindows(t *testing.T) {
	var windows []telemetry.WindowStats
	g := newHeadless(t, Options{
		StatsWindowSec: 1,
		StatsCallback: func(s telemetry.WindowStats) {
			windows = append(windows, s)
		},
	})

	runFrames(g, demoLength)
	if len(windows) != demoLength/60 {
		t.Fatalf("%d windows, want %d", len(windows), demoLength/60)
	}

	var placed, cooling, traversals, restores, drawn int
	for _, w := range windows {
		placed += w.Placed
		cooling += w.CoolingDown
		traversals += w.Traversals
		restores += w.Restores
		drawn += w.ViewsDrawn
	}
	if placed != 2 || cooling != 1 || traversals != 1 || restores != 2 {
		t.Errorf("placed=%d cooling=%d traversals=%d restores=%d", placed, cooling, traversals, restores)
	}
	if drawn == 0 {
		t.Error("no portal views drawn")
	}
	if windows[0].LinkedFrac != 0 {
		t.Errorf("first window linked fraction = %v, want 0", windows[0].LinkedFrac)
	}
}

func TestFireAndClear(t *testing.T) {
	var events []telemetry.Event
	g := newHeadless(t, Options{EventCallback: func(e telemetry.Event) {
		events = append(events, e)
	}})

	g.Clear(portal.Red)
	if len(events) != 0 {
		t.Fatalf("clearing an empty slot emitted %v", events)
	}

	if out := g.Fire(portal.Red); out != portal.OutcomePlaced {
		t.Fatalf("Fire = %v", out)
	}
	if out := g.Fire(portal.Blue); out != portal.OutcomeCoolingDown {
		t.Fatalf("second shot = %v, want cooling_down", out)
	}

	s := g.slotStatus(portal.Red)
	if !s.Placed || s.Linked || s.Surface != "wall +Z" {
		t.Errorf("red slot = %+v", s)
	}
	if g.slotStatus(portal.Blue).Placed {
		t.Error("blue slot placed")
	}

	g.Clear(portal.Red)
	if g.Registry().Get(portal.Red) != nil {
		t.Error("red still placed after Clear")
	}
	if last := events[len(events)-1]; last.Type != telemetry.EventRestore {
		t.Errorf("last event = %v, want restore", last.Type)
	}
}

func TestPillarShotMisses(t *testing.T) {
	g := newHeadless(t, Options{})
	cam := g.Camera()
	// the first pillar of the ring sits on +Z
	cam.Position[0], cam.Position[2] = 0, 0
	cam.Yaw = 0
	if out := g.Fire(portal.Red); out != portal.OutcomeMissed {
		t.Errorf("shot at pillar = %v, want missed", out)
	}
}

func TestScriptAt(t *testing.T) {
	var fire Intent
	fire.Fire[portal.Blue] = true
	s := Script{
		Length: 10,
		Steps: []Step{
			{Start: 0, End: 5, Intent: Intent{Forward: 1}},
			{Start: 3, End: 6, Intent: Intent{Forward: 1, LookDX: 2}},
			{Start: 4, End: 5, Intent: fire},
		},
	}

	if in := s.At(1); in.Forward != 1 || in.LookDX != 0 {
		t.Errorf("At(1) = %+v", in)
	}
	if in := s.At(4); in.Forward != 2 || in.LookDX != 2 || !in.Fire[portal.Blue] || in.Fire[portal.Red] {
		t.Errorf("At(4) = %+v", in)
	}
	if in := s.At(14); !in.Fire[portal.Blue] {
		t.Error("script does not loop")
	}
	if in := s.At(7); in != (Intent{}) {
		t.Errorf("At(7) = %+v, want idle", in)
	}
	if in := (Script{}).At(3); in != (Intent{}) {
		t.Errorf("empty script intent = %+v", in)
	}
}

func TestDemoScriptTurnsQuarter(t *testing.T) {
	const sens = 0.003
	s := DemoScript(sens)
	var yaw float32
	for f := int32(0); f < demoTurnBack; f++ {
		yaw -= s.At(f).LookDX * sens
	}
	if math32.Abs(yaw-math32.Pi/2) > 1e-4 {
		t.Errorf("yaw after turn = %v, want pi/2", yaw)
	}
}
