package game

import (
	"github.com/chewxy/math32"

	"github.com/pthm-cable/portals/portal"
)

// Step is an intent applied on every frame in [Start, End).
type Step struct {
	Start, End int32
	Intent     Intent
}

// Script is a looping sequence of scripted steps for headless runs.
type Script struct {
	Steps  []Step
	Length int32
}

// At returns the combined intent of all steps active at frame.
func (s Script) At(frame int32) Intent {
	var in Intent
	if s.Length <= 0 {
		return in
	}
	f := frame % s.Length
	for _, st := range s.Steps {
		if f < st.Start || f >= st.End {
			continue
		}
		si := st.Intent
		in.Forward += si.Forward
		in.Strafe += si.Strafe
		in.Vertical += si.Vertical
		in.LookDX += si.LookDX
		in.LookDY += si.LookDY
		in.Fov += si.Fov
		for c := range in.Fire {
			in.Fire[c] = in.Fire[c] || si.Fire[c]
			in.Clear[c] = in.Clear[c] || si.Clear[c]
		}
		in.Reset = in.Reset || si.Reset
	}
	return in
}

// Demo script frames.
const (
	demoFireRed     = 10
	demoTurnLeft    = 20
	demoFireBlue    = 60
	demoFireBlueHot = 62
	demoTurnBack    = 70
	demoWalk        = 100
	demoWalkEnd     = 330
	demoClearRed    = 340
	demoReset       = 350
	demoLength      = 360
	demoTurnFrames  = 30
)

// DemoScript exercises the sandbox from the spawn point: red on the wall
// ahead, a quarter turn left, blue on the side wall, a shot during the
// cooldown, then a walk through the red portal that comes out of the blue
// one. It ends by clearing red and resetting.
func DemoScript(sensitivity float32) Script {
	if sensitivity <= 0 {
		sensitivity = 0.003
	}
	// pixels per frame for a quarter turn over demoTurnFrames
	turn := (math32.Pi / 2) / demoTurnFrames / sensitivity

	fireAt := func(frame int32, c portal.Color) Step {
		var in Intent
		in.Fire[c] = true
		return Step{Start: frame, End: frame + 1, Intent: in}
	}
	clearAt := func(frame int32, c portal.Color) Step {
		var in Intent
		in.Clear[c] = true
		return Step{Start: frame, End: frame + 1, Intent: in}
	}
	return Script{
		Length: demoLength,
		Steps: []Step{
			fireAt(demoFireRed, portal.Red),
			{Start: demoTurnLeft, End: demoTurnLeft + demoTurnFrames, Intent: Intent{LookDX: -turn}},
			fireAt(demoFireBlue, portal.Blue),
			fireAt(demoFireBlueHot, portal.Blue),
			{Start: demoTurnBack, End: demoTurnBack + demoTurnFrames, Intent: Intent{LookDX: turn}},
			{Start: demoWalk, End: demoWalkEnd, Intent: Intent{Forward: 1}},
			clearAt(demoClearRed, portal.Red),
			{Start: demoReset, End: demoReset + 1, Intent: Intent{Reset: true}},
		},
	}
}
