package telemetry

import "math"

// PassCounts mirrors the per-frame result of the portal render pass.
type PassCounts struct {
	Rendered int
	Culled   int
	Skipped  int
}

// Collector accumulates events within frame windows and produces WindowStats.
type Collector struct {
	windowDurationSec    float64
	windowDurationFrames int32
	dt                   float32

	windowStartFrame int32

	shots        int
	placed       int
	missed       int
	coolingDown  int
	rejected     int
	restores     int
	traversals   int
	linkedFrames int
	pass         PassCounts
}

// NewCollector creates a new stats collector.
// windowDurationSec: how long each stats window lasts in seconds
// dt: seconds per frame (used for frame-to-time conversion)
func NewCollector(windowDurationSec float64, dt float32) *Collector {
	framesPerWindow := int32(math.Round(windowDurationSec / float64(dt)))
	if framesPerWindow < 1 {
		framesPerWindow = 1
	}
	return &Collector{
		windowDurationSec:    windowDurationSec,
		windowDurationFrames: framesPerWindow,
		dt:                   dt,
	}
}

// Record counts an event.
func (c *Collector) Record(e Event) {
	switch e.Type {
	case EventPlace:
		c.shots++
		c.placed++
	case EventMiss:
		c.shots++
		c.missed++
	case EventCooldown:
		c.coolingDown++
	case EventCarveFailed:
		c.shots++
		c.rejected++
	case EventRestore:
		c.restores++
	case EventTraverse:
		c.traversals++
	}
}

// RecordFrame counts one frame's render pass result.
func (c *Collector) RecordFrame(linked bool, pass PassCounts) {
	if linked {
		c.linkedFrames++
	}
	c.pass.Rendered += pass.Rendered
	c.pass.Culled += pass.Culled
	c.pass.Skipped += pass.Skipped
}

// ShouldFlush returns true if enough frames have passed to flush the window.
func (c *Collector) ShouldFlush(currentFrame int32) bool {
	return currentFrame-c.windowStartFrame >= c.windowDurationFrames
}

// Flush produces a WindowStats and resets counters for the next window.
func (c *Collector) Flush(currentFrame int32, livePortals int) WindowStats {
	frames := currentFrame - c.windowStartFrame

	var hitRate, linkedFrac, cullRate float64
	if c.shots > 0 {
		hitRate = float64(c.placed) / float64(c.shots)
	}
	if frames > 0 {
		linkedFrac = float64(c.linkedFrames) / float64(frames)
	}
	if views := c.pass.Rendered + c.pass.Culled; views > 0 {
		cullRate = float64(c.pass.Culled) / float64(views)
	}

	stats := WindowStats{
		WindowStartFrame: c.windowStartFrame,
		WindowEndFrame:   currentFrame,
		TimeSec:          float64(currentFrame) * float64(c.dt),

		LivePortals:  livePortals,
		Shots:        c.shots,
		Placed:       c.placed,
		Missed:       c.missed,
		CoolingDown:  c.coolingDown,
		Rejected:     c.rejected,
		Restores:     c.restores,
		Traversals:   c.traversals,
		HitRate:      hitRate,
		LinkedFrac:   linkedFrac,
		ViewsDrawn:   c.pass.Rendered,
		ViewsCulled:  c.pass.Culled,
		ViewsSkipped: c.pass.Skipped,
		CullRate:     cullRate,
	}

	c.windowStartFrame = currentFrame
	c.shots, c.placed, c.missed, c.coolingDown, c.rejected = 0, 0, 0, 0, 0
	c.restores, c.traversals, c.linkedFrames = 0, 0, 0
	c.pass = PassCounts{}

	return stats
}

// WindowDurationFrames returns the number of frames per window.
func (c *Collector) WindowDurationFrames() int32 {
	return c.windowDurationFrames
}
