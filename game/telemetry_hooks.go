package game

import (
	"log/slog"

	"github.com/pthm-cable/portals/portal"
	"github.com/pthm-cable/portals/telemetry"
)

// emit records a portal event with the collector, the callback and the
// events file.
func (g *Game) emit(e telemetry.Event) {
	g.collector.Record(e)
	if g.eventCallback != nil {
		g.eventCallback(e)
	}
	if g.outputManager != nil && g.config().Telemetry.EventsEnabled {
		if err := g.outputManager.WriteEvent(e); err != nil {
			slog.Error("failed to write event", "error", err)
		}
	}
}

// endFrame records the frame's pass result and flushes telemetry when a
// window completes.
func (g *Game) endFrame(pass portal.PassStats) {
	g.perfCollector.StartPhase(telemetry.PhaseTelemetry)
	g.lastPass = pass
	g.collector.RecordFrame(g.registry.Linked(), telemetry.PassCounts{
		Rendered: pass.Rendered,
		Culled:   pass.Culled,
		Skipped:  pass.Skipped,
	})
	g.frame++
	g.flushTelemetry()
	g.perfCollector.EndFrame()
}

// flushTelemetry checks if the stats window should be flushed.
func (g *Game) flushTelemetry() {
	if !g.collector.ShouldFlush(g.frame) {
		return
	}

	stats := g.collector.Flush(g.frame, g.registry.Count())
	perfStats := g.perfCollector.Stats()

	if g.statsCallback != nil {
		g.statsCallback(stats)
	}

	if g.logStats {
		stats.LogStats()
		perfStats.LogStats()
	}

	if g.outputManager != nil {
		if err := g.outputManager.WriteTelemetry(stats); err != nil {
			slog.Error("failed to write telemetry", "error", err)
		}
		if g.config().Telemetry.PerfCSVEnabled {
			if err := g.outputManager.WritePerf(perfStats, stats.WindowEndFrame); err != nil {
				slog.Error("failed to write perf", "error", err)
			}
		}
	}
}
