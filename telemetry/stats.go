package telemetry

import "log/slog"

// WindowStats holds aggregated statistics for a time window.
type WindowStats struct {
	WindowStartFrame int32   `csv:"-"`
	WindowEndFrame   int32   `csv:"window_end"`
	TimeSec          float64 `csv:"time"`

	// Portals alive at window end
	LivePortals int `csv:"live_portals"`

	// Shots during window
	Shots       int     `csv:"shots"`
	Placed      int     `csv:"placed"`
	Missed      int     `csv:"missed"`
	CoolingDown int     `csv:"cooling_down"`
	Rejected    int     `csv:"rejected"`
	Restores    int     `csv:"restores"`
	Traversals  int     `csv:"traversals"`
	HitRate     float64 `csv:"hit_rate"`

	// Render pass
	LinkedFrac   float64 `csv:"linked_frac"` // share of frames with a linked pair
	ViewsDrawn   int     `csv:"views_drawn"`
	ViewsCulled  int     `csv:"views_culled"`
	ViewsSkipped int     `csv:"views_skipped"`
	CullRate     float64 `csv:"cull_rate"`
}

// LogValue implements slog.LogValuer for structured logging.
func (s WindowStats) LogValue() slog.Value {
	return slog.GroupValue(
		slog.Int("window_start", int(s.WindowStartFrame)),
		slog.Int("window_end", int(s.WindowEndFrame)),
		slog.Float64("time", s.TimeSec),
		slog.Int("live_portals", s.LivePortals),
		slog.Int("shots", s.Shots),
		slog.Int("placed", s.Placed),
		slog.Int("missed", s.Missed),
		slog.Int("cooling_down", s.CoolingDown),
		slog.Int("rejected", s.Rejected),
		slog.Int("restores", s.Restores),
		slog.Int("traversals", s.Traversals),
		slog.Float64("hit_rate", s.HitRate),
		slog.Float64("linked_frac", s.LinkedFrac),
		slog.Int("views_drawn", s.ViewsDrawn),
		slog.Int("views_culled", s.ViewsCulled),
		slog.Int("views_skipped", s.ViewsSkipped),
		slog.Float64("cull_rate", s.CullRate),
	)
}

// LogStats logs the window stats using slog.
func (s WindowStats) LogStats() {
	slog.Info("stats", "window", s)
}
