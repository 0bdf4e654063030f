package game

import (
	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/telemetry"
)

// DT is the fixed frame step of headless runs.
const DT = 1.0 / 60.0

// Options configures a game session.
type Options struct {
	LogStats       bool    // log window and perf stats via slog
	StatsWindowSec float64 // stats window length; 0 uses the config
	OutputDir      string  // CSV output directory; empty disables file output
	Headless       bool    // no window: headless targets and scene, scripted input

	// Config overrides the global config when set.
	Config *config.Config

	// StatsCallback receives every flushed stats window.
	StatsCallback func(telemetry.WindowStats)
	// EventCallback receives every portal event as it happens.
	EventCallback func(telemetry.Event)
}
