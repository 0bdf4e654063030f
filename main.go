package main

import (
	"flag"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/game"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Run the scripted demo without graphics")
	logStats := flag.Bool("log-stats", false, "Output stats via slog")
	statsWindow := flag.Float64("stats-window", 0, "Stats window size in seconds (0 = use config)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV logs and config snapshot")
	maxFrames := flag.Int("max-frames", 0, "Stop after N frames (0 = unlimited)")

	flag.Parse()

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	opts := game.Options{
		LogStats:       *logStats,
		StatsWindowSec: *statsWindow,
		OutputDir:      *outputDir,
		Headless:       *headless,
		Config:         cfg,
	}

	if *headless {
		// Headless mode runs the demo script against recorded render targets
		g := game.NewGameWithOptions(opts)
		defer g.Unload()

		frames := *maxFrames
		if frames <= 0 {
			frames = 360
		}
		slog.Info("starting headless run", "max_frames", frames, "stats_window", *statsWindow)

		for int(g.Frame()) < frames {
			g.UpdateHeadless()
		}
		slog.Info("headless run finished",
			"frame", g.Frame(),
			"traversals", g.Traversals(),
			"portals", g.Registry().Count(),
		)
		return
	}

	// Graphical mode
	if cfg.Screen.Resizable {
		rl.SetConfigFlags(rl.FlagWindowResizable)
	}
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "Portals")
	defer rl.CloseWindow()

	rl.SetTargetFPS(int32(cfg.Screen.TargetFPS))
	rl.DisableCursor()

	g := game.NewGameWithOptions(opts)
	defer g.Unload()

	for !rl.WindowShouldClose() {
		g.Update()
		g.Draw()

		if *maxFrames > 0 && int(g.Frame()) >= *maxFrames {
			break
		}
	}
}
