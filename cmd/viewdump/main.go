// View dump tool - plays the start of the demo script in a hidden window and
// writes the player's view, portals included, to a PNG file.
//
// Usage: go run ./cmd/viewdump -frames 100 -out view.png
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/config"
	"github.com/pthm-cable/portals/game"
)

func main() {
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	outPath := flag.String("out", "view.png", "Output PNG path")
	frames := flag.Int("frames", 100, "Demo frames to play before capturing")
	flag.Parse()

	if err := config.Init(*configPath); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	// Initialize raylib with hidden window
	rl.SetConfigFlags(rl.FlagWindowHidden)
	rl.InitWindow(int32(cfg.Screen.Width), int32(cfg.Screen.Height), "View Dump")
	defer rl.CloseWindow()

	g := game.NewGameWithOptions(game.Options{Config: cfg})
	defer g.Unload()

	img, pass := g.Capture(int32(*frames))
	defer rl.UnloadImage(img)

	if !rl.ExportImage(*img, *outPath) {
		fmt.Fprintf(os.Stderr, "Failed to export image: %s\n", *outPath)
		os.Exit(1)
	}

	slog.Info("view written",
		"path", *outPath,
		"frame", g.Frame(),
		"portals", g.Registry().Count(),
		"linked", g.Registry().Linked(),
		"views_rendered", pass.Rendered,
		"views_culled", pass.Culled,
	)
}
