package telemetry

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pthm-cable/portals/config"
)

func TestOutputManager_Disabled(t *testing.T) {
	om, err := NewOutputManager("")
	if err != nil || om != nil {
		t.Fatalf("expected nil manager, got %v, %v", om, err)
	}
	// nil receiver is a no-op
	if err := om.WriteEvent(NewMissEvent(1, "red")); err != nil {
		t.Error(err)
	}
	if err := om.Close(); err != nil {
		t.Error(err)
	}
}

func TestOutputManager_WritesCSV(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "run")
	om, err := NewOutputManager(dir)
	if err != nil {
		t.Fatal(err)
	}

	if err := om.WriteEvent(NewPlaceEvent(10, "red", "wall +Z", 0, 1.5, 5)); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteEvent(NewMissEvent(11, "blue")); err != nil {
		t.Fatal(err)
	}
	if err := om.WriteTelemetry(WindowStats{WindowEndFrame: 60, Shots: 2}); err != nil {
		t.Fatal(err)
	}
	if err := om.WritePerf(PerfStats{}, 60); err != nil {
		t.Fatal(err)
	}
	cfg, err := config.Load("")
	if err != nil {
		t.Fatal(err)
	}
	if err := om.WriteConfig(cfg); err != nil {
		t.Fatal(err)
	}
	if err := om.Close(); err != nil {
		t.Fatal(err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "events.csv"))
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if len(lines) != 3 {
		t.Fatalf("expected header + 2 rows, got %d lines:\n%s", len(lines), data)
	}
	if !strings.HasPrefix(lines[0], "frame,type,color") {
		t.Errorf("unexpected header %q", lines[0])
	}
	if !strings.Contains(lines[1], "place") || !strings.Contains(lines[2], "miss") {
		t.Errorf("unexpected rows: %v", lines[1:])
	}

	for _, name := range []string{"telemetry.csv", "perf.csv", "config.yaml"} {
		if _, err := os.Stat(filepath.Join(dir, name)); err != nil {
			t.Errorf("expected %s: %v", name, err)
		}
	}
}
