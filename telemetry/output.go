package telemetry

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"github.com/pthm-cable/portals/config"
)

// csvSink is one CSV file that gets its header on the first write.
type csvSink struct {
	name   string
	file   *os.File
	header bool
}

func openSink(dir, name string) (*csvSink, error) {
	f, err := os.Create(filepath.Join(dir, name))
	if err != nil {
		return nil, fmt.Errorf("creating %s: %w", name, err)
	}
	return &csvSink{name: name, file: f}, nil
}

func appendRows[T any](s *csvSink, rows []T) error {
	var err error
	if s.header {
		err = gocsv.MarshalWithoutHeaders(rows, s.file)
	} else {
		err = gocsv.Marshal(rows, s.file)
		s.header = err == nil
	}
	if err != nil {
		return fmt.Errorf("writing %s: %w", s.name, err)
	}
	return nil
}

// OutputManager writes a session's config snapshot and CSV logs into one
// directory. A nil manager discards everything.
type OutputManager struct {
	dir       string
	telemetry *csvSink
	perf      *csvSink
	events    *csvSink
}

// NewOutputManager creates dir and its CSV files. An empty dir disables
// output and returns a nil manager.
func NewOutputManager(dir string) (*OutputManager, error) {
	if dir == "" {
		return nil, nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	om := &OutputManager{dir: dir}
	for name, dst := range map[string]**csvSink{
		"telemetry.csv": &om.telemetry,
		"perf.csv":      &om.perf,
		"events.csv":    &om.events,
	} {
		s, err := openSink(dir, name)
		if err != nil {
			om.Close()
			return nil, err
		}
		*dst = s
	}
	return om, nil
}

// WriteConfig saves cfg as config.yaml.
func (om *OutputManager) WriteConfig(cfg *config.Config) error {
	if om == nil {
		return nil
	}
	return cfg.WriteYAML(filepath.Join(om.dir, "config.yaml"))
}

// WriteTelemetry appends a stats window to telemetry.csv.
func (om *OutputManager) WriteTelemetry(stats WindowStats) error {
	if om == nil {
		return nil
	}
	return appendRows(om.telemetry, []WindowStats{stats})
}

// WritePerf appends a perf summary to perf.csv.
func (om *OutputManager) WritePerf(stats PerfStats, windowEnd int32) error {
	if om == nil {
		return nil
	}
	return appendRows(om.perf, []PerfStatsCSV{stats.ToCSV(windowEnd)})
}

// WriteEvent appends a portal event to events.csv.
func (om *OutputManager) WriteEvent(e Event) error {
	if om == nil {
		return nil
	}
	return appendRows(om.events, []Event{e})
}

// Dir returns the output directory.
func (om *OutputManager) Dir() string {
	if om == nil {
		return ""
	}
	return om.dir
}

// Close closes all files.
func (om *OutputManager) Close() error {
	if om == nil {
		return nil
	}
	var errs []error
	for _, s := range []*csvSink{om.telemetry, om.perf, om.events} {
		if s != nil {
			errs = append(errs, s.file.Close())
		}
	}
	return errors.Join(errs...)
}
