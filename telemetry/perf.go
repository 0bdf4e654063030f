package telemetry

import (
	"log/slog"
	"slices"
	"time"
)

// Phase names one timed section of a frame.
type Phase string

// Frame phases in execution order.
const (
	PhaseInput      Phase = "input"
	PhasePlacement  Phase = "placement"
	PhasePortals    Phase = "portals"
	PhasePortalPass Phase = "portal_pass"
	PhaseScene      Phase = "scene"
	PhaseHUD        Phase = "hud"
	PhaseTelemetry  Phase = "telemetry"
)

var phases = []Phase{
	PhaseInput, PhasePlacement, PhasePortals,
	PhasePortalPass, PhaseScene, PhaseHUD, PhaseTelemetry,
}

// frameSample is the timing of one frame.
type frameSample struct {
	total  time.Duration
	phases map[Phase]time.Duration
}

// PerfCollector times frame phases over a ring of recent frames.
type PerfCollector struct {
	ring  []frameSample
	next  int
	count int

	current    map[Phase]time.Duration
	frameStart time.Time
	phaseStart time.Time
	phase      Phase

	// Wall-clock interval between presented frames (graphical mode)
	lastPresent time.Time
	present     time.Duration
}

// NewPerfCollector returns a collector averaging over the last size frames.
func NewPerfCollector(size int) *PerfCollector {
	if size < 1 {
		size = 60
	}
	return &PerfCollector{
		ring:    make([]frameSample, size),
		current: make(map[Phase]time.Duration),
	}
}

// StartFrame begins timing a frame.
func (p *PerfCollector) StartFrame() {
	p.frameStart = time.Now()
	p.current = make(map[Phase]time.Duration, len(phases))
	p.phase = ""
}

// StartPhase closes the running phase and opens ph.
func (p *PerfCollector) StartPhase(ph Phase) {
	now := time.Now()
	p.closePhase(now)
	p.phaseStart = now
	p.phase = ph
}

func (p *PerfCollector) closePhase(now time.Time) {
	if p.phase != "" {
		p.current[p.phase] += now.Sub(p.phaseStart)
	}
}

// EndFrame closes the running phase and stores the frame in the ring.
func (p *PerfCollector) EndFrame() {
	now := time.Now()
	p.closePhase(now)
	p.phase = ""

	p.ring[p.next] = frameSample{total: now.Sub(p.frameStart), phases: p.current}
	p.next = (p.next + 1) % len(p.ring)
	p.count = min(p.count+1, len(p.ring))
}

// RecordPresent marks a frame reaching the screen.
func (p *PerfCollector) RecordPresent() {
	now := time.Now()
	if !p.lastPresent.IsZero() {
		p.present = now.Sub(p.lastPresent)
	}
	p.lastPresent = now
}

// PerfStats summarizes the frames in the ring.
type PerfStats struct {
	AvgFrame time.Duration
	MinFrame time.Duration
	MaxFrame time.Duration
	P95Frame time.Duration

	// Mean time per phase and its share of the mean frame in percent
	PhaseAvg map[Phase]time.Duration
	PhasePct map[Phase]float64

	// FramesPerSecond is the CPU-bound rate the mean frame allows.
	FramesPerSecond float64

	// Presentation (graphical mode)
	PresentInterval time.Duration
	FPS             float64
}

// Stats aggregates the ring.
func (p *PerfCollector) Stats() PerfStats {
	s := PerfStats{
		PhaseAvg:        make(map[Phase]time.Duration),
		PhasePct:        make(map[Phase]float64),
		PresentInterval: p.present,
	}
	if p.present > 0 {
		s.FPS = float64(time.Second) / float64(p.present)
	}
	if p.count == 0 {
		return s
	}

	totals := make([]time.Duration, 0, p.count)
	var sum time.Duration
	for _, f := range p.ring[:p.count] {
		totals = append(totals, f.total)
		sum += f.total
		for ph, d := range f.phases {
			s.PhaseAvg[ph] += d
		}
	}
	slices.Sort(totals)

	n := time.Duration(p.count)
	s.AvgFrame = sum / n
	s.MinFrame = totals[0]
	s.MaxFrame = totals[len(totals)-1]
	s.P95Frame = totals[(len(totals)-1)*95/100]

	for ph, d := range s.PhaseAvg {
		s.PhaseAvg[ph] = d / n
		if s.AvgFrame > 0 {
			s.PhasePct[ph] = float64(s.PhaseAvg[ph]) / float64(s.AvgFrame) * 100
		}
	}
	if s.AvgFrame > 0 {
		s.FramesPerSecond = float64(time.Second) / float64(s.AvgFrame)
	}
	return s
}

// LogStats logs the summary at info level.
func (s PerfStats) LogStats() {
	slog.Info("perf", "frames", s)
}

// LogValue implements slog.LogValuer for structured logging.
func (s PerfStats) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int64("avg_frame_us", s.AvgFrame.Microseconds()),
		slog.Int64("p95_frame_us", s.P95Frame.Microseconds()),
		slog.Int64("max_frame_us", s.MaxFrame.Microseconds()),
		slog.Int("frames_per_sec", int(s.FramesPerSecond)),
	}
	if s.FPS > 0 {
		attrs = append(attrs, slog.Int("fps", int(s.FPS)))
	}
	for _, ph := range phases {
		// sub-0.1% phases are noise
		if pct := s.PhasePct[ph]; pct > 0.1 {
			attrs = append(attrs, slog.Float64(string(ph)+"_pct", float64(int(pct*10))/10))
		}
	}
	return slog.GroupValue(attrs...)
}

// PerfStatsCSV is one perf.csv row.
type PerfStatsCSV struct {
	WindowEnd     int32   `csv:"window_end"`
	AvgFrameUS    int64   `csv:"avg_frame_us"`
	MinFrameUS    int64   `csv:"min_frame_us"`
	MaxFrameUS    int64   `csv:"max_frame_us"`
	P95FrameUS    int64   `csv:"p95_frame_us"`
	FramesPerSec  float64 `csv:"frames_per_sec"`
	FPS           float64 `csv:"fps"`
	InputPct      float64 `csv:"input_pct"`
	PlacementPct  float64 `csv:"placement_pct"`
	PortalsPct    float64 `csv:"portals_pct"`
	PortalPassPct float64 `csv:"portal_pass_pct"`
	ScenePct      float64 `csv:"scene_pct"`
	HUDPct        float64 `csv:"hud_pct"`
	TelemetryPct  float64 `csv:"telemetry_pct"`
}

// ToCSV flattens the summary for the window ending at windowEnd.
func (s PerfStats) ToCSV(windowEnd int32) PerfStatsCSV {
	return PerfStatsCSV{
		WindowEnd:     windowEnd,
		AvgFrameUS:    s.AvgFrame.Microseconds(),
		MinFrameUS:    s.MinFrame.Microseconds(),
		MaxFrameUS:    s.MaxFrame.Microseconds(),
		P95FrameUS:    s.P95Frame.Microseconds(),
		FramesPerSec:  s.FramesPerSecond,
		FPS:           s.FPS,
		InputPct:      s.PhasePct[PhaseInput],
		PlacementPct:  s.PhasePct[PhasePlacement],
		PortalsPct:    s.PhasePct[PhasePortals],
		PortalPassPct: s.PhasePct[PhasePortalPass],
		ScenePct:      s.PhasePct[PhaseScene],
		HUDPct:        s.PhasePct[PhaseHUD],
		TelemetryPct:  s.PhasePct[PhaseTelemetry],
	}
}
