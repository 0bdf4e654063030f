package ui

import (
	"fmt"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/portal"
)

// SlotStatus describes one portal slot for display.
type SlotStatus struct {
	Color     portal.Color
	Placed    bool
	Linked    bool
	Surface   string
	OpenScale float32
}

// Text summarizes the slot state.
func (s SlotStatus) Text() string {
	switch {
	case !s.Placed:
		return "empty"
	case s.Linked:
		return "linked on " + s.Surface
	default:
		return "open on " + s.Surface
	}
}

// HUDData holds all the data needed to render the HUD for one frame.
type HUDData struct {
	Title        string
	FPS          int32
	Frame        int32
	ScreenWidth  int32
	ScreenHeight int32

	Slots       [2]SlotStatus
	Cooldown    float32 // fraction of the cooldown elapsed, 1 = ready
	LastOutcome string

	Fov, MinFov, MaxFov float32 // degrees
	Culling             bool

	Pass      portal.PassStats
	Surfaces  int
	Triangles int
}

// HUDActions are the settings changes requested through the HUD this frame.
type HUDActions struct {
	Fov           float32
	ToggleCulling bool
	Reset         bool
	ClearPortals  bool
}

// HUD renders the heads-up display.
type HUD struct {
	renderer *Renderer
	overlays *OverlayRegistry
	controls *ControlsPanel
	stats    PanelDescriptor
}

// NewHUD creates a HUD drawing the given overlays.
func NewHUD(overlays *OverlayRegistry) *HUD {
	return &HUD{
		renderer: NewRenderer(),
		overlays: overlays,
		controls: NewControlsPanel(10, 40, 220),
		stats:    StatsPanel(),
	}
}

// slotColor maps a portal color to its swatch.
func slotColor(c portal.Color, placed bool) rl.Color {
	if !placed {
		return rl.Color{R: 70, G: 70, B: 70, A: 255}
	}
	switch c {
	case portal.Red:
		return portal.Red.Tint()
	case portal.Blue:
		return portal.Blue.Tint()
	}
	return rl.Gray
}

// StatsPanel describes the top-right stats panel over HUDData.
func StatsPanel() PanelDescriptor {
	slot := func(c portal.Color) FieldDescriptor {
		return FieldDescriptor{
			ID:     "slot_" + c.String(),
			Label:  c.String(),
			Widget: WidgetColorSwatch,
			TextGetter: func(d any) string {
				return d.(HUDData).Slots[c].Text()
			},
			ColorGetter: func(d any) rl.Color {
				s := d.(HUDData).Slots[c]
				return slotColor(c, s.Placed)
			},
		}
	}
	return PanelDescriptor{
		ID:     "stats",
		Width:  260,
		Anchor: AnchorTopRight,
		Sections: []SectionDescriptor{
			{
				ID:    "portals",
				Title: "Portals",
				Fields: []FieldDescriptor{
					slot(portal.Red),
					slot(portal.Blue),
					{
						ID:     "cooldown",
						Label:  "Cooldown",
						Widget: WidgetBar,
						Getter: func(d any) float32 { return d.(HUDData).Cooldown },
					},
					{
						ID:         "last_shot",
						Label:      "Last shot",
						Widget:     WidgetText,
						TextGetter: func(d any) string { return d.(HUDData).LastOutcome },
						Visible:    func(d any) bool { return d.(HUDData).LastOutcome != "" },
					},
				},
			},
			{
				ID:    "render",
				Title: "Render",
				Fields: []FieldDescriptor{
					{
						ID:     "views",
						Label:  "Views",
						Widget: WidgetText,
						TextGetter: func(d any) string {
							p := d.(HUDData).Pass
							return fmt.Sprintf("%d drawn / %d culled", p.Rendered, p.Culled)
						},
					},
					{
						ID:     "culling",
						Label:  "Culling",
						Widget: WidgetText,
						TextGetter: func(d any) string {
							return toggleText(d.(HUDData).Culling, "on", "off")
						},
					},
					{
						ID:     "surfaces",
						Label:  "Surfaces",
						Widget: WidgetText,
						Format: "%.0f",
						Getter: func(d any) float32 { return float32(d.(HUDData).Surfaces) },
					},
					{
						ID:     "triangles",
						Label:  "Triangles",
						Widget: WidgetText,
						Format: "%.0f",
						Getter: func(d any) float32 { return float32(d.(HUDData).Triangles) },
					},
				},
			},
		},
	}
}

// Draw renders the HUD and returns any settings changes made through it.
func (h *HUD) Draw(data HUDData) HUDActions {
	actions := HUDActions{Fov: data.Fov}

	rl.DrawText(data.Title, 10, 10, 20, rl.White)
	rl.DrawText(fmt.Sprintf("FPS: %d | Frame: %d", data.FPS, data.Frame), 110, 14, 14, rl.LightGray)

	if h.overlays.IsEnabled(OverlayCrosshair) {
		h.DrawCrosshair(data.ScreenWidth, data.ScreenHeight, data.Cooldown)
	}
	if h.overlays.IsEnabled(OverlayHUD) {
		h.renderer.DrawDescriptor(h.stats, data, data.ScreenWidth, data.ScreenHeight)
	}
	if h.overlays.IsEnabled(OverlayControls) {
		y := h.controls.Draw(h.overlays)
		actions = h.drawSettings(10, y+10, data)
	}
	return actions
}

// drawSettings draws the raygui settings widgets under the controls panel.
func (h *HUD) drawSettings(x, y int32, data HUDData) HUDActions {
	actions := HUDActions{Fov: data.Fov}
	px, py := float32(x), float32(y)

	h.renderer.DrawPanel(x, y, 220, 100)
	px += 10
	py += 8

	rl.DrawText("Field of view", int32(px), int32(py), 12, rl.LightGray)
	py += 16
	actions.Fov = gui.SliderBar(
		rl.Rectangle{X: px + 24, Y: py, Width: 130, Height: 16},
		fmt.Sprintf("%.0f", data.MinFov), fmt.Sprintf("%.0f", data.MaxFov),
		data.Fov, data.MinFov, data.MaxFov,
	)
	rl.DrawText(fmt.Sprintf("%.0f", data.Fov), int32(px+180), int32(py+2), 12, rl.RayWhite)
	py += 26

	if gui.Button(rl.Rectangle{X: px, Y: py, Width: 95, Height: 22}, toggleText(data.Culling, "Culling: on", "Culling: off")) {
		actions.ToggleCulling = true
	}
	if gui.Button(rl.Rectangle{X: px + 105, Y: py, Width: 95, Height: 22}, "Clear portals") {
		actions.ClearPortals = true
	}
	py += 28
	if gui.Button(rl.Rectangle{X: px, Y: py, Width: 200, Height: 18}, "Reset level") {
		actions.Reset = true
	}
	return actions
}

// DrawCrosshair draws the aim marker with a ring that fills as the shot
// cooldown elapses.
func (h *HUD) DrawCrosshair(screenW, screenH int32, cooldown float32) {
	cx, cy := screenW/2, screenH/2
	c := h.renderer.Theme.Crosshair
	rl.DrawLine(cx-8, cy, cx-3, cy, c)
	rl.DrawLine(cx+3, cy, cx+8, cy, c)
	rl.DrawLine(cx, cy-8, cx, cy-3, c)
	rl.DrawLine(cx, cy+3, cx, cy+8, c)

	if cooldown < 1 {
		center := rl.Vector2{X: float32(cx), Y: float32(cy)}
		rl.DrawRing(center, 12, 14, -90, -90+360*clamp01(cooldown), 24, h.renderer.Theme.BarFill)
	}
}

func toggleText(on bool, a, b string) string {
	if on {
		return a
	}
	return b
}
