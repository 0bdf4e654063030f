package ui

import (
	"fmt"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// Bindings is the fixed key legend shown under the overlay toggles.
var Bindings = [][2]string{
	{"WASD", "Move"},
	{"Space/Ctrl", "Up/Down"},
	{"LMB", "Fire red"},
	{"RMB", "Fire blue"},
	{"Q / E", "Clear red / blue"},
	{"R", "Reset level"},
	{"Wheel", "Field of view"},
}

// ControlsPanel lists overlay toggles and key bindings.
type ControlsPanel struct {
	renderer *Renderer
	x, y     int32
	width    int32
}

// NewControlsPanel creates a new controls panel.
func NewControlsPanel(x, y, width int32) *ControlsPanel {
	return &ControlsPanel{
		renderer: NewRenderer(),
		x:        x,
		y:        y,
		width:    width,
	}
}

// SetPosition updates the panel position.
func (c *ControlsPanel) SetPosition(x, y int32) {
	c.x = x
	c.y = y
}

// Height returns the panel height for the given overlays.
func (c *ControlsPanel) Height(overlays *OverlayRegistry) int32 {
	r := c.renderer
	lines := int32(len(Bindings)) + 1
	for _, cat := range overlays.Categories() {
		lines += int32(len(overlays.ByCategory(cat))) + 1
	}
	return lines*r.Theme.LineHeight + r.Theme.Padding*3 + r.Theme.LineHeight
}

// Draw renders the controls panel and returns the Y below it.
func (c *ControlsPanel) Draw(overlays *OverlayRegistry) int32 {
	r := c.renderer
	padding := r.Theme.Padding
	lineHeight := r.Theme.LineHeight

	r.DrawPanel(c.x, c.y, c.width, c.Height(overlays))

	y := c.y + padding
	rl.DrawText("Controls", c.x+padding, y, 16, rl.White)
	y += lineHeight + 4

	for _, category := range overlays.Categories() {
		rl.DrawText(categoryLabel(category), c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
		y += lineHeight

		for _, desc := range overlays.ByCategory(category) {
			c.drawToggle(c.x+padding, y, desc, overlays.IsEnabled(desc.ID), c.width-padding*2)
			y += lineHeight
		}
		y += 4
	}

	rl.DrawText("Keys", c.x+padding, y, r.Theme.HeaderFontSize, r.Theme.SectionHeader)
	y += lineHeight
	for _, b := range Bindings {
		y = r.DrawLabelValue(c.x+padding, y, b[0], b[1])
	}
	return y
}

func (c *ControlsPanel) drawToggle(x, y int32, desc OverlayDescriptor, enabled bool, width int32) {
	r := c.renderer

	statusColor := rl.Color{R: 80, G: 80, B: 80, A: 255}
	if enabled {
		statusColor = rl.Color{R: 100, G: 200, B: 100, A: 255}
	}
	rl.DrawRectangle(x, y+2, 8, 8, statusColor)

	nameColor := r.Theme.LabelColor
	if enabled {
		nameColor = rl.White
	}
	rl.DrawText(desc.Name, x+14, y, r.Theme.FontSize, nameColor)

	if desc.KeyLabel != "" {
		keyText := fmt.Sprintf("[%s]", desc.KeyLabel)
		keyWidth := rl.MeasureText(keyText, r.Theme.FontSize)
		rl.DrawText(keyText, x+width-keyWidth, y, r.Theme.FontSize, rl.Color{R: 150, G: 150, B: 150, A: 255})
	}
}

func categoryLabel(cat string) string {
	switch cat {
	case "view":
		return "View"
	case "render":
		return "Render"
	case "debug":
		return "Debug"
	default:
		return cat
	}
}
