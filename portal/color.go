package portal

import (
	"image/color"

	"github.com/pthm-cable/portals/world"
)

// Color identifies a portal slot.
type Color uint8

const (
	Red Color = iota
	Blue
)

// Colors lists both slots in slot order.
var Colors = [2]Color{Red, Blue}

// Other returns the opposite color.
func (c Color) Other() Color {
	if c == Red {
		return Blue
	}
	return Red
}

// Layer returns the render layer the portal's screen is drawn on.
func (c Color) Layer() world.LayerID {
	if c == Red {
		return world.LayerPortalRed
	}
	return world.LayerPortalBlue
}

// Tint is the color of an unlinked portal and of its HUD marker.
func (c Color) Tint() color.RGBA {
	if c == Red {
		return color.RGBA{R: 235, G: 70, B: 40, A: 255}
	}
	return color.RGBA{R: 40, G: 130, B: 245, A: 255}
}

// RimTint is the frame color drawn around a linked portal.
func (c Color) RimTint() color.RGBA {
	t := c.Tint()
	return color.RGBA{R: t.R/2 + 100, G: t.G/2 + 100, B: t.B/2 + 100, A: 255}
}

func (c Color) String() string {
	switch c {
	case Red:
		return "red"
	case Blue:
		return "blue"
	}
	return "unknown"
}
