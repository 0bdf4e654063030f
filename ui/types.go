// Package ui provides a descriptor-driven HUD for the portal sandbox.
// Panels are described through metadata with getters over the frame's HUD
// data, so layouts change without touching the drawing code.
package ui

import rl "github.com/gen2brain/raylib-go/raylib"

// WidgetType specifies how a field should be rendered.
type WidgetType int

const (
	WidgetText        WidgetType = iota // Plain text with format string
	WidgetBar                           // Progress bar [0, 1]
	WidgetColorSwatch                   // Color preview square followed by text
	WidgetSection                       // Section header
	WidgetSpacer                        // Vertical spacing
)

// FieldDescriptor defines how to display a single piece of data.
type FieldDescriptor struct {
	ID          string             // Unique identifier for the field
	Label       string             // Display label
	Widget      WidgetType         // How to render
	Format      string             // Printf format for text (e.g., "%.2f")
	Color       rl.Color           // Optional color override
	Visible     func(any) bool     // Optional visibility check (nil = always visible)
	Getter      func(any) float32  // Value extractor (for numeric fields)
	TextGetter  func(any) string   // Value extractor (for text fields)
	ColorGetter func(any) rl.Color // Color extractor (for color swatches)
}

// SectionDescriptor defines a group of fields with a header.
type SectionDescriptor struct {
	ID      string            // Unique identifier
	Title   string            // Section header text
	Fields  []FieldDescriptor // Fields in this section
	Visible func(any) bool    // Optional visibility check for entire section
}

// PanelDescriptor defines a complete panel layout.
type PanelDescriptor struct {
	ID       string              // Unique identifier
	Title    string              // Panel title (optional)
	Sections []SectionDescriptor // Sections in order
	Width    int32               // Panel width
	Anchor   PanelAnchor         // Where to position
}

// PanelAnchor specifies where a panel is anchored on screen.
type PanelAnchor int

const (
	AnchorTopLeft PanelAnchor = iota
	AnchorTopRight
	AnchorBottomLeft
	AnchorBottomRight
	AnchorCenter
)

// AnchorPosition returns the top-left corner of a w×h panel anchored in a
// screen of the given size, inset by margin.
func AnchorPosition(a PanelAnchor, screenW, screenH, w, h, margin int32) (x, y int32) {
	switch a {
	case AnchorTopRight:
		return screenW - w - margin, margin
	case AnchorBottomLeft:
		return margin, screenH - h - margin
	case AnchorBottomRight:
		return screenW - w - margin, screenH - h - margin
	case AnchorCenter:
		return (screenW - w) / 2, (screenH - h) / 2
	default:
		return margin, margin
	}
}

// Theme holds UI styling constants.
type Theme struct {
	PanelBg        rl.Color
	PanelBorder    rl.Color
	SectionHeader  rl.Color
	LabelColor     rl.Color
	ValueColor     rl.Color
	BarBg          rl.Color
	BarFill        rl.Color
	BarFillReady   rl.Color
	Crosshair      rl.Color
	Padding        int32
	LineHeight     int32
	LabelWidth     int32
	BarHeight      int32
	FontSize       int32
	HeaderFontSize int32
}

// DefaultTheme returns the default UI theme.
func DefaultTheme() Theme {
	return Theme{
		PanelBg:        rl.Color{R: 20, G: 25, B: 30, A: 220},
		PanelBorder:    rl.Color{R: 60, G: 70, B: 80, A: 255},
		SectionHeader:  rl.Yellow,
		LabelColor:     rl.LightGray,
		ValueColor:     rl.RayWhite,
		BarBg:          rl.Color{R: 40, G: 40, B: 40, A: 255},
		BarFill:        rl.Color{R: 200, G: 180, B: 100, A: 255},
		BarFillReady:   rl.Color{R: 100, G: 200, B: 100, A: 255},
		Crosshair:      rl.Color{R: 255, G: 255, B: 255, A: 200},
		Padding:        10,
		LineHeight:     16,
		LabelWidth:     90,
		BarHeight:      10,
		FontSize:       12,
		HeaderFontSize: 14,
	}
}
