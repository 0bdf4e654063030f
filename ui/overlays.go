package ui

import (
	"slices"

	rl "github.com/gen2brain/raylib-go/raylib"
)

// OverlayID names a toggleable overlay.
type OverlayID string

const (
	OverlayHUD          OverlayID = "hud"
	OverlayCrosshair    OverlayID = "crosshair"
	OverlayControls     OverlayID = "controls"
	OverlayCulling      OverlayID = "culling"
	OverlayPortalBounds OverlayID = "portal_bounds"
	OverlayHitMarker    OverlayID = "hit_marker"
)

// OverlayDescriptor describes one toggle shown in the controls panel.
type OverlayDescriptor struct {
	ID          OverlayID
	Name        string
	Description string
	Key         int32  // toggle key, 0 for none
	KeyLabel    string // e.g. "Tab"
	Category    string // "view", "render" or "debug"

	// Exclusive overlays are switched off when this one is switched on.
	Exclusive []OverlayID
}

var defaultOverlays = []OverlayDescriptor{
	{ID: OverlayHUD, Name: "Stats Panel", Description: "Portal slots, cooldown and render counters", Key: rl.KeyH, KeyLabel: "H", Category: "view"},
	{ID: OverlayCrosshair, Name: "Crosshair", Description: "Aim marker with cooldown ring", Key: rl.KeyX, KeyLabel: "X", Category: "view"},
	{ID: OverlayControls, Name: "Controls", Description: "This panel", Key: rl.KeyTab, KeyLabel: "Tab", Category: "view"},
	{ID: OverlayCulling, Name: "Frustum Culling", Description: "Skip portal views whose screens are off screen", Key: rl.KeyC, KeyLabel: "C", Category: "render"},
	{ID: OverlayPortalBounds, Name: "Portal Bounds", Description: "Outline each portal's world bounds", Key: rl.KeyB, KeyLabel: "B", Category: "debug"},
	{ID: OverlayHitMarker, Name: "Aim Hit", Description: "Mark where the aim ray meets the level", Key: rl.KeyV, KeyLabel: "V", Category: "debug"},
}

type overlayState struct {
	desc OverlayDescriptor
	on   bool
}

// OverlayRegistry holds overlay descriptors in registration order and
// their on/off state.
type OverlayRegistry struct {
	entries []overlayState
	index   map[OverlayID]int
}

// NewOverlayRegistry returns a registry with the default overlays, all off.
func NewOverlayRegistry() *OverlayRegistry {
	r := &OverlayRegistry{index: make(map[OverlayID]int)}
	for _, d := range defaultOverlays {
		r.Register(d)
	}
	return r
}

// Register adds an overlay, switched off. Registering an existing ID
// replaces its descriptor.
func (r *OverlayRegistry) Register(desc OverlayDescriptor) {
	if i, ok := r.index[desc.ID]; ok {
		r.entries[i].desc = desc
		return
	}
	r.index[desc.ID] = len(r.entries)
	r.entries = append(r.entries, overlayState{desc: desc})
}

func (r *OverlayRegistry) entry(id OverlayID) *overlayState {
	i, ok := r.index[id]
	if !ok {
		return nil
	}
	return &r.entries[i]
}

// Toggle flips an overlay and returns its new state.
func (r *OverlayRegistry) Toggle(id OverlayID) bool {
	e := r.entry(id)
	if e == nil {
		return false
	}
	r.SetEnabled(id, !e.on)
	return e.on
}

// SetEnabled sets an overlay's state. Enabling it disables its exclusive
// overlays.
func (r *OverlayRegistry) SetEnabled(id OverlayID, on bool) {
	e := r.entry(id)
	if e == nil {
		return
	}
	e.on = on
	if !on {
		return
	}
	for _, other := range e.desc.Exclusive {
		if x := r.entry(other); x != nil {
			x.on = false
		}
	}
}

// IsEnabled reports whether an overlay is on.
func (r *OverlayRegistry) IsEnabled(id OverlayID) bool {
	e := r.entry(id)
	return e != nil && e.on
}

// Get returns the descriptor of id.
func (r *OverlayRegistry) Get(id OverlayID) (OverlayDescriptor, bool) {
	e := r.entry(id)
	if e == nil {
		return OverlayDescriptor{}, false
	}
	return e.desc, true
}

// ByCategory returns the descriptors in category, in registration order.
func (r *OverlayRegistry) ByCategory(category string) []OverlayDescriptor {
	var out []OverlayDescriptor
	for _, e := range r.entries {
		if e.desc.Category == category {
			out = append(out, e.desc)
		}
	}
	return out
}

// Categories returns each category once, in first-registration order.
func (r *OverlayRegistry) Categories() []string {
	var cats []string
	for _, e := range r.entries {
		if !slices.Contains(cats, e.desc.Category) {
			cats = append(cats, e.desc.Category)
		}
	}
	return cats
}

// HandleKeyPress toggles the overlay bound to key. ok is false when no
// overlay uses the key.
func (r *OverlayRegistry) HandleKeyPress(key int32) (id OverlayID, on, ok bool) {
	if key == 0 {
		return "", false, false
	}
	for _, e := range r.entries {
		if e.desc.Key == key {
			return e.desc.ID, r.Toggle(e.desc.ID), true
		}
	}
	return "", false, false
}

// EnabledOverlays lists the overlays that are on.
func (r *OverlayRegistry) EnabledOverlays() []OverlayID {
	var ids []OverlayID
	for _, e := range r.entries {
		if e.on {
			ids = append(ids, e.desc.ID)
		}
	}
	return ids
}
