package ui

import (
	"testing"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/portal"
)

func TestOverlayToggle(t *testing.T) {
	reg := NewOverlayRegistry()
	if reg.IsEnabled(OverlayCulling) {
		t.Fatal("overlays should start disabled")
	}
	if !reg.Toggle(OverlayCulling) || !reg.IsEnabled(OverlayCulling) {
		t.Fatal("Toggle did not enable culling")
	}
	if reg.Toggle(OverlayCulling) {
		t.Fatal("second Toggle should disable")
	}
	if reg.Toggle("missing") {
		t.Error("unknown overlay toggled on")
	}
}

func TestOverlayExclusive(t *testing.T) {
	reg := NewOverlayRegistry()
	reg.Register(OverlayDescriptor{ID: "a", Category: "debug", Exclusive: []OverlayID{"b"}})
	reg.Register(OverlayDescriptor{ID: "b", Category: "debug", Exclusive: []OverlayID{"a"}})

	reg.SetEnabled("a", true)
	reg.SetEnabled("b", true)
	if reg.IsEnabled("a") || !reg.IsEnabled("b") {
		t.Errorf("exclusive overlays both on: a=%v b=%v", reg.IsEnabled("a"), reg.IsEnabled("b"))
	}
}

func TestOverlayKeyPress(t *testing.T) {
	reg := NewOverlayRegistry()
	id, on, ok := reg.HandleKeyPress(rl.KeyC)
	if !ok || id != OverlayCulling || !on {
		t.Fatalf("HandleKeyPress(C) = %q %v %v", id, on, ok)
	}
	if _, _, ok := reg.HandleKeyPress(rl.KeyF12); ok {
		t.Error("unbound key toggled an overlay")
	}
	if got := reg.EnabledOverlays(); len(got) != 1 || got[0] != OverlayCulling {
		t.Errorf("EnabledOverlays() = %v", got)
	}
}

func TestOverlayCategories(t *testing.T) {
	reg := NewOverlayRegistry()
	cats := reg.Categories()
	want := []string{"view", "render", "debug"}
	if len(cats) != len(want) {
		t.Fatalf("Categories() = %v, want %v", cats, want)
	}
	for i := range want {
		if cats[i] != want[i] {
			t.Errorf("category %d = %q, want %q", i, cats[i], want[i])
		}
	}
	if n := len(reg.ByCategory("debug")); n != 2 {
		t.Errorf("debug overlays = %d, want 2", n)
	}
}

func TestSlotStatusText(t *testing.T) {
	tests := []struct {
		slot SlotStatus
		want string
	}{
		{SlotStatus{}, "empty"},
		{SlotStatus{Placed: true, Surface: "wall +Z"}, "open on wall +Z"},
		{SlotStatus{Placed: true, Linked: true, Surface: "floor"}, "linked on floor"},
	}
	for _, tt := range tests {
		if got := tt.slot.Text(); got != tt.want {
			t.Errorf("Text() = %q, want %q", got, tt.want)
		}
	}
}

func TestStatsPanelFields(t *testing.T) {
	pd := StatsPanel()
	data := HUDData{
		Cooldown: 0.5,
		Pass:     portal.PassStats{Rendered: 2, Culled: 1},
		Culling:  true,
		Surfaces: 12,
	}
	data.Slots[portal.Blue] = SlotStatus{Color: portal.Blue, Placed: true, Surface: "wall -X"}

	fields := map[string]FieldDescriptor{}
	for _, sd := range pd.Sections {
		for _, fd := range sd.Fields {
			fields[fd.ID] = fd
		}
	}

	checks := map[string]string{
		"slot_red":  "empty",
		"slot_blue": "open on wall -X",
		"views":     "2 drawn / 1 culled",
		"culling":   "on",
		"surfaces":  "12",
	}
	for id, want := range checks {
		fd, ok := fields[id]
		if !ok {
			t.Errorf("field %q missing", id)
			continue
		}
		if got := FieldText(fd, data); got != want {
			t.Errorf("%s = %q, want %q", id, got, want)
		}
	}

	if got := fields["cooldown"].Getter(data); got != 0.5 {
		t.Errorf("cooldown = %v", got)
	}
	if fields["last_shot"].Visible(data) {
		t.Error("last shot shown before any shot")
	}
	if got := fields["slot_blue"].ColorGetter(data); got != portal.Blue.Tint() {
		t.Errorf("blue swatch = %v", got)
	}
	if got := fields["slot_red"].ColorGetter(data); got == portal.Red.Tint() {
		t.Error("empty slot uses the portal tint")
	}
}

func TestPanelHeightSkipsHiddenFields(t *testing.T) {
	r := NewRenderer()
	pd := StatsPanel()
	without := r.PanelHeight(pd, HUDData{})
	with := r.PanelHeight(pd, HUDData{LastOutcome: "placed"})
	if with-without != r.Theme.LineHeight {
		t.Errorf("height grew by %d, want %d", with-without, r.Theme.LineHeight)
	}
}

func TestAnchorPosition(t *testing.T) {
	tests := []struct {
		anchor PanelAnchor
		x, y   int32
	}{
		{AnchorTopLeft, 10, 10},
		{AnchorTopRight, 690, 10},
		{AnchorBottomLeft, 10, 490},
		{AnchorBottomRight, 690, 490},
		{AnchorCenter, 350, 250},
	}
	for _, tt := range tests {
		x, y := AnchorPosition(tt.anchor, 1000, 600, 300, 100, 10)
		if x != tt.x || y != tt.y {
			t.Errorf("anchor %d = (%d,%d), want (%d,%d)", tt.anchor, x, y, tt.x, tt.y)
		}
	}
}

func TestFieldTextDefaultFormat(t *testing.T) {
	fd := FieldDescriptor{Getter: func(any) float32 { return 1.5 }}
	if got := FieldText(fd, nil); got != "1.50" {
		t.Errorf("FieldText() = %q", got)
	}
	if got := FieldText(FieldDescriptor{}, nil); got != "" {
		t.Errorf("empty field text = %q", got)
	}
}
