package world

import (
	"fmt"
	"strings"
)

// LayerID identifies one of up to 32 layers.
type LayerID uint8

// LayerMask is a set of layers.
type LayerMask uint32

const (
	LayerDefault LayerID = iota
	LayerPortalSurface
	LayerPortalRed
	LayerPortalBlue
	LayerDecoration
)

// AllLayers matches every layer.
const AllLayers LayerMask = ^LayerMask(0)

var layerNames = map[string]LayerID{
	"Default":       LayerDefault,
	"PortalSurface": LayerPortalSurface,
	"PortalRed":     LayerPortalRed,
	"PortalBlue":    LayerPortalBlue,
	"Decoration":    LayerDecoration,
}

// Mask returns the mask containing only l.
func (l LayerID) Mask() LayerMask {
	return 1 << l
}

func (l LayerID) String() string {
	for name, id := range layerNames {
		if id == l {
			return name
		}
	}
	return fmt.Sprintf("Layer%d", uint8(l))
}

// Has reports whether the mask contains l.
func (m LayerMask) Has(l LayerID) bool {
	return m&l.Mask() != 0
}

// Without returns the mask with l removed.
func (m LayerMask) Without(l LayerID) LayerMask {
	return m &^ l.Mask()
}

// NameToLayer resolves a layer name.
func NameToLayer(name string) (LayerID, error) {
	id, ok := layerNames[name]
	if !ok {
		return 0, fmt.Errorf("unknown layer %q", name)
	}
	return id, nil
}

// MaskFromNames builds a mask from layer names.
func MaskFromNames(names []string) (LayerMask, error) {
	var m LayerMask
	for _, n := range names {
		id, err := NameToLayer(strings.TrimSpace(n))
		if err != nil {
			return 0, err
		}
		m |= id.Mask()
	}
	return m, nil
}

// DrawFilter selects which surfaces a scene draw includes.
type DrawFilter struct {
	Queue Queue
	Tags  Tag
	Mask  LayerMask
}

// Passes reports whether a surface with this material on layer passes f.
func (m Material) Passes(f DrawFilter, layer LayerID) bool {
	return m.Queue == f.Queue && m.Tags&f.Tags != 0 && f.Mask.Has(layer)
}
