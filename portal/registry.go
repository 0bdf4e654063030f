package portal

// Registry holds at most one live portal per color.
type Registry struct {
	slots [2]*Portal
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{}
}

// Get returns the portal in slot c, or nil.
func (r *Registry) Get(c Color) *Portal {
	return r.slots[c]
}

// Set stores p in its color's slot, destroying any previous occupant, and
// links it to the opposite slot's portal if there is one.
func (r *Registry) Set(p *Portal) {
	if old := r.slots[p.Color]; old != nil && old != p {
		old.Destroy()
	}
	r.slots[p.Color] = p
	if other := r.slots[p.Color.Other()]; other != nil {
		p.Link(other)
	}
}

// Remove destroys p and clears its slot. Portals not in the registry are
// ignored.
func (r *Registry) Remove(p *Portal) {
	if p == nil || r.slots[p.Color] != p {
		return
	}
	p.Destroy()
	r.slots[p.Color] = nil
}

// Clear destroys both portals.
func (r *Registry) Clear() {
	for _, c := range Colors {
		r.Remove(r.slots[c])
	}
}

// Each calls fn for every occupied slot in slot order.
func (r *Registry) Each(fn func(*Portal)) {
	for _, p := range r.slots {
		if p != nil {
			fn(p)
		}
	}
}

// Linked reports whether both slots hold portals linked to each other.
func (r *Registry) Linked() bool {
	red, blue := r.slots[Red], r.slots[Blue]
	return red != nil && blue != nil && red.IsLinked() && red.Partner() == blue
}

// Count returns the number of live portals.
func (r *Registry) Count() int {
	n := 0
	r.Each(func(*Portal) { n++ })
	return n
}
