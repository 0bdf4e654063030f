package portal

// PassStats counts what one render pass did.
type PassStats struct {
	Rendered int
	Culled   int
	Skipped  int
}

// RenderPass fills the targets of all linked portals before the main
// scene is drawn.
type RenderPass struct {
	registry *Registry

	// Culling skips a pair when neither screen is inside the player frustum.
	Culling bool
}

// NewRenderPass returns a pass over reg's portals.
func NewRenderPass(reg *Registry, culling bool) *RenderPass {
	return &RenderPass{registry: reg, Culling: culling}
}

// Execute renders every linked portal's view into its target.
func (rp *RenderPass) Execute(ctx RenderContext) PassStats {
	var stats PassStats
	frustum := ctx.Frustum()

	for _, c := range Colors {
		p := rp.registry.Get(c)
		if p == nil || !p.IsLinked() {
			stats.Skipped++
			continue
		}
		if rp.Culling &&
			!frustum.IntersectsAABB(p.Bounds()) &&
			!frustum.IntersectsAABB(p.Partner().Bounds()) {
			stats.Culled++
			continue
		}
		if p.Render(ctx) {
			stats.Rendered++
		} else {
			stats.Skipped++
		}
	}
	return stats
}

// Active reports whether p is linked and, with culling on, visible to the
// player through either end of the pair.
func (rp *RenderPass) Active(p *Portal, ctx RenderContext) bool {
	if p == nil || !p.IsLinked() {
		return false
	}
	if !rp.Culling {
		return true
	}
	f := ctx.Frustum()
	return f.IntersectsAABB(p.Bounds()) || f.IntersectsAABB(p.Partner().Bounds())
}
