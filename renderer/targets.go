package renderer

import (
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/pthm-cable/portals/portal"
)

// Target is a raylib render texture used as a portal's off-screen buffer.
type Target struct {
	rt       rl.RenderTexture2D
	width    int
	height   int
	released bool
}

// Width returns the target width in pixels.
func (t *Target) Width() int { return t.width }

// Height returns the target height in pixels.
func (t *Target) Height() int { return t.height }

// Texture returns the color attachment.
func (t *Target) Texture() rl.Texture2D { return t.rt.Texture }

// Release frees the GPU resources. Safe to call more than once.
func (t *Target) Release() {
	if t.released {
		return
	}
	rl.UnloadRenderTexture(t.rt)
	t.released = true
}

// Targets allocates raylib render textures. Requires an open window.
type Targets struct{}

// Allocate creates a render texture of the given size.
func (Targets) Allocate(width, height int) portal.Target {
	return &Target{
		rt:     rl.LoadRenderTexture(int32(width), int32(height)),
		width:  width,
		height: height,
	}
}

// HeadlessTarget is a size-only target for runs without a window.
type HeadlessTarget struct {
	width, height int
	owner         *HeadlessTargets
	released      bool
}

func (t *HeadlessTarget) Width() int  { return t.width }
func (t *HeadlessTarget) Height() int { return t.height }

// Released reports whether Release has been called.
func (t *HeadlessTarget) Released() bool { return t.released }

func (t *HeadlessTarget) Release() {
	if t.released {
		return
	}
	t.released = true
	t.owner.live--
}

// HeadlessTargets hands out HeadlessTargets and counts the live ones.
type HeadlessTargets struct {
	live      int
	allocated int
}

// Allocate returns a new headless target.
func (h *HeadlessTargets) Allocate(width, height int) portal.Target {
	h.live++
	h.allocated++
	return &HeadlessTarget{width: width, height: height, owner: h}
}

// Live returns the number of allocated, unreleased targets.
func (h *HeadlessTargets) Live() int { return h.live }

// Allocated returns the total number of allocations so far.
func (h *HeadlessTargets) Allocated() int { return h.allocated }
