package portal

import (
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/pthm-cable/portals/geom"
	"github.com/pthm-cable/portals/world"
)

// Outcome is the result of a fire attempt.
type Outcome uint8

const (
	OutcomePlaced Outcome = iota
	OutcomeMissed
	OutcomeCoolingDown
	OutcomeRejected
)

func (o Outcome) String() string {
	switch o {
	case OutcomePlaced:
		return "placed"
	case OutcomeMissed:
		return "missed"
	case OutcomeCoolingDown:
		return "cooling_down"
	case OutcomeRejected:
		return "rejected"
	}
	return "unknown"
}

// ShooterConfig holds placement parameters.
type ShooterConfig struct {
	Size         mgl32.Vec2
	Cooldown     float32
	MaxDistance  float32
	SpawnOffset  float32
	CarveMargin  float32
	OpenDuration float32

	// BlockMask selects the layers that stop a shot; SurfaceMask the layers
	// a portal may be placed on.
	BlockMask   world.LayerMask
	SurfaceMask world.LayerMask
}

// DefaultShooterConfig returns the parameters used when no config is loaded.
func DefaultShooterConfig() ShooterConfig {
	return ShooterConfig{
		Size:         mgl32.Vec2{1.2, 2},
		Cooldown:     0.25,
		MaxDistance:  100,
		SpawnOffset:  0.001,
		CarveMargin:  0.01,
		OpenDuration: 0.3,
		BlockMask:    world.AllLayers.Without(world.LayerPortalRed).Without(world.LayerPortalBlue),
		SurfaceMask:  world.LayerDefault.Mask() | world.LayerPortalSurface.Mask(),
	}
}

// Shooter turns fire commands into placed, linked portals.
type Shooter struct {
	cfg      ShooterConfig
	world    *world.World
	registry *Registry
	carver   *Carver
	cooldown float32
}

// NewShooter wires a shooter to the level and the portal registry.
func NewShooter(cfg ShooterConfig, w *world.World, reg *Registry) *Shooter {
	return &Shooter{
		cfg:      cfg,
		world:    w,
		registry: reg,
		carver:   NewCarver(w, cfg.CarveMargin),
	}
}

// Carver exposes the shooter's surface carver.
func (s *Shooter) Carver() *Carver {
	return s.carver
}

// Tick advances the cooldown timer.
func (s *Shooter) Tick(dt float32) {
	s.cooldown = max(0, s.cooldown-dt)
}

// Cooldown returns the remaining cooldown in seconds.
func (s *Shooter) Cooldown() float32 {
	return s.cooldown
}

// CooldownFraction returns the remaining cooldown as a fraction of the full
// cooldown.
func (s *Shooter) CooldownFraction() float32 {
	if s.cfg.Cooldown <= 0 {
		return 0
	}
	return s.cooldown / s.cfg.Cooldown
}

// Fire shoots a portal of color c from the viewer pose along its forward
// axis. Any attempt not blocked by the cooldown restarts it.
func (s *Shooter) Fire(c Color, from geom.Pose) (Outcome, error) {
	if s.cooldown > 0 {
		return OutcomeCoolingDown, nil
	}
	s.cooldown = s.cfg.Cooldown

	ray := geom.Ray{Origin: from.Position, Dir: from.Forward()}
	hit, ok := s.world.Raycast(ray, s.cfg.MaxDistance, s.cfg.BlockMask)
	if !ok || !s.cfg.SurfaceMask.Has(s.world.Layer(hit.Surface)) {
		return OutcomeMissed, nil
	}
	if _, err := s.Place(c, hit, ray.Dir, from.Right()); err != nil {
		return OutcomeRejected, err
	}
	return OutcomePlaced, nil
}

// Place puts a portal of color c at hit. The previous portal of that color
// is destroyed and its cut restored; the new portal links to the other
// color if present. On ErrCarveFailed or ErrEdgeHit nothing changes.
func (s *Shooter) Place(c Color, hit world.Hit, rayDir, cameraRight mgl32.Vec3) (*Portal, error) {
	original := s.carver.Resolve(hit.Surface)
	normal := geom.SafeNormalize(hit.Normal)
	right, up := PortalBasis(normal, cameraRight)
	if !s.carver.FacesSurface(original, right, up, normal) {
		return nil, fmt.Errorf("%w: %s", ErrEdgeHit, s.world.Name(original))
	}

	spawn := hit.Point.Sub(geom.SafeNormalize(rayDir).Mul(s.cfg.SpawnOffset))
	spawn = ClampToBounds(spawn, geom.LookRotation(normal, up), s.cfg.Size, s.world.Bounds(original))

	p := New(c, spawn, s.cfg.Size, s.cfg.OpenDuration)
	p.SetPose(normal, up)
	p.Surface = original

	cut := s.carver.Cutout(original, p.Pose, s.cfg.Size)
	if _, err := s.carver.Carve(c, original, cut); err != nil {
		return nil, err
	}
	s.registry.Set(p)
	return p, nil
}

// Remove destroys the portal of color c and restores the surface it cut.
func (s *Shooter) Remove(c Color) error {
	err := s.carver.Restore(c)
	s.registry.Remove(s.registry.Get(c))
	return err
}

// Reset removes both portals.
func (s *Shooter) Reset() error {
	var errs []error
	for _, c := range Colors {
		errs = append(errs, s.Remove(c))
	}
	s.cooldown = 0
	return errors.Join(errs...)
}

// PortalBasis returns the right and up axes of a portal facing normal. Up
// follows world up; on floors and ceilings the camera's right axis is used.
func PortalBasis(normal, cameraRight mgl32.Vec3) (right, up mgl32.Vec3) {
	right = geom.SafeNormalize(geom.WorldUp.Cross(normal))
	if geom.IsZero(right) {
		right = geom.SafeNormalize(geom.PlanarComponent(cameraRight, normal))
		if geom.IsZero(right) {
			right = geom.SafeNormalize(geom.PlanarComponent(geom.WorldRight, normal))
		}
	}
	up = normal.Cross(right)
	return right, up
}

// ClampToBounds shifts a portal rectangle centered at pos so its corners lie
// inside bounds. Movement along the portal normal is discarded. A rectangle
// larger than bounds on some axis is centered on that axis.
func ClampToBounds(pos mgl32.Vec3, rot mgl32.Quat, size mgl32.Vec2, bounds geom.AABB) mgl32.Vec3 {
	pose := geom.Pose{Position: pos, Rotation: rot}
	hw, hh := size.X()/2, size.Y()/2
	corners := [4]mgl32.Vec3{
		pose.TransformPoint(mgl32.Vec3{-hw, hh, 0}),
		pose.TransformPoint(mgl32.Vec3{hw, hh, 0}),
		pose.TransformPoint(mgl32.Vec3{hw, -hh, 0}),
		pose.TransformPoint(mgl32.Vec3{-hw, -hh, 0}),
	}
	lo, hi := corners[0], corners[0]
	for _, c := range corners[1:] {
		for i := 0; i < 3; i++ {
			lo[i] = min(lo[i], c[i])
			hi[i] = max(hi[i], c[i])
		}
	}

	var shift mgl32.Vec3
	for i := 0; i < 3; i++ {
		switch {
		case hi[i]-lo[i] > bounds.Max[i]-bounds.Min[i]:
			shift[i] = (bounds.Min[i]+bounds.Max[i])/2 - (lo[i]+hi[i])/2
		case lo[i] < bounds.Min[i]:
			shift[i] = bounds.Min[i] - lo[i]
		case hi[i] > bounds.Max[i]:
			shift[i] = bounds.Max[i] - hi[i]
		}
	}
	shift = geom.PlanarComponent(shift, pose.Forward())
	return pos.Add(shift)
}
