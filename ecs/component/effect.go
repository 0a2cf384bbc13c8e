package component

import "github.com/jakecoffman/cp"

// Effect is the uniform lifecycle contract for transient boss effects.
// Advance ages the effect by dt and reports whether it is still active;
// false triggers removal from the owning list on the same tick.
type Effect interface {
	Advance(dt float64) bool
}

// Telegraph is a timed ground warning preceding an attack. The attack itself
// is scheduled separately on the timeline; the telegraph only marks the area.
type Telegraph struct {
	Pos      cp.Vector
	Radius   float64
	Duration float64
	Elapsed  float64
}

func (t *Telegraph) Advance(dt float64) bool {
	t.Elapsed += dt
	return t.Elapsed < t.Duration
}

// Hazard is a persistent area effect dealing periodic damage while active.
type Hazard struct {
	Pos      cp.Vector
	Radius   float64
	Damage   float64
	Interval float64
	Duration float64
	Elapsed  float64

	sinceTick float64
}

func (h *Hazard) Advance(dt float64) bool {
	h.Elapsed += dt
	h.sinceTick += dt
	return h.Elapsed < h.Duration
}

// TickDue reports whether a damage tick elapsed and resets the accumulator.
func (h *Hazard) TickDue() bool {
	interval := h.Interval
	if interval <= 0 {
		interval = 0.5
	}
	if h.sinceTick < interval {
		return false
	}
	h.sinceTick -= interval
	return true
}

// LaserBeam is a rotating beam anchored at Origin.
type LaserBeam struct {
	Origin    cp.Vector
	Angle     float64
	SweepRate float64
	Length    float64
	Width     float64
	Damage    float64
	Duration  float64
	Elapsed   float64
}

func (l *LaserBeam) Advance(dt float64) bool {
	l.Angle += l.SweepRate * dt
	l.Elapsed += dt
	return l.Elapsed < l.Duration
}

// End returns the far endpoint of the beam.
func (l *LaserBeam) End() cp.Vector {
	return l.Origin.Add(cp.ForAngle(l.Angle).Mult(l.Length))
}

// GravityZone pulls the player toward its center while active.
type GravityZone struct {
	Pos      cp.Vector
	Radius   float64
	Pull     float64
	Duration float64
	Elapsed  float64
}

func (g *GravityZone) Advance(dt float64) bool {
	g.Elapsed += dt
	return g.Elapsed < g.Duration
}

// Orbital is a projectile circling a center in a non-damaging holding state
// until launched, or permanently when Persistent (weapon rotation). Launching
// converts it into a pooled linear projectile along its current angle.
type Orbital struct {
	Center     cp.Vector
	Angle      float64
	Radius     float64
	AngularVel float64
	Damage     float64
	Speed      float64
	Persistent bool
	Duration   float64
	Elapsed    float64
}

func (o *Orbital) Advance(dt float64) bool {
	o.Angle += o.AngularVel * dt
	o.Elapsed += dt
	return o.Elapsed < o.Duration
}

// Pos returns the orbital's current world position.
func (o *Orbital) Pos() cp.Vector {
	return o.Center.Add(cp.ForAngle(o.Angle).Mult(o.Radius))
}
