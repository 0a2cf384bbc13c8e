package component

import "github.com/jakecoffman/cp"

// Projectile is a pooled projectile record. Records are acquired from the
// shared pool and released implicitly when Live flips false; nothing holds a
// record across its release.
type Projectile struct {
	Pos      cp.Vector
	Vel      cp.Vector
	Radius   float64
	Damage   float64
	TTL      float64
	FromBoss bool
	Live     bool

	// Lob, when set, drives the projectile along a closed-form parabola
	// instead of linear motion.
	Lob *LobArc
}

// LobArc is a closed-form parabolic trajectory from Start to End over
// FlightTime seconds, peaking at Apex above the ground plane.
type LobArc struct {
	Start      cp.Vector
	End        cp.Vector
	FlightTime float64
	Apex       float64
	Elapsed    float64
}

// At returns the plane position and altitude at the arc's current progress.
func (a *LobArc) At() (cp.Vector, float64) {
	if a.FlightTime <= 0 {
		return a.End, 0
	}
	t := a.Elapsed / a.FlightTime
	if t > 1 {
		t = 1
	}
	pos := a.Start.Lerp(a.End, t)
	alt := 4 * a.Apex * t * (1 - t)
	return pos, alt
}

// Done reports whether the arc reached its impact point.
func (a *LobArc) Done() bool {
	return a.Elapsed >= a.FlightTime
}
