package component

import "github.com/jakecoffman/cp"

// Transform is a world-space position on the arena plane. Alt is height above
// the ground plane; outside of the spawn-fall animation and mortar lobs it is
// forced back to GroundAlt every tick.
type Transform struct {
	Pos       cp.Vector
	Alt       float64
	GroundAlt float64
	// Facing is the unit forward vector, used for directional shield checks.
	Facing cp.Vector
	Radius float64
}

var TransformComponent = NewComponent[Transform]()
