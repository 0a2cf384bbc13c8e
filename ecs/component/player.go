package component

// PlayerTag marks the single player-controlled entity. Boss targeting,
// maintain-distance movement, and hazard damage all resolve against it.
type PlayerTag struct{}

var PlayerTagComponent = NewComponent[PlayerTag]()

// Player holds the player's tuning and fire state.
type Player struct {
	MoveSpeed       float64
	ProjectileSpeed float64
	ProjectileSize  float64
	Damage          float64
	FireCooldown    float64

	SinceShot float64
}

var PlayerComponent = NewComponent[Player]()
