package component

// MinionRole distinguishes the transient entities a boss can own.
type MinionRole string

const (
	RoleMinion   MinionRole = "minion"
	RoleClone    MinionRole = "clone"
	RolePhantom  MinionRole = "phantom"
	RolePlatform MinionRole = "platform"
)

// Minion marks an entity as owned by a boss. Ownership is a back-reference:
// the boss's minion list is the set of live entities whose Owner matches,
// so destroying the boss can find and release everything it spawned.
type Minion struct {
	Owner uint64 // boss entity handle
	Role  MinionRole
	Kind  string
	Level int

	MoveSpeed     float64
	ContactDamage float64
	SinceHit      float64
}

var MinionComponent = NewComponent[Minion]()
