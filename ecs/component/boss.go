package component

import "github.com/jakecoffman/cp"

// BossType tags a boss archetype. Attack behavior is dispatched through a
// handler table keyed by this tag, not through a central switch.
type BossType string

// AIState is the coarse activity state of a boss.
type AIState string

const (
	StateSpawning  AIState = "spawning"
	StateIdle      AIState = "idle"
	StateAttacking AIState = "attacking"
	StateSpecial   AIState = "special"
)

// Boss holds the static, data-driven configuration of a boss encounter.
// Everything here comes from prefabs; runtime progression lives in BossRuntime.
type Boss struct {
	ID              uint64
	Name            string
	Type            BossType
	MoveSpeed       float64
	EngagementRange float64
	ContactDamage   float64
	Phases          []Phase
	Shield          *ShieldConfig
	Guard           *GuardConfig
}

// Phase is a health-window-bounded behavior configuration. Windows are
// expected to partition [0,1]: HealthPercent is the upper bound,
// MinHealthPercent the lower bound.
type Phase struct {
	Name             string
	HealthPercent    float64
	MinHealthPercent float64
	// OnStart names phase-entry effects: shieldShatter, armorBreak,
	// spawnClones, spawnPhantomClones, deployPlatforms, recallPlatforms,
	// summonMinions. Unknown tags are logged and ignored.
	OnStart          []string
	MoveMultiplier   float64
	MaintainDistance float64
	Color            string
	PatternMode      string // "cycle" (default) or "random"
	Patterns         []Pattern
}

// Pattern is one named attack the director may pick during a phase.
// Only the fields a given kind reads are meaningful; the rest stay zero.
type Pattern struct {
	Kind     string
	Cooldown float64
	Weight   float64
	// RetryOnNoTarget leaves the attack cooldown unconsumed when the pattern
	// aborts for lack of a valid target, so it retries next tick. Patterns
	// without the flag still consume their cooldown on abort.
	RetryOnNoTarget bool

	Count        int
	ArcDegrees   float64
	Speed        float64
	Damage       float64
	Radius       float64
	Range        float64
	Duration     float64
	WarnDuration float64
	Interval     float64
	ApexHeight   float64
	AngularVel   float64
	Script       string
	MinionKind   string
	MinionLevel  int
}

// ShieldConfig is a directional shield: attacks arriving within ArcDegrees
// of the boss's facing are reduced by Reduction while the shield is up.
type ShieldConfig struct {
	ArcDegrees float64
	Reduction  float64
}

// GuardConfig is breakable invulnerability. Blocked hits increment a counter;
// at Threshold the boss turns vulnerable for VulnerableFor seconds, then
// reverts. Blocked hits below the threshold relocate the boss to a random
// point between RelocateMin and RelocateMax away.
type GuardConfig struct {
	Threshold     int
	VulnerableFor float64
	RelocateMin   float64
	RelocateMax   float64
}

// ActiveAttack is the single exclusive attack a boss may run (charge, dash).
// While set, it drives movement and blocks other exclusive attacks.
type ActiveAttack struct {
	Kind     string
	Target   cp.Vector
	Dir      cp.Vector
	Speed    float64
	Duration float64
	Elapsed  float64
}

// BossRuntime is the mutable per-tick state of a boss.
type BossRuntime struct {
	State AIState

	PhaseIndex     int
	AttackCooldown float64
	PatternCursor  int
	Current        *ActiveAttack

	Invulnerable bool
	// TransitionGen increments on every phase transition. Deferred
	// transition-window callbacks compare it so a stale window never clears
	// invulnerability granted by a newer transition.
	TransitionGen uint64
	BlockedHits   int
	ShieldActive  bool
	ArmorBroken   bool

	MoveMultiplier   float64
	MaintainDistance float64
	Color            string

	// Active transient effects owned by this boss. Reaped once per tick by
	// the effect system; nothing else removes entries mid-iteration.
	Warnings     []*Telegraph
	Hazards      []*Hazard
	Lasers       []*LaserBeam
	GravityZones []*GravityZone
	Orbitals     []*Orbital
}

// ClearEffects drops every owned transient effect at once. Used on death and
// despawn so no orphaned effect keeps ticking.
func (rt *BossRuntime) ClearEffects() {
	rt.Warnings = nil
	rt.Hazards = nil
	rt.Lasers = nil
	rt.GravityZones = nil
	rt.Orbitals = nil
}

var BossComponent = NewComponent[Boss]()
var BossRuntimeComponent = NewComponent[BossRuntime]()
