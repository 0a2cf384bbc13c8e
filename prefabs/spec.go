package prefabs

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

func LoadSpec[T any](filename string) (T, error) {
	var zero T
	data, err := Load(filename)
	if err != nil {
		return zero, fmt.Errorf("prefabs: load %s: %w", filename, err)
	}

	var spec T
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return zero, fmt.Errorf("prefabs: unmarshal %s: %w", filename, err)
	}

	return spec, nil
}

type BossSpec struct {
	Name            string      `yaml:"name"`
	Type            string      `yaml:"type"`
	Health          float64     `yaml:"health"`
	MoveSpeed       float64     `yaml:"move_speed"`
	EngagementRange float64     `yaml:"engagement_range"`
	ContactDamage   float64     `yaml:"contact_damage"`
	Radius          float64     `yaml:"radius"`
	SpawnAltitude   float64     `yaml:"spawn_altitude"`
	Shield          *ShieldSpec `yaml:"shield"`
	Guard           *GuardSpec  `yaml:"guard"`
	Phases          []PhaseSpec `yaml:"phases"`
}

type ShieldSpec struct {
	ArcDegrees float64 `yaml:"arc_degrees"`
	Reduction  float64 `yaml:"reduction"`
}

type GuardSpec struct {
	Threshold     int     `yaml:"threshold"`
	VulnerableFor float64 `yaml:"vulnerable_for"`
	RelocateMin   float64 `yaml:"relocate_min"`
	RelocateMax   float64 `yaml:"relocate_max"`
}

type PhaseSpec struct {
	Name             string        `yaml:"name"`
	HealthPercent    float64       `yaml:"health_percent"`
	MinHealthPercent float64       `yaml:"min_health_percent"`
	OnStart          []string      `yaml:"on_start"`
	MoveMultiplier   float64       `yaml:"move_multiplier"`
	MaintainDistance float64       `yaml:"maintain_distance"`
	Color            string        `yaml:"color"`
	PatternMode      string        `yaml:"pattern_mode"`
	Patterns         []PatternSpec `yaml:"patterns"`
}

type PatternSpec struct {
	Kind            string  `yaml:"kind"`
	Cooldown        float64 `yaml:"cooldown"`
	Weight          float64 `yaml:"weight"`
	RetryOnNoTarget bool    `yaml:"retry_on_no_target"`
	Count           int     `yaml:"count"`
	ArcDegrees      float64 `yaml:"arc_degrees"`
	Speed           float64 `yaml:"speed"`
	Damage          float64 `yaml:"damage"`
	Radius          float64 `yaml:"radius"`
	Range           float64 `yaml:"range"`
	Duration        float64 `yaml:"duration"`
	WarnDuration    float64 `yaml:"warn_duration"`
	Interval        float64 `yaml:"interval"`
	ApexHeight      float64 `yaml:"apex_height"`
	AngularVel      float64 `yaml:"angular_vel"`
	Script          string  `yaml:"script"`
	MinionKind      string  `yaml:"minion_kind"`
	MinionLevel     int     `yaml:"minion_level"`
}

// LoadBossSpec loads and validates <name>.yaml.
func LoadBossSpec(name string) (*BossSpec, error) {
	spec, err := LoadSpec[BossSpec](name + ".yaml")
	if err != nil {
		return nil, err
	}
	if err := spec.Validate(); err != nil {
		return nil, fmt.Errorf("prefabs: %s.yaml: %w", name, err)
	}
	return &spec, nil
}

// Validate rejects specs whose phase windows do not partition [0, 1] from
// full health down to zero, and other plainly broken fields. Catching these
// at load time beats a boss that silently never changes phase.
func (s *BossSpec) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("missing name")
	}
	if s.Type == "" {
		return fmt.Errorf("%s: missing type", s.Name)
	}
	if s.Health <= 0 {
		return fmt.Errorf("%s: health must be positive, got %v", s.Name, s.Health)
	}
	if len(s.Phases) == 0 {
		return fmt.Errorf("%s: needs at least one phase", s.Name)
	}
	if s.Phases[0].HealthPercent != 1 {
		return fmt.Errorf("%s: first phase must start at health_percent 1, got %v", s.Name, s.Phases[0].HealthPercent)
	}
	if last := s.Phases[len(s.Phases)-1]; last.MinHealthPercent != 0 {
		return fmt.Errorf("%s: last phase must end at min_health_percent 0, got %v", s.Name, last.MinHealthPercent)
	}
	for i, p := range s.Phases {
		if p.MinHealthPercent >= p.HealthPercent {
			return fmt.Errorf("%s: phase %d (%s): empty health window [%v, %v]", s.Name, i, p.Name, p.MinHealthPercent, p.HealthPercent)
		}
		if i > 0 && s.Phases[i-1].MinHealthPercent != p.HealthPercent {
			return fmt.Errorf("%s: phase %d (%s): window gap, previous ends at %v but phase starts at %v",
				s.Name, i, p.Name, s.Phases[i-1].MinHealthPercent, p.HealthPercent)
		}
		if len(p.Patterns) == 0 {
			return fmt.Errorf("%s: phase %d (%s): no patterns", s.Name, i, p.Name)
		}
		for j, pat := range p.Patterns {
			if pat.Kind == "" {
				return fmt.Errorf("%s: phase %d (%s): pattern %d missing kind", s.Name, i, p.Name, j)
			}
			if pat.Kind == "script" && pat.Script == "" {
				return fmt.Errorf("%s: phase %d (%s): pattern %d needs a script path", s.Name, i, p.Name, j)
			}
		}
	}
	return nil
}

type ArenaSpec struct {
	Width       float64   `yaml:"width"`
	Height      float64   `yaml:"height"`
	PlayerSpawn PointSpec `yaml:"player_spawn"`
	BossSpawn   PointSpec `yaml:"boss_spawn"`
}

type PointSpec struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

func LoadArenaSpec() (*ArenaSpec, error) {
	spec, err := LoadSpec[ArenaSpec]("arena.yaml")
	if err != nil {
		return nil, err
	}
	if spec.Width <= 0 || spec.Height <= 0 {
		return nil, fmt.Errorf("prefabs: arena.yaml: non-positive dimensions %vx%v", spec.Width, spec.Height)
	}
	return &spec, nil
}

type PlayerSpec struct {
	Name            string  `yaml:"name"`
	Health          float64 `yaml:"health"`
	MoveSpeed       float64 `yaml:"move_speed"`
	Radius          float64 `yaml:"radius"`
	ProjectileSpeed float64 `yaml:"projectile_speed"`
	ProjectileSize  float64 `yaml:"projectile_size"`
	Damage          float64 `yaml:"damage"`
	FireCooldown    float64 `yaml:"fire_cooldown"`
}

func LoadPlayerSpec() (*PlayerSpec, error) {
	spec, err := LoadSpec[PlayerSpec]("player.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}

type MinionKindSpec struct {
	Health        float64 `yaml:"health"`
	HealthPerLvl  float64 `yaml:"health_per_level"`
	Radius        float64 `yaml:"radius"`
	MoveSpeed     float64 `yaml:"move_speed"`
	ContactDamage float64 `yaml:"contact_damage"`
	Color         string  `yaml:"color"`
	Lifetime      float64 `yaml:"lifetime"`
}

type MinionSpec struct {
	Kinds map[string]MinionKindSpec `yaml:"kinds"`
}

func LoadMinionSpec() (*MinionSpec, error) {
	spec, err := LoadSpec[MinionSpec]("minion.yaml")
	if err != nil {
		return nil, err
	}
	return &spec, nil
}
