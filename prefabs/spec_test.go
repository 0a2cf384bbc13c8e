package prefabs

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEmbeddedBossSpecsLoad(t *testing.T) {
	for _, name := range []string{"bulwark", "warden", "revenant", "gravemind"} {
		t.Run(name, func(t *testing.T) {
			spec, err := LoadBossSpec(name)
			require.NoError(t, err)
			assert.Equal(t, name, spec.Type)
			assert.Greater(t, spec.Health, 0.0)
			assert.NotEmpty(t, spec.Phases)
		})
	}
}

func TestLoadBossSpecUnknownName(t *testing.T) {
	_, err := LoadBossSpec("no_such_boss")
	assert.Error(t, err)
}

func validBossSpec() BossSpec {
	return BossSpec{
		Name:   "Test Boss",
		Type:   "bulwark",
		Health: 500,
		Phases: []PhaseSpec{
			{Name: "Open", HealthPercent: 1.0, MinHealthPercent: 0.5,
				Patterns: []PatternSpec{{Kind: "spread", Cooldown: 2}}},
			{Name: "Close", HealthPercent: 0.5, MinHealthPercent: 0,
				Patterns: []PatternSpec{{Kind: "slam", Cooldown: 3}}},
		},
	}
}

func TestBossSpecValidate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*BossSpec)
		wantErr string
	}{
		{"valid", func(s *BossSpec) {}, ""},
		{"missing_name", func(s *BossSpec) { s.Name = "" }, "missing name"},
		{"missing_type", func(s *BossSpec) { s.Type = "" }, "missing type"},
		{"zero_health", func(s *BossSpec) { s.Health = 0 }, "health must be positive"},
		{"no_phases", func(s *BossSpec) { s.Phases = nil }, "at least one phase"},
		{"first_not_full", func(s *BossSpec) { s.Phases[0].HealthPercent = 0.9 }, "first phase"},
		{"last_not_zero", func(s *BossSpec) { s.Phases[1].MinHealthPercent = 0.1 }, "last phase"},
		{"empty_window", func(s *BossSpec) {
			s.Phases[0].MinHealthPercent = 1.0
		}, "empty health window"},
		{"window_gap", func(s *BossSpec) {
			s.Phases[0].MinHealthPercent = 0.6
		}, "window gap"},
		{"phase_without_patterns", func(s *BossSpec) { s.Phases[1].Patterns = nil }, "no patterns"},
		{"pattern_without_kind", func(s *BossSpec) { s.Phases[0].Patterns[0].Kind = "" }, "missing kind"},
		{"script_without_path", func(s *BossSpec) {
			s.Phases[0].Patterns[0] = PatternSpec{Kind: "script", Cooldown: 2}
		}, "needs a script path"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			spec := validBossSpec()
			c.mutate(&spec)
			err := spec.Validate()
			if c.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), c.wantErr)
		})
	}
}

func TestLoadArenaSpec(t *testing.T) {
	spec, err := LoadArenaSpec()
	require.NoError(t, err)
	assert.Greater(t, spec.Width, 0.0)
	assert.Greater(t, spec.Height, 0.0)
	assert.NotEqual(t, spec.PlayerSpawn, spec.BossSpawn)
}

func TestLoadPlayerSpec(t *testing.T) {
	spec, err := LoadPlayerSpec()
	require.NoError(t, err)
	assert.Greater(t, spec.Health, 0.0)
	assert.Greater(t, spec.MoveSpeed, 0.0)
	assert.Greater(t, spec.FireCooldown, 0.0)
}

func TestMinionSpecCoversBossSummons(t *testing.T) {
	minions, err := LoadMinionSpec()
	require.NoError(t, err)
	require.NotEmpty(t, minions.Kinds)

	for _, name := range []string{"bulwark", "warden", "revenant", "gravemind"} {
		spec, err := LoadBossSpec(name)
		require.NoError(t, err)
		for _, phase := range spec.Phases {
			for _, p := range phase.Patterns {
				if p.Kind != "summon" {
					continue
				}
				require.NotEmpty(t, p.MinionKind, "%s has a summon without a minion kind", name)
				_, ok := minions.Kinds[p.MinionKind]
				assert.True(t, ok, "%s summons unknown minion kind %q", name, p.MinionKind)
			}
		}
	}
}

func TestEmbeddedScriptsResolve(t *testing.T) {
	for _, name := range []string{"bulwark", "warden", "revenant", "gravemind"} {
		spec, err := LoadBossSpec(name)
		require.NoError(t, err)
		for _, phase := range spec.Phases {
			for _, p := range phase.Patterns {
				if p.Kind != "script" {
					continue
				}
				src, err := LoadScript(p.Script)
				require.NoError(t, err, "%s references script %s", name, p.Script)
				assert.NotEmpty(t, src)
			}
		}
	}
}
