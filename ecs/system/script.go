package system

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/jakecoffman/cp"
	"github.com/mossfell/bossrush/ecs"
	"github.com/mossfell/bossrush/ecs/component"
	"github.com/mossfell/bossrush/prefabs"
)

func init() {
	RegisterPattern("script", execScript)
}

// patternScriptRuntime holds a compiled attack script plus the mutable state
// map the script keeps between invocations.
type patternScriptRuntime struct {
	scriptPath string
	compiled   *tengo.Compiled
	stateData  *tengo.Map
}

var scriptRuntimes = map[ecs.Entity]*patternScriptRuntime{}

const patternDispatchScript = `
run(__engine, __state)
`

// execScript runs a tengo attack script. The script's run(engine, state)
// drives engine calls that translate directly into the built-in patterns, so
// scripted bosses compose the same primitives data-driven ones use.
func execScript(ctx *AttackContext, p *component.Pattern) bool {
	if !ctx.HasTarget && p.RetryOnNoTarget {
		return false
	}
	rt, err := getPatternScriptRuntime(ctx.Entity, p.Script)
	if err != nil {
		slog.Warn("attack: load script", "boss", ctx.Boss.Name, "script", p.Script, "err", err)
		return true
	}
	engine := buildPatternScriptEngine(ctx, p)
	if err := rt.run(engine); err != nil {
		slog.Warn("attack: run script", "boss", ctx.Boss.Name, "script", p.Script, "err", err)
	}
	return true
}

func getPatternScriptRuntime(ent ecs.Entity, path string) (*patternScriptRuntime, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("empty script path")
	}
	if rt, ok := scriptRuntimes[ent]; ok && rt.scriptPath == path {
		return rt, nil
	}

	src, err := prefabs.LoadScript(path)
	if err != nil {
		return nil, err
	}

	script := tengo.NewScript(append(src, []byte("\n"+patternDispatchScript)...))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__state", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	rt := &patternScriptRuntime{
		scriptPath: path,
		compiled:   compiled,
		stateData:  &tengo.Map{Value: map[string]tengo.Object{}},
	}
	scriptRuntimes[ent] = rt
	return rt, nil
}

func (rt *patternScriptRuntime) run(engine *tengo.ImmutableMap) error {
	if err := rt.compiled.Set("__engine", engine); err != nil {
		return err
	}
	if err := rt.compiled.Set("__state", rt.stateData); err != nil {
		return err
	}
	return rt.compiled.Run()
}

// buildPatternScriptEngine exposes the pattern primitives to a script. Every
// function closes over the current invocation's context; scripts never hold
// entity references across runs.
func buildPatternScriptEngine(ctx *AttackContext, p *component.Pattern) *tengo.ImmutableMap {
	w := ctx.World
	values := map[string]tengo.Object{}

	values["get_position"] = &tengo.UserFunction{Name: "get_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.Transform.Pos), nil
	}}

	values["get_player_position"] = &tengo.UserFunction{Name: "get_player_position", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return vectorObject(ctx.Target), nil
	}}

	values["hp_ratio"] = &tengo.UserFunction{Name: "hp_ratio", Value: func(args ...tengo.Object) (tengo.Object, error) {
		hp, ok := ecs.Get(w, ctx.Entity, component.HealthComponent.Kind())
		if !ok {
			return &tengo.Float{Value: 0}, nil
		}
		return &tengo.Float{Value: hp.Ratio()}, nil
	}}

	values["phase"] = &tengo.UserFunction{Name: "phase", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Int{Value: int64(ctx.Runtime.PhaseIndex)}, nil
	}}

	values["rand"] = &tengo.UserFunction{Name: "rand", Value: func(args ...tengo.Object) (tengo.Object, error) {
		return &tengo.Float{Value: ctx.RNG.Float64()}, nil
	}}

	values["fire_spread"] = &tengo.UserFunction{Name: "fire_spread", Value: func(args ...tengo.Object) (tengo.Object, error) {
		count := argInt(args, 0, 1)
		arc := argFloat(args, 1, 0)
		speed := argFloat(args, 2, p.Speed)
		damage := argFloat(args, 3, p.Damage)
		n := FireSpread(w, ctx.Transform.Pos, ctx.Target, count, arc, speed, damage, projRadius(p), true)
		return &tengo.Int{Value: int64(n)}, nil
	}}

	values["mortar"] = &tengo.UserFunction{Name: "mortar", Value: func(args ...tengo.Object) (tengo.Object, error) {
		impact := cp.Vector{X: argFloat(args, 0, ctx.Target.X), Y: argFloat(args, 1, ctx.Target.Y)}
		speed := argFloat(args, 2, p.Speed)
		apex := argFloat(args, 3, p.ApexHeight)
		ok := FireMortar(w, ctx.Entity, ctx.Runtime, ctx.Transform.Pos, clampToArena(w.Arena(), impact), speed, apex, p.Radius, p.Damage)
		return boolObject(ok), nil
	}}

	values["gravity_zone"] = &tengo.UserFunction{Name: "gravity_zone", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := cp.Vector{X: argFloat(args, 0, ctx.Target.X), Y: argFloat(args, 1, ctx.Target.Y)}
		zone := *p
		zone.Radius = argFloat(args, 2, p.Radius)
		zone.Speed = argFloat(args, 3, p.Speed)
		zone.Duration = argFloat(args, 4, p.Duration)
		return boolObject(SpawnGravityZone(ctx.Runtime, clampToArena(w.Arena(), pos), &zone)), nil
	}}

	values["hazard"] = &tengo.UserFunction{Name: "hazard", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := cp.Vector{X: argFloat(args, 0, ctx.Target.X), Y: argFloat(args, 1, ctx.Target.Y)}
		radius := argFloat(args, 2, p.Radius)
		damage := argFloat(args, 3, p.Damage)
		duration := argFloat(args, 4, p.Duration)
		return boolObject(SpawnHazard(ctx.Runtime, clampToArena(w.Arena(), pos), radius, damage, p.Interval, duration)), nil
	}}

	values["telegraph"] = &tengo.UserFunction{Name: "telegraph", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := cp.Vector{X: argFloat(args, 0, ctx.Target.X), Y: argFloat(args, 1, ctx.Target.Y)}
		radius := argFloat(args, 2, p.Radius)
		duration := argFloat(args, 3, p.WarnDuration)
		TelegraphAt(ctx.Runtime, pos, radius, duration)
		return tengo.TrueValue, nil
	}}

	values["slam"] = &tengo.UserFunction{Name: "slam", Value: func(args ...tengo.Object) (tengo.Object, error) {
		pos := cp.Vector{X: argFloat(args, 0, ctx.Target.X), Y: argFloat(args, 1, ctx.Target.Y)}
		radius := argFloat(args, 2, p.Radius)
		damage := argFloat(args, 3, p.Damage)
		warn := argFloat(args, 4, p.WarnDuration)
		TelegraphAt(ctx.Runtime, pos, radius, warn)
		ScheduleImpact(w, ctx.Entity, pos, radius, damage, warn)
		return tengo.TrueValue, nil
	}}

	values["blink"] = &tengo.UserFunction{Name: "blink", Value: func(args ...tengo.Object) (tengo.Object, error) {
		ring := argFloat(args, 0, p.Range)
		return boolObject(TeleportBoss(w, ctx.Transform, ctx.Target, ring)), nil
	}}

	values["summon"] = &tengo.UserFunction{Name: "summon", Value: func(args ...tengo.Object) (tengo.Object, error) {
		kind := argString(args, 0, p.MinionKind)
		level := argInt(args, 1, p.MinionLevel)
		count := argInt(args, 2, 1)
		n := SummonMinions(w, ctx.Entity, ctx.Transform.Pos, kind, level, count, component.RoleMinion)
		return &tengo.Int{Value: int64(n)}, nil
	}}

	values["sound"] = &tengo.UserFunction{Name: "sound", Value: func(args ...tengo.Object) (tengo.Object, error) {
		w.PlaySound(argString(args, 0, ""), argFloat(args, 1, 0.7))
		return tengo.TrueValue, nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

// forgetScriptRuntime drops a destroyed boss's cached script state.
func forgetScriptRuntime(e ecs.Entity) {
	delete(scriptRuntimes, e)
}

func vectorObject(v cp.Vector) tengo.Object {
	return &tengo.Array{Value: []tengo.Object{&tengo.Float{Value: v.X}, &tengo.Float{Value: v.Y}}}
}

func boolObject(b bool) tengo.Object {
	if b {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func argFloat(args []tengo.Object, i int, def float64) float64 {
	if i >= len(args) {
		return def
	}
	if f, ok := tengo.ToFloat64(args[i]); ok {
		return f
	}
	return def
}

func argInt(args []tengo.Object, i, def int) int {
	if i >= len(args) {
		return def
	}
	if n, ok := tengo.ToInt(args[i]); ok {
		return n
	}
	return def
}

func argString(args []tengo.Object, i int, def string) string {
	if i >= len(args) {
		return def
	}
	if s, ok := tengo.ToString(args[i]); ok && s != "" {
		return s
	}
	return def
}
