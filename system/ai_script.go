package system

import (
	"fmt"
	"log"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/milk9111/tilearena/prefabs"
)

// The script defines decide(engine) and returns a map such as
// {action: "move", x: 3, y: 4}.
const enemyTurnDispatchScript = `
__result = decide(__engine)
`

// ScriptBrain asks a tengo script what each enemy does. Any script error
// falls back to the wrapped brain for that decision.
type ScriptBrain struct {
	scriptPath string
	compiled   *tengo.Compiled
	fallback   EnemyBrain
	failures   int
}

// NewScriptBrain compiles a script from prefabs/scripts.
func NewScriptBrain(scriptPath string) (*ScriptBrain, error) {
	if strings.TrimSpace(scriptPath) == "" {
		return nil, fmt.Errorf("ai: empty script path")
	}
	src, err := prefabs.LoadScript(scriptPath)
	if err != nil {
		return nil, fmt.Errorf("ai: load %s: %w", scriptPath, err)
	}
	return newScriptBrain(scriptPath, src)
}

func newScriptBrain(scriptPath string, src []byte) (*ScriptBrain, error) {
	script := tengo.NewScript([]byte(string(src) + "\n" + enemyTurnDispatchScript))
	_ = script.Add("__engine", map[string]any{})
	_ = script.Add("__result", map[string]any{})
	script.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("ai: compile %s: %w", scriptPath, err)
	}
	return &ScriptBrain{scriptPath: scriptPath, compiled: compiled, fallback: DefaultBrain{}}, nil
}

func (b *ScriptBrain) ScriptPath() string {
	if b == nil {
		return ""
	}
	return b.scriptPath
}

// Failures counts decisions that fell back to the default brain.
func (b *ScriptBrain) Failures() int {
	if b == nil {
		return 0
	}
	return b.failures
}

func (b *ScriptBrain) Decide(ctx *TurnContext) EnemyDecision {
	if b == nil || b.compiled == nil || ctx == nil || ctx.Enemy == nil {
		return DefaultBrain{}.Decide(ctx)
	}
	d, err := b.run(ctx)
	if err != nil {
		b.failures++
		log.Printf("ai: enemy=%d script %s error: %v", ctx.Index, b.scriptPath, err)
		return b.fallback.Decide(ctx)
	}
	return d
}

func (b *ScriptBrain) run(ctx *TurnContext) (EnemyDecision, error) {
	if err := b.compiled.Set("__engine", buildEnemyTurnEngine(ctx)); err != nil {
		return EnemyDecision{}, err
	}
	if err := b.compiled.Set("__result", map[string]any{}); err != nil {
		return EnemyDecision{}, err
	}
	if err := b.compiled.Run(); err != nil {
		return EnemyDecision{}, err
	}
	return decisionFromObject(b.compiled.Get("__result").Object())
}

func decisionFromObject(obj tengo.Object) (EnemyDecision, error) {
	var fields map[string]tengo.Object
	switch v := obj.(type) {
	case *tengo.Map:
		fields = v.Value
	case *tengo.ImmutableMap:
		fields = v.Value
	default:
		return EnemyDecision{}, fmt.Errorf("decide returned %s, want map", obj.TypeName())
	}

	action := strings.ToLower(strings.TrimSpace(objectAsString(fields["action"])))
	switch action {
	case "", "wait":
		return EnemyDecision{}, nil
	case "attack":
		return EnemyDecision{Action: ActionAttack}, nil
	case "move":
		x, okx := tengo.ToInt(fields["x"])
		y, oky := tengo.ToInt(fields["y"])
		if !okx || !oky {
			return EnemyDecision{}, fmt.Errorf("move without integer x/y")
		}
		return EnemyDecision{Action: ActionMove, X: x, Y: y}, nil
	default:
		return EnemyDecision{}, fmt.Errorf("unknown action %q", action)
	}
}

func buildEnemyTurnEngine(ctx *TurnContext) *tengo.ImmutableMap {
	values := map[string]tengo.Object{}

	values["enemy"] = &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"index":        intObject(ctx.Index),
		"x":            intObject(ctx.EnemyX),
		"y":            intObject(ctx.EnemyY),
		"health":       intObject(ctx.Enemy.Health()),
		"damage":       intObject(ctx.Enemy.Damage()),
		"attack_range": intObject(ctx.Enemy.AttackRange()),
	}}
	values["player"] = &tengo.ImmutableMap{Value: map[string]tengo.Object{
		"x": intObject(ctx.PlayerX),
		"y": intObject(ctx.PlayerY),
	}}
	values["can_attack"] = boolObject(ctx.Enemy.CanAttackPlayer())
	values["moving"] = boolObject(ctx.Enemy.IsMoving())

	values["find_path"] = &tengo.UserFunction{Name: "find_path", Value: func(args ...tengo.Object) (tengo.Object, error) {
		coords, ok := intArgs(args, 4)
		if !ok {
			return &tengo.Array{}, nil
		}
		path := ctx.TileMap.FindPath(coords[0], coords[1], coords[2], coords[3])
		out := make([]tengo.Object, 0, len(path))
		for _, n := range path {
			out = append(out, &tengo.Array{Value: []tengo.Object{intObject(n.X), intObject(n.Y)}})
		}
		return &tengo.Array{Value: out}, nil
	}}

	values["is_walkable"] = &tengo.UserFunction{Name: "is_walkable", Value: func(args ...tengo.Object) (tengo.Object, error) {
		coords, ok := intArgs(args, 2)
		if !ok {
			return tengo.FalseValue, nil
		}
		return boolObject(ctx.TileMap.IsWalkable(coords[0], coords[1])), nil
	}}

	values["is_blocked"] = &tengo.UserFunction{Name: "is_blocked", Value: func(args ...tengo.Object) (tengo.Object, error) {
		coords, ok := intArgs(args, 2)
		if !ok {
			return tengo.TrueValue, nil
		}
		return boolObject(ctx.Blocked(coords[0], coords[1])), nil
	}}

	return &tengo.ImmutableMap{Value: values}
}

func intArgs(args []tengo.Object, n int) ([]int, bool) {
	if len(args) < n {
		return nil, false
	}
	out := make([]int, n)
	for i := 0; i < n; i++ {
		v, ok := tengo.ToInt(args[i])
		if !ok {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}

func intObject(v int) tengo.Object {
	return &tengo.Int{Value: int64(v)}
}

func boolObject(v bool) tengo.Object {
	if v {
		return tengo.TrueValue
	}
	return tengo.FalseValue
}

func objectAsString(obj tengo.Object) string {
	if obj == nil {
		return ""
	}
	switch v := obj.(type) {
	case *tengo.String:
		return v.Value
	case *tengo.Undefined:
		return ""
	default:
		return strings.Trim(v.String(), "\"")
	}
}
