package system

import (
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
)

// EnemyAction is what an enemy does with its turn.
type EnemyAction int

const (
	ActionWait EnemyAction = iota
	ActionAttack
	ActionMove
)

func (a EnemyAction) String() string {
	switch a {
	case ActionAttack:
		return "attack"
	case ActionMove:
		return "move"
	default:
		return "wait"
	}
}

// EnemyDecision is a brain's answer for one enemy. X and Y name the cell to
// step into when Action is ActionMove.
type EnemyDecision struct {
	Action EnemyAction
	X, Y   int
}

// TurnContext is the read-only view an EnemyBrain decides from.
type TurnContext struct {
	TileMap *obj.TileMap
	Enemy   *obj.Enemy
	Index   int

	EnemyX, EnemyY   int
	PlayerX, PlayerY int

	claimed map[component.PathNode]struct{}
}

// Blocked reports whether (x, y) holds the player, holds an enemy, is the
// waypoint of a moving enemy or has been claimed earlier in the same phase.
func (c *TurnContext) Blocked(x, y int) bool {
	if c == nil {
		return true
	}
	if x == c.PlayerX && y == c.PlayerY {
		return true
	}
	_, ok := c.claimed[component.PathNode{X: x, Y: y}]
	return ok
}

// EnemyBrain picks an action for one enemy during the enemy phase. The combat
// manager validates the answer; an illegal move is treated as a wait.
type EnemyBrain interface {
	Decide(ctx *TurnContext) EnemyDecision
}

// DefaultBrain attacks when the player is in range, otherwise re-paths to the
// player and commits the next cell only.
type DefaultBrain struct{}

func (DefaultBrain) Decide(ctx *TurnContext) EnemyDecision {
	if ctx == nil || ctx.Enemy == nil {
		return EnemyDecision{}
	}
	if ctx.Enemy.CanAttackPlayer() {
		return EnemyDecision{Action: ActionAttack}
	}
	if ctx.Enemy.IsMoving() {
		return EnemyDecision{}
	}
	path := ctx.TileMap.FindPath(ctx.EnemyX, ctx.EnemyY, ctx.PlayerX, ctx.PlayerY)
	if len(path) < 2 {
		return EnemyDecision{}
	}
	next := path[1]
	if ctx.Blocked(next.X, next.Y) {
		return EnemyDecision{}
	}
	return EnemyDecision{Action: ActionMove, X: next.X, Y: next.Y}
}
