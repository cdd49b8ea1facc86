package obj

import (
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/prefabs"
)

// Enemy is a combat actor spawned by the combat manager. Health and damage
// come from the wave, speed and reach from the enemy prefab.
type Enemy struct {
	component.Mover

	Texture string
	// Targeted is set by the front end while the enemy is under the cursor
	// and attackable.
	Targeted bool

	health      *component.Health
	damage      int
	attackRange int
	canAttack   bool
}

// NewEnemy creates an enemy standing on the center of cell (gx, gy).
func NewEnemy(gx, gy, health, damage int, spec *prefabs.EnemySpec, tm *TileMap) *Enemy {
	if spec == nil {
		spec = prefabs.DefaultEnemySpec()
	}
	var grid component.GridMapper
	ts := common.TileSize
	x, y := float64(gx*ts+ts/2), float64(gy*ts+ts/2)
	if tm != nil {
		grid = tm
		x, y = tm.GridToPixelCenter(gx, gy)
	}
	return &Enemy{
		Mover:       component.NewMover(x, y, spec.MoveSpeed, grid),
		Texture:     spec.Texture,
		health:      component.NewHealth(health),
		damage:      damage,
		attackRange: max(spec.AttackRange, 0),
	}
}

// TakeDamage applies n damage and reports whether the enemy is now dead.
func (e *Enemy) TakeDamage(n int) bool {
	if e == nil {
		return false
	}
	e.health.ApplyDamage(n)
	return e.health.IsDead()
}

func (e *Enemy) IsDead() bool {
	return e == nil || e.health.IsDead()
}

func (e *Enemy) Health() int {
	if e == nil {
		return 0
	}
	return e.health.CurrentHP()
}

func (e *Enemy) MaxHealth() int {
	if e == nil {
		return 0
	}
	return e.health.MaxHP()
}

func (e *Enemy) Damage() int {
	if e == nil {
		return 0
	}
	return e.damage
}

func (e *Enemy) AttackRange() int {
	if e == nil {
		return 0
	}
	return e.attackRange
}

// GridPosition returns the cell under the enemy's pixel position.
func (e *Enemy) GridPosition(tm *TileMap) (int, int) {
	if e == nil || tm == nil {
		return -1, -1
	}
	return tm.PixelToGrid(e.X, e.Y)
}

// CalculateAttackTargets refreshes CanAttackPlayer for a player standing at
// (playerGX, playerGY).
func (e *Enemy) CalculateAttackTargets(tm *TileMap, playerGX, playerGY int) {
	if e == nil {
		return
	}
	ex, ey := e.GridPosition(tm)
	if tm == nil || !tm.IsValidGridPosition(ex, ey) {
		e.canAttack = false
		return
	}
	e.canAttack = common.Manhattan(ex, ey, playerGX, playerGY) <= e.attackRange
}

func (e *Enemy) CanAttackPlayer() bool {
	return e != nil && e.canAttack
}

func (e *Enemy) HealthPool() *component.Health {
	if e == nil {
		return nil
	}
	return e.health
}

var _ component.Actor = (*Enemy)(nil)
