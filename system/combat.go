package system

import (
	"log"
	"math/rand"
	"time"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

// Outcome records how the last combat session finished.
type Outcome int

const (
	OutcomeNone Outcome = iota
	OutcomeVictory
	OutcomeExhausted
	OutcomeDefeat
)

func (o Outcome) String() string {
	switch o {
	case OutcomeVictory:
		return "victory"
	case OutcomeExhausted:
		return "exhausted"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "none"
	}
}

// CombatManager runs the wave loop: it owns every spawned enemy, alternates
// player and enemy turns and ends the session on victory, exhaustion or
// defeat.
type CombatManager struct {
	Emitter component.CombatEventEmitter

	player    *obj.Player
	tileMap   *obj.TileMap
	cfg       *prefabs.CombatSpec
	enemySpec *prefabs.EnemySpec
	brain     EnemyBrain
	rng       *rand.Rand

	inCombat    bool
	currentWave int
	enemies     []*obj.Enemy
	playerTurn  bool
	outcome     Outcome
}

// NewCombatManager creates an idle manager. A nil cfg uses
// prefabs.DefaultCombatSpec; a nil rng is seeded from the clock.
func NewCombatManager(player *obj.Player, tm *obj.TileMap, cfg *prefabs.CombatSpec, rng *rand.Rand) *CombatManager {
	if cfg == nil {
		cfg = prefabs.DefaultCombatSpec()
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &CombatManager{
		player:    player,
		tileMap:   tm,
		cfg:       cfg,
		enemySpec: prefabs.DefaultEnemySpec(),
		brain:     DefaultBrain{},
		rng:       rng,
	}
}

// SetEnemySpec changes the prefab used for enemies spawned from now on.
func (cm *CombatManager) SetEnemySpec(spec *prefabs.EnemySpec) {
	if cm == nil || spec == nil {
		return
	}
	cm.enemySpec = spec
}

// SetConfig changes the combat tuning. Only valid while idle.
func (cm *CombatManager) SetConfig(cfg *prefabs.CombatSpec) bool {
	if cm == nil || cfg == nil || cm.inCombat {
		return false
	}
	cm.cfg = cfg
	return true
}

// SetBrain replaces the enemy decision maker. Nil restores DefaultBrain.
func (cm *CombatManager) SetBrain(b EnemyBrain) {
	if cm == nil {
		return
	}
	if b == nil {
		b = DefaultBrain{}
	}
	cm.brain = b
}

// SetTileMap points the manager at a different map. Only valid while idle.
func (cm *CombatManager) SetTileMap(tm *obj.TileMap) {
	if cm == nil || cm.inCombat {
		return
	}
	cm.tileMap = tm
}

// StartCombat begins a session at initialWave with the player to move.
func (cm *CombatManager) StartCombat(initialWave int) {
	if cm == nil || cm.player == nil || cm.tileMap == nil {
		return
	}
	if initialWave < 1 {
		initialWave = 1
	}
	cm.inCombat = true
	cm.currentWave = initialWave
	cm.playerTurn = true
	cm.outcome = OutcomeNone
	cm.player.ResetAttacks()
	log.Printf("combat: started at wave %d", initialWave)
	cm.Emitter.Emit(component.CombatEvent{Type: component.EventCombatStart, Enemy: -1, Wave: initialWave})
	cm.SpawnWave()
}

// EndCombat leaves combat and destroys all remaining enemies.
func (cm *CombatManager) EndCombat() {
	if cm == nil || !cm.inCombat {
		return
	}
	cm.inCombat = false
	cm.enemies = nil
	log.Printf("combat: ended at wave %d (%s)", cm.currentWave, cm.outcome)
	cm.Emitter.Emit(component.CombatEvent{Type: component.EventCombatEnd, Enemy: -1, Wave: cm.currentWave})
}

func (cm *CombatManager) finish(o Outcome) {
	cm.outcome = o
	cm.EndCombat()
}

func (cm *CombatManager) IsInCombat() bool {
	return cm != nil && cm.inCombat
}

func (cm *CombatManager) IsPlayerTurn() bool {
	return cm != nil && cm.playerTurn
}

func (cm *CombatManager) CurrentWave() int {
	if cm == nil {
		return 0
	}
	return cm.currentWave
}

func (cm *CombatManager) MaxWaves() int {
	if cm == nil {
		return 0
	}
	return cm.cfg.MaxWaves
}

// Enemies returns the live enemy list. Callers must not modify it.
func (cm *CombatManager) Enemies() []*obj.Enemy {
	if cm == nil {
		return nil
	}
	return cm.enemies
}

// Outcome reports how the last session ended. OutcomeNone while a session is
// running or when it was ended from outside.
func (cm *CombatManager) Outcome() Outcome {
	if cm == nil {
		return OutcomeNone
	}
	return cm.outcome
}

// IsWaveComplete reports whether every enemy of the current wave is dead.
func (cm *CombatManager) IsWaveComplete() bool {
	if cm == nil {
		return true
	}
	for _, e := range cm.enemies {
		if !e.IsDead() {
			return false
		}
	}
	return true
}

// Update runs one tick of the session.
func (cm *CombatManager) Update() {
	if cm == nil || !cm.inCombat {
		return
	}

	for _, e := range cm.enemies {
		e.Step()
	}
	cm.removeDeadEnemies()

	if len(cm.enemies) == 0 {
		if cm.currentWave >= cm.cfg.MaxWaves {
			cm.finish(OutcomeVictory)
			return
		}
		cm.currentWave++
		cm.SpawnWave()
	}

	if !cm.player.HasAttacksRemaining() {
		cm.finish(OutcomeExhausted)
		return
	}

	if !cm.playerTurn {
		cm.executeEnemyTurns()
		cm.playerTurn = true
		if cm.player.IsDead() {
			cm.finish(OutcomeDefeat)
		}
	}
}

func (cm *CombatManager) removeDeadEnemies() {
	alive := cm.enemies[:0]
	for _, e := range cm.enemies {
		if e.IsDead() {
			continue
		}
		alive = append(alive, e)
	}
	for i := len(alive); i < len(cm.enemies); i++ {
		cm.enemies[i] = nil
	}
	cm.enemies = alive
}

// PlayerAttack hits enemy targetIndex with the player's attack damage, spends
// one attack and hands the turn to the enemies. Returns false when the attack
// is rejected (not in combat, not the player's turn, bad index, no attacks).
func (cm *CombatManager) PlayerAttack(targetIndex int) bool {
	if cm == nil || !cm.inCombat || !cm.playerTurn {
		return false
	}
	if targetIndex < 0 || targetIndex >= len(cm.enemies) {
		return false
	}
	if !cm.player.HasAttacksRemaining() {
		return false
	}

	e := cm.enemies[targetIndex]
	dmg := cm.player.AttackDamage()
	killed := e.TakeDamage(dmg)
	gx, gy := e.GridPosition(cm.tileMap)
	cm.Emitter.Emit(component.CombatEvent{
		Type:     component.EventHit,
		Attacker: component.FactionPlayer,
		Enemy:    targetIndex,
		Damage:   dmg,
		Wave:     cm.currentWave,
		GridX:    gx,
		GridY:    gy,
	})
	if killed {
		cm.Emitter.Emit(component.CombatEvent{Type: component.EventDeath, Attacker: component.FactionPlayer, Enemy: targetIndex, Wave: cm.currentWave, GridX: gx, GridY: gy})
	}

	cm.player.UseAttack()
	cm.playerTurn = false
	return true
}

// GetEnemyAt returns the index of the first enemy standing on (gx, gy), or -1.
func (cm *CombatManager) GetEnemyAt(gx, gy int) int {
	if cm == nil {
		return -1
	}
	for i, e := range cm.enemies {
		ex, ey := e.GridPosition(cm.tileMap)
		if ex == gx && ey == gy {
			return i
		}
	}
	return -1
}

// CanAttack reports whether a click on (gx, gy) would be a legal attack right
// now.
func (cm *CombatManager) CanAttack(gx, gy int) bool {
	if cm == nil || !cm.inCombat || !cm.playerTurn || !cm.player.HasAttacksRemaining() {
		return false
	}
	cm.player.CalculateAttackTargets(cm.tileMap)
	if !cm.player.IsTileInAttackRange(gx, gy) {
		return false
	}
	return cm.GetEnemyAt(gx, gy) >= 0
}

// HandleCombatEvent turns a click on (gx, gy) into an attack when legal.
func (cm *CombatManager) HandleCombatEvent(gx, gy int) bool {
	if !cm.CanAttack(gx, gy) {
		return false
	}
	return cm.PlayerAttack(cm.GetEnemyAt(gx, gy))
}

// executeEnemyTurns resolves one enemy phase. Every enemy in range hits the
// player in the same phase; the rest may commit a single step.
func (cm *CombatManager) executeEnemyTurns() {
	px, py := cm.player.GridPosition(cm.tileMap)

	claimed := make(map[component.PathNode]struct{}, len(cm.enemies)*2)
	for _, e := range cm.enemies {
		ex, ey := e.GridPosition(cm.tileMap)
		claimed[component.PathNode{X: ex, Y: ey}] = struct{}{}
		// a waypoint committed in an earlier phase stays reserved
		if tx, ty, ok := e.Target(); ok {
			gx, gy := cm.tileMap.PixelToGrid(tx, ty)
			claimed[component.PathNode{X: gx, Y: gy}] = struct{}{}
		}
	}

	for i, e := range cm.enemies {
		if e.IsDead() {
			continue
		}
		e.CalculateAttackTargets(cm.tileMap, px, py)
		ex, ey := e.GridPosition(cm.tileMap)
		ctx := &TurnContext{
			TileMap: cm.tileMap,
			Enemy:   e,
			Index:   i,
			EnemyX:  ex,
			EnemyY:  ey,
			PlayerX: px,
			PlayerY: py,
			claimed: claimed,
		}

		d := cm.brain.Decide(ctx)
		switch d.Action {
		case ActionAttack:
			if !e.CanAttackPlayer() {
				continue
			}
			cm.player.HealthPool().ApplyDamage(e.Damage())
			cm.Emitter.Emit(component.CombatEvent{
				Type:     component.EventHit,
				Attacker: component.FactionEnemy,
				Enemy:    i,
				Damage:   e.Damage(),
				Wave:     cm.currentWave,
				GridX:    px,
				GridY:    py,
			})
		case ActionMove:
			if !cm.legalStep(ctx, d.X, d.Y) {
				continue
			}
			claimed[component.PathNode{X: d.X, Y: d.Y}] = struct{}{}
			e.MoveTo(component.PathNode{X: d.X, Y: d.Y})
			cm.Emitter.Emit(component.CombatEvent{Type: component.EventEnemyMove, Attacker: component.FactionEnemy, Enemy: i, Wave: cm.currentWave, GridX: d.X, GridY: d.Y})
		}
	}
}

func (cm *CombatManager) legalStep(ctx *TurnContext, x, y int) bool {
	if ctx.Enemy.IsMoving() {
		return false
	}
	if common.Manhattan(ctx.EnemyX, ctx.EnemyY, x, y) != 1 {
		return false
	}
	if !cm.tileMap.IsWalkable(x, y) {
		return false
	}
	return !ctx.Blocked(x, y)
}
