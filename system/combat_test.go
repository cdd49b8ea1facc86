package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
)

func newArena(t *testing.T) (*obj.TileMap, *obj.Player, *CombatManager) {
	t.Helper()
	tm := obj.NewTileMap(common.TileSize, common.WindowWidth, common.WindowHeight)
	tm.Initialize()
	tm.GenerateDefault()
	p := obj.NewPlayer(1, 1, nil, tm)
	cm := NewCombatManager(p, tm, nil, rand.New(rand.NewSource(7)))
	return tm, p, cm
}

func killAll(cm *CombatManager) {
	for _, e := range cm.Enemies() {
		e.TakeDamage(e.Health())
	}
}

func TestStartCombatSpawnsFirstWave(t *testing.T) {
	tm, p, cm := newArena(t)
	cm.StartCombat(1)

	if !cm.IsInCombat() || !cm.IsPlayerTurn() || cm.CurrentWave() != 1 {
		t.Fatalf("expected combat at wave 1 with the player to move")
	}
	enemies := cm.Enemies()
	if len(enemies) != 2 {
		t.Fatalf("expected 2 enemies, got %d", len(enemies))
	}

	px, py := p.GridPosition(tm)
	seen := map[component.PathNode]bool{}
	for i, e := range enemies {
		if e.Health() != 15 || e.Damage() != 3 {
			t.Fatalf("enemy %d: expected 15 hp / 3 dmg, got %d / %d", i, e.Health(), e.Damage())
		}
		ex, ey := e.GridPosition(tm)
		if !tm.IsWalkable(ex, ey) {
			t.Fatalf("enemy %d spawned on blocked cell (%d,%d)", i, ex, ey)
		}
		if common.Manhattan(ex, ey, px, py) < 3 {
			t.Fatalf("enemy %d spawned too close at (%d,%d)", i, ex, ey)
		}
		n := component.PathNode{X: ex, Y: ey}
		if seen[n] {
			t.Fatalf("two enemies share (%d,%d)", ex, ey)
		}
		seen[n] = true
	}
}

func TestStartCombatClampsWave(t *testing.T) {
	_, _, cm := newArena(t)
	cm.StartCombat(0)
	if cm.CurrentWave() != 1 {
		t.Fatalf("expected wave clamped to 1, got %d", cm.CurrentWave())
	}
}

func TestSpawnIsReproducibleForASeed(t *testing.T) {
	positions := func() []component.PathNode {
		tm, _, cm := newArena(t)
		cm.StartCombat(3)
		var out []component.PathNode
		for _, e := range cm.Enemies() {
			x, y := e.GridPosition(tm)
			out = append(out, component.PathNode{X: x, Y: y})
		}
		return out
	}
	a, b := positions(), positions()
	if len(a) != 4 || len(b) != 4 {
		t.Fatalf("expected 4 enemies at wave 3, got %d and %d", len(a), len(b))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("spawn %d differs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestWaveScaling(t *testing.T) {
	_, _, cm := newArena(t)

	cases := []struct {
		wave   int
		health int
		damage int
	}{
		{1, 15, 3},
		{2, 20, 4},
		{5, 35, 7},
	}
	for _, c := range cases {
		if got := cm.EnemyHealthForWave(c.wave); got != c.health {
			t.Fatalf("wave %d health = %d, want %d", c.wave, got, c.health)
		}
		if got := cm.EnemyDamageForWave(c.wave); got != c.damage {
			t.Fatalf("wave %d damage = %d, want %d", c.wave, got, c.damage)
		}
	}
}

func TestClearedWaveAdvances(t *testing.T) {
	_, _, cm := newArena(t)
	cm.StartCombat(1)
	killAll(cm)
	if !cm.IsWaveComplete() {
		t.Fatalf("expected wave complete")
	}

	cm.Update()
	if cm.CurrentWave() != 2 {
		t.Fatalf("expected wave 2, got %d", cm.CurrentWave())
	}
	enemies := cm.Enemies()
	if len(enemies) != 3 {
		t.Fatalf("expected 3 enemies in wave 2, got %d", len(enemies))
	}
	if enemies[0].Health() != 20 || enemies[0].Damage() != 4 {
		t.Fatalf("expected 20 hp / 4 dmg, got %d / %d", enemies[0].Health(), enemies[0].Damage())
	}
}

func TestFinalWaveClearedIsVictory(t *testing.T) {
	_, _, cm := newArena(t)
	var ended int
	cm.Emitter.Subscribe(func(evt component.CombatEvent) {
		if evt.Type == component.EventCombatEnd {
			ended++
		}
	})

	cm.StartCombat(5)
	killAll(cm)
	cm.Update()

	if cm.IsInCombat() {
		t.Fatalf("expected combat over after the last wave")
	}
	if cm.Outcome() != OutcomeVictory {
		t.Fatalf("expected victory, got %s", cm.Outcome())
	}
	if len(cm.Enemies()) != 0 || ended != 1 {
		t.Fatalf("expected enemies cleared and one end event, got %d enemies, %d events", len(cm.Enemies()), ended)
	}
}

func TestLastAttackEndsCombat(t *testing.T) {
	_, p, cm := newArena(t)
	cm.StartCombat(1)
	p.SetRemainingAttacks(1)

	if !cm.PlayerAttack(0) {
		t.Fatalf("expected attack to be accepted")
	}
	if p.RemainingAttacks() != 0 {
		t.Fatalf("expected no attacks left")
	}
	cm.Update()
	if cm.IsInCombat() || cm.Outcome() != OutcomeExhausted {
		t.Fatalf("expected combat to end exhausted, got in=%v outcome=%s", cm.IsInCombat(), cm.Outcome())
	}
}

func TestTurnsAlternate(t *testing.T) {
	_, p, cm := newArena(t)
	cm.StartCombat(1)

	if cm.PlayerAttack(5) {
		t.Fatalf("out of range index must be rejected")
	}
	if !cm.PlayerAttack(0) {
		t.Fatalf("expected first attack accepted")
	}
	if cm.IsPlayerTurn() {
		t.Fatalf("expected enemy turn after attack")
	}
	if cm.Enemies()[0].Health() != 5 {
		t.Fatalf("expected 5 hp left on the target, got %d", cm.Enemies()[0].Health())
	}
	if cm.PlayerAttack(0) {
		t.Fatalf("second attack in the same turn must be rejected")
	}
	if p.RemainingAttacks() != 4 {
		t.Fatalf("rejected attack must not spend budget, got %d", p.RemainingAttacks())
	}

	cm.Update()
	if !cm.IsPlayerTurn() {
		t.Fatalf("expected the player to move again after the enemy phase")
	}
}

func TestEnemyPhaseAttacksAndMoves(t *testing.T) {
	tm, p, cm := newArena(t)
	cm.StartCombat(1)

	near := obj.NewEnemy(2, 1, 50, 4, nil, tm)
	far := obj.NewEnemy(8, 1, 50, 4, nil, tm)
	cm.enemies = []*obj.Enemy{near, far}

	var hits, moves int
	cm.Emitter.Subscribe(func(evt component.CombatEvent) {
		switch evt.Type {
		case component.EventHit:
			if evt.Attacker == component.FactionEnemy {
				hits++
			}
		case component.EventEnemyMove:
			moves++
		}
	})

	cm.playerTurn = false
	cm.Update()

	if p.Health() != 96 {
		t.Fatalf("expected the adjacent enemy to hit for 4, player has %d", p.Health())
	}
	if hits != 1 || moves != 1 {
		t.Fatalf("expected 1 hit and 1 move, got %d and %d", hits, moves)
	}
	tx, ty, ok := far.Target()
	if !ok {
		t.Fatalf("expected the far enemy to be moving")
	}
	if gx, gy := tm.PixelToGrid(tx, ty); gx != 7 || gy != 1 {
		t.Fatalf("expected the far enemy to step to (7,1), got (%d,%d)", gx, gy)
	}
	if near.IsMoving() {
		t.Fatalf("an attacking enemy must not move")
	}
}

func TestEnemiesDoNotShareACell(t *testing.T) {
	tm, _, cm := newArena(t)
	cm.StartCombat(1)

	// both want (3,1): the first claims it, the second waits
	a := obj.NewEnemy(3, 2, 50, 1, nil, tm)
	b := obj.NewEnemy(4, 1, 50, 1, nil, tm)
	cm.enemies = []*obj.Enemy{a, b}
	cm.SetBrain(brainFunc(func(ctx *TurnContext) EnemyDecision {
		return EnemyDecision{Action: ActionMove, X: 3, Y: 1}
	}))

	cm.playerTurn = false
	cm.Update()

	if !a.IsMoving() {
		t.Fatalf("expected the first enemy to take the cell")
	}
	if b.IsMoving() {
		t.Fatalf("expected the second enemy to wait")
	}
}

func TestCommittedWaypointStaysClaimed(t *testing.T) {
	tm, _, cm := newArena(t)
	cm.StartCombat(1)

	// a is still walking to (3,1) from an earlier phase when b asks for it
	a := obj.NewEnemy(3, 2, 50, 1, nil, tm)
	a.MoveTo(component.PathNode{X: 3, Y: 1})
	b := obj.NewEnemy(4, 1, 50, 1, nil, tm)
	cm.enemies = []*obj.Enemy{a, b}
	cm.SetBrain(brainFunc(func(ctx *TurnContext) EnemyDecision {
		return EnemyDecision{Action: ActionMove, X: 3, Y: 1}
	}))

	cm.playerTurn = false
	cm.Update()
	if b.IsMoving() {
		t.Fatalf("expected the second enemy to wait for the reserved cell")
	}

	for i := 0; i < 40; i++ {
		a.Step()
		b.Step()
	}
	ax, ay := a.GridPosition(tm)
	bx, by := b.GridPosition(tm)
	if ax == bx && ay == by {
		t.Fatalf("two enemies share cell (%d,%d)", ax, ay)
	}
	if ax != 3 || ay != 1 {
		t.Fatalf("expected the first enemy at (3,1), got (%d,%d)", ax, ay)
	}
}

func TestIllegalMoveIsIgnored(t *testing.T) {
	cases := []struct {
		name   string
		ex, ey int
		x, y   int
	}{
		{"two_cells", 5, 5, 7, 5},
		{"diagonal", 5, 5, 6, 6},
		{"wall", 5, 1, 5, 0},
		{"own_cell", 5, 5, 5, 5},
		{"player_cell", 2, 1, 1, 1},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			tm, _, cm := newArena(t)
			cm.StartCombat(1)
			e := obj.NewEnemy(c.ex, c.ey, 50, 1, nil, tm)
			cm.enemies = []*obj.Enemy{e}
			cm.SetBrain(brainFunc(func(ctx *TurnContext) EnemyDecision {
				return EnemyDecision{Action: ActionMove, X: c.x, Y: c.y}
			}))

			cm.playerTurn = false
			cm.Update()
			if e.IsMoving() {
				t.Fatalf("move to (%d,%d) should have been rejected", c.x, c.y)
			}
		})
	}
}

func TestPlayerDeathIsDefeat(t *testing.T) {
	tm, p, cm := newArena(t)
	cm.StartCombat(1)
	cm.enemies = []*obj.Enemy{obj.NewEnemy(1, 2, 50, 10, nil, tm)}
	p.SetHealth(5)

	if !cm.PlayerAttack(0) {
		t.Fatalf("expected attack accepted")
	}
	cm.Update()
	if !p.IsDead() {
		t.Fatalf("expected the player dead")
	}
	if cm.IsInCombat() || cm.Outcome() != OutcomeDefeat {
		t.Fatalf("expected defeat, got in=%v outcome=%s", cm.IsInCombat(), cm.Outcome())
	}
}

func TestClickAttacksAdjacentEnemy(t *testing.T) {
	tm, _, cm := newArena(t)
	cm.StartCombat(1)
	target := obj.NewEnemy(2, 1, 15, 3, nil, tm)
	far := obj.NewEnemy(9, 9, 15, 3, nil, tm)
	cm.enemies = []*obj.Enemy{far, target}

	if got := cm.GetEnemyAt(2, 1); got != 1 {
		t.Fatalf("GetEnemyAt(2,1) = %d, want 1", got)
	}
	if got := cm.GetEnemyAt(3, 3); got != -1 {
		t.Fatalf("GetEnemyAt(3,3) = %d, want -1", got)
	}
	if cm.CanAttack(9, 9) {
		t.Fatalf("enemy out of reach must not be attackable")
	}
	if cm.HandleCombatEvent(3, 1) {
		t.Fatalf("click on an empty cell must not attack")
	}
	if !cm.HandleCombatEvent(2, 1) {
		t.Fatalf("expected click on adjacent enemy to attack")
	}
	if target.Health() != 5 {
		t.Fatalf("expected 5 hp left, got %d", target.Health())
	}
}

func TestEndCombatClearsEnemies(t *testing.T) {
	_, _, cm := newArena(t)
	cm.StartCombat(2)
	cm.EndCombat()
	if cm.IsInCombat() || len(cm.Enemies()) != 0 {
		t.Fatalf("expected idle manager with no enemies")
	}
	if cm.Outcome() != OutcomeNone {
		t.Fatalf("external end keeps OutcomeNone, got %s", cm.Outcome())
	}
	// updates while idle are no-ops
	cm.Update()
	if cm.PlayerAttack(0) {
		t.Fatalf("attacks outside combat must be rejected")
	}
}

func TestNoSpawnCellsLeavesWaveEmpty(t *testing.T) {
	tm := obj.NewTileMap(common.TileSize, 4*common.TileSize, 4*common.TileSize)
	tm.Initialize()
	tm.GenerateDefault()
	p := obj.NewPlayer(1, 1, nil, tm)
	cm := NewCombatManager(p, tm, nil, rand.New(rand.NewSource(1)))

	cm.StartCombat(1)
	if len(cm.Enemies()) != 0 {
		t.Fatalf("expected no enemies on a map with no far cells, got %d", len(cm.Enemies()))
	}
	for i := 0; i < 10 && cm.IsInCombat(); i++ {
		cm.Update()
	}
	if cm.Outcome() != OutcomeVictory {
		t.Fatalf("expected empty waves to run out into victory, got %s", cm.Outcome())
	}
}

type brainFunc func(ctx *TurnContext) EnemyDecision

func (f brainFunc) Decide(ctx *TurnContext) EnemyDecision { return f(ctx) }
