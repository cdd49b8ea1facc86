package system

import (
	"math/rand"
	"testing"

	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

func newTestWorld(t *testing.T, mapName string) *World {
	t.Helper()
	return NewWorld(mapName, WorldConfig{
		Library: levels.NewLibrary(t.TempDir()),
		Rand:    rand.New(rand.NewSource(3)),
	})
}

func TestNewWorldStartsInCity(t *testing.T) {
	w := newTestWorld(t, "")
	if w.State() != StateCity || w.MapName() != "city" {
		t.Fatalf("expected city state on the city map, got %s on %q", w.State(), w.MapName())
	}
	gx, gy := w.Player.GridPosition(w.TileMap)
	if !w.TileMap.IsWalkable(gx, gy) {
		t.Fatalf("player placed on a blocked cell (%d,%d)", gx, gy)
	}
}

func TestLoadMissingMapFallsBack(t *testing.T) {
	w := newTestWorld(t, "")
	if err := w.LoadMap("nowhere"); err == nil {
		t.Fatalf("expected error for a missing map")
	}
	if w.TileMap.IsWalkable(0, 0) || !w.TileMap.IsWalkable(1, 1) {
		t.Fatalf("expected the generated default map")
	}
	if w.TileMap.TileAt(1, 1).TextureID() != obj.DefaultGroundTexture {
		t.Fatalf("expected default ground texture")
	}
}

func TestClickSelectsAndMovesPlayer(t *testing.T) {
	w := newTestWorld(t, "default")
	w.Player.PlaceAt(w.TileMap, 2, 2)

	if w.ClickTile(4, 2) {
		t.Fatalf("an unselected player must ignore move clicks")
	}
	if !w.ClickTile(2, 2) || !w.Player.Selected {
		t.Fatalf("expected click on the player to select it")
	}
	if !w.Player.IsTileAvailable(4, 2) {
		t.Fatalf("expected (4,2) in movement range")
	}
	if w.ClickTile(12, 12) {
		t.Fatalf("a tile out of range must be rejected")
	}
	if !w.ClickTile(4, 2) {
		t.Fatalf("expected move to (4,2)")
	}
	if w.Player.Selected || !w.Player.IsMoving() {
		t.Fatalf("expected the player moving and deselected")
	}
	if w.ClickTile(4, 2) {
		t.Fatalf("clicks are ignored while the player moves")
	}

	for i := 0; i < 100 && w.Player.IsMoving(); i++ {
		w.Update()
	}
	if gx, gy := w.Player.GridPosition(w.TileMap); gx != 4 || gy != 2 {
		t.Fatalf("expected the player at (4,2), got (%d,%d)", gx, gy)
	}
}

func TestClickTogglesSelection(t *testing.T) {
	w := newTestWorld(t, "default")
	gx, gy := w.Player.GridPosition(w.TileMap)
	w.ClickTile(gx, gy)
	w.ClickTile(gx, gy)
	if w.Player.Selected {
		t.Fatalf("second click should deselect")
	}
	if w.ClickTile(-1, 0) {
		t.Fatalf("clicks outside the grid are ignored")
	}
}

func TestArenaRoundTrip(t *testing.T) {
	w := newTestWorld(t, "")
	w.SwitchToArena()

	if w.State() != StateArena || w.MapName() != "arena" {
		t.Fatalf("expected the arena, got %s on %q", w.State(), w.MapName())
	}
	if !w.Combat.IsInCombat() || w.Combat.CurrentWave() != 1 || len(w.Combat.Enemies()) != 2 {
		t.Fatalf("expected wave 1 with 2 enemies")
	}

	w.SwitchToCity()
	if w.State() != StateCity || w.Combat.IsInCombat() {
		t.Fatalf("expected the city with combat ended")
	}
}

func TestArenaClickAttacks(t *testing.T) {
	w := newTestWorld(t, "")
	w.SwitchToArena()
	w.Player.PlaceAt(w.TileMap, 3, 3)
	target := obj.NewEnemy(4, 3, 15, 3, nil, w.TileMap)
	w.Combat.enemies = []*obj.Enemy{target}

	if !w.ClickTile(4, 3) {
		t.Fatalf("expected the click to attack")
	}
	if target.Health() != 5 || w.Combat.IsPlayerTurn() {
		t.Fatalf("expected a hit and the turn passed, hp=%d", target.Health())
	}
	if w.ClickTile(3, 3) {
		t.Fatalf("no input is accepted during the enemy turn")
	}

	w.Update()
	if !w.Combat.IsPlayerTurn() {
		t.Fatalf("expected the player's turn after the enemy phase")
	}
	if w.Player.Health() != w.Player.MaxHealth()-3 {
		t.Fatalf("expected the adjacent enemy to hit back, hp=%d", w.Player.Health())
	}
}

func TestArenaReturnsToCityWhenCombatEnds(t *testing.T) {
	w := newTestWorld(t, "")
	w.SwitchToArena()
	w.Player.SetRemainingAttacks(0)

	w.Update()
	if w.State() != StateCity {
		t.Fatalf("expected the world back in the city")
	}
	if w.Combat.Outcome() != OutcomeExhausted {
		t.Fatalf("expected exhausted outcome, got %s", w.Combat.Outcome())
	}
}

func TestDefeatedPlayerHealsOnReentry(t *testing.T) {
	w := newTestWorld(t, "")
	w.Player.SetHealth(0)
	w.SwitchToArena()
	if w.Player.Health() != w.Player.MaxHealth() {
		t.Fatalf("expected full health on arena entry, got %d", w.Player.Health())
	}
}

func TestWorldUsesConfiguredScript(t *testing.T) {
	cfg := prefabs.DefaultCombatSpec()
	cfg.AIScript = "scripts/enemy_turn.tengo"
	w := NewWorld("", WorldConfig{Combat: cfg, Library: levels.NewLibrary(t.TempDir())})
	if _, ok := w.Combat.brain.(*ScriptBrain); !ok {
		t.Fatalf("expected a script brain, got %T", w.Combat.brain)
	}

	cfg.AIScript = "missing.tengo"
	if err := w.ReloadBrain(); err == nil {
		t.Fatalf("expected error for a missing script")
	}
	if _, ok := w.Combat.brain.(*ScriptBrain); !ok {
		t.Fatalf("a failed reload keeps the previous brain")
	}

	cfg.AIScript = ""
	if err := w.ReloadBrain(); err != nil {
		t.Fatalf("reload: %v", err)
	}
	if _, ok := w.Combat.brain.(DefaultBrain); !ok {
		t.Fatalf("expected the default brain, got %T", w.Combat.brain)
	}
}

func TestSetCombatSpecSwitchesBrain(t *testing.T) {
	w := newTestWorld(t, "")
	if _, ok := w.Combat.brain.(DefaultBrain); !ok {
		t.Fatalf("expected the default brain, got %T", w.Combat.brain)
	}

	cfg := prefabs.DefaultCombatSpec()
	cfg.AIScript = "enemy_turn.tengo"
	if err := w.SetCombatSpec(cfg); err != nil {
		t.Fatalf("set combat spec: %v", err)
	}
	if _, ok := w.Combat.brain.(*ScriptBrain); !ok {
		t.Fatalf("expected a script brain after the spec change, got %T", w.Combat.brain)
	}
}

func TestSetCombatSpecWaitsForCity(t *testing.T) {
	w := newTestWorld(t, "")
	w.SwitchToArena()

	cfg := prefabs.DefaultCombatSpec()
	cfg.MaxWaves = 9
	cfg.AIScript = "enemy_turn.tengo"
	if err := w.SetCombatSpec(cfg); err != nil {
		t.Fatalf("set combat spec: %v", err)
	}
	if w.Combat.MaxWaves() == 9 {
		t.Fatalf("tuning must not change during a fight")
	}
	if _, ok := w.Combat.brain.(DefaultBrain); !ok {
		t.Fatalf("brain must not change during a fight, got %T", w.Combat.brain)
	}

	w.SwitchToCity()
	if w.Combat.MaxWaves() != 9 {
		t.Fatalf("expected the held spec applied in the city, got %d waves", w.Combat.MaxWaves())
	}
	if _, ok := w.Combat.brain.(*ScriptBrain); !ok {
		t.Fatalf("expected a script brain in the city, got %T", w.Combat.brain)
	}
}

func TestSetPlayerSpecRefreshesRange(t *testing.T) {
	w := newTestWorld(t, "default")
	w.Player.PlaceAt(w.TileMap, 5, 5)
	w.ClickTile(5, 5)
	if !w.Player.IsTileAvailable(5, 10) {
		t.Fatalf("expected (5,10) within the default range")
	}

	spec := prefabs.DefaultPlayerSpec()
	spec.MovementRange = 1
	w.SetPlayerSpec(spec)
	if w.Player.IsTileAvailable(5, 10) || !w.Player.IsTileAvailable(5, 6) {
		t.Fatalf("expected the selection range recomputed for range 1")
	}
}
