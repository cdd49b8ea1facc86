package system

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

// GameState is the top-level mode of the game.
type GameState int

const (
	StateCity GameState = iota
	StateArena
)

func (s GameState) String() string {
	if s == StateArena {
		return "arena"
	}
	return "city"
}

// WorldConfig gathers the specs a World is built from. Nil fields use the
// prefab defaults.
type WorldConfig struct {
	Player  *prefabs.PlayerSpec
	Enemy   *prefabs.EnemySpec
	Combat  *prefabs.CombatSpec
	Library *levels.Library
	Rand    *rand.Rand
}

// World owns the tile map, the player and the combat manager, and turns
// clicks into movement and attacks.
type World struct {
	TileMap *obj.TileMap
	Player  *obj.Player
	Combat  *CombatManager
	Library *levels.Library

	state   GameState
	mapName string
	cfg     *prefabs.CombatSpec
	pending *prefabs.CombatSpec
}

// NewWorld builds a world and loads mapName (the city map when empty).
func NewWorld(mapName string, wc WorldConfig) *World {
	if wc.Combat == nil {
		wc.Combat = prefabs.DefaultCombatSpec()
	}
	if wc.Library == nil {
		wc.Library = levels.NewLibrary("")
	}

	tm := obj.NewTileMap(common.TileSize, common.WindowWidth, common.WindowHeight)
	tm.Initialize()

	w := &World{
		TileMap: tm,
		Library: wc.Library,
		cfg:     wc.Combat,
	}
	w.Player = obj.NewPlayer(1, 1, wc.Player, tm)
	w.Combat = NewCombatManager(w.Player, tm, wc.Combat, wc.Rand)
	w.Combat.SetEnemySpec(wc.Enemy)
	if err := w.ReloadBrain(); err != nil {
		log.Printf("world: %v; using default enemy brain", err)
	}

	if mapName == "" {
		mapName = wc.Combat.CityMap
	}
	if err := w.LoadMap(mapName); err != nil {
		log.Printf("world: %v", err)
	}
	return w
}

// ReloadBrain recompiles the enemy script named by the combat spec. With no
// script configured the default brain is used. On error the current brain is
// kept.
func (w *World) ReloadBrain() error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	if w.cfg.AIScript == "" {
		w.Combat.SetBrain(nil)
		return nil
	}
	brain, err := NewScriptBrain(w.cfg.AIScript)
	if err != nil {
		return err
	}
	w.Combat.SetBrain(brain)
	return nil
}

// SetCombatSpec swaps the combat tuning and reloads the enemy brain from its
// ai_script. During a fight the spec is held until the world is back in the
// city.
func (w *World) SetCombatSpec(spec *prefabs.CombatSpec) error {
	if w == nil || spec == nil {
		return nil
	}
	if !w.Combat.SetConfig(spec) {
		w.pending = spec
		return nil
	}
	w.pending = nil
	w.cfg = spec
	return w.ReloadBrain()
}

// SetPlayerSpec applies new player stats and refreshes the selection ranges.
func (w *World) SetPlayerSpec(spec *prefabs.PlayerSpec) {
	if w == nil {
		return
	}
	w.Player.ApplySpec(spec)
	if w.Player.Selected {
		w.Player.CalculateAvailableTiles(w.TileMap)
		w.Player.CalculateAttackTargets(w.TileMap)
	}
}

func (w *World) State() GameState {
	if w == nil {
		return StateCity
	}
	return w.state
}

func (w *World) MapName() string {
	if w == nil {
		return ""
	}
	return w.mapName
}

// LoadMap loads a named map into the live grid. When the map cannot be read a
// generated default is used and the error is returned for logging. The player
// is moved to the first walkable cell if its own cell is blocked.
func (w *World) LoadMap(name string) error {
	if w == nil {
		return fmt.Errorf("world is nil")
	}
	w.mapName = name

	var loadErr error
	mf, err := w.Library.Load(name)
	if err == nil {
		err = w.TileMap.ApplyMapFile(mf)
	}
	if err != nil {
		loadErr = fmt.Errorf("world: load map %s: %w", name, err)
		w.TileMap.GenerateDefault()
	}

	w.placePlayer()
	return loadErr
}

func (w *World) placePlayer() {
	gx, gy := w.Player.GridPosition(w.TileMap)
	if w.TileMap.IsWalkable(gx, gy) {
		w.Player.PlaceAt(w.TileMap, gx, gy)
		return
	}
	if x, y, ok := w.TileMap.FirstWalkable(); ok {
		w.Player.PlaceAt(w.TileMap, x, y)
	}
}

// SwitchToArena loads the arena map and starts combat at wave 1. A defeated
// player re-enters with full health.
func (w *World) SwitchToArena() {
	if w == nil || w.state == StateArena {
		return
	}
	w.state = StateArena
	w.Player.Selected = false
	if w.Player.IsDead() {
		w.Player.SetHealth(w.Player.MaxHealth())
	}
	if err := w.LoadMap(w.cfg.ArenaMap); err != nil {
		log.Printf("world: %v", err)
	}
	w.Combat.SetTileMap(w.TileMap)
	w.Combat.StartCombat(1)
}

// SwitchToCity ends any running combat and loads the city map.
func (w *World) SwitchToCity() {
	if w == nil || w.state == StateCity {
		return
	}
	w.Combat.EndCombat()
	w.state = StateCity
	w.Player.Selected = false
	if w.pending != nil {
		if err := w.SetCombatSpec(w.pending); err != nil {
			log.Printf("world: %v; keeping current enemy brain", err)
		}
	}
	if err := w.LoadMap(w.cfg.CityMap); err != nil {
		log.Printf("world: %v", err)
	}
}

// ClickTile handles a click on (gx, gy). In the arena a click on an
// attackable enemy attacks it. Otherwise a click on the player toggles
// selection and a click on an available tile moves a selected player there.
func (w *World) ClickTile(gx, gy int) bool {
	if w == nil || !w.TileMap.IsValidGridPosition(gx, gy) {
		return false
	}

	if w.state == StateArena && w.Combat.IsInCombat() {
		if w.Combat.HandleCombatEvent(gx, gy) {
			w.Player.Selected = false
			return true
		}
		if !w.Combat.IsPlayerTurn() {
			return false
		}
	}

	if w.Player.IsMoving() {
		return false
	}

	px, py := w.Player.GridPosition(w.TileMap)
	if gx == px && gy == py {
		w.Player.Selected = !w.Player.Selected
		if w.Player.Selected {
			w.Player.CalculateAvailableTiles(w.TileMap)
			w.Player.CalculateAttackTargets(w.TileMap)
		}
		return true
	}

	if !w.Player.Selected || !w.Player.IsTileAvailable(gx, gy) {
		return false
	}
	if w.state == StateArena && w.Combat.GetEnemyAt(gx, gy) >= 0 {
		return false
	}
	path := w.TileMap.FindPath(px, py, gx, gy)
	if len(path) == 0 {
		return false
	}
	w.Player.SetPath(path)
	w.Player.Selected = false
	return true
}

// Update runs one simulation tick. When combat finishes the world returns to
// the city.
func (w *World) Update() {
	if w == nil {
		return
	}
	w.Player.Step()
	if w.state != StateArena {
		return
	}
	w.Combat.Update()
	if !w.Combat.IsInCombat() {
		log.Printf("world: arena finished (%s) at wave %d", w.Combat.Outcome(), w.Combat.CurrentWave())
		w.SwitchToCity()
	}
}
