package system

import (
	"log"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
)

// SpawnWave replaces the enemy list with a fresh wave for currentWave. Cells
// are drawn uniformly without replacement from the walkable cells at least
// MinSpawnDistance away from the player.
func (cm *CombatManager) SpawnWave() {
	if cm == nil || cm.tileMap == nil || cm.player == nil {
		return
	}
	cm.enemies = nil

	wave := cm.currentWave
	cells := cm.spawnCells()
	if len(cells) == 0 {
		log.Printf("combat: wave %d has no valid spawn cells", wave)
		cm.Emitter.Emit(component.CombatEvent{Type: component.EventWaveStart, Enemy: -1, Wave: wave})
		return
	}

	count := min(max(cm.cfg.EnemiesPerWave+wave-1, 0), len(cells))
	for i := 0; i < count; i++ {
		j := i + cm.rng.Intn(len(cells)-i)
		cells[i], cells[j] = cells[j], cells[i]
	}

	health := cm.EnemyHealthForWave(wave)
	damage := cm.EnemyDamageForWave(wave)
	cm.enemies = make([]*obj.Enemy, 0, count)
	for _, c := range cells[:count] {
		cm.enemies = append(cm.enemies, obj.NewEnemy(c.X, c.Y, health, damage, cm.enemySpec, cm.tileMap))
	}

	log.Printf("combat: wave %d spawned with %d enemies (hp %d, dmg %d)", wave, count, health, damage)
	cm.Emitter.Emit(component.CombatEvent{Type: component.EventWaveStart, Enemy: -1, Wave: wave})
}

// EnemyHealthForWave is BaseHealth + HealthPerWave*wave.
func (cm *CombatManager) EnemyHealthForWave(wave int) int {
	return cm.cfg.BaseHealth + cm.cfg.HealthPerWave*wave
}

// EnemyDamageForWave is BaseDamage + DamagePerWave*wave.
func (cm *CombatManager) EnemyDamageForWave(wave int) int {
	return cm.cfg.BaseDamage + cm.cfg.DamagePerWave*wave
}

// spawnCells lists candidate cells in row-major order.
func (cm *CombatManager) spawnCells() []component.PathNode {
	px, py := cm.player.GridPosition(cm.tileMap)
	var cells []component.PathNode
	for y := 0; y < cm.tileMap.GridHeight(); y++ {
		for x := 0; x < cm.tileMap.GridWidth(); x++ {
			if !cm.tileMap.IsWalkable(x, y) {
				continue
			}
			if common.Manhattan(x, y, px, py) < cm.cfg.MinSpawnDistance {
				continue
			}
			cells = append(cells, component.PathNode{X: x, Y: y})
		}
	}
	return cells
}
