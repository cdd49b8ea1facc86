package obj

import (
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/prefabs"
)

// flood fill order matches the A* neighbour order
var floodDirections = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// Player is the controllable actor. It follows paths through the embedded
// Mover and owns its own reachable-tile and attack-target sets.
type Player struct {
	component.Mover

	Name     string
	Texture  string
	Selected bool

	health *component.Health

	movementRange    int
	attackDamage     int
	attackRange      int
	maxAttacks       int
	remainingAttacks int

	tileSize       int
	availableTiles []component.PathNode
	availableSet   map[component.PathNode]struct{}
	attackTargets  []component.PathNode
	attackSet      map[component.PathNode]struct{}
}

// NewPlayer places a player on the center of cell (gx, gy). A nil spec uses
// prefabs.DefaultPlayerSpec.
func NewPlayer(gx, gy int, spec *prefabs.PlayerSpec, tm *TileMap) *Player {
	if spec == nil {
		spec = prefabs.DefaultPlayerSpec()
	}
	ts := common.TileSize
	var grid component.GridMapper
	x, y := float64(gx*ts+ts/2), float64(gy*ts+ts/2)
	if tm != nil {
		grid = tm
		ts = tm.TileSize()
		x, y = tm.GridToPixelCenter(gx, gy)
	}

	return &Player{
		Mover:            component.NewMover(x, y, spec.MoveSpeed, grid),
		Name:             spec.Name,
		Texture:          spec.Texture,
		health:           component.NewHealth(spec.Health),
		movementRange:    max(spec.MovementRange, 0),
		attackDamage:     spec.AttackDamage,
		attackRange:      max(spec.AttackRange, 0),
		maxAttacks:       max(spec.MaxAttacks, 0),
		remainingAttacks: max(spec.MaxAttacks, 0),
		tileSize:         ts,
	}
}

// ApplySpec swaps in new stats without moving the player. Health and the
// attack budget are clamped to the new maximums.
func (p *Player) ApplySpec(spec *prefabs.PlayerSpec) {
	if p == nil || spec == nil {
		return
	}
	p.Name = spec.Name
	p.Texture = spec.Texture
	if spec.MoveSpeed > 0 {
		p.Speed = spec.MoveSpeed
	}
	p.health.SetMaxHP(spec.Health)
	p.movementRange = max(spec.MovementRange, 0)
	p.attackDamage = spec.AttackDamage
	p.attackRange = max(spec.AttackRange, 0)
	p.maxAttacks = max(spec.MaxAttacks, 0)
	p.remainingAttacks = min(p.remainingAttacks, p.maxAttacks)
}

// GridPosition returns the cell under the player's pixel position.
func (p *Player) GridPosition(tm *TileMap) (int, int) {
	if p == nil {
		return -1, -1
	}
	if tm == nil {
		return int(p.X) / max(p.tileSize, 1), int(p.Y) / max(p.tileSize, 1)
	}
	return tm.PixelToGrid(p.X, p.Y)
}

// PlaceAt snaps the player to the center of a cell and drops any path.
func (p *Player) PlaceAt(tm *TileMap, gx, gy int) {
	if p == nil || tm == nil {
		return
	}
	p.Stop()
	p.SetPosition(tm.GridToPixelCenter(gx, gy))
}

// IsPointOnPlayer reports whether a pixel falls inside the player's tile-sized
// box.
func (p *Player) IsPointOnPlayer(px, py float64) bool {
	if p == nil {
		return false
	}
	half := float64(p.tileSize) / 2
	return px >= p.X-half && px < p.X+half && py >= p.Y-half && py < p.Y+half
}

// CalculateAvailableTiles flood-fills walkable cells reachable within
// MovementRange steps. The player's own cell is always included.
func (p *Player) CalculateAvailableTiles(tm *TileMap) {
	if p == nil {
		return
	}
	p.availableTiles = p.availableTiles[:0]
	p.availableSet = make(map[component.PathNode]struct{})
	if tm == nil {
		return
	}

	sx, sy := p.GridPosition(tm)
	start := component.PathNode{X: sx, Y: sy}
	p.availableSet[start] = struct{}{}
	p.availableTiles = append(p.availableTiles, start)

	type entry struct {
		node  component.PathNode
		steps int
	}
	queue := []entry{{node: start}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.steps >= p.movementRange {
			continue
		}
		for _, d := range floodDirections {
			next := component.PathNode{X: cur.node.X + d[0], Y: cur.node.Y + d[1]}
			if _, seen := p.availableSet[next]; seen {
				continue
			}
			if !tm.IsWalkable(next.X, next.Y) {
				continue
			}
			p.availableSet[next] = struct{}{}
			p.availableTiles = append(p.availableTiles, next)
			queue = append(queue, entry{node: next, steps: cur.steps + 1})
		}
	}
}

// AvailableTiles returns the cells found by the last CalculateAvailableTiles
// call, in discovery order.
func (p *Player) AvailableTiles() []component.PathNode {
	if p == nil {
		return nil
	}
	return p.availableTiles
}

func (p *Player) IsTileAvailable(gx, gy int) bool {
	if p == nil {
		return false
	}
	_, ok := p.availableSet[component.PathNode{X: gx, Y: gy}]
	return ok
}

// CalculateAttackTargets collects every valid cell within AttackRange
// (Manhattan) of the player, excluding its own cell. Walkability is ignored.
func (p *Player) CalculateAttackTargets(tm *TileMap) {
	if p == nil {
		return
	}
	p.attackTargets = p.attackTargets[:0]
	p.attackSet = make(map[component.PathNode]struct{})
	if tm == nil {
		return
	}

	px, py := p.GridPosition(tm)
	r := p.attackRange
	for dy := -r; dy <= r; dy++ {
		for dx := -r; dx <= r; dx++ {
			d := common.AbsInt(dx) + common.AbsInt(dy)
			if d == 0 || d > r {
				continue
			}
			x, y := px+dx, py+dy
			if !tm.IsValidGridPosition(x, y) {
				continue
			}
			n := component.PathNode{X: x, Y: y}
			p.attackSet[n] = struct{}{}
			p.attackTargets = append(p.attackTargets, n)
		}
	}
}

func (p *Player) AttackTargets() []component.PathNode {
	if p == nil {
		return nil
	}
	return p.attackTargets
}

func (p *Player) IsTileInAttackRange(gx, gy int) bool {
	if p == nil {
		return false
	}
	_, ok := p.attackSet[component.PathNode{X: gx, Y: gy}]
	return ok
}

// UseAttack spends one attack. The budget never drops below zero.
func (p *Player) UseAttack() {
	if p == nil || p.remainingAttacks <= 0 {
		return
	}
	p.remainingAttacks--
}

func (p *Player) HasAttacksRemaining() bool {
	return p != nil && p.remainingAttacks > 0
}

func (p *Player) RemainingAttacks() int {
	if p == nil {
		return 0
	}
	return p.remainingAttacks
}

func (p *Player) SetRemainingAttacks(n int) {
	if p == nil {
		return
	}
	p.remainingAttacks = max(n, 0)
}

func (p *Player) ResetAttacks() {
	if p == nil {
		return
	}
	p.remainingAttacks = p.maxAttacks
}

func (p *Player) MaxAttacks() int {
	if p == nil {
		return 0
	}
	return p.maxAttacks
}

func (p *Player) MovementRange() int {
	if p == nil {
		return 0
	}
	return p.movementRange
}

func (p *Player) AttackDamage() int {
	if p == nil {
		return 0
	}
	return p.attackDamage
}

func (p *Player) AttackRange() int {
	if p == nil {
		return 0
	}
	return p.attackRange
}

// Health returns current hit points.
func (p *Player) Health() int {
	if p == nil {
		return 0
	}
	return p.health.CurrentHP()
}

func (p *Player) SetHealth(v int) {
	if p == nil {
		return
	}
	p.health.SetCurrentHP(v)
}

func (p *Player) MaxHealth() int {
	if p == nil {
		return 0
	}
	return p.health.MaxHP()
}

func (p *Player) IsDead() bool {
	return p == nil || p.health.IsDead()
}

// HealthPool exposes the underlying health component for renderers and
// damage callbacks.
func (p *Player) HealthPool() *component.Health {
	if p == nil {
		return nil
	}
	return p.health
}

var _ component.Actor = (*Player)(nil)
