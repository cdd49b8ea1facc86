package component

import "github.com/milk9111/tilearena/common"

// GridMapper converts grid cells to pixel positions. The tile map implements it.
type GridMapper interface {
	GridToPixelCenter(gx, gy int) (float64, float64)
}

// Facing is the cosmetic orientation of an actor.
type Facing int

const (
	FacingDown Facing = iota
	FacingLeft
	FacingRight
	FacingUp
)

func (f Facing) String() string {
	switch f {
	case FacingLeft:
		return "left"
	case FacingRight:
		return "right"
	case FacingUp:
		return "up"
	default:
		return "down"
	}
}

// Mover advances a pixel position along a grid path at a fixed speed per
// tick. While hasTarget is set, 0 <= pathIndex < len(path).
type Mover struct {
	X     float64
	Y     float64
	Speed float64

	grid      GridMapper
	hasTarget bool
	targetX   float64
	targetY   float64
	path      []PathNode
	pathIndex int
	facing    Facing
}

// NewMover creates a stationary mover at pixel (x, y).
func NewMover(x, y, speed float64, grid GridMapper) Mover {
	if speed <= 0 {
		speed = 1
	}
	return Mover{X: x, Y: y, Speed: speed, grid: grid}
}

// SetPath replaces the current path and heads for the center of its first
// cell. An empty path never starts movement; a mover already under way keeps
// only the cell it is heading to.
func (m *Mover) SetPath(path []PathNode) {
	if m == nil {
		return
	}
	if len(path) == 0 || m.grid == nil {
		if m.hasTarget && m.pathIndex < len(m.path) {
			m.path = []PathNode{m.path[m.pathIndex]}
		} else {
			m.hasTarget = false
			m.path = nil
		}
		m.pathIndex = 0
		return
	}
	m.path = path
	m.pathIndex = 0
	m.targetX, m.targetY = m.grid.GridToPixelCenter(path[0].X, path[0].Y)
	m.hasTarget = true
}

// MoveTo commits a single waypoint.
func (m *Mover) MoveTo(node PathNode) {
	m.SetPath([]PathNode{node})
}

// Step runs one simulation tick of movement.
func (m *Mover) Step() {
	if m == nil || !m.hasTarget {
		return
	}

	dx := m.targetX - m.X
	dy := m.targetY - m.Y
	dist := common.Distance(dx, dy)

	if dist > m.Speed {
		m.X += dx / dist * m.Speed
		m.Y += dy / dist * m.Speed
		m.facing = facingFor(dx, dy)
		return
	}

	m.X = m.targetX
	m.Y = m.targetY

	if m.pathIndex < len(m.path)-1 {
		m.pathIndex++
		next := m.path[m.pathIndex]
		m.targetX, m.targetY = m.grid.GridToPixelCenter(next.X, next.Y)
		return
	}

	m.hasTarget = false
	m.path = nil
	m.pathIndex = 0
}

// Stop drops the current path without moving.
func (m *Mover) Stop() {
	if m == nil {
		return
	}
	m.hasTarget = false
	m.path = nil
	m.pathIndex = 0
}

func (m *Mover) IsMoving() bool {
	return m != nil && m.hasTarget
}

func (m *Mover) Position() (float64, float64) {
	if m == nil {
		return 0, 0
	}
	return m.X, m.Y
}

func (m *Mover) SetPosition(x, y float64) {
	if m == nil {
		return
	}
	m.X = x
	m.Y = y
}

// Target returns the pixel the mover is heading to and whether it has one.
func (m *Mover) Target() (float64, float64, bool) {
	if m == nil {
		return 0, 0, false
	}
	return m.targetX, m.targetY, m.hasTarget
}

func (m *Mover) Path() []PathNode {
	if m == nil {
		return nil
	}
	return m.path
}

func (m *Mover) PathIndex() int {
	if m == nil {
		return 0
	}
	return m.pathIndex
}

func (m *Mover) Facing() Facing {
	if m == nil {
		return FacingDown
	}
	return m.facing
}

// facingFor picks the dominant axis; horizontal wins only when strictly larger.
func facingFor(dx, dy float64) Facing {
	adx, ady := dx, dy
	if adx < 0 {
		adx = -adx
	}
	if ady < 0 {
		ady = -ady
	}
	if adx > ady {
		if dx > 0 {
			return FacingRight
		}
		return FacingLeft
	}
	if dy > 0 {
		return FacingDown
	}
	return FacingUp
}
