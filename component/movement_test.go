package component

import "testing"

type testGrid struct{ size float64 }

func (g testGrid) GridToPixelCenter(gx, gy int) (float64, float64) {
	return float64(gx)*g.size + g.size/2, float64(gy)*g.size + g.size/2
}

func TestMoverFollowsPath(t *testing.T) {
	grid := testGrid{size: 32}
	x, y := grid.GridToPixelCenter(0, 0)
	m := NewMover(x, y, 8, grid)

	m.SetPath([]PathNode{{0, 0}, {1, 0}, {1, 1}})
	if !m.IsMoving() {
		t.Fatalf("expected mover to have a target")
	}

	// first node is the current cell: one tick snaps and advances
	m.Step()
	if m.PathIndex() != 1 {
		t.Fatalf("expected path index 1, got %d", m.PathIndex())
	}

	for i := 0; i < 100 && m.IsMoving(); i++ {
		m.Step()
	}
	if m.IsMoving() {
		t.Fatalf("mover never arrived")
	}
	wx, wy := grid.GridToPixelCenter(1, 1)
	if px, py := m.Position(); px != wx || py != wy {
		t.Fatalf("ended at (%v,%v), want (%v,%v)", px, py, wx, wy)
	}
	if m.Path() != nil || m.PathIndex() != 0 {
		t.Fatalf("expected path cleared on arrival")
	}
}

func TestMoverStepAdvancesBySpeed(t *testing.T) {
	grid := testGrid{size: 32}
	m := NewMover(16, 16, 5, grid)
	m.MoveTo(PathNode{X: 1, Y: 0})

	m.Step()
	if px, _ := m.Position(); px != 21 {
		t.Fatalf("expected x=21 after one tick, got %v", px)
	}
	if m.Facing() != FacingRight {
		t.Fatalf("expected facing right, got %s", m.Facing())
	}
}

func TestMoverEmptyPathAndStop(t *testing.T) {
	grid := testGrid{size: 32}
	m := NewMover(16, 16, 5, grid)

	m.SetPath(nil)
	if m.IsMoving() {
		t.Fatalf("empty path must not start movement")
	}

	m.MoveTo(PathNode{X: 3, Y: 0})
	m.Step()
	m.Stop()
	if m.IsMoving() {
		t.Fatalf("expected stop to clear the target")
	}
	px, _ := m.Position()
	m.Step()
	if again, _ := m.Position(); again != px {
		t.Fatalf("stopped mover moved from %v to %v", px, again)
	}
}

func TestMoverEmptyPathWhileMovingKeepsTarget(t *testing.T) {
	grid := testGrid{size: 32}
	x, y := grid.GridToPixelCenter(0, 0)
	m := NewMover(x, y, 4, grid)
	m.SetPath([]PathNode{{0, 0}, {1, 0}, {2, 0}})
	m.Step()
	m.Step()

	m.SetPath(nil)
	if !m.IsMoving() {
		t.Fatalf("expected the mover to keep its current target")
	}
	if len(m.Path()) != 1 || m.Path()[0] != (PathNode{1, 0}) || m.PathIndex() != 0 {
		t.Fatalf("expected a one-node path to (1,0), got %v at %d", m.Path(), m.PathIndex())
	}

	for i := 0; i < 100 && m.IsMoving(); i++ {
		m.Step()
	}
	wx, wy := grid.GridToPixelCenter(1, 0)
	if px, py := m.Position(); px != wx || py != wy {
		t.Fatalf("ended at (%v,%v), want (%v,%v)", px, py, wx, wy)
	}
}

func TestMoverNonPositiveSpeed(t *testing.T) {
	m := NewMover(0, 0, 0, testGrid{size: 32})
	if m.Speed != 1 {
		t.Fatalf("expected speed clamped to 1, got %v", m.Speed)
	}
}

func TestFacingFor(t *testing.T) {
	cases := []struct {
		name   string
		dx, dy float64
		want   Facing
	}{
		{"right", 3, 1, FacingRight},
		{"left", -3, 1, FacingLeft},
		{"down", 0, 2, FacingDown},
		{"up", 1, -2, FacingUp},
		{"tie_is_vertical", 2, -2, FacingUp},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := facingFor(c.dx, c.dy); got != c.want {
				t.Fatalf("facingFor(%v,%v) = %s, want %s", c.dx, c.dy, got, c.want)
			}
		})
	}
}

func TestHealthDamageAndDeath(t *testing.T) {
	h := NewHealth(10)
	deaths := 0
	h.OnDeath = func(*Health) { deaths++ }

	if h.ApplyDamage(0) {
		t.Fatalf("zero damage must not kill")
	}
	if h.ApplyDamage(4) || h.CurrentHP() != 6 {
		t.Fatalf("expected 6 hp, got %d", h.CurrentHP())
	}
	if !h.ApplyDamage(8) {
		t.Fatalf("expected lethal hit to report death")
	}
	if h.CurrentHP() != -2 || !h.IsDead() {
		t.Fatalf("expected overkill kept at -2, got %d", h.CurrentHP())
	}
	if h.ApplyDamage(1) {
		t.Fatalf("damage to a dead pool must not report a second death")
	}
	if deaths != 1 {
		t.Fatalf("expected one death callback, got %d", deaths)
	}

	h.Heal(5)
	if h.CurrentHP() != -3 {
		t.Fatalf("heal must not revive, got %d", h.CurrentHP())
	}
}

func TestHealthClampAndFraction(t *testing.T) {
	h := NewHealth(20)
	h.SetCurrentHP(50)
	if h.CurrentHP() != 20 {
		t.Fatalf("expected clamp to max, got %d", h.CurrentHP())
	}
	h.SetCurrentHP(5)
	if got := h.Fraction(); got != 0.25 {
		t.Fatalf("expected fraction 0.25, got %v", got)
	}
	h.SetMaxHP(4)
	if h.CurrentHP() != 4 || h.Fraction() != 1 {
		t.Fatalf("expected current clamped to new max, got %d", h.CurrentHP())
	}

	var nilHealth *Health
	if nilHealth.IsAlive() || nilHealth.CurrentHP() != 0 || nilHealth.ApplyDamage(3) {
		t.Fatalf("nil health should be inert")
	}
}
