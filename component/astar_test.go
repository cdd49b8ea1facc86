package component

import (
	"strings"
	"testing"
)

// gridFromRows builds a walkability function from rows of '.' (open) and
// '#' (blocked).
func gridFromRows(rows []string) (int, int, func(x, y int) bool) {
	h := len(rows)
	w := 0
	if h > 0 {
		w = len(rows[0])
	}
	return w, h, func(x, y int) bool {
		return rows[y][x] != '#'
	}
}

func borderedGrid(w, h int) []string {
	rows := make([]string, h)
	for y := 0; y < h; y++ {
		if y == 0 || y == h-1 {
			rows[y] = strings.Repeat("#", w)
			continue
		}
		rows[y] = "#" + strings.Repeat(".", w-2) + "#"
	}
	return rows
}

// bfsDistance is the reference shortest path length in steps, -1 when
// unreachable.
func bfsDistance(sx, sy, gx, gy, w, h int, walk func(x, y int) bool) int {
	if !walk(sx, sy) || !walk(gx, gy) {
		return -1
	}
	dist := make([]int, w*h)
	for i := range dist {
		dist[i] = -1
	}
	dist[sy*w+sx] = 0
	queue := []PathNode{{X: sx, Y: sy}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		if cur.X == gx && cur.Y == gy {
			return dist[cur.Y*w+cur.X]
		}
		for _, d := range pathDirections {
			nx, ny := cur.X+d[0], cur.Y+d[1]
			if nx < 0 || ny < 0 || nx >= w || ny >= h || !walk(nx, ny) || dist[ny*w+nx] >= 0 {
				continue
			}
			dist[ny*w+nx] = dist[cur.Y*w+cur.X] + 1
			queue = append(queue, PathNode{X: nx, Y: ny})
		}
	}
	return -1
}

func checkPathValid(t *testing.T, path []PathNode, sx, sy, gx, gy int, walk func(x, y int) bool) {
	t.Helper()
	if len(path) == 0 {
		t.Fatalf("expected a path")
	}
	if path[0] != (PathNode{X: sx, Y: sy}) {
		t.Fatalf("path starts at %v, want (%d,%d)", path[0], sx, sy)
	}
	if last := path[len(path)-1]; last != (PathNode{X: gx, Y: gy}) {
		t.Fatalf("path ends at %v, want (%d,%d)", last, gx, gy)
	}
	for i, n := range path {
		if !walk(n.X, n.Y) {
			t.Fatalf("path[%d] %v is not walkable", i, n)
		}
		if i == 0 {
			continue
		}
		prev := path[i-1]
		dx, dy := n.X-prev.X, n.Y-prev.Y
		if dx < 0 {
			dx = -dx
		}
		if dy < 0 {
			dy = -dy
		}
		if dx+dy != 1 {
			t.Fatalf("path[%d] %v is not adjacent to %v", i, n, prev)
		}
	}
}

func TestAStarFindsShortestPath(t *testing.T) {
	cases := []struct {
		name   string
		rows   []string
		sx, sy int
		gx, gy int
	}{
		{"bordered_diagonal", borderedGrid(10, 10), 1, 1, 8, 8},
		{"same_cell", borderedGrid(5, 5), 2, 2, 2, 2},
		{"around_wall", []string{
			".....",
			".###.",
			".#...",
			".#.#.",
			"...#.",
		}, 2, 2, 0, 0},
		{"corridor", []string{
			"#######",
			"#.....#",
			"#####.#",
			"#.....#",
			"#.#####",
			"#.....#",
			"#######",
		}, 1, 1, 5, 5},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h, walk := gridFromRows(c.rows)
			path := AStar(c.sx, c.sy, c.gx, c.gy, w, h, walk)
			checkPathValid(t, path, c.sx, c.sy, c.gx, c.gy, walk)
			want := bfsDistance(c.sx, c.sy, c.gx, c.gy, w, h, walk)
			if len(path)-1 != want {
				t.Fatalf("path has %d steps, shortest is %d", len(path)-1, want)
			}
		})
	}
}

func TestAStarBorderedGridLength(t *testing.T) {
	w, h, walk := gridFromRows(borderedGrid(10, 10))
	path := AStar(1, 1, 8, 8, w, h, walk)
	if len(path) != 15 {
		t.Fatalf("expected 15 nodes (14 steps), got %d", len(path))
	}
}

func TestAStarNoPath(t *testing.T) {
	walled := []string{
		".....",
		"..#..",
		".#.#.",
		"..#..",
		".....",
	}
	cases := []struct {
		name   string
		rows   []string
		sx, sy int
		gx, gy int
	}{
		{"enclosed_goal", walled, 0, 0, 2, 2},
		{"blocked_start", walled, 2, 1, 0, 0},
		{"blocked_goal", walled, 0, 0, 1, 2},
		{"start_out_of_bounds", walled, -1, 0, 0, 0},
		{"goal_out_of_bounds", walled, 0, 0, 5, 0},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			w, h, walk := gridFromRows(c.rows)
			if path := AStar(c.sx, c.sy, c.gx, c.gy, w, h, walk); path != nil {
				t.Fatalf("expected no path, got %v", path)
			}
		})
	}
}

func TestAStarEmptyGrid(t *testing.T) {
	if AStar(0, 0, 0, 0, 0, 0, func(x, y int) bool { return true }) != nil {
		t.Fatalf("expected nil for zero-sized grid")
	}
	if AStar(0, 0, 1, 1, 3, 3, nil) != nil {
		t.Fatalf("expected nil for nil walkability")
	}
}

func TestAStarDeterministic(t *testing.T) {
	w, h, walk := gridFromRows(borderedGrid(12, 9))
	first := AStar(1, 1, 10, 7, w, h, walk)
	for i := 0; i < 20; i++ {
		again := AStar(1, 1, 10, 7, w, h, walk)
		if len(again) != len(first) {
			t.Fatalf("run %d: length %d, want %d", i, len(again), len(first))
		}
		for j := range first {
			if again[j] != first[j] {
				t.Fatalf("run %d: node %d = %v, want %v", i, j, again[j], first[j])
			}
		}
	}
}

func TestAStarTieBreakPrefersExpansionOrder(t *testing.T) {
	// On an open 2x2 grid both routes cost the same; right is expanded
	// before down, so the path goes through (1,0).
	path := AStar(0, 0, 1, 1, 2, 2, func(x, y int) bool { return true })
	want := []PathNode{{0, 0}, {1, 0}, {1, 1}}
	if len(path) != len(want) {
		t.Fatalf("got %v, want %v", path, want)
	}
	for i := range want {
		if path[i] != want[i] {
			t.Fatalf("got %v, want %v", path, want)
		}
	}
}
