package component

import "container/heap"

// PathNode represents a grid cell in an A* path.
type PathNode struct {
	X int
	Y int
}

const (
	// PathStepCost is the uniform cost of one orthogonal step.
	PathStepCost = 10
)

// pathDirections is the neighbour expansion order: up, right, down, left.
// Changing it changes which of several equal-length paths is returned.
var pathDirections = [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}}

// AStar finds a path from start to goal on a 4-way grid.
// isWalkable reports whether a cell may be entered; cells outside
// [0,width)x[0,height) are never entered. The returned path includes both
// endpoints. nil means no path, including a non-walkable start or goal.
//
// The open set is ordered by f = g + h, then by h, then by insertion order,
// so the result is reproducible for a given grid.
func AStar(startX, startY, goalX, goalY, width, height int, isWalkable func(x, y int) bool) []PathNode {
	if width <= 0 || height <= 0 || isWalkable == nil {
		return nil
	}
	inBounds := func(x, y int) bool {
		return x >= 0 && y >= 0 && x < width && y < height
	}
	if !inBounds(startX, startY) || !inBounds(goalX, goalY) {
		return nil
	}
	if !isWalkable(startX, startY) || !isWalkable(goalX, goalY) {
		return nil
	}

	startIdx := startY*width + startX
	goalIdx := goalY*width + goalX

	cameFrom := make([]int, width*height)
	gScore := make([]int, width*height)
	closed := make([]bool, width*height)
	for i := range cameFrom {
		cameFrom[i] = -1
		gScore[i] = -1
	}

	open := &openSet{}
	heap.Init(open)
	var seq uint64
	push := func(x, y, g int) {
		h := heuristic(x, y, goalX, goalY)
		heap.Push(open, &openItem{node: PathNode{X: x, Y: y}, g: g, h: h, seq: seq})
		seq++
	}

	gScore[startIdx] = 0
	push(startX, startY, 0)

	for open.Len() > 0 {
		current := heap.Pop(open).(*openItem)
		cur := current.node
		curIdx := cur.Y*width + cur.X
		if closed[curIdx] {
			// stale entry superseded by a cheaper push
			continue
		}
		closed[curIdx] = true

		if curIdx == goalIdx {
			return reconstructPath(cameFrom, curIdx, startIdx, width)
		}

		for _, d := range pathDirections {
			nx := cur.X + d[0]
			ny := cur.Y + d[1]
			if !inBounds(nx, ny) || !isWalkable(nx, ny) {
				continue
			}
			nIdx := ny*width + nx
			if closed[nIdx] {
				continue
			}
			tentative := gScore[curIdx] + PathStepCost
			if gScore[nIdx] < 0 || tentative < gScore[nIdx] {
				cameFrom[nIdx] = curIdx
				gScore[nIdx] = tentative
				push(nx, ny, tentative)
			}
		}
	}

	return nil
}

func reconstructPath(cameFrom []int, currentIdx, startIdx, width int) []PathNode {
	path := make([]PathNode, 0, 32)
	for {
		path = append(path, PathNode{X: currentIdx % width, Y: currentIdx / width})
		if currentIdx == startIdx {
			break
		}
		prev := cameFrom[currentIdx]
		if prev < 0 {
			return nil
		}
		currentIdx = prev
	}
	// reverse
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// heuristic is the Manhattan distance between two cells.
func heuristic(x1, y1, x2, y2 int) int {
	dx := x1 - x2
	if dx < 0 {
		dx = -dx
	}
	dy := y1 - y2
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

type openItem struct {
	node PathNode
	g    int
	h    int
	seq  uint64
}

func (o *openItem) f() int { return o.g + o.h }

type openSet []*openItem

func (o openSet) Len() int { return len(o) }
func (o openSet) Less(i, j int) bool {
	a, b := o[i], o[j]
	if a.f() != b.f() {
		return a.f() < b.f()
	}
	if a.h != b.h {
		return a.h < b.h
	}
	return a.seq < b.seq
}
func (o openSet) Swap(i, j int) { o[i], o[j] = o[j], o[i] }
func (o *openSet) Push(x any) {
	*o = append(*o, x.(*openItem))
}
func (o *openSet) Pop() any {
	old := *o
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*o = old[:n-1]
	return item
}
