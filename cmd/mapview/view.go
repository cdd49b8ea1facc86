package main

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

const (
	glyphFloor   = '.'
	glyphBlocked = '#'
	glyphObject  = 'o'
	glyphPath    = '*'
	glyphRange   = ':'
	glyphStart   = 'A'
	glyphEnd     = 'B'
)

var (
	styleFloor   = tcell.StyleDefault.Foreground(tcell.ColorGreen)
	styleBlocked = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleObject  = tcell.StyleDefault.Foreground(tcell.ColorOlive)
	stylePath    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleRange   = tcell.StyleDefault.Foreground(tcell.ColorAqua)
	styleMarker  = tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true)
	styleCursor  = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorAqua)
	styleStatus  = tcell.StyleDefault.Foreground(tcell.ColorYellow)
)

// view is a terminal path debugger over one tile map. A and B are path
// endpoints; the flood-fill range is taken from a probe player standing on
// the cursor.
type view struct {
	tm      *obj.TileMap
	name    string
	spec    *prefabs.PlayerSpec
	cursorX int
	cursorY int

	start, end *component.PathNode
	path       []component.PathNode
	reachable  map[component.PathNode]bool
	showRange  bool
}

func newView(tm *obj.TileMap, name string, spec *prefabs.PlayerSpec) *view {
	v := &view{tm: tm, name: name, spec: spec, showRange: true}
	if x, y, ok := tm.FirstWalkable(); ok {
		v.cursorX, v.cursorY = x, y
	}
	v.refresh()
	return v
}

// handleKey applies one key event. Returns false when the viewer should quit.
func (v *view) handleKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return false
	case tcell.KeyUp:
		v.moveCursor(0, -1)
	case tcell.KeyDown:
		v.moveCursor(0, 1)
	case tcell.KeyLeft:
		v.moveCursor(-1, 0)
	case tcell.KeyRight:
		v.moveCursor(1, 0)
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return false
		case 'a':
			v.start = &component.PathNode{X: v.cursorX, Y: v.cursorY}
		case 'b':
			v.end = &component.PathNode{X: v.cursorX, Y: v.cursorY}
		case 'r':
			v.showRange = !v.showRange
		case 'c':
			v.start, v.end = nil, nil
		}
	}
	v.refresh()
	return true
}

func (v *view) moveCursor(dx, dy int) {
	x, y := v.cursorX+dx, v.cursorY+dy
	if v.tm.IsValidGridPosition(x, y) {
		v.cursorX, v.cursorY = x, y
	}
}

func (v *view) refresh() {
	v.path = nil
	if v.start != nil && v.end != nil {
		v.path = v.tm.FindPath(v.start.X, v.start.Y, v.end.X, v.end.Y)
	}

	v.reachable = nil
	if v.showRange && v.tm.IsWalkable(v.cursorX, v.cursorY) {
		probe := obj.NewPlayer(v.cursorX, v.cursorY, v.spec, v.tm)
		probe.CalculateAvailableTiles(v.tm)
		v.reachable = make(map[component.PathNode]bool, len(probe.AvailableTiles()))
		for _, n := range probe.AvailableTiles() {
			v.reachable[n] = true
		}
	}
}

func (v *view) status() string {
	pathInfo := "path: set A and B"
	if v.start != nil && v.end != nil {
		if len(v.path) == 0 {
			pathInfo = "path: none"
		} else {
			pathInfo = fmt.Sprintf("path: %d steps", len(v.path)-1)
		}
	}
	walk := "blocked"
	if v.tm.IsWalkable(v.cursorX, v.cursorY) {
		walk = "walkable"
	}
	return fmt.Sprintf("%s (%d,%d) %s  range:%d  %s  [arrows a b r c q]",
		v.name, v.cursorX, v.cursorY, walk, len(v.reachable), pathInfo)
}

func (v *view) draw(scr tcell.Screen) {
	scr.Clear()

	onPath := make(map[component.PathNode]bool, len(v.path))
	for _, n := range v.path {
		onPath[n] = true
	}

	for y := 0; y < v.tm.GridHeight(); y++ {
		for x := 0; x < v.tm.GridWidth(); x++ {
			r, st := v.cell(x, y, onPath)
			if x == v.cursorX && y == v.cursorY {
				st = styleCursor
			}
			scr.SetContent(x, y, r, nil, st)
		}
	}

	sw, _ := scr.Size()
	putText(scr, 0, v.tm.GridHeight()+1, runewidth.Truncate(v.status(), sw, "…"), styleStatus)
	scr.Show()
}

func (v *view) cell(x, y int, onPath map[component.PathNode]bool) (rune, tcell.Style) {
	n := component.PathNode{X: x, Y: y}
	switch {
	case v.start != nil && *v.start == n:
		return glyphStart, styleMarker
	case v.end != nil && *v.end == n:
		return glyphEnd, styleMarker
	case onPath[n]:
		return glyphPath, stylePath
	case !v.tm.IsWalkable(x, y):
		return glyphBlocked, styleBlocked
	case v.reachable[n]:
		return glyphRange, styleRange
	}
	if t := v.tm.TileAt(x, y); t != nil && t.ObjectTexture() != "" {
		return glyphObject, styleObject
	}
	return glyphFloor, styleFloor
}

// putText writes s starting at (x, y), advancing by each rune's display
// width, and stops at the right edge.
func putText(scr tcell.Screen, x, y int, s string, st tcell.Style) {
	sw, _ := scr.Size()
	for _, r := range s {
		w := runewidth.RuneWidth(r)
		if x+w > sw {
			break
		}
		scr.SetContent(x, y, r, nil, st)
		x += max(w, 1)
	}
}
