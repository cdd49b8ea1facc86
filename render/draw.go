package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

// MapOptions toggles the debug overlays of DrawTileMap.
type MapOptions struct {
	Grid        bool
	Collision   bool
	ObjectInset float32
}

// DrawTileMap paints the ground layer, the object layer as an inset square
// and, when asked, the grid and blocked cells.
func DrawTileMap(screen *ebiten.Image, tm *obj.TileMap, palette *prefabs.PaletteSpec, opts MapOptions) {
	if screen == nil || tm == nil {
		return
	}
	ts := float32(tm.TileSize())
	inset := opts.ObjectInset
	if inset <= 0 {
		inset = ts / 6
	}

	tm.ForEach(func(t *obj.Tile) {
		x, y := tm.GridToPixel(t.GridX(), t.GridY())
		fx, fy := float32(x), float32(y)
		vector.FillRect(screen, fx, fy, ts, ts, TileColor(palette, t.TextureID()), false)
		if id := t.ObjectTexture(); id != "" {
			vector.FillRect(screen, fx+inset, fy+inset, ts-2*inset, ts-2*inset, TileColor(palette, id), false)
		}
		if opts.Collision && !tm.IsWalkable(t.GridX(), t.GridY()) {
			vector.FillRect(screen, fx, fy, ts, ts, BlockedTint, false)
		}
		if opts.Grid {
			vector.StrokeRect(screen, fx, fy, ts, ts, 1, GridLineColor, false)
		}
	})
}

// DrawCells tints a set of cells, e.g. reachable tiles or attack targets.
func DrawCells(screen *ebiten.Image, tm *obj.TileMap, cells []component.PathNode, clr color.Color) {
	if screen == nil || tm == nil {
		return
	}
	ts := float32(tm.TileSize())
	for _, c := range cells {
		x, y := tm.GridToPixel(c.X, c.Y)
		vector.FillRect(screen, float32(x), float32(y), ts, ts, clr, false)
	}
}

// DrawPath strokes a line through the centers of path cells.
func DrawPath(screen *ebiten.Image, tm *obj.TileMap, path []component.PathNode, clr color.Color) {
	if screen == nil || tm == nil || len(path) < 2 {
		return
	}
	for i := 1; i < len(path); i++ {
		ax, ay := tm.GridToPixelCenter(path[i-1].X, path[i-1].Y)
		bx, by := tm.GridToPixelCenter(path[i].X, path[i].Y)
		vector.StrokeLine(screen, float32(ax), float32(ay), float32(bx), float32(by), 2, clr, true)
	}
}

// DrawActor draws an actor as a filled square centered on its position with
// a health bar above it.
func DrawActor(screen *ebiten.Image, a component.Actor, size float32, body, outline color.Color) {
	if screen == nil || a == nil {
		return
	}
	x, y := a.Position()
	half := size / 2
	left, top := float32(x)-half, float32(y)-half
	vector.FillRect(screen, left+2, top+2, size-4, size-4, body, false)
	if outline != nil {
		vector.StrokeRect(screen, left+1, top+1, size-2, size-2, 2, outline, false)
	}
	DrawHealthBar(screen, a.HealthPool(), left+2, top-5, size-4, 3)
}

// DrawHealthBar draws any health component as a background and a colored
// fill proportional to remaining health.
func DrawHealthBar(screen *ebiten.Image, h component.HealthComponent, x, y, w, hgt float32) {
	if screen == nil || h == nil || h.MaxHP() <= 0 {
		return
	}
	frac := float32(max(h.CurrentHP(), 0)) / float32(h.MaxHP())
	frac = min(frac, 1)
	vector.FillRect(screen, x, y, w, hgt, color.RGBA{A: 160}, false)
	if frac > 0 {
		vector.FillRect(screen, x, y, w*frac, hgt, HealthColor(frac), false)
	}
}
