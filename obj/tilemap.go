package obj

import (
	"log"
	"math"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
)

// Default textures used by GenerateDefault.
const (
	DefaultGroundTexture = "tile_grass"
	DefaultWallTexture   = "tile_wall"
)

// TileMap owns a fixed-size grid of tiles. Grid dimensions are derived from
// the window size once and never change afterwards.
type TileMap struct {
	tileSize     int
	windowWidth  int
	windowHeight int
	gridWidth    int
	gridHeight   int

	// row-major, gridHeight rows of gridWidth tiles
	tiles []Tile
}

// NewTileMap sizes a grid for the given window. Call Initialize before use.
func NewTileMap(tileSize, windowWidth, windowHeight int) *TileMap {
	if tileSize <= 0 {
		tileSize = 1
	}
	return &TileMap{
		tileSize:     tileSize,
		windowWidth:  windowWidth,
		windowHeight: windowHeight,
		gridWidth:    max(windowWidth/tileSize, 0),
		gridHeight:   max(windowHeight/tileSize, 0),
	}
}

// Initialize creates every tile with an empty property bag.
func (tm *TileMap) Initialize() {
	if tm == nil {
		return
	}
	tm.tiles = make([]Tile, tm.gridWidth*tm.gridHeight)
	for y := 0; y < tm.gridHeight; y++ {
		for x := 0; x < tm.gridWidth; x++ {
			tm.tiles[y*tm.gridWidth+x] = NewTile(x, y)
		}
	}
	log.Printf("tilemap: initialized with %dx%d tiles (%dpx each)", tm.gridWidth, tm.gridHeight, tm.tileSize)
}

func (tm *TileMap) GridWidth() int { return tm.gridWidth }
func (tm *TileMap) GridHeight() int { return tm.gridHeight }
func (tm *TileMap) TileSize() int { return tm.tileSize }
func (tm *TileMap) WindowWidth() int { return tm.windowWidth }
func (tm *TileMap) WindowHeight() int { return tm.windowHeight }

// PixelToGrid maps a pixel to the cell containing it. No bounds check.
func (tm *TileMap) PixelToGrid(px, py float64) (int, int) {
	ts := float64(tm.tileSize)
	return int(math.Floor(px / ts)), int(math.Floor(py / ts))
}

// GridToPixel returns the top-left pixel of a cell. No bounds check.
func (tm *TileMap) GridToPixel(gx, gy int) (float64, float64) {
	return float64(gx * tm.tileSize), float64(gy * tm.tileSize)
}

// GridToPixelCenter returns the center pixel of a cell. Actors stand on
// cell centers.
func (tm *TileMap) GridToPixelCenter(gx, gy int) (float64, float64) {
	x, y := tm.GridToPixel(gx, gy)
	half := float64(tm.tileSize) / 2
	return x + half, y + half
}

func (tm *TileMap) IsValidGridPosition(gx, gy int) bool {
	return tm != nil && gx >= 0 && gy >= 0 && gx < tm.gridWidth && gy < tm.gridHeight
}

// TileAt returns the tile at (gx, gy), or nil for invalid coordinates or an
// uninitialized map. The pointer must not be kept beyond the current call.
func (tm *TileMap) TileAt(gx, gy int) *Tile {
	if !tm.IsValidGridPosition(gx, gy) {
		return nil
	}
	idx := gy*tm.gridWidth + gx
	if idx >= len(tm.tiles) {
		return nil
	}
	return &tm.tiles[idx]
}

// IsWalkable reports whether a cell can be entered. Unlike Tile.Walkable, a
// tile whose walkable flag was never set is treated as blocked.
func (tm *TileMap) IsWalkable(gx, gy int) bool {
	t := tm.TileAt(gx, gy)
	if t == nil {
		return false
	}
	return t.props.GetBool(common.PropWalkable, false)
}

// SetTileTexture sets the ground texture. No-op on invalid coordinates.
func (tm *TileMap) SetTileTexture(gx, gy int, id string) {
	if t := tm.TileAt(gx, gy); t != nil {
		t.SetTextureID(id)
	}
}

// SetObjectTexture sets the overlay texture. No-op on invalid coordinates.
func (tm *TileMap) SetObjectTexture(gx, gy int, id string) {
	if t := tm.TileAt(gx, gy); t != nil {
		t.SetObjectTexture(id)
	}
}

// SetWalkable sets the walkable flag. No-op on invalid coordinates.
func (tm *TileMap) SetWalkable(gx, gy int, walkable bool) {
	if t := tm.TileAt(gx, gy); t != nil {
		t.SetWalkable(walkable)
	}
}

// FindPath runs A* between two cells. See component.AStar for ordering rules.
func (tm *TileMap) FindPath(startX, startY, endX, endY int) []component.PathNode {
	if tm == nil {
		return nil
	}
	return component.AStar(startX, startY, endX, endY, tm.gridWidth, tm.gridHeight, tm.IsWalkable)
}

// ResetTiles restores every tile to its defaults.
func (tm *TileMap) ResetTiles() {
	if tm == nil {
		return
	}
	for i := range tm.tiles {
		tm.tiles[i].Reset()
	}
}

// GenerateDefault turns the map into open grass surrounded by walls.
func (tm *TileMap) GenerateDefault() {
	if tm == nil {
		return
	}
	if len(tm.tiles) != tm.gridWidth*tm.gridHeight {
		tm.Initialize()
	}
	for y := 0; y < tm.gridHeight; y++ {
		for x := 0; x < tm.gridWidth; x++ {
			t := &tm.tiles[y*tm.gridWidth+x]
			t.Reset()
			if x == 0 || y == 0 || x == tm.gridWidth-1 || y == tm.gridHeight-1 {
				t.SetWalkable(false)
				t.SetTextureID(DefaultWallTexture)
				continue
			}
			t.SetTextureID(DefaultGroundTexture)
		}
	}
}

// FirstWalkable returns the first walkable cell in row-major order.
func (tm *TileMap) FirstWalkable() (int, int, bool) {
	if tm == nil {
		return 0, 0, false
	}
	for y := 0; y < tm.gridHeight; y++ {
		for x := 0; x < tm.gridWidth; x++ {
			if tm.IsWalkable(x, y) {
				return x, y, true
			}
		}
	}
	return 0, 0, false
}

// ForEach visits every tile in row-major order.
func (tm *TileMap) ForEach(fn func(t *Tile)) {
	if tm == nil || fn == nil {
		return
	}
	for i := range tm.tiles {
		fn(&tm.tiles[i])
	}
}
