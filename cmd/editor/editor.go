package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/editor"
	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
	"github.com/milk9111/tilearena/render"
)

const (
	sidebarWidth = 240
	swatchSize   = 18
)

var paletteKeys = []ebiten.Key{
	ebiten.Key1, ebiten.Key2, ebiten.Key3, ebiten.Key4, ebiten.Key5,
	ebiten.Key6, ebiten.Key7, ebiten.Key8, ebiten.Key9,
}

// EditorGame is the ebiten shell around editor.Editor.
type EditorGame struct {
	ed      *editor.Editor
	palette *prefabs.PaletteSpec
	watcher *prefabs.Watcher

	showGrid      bool
	showCollision bool
	status        string
	mapIndex      int
}

func NewEditorGame(mapName, mapsDir string, watch, debug bool) (*EditorGame, error) {
	palette, err := prefabs.LoadPaletteSpec()
	if err != nil {
		return nil, fmt.Errorf("editor: %w", err)
	}

	tm := obj.NewTileMap(common.TileSize, common.WindowWidth, common.WindowHeight)
	tm.Initialize()
	tm.GenerateDefault()

	g := &EditorGame{
		ed:            editor.New(tm, levels.NewLibrary(mapsDir), palette),
		palette:       palette,
		showGrid:      true,
		showCollision: debug,
	}
	if err := g.ed.Load(mapName); err != nil {
		log.Printf("editor: %v; starting from a blank map", err)
		g.status = fmt.Sprintf("new map %s", mapName)
		if err := g.ed.SaveAs(mapName); err != nil {
			log.Printf("editor: %v", err)
		}
	}

	if watch {
		dirs := []string{}
		for _, d := range []string{"prefabs", mapsDir} {
			if info, err := os.Stat(d); err == nil && info.IsDir() {
				dirs = append(dirs, d)
			}
		}
		w, err := prefabs.NewWatcher(dirs...)
		if err != nil {
			log.Printf("editor: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g, nil
}

func (g *EditorGame) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *EditorGame) Update() error {
	g.pollWatcher()

	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	switch {
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyS):
		if err := g.ed.Save(); err != nil {
			g.status = err.Error()
		} else {
			g.status = "saved " + g.ed.MapName()
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyZ):
		if g.ed.Undo() {
			g.status = "undo"
		}
	case ctrl && inpututil.IsKeyJustPressed(ebiten.KeyO):
		g.openNextMap()
	case inpututil.IsKeyJustPressed(ebiten.KeyP):
		g.ed.SetTool(editor.ToolPencil)
	case inpututil.IsKeyJustPressed(ebiten.KeyE):
		g.ed.SetTool(editor.ToolEraser)
	case inpututil.IsKeyJustPressed(ebiten.KeyF):
		g.ed.SetTool(editor.ToolFill)
	case inpututil.IsKeyJustPressed(ebiten.KeyI):
		g.ed.SetTool(editor.ToolInspector)
	case inpututil.IsKeyJustPressed(ebiten.KeyG):
		g.showGrid = !g.showGrid
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.showCollision = !g.showCollision
	case inpututil.IsKeyJustPressed(ebiten.KeyTab):
		g.ed.SetLayer(editor.Layer((int(g.ed.Layer()) + 1) % len(editor.Layers())))
	case inpututil.IsKeyJustPressed(ebiten.KeyW):
		g.toggleSelectedWalkable()
	}
	for i, k := range paletteKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.ed.SelectPalette(i)
		}
	}

	mx, my := ebiten.CursorPosition()
	if mx >= common.WindowWidth {
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.clickSidebar(mx-common.WindowWidth, my)
		}
		return nil
	}

	gx, gy := g.ed.TileMap.PixelToGrid(float64(mx), float64(my))
	switch g.ed.Tool() {
	case editor.ToolPencil, editor.ToolEraser:
		// drag painting
		if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
			g.ed.Apply(gx, gy)
		}
	default:
		if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
			g.ed.Apply(gx, gy)
		}
	}
	return nil
}

func (g *EditorGame) toggleSelectedWalkable() {
	t := g.ed.SelectedTile()
	if t == nil {
		return
	}
	g.ed.SetSelectedProperty(common.PropWalkable, component.BoolProperty(!t.Walkable()))
}

func (g *EditorGame) openNextMap() {
	names := g.ed.MapNames()
	if len(names) == 0 {
		return
	}
	if g.ed.Dirty() {
		g.status = "unsaved changes; ctrl+s first"
		return
	}
	g.mapIndex = (g.mapIndex + 1) % len(names)
	if err := g.ed.Load(names[g.mapIndex]); err != nil {
		g.status = err.Error()
		return
	}
	g.status = "opened " + names[g.mapIndex]
}

func (g *EditorGame) clickSidebar(x, y int) {
	top := paletteTop()
	if y < top || x > sidebarWidth {
		return
	}
	i := (y - top) / (swatchSize + 4)
	g.ed.SelectPalette(i)
}

func paletteTop() int { return 110 }

func (g *EditorGame) pollWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.reload(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			log.Printf("editor: watch: %v", err)
		default:
			return
		}
	}
}

func (g *EditorGame) reload(path string) {
	base := filepath.Base(path)
	switch {
	case base == "palette.yaml":
		spec, err := prefabs.LoadPaletteSpec()
		if err != nil {
			log.Printf("editor: reload palette: %v", err)
			return
		}
		g.palette = spec
		g.ed.SetPalette(spec)
		g.status = "palette reloaded"
	case prefabs.IsMapFile(path):
		name := strings.TrimSuffix(base, filepath.Ext(base))
		// our own saves also land here; only reload clean maps
		if name != g.ed.MapName() || g.ed.Dirty() {
			return
		}
		if err := g.ed.Load(name); err != nil {
			log.Printf("editor: reload %s: %v", name, err)
		}
	}
}

func (g *EditorGame) Draw(screen *ebiten.Image) {
	tm := g.ed.TileMap
	render.DrawTileMap(screen, tm, g.palette, render.MapOptions{Grid: g.showGrid, Collision: g.showCollision || g.ed.Layer() == editor.LayerCollision})

	if x, y, ok := g.ed.Selection(); ok {
		px, py := tm.GridToPixel(x, y)
		ts := float32(tm.TileSize())
		vector.StrokeRect(screen, float32(px), float32(py), ts, ts, 2, render.SelectedColor, false)
	}

	g.drawSidebar(screen)
}

func (g *EditorGame) drawSidebar(screen *ebiten.Image) {
	left := float32(common.WindowWidth)
	vector.FillRect(screen, left, 0, sidebarWidth, common.WindowHeight, render.EmptyTileColor, false)

	dirty := ""
	if g.ed.Dirty() {
		dirty = "*"
	}
	render.DrawHUD(screen, float64(left)+8, 8, []string{
		fmt.Sprintf("map: %s%s", g.ed.MapName(), dirty),
		fmt.Sprintf("tool: %s", g.ed.Tool()),
		fmt.Sprintf("layer: %s", g.ed.Layer()),
		"P/E/F/I tool  TAB layer",
		"ctrl+s save  ctrl+z undo",
		"ctrl+o next map",
	})

	top := float32(paletteTop())
	for i, entry := range g.ed.Palette {
		y := top + float32(i*(swatchSize+4))
		vector.FillRect(screen, left+8, y, swatchSize, swatchSize, render.TileColor(g.palette, entry.ID), false)
		if i == g.ed.PaletteIndex() {
			vector.StrokeRect(screen, left+7, y-1, swatchSize+2, swatchSize+2, 2, render.SelectedColor, false)
		}
		walk := ""
		if !entry.Walkable {
			walk = " (blocked)"
		}
		render.DrawHUD(screen, float64(left)+34, float64(y)+3, []string{fmt.Sprintf("%d %s%s", i+1, entry.Name, walk)})
	}

	lines := g.inspectorLines()
	if g.status != "" {
		lines = append(lines, g.status)
	}
	render.DrawHUD(screen, float64(left)+8, common.WindowHeight-float64(len(lines)*16)-8, lines)
}

func (g *EditorGame) inspectorLines() []string {
	t := g.ed.SelectedTile()
	if t == nil {
		return nil
	}
	lines := []string{fmt.Sprintf("tile (%d,%d)  W toggles walkable", t.GridX(), t.GridY())}
	props := t.Properties()
	for _, k := range props.Keys() {
		v, _ := props.Get(k)
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", k, v, v.Kind()))
	}
	return lines
}

func (g *EditorGame) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.WindowWidth + sidebarWidth, common.WindowHeight
}
