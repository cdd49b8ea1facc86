package editor

import (
	"fmt"
	"log"
	"strconv"

	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

// MaxUndo bounds the undo stack; the oldest edit is dropped first.
const MaxUndo = 64

type cellSnapshot struct {
	x, y  int
	props component.Properties
}

// edit is the state of every cell one operation touched, before it ran.
type edit []cellSnapshot

// Editor is the map editing core. It knows nothing about input devices or
// drawing; front ends translate clicks and keys into calls on it.
type Editor struct {
	TileMap *obj.TileMap
	Library *levels.Library
	Palette []prefabs.TileTextureSpec

	tool         Tool
	layer        Layer
	paletteIndex int
	mapName      string
	dirty        bool
	undoStack    []edit
	selectedX    int
	selectedY    int
	hasSelection bool
}

// New creates an editor over tm. A nil palette leaves the pencil with
// nothing to paint until SetPalette is called.
func New(tm *obj.TileMap, lib *levels.Library, palette *prefabs.PaletteSpec) *Editor {
	if lib == nil {
		lib = levels.NewLibrary("")
	}
	e := &Editor{TileMap: tm, Library: lib, mapName: levels.DefaultNames[0]}
	e.SetPalette(palette)
	return e
}

// SetPalette replaces the palette, keeping the selected id when it still
// exists.
func (e *Editor) SetPalette(palette *prefabs.PaletteSpec) {
	if e == nil {
		return
	}
	prev := e.PaletteEntry().ID
	e.Palette = nil
	if palette != nil {
		e.Palette = append(e.Palette, palette.Tiles...)
	}
	e.paletteIndex = 0
	if prev != "" {
		e.SelectPaletteID(prev)
	}
}

func (e *Editor) Tool() Tool { return e.tool }

func (e *Editor) SetTool(t Tool) {
	if t < ToolPencil || t > ToolFill {
		return
	}
	e.tool = t
}

func (e *Editor) Layer() Layer { return e.layer }

func (e *Editor) SetLayer(l Layer) {
	if l < LayerGround || l > LayerCollision {
		return
	}
	e.layer = l
}

// SelectPalette selects palette entry i. Out of range indexes are ignored.
func (e *Editor) SelectPalette(i int) {
	if e == nil || i < 0 || i >= len(e.Palette) {
		return
	}
	e.paletteIndex = i
}

// SelectPaletteID selects the palette entry with the given texture id.
func (e *Editor) SelectPaletteID(id string) bool {
	if e == nil {
		return false
	}
	for i, p := range e.Palette {
		if p.ID == id {
			e.paletteIndex = i
			return true
		}
	}
	return false
}

func (e *Editor) PaletteIndex() int { return e.paletteIndex }

// PaletteEntry returns the selected palette entry, or the zero entry when the
// palette is empty.
func (e *Editor) PaletteEntry() prefabs.TileTextureSpec {
	if e == nil || e.paletteIndex < 0 || e.paletteIndex >= len(e.Palette) {
		return prefabs.TileTextureSpec{}
	}
	return e.Palette[e.paletteIndex]
}

func (e *Editor) MapName() string { return e.mapName }

// Dirty reports unsaved edits.
func (e *Editor) Dirty() bool { return e.dirty }

// Apply runs the current tool on (gx, gy). Returns true when the map or the
// selection changed.
func (e *Editor) Apply(gx, gy int) bool {
	if e == nil || !e.TileMap.IsValidGridPosition(gx, gy) {
		return false
	}
	switch e.tool {
	case ToolPencil:
		return e.Paint(gx, gy)
	case ToolEraser:
		return e.Erase(gx, gy)
	case ToolFill:
		return e.Fill(gx, gy)
	case ToolInspector:
		return e.Inspect(gx, gy)
	}
	return false
}

// Paint writes the selected palette entry into the current layer. On the
// collision layer the entry's walkable flag is written instead of its id.
func (e *Editor) Paint(gx, gy int) bool {
	t := e.TileMap.TileAt(gx, gy)
	if t == nil {
		return false
	}
	entry := e.PaletteEntry()
	if entry.ID == "" && e.layer != LayerCollision {
		return false
	}
	if e.layerValue(t) == e.paintValue(entry) {
		return false
	}
	e.pushEdit(edit{snapshotOf(t)})
	e.writeLayer(t, entry)
	e.dirty = true
	return true
}

// Erase clears the current layer. Erasing collision makes the tile walkable.
func (e *Editor) Erase(gx, gy int) bool {
	t := e.TileMap.TileAt(gx, gy)
	if t == nil {
		return false
	}
	if e.layerValue(t) == e.eraseValue() {
		return false
	}
	e.pushEdit(edit{snapshotOf(t)})
	switch e.layer {
	case LayerGround:
		t.SetTextureID("")
	case LayerObjects:
		t.SetObjectTexture("")
	case LayerCollision:
		t.SetWalkable(true)
	}
	e.dirty = true
	return true
}

// Fill paints every 4-connected cell whose current layer value matches the
// start cell's, as one undoable edit.
func (e *Editor) Fill(gx, gy int) bool {
	start := e.TileMap.TileAt(gx, gy)
	if start == nil {
		return false
	}
	entry := e.PaletteEntry()
	if entry.ID == "" && e.layer != LayerCollision {
		return false
	}
	target := e.layerValue(start)
	if target == e.paintValue(entry) {
		return false
	}

	var changed edit
	seen := map[component.PathNode]bool{{X: gx, Y: gy}: true}
	queue := []component.PathNode{{X: gx, Y: gy}}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		t := e.TileMap.TileAt(cur.X, cur.Y)
		changed = append(changed, snapshotOf(t))
		for _, d := range [4][2]int{{0, -1}, {1, 0}, {0, 1}, {-1, 0}} {
			n := component.PathNode{X: cur.X + d[0], Y: cur.Y + d[1]}
			if seen[n] {
				continue
			}
			nt := e.TileMap.TileAt(n.X, n.Y)
			if nt == nil || e.layerValue(nt) != target {
				continue
			}
			seen[n] = true
			queue = append(queue, n)
		}
	}

	e.pushEdit(changed)
	for _, c := range changed {
		e.writeLayer(e.TileMap.TileAt(c.x, c.y), entry)
	}
	e.dirty = true
	return true
}

// Inspect selects a tile for property editing.
func (e *Editor) Inspect(gx, gy int) bool {
	if !e.TileMap.IsValidGridPosition(gx, gy) {
		return false
	}
	e.selectedX, e.selectedY, e.hasSelection = gx, gy, true
	return true
}

// Selection returns the inspected cell, if any.
func (e *Editor) Selection() (int, int, bool) {
	return e.selectedX, e.selectedY, e.hasSelection
}

func (e *Editor) ClearSelection() {
	e.hasSelection = false
}

// SelectedTile returns the inspected tile, or nil.
func (e *Editor) SelectedTile() *obj.Tile {
	if e == nil || !e.hasSelection {
		return nil
	}
	return e.TileMap.TileAt(e.selectedX, e.selectedY)
}

// SetSelectedProperty writes any property on the inspected tile.
func (e *Editor) SetSelectedProperty(key string, p component.Property) bool {
	t := e.SelectedTile()
	if t == nil || key == "" || !p.IsValid() {
		return false
	}
	if cur, ok := t.Properties().Get(key); ok && cur == p {
		return false
	}
	e.pushEdit(edit{snapshotOf(t)})
	t.Properties().Set(key, p)
	e.dirty = true
	return true
}

// DeleteSelectedProperty removes an extension property from the inspected
// tile. Well-known keys are left alone.
func (e *Editor) DeleteSelectedProperty(key string) bool {
	t := e.SelectedTile()
	if t == nil || !t.Properties().Has(key) {
		return false
	}
	if _, ok := t.ExtensionProperties()[key]; !ok {
		return false
	}
	e.pushEdit(edit{snapshotOf(t)})
	t.Properties().Delete(key)
	e.dirty = true
	return true
}

// CanUndo reports whether an edit can be reverted.
func (e *Editor) CanUndo() bool {
	return e != nil && len(e.undoStack) > 0
}

// Undo reverts the last edit.
func (e *Editor) Undo() bool {
	if !e.CanUndo() {
		return false
	}
	n := len(e.undoStack)
	last := e.undoStack[n-1]
	e.undoStack = e.undoStack[:n-1]
	for _, c := range last {
		if t := e.TileMap.TileAt(c.x, c.y); t != nil {
			t.Restore(c.props)
		}
	}
	e.dirty = true
	return true
}

// Save writes the map under its current name.
func (e *Editor) Save() error {
	return e.SaveAs(e.mapName)
}

// SaveAs writes the map under name and makes it the current map.
func (e *Editor) SaveAs(name string) error {
	if e == nil {
		return fmt.Errorf("editor: nil editor")
	}
	if err := e.Library.Save(name, e.TileMap.ToMapFile()); err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	e.mapName = name
	e.dirty = false
	log.Printf("editor: saved %s", e.Library.Path(name))
	return nil
}

// Load replaces the map with a named one and clears the undo history. On
// error the current map is kept.
func (e *Editor) Load(name string) error {
	if e == nil {
		return fmt.Errorf("editor: nil editor")
	}
	mf, err := e.Library.Load(name)
	if err != nil {
		return fmt.Errorf("editor: %w", err)
	}
	if err := e.TileMap.ApplyMapFile(mf); err != nil {
		return fmt.Errorf("editor: load %s: %w", name, err)
	}
	e.mapName = name
	e.dirty = false
	e.undoStack = nil
	e.hasSelection = false
	log.Printf("editor: loaded %s", name)
	return nil
}

// MapNames lists the maps the library can load.
func (e *Editor) MapNames() []string {
	if e == nil {
		return nil
	}
	return e.Library.Names()
}

func (e *Editor) pushEdit(ed edit) {
	if len(ed) == 0 {
		return
	}
	e.undoStack = append(e.undoStack, ed)
	if len(e.undoStack) > MaxUndo {
		e.undoStack = e.undoStack[1:]
	}
}

func snapshotOf(t *obj.Tile) cellSnapshot {
	return cellSnapshot{x: t.GridX(), y: t.GridY(), props: t.Snapshot()}
}

// layerValue is the comparable value of the current layer on t. Collision
// reads the map's view, where an unset flag is blocked.
func (e *Editor) layerValue(t *obj.Tile) string {
	switch e.layer {
	case LayerObjects:
		return t.ObjectTexture()
	case LayerCollision:
		return strconv.FormatBool(e.TileMap.IsWalkable(t.GridX(), t.GridY()))
	default:
		return t.TextureID()
	}
}

func (e *Editor) paintValue(entry prefabs.TileTextureSpec) string {
	if e.layer == LayerCollision {
		return strconv.FormatBool(entry.Walkable)
	}
	return entry.ID
}

func (e *Editor) eraseValue() string {
	if e.layer == LayerCollision {
		return "true"
	}
	return ""
}

func (e *Editor) writeLayer(t *obj.Tile, entry prefabs.TileTextureSpec) {
	switch e.layer {
	case LayerGround:
		t.SetTextureID(entry.ID)
	case LayerObjects:
		t.SetObjectTexture(entry.ID)
	case LayerCollision:
		t.SetWalkable(entry.Walkable)
	}
}
