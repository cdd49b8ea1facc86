package obj

import (
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
)

// Tile is one grid cell. Its coordinates are fixed at creation; everything
// else lives in the property bag.
type Tile struct {
	x     int
	y     int
	props component.Properties
}

// NewTile creates a tile at (x, y) with an empty property bag.
func NewTile(x, y int) Tile {
	return Tile{x: x, y: y, props: component.Properties{}}
}

func (t *Tile) GridX() int { return t.x }
func (t *Tile) GridY() int { return t.y }

// Properties exposes the tile's property bag for direct reads and writes.
func (t *Tile) Properties() component.Properties {
	if t.props == nil {
		t.props = component.Properties{}
	}
	return t.props
}

// Walkable reads the walkable flag, defaulting to true when unset.
func (t *Tile) Walkable() bool {
	return t.props.GetBool(common.PropWalkable, true)
}

func (t *Tile) SetWalkable(v bool) {
	t.Properties().Set(common.PropWalkable, component.BoolProperty(v))
}

// TextureID is the ground layer texture; empty means the renderer's fallback.
func (t *Tile) TextureID() string {
	return t.props.GetString(common.PropTextureID, "")
}

func (t *Tile) SetTextureID(id string) {
	t.Properties().Set(common.PropTextureID, component.StringProperty(id))
}

// ObjectTexture is the overlay layer texture.
func (t *Tile) ObjectTexture() string {
	return t.props.GetString(common.PropObjectTexture, "")
}

func (t *Tile) SetObjectTexture(id string) {
	t.Properties().Set(common.PropObjectTexture, component.StringProperty(id))
}

// Reset restores the defaults a freshly loaded map starts from: walkable,
// no textures and no extension properties.
func (t *Tile) Reset() {
	t.props = component.Properties{}
	t.SetWalkable(true)
	t.SetTextureID("")
	t.SetObjectTexture("")
}

// ExtensionProperties returns every property that is not one of the
// well-known keys, or nil if there are none.
func (t *Tile) ExtensionProperties() component.Properties {
	var out component.Properties
	for k, v := range t.props {
		switch k {
		case common.PropWalkable, common.PropTextureID, common.PropObjectTexture:
			continue
		}
		if out == nil {
			out = component.Properties{}
		}
		out[k] = v
	}
	return out
}

// Snapshot copies the tile's properties, for undo.
func (t *Tile) Snapshot() component.Properties {
	return t.props.Clone()
}

// Restore replaces the tile's properties with a snapshot.
func (t *Tile) Restore(props component.Properties) {
	t.props = props.Clone()
}
