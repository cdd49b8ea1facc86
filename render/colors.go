package render

import (
	"image/color"

	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/prefabs"
	"golang.org/x/image/colornames"
)

var (
	EmptyTileColor   color.Color = colornames.Darkslategray
	UnknownTileColor color.Color = colornames.Magenta
	BlockedTint      color.Color = color.RGBA{R: 200, G: 30, B: 30, A: 70}
	GridLineColor    color.Color = color.RGBA{R: 0, G: 0, B: 0, A: 40}
	ReachableTint    color.Color = color.RGBA{R: 80, G: 160, B: 255, A: 80}
	AttackTint       color.Color = color.RGBA{R: 255, G: 90, B: 60, A: 90}
	PathColor        color.Color = colornames.Gold
	PlayerColor      color.Color = colornames.Royalblue
	EnemyColor       color.Color = colornames.Crimson
	TargetedColor    color.Color = colornames.Orange
	SelectedColor    color.Color = colornames.White
	HUDColor         color.Color = colornames.White
)

// TileColor resolves a texture id to a flat color. Empty ids get
// EmptyTileColor and ids missing from the palette get UnknownTileColor.
func TileColor(palette *prefabs.PaletteSpec, id string) color.Color {
	if id == "" {
		return EmptyTileColor
	}
	if c, ok := palette.ColorFor(id); ok {
		return c
	}
	return UnknownTileColor
}

// HealthColor blends from red at zero to green at full health.
func HealthColor(fraction float32) color.Color {
	fraction = max(0, min(1, fraction))
	return color.RGBA{
		R: uint8(common.Lerp(220, 40, fraction)),
		G: uint8(common.Lerp(40, 200, fraction)),
		B: 40,
		A: 255,
	}
}
