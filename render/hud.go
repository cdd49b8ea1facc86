package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	ebtext "github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"
)

var hudFace ebtext.Face = ebtext.NewGoXFace(basicfont.Face7x13)

// hudLineHeight matches basicfont.Face7x13.
const hudLineHeight = 14

// DrawHUD prints lines of text on a translucent panel at (x, y).
func DrawHUD(screen *ebiten.Image, x, y float64, lines []string) {
	if screen == nil || len(lines) == 0 {
		return
	}
	width := 0
	for _, l := range lines {
		width = max(width, len(l))
	}
	vector.FillRect(screen, float32(x)-4, float32(y)-4, float32(width*7+8), float32(len(lines)*hudLineHeight+8), color.RGBA{A: 150}, false)

	for i, l := range lines {
		op := &ebtext.DrawOptions{}
		op.GeoM.Translate(x, y+float64(i*hudLineHeight))
		op.ColorScale.ScaleWithColor(HUDColor)
		ebtext.Draw(screen, l, hudFace, op)
	}
}
