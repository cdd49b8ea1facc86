package main

import (
	"flag"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilearena/common"
)

func main() {
	mapName := flag.String("map", "default", "map to open (basename, .json optional)")
	mapsDir := flag.String("maps", "maps", "directory maps are saved to")
	watch := flag.Bool("watch", false, "reload the palette and the open map when they change on disk")
	debug := flag.Bool("debug", false, "show grid and collision overlays from the start")
	flag.Parse()

	ebiten.SetWindowSize(common.WindowWidth+sidebarWidth, common.WindowHeight)
	ebiten.SetWindowTitle("tilearena editor")

	ed, err := NewEditorGame(*mapName, *mapsDir, *watch, *debug)
	if err != nil {
		log.Fatal(err)
	}
	defer ed.Close()

	if err := ebiten.RunGame(ed); err != nil {
		log.Fatal(err)
	}
}
