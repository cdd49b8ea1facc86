// Command mapview prints a tile map in the terminal and overlays A* paths and
// the player's movement range.
package main

import (
	"flag"
	"log"

	"github.com/gdamore/tcell/v2"
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/obj"
	"github.com/milk9111/tilearena/prefabs"
)

func main() {
	mapName := flag.String("map", "arena", "map to view (basename, .json optional)")
	mapsDir := flag.String("maps", "maps", "directory holding map files")
	moveRange := flag.Int("range", 0, "movement range for the flood fill (0 uses player.yaml)")
	flag.Parse()

	tm := obj.NewTileMap(common.TileSize, common.WindowWidth, common.WindowHeight)
	tm.Initialize()
	mf, err := levels.NewLibrary(*mapsDir).Load(*mapName)
	if err == nil {
		err = tm.ApplyMapFile(mf)
	}
	if err != nil {
		log.Printf("mapview: %v; showing the generated default map", err)
		tm.GenerateDefault()
	}

	spec, err := prefabs.LoadPlayerSpec()
	if err != nil {
		log.Printf("mapview: %v", err)
		spec = prefabs.DefaultPlayerSpec()
	}
	if *moveRange > 0 {
		spec.MovementRange = *moveRange
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		log.Fatalf("mapview: %v", err)
	}
	if err := screen.Init(); err != nil {
		log.Fatalf("mapview: %v", err)
	}
	defer screen.Fini()

	run(screen, newView(tm, *mapName, spec))
}

func run(screen tcell.Screen, v *view) {
	v.draw(screen)
	for {
		switch ev := screen.PollEvent().(type) {
		case nil:
			return
		case *tcell.EventResize:
			screen.Sync()
		case *tcell.EventKey:
			if !v.handleKey(ev) {
				return
			}
		}
		v.draw(screen)
	}
}
