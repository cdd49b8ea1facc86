package main

import (
	"flag"
	"log"
	"math/rand"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/milk9111/tilearena/common"
)

func main() {
	mapName := flag.String("map", "", "map to start on (default: the city map from combat.yaml)")
	mapsDir := flag.String("maps", "maps", "directory holding map files")
	seed := flag.Int64("seed", 0, "random seed for enemy spawns (0 uses the clock)")
	debug := flag.Bool("debug", false, "enable debug overlays and combat logging")
	watch := flag.Bool("watch", false, "reload prefabs and maps when they change on disk")
	flag.Parse()

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}

	ebiten.SetWindowSize(common.WindowWidth, common.WindowHeight)
	ebiten.SetWindowTitle("tilearena")

	game := NewGame(Options{
		MapName: *mapName,
		MapsDir: *mapsDir,
		Rand:    rand.New(rand.NewSource(*seed)),
		Debug:   *debug,
		Watch:   *watch,
	})
	defer game.Close()

	if err := ebiten.RunGame(game); err != nil {
		log.Fatal(err)
	}
}
