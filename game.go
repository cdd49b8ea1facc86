package main

import (
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/tilearena/common"
	"github.com/milk9111/tilearena/component"
	"github.com/milk9111/tilearena/levels"
	"github.com/milk9111/tilearena/prefabs"
	"github.com/milk9111/tilearena/render"
	"github.com/milk9111/tilearena/system"
)

const maxFeedLines = 4

type Options struct {
	MapName string
	MapsDir string
	Rand    *rand.Rand
	Debug   bool
	Watch   bool
}

type Game struct {
	world   *system.World
	palette *prefabs.PaletteSpec
	watcher *prefabs.Watcher
	debug   bool
	frames  int
	feed    []string
}

func NewGame(opts Options) *Game {
	wc := system.WorldConfig{
		Library: levels.NewLibrary(opts.MapsDir),
		Rand:    opts.Rand,
	}
	if spec, err := prefabs.LoadPlayerSpec(); err == nil {
		wc.Player = spec
	} else {
		log.Printf("game: %v", err)
	}
	if spec, err := prefabs.LoadEnemySpec(); err == nil {
		wc.Enemy = spec
	} else {
		log.Printf("game: %v", err)
	}
	if spec, err := prefabs.LoadCombatSpec(); err == nil {
		wc.Combat = spec
	} else {
		log.Printf("game: %v", err)
	}

	g := &Game{
		world: system.NewWorld(opts.MapName, wc),
		debug: opts.Debug,
	}
	g.palette, _ = prefabs.LoadPaletteSpec()
	g.world.Combat.Emitter.Subscribe(g.onCombatEvent)

	if opts.Watch {
		w, err := prefabs.NewWatcher(existingDirs("prefabs", "prefabs/scripts", opts.MapsDir)...)
		if err != nil {
			log.Printf("game: watch disabled: %v", err)
		} else {
			g.watcher = w
		}
	}
	return g
}

func existingDirs(dirs ...string) []string {
	var out []string
	for _, d := range dirs {
		if info, err := os.Stat(d); err == nil && info.IsDir() {
			out = append(out, d)
		}
	}
	return out
}

// Close stops the file watcher.
func (g *Game) Close() {
	if g.watcher != nil {
		_ = g.watcher.Close()
	}
}

func (g *Game) onCombatEvent(evt component.CombatEvent) {
	var msg string
	switch evt.Type {
	case component.EventWaveStart:
		msg = fmt.Sprintf("wave %d begins", evt.Wave)
	case component.EventHit:
		if evt.Attacker == component.FactionPlayer {
			msg = fmt.Sprintf("you hit enemy %d for %d", evt.Enemy, evt.Damage)
		} else {
			msg = fmt.Sprintf("enemy %d hits you for %d", evt.Enemy, evt.Damage)
		}
	case component.EventDeath:
		msg = fmt.Sprintf("enemy %d defeated", evt.Enemy)
	case component.EventCombatEnd:
		msg = fmt.Sprintf("combat over: %s", g.world.Combat.Outcome())
	default:
		return
	}
	if g.debug {
		log.Printf("game: %s", msg)
	}
	g.feed = append(g.feed, msg)
	if len(g.feed) > maxFeedLines {
		g.feed = g.feed[len(g.feed)-maxFeedLines:]
	}
}

func (g *Game) Update() error {
	g.frames++
	g.pollWatcher()

	switch {
	case inpututil.IsKeyJustPressed(ebiten.KeyA):
		g.world.SwitchToArena()
	case inpututil.IsKeyJustPressed(ebiten.KeyC):
		g.world.SwitchToCity()
	case inpututil.IsKeyJustPressed(ebiten.KeyEscape):
		g.world.Player.Selected = false
	}

	cx, cy := ebiten.CursorPosition()
	gx, gy := g.world.TileMap.PixelToGrid(float64(cx), float64(cy))
	for i, e := range g.world.Combat.Enemies() {
		e.Targeted = g.world.Combat.GetEnemyAt(gx, gy) == i && g.world.Combat.CanAttack(gx, gy)
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		g.world.ClickTile(gx, gy)
	}

	g.world.Update()
	return nil
}

// pollWatcher drains pending file events without blocking the frame.
func (g *Game) pollWatcher() {
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
			log.Printf("game: watch: %v", err)
		default:
			return
		}
	}
}

func (g *Game) reload(path string) {
	base := filepath.Base(path)
	switch {
	case prefabs.IsMapFile(path):
		name := strings.TrimSuffix(base, filepath.Ext(base))
		if name != g.world.MapName() || g.world.Combat.IsInCombat() {
			return
		}
		if err := g.world.LoadMap(name); err != nil {
			log.Printf("game: reload %s: %v", name, err)
			return
		}
		log.Printf("game: reloaded map %s", name)
	case strings.EqualFold(filepath.Ext(base), ".tengo"):
		if err := g.world.ReloadBrain(); err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		log.Printf("game: reloaded enemy script")
	case base == "combat.yaml":
		spec, err := prefabs.LoadCombatSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		if err := g.world.SetCombatSpec(spec); err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		log.Printf("game: reloaded combat spec")
	case base == "enemy.yaml":
		spec, err := prefabs.LoadEnemySpec()
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		g.world.Combat.SetEnemySpec(spec)
		log.Printf("game: reloaded enemy spec")
	case base == "player.yaml":
		spec, err := prefabs.LoadPlayerSpec()
		if err != nil {
			log.Printf("game: reload %s: %v", base, err)
			return
		}
		g.world.SetPlayerSpec(spec)
		log.Printf("game: reloaded player spec")
	case base == "palette.yaml":
		if spec, err := prefabs.LoadPaletteSpec(); err == nil {
			g.palette = spec
			log.Printf("game: reloaded palette")
		}
	}
}

func (g *Game) Draw(screen *ebiten.Image) {
	w := g.world
	render.DrawTileMap(screen, w.TileMap, g.palette, render.MapOptions{Grid: g.debug, Collision: g.debug})

	if w.Player.Selected {
		render.DrawCells(screen, w.TileMap, w.Player.AvailableTiles(), render.ReachableTint)
		if w.Combat.IsInCombat() {
			render.DrawCells(screen, w.TileMap, w.Player.AttackTargets(), render.AttackTint)
		}
	}
	if path := w.Player.Path(); len(path) > 0 {
		render.DrawPath(screen, w.TileMap, path[w.Player.PathIndex():], render.PathColor)
	}

	ts := float32(w.TileMap.TileSize())
	for _, e := range w.Combat.Enemies() {
		outline := render.EnemyColor
		if e.Targeted {
			outline = render.TargetedColor
		}
		render.DrawActor(screen, e, ts, render.EnemyColor, outline)
	}
	outline := render.PlayerColor
	if w.Player.Selected {
		outline = render.SelectedColor
	}
	render.DrawActor(screen, w.Player, ts, render.PlayerColor, outline)

	lines := []string{
		fmt.Sprintf("%s  map:%s  hp:%d/%d", w.State(), w.MapName(), w.Player.Health(), w.Player.MaxHealth()),
	}
	if w.Combat.IsInCombat() {
		turn := "enemy"
		if w.Combat.IsPlayerTurn() {
			turn = "player"
		}
		lines = append(lines, fmt.Sprintf("wave %d/%d  attacks %d/%d  turn:%s", w.Combat.CurrentWave(), w.Combat.MaxWaves(), w.Player.RemainingAttacks(), w.Player.MaxAttacks(), turn))
	} else {
		lines = append(lines, "A: arena  C: city  click player to select")
	}
	lines = append(lines, g.feed...)
	if g.debug {
		lines = append(lines, fmt.Sprintf("fps %.1f  frame %d", ebiten.ActualFPS(), g.frames))
	}
	render.DrawHUD(screen, 8, 8, lines)
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return common.WindowWidth, common.WindowHeight
}
