// Command mapviewer loads a map document and renders it with a movable
// probe cursor. The cursor refuses to enter blocked regions, which makes it
// a quick visual check for collision data. The viewer reloads the map when
// the file changes on disk and remembers the last opened map.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/fsnotify/fsnotify"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/quasilyte/gdata"

	"github.com/automoto/mapscene/config"
	"github.com/automoto/mapscene/geom"
	"github.com/automoto/mapscene/render"
	"github.com/automoto/mapscene/scene"
)

type Game struct {
	mapPath string
	opts    scene.Options

	scene    *scene.Scene
	renderer *render.Renderer
	cursor   geom.Point

	reload chan struct{}
}

func NewGame(mapPath string, opts scene.Options) (*Game, error) {
	g := &Game{
		mapPath: mapPath,
		opts:    opts,
		reload:  make(chan struct{}, 1),
	}
	if err := g.loadScene(); err != nil {
		return nil, err
	}
	g.cursor = g.scene.Spawn()
	return g, nil
}

func (g *Game) loadScene() error {
	s, err := scene.Load(g.mapPath, g.opts)
	if err != nil {
		return err
	}
	old := g.renderer
	g.scene = s
	g.renderer = render.New(s)
	if old != nil {
		old.Dispose()
	}
	return nil
}

func (g *Game) Update() error {
	select {
	case <-g.reload:
		if err := g.loadScene(); err != nil {
			log.Printf("Warning: reload failed, keeping current scene: %v", err)
		} else {
			log.Printf("Reloaded %s", g.mapPath)
		}
	default:
	}

	step := config.Viewer.CursorSpeed
	next := g.cursor
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		next.X -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		next.X += step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		next.Y -= step
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		next.Y += step
	}
	if !g.scene.IsBlocked(next) {
		g.cursor = next
	}
	return nil
}

func (g *Game) Draw(screen *ebiten.Image) {
	camX, camY := g.camera()
	g.renderer.Draw(screen, camX, camY)

	cursorColor := config.Viewer.CursorColor
	if g.scene.IsBlocked(g.cursor) {
		cursorColor = config.Viewer.BlockedColor
	}
	vector.DrawFilledCircle(screen,
		float32(g.cursor.X-camX), float32(g.cursor.Y-camY),
		config.Viewer.CursorSize, cursorColor, true)

	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  cursor=(%.0f, %.0f)  blocked=%v",
		g.scene.Name(), g.cursor.X, g.cursor.Y, g.scene.IsBlocked(g.cursor)))
}

// camera centers on the cursor, clamped to the map.
func (g *Game) camera() (float64, float64) {
	mapW, mapH := g.scene.PixelSize()
	camX := g.cursor.X - float64(config.C.Width)/2
	camY := g.cursor.Y - float64(config.C.Height)/2
	camX = clamp(camX, 0, float64(mapW-config.C.Width))
	camY = clamp(camY, 0, float64(mapH-config.C.Height))
	return camX, camY
}

func clamp(v, lo, hi float64) float64 {
	if hi < lo {
		return lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.C.Width, config.C.Height
}

func main() {
	extrude := flag.Int("extrude", config.Viewer.ExtrudeAmount, "tile border extrusion in pixels")
	sidecar := flag.String("sidecar", "", "spawn override sidecar file")
	flag.Parse()

	manager, err := gdata.Open(gdata.Config{AppName: "mapviewer"})
	if err != nil {
		log.Printf("Warning: could not initialize persistence: %v", err)
	}

	mapPath := flag.Arg(0)
	if mapPath == "" && manager != nil {
		if data, err := manager.LoadItem("lastmap"); err == nil && len(data) > 0 {
			mapPath = string(data)
			log.Printf("No map given, reopening %s", mapPath)
		}
	}
	if mapPath == "" {
		fmt.Fprintln(os.Stderr, "usage: mapviewer [flags] <map.json|map.tmx>")
		os.Exit(2)
	}

	game, err := NewGame(mapPath, scene.Options{
		Extrude:     *extrude,
		SidecarPath: *sidecar,
	})
	if err != nil {
		log.Fatalf("Failed to load %s: %v", mapPath, err)
	}

	if manager != nil {
		if err := manager.SaveItem("lastmap", []byte(mapPath)); err != nil {
			log.Printf("Warning: could not save last map: %v", err)
		}
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Printf("Warning: file watching disabled: %v", err)
	} else {
		defer watcher.Close()
		if err := watcher.Add(mapPath); err != nil {
			log.Printf("Warning: cannot watch %s: %v", mapPath, err)
		}
		go func() {
			for ev := range watcher.Events {
				if ev.Op.Has(fsnotify.Write) || ev.Op.Has(fsnotify.Create) {
					select {
					case game.reload <- struct{}{}:
					default:
					}
				}
			}
		}()
	}

	ebiten.SetWindowSize(config.C.Width, config.C.Height)
	ebiten.SetWindowTitle(config.C.Title)
	if err := ebiten.RunGame(game); err != nil {
		log.Fatalf("Viewer error: %v", err)
	}
}
