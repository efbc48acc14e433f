// Command viewer shows the holograms of one world from the side and reloads
// them whenever the holograms file changes.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/color"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/milk9111/holograms/config"
	"github.com/milk9111/holograms/ecs/system"
	"github.com/milk9111/holograms/manager"
	"github.com/milk9111/holograms/store"
	"github.com/milk9111/holograms/world"
)

const panSpeed = 0.25

type viewer struct {
	world   *world.World
	manager *manager.Manager
	watcher *store.Watcher
	render  *system.RenderSystem
	// every hologram's chunk counts as loaded when no chunks are configured
	allChunks bool
}

func newViewer(cfg config.Config, worldName string) (*viewer, error) {
	w := world.New()
	m := manager.New(w, store.New(cfg.File))
	w.AddSystem(manager.NewChunkSystem(m))
	w.AddSystem(system.NewItemSpinSystem())

	chunks, err := cfg.LoadedChunks()
	if err != nil {
		return nil, err
	}
	for _, k := range chunks {
		w.LoadChunk(k)
	}

	v := &viewer{
		world:     w,
		manager:   m,
		render:    system.NewRenderSystem(worldName),
		allChunks: len(chunks) == 0,
	}
	if err := v.reload(); err != nil {
		return nil, err
	}

	watcher, err := store.NewWatcher(cfg.File)
	if err != nil {
		return nil, fmt.Errorf("watch %s: %w", cfg.File, err)
	}
	v.watcher = watcher
	return v, nil
}

func (v *viewer) reload() error {
	err := v.manager.Reload()
	if err != nil && !errors.Is(err, store.ErrSkipped) {
		return err
	}
	if err != nil {
		slog.Warn("Some holograms could not be loaded", "error", err)
	}
	if v.allChunks {
		v.manager.LoadAllChunks()
	}
	return nil
}

func (v *viewer) Update() error {
	select {
	case name, ok := <-v.watcher.Events:
		if ok {
			slog.Info("Holograms file changed", "file", name)
			if err := v.reload(); err != nil {
				slog.Error("Reload failed", "error", err)
			}
		}
	case err, ok := <-v.watcher.Errors:
		if ok {
			slog.Error("Watcher failed", "error", err)
		}
	default:
	}

	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		v.render.CamX -= panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		v.render.CamX += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		v.render.CamY += panSpeed
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		v.render.CamY -= panSpeed
	}
	_, dy := ebiten.Wheel()
	if ebiten.IsKeyPressed(ebiten.KeyEqual) {
		dy += 0.1
	}
	if ebiten.IsKeyPressed(ebiten.KeyMinus) {
		dy -= 0.1
	}
	if dy != 0 {
		v.render.Zoom = max(0.1, v.render.Zoom*(1+dy*0.1))
	}

	v.world.Update()
	return nil
}

func (v *viewer) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{0x10, 0x10, 0x18, 0xff})
	v.render.Draw(v.world.ECS(), screen)
	ebitenutil.DebugPrint(screen, fmt.Sprintf("%s  holograms: %d  chunks: %d  zoom: %.2f",
		v.render.World, len(v.manager.All()), v.world.LoadedChunks(), v.render.Zoom))
}

func (v *viewer) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	file := flag.String("file", cfg.File, "holograms file")
	worldName := flag.String("world", "world", "world to show")
	flag.Parse()
	cfg.File = *file

	logger, closer, err := cfg.NewLogger(os.Stderr)
	if err != nil {
		log.Fatal(err)
	}
	defer closer.Close()
	slog.SetDefault(logger)

	v, err := newViewer(cfg, *worldName)
	if err != nil {
		log.Fatal(err)
	}
	defer v.watcher.Close()

	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetWindowSize(1024, 768)
	ebiten.SetWindowTitle("holograms")
	if err := ebiten.RunGame(v); err != nil {
		log.Fatal(err)
	}
}
