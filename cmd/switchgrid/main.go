// Command switchgrid opens a window with a switch-grid puzzle.
//
// Click a panel to turn it together with its row and column. Press N for a
// new game, H to toggle hints and Escape to quit.
package main

import (
	"flag"
	"log"
	"log/slog"
	"os"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/gogpu/switchgrid"
	"github.com/gogpu/switchgrid/gpu"
	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/puzzle"
	"github.com/gogpu/switchgrid/render"
)

func main() {
	var (
		size    = flag.Int("size", puzzle.DefaultSize, "grid side (1-9)")
		seed    = flag.Uint64("seed", 0, "board seed (0 for random)")
		asset   = flag.String("scene", "", "scene description JSON (default built-in)")
		lang    = flag.String("lang", os.Getenv("LANG"), "overlay language")
		useGPU  = flag.Bool("gpu", false, "render on a standalone Vulkan device")
		mute    = flag.Bool("mute", false, "disable sounds")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		switchgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	target := newTarget(*useGPU)
	overlay, err := hud.New(hud.WithLanguage(hud.Match(*lang)))
	if err != nil {
		log.Fatal(err)
	}

	g := &game{sounds: newSounds(*mute)}
	opts := []switchgrid.Option{
		switchgrid.WithSize(*size),
		switchgrid.WithSceneAsset(*asset),
		switchgrid.WithOverlay(overlay),
		switchgrid.WithOnWin(g.sounds.win),
	}
	if *seed != 0 {
		opts = append(opts, switchgrid.WithSeed(*seed))
	}
	g.surface, err = switchgrid.New(target, opts...)
	if err != nil {
		log.Fatal(err)
	}
	defer g.surface.Close()

	ebiten.SetWindowTitle("Switch Grid")
	ebiten.SetWindowSize(800, 600)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	if err := ebiten.RunGame(g); err != nil && err != ebiten.Termination {
		log.Fatal(err)
	}
}

// newTarget returns a GPU target when requested and available, otherwise
// the software rasterizer.
func newTarget(useGPU bool) render.Target {
	if useGPU {
		target, err := gpu.NewStandaloneTarget()
		if err == nil {
			return target
		}
		log.Printf("GPU unavailable, using software renderer: %v", err)
	}
	return render.NewSoftwareTarget()
}
