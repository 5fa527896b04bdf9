// Command switchdemo plays a switch-grid game headlessly and saves frames
// as PNG images.
//
// The demo asks the solver for each move, clicks the cell at its projected
// center and renders the animation on a fixed 30 fps clock.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gogpu/switchgrid"
	"github.com/gogpu/switchgrid/gpu"
	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/puzzle"
	"github.com/gogpu/switchgrid/render"
)

const frameStep = time.Second / 30

func main() {
	var (
		width   = flag.Int("width", 800, "image width")
		height  = flag.Int("height", 600, "image height")
		size    = flag.Int("size", puzzle.DefaultSize, "grid side (1-9)")
		seed    = flag.Uint64("seed", 1, "board seed")
		asset   = flag.String("scene", "", "scene description JSON (default built-in)")
		output  = flag.String("output", "frames", "output directory")
		lang    = flag.String("lang", "en", "overlay language")
		useGPU  = flag.Bool("gpu", false, "render on a standalone Vulkan device")
		all     = flag.Bool("all", false, "save every animation frame, not only settled ones")
		verbose = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	if *verbose {
		switchgrid.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(config{
		width: *width, height: *height, size: *size, seed: *seed,
		asset: *asset, output: *output, lang: *lang, gpu: *useGPU, all: *all,
	}); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	width, height, size int
	seed                uint64
	asset, output, lang string
	gpu, all            bool
}

func run(cfg config) error {
	target, err := newTarget(cfg.gpu)
	if err != nil {
		return err
	}

	overlay, err := hud.New(hud.WithLanguage(hud.Match(cfg.lang)))
	if err != nil {
		return err
	}

	clock := puzzle.NewStepClock(time.Now())
	surface, err := switchgrid.New(target,
		switchgrid.WithSize(cfg.size),
		switchgrid.WithSeed(cfg.seed),
		switchgrid.WithClock(clock),
		switchgrid.WithSceneAsset(cfg.asset),
		switchgrid.WithOverlay(overlay),
		switchgrid.WithHints(true),
		switchgrid.WithOnWin(func() { log.Println("solved") }),
	)
	if err != nil {
		return err
	}
	defer surface.Close()
	surface.Resize(cfg.width, cfg.height)

	if err := os.MkdirAll(cfg.output, 0o755); err != nil {
		return err
	}
	p := &player{surface: surface, clock: clock, dir: cfg.output, all: cfg.all}

	if err := p.animate("start"); err != nil {
		return err
	}

	var in switchgrid.PointerInput
	for move := 1; !surface.Session().Won(); move++ {
		cell, err := surface.Hint()
		if errors.Is(err, puzzle.ErrUnsolvable) {
			log.Println("board has no solution")
			return p.save("unsolvable")
		}
		if err != nil {
			return err
		}
		if cell < 0 {
			// Already even: any cell picked twice wins.
			cell = 0
		}

		x, y, ok := surface.CellCenter(cell)
		if !ok {
			return fmt.Errorf("cell %d is off screen", cell)
		}
		in.Release(x, y)
		if err := surface.Synchronize(&in); err != nil {
			return err
		}
		if err := p.animate(fmt.Sprintf("move-%03d", move)); err != nil {
			return err
		}
	}

	log.Printf("solved in %d moves, frames saved to %s (%dx%d)",
		surface.Session().Moves(), cfg.output, cfg.width, cfg.height)
	return nil
}

func newTarget(useGPU bool) (render.Target, error) {
	if !useGPU {
		return render.NewSoftwareTarget(), nil
	}
	target, err := gpu.NewStandaloneTarget()
	if err != nil {
		return nil, fmt.Errorf("switchdemo: %w (run without -gpu for the software renderer)", err)
	}
	return target, nil
}

// player renders frames on a fixed clock.
type player struct {
	surface *switchgrid.Surface
	clock   *puzzle.StepClock
	dir     string
	all     bool
	frame   int
}

// animate renders until the panels settle and saves the final frame as
// name.png.
func (p *player) animate(name string) error {
	for {
		more, err := p.surface.Render()
		if err != nil {
			return err
		}
		if !more {
			return p.save(name)
		}
		if p.all {
			if err := p.save(fmt.Sprintf("frame-%05d", p.frame)); err != nil {
				return err
			}
		}
		p.frame++
		p.clock.Step(frameStep)
	}
}

func (p *player) save(name string) error {
	img, err := p.surface.Snapshot()
	if err != nil {
		return err
	}
	f, err := os.Create(filepath.Join(p.dir, name+".png"))
	if err != nil {
		return err
	}
	if err := png.Encode(f, img); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
