// Command switchterm plays the switch-grid puzzle in a terminal.
//
// Each character cell shows two pixels with the upper half block, so the
// board is rendered at twice the terminal's row count. Click a panel to
// turn it, press n for a new game and q or Escape to quit.
package main

import (
	"flag"
	"fmt"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/switchgrid"
	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/internal/sound"
	"github.com/gogpu/switchgrid/puzzle"
	"github.com/gogpu/switchgrid/render"
)

const frameInterval = time.Second / 30

func main() {
	var (
		size    = flag.Int("size", puzzle.DefaultSize, "grid side (1-9)")
		seed    = flag.Uint64("seed", 0, "board seed (0 for random)")
		asset   = flag.String("scene", "", "scene description JSON (default built-in)")
		lang    = flag.String("lang", os.Getenv("LANG"), "status language")
		mute    = flag.Bool("mute", false, "disable sounds")
		logFile = flag.String("log", "", "write debug log to file")
	)
	flag.Parse()

	if *logFile != "" {
		f, err := os.Create(*logFile)
		if err != nil {
			log.Fatal(err)
		}
		defer f.Close()
		switchgrid.SetLogger(slog.New(slog.NewTextHandler(f, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	if err := run(*size, *seed, *asset, *lang, *mute); err != nil {
		fmt.Fprintf(os.Stderr, "switchterm: %v\n", err)
		os.Exit(1)
	}
}

func run(size int, seed uint64, asset, lang string, mute bool) error {
	overlay, err := hud.New(hud.WithLanguage(hud.Match(lang)))
	if err != nil {
		return err
	}

	var spk sound.Speaker
	if !mute {
		if err := spk.Init(); err != nil {
			switchgrid.Logger().Warn("audio unavailable", "err", err)
		}
	}
	defer spk.Close()

	opts := []switchgrid.Option{
		switchgrid.WithSize(size),
		switchgrid.WithSceneAsset(asset),
		switchgrid.WithOverlay(nil),
		switchgrid.WithOnWin(func() { spk.Play(sound.Win()) }),
	}
	if seed != 0 {
		opts = append(opts, switchgrid.WithSeed(seed))
	}
	surface, err := switchgrid.New(render.NewSoftwareTarget(), opts...)
	if err != nil {
		return err
	}
	defer surface.Close()

	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()
	screen.EnableMouse()

	t := &term{screen: screen, surface: surface, overlay: overlay, speaker: &spk}
	return t.loop()
}
