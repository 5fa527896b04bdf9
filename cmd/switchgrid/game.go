package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/gogpu/switchgrid"
)

// game adapts a Surface to ebiten's update/draw loop.
type game struct {
	surface *switchgrid.Surface
	input   switchgrid.PointerInput
	sounds  *sounds

	frame *ebiten.Image
	// redraw is set when the surface must be rendered again.
	redraw bool
	hints  bool
}

func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.input.NewGame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		g.hints = !g.hints
		g.redraw = true
	}
	picked := inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft)
	if picked {
		g.input.Release(ebiten.CursorPosition())
	}

	if !g.input.Pending() {
		return nil
	}
	session := g.surface.Session()
	moves, won := session.Moves(), session.Won()
	if err := g.surface.Synchronize(&g.input); err != nil {
		return err
	}
	if picked && !won {
		if session.Moves() > moves {
			g.sounds.click()
		} else {
			g.sounds.miss()
		}
	}
	g.redraw = true
	return nil
}

func (g *game) Draw(screen *ebiten.Image) {
	if g.redraw || g.frame == nil {
		g.render()
	}
	if g.frame != nil {
		screen.DrawImage(g.frame, nil)
	}
}

func (g *game) render() {
	more, err := g.surface.Render()
	if err != nil {
		switchgrid.Logger().Warn("render failed", "err", err)
		return
	}
	g.redraw = more

	img, err := g.surface.Snapshot()
	if err != nil {
		switchgrid.Logger().Warn("snapshot failed", "err", err)
		return
	}
	if g.hints {
		g.drawHint(img)
	}
	b := img.Bounds()
	if g.frame == nil || g.frame.Bounds().Dx() != b.Dx() || g.frame.Bounds().Dy() != b.Dy() {
		if g.frame != nil {
			g.frame.Deallocate()
		}
		g.frame = ebiten.NewImage(b.Dx(), b.Dy())
	}
	g.frame.WritePixels(img.Pix)
}

func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if w, h := g.surface.Size(); w != outsideWidth || h != outsideHeight {
		g.surface.Resize(outsideWidth, outsideHeight)
		g.redraw = true
	}
	return outsideWidth, outsideHeight
}
