package main

import (
	"image"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/gogpu/switchgrid"
	"github.com/gogpu/switchgrid/hud"
	"github.com/gogpu/switchgrid/internal/sound"
)

// upperHalf draws the top pixel in the foreground and the bottom pixel in
// the background.
const upperHalf = '▀'

// term runs a Surface on a tcell screen.
type term struct {
	screen  tcell.Screen
	surface *switchgrid.Surface
	overlay *hud.Overlay
	speaker *sound.Speaker
	input   switchgrid.PointerInput

	buttonDown bool
	picked     bool
	redraw     bool
}

func (t *term) loop() error {
	events := make(chan tcell.Event, 64)
	quit := make(chan struct{})
	go t.screen.ChannelEvents(events, quit)
	defer close(quit)

	t.resize()
	ticker := time.NewTicker(frameInterval)
	defer ticker.Stop()

	for {
		if t.redraw {
			if err := t.draw(); err != nil {
				return err
			}
		}

		select {
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !t.handle(ev) {
				return nil
			}
			if err := t.sync(); err != nil {
				return err
			}
		case <-ticker.C:
		}
	}
}

// handle records ev and reports whether the loop should continue.
func (t *term) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch {
		case ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC:
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'q':
			return false
		case ev.Key() == tcell.KeyRune && ev.Rune() == 'n':
			t.input.NewGame()
		}
	case *tcell.EventMouse:
		down := ev.Buttons()&tcell.Button1 != 0
		if t.buttonDown && !down {
			x, y := ev.Position()
			t.input.Release(cellToPixel(x, y))
			t.picked = true
		}
		t.buttonDown = down
	case *tcell.EventResize:
		t.screen.Sync()
		t.resize()
	}
	return true
}

// cellToPixel maps a character cell to the pixel of its upper half.
func cellToPixel(cx, cy int) (x, y int) {
	return cx, cy * 2
}

func (t *term) resize() {
	w, h := t.screen.Size()
	// The last row holds the status line.
	t.surface.Resize(w, max(h-1, 0)*2)
	t.redraw = true
}

func (t *term) sync() error {
	if !t.input.Pending() {
		return nil
	}
	session := t.surface.Session()
	moves, won := session.Moves(), session.Won()
	picked := t.picked
	t.picked = false
	if err := t.surface.Synchronize(&t.input); err != nil {
		return err
	}
	if picked && !won {
		if session.Moves() > moves {
			t.speaker.Play(sound.Click())
		} else {
			t.speaker.Play(sound.Miss())
		}
	}
	t.redraw = true
	return nil
}

func (t *term) draw() error {
	more, err := t.surface.Render()
	if err != nil {
		return err
	}
	t.redraw = more

	t.screen.Clear()
	if w, h := t.surface.Size(); w > 0 && h > 0 {
		img, err := t.surface.Snapshot()
		if err != nil {
			return err
		}
		blit(t.screen, img)
	}
	_, rows := t.screen.Size()
	drawText(t.screen, 0, rows-1, t.overlay.StatusLine(t.surface.Status()), tcell.StyleDefault.Bold(true))
	t.screen.Show()
	return nil
}

// cellSetter is the part of tcell.Screen used for drawing.
type cellSetter interface {
	SetContent(x, y int, primary rune, combining []rune, style tcell.Style)
}

// blit draws img with two pixel rows per character row.
func blit(dst cellSetter, img *image.RGBA) {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y += 2 {
		for x := b.Min.X; x < b.Max.X; x++ {
			top := img.RGBAAt(x, y)
			bottom := top
			if y+1 < b.Max.Y {
				bottom = img.RGBAAt(x, y+1)
			}
			style := tcell.StyleDefault.
				Foreground(tcell.NewRGBColor(int32(top.R), int32(top.G), int32(top.B))).
				Background(tcell.NewRGBColor(int32(bottom.R), int32(bottom.G), int32(bottom.B)))
			dst.SetContent(x-b.Min.X, (y-b.Min.Y)/2, upperHalf, nil, style)
		}
	}
}

func drawText(dst cellSetter, x, y int, text string, style tcell.Style) {
	for _, r := range text {
		dst.SetContent(x, y, r, nil, style)
		x++
	}
}
