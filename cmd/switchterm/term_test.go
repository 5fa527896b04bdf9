package main

import (
	"image"
	"image/color"
	"testing"

	"github.com/gdamore/tcell/v2"
)

type cell struct {
	r     rune
	style tcell.Style
}

// gridScreen records SetContent calls.
type gridScreen map[image.Point]cell

func (g gridScreen) SetContent(x, y int, primary rune, _ []rune, style tcell.Style) {
	g[image.Pt(x, y)] = cell{primary, style}
}

func TestBlitPairsRows(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 3))
	red := color.RGBA{R: 255, A: 255}
	blue := color.RGBA{B: 255, A: 255}
	img.SetRGBA(0, 0, red)
	img.SetRGBA(0, 1, blue)
	img.SetRGBA(1, 2, red)

	g := gridScreen{}
	blit(g, img)

	if len(g) != 4 {
		t.Fatalf("blit wrote %d cells, want 4", len(g))
	}
	tests := []struct {
		at     image.Point
		fg, bg tcell.Color
	}{
		{image.Pt(0, 0), tcell.NewRGBColor(255, 0, 0), tcell.NewRGBColor(0, 0, 255)},
		{image.Pt(1, 0), tcell.NewRGBColor(0, 0, 0), tcell.NewRGBColor(0, 0, 0)},
		// The odd last row repeats its pixel.
		{image.Pt(1, 1), tcell.NewRGBColor(255, 0, 0), tcell.NewRGBColor(255, 0, 0)},
	}
	for _, tt := range tests {
		c := g[tt.at]
		if c.r != upperHalf {
			t.Errorf("cell %v rune = %q, want %q", tt.at, c.r, upperHalf)
		}
		fg, bg, _ := c.style.Decompose()
		if fg != tt.fg || bg != tt.bg {
			t.Errorf("cell %v colors = (%v, %v), want (%v, %v)", tt.at, fg, bg, tt.fg, tt.bg)
		}
	}
}

func TestCellToPixel(t *testing.T) {
	tests := []struct{ cx, cy, x, y int }{
		{0, 0, 0, 0},
		{10, 4, 10, 8},
		{79, 23, 79, 46},
	}
	for _, tt := range tests {
		if x, y := cellToPixel(tt.cx, tt.cy); x != tt.x || y != tt.y {
			t.Errorf("cellToPixel(%d, %d) = (%d, %d), want (%d, %d)", tt.cx, tt.cy, x, y, tt.x, tt.y)
		}
	}
}

func TestDrawText(t *testing.T) {
	g := gridScreen{}
	drawText(g, 2, 5, "Züge", tcell.StyleDefault)
	if len(g) != 4 {
		t.Fatalf("drawText wrote %d cells, want 4", len(g))
	}
	if c := g[image.Pt(3, 5)]; c.r != 'ü' {
		t.Errorf("cell (3,5) = %q, want 'ü'", c.r)
	}
}
