package main

import (
	"image"
	"image/color"
	"image/draw"

	"golang.org/x/image/vector"
)

// hintColor marks the suggested cell.
var hintColor = color.RGBA{R: 0xff, G: 0xd7, B: 0x00, A: 0xff}

// drawHint outlines the solver's next cell with a diamond.
func (g *game) drawHint(img *image.RGBA) {
	cell, err := g.surface.Hint()
	if err != nil || cell < 0 {
		return
	}
	x, y, ok := g.surface.CellCenter(cell)
	if !ok {
		return
	}
	drawDiamond(img, float32(x), float32(y), 14, 4)
}

// drawDiamond strokes a diamond of the given radius and line width centered
// at (cx, cy).
func drawDiamond(dst draw.Image, cx, cy, radius, width float32) {
	b := dst.Bounds()
	r := vector.NewRasterizer(b.Dx(), b.Dy())
	outer, inner := radius, radius-width
	// Outer contour clockwise, inner counter-clockwise, so the center stays
	// unfilled under the non-zero rule.
	r.MoveTo(cx, cy-outer)
	r.LineTo(cx+outer, cy)
	r.LineTo(cx, cy+outer)
	r.LineTo(cx-outer, cy)
	r.ClosePath()
	r.MoveTo(cx, cy-inner)
	r.LineTo(cx-inner, cy)
	r.LineTo(cx, cy+inner)
	r.LineTo(cx+inner, cy)
	r.ClosePath()
	r.Draw(dst, b, image.NewUniform(hintColor), image.Point{})
}
