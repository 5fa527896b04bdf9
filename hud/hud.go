// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package hud draws the status overlay (move counter, hint and solved
// banner) onto a rendered frame.
//
// Text is rendered with the Go Regular font through x/image/font. Banner
// widths are measured by shaping the localized string with HarfBuzz
// (go-text/typesetting), so kerning is accounted for when centering.
package hud

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"

	"github.com/go-text/typesetting/di"
	gtfont "github.com/go-text/typesetting/font"
	gtlanguage "github.com/go-text/typesetting/language"
	"github.com/go-text/typesetting/shaping"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/goregular"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// Status is the game state shown by the overlay.
type Status struct {
	Size  int
	Moves int
	Won   bool

	// Hint is the suggested cell, or -1 for none. HintFailed reports that
	// the solver found no solution.
	Hint       int
	HintFailed bool
}

// Overlay renders a Status onto images. An Overlay is not safe for
// concurrent use.
type Overlay struct {
	face    font.Face
	shaper  shaping.HarfbuzzShaper
	gtFace  *gtfont.Face
	printer *message.Printer
	lang    language.Tag
	size    float64

	text   color.Color
	band   color.Color
	banner color.Color
}

// Option configures an Overlay.
type Option func(*options)

type options struct {
	lang language.Tag
	size float64
}

// WithLanguage selects the message language.
func WithLanguage(tag language.Tag) Option {
	return func(o *options) { o.lang = tag }
}

// WithFontSize sets the text size in pixels.
func WithFontSize(px float64) Option {
	return func(o *options) {
		if px > 0 {
			o.size = px
		}
	}
}

// New creates an overlay.
func New(opts ...Option) (*Overlay, error) {
	o := options{lang: language.English, size: 14}
	for _, opt := range opts {
		opt(&o)
	}

	sf, err := opentype.Parse(goregular.TTF)
	if err != nil {
		return nil, fmt.Errorf("hud: parse font: %w", err)
	}
	face, err := opentype.NewFace(sf, &opentype.FaceOptions{
		Size:    o.size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("hud: create face: %w", err)
	}
	gtFace, err := gtfont.ParseTTF(bytes.NewReader(goregular.TTF))
	if err != nil {
		return nil, fmt.Errorf("hud: parse font for shaping: %w", err)
	}

	return &Overlay{
		face:    face,
		gtFace:  gtFace,
		printer: message.NewPrinter(o.lang),
		lang:    o.lang,
		size:    o.size,
		text:    color.RGBA{R: 0xf0, G: 0xf0, B: 0xf0, A: 0xff},
		band:    color.RGBA{A: 0x90},
		banner:  color.RGBA{R: 0xff, G: 0xd8, B: 0x40, A: 0xff},
	}, nil
}

// MustNew is like New but panics on error.
func MustNew(opts ...Option) *Overlay {
	o, err := New(opts...)
	if err != nil {
		panic(err)
	}
	return o
}

// StatusLine returns the text of the top status band.
func (o *Overlay) StatusLine(s Status) string {
	line := o.printer.Sprintf(msgMoves, s.Moves)
	switch {
	case s.HintFailed:
		line += "   " + o.printer.Sprintf(msgNoHint)
	case s.Hint >= 0 && s.Size > 0:
		line += "   " + o.printer.Sprintf(msgHint, s.Hint/s.Size+1, s.Hint%s.Size+1)
	}
	return line
}

// Banner returns the solved banner lines, or nil while the game is on.
func (o *Overlay) Banner(s Status) []string {
	if !s.Won {
		return nil
	}
	return []string{
		o.printer.Sprintf(msgSolved, s.Moves),
		o.printer.Sprintf(msgNew),
	}
}

// Measure returns the shaped advance of text in pixels.
func (o *Overlay) Measure(text string) int {
	if text == "" {
		return 0
	}
	runes := []rune(text)
	out := o.shaper.Shape(shaping.Input{
		Text:      runes,
		RunStart:  0,
		RunEnd:    len(runes),
		Direction: di.DirectionLTR,
		Face:      o.gtFace,
		Size:      fixed.Int26_6(o.size * 64),
		Script:    gtlanguage.Latin,
		Language:  gtlanguage.NewLanguage(o.lang.String()),
	})
	return out.Advance.Ceil()
}

// Draw paints the overlay onto dst.
func (o *Overlay) Draw(dst draw.Image, s Status) {
	b := dst.Bounds()
	if b.Empty() {
		return
	}
	m := o.face.Metrics()
	lineH := m.Height.Ceil()
	pad := lineH / 3

	band := image.Rect(b.Min.X, b.Min.Y, b.Max.X, min(b.Max.Y, b.Min.Y+lineH+2*pad))
	draw.Draw(dst, band, image.NewUniform(o.band), image.Point{}, draw.Over)
	o.drawString(dst, o.StatusLine(s), b.Min.X+pad, b.Min.Y+pad+m.Ascent.Ceil(), o.text)

	lines := o.Banner(s)
	if len(lines) == 0 {
		return
	}
	total := len(lines)*lineH + 2*pad
	top := b.Min.Y + (b.Dy()-total)/2
	area := image.Rect(b.Min.X, top, b.Max.X, top+total).Intersect(b)
	draw.Draw(dst, area, image.NewUniform(o.band), image.Point{}, draw.Over)
	for i, line := range lines {
		x := b.Min.X + (b.Dx()-o.Measure(line))/2
		y := top + pad + i*lineH + m.Ascent.Ceil()
		c := o.banner
		if i > 0 {
			c = o.text
		}
		o.drawString(dst, line, x, y, c)
	}
}

func (o *Overlay) drawString(dst draw.Image, text string, x, baseline int, c color.Color) {
	d := font.Drawer{
		Dst:  dst,
		Src:  image.NewUniform(c),
		Face: o.face,
		Dot:  fixed.P(x, baseline),
	}
	d.DrawString(text)
}
