/*
Copyright © 2026 Seednode <seednode@seedno.de>
*/

// Package cards draws the card faces, the solution guide and the favicon.
// Everything is rendered at 1x with a bitmap font and scaled up with
// nearest-neighbor sampling, so the output is crisp at any integer size.
package cards

import (
	"bytes"
	"image"
	"image/color"
	"image/png"

	"github.com/Seednode/cartas/game"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	// sheet size of one card before scaling
	sheetW = 30
	sheetH = 42

	Scale  = 5
	Width  = sheetW * Scale
	Height = sheetH * Scale
)

var (
	ink   = color.RGBA{0x1d, 0x1d, 0x2b, 0xff}
	paper = color.RGBA{0xfa, 0xf7, 0xf0, 0xff}

	palette = []color.RGBA{
		{0xe6, 0x39, 0x46, 0xff},
		{0xf4, 0xa2, 0x61, 0xff},
		{0xe9, 0xc4, 0x6a, 0xff},
		{0x2a, 0x9d, 0x8f, 0xff},
		{0x26, 0x46, 0x53, 0xff},
		{0x45, 0x7b, 0x9d, 0xff},
		{0x9b, 0x5d, 0xe5, 0xff},
		{0xf1, 0x5b, 0xb5, 0xff},
	}
)

func fill(img draw.Image, r image.Rectangle, c color.Color) {
	draw.Draw(img, r, image.NewUniform(c), image.Point{}, draw.Src)
}

func drawText(img draw.Image, s string, c color.Color, centerX, baseline int) {
	face := basicfont.Face7x13
	w := font.MeasureString(face, s).Ceil()

	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(c),
		Face: face,
		Dot:  fixed.P(centerX-w/2, baseline),
	}
	d.DrawString(s)
}

// sheet renders one card at 1x.
func sheet(label string, position int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, sheetW, sheetH))

	accent := palette[position%len(palette)]

	fill(img, img.Bounds(), ink)
	fill(img, image.Rect(1, 1, sheetW-1, sheetH-1), paper)
	fill(img, image.Rect(3, 3, sheetW-3, 10), accent)
	fill(img, image.Rect(3, sheetH-10, sheetW-3, sheetH-3), accent)

	drawText(img, label, ink, sheetW/2, sheetH/2+5)

	return img
}

func upscale(src image.Image, factor int) *image.RGBA {
	b := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx()*factor, b.Dy()*factor))
	draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)

	return dst
}

// Face returns the full-size face of c. Cards outside the deck still render,
// with a neutral accent.
func Face(deck game.Deck, c game.Card) image.Image {
	position := deck.Index(c)
	if position < 0 {
		position = 0
	}

	return upscale(sheet(c.Label(), position), Scale)
}

// Guide lays every card out in solved order, two rows deep like the board.
func Guide(deck game.Deck) image.Image {
	const gap = 2

	cols := (deck.Len() + 1) / 2
	if cols < 1 {
		cols = 1
	}
	rows := (deck.Len() + cols - 1) / cols
	if rows < 1 {
		rows = 1
	}

	w := cols*(sheetW+gap) + gap
	h := rows*(sheetH+gap) + gap

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	fill(img, img.Bounds(), ink)

	for i, c := range deck.Order {
		x := gap + (i%cols)*(sheetW+gap)
		y := gap + (i/cols)*(sheetH+gap)
		card := sheet(c.Label(), i)
		draw.Draw(img, card.Bounds().Add(image.Pt(x, y)), card, image.Point{}, draw.Src)
	}

	return upscale(img, 4)
}

// Icon is a small square favicon built from the first card.
func Icon(deck game.Deck) image.Image {
	label := "?"
	if deck.Len() > 0 {
		label = deck.Order[0].Label()
	}

	src := sheet(label, 0)
	square := image.NewRGBA(image.Rect(0, 0, sheetH, sheetH))
	fill(square, square.Bounds(), color.Transparent)
	off := (sheetH - sheetW) / 2
	draw.Draw(square, src.Bounds().Add(image.Pt(off, 0)), src, image.Point{}, draw.Src)

	return upscale(square, 2)
}

// PNG encodes img.
func PNG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}
