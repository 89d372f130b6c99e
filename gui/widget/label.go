// Package widget draws text and bitmaps into op lists.
package widget

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"stepface.dev/gui/layout"
	"stepface.dev/gui/op"
	"stepface.dev/gui/text"
)

// Label lays out txt inside r, wrapping at r's width and clipping at
// its edges, and returns the size of the text.
func Label(ops op.Ctx, l text.Style, r image.Rectangle, col color.NRGBA, txt string) image.Point {
	width := r.Dx()
	sz := l.Measure(width, txt)
	if col.A == 0 {
		return sz
	}
	for line := range l.Layout(width, txt) {
		if line.Text == "" {
			continue
		}
		op.ClipOp(r).Add(ops)
		op.TextOp{
			Color:         col,
			Face:          l.Face,
			Dot:           r.Min.Add(line.Dot),
			Txt:           line.Text,
			LetterSpacing: l.LetterSpacing,
		}.Add(ops)
	}
	return sz
}

// Fill paints r with col.
func Fill(ops op.Ctx, r image.Rectangle, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	op.ClipOp(r).Add(ops)
	op.ColorOp(ops, col)
}

// Image draws img centered in r, clipped to r.
func Image(ops op.Ctx, r image.Rectangle, img image.Image, comp draw.Op) {
	pos := layout.Rectangle(r).Center(img.Bounds().Size())
	op.ClipOp(r).Add(ops)
	op.Offset(ops, pos.Sub(img.Bounds().Min))
	op.ImageOp(ops, img, comp)
}
