// Package layout contains rectangle helpers for splitting the screen
// into regions.
package layout

import (
	"image"
)

type Rectangle image.Rectangle

func (r Rectangle) Center(sz image.Point) image.Point {
	off := r.Size().Sub(sz).Div(2)
	return r.Min.Add(off)
}

func (r Rectangle) Dx() int {
	return image.Rectangle(r).Dx()
}

func (r Rectangle) Dy() int {
	return image.Rectangle(r).Dy()
}

func (r Rectangle) Size() image.Point {
	return image.Rectangle(r).Size()
}

func (r Rectangle) CutTop(height int) (top Rectangle, bottom Rectangle) {
	cuty := min(r.Min.Y+height, r.Max.Y)
	return r.cutY(cuty)
}

func (r Rectangle) CutBottom(height int) (top Rectangle, bottom Rectangle) {
	cuty := max(r.Max.Y-height, r.Min.Y)
	return r.cutY(cuty)
}

func (r Rectangle) cutY(cuty int) (top Rectangle, bottom Rectangle) {
	top = Rectangle(image.Rect(r.Min.X, r.Min.Y, r.Max.X, cuty))
	bottom = Rectangle(image.Rect(r.Min.X, cuty, r.Max.X, r.Max.Y))
	return top, bottom
}

func (r Rectangle) CutStart(width int) (start Rectangle, end Rectangle) {
	cutx := min(r.Min.X+width, r.Max.X)
	return r.cutX(cutx)
}

func (r Rectangle) CutEnd(width int) (start Rectangle, end Rectangle) {
	cutx := max(r.Max.X-width, r.Min.X)
	return r.cutX(cutx)
}

func (r Rectangle) cutX(cutx int) (start Rectangle, end Rectangle) {
	start = Rectangle(image.Rect(r.Min.X, r.Min.Y, cutx, r.Max.Y))
	end = Rectangle(image.Rect(cutx, r.Min.Y, r.Max.X, r.Max.Y))
	return start, end
}

// Band returns the full width horizontal strip starting at y with
// the given height. Unlike the cut helpers it may extend past r.
func (r Rectangle) Band(y, height int) Rectangle {
	return Rectangle(image.Rect(r.Min.X, r.Min.Y+y, r.Max.X, r.Min.Y+y+height))
}
