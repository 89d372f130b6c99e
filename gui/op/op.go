// Package op records drawing operations for a frame and replays them
// onto a framebuffer, tracking the region that changed since the
// previous frame.
package op

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Ops struct {
	ops    []any
	colors map[color.NRGBA]*image.Uniform

	prevOps  map[frameOp]bool
	frameOps map[frameOp]bool
	frame    []frameOp
}

// Ctx is the recording end of an Ops. The zero Ctx discards
// every operation, which is convenient for measuring.
type Ctx struct {
	ops *Ops
}

type frameOp struct {
	state drawState
	op    drawOp
}

type drawState struct {
	pos  image.Point
	clip image.Rectangle
}

func (o Ctx) add(op any) {
	if o.ops == nil {
		return
	}
	o.ops.ops = append(o.ops.ops, op)
}

func (o *Ops) Reset() Ctx {
	o.ops = o.ops[:0]
	if o.colors == nil {
		o.colors = make(map[color.NRGBA]*image.Uniform)
	}
	if o.frameOps == nil {
		o.frameOps = make(map[frameOp]bool)
	}
	if o.prevOps == nil {
		o.prevOps = make(map[frameOp]bool)
	}
	return Ctx{ops: o}
}

// Invalidate forgets the previous frame, forcing the next Draw
// to repaint everything.
func (o *Ops) Invalidate() {
	for op := range o.prevOps {
		delete(o.prevOps, op)
	}
	for op := range o.frameOps {
		delete(o.frameOps, op)
	}
}

func (o *Ops) nrgba(c color.NRGBA) *image.Uniform {
	if o == nil {
		return image.NewUniform(c)
	}
	if u, ok := o.colors[c]; ok {
		return u
	}
	u := image.NewUniform(c)
	o.colors[c] = u
	return u
}

// Draw replays the recorded operations onto dst, but only inside the
// area that differs from the previous call. It returns that area.
func (o *Ops) Draw(dst draw.Image) image.Rectangle {
	o.frameOps, o.prevOps = o.prevOps, o.frameOps
	// Clear for GC.
	for i := range o.frameOps {
		delete(o.frameOps, i)
	}
	for i := range o.frame {
		o.frame[i] = frameOp{}
	}
	o.frame = o.frame[:0]
	o.serialize(drawState{clip: dst.Bounds()})
	var clip image.Rectangle
	for _, op := range o.frame {
		o.frameOps[op] = true
		if !o.prevOps[op] {
			clip = clip.Union(op.state.clip)
		} else {
			delete(o.prevOps, op)
		}
	}
	// Whatever was drawn last frame but not this frame must be
	// repainted too.
	for op := range o.prevOps {
		clip = clip.Union(op.state.clip)
	}
	for _, op := range o.frame {
		clip := clip.Intersect(op.state.clip)
		if clip.Empty() {
			continue
		}
		op.op.draw(dst, clip, op.state.pos)
	}
	return clip
}

func (o *Ops) serialize(state drawState) {
	origState := state
	for _, op := range o.ops {
		switch op := op.(type) {
		case offsetOp:
			state.pos = state.pos.Add(image.Point(op))
			continue
		case ClipOp:
			r := image.Rectangle(op).Add(state.pos)
			state.clip = state.clip.Intersect(r)
			continue
		case drawOp:
			r := op.bounds().Add(state.pos)
			state.clip = state.clip.Intersect(r)
			if !state.clip.Empty() {
				o.frame = append(o.frame, frameOp{state, op})
			}
		}
		state = origState
	}
}

type offsetOp image.Point

// Offset translates the next drawing operation.
func Offset(ops Ctx, off image.Point) {
	ops.add(offsetOp(off))
}

// ClipOp restricts the next drawing operation to a rectangle.
type ClipOp image.Rectangle

func (c ClipOp) Add(ops Ctx) {
	ops.add(c)
}

// ColorOp fills the current clip with a color. Translucent colors are
// blended over the destination.
func ColorOp(ops Ctx, col color.NRGBA) {
	if col.A == 0 {
		return
	}
	ops.add(imageOp{src: ops.ops.nrgba(col), op: draw.Over})
}

// ImageOp draws img with the compositing operator op.
func ImageOp(ops Ctx, img image.Image, op draw.Op) {
	ops.add(imageOp{src: img, op: op})
}

type imageOp struct {
	src image.Image
	op  draw.Op
}

func (im imageOp) bounds() image.Rectangle {
	return im.src.Bounds()
}

func (im imageOp) draw(dst draw.Image, dr image.Rectangle, pos image.Point) {
	drawImage(dst, dr, im.src, dr.Min.Sub(pos), im.op)
}

type drawOp interface {
	bounds() image.Rectangle
	draw(dst draw.Image, dr image.Rectangle, pos image.Point)
}

// TextOp draws a single line of text with its baseline origin at Dot.
type TextOp struct {
	Color         color.NRGBA
	Face          font.Face
	Dot           image.Point
	Txt           string
	LetterSpacing int
}

func (t TextOp) Add(ops Ctx) {
	if t.Color.A == 0 || t.Txt == "" {
		return
	}
	ops.add(textOp{
		src:           ops.ops.nrgba(t.Color),
		face:          t.Face,
		dot:           fixed.P(t.Dot.X, t.Dot.Y),
		txt:           t.Txt,
		letterSpacing: t.LetterSpacing,
	})
}

type textOp struct {
	src           *image.Uniform
	face          font.Face
	dot           fixed.Point26_6
	txt           string
	letterSpacing int
}

func (t textOp) bounds() image.Rectangle {
	return t.glyphs(nil, image.Rectangle{}, image.Point{})
}

func (t textOp) draw(dst draw.Image, dr image.Rectangle, pos image.Point) {
	t.glyphs(dst, dr, pos)
}

// glyphs returns the union of the glyph rectangles and draws them
// when dst is not nil.
func (t textOp) glyphs(dst draw.Image, dr image.Rectangle, pos image.Point) image.Rectangle {
	prevC := rune(-1)
	dot := t.dot.Add(fixed.P(pos.X, pos.Y))
	var bounds image.Rectangle
	for _, c := range t.txt {
		if prevC >= 0 {
			dot.X += t.face.Kern(prevC, c)
		}
		gdr, mask, maskp, advance, ok := t.face.Glyph(dot, c)
		if !ok {
			prevC = -1
			continue
		}
		advance += fixed.I(t.letterSpacing)
		bounds = bounds.Union(gdr.Sub(pos))
		if dst != nil {
			r := gdr.Intersect(dr)
			if !r.Empty() {
				drawMask(dst, r, t.src, mask, maskp.Add(r.Min.Sub(gdr.Min)))
			}
		}
		dot.X += advance
		prevC = c
	}
	return bounds
}
