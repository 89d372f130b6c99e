package gui

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"slices"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"stepface.dev/font/system"
	"stepface.dev/gui/assets"
	"stepface.dev/gui/op"
	"stepface.dev/gui/text"
	"stepface.dev/gui/widget"
)

var (
	ErrDestroyed = errors.New("already destroyed")
	ErrNoMemory  = errors.New("out of layer memory")
)

// Layer is a rectangle in the window's layer tree. Children are drawn
// after their parent, in the order they were added.
type Layer struct {
	frame    image.Rectangle
	parent   *Layer
	children []*Layer
	// window is only set for root layers.
	window *Window
	draw   func(ops op.Ctx, r image.Rectangle)
}

// Frame returns the layer rectangle in its parent's coordinates.
func (l *Layer) Frame() image.Rectangle {
	return l.frame
}

func (l *Layer) SetFrame(r image.Rectangle) {
	l.frame = r
}

// Bounds returns the layer rectangle in its own coordinates.
func (l *Layer) Bounds() image.Rectangle {
	return image.Rectangle{Max: l.frame.Size()}
}

func (l *Layer) AddChild(c *Layer) {
	c.RemoveFromParent()
	c.parent = l
	l.children = append(l.children, c)
}

func (l *Layer) RemoveFromParent() {
	p := l.parent
	if p == nil {
		return
	}
	if i := slices.Index(p.children, l); i >= 0 {
		p.children = slices.Delete(p.children, i, i+1)
	}
	l.parent = nil
}

// Children returns the number of child layers.
func (l *Layer) Children() int {
	return len(l.children)
}

// Window returns the window the layer belongs to, or nil if the layer
// is detached.
func (l *Layer) Window() *Window {
	for l.parent != nil {
		l = l.parent
	}
	return l.window
}

// origin returns the layer's top-left corner in window coordinates.
func (l *Layer) origin() image.Point {
	var p image.Point
	for ; l != nil; l = l.parent {
		p = p.Add(l.frame.Min)
	}
	return p
}

// UnobstructedBounds returns the part of Bounds not covered by system
// overlays.
func (l *Layer) UnobstructedBounds() image.Rectangle {
	b := l.Bounds()
	w := l.Window()
	if w == nil || w.host == nil {
		return b
	}
	area := w.host.area.Sub(l.origin())
	return b.Intersect(area)
}

func (l *Layer) render(ops op.Ctx, off image.Point) {
	r := l.frame.Add(off)
	if l.draw != nil {
		l.draw(ops, r)
	}
	for _, c := range l.children {
		c.render(ops, r.Min)
	}
}

// TextLayer draws text with a background.
type TextLayer struct {
	layer     Layer
	host      *Host
	text      string
	face      font.Face
	textColor color.NRGBA
	bgColor   color.NRGBA
	alignment text.Alignment
	destroyed bool
}

// NewTextLayer allocates a text layer with black text on a white
// background, left aligned in the default system font.
func (h *Host) NewTextLayer(frame image.Rectangle) (*TextLayer, error) {
	if err := h.alloc(); err != nil {
		return nil, fmt.Errorf("gui: text layer: %w", err)
	}
	t := &TextLayer{
		host:      h,
		textColor: ColorBlack,
		bgColor:   ColorWhite,
		alignment: text.AlignStart,
	}
	t.layer.frame = frame
	t.layer.draw = t.drawText
	return t, nil
}

func (t *TextLayer) Layer() *Layer {
	return &t.layer
}

func (t *TextLayer) Text() string {
	return t.text
}

func (t *TextLayer) SetText(s string) {
	t.text = s
}

func (t *TextLayer) Font() font.Face {
	return t.face
}

func (t *TextLayer) SetFont(f font.Face) {
	t.face = f
}

func (t *TextLayer) TextColor() color.NRGBA {
	return t.textColor
}

func (t *TextLayer) SetTextColor(c color.NRGBA) {
	t.textColor = c
}

func (t *TextLayer) BackgroundColor() color.NRGBA {
	return t.bgColor
}

func (t *TextLayer) SetBackgroundColor(c color.NRGBA) {
	t.bgColor = c
}

func (t *TextLayer) Alignment() text.Alignment {
	return t.alignment
}

func (t *TextLayer) SetAlignment(a text.Alignment) {
	t.alignment = a
}

func (t *TextLayer) drawText(ops op.Ctx, r image.Rectangle) {
	widget.Fill(ops, r, t.bgColor)
	face := t.face
	if face == nil {
		f, err := system.Get(system.Gothic14Bold)
		if err != nil {
			return
		}
		face = f
	}
	st := text.Style{Face: face, Alignment: t.alignment}
	widget.Label(ops, st, r, t.textColor, t.text)
}

// Destroy detaches the layer and releases it.
func (t *TextLayer) Destroy() error {
	if t.destroyed {
		return fmt.Errorf("gui: text layer: %w", ErrDestroyed)
	}
	t.destroyed = true
	t.layer.RemoveFromParent()
	t.host.free()
	return nil
}

// CompOp is the compositing mode of a bitmap layer.
type CompOp int

const (
	// CompOpAssign copies the bitmap pixels, alpha included.
	CompOpAssign CompOp = iota
	// CompOpSet blends the bitmap over the background using its alpha.
	CompOpSet
)

func (c CompOp) drawOp() draw.Op {
	if c == CompOpSet {
		return draw.Over
	}
	return draw.Src
}

// BitmapLayer draws a bitmap centered over a background.
type BitmapLayer struct {
	layer     Layer
	host      *Host
	bitmap    *assets.Bitmap
	bgColor   color.NRGBA
	comp      CompOp
	destroyed bool
}

// NewBitmapLayer allocates a bitmap layer with a clear background
// and CompOpAssign compositing.
func (h *Host) NewBitmapLayer(frame image.Rectangle) (*BitmapLayer, error) {
	if err := h.alloc(); err != nil {
		return nil, fmt.Errorf("gui: bitmap layer: %w", err)
	}
	b := &BitmapLayer{
		host:    h,
		bgColor: ColorClear,
	}
	b.layer.frame = frame
	b.layer.draw = b.drawBitmap
	return b, nil
}

func (b *BitmapLayer) Layer() *Layer {
	return &b.layer
}

func (b *BitmapLayer) Bitmap() *assets.Bitmap {
	return b.bitmap
}

// SetBitmap sets the bitmap to draw. The layer does not take
// ownership of bm.
func (b *BitmapLayer) SetBitmap(bm *assets.Bitmap) {
	b.bitmap = bm
}

func (b *BitmapLayer) BackgroundColor() color.NRGBA {
	return b.bgColor
}

func (b *BitmapLayer) SetBackgroundColor(c color.NRGBA) {
	b.bgColor = c
}

func (b *BitmapLayer) CompositingMode() CompOp {
	return b.comp
}

func (b *BitmapLayer) SetCompositingMode(c CompOp) {
	b.comp = c
}

func (b *BitmapLayer) drawBitmap(ops op.Ctx, r image.Rectangle) {
	widget.Fill(ops, r, b.bgColor)
	if b.bitmap == nil || b.bitmap.Img == nil {
		return
	}
	widget.Image(ops, r, b.bitmap.Img, b.comp.drawOp())
}

// Destroy detaches the layer and releases it. The bitmap is not
// released.
func (b *BitmapLayer) Destroy() error {
	if b.destroyed {
		return fmt.Errorf("gui: bitmap layer: %w", ErrDestroyed)
	}
	b.destroyed = true
	b.layer.RemoveFromParent()
	b.host.free()
	return nil
}
