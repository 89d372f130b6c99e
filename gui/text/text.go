// Package text breaks strings into aligned lines for a font face.
package text

import (
	"image"
	"iter"
	"unicode"
	"unicode/utf8"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"
)

type Line struct {
	Text  string
	Width int
	// Dot is the baseline origin of the line relative to the
	// top-left corner of the layout box.
	Dot image.Point
}

type Style struct {
	Face            font.Face
	Alignment       Alignment
	LineHeightScale float32
	LetterSpacing   int
}

type Alignment int

const (
	AlignStart Alignment = iota
	AlignEnd
	AlignCenter
)

func (a Alignment) String() string {
	switch a {
	case AlignStart:
		return "start"
	case AlignEnd:
		return "end"
	case AlignCenter:
		return "center"
	default:
		return "invalid"
	}
}

func (l Style) LineHeight() int {
	lheight := l.Face.Metrics().Height.Ceil()
	if l.LineHeightScale != 0 {
		lheight = int(float32(lheight) * l.LineHeightScale)
	}
	return lheight
}

func (l Style) Measure(maxWidth int, txt string) image.Point {
	var dims image.Point
	for line := range l.Layout(maxWidth, txt) {
		dims.X = max(dims.X, line.Width)
		dims.Y = line.Dot.Y
	}
	m := l.Face.Metrics()
	dims.Y += m.Descent.Ceil()
	return dims
}

// Layout yields the lines of txt wrapped at word boundaries to fit
// maxWidth. Newlines always break.
func (l Style) Layout(maxWidth int, txt string) iter.Seq[Line] {
	return func(yield func(Line) bool) {
		prevC := rune(-1)
		adv := fixed.I(0)
		wordAdv := fixed.I(0)
		wordIdx := 0
		prev := 0
		idx := 0
		m := l.Face.Metrics()
		lheight := l.LineHeight()
		doty := m.Ascent.Ceil()
		endLine := func() bool {
			prevC = -1
			dotx := 0
			width := adv.Ceil()
			switch l.Alignment {
			case AlignCenter:
				dotx = (maxWidth - width) / 2
			case AlignEnd:
				dotx = maxWidth - width
			}
			l := Line{
				Text:  txt[prev:idx],
				Width: width,
				Dot:   image.Pt(dotx, doty),
			}
			wordIdx = 0
			wordAdv = 0
			doty += lheight
			return yield(l)
		}
		for idx < len(txt) {
			c, n := utf8.DecodeRuneInString(txt[idx:])
			if c == '\n' {
				if !endLine() {
					return
				}
				idx += n
				prev = idx
				adv = 0
				continue
			}
			a, ok := l.Face.GlyphAdvance(c)
			if !ok {
				prevC = -1
				idx += n
				continue
			}
			softnl := unicode.IsSpace(c)
			if softnl {
				wordIdx = idx
				wordAdv = adv
			}
			if prevC >= 0 {
				a += l.Face.Kern(prevC, c)
			}
			a += fixed.I(l.LetterSpacing)
			if idx > prev && (adv+a).Ceil() > maxWidth {
				if wordIdx > prev {
					idx = wordIdx
					adv = wordAdv
					_, n = utf8.DecodeRuneInString(txt[idx:])
					softnl = true
				}
				if !endLine() {
					return
				}
				prev = idx
				adv = 0
				if softnl {
					// Skip the breaking space.
					idx += n
					prev = idx
				}
				continue
			}
			idx += n
			prevC = c
			adv += a
		}
		if prev < len(txt) || len(txt) == 0 || txt[len(txt)-1] == '\n' {
			idx = len(txt)
			endLine()
		}
	}
}
