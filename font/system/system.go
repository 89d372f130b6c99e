// Package system is the shared cache of built-in font faces. Faces
// returned by Get are owned by the cache and must not be closed.
package system

import (
	"errors"
	"fmt"
	"image"
	"strings"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gobold"
	"golang.org/x/image/font/gofont/gomonobold"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

type Key string

const (
	Gothic14Bold  Key = "GOTHIC_14_BOLD"
	Gothic18Bold  Key = "GOTHIC_18_BOLD"
	Gothic28Bold  Key = "GOTHIC_28_BOLD"
	Leco42Numbers Key = "LECO_42_NUMBERS"
)

var ErrUnknownFont = errors.New("unknown system font")

type spec struct {
	family string
	// ppem is the size in pixels.
	ppem int
	// numeric faces only carry digits, colon and space.
	numeric bool
}

var specs = map[Key]spec{
	Gothic14Bold:  {family: "gobold", ppem: 11},
	Gothic18Bold:  {family: "gobold", ppem: 14},
	Gothic28Bold:  {family: "gobold", ppem: 22},
	Leco42Numbers: {family: "gomonobold", ppem: 38, numeric: true},
}

var families = map[string][]byte{
	"gobold":     gobold.TTF,
	"gomonobold": gomonobold.TTF,
}

var cache struct {
	mu    sync.Mutex
	fonts map[string]*sfnt.Font
	faces map[Key]font.Face
}

// Get returns the cached face for key, creating it on first use.
func Get(key Key) (font.Face, error) {
	cache.mu.Lock()
	defer cache.mu.Unlock()
	if f, ok := cache.faces[key]; ok {
		return f, nil
	}
	s, ok := specs[key]
	if !ok {
		return nil, fmt.Errorf("font: %q: %w", key, ErrUnknownFont)
	}
	if cache.faces == nil {
		cache.faces = make(map[Key]font.Face)
		cache.fonts = make(map[string]*sfnt.Font)
	}
	fnt, ok := cache.fonts[s.family]
	if !ok {
		var err error
		fnt, err = opentype.Parse(families[s.family])
		if err != nil {
			return nil, fmt.Errorf("font: %q: %w", key, err)
		}
		cache.fonts[s.family] = fnt
	}
	face, err := opentype.NewFace(fnt, &opentype.FaceOptions{
		Size:    float64(s.ppem),
		DPI:     72, // Size is in pixels.
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("font: %q: %w", key, err)
	}
	if s.numeric {
		face = &numericFace{Face: face}
	}
	cache.faces[key] = face
	return face, nil
}

// Keys lists the available system fonts.
func Keys() []Key {
	keys := make([]Key, 0, len(specs))
	for k := range specs {
		keys = append(keys, k)
	}
	return keys
}

const numerals = "0123456789: "

// numericFace hides every glyph but the numerals, like the
// display fonts that only ship digits.
type numericFace struct {
	font.Face
}

func (f *numericFace) Glyph(dot fixed.Point26_6, r rune) (image.Rectangle, image.Image, image.Point, fixed.Int26_6, bool) {
	if !strings.ContainsRune(numerals, r) {
		return image.Rectangle{}, nil, image.Point{}, 0, false
	}
	return f.Face.Glyph(dot, r)
}

func (f *numericFace) GlyphBounds(r rune) (fixed.Rectangle26_6, fixed.Int26_6, bool) {
	if !strings.ContainsRune(numerals, r) {
		return fixed.Rectangle26_6{}, 0, false
	}
	return f.Face.GlyphBounds(r)
}

func (f *numericFace) GlyphAdvance(r rune) (fixed.Int26_6, bool) {
	if !strings.ContainsRune(numerals, r) {
		return 0, false
	}
	return f.Face.GlyphAdvance(r)
}
