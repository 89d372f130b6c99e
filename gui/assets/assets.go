// Package assets holds the bitmap resources bundled with the watch face.
package assets

import (
	"embed"
	"errors"
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"sync/atomic"
)

type ResourceID int

const (
	LogoShrunk ResourceID = iota + 1
)

var resources = map[ResourceID]string{
	LogoShrunk: "logo-shrunk.png",
}

var (
	ErrUnknownResource = errors.New("unknown resource")
	ErrReleased        = errors.New("bitmap already released")
)

// Bitmap is a decoded resource. It must be released with Destroy.
type Bitmap struct {
	ID  ResourceID
	Img *image.NRGBA

	released bool
}

var live atomic.Int32

// Load decodes the resource into a new bitmap, cropped to its
// non-transparent content.
func Load(id ResourceID) (*Bitmap, error) {
	name, ok := resources[id]
	if !ok {
		return nil, fmt.Errorf("assets: %d: %w", id, ErrUnknownResource)
	}
	f, err := images.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: %s: %w", name, err)
	}
	crop := img.Bounds()
	if rgba, ok := img.(image.RGBA64Image); ok {
		crop = opaqueBounds(rgba)
	}
	nrgba := image.NewNRGBA(image.Rectangle{Max: crop.Size()})
	draw.Draw(nrgba, nrgba.Bounds(), img, crop.Min, draw.Src)
	live.Add(1)
	return &Bitmap{ID: id, Img: nrgba}, nil
}

func (b *Bitmap) Bounds() image.Rectangle {
	return b.Img.Bounds()
}

func (b *Bitmap) Destroy() error {
	if b.released {
		return fmt.Errorf("assets: %d: %w", b.ID, ErrReleased)
	}
	b.released = true
	b.Img = nil
	live.Add(-1)
	return nil
}

// Live reports the number of loaded bitmaps not yet destroyed.
func Live() int {
	return int(live.Load())
}

//go:embed *.png
var images embed.FS
