package main

import (
	"fmt"
	"image"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"stepface.dev/config"
	"stepface.dev/gui"
	"stepface.dev/image/rgb565"
	"stepface.dev/lcd"
)

type display interface {
	gui.LCD
	Close()
}

func openDisplay(cfg config.Display, dims image.Point) (display, error) {
	switch cfg.Driver {
	case "st7789":
		return lcd.Open(lcd.Config{Port: cfg.SPI, Dims: dims})
	default:
		return openPNG(cfg.Output, dims)
	}
}

// pngDisplay writes every frame to a numbered PNG file.
type pngDisplay struct {
	dir   string
	fb    *rgb565.Image
	frame int
}

func openPNG(dir string, dims image.Point) (*pngDisplay, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("png: %w", err)
	}
	return &pngDisplay{
		dir: dir,
		fb:  rgb565.New(image.Rectangle{Max: dims}),
	}, nil
}

func (d *pngDisplay) Framebuffer() draw.RGBA64Image {
	return d.fb
}

func (d *pngDisplay) Dirty(sr image.Rectangle) error {
	name := filepath.Join(d.dir, fmt.Sprintf("frame%04d.png", d.frame))
	d.frame++
	f, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("png: %w", err)
	}
	if err := png.Encode(f, d.fb); err != nil {
		f.Close()
		return fmt.Errorf("png: %s: %w", name, err)
	}
	return f.Close()
}

func (d *pngDisplay) Close() {}
