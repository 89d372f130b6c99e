package rgb565

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"testing"
)

func TestRoundtrip(t *testing.T) {
	for c := 0; c <= math.MaxUint16; c++ {
		rgb16 := Color{B1: byte(c >> 8), B0: byte(c)}
		r, g, b := RGB565ToRGB888(rgb16)
		got := RGB888ToRGB565(r, g, b)
		if rgb16 != got {
			t.Errorf("%.4x => %.2x, %.2x, %.2x => %.4x", c, r, g, b, got)
		}
	}
}

func TestDrawUniform(t *testing.T) {
	img := New(image.Rect(0, 0, 10, 10))
	green := color.NRGBA{G: 0x55, A: 0xff}
	img.Draw(image.Rect(2, 2, 4, 4), image.NewUniform(green), image.Point{}, draw.Src)
	want := RGB888ToRGB565(0, 0x55, 0)
	if got := img.Pix[img.PixOffset(3, 3)]; got != want {
		t.Errorf("pixel (3,3) = %v, want %v", got, want)
	}
	if got := img.Pix[img.PixOffset(4, 4)]; got != (Color{}) {
		t.Errorf("pixel (4,4) = %v, want untouched", got)
	}
	// Transparent uniforms leave the destination alone.
	img.Draw(img.Bounds(), image.NewUniform(color.NRGBA{}), image.Point{}, draw.Over)
	if got := img.Pix[img.PixOffset(3, 3)]; got != want {
		t.Errorf("transparent draw changed pixel to %v", got)
	}
}
