package op

import (
	"image"
	"image/color"

	"golang.org/x/image/draw"
	"stepface.dev/image/rgb565"
)

func drawImage(dst draw.Image, dr image.Rectangle, src image.Image, sp image.Point, op draw.Op) {
	// Optimize special cases.
	if fb, ok := dst.(*rgb565.Image); ok {
		fb.Draw(dr, src, sp, op)
		return
	}
	// General case.
	draw.Draw(dst, dr, src, sp, op)
}

// drawMask draws src through mask with draw.Over.
func drawMask(dst draw.Image, dr image.Rectangle, src *image.Uniform, mask image.Image, maskOff image.Point) {
	// Optimize special cases.
	if fb, ok := dst.(*rgb565.Image); ok {
		if mask, ok := mask.(*image.Alpha); ok {
			r, g, b, a := src.C.RGBA()
			col := color.RGBA{R: uint8(r >> 8), G: uint8(g >> 8), B: uint8(b >> 8), A: uint8(a >> 8)}
			drawAlphaUniformOver(fb, dr, col, mask, maskOff)
			return
		}
	}
	// General case.
	draw.DrawMask(dst, dr, src, image.Point{}, mask, maskOff, draw.Over)
}

func drawAlphaUniformOver(dst *rgb565.Image, dr image.Rectangle, src color.RGBA, mask *image.Alpha, maskOff image.Point) {
	maxx := dr.Dx()
	dstPix := dst.Pix
	for y := 0; y < dr.Dy(); y++ {
		dstOff := dst.PixOffset(dr.Min.X, dr.Min.Y+y)
		dstPix := dstPix[dstOff : dstOff+maxx]
		maskOff := mask.PixOffset(maskOff.X, maskOff.Y+y)
		maskPix := mask.Pix[maskOff : maskOff+maxx]
		for x := range maxx {
			a := uint16(maskPix[x])
			if a == 0 {
				continue
			}
			// src is premultiplied.
			s := color.RGBA{
				R: uint8(uint16(src.R) * a / 255),
				G: uint8(uint16(src.G) * a / 255),
				B: uint8(uint16(src.B) * a / 255),
				A: uint8(uint16(src.A) * a / 255),
			}
			dstPix[x] = blend888(dstPix[x], s)
		}
	}
}

func blend888(d rgb565.Color, s color.RGBA) rgb565.Color {
	dr, dg, db := rgb565.RGB565ToRGB888(d)
	a1 := uint16(255 - s.A)
	r, g, b := uint8(uint16(dr)*a1/255)+s.R, uint8(uint16(dg)*a1/255)+s.G, uint8(uint16(db)*a1/255)+s.B
	return rgb565.RGB888ToRGB565(r, g, b)
}
