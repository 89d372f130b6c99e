package gui

import "image/color"

// The display palette. The panel shows 2 bits per channel, so the
// palette sticks to those levels.
var (
	ColorClear     = color.NRGBA{}
	ColorBlack     = rgb(0x000000)
	ColorWhite     = rgb(0xffffff)
	ColorDarkGreen = rgb(0x005500)
)

func rgb(c uint32) color.NRGBA {
	return argb(0xff000000 | c)
}

func argb(c uint32) color.NRGBA {
	return color.NRGBA{A: uint8(c >> 24), R: uint8(c >> 16), G: uint8(c >> 8), B: uint8(c)}
}
