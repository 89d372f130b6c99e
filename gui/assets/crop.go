package assets

import "image"

// opaqueBounds returns the bounds of the pixels in img that are not
// fully transparent. The result is empty for a transparent image.
func opaqueBounds(img image.RGBA64Image) image.Rectangle {
	var r image.Rectangle
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBA64At(x, y).A == 0 {
				continue
			}
			r = r.Union(image.Rect(x, y, x+1, y+1))
		}
	}
	return r
}
