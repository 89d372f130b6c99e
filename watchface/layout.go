package watchface

import (
	"image"

	"stepface.dev/gui"
	"stepface.dev/gui/layout"
	"stepface.dev/gui/text"
)

const (
	barHeight = 40
	logoWidth = 45
)

// regions are the face rectangles for an unobstructed area.
type regions struct {
	logo, date, time, steps image.Rectangle
}

func layoutRegions(bounds image.Rectangle) regions {
	r := layout.Rectangle(bounds)
	h := r.Dy()
	top, _ := r.CutTop(barHeight)
	logo, date := top.CutStart(logoWidth)
	_, steps := r.CutBottom(barHeight)
	tim := r.Band(h/2-25, h/2+5)
	return regions{
		logo:  image.Rectangle(logo),
		date:  image.Rectangle(date),
		time:  image.Rectangle(tim),
		steps: image.Rectangle(steps),
	}
}

// relayout places and styles the regions for the current unobstructed
// area and refreshes their text.
func (f *Face) relayout() {
	if f.state != WindowLoaded {
		return
	}
	rs := layoutRegions(f.window.RootLayer().UnobstructedBounds())

	f.logoLayer.Layer().SetFrame(rs.logo)
	f.logoLayer.SetBitmap(f.logo)
	f.logoLayer.SetBackgroundColor(gui.ColorDarkGreen)
	f.logoLayer.SetCompositingMode(gui.CompOpSet)

	f.dateLayer.Layer().SetFrame(rs.date)
	f.dateLayer.SetBackgroundColor(gui.ColorDarkGreen)
	f.dateLayer.SetTextColor(gui.ColorWhite)
	f.dateLayer.SetFont(f.dateFont)
	f.dateLayer.SetAlignment(text.AlignCenter)
	f.dateLayer.SetText(" ")

	f.timeLayer.Layer().SetFrame(rs.time)
	f.timeLayer.SetBackgroundColor(gui.ColorClear)
	f.timeLayer.SetTextColor(gui.ColorDarkGreen)
	f.timeLayer.SetFont(f.timeFont)
	f.timeLayer.SetAlignment(text.AlignCenter)
	f.timeLayer.SetText(" ")

	f.stepsLayer.Layer().SetFrame(rs.steps)
	f.stepsLayer.SetBackgroundColor(gui.ColorDarkGreen)
	f.stepsLayer.SetTextColor(gui.ColorWhite)
	f.stepsLayer.SetFont(f.stepsFont)
	f.stepsLayer.SetAlignment(text.AlignCenter)
	f.stepsLayer.SetText(" ")

	f.refresh()
}
