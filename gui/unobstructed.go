package gui

import (
	"image"
)

// AnimationProgress runs from 0 to AnimationNormalizedMax.
type AnimationProgress int32

const AnimationNormalizedMax AnimationProgress = 65535

// areaSteps is the number of intermediate areas reported while the
// unobstructed area animates to its new size.
const areaSteps = 8

// UnobstructedHandlers are notified while a system overlay changes the
// unobstructed area. Change runs once per animation step, after the
// area has been updated.
type UnobstructedHandlers struct {
	WillChange func(final image.Rectangle)
	Change     func(progress AnimationProgress)
	DidChange  func()
}

type unobstructedService struct {
	handlers   UnobstructedHandlers
	subscribed bool
}

// SubscribeUnobstructed replaces the unobstructed area handlers.
func (h *Host) SubscribeUnobstructed(handlers UnobstructedHandlers) {
	h.obstruction = unobstructedService{
		handlers:   handlers,
		subscribed: true,
	}
}

func (h *Host) UnsubscribeUnobstructed() {
	h.obstruction = unobstructedService{}
}

// Unobstructed returns the current unobstructed area in display
// coordinates.
func (h *Host) Unobstructed() image.Rectangle {
	return h.area
}

// SetUnobstructed requests a change of the unobstructed area. It is
// safe to call from any goroutine; the running loop applies the
// latest request.
func (h *Host) SetUnobstructed(r image.Rectangle) {
	h.mu.Lock()
	h.pendingArea = &r
	h.mu.Unlock()
	h.wakeup()
}

func (h *Host) takePendingArea() (image.Rectangle, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.pendingArea == nil {
		return image.Rectangle{}, false
	}
	r := *h.pendingArea
	h.pendingArea = nil
	return r, true
}

// ChangeUnobstructed animates the unobstructed area to r, calling the
// subscribed handlers and rendering every step. It must be called from
// the loop goroutine.
func (h *Host) ChangeUnobstructed(r image.Rectangle) {
	r = r.Intersect(h.display)
	from := h.area
	if r == from {
		return
	}
	hs := h.obstruction.handlers
	if h.obstruction.subscribed && hs.WillChange != nil {
		hs.WillChange(r)
	}
	for i := 1; i <= areaSteps; i++ {
		h.area = lerpRect(from, r, i, areaSteps)
		// Handlers may unsubscribe during the animation.
		hs := h.obstruction.handlers
		if h.obstruction.subscribed && hs.Change != nil {
			hs.Change(AnimationProgress(int(AnimationNormalizedMax) * i / areaSteps))
		}
		h.render(image.Point{})
	}
	hs = h.obstruction.handlers
	if h.obstruction.subscribed && hs.DidChange != nil {
		hs.DidChange()
	}
}

func lerpRect(from, to image.Rectangle, i, n int) image.Rectangle {
	lerp := func(a, b int) int {
		return a + (b-a)*i/n
	}
	return image.Rect(
		lerp(from.Min.X, to.Min.X), lerp(from.Min.Y, to.Min.Y),
		lerp(from.Max.X, to.Max.X), lerp(from.Max.Y, to.Max.Y),
	)
}
