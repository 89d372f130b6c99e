package gui

import (
	"fmt"
	"image/color"
)

// WindowHandlers are called by the host as the window moves through
// the window stack. Load runs before the window is first shown; an
// error aborts the push.
type WindowHandlers struct {
	Load      func(w *Window) error
	Appear    func(w *Window)
	Disappear func(w *Window)
	Unload    func(w *Window)
}

type Window struct {
	host      *Host
	root      Layer
	bgColor   color.NRGBA
	handlers  WindowHandlers
	loaded    bool
	destroyed bool
}

// NewWindow creates a window covering the whole display.
func (h *Host) NewWindow() *Window {
	w := &Window{
		host:    h,
		bgColor: ColorWhite,
	}
	w.root.frame = h.display
	w.root.window = w
	return w
}

func (w *Window) RootLayer() *Layer {
	return &w.root
}

func (w *Window) BackgroundColor() color.NRGBA {
	return w.bgColor
}

func (w *Window) SetBackgroundColor(c color.NRGBA) {
	w.bgColor = c
}

func (w *Window) SetHandlers(h WindowHandlers) {
	w.handlers = h
}

// Loaded reports whether the Load handler has run without a matching
// Unload.
func (w *Window) Loaded() bool {
	return w.loaded
}

func (w *Window) load() error {
	if w.loaded {
		return nil
	}
	if w.handlers.Load != nil {
		if err := w.handlers.Load(w); err != nil {
			return err
		}
	}
	w.loaded = true
	return nil
}

func (w *Window) unload() {
	if !w.loaded {
		return
	}
	w.loaded = false
	if w.handlers.Unload != nil {
		w.handlers.Unload(w)
	}
}

// Destroy removes the window from the stack, unloading it, and
// releases it.
func (w *Window) Destroy() error {
	if w.destroyed {
		return fmt.Errorf("gui: window: %w", ErrDestroyed)
	}
	w.host.Remove(w)
	w.destroyed = true
	return nil
}
