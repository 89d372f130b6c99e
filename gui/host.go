// Package gui is the windowing framework the watch face runs on: a
// window stack with layer trees, tick and unobstructed area services,
// and a single goroutine event loop rendering to an LCD.
package gui

import (
	"context"
	"fmt"
	"image"
	"image/draw"
	"log"
	"slices"
	"sync"
	"time"

	"stepface.dev/gui/op"
	"stepface.dev/gui/widget"
)

// Clock is the wall clock and the user's clock preferences.
type Clock interface {
	Now() time.Time
	// Is24h reports whether the user prefers the 24 hour format.
	Is24h() bool
}

// SystemClock is the local wall clock.
type SystemClock struct {
	Use24h bool
}

func (c SystemClock) Now() time.Time {
	return time.Now()
}

func (c SystemClock) Is24h() bool {
	return c.Use24h
}

type LCD interface {
	Framebuffer() draw.RGBA64Image
	Dirty(sr image.Rectangle) error
}

type Host struct {
	// Debug enables frame timing logs.
	Debug bool
	// MaxLayers limits the number of live layers. Zero means no limit.
	MaxLayers int

	clock   Clock
	lcd     LCD
	display image.Rectangle
	area    image.Rectangle
	stack   []*Window
	live    int
	root    op.Ops

	ticks       tickService
	obstruction unobstructedService

	mu          sync.Mutex
	pendingArea *image.Rectangle
	wake        chan struct{}
}

// NewHost creates a host for a display of the given size. lcd may be
// nil for a host that never renders.
func NewHost(lcd LCD, dims image.Point, clock Clock) *Host {
	display := image.Rectangle{Max: dims}
	return &Host{
		clock:   clock,
		lcd:     lcd,
		display: display,
		area:    display,
		wake:    make(chan struct{}, 1),
	}
}

func (h *Host) Clock() Clock {
	return h.clock
}

// Display returns the full display rectangle.
func (h *Host) Display() image.Rectangle {
	return h.display
}

// LiveLayers returns the number of allocated layers not yet destroyed.
func (h *Host) LiveLayers() int {
	return h.live
}

func (h *Host) alloc() error {
	if h.MaxLayers > 0 && h.live >= h.MaxLayers {
		return ErrNoMemory
	}
	h.live++
	return nil
}

func (h *Host) free() {
	h.live--
}

func (h *Host) wakeup() {
	select {
	case h.wake <- struct{}{}:
	default:
	}
}

// Top returns the top window of the stack, or nil.
func (h *Host) Top() *Window {
	if len(h.stack) == 0 {
		return nil
	}
	return h.stack[len(h.stack)-1]
}

// pushSteps is the number of frames in the push animation.
const pushSteps = 6

// Push loads w if necessary and makes it the top window. An animated
// push slides the window in from the bottom edge.
func (h *Host) Push(w *Window, animated bool) error {
	if w.destroyed {
		return fmt.Errorf("gui: push: %w", ErrDestroyed)
	}
	if slices.Contains(h.stack, w) {
		return nil
	}
	if err := w.load(); err != nil {
		return fmt.Errorf("gui: load window: %w", err)
	}
	if top := h.Top(); top != nil && top.handlers.Disappear != nil {
		top.handlers.Disappear(top)
	}
	h.stack = append(h.stack, w)
	if w.handlers.Appear != nil {
		w.handlers.Appear(w)
	}
	if animated && h.lcd != nil {
		dy := h.display.Dy()
		for i := pushSteps - 1; i > 0; i-- {
			h.render(image.Pt(0, dy*i/pushSteps))
		}
	}
	h.render(image.Point{})
	return nil
}

// Pop removes and unloads the top window.
func (h *Host) Pop() *Window {
	w := h.Top()
	if w != nil {
		h.Remove(w)
	}
	return w
}

// Remove takes w off the stack and unloads it.
func (h *Host) Remove(w *Window) {
	i := slices.Index(h.stack, w)
	if i < 0 {
		return
	}
	top := i == len(h.stack)-1
	if top && w.handlers.Disappear != nil {
		w.handlers.Disappear(w)
	}
	h.stack = slices.Delete(h.stack, i, i+1)
	w.unload()
	if next := h.Top(); top && next != nil && next.handlers.Appear != nil {
		next.handlers.Appear(next)
	}
	h.render(image.Point{})
}

// render draws the top window, translated by off, and flushes the
// changed area to the LCD.
func (h *Host) render(off image.Point) {
	if h.lcd == nil {
		return
	}
	start := time.Now()
	ops := h.root.Reset()
	fb := h.lcd.Framebuffer()
	widget.Fill(ops, fb.Bounds(), ColorBlack)
	if w := h.Top(); w != nil {
		widget.Fill(ops, w.root.frame.Add(off), w.bgColor)
		w.root.render(ops, off.Sub(w.root.frame.Min))
	}
	layoutTime := time.Now()
	dirty := h.root.Draw(fb)
	renderTime := time.Now()
	if dirty.Empty() {
		return
	}
	if err := h.lcd.Dirty(dirty); err != nil {
		log.Printf("gui: lcd: %v", err)
	}
	drawTime := time.Now()
	if h.Debug {
		log.Printf("frame: %v layout: %v render: %v draw: %v %v",
			drawTime.Sub(start), layoutTime.Sub(start), renderTime.Sub(layoutTime), drawTime.Sub(renderTime), dirty)
	}
}

// Run is the event loop. It dispatches ticks and unobstructed area
// changes one at a time until ctx is done, and then drops every
// subscription.
func (h *Host) Run(ctx context.Context) error {
	defer func() {
		h.UnsubscribeTicks()
		h.UnsubscribeUnobstructed()
	}()
	h.render(image.Point{})
	for {
		// Catch up on a rollover that happened while dispatching.
		h.Tick(h.clock.Now())
		var timeout <-chan time.Time
		var timer *time.Timer
		if h.ticks.handler != nil {
			now := h.clock.Now()
			timer = time.NewTimer(nextTick(now, h.ticks.units).Sub(now))
			timeout = timer.C
		}
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-timeout:
			h.Tick(h.clock.Now())
		case <-h.wake:
			if timer != nil {
				timer.Stop()
			}
			if r, ok := h.takePendingArea(); ok {
				h.ChangeUnobstructed(r)
			}
		}
		h.render(image.Point{})
	}
}
