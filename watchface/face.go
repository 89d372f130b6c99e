// Package watchface implements a watch face showing the time, the date
// and today's step count next to the daily average.
package watchface

import (
	"errors"
	"fmt"
	"time"

	"golang.org/x/image/font"
	"stepface.dev/font/system"
	"stepface.dev/gui"
	"stepface.dev/gui/assets"
	"stepface.dev/health"
)

// Health is the part of the health service the face reads.
type Health interface {
	SumToday(m health.Metric) int
	SumAveraged(m health.Metric, start, end time.Time, scope health.TimeScope) int
}

type State int

const (
	Uninitialized State = iota
	WindowLoaded
	WindowUnloaded
	Destroyed
)

func (s State) String() string {
	switch s {
	case Uninitialized:
		return "uninitialized"
	case WindowLoaded:
		return "loaded"
	case WindowUnloaded:
		return "unloaded"
	case Destroyed:
		return "destroyed"
	default:
		return fmt.Sprintf("state(%d)", int(s))
	}
}

var errState = errors.New("watchface: invalid state")

type Face struct {
	host   *gui.Host
	health Health
	state  State
	window *gui.Window

	logoLayer  *gui.BitmapLayer
	dateLayer  *gui.TextLayer
	timeLayer  *gui.TextLayer
	stepsLayer *gui.TextLayer
	logo       *assets.Bitmap

	timeFont  font.Face
	dateFont  font.Face
	stepsFont font.Face
}

func New(hs Health) *Face {
	return &Face{health: hs}
}

func (f *Face) State() State {
	return f.state
}

// Init creates the face window, shows it and starts the minute
// ticks.
func (f *Face) Init(host *gui.Host) error {
	if f.state != Uninitialized {
		return fmt.Errorf("%w: init while %v", errState, f.state)
	}
	f.host = host
	w := host.NewWindow()
	w.SetBackgroundColor(gui.ColorWhite)
	w.SetHandlers(gui.WindowHandlers{
		Load:   f.load,
		Unload: f.unload,
	})
	f.window = w
	if err := host.Push(w, true); err != nil {
		w.Destroy()
		f.window = nil
		return fmt.Errorf("watchface: %w", err)
	}
	f.refresh()
	host.SubscribeTicks(gui.MinuteUnit, f.onTick)
	return nil
}

// Deinit destroys the window. The minute tick subscription stays
// until the host loop exits.
func (f *Face) Deinit() error {
	if f.window == nil {
		return fmt.Errorf("%w: deinit while %v", errState, f.state)
	}
	err := f.window.Destroy()
	f.window = nil
	f.state = Destroyed
	return err
}

func (f *Face) load(w *gui.Window) (err error) {
	defer func() {
		if err != nil {
			f.release()
		}
	}()
	if f.timeFont, err = system.Get(system.Leco42Numbers); err != nil {
		return err
	}
	if f.dateFont, err = system.Get(system.Gothic28Bold); err != nil {
		return err
	}
	if f.stepsFont, err = system.Get(system.Gothic18Bold); err != nil {
		return err
	}
	if f.logo, err = assets.Load(assets.LogoShrunk); err != nil {
		return err
	}
	root := w.RootLayer()
	bounds := root.UnobstructedBounds()
	if f.logoLayer, err = f.host.NewBitmapLayer(bounds); err != nil {
		return err
	}
	root.AddChild(f.logoLayer.Layer())
	if f.dateLayer, err = f.host.NewTextLayer(bounds); err != nil {
		return err
	}
	root.AddChild(f.dateLayer.Layer())
	if f.timeLayer, err = f.host.NewTextLayer(bounds); err != nil {
		return err
	}
	root.AddChild(f.timeLayer.Layer())
	if f.stepsLayer, err = f.host.NewTextLayer(bounds); err != nil {
		return err
	}
	root.AddChild(f.stepsLayer.Layer())

	f.host.SubscribeUnobstructed(gui.UnobstructedHandlers{
		Change: f.onAreaChange,
	})
	f.state = WindowLoaded
	f.relayout()
	return nil
}

func (f *Face) unload(w *gui.Window) {
	f.release()
	f.host.UnsubscribeUnobstructed()
	f.state = WindowUnloaded
}

// release destroys the regions and the logo that exist.
func (f *Face) release() {
	if f.logoLayer != nil {
		f.logoLayer.Destroy()
		f.logoLayer = nil
	}
	for _, l := range []**gui.TextLayer{&f.dateLayer, &f.timeLayer, &f.stepsLayer} {
		if *l != nil {
			(*l).Destroy()
			*l = nil
		}
	}
	if f.logo != nil {
		f.logo.Destroy()
		f.logo = nil
	}
}

func (f *Face) onTick(t time.Time, changed gui.TimeUnits) {
	f.refresh()
}

func (f *Face) onAreaChange(progress gui.AnimationProgress) {
	f.relayout()
}

func (f *Face) refresh() {
	f.updateDate()
	f.updateTime()
	f.updateSteps()
}

func (f *Face) updateTime() {
	if f.timeLayer == nil {
		return
	}
	clk := f.host.Clock()
	f.timeLayer.SetText(FormatTime(clk.Now(), clk.Is24h()))
}

func (f *Face) updateDate() {
	if f.dateLayer == nil {
		return
	}
	f.dateLayer.SetText(FormatDate(f.host.Clock().Now()))
}

func (f *Face) updateSteps() {
	if f.stepsLayer == nil {
		return
	}
	now := f.host.Clock().Now()
	today := f.health.SumToday(health.StepCount)
	avg := f.health.SumAveraged(health.StepCount, health.StartOfDay(now), now, health.ScopeDaily)
	f.stepsLayer.SetText(FormatSteps(today, avg))
}
