package watchface

import (
	"context"
	"errors"
	"image"
	"image/draw"
	"testing"
	"time"

	"stepface.dev/gui"
	"stepface.dev/gui/assets"
	"stepface.dev/gui/text"
	"stepface.dev/health"
	"stepface.dev/image/rgb565"
)

type lcd struct {
	fb *rgb565.Image
}

func (l *lcd) Framebuffer() draw.RGBA64Image {
	return l.fb
}

func (l *lcd) Dirty(image.Rectangle) error {
	return nil
}

type clock struct {
	now   time.Time
	use24 bool
}

func (c *clock) Now() time.Time {
	return c.now
}

func (c *clock) Is24h() bool {
	return c.use24
}

type fakeHealth struct {
	today, avg int
	scopes     []health.TimeScope
}

func (h *fakeHealth) SumToday(m health.Metric) int {
	return h.today
}

func (h *fakeHealth) SumAveraged(m health.Metric, start, end time.Time, scope health.TimeScope) int {
	h.scopes = append(h.scopes, scope)
	return h.avg
}

func newFace(t *testing.T) (*Face, *gui.Host, *clock, *fakeHealth) {
	t.Helper()
	dims := image.Pt(180, 180)
	clk := &clock{now: time.Date(2024, 3, 5, 14, 7, 0, 0, time.UTC), use24: true}
	host := gui.NewHost(&lcd{fb: rgb565.New(image.Rectangle{Max: dims})}, dims, clk)
	hs := &fakeHealth{today: 1532, avg: 980}
	return New(hs), host, clk, hs
}

func TestScenario(t *testing.T) {
	f, host, _, hs := newFace(t)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	if f.State() != WindowLoaded {
		t.Errorf("state = %v, want %v", f.State(), WindowLoaded)
	}
	if got, want := f.timeLayer.Text(), "14:07"; got != want {
		t.Errorf("time = %q, want %q", got, want)
	}
	if got, want := f.dateLayer.Text(), "03-05-24"; got != want {
		t.Errorf("date = %q, want %q", got, want)
	}
	if got, want := f.stepsLayer.Text(), "Steps: 1532\nAvg: 980"; got != want {
		t.Errorf("steps = %q, want %q", got, want)
	}
	for _, s := range hs.scopes {
		if s != health.ScopeDaily {
			t.Errorf("average scope = %d, want daily", s)
		}
	}
	checkFrames(t, f, regions{
		logo:  image.Rect(0, 0, 45, 40),
		date:  image.Rect(45, 0, 180, 40),
		time:  image.Rect(0, 65, 180, 160),
		steps: image.Rect(0, 140, 180, 180),
	})
	if got := f.logoLayer.Bitmap(); got != f.logo || got == nil {
		t.Errorf("logo bitmap = %v, want the loaded logo", got)
	}
	if f.logoLayer.CompositingMode() != gui.CompOpSet {
		t.Errorf("logo compositing = %v, want set", f.logoLayer.CompositingMode())
	}
	if f.timeLayer.BackgroundColor() != gui.ColorClear || f.timeLayer.TextColor() != gui.ColorDarkGreen {
		t.Error("time region colors")
	}
	for _, l := range []*gui.TextLayer{f.dateLayer, f.stepsLayer} {
		if l.BackgroundColor() != gui.ColorDarkGreen || l.TextColor() != gui.ColorWhite {
			t.Errorf("region %v colors", l.Layer().Frame())
		}
		if l.Alignment() != text.AlignCenter {
			t.Errorf("region %v alignment = %v", l.Layer().Frame(), l.Alignment())
		}
	}
	if err := f.Deinit(); err != nil {
		t.Fatal(err)
	}
}

func checkFrames(t *testing.T, f *Face, want regions) {
	t.Helper()
	got := regions{
		logo:  f.logoLayer.Layer().Frame(),
		date:  f.dateLayer.Layer().Frame(),
		time:  f.timeLayer.Layer().Frame(),
		steps: f.stepsLayer.Layer().Frame(),
	}
	if got != want {
		t.Errorf("regions = %+v, want %+v", got, want)
	}
}

func TestAreaShrink(t *testing.T) {
	f, host, _, _ := newFace(t)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	defer f.Deinit()
	host.ChangeUnobstructed(image.Rect(0, 0, 180, 148))
	checkFrames(t, f, regions{
		logo:  image.Rect(0, 0, 45, 40),
		date:  image.Rect(45, 0, 180, 40),
		time:  image.Rect(0, 49, 180, 128),
		steps: image.Rect(0, 108, 180, 148),
	})
	for _, l := range []*gui.TextLayer{f.dateLayer, f.timeLayer, f.stepsLayer} {
		if txt := l.Text(); txt == " " || txt == "" {
			t.Errorf("region %v is blank after relayout", l.Layer().Frame())
		}
	}
	host.ChangeUnobstructed(image.Rect(0, 0, 180, 180))
	checkFrames(t, f, regions{
		logo:  image.Rect(0, 0, 45, 40),
		date:  image.Rect(45, 0, 180, 40),
		time:  image.Rect(0, 65, 180, 160),
		steps: image.Rect(0, 140, 180, 180),
	})
}

func TestRelayoutIdempotent(t *testing.T) {
	f, host, _, _ := newFace(t)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	defer f.Deinit()
	type snapshot struct {
		frames regions
		texts  [3]string
	}
	snap := func() snapshot {
		return snapshot{
			frames: regions{
				logo:  f.logoLayer.Layer().Frame(),
				date:  f.dateLayer.Layer().Frame(),
				time:  f.timeLayer.Layer().Frame(),
				steps: f.stepsLayer.Layer().Frame(),
			},
			texts: [3]string{f.dateLayer.Text(), f.timeLayer.Text(), f.stepsLayer.Text()},
		}
	}
	before := snap()
	f.relayout()
	f.relayout()
	if after := snap(); after != before {
		t.Errorf("relayout changed the face: %+v, want %+v", after, before)
	}
}

func TestTick(t *testing.T) {
	f, host, clk, hs := newFace(t)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	frame := f.timeLayer.Layer().Frame()
	clk.now = clk.now.Add(time.Minute)
	hs.today, hs.avg = 1600, 990
	host.Tick(clk.now)
	if got, want := f.timeLayer.Text(), "14:08"; got != want {
		t.Errorf("time = %q, want %q", got, want)
	}
	if got, want := f.stepsLayer.Text(), "Steps: 1600\nAvg: 990"; got != want {
		t.Errorf("steps = %q, want %q", got, want)
	}
	if f.timeLayer.Layer().Frame() != frame {
		t.Error("tick changed the layout")
	}
	clk.now = time.Date(2024, 3, 6, 0, 0, 0, 0, time.UTC)
	host.Tick(clk.now)
	if got, want := f.dateLayer.Text(), "03-06-24"; got != want {
		t.Errorf("date = %q, want %q", got, want)
	}
	if err := f.Deinit(); err != nil {
		t.Fatal(err)
	}
	// Ticks keep arriving until the host loop exits.
	clk.now = clk.now.Add(time.Minute)
	host.Tick(clk.now)
}

func Test12h(t *testing.T) {
	f, host, clk, _ := newFace(t)
	clk.use24 = false
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	defer f.Deinit()
	if got, want := f.timeLayer.Text(), "02:07"; got != want {
		t.Errorf("time = %q, want %q", got, want)
	}
}

func TestLifecycle(t *testing.T) {
	f, host, _, _ := newFace(t)
	bitmaps := assets.Live()
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	if n := host.LiveLayers(); n != 4 {
		t.Errorf("%d live layers after load, want 4", n)
	}
	if n := assets.Live() - bitmaps; n != 1 {
		t.Errorf("%d live bitmaps after load, want 1", n)
	}
	if n := f.window.RootLayer().Children(); n != 4 {
		t.Errorf("root has %d children, want 4", n)
	}
	if err := f.Deinit(); err != nil {
		t.Fatal(err)
	}
	if f.State() != Destroyed {
		t.Errorf("state = %v, want %v", f.State(), Destroyed)
	}
	if n := host.LiveLayers(); n != 0 {
		t.Errorf("%d live layers after unload, want 0", n)
	}
	if n := assets.Live() - bitmaps; n != 0 {
		t.Errorf("%d live bitmaps after unload, want 0", n)
	}
	if host.Top() != nil {
		t.Error("window still on the stack")
	}
	// The area service is no longer routed to the face.
	host.ChangeUnobstructed(image.Rect(0, 0, 180, 148))
	if err := f.Deinit(); err == nil {
		t.Error("second Deinit succeeded")
	}
}

func TestUnloadReload(t *testing.T) {
	f, host, _, _ := newFace(t)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	host.Pop()
	if f.State() != WindowUnloaded {
		t.Errorf("state = %v, want %v", f.State(), WindowUnloaded)
	}
	if n := host.LiveLayers(); n != 0 {
		t.Errorf("%d live layers after pop, want 0", n)
	}
	// Ticks while unloaded are ignored.
	host.Tick(host.Clock().Now().Add(time.Minute))
	if err := host.Push(f.window, false); err != nil {
		t.Fatal(err)
	}
	if f.State() != WindowLoaded || host.LiveLayers() != 4 {
		t.Errorf("reload: state %v, %d layers", f.State(), host.LiveLayers())
	}
	if err := f.Deinit(); err != nil {
		t.Fatal(err)
	}
}

func TestLoadFailure(t *testing.T) {
	f, host, _, _ := newFace(t)
	host.MaxLayers = 2
	bitmaps := assets.Live()
	err := f.Init(host)
	if !errors.Is(err, gui.ErrNoMemory) {
		t.Fatalf("Init = %v, want %v", err, gui.ErrNoMemory)
	}
	if n := host.LiveLayers(); n != 0 {
		t.Errorf("%d live layers after failed load, want 0", n)
	}
	if n := assets.Live() - bitmaps; n != 0 {
		t.Errorf("%d live bitmaps after failed load, want 0", n)
	}
	if host.Top() != nil {
		t.Error("failed window pushed")
	}
}

func TestRunMinuteRollover(t *testing.T) {
	f, host, clk, _ := newFace(t)
	clk.now = time.Date(2024, 3, 5, 14, 7, 59, 900e6, time.UTC)
	if err := f.Init(host); err != nil {
		t.Fatal(err)
	}
	clk.now = time.Date(2024, 3, 5, 14, 8, 0, 100e6, time.UTC)
	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()
	if err := host.Run(ctx); err != nil {
		t.Fatal(err)
	}
	if got, want := f.timeLayer.Text(), "14:08"; got != want {
		t.Errorf("time = %q after the loop ran past the minute, want %q", got, want)
	}
	if err := f.Deinit(); err != nil {
		t.Fatal(err)
	}
}
