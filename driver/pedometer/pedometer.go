// package pedometer counts steps from the step interrupt line of an
// accelerometer with a hardware step detector.
package pedometer

import (
	"context"
	"fmt"
	"log"
	"time"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"
)

// Recorder receives counted steps.
type Recorder interface {
	Record(t time.Time, n uint32) error
}

const (
	debounceTimeout = 5 * time.Millisecond
	// pollTimeout bounds waits so cancellation is noticed.
	pollTimeout = 500 * time.Millisecond
)

// Open configures the named pin and counts a step for every low pulse
// until ctx is done.
func Open(ctx context.Context, pin string, rec Recorder) error {
	if _, err := host.Init(); err != nil {
		return fmt.Errorf("pedometer: %w", err)
	}
	p := gpioreg.ByName(pin)
	if p == nil {
		return fmt.Errorf("pedometer: no such pin: %q", pin)
	}
	return Start(ctx, p, rec, time.Now)
}

// Start counts steps from an already resolved pin.
func Start(ctx context.Context, pin gpio.PinIn, rec Recorder, now func() time.Time) error {
	if err := pin.In(gpio.PullUp, gpio.BothEdges); err != nil {
		return fmt.Errorf("pedometer: %w", err)
	}
	go count(ctx, pin, rec, now)
	return nil
}

func count(ctx context.Context, pin gpio.PinIn, rec Recorder, now func() time.Time) {
	active := false
	newActive := false
	for ctx.Err() == nil {
		// Wait for an edge, except if we're waiting for the
		// debounce timeout.
		timeout := debounceTimeout
		if newActive == active {
			timeout = pollTimeout
		}
		if pin.WaitForEdge(timeout) {
			newActive = pin.Read() == gpio.Low
			continue
		}
		if newActive == active {
			continue
		}
		active = newActive
		if !active {
			continue
		}
		if err := rec.Record(now(), 1); err != nil {
			log.Printf("pedometer: %v", err)
		}
	}
}
