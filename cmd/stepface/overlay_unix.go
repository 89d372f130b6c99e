//go:build unix

package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"stepface.dev/gui"
)

// overlayHeight is the height of the simulated notification overlay.
const overlayHeight = 32

// watchOverlay toggles a system overlay at the bottom of the display
// on every SIGUSR1.
func watchOverlay(ctx context.Context, host *gui.Host) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGUSR1)
	full := host.Display()
	go func() {
		defer signal.Stop(sigs)
		shown := false
		for {
			select {
			case <-ctx.Done():
				return
			case <-sigs:
			}
			shown = !shown
			area := full
			if shown {
				area.Max.Y -= overlayHeight
			}
			host.SetUnobstructed(area)
		}
	}()
}
