// command stepface runs the step counting watch face.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"stepface.dev/config"
	"stepface.dev/gui"
	"stepface.dev/health"
	"stepface.dev/health/history"
	"stepface.dev/watchface"
)

// Version is set by the Go linker with -ldflags='-X main.Version=...'.
var Version string

var (
	configFile = flag.String("config", "", "configuration file")
	debug      = flag.Bool("debug", false, "log frame timings")
)

func main() {
	flag.Parse()
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "stepface: %v\n", err)
		os.Exit(2)
	}
}

func run() error {
	log.SetFlags(log.Flags() &^ (log.Ldate | log.Ltime))
	if Version != "" {
		log.Printf("stepface %s", Version)
	}
	cfg, err := config.Load(*configFile)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	store, closeStore, err := openStore(cfg.Health.Database)
	if err != nil {
		return err
	}
	defer closeStore()
	steps := health.NewService(store, time.Now)
	if err := startSteps(ctx, cfg.Health, steps); err != nil {
		return err
	}

	dims := image.Pt(cfg.Display.Width, cfg.Display.Height)
	disp, err := openDisplay(cfg.Display, dims)
	if err != nil {
		return err
	}
	defer disp.Close()

	host := gui.NewHost(disp, dims, gui.SystemClock{Use24h: cfg.Is24h()})
	host.Debug = *debug
	watchOverlay(ctx, host)

	face := watchface.New(steps)
	if err := face.Init(host); err != nil {
		return err
	}
	if err := host.Run(ctx); err != nil {
		return err
	}
	return face.Deinit()
}

func openStore(path string) (health.Store, func(), error) {
	if path == "" {
		return health.NewMemStore(), func() {}, nil
	}
	s, err := history.Open(path)
	if err != nil {
		return nil, nil, err
	}
	if n, err := s.Prune(time.Now()); err != nil {
		log.Printf("stepface: %v", err)
	} else if n > 0 {
		log.Printf("stepface: pruned %d old step samples", n)
	}
	return s, func() { s.Close() }, nil
}
