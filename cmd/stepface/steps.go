package main

import (
	"context"
	"log"

	"stepface.dev/config"
	"stepface.dev/driver/pedometer"
	"stepface.dev/driver/stepserial"
	"stepface.dev/health"
)

// startSteps connects the configured step sensor to the health
// service.
func startSteps(ctx context.Context, cfg config.Health, steps *health.Service) error {
	switch cfg.Source {
	case "gpio":
		return pedometer.Open(ctx, cfg.Pin, steps)
	case "serial":
		dev, err := stepserial.Open(cfg.Device)
		if err != nil {
			return err
		}
		go func() {
			<-ctx.Done()
			dev.Close()
		}()
		go func() {
			if err := stepserial.Copy(steps, dev); err != nil && ctx.Err() == nil {
				log.Printf("stepface: step sensor: %v", err)
			}
		}()
	}
	return nil
}
