package main

import (
	"context"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/gravity-sling/internal/config"
	"github.com/vovakirdan/gravity-sling/internal/telemetry"
)

const telemetryService = "sling"

// startTelemetry installs a cue meter when telemetry is enabled. It returns
// nil when disabled or when the meter cannot be built.
func startTelemetry(settings config.Settings, logger *log.Logger) *telemetry.CueMeter {
	if !settings.Telemetry {
		return nil
	}
	meter, err := telemetry.NewCueMeter(telemetryService)
	if err != nil {
		logger.Warn("telemetry disabled", "error", err)
		return nil
	}
	meter.Install()
	return meter
}

// stopTelemetry logs the collected cue totals and shuts the meter down.
func stopTelemetry(meter *telemetry.CueMeter, logger *log.Logger) {
	if meter == nil {
		return
	}
	logger.Info("cue totals", meter.Summary()...)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := meter.Shutdown(ctx); err != nil {
		logger.Warn("telemetry shutdown", "error", err)
	}
}
