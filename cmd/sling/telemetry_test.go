package main

import (
	"bytes"
	"strings"
	"testing"

	"go.opentelemetry.io/otel"

	"github.com/vovakirdan/gravity-sling/internal/config"
	"github.com/vovakirdan/gravity-sling/internal/sling"
)

func TestStartTelemetryDisabled(t *testing.T) {
	var buf bytes.Buffer
	if meter := startTelemetry(config.Settings{}, newLogger(&buf, "test", "info")); meter != nil {
		t.Error("startTelemetry() returned a meter with telemetry off")
	}
	stopTelemetry(nil, newLogger(&buf, "test", "info"))
	if buf.Len() != 0 {
		t.Errorf("unexpected log output %q", buf.String())
	}
}

func TestTelemetryRoundTrip(t *testing.T) {
	prev := otel.GetMeterProvider()
	t.Cleanup(func() { otel.SetMeterProvider(prev) })

	var buf bytes.Buffer
	logger := newLogger(&buf, "test", "info")

	meter := startTelemetry(config.Settings{Telemetry: true}, logger)
	if meter == nil {
		t.Fatal("startTelemetry() = nil, expected a meter")
	}
	meter.Cue(sling.Cue{Kind: sling.CueLaunch, LevelID: 1})
	meter.Cue(sling.Cue{Kind: sling.CueWin, LevelID: 1})

	stopTelemetry(meter, logger)

	out := buf.String()
	if !strings.Contains(out, "cue totals") {
		t.Fatalf("log = %q, expected cue totals", out)
	}
	if !strings.Contains(out, "launch=1") || !strings.Contains(out, "win=1") {
		t.Errorf("log = %q, expected launch=1 and win=1", out)
	}
	if strings.Contains(out, "telemetry shutdown") {
		t.Errorf("shutdown reported an error: %q", out)
	}
}
