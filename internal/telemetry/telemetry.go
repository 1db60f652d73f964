// Package telemetry counts gameplay cues with OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/vovakirdan/gravity-sling/internal/sling"
)

const instrumentationName = "github.com/vovakirdan/gravity-sling/internal/telemetry"

// Instrument names.
const (
	CueCounter     = "sling.cues"
	OutcomeCounter = "sling.outcomes"
)

// Outcome attribute values.
const (
	OutcomeWin  = "win"
	OutcomeFail = "fail"
)

// CueMeter is a sling.CueSink that counts cues and level outcomes on its
// own SDK meter provider. Totals are read back through a manual reader.
// It is safe to share between sessions.
type CueMeter struct {
	provider *sdkmetric.MeterProvider
	reader   *sdkmetric.ManualReader

	cues     metric.Int64Counter
	outcomes metric.Int64Counter
}

// Totals are the cumulative counter values collected from the reader.
type Totals struct {
	Cues  map[string]int64
	Wins  int64
	Fails int64
}

// NewCueMeter creates a meter provider for serviceName and the cue
// instruments on it. Call Shutdown when done.
func NewCueMeter(serviceName string) (*CueMeter, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(semconv.ServiceName(serviceName)),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot create resource: %w", err)
	}

	reader := sdkmetric.NewManualReader()
	provider := sdkmetric.NewMeterProvider(
		sdkmetric.WithResource(res),
		sdkmetric.WithReader(reader),
	)
	m := provider.Meter(instrumentationName)

	cm := &CueMeter{provider: provider, reader: reader}

	cm.cues, err = m.Int64Counter(
		CueCounter,
		metric.WithDescription("Gameplay cues emitted by sessions"),
		metric.WithUnit("{cue}"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot create cue counter: %w", err)
	}

	cm.outcomes, err = m.Int64Counter(
		OutcomeCounter,
		metric.WithDescription("Finished level attempts by outcome"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("telemetry: cannot create outcome counter: %w", err)
	}

	return cm, nil
}

// Install makes the meter's provider the global OpenTelemetry provider.
func (cm *CueMeter) Install() {
	otel.SetMeterProvider(cm.provider)
}

// Cue implements sling.CueSink.
func (cm *CueMeter) Cue(c sling.Cue) {
	ctx := context.Background()
	cm.cues.Add(ctx, 1, metric.WithAttributes(attribute.String("cue", c.Kind.String())))

	switch c.Kind {
	case sling.CueWin:
		cm.outcomes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", OutcomeWin),
			attribute.Int("level", c.LevelID),
		))
	case sling.CueFail:
		cm.outcomes.Add(ctx, 1, metric.WithAttributes(
			attribute.String("outcome", OutcomeFail),
			attribute.Int("level", c.LevelID),
			attribute.String("reason", c.Reason),
		))
	}
}

// Collect reads the cumulative counter values.
func (cm *CueMeter) Collect(ctx context.Context) (Totals, error) {
	t := Totals{Cues: make(map[string]int64)}

	var rm metricdata.ResourceMetrics
	if err := cm.reader.Collect(ctx, &rm); err != nil {
		return t, fmt.Errorf("telemetry: cannot collect metrics: %w", err)
	}

	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			sum, ok := m.Data.(metricdata.Sum[int64])
			if !ok {
				continue
			}
			for _, dp := range sum.DataPoints {
				switch m.Name {
				case CueCounter:
					if v, ok := dp.Attributes.Value("cue"); ok {
						t.Cues[v.AsString()] += dp.Value
					}
				case OutcomeCounter:
					v, _ := dp.Attributes.Value("outcome")
					switch v.AsString() {
					case OutcomeWin:
						t.Wins += dp.Value
					case OutcomeFail:
						t.Fails += dp.Value
					}
				}
			}
		}
	}
	return t, nil
}

// Count returns how many cues of kind k were recorded, or 0 if the
// metrics cannot be collected.
func (cm *CueMeter) Count(k sling.CueKind) int64 {
	t, err := cm.Collect(context.Background())
	if err != nil {
		return 0
	}
	return t.Cues[k.String()]
}

// Summary returns the per-kind totals as log key/value pairs.
func (cm *CueMeter) Summary() []any {
	t, err := cm.Collect(context.Background())
	if err != nil {
		return []any{"error", err}
	}

	kinds := []sling.CueKind{sling.CueLaunch, sling.CueBurn, sling.CuePickup, sling.CueHit, sling.CueWin, sling.CueFail}
	kv := make([]any, 0, len(kinds)*2)
	for _, k := range kinds {
		kv = append(kv, k.String(), t.Cues[k.String()])
	}
	return kv
}

// Shutdown stops the meter provider. Collect fails afterwards.
func (cm *CueMeter) Shutdown(ctx context.Context) error {
	if err := cm.provider.Shutdown(ctx); err != nil {
		return fmt.Errorf("telemetry: shutdown failed: %w", err)
	}
	return nil
}
