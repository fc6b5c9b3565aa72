package tracing

import (
	"context"
	"io"
	"log/slog"
	"os"

	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	"go.opentelemetry.io/otel"
	stdout "go.opentelemetry.io/otel/exporters/stdout/stdouttrace"
	"go.opentelemetry.io/otel/propagation"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

// TracerName is the instrumentation scope used by the lookup service.
const TracerName = "github.com/voxtmault/ifsc-integration"

type TracingProvider struct {
	provider *sdktrace.TracerProvider
	tracer   trace.Tracer
}

// NewProvider installs a global tracer provider. When tracing is disabled a no-op tracer is
// returned and nothing global is touched.
func NewProvider(cfg *iiConfig.TracingConfig, w io.Writer) (*TracingProvider, error) {
	if !cfg.Enabled {
		return &TracingProvider{tracer: noop.NewTracerProvider().Tracer(TracerName)}, nil
	}

	if w == nil {
		w = os.Stdout
	}

	exporter, err := stdout.New(stdout.WithWriter(w), stdout.WithPrettyPrint())
	if err != nil {
		return nil, eris.Wrap(err, "creating span exporter")
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithSampler(sdktrace.AlwaysSample()),
		sdktrace.WithBatcher(exporter),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(propagation.TraceContext{}, propagation.Baggage{}))

	slog.Debug("tracing enabled", "service", cfg.ServiceName)

	return &TracingProvider{
		provider: tp,
		tracer:   tp.Tracer(TracerName),
	}, nil
}

func (tp *TracingProvider) GetTracer() trace.Tracer {
	return tp.tracer
}

func (tp *TracingProvider) Shutdown(ctx context.Context) error {
	if tp.provider == nil {
		return nil
	}
	if err := tp.provider.Shutdown(ctx); err != nil {
		return eris.Wrap(err, "shutting down tracer provider")
	}
	return nil
}
