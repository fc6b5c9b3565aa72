package ifsc_integration

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiLogger "github.com/voxtmault/ifsc-integration/logger"
	"github.com/voxtmault/ifsc-integration/metrics"
	razorpayRequest "github.com/voxtmault/ifsc-integration/razorpay/request"
	razorpayService "github.com/voxtmault/ifsc-integration/razorpay/service"
	"github.com/voxtmault/ifsc-integration/tracing"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
)

// IFSCIntegration bundles the lookup service with the infrastructure it was built on.
type IFSCIntegration struct {
	Config   *iiConfig.InternalConfig
	Service  *razorpayService.RazorpayService
	Logger   *iiLogger.EgressLogger
	Metrics  *metrics.LookupMetrics
	Registry *prometheus.Registry
	Tracing  *tracing.TracingProvider
}

// InitIFSCService loads the configuration from envPath and wires the lookup service. Logs and
// spans go to stderr so stdout stays free for rendered results.
func InitIFSCService(envPath string) (*IFSCIntegration, error) {
	// Load Configs
	cfg := iiConfig.New(envPath)
	iiUtil.InitValidator()

	slog.SetDefault(iiLogger.NewSlog(cfg, os.Stderr))

	if err := ValidateConfig(context.Background(), cfg); err != nil {
		return nil, eris.Wrap(err, "validating configuration")
	}

	client, err := iiUtil.NewHTTPClient(cfg.RequestTimeout, cfg.ProxyAddress)
	if err != nil {
		return nil, eris.Wrap(err, "init http client")
	}

	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	lookupMetrics, err := metrics.NewLookupMetrics(registry)
	if err != nil {
		return nil, eris.Wrap(err, "init lookup metrics")
	}

	tp, err := tracing.NewProvider(&cfg.TracingConfig, os.Stderr)
	if err != nil {
		return nil, eris.Wrap(err, "init tracing")
	}

	logger := iiLogger.InitLogger(slog.Default())

	service := razorpayService.NewRazorpayService(
		razorpayRequest.NewRazorpayEgress(&cfg.IFSCConfig, client),
		&cfg.IFSCConfig,
		razorpayService.WithEgressLogger(logger),
		razorpayService.WithMetrics(lookupMetrics),
		razorpayService.WithTracer(tp.GetTracer()),
	)

	return &IFSCIntegration{
		Config:   cfg,
		Service:  service,
		Logger:   logger,
		Metrics:  lookupMetrics,
		Registry: registry,
		Tracing:  tp,
	}, nil
}

// Close flushes pending egress logs and spans.
func (i *IFSCIntegration) Close(ctx context.Context) error {
	i.Logger.CloseLogger()

	var errs []error
	if err := i.Tracing.Shutdown(ctx); err != nil {
		errs = append(errs, err)
	}

	return errors.Join(errs...)
}
