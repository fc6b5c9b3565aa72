package razorpay_service

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiInterfaces "github.com/voxtmault/ifsc-integration/interfaces"
	"github.com/voxtmault/ifsc-integration/metrics"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	"github.com/voxtmault/ifsc-integration/razorpay"
	"github.com/voxtmault/ifsc-integration/tracing"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

type RazorpayService struct {

	// Dependency Injection
	Egress  iiInterfaces.RequestEgress
	Logger  iiInterfaces.EgressLogger
	Metrics *metrics.LookupMetrics
	Tracer  trace.Tracer

	// Configs
	Config *iiConfig.IFSCConfig
}

var _ iiInterfaces.Lookup = &RazorpayService{}

type Option func(*RazorpayService)

func WithEgressLogger(logger iiInterfaces.EgressLogger) Option {
	return func(s *RazorpayService) { s.Logger = logger }
}

func WithMetrics(m *metrics.LookupMetrics) Option {
	return func(s *RazorpayService) { s.Metrics = m }
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *RazorpayService) { s.Tracer = tracer }
}

func NewRazorpayService(egress iiInterfaces.RequestEgress, config *iiConfig.IFSCConfig, opts ...Option) *RazorpayService {
	s := &RazorpayService{
		Egress: egress,
		Config: config,
		Tracer: otel.Tracer(tracing.TracerName),
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// Lookup issues a single GET for the uppercased code and classifies the result. Errors are
// recovered here and reported as a Failure outcome.
func (s *RazorpayService) Lookup(ctx context.Context, code string) (outcome *iiModels.LookupOutcome) {
	code = iiUtil.NormalizeCode(code)

	ctx, span := s.Tracer.Start(ctx, "ifsc.lookup", trace.WithAttributes(attribute.String("ifsc.code", code)))
	defer span.End()

	entry := &iiModels.EgressLog{
		ID:         uuid.New().String(),
		BeginAt:    time.Now(),
		HTTPMethod: http.MethodGet,
		Code:       code,
	}

	s.Metrics.Begin()
	defer func() {
		if r := recover(); r != nil {
			slog.Error("recovered from panic during lookup", "reason", r)
			outcome = iiModels.Failure(iiModels.UnknownIssue, nil)
		}

		s.Metrics.End()
		s.Metrics.RecordLookup(outcome.Label(), time.Since(entry.BeginAt))

		span.SetAttributes(attribute.String("ifsc.outcome", outcome.Label()))
		if !outcome.IsSuccess() {
			span.SetStatus(codes.Error, outcome.Label())
		}

		entry.Outcome = outcome.Label()
		if s.Logger != nil {
			s.Logger.LogRequest(entry)
		}
	}()

	request, err := s.Egress.GenerateLookupRequest(ctx, code)
	if err != nil {
		slog.Debug("error building lookup request", "error", err)
		span.RecordError(err)
		return iiModels.Failure(iiModels.UnknownIssue, nil)
	}
	entry.URI = request.URL.String()

	slog.Debug("Sending Request", "code", code)
	response, err := s.Egress.RequestHandler(ctx, request)
	entry.EndAt = time.Now()
	if err != nil {
		kind := razorpay.ClassifyTransportError(err)
		slog.Debug("error sending request", "error", err, "kind", kind)
		span.RecordError(err)
		return iiModels.Failure(kind, nil)
	}

	entry.ResponseCode = response.StatusCode
	entry.ResponseBody = string(response.Body)
	span.SetAttributes(attribute.Int("http.response.status_code", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		slog.Debug("Non-2xx response from lookup API", "status", response.Status)
		return iiModels.Failure(iiModels.UnknownIssue, reasonPhrase(response))
	}

	body := bytes.TrimSpace(response.Body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		slog.Debug("Lookup API returned success without a body")
		return iiModels.Failure(iiModels.UnknownIssue, nil)
	}

	var obj iiModels.BankDetails
	if err = json.Unmarshal(body, &obj); err != nil {
		err = eris.Wrap(err, "unmarshalling lookup response")
		slog.Debug("error unmarshalling response", "error", err)
		span.RecordError(err)
		return iiModels.Failure(iiModels.UnknownIssue, nil)
	}

	return iiModels.Success(obj)
}

// reasonPhrase extracts the reason text from the status line, falling back to the standard text
// for the code. Nil when neither is known.
func reasonPhrase(response *iiModels.RawResponse) *string {
	reason := strings.TrimSpace(strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode)))
	if reason == "" {
		reason = http.StatusText(response.StatusCode)
	}
	if reason == "" {
		return nil
	}
	return &reason
}
