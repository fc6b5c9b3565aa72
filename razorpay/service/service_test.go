package razorpay_service_test

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/http/httptest"
	"sync"
	"syscall"
	"testing"
	"time"

	"github.com/jarcoal/httpmock"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	"github.com/voxtmault/ifsc-integration/metrics"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	request "github.com/voxtmault/ifsc-integration/razorpay/request"
	service "github.com/voxtmault/ifsc-integration/razorpay/service"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
)

const baseURL = "https://ifsc.razorpay.com"

const fullBody = `{
	"ADDRESS": "KANJURMARG, MUMBAI",
	"BANK": "HDFC Bank",
	"BANKCODE": "HDFC",
	"BRANCH": "KANJURMARG",
	"CENTRE": "MUMBAI",
	"CITY": "MUMBAI",
	"CONTACT": "+912261606161",
	"DISTRICT": "MUMBAI",
	"IFSC": "HDFC0000053",
	"IMPS": true,
	"ISO3166": "IN-MH",
	"MICR": "400240015",
	"NEFT": true,
	"RTGS": true,
	"STATE": "MAHARASHTRA",
	"SWIFT": "",
	"UPI": false
}`

type captureLogger struct {
	mu   sync.Mutex
	logs []*iiModels.EgressLog
}

func (c *captureLogger) LogRequest(log *iiModels.EgressLog) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.logs = append(c.logs, log)
}

func setup(t *testing.T) (*service.RazorpayService, *httpmock.MockTransport) {
	t.Helper()
	iiUtil.InitValidator()

	mt := httpmock.NewMockTransport()
	cfg := &iiConfig.IFSCConfig{BaseURL: baseURL}
	egress := request.NewRazorpayEgress(cfg, &http.Client{Transport: mt})

	return service.NewRazorpayService(egress, cfg), mt
}

func requireFailure(t *testing.T, outcome *iiModels.LookupOutcome, want iiModels.ErrorKind) *string {
	t.Helper()
	kind, message, ok := outcome.Failure()
	require.True(t, ok, "expected a failure outcome")
	assert.Equal(t, want, kind)
	_, isSuccess := outcome.Details()
	assert.False(t, isSuccess)
	return message
}

func TestLookupSuccess(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.NewStringResponder(http.StatusOK, fullBody))

	outcome := s.Lookup(context.Background(), "HDFC0000053")

	details, ok := outcome.Details()
	require.True(t, ok)
	assert.Equal(t, "KANJURMARG, MUMBAI", *details.Address)
	assert.Equal(t, "HDFC Bank", *details.Bank)
	assert.Equal(t, "HDFC", *details.BankCode)
	assert.Equal(t, "KANJURMARG", *details.Branch)
	assert.Equal(t, "MUMBAI", *details.Centre)
	assert.Equal(t, "MUMBAI", *details.City)
	assert.Equal(t, "+912261606161", *details.Contact)
	assert.Equal(t, "MUMBAI", *details.District)
	assert.Equal(t, "HDFC0000053", *details.IFSC)
	assert.True(t, *details.IMPS)
	assert.Equal(t, "IN-MH", *details.ISO3166)
	assert.Equal(t, "400240015", *details.MICR)
	assert.True(t, *details.NEFT)
	assert.True(t, *details.RTGS)
	assert.Equal(t, "MAHARASHTRA", *details.State)
	assert.Equal(t, iiModels.NewSwiftString(""), details.SWIFT)
	assert.False(t, *details.UPI)

	_, _, failed := outcome.Failure()
	assert.False(t, failed)
}

func TestLookupNormalizesCase(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.NewStringResponder(http.StatusOK, fullBody))

	lower := s.Lookup(context.Background(), "hdfc0000053")
	upper := s.Lookup(context.Background(), "HDFC0000053")

	assert.True(t, lower.IsSuccess())
	assert.True(t, upper.IsSuccess())
	assert.Equal(t, 2, mt.GetCallCountInfo()["GET "+baseURL+"/HDFC0000053"])
	assert.Equal(t, 2, mt.GetTotalCallCount())
}

func TestLookupEmptyBody(t *testing.T) {
	for _, body := range []string{"", "   \n", "null"} {
		s, mt := setup(t)
		mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.NewStringResponder(http.StatusOK, body))

		message := requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.UnknownIssue)
		assert.Nil(t, message)
	}
}

func TestLookupNotFound(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/XXXX0000000", httpmock.ResponderFromResponse(&http.Response{
		Status:     "404 Not Found",
		StatusCode: http.StatusNotFound,
		Header:     http.Header{},
		Body:       httpmock.NewRespBodyFromString(`"Not Found"`),
	}))

	message := requireFailure(t, s.Lookup(context.Background(), "xxxx0000000"), iiModels.UnknownIssue)
	require.NotNil(t, message)
	assert.Equal(t, "Not Found", *message)
}

func TestLookupNon2xxReason(t *testing.T) {
	tests := []struct {
		name     string
		response *http.Response
		want     *string
	}{
		{
			name:     "status without reason falls back to standard text",
			response: &http.Response{Status: "503", StatusCode: http.StatusServiceUnavailable},
			want:     strPtr("Service Unavailable"),
		},
		{
			name:     "custom reason phrase is kept",
			response: &http.Response{Status: "429 Slow Down", StatusCode: http.StatusTooManyRequests},
			want:     strPtr("Slow Down"),
		},
		{
			name:     "unknown code without reason",
			response: &http.Response{Status: "599", StatusCode: 599},
			want:     nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, mt := setup(t)
			tt.response.Header = http.Header{}
			tt.response.Body = httpmock.NewRespBodyFromString("")
			mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.ResponderFromResponse(tt.response))

			message := requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.UnknownIssue)
			assert.Equal(t, tt.want, message)
		})
	}
}

func TestLookupNetworkIssue(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053",
		httpmock.NewErrorResponder(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}))

	message := requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.NetworkIssue)
	assert.Nil(t, message)
}

func TestLookupDNSFailure(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053",
		httpmock.NewErrorResponder(&net.DNSError{Err: "no such host", Name: "ifsc.razorpay.com", IsNotFound: true}))

	requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.NetworkIssue)
}

func TestLookupServerIssue(t *testing.T) {
	s, mt := setup(t)
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053",
		httpmock.NewErrorResponder(errors.New(`malformed HTTP status code "abc"`)))

	message := requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.ServerIssue)
	assert.Nil(t, message)
}

func TestLookupMalformedJSON(t *testing.T) {
	for _, body := range []string{`{malformed`, `["HDFC"]`, `{"NEFT":"yes"}`} {
		s, mt := setup(t)
		mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.NewStringResponder(http.StatusOK, body))

		message := requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.UnknownIssue)
		assert.Nil(t, message)
	}
}

func TestLookupInvalidConfig(t *testing.T) {
	iiUtil.InitValidator()
	cfg := &iiConfig.IFSCConfig{BaseURL: ""}
	s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

	requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.UnknownIssue)
}

type panickingEgress struct{}

func (panickingEgress) GenerateLookupRequest(ctx context.Context, code string) (*http.Request, error) {
	return http.NewRequestWithContext(ctx, http.MethodGet, baseURL+"/"+code, nil)
}

func (panickingEgress) RequestHandler(ctx context.Context, request *http.Request) (*iiModels.RawResponse, error) {
	panic("unexpected")
}

func TestLookupRecoversFromPanic(t *testing.T) {
	s := service.NewRazorpayService(panickingEgress{}, &iiConfig.IFSCConfig{BaseURL: baseURL})

	requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.UnknownIssue)
}

func TestLookupAgainstRealServer(t *testing.T) {
	iiUtil.InitValidator()

	t.Run("connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		addr := server.URL
		server.Close()

		cfg := &iiConfig.IFSCConfig{BaseURL: addr}
		s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

		requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.NetworkIssue)
	})

	t.Run("client timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-time.After(2 * time.Second):
			case <-r.Context().Done():
			}
		}))
		defer server.Close()

		cfg := &iiConfig.IFSCConfig{BaseURL: server.URL, RequestTimeout: 50 * time.Millisecond}
		s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

		requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.NetworkIssue)
	})

	t.Run("malformed status line", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			conn, buf, err := w.(http.Hijacker).Hijack()
			if err != nil {
				return
			}
			defer conn.Close()
			buf.WriteString("HTTP/1.1 abc OK\r\nContent-Length: 0\r\n\r\n")
			buf.Flush()
		}))
		defer server.Close()

		cfg := &iiConfig.IFSCConfig{BaseURL: server.URL}
		s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

		requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.ServerIssue)
	})

	t.Run("https url answered with plain http", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Write([]byte(fullBody))
		}))
		defer server.Close()

		cfg := &iiConfig.IFSCConfig{BaseURL: "https://" + server.Listener.Addr().String()}
		s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

		requireFailure(t, s.Lookup(context.Background(), "HDFC0000053"), iiModels.NetworkIssue)
	})

	t.Run("path carries the uppercased code", func(t *testing.T) {
		var gotPath string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotPath = r.URL.Path
			assert.Empty(t, r.URL.RawQuery)
			assert.Equal(t, http.MethodGet, r.Method)
			w.Write([]byte(fullBody))
		}))
		defer server.Close()

		cfg := &iiConfig.IFSCConfig{BaseURL: server.URL}
		s := service.NewRazorpayService(request.NewRazorpayEgress(cfg, nil), cfg)

		assert.True(t, s.Lookup(context.Background(), "hdfc0000053").IsSuccess())
		assert.Equal(t, "/HDFC0000053", gotPath)
	})
}

func TestLookupRecordsMetricsAndLogs(t *testing.T) {
	iiUtil.InitValidator()
	mt := httpmock.NewMockTransport()
	mt.RegisterResponder(http.MethodGet, baseURL+"/HDFC0000053", httpmock.NewStringResponder(http.StatusOK, fullBody))
	mt.RegisterResponder(http.MethodGet, baseURL+"/XXXX0000000", httpmock.NewStringResponder(http.StatusNotFound, `"Not Found"`))

	m, err := metrics.NewLookupMetrics(prometheus.NewRegistry())
	require.NoError(t, err)
	logs := &captureLogger{}

	cfg := &iiConfig.IFSCConfig{BaseURL: baseURL}
	s := service.NewRazorpayService(
		request.NewRazorpayEgress(cfg, &http.Client{Transport: mt}),
		cfg,
		service.WithMetrics(m),
		service.WithEgressLogger(logs),
	)

	s.Lookup(context.Background(), "HDFC0000053")
	s.Lookup(context.Background(), "XXXX0000000")

	assert.Equal(t, float64(1), counterValue(t, m, "Success"))
	assert.Equal(t, float64(1), counterValue(t, m, "UnknownIssue"))

	require.Len(t, logs.logs, 2)
	assert.Equal(t, "Success", logs.logs[0].Outcome)
	assert.Equal(t, http.StatusOK, logs.logs[0].ResponseCode)
	assert.Equal(t, baseURL+"/HDFC0000053", logs.logs[0].URI)
	assert.False(t, logs.logs[0].EndAt.IsZero())
	assert.Equal(t, "UnknownIssue", logs.logs[1].Outcome)
	assert.Equal(t, http.StatusNotFound, logs.logs[1].ResponseCode)
}

func counterValue(t *testing.T, m *metrics.LookupMetrics, label string) float64 {
	t.Helper()
	var metric dto.Metric
	require.NoError(t, m.LookupCounter.WithLabelValues(label).Write(&metric))
	return metric.GetCounter().GetValue()
}

func strPtr(s string) *string {
	return &s
}
