package razorpay_request

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"

	"github.com/rotisserie/eris"
	iiConfig "github.com/voxtmault/ifsc-integration/config"
	iiInterfaces "github.com/voxtmault/ifsc-integration/interfaces"
	iiModels "github.com/voxtmault/ifsc-integration/models"
	"github.com/voxtmault/ifsc-integration/razorpay"
	iiUtil "github.com/voxtmault/ifsc-integration/utils"
)

type RazorpayEgress struct {
	Client *http.Client
	Config *iiConfig.IFSCConfig
}

var _ iiInterfaces.RequestEgress = &RazorpayEgress{}

func NewRazorpayEgress(cfg *iiConfig.IFSCConfig, client *http.Client) *RazorpayEgress {
	if client == nil {
		client = &http.Client{Timeout: cfg.RequestTimeout}
	}

	return &RazorpayEgress{
		Client: client,
		Config: cfg,
	}
}

func (s *RazorpayEgress) GenerateLookupRequest(ctx context.Context, code string) (*http.Request, error) {

	// Checks for problematic configurations
	if err := iiUtil.ValidateStruct(ctx, s.Config); err != nil {
		return nil, eris.Wrap(err, "invalid IFSC configuration")
	}

	endpoint := strings.TrimRight(s.Config.BaseURL, "/") + fmt.Sprintf(razorpay.LookupPath, url.PathEscape(code))

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, eris.Wrap(err, "creating request")
	}

	request.Header.Set("Accept", razorpay.AcceptHeader)
	request.Header.Set("User-Agent", razorpay.UserAgentHeader)

	slog.Debug("Lookup request built", "url", request.URL.String())

	return request, nil
}

func (s *RazorpayEgress) RequestHandler(ctx context.Context, request *http.Request) (*iiModels.RawResponse, error) {

	response, err := s.Client.Do(request)
	if err != nil {
		return nil, eris.Wrap(err, "sending request")
	}
	defer response.Body.Close()

	body, err := io.ReadAll(response.Body)
	if err != nil {
		return nil, eris.Wrap(err, "reading response body")
	}

	if response.StatusCode < 200 || response.StatusCode > 299 {
		slog.Debug("Non-2xx status code", "status", response.StatusCode)
	}

	return &iiModels.RawResponse{
		StatusCode: response.StatusCode,
		Status:     response.Status,
		Body:       body,
		Header:     response.Header,
	}, nil
}
