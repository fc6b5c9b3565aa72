package ifsc_integration_utils

import (
	"net/http"
	"net/url"
	"time"

	"github.com/rotisserie/eris"
)

// NewHTTPClient returns the client used for egress calls. A zero timeout keeps the transport
// default, an empty proxy address means a direct connection.
func NewHTTPClient(timeout time.Duration, proxyAddress string) (*http.Client, error) {
	transport := http.DefaultTransport.(*http.Transport).Clone()

	if proxyAddress != "" {
		proxyURL, err := url.Parse(proxyAddress)
		if err != nil {
			return nil, eris.Wrap(err, "parsing proxy address")
		}
		transport.Proxy = http.ProxyURL(proxyURL)
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}, nil
}
