package razorpay

import (
	"context"
	"crypto/tls"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"syscall"
	"testing"

	"github.com/rotisserie/eris"
	"github.com/stretchr/testify/assert"
	iiModels "github.com/voxtmault/ifsc-integration/models"
)

func TestClassifyTransportError(t *testing.T) {
	wrapURL := func(err error) error {
		return &url.Error{Op: "Get", URL: "https://ifsc.razorpay.com/HDFC0000053", Err: err}
	}

	tests := []struct {
		name string
		err  error
		want iiModels.ErrorKind
	}{
		{
			name: "dns failure",
			err:  wrapURL(&net.DNSError{Err: "no such host", Name: "ifsc.razorpay.com", IsNotFound: true}),
			want: iiModels.NetworkIssue,
		},
		{
			name: "connection refused",
			err:  wrapURL(&net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}),
			want: iiModels.NetworkIssue,
		},
		{
			name: "deadline exceeded",
			err:  wrapURL(context.DeadlineExceeded),
			want: iiModels.NetworkIssue,
		},
		{
			name: "server closed connection",
			err:  wrapURL(io.EOF),
			want: iiModels.NetworkIssue,
		},
		{
			name: "truncated body",
			err:  eris.Wrap(io.ErrUnexpectedEOF, "reading response body"),
			want: iiModels.NetworkIssue,
		},
		{
			name: "malformed status line",
			err:  wrapURL(errors.New(`malformed HTTP status code "abc"`)),
			want: iiModels.ServerIssue,
		},
		{
			name: "eris wrapped protocol error",
			err:  eris.Wrap(wrapURL(errors.New("net/http: HTTP/1.x transport connection broken: malformed MIME header line")), "sending request"),
			want: iiModels.ServerIssue,
		},
		{
			name: "https url answered with plain http",
			err:  wrapURL(http.ErrSchemeMismatch),
			want: iiModels.NetworkIssue,
		},
		{
			name: "tls record header error",
			err:  wrapURL(tls.RecordHeaderError{Msg: "first record does not look like a TLS handshake"}),
			want: iiModels.NetworkIssue,
		},
		{
			name: "tls alert",
			err:  eris.Wrap(wrapURL(tls.AlertError(40)), "sending request"),
			want: iiModels.NetworkIssue,
		},
		{
			name: "eris wrapped network error",
			err:  eris.Wrap(wrapURL(&net.OpError{Op: "read", Net: "tcp", Err: syscall.ECONNRESET}), "sending request"),
			want: iiModels.NetworkIssue,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyTransportError(tt.err))
		})
	}
}
