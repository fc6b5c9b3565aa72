package interfaces

import (
	"context"
	"net/http"

	iiModels "github.com/voxtmault/ifsc-integration/models"
)

type Lookup interface {
	// Lookup resolves a bank branch by its IFSC code. It never returns an error, every failure is
	// reported through the outcome.
	Lookup(ctx context.Context, code string) *iiModels.LookupOutcome
}

type RequestEgress interface {
	// GenerateLookupRequest builds the GET request for an already normalized code.
	GenerateLookupRequest(ctx context.Context, code string) (*http.Request, error)

	// RequestHandler sends the request and returns the completed exchange. A returned error means
	// no usable response was received.
	RequestHandler(ctx context.Context, request *http.Request) (*iiModels.RawResponse, error)
}

type EgressLogger interface {
	LogRequest(log *iiModels.EgressLog)
}
