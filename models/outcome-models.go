package ifsc_integration_models

import "encoding/json"

// ErrorKind is the closed set of lookup failure classifications.
type ErrorKind uint8

const (
	NetworkIssue ErrorKind = iota + 1 // Connectivity failure: DNS, timeout, refused, reset
	ServerIssue                       // Protocol level HTTP failure raised by the transport
	UnknownIssue                      // Everything else, including non-2xx and empty bodies
)

func (k ErrorKind) String() string {
	switch k {
	case NetworkIssue:
		return "NetworkIssue"
	case ServerIssue:
		return "ServerIssue"
	case UnknownIssue:
		return "UnknownIssue"
	default:
		return "Invalid"
	}
}

func (k ErrorKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// LookupOutcome is either a Success carrying the details or a Failure carrying the error kind.
// Build it with Success or Failure, never by hand.
type LookupOutcome struct {
	details *BankDetails
	kind    ErrorKind
	message *string
}

func Success(details BankDetails) *LookupOutcome {
	return &LookupOutcome{details: &details}
}

func Failure(kind ErrorKind, message *string) *LookupOutcome {
	return &LookupOutcome{kind: kind, message: message}
}

func (o *LookupOutcome) IsSuccess() bool {
	return o.details != nil
}

// Details returns the bank details and true on Success.
func (o *LookupOutcome) Details() (BankDetails, bool) {
	if o.details == nil {
		return BankDetails{}, false
	}
	return *o.details, true
}

// Failure returns the error kind, the optional message and true on Failure.
func (o *LookupOutcome) Failure() (ErrorKind, *string, bool) {
	if o.details != nil {
		return 0, nil, false
	}
	return o.kind, o.message, true
}

// Kind returns the error kind, zero on Success.
func (o *LookupOutcome) Kind() ErrorKind {
	if o.details != nil {
		return 0
	}
	return o.kind
}

// Label is used for metrics and logs.
func (o *LookupOutcome) Label() string {
	if o.IsSuccess() {
		return "Success"
	}
	return o.kind.String()
}

type lookupOutcomeJSON struct {
	Status  string       `json:"status"`
	Data    *BankDetails `json:"data,omitempty"`
	Kind    *ErrorKind   `json:"kind,omitempty"`
	Message *string      `json:"message,omitempty"`
}

func (o *LookupOutcome) MarshalJSON() ([]byte, error) {
	if o.IsSuccess() {
		return json.Marshal(lookupOutcomeJSON{Status: "success", Data: o.details})
	}

	kind := o.kind
	return json.Marshal(lookupOutcomeJSON{Status: "failure", Kind: &kind, Message: o.message})
}
