package ifsc_integration_models

import "time"

// RawResponse is what the egress layer hands back after a completed HTTP exchange.
type RawResponse struct {
	StatusCode int
	Status     string // Full status line text, e.g. "404 Not Found"
	Body       []byte
	Header     map[string][]string
}

// EgressLog describes a single outgoing lookup call, consumed by the log worker.
type EgressLog struct {
	ID           string    `validate:"required,uuid4"`
	BeginAt      time.Time `validate:"required"`
	EndAt        time.Time
	Latency      string
	HTTPMethod   string `validate:"required,oneof=GET"`
	URI          string `validate:"required,url"`
	Code         string `validate:"required"`
	ResponseCode int    `validate:"gte=0,lte=599"`
	ResponseBody string
	Outcome      string `validate:"required,oneof=Success NetworkIssue ServerIssue UnknownIssue"`
}
