package razorpay

const (
	LookupPath      = "/%s"
	AcceptHeader    = "application/json"
	UserAgentHeader = "ifsc-integration/1.0"
)
